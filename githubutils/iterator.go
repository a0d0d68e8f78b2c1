package githubutils

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/go-github/v32/github"
	"github.com/solo-io/changelog-generator/contextutils"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
)

// Iterator yields the items of a paginated GitHub list endpoint one at a time.
// Next returns iterator.Done once every page has been consumed.
type Iterator[T any] interface {
	Next() (*T, error)
}

type (
	ReleaseIterator    = Iterator[github.RepositoryRelease]
	IssueIterator      = Iterator[github.Issue]
	IssueEventIterator = Iterator[github.IssueEvent]
	LabelIterator      = Iterator[github.Label]
)

// ConnectionError is returned when a page of results could not be fetched.
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("unable to fetch %s: %v", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

var nextLinkRegex = regexp.MustCompile(`<([^>]+)>;\s*rel="next"`)

// NextPageURL extracts the rel="next" target from a response's Link header, or
// returns "" when the response is the last page.
func NextPageURL(header http.Header) string {
	links := strings.Join(header.Values("Link"), ",")
	matches := nextLinkRegex.FindStringSubmatch(links)
	if len(matches) < 2 {
		return ""
	}
	return matches[1]
}

// pageIterator fetches a page only after every item of the previous page has
// been handed out. Page URLs after the first come from the server's Link header.
type pageIterator[T any] struct {
	ctx     context.Context
	client  *github.Client
	nextUrl string
	items   []*T
	pos     int
	pages   int
	err     error
}

func newPageIterator[T any](ctx context.Context, client *github.Client, firstPage string) *pageIterator[T] {
	return &pageIterator[T]{
		ctx:     ctx,
		client:  client,
		nextUrl: firstPage,
	}
}

func (it *pageIterator[T]) Next() (*T, error) {
	for it.pos >= len(it.items) {
		if it.err != nil {
			return nil, it.err
		}
		if it.nextUrl == "" {
			return nil, iterator.Done
		}
		if err := it.fetch(); err != nil {
			it.err = err
			return nil, err
		}
	}
	item := it.items[it.pos]
	it.pos++
	return item, nil
}

func (it *pageIterator[T]) fetch() error {
	pageUrl := it.nextUrl
	logger := contextutils.LoggerFrom(it.ctx)
	logger.Debugw("fetching page", zap.String("url", pageUrl), zap.Int("page", it.pages+1))

	req, err := it.client.NewRequest(http.MethodGet, pageUrl, nil)
	if err != nil {
		return &ConnectionError{URL: pageUrl, Err: err}
	}
	var items []*T
	resp, err := it.client.Do(it.ctx, req, &items)
	if err != nil {
		logger.Debugw("page request failed", zap.String("url", pageUrl), zap.Error(err))
		return &ConnectionError{URL: pageUrl, Err: err}
	}

	it.items = items
	it.pos = 0
	it.pages++
	it.nextUrl = NextPageURL(resp.Header)
	return nil
}

// Collect drains it into a slice.
func Collect[T any](it Iterator[T]) ([]*T, error) {
	var all []*T
	for {
		item, err := it.Next()
		if err == iterator.Done {
			return all, nil
		}
		if err != nil {
			return nil, err
		}
		all = append(all, item)
	}
}
