package githubutils

import (
	"context"
	"fmt"

	"github.com/google/go-github/v32/github"
	"github.com/google/go-querystring/query"
)

//go:generate mockgen -destination mocks/mock_repo_client.go -package mocks github.com/solo-io/changelog-generator/githubutils RepoClient

const ISSUE_STATE_CLOSED = "closed"

// RepoClient lists the records of a single repository needed to build a changelog.
// Every listing is lazy: no request is made until the first call to Next.
type RepoClient interface {
	ListReleases(ctx context.Context, opts *github.ListOptions) ReleaseIterator
	ListIssues(ctx context.Context, opts *github.IssueListByRepoOptions) IssueIterator
	ListIssueEvents(ctx context.Context, number int) IssueEventIterator
	ListLabels(ctx context.Context) LabelIterator
}

type repoClient struct {
	client *github.Client
	owner  string
	repo   string
}

func NewRepoClient(client *github.Client, owner, repo string) RepoClient {
	return &repoClient{
		client: client,
		owner:  owner,
		repo:   repo,
	}
}

func (c *repoClient) ListReleases(ctx context.Context, opts *github.ListOptions) ReleaseIterator {
	if opts == nil {
		opts = &github.ListOptions{PerPage: MAX_GITHUB_ITEMS_PER_PAGE}
	}
	return listAll[github.RepositoryRelease](ctx, c.client, c.path("releases"), opts)
}

// ListIssues lists issues and pull requests. Closed issues are listed unless opts
// asks for another state.
func (c *repoClient) ListIssues(ctx context.Context, opts *github.IssueListByRepoOptions) IssueIterator {
	if opts == nil {
		opts = &github.IssueListByRepoOptions{
			ListOptions: github.ListOptions{PerPage: MAX_GITHUB_ITEMS_PER_PAGE},
		}
	}
	withState := *opts
	if withState.State == "" {
		withState.State = ISSUE_STATE_CLOSED
	}
	return listAll[github.Issue](ctx, c.client, c.path("issues"), &withState)
}

func (c *repoClient) ListIssueEvents(ctx context.Context, number int) IssueEventIterator {
	opts := &github.ListOptions{PerPage: MAX_GITHUB_ITEMS_PER_PAGE}
	return listAll[github.IssueEvent](ctx, c.client, c.path(fmt.Sprintf("issues/%d/events", number)), opts)
}

func (c *repoClient) ListLabels(ctx context.Context) LabelIterator {
	opts := &github.ListOptions{PerPage: MAX_GITHUB_ITEMS_PER_PAGE}
	return listAll[github.Label](ctx, c.client, c.path("labels"), opts)
}

func (c *repoClient) path(resource string) string {
	return fmt.Sprintf("repos/%s/%s/%s", c.owner, c.repo, resource)
}

func listAll[T any](ctx context.Context, client *github.Client, path string, opts interface{}) Iterator[T] {
	values, err := query.Values(opts)
	if err != nil {
		return &failedIterator[T]{err: &ConnectionError{URL: path, Err: err}}
	}
	firstPage := path
	if encoded := values.Encode(); encoded != "" {
		firstPage += "?" + encoded
	}
	return newPageIterator[T](ctx, client, firstPage)
}

type failedIterator[T any] struct {
	err error
}

func (it *failedIterator[T]) Next() (*T, error) {
	return nil, it.err
}
