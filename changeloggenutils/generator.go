package changeloggenutils

import (
	"context"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/go-github/v32/github"
	"github.com/rotisserie/eris"
	"github.com/solo-io/changelog-generator/contextutils"
	"github.com/solo-io/changelog-generator/githubutils"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
)

var (
	NoReleasesError = eris.New("no releases found for this repository")
)

// Issue events that, carrying a commit, show a code change landed for the issue.
var mergeEvents = map[string]bool{
	"merged":     true,
	"referenced": true,
	"closed":     true,
	"reopened":   true,
}

// Release is a repository release together with the issues attributed to it.
type Release struct {
	*github.RepositoryRelease
	Issues map[Category][]*github.Issue
}

func (r *Release) IsEmpty() bool {
	return len(r.Issues) == 0
}

/*
ChangelogGenerator attributes closed issues and pull requests to the release they
shipped in.

Releases are walked in the order GitHub lists them, newest first. A release's window
opens at the publish time of the release listed after it and is unbounded for the
oldest one. Issues closed strictly after that point are taken from a pool shared by
every window, so each issue lands in the newest release that can claim it and is never
seen again. Releases published at the same instant are therefore resolved by listing
order.

A taken issue is kept only if it maps to a category, by label or by being a pull
request, and its event history shows a commit attached to a merge, reference, close or
reopen. Everything else is dropped without error.

A ChangelogGenerator must not run Generate concurrently.
*/
type ChangelogGenerator struct {
	client   githubutils.RepoClient
	opts     Options
	renderer ChangelogRenderer
}

func NewChangelogGenerator(client githubutils.RepoClient, opts Options) *ChangelogGenerator {
	opts.LabelMapping = DefaultLabelMapping().Merge(opts.LabelMapping)
	opts.HeaderMapping = DefaultHeaderMapping().Merge(opts.HeaderMapping)
	return &ChangelogGenerator{
		client:   client,
		opts:     opts,
		renderer: NewMarkdownRenderer(opts.LabelMapping, opts.HeaderMapping),
	}
}

// Generate returns the complete changelog document, or an error and no document.
// Errors from the RepoClient are returned unchanged.
func (g *ChangelogGenerator) Generate(ctx context.Context) (string, error) {
	releases, err := g.GetReleaseData(ctx)
	if err != nil {
		return "", err
	}
	rendered := 0
	for _, release := range releases {
		if !release.IsEmpty() {
			rendered++
		}
	}
	contextutils.LoggerFrom(ctx).Infow("Generated changelog",
		zap.Int("releases", len(releases)),
		zap.Int("rendered", rendered))
	return g.renderer.Render(releases), nil
}

// GetReleaseData returns every release, newest first, with its attributed issues.
func (g *ChangelogGenerator) GetReleaseData(ctx context.Context) ([]*Release, error) {
	logger := contextutils.LoggerFrom(ctx)

	repoReleases, err := githubutils.Collect(g.client.ListReleases(ctx, nil))
	if err != nil {
		return nil, err
	}
	if len(repoReleases) == 0 {
		return nil, NoReleasesError
	}
	logger.Debugw("fetched releases", zap.Int("count", len(repoReleases)))

	// Loaded with the first window that needs it.
	var pool *issuePool
	releases := make([]*Release, 0, len(repoReleases))
	for idx, repoRelease := range repoReleases {
		release := &Release{
			RepositoryRelease: repoRelease,
			Issues:            map[Category][]*github.Issue{},
		}
		releases = append(releases, release)

		releaseCtx := contextutils.WithLoggerValues(ctx, "release", repoRelease.GetTagName())
		releaseLogger := contextutils.LoggerFrom(releaseCtx)

		publishedAt := repoRelease.GetPublishedAt().Time
		if !g.opts.Since.IsZero() && !publishedAt.After(g.opts.Since) {
			releaseLogger.Debugw("skipping release published before cutoff", zap.Time("since", g.opts.Since))
			continue
		}

		var lowerBound *time.Time
		if idx+1 < len(repoReleases) {
			previous := repoReleases[idx+1].GetPublishedAt().Time
			lowerBound = &previous
		}

		if pool == nil {
			if pool, err = g.loadIssuePool(ctx); err != nil {
				return nil, err
			}
		}
		windowIssues := pool.take(lowerBound)
		releaseLogger.Debugw("collected release window",
			zap.Timep("closedAfter", lowerBound),
			zap.Int("issues", len(windowIssues)),
			zap.Int("remaining", pool.len()))

		if !g.shouldRender(repoRelease) {
			releaseLogger.Debugw("release excluded from changelog, dropping its issues", zap.Int("issues", len(windowIssues)))
			continue
		}

		for _, issue := range windowIssues {
			category, ok := g.categorize(issue)
			if !ok {
				releaseLogger.Debugw("dropping issue without a matching label", zap.Int("issue", issue.GetNumber()))
				continue
			}
			merged, err := g.hasMergeEvent(releaseCtx, issue.GetNumber())
			if err != nil {
				return nil, err
			}
			if !merged {
				releaseLogger.Debugw("dropping issue closed without a commit", zap.Int("issue", issue.GetNumber()))
				continue
			}
			release.Issues[category] = append(release.Issues[category], issue)
		}
	}
	return releases, nil
}

func (g *ChangelogGenerator) loadIssuePool(ctx context.Context) (*issuePool, error) {
	issues, err := githubutils.Collect(g.client.ListIssues(ctx, &github.IssueListByRepoOptions{
		State:       githubutils.ISSUE_STATE_CLOSED,
		ListOptions: github.ListOptions{PerPage: githubutils.MAX_GITHUB_ITEMS_PER_PAGE},
	}))
	if err != nil {
		return nil, err
	}
	pool, duplicates := newIssuePool(issues)
	contextutils.LoggerFrom(ctx).Debugw("fetched closed issues",
		zap.Int("count", pool.len()),
		zap.Int("duplicates", duplicates))
	return pool, nil
}

// categorize returns the category of the first label mapping entry matching the issue,
// falling back to PullRequest for unlabeled pull requests.
func (g *ChangelogGenerator) categorize(issue *github.Issue) (Category, bool) {
	if category, ok := g.opts.LabelMapping.CategoryFor(issue.Labels); ok {
		return category, true
	}
	if issue.IsPullRequest() {
		return PullRequest, true
	}
	return "", false
}

// hasMergeEvent stops reading events, and fetching their pages, at the first match.
func (g *ChangelogGenerator) hasMergeEvent(ctx context.Context, number int) (bool, error) {
	events := g.client.ListIssueEvents(ctx, number)
	for {
		event, err := events.Next()
		if err == iterator.Done {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if mergeEvents[event.GetEvent()] && event.GetCommitID() != "" {
			return true, nil
		}
	}
}

func (g *ChangelogGenerator) shouldRender(release *github.RepositoryRelease) bool {
	if g.opts.SkipPrereleases && (release.GetPrerelease() || release.GetDraft()) {
		return false
	}
	if g.opts.MinVersion == nil && g.opts.MaxVersion == nil {
		return true
	}
	version, err := semver.NewVersion(release.GetTagName())
	if err != nil {
		// version bounds only apply to semver tags
		return true
	}
	if g.opts.MinVersion != nil && version.LessThan(g.opts.MinVersion) {
		return false
	}
	if g.opts.MaxVersion != nil && version.GreaterThan(g.opts.MaxVersion) {
		return false
	}
	return true
}
