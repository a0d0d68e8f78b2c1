package changeloggenutils_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/google/go-github/v32/github"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/solo-io/changelog-generator/changeloggenutils"
	. "github.com/solo-io/changelog-generator/errors"
	"github.com/solo-io/changelog-generator/githubutils"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	v110Heading = "## [v1.1.0](https://github.com/solo-io/testrepo/releases/tag/v1.1.0) - 2020-03-01\n"
	v100Heading = "## [v1.0.0](https://github.com/solo-io/testrepo/releases/tag/v1.0.0) - 2020-02-01\n"
	v090Heading = "## [v0.9.0](https://github.com/solo-io/testrepo/releases/tag/v0.9.0) - 2020-01-01\n"

	fixCrashLine     = "- Fix crash on startup [#5](https://github.com/solo-io/testrepo/issues/5)\n"
	mergeFeatureLine = "- Merge feature branch [#4](https://github.com/solo-io/testrepo/pull/4)\n"
	darkModeLine     = "- Add dark mode [#3](https://github.com/solo-io/testrepo/issues/3)\n"
	loggingLine      = "- Improve logging [#2](https://github.com/solo-io/testrepo/issues/2)\n"
	yamlLine         = "- Support yaml config [#1](https://github.com/solo-io/testrepo/issues/1)\n"
)

// headingsByLevel parses a rendered changelog and returns the text of its headings.
func headingsByLevel(doc string) map[int][]string {
	source := []byte(doc)
	root := goldmark.New().Parser().Parse(text.NewReader(source))
	headings := map[int][]string{}
	err := ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if heading, ok := node.(*ast.Heading); ok && entering {
			headings[heading.Level] = append(headings[heading.Level], string(heading.Text(source)))
		}
		return ast.WalkContinue, nil
	})
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	return headings
}

var _ = Describe("ChangelogGenerator", func() {
	var (
		ctx    context.Context
		client *mockRepoClient
		opts   Options
	)

	generate := func() (string, error) {
		return NewChangelogGenerator(client, opts).Generate(ctx)
	}

	mustGenerate := func() string {
		doc, err := generate()
		ExpectWithOffset(1, err).NotTo(HaveOccurred())
		return doc
	}

	BeforeEach(func() {
		ctx = context.Background()
		opts = Options{}
		client = newMockRepoClient()
		client.releases = []*github.RepositoryRelease{
			newRelease("v1.1.0", day(2020, 3, 1)),
			newRelease("v1.0.0", day(2020, 2, 1)),
			newRelease("v0.9.0", day(2020, 1, 1)),
		}
		client.issues = []*github.Issue{
			newIssue(5, "Fix crash on startup", day(2020, 2, 15), "bug"),
			newPullRequest(4, "Merge feature branch", day(2020, 2, 20)),
			newIssue(3, "Add dark mode", day(2020, 1, 15), "feature"),
			newIssue(2, "Improve logging", day(2020, 1, 10), "enhancement"),
			newIssue(1, "Support yaml config", day(2019, 12, 1), "enhancement"),
		}
		client.issueEvents[5] = []*github.IssueEvent{newEvent("closed", "a1a1a1")}
		client.issueEvents[4] = []*github.IssueEvent{newEvent("merged", "b2b2b2")}
		client.issueEvents[3] = []*github.IssueEvent{newEvent("subscribed", ""), newEvent("referenced", "c3c3c3")}
		client.issueEvents[2] = []*github.IssueEvent{newEvent("closed", "d4d4d4")}
		client.issueEvents[1] = []*github.IssueEvent{newEvent("merged", "e5e5e5")}
	})

	Context("no releases", func() {
		BeforeEach(func() {
			client.releases = nil
		})

		It("fails with NoReleasesError and produces no document", func() {
			doc, err := generate()
			Expect(err).To(HaveInErrorChain(NoReleasesError))
			Expect(err).To(MatchError(NoReleasesError))
			Expect(doc).To(BeEmpty())
		})

		It("does not list issues", func() {
			_, _ = generate()
			Expect(client.issueListCalls).To(Equal(0))
		})
	})

	It("renders only the document header when no issues were closed", func() {
		client.issues = nil
		Expect(mustGenerate()).To(Equal(ChangelogHeader))
	})

	It("groups issues under the release they shipped in", func() {
		expected := ChangelogHeader +
			v110Heading +
			"### Fixed\n" + fixCrashLine + "\n" +
			"### Merged pull requests:\n" + mergeFeatureLine + "\n" +
			v100Heading +
			"### Added\n" + darkModeLine + "\n" +
			"### Changed:\n" + loggingLine + "\n" +
			v090Heading +
			"### Changed:\n" + yamlLine + "\n"
		Expect(mustGenerate()).To(Equal(expected))
	})

	It("renders well formed markdown sections", func() {
		headings := headingsByLevel(mustGenerate())
		Expect(headings[1]).To(Equal([]string{"Changelog"}))
		Expect(headings[2]).To(Equal([]string{
			"v1.1.0 - 2020-03-01",
			"v1.0.0 - 2020-02-01",
			"v0.9.0 - 2020-01-01",
		}))
		Expect(headings[3]).To(Equal([]string{
			"Fixed", "Merged pull requests:",
			"Added", "Changed:",
			"Changed:",
		}))
	})

	It("places every issue under exactly one release", func() {
		doc := mustGenerate()
		for number := 1; number <= 5; number++ {
			Expect(strings.Count(doc, fmt.Sprintf("[#%d]", number))).To(Equal(1), "issue #%d", number)
		}
	})

	It("lists closed issues once for all releases", func() {
		mustGenerate()
		Expect(client.issueListCalls).To(Equal(1))
		Expect(client.issueListState).To(Equal("closed"))
	})

	It("matches labels case-insensitively", func() {
		client.issues[0] = newIssue(5, "Fix crash on startup", day(2020, 2, 15), "BUG")
		Expect(mustGenerate()).To(ContainSubstring(v110Heading + "### Fixed\n" + fixCrashLine))
	})

	It("uses the first category in mapping order when several labels match", func() {
		client.issues[0] = newIssue(5, "Fix crash on startup", day(2020, 2, 15), "bug", "feature")
		doc := mustGenerate()
		Expect(doc).To(ContainSubstring(v110Heading + "### Added\n" + fixCrashLine))
		Expect(doc).NotTo(ContainSubstring("### Fixed"))
	})

	It("lists unlabeled pull requests confirmed by a merge event", func() {
		client.issues = client.issues[1:2]
		Expect(mustGenerate()).To(Equal(ChangelogHeader + v110Heading + "### Merged pull requests:\n" + mergeFeatureLine + "\n"))
	})

	It("categorizes labeled pull requests by label", func() {
		client.issues = []*github.Issue{newPullRequest(4, "Merge feature branch", day(2020, 2, 20), "bug")}
		Expect(mustGenerate()).To(Equal(ChangelogHeader + v110Heading + "### Fixed\n" + mergeFeatureLine + "\n"))
	})

	Context("merge confirmation", func() {
		It("drops issues with an empty event history", func() {
			client.issueEvents[3] = nil
			doc := mustGenerate()
			Expect(doc).NotTo(ContainSubstring("[#3]"))
			Expect(doc).NotTo(ContainSubstring("### Added"))
		})

		It("drops issues whose events carry no commit", func() {
			client.issueEvents[5] = []*github.IssueEvent{newEvent("closed", ""), newEvent("labeled", "")}
			doc := mustGenerate()
			Expect(doc).NotTo(ContainSubstring("[#5]"))
			Expect(doc).To(ContainSubstring(v110Heading + "### Merged pull requests:\n"))
		})

		It("ignores commits attached to unrelated events", func() {
			client.issueEvents[5] = []*github.IssueEvent{newEvent("head_ref_force_pushed", "f6f6f6")}
			Expect(mustGenerate()).NotTo(ContainSubstring("[#5]"))
		})

		It("accepts a reopened event with a commit", func() {
			client.issueEvents[5] = []*github.IssueEvent{newEvent("reopened", "f6f6f6")}
			Expect(mustGenerate()).To(ContainSubstring(fixCrashLine))
		})

		It("stops reading events at the first confirming event", func() {
			client.issueEventErrors[5] = &githubutils.ConnectionError{URL: "page-2", Err: fmt.Errorf("should not be fetched")}
			Expect(mustGenerate()).To(ContainSubstring(fixCrashLine))
		})

		It("does not fetch events for issues without a category", func() {
			client.issues = append(client.issues, newIssue(6, "Question about config", day(2020, 2, 25), "question"))
			doc := mustGenerate()
			Expect(doc).NotTo(ContainSubstring("[#6]"))
			Expect(client.eventCalls).NotTo(HaveKey(6))
			Expect(client.eventCalls[5]).To(Equal(1))
		})

		It("does not retry a dropped issue in an older release", func() {
			client.issueEvents[5] = nil
			doc := mustGenerate()
			Expect(doc).NotTo(ContainSubstring("[#5]"))
			Expect(client.eventCalls[5]).To(Equal(1))
		})
	})

	Context("release windows", func() {
		It("attributes an issue closed exactly at a release to the next release", func() {
			client.issues = []*github.Issue{newIssue(7, "Boundary", day(2020, 2, 1), "bug")}
			client.issueEvents[7] = []*github.IssueEvent{newEvent("closed", "abc")}
			doc := mustGenerate()
			Expect(doc).To(Equal(ChangelogHeader + v100Heading + "### Fixed\n" +
				"- Boundary [#7](https://github.com/solo-io/testrepo/issues/7)\n\n"))
		})

		It("attributes issues closed after the latest release to the latest release", func() {
			client.issues = []*github.Issue{newIssue(7, "Unreleased fix", day(2020, 4, 1), "bug")}
			client.issueEvents[7] = []*github.IssueEvent{newEvent("closed", "abc")}
			Expect(mustGenerate()).To(HavePrefix(ChangelogHeader + v110Heading))
		})

		It("resolves releases published at the same instant by listing order", func() {
			sameInstant := []*github.RepositoryRelease{
				newRelease("v2.0.0", day(2020, 5, 1)),
				newRelease("v2.0.0-alt", day(2020, 5, 1)),
				newRelease("v1.0.0", day(2020, 2, 1)),
			}
			client.issues = []*github.Issue{newIssue(7, "Shared window", day(2020, 4, 1), "bug")}
			client.issueEvents[7] = []*github.IssueEvent{newEvent("closed", "abc")}

			client.releases = sameInstant
			Expect(headingsByLevel(mustGenerate())[2]).To(Equal([]string{"v2.0.0-alt - 2020-05-01"}))

			client.releases = []*github.RepositoryRelease{sameInstant[1], sameInstant[0], sameInstant[2]}
			Expect(headingsByLevel(mustGenerate())[2]).To(Equal([]string{"v2.0.0 - 2020-05-01"}))
		})

		It("collects every remaining issue into the oldest release", func() {
			client.releases = client.releases[2:]
			doc := mustGenerate()
			for number := 1; number <= 5; number++ {
				Expect(doc).To(ContainSubstring(fmt.Sprintf("[#%d]", number)))
			}
			Expect(headingsByLevel(doc)[2]).To(HaveLen(1))
		})

		It("skips issues repeated by the listing", func() {
			client.issues = append(client.issues, newIssue(5, "Fix crash on startup", day(2020, 2, 15), "bug"))
			doc := mustGenerate()
			Expect(strings.Count(doc, "[#5]")).To(Equal(1))
			Expect(client.eventCalls[5]).To(Equal(1))
		})
	})

	Context("custom mappings", func() {
		It("overrides only the referenced label category", func() {
			opts.LabelMapping = LabelMapping{
				{Category: Changed, Labels: []string{"CustomEnhancementLabel"}},
			}
			client.issues[3] = newIssue(2, "Improve logging", day(2020, 1, 10), "customenhancementlabel")
			doc := mustGenerate()
			Expect(doc).To(ContainSubstring("### Changed:\n" + loggingLine))
			// "enhancement" no longer maps to changed
			Expect(doc).NotTo(ContainSubstring("[#1]"))
			// defaults that were not referenced still apply
			Expect(doc).To(ContainSubstring("### Added\n" + darkModeLine))
			Expect(doc).To(ContainSubstring("### Fixed\n" + fixCrashLine))
		})

		It("overrides only the referenced header", func() {
			opts.HeaderMapping = HeaderMapping{Fixed: "### I fixed it!"}
			doc := mustGenerate()
			Expect(doc).To(ContainSubstring("### I fixed it!\n" + fixCrashLine))
			Expect(doc).To(ContainSubstring("### Added\n" + darkModeLine))
			Expect(doc).To(ContainSubstring("### Merged pull requests:\n" + mergeFeatureLine))
		})

		It("renders custom categories after the defaults", func() {
			opts.LabelMapping = LabelMapping{{Category: "custom", Labels: []string{"CustomBugLabel"}}}
			opts.HeaderMapping = HeaderMapping{"custom": "### Custom Header"}
			client.issues = []*github.Issue{
				newIssue(5, "Fix crash on startup", day(2020, 2, 15), "CustomBugLabel"),
				newIssue(3, "Add dark mode", day(2020, 2, 16), "feature"),
			}
			client.issueEvents[3] = []*github.IssueEvent{newEvent("closed", "c3c3c3")}
			Expect(mustGenerate()).To(Equal(ChangelogHeader + v110Heading +
				"### Added\n" + darkModeLine + "\n" +
				"### Custom Header\n" + fixCrashLine + "\n"))
		})

		It("falls back to a header derived from the category name", func() {
			opts.LabelMapping = LabelMapping{{Category: "security", Labels: []string{"cve"}}}
			client.issues = []*github.Issue{newIssue(5, "Fix crash on startup", day(2020, 2, 15), "cve")}
			Expect(mustGenerate()).To(ContainSubstring("### security\n" + fixCrashLine))
		})
	})

	Context("release selection", func() {
		It("skips releases published before the cutoff", func() {
			opts.Since = day(2020, 2, 10)
			doc := mustGenerate()
			Expect(headingsByLevel(doc)[2]).To(Equal([]string{"v1.1.0 - 2020-03-01"}))
			for _, number := range []int{1, 2, 3} {
				Expect(client.eventCalls).NotTo(HaveKey(number))
			}
		})

		It("omits releases below the minimum version without moving their issues", func() {
			opts.MinVersion = semver.MustParse("1.0.0")
			doc := mustGenerate()
			Expect(headingsByLevel(doc)[2]).To(Equal([]string{"v1.1.0 - 2020-03-01", "v1.0.0 - 2020-02-01"}))
			Expect(doc).NotTo(ContainSubstring("[#1]"))
			Expect(client.eventCalls).NotTo(HaveKey(1))
		})

		It("omits releases above the maximum version without moving their issues", func() {
			opts.MaxVersion = semver.MustParse("1.0.0")
			doc := mustGenerate()
			Expect(headingsByLevel(doc)[2]).To(Equal([]string{"v1.0.0 - 2020-02-01", "v0.9.0 - 2020-01-01"}))
			Expect(doc).NotTo(ContainSubstring("[#5]"))
			Expect(doc).NotTo(ContainSubstring("[#4]"))
		})

		It("keeps releases whose tags are not semantic versions", func() {
			opts.MinVersion = semver.MustParse("1.0.0")
			client.releases[2] = newRelease("first-release", day(2020, 1, 1))
			Expect(mustGenerate()).To(ContainSubstring("## [first-release]"))
		})

		It("can leave out pre-releases", func() {
			opts.SkipPrereleases = true
			client.releases[0].Prerelease = github.Bool(true)
			doc := mustGenerate()
			Expect(doc).NotTo(ContainSubstring("v1.1.0"))
			Expect(doc).NotTo(ContainSubstring("[#5]"))
			Expect(doc).To(ContainSubstring(v100Heading))
		})
	})

	Context("repository errors", func() {
		It("returns the client's error unchanged", func() {
			connErr := &githubutils.ConnectionError{URL: "repos/solo-io/testrepo/issues", Err: fmt.Errorf("connection refused")}
			client.issuesErr = connErr
			doc, err := generate()
			Expect(err).To(BeIdenticalTo(connErr))
			Expect(doc).To(BeEmpty())
		})

		It("fails when an event page cannot be fetched", func() {
			connErr := &githubutils.ConnectionError{URL: "repos/solo-io/testrepo/issues/5/events", Err: fmt.Errorf("timeout")}
			client.issueEvents[5] = nil
			client.issueEventErrors[5] = connErr
			_, err := generate()
			var target *githubutils.ConnectionError
			Expect(As(err, &target)).To(BeTrue())
			Expect(target.URL).To(HaveSuffix("issues/5/events"))
		})
	})
})
