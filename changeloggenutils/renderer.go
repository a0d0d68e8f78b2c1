package changeloggenutils

import (
	"fmt"
	"strings"
)

const (
	ChangelogHeader = "# Changelog\n> This project adheres to [Semantic Versioning](http://semver.org/).\n\n"

	releaseDateFormat = "2006-01-02"
)

type ChangelogRenderer interface {
	Render(releases []*Release) string
}

func NewMarkdownRenderer(labels LabelMapping, headers HeaderMapping) ChangelogRenderer {
	return &markdownChangelogRenderer{
		categories: labels.Categories(),
		headers:    headers,
	}
}

type markdownChangelogRenderer struct {
	categories []Category
	headers    HeaderMapping
}

// Render skips releases without issues and categories without issues.
func (r *markdownChangelogRenderer) Render(releases []*Release) string {
	var output strings.Builder
	output.WriteString(ChangelogHeader)
	for _, release := range releases {
		if release.IsEmpty() {
			continue
		}
		output.WriteString(renderReleaseHeading(release))
		for _, category := range r.categories {
			issues := release.Issues[category]
			if len(issues) == 0 {
				continue
			}
			output.WriteString(r.headers.HeaderFor(category) + "\n")
			for _, issue := range issues {
				fmt.Fprintf(&output, "- %s [#%d](%s)\n", issue.GetTitle(), issue.GetNumber(), issue.GetHTMLURL())
			}
			output.WriteString("\n")
		}
	}
	return output.String()
}

func renderReleaseHeading(release *Release) string {
	publishDate := release.GetPublishedAt().UTC().Format(releaseDateFormat)
	return fmt.Sprintf("## [%s](%s) - %s\n", release.GetTagName(), release.GetHTMLURL(), publishDate)
}
