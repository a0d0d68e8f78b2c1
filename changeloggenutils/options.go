package changeloggenutils

import (
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/go-github/v32/github"
)

// Category names a changelog section, e.g. "fixed".
type Category string

const (
	Added       Category = "added"
	Changed     Category = "changed"
	Fixed       Category = "fixed"
	PullRequest Category = "pull_request"
)

// CategoryLabels lists the issue labels, compared case-insensitively, that place an
// issue in Category.
type CategoryLabels struct {
	Category Category
	Labels   []string
}

// LabelMapping is ordered: an issue goes to the first category with a matching label,
// and sections render in this order.
type LabelMapping []CategoryLabels

// HeaderMapping holds the markdown header line rendered above each category.
type HeaderMapping map[Category]string

func DefaultLabelMapping() LabelMapping {
	return LabelMapping{
		{Category: Added, Labels: []string{"feature"}},
		{Category: Changed, Labels: []string{"enhancement"}},
		{Category: Fixed, Labels: []string{"bug"}},
	}
}

func DefaultHeaderMapping() HeaderMapping {
	return HeaderMapping{
		Fixed:       "### Fixed",
		Added:       "### Added",
		Changed:     "### Changed:",
		PullRequest: "### Merged pull requests:",
	}
}

// Merge returns m with overrides applied. An override for a category already in m
// replaces its labels in place; other overrides are appended in their given order.
func (m LabelMapping) Merge(overrides LabelMapping) LabelMapping {
	merged := make(LabelMapping, len(m))
	copy(merged, m)
	for _, override := range overrides {
		if idx := merged.indexOf(override.Category); idx >= 0 {
			merged[idx].Labels = override.Labels
			continue
		}
		merged = append(merged, override)
	}
	return merged
}

// CategoryFor returns the first category, in mapping order, that claims any of labels.
func (m LabelMapping) CategoryFor(labels []*github.Label) (Category, bool) {
	for _, entry := range m {
		for _, wanted := range entry.Labels {
			for _, label := range labels {
				if strings.EqualFold(label.GetName(), wanted) {
					return entry.Category, true
				}
			}
		}
	}
	return "", false
}

// Categories lists every category in render order: the mapping's, then pull requests.
func (m LabelMapping) Categories() []Category {
	categories := make([]Category, 0, len(m)+1)
	for _, entry := range m {
		categories = append(categories, entry.Category)
	}
	if m.indexOf(PullRequest) < 0 {
		categories = append(categories, PullRequest)
	}
	return categories
}

func (m LabelMapping) indexOf(category Category) int {
	for i, entry := range m {
		if entry.Category == category {
			return i
		}
	}
	return -1
}

func (h HeaderMapping) Merge(overrides HeaderMapping) HeaderMapping {
	merged := make(HeaderMapping, len(h)+len(overrides))
	for category, header := range h {
		merged[category] = header
	}
	for category, header := range overrides {
		merged[category] = header
	}
	return merged
}

// HeaderFor falls back to "### <category>" for categories without a configured header.
func (h HeaderMapping) HeaderFor(category Category) string {
	if header, ok := h[category]; ok {
		return header
	}
	return "### " + string(category)
}

type Options struct {
	// Merged over DefaultLabelMapping()
	LabelMapping LabelMapping
	// Merged over DefaultHeaderMapping()
	HeaderMapping HeaderMapping

	// Releases published at or before Since are skipped entirely. Zero means no limit.
	Since time.Time

	// Minimum release version to render. Releases whose tags are not semver are always rendered.
	MinVersion *semver.Version
	// Maximum release version to render.
	MaxVersion *semver.Version
	// SkipPrereleases leaves pre-releases and drafts out of the document.
	SkipPrereleases bool
}
