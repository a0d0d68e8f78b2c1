package configutils

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/rotisserie/eris"
	"github.com/solo-io/changelog-generator/changeloggenutils"
	"github.com/solo-io/changelog-generator/contextutils"
	"github.com/solo-io/changelog-generator/fileutils"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

var (
	InvalidConfigError = eris.New("invalid changelog config")

	EmptyCategoryNameError = func(idx int) error {
		return eris.Errorf("category %d has no name", idx)
	}
	DuplicateCategoryError = func(name string) error {
		return eris.Errorf("category %q is listed more than once", name)
	}
	EmptyCategoryError = func(name string) error {
		return eris.Errorf("category %q has neither labels nor a header", name)
	}
)

// CategoryConfig configures one changelog section. Labels are matched
// case-insensitively; a category listed with only a header keeps its labels.
type CategoryConfig struct {
	Name   string   `json:"name" toml:"name"`
	Labels []string `json:"labels,omitempty" toml:"labels"`
	Header string   `json:"header,omitempty" toml:"header"`
}

type ChangelogConfig struct {
	Categories []CategoryConfig `json:"categories" toml:"categories"`
}

// LoadChangelogConfig reads and validates a config file. The format is chosen by the
// file extension: .yaml, .yml, .json or .toml.
func LoadChangelogConfig(ctx context.Context, fs afero.Fs, path string) (*ChangelogConfig, error) {
	contextutils.LoggerFrom(ctx).Debugw("Loading changelog config", zap.String("path", path))
	var config ChangelogConfig
	if err := fileutils.ReadFileInto(fs, path, &config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, eris.Wrapf(err, "invalid config file %s", path)
	}
	return &config, nil
}

// Validate reports every problem in the config at once.
func (c *ChangelogConfig) Validate() error {
	var result *multierror.Error
	seen := map[string]bool{}
	for idx, category := range c.Categories {
		if category.Name == "" {
			result = multierror.Append(result, EmptyCategoryNameError(idx))
			continue
		}
		if seen[category.Name] {
			result = multierror.Append(result, DuplicateCategoryError(category.Name))
		}
		seen[category.Name] = true
		if len(category.Labels) == 0 && category.Header == "" {
			result = multierror.Append(result, EmptyCategoryError(category.Name))
		}
	}
	if result == nil {
		return nil
	}
	result.ErrorFormat = formatErrors
	return eris.Wrap(InvalidConfigError, result.Error())
}

func formatErrors(errs []error) string {
	msg := fmt.Sprintf("%d problem(s)", len(errs))
	for _, err := range errs {
		msg += "; " + err.Error()
	}
	return msg
}

// ToOptions returns generator options holding the configured mappings, in file order.
func (c *ChangelogConfig) ToOptions() changeloggenutils.Options {
	opts := changeloggenutils.Options{
		HeaderMapping: changeloggenutils.HeaderMapping{},
	}
	for _, category := range c.Categories {
		name := changeloggenutils.Category(category.Name)
		if len(category.Labels) > 0 {
			opts.LabelMapping = append(opts.LabelMapping, changeloggenutils.CategoryLabels{
				Category: name,
				Labels:   category.Labels,
			})
		}
		if category.Header != "" {
			opts.HeaderMapping[name] = category.Header
		}
	}
	return opts
}
