package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/google/go-github/v32/github"
	"github.com/solo-io/changelog-generator/changeloggenutils"
	"github.com/solo-io/changelog-generator/internal"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"google.golang.org/api/iterator"
)

const unmappedCategory = "-"

func LabelsCommand(ctx context.Context, fs afero.Fs, globalFlags *internal.GlobalFlags, repoFlags *internal.RepoFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "labels",
		Short: "List repository labels and the changelog category each one maps to",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return doLabels(ctx, fs, repoFlags, cmd.OutOrStdout())
		},
	}
	return cmd
}

func doLabels(ctx context.Context, fs afero.Fs, flags *internal.RepoFlags, out io.Writer) error {
	client, err := newRepoClient(ctx, flags)
	if err != nil {
		return err
	}
	opts, err := loadGeneratorOptions(ctx, fs, flags)
	if err != nil {
		return err
	}
	mapping := changeloggenutils.DefaultLabelMapping().Merge(opts.LabelMapping)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "LABEL\tCATEGORY")
	labels := client.ListLabels(ctx)
	for {
		label, err := labels.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return err
		}
		category := unmappedCategory
		if c, ok := mapping.CategoryFor([]*github.Label{label}); ok {
			category = string(c)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\n", label.GetName(), category)
	}
	return w.Flush()
}
