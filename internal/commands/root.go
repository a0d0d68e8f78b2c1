package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/solo-io/changelog-generator/changeloggenutils"
	"github.com/solo-io/changelog-generator/cliutils"
	"github.com/solo-io/changelog-generator/configutils"
	"github.com/solo-io/changelog-generator/contextutils"
	"github.com/solo-io/changelog-generator/fileutils"
	"github.com/solo-io/changelog-generator/githubutils"
	"github.com/solo-io/changelog-generator/internal"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const DefaultOutputFile = "./CHANGELOG.md"

// Configure the CLI, including possible commands and input args.
func RootCommand(ctx context.Context, fs afero.Fs, optionsFuncs ...cliutils.OptionsFunc) *cobra.Command {
	globalFlags := &internal.GlobalFlags{}
	repoFlags := &internal.RepoFlags{}
	opts := &generateOptions{
		GlobalFlags: globalFlags,
		RepoFlags:   repoFlags,
	}

	cmd := &cobra.Command{
		Use:   "changelog-generator",
		Short: "Generate a markdown changelog from a GitHub repository's releases and closed issues",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if globalFlags.Verbose {
				contextutils.SetLogLevelFromString("debug")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// flags parsed fine, so further errors are not usage errors
			cmd.SilenceUsage = true
			return doGenerate(ctx, fs, opts, cmd.OutOrStdout())
		},
		SilenceErrors: true,
	}

	globalFlags.AddToFlags(cmd.PersistentFlags())
	repoFlags.AddToFlags(cmd.PersistentFlags())
	cliutils.MustMarkPersistentFlagRequired(cmd, "user")
	cliutils.MustMarkPersistentFlagRequired(cmd, "repository")
	opts.addToFlags(cmd.Flags())

	cmd.AddCommand(LabelsCommand(ctx, fs, globalFlags, repoFlags))

	cliutils.ApplyOptions(cmd, optionsFuncs)
	return cmd
}

type generateOptions struct {
	*internal.GlobalFlags
	*internal.RepoFlags

	outputFile      string
	stdout          bool
	since           time.Time
	minVersion      *semver.Version
	maxVersion      *semver.Version
	skipPrereleases bool
}

func (o *generateOptions) addToFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&o.outputFile, "file", "f", DefaultOutputFile, "file to write the changelog to")
	flags.BoolVar(&o.stdout, "stdout", false, "print the changelog instead of writing it to a file")
	flags.Var(&cliutils.TimeValue{Time: &o.since}, "since", "skip releases published at or before this time (RFC3339 or YYYY-MM-DD)")
	flags.Var(&cliutils.SemverValue{Version: &o.minVersion}, "min-version", "leave out releases below this version")
	flags.Var(&cliutils.SemverValue{Version: &o.maxVersion}, "max-version", "leave out releases above this version")
	flags.BoolVar(&o.skipPrereleases, "skip-prereleases", false, "leave out pre-releases and drafts")
}

func doGenerate(ctx context.Context, fs afero.Fs, opts *generateOptions, out io.Writer) error {
	ctx = contextutils.WithLoggerValues(ctx, "repository", opts.User+"/"+opts.Repository)
	logger := contextutils.LoggerFrom(ctx)

	client, err := newRepoClient(ctx, opts.RepoFlags)
	if err != nil {
		return err
	}
	generatorOpts, err := loadGeneratorOptions(ctx, fs, opts.RepoFlags)
	if err != nil {
		return err
	}
	generatorOpts.Since = opts.since
	generatorOpts.MinVersion = opts.minVersion
	generatorOpts.MaxVersion = opts.maxVersion
	generatorOpts.SkipPrereleases = opts.skipPrereleases

	changelog, err := changeloggenutils.NewChangelogGenerator(client, generatorOpts).Generate(ctx)
	if err != nil {
		return err
	}

	if opts.stdout {
		_, err = fmt.Fprint(out, changelog)
		return err
	}
	outputFile, err := fileutils.ExpandPath(opts.outputFile)
	if err != nil {
		return err
	}
	if err := fileutils.WriteFileString(fs, outputFile, changelog); err != nil {
		return err
	}
	logger.Infow("Wrote changelog", zap.String("file", outputFile))
	return nil
}

func newRepoClient(ctx context.Context, flags *internal.RepoFlags) (githubutils.RepoClient, error) {
	owner, repo, err := githubutils.ParseRepository(flags.User + "/" + flags.Repository)
	if err != nil {
		return nil, err
	}
	token := flags.Token
	if token == "" {
		token, _ = githubutils.GetGithubToken()
	}
	client, err := githubutils.GetClientForHost(ctx, token, flags.ApiUrl)
	if err != nil {
		return nil, err
	}
	return githubutils.NewRepoClient(client, owner, repo), nil
}

func loadGeneratorOptions(ctx context.Context, fs afero.Fs, flags *internal.RepoFlags) (changeloggenutils.Options, error) {
	if flags.ConfigFile == "" {
		return changeloggenutils.Options{}, nil
	}
	configFile, err := fileutils.ExpandPath(flags.ConfigFile)
	if err != nil {
		return changeloggenutils.Options{}, err
	}
	config, err := configutils.LoadChangelogConfig(ctx, fs, configFile)
	if err != nil {
		return changeloggenutils.Options{}, err
	}
	return config.ToOptions(), nil
}
