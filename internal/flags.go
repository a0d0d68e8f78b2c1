package internal

import "github.com/spf13/pflag"

type GlobalFlags struct {
	Verbose bool
}

func (g *GlobalFlags) AddToFlags(flags *pflag.FlagSet) {
	flags.BoolVarP(&g.Verbose, "verbose", "v", false, "Enable verbose logging")
}

// RepoFlags select the repository and how to reach it. Shared by every command.
type RepoFlags struct {
	User       string
	Repository string
	Token      string
	ApiUrl     string
	ConfigFile string
}

func (r *RepoFlags) AddToFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&r.User, "user", "u", "", "owner of the repository")
	flags.StringVarP(&r.Repository, "repository", "r", "", "name of the repository")
	flags.StringVarP(&r.Token, "token", "t", "", "GitHub API token, defaults to $GITHUB_TOKEN")
	flags.StringVar(&r.ApiUrl, "api-url", "", "GitHub API root for enterprise installations, e.g. https://github.example.com/api/v3")
	flags.StringVar(&r.ConfigFile, "config", "", "category mapping file (.yaml, .yml, .json or .toml)")
}
