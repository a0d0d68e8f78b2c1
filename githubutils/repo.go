package githubutils

import (
	"context"
	"net/url"
	"os"
	"strings"

	"github.com/google/go-github/v32/github"
	"github.com/rotisserie/eris"
	"github.com/solo-io/changelog-generator/contextutils"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const (
	GITHUB_TOKEN = "GITHUB_TOKEN"

	// GitHub expects "Authorization: token <token>" for personal access tokens
	AUTH_TOKEN_TYPE = "token"

	MAX_GITHUB_ITEMS_PER_PAGE = 100
)

var (
	InvalidConfigurationError = eris.New("invalid repository configuration")

	InvalidRepositoryError = func(identity string) error {
		return eris.Wrapf(InvalidConfigurationError, "%q is not of the form owner/repo", identity)
	}
	InvalidApiUrlError = func(err error, apiUrl string) error {
		return eris.Wrapf(InvalidConfigurationError, "invalid api url %q: %v", apiUrl, err)
	}
)

// ParseRepository splits an "owner/repo" identity.
func ParseRepository(identity string) (owner, repo string, err error) {
	parts := strings.SplitN(identity, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", InvalidRepositoryError(identity)
	}
	return parts[0], parts[1], nil
}

func GetGithubToken() (string, error) {
	token, found := os.LookupEnv(GITHUB_TOKEN)
	if !found || token == "" {
		return "", eris.Errorf("Could not find %s in environment.", GITHUB_TOKEN)
	}
	return token, nil
}

// GetClient returns a client authenticated with token. An empty token yields an
// unauthenticated client, which GitHub rate limits much more strictly.
func GetClient(ctx context.Context, token string) *github.Client {
	if token == "" {
		contextutils.LoggerFrom(ctx).Warnw("No GitHub token provided. Private repositories will be unavailable and a strict rate limit will be enforced.")
		return github.NewClient(nil)
	}
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token, TokenType: AUTH_TOKEN_TYPE},
	)
	tc := oauth2.NewClient(ctx, ts)
	return github.NewClient(tc)
}

// GetClientWithOrWithoutToken builds a client from the GITHUB_TOKEN environment variable, if set.
func GetClientWithOrWithoutToken(ctx context.Context) *github.Client {
	token, err := GetGithubToken()
	if err != nil {
		contextutils.LoggerFrom(ctx).Debugw("falling back to unauthenticated client", zap.Error(err))
	}
	return GetClient(ctx, token)
}

// GetClientForHost is GetClient against a different API root, such as a GitHub
// Enterprise installation ("https://github.example.com/api/v3").
func GetClientForHost(ctx context.Context, token, apiUrl string) (*github.Client, error) {
	client := GetClient(ctx, token)
	if apiUrl == "" {
		return client, nil
	}
	baseUrl, err := url.Parse(apiUrl)
	if err != nil {
		return nil, InvalidApiUrlError(err, apiUrl)
	}
	if baseUrl.Scheme == "" || baseUrl.Host == "" {
		return nil, InvalidApiUrlError(eris.New("missing scheme or host"), apiUrl)
	}
	if !strings.HasSuffix(baseUrl.Path, "/") {
		baseUrl.Path += "/"
	}
	client.BaseURL = baseUrl
	return client, nil
}
