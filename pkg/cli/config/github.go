package config

import (
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/memari-majid/paperwatch/pkg/domain/interfaces"
	infragithub "github.com/memari-majid/paperwatch/pkg/infra/github"
	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub configuration. Token auth is what workflow runs use;
// App auth is for the long-running serve mode.
type GitHub struct {
	Token          string
	Repository     string // "owner/name"
	WebhookSecret  string
	AppID          int64
	InstallationID int64
	PrivateKeyPath string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub access token",
			Destination: &c.Token,
			Sources:     cli.EnvVars("PAPERWATCH_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-repository",
			Usage:       "Repository in owner/name form",
			Value:       "memari-majid/Agentic-AI-Systems",
			Destination: &c.Repository,
			Sources:     cli.EnvVars("PAPERWATCH_GITHUB_REPOSITORY", "GITHUB_REPOSITORY"),
		},
		&cli.StringFlag{
			Name:        "github-webhook-secret",
			Usage:       "GitHub webhook secret (serve mode)",
			Destination: &c.WebhookSecret,
			Sources:     cli.EnvVars("PAPERWATCH_GITHUB_WEBHOOK_SECRET"),
		},
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID (App auth)",
			Destination: &c.AppID,
			Sources:     cli.EnvVars("PAPERWATCH_GITHUB_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "github-installation-id",
			Usage:       "GitHub App installation ID (App auth)",
			Destination: &c.InstallationID,
			Sources:     cli.EnvVars("PAPERWATCH_GITHUB_INSTALLATION_ID"),
		},
		&cli.StringFlag{
			Name:        "github-private-key",
			Usage:       "Path to GitHub App private key (App auth)",
			Destination: &c.PrivateKeyPath,
			Sources:     cli.EnvVars("PAPERWATCH_GITHUB_PRIVATE_KEY"),
		},
	}
}

// OwnerRepo splits the repository into owner and name
func (c *GitHub) OwnerRepo() (string, string, error) {
	owner, repo, ok := strings.Cut(c.Repository, "/")
	if !ok || owner == "" || repo == "" {
		return "", "", goerr.New("repository must be owner/name", goerr.V("repository", c.Repository))
	}
	return owner, repo, nil
}

// Client creates the GitHub client, preferring App auth when configured
func (c *GitHub) Client() (interfaces.GitHubClient, error) {
	if c.AppID != 0 && c.InstallationID != 0 && c.PrivateKeyPath != "" {
		key, err := os.ReadFile(c.PrivateKeyPath)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read GitHub App private key",
				goerr.V("path", c.PrivateKeyPath))
		}
		return infragithub.NewAppClient(c.AppID, c.InstallationID, key)
	}

	if c.Token == "" {
		return nil, goerr.New("either a GitHub token or App credentials are required")
	}

	return infragithub.NewClient(c.Token), nil
}
