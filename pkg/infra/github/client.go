package github

import (
	"context"
	"io"
	"net/http"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/memari-majid/paperwatch/pkg/domain/interfaces"
	"github.com/memari-majid/paperwatch/pkg/domain/model"
)

type client struct {
	githubClient *github.Client
}

// NewClient creates a new GitHub client authenticated with a personal
// access token (the GITHUB_TOKEN of a workflow run)
func NewClient(token string) interfaces.GitHubClient {
	return &client{
		githubClient: github.NewClient(nil).WithAuthToken(token),
	}
}

// NewAppClient creates a new GitHub client with App installation
// authentication
func NewAppClient(appID, installationID int64, privateKey []byte) (interfaces.GitHubClient, error) {
	itr, err := ghinstallation.New(http.DefaultTransport, appID, installationID, privateKey)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub App transport")
	}

	return &client{
		githubClient: github.NewClient(&http.Client{Transport: itr}),
	}, nil
}

// NewWithClient wraps an existing go-github client, used by tests
func NewWithClient(gh *github.Client) interfaces.GitHubClient {
	return &client{githubClient: gh}
}

// DownloadZipball downloads the source code zipball for a ref
func (c *client) DownloadZipball(ctx context.Context, owner, repo, ref string) ([]byte, error) {
	// Get download URL for zipball, following up to 3 redirects
	url, _, err := c.githubClient.Repositories.GetArchiveLink(ctx, owner, repo, github.Zipball, &github.RepositoryContentGetOptions{
		Ref: ref,
	}, 3)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get zipball download URL",
			goerr.V("owner", owner), goerr.V("repo", repo), goerr.V("ref", ref))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url.String(), nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create download request", goerr.V("url", url.String()))
	}

	// Use the same client transport for authentication
	httpClient := &http.Client{Transport: c.githubClient.Client().Transport}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to download zipball", goerr.V("url", url.String()))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("unexpected status code downloading zipball",
			goerr.V("status", resp.StatusCode), goerr.V("url", url.String()))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read zipball response")
	}

	return data, nil
}

// LatestRelease returns the latest published release of a repository
func (c *client) LatestRelease(ctx context.Context, owner, repo string) (*model.FrameworkRelease, error) {
	rel, _, err := c.githubClient.Repositories.GetLatestRelease(ctx, owner, repo)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get latest release",
			goerr.V("owner", owner), goerr.V("repo", repo))
	}

	release := &model.FrameworkRelease{
		Framework: repo,
		Version:   rel.GetTagName(),
		URL:       rel.GetHTMLURL(),
		Source:    "github",
	}
	if ts := rel.GetPublishedAt(); !ts.IsZero() {
		release.ReleasedAt = ts.Time
	}

	return release, nil
}

// FindOpenIssue returns the number of an open issue with the exact title
// and all given labels, or 0 when none exists
func (c *client) FindOpenIssue(ctx context.Context, owner, repo, title string, labels []string) (int, error) {
	opts := &github.IssueListByRepoOptions{
		State:       "open",
		Labels:      labels,
		ListOptions: github.ListOptions{PerPage: 50},
	}

	issues, _, err := c.githubClient.Issues.ListByRepo(ctx, owner, repo, opts)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list issues",
			goerr.V("owner", owner), goerr.V("repo", repo))
	}

	for _, issue := range issues {
		if issue.GetTitle() == title {
			return issue.GetNumber(), nil
		}
	}

	return 0, nil
}

// CreateIssue opens a new labeled issue and returns its HTML URL
func (c *client) CreateIssue(ctx context.Context, owner, repo, title, body string, labels []string) (string, error) {
	req := &github.IssueRequest{
		Title:  github.Ptr(title),
		Body:   github.Ptr(body),
		Labels: &labels,
	}

	issue, _, err := c.githubClient.Issues.Create(ctx, owner, repo, req)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create issue",
			goerr.V("owner", owner), goerr.V("repo", repo), goerr.V("title", title))
	}

	return issue.GetHTMLURL(), nil
}

// UpdateIssueBody replaces the body of an existing issue
func (c *client) UpdateIssueBody(ctx context.Context, owner, repo string, number int, body string) (string, error) {
	issue, _, err := c.githubClient.Issues.Edit(ctx, owner, repo, number, &github.IssueRequest{
		Body: github.Ptr(body),
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to update issue",
			goerr.V("owner", owner), goerr.V("repo", repo), goerr.V("number", number))
	}

	return issue.GetHTMLURL(), nil
}
