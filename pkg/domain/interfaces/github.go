package interfaces

import (
	"context"
	"time"

	"github.com/memari-majid/paperwatch/pkg/domain/model"
)

// GitHubClient defines operations for interacting with GitHub API
type GitHubClient interface {
	// DownloadZipball downloads the source code zipball for a ref
	// (branch, tag or commit SHA)
	DownloadZipball(ctx context.Context, owner, repo, ref string) ([]byte, error)

	// LatestRelease returns the latest published release of a repository
	LatestRelease(ctx context.Context, owner, repo string) (*model.FrameworkRelease, error)

	// FindOpenIssue returns the number of an open issue with the exact
	// title and all given labels, or 0 when none exists
	FindOpenIssue(ctx context.Context, owner, repo, title string, labels []string) (int, error)

	// CreateIssue opens a new labeled issue and returns its HTML URL
	CreateIssue(ctx context.Context, owner, repo, title, body string, labels []string) (string, error)

	// UpdateIssueBody replaces the body of an existing issue and returns
	// its HTML URL
	UpdateIssueBody(ctx context.Context, owner, repo string, number int, body string) (string, error)
}

// PaperSource searches an external index for papers matching a query
type PaperSource interface {
	Name() model.PaperSourceName
	Search(ctx context.Context, query string, maxResults int) ([]*model.Paper, error)
}

// RegistryClient looks up the latest published version of a package
type RegistryClient interface {
	LatestVersion(ctx context.Context, pkg string) (*model.FrameworkRelease, error)
}

// ArtifactStore uploads run artifacts to durable storage
type ArtifactStore interface {
	// Upload stores data under key and returns a locator for it
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Notifier delivers a run summary to an external channel
type Notifier interface {
	NotifyRun(ctx context.Context, findings *model.Findings, issueURL string) error
}

// Clock abstracts time for deterministic tests of date-stamped output
type Clock func() time.Time
