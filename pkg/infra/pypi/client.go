package pypi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/memari-majid/paperwatch/pkg/domain/model"
)

const defaultBaseURL = "https://pypi.org"

// Client queries the PyPI JSON API for package metadata
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option is a functional option for Client configuration
type Option func(*Client)

// WithBaseURL overrides the API endpoint, mainly for tests
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a new PyPI client
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type packageResponse struct {
	Info struct {
		Version     string            `json:"version"`
		ProjectURLs map[string]string `json:"project_urls"`
	} `json:"info"`
	Releases map[string][]struct {
		UploadTime string `json:"upload_time"`
	} `json:"releases"`
}

// LatestVersion returns the latest published version of a package together
// with its first upload time and homepage when available.
func (c *Client) LatestVersion(ctx context.Context, pkg string) (*model.FrameworkRelease, error) {
	reqURL := fmt.Sprintf("%s/pypi/%s/json", c.baseURL, pkg)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create pypi request", goerr.V("package", pkg))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query pypi", goerr.V("package", pkg))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("unexpected status from pypi",
			goerr.V("status", resp.StatusCode), goerr.V("package", pkg))
	}

	var pr packageResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, goerr.Wrap(err, "failed to decode pypi response", goerr.V("package", pkg))
	}

	if pr.Info.Version == "" {
		return nil, goerr.New("pypi response has no version", goerr.V("package", pkg))
	}

	release := &model.FrameworkRelease{
		Framework: pkg,
		Version:   pr.Info.Version,
		URL:       pr.Info.ProjectURLs["Homepage"],
		Source:    "pypi",
	}

	if files := pr.Releases[pr.Info.Version]; len(files) > 0 {
		// PyPI upload times have no timezone suffix
		if ts, err := time.Parse("2006-01-02T15:04:05", files[0].UploadTime); err == nil {
			release.ReleasedAt = ts
		}
	}

	return release, nil
}
