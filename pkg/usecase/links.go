package usecase

import (
	"context"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/memari-majid/paperwatch/pkg/domain/model"
)

// markdownLinkPattern matches [text](url) links
var markdownLinkPattern = regexp.MustCompile(`\[([^\]]+)\]\(([^\)]+)\)`)

type linkChecker struct {
	httpClient  *http.Client
	maxPerFile  int
	requestWait time.Duration
}

// LinkCheckerOption is a functional option for linkChecker configuration
type LinkCheckerOption func(*linkChecker)

// WithLinkHTTPClient overrides the HTTP client, used by tests
func WithLinkHTTPClient(hc *http.Client) LinkCheckerOption {
	return func(c *linkChecker) {
		c.httpClient = hc
	}
}

// WithMaxLinksPerFile caps how many links of one file are verified
func WithMaxLinksPerFile(n int) LinkCheckerOption {
	return func(c *linkChecker) {
		if n > 0 {
			c.maxPerFile = n
		}
	}
}

// WithRequestWait sets the pause between verification requests
func WithRequestWait(d time.Duration) LinkCheckerOption {
	return func(c *linkChecker) {
		c.requestWait = d
	}
}

// NewLinkChecker creates the external link verifier
func NewLinkChecker(opts ...LinkCheckerOption) *linkChecker {
	c := &linkChecker{
		httpClient:  &http.Client{Timeout: 5 * time.Second},
		maxPerFile:  20,
		requestWait: 300 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// VerifyFile checks the external links of one file. Anchors, relative
// paths and non-http URLs are skipped. A missing file yields no results.
func (c *linkChecker) VerifyFile(ctx context.Context, path string) []model.BrokenLink {
	logger := ctxlog.From(ctx)

	content, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("cannot read file for link check", "file", path, "error", err)
		return nil
	}

	links := ExtractLinks(string(content))
	if len(links) > c.maxPerFile {
		links = links[:c.maxPerFile]
	}

	var broken []model.BrokenLink
	for i, link := range links {
		if i > 0 && c.requestWait > 0 {
			select {
			case <-ctx.Done():
				return broken
			case <-time.After(c.requestWait):
			}
		}

		if b := c.verify(ctx, path, link); b != nil {
			broken = append(broken, *b)
		}
	}

	return broken
}

// verify issues a HEAD request and records status >= 400 or a transport
// error as broken
func (c *linkChecker) verify(ctx context.Context, file string, link model.Link) *model.BrokenLink {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, link.URL, nil)
	if err != nil {
		return &model.BrokenLink{File: file, Text: link.Text, URL: link.URL, Error: err.Error()}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &model.BrokenLink{File: file, Text: link.Text, URL: link.URL, Error: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return &model.BrokenLink{File: file, Text: link.Text, URL: link.URL, Status: resp.StatusCode}
	}

	return nil
}

// ExtractLinks returns the external http(s) links of a markdown document
func ExtractLinks(content string) []model.Link {
	matches := markdownLinkPattern.FindAllStringSubmatch(content, -1)

	var links []model.Link
	for _, m := range matches {
		url := m[2]
		if strings.HasPrefix(url, "#") || !strings.HasPrefix(url, "http") {
			continue
		}
		links = append(links, model.Link{Text: m[1], URL: url})
	}

	return links
}
