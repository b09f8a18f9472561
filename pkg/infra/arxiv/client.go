package arxiv

import (
	"context"
	"encoding/xml"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/memari-majid/paperwatch/pkg/domain/model"
)

const defaultBaseURL = "http://export.arxiv.org/api/query"

// Client queries the arXiv Atom API
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

// New creates a new arXiv client
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the source identifier used in findings
func (c *Client) Name() model.PaperSourceName {
	return model.SourceArxiv
}

// feed is the subset of the arXiv Atom response the agent needs
type feed struct {
	Entries []entry `xml:"entry"`
}

type entry struct {
	ID        string   `xml:"id"`
	Title     string   `xml:"title"`
	Published string   `xml:"published"`
	Summary   string   `xml:"summary"`
	Authors   []author `xml:"author"`
	Links     []link   `xml:"link"`
}

type author struct {
	Name string `xml:"name"`
}

type link struct {
	Href  string `xml:"href,attr"`
	Rel   string `xml:"rel,attr"`
	Title string `xml:"title,attr"`
}

// Search queries arXiv for the most recently submitted papers matching the
// query and decodes the Atom feed into papers.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]*model.Paper, error) {
	params := url.Values{}
	params.Set("search_query", "all:"+query)
	params.Set("start", "0")
	params.Set("max_results", strconv.Itoa(maxResults))
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")

	reqURL := c.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create arxiv request", goerr.V("url", reqURL))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query arxiv", goerr.V("query", query))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("unexpected status from arxiv",
			goerr.V("status", resp.StatusCode), goerr.V("query", query))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read arxiv response")
	}

	return parseFeed(body)
}

// parseFeed converts an Atom feed document into papers. Entries missing a
// title or ID are skipped rather than failing the whole feed.
func parseFeed(data []byte) ([]*model.Paper, error) {
	var f feed
	if err := xml.Unmarshal(data, &f); err != nil {
		return nil, goerr.Wrap(err, "failed to parse arxiv feed")
	}

	papers := make([]*model.Paper, 0, len(f.Entries))
	for _, e := range f.Entries {
		title := normalizeSpace(e.Title)
		if title == "" || e.ID == "" {
			continue
		}

		p := &model.Paper{
			Title:    title,
			URL:      strings.TrimSpace(e.ID),
			Abstract: normalizeSpace(e.Summary),
			Source:   model.SourceArxiv,
		}

		for _, a := range e.Authors {
			if name := strings.TrimSpace(a.Name); name != "" {
				p.Authors = append(p.Authors, name)
			}
		}

		for _, l := range e.Links {
			if l.Title == "pdf" {
				p.PDFURL = l.Href
				break
			}
		}

		if ts, err := time.Parse(time.RFC3339, strings.TrimSpace(e.Published)); err == nil {
			p.Published = ts
		}

		papers = append(papers, p)
	}

	return papers, nil
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
