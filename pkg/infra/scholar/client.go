package scholar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/memari-majid/paperwatch/pkg/domain/model"
)

const defaultBaseURL = "https://api.semanticscholar.org/graph/v1"

// searchFields are the paper attributes requested from the API
const searchFields = "title,authors,year,abstract,url,citationCount,publicationDate"

// Client queries the Semantic Scholar Graph API
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

// New creates a new Semantic Scholar client
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
	return model.SourceSemanticScholar
}

type searchResponse struct {
	Data []paperItem `json:"data"`
}

type paperItem struct {
	Title           string       `json:"title"`
	Abstract        string       `json:"abstract"`
	URL             string       `json:"url"`
	CitationCount   int          `json:"citationCount"`
	PublicationDate string       `json:"publicationDate"`
	Authors         []authorItem `json:"authors"`
}

type authorItem struct {
	Name string `json:"name"`
}

// Search queries the paper search endpoint and maps hits into papers.
// Items without a title or URL are dropped.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]*model.Paper, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", strconv.Itoa(maxResults))
	params.Set("fields", searchFields)

	reqURL := c.baseURL + "/paper/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create semantic scholar request", goerr.V("url", reqURL))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query semantic scholar", goerr.V("query", query))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("unexpected status from semantic scholar",
			goerr.V("status", resp.StatusCode), goerr.V("query", query))
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, goerr.Wrap(err, "failed to decode semantic scholar response")
	}

	papers := make([]*model.Paper, 0, len(sr.Data))
	for _, item := range sr.Data {
		title := strings.TrimSpace(item.Title)
		if title == "" || item.URL == "" {
			continue
		}

		p := &model.Paper{
			Title:     title,
			URL:       item.URL,
			Abstract:  strings.Join(strings.Fields(item.Abstract), " "),
			Citations: item.CitationCount,
			Source:    model.SourceSemanticScholar,
		}

		for _, a := range item.Authors {
			if name := strings.TrimSpace(a.Name); name != "" {
				p.Authors = append(p.Authors, name)
			}
		}

		if item.PublicationDate != "" {
			if ts, err := time.Parse("2006-01-02", item.PublicationDate); err == nil {
				p.Published = ts
			}
		}

		papers = append(papers, p)
	}

	return papers, nil
}
