package model

import (
	"strings"
	"time"
)

// PaperSourceName identifies where a paper record came from
type PaperSourceName string

const (
	SourceArxiv           PaperSourceName = "arXiv"
	SourceSemanticScholar PaperSourceName = "Semantic Scholar"
)

// Paper represents a single paper candidate found by a search
type Paper struct {
	Title     string          `json:"title"`
	Authors   []string        `json:"authors"`
	Published time.Time       `json:"published"`
	Abstract  string          `json:"abstract"`
	URL       string          `json:"url"`
	PDFURL    string          `json:"pdf_url,omitempty"`
	Citations int             `json:"citations,omitempty"`
	Source    PaperSourceName `json:"source"`

	// Relevance is set after LLM scoring, nil until then
	Relevance *Relevance `json:"relevance,omitempty"`
}

// Relevance is the LLM assessment of a paper against the review scope
type Relevance struct {
	Relevant         bool   `json:"relevant"`
	Score            int    `json:"relevance_score"`
	Reason           string `json:"reason"`
	SuggestedSection string `json:"suggested_section"`
}

// NormalizedTitle returns the title lowered and whitespace-collapsed,
// used as a dedup key across sources
func (p *Paper) NormalizedTitle() string {
	return strings.Join(strings.Fields(strings.ToLower(p.Title)), " ")
}

// BestURL prefers the PDF link over the abstract page
func (p *Paper) BestURL() string {
	if p.PDFURL != "" {
		return p.PDFURL
	}
	return p.URL
}

// Score returns the relevance score, or 0 when the paper is unscored
func (p *Paper) Score() int {
	if p.Relevance == nil {
		return 0
	}
	return p.Relevance.Score
}
