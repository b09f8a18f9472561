package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/memari-majid/paperwatch/pkg/domain/interfaces"
	"github.com/memari-majid/paperwatch/pkg/domain/model"
	"golang.org/x/sync/errgroup"
)

// relevantTerms filters obviously off-topic search hits before any LLM
// scoring is spent on them
var relevantTerms = []string{
	"agent", "agentic", "autonomous", "llm", "language model",
	"multi-agent", "reasoning", "planning", "tool",
}

type discovery struct {
	sources     []interfaces.PaperSource
	concurrency int
	now         interfaces.Clock
}

// DiscoveryOption is a functional option for discovery configuration
type DiscoveryOption func(*discovery)

// WithConcurrency bounds the number of simultaneous search requests
func WithConcurrency(n int) DiscoveryOption {
	return func(d *discovery) {
		if n > 0 {
			d.concurrency = n
		}
	}
}

// WithClock overrides the time source, used by tests
func WithClock(clock interfaces.Clock) DiscoveryOption {
	return func(d *discovery) {
		d.now = clock
	}
}

// NewDiscovery creates the multi-source paper search
func NewDiscovery(sources []interfaces.PaperSource, opts ...DiscoveryOption) *discovery {
	d := &discovery{
		sources:     sources,
		concurrency: 4,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SearchAll runs every query against every source with bounded concurrency.
// A failing query is logged and contributes no papers; the merged result is
// deduplicated by URL and normalized title, filtered by recency window and
// topical keywords, and ordered by publication date descending. Results are
// merged in source/query declaration order, not completion order, so the
// surviving record of a cross-source duplicate is stable across runs.
func (d *discovery) SearchAll(ctx context.Context, queries []string, maxPerQuery, daysBack int) []*model.Paper {
	logger := ctxlog.From(ctx)
	cutoff := d.now().AddDate(0, 0, -daysBack)

	// One slot per (source, query) task; each goroutine writes only its own
	results := make([][]*model.Paper, len(d.sources)*len(queries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)

	for i, src := range d.sources {
		for j, query := range queries {
			slot := i*len(queries) + j
			g.Go(func() error {
				papers, err := src.Search(ctx, query, maxPerQuery)
				if err != nil {
					// Partial results win over a failed run
					logger.Warn("search query failed",
						"source", src.Name(), "query", query, "error", err)
					return nil
				}
				results[slot] = papers
				return nil
			})
		}
	}

	// Errors are swallowed per query, Wait only observes ctx cancellation
	_ = g.Wait()

	var all []*model.Paper
	for _, papers := range results {
		all = append(all, papers...)
	}

	filtered := filterPapers(all, cutoff)
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Published.After(filtered[j].Published)
	})

	logger.Info("paper discovery finished",
		"raw", len(all), "kept", len(filtered),
		"queries", len(queries), "sources", len(d.sources))

	return filtered
}

// filterPapers dedups by URL and normalized title and drops papers that are
// too old or whose title has no topical keyword
func filterPapers(papers []*model.Paper, cutoff time.Time) []*model.Paper {
	seenURL := make(map[string]bool, len(papers))
	seenTitle := make(map[string]bool, len(papers))

	var kept []*model.Paper
	for _, p := range papers {
		if seenURL[p.URL] || seenTitle[p.NormalizedTitle()] {
			continue
		}
		if !p.Published.IsZero() && p.Published.Before(cutoff) {
			continue
		}
		if !titleIsRelevant(p.Title) {
			continue
		}

		seenURL[p.URL] = true
		seenTitle[p.NormalizedTitle()] = true
		kept = append(kept, p)
	}

	return kept
}

func titleIsRelevant(title string) bool {
	lowered := strings.ToLower(title)
	for _, term := range relevantTerms {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}
