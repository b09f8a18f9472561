package model

import "time"

// Findings aggregates the results of one update run. It is what gets
// rendered into update_report.md and serialized to update_suggestions.json.
type Findings struct {
	RunID              string             `json:"run_id"`
	Timestamp          time.Time          `json:"timestamp"`
	NewPapers          []*Paper           `json:"new_papers"`
	FrameworkUpdates   []FrameworkRelease `json:"framework_updates"`
	BrokenLinks        []BrokenLink       `json:"broken_links"`
	ContentSuggestions []string           `json:"content_suggestions"`
}

// Empty reports whether the run produced nothing actionable
func (f *Findings) Empty() bool {
	return len(f.NewPapers) == 0 &&
		len(f.FrameworkUpdates) == 0 &&
		len(f.BrokenLinks) == 0 &&
		len(f.ContentSuggestions) == 0
}
