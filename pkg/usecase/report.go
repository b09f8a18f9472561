package usecase

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
	"time"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"
	"github.com/memari-majid/paperwatch/pkg/domain/interfaces"
	"github.com/memari-majid/paperwatch/pkg/domain/model"
)

//go:embed templates/update_report.md.tmpl
var updateReportTemplate string

//go:embed templates/new_papers.md.tmpl
var newPapersTemplate string

// reportedPapers caps how many papers appear in the report body
const reportedPapers = 10

// reportedLinks caps how many broken links appear in the report body
const reportedLinks = 10

var templateFuncs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"date": func(ts time.Time) string {
		return ts.Format("2006-01-02")
	},
	"truncate": truncateString,
	"authors":  formatAuthors,
}

// truncateString cuts s to at most n bytes without splitting a UTF-8 rune
func truncateString(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// formatAuthors renders up to three names, appending an "et al." note for
// longer author lists
func formatAuthors(authors []string) string {
	if len(authors) <= 3 {
		return strings.Join(authors, ", ")
	}
	return fmt.Sprintf("%s et al. (%d authors)", strings.Join(authors[:3], ", "), len(authors))
}

type reporter struct {
	updateTmpl *template.Template
	papersTmpl *template.Template
	now        interfaces.Clock
}

// ReporterOption is a functional option for reporter configuration
type ReporterOption func(*reporter)

// WithReporterClock overrides the time source, used by tests
func WithReporterClock(clock interfaces.Clock) ReporterOption {
	return func(r *reporter) {
		r.now = clock
	}
}

// NewReporter creates the markdown/JSON report renderer
func NewReporter(opts ...ReporterOption) (*reporter, error) {
	updateTmpl, err := template.New("update_report").Funcs(templateFuncs).Parse(updateReportTemplate)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse update report template")
	}

	papersTmpl, err := template.New("new_papers").Funcs(templateFuncs).Parse(newPapersTemplate)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse papers report template")
	}

	r := &reporter{
		updateTmpl: updateTmpl,
		papersTmpl: papersTmpl,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// RenderUpdateReport renders the full run report (update_report.md)
func (r *reporter) RenderUpdateReport(findings *model.Findings) (string, error) {
	topPapers := findings.NewPapers
	if len(topPapers) > reportedPapers {
		topPapers = topPapers[:reportedPapers]
	}

	brokenLinks := findings.BrokenLinks
	if len(brokenLinks) > reportedLinks {
		brokenLinks = brokenLinks[:reportedLinks]
	}

	topPaperCount := len(findings.NewPapers)
	if topPaperCount > 5 {
		topPaperCount = 5
	}

	data := map[string]any{
		"Findings":      findings,
		"TopPapers":     topPapers,
		"BrokenLinks":   brokenLinks,
		"TopPaperCount": topPaperCount,
		"GeneratedAt":   findings.Timestamp.UTC().Format("2006-01-02 15:04:05 UTC"),
	}

	var buf bytes.Buffer
	if err := r.updateTmpl.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to render update report")
	}

	return buf.String(), nil
}

// RenderPaperReport renders the discovery-only review checklist
// (new_papers.md)
func (r *reporter) RenderPaperReport(papers []*model.Paper, daysBack int) (string, error) {
	data := map[string]any{
		"Papers":     papers,
		"DaysBack":   daysBack,
		"SearchDate": r.now().Format("2006-01-02"),
	}

	var buf bytes.Buffer
	if err := r.papersTmpl.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to render papers report")
	}

	return buf.String(), nil
}

// RenderFindingsJSON serializes the findings (update_suggestions.json)
func (r *reporter) RenderFindingsJSON(findings *model.Findings) ([]byte, error) {
	data, err := json.MarshalIndent(findings, "", "  ")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal findings")
	}
	return data, nil
}
