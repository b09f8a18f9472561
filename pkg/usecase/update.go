package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/memari-majid/paperwatch/pkg/domain/interfaces"
	"github.com/memari-majid/paperwatch/pkg/domain/model"
)

// excerptChars bounds how much of each watched file seeds the suggestion
// prompt
const excerptChars = 5000

// UpdaterDeps bundles the collaborators of an update run
type UpdaterDeps struct {
	Sources   []interfaces.PaperSource
	Scorer    interfaces.RelevanceScorer
	Suggester interfaces.Suggester
	Registry  interfaces.RegistryClient
	GitHub    interfaces.GitHubClient

	// Store and Notifier are optional post-processing targets
	Store    interfaces.ArtifactStore
	Notifier interfaces.Notifier
}

// UpdaterConfig holds the run parameters
type UpdaterConfig struct {
	Watch     *model.WatchConfig
	RootDir   string // repository checkout the watched files live in
	OutputDir string // where update_report.md / update_suggestions.json go
	Owner     string
	Repo      string

	DaysBack        int // recency window for paper discovery
	MaxPerQuery     int // search results requested per query
	TopPapers       int // cap on papers kept after scoring
	SuggestionCount int // suggestions requested from the LLM
	Concurrency     int // simultaneous search requests

	FileIssue bool // create/update the summary issue after the run
}

type updater struct {
	deps UpdaterDeps
	cfg  UpdaterConfig

	discovery *discovery
	checker   *frameworkChecker
	links     *linkChecker
	reporter  *reporter
	now       interfaces.Clock
}

// UpdaterOption is a functional option for updater configuration
type UpdaterOption func(*updater)

// WithUpdaterClock overrides the time source, used by tests
func WithUpdaterClock(clock interfaces.Clock) UpdaterOption {
	return func(u *updater) {
		u.now = clock
	}
}

// WithLinkChecker replaces the link verifier, used by tests
func WithLinkChecker(lc *linkChecker) UpdaterOption {
	return func(u *updater) {
		u.links = lc
	}
}

// NewUpdater wires one full update cycle
func NewUpdater(deps UpdaterDeps, cfg UpdaterConfig, opts ...UpdaterOption) (*updater, error) {
	if cfg.Watch == nil {
		cfg.Watch = model.DefaultWatchConfig()
	}
	if cfg.DaysBack <= 0 {
		cfg.DaysBack = 180
	}
	if cfg.MaxPerQuery <= 0 {
		cfg.MaxPerQuery = 3
	}
	if cfg.TopPapers <= 0 {
		cfg.TopPapers = 15
	}
	if cfg.SuggestionCount <= 0 {
		cfg.SuggestionCount = 5
	}

	reporter, err := NewReporter()
	if err != nil {
		return nil, err
	}

	u := &updater{
		deps:     deps,
		cfg:      cfg,
		checker:  NewFrameworkChecker(deps.Registry, deps.GitHub),
		links:    NewLinkChecker(),
		reporter: reporter,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}

	// The discovery cutoff must share whatever clock the run uses
	u.discovery = NewDiscovery(deps.Sources, WithConcurrency(cfg.Concurrency), WithClock(u.now))

	return u, nil
}

// Run executes the full update cycle: discovery, scoring, framework checks,
// link verification, suggestions, report rendering, and publication.
func (u *updater) Run(ctx context.Context) (*model.Findings, error) {
	logger := ctxlog.From(ctx)

	findings := &model.Findings{
		RunID:     uuid.NewString(),
		Timestamp: u.now(),
	}

	logger.Info("starting update run",
		"run_id", findings.RunID,
		"queries", len(u.cfg.Watch.Queries),
		"days_back", u.cfg.DaysBack)

	// 1. Paper discovery and relevance scoring
	candidates := u.discovery.SearchAll(ctx, u.cfg.Watch.Queries, u.cfg.MaxPerQuery, u.cfg.DaysBack)
	findings.NewPapers = u.scorePapers(ctx, candidates)
	logger.Info("relevance scoring finished",
		"candidates", len(candidates), "relevant", len(findings.NewPapers))

	// 2. Framework release checks
	findings.FrameworkUpdates = u.checker.Check(ctx, u.cfg.Watch.Frameworks)
	logger.Info("framework checks finished", "releases", len(findings.FrameworkUpdates))

	// 3. Link verification of watched files
	for _, file := range u.cfg.Watch.Files {
		path := filepath.Join(u.cfg.RootDir, file)
		broken := u.links.VerifyFile(ctx, path)
		for _, b := range broken {
			b.File = file // report repo-relative paths
			findings.BrokenLinks = append(findings.BrokenLinks, b)
		}
	}
	logger.Info("link verification finished", "broken", len(findings.BrokenLinks))

	// 4. Content suggestions
	if u.deps.Suggester != nil {
		suggestions, err := u.deps.Suggester.Suggest(ctx, u.buildExcerpts(), u.cfg.SuggestionCount)
		if err != nil {
			logger.Warn("suggestion generation failed", "error", err)
		} else {
			findings.ContentSuggestions = suggestions
		}
	}

	// 5. Local artifacts always come first; publication failures must not
	// lose them
	if err := u.writeArtifacts(ctx, findings); err != nil {
		return findings, err
	}

	if err := u.publish(ctx, findings); err != nil {
		return findings, err
	}

	logger.Info("update run complete", "run_id", findings.RunID, "empty", findings.Empty())
	return findings, nil
}

// scorePapers runs relevance scoring over the candidates, keeps the ones
// marked relevant, orders by score descending and applies the top-N cap
func (u *updater) scorePapers(ctx context.Context, candidates []*model.Paper) []*model.Paper {
	logger := ctxlog.From(ctx)

	var relevant []*model.Paper
	for _, paper := range candidates {
		relevance, err := u.deps.Scorer.Score(ctx, paper)
		if err != nil {
			logger.Warn("relevance scoring failed", "title", paper.Title, "error", err)
			continue
		}
		if !relevance.Relevant {
			continue
		}
		paper.Relevance = relevance
		relevant = append(relevant, paper)
	}

	sort.SliceStable(relevant, func(i, j int) bool {
		return relevant[i].Score() > relevant[j].Score()
	})

	if len(relevant) > u.cfg.TopPapers {
		relevant = relevant[:u.cfg.TopPapers]
	}

	return relevant
}

// buildExcerpts concatenates bounded excerpts of the watched files as
// context for the suggestion prompt
func (u *updater) buildExcerpts() string {
	var sb strings.Builder
	for _, file := range u.cfg.Watch.Files {
		content, err := os.ReadFile(filepath.Join(u.cfg.RootDir, file))
		if err != nil {
			continue
		}
		excerpt := truncateString(string(content), excerptChars)
		fmt.Fprintf(&sb, "%s excerpt:\n%s\n\n", file, excerpt)
	}
	return sb.String()
}

// writeArtifacts renders the report and findings JSON into the output
// directory
func (u *updater) writeArtifacts(ctx context.Context, findings *model.Findings) error {
	logger := ctxlog.From(ctx)

	if err := os.MkdirAll(u.cfg.OutputDir, 0755); err != nil {
		return goerr.Wrap(err, "failed to create output directory", goerr.V("dir", u.cfg.OutputDir))
	}

	report, err := u.reporter.RenderUpdateReport(findings)
	if err != nil {
		return err
	}

	reportPath := filepath.Join(u.cfg.OutputDir, "update_report.md")
	if err := os.WriteFile(reportPath, []byte(report), 0644); err != nil {
		return goerr.Wrap(err, "failed to write report", goerr.V("path", reportPath))
	}

	data, err := u.reporter.RenderFindingsJSON(findings)
	if err != nil {
		return err
	}

	jsonPath := filepath.Join(u.cfg.OutputDir, "update_suggestions.json")
	if err := os.WriteFile(jsonPath, data, 0644); err != nil {
		return goerr.Wrap(err, "failed to write findings", goerr.V("path", jsonPath))
	}

	logger.Info("artifacts written", "report", reportPath, "findings", jsonPath)

	if u.deps.Store != nil {
		prefix := fmt.Sprintf("runs/%s", findings.Timestamp.Format("2006-01-02"))
		if _, err := u.deps.Store.Upload(ctx, prefix+"/update_report.md", []byte(report), "text/markdown"); err != nil {
			return goerr.Wrap(err, "failed to upload report artifact")
		}
		if _, err := u.deps.Store.Upload(ctx, prefix+"/update_suggestions.json", data, "application/json"); err != nil {
			return goerr.Wrap(err, "failed to upload findings artifact")
		}
		logger.Info("artifacts uploaded", "prefix", prefix)
	}

	return nil
}

// publish files the dated summary issue and sends the notification
func (u *updater) publish(ctx context.Context, findings *model.Findings) error {
	logger := ctxlog.From(ctx)

	issueURL := ""
	if u.cfg.FileIssue && u.deps.GitHub != nil {
		report, err := u.reporter.RenderUpdateReport(findings)
		if err != nil {
			return err
		}

		title := fmt.Sprintf("%s — %s", u.cfg.Watch.Issue.TitlePrefix, findings.Timestamp.Format("2006-01-02"))
		labels := u.cfg.Watch.Issue.Labels

		number, err := u.deps.GitHub.FindOpenIssue(ctx, u.cfg.Owner, u.cfg.Repo, title, labels)
		if err != nil {
			return err
		}

		if number > 0 {
			issueURL, err = u.deps.GitHub.UpdateIssueBody(ctx, u.cfg.Owner, u.cfg.Repo, number, report)
			logger.Info("updated existing report issue", "number", number)
		} else {
			issueURL, err = u.deps.GitHub.CreateIssue(ctx, u.cfg.Owner, u.cfg.Repo, title, report, labels)
			logger.Info("created report issue", "title", title)
		}
		if err != nil {
			return err
		}
	}

	if u.deps.Notifier != nil {
		if err := u.deps.Notifier.NotifyRun(ctx, findings, issueURL); err != nil {
			return goerr.Wrap(err, "failed to send run notification")
		}
	}

	return nil
}
