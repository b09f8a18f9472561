package config

import "github.com/urfave/cli/v3"

// Agent holds the update run parameters
type Agent struct {
	WatchConfigPath string
	RootDir         string
	OutputDir       string
	DaysBack        int64
	MaxPerQuery     int64
	TopPapers       int64
	Suggestions     int64
	Concurrency     int64
	NoIssue         bool
}

// Flags returns CLI flags for agent configuration
func (c *Agent) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "watch-config",
			Usage:       "Path to the TOML watch config (queries, frameworks, files)",
			Destination: &c.WatchConfigPath,
			Sources:     cli.EnvVars("PAPERWATCH_WATCH_CONFIG"),
		},
		&cli.StringFlag{
			Name:        "root-dir",
			Usage:       "Repository checkout the watched files are resolved against",
			Value:       ".",
			Destination: &c.RootDir,
			Sources:     cli.EnvVars("PAPERWATCH_ROOT_DIR"),
		},
		&cli.StringFlag{
			Name:        "output-dir",
			Usage:       "Directory for update_report.md and update_suggestions.json",
			Value:       ".",
			Destination: &c.OutputDir,
			Sources:     cli.EnvVars("PAPERWATCH_OUTPUT_DIR"),
		},
		&cli.Int64Flag{
			Name:        "days-back",
			Usage:       "Recency window for paper discovery in days",
			Value:       180,
			Destination: &c.DaysBack,
			Sources:     cli.EnvVars("PAPERWATCH_DAYS_BACK"),
		},
		&cli.Int64Flag{
			Name:        "max-per-query",
			Usage:       "Search results requested per query and source",
			Value:       3,
			Destination: &c.MaxPerQuery,
			Sources:     cli.EnvVars("PAPERWATCH_MAX_PER_QUERY"),
		},
		&cli.Int64Flag{
			Name:        "top-papers",
			Usage:       "Papers kept after relevance scoring",
			Value:       15,
			Destination: &c.TopPapers,
			Sources:     cli.EnvVars("PAPERWATCH_TOP_PAPERS"),
		},
		&cli.Int64Flag{
			Name:        "suggestions",
			Usage:       "Content suggestions requested from the LLM",
			Value:       5,
			Destination: &c.Suggestions,
			Sources:     cli.EnvVars("PAPERWATCH_SUGGESTIONS"),
		},
		&cli.Int64Flag{
			Name:        "concurrency",
			Usage:       "Simultaneous search requests",
			Value:       4,
			Destination: &c.Concurrency,
			Sources:     cli.EnvVars("PAPERWATCH_CONCURRENCY"),
		},
		&cli.BoolFlag{
			Name:        "no-issue",
			Usage:       "Skip filing the summary issue",
			Destination: &c.NoIssue,
			Sources:     cli.EnvVars("PAPERWATCH_NO_ISSUE"),
		},
	}
}
