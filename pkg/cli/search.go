package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/memari-majid/paperwatch/pkg/cli/config"
	"github.com/memari-majid/paperwatch/pkg/domain/interfaces"
	"github.com/memari-majid/paperwatch/pkg/infra/arxiv"
	"github.com/memari-majid/paperwatch/pkg/infra/scholar"
	"github.com/memari-majid/paperwatch/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdSearch() *cli.Command {
	var (
		watchConfigPath string
		output          string
		days            int64
		maxPerQuery     int64
		concurrency     int64
	)

	return &cli.Command{
		Name:  "search",
		Usage: "Search paper sources and write a review checklist, no LLM calls",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "watch-config",
				Usage:       "Path to the TOML watch config (queries, frameworks, files)",
				Destination: &watchConfigPath,
				Sources:     cli.EnvVars("PAPERWATCH_WATCH_CONFIG"),
			},
			&cli.StringFlag{
				Name:        "output",
				Usage:       "Output markdown file",
				Value:       "new_papers.md",
				Destination: &output,
				Sources:     cli.EnvVars("PAPERWATCH_SEARCH_OUTPUT"),
			},
			&cli.Int64Flag{
				Name:        "days",
				Usage:       "Recency window in days",
				Value:       7,
				Destination: &days,
				Sources:     cli.EnvVars("PAPERWATCH_SEARCH_DAYS"),
			},
			&cli.Int64Flag{
				Name:        "max-per-query",
				Usage:       "Search results requested per query and source",
				Value:       10,
				Destination: &maxPerQuery,
				Sources:     cli.EnvVars("PAPERWATCH_MAX_PER_QUERY"),
			},
			&cli.Int64Flag{
				Name:        "concurrency",
				Usage:       "Simultaneous search requests",
				Value:       4,
				Destination: &concurrency,
				Sources:     cli.EnvVars("PAPERWATCH_CONCURRENCY"),
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			watch, err := config.LoadWatchConfig(watchConfigPath)
			if err != nil {
				return err
			}

			sources := []interfaces.PaperSource{
				arxiv.New(),
				scholar.New(),
			}
			discovery := usecase.NewDiscovery(sources, usecase.WithConcurrency(int(concurrency)))
			papers := discovery.SearchAll(ctx, watch.Queries, int(maxPerQuery), int(days))

			reporter, err := usecase.NewReporter()
			if err != nil {
				return err
			}
			report, err := reporter.RenderPaperReport(papers, int(days))
			if err != nil {
				return err
			}

			if err := os.WriteFile(output, []byte(report), 0644); err != nil {
				return goerr.Wrap(err, "failed to write paper report", goerr.V("path", output))
			}

			logger.Info("paper search finished",
				slog.Int("papers", len(papers)),
				slog.String("output", output),
			)
			return nil
		},
	}
}
