package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/memari-majid/paperwatch/pkg/cli/config"
	"github.com/memari-majid/paperwatch/pkg/domain/interfaces"
	"github.com/memari-majid/paperwatch/pkg/domain/model"
	"github.com/memari-majid/paperwatch/pkg/infra/arxiv"
	"github.com/memari-majid/paperwatch/pkg/infra/pypi"
	"github.com/memari-majid/paperwatch/pkg/infra/scholar"
	"github.com/memari-majid/paperwatch/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// updateConfigs bundles the flag groups shared by update and serve
type updateConfigs struct {
	agent   config.Agent
	openai  config.OpenAI
	github  config.GitHub
	storage config.Storage
	notify  config.Notify
}

func (c *updateConfigs) flags() []cli.Flag {
	var flags []cli.Flag
	flags = append(flags, c.agent.Flags()...)
	flags = append(flags, c.openai.Flags()...)
	flags = append(flags, c.github.Flags()...)
	flags = append(flags, c.storage.Flags()...)
	flags = append(flags, c.notify.Flags()...)
	return flags
}

// buildUpdaterDeps assembles the external clients an update run needs
func (c *updateConfigs) buildUpdaterDeps(ctx context.Context) (*usecase.UpdaterDeps, error) {
	githubClient, err := c.github.Client()
	if err != nil {
		return nil, err
	}

	scoringLLM, err := c.openai.ScoringClient(ctx)
	if err != nil {
		return nil, err
	}
	scorer, err := usecase.NewRelevanceScorer(scoringLLM)
	if err != nil {
		return nil, err
	}

	suggestionLLM, err := c.openai.SuggestionClient(ctx)
	if err != nil {
		return nil, err
	}
	suggester, err := usecase.NewSuggester(suggestionLLM)
	if err != nil {
		return nil, err
	}

	store, err := c.storage.Store(ctx)
	if err != nil {
		return nil, err
	}

	return &usecase.UpdaterDeps{
		Sources: []interfaces.PaperSource{
			arxiv.New(),
			scholar.New(),
		},
		Scorer:    scorer,
		Suggester: suggester,
		Registry:  pypi.New(),
		GitHub:    githubClient,
		Store:     store,
		Notifier:  c.notify.Notifier(),
	}, nil
}

// updaterConfig translates CLI flags into run parameters. rootDir overrides
// the configured root when non-empty (serve mode runs against a snapshot).
func (c *updateConfigs) updaterConfig(watch *model.WatchConfig, owner, repo, rootDir string) usecase.UpdaterConfig {
	if rootDir == "" {
		rootDir = c.agent.RootDir
	}
	return usecase.UpdaterConfig{
		Watch:           watch,
		RootDir:         rootDir,
		OutputDir:       c.agent.OutputDir,
		Owner:           owner,
		Repo:            repo,
		DaysBack:        int(c.agent.DaysBack),
		MaxPerQuery:     int(c.agent.MaxPerQuery),
		TopPapers:       int(c.agent.TopPapers),
		SuggestionCount: int(c.agent.Suggestions),
		Concurrency:     int(c.agent.Concurrency),
		FileIssue:       !c.agent.NoIssue,
	}
}

func cmdUpdate() *cli.Command {
	var cfgs updateConfigs

	return &cli.Command{
		Name:  "update",
		Usage: "Run one full update cycle and file the summary issue",
		Flags: cfgs.flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			watch, err := config.LoadWatchConfig(cfgs.agent.WatchConfigPath)
			if err != nil {
				return err
			}

			owner, repo, err := cfgs.github.OwnerRepo()
			if err != nil {
				return err
			}

			deps, err := cfgs.buildUpdaterDeps(ctx)
			if err != nil {
				return err
			}

			updater, err := usecase.NewUpdater(*deps, cfgs.updaterConfig(watch, owner, repo, ""))
			if err != nil {
				return err
			}

			findings, err := updater.Run(ctx)
			if err != nil {
				return err
			}

			logger.Info("update cycle finished",
				slog.String("run_id", findings.RunID),
				slog.Int("new_papers", len(findings.NewPapers)),
				slog.Int("framework_updates", len(findings.FrameworkUpdates)),
				slog.Int("broken_links", len(findings.BrokenLinks)),
				slog.Int("suggestions", len(findings.ContentSuggestions)),
			)
			return nil
		},
	}
}
