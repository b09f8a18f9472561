package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/memari-majid/paperwatch/pkg/cli/config"
	"github.com/memari-majid/paperwatch/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdBump() *cli.Command {
	var (
		watchConfigPath string
		rootDir         string
	)

	return &cli.Command{
		Name:  "bump",
		Usage: "Stamp date-based version metadata into the LaTeX manuscript and chapters",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "watch-config",
				Usage:       "Path to the TOML watch config (queries, frameworks, files)",
				Destination: &watchConfigPath,
				Sources:     cli.EnvVars("PAPERWATCH_WATCH_CONFIG"),
			},
			&cli.StringFlag{
				Name:        "root-dir",
				Usage:       "Repository checkout the stamped files live in",
				Value:       ".",
				Destination: &rootDir,
				Sources:     cli.EnvVars("PAPERWATCH_ROOT_DIR"),
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			watch, err := config.LoadWatchConfig(watchConfigPath)
			if err != nil {
				return err
			}

			bumper := usecase.NewBumper(rootDir)
			if err := bumper.Run(ctx, watch); err != nil {
				return err
			}

			ctxlog.From(ctx).Info("version stamping finished", slog.String("root_dir", rootDir))
			return nil
		},
	}
}
