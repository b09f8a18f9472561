package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/memari-majid/paperwatch/pkg/cli/config"
	controller "github.com/memari-majid/paperwatch/pkg/controller/http"
	"github.com/memari-majid/paperwatch/pkg/domain/types"
	"github.com/memari-majid/paperwatch/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg config.Server
		cfgs      updateConfigs
	)

	flags := append(serverCfg.Flags(), cfgs.flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server that runs update cycles on repository pushes",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if serverCfg.SentryDSN != "" {
				if err := sentry.Init(sentry.ClientOptions{
					Dsn:     serverCfg.SentryDSN,
					Release: types.AppName + "@" + types.Version,
				}); err != nil {
					return goerr.Wrap(err, "failed to initialize sentry")
				}
				defer sentry.Flush(2 * time.Second)
			}

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
			snapshots := usecase.NewSnapshot(deps.GitHub)

			// Each triggered run works against a fresh snapshot of the
			// default branch rather than a local checkout.
			run := func(ctx context.Context) error {
				snap, err := snapshots.Fetch(ctx, owner, repo, "")
				if err != nil {
					return err
				}
				defer func() {
					if err := os.RemoveAll(snap.Root); err != nil {
						ctxlog.From(ctx).Warn("failed to remove snapshot",
							slog.String("root", snap.Root), slog.Any("error", err))
					}
				}()

				updater, err := usecase.NewUpdater(*deps, cfgs.updaterConfig(watch, owner, repo, snap.Dir))
				if err != nil {
					return err
				}

				if _, err := updater.Run(ctx); err != nil {
					sentry.CaptureException(err)
					return err
				}
				return nil
			}

			webhookUC := usecase.NewWebhook(watch.Files, run)

			server, err := controller.NewServer(
				ctx,
				webhookUC,
				controller.WithAddr(serverCfg.Addr),
				controller.WithWebhookSecret(cfgs.github.WebhookSecret),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
