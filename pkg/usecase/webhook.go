package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/memari-majid/paperwatch/pkg/domain/model"
	"github.com/memari-majid/paperwatch/pkg/utils/async"
)

// RunFunc executes one update run, typically against a freshly fetched
// repository snapshot
type RunFunc func(ctx context.Context) error

type webhookUseCase struct {
	watchPaths []string
	run        RunFunc
}

// NewWebhook creates the webhook event processor. Supported events whose
// changed files touch a watched path dispatch an update run in the
// background; everything else is logged and dropped.
func NewWebhook(watchPaths []string, run RunFunc) *webhookUseCase {
	return &webhookUseCase{
		watchPaths: watchPaths,
		run:        run,
	}
}

// ProcessEvent processes a webhook event
func (uc *webhookUseCase) ProcessEvent(ctx context.Context, event *model.WebhookEvent) error {
	logger := ctxlog.From(ctx)

	logger.Info("processing webhook event",
		"id", event.ID,
		"type", event.Type,
		"ref", event.Ref,
		"repository", event.Repository,
		"sender", event.Sender,
		"changed_files", len(event.ChangedFiles),
	)

	if !event.IsSupportedEvent() {
		logger.Warn("unsupported event received", "type", event.Type)
		return nil
	}

	if !event.TouchesAny(uc.watchPaths) {
		logger.Debug("event does not touch watched paths", "id", event.ID)
		return nil
	}

	if uc.run == nil {
		logger.Warn("no runner configured, dropping trigger", "id", event.ID)
		return nil
	}

	logger.Info("dispatching update run", "trigger", event.ID)
	async.Dispatch(ctx, uc.run)

	return nil
}
