package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/memari-majid/paperwatch/pkg/domain/model"
	"github.com/memari-majid/paperwatch/pkg/usecase"
)

func TestWebhookUseCase_ProcessEvent(t *testing.T) {
	ctx := context.Background()
	watchPaths := []string{"README.md", "docs/paper"}

	t.Run("push touching a watched path dispatches a run", func(t *testing.T) {
		var wg sync.WaitGroup
		wg.Add(1)
		ran := false

		uc := usecase.NewWebhook(watchPaths, func(ctx context.Context) error {
			defer wg.Done()
			ran = true
			return nil
		})

		event := &model.WebhookEvent{
			ID:           "delivery-1",
			Type:         model.EventTypePush,
			Ref:          "refs/heads/main",
			Repository:   "octo/review",
			ChangedFiles: []string{"docs/paper/03-foundations.md"},
		}

		gt.NoError(t, uc.ProcessEvent(ctx, event))
		wg.Wait()
		gt.True(t, ran)
	})

	t.Run("push outside watched paths is dropped", func(t *testing.T) {
		uc := usecase.NewWebhook(watchPaths, func(ctx context.Context) error {
			t.Error("run should not be dispatched")
			return nil
		})

		event := &model.WebhookEvent{
			ID:           "delivery-2",
			Type:         model.EventTypePush,
			ChangedFiles: []string{".github/workflows/ci.yml"},
		}

		gt.NoError(t, uc.ProcessEvent(ctx, event))
		time.Sleep(50 * time.Millisecond)
	})

	t.Run("workflow dispatch always triggers", func(t *testing.T) {
		var wg sync.WaitGroup
		wg.Add(1)

		uc := usecase.NewWebhook(watchPaths, func(ctx context.Context) error {
			defer wg.Done()
			return nil
		})

		event := &model.WebhookEvent{
			ID:   "delivery-3",
			Type: model.EventTypeWorkflowDispatch,
		}

		gt.NoError(t, uc.ProcessEvent(ctx, event))
		wg.Wait()
	})

	t.Run("unsupported event is dropped", func(t *testing.T) {
		uc := usecase.NewWebhook(watchPaths, func(ctx context.Context) error {
			t.Error("run should not be dispatched")
			return nil
		})

		event := &model.WebhookEvent{
			ID:   "delivery-4",
			Type: model.EventTypeUnknown,
		}

		gt.NoError(t, uc.ProcessEvent(ctx, event))
		time.Sleep(50 * time.Millisecond)
	})

	t.Run("nil runner is tolerated", func(t *testing.T) {
		uc := usecase.NewWebhook(watchPaths, nil)

		event := &model.WebhookEvent{
			ID:           "delivery-5",
			Type:         model.EventTypePush,
			ChangedFiles: []string{"README.md"},
		}

		gt.NoError(t, uc.ProcessEvent(ctx, event))
	})
}
