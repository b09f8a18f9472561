package async

import (
	"context"
	"runtime/debug"

	"github.com/m-mizutani/ctxlog"
)

// Dispatch runs handler in a new goroutine, detached from the caller's
// cancellation so an in-flight update run survives the webhook response.
// The logger carried by ctx is preserved; panics are recovered and logged
// with their stack.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	runCtx := detach(ctx)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ctxlog.From(runCtx).Error("panic in async handler",
					"recover", r,
					"stack", string(debug.Stack()))
			}
		}()

		if err := handler(runCtx); err != nil {
			ctxlog.From(runCtx).Error("error in async handler", "error", err)
		}
	}()
}

// detach returns a background context carrying ctx's logger
func detach(ctx context.Context) context.Context {
	return ctxlog.With(context.Background(), ctxlog.From(ctx))
}
