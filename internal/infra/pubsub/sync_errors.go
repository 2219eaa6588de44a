package pubsub

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"currypoint/internal/domain/repository"
	"currypoint/internal/domain/service"

	"go.uber.org/fx"
)

// ForwarderParams holds dependencies for the sync error forwarder, injected by Fx
type ForwarderParams struct {
	fx.In

	Lc       fx.Lifecycle
	Sync     repository.LedgerSync
	Notifier service.ChangeNotifier
	Logger   *slog.Logger
}

// ForwardSyncErrors republishes every remote tier failure as a change event so
// open views can surface it.
func ForwardSyncErrors(params ForwarderParams) {
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	params.Lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			wg.Add(1)
			go func() {
				defer wg.Done()
				forwardSyncErrors(ctx, params.Sync.Errors(), params.Notifier, params.Logger)
			}()

			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			wg.Wait()

			return nil
		},
	})
}

func forwardSyncErrors(ctx context.Context, errs <-chan repository.SyncError, notifier service.ChangeNotifier, logger *slog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case syncErr, ok := <-errs:
			if !ok {
				return
			}

			event := service.ChangeEvent{
				Source:  service.ChangeSourceSyncError,
				Message: syncErr.Error(),
				At:      syncErr.At,
			}
			if syncErr.Collection != "" {
				event.Collections = []string{syncErr.Collection.String()}
			}
			if event.At.IsZero() {
				event.At = time.Now()
			}

			if err := notifier.Publish(ctx, event); err != nil {
				logger.Warn("Failed to publish sync error", slog.Any("error", err))
			}
		}
	}
}
