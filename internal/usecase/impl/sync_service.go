package impl

import (
	"context"
	"log/slog"

	deliverycontext "currypoint/internal/delivery/context"
	"currypoint/internal/domain/repository"
	"currypoint/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type syncService struct {
	sync   repository.LedgerSync
	logger *slog.Logger
}

// SyncServiceParams holds dependencies for SyncService, injected by Fx.
type SyncServiceParams struct {
	fx.In

	Sync   repository.LedgerSync
	Logger *slog.Logger
}

func NewSyncService(params SyncServiceParams) usecase.SyncUsecase {
	return &syncService{
		sync:   params.Sync,
		logger: params.Logger,
	}
}

func (srv *syncService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *syncService) Status(_ context.Context) repository.SyncStatus {
	return srv.sync.Status()
}

func (srv *syncService) ToggleMode(ctx context.Context) repository.SyncStatus {
	mode := srv.sync.ToggleMode()
	srv.log(ctx).Info("Storage mode changed", slog.String("mode", string(mode)))

	return srv.sync.Status()
}

func (srv *syncService) Push(ctx context.Context) error {
	srv.log(ctx).Info("Pushing all collections to the remote store")

	if err := srv.sync.PushAll(ctx); err != nil {
		srv.log(ctx).Warn("Push failed", slog.Any("error", err))

		return err
	}

	return nil
}

func (srv *syncService) Pull(ctx context.Context) error {
	srv.log(ctx).Info("Pulling all collections from the remote store")

	if err := srv.sync.PullAll(ctx); err != nil {
		srv.log(ctx).Warn("Pull failed", slog.Any("error", err))

		return err
	}

	return nil
}

func (srv *syncService) Export(ctx context.Context) ([]byte, error) {
	data, err := srv.sync.Export(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to export ledger")
	}

	return data, nil
}

func (srv *syncService) Import(ctx context.Context, data []byte) (*repository.WriteResult, error) {
	result, err := srv.sync.Import(ctx, data)
	if err != nil {
		srv.log(ctx).Warn("Import rejected", slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Ledger imported", slog.Int("bytes", len(data)))

	return result, nil
}

func (srv *syncService) Reset(ctx context.Context) (*repository.WriteResult, error) {
	result, err := srv.sync.Reset(ctx)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Ledger reset to defaults")

	return result, nil
}
