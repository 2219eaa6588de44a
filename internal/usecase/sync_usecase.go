package usecase

import (
	"context"

	"currypoint/internal/domain/repository"
)

// SyncUsecase is the data management surface over the two storage tiers.
type SyncUsecase interface {
	Status(ctx context.Context) repository.SyncStatus
	ToggleMode(ctx context.Context) repository.SyncStatus
	Push(ctx context.Context) error
	Pull(ctx context.Context) error
	Export(ctx context.Context) ([]byte, error)
	Import(ctx context.Context, data []byte) (*repository.WriteResult, error)
	Reset(ctx context.Context) (*repository.WriteResult, error)
}
