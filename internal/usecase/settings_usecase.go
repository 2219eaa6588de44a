package usecase

import (
	"context"

	"currypoint/internal/domain/entity"
	"currypoint/internal/domain/repository"
)

// SlabInput is one row of a replacement slab table.
type SlabInput struct {
	MinAmount float64
	MaxAmount float64
	Points    int
}

// SettingsUsecase reads and administers the business settings and the points slab table.
type SettingsUsecase interface {
	GetSettings(ctx context.Context) entity.Settings
	UpdateSettings(ctx context.Context, settings entity.Settings) (*repository.WriteResult, error)
	ListSlabs(ctx context.Context) []entity.PaymentSlab
	// ReplaceSlabs validates and stores a new slab table, sorted by minimum
	// amount with ids reassigned from 1.
	ReplaceSlabs(ctx context.Context, slabs []SlabInput) ([]entity.PaymentSlab, *repository.WriteResult, error)
}
