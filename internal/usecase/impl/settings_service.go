package impl

import (
	"cmp"
	"context"
	"log/slog"
	"slices"

	deliverycontext "currypoint/internal/delivery/context"
	"currypoint/internal/domain/entity"
	domainerrors "currypoint/internal/domain/errors"
	"currypoint/internal/domain/repository"
	"currypoint/internal/usecase"

	"go.uber.org/fx"
)

type settingsService struct {
	store  repository.LedgerStore
	logger *slog.Logger
}

// SettingsServiceParams holds dependencies for SettingsService, injected by Fx.
type SettingsServiceParams struct {
	fx.In

	Store  repository.LedgerStore
	Logger *slog.Logger
}

func NewSettingsService(params SettingsServiceParams) usecase.SettingsUsecase {
	return &settingsService{
		store:  params.Store,
		logger: params.Logger,
	}
}

func (srv *settingsService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *settingsService) GetSettings(ctx context.Context) entity.Settings {
	return srv.store.Settings(ctx)
}

func validateSettings(settings entity.Settings) error {
	if err := requireFields(map[string]string{
		"businessName": settings.BusinessName,
		"upiId":        settings.UpiID,
	}); err != nil {
		return err
	}

	switch {
	case settings.PointsToRupeeRatio <= 0:
		return domainerrors.ErrValidationFailed.WithDetails("pointsToRupeeRatio must be positive")
	case settings.VipPointsMultiplier < 1:
		return domainerrors.ErrValidationFailed.WithDetails("vipPointsMultiplier must be at least 1")
	case settings.WelcomeBonusPoints < 0, settings.MinRedemptionPoints < 0, settings.VipThreshold < 0:
		return domainerrors.ErrValidationFailed.WithDetails("welcomeBonusPoints, minRedemptionPoints and vipThreshold must not be negative")
	}

	return nil
}

func (srv *settingsService) UpdateSettings(ctx context.Context, settings entity.Settings) (*repository.WriteResult, error) {
	if err := validateSettings(settings); err != nil {
		return nil, err
	}

	result, err := srv.store.Execute(ctx, func(unit repository.LedgerUnit) error {
		unit.SetSettings(settings)

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Settings updated", slog.String("businessName", settings.BusinessName))

	return result, nil
}

func (srv *settingsService) ListSlabs(ctx context.Context) []entity.PaymentSlab {
	return srv.store.PaymentSlabs(ctx)
}

// normalizeSlabs sorts the table by minimum amount, rejects malformed or
// overlapping rows and numbers the ids from 1.
func normalizeSlabs(inputs []usecase.SlabInput) ([]entity.PaymentSlab, error) {
	if len(inputs) == 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("at least one slab is required")
	}

	slabs := make([]entity.PaymentSlab, 0, len(inputs))
	for _, in := range inputs {
		if in.MinAmount < 0 || in.MaxAmount < in.MinAmount || in.Points < 0 {
			return nil, domainerrors.ErrValidationFailed.WithDetailsf("invalid slab %.2f-%.2f", in.MinAmount, in.MaxAmount)
		}
		slabs = append(slabs, entity.PaymentSlab{MinAmount: in.MinAmount, MaxAmount: in.MaxAmount, Points: in.Points})
	}

	slices.SortFunc(slabs, func(a, b entity.PaymentSlab) int { return cmp.Compare(a.MinAmount, b.MinAmount) })

	for i := range slabs {
		if i > 0 && slabs[i].MinAmount <= slabs[i-1].MaxAmount {
			return nil, domainerrors.ErrValidationFailed.WithDetailsf("slab starting at %.2f overlaps the previous one", slabs[i].MinAmount)
		}
		slabs[i].ID = i + 1
	}

	return slabs, nil
}

func (srv *settingsService) ReplaceSlabs(ctx context.Context, inputs []usecase.SlabInput) ([]entity.PaymentSlab, *repository.WriteResult, error) {
	slabs, err := normalizeSlabs(inputs)
	if err != nil {
		return nil, nil, err
	}

	result, err := srv.store.Execute(ctx, func(unit repository.LedgerUnit) error {
		unit.SetPaymentSlabs(slabs)

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	srv.log(ctx).Info("Payment slabs replaced", slog.Int("count", len(slabs)))

	return slabs, result, nil
}
