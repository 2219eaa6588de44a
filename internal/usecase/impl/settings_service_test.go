package impl

import (
	"context"
	"testing"

	"currypoint/internal/domain/entity"
	domainerrors "currypoint/internal/domain/errors"
	"currypoint/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsService_UpdateSettings(t *testing.T) {
	ledger := newTestLedger(t)
	service := NewSettingsService(SettingsServiceParams{Store: ledger, Logger: newDiscardLogger()})
	ctx := context.Background()

	settings := service.GetSettings(ctx)
	assert.Equal(t, "Curry Point", settings.BusinessName)

	settings.BusinessName = "Curry Point Koramangala"
	settings.VipThreshold = 5000
	_, err := service.UpdateSettings(ctx, settings)
	require.NoError(t, err)
	assert.Equal(t, settings, ledger.Settings(ctx))

	tests := []struct {
		name   string
		mutate func(s *entity.Settings)
	}{
		{name: "zero ratio", mutate: func(s *entity.Settings) { s.PointsToRupeeRatio = 0 }},
		{name: "multiplier below one", mutate: func(s *entity.Settings) { s.VipPointsMultiplier = 0.9 }},
		{name: "negative welcome bonus", mutate: func(s *entity.Settings) { s.WelcomeBonusPoints = -5 }},
		{name: "negative threshold", mutate: func(s *entity.Settings) { s.VipThreshold = -1 }},
		{name: "missing upi id", mutate: func(s *entity.Settings) { s.UpiID = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			invalid := settings
			tt.mutate(&invalid)

			_, err := service.UpdateSettings(ctx, invalid)
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
			assert.Equal(t, settings, ledger.Settings(ctx), "unchanged")
		})
	}
}

func TestSettingsService_ReplaceSlabs(t *testing.T) {
	ledger := newTestLedger(t)
	service := NewSettingsService(SettingsServiceParams{Store: ledger, Logger: newDiscardLogger()})
	ctx := context.Background()

	slabs, _, err := service.ReplaceSlabs(ctx, []usecase.SlabInput{
		{MinAmount: 501, MaxAmount: 99999, Points: 50},
		{MinAmount: 0, MaxAmount: 500, Points: 10},
	})
	require.NoError(t, err)

	want := []entity.PaymentSlab{
		{ID: 1, MinAmount: 0, MaxAmount: 500, Points: 10},
		{ID: 2, MinAmount: 501, MaxAmount: 99999, Points: 50},
	}
	assert.Equal(t, want, slabs)
	assert.Equal(t, want, service.ListSlabs(ctx))

	invalid := map[string][]usecase.SlabInput{
		"empty":       {},
		"inverted":    {{MinAmount: 100, MaxAmount: 50, Points: 1}},
		"negative":    {{MinAmount: -1, MaxAmount: 50, Points: 1}},
		"overlapping": {{MinAmount: 0, MaxAmount: 100, Points: 1}, {MinAmount: 100, MaxAmount: 200, Points: 2}},
	}
	for name, inputs := range invalid {
		t.Run(name, func(t *testing.T) {
			_, _, err := service.ReplaceSlabs(ctx, inputs)
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
			assert.Equal(t, want, ledger.PaymentSlabs(ctx))
		})
	}
}
