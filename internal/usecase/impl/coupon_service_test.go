package impl

import (
	"context"
	"testing"

	"currypoint/internal/domain/entity"
	domainerrors "currypoint/internal/domain/errors"
	"currypoint/internal/domain/repository"
	"currypoint/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCouponService(t *testing.T) (usecase.CouponUsecase, repository.LedgerStore) {
	ledger := newTestLedger(t)

	return NewCouponService(CouponServiceParams{
		Store:  ledger,
		Logger: newDiscardLogger(),
		Clock:  fixedClock,
	}), ledger
}

func floatPtr(v float64) *float64 { return &v }

func validCouponInput() usecase.CouponInput {
	return usecase.CouponInput{
		Code:          "monsoon20",
		Title:         "Monsoon special",
		DiscountType:  entity.DiscountTypePercentage,
		DiscountValue: 20,
		MinOrderValue: 400,
		MaxDiscount:   floatPtr(150),
		ExpiryDate:    "2025-09-30",
		UsageLimit:    3,
	}
}

func TestCouponService_CreateCoupon(t *testing.T) {
	service, ledger := createTestCouponService(t)
	ctx := context.Background()

	out, err := service.CreateCoupon(ctx, validCouponInput())
	require.NoError(t, err)
	assert.Equal(t, 4, out.Coupon.ID)
	assert.Equal(t, "MONSOON20", out.Coupon.Code)
	assert.True(t, out.Coupon.IsActive)
	assert.Zero(t, out.Coupon.UsageCount)
	require.NotNil(t, out.Coupon.MaxDiscount)
	assert.Equal(t, 150.0, *out.Coupon.MaxDiscount)

	_, err = service.CreateCoupon(ctx, validCouponInput())
	assert.ErrorIs(t, err, domainerrors.ErrCouponCodeExists)

	assert.Len(t, ledger.Coupons(ctx), 4)
}

func TestCouponService_CreateCoupon_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *usecase.CouponInput)
	}{
		{name: "missing code", mutate: func(in *usecase.CouponInput) { in.Code = " " }},
		{name: "missing title", mutate: func(in *usecase.CouponInput) { in.Title = "" }},
		{name: "unknown type", mutate: func(in *usecase.CouponInput) { in.DiscountType = "bogo" }},
		{name: "zero discount", mutate: func(in *usecase.CouponInput) { in.DiscountValue = 0 }},
		{name: "negative minimum", mutate: func(in *usecase.CouponInput) { in.MinOrderValue = -1 }},
		{name: "bad expiry", mutate: func(in *usecase.CouponInput) { in.ExpiryDate = "next week" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := createTestCouponService(t)
			input := validCouponInput()
			tt.mutate(&input)

			_, err := service.CreateCoupon(context.Background(), input)
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
		})
	}
}

func TestCouponService_UpdateCoupon(t *testing.T) {
	service, ledger := createTestCouponService(t)
	ctx := context.Background()

	input := validCouponInput()
	input.Code = "flat50"
	input.DiscountType = entity.DiscountTypeFixed
	input.DiscountValue = 75

	out, err := service.UpdateCoupon(ctx, 2, input)
	require.NoError(t, err)
	assert.Equal(t, "FLAT50", out.Coupon.Code, "own code is not a duplicate")
	assert.Equal(t, 75.0, out.Coupon.DiscountValue)
	assert.Nil(t, out.Coupon.MaxDiscount, "fixed coupons carry no cap")

	input.Code = "WELCOME10"
	_, err = service.UpdateCoupon(ctx, 2, input)
	assert.ErrorIs(t, err, domainerrors.ErrCouponCodeExists)

	_, err = service.UpdateCoupon(ctx, 42, validCouponInput())
	assert.ErrorIs(t, err, domainerrors.ErrCouponNotFound)

	coupons := ledger.Coupons(ctx)
	assert.Equal(t, 75.0, coupons[entity.FindByID(coupons, 2)].DiscountValue)
}

func TestCouponService_ToggleAndDelete(t *testing.T) {
	service, ledger := createTestCouponService(t)
	ctx := context.Background()

	out, err := service.ToggleCouponActive(ctx, 1)
	require.NoError(t, err)
	assert.False(t, out.Coupon.IsActive)

	_, err = service.DeleteCoupon(ctx, 3)
	require.NoError(t, err)

	coupons, err := service.ListCoupons(ctx)
	require.NoError(t, err)
	assert.Len(t, coupons, 2)
	assert.Len(t, ledger.Coupons(ctx), 2)

	_, err = service.DeleteCoupon(ctx, 3)
	assert.ErrorIs(t, err, domainerrors.ErrCouponNotFound)
}

func TestCouponService_AvailableCoupons(t *testing.T) {
	service, _ := createTestCouponService(t)
	ctx := context.Background()

	codes := func(coupons []entity.Coupon) []string {
		out := make([]string, 0, len(coupons))
		for _, c := range coupons {
			out = append(out, c.Code)
		}

		return out
	}

	regular, err := service.AvailableCoupons(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"WELCOME10", "FLAT50"}, codes(regular))

	vip, err := service.AvailableCoupons(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"WELCOME10", "FLAT50", "VIPSPECIAL"}, codes(vip))

	_, err = service.ToggleCouponActive(ctx, 1)
	require.NoError(t, err)

	regular, err = service.AvailableCoupons(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"FLAT50"}, codes(regular))

	_, err = service.AvailableCoupons(ctx, 77)
	assert.ErrorIs(t, err, domainerrors.ErrCustomerNotFound)
}
