package impl

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	deliverycontext "currypoint/internal/delivery/context"
	"currypoint/internal/domain/entity"
	domainerrors "currypoint/internal/domain/errors"
	"currypoint/internal/domain/loyalty"
	"currypoint/internal/domain/repository"
	"currypoint/internal/usecase"

	"go.uber.org/fx"
)

type couponService struct {
	store  repository.LedgerStore
	now    Clock
	logger *slog.Logger
}

// CouponServiceParams holds dependencies for CouponService, injected by Fx.
type CouponServiceParams struct {
	fx.In

	Store  repository.LedgerStore
	Logger *slog.Logger
	Clock  Clock `optional:"true"`
}

func NewCouponService(params CouponServiceParams) usecase.CouponUsecase {
	return &couponService{
		store:  params.Store,
		now:    clockOrDefault(params.Clock),
		logger: params.Logger,
	}
}

func (srv *couponService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func validateCouponInput(input usecase.CouponInput) error {
	if err := requireFields(map[string]string{
		"code":       input.Code,
		"title":      input.Title,
		"expiryDate": input.ExpiryDate,
	}); err != nil {
		return err
	}
	if !input.DiscountType.IsValid() {
		return domainerrors.ErrValidationFailed.WithDetailsf("unknown discount type %q", input.DiscountType)
	}
	if input.DiscountType != entity.DiscountTypeFreeItem && input.DiscountValue <= 0 {
		return domainerrors.ErrValidationFailed.WithDetails("discount value must be positive")
	}
	if input.MinOrderValue < 0 || input.UsageLimit < 0 {
		return domainerrors.ErrValidationFailed.WithDetails("minimum order value and usage limit must not be negative")
	}
	if input.MaxDiscount != nil && *input.MaxDiscount < 0 {
		return domainerrors.ErrValidationFailed.WithDetails("max discount must not be negative")
	}
	if _, err := entity.ParseTimestamp(strings.TrimSpace(input.ExpiryDate)); err != nil {
		return domainerrors.ErrValidationFailed.WithDetailsf("invalid expiry date %q", input.ExpiryDate)
	}

	return nil
}

// applyCouponInput copies the editable fields onto coupon. MaxDiscount only
// survives on percentage coupons.
func applyCouponInput(coupon *entity.Coupon, input usecase.CouponInput) {
	coupon.Code = normalizeCouponCode(input.Code)
	coupon.Title = input.Title
	coupon.Description = input.Description
	coupon.DiscountType = input.DiscountType
	coupon.DiscountValue = input.DiscountValue
	coupon.MinOrderValue = input.MinOrderValue
	coupon.MaxDiscount = nil
	if input.DiscountType == entity.DiscountTypePercentage && input.MaxDiscount != nil {
		maxDiscount := *input.MaxDiscount
		coupon.MaxDiscount = &maxDiscount
	}
	coupon.ExpiryDate = strings.TrimSpace(input.ExpiryDate)
	coupon.UsageLimit = input.UsageLimit
	coupon.ForVipOnly = input.ForVipOnly
}

func (srv *couponService) ListCoupons(ctx context.Context) ([]entity.Coupon, error) {
	return srv.store.Coupons(ctx), nil
}

func (srv *couponService) CreateCoupon(ctx context.Context, input usecase.CouponInput) (*usecase.CouponOutput, error) {
	if err := validateCouponInput(input); err != nil {
		return nil, err
	}

	var created entity.Coupon
	result, err := srv.store.Execute(ctx, func(unit repository.LedgerUnit) error {
		coupons := unit.Coupons(ctx)
		if codeTaken(coupons, input.Code, 0) {
			return domainerrors.ErrCouponCodeExists.WithDetails(normalizeCouponCode(input.Code))
		}

		created = entity.Coupon{ID: entity.NextID(coupons), IsActive: true}
		applyCouponInput(&created, input)
		unit.SetCoupons(append(coupons, created))

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Coupon created", slog.Int("couponID", created.ID), slog.String("code", created.Code))

	return &usecase.CouponOutput{Coupon: &created, Write: result}, nil
}

// UpdateCoupon edits a coupon. Usage count and active state are kept.
func (srv *couponService) UpdateCoupon(ctx context.Context, id int, input usecase.CouponInput) (*usecase.CouponOutput, error) {
	if err := validateCouponInput(input); err != nil {
		return nil, err
	}

	var updated entity.Coupon
	result, err := srv.store.Execute(ctx, func(unit repository.LedgerUnit) error {
		coupons := unit.Coupons(ctx)

		idx, err := couponIndex(coupons, id)
		if err != nil {
			return err
		}
		if codeTaken(coupons, input.Code, id) {
			return domainerrors.ErrCouponCodeExists.WithDetails(normalizeCouponCode(input.Code))
		}

		applyCouponInput(&coupons[idx], input)
		unit.SetCoupons(coupons)
		updated = coupons[idx]

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Coupon updated", slog.Int("couponID", id))

	return &usecase.CouponOutput{Coupon: &updated, Write: result}, nil
}

func (srv *couponService) DeleteCoupon(ctx context.Context, id int) (*repository.WriteResult, error) {
	result, err := srv.store.Execute(ctx, func(unit repository.LedgerUnit) error {
		coupons := unit.Coupons(ctx)

		idx, err := couponIndex(coupons, id)
		if err != nil {
			return err
		}
		unit.SetCoupons(slices.Delete(coupons, idx, idx+1))

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Coupon deleted", slog.Int("couponID", id))

	return result, nil
}

func (srv *couponService) ToggleCouponActive(ctx context.Context, id int) (*usecase.CouponOutput, error) {
	var toggled entity.Coupon
	result, err := srv.store.Execute(ctx, func(unit repository.LedgerUnit) error {
		coupons := unit.Coupons(ctx)

		idx, err := couponIndex(coupons, id)
		if err != nil {
			return err
		}
		coupons[idx].IsActive = !coupons[idx].IsActive
		unit.SetCoupons(coupons)
		toggled = coupons[idx]

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Coupon active state toggled", slog.Int("couponID", id), slog.Bool("active", toggled.IsActive))

	return &usecase.CouponOutput{Coupon: &toggled, Write: result}, nil
}

func (srv *couponService) AvailableCoupons(ctx context.Context, customerID int) ([]entity.Coupon, error) {
	customers := srv.store.Customers(ctx)
	idx, err := customerIndex(customers, customerID)
	if err != nil {
		return nil, err
	}

	return availableTo(srv.store.Coupons(ctx), customers[idx].IsVip, srv.now), nil
}

func availableTo(coupons []entity.Coupon, isVip bool, now Clock) []entity.Coupon {
	at := now()

	return slices.DeleteFunc(coupons, func(c entity.Coupon) bool {
		return !loyalty.IsAvailableTo(c, isVip, at)
	})
}
