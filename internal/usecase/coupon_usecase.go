package usecase

import (
	"context"

	"currypoint/internal/domain/entity"
	"currypoint/internal/domain/repository"
)

// CouponInput is the admin form for creating or editing a coupon. MaxDiscount
// is only kept for percentage coupons.
type CouponInput struct {
	Code          string
	Title         string
	Description   string
	DiscountType  entity.DiscountType
	DiscountValue float64
	MinOrderValue float64
	MaxDiscount   *float64
	ExpiryDate    string
	UsageLimit    int
	ForVipOnly    bool
}

// CouponOutput pairs the affected coupon with the pending remote write.
type CouponOutput struct {
	Coupon *entity.Coupon
	Write  *repository.WriteResult
}

// CouponUsecase manages coupon definitions and lists what a customer may use.
type CouponUsecase interface {
	ListCoupons(ctx context.Context) ([]entity.Coupon, error)
	CreateCoupon(ctx context.Context, input CouponInput) (*CouponOutput, error)
	UpdateCoupon(ctx context.Context, id int, input CouponInput) (*CouponOutput, error)
	DeleteCoupon(ctx context.Context, id int) (*repository.WriteResult, error)
	ToggleCouponActive(ctx context.Context, id int) (*CouponOutput, error)
	// AvailableCoupons lists the active, unexpired coupons the customer's VIP
	// state allows, regardless of order amount.
	AvailableCoupons(ctx context.Context, customerID int) ([]entity.Coupon, error)
}
