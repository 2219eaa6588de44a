package loyalty

import (
	"time"

	"currypoint/internal/domain/entity"
)

// Applied is the outcome of running an order amount through a coupon.
type Applied struct {
	FinalAmount float64 `json:"finalAmount"`
	Discount    float64 `json:"discount"`
}

// IsAvailableTo is the listing filter: active, unexpired and VIP-gated.
// UsageLimit is not consulted; usage is counted but never capped.
func IsAvailableTo(coupon entity.Coupon, isVip bool, now time.Time) bool {
	if !coupon.IsActive {
		return false
	}

	expiry, ok := coupon.Expiry()
	if !ok || !expiry.After(now) {
		return false
	}

	return !coupon.ForVipOnly || isVip
}

// IsEligible adds the minimum order check to IsAvailableTo.
func IsEligible(coupon entity.Coupon, orderAmount float64, isVip bool, now time.Time) bool {
	return IsAvailableTo(coupon, isVip, now) && orderAmount >= coupon.MinOrderValue
}

// ComputeDiscount returns the rupee reduction, never more than orderAmount.
func ComputeDiscount(coupon entity.Coupon, orderAmount float64) float64 {
	if orderAmount <= 0 {
		return 0
	}

	var discount float64
	switch coupon.DiscountType {
	case entity.DiscountTypePercentage:
		discount = orderAmount * coupon.DiscountValue / 100
		if coupon.MaxDiscount != nil && *coupon.MaxDiscount > 0 {
			discount = min(discount, *coupon.MaxDiscount)
		}
	case entity.DiscountTypeFixed:
		discount = coupon.DiscountValue
	case entity.DiscountTypeFreeItem:
		discount = 0
	}

	return min(max(discount, 0), orderAmount)
}

// ApplyCoupon discounts orderAmount. Below the minimum order value the amount
// passes through untouched.
func ApplyCoupon(coupon entity.Coupon, orderAmount float64) Applied {
	if orderAmount < coupon.MinOrderValue {
		return Applied{FinalAmount: orderAmount}
	}

	discount := ComputeDiscount(coupon, orderAmount)

	return Applied{
		FinalAmount: max(0, orderAmount-discount),
		Discount:    discount,
	}
}
