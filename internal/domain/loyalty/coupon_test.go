package loyalty

import (
	"testing"
	"time"

	"currypoint/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func welcomeCoupon() entity.Coupon {
	return entity.Coupon{
		ID:            1,
		Code:          "WELCOME10",
		DiscountType:  entity.DiscountTypePercentage,
		DiscountValue: 10,
		MinOrderValue: 300,
		MaxDiscount:   ptr(100),
		IsActive:      true,
		ExpiryDate:    "2025-12-31",
		UsageLimit:    1,
	}
}

func TestIsEligible(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *entity.Coupon)
		amount float64
		isVip  bool
		want   bool
	}{
		{"eligible", func(c *entity.Coupon) {}, 500, false, true},
		{"inactive", func(c *entity.Coupon) { c.IsActive = false }, 500, false, false},
		{"expired", func(c *entity.Coupon) { c.ExpiryDate = "2025-05-31" }, 500, false, false},
		{"expires exactly now", func(c *entity.Coupon) { c.ExpiryDate = now.Format(time.RFC3339) }, 500, false, false},
		{"malformed expiry", func(c *entity.Coupon) { c.ExpiryDate = "" }, 500, false, false},
		{"below minimum order", func(c *entity.Coupon) {}, 299.99, false, false},
		{"minimum order inclusive", func(c *entity.Coupon) {}, 300, false, true},
		{"vip only for regular", func(c *entity.Coupon) { c.ForVipOnly = true }, 500, false, false},
		{"vip only for vip", func(c *entity.Coupon) { c.ForVipOnly = true }, 500, true, true},
		{"usage limit is not enforced", func(c *entity.Coupon) { c.UsageCount = 5 }, 500, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := welcomeCoupon()
			tt.mutate(&c)
			assert.Equal(t, tt.want, IsEligible(c, tt.amount, tt.isVip, now))
		})
	}
}

func TestIsAvailableTo_IgnoresOrderAmount(t *testing.T) {
	c := welcomeCoupon()
	c.MinOrderValue = 1_000_000

	assert.True(t, IsAvailableTo(c, false, now))
}

func TestComputeDiscount(t *testing.T) {
	tests := []struct {
		name   string
		coupon entity.Coupon
		amount float64
		want   float64
	}{
		{"percentage under cap", entity.Coupon{DiscountType: entity.DiscountTypePercentage, DiscountValue: 10, MaxDiscount: ptr(100)}, 500, 50},
		{"percentage capped", entity.Coupon{DiscountType: entity.DiscountTypePercentage, DiscountValue: 10, MaxDiscount: ptr(100)}, 2000, 100},
		{"percentage without cap", entity.Coupon{DiscountType: entity.DiscountTypePercentage, DiscountValue: 15}, 2000, 300},
		{"zero cap means uncapped", entity.Coupon{DiscountType: entity.DiscountTypePercentage, DiscountValue: 15, MaxDiscount: ptr(0)}, 2000, 300},
		{"fixed", entity.Coupon{DiscountType: entity.DiscountTypeFixed, DiscountValue: 50}, 600, 50},
		{"fixed larger than order", entity.Coupon{DiscountType: entity.DiscountTypeFixed, DiscountValue: 50}, 30, 30},
		{"free item", entity.Coupon{DiscountType: entity.DiscountTypeFreeItem, DiscountValue: 1}, 600, 0},
		{"unknown type", entity.Coupon{DiscountType: "bogus", DiscountValue: 10}, 600, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ComputeDiscount(tt.coupon, tt.amount), 1e-9)
		})
	}
}

func TestApplyCoupon(t *testing.T) {
	t.Run("percentage scenario clamps to max discount", func(t *testing.T) {
		got := ApplyCoupon(welcomeCoupon(), 2000)
		assert.InDelta(t, 100, got.Discount, 1e-9)
		assert.InDelta(t, 1900, got.FinalAmount, 1e-9)
	})

	t.Run("below minimum order passes through", func(t *testing.T) {
		for _, amount := range []float64{0, 1, 150, 299.5} {
			got := ApplyCoupon(welcomeCoupon(), amount)
			assert.Zero(t, got.Discount)
			assert.Equal(t, amount, got.FinalAmount)
		}
	})

	t.Run("fixed never goes negative", func(t *testing.T) {
		c := entity.Coupon{DiscountType: entity.DiscountTypeFixed, DiscountValue: 500}
		got := ApplyCoupon(c, 200)
		assert.Zero(t, got.FinalAmount)
		assert.InDelta(t, 200, got.Discount, 1e-9)
	})
}
