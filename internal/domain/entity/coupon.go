package entity

import "time"

// DiscountType selects how a coupon reduces an order.
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
	// DiscountTypeFreeItem is honoured out of band; it never reduces the amount.
	DiscountTypeFreeItem DiscountType = "freeItem"
)

// IsValid checks if the DiscountType is a valid value.
func (d DiscountType) IsValid() bool {
	switch d {
	case DiscountTypePercentage, DiscountTypeFixed, DiscountTypeFreeItem:
		return true
	default:
		return false
	}
}

// Coupon is a discount definition. Code is stored uppercase and is unique.
type Coupon struct {
	ID            int          `json:"id"`
	Code          string       `json:"code"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	DiscountType  DiscountType `json:"discountType"`
	DiscountValue float64      `json:"discountValue"`
	MinOrderValue float64      `json:"minOrderValue"`
	MaxDiscount   *float64     `json:"maxDiscount,omitempty"` // caps percentage discounts
	IsActive      bool         `json:"isActive"`
	ExpiryDate    string       `json:"expiryDate"`
	UsageLimit    int          `json:"usageLimit"`
	UsageCount    int          `json:"usageCount"`
	ForVipOnly    bool         `json:"forVipOnly"`
}

func (c Coupon) Identity() int { return c.ID }

// Expiry parses ExpiryDate. ok is false when the date is malformed.
func (c Coupon) Expiry() (expiry time.Time, ok bool) {
	parsed, err := ParseTimestamp(c.ExpiryDate)
	if err != nil {
		return time.Time{}, false
	}

	return parsed, true
}
