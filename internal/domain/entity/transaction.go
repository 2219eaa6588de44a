package entity

import "time"

// TransactionType distinguishes earning from spending.
type TransactionType string

const (
	TransactionTypePayment    TransactionType = "payment"
	TransactionTypeRedemption TransactionType = "redemption"
)

// Transaction is an append-only ledger line. For payments Amount is the amount
// actually paid; for redemptions it is the rupee value redeemed.
type Transaction struct {
	ID             int             `json:"id"`
	CustomerID     int             `json:"customerId"`
	Amount         float64         `json:"amount"`
	PointsEarned   int             `json:"pointsEarned"`
	PointsRedeemed int             `json:"pointsRedeemed"`
	Date           string          `json:"date"` // RFC 3339
	Type           TransactionType `json:"type"`
	CouponUsed     string          `json:"couponUsed,omitempty"`
}

func (t Transaction) Identity() int { return t.ID }

// Time parses Date, returning the zero time when it is malformed.
func (t Transaction) Time() time.Time {
	parsed, err := ParseTimestamp(t.Date)
	if err != nil {
		return time.Time{}
	}

	return parsed
}
