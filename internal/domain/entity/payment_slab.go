package entity

// PaymentSlab awards a flat number of points to any amount in [MinAmount, MaxAmount].
type PaymentSlab struct {
	ID        int     `json:"id"`
	MinAmount float64 `json:"minAmount"`
	MaxAmount float64 `json:"maxAmount"`
	Points    int     `json:"points"`
}

func (s PaymentSlab) Identity() int { return s.ID }

// Contains reports whether amount falls inside the slab, bounds inclusive.
func (s PaymentSlab) Contains(amount float64) bool {
	return amount >= s.MinAmount && amount <= s.MaxAmount
}
