package entity

import (
	"slices"
	"time"

	"currypoint/internal/errors"
)

// Ledger is the complete persisted state. Its JSON form, with exactly these
// five keys, is both the local snapshot and the export format.
type Ledger struct {
	Customers    []Customer    `json:"customers"`
	Transactions []Transaction `json:"transactions"`
	PaymentSlabs []PaymentSlab `json:"paymentSlabs"`
	Coupons      []Coupon      `json:"coupons"`
	Settings     Settings      `json:"settings"`
}

// Clone returns a copy whose slices can be modified without touching l.
func (l *Ledger) Clone() *Ledger {
	return &Ledger{
		Customers:    slices.Clone(l.Customers),
		Transactions: slices.Clone(l.Transactions),
		PaymentSlabs: slices.Clone(l.PaymentSlabs),
		Coupons:      slices.Clone(l.Coupons),
		Settings:     l.Settings,
	}
}

// Normalize replaces nil collections with empty ones so they encode as [] rather than null.
func (l *Ledger) Normalize() {
	if l.Customers == nil {
		l.Customers = []Customer{}
	}
	if l.Transactions == nil {
		l.Transactions = []Transaction{}
	}
	if l.PaymentSlabs == nil {
		l.PaymentSlabs = []PaymentSlab{}
	}
	if l.Coupons == nil {
		l.Coupons = []Coupon{}
	}
}

// Identified is implemented by every collection element.
type Identified interface {
	Identity() int
}

// NextID returns max(existing ids) + 1, so ids are never reused while the
// highest one survives.
func NextID[T Identified](items []T) int {
	maxID := 0
	for _, item := range items {
		maxID = max(maxID, item.Identity())
	}

	return maxID + 1
}

// FindByID returns the index of the element with id, or -1.
func FindByID[T Identified](items []T, id int) int {
	return slices.IndexFunc(items, func(item T) bool { return item.Identity() == id })
}

// localTimestampLayout is a timestamp without zone, read as UTC.
const localTimestampLayout = "2006-01-02T15:04:05"

// TimestampLayout is how new transaction dates are written: UTC, millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp accepts RFC 3339 timestamps, zone-less timestamps and bare
// calendar dates (UTC midnight).
func ParseTimestamp(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, localTimestampLayout} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parse timestamp %q", value)
	}

	return t, nil
}
