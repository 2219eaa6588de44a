// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"currypoint/internal/errors"
)

// Collection names one of the five ledger collections. The set is closed;
// every switch over it handles all five.
type Collection string

const (
	CollectionCustomers    Collection = "customers"
	CollectionTransactions Collection = "transactions"
	CollectionPaymentSlabs Collection = "paymentSlabs"
	CollectionCoupons      Collection = "coupons"
	CollectionSettings     Collection = "settings"
)

// ErrUnknownCollection is returned when a name is not one of the five collections.
var ErrUnknownCollection = errors.New("unknown collection")

// Collections lists every collection in snapshot order.
func Collections() []Collection {
	return []Collection{
		CollectionCustomers,
		CollectionTransactions,
		CollectionPaymentSlabs,
		CollectionCoupons,
		CollectionSettings,
	}
}

func (c Collection) String() string {
	return string(c)
}

// IsValid checks if the Collection is a valid value.
func (c Collection) IsValid() bool {
	switch c {
	case CollectionCustomers, CollectionTransactions, CollectionPaymentSlabs, CollectionCoupons, CollectionSettings:
		return true
	default:
		return false
	}
}

// ParseCollection converts a wire name into a Collection.
func ParseCollection(name string) (Collection, error) {
	c := Collection(name)
	if !c.IsValid() {
		return "", errors.Wrapf(ErrUnknownCollection, "%q", name)
	}

	return c, nil
}
