package hybrid

import (
	"context"
	"slices"

	"currypoint/internal/domain/entity"
	"currypoint/internal/domain/repository"
)

// ledgerUnit stages collection replacements on a private copy of the ledger.
// It reads from that copy only, so a unit never waits on the remote tier.
type ledgerUnit struct {
	g      *Gateway
	next   *entity.Ledger
	staged []repository.Collection
}

func newUnit(g *Gateway, base *entity.Ledger) *ledgerUnit {
	return &ledgerUnit{g: g, next: base.Clone()}
}

func (u *ledgerUnit) stage(c repository.Collection) {
	if !slices.Contains(u.staged, c) {
		u.staged = append(u.staged, c)
	}
}

// stagedCollections lists staged collections in snapshot order.
func (u *ledgerUnit) stagedCollections() []repository.Collection {
	ordered := make([]repository.Collection, 0, len(u.staged))
	for _, c := range repository.Collections() {
		if slices.Contains(u.staged, c) {
			ordered = append(ordered, c)
		}
	}

	return ordered
}

func (u *ledgerUnit) Customers(context.Context) []entity.Customer {
	return u.g.customers.get(u.next)
}

func (u *ledgerUnit) Transactions(context.Context) []entity.Transaction {
	return u.g.transactions.get(u.next)
}

func (u *ledgerUnit) PaymentSlabs(context.Context) []entity.PaymentSlab {
	return u.g.paymentSlabs.get(u.next)
}

func (u *ledgerUnit) Coupons(context.Context) []entity.Coupon {
	return u.g.coupons.get(u.next)
}

func (u *ledgerUnit) Settings(context.Context) entity.Settings {
	return u.g.settings.get(u.next)
}

func (u *ledgerUnit) SetCustomers(customers []entity.Customer) {
	u.g.customers.set(u.next, customers)
	u.stage(repository.CollectionCustomers)
}

func (u *ledgerUnit) SetTransactions(transactions []entity.Transaction) {
	u.g.transactions.set(u.next, transactions)
	u.stage(repository.CollectionTransactions)
}

func (u *ledgerUnit) SetPaymentSlabs(slabs []entity.PaymentSlab) {
	u.g.paymentSlabs.set(u.next, slabs)
	u.stage(repository.CollectionPaymentSlabs)
}

func (u *ledgerUnit) SetCoupons(coupons []entity.Coupon) {
	u.g.coupons.set(u.next, coupons)
	u.stage(repository.CollectionCoupons)
}

func (u *ledgerUnit) SetSettings(settings entity.Settings) {
	u.g.settings.set(u.next, settings)
	u.stage(repository.CollectionSettings)
}
