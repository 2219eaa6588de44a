package impl

import (
	"cmp"
	"context"
	"log/slog"
	"slices"

	deliverycontext "currypoint/internal/delivery/context"
	"currypoint/internal/domain/entity"
	"currypoint/internal/domain/loyalty"
	"currypoint/internal/domain/repository"
	"currypoint/internal/usecase"

	"go.uber.org/fx"
)

type dashboardService struct {
	store  repository.LedgerStore
	now    Clock
	logger *slog.Logger
}

// DashboardServiceParams holds dependencies for DashboardService, injected by Fx.
type DashboardServiceParams struct {
	fx.In

	Store  repository.LedgerStore
	Logger *slog.Logger
	Clock  Clock `optional:"true"`
}

func NewDashboardService(params DashboardServiceParams) usecase.DashboardUsecase {
	return &dashboardService{
		store:  params.Store,
		now:    clockOrDefault(params.Clock),
		logger: params.Logger,
	}
}

func (srv *dashboardService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// newestTransactionsFirst sorts in place by date, ties broken by id.
func newestTransactionsFirst(transactions []entity.Transaction) {
	slices.SortStableFunc(transactions, func(a, b entity.Transaction) int {
		if c := b.Time().Compare(a.Time()); c != 0 {
			return c
		}

		return cmp.Compare(b.ID, a.ID)
	})
}

func newestCustomersFirst(customers []entity.Customer) {
	slices.SortStableFunc(customers, func(a, b entity.Customer) int {
		if c := cmp.Compare(b.CreatedAt, a.CreatedAt); c != 0 {
			return c
		}

		return cmp.Compare(b.ID, a.ID)
	})
}

func (srv *dashboardService) AdminDashboard(ctx context.Context) (*usecase.AdminDashboard, error) {
	customers := srv.store.Customers(ctx)
	transactions := srv.store.Transactions(ctx)

	dashboard := &usecase.AdminDashboard{
		TotalCustomers:    len(customers),
		TotalTransactions: len(transactions),
	}
	for _, c := range customers {
		if c.IsActive {
			dashboard.ActiveCustomers++
		}
		if c.IsVip {
			dashboard.VipCustomers++
		}
	}
	for _, t := range transactions {
		if t.Type == entity.TransactionTypePayment {
			dashboard.TotalRevenue += t.Amount
		}
		dashboard.TotalPointsIssued += t.PointsEarned
	}

	newestCustomersFirst(customers)
	newestTransactionsFirst(transactions)
	dashboard.RecentCustomers = customers[:min(usecase.RecentLimit, len(customers))]
	dashboard.RecentTransactions = transactions[:min(usecase.RecentLimit, len(transactions))]

	srv.log(ctx).Debug("Admin dashboard built", slog.Int("customers", dashboard.TotalCustomers))

	return dashboard, nil
}

func (srv *dashboardService) profile(ctx context.Context, customerID int) (*usecase.CustomerProfile, error) {
	customers := srv.store.Customers(ctx)
	idx, err := customerIndex(customers, customerID)
	if err != nil {
		return nil, err
	}
	customer := customers[idx]

	settings := srv.store.Settings(ctx)
	calc := loyalty.NewCalculator(srv.store.PaymentSlabs(ctx), settings)

	return &usecase.CustomerProfile{
		Customer:      customer,
		PointsValue:   calc.Value(customer.Points),
		MaxRedeemable: calc.MaxRedeemable(customer.Points),
		CanRedeem:     calc.CanRedeem(customer.Points),
		SpendToVip:    calc.SpendToVip(customer.TotalSpent),
		VipThreshold:  settings.VipThreshold,
	}, nil
}

func (srv *dashboardService) CustomerProfile(ctx context.Context, customerID int) (*usecase.CustomerProfile, error) {
	return srv.profile(ctx, customerID)
}

func (srv *dashboardService) CustomerDashboard(ctx context.Context, customerID int) (*usecase.CustomerDashboard, error) {
	profile, err := srv.profile(ctx, customerID)
	if err != nil {
		return nil, err
	}

	transactions, err := srv.ListTransactions(ctx, usecase.TransactionFilter{CustomerID: customerID})
	if err != nil {
		return nil, err
	}

	return &usecase.CustomerDashboard{
		Profile:          *profile,
		TotalSpent:       profile.Customer.TotalSpent,
		Transactions:     transactions,
		AvailableCoupons: availableTo(srv.store.Coupons(ctx), profile.Customer.IsVip, srv.now),
	}, nil
}

func (srv *dashboardService) ListTransactions(ctx context.Context, filter usecase.TransactionFilter) ([]entity.Transaction, error) {
	transactions := slices.DeleteFunc(srv.store.Transactions(ctx), func(t entity.Transaction) bool {
		if filter.CustomerID != 0 && t.CustomerID != filter.CustomerID {
			return true
		}

		return filter.Type != "" && t.Type != filter.Type
	})
	newestTransactionsFirst(transactions)

	return transactions, nil
}
