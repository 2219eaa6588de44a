package usecase

import (
	"context"

	"currypoint/internal/domain/entity"
)

// RecentLimit bounds the "recent" lists of both dashboards.
const RecentLimit = 5

// AdminDashboard summarizes the whole ledger.
type AdminDashboard struct {
	TotalCustomers     int                  `json:"totalCustomers"`
	ActiveCustomers    int                  `json:"activeCustomers"`
	VipCustomers       int                  `json:"vipCustomers"`
	TotalRevenue       float64              `json:"totalRevenue"`
	TotalTransactions  int                  `json:"totalTransactions"`
	TotalPointsIssued  int                  `json:"totalPointsIssued"`
	RecentCustomers    []entity.Customer    `json:"recentCustomers"`
	RecentTransactions []entity.Transaction `json:"recentTransactions"`
}

// CustomerProfile is a customer together with the derived points figures.
type CustomerProfile struct {
	Customer      entity.Customer `json:"customer"`
	PointsValue   float64         `json:"pointsValue"`
	MaxRedeemable float64         `json:"maxRedeemable"`
	CanRedeem     bool            `json:"canRedeem"`
	SpendToVip    float64         `json:"spendToVip"`
	VipThreshold  float64         `json:"vipThreshold"`
}

// CustomerDashboard is what a signed-in customer sees.
type CustomerDashboard struct {
	Profile          CustomerProfile      `json:"profile"`
	TotalSpent       float64              `json:"totalSpent"`
	Transactions     []entity.Transaction `json:"transactions"`
	AvailableCoupons []entity.Coupon      `json:"availableCoupons"`
}

// TransactionFilter narrows ListTransactions. Zero values match everything.
type TransactionFilter struct {
	CustomerID int
	Type       entity.TransactionType
}

// DashboardUsecase builds the read-only views.
type DashboardUsecase interface {
	AdminDashboard(ctx context.Context) (*AdminDashboard, error)
	CustomerProfile(ctx context.Context, customerID int) (*CustomerProfile, error)
	CustomerDashboard(ctx context.Context, customerID int) (*CustomerDashboard, error)
	// ListTransactions returns matching transactions, newest first.
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]entity.Transaction, error)
}
