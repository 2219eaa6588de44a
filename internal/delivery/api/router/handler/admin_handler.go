package handler

import (
	"log/slog"
	"net/http"

	"currypoint/internal/delivery/api/response"
	"currypoint/internal/domain/entity"
	"currypoint/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AdminHandlerParams holds dependencies for AdminHandler, injected by Fx.
type AdminHandlerParams struct {
	fx.In

	DashboardUC usecase.DashboardUsecase
	SettingsUC  usecase.SettingsUsecase
	Logger      *slog.Logger
}

// AdminHandler serves the admin dashboard, the transaction log and the
// business settings
type AdminHandler struct {
	dashboardUC usecase.DashboardUsecase
	settingsUC  usecase.SettingsUsecase
	logger      *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler
func NewAdminHandler(params AdminHandlerParams) *AdminHandler {
	return &AdminHandler{
		dashboardUC: params.DashboardUC,
		settingsUC:  params.SettingsUC,
		logger:      params.Logger,
	}
}

// TransactionQuery filters the transaction log
type TransactionQuery struct {
	CustomerID int                    `query:"customerId" validate:"gte=0"`
	Type       entity.TransactionType `query:"type" validate:"omitempty,oneof=payment redemption"`
}

// SettingsRequest represents the request body for updating business settings
type SettingsRequest struct {
	BusinessName        string  `json:"businessName" validate:"required"`
	UpiID               string  `json:"upiId" validate:"required"`
	PointsToRupeeRatio  float64 `json:"pointsToRupeeRatio"`
	WelcomeBonusPoints  int     `json:"welcomeBonusPoints"`
	MinRedemptionPoints int     `json:"minRedemptionPoints"`
	VipThreshold        float64 `json:"vipThreshold"`
	VipPointsMultiplier float64 `json:"vipPointsMultiplier"`
}

// SlabRequest is one row of a replacement slab table
type SlabRequest struct {
	MinAmount float64 `json:"minAmount"`
	MaxAmount float64 `json:"maxAmount"`
	Points    int     `json:"points"`
}

// AdminDashboardResponse is the admin home screen
type AdminDashboardResponse struct {
	TotalCustomers     int                  `json:"totalCustomers"`
	ActiveCustomers    int                  `json:"activeCustomers"`
	VipCustomers       int                  `json:"vipCustomers"`
	TotalRevenue       float64              `json:"totalRevenue"`
	TotalTransactions  int                  `json:"totalTransactions"`
	TotalPointsIssued  int                  `json:"totalPointsIssued"`
	RecentCustomers    []CustomerView       `json:"recentCustomers"`
	RecentTransactions []entity.Transaction `json:"recentTransactions"`
}

// SlabsResponse is returned after the slab table was replaced
type SlabsResponse struct {
	Slabs []entity.PaymentSlab `json:"slabs"`
	Write WriteView            `json:"write"`
}

// SettingsResponse is returned after the settings were updated
type SettingsResponse struct {
	Settings entity.Settings `json:"settings"`
	Write    WriteView       `json:"write"`
}

// GetDashboard handles the admin dashboard
func (h *AdminHandler) GetDashboard(c echo.Context) error {
	dashboard, err := h.dashboardUC.AdminDashboard(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, AdminDashboardResponse{
		TotalCustomers:     dashboard.TotalCustomers,
		ActiveCustomers:    dashboard.ActiveCustomers,
		VipCustomers:       dashboard.VipCustomers,
		TotalRevenue:       dashboard.TotalRevenue,
		TotalTransactions:  dashboard.TotalTransactions,
		TotalPointsIssued:  dashboard.TotalPointsIssued,
		RecentCustomers:    newCustomerViews(dashboard.RecentCustomers),
		RecentTransactions: dashboard.RecentTransactions,
	})
}

// ListTransactions handles the transaction log, newest first
func (h *AdminHandler) ListTransactions(c echo.Context) error {
	var query TransactionQuery
	if err := c.Bind(&query); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid transaction filter")
	}

	if err := c.Validate(&query); err != nil {
		return response.ValidationError(c, err)
	}

	transactions, err := h.dashboardUC.ListTransactions(c.Request().Context(), usecase.TransactionFilter{
		CustomerID: query.CustomerID,
		Type:       query.Type,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, transactions)
}

// GetSettings handles reading the business settings
func (h *AdminHandler) GetSettings(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.settingsUC.GetSettings(c.Request().Context()))
}

// UpdateSettings handles replacing the business settings
func (h *AdminHandler) UpdateSettings(c echo.Context) error {
	var req SettingsRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid settings input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	settings := entity.Settings{
		BusinessName:        req.BusinessName,
		UpiID:               req.UpiID,
		PointsToRupeeRatio:  req.PointsToRupeeRatio,
		WelcomeBonusPoints:  req.WelcomeBonusPoints,
		MinRedemptionPoints: req.MinRedemptionPoints,
		VipThreshold:        req.VipThreshold,
		VipPointsMultiplier: req.VipPointsMultiplier,
	}

	write, err := h.settingsUC.UpdateSettings(c.Request().Context(), settings)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, SettingsResponse{
		Settings: settings,
		Write:    newWriteView(write),
	})
}

// ListSlabs handles reading the points slab table
func (h *AdminHandler) ListSlabs(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.settingsUC.ListSlabs(c.Request().Context()))
}

// ReplaceSlabs handles replacing the points slab table
func (h *AdminHandler) ReplaceSlabs(c echo.Context) error {
	var req []SlabRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid slab input")
	}

	inputs := make([]usecase.SlabInput, 0, len(req))
	for _, slab := range req {
		inputs = append(inputs, usecase.SlabInput{
			MinAmount: slab.MinAmount,
			MaxAmount: slab.MaxAmount,
			Points:    slab.Points,
		})
	}

	slabs, write, err := h.settingsUC.ReplaceSlabs(c.Request().Context(), inputs)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, SlabsResponse{
		Slabs: slabs,
		Write: newWriteView(write),
	})
}
