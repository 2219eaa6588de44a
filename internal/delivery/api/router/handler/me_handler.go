package handler

import (
	"log/slog"
	"net/http"

	"currypoint/internal/delivery/api/response"
	deliverycontext "currypoint/internal/delivery/context"
	"currypoint/internal/domain/entity"
	"currypoint/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// MeHandlerParams holds dependencies for MeHandler, injected by Fx.
type MeHandlerParams struct {
	fx.In

	DashboardUC usecase.DashboardUsecase
	CouponUC    usecase.CouponUsecase
	Logger      *slog.Logger
}

// MeHandler serves the signed-in customer's own views
type MeHandler struct {
	dashboardUC usecase.DashboardUsecase
	couponUC    usecase.CouponUsecase
	logger      *slog.Logger
}

// NewMeHandler is the constructor for MeHandler
func NewMeHandler(params MeHandlerParams) *MeHandler {
	return &MeHandler{
		dashboardUC: params.DashboardUC,
		couponUC:    params.CouponUC,
		logger:      params.Logger,
	}
}

// CustomerDashboardResponse is the signed-in customer's home screen
type CustomerDashboardResponse struct {
	Profile          ProfileView          `json:"profile"`
	TotalSpent       float64              `json:"totalSpent"`
	Transactions     []entity.Transaction `json:"transactions"`
	AvailableCoupons []entity.Coupon      `json:"availableCoupons"`
}

// GetProfile handles retrieving the caller's profile and points figures
func (h *MeHandler) GetProfile(c echo.Context) error {
	principal, ok := deliverycontext.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid customer ID in token")
	}

	profile, err := h.dashboardUC.CustomerProfile(c.Request().Context(), principal.CustomerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newProfileView(*profile))
}

// GetDashboard handles retrieving the caller's dashboard
func (h *MeHandler) GetDashboard(c echo.Context) error {
	principal, ok := deliverycontext.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid customer ID in token")
	}

	dashboard, err := h.dashboardUC.CustomerDashboard(c.Request().Context(), principal.CustomerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, CustomerDashboardResponse{
		Profile:          newProfileView(dashboard.Profile),
		TotalSpent:       dashboard.TotalSpent,
		Transactions:     dashboard.Transactions,
		AvailableCoupons: dashboard.AvailableCoupons,
	})
}

// GetCoupons handles listing the coupons the caller may use
func (h *MeHandler) GetCoupons(c echo.Context) error {
	principal, ok := deliverycontext.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid customer ID in token")
	}

	coupons, err := h.couponUC.AvailableCoupons(c.Request().Context(), principal.CustomerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, coupons)
}
