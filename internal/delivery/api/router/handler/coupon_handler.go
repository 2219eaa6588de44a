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

// CouponHandlerParams holds dependencies for CouponHandler, injected by Fx.
type CouponHandlerParams struct {
	fx.In

	CouponUC usecase.CouponUsecase
	Logger   *slog.Logger
}

// CouponHandler holds dependencies for the admin coupon handlers
type CouponHandler struct {
	couponUC usecase.CouponUsecase
	logger   *slog.Logger
}

// NewCouponHandler is the constructor for CouponHandler
func NewCouponHandler(params CouponHandlerParams) *CouponHandler {
	return &CouponHandler{
		couponUC: params.CouponUC,
		logger:   params.Logger,
	}
}

// CouponRequest represents the request body for creating or editing a coupon
type CouponRequest struct {
	Code          string              `json:"code" validate:"required"`
	Title         string              `json:"title" validate:"required"`
	Description   string              `json:"description"`
	DiscountType  entity.DiscountType `json:"discountType" validate:"required,oneof=percentage fixed freeItem"`
	DiscountValue float64             `json:"discountValue" validate:"gte=0"`
	MinOrderValue float64             `json:"minOrderValue" validate:"gte=0"`
	MaxDiscount   *float64            `json:"maxDiscount" validate:"omitempty,gte=0"`
	ExpiryDate    string              `json:"expiryDate" validate:"required"`
	UsageLimit    int                 `json:"usageLimit" validate:"gte=0"`
	ForVipOnly    bool                `json:"forVipOnly"`
}

// CouponWriteResponse is returned after a coupon was changed
type CouponWriteResponse struct {
	Coupon entity.Coupon `json:"coupon"`
	Write  WriteView     `json:"write"`
}

func (r CouponRequest) toInput() usecase.CouponInput {
	return usecase.CouponInput{
		Code:          r.Code,
		Title:         r.Title,
		Description:   r.Description,
		DiscountType:  r.DiscountType,
		DiscountValue: r.DiscountValue,
		MinOrderValue: r.MinOrderValue,
		MaxDiscount:   r.MaxDiscount,
		ExpiryDate:    r.ExpiryDate,
		UsageLimit:    r.UsageLimit,
		ForVipOnly:    r.ForVipOnly,
	}
}

// ListCoupons handles listing every coupon
func (h *CouponHandler) ListCoupons(c echo.Context) error {
	coupons, err := h.couponUC.ListCoupons(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, coupons)
}

// CreateCoupon handles adding a coupon
func (h *CouponHandler) CreateCoupon(c echo.Context) error {
	var req CouponRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid coupon input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	output, err := h.couponUC.CreateCoupon(c.Request().Context(), req.toInput())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newCouponWriteResponse(output))
}

// UpdateCoupon handles editing a coupon
func (h *CouponHandler) UpdateCoupon(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid coupon ID")
	}

	var req CouponRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid coupon input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	output, err := h.couponUC.UpdateCoupon(c.Request().Context(), id, req.toInput())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newCouponWriteResponse(output))
}

// DeleteCoupon handles removing a coupon
func (h *CouponHandler) DeleteCoupon(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid coupon ID")
	}

	write, err := h.couponUC.DeleteCoupon(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newWriteView(write))
}

// ToggleCouponActive handles activating or deactivating a coupon
func (h *CouponHandler) ToggleCouponActive(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid coupon ID")
	}

	output, err := h.couponUC.ToggleCouponActive(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newCouponWriteResponse(output))
}

func newCouponWriteResponse(output *usecase.CouponOutput) CouponWriteResponse {
	return CouponWriteResponse{
		Coupon: *output.Coupon,
		Write:  newWriteView(output.Write),
	}
}
