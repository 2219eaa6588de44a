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

// PaymentHandlerParams holds dependencies for PaymentHandler, injected by Fx.
type PaymentHandlerParams struct {
	fx.In

	PaymentUC usecase.PaymentUsecase
	Logger    *slog.Logger
}

// PaymentHandler holds dependencies for payment and redemption handlers
type PaymentHandler struct {
	paymentUC usecase.PaymentUsecase
	logger    *slog.Logger
}

// NewPaymentHandler is the constructor for PaymentHandler
func NewPaymentHandler(params PaymentHandlerParams) *PaymentHandler {
	return &PaymentHandler{
		paymentUC: params.PaymentUC,
		logger:    params.Logger,
	}
}

// PaymentRequest represents an order amount with an optional coupon code.
// Amounts are checked by the use case so the error code stays INVALID_AMOUNT.
type PaymentRequest struct {
	Amount     float64 `json:"amount" query:"amount"`
	CouponCode string  `json:"couponCode" query:"coupon"`
}

// RedeemRequest represents the request body for spending points
type RedeemRequest struct {
	Amount float64 `json:"amount"`
}

// PaymentResponse is returned after a payment was recorded
type PaymentResponse struct {
	Customer    CustomerView       `json:"customer"`
	Transaction entity.Transaction `json:"transaction"`
	Discount    float64            `json:"discount"`
	BecameVip   bool               `json:"becameVip"`
	Write       WriteView          `json:"write"`
}

// RedemptionResponse is returned after points were redeemed
type RedemptionResponse struct {
	Customer    CustomerView       `json:"customer"`
	Transaction entity.Transaction `json:"transaction"`
	Write       WriteView          `json:"write"`
}

// Quote handles previewing discount, points and UPI link for an order
func (h *PaymentHandler) Quote(c echo.Context) error {
	principal, ok := deliverycontext.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid customer ID in token")
	}

	var req PaymentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid payment input")
	}

	quote, err := h.paymentUC.Quote(c.Request().Context(), usecase.QuoteInput{
		CustomerID: principal.CustomerID,
		Amount:     req.Amount,
		CouponCode: req.CouponCode,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, quote)
}

// PaymentQR handles rendering the UPI payment link as a PNG
func (h *PaymentHandler) PaymentQR(c echo.Context) error {
	principal, ok := deliverycontext.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid customer ID in token")
	}

	var req PaymentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid payment input")
	}

	png, err := h.paymentUC.PaymentQR(c.Request().Context(), usecase.QuoteInput{
		CustomerID: principal.CustomerID,
		Amount:     req.Amount,
		CouponCode: req.CouponCode,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// RecordPayment handles confirming a completed payment
func (h *PaymentHandler) RecordPayment(c echo.Context) error {
	principal, ok := deliverycontext.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid customer ID in token")
	}

	var req PaymentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid payment input")
	}

	output, err := h.paymentUC.RecordPayment(c.Request().Context(), usecase.RecordPaymentInput{
		CustomerID: principal.CustomerID,
		Amount:     req.Amount,
		CouponCode: req.CouponCode,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, PaymentResponse{
		Customer:    newCustomerView(*output.Customer),
		Transaction: *output.Transaction,
		Discount:    output.Discount,
		BecameVip:   output.BecameVip,
		Write:       newWriteView(output.Write),
	})
}

// RedeemPoints handles spending points for a rupee amount
func (h *PaymentHandler) RedeemPoints(c echo.Context) error {
	principal, ok := deliverycontext.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid customer ID in token")
	}

	var req RedeemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid redemption input")
	}

	output, err := h.paymentUC.RedeemPoints(c.Request().Context(), usecase.RedeemInput{
		CustomerID: principal.CustomerID,
		Rupees:     req.Amount,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, RedemptionResponse{
		Customer:    newCustomerView(*output.Customer),
		Transaction: *output.Transaction,
		Write:       newWriteView(output.Write),
	})
}
