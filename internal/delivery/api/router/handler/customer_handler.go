package handler

import (
	"log/slog"
	"net/http"

	"currypoint/internal/delivery/api/response"
	"currypoint/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CustomerHandlerParams holds dependencies for CustomerHandler, injected by Fx.
type CustomerHandlerParams struct {
	fx.In

	CustomerUC usecase.CustomerUsecase
	Logger     *slog.Logger
}

// CustomerHandler holds dependencies for the admin customer handlers
type CustomerHandler struct {
	customerUC usecase.CustomerUsecase
	logger     *slog.Logger
}

// NewCustomerHandler is the constructor for CustomerHandler
func NewCustomerHandler(params CustomerHandlerParams) *CustomerHandler {
	return &CustomerHandler{
		customerUC: params.CustomerUC,
		logger:     params.Logger,
	}
}

// CreateCustomerRequest represents the request body for adding a customer.
// Points defaults to the welcome bonus when omitted.
type CreateCustomerRequest struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required,phone"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Points   *int   `json:"points" validate:"omitempty,gte=0"`
}

// UpdateCustomerRequest represents the request body for editing a customer.
// An empty password keeps the current one.
type UpdateCustomerRequest struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required,phone"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
	Points   int    `json:"points" validate:"gte=0"`
}

// CustomerWriteResponse is returned after a customer was changed
type CustomerWriteResponse struct {
	Customer CustomerView `json:"customer"`
	Write    WriteView    `json:"write"`
}

// ListCustomers handles listing customers, optionally filtered by ?search=
func (h *CustomerHandler) ListCustomers(c echo.Context) error {
	customers, err := h.customerUC.ListCustomers(c.Request().Context(), usecase.CustomerFilter{
		Search: c.QueryParam("search"),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newCustomerViews(customers))
}

// CreateCustomer handles adding a customer
func (h *CustomerHandler) CreateCustomer(c echo.Context) error {
	var req CreateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid customer input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	output, err := h.customerUC.CreateCustomer(c.Request().Context(), usecase.CreateCustomerInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: req.Password,
		Points:   req.Points,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newCustomerWriteResponse(output))
}

// UpdateCustomer handles editing a customer
func (h *CustomerHandler) UpdateCustomer(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid customer ID")
	}

	var req UpdateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid customer input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	output, err := h.customerUC.UpdateCustomer(c.Request().Context(), id, usecase.UpdateCustomerInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: req.Password,
		Points:   req.Points,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newCustomerWriteResponse(output))
}

// DeleteCustomer handles removing a customer
func (h *CustomerHandler) DeleteCustomer(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid customer ID")
	}

	write, err := h.customerUC.DeleteCustomer(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newWriteView(write))
}

// ToggleCustomerActive handles activating or deactivating a customer
func (h *CustomerHandler) ToggleCustomerActive(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid customer ID")
	}

	output, err := h.customerUC.ToggleCustomerActive(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newCustomerWriteResponse(output))
}

func newCustomerWriteResponse(output *usecase.CustomerOutput) CustomerWriteResponse {
	return CustomerWriteResponse{
		Customer: newCustomerView(*output.Customer),
		Write:    newWriteView(output.Write),
	}
}
