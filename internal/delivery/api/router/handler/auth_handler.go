package handler

import (
	"log/slog"
	"net/http"
	"time"

	"currypoint/internal/delivery/api/response"
	"currypoint/internal/domain/entity"
	"currypoint/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Logger *slog.Logger
}

// AuthHandler holds dependencies for registration and login
type AuthHandler struct {
	authUC usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC: params.AuthUC,
		logger: params.Logger,
	}
}

// RegisterRequest represents the request body for customer registration
type RegisterRequest struct {
	Name            string `json:"name" validate:"required"`
	Phone           string `json:"phone" validate:"required,phone"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned after a successful registration or login
type AuthResponse struct {
	Customer    CustomerView `json:"customer"`
	Role        entity.Role  `json:"role"`
	AccessToken string       `json:"accessToken"`
	ExpiresAt   time.Time    `json:"expiresAt"`
}

// Register handles customer self-registration
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	output, err := h.authUC.Register(c.Request().Context(), usecase.RegisterInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newAuthResponse(output))
}

// Login handles phone and password login
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	output, err := h.authUC.Login(c.Request().Context(), usecase.LoginInput{
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAuthResponse(output))
}

func newAuthResponse(output *usecase.AuthOutput) AuthResponse {
	return AuthResponse{
		Customer:    newCustomerView(*output.Customer),
		Role:        output.Role,
		AccessToken: output.AccessToken,
		ExpiresAt:   output.ExpiresAt,
	}
}

// HealthCheck reports that the process is serving requests
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
