// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"currypoint/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new customer.
type RegisterInput struct {
	Name     string
	Phone    string
	Email    string
	Password string
}

// LoginInput defines the data required for a customer to log in.
type LoginInput struct {
	Phone    string
	Password string
}

// --- Output DTOs ---

// AuthOutput is returned by both registration and login. Registration logs the
// new customer in straight away.
type AuthOutput struct {
	Customer    *entity.Customer
	Role        entity.Role
	AccessToken string
	ExpiresAt   time.Time
}

// AuthUsecase defines the interface for customer authentication.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, input LoginInput) (*AuthOutput, error)
}
