package service

import (
	"time"

	"currypoint/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the custom claims for access tokens.
type Claims struct {
	CustomerID int         `json:"cid"`
	Role       entity.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and validates access tokens.
type TokenService interface {
	// GenerateToken creates a signed access token for a customer acting in role.
	GenerateToken(customerID int, role entity.Role) (token string, expiresAt time.Time, err error)

	// ValidateToken parses and verifies a token string.
	ValidateToken(tokenString string) (*Claims, error)
}
