package context

import (
	"context"
	"log/slog"

	"currypoint/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// KeyPrincipal is the key for storing the authenticated caller.
const KeyPrincipal ContextKey = "principal"

// Principal is the authenticated caller of a request.
type Principal struct {
	CustomerID int
	Role       entity.Role
}

// IsAdmin reports whether the caller acts as the administrator.
func (p Principal) IsAdmin() bool {
	return p.Role == entity.RoleAdmin
}

// SetPrincipal stores the caller in both echo.Context and the request
// context. A request-scoped logger already in place is tagged with the caller.
func SetPrincipal(c echo.Context, principal Principal) {
	c.Set(string(KeyPrincipal), principal)

	ctx := WithPrincipal(c.Request().Context(), principal)
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok && logger != nil {
		ctx = WithLogger(ctx, logger.With(
			slog.Int("customer_id", principal.CustomerID),
			slog.String("role", principal.Role.String()),
		))
	}
	c.SetRequest(c.Request().WithContext(ctx))
}

// GetPrincipal extracts the caller from echo.Context.
func GetPrincipal(c echo.Context) (Principal, bool) {
	principal, ok := c.Get(string(KeyPrincipal)).(Principal)

	return principal, ok
}

// WithPrincipal returns a new context with the caller.
func WithPrincipal(ctx context.Context, principal Principal) context.Context {
	return context.WithValue(ctx, KeyPrincipal, principal)
}

// GetPrincipalFromContext extracts the caller from standard context.Context.
func GetPrincipalFromContext(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(KeyPrincipal).(Principal)

	return principal, ok
}
