package middleware

import (
	"strings"

	"currypoint/internal/delivery/api/response"
	deliverycontext "currypoint/internal/delivery/context"
	"currypoint/internal/domain/entity"
	"currypoint/internal/domain/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const bearerPrefix = "Bearer "

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	TokenService service.TokenService
}

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: params.TokenService}
}

// Authenticate validates the bearer access token and stores the caller's
// principal on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, ok := bearerToken(c)
		if !ok {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header must carry a Bearer token")
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		if claims.CustomerID <= 0 || !claims.Role.IsValid() {
			return response.Unauthorized(c, "INVALID_TOKEN", "Token is missing customer information")
		}

		deliverycontext.SetPrincipal(c, deliverycontext.Principal{
			CustomerID: claims.CustomerID,
			Role:       claims.Role,
		})

		return next(c)
	}
}

// RequireRole checks the authenticated principal's role.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := deliverycontext.GetPrincipal(c)
			if !ok {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: role information missing")
			}

			if principal.Role != requiredRole {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: require '"+requiredRole.String()+"' role")
			}

			return next(c)
		}
	}
}

// bearerToken extracts the token from the Authorization header. EventSource
// clients cannot set headers, so the access_token query parameter is accepted
// as a fallback.
func bearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		token := c.QueryParam("access_token")

		return token, token != ""
	}

	token := strings.TrimPrefix(authHeader, bearerPrefix)
	if token == authHeader || token == "" {
		return "", false
	}

	return token, true
}
