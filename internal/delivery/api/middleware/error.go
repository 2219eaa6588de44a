package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"currypoint/internal/delivery/api/response"
	deliverycontext "currypoint/internal/delivery/context"
	domainerrors "currypoint/internal/domain/errors"
	"currypoint/internal/domain/repository"
	"currypoint/internal/errors"

	"github.com/labstack/echo/v4"
)

// ErrorMiddleware renders every handler error as the standard envelope
type ErrorMiddleware struct {
	logger *slog.Logger
}

func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError is installed as echo's HTTPErrorHandler.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)

	if c.Response().Committed {
		logger.Error("Error after response was committed",
			slog.Any("error", err),
			slog.String("path", c.Request().URL.Path),
		)

		return
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			logger.Error("Request failed", slog.String("code", appErr.ErrorCode()), slog.Any("error", err))
		}
		_ = response.HandleAppError(c, appErr)

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
		_ = response.Error(c, httpErr.Code, httpErrorCode(httpErr.Code), message, nil)

		return
	}

	switch {
	case errors.Is(err, context.Canceled):
		logger.Debug("Client went away", slog.String("path", c.Request().URL.Path))

		return
	case errors.Is(err, repository.ErrLedgerClosed):
		_ = response.Error(c, http.StatusServiceUnavailable, "LEDGER_CLOSED", "Service is shutting down", nil)

		return
	}

	logger.Error("Unhandled error",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)
	_ = response.InternalServerError(c, "INTERNAL_ERROR", "Internal server error, please try again later")
}

func httpErrorCode(status int) string {
	switch status {
	case http.StatusNotFound:
		return "ROUTE_NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusRequestEntityTooLarge:
		return "BODY_TOO_LARGE"
	case http.StatusUnsupportedMediaType:
		return "UNSUPPORTED_MEDIA_TYPE"
	default:
		return "HTTP_ERROR"
	}
}
