package middleware

import (
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"currypoint/config"
	deliverycontext "currypoint/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// quietPaths are polled often enough that logging them drowns everything else.
var quietPaths = map[string]struct{}{ //nolint:gochecknoglobals
	"/health":                    {},
	"/api/v1/admin/sync/status": {},
}

// LoggerMiddleware writes one access log line per request when debug is on
type LoggerMiddleware struct {
	logger *slog.Logger
	debug  bool
}

func NewLoggerMiddleware(logger *slog.Logger, config *config.Config) *LoggerMiddleware {
	return &LoggerMiddleware{
		logger: logger,
		debug:  config.Env.Debug,
	}
}

func (m *LoggerMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !m.debug {
			return next(c)
		}

		start := time.Now()
		err := next(c)
		m.logRequest(c, start, err)

		return err
	}
}

func (m *LoggerMiddleware) logRequest(c echo.Context, start time.Time, err error) {
	req := c.Request()
	res := c.Response()

	level := levelFor(res.Status)
	if _, quiet := quietPaths[req.URL.Path]; quiet && level == slog.LevelInfo {
		return
	}

	attrs := []slog.Attr{
		slog.String("method", req.Method),
		slog.String("uri", req.URL.Path),
		slog.Int("status", res.Status),
		slog.Duration("latency", time.Since(start)),
		slog.Int64("bytes_out", res.Size),
		slog.String("remote_ip", c.RealIP()),
	}
	if req.URL.RawQuery != "" {
		attrs = append(attrs, slog.String("query", redactQuery(req.URL.Query())))
	}
	if principal, ok := deliverycontext.GetPrincipal(c); ok {
		attrs = append(attrs,
			slog.Int("customer_id", principal.CustomerID),
			slog.String("role", principal.Role.String()),
		)
	}
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}

	deliverycontext.GetLoggerOrDefault(req.Context(), m.logger).
		LogAttrs(req.Context(), level, "HTTP Request", attrs...)
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// redactQuery drops token values so event stream URLs do not leak credentials.
func redactQuery(values map[string][]string) string {
	parts := make([]string, 0, len(values))
	for key, vals := range values {
		if key == "access_token" {
			parts = append(parts, key+"=REDACTED")

			continue
		}
		parts = append(parts, key+"="+strings.Join(vals, ","))
	}
	sort.Strings(parts)

	return strings.Join(parts, "&")
}
