package context

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"currypoint/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEchoContext() echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	return e.NewContext(req, httptest.NewRecorder())
}

func TestRequestID(t *testing.T) {
	c := newEchoContext()
	assert.Empty(t, GetRequestID(c))

	c.Request().Header.Set(HeaderXRequestID, "from-header")
	assert.Equal(t, "from-header", GetRequestID(c))

	SetRequestID(c, "req-1")
	assert.Equal(t, "req-1", GetRequestID(c))

	ctx := WithRequestID(context.Background(), "req-2")
	assert.Equal(t, "req-2", GetRequestIDFromContext(ctx))
	assert.Empty(t, GetRequestIDFromContext(context.Background()))
}

func TestLoggerOrDefault(t *testing.T) {
	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))
	scoped := fallback.With("request_id", "abc")

	assert.Same(t, fallback, GetLoggerOrDefault(context.Background(), fallback))
	assert.Same(t, scoped, GetLoggerOrDefault(WithLogger(context.Background(), scoped), fallback))
}

func TestPrincipal(t *testing.T) {
	c := newEchoContext()
	_, ok := GetPrincipal(c)
	assert.False(t, ok)

	SetPrincipal(c, Principal{CustomerID: 2, Role: entity.RoleAdmin})

	principal, ok := GetPrincipal(c)
	require.True(t, ok)
	assert.True(t, principal.IsAdmin())

	fromCtx, ok := GetPrincipalFromContext(c.Request().Context())
	require.True(t, ok)
	assert.Equal(t, 2, fromCtx.CustomerID)
}

func TestSetPrincipalTagsRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	c := newEchoContext()
	c.SetRequest(c.Request().WithContext(WithLogger(c.Request().Context(), base)))

	SetPrincipal(c, Principal{CustomerID: 1, Role: entity.RoleCustomer})
	GetLoggerOrDefault(c.Request().Context(), nil).Info("payment recorded")

	assert.Contains(t, buf.String(), `"customer_id":1`)
	assert.Contains(t, buf.String(), `"role":"customer"`)
}
