package api

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"currypoint/config"
	"currypoint/internal/delivery/api/middleware"
	"currypoint/internal/delivery/api/router"
	"currypoint/internal/delivery/api/router/handler"
	"currypoint/internal/domain/repository"
	"currypoint/internal/infra/auth"
	"currypoint/internal/infra/persistence/hybrid"
	"currypoint/internal/infra/persistence/local"
	"currypoint/internal/infra/pubsub"
	"currypoint/internal/infra/qrcode"
	"currypoint/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	johnPhone  = "+91 9876543210"
	adminPhone = "+91 9999999999"
)

var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.HTTP.MaxRequestBodySize = "1MB"
	cfg.SecretKey.Access = "test-access-secret"
	cfg.Auth = &config.AuthConfig{TokenTTL: time.Hour, AdminPhone: adminPhone}
	cfg.QRCode = &config.QRCodeConfig{Size: 128, ErrorCorrectionLevel: "M"}

	return cfg
}

// newTestEcho wires the full HTTP stack over a seeded in-memory ledger.
func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()

	ctx := context.Background()
	cfg := newTestConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hasher := auth.NewBcryptHasherWithCost(bcrypt.MinCost)
	notifier := pubsub.NewMemoryNotifier(logger)
	t.Cleanup(func() { _ = notifier.Close() })

	store, err := local.Open(ctx, "mem://", "curryPoint", hasher, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	gateway := hybrid.New(hybrid.Options{
		Mode:     repository.SyncModeLocal,
		Local:    store,
		Notifier: notifier,
		Logger:   logger,
	})
	require.NoError(t, gateway.Start(ctx))
	t.Cleanup(func() { _ = gateway.Close(context.Background()) })

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	clock := impl.Clock(func() time.Time { return testNow })

	authUC := impl.NewAuthService(impl.AuthServiceParams{
		Store: gateway, Hasher: hasher, TokenService: tokens, Config: cfg, Logger: logger, Clock: clock,
	})
	customerUC := impl.NewCustomerService(impl.CustomerServiceParams{
		Store: gateway, Hasher: hasher, Logger: logger, Clock: clock,
	})
	paymentUC := impl.NewPaymentService(impl.PaymentServiceParams{
		Store: gateway, QRCodeService: qrcode.NewFromConfig(cfg), Logger: logger, Clock: clock,
	})
	couponUC := impl.NewCouponService(impl.CouponServiceParams{Store: gateway, Logger: logger, Clock: clock})
	settingsUC := impl.NewSettingsService(impl.SettingsServiceParams{Store: gateway, Logger: logger})
	dashboardUC := impl.NewDashboardService(impl.DashboardServiceParams{Store: gateway, Logger: logger, Clock: clock})
	syncUC := impl.NewSyncService(impl.SyncServiceParams{Sync: gateway, Logger: logger})

	return newEcho(cfg, logger, router.RouterParams{
		AuthHandler:     handler.NewAuthHandler(handler.AuthHandlerParams{AuthUC: authUC, Logger: logger}),
		MeHandler:       handler.NewMeHandler(handler.MeHandlerParams{DashboardUC: dashboardUC, CouponUC: couponUC, Logger: logger}),
		PaymentHandler:  handler.NewPaymentHandler(handler.PaymentHandlerParams{PaymentUC: paymentUC, Logger: logger}),
		EventsHandler:   handler.NewEventsHandler(handler.EventsHandlerParams{Notifier: notifier, Logger: logger}),
		CustomerHandler: handler.NewCustomerHandler(handler.CustomerHandlerParams{CustomerUC: customerUC, Logger: logger}),
		CouponHandler:   handler.NewCouponHandler(handler.CouponHandlerParams{CouponUC: couponUC, Logger: logger}),
		AdminHandler:    handler.NewAdminHandler(handler.AdminHandlerParams{DashboardUC: dashboardUC, SettingsUC: settingsUC, Logger: logger}),
		SyncHandler:     handler.NewSyncHandler(handler.SyncHandlerParams{SyncUC: syncUC, Logger: logger}),
		AuthMiddleware:  middleware.NewAuthMiddleware(middleware.AuthMiddlewareParams{TokenService: tokens}),
	})
}

func doRequest(t *testing.T, e *echo.Echo, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())

	return env
}

func login(t *testing.T, e *echo.Echo, phone, password string) string {
	t.Helper()

	rec := doRequest(t, e, http.MethodPost, "/auth/login", "", map[string]string{
		"phone":    phone,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var data struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &data))
	require.NotEmpty(t, data.AccessToken)

	return data.AccessToken
}

func TestServer_Health(t *testing.T) {
	e := newTestEcho(t)

	rec := doRequest(t, e, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeEnvelope(t, rec).Success)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestServer_Authorization(t *testing.T) {
	e := newTestEcho(t)
	customerToken := login(t, e, johnPhone, "1234")
	adminToken := login(t, e, adminPhone, "admin")

	tests := []struct {
		name     string
		path     string
		token    string
		wantCode int
		wantErr  string
	}{
		{name: "missing token", path: "/api/v1/me", wantCode: http.StatusUnauthorized, wantErr: "MISSING_TOKEN"},
		{name: "garbage token", path: "/api/v1/me", token: "not-a-jwt", wantCode: http.StatusUnauthorized, wantErr: "INVALID_TOKEN"},
		{name: "customer on own profile", path: "/api/v1/me", token: customerToken, wantCode: http.StatusOK},
		{name: "customer on admin route", path: "/api/v1/admin/dashboard", token: customerToken, wantCode: http.StatusForbidden, wantErr: "FORBIDDEN"},
		{name: "admin on admin route", path: "/api/v1/admin/dashboard", token: adminToken, wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, e, http.MethodGet, tt.path, tt.token, nil)

			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			if tt.wantErr != "" {
				env := decodeEnvelope(t, rec)
				assert.False(t, env.Success)
				require.NotNil(t, env.Error)
				assert.Equal(t, tt.wantErr, env.Error.Code)
			}
		})
	}
}

func TestServer_LoginRejectsWrongPassword(t *testing.T) {
	e := newTestEcho(t)

	rec := doRequest(t, e, http.MethodPost, "/auth/login", "", map[string]string{
		"phone":    johnPhone,
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", decodeEnvelope(t, rec).Error.Code)
}

func TestServer_ProfileHidesPasswordHash(t *testing.T) {
	e := newTestEcho(t)
	token := login(t, e, johnPhone, "1234")

	rec := doRequest(t, e, http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.NotContains(t, rec.Body.String(), "password")

	var profile handler.ProfileView
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &profile))
	assert.Equal(t, 125, profile.Customer.Points)
	assert.InDelta(t, 62.5, profile.PointsValue, 1e-9)
	assert.True(t, profile.CanRedeem)
}

func TestServer_Register(t *testing.T) {
	e := newTestEcho(t)

	tests := []struct {
		name      string
		body      map[string]string
		wantCode  int
		wantErr   string
		wantField string
	}{
		{
			name: "success",
			body: map[string]string{
				"name": "Priya", "phone": "+91 9000000001", "email": "priya@example.com",
				"password": "secret", "confirmPassword": "secret",
			},
			wantCode: http.StatusCreated,
		},
		{
			name: "password mismatch",
			body: map[string]string{
				"name": "Priya", "phone": "+91 9000000002", "email": "priya@example.com",
				"password": "secret", "confirmPassword": "other",
			},
			wantCode:  http.StatusBadRequest,
			wantErr:   "VALIDATION_ERROR",
			wantField: "confirmPassword",
		},
		{
			name: "bad phone",
			body: map[string]string{
				"name": "Priya", "phone": "12ab", "email": "priya@example.com",
				"password": "secret", "confirmPassword": "secret",
			},
			wantCode:  http.StatusBadRequest,
			wantErr:   "VALIDATION_ERROR",
			wantField: "phone",
		},
		{
			name: "duplicate phone",
			body: map[string]string{
				"name": "Johnny", "phone": johnPhone, "email": "johnny@example.com",
				"password": "secret", "confirmPassword": "secret",
			},
			wantCode: http.StatusConflict,
			wantErr:  "PHONE_ALREADY_EXISTS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, e, http.MethodPost, "/auth/register", "", tt.body)

			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			if tt.wantErr != "" {
				env := decodeEnvelope(t, rec)
				assert.Equal(t, tt.wantErr, env.Error.Code)
				if tt.wantField != "" {
					var fields map[string]string
					require.NoError(t, json.Unmarshal(env.Error.Details, &fields))
					assert.Contains(t, fields, tt.wantField)
				}
			}
		})
	}
}

func TestServer_PaymentAndRedemption(t *testing.T) {
	e := newTestEcho(t)
	token := login(t, e, johnPhone, "1234")

	rec := doRequest(t, e, http.MethodPost, "/api/v1/payments", token, map[string]any{"amount": 250})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var payment handler.PaymentResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &payment))
	assert.Equal(t, 140, payment.Customer.Points)
	assert.Equal(t, 15, payment.Transaction.PointsEarned)
	assert.True(t, payment.BecameVip)
	assert.False(t, payment.Write.RemotePending)

	rec = doRequest(t, e, http.MethodPost, "/api/v1/redemptions", token, map[string]any{"amount": 100})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "REDEMPTION_EXCEEDS_BALANCE", decodeEnvelope(t, rec).Error.Code)

	rec = doRequest(t, e, http.MethodPost, "/api/v1/redemptions", token, map[string]any{"amount": 10})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var redemption handler.RedemptionResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &redemption))
	assert.Equal(t, 120, redemption.Customer.Points)
	assert.Equal(t, 20, redemption.Transaction.PointsRedeemed)
}

func TestServer_QuoteAndQR(t *testing.T) {
	e := newTestEcho(t)
	token := login(t, e, johnPhone, "1234")

	rec := doRequest(t, e, http.MethodPost, "/api/v1/payments/quote", token, map[string]any{
		"amount":     2000,
		"couponCode": "welcome10",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var quote struct {
		Discount    float64 `json:"discount"`
		FinalAmount float64 `json:"finalAmount"`
		PaymentLink string  `json:"paymentLink"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &quote))
	assert.InDelta(t, 100, quote.Discount, 1e-9)
	assert.InDelta(t, 1900, quote.FinalAmount, 1e-9)
	assert.True(t, strings.HasPrefix(quote.PaymentLink, "upi://pay?"))

	rec = doRequest(t, e, http.MethodGet, "/api/v1/payments/qr?amount=500", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	rec = doRequest(t, e, http.MethodGet, "/api/v1/payments/qr?amount=0", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_AMOUNT", decodeEnvelope(t, rec).Error.Code)
}

func TestServer_AdminCustomerLifecycle(t *testing.T) {
	e := newTestEcho(t)
	token := login(t, e, adminPhone, "admin")

	rec := doRequest(t, e, http.MethodPost, "/api/v1/admin/customers", token, map[string]any{
		"name": "Ravi", "phone": "+91 9000000003", "email": "ravi@example.com", "password": "pw",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created handler.CustomerWriteResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &created))
	assert.Equal(t, 3, created.Customer.ID)
	assert.Equal(t, 50, created.Customer.Points)

	rec = doRequest(t, e, http.MethodPost, "/api/v1/admin/customers/3/toggle", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var toggled handler.CustomerWriteResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &toggled))
	assert.False(t, toggled.Customer.IsActive)

	rec = doRequest(t, e, http.MethodGet, "/api/v1/admin/customers?search=ravi", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var found []handler.CustomerView
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &found))
	require.Len(t, found, 1)
	assert.Equal(t, "Ravi", found[0].Name)

	rec = doRequest(t, e, http.MethodDelete, "/api/v1/admin/customers/3", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, e, http.MethodDelete, "/api/v1/admin/customers/3", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "CUSTOMER_NOT_FOUND", decodeEnvelope(t, rec).Error.Code)

	rec = doRequest(t, e, http.MethodDelete, "/api/v1/admin/customers/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_ID", decodeEnvelope(t, rec).Error.Code)
}

func TestServer_AdminSlabsAndTransactions(t *testing.T) {
	e := newTestEcho(t)
	token := login(t, e, adminPhone, "admin")

	rec := doRequest(t, e, http.MethodPut, "/api/v1/admin/slabs", token, []map[string]any{
		{"minAmount": 500, "maxAmount": 1000, "points": 50},
		{"minAmount": 0, "maxAmount": 499, "points": 10},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var slabs handler.SlabsResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &slabs))
	require.Len(t, slabs.Slabs, 2)
	assert.Equal(t, 1, slabs.Slabs[0].ID)
	assert.InDelta(t, 0, slabs.Slabs[0].MinAmount, 1e-9)

	rec = doRequest(t, e, http.MethodGet, "/api/v1/admin/transactions?type=redemption", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var transactions []struct {
		ID   int    `json:"id"`
		Type string `json:"type"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &transactions))
	require.Len(t, transactions, 1)
	assert.Equal(t, 4, transactions[0].ID)

	rec = doRequest(t, e, http.MethodGet, "/api/v1/admin/transactions?type=refund", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_ExportImportRoundTrip(t *testing.T) {
	e := newTestEcho(t)
	token := login(t, e, adminPhone, "admin")

	rec := doRequest(t, e, http.MethodGet, "/api/v1/admin/data/export", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	exported := rec.Body.Bytes()
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "attachment")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/data/import", bytes.NewReader(exported))
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doRequest(t, e, http.MethodGet, "/api/v1/admin/data/export", token, nil)
	assert.Equal(t, exported, rec.Body.Bytes())

	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/data/import", strings.NewReader(`{"customers":[]}`))
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_SNAPSHOT", decodeEnvelope(t, rec).Error.Code)
}

func TestServer_SyncPushWithoutRemote(t *testing.T) {
	e := newTestEcho(t)
	token := login(t, e, adminPhone, "admin")

	rec := doRequest(t, e, http.MethodPost, "/api/v1/admin/sync/push", token, nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "REMOTE_UNAVAILABLE", decodeEnvelope(t, rec).Error.Code)
}

func TestServer_EventsStreamsLedgerChanges(t *testing.T) {
	e := newTestEcho(t)
	token := login(t, e, johnPhone, "1234")

	srv := httptest.NewServer(e)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/events?access_token="+token, nil)
	require.NoError(t, err)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get(echo.HeaderContentType))

	rec := doRequest(t, e, http.MethodPost, "/api/v1/payments", token, map[string]any{"amount": 250})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	reader := bufio.NewReader(resp.Body)
	var eventLine, dataLine string
	for dataLine == "" {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)

		switch {
		case strings.HasPrefix(line, "event: "):
			eventLine = strings.TrimSpace(strings.TrimPrefix(line, "event: "))
		case strings.HasPrefix(line, "data: "):
			dataLine = strings.TrimSpace(strings.TrimPrefix(line, "data: "))
		}
	}

	assert.Equal(t, "change", eventLine)

	var event struct {
		Collections []string `json:"collections"`
		Source      string   `json:"source"`
	}
	require.NoError(t, json.Unmarshal([]byte(dataLine), &event))
	assert.Equal(t, "write", event.Source)
	assert.ElementsMatch(t, []string{"customers", "transactions"}, event.Collections)
}
