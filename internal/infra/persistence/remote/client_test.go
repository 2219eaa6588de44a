package remote

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"currypoint/config"
	"currypoint/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method string
	path   string
	body   string
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *[]recordedRequest) {
	t.Helper()

	var requests []recordedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requests = append(requests, recordedRequest{method: r.Method, path: r.URL.Path, body: string(body)})
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(config.RemoteStorageConfig{
		BaseURL:  server.URL + "/",
		Database: "currypointNew",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	return client, &requests
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(config.RemoteStorageConfig{Database: "db"}, slog.Default())
	assert.Error(t, err)
}

func TestClient_Ping(t *testing.T) {
	client, requests := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	require.NoError(t, client.Ping(context.Background()))
	require.Len(t, *requests, 1)
	assert.Equal(t, "/currypointNew/ping", (*requests)[0].path)
}

func TestClient_PingFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	err := client.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestClient_List(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"array", `[{"id":1},{"id":2}]`, 2},
		{"empty array", `[]`, 0},
		{"not an array", `{"error":"nope"}`, 0},
		{"null", `null`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, requests := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			docs, err := client.List(context.Background(), repository.CollectionCoupons)
			require.NoError(t, err)
			assert.NotNil(t, docs)
			assert.Len(t, docs, tt.want)
			assert.Equal(t, "/currypointNew/coupons", (*requests)[0].path)
		})
	}
}

func TestClient_ListError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.List(context.Background(), repository.CollectionCustomers)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestClient_Writes(t *testing.T) {
	client, requests := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	ctx := context.Background()

	require.NoError(t, client.ReplaceAll(ctx, repository.CollectionPaymentSlabs, nil))
	require.NoError(t, client.ReplaceAll(ctx, repository.CollectionSettings, []json.RawMessage{json.RawMessage(`{"businessName":"X"}`)}))
	require.NoError(t, client.Upsert(ctx, repository.CollectionCustomers, 7, json.RawMessage(`{"id":7}`)))
	require.NoError(t, client.Delete(ctx, repository.CollectionCoupons, 3))

	want := []recordedRequest{
		{http.MethodPost, "/currypointNew/paymentSlabs", `[]`},
		{http.MethodPost, "/currypointNew/settings", `[{"businessName":"X"}]`},
		{http.MethodPut, "/currypointNew/customers/7", `{"id":7}`},
		{http.MethodDelete, "/currypointNew/coupons/3", ``},
	}
	assert.Equal(t, want, *requests)
}

func TestClient_DeleteNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := client.Delete(context.Background(), repository.CollectionCustomers, 99)
	assert.ErrorIs(t, err, repository.ErrDocumentNotFound)
}

func TestClient_Unreachable(t *testing.T) {
	client, err := NewClient(config.RemoteStorageConfig{
		BaseURL:  "http://127.0.0.1:1",
		Database: "db",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	assert.Error(t, client.Ping(context.Background()))
}
