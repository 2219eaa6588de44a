package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"currypoint/internal/domain/repository"
	"currypoint/internal/domain/service"
	"currypoint/internal/infra/auth"
	"currypoint/internal/infra/persistence/hybrid"
	"currypoint/internal/infra/persistence/local"
	"currypoint/internal/infra/persistence/memory"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// testNow is inside the validity window of every seeded coupon.
var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestHasher() service.PasswordHasher {
	return auth.NewBcryptHasherWithCost(bcrypt.MinCost)
}

// newTestLedger returns a started local-only gateway over a seeded in-memory bucket.
func newTestLedger(t *testing.T) *hybrid.Gateway {
	t.Helper()

	return startTestLedger(t, repository.SyncModeLocal, nil)
}

// newHybridTestLedger returns a started hybrid gateway whose remote tier is an
// in-memory document store. The store starts empty and is seeded on start.
func newHybridTestLedger(t *testing.T) (*hybrid.Gateway, *memory.DocumentStore) {
	t.Helper()

	remote := memory.NewDocumentStore()

	return startTestLedger(t, repository.SyncModeHybrid, remote), remote
}

func startTestLedger(t *testing.T, mode repository.SyncMode, remote repository.DocumentStore) *hybrid.Gateway {
	t.Helper()

	ctx := context.Background()
	logger := newDiscardLogger()

	store, err := local.Open(ctx, "mem://", "curryPoint", newTestHasher(), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	gateway := hybrid.New(hybrid.Options{
		Mode:         mode,
		Local:        store,
		Remote:       remote,
		Logger:       logger,
		PollInterval: time.Hour,
	})
	require.NoError(t, gateway.Start(ctx))
	t.Cleanup(func() { _ = gateway.Close(context.Background()) })

	return gateway
}
