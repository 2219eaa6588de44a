package pubsub

import (
	"context"
	"os"
	"testing"
	"time"

	"currypoint/config"
	"currypoint/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventCodec(t *testing.T) {
	event := service.ChangeEvent{
		Collections: []string{"customers", "transactions"},
		Source:      service.ChangeSourceWrite,
		Origin:      "instance-a",
		At:          time.Date(2025, 5, 22, 14, 30, 0, 0, time.UTC),
	}

	payload, err := encodeEvent(event)
	require.NoError(t, err)

	decoded, err := decodeEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, event.Collections, decoded.Collections)
	assert.Equal(t, event.Source, decoded.Source)
	assert.Equal(t, event.Origin, decoded.Origin)
	assert.True(t, event.At.Equal(decoded.At))
}

func TestDecodeEvent_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", "hello"},
		{"missing source", `{"collections":["customers"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeEvent([]byte(tt.payload))
			assert.Error(t, err)
		})
	}
}

// TestRedisNotifier_Integration runs against REDIS_TEST_ADDR when it is set.
func TestRedisNotifier_Integration(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg := config.RedisConfig{Addr: addr, Channel: "currypoint:test:" + time.Now().Format(time.RFC3339Nano)}
	publisher, err := NewRedisNotifier(ctx, cfg, discardLogger())
	require.NoError(t, err)
	defer publisher.Close()

	listener, err := NewRedisNotifier(ctx, cfg, discardLogger())
	require.NoError(t, err)
	defer listener.Close()

	events, err := listener.Subscribe(ctx)
	require.NoError(t, err)

	require.NoError(t, publisher.Publish(ctx, service.ChangeEvent{
		Collections: []string{"coupons"},
		Source:      service.ChangeSourceWrite,
	}))

	got, ok := receive(t, events)
	require.True(t, ok)
	assert.Equal(t, []string{"coupons"}, got.Collections)
	assert.NotEmpty(t, got.Origin)
}

func TestNewChangeNotifier_UnknownProvider(t *testing.T) {
	_, err := NewChangeNotifier(NotifierParams{
		Config: &config.Config{Notifier: &config.NotifierConfig{Provider: "kafka"}},
		Logger: discardLogger(),
	})
	assert.Error(t, err)
}
