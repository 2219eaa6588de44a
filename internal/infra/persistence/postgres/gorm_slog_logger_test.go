package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"currypoint/config"
	deliverycontext "currypoint/internal/delivery/context"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestGormSlogLogger_Trace(t *testing.T) {
	sqlFn := func() (string, int64) { return `SELECT * FROM "documents"`, 3 }

	tests := []struct {
		name     string
		debug    bool
		begin    time.Time
		err      error
		contains string
	}{
		{name: "failure logged", begin: time.Now(), err: errors.New("relation missing"), contains: "GORM query failed"},
		{name: "record not found ignored", begin: time.Now(), err: gorm.ErrRecordNotFound},
		{name: "slow query warned", begin: time.Now().Add(-time.Second), contains: "GORM slow query"},
		{name: "fast query silent without debug", begin: time.Now()},
		{name: "fast query traced in debug", debug: true, begin: time.Now(), contains: "GORM query"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			base := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
			cfg := &config.Config{}
			cfg.Env.Debug = tt.debug

			newGormSlogLogger(base, cfg).Trace(context.Background(), tt.begin, sqlFn, tt.err)

			if tt.contains == "" {
				assert.Empty(t, buf.String())

				return
			}
			assert.Contains(t, buf.String(), tt.contains)
		})
	}
}

func TestGormSlogLogger_UsesRequestLogger(t *testing.T) {
	var fallback, scoped bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&fallback, nil))
	reqLogger := slog.New(slog.NewJSONHandler(&scoped, nil)).With(slog.String("request_id", "req-9"))
	ctx := deliverycontext.WithLogger(context.Background(), reqLogger)

	long := "INSERT INTO documents VALUES ('" + strings.Repeat("x", 2*maxLoggedSQL) + "')"
	newGormSlogLogger(base, nil).Trace(ctx, time.Now(), func() (string, int64) { return long, 0 }, errors.New("boom"))

	assert.Empty(t, fallback.String())
	assert.Contains(t, scoped.String(), `"request_id":"req-9"`)
	assert.NotContains(t, scoped.String(), strings.Repeat("x", maxLoggedSQL))
}
