package pubsub

import (
	"context"
	"log/slog"

	"currypoint/config"
	"currypoint/internal/domain/lifecycle"
	"currypoint/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	ProviderMemory = "memory"
	ProviderRedis  = "redis"
)

// NotifierParams holds dependencies for ChangeNotifier, injected by Fx
type NotifierParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewChangeNotifier creates a ChangeNotifier based on configuration
func NewChangeNotifier(params NotifierParams) (service.ChangeNotifier, error) {
	cfg := params.Config.Notifier
	logger := params.Logger

	var notifier service.ChangeNotifier

	switch {
	case cfg == nil || cfg.Provider == "" || cfg.Provider == ProviderMemory:
		logger.Info("Using in-process change notifier")

		notifier = NewMemoryNotifier(logger)

	case cfg.Provider == ProviderRedis:
		if cfg.Redis.Addr == "" {
			return nil, errors.New("redis address is required for redis provider")
		}
		logger.Info("Using Redis change notifier",
			slog.String("addr", cfg.Redis.Addr),
			slog.String("channel", cfg.Redis.Channel),
		)

		ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
		defer cancel()

		var err error
		notifier, err = NewRedisNotifier(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, err
		}

	default:
		return nil, errors.Errorf("unknown notifier provider: %s", cfg.Provider)
	}

	// Register lifecycle hook to close notifier on shutdown
	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing ChangeNotifier")

			return notifier.Close()
		},
	})

	return notifier, nil
}

// Module provides the change notifier FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewChangeNotifier),
)
