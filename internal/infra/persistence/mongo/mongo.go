// Package mongo is the MongoDB backend of the docstore server. Each ledger
// collection maps to the Mongo collection of the same name.
package mongo

import (
	"context"
	"log/slog"

	"currypoint/config"
	"currypoint/internal/domain/lifecycle"

	"github.com/pkg/errors"
	mongoDriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New connects to MongoDB and disconnects on shutdown.
func New(params Params) (*mongoDriver.Database, error) {
	cfg := params.Config.DocStore
	if cfg.Mongo.URI == "" {
		return nil, errors.New("mongo URI is required for the mongo backend")
	}

	connectCtx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
	defer cancel()

	client, err := mongoDriver.Connect(connectCtx, options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetConnectTimeout(cfg.Mongo.ConnectTimeout))
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to MongoDB")
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := ping(ctx, client); err != nil {
				return err
			}
			params.Logger.Info("Connected to MongoDB", slog.String("database", cfg.Database))

			return nil
		},
		OnStop: func(ctx context.Context) error {
			return errors.Wrap(client.Disconnect(ctx), "failed to disconnect MongoDB")
		},
	})

	return client.Database(cfg.Database), nil
}
