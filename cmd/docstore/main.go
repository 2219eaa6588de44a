package main

import (
	"context"
	"log/slog"
	"os"

	"currypoint/config"
	"currypoint/internal/delivery"
	"currypoint/internal/delivery/docstore"
	"currypoint/internal/domain/repository"
	logs "currypoint/internal/infra/log"
	"currypoint/internal/infra/persistence/memory"
	"currypoint/internal/infra/persistence/mongo"
	"currypoint/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	backendMongo    = "mongo"
	backendPostgres = "postgres"
	backendMemory   = "memory"
)

type backendParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			newBackend,
			fx.Annotate(
				docstore.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
		fx.Invoke(startServer),
	).Run()
}

// newBackend opens the document store selected by docstore.backend.
func newBackend(params backendParams) (repository.DocumentStore, error) {
	backend := params.Config.DocStore.Backend
	params.Logger.Info("Opening document store backend", slog.String("backend", backend))

	switch backend {
	case backendMongo:
		db, err := mongo.New(mongo.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return nil, err
		}

		return mongo.NewDocumentStore(db), nil

	case backendPostgres:
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return nil, err
		}

		return postgres.NewDocumentStore(db), nil

	case backendMemory:
		return memory.NewDocumentStore(), nil

	default:
		return nil, errors.Errorf("unknown docstore backend: %s", backend)
	}
}

func startServer(ctx context.Context, params startServerParams) {
	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			for _, delivery := range params.Deliveries {
				go func() {
					if err := delivery.Serve(ctx); err != nil {
						slog.Error("Failed to start server", slog.Any("error", err))
						os.Exit(1)
					}
				}()
			}

			return nil
		},
	})
}
