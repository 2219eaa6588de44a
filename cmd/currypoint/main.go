package main

import (
	"context"
	"log/slog"
	"os"

	"currypoint/config"
	"currypoint/internal/delivery"
	"currypoint/internal/delivery/api"
	"currypoint/internal/delivery/api/middleware"
	"currypoint/internal/delivery/api/router/handler"
	"currypoint/internal/infra/auth"
	logs "currypoint/internal/infra/log"
	"currypoint/internal/infra/persistence/hybrid"
	"currypoint/internal/infra/pubsub"
	"currypoint/internal/infra/qrcode"
	"currypoint/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			pubsub.ForwardSyncErrors,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
		),
		pubsub.Module,
		hybrid.Module,
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			qrcode.NewFromConfig,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewCustomerService,
			impl.NewPaymentService,
			impl.NewCouponService,
			impl.NewSettingsService,
			impl.NewDashboardService,
			impl.NewSyncService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewMeHandler,
			handler.NewPaymentHandler,
			handler.NewEventsHandler,
			handler.NewCustomerHandler,
			handler.NewCouponHandler,
			handler.NewAdminHandler,
			handler.NewSyncHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// startServer serves every delivery once the ledger has been loaded.
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
