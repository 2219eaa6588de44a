// Package docstore is the HTTP server of the remote document store.
package docstore

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"currypoint/config"
	"currypoint/internal/delivery"
	"currypoint/internal/delivery/api"
	"currypoint/internal/domain/lifecycle"
	"currypoint/internal/domain/repository"
	"currypoint/internal/errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"golang.org/x/net/http2"
)

type docStoreServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

// ServerParams holds dependencies for the document store server, injected by Fx.
type ServerParams struct {
	fx.In

	Lc     fx.Lifecycle
	Cfg    *config.Config
	Logger *slog.Logger
	Store  repository.DocumentStore
}

func NewServer(params ServerParams) (delivery.Delivery, error) {
	if params.Store == nil {
		return nil, errors.New("document store backend is required")
	}

	srv := &docStoreServer{
		cfg:    params.Cfg,
		logger: params.Logger,
		server: newEcho(params.Cfg, params.Logger, NewHandler(params.Store, params.Cfg.DocStore.Database, params.Logger)),
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

func newEcho(cfg *config.Config, logger *slog.Logger, handler *Handler) *echo.Echo {
	e := api.NewBaseEcho(cfg, logger)
	handler.Register(e)

	return e
}

func (s *docStoreServer) Serve(ctx context.Context) error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.cfg.DocStore.Port))
	s.logger.Info("Starting document store server",
		slog.String("host_port", hostPort),
		slog.String("database", s.cfg.DocStore.Database),
		slog.String("backend", s.cfg.DocStore.Backend),
	)
	h2Server := &http2.Server{
		IdleTimeout: s.cfg.HTTP.Timeouts.IdleTimeout,
	}
	if err := s.server.StartH2CServer(hostPort, h2Server); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}

	return nil
}

func (s *docStoreServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down document store server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}
