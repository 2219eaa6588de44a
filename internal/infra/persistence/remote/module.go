package remote

import (
	"log/slog"

	"currypoint/config"
	"currypoint/internal/domain/repository"
)

// NewDocumentStore returns the remote client, or nil when the remote tier is
// disabled.
func NewDocumentStore(cfg *config.Config, logger *slog.Logger) (repository.DocumentStore, error) {
	remote := cfg.Storage.Remote
	if !remote.Enabled {
		logger.Info("Remote document store disabled")

		return nil, nil //nolint:nilnil
	}

	client, err := NewClient(remote, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("Using remote document store", slog.String("endpoint", client.Endpoint()))

	return client, nil
}
