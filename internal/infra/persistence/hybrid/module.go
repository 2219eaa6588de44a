package hybrid

import (
	"currypoint/internal/domain/repository"
	"currypoint/internal/infra/persistence/local"
	"currypoint/internal/infra/persistence/remote"

	"go.uber.org/fx"
)

// Module provides the ledger gateway as both LedgerStore and LedgerSync.
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(
		local.NewStore,
		remote.NewDocumentStore,
		NewGateway,
		func(g *Gateway) repository.LedgerStore { return g },
		func(g *Gateway) repository.LedgerSync { return g },
	),
)
