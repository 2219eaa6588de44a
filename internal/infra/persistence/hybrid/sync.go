package hybrid

import (
	"context"
	"log/slog"
	"time"

	"currypoint/internal/domain/entity"
	domainerrors "currypoint/internal/domain/errors"
	"currypoint/internal/domain/repository"
	"currypoint/internal/domain/service"
	"currypoint/internal/util"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

type endpointer interface {
	Endpoint() string
}

// Status reports the state of both tiers.
func (g *Gateway) Status() repository.SyncStatus {
	g.mu.RLock()
	defer g.mu.RUnlock()

	status := repository.SyncStatus{
		Mode:             g.mode,
		RemoteConfigured: g.remote != nil,
		RemoteAvailable:  g.remoteUsable(),
		SyncInProgress:   g.syncing.Load(),
		LastError:        g.lastError,
		Counts:           make(map[repository.Collection]int, len(g.collections)),
	}
	if e, ok := g.remote.(endpointer); ok {
		status.RemoteEndpoint = e.Endpoint()
	}
	if !g.lastSync.IsZero() {
		lastSync := g.lastSync
		status.LastSync = &lastSync
	}
	for _, c := range g.collections {
		status.Counts[c.Collection()] = c.count(g.ledger)
	}

	return status
}

func (g *Gateway) Mode() repository.SyncMode {
	return g.currentMode()
}

// ToggleMode cycles local -> remote -> hybrid -> local.
func (g *Gateway) ToggleMode() repository.SyncMode {
	g.mu.Lock()
	defer g.mu.Unlock()

	previous := g.mode
	switch g.mode {
	case repository.SyncModeLocal:
		if g.remoteUsable() {
			g.mode = repository.SyncModeRemote
		}
	case repository.SyncModeRemote:
		g.mode = repository.SyncModeHybrid
	case repository.SyncModeHybrid:
		g.mode = repository.SyncModeLocal
	}

	g.logger.Info("Storage mode changed",
		slog.String("from", string(previous)),
		slog.String("to", string(g.mode)),
	)

	return g.mode
}

func (g *Gateway) Errors() <-chan repository.SyncError {
	return g.errs
}

// beginSync claims the sync guard. The returned func releases it.
func (g *Gateway) beginSync() (func(), error) {
	if !g.remoteUsable() {
		return nil, domainerrors.ErrRemoteUnavailable
	}
	if !g.syncing.CompareAndSwap(false, true) {
		return nil, domainerrors.ErrSyncInProgress
	}

	return func() { g.syncing.Store(false) }, nil
}

// PushAll replaces every remote collection with the local one and waits for
// the remote to accept them.
func (g *Gateway) PushAll(ctx context.Context) error {
	release, err := g.beginSync()
	if err != nil {
		return err
	}
	defer release()

	return g.push(ctx)
}

func (g *Gateway) push(ctx context.Context) error {
	g.writeMu.Lock()
	if g.closed {
		g.writeMu.Unlock()

		return repository.ErrLedgerClosed
	}
	result := g.mirror(ctx, g.snapshot(), repository.Collections())
	g.writeMu.Unlock()

	if err := result.Wait(ctx); err != nil {
		return errors.Wrap(err, "push to remote")
	}

	g.markSynced()
	g.logger.Info("Pushed ledger to remote")

	return nil
}

// PullAll replaces the local ledger with the remote collections.
func (g *Gateway) PullAll(ctx context.Context) error {
	if _, err := g.beginSync(); err != nil {
		return err
	}
	defer g.syncing.Store(false)

	return g.pull(ctx)
}

// pull fetches all collections concurrently and writes only if every fetch
// succeeded.
func (g *Gateway) pull(ctx context.Context) error {
	started := time.Now()
	pulled := &entity.Ledger{}

	eg, egCtx := errgroup.WithContext(ctx)
	for _, c := range g.collections {
		eg.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(egCtx, g.requestTimeout)
			defer cancel()

			return c.fetchInto(fetchCtx, g.remote, pulled)
		})
	}
	if err := eg.Wait(); err != nil {
		g.remoteSynced.Store(false)
		if !errors.Is(err, errRemoteEmpty) {
			g.report("pull", "", err)
		}

		return errors.Wrap(err, "pull from remote")
	}

	g.writeMu.Lock()
	defer g.writeMu.Unlock()

	if err := g.local.Save(ctx, pulled); err != nil {
		return errors.Wrap(err, "save pulled ledger")
	}
	g.swap(pulled)
	g.markSynced()
	g.publish(ctx, service.ChangeSourcePull, repository.Collections())
	g.logger.Info("Pulled ledger from remote",
		slog.Int("customers", len(pulled.Customers)),
		slog.Int("transactions", len(pulled.Transactions)),
		slog.String("took", util.FormatDuration(time.Since(started))),
	)

	return nil
}

// reconcile brings both tiers level. The first time it pulls, seeding the
// remote from the cache when the remote has never been written. Afterwards
// the cache holds the newest data and is pushed.
func (g *Gateway) reconcile(ctx context.Context) error {
	if !g.reconciled.Load() {
		err := g.pull(ctx)
		if !errors.Is(err, errRemoteEmpty) {
			return err
		}
		g.logger.Info("Remote ledger is empty, seeding it from local data")
	}

	return g.push(ctx)
}

func (g *Gateway) markSynced() {
	g.mu.Lock()
	g.lastSync = time.Now()
	g.lastError = ""
	g.mu.Unlock()

	g.reconciled.Store(true)
	g.remoteSynced.Store(true)
}

// Export returns the local snapshot bytes.
func (g *Gateway) Export(ctx context.Context) ([]byte, error) {
	return g.local.Export(ctx)
}

// Import replaces the ledger with data and mirrors it when remote writes are enabled.
func (g *Gateway) Import(ctx context.Context, data []byte) (*repository.WriteResult, error) {
	return g.replace(ctx, service.ChangeSourceImport, func() (*entity.Ledger, error) {
		return g.local.Import(ctx, data)
	})
}

// Reset restores the seed data on both tiers.
func (g *Gateway) Reset(ctx context.Context) (*repository.WriteResult, error) {
	return g.replace(ctx, service.ChangeSourceReset, func() (*entity.Ledger, error) {
		return g.local.Reset(ctx)
	})
}

func (g *Gateway) replace(ctx context.Context, source service.ChangeSource, load func() (*entity.Ledger, error)) (*repository.WriteResult, error) {
	g.writeMu.Lock()
	defer g.writeMu.Unlock()

	if g.closed {
		return nil, repository.ErrLedgerClosed
	}

	ledger, err := load()
	if err != nil {
		return nil, err
	}
	g.swap(ledger)
	g.publish(ctx, source, repository.Collections())
	g.logger.Info("Ledger replaced", slog.String("source", string(source)))

	if !g.remoteWritable() {
		g.remoteSynced.Store(false)

		return repository.SkippedWriteResult(), nil
	}

	return g.mirror(ctx, ledger, repository.Collections()), nil
}

// probe pings the remote within probeTimeout and records the outcome.
func (g *Gateway) probe(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, g.probeTimeout)
	defer cancel()

	err := g.remote.Ping(probeCtx)
	available := err == nil
	previous := g.remoteAvailable.Swap(available)

	if err != nil {
		g.report("probe", "", err)
	}
	if previous != available {
		g.logger.Info("Remote availability changed", slog.Bool("available", available))
	}

	return available
}

// monitor re-probes the remote every pollInterval until Close, and brings a
// reachable remote that missed writes back in line with the cache.
func (g *Gateway) monitor() {
	defer g.wg.Done()

	ctx := context.Background()
	ticker := time.NewTicker(g.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-g.stop:
			return
		case <-ticker.C:
			if g.probe(ctx) && g.remoteWritable() && !g.remoteSynced.Load() {
				g.catchUp(ctx)
			}
		}
	}
}

func (g *Gateway) catchUp(ctx context.Context) {
	release, err := g.beginSync()
	if err != nil {
		return
	}
	defer release()

	if err := g.reconcile(ctx); err != nil {
		g.logger.Warn("Remote catch-up failed", slog.Any("error", err))
	}
}
