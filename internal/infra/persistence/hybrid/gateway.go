// Package hybrid serves the ledger from an always-available local snapshot
// and mirrors it to an optional remote document store.
package hybrid

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"currypoint/config"
	"currypoint/internal/domain/entity"
	"currypoint/internal/domain/repository"
	"currypoint/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultQueueSize      = 64
	defaultErrorsBuffer   = 32
	defaultProbeTimeout   = 5 * time.Second
	defaultRequestTimeout = 10 * time.Second
	defaultPollInterval   = 10 * time.Second
)

// Options configures a Gateway built without Fx.
type Options struct {
	Mode     repository.SyncMode
	Local    repository.LocalStore
	Remote   repository.DocumentStore // nil disables the remote tier
	Notifier service.ChangeNotifier   // optional
	Logger   *slog.Logger

	ProbeTimeout   time.Duration
	RequestTimeout time.Duration
	PollInterval   time.Duration
	QueueSize      int
}

// Gateway implements repository.LedgerStore and repository.LedgerSync.
type Gateway struct {
	local    repository.LocalStore
	remote   repository.DocumentStore
	notifier service.ChangeNotifier
	logger   *slog.Logger

	probeTimeout   time.Duration
	requestTimeout time.Duration
	pollInterval   time.Duration

	customers    *Repository[[]entity.Customer]
	transactions *Repository[[]entity.Transaction]
	paymentSlabs *Repository[[]entity.PaymentSlab]
	coupons      *Repository[[]entity.Coupon]
	settings     *Repository[entity.Settings]
	collections  []collectionOps
	queues       map[repository.Collection]*writeQueue

	// writeMu serializes every mutation of the ledger.
	writeMu sync.Mutex
	closed  bool

	// mu guards the fields below.
	mu        sync.RWMutex
	ledger    *entity.Ledger
	mode      repository.SyncMode
	lastSync  time.Time
	lastError string

	remoteAvailable atomic.Bool
	// remoteSynced is set while the remote holds every committed write and
	// cleared when a write fails to reach it or is never sent.
	remoteSynced atomic.Bool
	// reconciled is set after the first successful pull or push.
	reconciled atomic.Bool
	syncing    atomic.Bool

	errs     chan repository.SyncError
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// Params holds dependencies for the gateway, injected by Fx
type Params struct {
	fx.In

	Lc       fx.Lifecycle
	Config   *config.Config
	Logger   *slog.Logger
	Local    repository.LocalStore
	Remote   repository.DocumentStore `optional:"true"`
	Notifier service.ChangeNotifier   `optional:"true"`
}

// NewGateway builds the gateway from configuration and ties it to the Fx lifecycle.
func NewGateway(params Params) (*Gateway, error) {
	storage := params.Config.Storage

	mode, err := repository.ParseSyncMode(storage.Mode)
	if err != nil {
		return nil, err
	}

	gateway := New(Options{
		Mode:           mode,
		Local:          params.Local,
		Remote:         params.Remote,
		Notifier:       params.Notifier,
		Logger:         params.Logger,
		ProbeTimeout:   storage.Remote.ProbeTimeout,
		RequestTimeout: storage.Remote.RequestTimeout,
		PollInterval:   storage.Remote.PollInterval,
	})

	params.Lc.Append(fx.Hook{
		OnStart: gateway.Start,
		OnStop: func(ctx context.Context) error {
			params.Logger.Info("Draining remote ledger writes")

			return gateway.Close(ctx)
		},
	})

	return gateway, nil
}

// New returns a gateway holding an empty ledger until Start is called.
func New(opts Options) *Gateway {
	if !opts.Mode.IsValid() {
		opts.Mode = repository.SyncModeHybrid
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}

	g := &Gateway{
		local:          opts.Local,
		remote:         opts.Remote,
		notifier:       opts.Notifier,
		logger:         opts.Logger,
		probeTimeout:   orDefault(opts.ProbeTimeout, defaultProbeTimeout),
		requestTimeout: orDefault(opts.RequestTimeout, defaultRequestTimeout),
		pollInterval:   orDefault(opts.PollInterval, defaultPollInterval),
		mode:           opts.Mode,
		ledger:         emptyLedger(),
		queues:         make(map[repository.Collection]*writeQueue),
		errs:           make(chan repository.SyncError, defaultErrorsBuffer),
		stop:           make(chan struct{}),
	}

	g.customers = newListRepository(repository.CollectionCustomers,
		func(l *entity.Ledger) []entity.Customer { return l.Customers },
		func(l *entity.Ledger, v []entity.Customer) { l.Customers = v })
	g.transactions = newListRepository(repository.CollectionTransactions,
		func(l *entity.Ledger) []entity.Transaction { return l.Transactions },
		func(l *entity.Ledger, v []entity.Transaction) { l.Transactions = v })
	g.paymentSlabs = newListRepository(repository.CollectionPaymentSlabs,
		func(l *entity.Ledger) []entity.PaymentSlab { return l.PaymentSlabs },
		func(l *entity.Ledger, v []entity.PaymentSlab) { l.PaymentSlabs = v })
	g.coupons = newListRepository(repository.CollectionCoupons,
		func(l *entity.Ledger) []entity.Coupon { return l.Coupons },
		func(l *entity.Ledger, v []entity.Coupon) { l.Coupons = v })
	g.settings = newSettingsRepository()
	g.collections = []collectionOps{g.customers, g.transactions, g.paymentSlabs, g.coupons, g.settings}

	if g.remote != nil {
		for _, c := range g.collections {
			q := newWriteQueue(c.Collection(), opts.QueueSize)
			g.queues[c.Collection()] = q
			g.wg.Add(1)
			go g.runQueue(q)
		}
	}

	return g
}

func orDefault(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}

	return d
}

func emptyLedger() *entity.Ledger {
	ledger := &entity.Ledger{}
	ledger.Normalize()

	return ledger
}

// Start loads the local tier, probes the remote and reconciles it when
// reachable, then begins polling remote availability.
func (g *Gateway) Start(ctx context.Context) error {
	ledger, err := g.local.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "load local ledger")
	}
	g.swap(ledger)

	if g.remote == nil {
		g.logger.Info("Remote store not configured, running local only")

		return nil
	}

	if g.probe(ctx) {
		if release, err := g.beginSync(); err == nil {
			if err := g.reconcile(ctx); err != nil {
				g.logger.Warn("Initial sync with remote failed, serving local data", slog.Any("error", err))
			}
			release()
		}
	}

	g.wg.Add(1)
	go g.monitor()

	return nil
}

// Close stops the monitor and waits for queued remote writes to finish.
func (g *Gateway) Close(ctx context.Context) error {
	g.writeMu.Lock()
	if !g.closed {
		g.closed = true
		for _, q := range g.queues {
			close(q.jobs)
		}
	}
	g.writeMu.Unlock()

	g.stopOnce.Do(func() { close(g.stop) })

	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "drain remote writes")
	}
}

func (g *Gateway) Customers(ctx context.Context) []entity.Customer {
	return g.customers.Read(ctx, g)
}

func (g *Gateway) Transactions(ctx context.Context) []entity.Transaction {
	return g.transactions.Read(ctx, g)
}

func (g *Gateway) PaymentSlabs(ctx context.Context) []entity.PaymentSlab {
	return g.paymentSlabs.Read(ctx, g)
}

func (g *Gateway) Coupons(ctx context.Context) []entity.Coupon {
	return g.coupons.Read(ctx, g)
}

func (g *Gateway) Settings(ctx context.Context) entity.Settings {
	return g.settings.Read(ctx, g)
}

// Execute runs fn against a staged copy of the ledger and commits what it set.
func (g *Gateway) Execute(ctx context.Context, fn func(unit repository.LedgerUnit) error) (*repository.WriteResult, error) {
	g.writeMu.Lock()
	defer g.writeMu.Unlock()

	if g.closed {
		return nil, repository.ErrLedgerClosed
	}

	base := g.snapshot()
	unit := newUnit(g, base)
	if err := fn(unit); err != nil {
		return nil, err
	}

	staged := unit.stagedCollections()
	if len(staged) == 0 {
		return repository.SkippedWriteResult(), nil
	}

	if err := g.local.Save(ctx, unit.next); err != nil {
		return nil, errors.Wrap(err, "save local ledger")
	}
	g.swap(unit.next)
	g.publish(ctx, service.ChangeSourceWrite, staged)

	if !g.remoteWritable() {
		g.remoteSynced.Store(false)

		return repository.SkippedWriteResult(), nil
	}

	return g.mirrorChanges(ctx, base, unit.next, staged), nil
}

// snapshot returns the current ledger. The pointer is replaced, never mutated.
func (g *Gateway) snapshot() *entity.Ledger {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.ledger
}

func (g *Gateway) swap(ledger *entity.Ledger) {
	ledger.Normalize()

	g.mu.Lock()
	g.ledger = ledger
	g.mu.Unlock()
}

func (g *Gateway) currentMode() repository.SyncMode {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.mode
}

func (g *Gateway) remoteUsable() bool {
	return g.remote != nil && g.remoteAvailable.Load()
}

func (g *Gateway) remoteWritable() bool {
	return g.remoteUsable() && g.currentMode() != repository.SyncModeLocal
}

// remoteReadable also requires that the remote holds every committed write
// and that no write of the collection is still in flight.
func (g *Gateway) remoteReadable(collection repository.Collection) bool {
	if !g.remoteWritable() || !g.remoteSynced.Load() {
		return false
	}
	if q, ok := g.queues[collection]; ok && q.busy() {
		return false
	}

	return true
}

// mirror queues whole copies of the given collections of ledger for the
// remote tier. Callers hold writeMu.
func (g *Gateway) mirror(ctx context.Context, ledger *entity.Ledger, collections []repository.Collection) *repository.WriteResult {
	return g.mirrorChanges(ctx, nil, ledger, collections)
}

// mirrorChanges sends only the documents that changed since base when the
// remote is known to hold base, and whole collections otherwise. Callers
// hold writeMu.
func (g *Gateway) mirrorChanges(ctx context.Context, base, ledger *entity.Ledger, collections []repository.Collection) *repository.WriteResult {
	result, resolve := repository.NewWriteResult()
	done := joinResults(len(collections), resolve)
	jobCtx := context.WithoutCancel(ctx)
	incremental := base != nil && g.remoteSynced.Load()

	for _, collection := range collections {
		job, err := g.jobFor(g.ops(collection), incremental, base, ledger)
		if err != nil {
			g.writeFailed(collection, err)
			done(err)

			continue
		}
		if job.changes != nil && job.changes.empty() {
			done(nil)

			continue
		}

		job.ctx, job.done = jobCtx, done
		if !g.queues[collection].enqueue(job) {
			err := errors.Wrapf(errQueueFull, "%s", collection)
			g.writeFailed(collection, err)
			done(err)
		}
	}

	return result
}

func (g *Gateway) jobFor(ops collectionOps, incremental bool, base, ledger *entity.Ledger) (remoteJob, error) {
	if incremental {
		changes, ok, err := ops.diff(base, ledger)
		if err != nil {
			return remoteJob{}, err
		}
		if ok {
			return remoteJob{changes: &changes}, nil
		}
	}

	docs, err := ops.encodeFrom(ledger)
	if err != nil {
		return remoteJob{}, err
	}

	return remoteJob{docs: docs}, nil
}

func (g *Gateway) ops(collection repository.Collection) collectionOps {
	for _, c := range g.collections {
		if c.Collection() == collection {
			return c
		}
	}

	panic("hybrid: unhandled collection " + collection.String())
}

// writeFailed marks the remote as behind the cache until the next push.
func (g *Gateway) writeFailed(collection repository.Collection, err error) {
	g.remoteSynced.Store(false)
	g.report("write", collection, err)
}

// report logs a remote failure and offers it to the Errors channel.
func (g *Gateway) report(op string, collection repository.Collection, err error) {
	syncErr := repository.SyncError{
		Op:         op,
		Collection: collection,
		Err:        err,
		At:         time.Now(),
	}

	g.logger.Warn("Remote ledger operation failed",
		slog.String("op", op),
		slog.String("collection", collection.String()),
		slog.Any("error", err),
	)

	g.mu.Lock()
	g.lastError = syncErr.Error()
	g.mu.Unlock()

	select {
	case g.errs <- syncErr:
	default:
	}
}

func (g *Gateway) publish(ctx context.Context, source service.ChangeSource, collections []repository.Collection) {
	if g.notifier == nil {
		return
	}

	names := make([]string, 0, len(collections))
	for _, c := range collections {
		names = append(names, c.String())
	}

	event := service.ChangeEvent{
		Collections: names,
		Source:      source,
		At:          time.Now(),
	}
	if err := g.notifier.Publish(ctx, event); err != nil {
		g.logger.Warn("Failed to publish ledger change", slog.Any("error", err))
	}
}
