package hybrid

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"currypoint/internal/domain/repository"
	"currypoint/internal/errors"
)

var errQueueFull = errors.New("remote write queue is full")

// remoteJob carries either a whole collection in docs or per-document changes.
type remoteJob struct {
	ctx     context.Context
	docs    []json.RawMessage
	changes *delta
	done    func(error)
}

// writeQueue applies the remote writes of one collection in submission order.
type writeQueue struct {
	collection repository.Collection
	jobs       chan remoteJob
	pending    atomic.Int64
}

func newWriteQueue(collection repository.Collection, size int) *writeQueue {
	return &writeQueue{
		collection: collection,
		jobs:       make(chan remoteJob, size),
	}
}

// enqueue never blocks. Callers must hold the gateway's write lock so the
// channel cannot be closed underneath them.
func (q *writeQueue) enqueue(job remoteJob) bool {
	q.pending.Add(1)
	select {
	case q.jobs <- job:
		return true
	default:
		q.pending.Add(-1)

		return false
	}
}

func (q *writeQueue) busy() bool {
	return q.pending.Load() > 0
}

func (g *Gateway) runQueue(q *writeQueue) {
	defer g.wg.Done()

	for job := range q.jobs {
		ctx, cancel := context.WithTimeout(job.ctx, g.requestTimeout)
		err := g.apply(ctx, q.collection, job)
		cancel()

		if err != nil {
			g.writeFailed(q.collection, err)
		}
		q.pending.Add(-1)
		job.done(err)
	}
}

func (g *Gateway) apply(ctx context.Context, collection repository.Collection, job remoteJob) error {
	if job.changes == nil {
		return g.remote.ReplaceAll(ctx, collection, job.docs)
	}

	for _, u := range job.changes.upserts {
		if err := g.remote.Upsert(ctx, collection, u.id, u.doc); err != nil {
			return errors.Wrapf(err, "upsert %s/%d", collection, u.id)
		}
	}
	for _, id := range job.changes.deletes {
		err := g.remote.Delete(ctx, collection, id)
		if err != nil && !errors.Is(err, repository.ErrDocumentNotFound) {
			return errors.Wrapf(err, "delete %s/%d", collection, id)
		}
	}

	return nil
}

// joinResults resolves once n parts have reported, with every part error joined.
func joinResults(n int, resolve func(error)) func(error) {
	var (
		mu        sync.Mutex
		errs      []error
		remaining = n
	)

	return func(err error) {
		mu.Lock()
		if err != nil {
			errs = append(errs, err)
		}
		remaining--
		last := remaining == 0
		joined := errors.Join(errs...)
		mu.Unlock()

		if last {
			resolve(joined)
		}
	}
}
