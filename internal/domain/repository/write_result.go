package repository

import (
	"context"
	"sync"
)

// WriteResult is the pending outcome of the remote half of a write. The local
// half has already completed by the time a WriteResult is handed out.
type WriteResult struct {
	done      chan struct{}
	once      sync.Once
	err       error
	attempted bool
}

// NewWriteResult returns an unresolved result and the function that resolves it.
// Only the first call to resolve has any effect.
func NewWriteResult() (*WriteResult, func(error)) {
	r := &WriteResult{done: make(chan struct{}), attempted: true}

	return r, func(err error) {
		r.once.Do(func() {
			r.err = err
			close(r.done)
		})
	}
}

// SkippedWriteResult is a resolved result for writes that never went remote.
func SkippedWriteResult() *WriteResult {
	r := &WriteResult{done: make(chan struct{})}
	close(r.done)

	return r
}

// Done is closed once the remote outcome is known.
func (r *WriteResult) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the remote write finishes or ctx ends. A nil error means
// the remote accepted the write or it was not attempted.
func (r *WriteResult) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return r.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RemoteAttempted reports whether the write was sent to the remote tier.
func (r *WriteResult) RemoteAttempted() bool {
	return r.attempted
}
