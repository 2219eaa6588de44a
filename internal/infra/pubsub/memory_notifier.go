package pubsub

import (
	"context"
	"log/slog"
	"sync"

	"currypoint/internal/domain/service"
)

const subscriberBuffer = 16

// memoryNotifier fans events out to in-process subscribers. A subscriber that
// falls behind misses events rather than blocking publishers.
type memoryNotifier struct {
	logger *slog.Logger

	mu     sync.Mutex
	nextID int
	subs   map[int]chan service.ChangeEvent
	closed bool
}

// NewMemoryNotifier creates an in-process ChangeNotifier
func NewMemoryNotifier(logger *slog.Logger) service.ChangeNotifier {
	return newMemoryNotifier(logger)
}

func newMemoryNotifier(logger *slog.Logger) *memoryNotifier {
	return &memoryNotifier{
		logger: logger,
		subs:   make(map[int]chan service.ChangeEvent),
	}
}

func (n *memoryNotifier) Publish(_ context.Context, event service.ChangeEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	for id, ch := range n.subs {
		select {
		case ch <- event:
		default:
			n.logger.Debug("Dropping change event for slow subscriber", slog.Int("subscriber", id))
		}
	}

	return nil
}

func (n *memoryNotifier) Subscribe(ctx context.Context) (<-chan service.ChangeEvent, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	ch := make(chan service.ChangeEvent, subscriberBuffer)
	if n.closed {
		close(ch)

		return ch, nil
	}

	id := n.nextID
	n.nextID++
	n.subs[id] = ch

	go func() {
		<-ctx.Done()
		n.unsubscribe(id)
	}()

	return ch, nil
}

func (n *memoryNotifier) unsubscribe(id int) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if ch, ok := n.subs[id]; ok {
		delete(n.subs, id)
		close(ch)
	}
}

// Close ends every subscription
func (n *memoryNotifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.closed = true
	for id, ch := range n.subs {
		delete(n.subs, id)
		close(ch)
	}

	return nil
}
