package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"

	"currypoint/config"
	"currypoint/internal/domain/service"
	"currypoint/internal/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// redisNotifier publishes change events on a Redis channel so every instance
// sharing the remote store sees them. Events received from Redis are fanned
// out to local subscribers.
type redisNotifier struct {
	client  *redis.Client
	pubsub  *redis.PubSub
	channel string
	origin  string
	local   *memoryNotifier
	logger  *slog.Logger
	done    chan struct{}
}

// NewRedisNotifier connects to Redis and starts relaying the configured channel
func NewRedisNotifier(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (service.ChangeNotifier, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()

		return nil, errors.Wrapf(err, "failed to ping redis at %s", cfg.Addr)
	}

	pubsub := client.Subscribe(ctx, cfg.Channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		_ = client.Close()

		return nil, errors.Wrapf(err, "failed to subscribe to %s", cfg.Channel)
	}

	n := &redisNotifier{
		client:  client,
		pubsub:  pubsub,
		channel: cfg.Channel,
		origin:  uuid.NewString(),
		local:   newMemoryNotifier(logger),
		logger:  logger,
		done:    make(chan struct{}),
	}
	go n.relay()

	return n, nil
}

func (n *redisNotifier) relay() {
	defer close(n.done)

	for msg := range n.pubsub.Channel() {
		event, err := decodeEvent([]byte(msg.Payload))
		if err != nil {
			n.logger.Warn("Discarding malformed change event", slog.Any("error", err))

			continue
		}
		_ = n.local.Publish(context.Background(), event)
	}
}

// Publish stamps the event with this instance's origin and sends it to Redis.
// If Redis rejects it, local subscribers still receive it.
func (n *redisNotifier) Publish(ctx context.Context, event service.ChangeEvent) error {
	if event.Origin == "" {
		event.Origin = n.origin
	}

	payload, err := encodeEvent(event)
	if err != nil {
		return err
	}

	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		_ = n.local.Publish(ctx, event)

		return errors.Wrap(err, "failed to publish change event")
	}

	return nil
}

func (n *redisNotifier) Subscribe(ctx context.Context) (<-chan service.ChangeEvent, error) {
	return n.local.Subscribe(ctx)
}

func (n *redisNotifier) Close() error {
	err := n.pubsub.Close()
	<-n.done
	_ = n.local.Close()

	return errors.WithStack(errors.Join(err, n.client.Close()))
}

func encodeEvent(event service.ChangeEvent) ([]byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, errors.Wrap(err, "encode change event")
	}

	return payload, nil
}

func decodeEvent(payload []byte) (service.ChangeEvent, error) {
	var event service.ChangeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return event, errors.Wrap(err, "decode change event")
	}
	if event.Source == "" {
		return event, errors.New("change event has no source")
	}

	return event, nil
}
