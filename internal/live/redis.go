package live

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/erazemk/swiftship/internal/metrics"
)

// DefaultChannel is the Redis pub/sub channel for change notices.
const DefaultChannel = "swiftship:changes"

const (
	publishTimeout = 2 * time.Second

	// outboxSize bounds the notices waiting for Redis. Further notices are
	// dropped until the relay catches up.
	outboxSize = 256
)

// RedisBroker shares change notices between server instances. Local
// changes go to the local hub immediately and are queued for Redis;
// notices from other instances are forwarded into the local hub.
type RedisBroker struct {
	client  redis.UniversalClient
	channel string
	hub     *Hub
	origin  string
	ready   chan struct{}
	outbox  chan Change
}

// NewRedisBroker returns a broker bound to hub. Call Run to relay.
func NewRedisBroker(client redis.UniversalClient, channel string, hub *Hub) *RedisBroker {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisBroker{
		client:  client,
		channel: channel,
		hub:     hub,
		origin:  uuid.NewString(),
		ready:   make(chan struct{}),
		outbox:  make(chan Change, outboxSize),
	}
}

// Publish implements Publisher. Local subscribers are signalled at once;
// the Redis send happens in Run.
func (b *RedisBroker) Publish(change Change) {
	b.hub.Publish(change)

	change.Origin = b.origin
	select {
	case b.outbox <- change:
	default:
		metrics.RelayedChanges.WithLabelValues("dropped").Inc()
		slog.Warn("change relay backlog full, dropping notice", "package_id", change.PackageID, "owner_id", change.OwnerID)
	}
}

// Ready is closed once Run holds an active subscription.
func (b *RedisBroker) Ready() <-chan struct{} {
	return b.ready
}

// Run relays queued local notices to Redis and forwards notices from other
// instances until ctx is cancelled.
func (b *RedisBroker) Run(ctx context.Context) error {
	pubsub := b.client.Subscribe(ctx, b.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribing to %s: %w", b.channel, err)
	}
	close(b.ready)
	slog.Info("live broker subscribed", "channel", b.channel)

	relayCtx, stopRelay := context.WithCancel(ctx)
	sent := make(chan struct{})
	go func() {
		defer close(sent)
		b.relay(relayCtx)
	}()
	defer func() {
		stopRelay()
		<-sent
	}()

	msgs := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			var change Change
			if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
				slog.Warn("ignoring malformed change notice", "error", err)
				continue
			}
			if change.Origin == b.origin {
				continue
			}
			b.hub.Publish(change)
		}
	}
}

// relay drains the outbox into Redis until ctx is done.
func (b *RedisBroker) relay(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case change := <-b.outbox:
			b.send(ctx, change)
		}
	}
}

// Flush sends whatever is still queued. Callers that never run the broker,
// such as one-shot commands, flush before exiting.
func (b *RedisBroker) Flush(ctx context.Context) {
	for {
		select {
		case change := <-b.outbox:
			b.send(ctx, change)
		default:
			return
		}
	}
}

func (b *RedisBroker) send(ctx context.Context, change Change) {
	payload, err := json.Marshal(change)
	if err != nil {
		slog.Error("failed to encode change notice", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		metrics.RelayedChanges.WithLabelValues("failed").Inc()
		slog.Error("failed to publish change notice", "channel", b.channel, "error", err)
		return
	}
	metrics.RelayedChanges.WithLabelValues("sent").Inc()
}
