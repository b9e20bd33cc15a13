package stream

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Subscriber consumes transition events for one (entity, field) channel.
type Subscriber struct {
	pubsub *redis.PubSub
	events chan Event
	log    *slog.Logger
}

// NewSubscriber subscribes to Channel(entity, field) and starts decoding
// incoming messages. The context bounds the subscription: when it is
// canceled the event channel closes. Undecodable payloads are logged and
// skipped.
func NewSubscriber(ctx context.Context, client redis.UniversalClient, entity, field string, log *slog.Logger) *Subscriber {
	if client == nil {
		panic("stream: redis client cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	channel := Channel(entity, field)
	s := &Subscriber{
		pubsub: client.Subscribe(ctx, channel),
		events: make(chan Event),
		log:    log,
	}

	go func() {
		defer close(s.events)
		msgs := s.pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = s.pubsub.Close()
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					log.ErrorContext(ctx, "failed to decode transition event",
						slog.String("channel", channel),
						slog.Any("error", err),
					)
					continue
				}
				select {
				case s.events <- ev:
				case <-ctx.Done():
					_ = s.pubsub.Close()
					return
				}
			}
		}
	}()

	return s
}

// Events returns the decoded event stream. The channel closes when the
// subscription's context is canceled or the subscriber is closed.
func (s *Subscriber) Events() <-chan Event {
	return s.events
}

// Close tears the subscription down. Safe to call multiple times.
func (s *Subscriber) Close() error {
	return s.pubsub.Close()
}
