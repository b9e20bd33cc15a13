package stream

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skydo/fsmgate/pkg/fsm"
)

// Publisher emits committed transitions to Redis pub/sub. Register its
// Action as a post-commit action (specific or wildcard); delivery is
// at-most-once and best-effort, matching post-commit semantics — a publish
// failure is logged by the dispatcher and the committed row is unaffected.
type Publisher struct {
	client redis.UniversalClient
	now    func() time.Time
}

// NewPublisher creates a publisher over the given client. Panics on a nil
// client.
func NewPublisher(client redis.UniversalClient) *Publisher {
	if client == nil {
		panic("stream: redis client cannot be nil")
	}
	return &Publisher{
		client: client,
		now:    time.Now,
	}
}

// Action returns a post-commit action publishing transitions of (entity,
// field) to Channel(entity, field).
func (p *Publisher) Action(entity, field string) fsm.ActionFunc {
	channel := Channel(entity, field)
	return func(ctx context.Context, id string, old, new *string) error {
		payload, err := json.Marshal(Event{
			Entity:   entity,
			EntityID: id,
			Field:    field,
			From:     old,
			To:       new,
			At:       p.now(),
		})
		if err != nil {
			return errors.Join(ErrEncodeEvent, err)
		}
		if err := p.client.Publish(ctx, channel, payload).Err(); err != nil {
			return errors.Join(ErrPublishFailed, err)
		}
		return nil
	}
}
