package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/skydo/fsmgate/pkg/fsm"
)

// Recorder turns committed transitions into history entries. Register its
// Action as a wildcard post-commit action so every transition of the field
// lands in storage.
type Recorder struct {
	storage Storage
	now     func() time.Time
}

// NewRecorder creates a recorder over the given storage. Panics on nil
// storage.
func NewRecorder(storage Storage) *Recorder {
	if storage == nil {
		panic("history: storage cannot be nil")
	}
	return &Recorder{
		storage: storage,
		now:     time.Now,
	}
}

// Action returns a post-commit action recording transitions of (entity,
// field). The dispatcher already isolates failures, so the storage error is
// simply propagated for it to log.
func (r *Recorder) Action(entity, field string) fsm.ActionFunc {
	return func(ctx context.Context, id string, old, new *string) error {
		return r.storage.Append(ctx, Entry{
			ID:         uuid.New(),
			Entity:     entity,
			EntityID:   id,
			Field:      field,
			From:       old,
			To:         new,
			OccurredAt: r.now(),
		})
	}
}
