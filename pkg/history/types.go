package history

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one committed transition of a governed field. Entries are
// immutable once appended.
type Entry struct {
	ID         uuid.UUID `json:"id"`
	Entity     string    `json:"entity"`
	EntityID   string    `json:"entity_id"`
	Field      string    `json:"field"`
	From       *string   `json:"from"`
	To         *string   `json:"to"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Filter narrows a List query. Zero-valued fields match everything.
type Filter struct {
	Entity   string
	EntityID string
	Field    string
	Limit    int
}

func (f Filter) matches(e Entry) bool {
	if f.Entity != "" && f.Entity != e.Entity {
		return false
	}
	if f.EntityID != "" && f.EntityID != e.EntityID {
		return false
	}
	if f.Field != "" && f.Field != e.Field {
		return false
	}
	return true
}
