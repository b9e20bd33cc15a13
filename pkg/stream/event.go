package stream

import "time"

// Event is the wire form of a committed transition, published as JSON.
type Event struct {
	Entity   string    `json:"entity"`
	EntityID string    `json:"entity_id"`
	Field    string    `json:"field"`
	From     *string   `json:"from"`
	To       *string   `json:"to"`
	At       time.Time `json:"at"`
}

// Channel returns the pub/sub channel carrying transitions of (entity,
// field). One channel per governed field keeps subscribers from filtering
// other entities' traffic themselves.
func Channel(entity, field string) string {
	return "fsm:transitions:" + entity + ":" + field
}
