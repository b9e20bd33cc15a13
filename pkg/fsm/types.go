package fsm

import "context"

// FieldChange captures the before/after snapshot of a single persistent
// field within one flush. A nil pointer means the value was absent
// (SQL NULL); nil is distinct from any non-nil state.
type FieldChange struct {
	Name string
	Old  *string
	New  *string
}

// NoOp reports whether the change leaves the value untouched: both sides
// absent, or both present and equal. No-op changes are exempt from FSM
// checks, validators and post-commit actions.
func (c FieldChange) NoOp() bool {
	if c.Old == nil && c.New == nil {
		return true
	}
	if c.Old == nil || c.New == nil {
		return false
	}
	return *c.Old == *c.New
}

// Mutation describes one entity flush: which entity, which row, whether it
// is a fresh insert, and the old/new snapshot of every persistent field
// (not only governed ones). Adapters construct one Mutation for the
// pre-commit gate and a second, identical-shaped one for post-commit
// dispatch.
type Mutation struct {
	Entity  string
	ID      string
	Insert  bool
	Changes []FieldChange
}

// ValidatorFunc vetoes a transition before commit. It runs only after the
// engine has confirmed the transition is FSM-valid. Returning nil approves;
// returning an error created by Reject or Rejectf signals a deliberate
// business-rule denial; any other error is classified as an infrastructure
// failure. Either way the enclosing transaction is aborted.
type ValidatorFunc func(ctx context.Context, id string, old, new *string) error

// ActionFunc reacts to a committed transition. Its error (or panic) is
// logged and swallowed: a post-commit action can never affect the commit it
// follows, nor sibling actions.
type ActionFunc func(ctx context.Context, id string, old, new *string) error

// State wraps a literal state value as a snapshot pointer. Convenience for
// adapters and tests building FieldChange values.
func State(s string) *string {
	return &s
}
