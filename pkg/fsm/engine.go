package fsm

import (
	"fmt"
	"log/slog"
	"slices"
)

// Engine is the transition-validation engine: an immutable set of FSM
// definitions, validator chains and post-commit action chains, exposed
// through the pre-commit gate (Check) and the post-commit dispatcher
// (Notify). Construct it once at startup; it is safe for concurrent use.
type Engine struct {
	reg    *registry
	log    *slog.Logger
	queue  *dispatchQueue // nil in synchronous mode
	buffer int
}

// New creates an engine from the given options. All definitions, validators
// and actions must be supplied here; the registries are read-only once New
// returns.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		reg: newRegistry(),
		log: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	if e.buffer > 0 {
		e.queue = newDispatchQueue(e, e.buffer)
	}
	return e, nil
}

// MustNew is New that panics on configuration errors, for startup paths
// where a misconfigured state machine should prevent the process from
// starting at all.
func MustNew(opts ...Option) *Engine {
	e, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("fsm: failed to create engine: %v", err))
	}
	return e
}

// Definition returns the FSM definition governing (entity, field), if any.
func (e *Engine) Definition(entity, field string) (Definition, bool) {
	return e.reg.definition(entity, field)
}

// Governs reports whether any field of the entity is governed.
func (e *Engine) Governs(entity string) bool {
	for k := range e.reg.definitions {
		if k.entity == entity {
			return true
		}
	}
	return false
}

// GovernedFields returns the governed field names of the entity, sorted.
// Adapters use it on insert: a governed field the caller left out must
// still reach the gate, otherwise a row could be born outside its machine.
func (e *Engine) GovernedFields(entity string) []string {
	var fields []string
	for k := range e.reg.definitions {
		if k.entity == entity {
			fields = append(fields, k.field)
		}
	}
	slices.Sort(fields)
	return fields
}

// Close drains the asynchronous dispatch queue, if one was configured, and
// waits for in-flight actions to finish. It is a no-op in synchronous mode
// and idempotent either way.
func (e *Engine) Close() error {
	if e.queue != nil {
		e.queue.close()
	}
	return nil
}
