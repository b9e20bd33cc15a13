package fsm

import "log/slog"

// Option configures an engine during construction.
type Option func(*Engine) error

// WithDefinition registers an FSM definition. A second definition for the
// same (entity, field) pair replaces the first.
func WithDefinition(def Definition) Option {
	return func(e *Engine) error {
		return e.reg.addDefinition(def)
	}
}

// WithDefinitions registers multiple FSM definitions at once.
func WithDefinitions(defs ...Definition) Option {
	return func(e *Engine) error {
		for _, def := range defs {
			if err := e.reg.addDefinition(def); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithValidator binds a synchronous validator to transitions of (entity,
// field) landing on the dest state. Validators for the same key run in
// registration order; the first rejection aborts the chain and the
// transaction. There is no wildcard form for validators: a callback that can
// veto a commit must be scoped to a concrete transition outcome.
//
// The name identifies the validator in errors and logs; pick whatever label
// makes failures easy to trace back to their callback.
func WithValidator(entity, field, dest, name string, fn ValidatorFunc) Option {
	return func(e *Engine) error {
		return e.reg.addValidator(entity, field, dest, name, fn)
	}
}

// WithAction binds a post-commit action to transitions of (entity, field)
// landing on the dest state. Actions run after the transaction has durably
// committed and cannot affect it.
func WithAction(entity, field, dest, name string, fn ActionFunc) Option {
	return func(e *Engine) error {
		return e.reg.addAction(entity, field, dest, name, fn)
	}
}

// WithWildcardAction binds a post-commit action fired on every transition of
// (entity, field) regardless of destination. Wildcard and specific chains
// are independent; both fire for a transition that matches both.
func WithWildcardAction(entity, field, name string, fn ActionFunc) Option {
	return func(e *Engine) error {
		return e.reg.addWildcardAction(entity, field, name, fn)
	}
}

// WithLogger sets the logger used for post-commit action failures. Defaults
// to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) error {
		if log != nil {
			e.log = log
		}
		return nil
	}
}

// WithAsyncDispatch makes Notify hand committed mutations to a single
// background worker instead of running actions in-line. One worker consumes
// a FIFO queue, so the per-entity ordering guarantee holds trivially. The
// buffer bounds the queue; Notify blocks once it is full. Callers must Close
// the engine to drain the queue on shutdown.
func WithAsyncDispatch(buffer int) Option {
	return func(e *Engine) error {
		// Minimum of 1 keeps the hand-off from degenerating into a
		// synchronous rendezvous on an unbuffered channel.
		e.buffer = max(buffer, 1)
		return nil
	}
}
