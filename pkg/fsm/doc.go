// Package fsm enforces finite-state-machine transitions on persisted entity
// fields. It sits between a persistence layer and its transaction boundary:
// every observed change of a governed field must correspond to a declared
// edge of that field's state machine, inserts must start in the declared
// initial state, and two extension points hang off the core gate —
// synchronous validators that can still abort the commit, and post-commit
// actions that run after a durable commit and cannot.
//
// # Architecture
//
// An Engine bundles three immutable registries built once at startup via
// functional options:
//
//  1. FSM definitions keyed by (entity, field)
//  2. validator chains keyed by (entity, field, destination state)
//  3. post-commit action chains — specific-destination chains plus one
//     wildcard chain per (entity, field)
//
// Two methods expose the engine to persistence adapters. Check is the
// pre-commit gate: called inside the transaction with a Mutation (old/new
// snapshots of every field plus an insert flag), it returns a typed error
// when the mutation must be rejected. Notify is the post-commit dispatcher:
// called after commit with the same Mutation shape, it fires matching
// actions with per-callback failure isolation and never reports errors to
// the caller.
//
// State values are opaque strings; adapters normalize driver values to
// *string once, and the engine compares pointers type-safely (nil means SQL
// NULL and is distinct from every state). A change whose sides are equal —
// or both absent — is a no-op and triggers nothing.
//
// # Usage
//
//	engine := fsm.MustNew(
//	    fsm.WithDefinition(fsm.Definition{
//	        Entity:  "invoice",
//	        Field:   "status",
//	        Initial: "draft",
//	        Transitions: map[string][]string{
//	            "draft": {"issued"},
//	            "issued": {"paid", "void"},
//	        },
//	    }),
//	    fsm.WithValidator("invoice", "status", "paid", "payment-check",
//	        func(ctx context.Context, id string, old, new *string) error {
//	            if !paymentSettled(ctx, id) {
//	                return fsm.Reject("payment has not settled")
//	            }
//	            return nil
//	        }),
//	    fsm.WithWildcardAction("invoice", "status", "history",
//	        recorder.Action("invoice", "status")),
//	)
//
// Inside the transaction:
//
//	if err := engine.Check(ctx, mutation); err != nil {
//	    return err // adapter rolls back
//	}
//
// After commit:
//
//	engine.Notify(ctx, mutation)
//
// # Error Handling
//
// Check returns one of four typed errors, each with an IsXxxError
// predicate: InvalidInitialStateError, InvalidTransitionError,
// ValidatorRejectedError (a validator returned Reject/Rejectf; the message
// is preserved verbatim) and ValidatorFailedError (a validator returned any
// other error — still fatal to the transaction, but classified as an
// infrastructure failure so operators can tell denials from bugs). Notify
// never returns errors; action failures and panics are logged through the
// engine's slog.Logger.
//
// # Concurrency
//
// Registries are immutable after New, so Check and Notify are safe for
// unlimited concurrent use without locking. Check runs in-line on the
// flushing goroutine. Notify runs in-line too by default; WithAsyncDispatch
// moves action execution to a single background worker fed by a FIFO queue,
// which keeps every entity's actions ordered relative to its own commits.
// Close drains that worker.
package fsm
