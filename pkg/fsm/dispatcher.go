package fsm

import (
	"context"
	"log/slog"
	"sync"
)

// Notify is the post-commit action dispatcher. Adapters call it once per
// successfully committed flush, after the transaction boundary. It never
// returns an error: action failures are logged per callback and isolated,
// so neither the committed transaction nor sibling actions are affected.
//
// Only changes with both sides present and differing fire actions; inserts
// and null-sided changes are skipped, matching the gate's no-op rule plus
// the rule that null never participates in a transition. For each firing
// change the specific-destination chain runs first, then the wildcard
// chain, both in registration order.
//
// In synchronous mode actions run on the caller's goroutine; with
// WithAsyncDispatch they are queued to the engine's worker and Notify
// returns once the mutation is enqueued.
func (e *Engine) Notify(ctx context.Context, m Mutation) {
	if e.queue != nil {
		// Actions outlive the request that committed the row; only the
		// values are carried over, not the caller's cancellation.
		e.queue.enqueue(context.WithoutCancel(ctx), m)
		return
	}
	e.dispatch(ctx, m)
}

func (e *Engine) dispatch(ctx context.Context, m Mutation) {
	if m.Insert {
		return
	}
	for _, ch := range m.Changes {
		if _, ok := e.reg.definition(m.Entity, ch.Name); !ok {
			continue
		}
		if ch.Old == nil || ch.New == nil || *ch.Old == *ch.New {
			continue
		}
		for _, a := range e.reg.actionsFor(m.Entity, ch.Name, *ch.New) {
			e.invoke(ctx, a, m, ch)
		}
		for _, a := range e.reg.wildcardActionsFor(m.Entity, ch.Name) {
			e.invoke(ctx, a, m, ch)
		}
	}
}

// invoke runs a single action with per-callback isolation: errors and
// panics are logged and swallowed.
func (e *Engine) invoke(ctx context.Context, a namedAction, m Mutation, ch FieldChange) {
	defer func() {
		if r := recover(); r != nil {
			e.log.ErrorContext(ctx, "post-commit action panicked",
				slog.String("action", a.name),
				slog.String("entity", m.Entity),
				slog.String("id", m.ID),
				slog.String("field", ch.Name),
				slog.Any("panic", r),
			)
		}
	}()
	if err := a.fn(ctx, m.ID, ch.Old, ch.New); err != nil {
		e.log.ErrorContext(ctx, "post-commit action failed",
			slog.String("action", a.name),
			slog.String("entity", m.Entity),
			slog.String("id", m.ID),
			slog.String("field", ch.Name),
			slog.String("from", stateString(ch.Old)),
			slog.String("to", stateString(ch.New)),
			slog.Any("error", err),
		)
	}
}

type dispatchJob struct {
	ctx context.Context
	m   Mutation
}

// dispatchQueue serializes asynchronous dispatch through one worker
// goroutine. FIFO consumption preserves each entity's commit order without
// any per-entity bookkeeping.
type dispatchQueue struct {
	jobs   chan dispatchJob
	done   chan struct{}
	mu     sync.Mutex
	closed bool
}

func newDispatchQueue(e *Engine, buffer int) *dispatchQueue {
	q := &dispatchQueue{
		jobs: make(chan dispatchJob, buffer),
		done: make(chan struct{}),
	}
	go func() {
		defer close(q.done)
		for job := range q.jobs {
			e.dispatch(job.ctx, job.m)
		}
	}()
	return q
}

func (q *dispatchQueue) enqueue(ctx context.Context, m Mutation) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	// Holding the lock across the send keeps close() from closing the
	// channel under an in-flight enqueue. Sends block when the buffer is
	// full rather than dropping committed transitions.
	q.jobs <- dispatchJob{ctx: ctx, m: m}
	q.mu.Unlock()
}

func (q *dispatchQueue) close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		<-q.done
		return
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()
	<-q.done
}
