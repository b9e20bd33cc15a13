// Package pgstore adapts the fsm engine to PostgreSQL. It is the host
// persistence layer from the engine's point of view: it owns the
// transaction, supplies the old/new column snapshots, invokes the
// pre-commit gate before the commit decision and the post-commit dispatcher
// strictly after it.
//
// # Architecture
//
// Entity types map to tables, fields to columns, one row per entity. An
// Update takes the row lock (SELECT ... FOR UPDATE), snapshots the current
// column values, hands the old/new pairs to engine.Check and only then
// writes. If the gate rejects — invalid transition, validator denial — the
// transaction is rolled back and the gate's typed error is returned to the
// caller untouched. After a successful commit the same snapshot is passed
// to engine.Notify; dispatcher failures are invisible here, as they must
// be.
//
// An Insert asks the engine which fields of the entity it governs and adds
// any the caller omitted to the mutation with an absent value, so a row
// cannot be created outside its machine by simply leaving the state column
// out of the column map.
//
// Column values are normalized to textual snapshots once, on read and on
// write, so the engine's state comparison is independent of the column's
// SQL type. NULL maps to an absent value.
//
// # Usage
//
//	store := pgstore.New(pool, engine)
//
//	err := store.Insert(ctx, "user", id, map[string]any{
//	    "user_state": "A",
//	    "email":      "a@b.c",
//	})
//
//	err = store.Update(ctx, "user", id, map[string]any{
//	    "user_state": "B",
//	})
//	if fsm.IsInvalidTransitionError(err) {
//	    // nothing was written
//	}
package pgstore
