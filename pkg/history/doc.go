// Package history records committed transitions of governed fields as an
// append-only audit trail.
//
// A Recorder wraps a Storage and produces post-commit actions for the fsm
// engine; registering one as a wildcard action gives a complete, ordered
// log of every state change a field ever went through:
//
//	recorder := history.NewRecorder(history.NewMemoryStorage())
//
//	engine := fsm.MustNew(
//	    fsm.WithDefinition(def),
//	    fsm.WithWildcardAction("user", "user_state", "history",
//	        recorder.Action("user", "user_state")),
//	)
//
// Three storages ship with the package: MemoryStorage for tests and
// debugging, PostgresStorage over the fsm_transition_log table (schema in
// the repository's migrations directory) and MongoStorage over a
// configurable collection. All of them list newest-first.
//
// Because entries are written post-commit, the trail is best-effort: a
// storage outage loses the entry but never the committed transition.
package history
