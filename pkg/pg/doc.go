// Package pg provides the PostgreSQL plumbing shared by the gate's store
// and the transition-log storage: connection pooling via pgx/v5, schema
// migrations via goose/v3, a health-check closure and a few error
// classification helpers.
//
// # Usage
//
//	var cfg pg.Config
//	if err := env.Parse(&cfg); err != nil {
//	    panic(err)
//	}
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    panic(err)
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil {
//	    panic(err)
//	}
//
// Configuration is environment-driven (FSM_PG_* variables, see Config field
// tags) so the same binary runs against any database without code changes.
// The shipped migrations create the fsm_transition_log table used by
// history.PostgresStorage.
//
// # Error Handling
//
// Connection and migration failures come back joined with the package's
// sentinel errors. IsNotFoundError, IsTxClosedError and IsDuplicateKeyError
// classify driver errors so callers never match on SQLSTATE strings
// themselves.
package pg
