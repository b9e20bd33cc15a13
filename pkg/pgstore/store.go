package pgstore

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skydo/fsmgate/pkg/fsm"
)

// DB is the transactional surface the store needs from a database handle.
// *pgxpool.Pool is adapted to it by New; tests substitute their own.
type DB interface {
	Begin(ctx context.Context) (Tx, error)
}

// Tx is the subset of pgx.Tx the store touches inside a transaction.
type Tx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// poolDB adapts *pgxpool.Pool to DB. pgx.Tx already satisfies Tx, only the
// Begin return type needs widening.
type poolDB struct {
	pool *pgxpool.Pool
}

func (p poolDB) Begin(ctx context.Context) (Tx, error) {
	return p.pool.Begin(ctx)
}

// Store executes entity inserts and updates through the FSM engine. The
// entity type is the table name, fields are columns. Every write runs in
// its own transaction: the pre-commit gate is consulted inside it (a gate
// failure rolls it back), and the post-commit dispatcher is notified only
// after the transaction has durably committed.
type Store struct {
	db       DB
	engine   *fsm.Engine
	idColumn string
	log      *slog.Logger
}

// New creates a store bound to a connection pool and an engine. Panics on
// nil dependencies: a store without either cannot do anything useful and
// misconfiguration should fail at startup.
func New(pool *pgxpool.Pool, engine *fsm.Engine, opts ...Option) *Store {
	if pool == nil {
		panic("pgstore: pool cannot be nil")
	}
	return NewWithDB(poolDB{pool: pool}, engine, opts...)
}

// NewWithDB creates a store over any DB implementation. Panics on nil
// dependencies, like New.
func NewWithDB(db DB, engine *fsm.Engine, opts ...Option) *Store {
	if db == nil {
		panic("pgstore: db cannot be nil")
	}
	if engine == nil {
		panic("pgstore: engine cannot be nil")
	}

	s := &Store{
		db:       db,
		engine:   engine,
		idColumn: "id",
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Insert creates a row after the gate has approved its starting state.
// Governed fields the caller left out of the map are added to the mutation
// with an absent value, so omitting a state column cannot smuggle a row
// past initial-state enforcement.
func (s *Store) Insert(ctx context.Context, entity, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return ErrNoFields
	}

	cols := sortedColumns(fields)
	mutation := fsm.Mutation{
		Entity:  entity,
		ID:      id,
		Insert:  true,
		Changes: make([]fsm.FieldChange, 0, len(cols)),
	}
	for _, col := range cols {
		mutation.Changes = append(mutation.Changes, fsm.FieldChange{
			Name: col,
			New:  normalize(fields[col]),
		})
	}
	for _, field := range s.engine.GovernedFields(entity) {
		if _, ok := fields[field]; !ok {
			mutation.Changes = append(mutation.Changes, fsm.FieldChange{Name: field})
		}
	}

	err := s.inTx(ctx, func(tx Tx) error {
		if err := s.engine.Check(ctx, mutation); err != nil {
			return err
		}
		query, args := buildInsert(entity, s.idColumn, id, cols, fields)
		_, err := tx.Exec(ctx, query, args...)
		return err
	})
	if err != nil {
		return err
	}

	s.engine.Notify(ctx, mutation)
	return nil
}

// Update mutates a row after snapshotting its current column values under a
// row lock, so the old/new pair the gate sees is exactly the pair the
// transaction commits.
func (s *Store) Update(ctx context.Context, entity, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return ErrNoFields
	}

	cols := sortedColumns(fields)
	var mutation fsm.Mutation

	err := s.inTx(ctx, func(tx Tx) error {
		old, err := s.snapshot(ctx, tx, entity, id, cols)
		if err != nil {
			return err
		}

		mutation = fsm.Mutation{
			Entity:  entity,
			ID:      id,
			Changes: make([]fsm.FieldChange, 0, len(cols)),
		}
		for i, col := range cols {
			mutation.Changes = append(mutation.Changes, fsm.FieldChange{
				Name: col,
				Old:  old[i],
				New:  normalize(fields[col]),
			})
		}

		if err := s.engine.Check(ctx, mutation); err != nil {
			return err
		}
		query, args := buildUpdate(entity, s.idColumn, id, cols, fields)
		_, err = tx.Exec(ctx, query, args...)
		return err
	})
	if err != nil {
		return err
	}

	s.engine.Notify(ctx, mutation)
	return nil
}

// snapshot reads the row's current values with FOR UPDATE so a concurrent
// writer cannot change the field between the snapshot and the commit.
func (s *Store) snapshot(ctx context.Context, tx Tx, entity, id string, cols []string) ([]*string, error) {
	raw := make([]any, len(cols))
	dest := make([]any, len(cols))
	for i := range raw {
		dest[i] = &raw[i]
	}

	query := buildSelect(entity, s.idColumn, cols)
	if err := tx.QueryRow(ctx, query, id).Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.Join(ErrRowNotFound, err)
		}
		return nil, err
	}

	old := make([]*string, len(cols))
	for i, v := range raw {
		old[i] = normalize(v)
	}
	return old, nil
}

func (s *Store) inTx(ctx context.Context, fn func(tx Tx) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return errors.Join(ErrBeginTx, err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			s.log.ErrorContext(ctx, "failed to roll back transaction", slog.Any("error", rbErr))
		}
		return err
	}

	return tx.Commit(ctx)
}
