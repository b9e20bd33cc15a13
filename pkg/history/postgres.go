package history

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStorage persists transition entries in the fsm_transition_log
// table created by the pg package's migrations.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresStorage(pool *pgxpool.Pool) *PostgresStorage {
	if pool == nil {
		panic("history: pgx pool cannot be nil")
	}
	return &PostgresStorage{pool: pool}
}

func (s *PostgresStorage) Append(ctx context.Context, entry Entry) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO fsm_transition_log (id, entity, entity_id, field, from_state, to_state, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, entry.Entity, entry.EntityID, entry.Field, entry.From, entry.To, entry.OccurredAt,
	)
	if err != nil {
		return errors.Join(ErrAppendFailed, err)
	}
	return nil
}

func (s *PostgresStorage) List(ctx context.Context, filter Filter) ([]Entry, error) {
	var (
		conds []string
		args  []any
	)
	add := func(column, value string) {
		args = append(args, value)
		conds = append(conds, column+" = $"+strconv.Itoa(len(args)))
	}
	if filter.Entity != "" {
		add("entity", filter.Entity)
	}
	if filter.EntityID != "" {
		add("entity_id", filter.EntityID)
	}
	if filter.Field != "" {
		add("field", filter.Field)
	}

	query := `SELECT id, entity, entity_id, field, from_state, to_state, occurred_at FROM fsm_transition_log`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY occurred_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT " + strconv.Itoa(filter.Limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Join(ErrListFailed, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Entity, &e.EntityID, &e.Field, &e.From, &e.To, &e.OccurredAt); err != nil {
			return nil, errors.Join(ErrListFailed, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrListFailed, err)
	}
	return entries, nil
}
