package pgstore

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

// sortedColumns fixes the column order for a fields map so queries and
// mutation snapshots are reproducible.
func sortedColumns(fields map[string]any) []string {
	return slices.Sorted(maps.Keys(fields))
}

// normalize converts a driver or caller value to the engine's snapshot
// representation: nil stays nil (SQL NULL), everything else becomes its
// textual form. Stringifying once here is what lets the engine compare
// states type-safely regardless of the underlying column type.
func normalize(v any) *string {
	if v == nil {
		return nil
	}
	switch t := v.(type) {
	case *string:
		return t
	case string:
		return &t
	case []byte:
		s := string(t)
		return &s
	case time.Time:
		s := t.Format(time.RFC3339Nano)
		return &s
	case fmt.Stringer:
		s := t.String()
		return &s
	default:
		s := fmt.Sprintf("%v", t)
		return &s
	}
}

func buildSelect(table, idColumn string, cols []string) string {
	var b strings.Builder
	b.WriteString("SELECT ")
	for i, col := range cols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(pgx.Identifier{col}.Sanitize())
	}
	b.WriteString(" FROM ")
	b.WriteString(pgx.Identifier{table}.Sanitize())
	b.WriteString(" WHERE ")
	b.WriteString(pgx.Identifier{idColumn}.Sanitize())
	b.WriteString(" = $1 FOR UPDATE")
	return b.String()
}

func buildInsert(table, idColumn, id string, cols []string, fields map[string]any) (string, []any) {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(pgx.Identifier{table}.Sanitize())
	b.WriteString(" (")
	b.WriteString(pgx.Identifier{idColumn}.Sanitize())
	for _, col := range cols {
		b.WriteString(", ")
		b.WriteString(pgx.Identifier{col}.Sanitize())
	}
	b.WriteString(") VALUES ($1")
	args := make([]any, 0, len(cols)+1)
	args = append(args, id)
	for i, col := range cols {
		b.WriteString(", $")
		b.WriteString(strconv.Itoa(i + 2))
		args = append(args, fields[col])
	}
	b.WriteString(")")
	return b.String(), args
}

func buildUpdate(table, idColumn, id string, cols []string, fields map[string]any) (string, []any) {
	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(pgx.Identifier{table}.Sanitize())
	b.WriteString(" SET ")
	args := make([]any, 0, len(cols)+1)
	for i, col := range cols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(pgx.Identifier{col}.Sanitize())
		b.WriteString(" = $")
		b.WriteString(strconv.Itoa(i + 1))
		args = append(args, fields[col])
	}
	b.WriteString(" WHERE ")
	b.WriteString(pgx.Identifier{idColumn}.Sanitize())
	b.WriteString(" = $")
	b.WriteString(strconv.Itoa(len(cols) + 1))
	args = append(args, id)
	return b.String(), args
}
