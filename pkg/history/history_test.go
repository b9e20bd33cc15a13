package history_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skydo/fsmgate/pkg/fsm"
	"github.com/skydo/fsmgate/pkg/history"
)

func appendEntry(t *testing.T, s history.Storage, entity, id, field, from, to string) {
	t.Helper()
	rec := history.NewRecorder(s)
	require.NoError(t, rec.Action(entity, field)(context.Background(), id, fsm.State(from), fsm.State(to)))
}

func TestMemoryStorage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("lists newest first", func(t *testing.T) {
		t.Parallel()
		s := history.NewMemoryStorage()
		appendEntry(t, s, "user", "u1", "user_state", "A", "B")
		appendEntry(t, s, "user", "u1", "user_state", "B", "C")
		appendEntry(t, s, "user", "u1", "user_state", "C", "E")

		entries, err := s.List(ctx, history.Filter{})
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "E", *entries[0].To)
		assert.Equal(t, "C", *entries[1].To)
		assert.Equal(t, "B", *entries[2].To)
	})

	t.Run("filters by entity, id and field", func(t *testing.T) {
		t.Parallel()
		s := history.NewMemoryStorage()
		appendEntry(t, s, "user", "u1", "user_state", "A", "B")
		appendEntry(t, s, "user", "u2", "user_state", "A", "C")
		appendEntry(t, s, "invoice", "i1", "status", "draft", "issued")

		entries, err := s.List(ctx, history.Filter{Entity: "user"})
		require.NoError(t, err)
		assert.Len(t, entries, 2)

		entries, err = s.List(ctx, history.Filter{Entity: "user", EntityID: "u2"})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "C", *entries[0].To)

		entries, err = s.List(ctx, history.Filter{Field: "status"})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "invoice", entries[0].Entity)
	})

	t.Run("limit caps the result", func(t *testing.T) {
		t.Parallel()
		s := history.NewMemoryStorage()
		appendEntry(t, s, "user", "u1", "user_state", "A", "B")
		appendEntry(t, s, "user", "u1", "user_state", "B", "C")

		entries, err := s.List(ctx, history.Filter{Limit: 1})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "C", *entries[0].To)
	})
}

func TestRecorder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("panics on nil storage", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { history.NewRecorder(nil) })
	})

	t.Run("records the transition it was given", func(t *testing.T) {
		t.Parallel()
		s := history.NewMemoryStorage()
		rec := history.NewRecorder(s)

		require.NoError(t, rec.Action("user", "user_state")(ctx, "u1", fsm.State("A"), fsm.State("B")))

		entries, err := s.List(ctx, history.Filter{})
		require.NoError(t, err)
		require.Len(t, entries, 1)

		e := entries[0]
		assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", e.ID.String())
		assert.Equal(t, "user", e.Entity)
		assert.Equal(t, "u1", e.EntityID)
		assert.Equal(t, "user_state", e.Field)
		assert.Equal(t, "A", *e.From)
		assert.Equal(t, "B", *e.To)
		assert.False(t, e.OccurredAt.IsZero())
	})

	t.Run("records every transition through the engine", func(t *testing.T) {
		t.Parallel()
		s := history.NewMemoryStorage()
		rec := history.NewRecorder(s)
		engine := fsm.MustNew(
			fsm.WithDefinition(fsm.Definition{
				Entity:  "user",
				Field:   "user_state",
				Initial: "A",
				Transitions: map[string][]string{
					"A": {"B"},
					"B": {"C"},
				},
			}),
			fsm.WithWildcardAction("user", "user_state", "history",
				rec.Action("user", "user_state")),
		)

		update := func(old, new string) fsm.Mutation {
			return fsm.Mutation{
				Entity: "user",
				ID:     "u1",
				Changes: []fsm.FieldChange{
					{Name: "user_state", Old: fsm.State(old), New: fsm.State(new)},
				},
			}
		}

		engine.Notify(ctx, update("A", "B"))
		engine.Notify(ctx, update("B", "C"))

		assert.Equal(t, 2, s.Len())
	})
}
