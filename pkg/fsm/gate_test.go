package fsm_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skydo/fsmgate/pkg/fsm"
)

// userStateDefinition mirrors a small onboarding flow:
// initial A, edges A->B, A->C, B->C, B->D, C->E, E->D.
func userStateDefinition() fsm.Definition {
	return fsm.Definition{
		Entity:  "user",
		Field:   "user_state",
		Initial: "A",
		Transitions: map[string][]string{
			"A": {"B", "C"},
			"B": {"C", "D"},
			"C": {"E"},
			"E": {"D"},
		},
	}
}

func insertMutation(id, state string) fsm.Mutation {
	return fsm.Mutation{
		Entity: "user",
		ID:     id,
		Insert: true,
		Changes: []fsm.FieldChange{
			{Name: "user_state", New: fsm.State(state)},
			{Name: "email", New: fsm.State("a@b.c")},
		},
	}
}

func updateMutation(id string, old, new *string) fsm.Mutation {
	return fsm.Mutation{
		Entity: "user",
		ID:     id,
		Changes: []fsm.FieldChange{
			{Name: "user_state", Old: old, New: new},
			{Name: "email", Old: fsm.State("a@b.c"), New: fsm.State("a@b.c")},
		},
	}
}

func TestGateInserts(t *testing.T) {
	t.Parallel()

	engine := fsm.MustNew(fsm.WithDefinition(userStateDefinition()))

	t.Run("accepts initial state", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, engine.Check(context.Background(), insertMutation("u1", "A")))
	})

	t.Run("rejects any other state", func(t *testing.T) {
		t.Parallel()
		err := engine.Check(context.Background(), insertMutation("u2", "D"))
		require.Error(t, err)
		assert.True(t, fsm.IsInvalidInitialStateError(err))

		var initErr *fsm.InvalidInitialStateError
		require.ErrorAs(t, err, &initErr)
		assert.Equal(t, "user", initErr.Entity)
		assert.Equal(t, "user_state", initErr.Field)
		assert.Equal(t, "u2", initErr.ID)
		assert.Equal(t, "A", initErr.Expected)
		require.NotNil(t, initErr.Value)
		assert.Equal(t, "D", *initErr.Value)
	})

	t.Run("rejects absent state", func(t *testing.T) {
		t.Parallel()
		err := engine.Check(context.Background(), fsm.Mutation{
			Entity:  "user",
			ID:      "u3",
			Insert:  true,
			Changes: []fsm.FieldChange{{Name: "user_state"}},
		})
		assert.True(t, fsm.IsInvalidInitialStateError(err))
	})

	t.Run("does not run validators", func(t *testing.T) {
		t.Parallel()
		e := fsm.MustNew(
			fsm.WithDefinition(userStateDefinition()),
			fsm.WithValidator("user", "user_state", "A", "never",
				func(ctx context.Context, id string, old, new *string) error {
					t.Error("validator must not run on insert")
					return nil
				}),
		)
		require.NoError(t, e.Check(context.Background(), insertMutation("u4", "A")))
	})
}

func TestGateTransitions(t *testing.T) {
	t.Parallel()

	engine := fsm.MustNew(fsm.WithDefinition(userStateDefinition()))
	ctx := context.Background()

	t.Run("accepts declared edge", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, engine.Check(ctx, updateMutation("u1", fsm.State("A"), fsm.State("B"))))
	})

	t.Run("rejects undeclared edge", func(t *testing.T) {
		t.Parallel()
		err := engine.Check(ctx, updateMutation("u1", fsm.State("A"), fsm.State("D")))
		require.Error(t, err)
		assert.True(t, fsm.IsInvalidTransitionError(err))

		var trErr *fsm.InvalidTransitionError
		require.ErrorAs(t, err, &trErr)
		assert.Equal(t, "A", *trErr.From)
		assert.Equal(t, "D", *trErr.To)
	})

	t.Run("rejects edge from terminal state", func(t *testing.T) {
		t.Parallel()
		err := engine.Check(ctx, updateMutation("u1", fsm.State("D"), fsm.State("A")))
		assert.True(t, fsm.IsInvalidTransitionError(err))
	})

	t.Run("no implicit self loop", func(t *testing.T) {
		t.Parallel()
		// C->C is not declared; equal values short-circuit as a no-op
		// before the edge check, so this must pass untouched.
		require.NoError(t, engine.Check(ctx, updateMutation("u1", fsm.State("C"), fsm.State("C"))))
	})

	t.Run("both absent is a no-op", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, engine.Check(ctx, updateMutation("u1", nil, nil)))
	})

	t.Run("null to state is invalid", func(t *testing.T) {
		t.Parallel()
		err := engine.Check(ctx, updateMutation("u1", nil, fsm.State("B")))
		assert.True(t, fsm.IsInvalidTransitionError(err))
	})

	t.Run("state to null is invalid", func(t *testing.T) {
		t.Parallel()
		err := engine.Check(ctx, updateMutation("u1", fsm.State("B"), nil))
		assert.True(t, fsm.IsInvalidTransitionError(err))
	})

	t.Run("ungoverned field is ignored", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, engine.Check(ctx, fsm.Mutation{
			Entity: "user",
			ID:     "u1",
			Changes: []fsm.FieldChange{
				{Name: "nickname", Old: fsm.State("x"), New: fsm.State("y")},
			},
		}))
	})

	t.Run("ungoverned entity is ignored", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, engine.Check(ctx, fsm.Mutation{
			Entity: "order",
			ID:     "o1",
			Changes: []fsm.FieldChange{
				{Name: "user_state", Old: fsm.State("A"), New: fsm.State("Z")},
			},
		}))
	})
}

func TestGateValidators(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("run in registration order", func(t *testing.T) {
		t.Parallel()
		var order []string
		record := func(name string) fsm.ValidatorFunc {
			return func(ctx context.Context, id string, old, new *string) error {
				order = append(order, name)
				return nil
			}
		}
		engine := fsm.MustNew(
			fsm.WithDefinition(userStateDefinition()),
			fsm.WithValidator("user", "user_state", "B", "first", record("first")),
			fsm.WithValidator("user", "user_state", "B", "second", record("second")),
			fsm.WithValidator("user", "user_state", "B", "third", record("third")),
		)

		require.NoError(t, engine.Check(ctx, updateMutation("u1", fsm.State("A"), fsm.State("B"))))
		assert.Equal(t, []string{"first", "second", "third"}, order)
	})

	t.Run("rejection short-circuits the chain", func(t *testing.T) {
		t.Parallel()
		var afterRan bool
		engine := fsm.MustNew(
			fsm.WithDefinition(userStateDefinition()),
			fsm.WithValidator("user", "user_state", "B", "payment-check",
				func(ctx context.Context, id string, old, new *string) error {
					return fsm.Reject("payment has not settled")
				}),
			fsm.WithValidator("user", "user_state", "B", "after",
				func(ctx context.Context, id string, old, new *string) error {
					afterRan = true
					return nil
				}),
		)

		err := engine.Check(ctx, updateMutation("u1", fsm.State("A"), fsm.State("B")))
		require.Error(t, err)
		assert.True(t, fsm.IsValidatorRejectedError(err))
		assert.ErrorContains(t, err, "payment has not settled")
		assert.False(t, afterRan)

		var rejErr *fsm.ValidatorRejectedError
		require.ErrorAs(t, err, &rejErr)
		assert.Equal(t, "payment-check", rejErr.Validator)
		assert.Equal(t, "payment has not settled", rejErr.Err.Error())
	})

	t.Run("unexpected error classifies as infrastructure failure", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("connection refused")
		engine := fsm.MustNew(
			fsm.WithDefinition(userStateDefinition()),
			fsm.WithValidator("user", "user_state", "B", "flaky",
				func(ctx context.Context, id string, old, new *string) error {
					return boom
				}),
		)

		err := engine.Check(ctx, updateMutation("u1", fsm.State("A"), fsm.State("B")))
		require.Error(t, err)
		assert.True(t, fsm.IsValidatorFailedError(err))
		assert.False(t, fsm.IsValidatorRejectedError(err))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("never run for an invalid transition", func(t *testing.T) {
		t.Parallel()
		engine := fsm.MustNew(
			fsm.WithDefinition(userStateDefinition()),
			fsm.WithValidator("user", "user_state", "D", "never",
				func(ctx context.Context, id string, old, new *string) error {
					t.Error("validator must not run for an FSM-invalid transition")
					return nil
				}),
		)

		err := engine.Check(ctx, updateMutation("u1", fsm.State("A"), fsm.State("D")))
		assert.True(t, fsm.IsInvalidTransitionError(err))
	})

	t.Run("scoped to their destination state", func(t *testing.T) {
		t.Parallel()
		var called bool
		engine := fsm.MustNew(
			fsm.WithDefinition(userStateDefinition()),
			fsm.WithValidator("user", "user_state", "C", "on-c",
				func(ctx context.Context, id string, old, new *string) error {
					called = true
					return nil
				}),
		)

		require.NoError(t, engine.Check(ctx, updateMutation("u1", fsm.State("A"), fsm.State("B"))))
		assert.False(t, called)

		require.NoError(t, engine.Check(ctx, updateMutation("u1", fsm.State("A"), fsm.State("C"))))
		assert.True(t, called)
	})
}
