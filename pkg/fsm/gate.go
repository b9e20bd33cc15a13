package fsm

import "context"

// Check is the pre-commit validation gate. Adapters call it once per flush,
// inside the transaction, before the commit decision is finalized. A nil
// return approves the mutation; a non-nil return must cause the adapter to
// roll the transaction back.
//
// Per governed field in the mutation: inserts must start in the declared
// initial state; updates must follow a declared edge and then survive the
// destination state's validator chain. No-op changes (both sides absent, or
// equal) are exempt from everything. Fields without a registered definition
// are not governed and are ignored.
func (e *Engine) Check(ctx context.Context, m Mutation) error {
	for _, ch := range m.Changes {
		def, ok := e.reg.definition(m.Entity, ch.Name)
		if !ok {
			continue
		}

		if m.Insert {
			// Old value is irrelevant for inserts; only the starting
			// state is checked, and no validators run.
			if ch.New == nil || *ch.New != def.Initial {
				return &InvalidInitialStateError{
					Entity:   m.Entity,
					Field:    ch.Name,
					ID:       m.ID,
					Value:    ch.New,
					Expected: def.Initial,
				}
			}
			continue
		}

		if ch.NoOp() {
			continue
		}

		// Null is distinct from every state and never part of a declared
		// edge, so a change with an absent side can only be invalid here.
		if ch.Old == nil || ch.New == nil || !def.Allows(*ch.Old, *ch.New) {
			return &InvalidTransitionError{
				Entity: m.Entity,
				Field:  ch.Name,
				ID:     m.ID,
				From:   ch.Old,
				To:     ch.New,
			}
		}

		for _, v := range e.reg.validatorsFor(m.Entity, ch.Name, *ch.New) {
			if err := v.fn(ctx, m.ID, ch.Old, ch.New); err != nil {
				if IsRejection(err) {
					return &ValidatorRejectedError{
						Entity:    m.Entity,
						Field:     ch.Name,
						ID:        m.ID,
						Validator: v.name,
						From:      ch.Old,
						To:        ch.New,
						Err:       err,
					}
				}
				return &ValidatorFailedError{
					Entity:    m.Entity,
					Field:     ch.Name,
					ID:        m.ID,
					Validator: v.name,
					From:      ch.Old,
					To:        ch.New,
					Err:       err,
				}
			}
		}
	}
	return nil
}
