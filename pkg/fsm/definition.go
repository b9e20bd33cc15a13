package fsm

// Definition declares the legal states and transitions for one governed
// field of one entity type. States are opaque strings; the engine never
// interprets them beyond equality.
type Definition struct {
	// Entity identifies the governed entity type (for SQL-backed adapters
	// this is the table name).
	Entity string
	// Field is the governed column/field name.
	Field string
	// Initial is the only state a freshly inserted row may hold.
	Initial string
	// Transitions maps a source state to its permitted destination states.
	// A source state absent from the map has no outgoing transitions.
	// Self-loops are valid only when declared explicitly.
	Transitions map[string][]string
}

// Allows reports whether the from->to edge is declared in the definition.
func (d Definition) Allows(from, to string) bool {
	for _, dest := range d.Transitions[from] {
		if dest == to {
			return true
		}
	}
	return false
}

// validate is called at registration time so a malformed definition fails
// engine construction instead of silently skipping fields at runtime.
func (d Definition) validate() error {
	if d.Entity == "" {
		return ErrEmptyEntity
	}
	if d.Field == "" {
		return ErrEmptyField
	}
	if d.Initial == "" {
		return ErrEmptyInitialState
	}
	return nil
}

type defKey struct {
	entity string
	field  string
}

func (d Definition) key() defKey {
	return defKey{entity: d.Entity, field: d.Field}
}
