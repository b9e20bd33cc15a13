package fsm

type validatorKey struct {
	entity string
	field  string
	dest   string
}

type namedValidator struct {
	name string
	fn   ValidatorFunc
}

type namedAction struct {
	name string
	fn   ActionFunc
}

// registry holds the three lookup tables the engine consults: FSM
// definitions, synchronous validator chains keyed by destination state, and
// post-commit action chains (specific destination plus per-field wildcard).
// It is populated during engine construction and never mutated afterwards,
// so concurrent lookups need no locking.
type registry struct {
	definitions map[defKey]Definition
	validators  map[validatorKey][]namedValidator
	specific    map[validatorKey][]namedAction
	wildcard    map[defKey][]namedAction
}

func newRegistry() *registry {
	return &registry{
		definitions: make(map[defKey]Definition),
		validators:  make(map[validatorKey][]namedValidator),
		specific:    make(map[validatorKey][]namedAction),
		wildcard:    make(map[defKey][]namedAction),
	}
}

// addDefinition adds or replaces the definition for its (entity, field) key.
func (r *registry) addDefinition(def Definition) error {
	if err := def.validate(); err != nil {
		return err
	}
	r.definitions[def.key()] = def
	return nil
}

func (r *registry) definition(entity, field string) (Definition, bool) {
	def, ok := r.definitions[defKey{entity: entity, field: field}]
	return def, ok
}

// Chains append in registration order; that order is the execution order.

func (r *registry) addValidator(entity, field, dest, name string, fn ValidatorFunc) error {
	if fn == nil {
		return ErrNilCallback
	}
	k := validatorKey{entity: entity, field: field, dest: dest}
	r.validators[k] = append(r.validators[k], namedValidator{name: name, fn: fn})
	return nil
}

func (r *registry) validatorsFor(entity, field, dest string) []namedValidator {
	return r.validators[validatorKey{entity: entity, field: field, dest: dest}]
}

func (r *registry) addAction(entity, field, dest, name string, fn ActionFunc) error {
	if fn == nil {
		return ErrNilCallback
	}
	k := validatorKey{entity: entity, field: field, dest: dest}
	r.specific[k] = append(r.specific[k], namedAction{name: name, fn: fn})
	return nil
}

func (r *registry) actionsFor(entity, field, dest string) []namedAction {
	return r.specific[validatorKey{entity: entity, field: field, dest: dest}]
}

func (r *registry) addWildcardAction(entity, field, name string, fn ActionFunc) error {
	if fn == nil {
		return ErrNilCallback
	}
	k := defKey{entity: entity, field: field}
	r.wildcard[k] = append(r.wildcard[k], namedAction{name: name, fn: fn})
	return nil
}

func (r *registry) wildcardActionsFor(entity, field string) []namedAction {
	return r.wildcard[defKey{entity: entity, field: field}]
}
