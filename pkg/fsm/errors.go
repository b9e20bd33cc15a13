package fsm

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyEntity       = errors.New("fsm: definition entity cannot be empty")
	ErrEmptyField        = errors.New("fsm: definition field cannot be empty")
	ErrEmptyInitialState = errors.New("fsm: definition initial state cannot be empty")
	ErrNilCallback       = errors.New("fsm: callback cannot be nil")
	ErrEngineClosed      = errors.New("fsm: engine is closed")
)

// rejection is the error validators return (via Reject/Rejectf) to signal a
// deliberate business-rule denial, as opposed to an unexpected failure.
type rejection struct {
	msg string
}

func (r *rejection) Error() string {
	return r.msg
}

// Reject creates a validator rejection carrying the given message. The
// message is surfaced verbatim to the caller of the pre-commit gate.
func Reject(msg string) error {
	return &rejection{msg: msg}
}

// Rejectf is Reject with fmt.Sprintf formatting.
func Rejectf(format string, args ...any) error {
	return &rejection{msg: fmt.Sprintf(format, args...)}
}

// IsRejection reports whether err was produced by Reject or Rejectf.
func IsRejection(err error) bool {
	var r *rejection
	return errors.As(err, &r)
}

// InvalidInitialStateError indicates an insert whose governed field does not
// hold the FSM's declared initial state.
type InvalidInitialStateError struct {
	Entity   string
	Field    string
	ID       string
	Value    *string
	Expected string
}

func (e *InvalidInitialStateError) Error() string {
	return fmt.Sprintf("fsm: entity %q id %q: field %q must start in state %q, got %s",
		e.Entity, e.ID, e.Field, e.Expected, stateString(e.Value))
}

// InvalidTransitionError indicates an update whose (old, new) pair is not a
// declared edge of the governed field's FSM.
type InvalidTransitionError struct {
	Entity string
	Field  string
	ID     string
	From   *string
	To     *string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("fsm: entity %q id %q: field %q has no transition %s -> %s",
		e.Entity, e.ID, e.Field, stateString(e.From), stateString(e.To))
}

// ValidatorRejectedError indicates a synchronous validator deliberately
// denied an FSM-valid transition. The validator's message is preserved
// verbatim via Unwrap.
type ValidatorRejectedError struct {
	Entity    string
	Field     string
	ID        string
	Validator string
	From      *string
	To        *string
	Err       error
}

func (e *ValidatorRejectedError) Error() string {
	return fmt.Sprintf("fsm: entity %q id %q: transition %s -> %s on field %q rejected by validator %q: %v",
		e.Entity, e.ID, stateString(e.From), stateString(e.To), e.Field, e.Validator, e.Err)
}

func (e *ValidatorRejectedError) Unwrap() error {
	return e.Err
}

// ValidatorFailedError indicates a synchronous validator returned an
// unexpected non-rejection error. The transaction is still aborted
// (fail safe), but the failure classifies as an infrastructure problem
// rather than a business-rule denial.
type ValidatorFailedError struct {
	Entity    string
	Field     string
	ID        string
	Validator string
	From      *string
	To        *string
	Err       error
}

func (e *ValidatorFailedError) Error() string {
	return fmt.Sprintf("fsm: entity %q id %q: validator %q failed on transition %s -> %s of field %q: %v",
		e.Entity, e.ID, e.Validator, stateString(e.From), stateString(e.To), e.Field, e.Err)
}

func (e *ValidatorFailedError) Unwrap() error {
	return e.Err
}

func IsInvalidInitialStateError(err error) bool {
	var e *InvalidInitialStateError
	return errors.As(err, &e)
}

func IsInvalidTransitionError(err error) bool {
	var e *InvalidTransitionError
	return errors.As(err, &e)
}

func IsValidatorRejectedError(err error) bool {
	var e *ValidatorRejectedError
	return errors.As(err, &e)
}

func IsValidatorFailedError(err error) bool {
	var e *ValidatorFailedError
	return errors.As(err, &e)
}

func stateString(s *string) string {
	if s == nil {
		return "null"
	}
	return fmt.Sprintf("%q", *s)
}
