package fsmconfig

import "errors"

var (
	ErrInvalidYAML         = errors.New("fsmconfig: failed to decode machine definitions")
	ErrNoMachines          = errors.New("fsmconfig: no machines declared")
	ErrInvalidMachine      = errors.New("fsmconfig: invalid machine definition")
	ErrDuplicateMachine    = errors.New("fsmconfig: duplicate machine definition")
	ErrDuplicateTransition = errors.New("fsmconfig: duplicate transition")
	ErrReadFile            = errors.New("fsmconfig: failed to read definition file")
	ErrParseEnv            = errors.New("fsmconfig: failed to parse environment")
)
