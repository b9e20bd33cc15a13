package pgstore

import "errors"

var (
	// ErrNoFields is returned when a write carries no field values.
	ErrNoFields = errors.New("pgstore: no fields to write")

	// ErrRowNotFound is returned when an update targets a row that does not exist.
	ErrRowNotFound = errors.New("pgstore: row not found")

	// ErrBeginTx is returned when a transaction cannot be opened.
	ErrBeginTx = errors.New("pgstore: failed to begin transaction")
)
