package pgstore

import "log/slog"

// Option configures a store during construction.
type Option func(*Store)

// WithIDColumn overrides the identifier column name (default "id").
func WithIDColumn(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.idColumn = name
		}
	}
}

// WithLogger sets the logger for rollback failures. Defaults to
// slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}
