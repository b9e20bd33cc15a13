package history

import "context"

// Storage persists transition entries. Implementations must be safe for
// concurrent use; Append is called from post-commit dispatch, List from
// whatever surface the application exposes its audit trail on.
type Storage interface {
	Append(ctx context.Context, entry Entry) error

	// List returns entries matching the filter, newest first.
	List(ctx context.Context, filter Filter) ([]Entry, error)
}
