package history

import "errors"

var (
	ErrAppendFailed = errors.New("history: failed to append entry")
	ErrListFailed   = errors.New("history: failed to list entries")
)
