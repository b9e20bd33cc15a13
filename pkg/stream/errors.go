package stream

import "errors"

var (
	ErrParseConnString = errors.New("stream: failed to parse redis connection string")
	ErrNotReady        = errors.New("stream: redis server is not ready")
	ErrEncodeEvent     = errors.New("stream: failed to encode transition event")
	ErrPublishFailed   = errors.New("stream: failed to publish transition event")
)
