package tcp

import "errors"

var (
	// ErrTimeout is returned instead of the underlying error when a deadline is
	// exceeded, so it can be told apart from genuine I/O errors
	ErrTimeout    = errors.New("tcp: i/o timeout")
	ErrBadBacklog = errors.New("tcp: backlog must be positive")
)
