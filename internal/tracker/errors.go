package tracker

import "errors"

var (
	// ErrSessionCompleted indicates a mutation was attempted against a
	// session that has already been closed.
	ErrSessionCompleted = errors.New("session already completed")
)
