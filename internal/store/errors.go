package store

import "errors"

// ErrNotFound indicates no session document exists for the requested ID.
var ErrNotFound = errors.New("session not found")
