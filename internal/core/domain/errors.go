package domain

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

// ValidationError is a request-level input error. Its message is
// safe to return to the caller.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }
