package domain

import "errors"

// Sentinel errors separating caller faults from store faults. Anything a
// repository returns that does not match one of these is a store failure.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("already exists")
)
