package domain

import "errors"

// Failure classes for engine operations. Handlers translate these to HTTP
// statuses; everything else is treated as an opaque server error.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)
