package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist in the store.
// Lookups with id 0 always report ErrNotFound: 0 is the "does not exist"
// sentinel and is never assigned.
var ErrNotFound = errors.New("not found")
