package repository

import "errors"

// ErrDuplicate is returned when an insert violates a unique constraint.
// Point lookups signal absence with (nil, nil) rather than an error.
var ErrDuplicate = errors.New("duplicate record")
