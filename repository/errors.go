package repository

import "errors"

// ErrDuplicateEmail is returned when a unique email index rejects a write.
var ErrDuplicateEmail = errors.New("email already exists")
