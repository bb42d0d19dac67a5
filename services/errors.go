package services

import (
	"errors"
	"fmt"
)

// Error kinds returned by the services. Callers classify with errors.Is.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrIllegalTransition = errors.New("illegal attendance transition")
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrStorage           = errors.New("storage failure")
)

var (
	ErrAlreadyCheckedIn = fmt.Errorf("%w: employee is already checked in", ErrIllegalTransition)
	ErrNotCheckedIn     = fmt.Errorf("%w: employee must be checked in before checking out", ErrIllegalTransition)
	ErrEmployeeNotFound = fmt.Errorf("%w: employee not found", ErrNotFound)
)

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// storageError keeps err in the chain so callers can still match context.DeadlineExceeded.
func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

func isKind(err, kind error) bool {
	return errors.Is(err, kind)
}
