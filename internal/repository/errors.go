package repository

import (
	"errors"
	"fmt"
)

// ErrInvalidLimit is returned by Recent for a non-positive limit.
var ErrInvalidLimit = errors.New("limit must be a positive integer")

// PersistenceError is the only failure kind the telemetry store reports: the store was
// unreachable, rejected a write or failed a read.
type PersistenceError struct {
	Op  string // append | recent | ping
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("telemetry store %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func persistenceErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}

// IsPersistence reports whether err carries a PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
