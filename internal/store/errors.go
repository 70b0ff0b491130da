package store

import (
	"errors"
	"fmt"
)

// ValidationError reports input that fails a precondition before any write
// happens. Handlers map it to a 400; the CLI prints the message as-is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StorageError wraps failures from the backing database. It is distinct
// from validation so callers can tell a bad request from a broken store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
