package forms

import (
	"errors"
	"fmt"

	"Backend-Formcraft/src/models"
)

var (
	// ErrNotFound form absent, owned by someone else, or not published when
	// the public flow needs it.
	ErrNotFound = errors.New("form not found")
	// ErrUnauthorized owner-scoped call without an authenticated principal.
	ErrUnauthorized = errors.New("authentication required")
	// ErrConflict the form changed since the caller's expectedUpdatedAt.
	ErrConflict = errors.New("form was modified by another editor")
	// ErrInvalidInput request data the service refuses before touching storage.
	ErrInvalidInput = errors.New("invalid input")
)

// AnswerValidationError carries the per-field errors that blocked a submission.
type AnswerValidationError struct {
	Fields models.FieldErrorMap
}

func (e *AnswerValidationError) Error() string {
	return fmt.Sprintf("%d field(s) failed validation", len(e.Fields))
}

// PersistenceError wraps a record store failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("could not %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
