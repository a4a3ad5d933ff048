package core

import (
	"errors"
	"fmt"
	"strings"
)

// Canonical field names reported by validation.
const (
	FieldAmount      = "amount"
	FieldCategory    = "category"
	FieldDate        = "date"
	FieldDescription = "description"
)

// Failure taxonomy surfaced to callers. Nothing in this module retries on
// any of these; retry and redirect policy belongs to the caller.
var (
	// ErrUnauthorized means the session credential is absent or was rejected.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnreachable means the remote store gave no response at all.
	ErrUnreachable = errors.New("expense service unreachable")

	// ErrConflict means a mutation was attempted on a record that already
	// has one in flight.
	ErrConflict = errors.New("another change to this expense is still pending")

	// ErrNotFound means the record is not part of the current working set.
	ErrNotFound = errors.New("expense not found")
)

// ValidationError is raised before any network call when input breaks the
// payload rules. Fields lists every offending field.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid expense"
	}
	return "invalid expense: " + strings.Join(e.Fields, ", ")
}

// ServerError carries a remote failure status other than auth, together
// with the server-supplied message when one was returned.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("expense service error (status %d)", e.Status)
	}
	return fmt.Sprintf("expense service error (status %d): %s", e.Status, e.Message)
}
