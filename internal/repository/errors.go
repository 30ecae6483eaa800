package repository

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/diewo77/bookkeeping/internal/validation"
)

// ValidationError reports rejected input. Fields maps field name to a
// violation code (see the validation package).
type ValidationError struct {
	Fields validation.Violations
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// NotFoundError means the operation targeted an id that does not exist.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// ConflictError means the operation would break referential consistency,
// e.g. deleting a customer that still has invoices.
type ConflictError struct {
	Entity string
	ID     uint
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %d: %s", e.Entity, e.ID, e.Reason)
}

// ConfigError means a required setting is missing or unreadable.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("setting %q: %s", e.Key, e.Reason)
}

// StoreError wraps an underlying database failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *StoreError) Unwrap() error { return e.Err }

// ErrNothingToUndo is returned when the undo history is empty.
var ErrNothingToUndo = errors.New("nothing to undo")

func storeErr(op string, err error) error { return &StoreError{Op: op, Err: err} }

func violation(field, code string) *ValidationError {
	return &ValidationError{Fields: validation.Violations{field: code}}
}
