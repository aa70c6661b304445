package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested entity was not found
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrConstraintViolation indicates that storage rejected a write because of a schema constraint
	ErrConstraintViolation = errors.New("constraint violation")
)

// ConstraintKind names the category of a schema constraint.
type ConstraintKind string

const (
	ConstraintNotNull      ConstraintKind = "not-null"
	ConstraintUnique       ConstraintKind = "unique"
	ConstraintForeignKey   ConstraintKind = "foreign-key"
	ConstraintCheck        ConstraintKind = "check"
	ConstraintTypeMismatch ConstraintKind = "type-mismatch"
)

// ConstraintViolation is returned when storage rejects a statement because of a
// constraint. Detail carries the storage's own diagnostic text.
type ConstraintViolation struct {
	Kind       ConstraintKind
	Table      string
	Column     string
	Constraint string
	Detail     string
	Err        error
}

// Error returns "<kind> constraint violation: <detail>".
func (e *ConstraintViolation) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s constraint violation", e.Kind)
	}
	return fmt.Sprintf("%s constraint violation: %s", e.Kind, e.Detail)
}

// Unwrap returns the underlying driver error.
func (e *ConstraintViolation) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrConstraintViolation) succeed for every kind.
func (e *ConstraintViolation) Is(target error) bool {
	return target == ErrConstraintViolation
}
