package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel classes for store failures. They mirror the constraint-violation
// classes of a relational engine and are surfaced verbatim to callers.
var (
	ErrForeignKeyViolation = errors.New("foreign key violation")
	ErrUniqueViolation     = errors.New("unique constraint violation")
	ErrRestrictedDeletion  = errors.New("restricted deletion")
	ErrNotNullViolation    = errors.New("not null violation")
	ErrNotFound            = errors.New("not found")
)

// ConstraintError carries the violated class plus the table and constraint
// that produced it. It unwraps to one of the sentinels above.
type ConstraintError struct {
	Class      error
	Table      string
	Constraint string
	Detail     string
}

func (e *ConstraintError) Error() string {
	msg := fmt.Sprintf("%s on %s", e.Class, e.Table)
	if e.Constraint != "" {
		msg += fmt.Sprintf(" (%s)", e.Constraint)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *ConstraintError) Unwrap() error {
	return e.Class
}

// StatusCode maps the violation class to an HTTP status. Consumed by the
// error middleware.
func (e *ConstraintError) StatusCode() int {
	switch e.Class {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrNotNullViolation:
		return http.StatusBadRequest
	default:
		return http.StatusConflict
	}
}

func ForeignKey(table, constraint, detail string) *ConstraintError {
	return &ConstraintError{Class: ErrForeignKeyViolation, Table: table, Constraint: constraint, Detail: detail}
}

func Unique(table, constraint, detail string) *ConstraintError {
	return &ConstraintError{Class: ErrUniqueViolation, Table: table, Constraint: constraint, Detail: detail}
}

func Restricted(table, constraint, detail string) *ConstraintError {
	return &ConstraintError{Class: ErrRestrictedDeletion, Table: table, Constraint: constraint, Detail: detail}
}

func NotNull(table, column string) *ConstraintError {
	return &ConstraintError{Class: ErrNotNullViolation, Table: table, Constraint: column}
}

func NotFound(table string, id any) *ConstraintError {
	return &ConstraintError{Class: ErrNotFound, Table: table, Detail: fmt.Sprint(id)}
}
