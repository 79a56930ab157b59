package validation

import (
	"fmt"
	"sort"
	"strings"
)

// NonFieldErrors is the key used for errors that do not belong to a single
// field, such as composite uniqueness violations.
const NonFieldErrors = "non_field_errors"

// Errors accumulates field-keyed validation messages.
type Errors map[string][]string

func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e Errors) Any() bool { return len(e) > 0 }

// Merge copies all messages from other into e.
func (e Errors) Merge(other Errors) {
	for field, msgs := range other {
		e[field] = append(e[field], msgs...)
	}
}

func (e Errors) summary() string {
	if len(e) == 0 {
		return "invalid input"
	}
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(e[f], "; ")))
	}
	return strings.Join(parts, "; ")
}

// Error is a field-keyed validation failure. Nothing is persisted when one
// is returned.
type Error struct {
	Fields Errors
}

func (e *Error) Error() string { return "validation failed: " + e.Fields.summary() }

// NewError builds an Error carrying a single field message.
func NewError(field, msg string) *Error {
	errs := Errors{}
	errs.Add(field, msg)
	return &Error{Fields: errs}
}

// ConflictError reports that an idempotent-by-name creation found an
// existing row whose other fields differ from the supplied ones.
type ConflictError struct {
	Fields Errors
}

func (e *ConflictError) Error() string { return "conflict: " + e.Fields.summary() }

// NewConflictError builds a ConflictError carrying a single field message.
func NewConflictError(field, msg string) *ConflictError {
	errs := Errors{}
	errs.Add(field, msg)
	return &ConflictError{Fields: errs}
}
