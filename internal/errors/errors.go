package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error classes. Domain packages wrap these so handlers can map whole classes
// of failures to a status code.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrNotAuthorized = errors.New("not authorized")
)

// ValidationError carries a message and optional per-field details. Kind, when
// set, lets callers match a domain sentinel with errors.Is.
type ValidationError struct {
	Msg     string
	Details map[string]string
	Kind    error
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return e.Msg
	}
	fields := make([]string, 0, len(e.Details))
	for field := range e.Details {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = fmt.Sprintf("%s: %s", field, e.Details[field])
	}
	return fmt.Sprintf("%s (%s)", e.Msg, strings.Join(parts, "; "))
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	return errors.As(err, &validationError)
}

// ValidationDetails returns the field details of a validation error, or nil.
func ValidationDetails(err error) map[string]string {
	var validationError *ValidationError
	if errors.As(err, &validationError) {
		return validationError.Details
	}
	return nil
}

// FieldErrors collects field level problems before turning them into a
// single ValidationError.
type FieldErrors map[string]string

func (fe FieldErrors) Add(field, msg string) {
	if _, exists := fe[field]; !exists {
		fe[field] = msg
	}
}

// Err returns nil when nothing was collected.
func (fe FieldErrors) Err(msg string) error {
	return fe.ErrKind(nil, msg)
}

// ErrKind is Err with a sentinel the resulting error matches.
func (fe FieldErrors) ErrKind(kind error, msg string) error {
	if len(fe) == 0 {
		return nil
	}
	return &ValidationError{Msg: msg, Details: fe, Kind: kind}
}
