package apperror

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an application error. Handlers map each kind to one HTTP status.
type Kind string

const (
	KindValidation      Kind = "VALIDATION_ERROR"
	KindUnauthenticated Kind = "UNAUTHENTICATED"
	KindForbidden       Kind = "FORBIDDEN"
	KindNotFound        Kind = "NOT_FOUND"
	KindConflict        Kind = "CONFLICT"
	KindInternal        Kind = "INTERNAL_ERROR"
)

// Violation is one failed constraint on one field.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the error type returned by the application layer.
type Error struct {
	Kind       Kind
	Message    string
	Violations []Violation
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	for i, v := range e.Violations {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(v.Field + " " + v.Message)
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

func NewValidation(message string, violations ...Violation) *Error {
	return &Error{Kind: KindValidation, Message: message, Violations: violations}
}

func NewUnauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

func NewForbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func NewNotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

func NewConflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// NewInternal wraps an unexpected failure. The cause is kept for logging only.
func NewInternal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Server error", Err: err}
}

// Internalf is NewInternal with a formatted cause.
func Internalf(format string, args ...any) *Error {
	return NewInternal(fmt.Errorf(format, args...))
}

// KindOf reports the kind of err. Errors that are not *Error are internal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Violations collects every failed constraint before deciding whether to fail.
type Violations []Violation

func (v *Violations) Add(field, message string) {
	*v = append(*v, Violation{Field: field, Message: message})
}

// Err returns nil when nothing was collected.
func (v Violations) Err() error {
	if len(v) == 0 {
		return nil
	}
	return NewValidation("Validation failed", v...)
}
