package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used as the anchors for errors.Is classification.
// Every typed error in this package unwraps to exactly one of these.
var (
	ErrValueIsRequired       = errors.New("value is required")
	ErrValueIsInvalid        = errors.New("value is invalid")
	ErrValueIsOutOfRange     = errors.New("value is out of range")
	ErrObjectNotFound        = errors.New("object not found")
	ErrConflict              = errors.New("conflict")
	ErrNotAuthorized         = errors.New("not authorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// sanitize collapses newlines so error messages stay single-line in logs.
func sanitize(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

// ValueIsRequiredError indicates a mandatory value was missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates an error for a missing required value.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates an error for a missing required value
// with an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError indicates a value was present but malformed or
// otherwise unacceptable.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates an error for an invalid value.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates an error for an invalid value with an
// underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError indicates a numeric value fell outside its allowed bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates an error for a value outside [min, max].
func NewValueIsOutOfRangeError(paramName string, value any, minValue any, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates an error for a value outside
// [min, max] with an underlying cause.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value any, minValue any, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return sanitize(msg)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ObjectNotFoundError indicates an entity lookup produced no result.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an error for a missing object.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an error for a missing object with an
// underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ConflictError indicates an operation lost a race or attempted a state
// transition that is not allowed from the current state. Callers may retry
// with fresh state; the conflict is never silently swapped for success.
type ConflictError struct {
	ParamName string
	Cause     error
}

// NewConflictError creates an error for a state conflict.
func NewConflictError(paramName string) *ConflictError {
	return &ConflictError{ParamName: paramName}
}

// NewConflictErrorWithCause creates an error for a state conflict with an
// underlying cause.
func NewConflictErrorWithCause(paramName string, cause error) *ConflictError {
	return &ConflictError{ParamName: paramName, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrConflict, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrConflict, e.ParamName))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// NotAuthorizedError indicates the acting identity may not perform the
// operation, typically because of a tenant mismatch or an insufficient role.
// These failures are surfaced and never retried.
type NotAuthorizedError struct {
	ParamName string
	Cause     error
}

// NewNotAuthorizedError creates an error for a rejected actor.
func NewNotAuthorizedError(paramName string) *NotAuthorizedError {
	return &NotAuthorizedError{ParamName: paramName}
}

// NewNotAuthorizedErrorWithCause creates an error for a rejected actor with an
// underlying cause.
func NewNotAuthorizedErrorWithCause(paramName string, cause error) *NotAuthorizedError {
	return &NotAuthorizedError{ParamName: paramName, Cause: cause}
}

func (e *NotAuthorizedError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrNotAuthorized, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrNotAuthorized, e.ParamName))
}

func (e *NotAuthorizedError) Unwrap() error {
	return ErrNotAuthorized
}

// DependencyUnavailableError indicates an external collaborator (backing store,
// geocoding, identity, payment) failed or timed out. It must never be conflated
// with ObjectNotFoundError: a missing object routes to end users while an
// unavailable dependency is an operational alarm.
type DependencyUnavailableError struct {
	ParamName string
	Cause     error
}

// NewDependencyUnavailableError creates an error for an unavailable collaborator.
func NewDependencyUnavailableError(paramName string) *DependencyUnavailableError {
	return &DependencyUnavailableError{ParamName: paramName}
}

// NewDependencyUnavailableErrorWithCause creates an error for an unavailable
// collaborator with an underlying cause.
func NewDependencyUnavailableErrorWithCause(paramName string, cause error) *DependencyUnavailableError {
	return &DependencyUnavailableError{ParamName: paramName, Cause: cause}
}

func (e *DependencyUnavailableError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrDependencyUnavailable, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrDependencyUnavailable, e.ParamName))
}

func (e *DependencyUnavailableError) Unwrap() error {
	return ErrDependencyUnavailable
}
