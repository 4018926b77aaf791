package models

import "fmt"

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Request-scoped validation failures. They are deterministic consequences of
// the input and are never retried.
var (
	ErrUnknownFuelType      = constError("unknown fuel type")
	ErrUnknownTechnology    = constError("unknown incineration technology")
	ErrUnknownWasteCategory = constError("unknown waste category")
	ErrArrayLengthMismatch  = constError("array length mismatch")
	ErrInvalidQuantity      = constError("invalid quantity")
)

// Startup failures raised while loading coefficient documents.
var (
	ErrMalformedTable = constError("malformed coefficient table")
	ErrDuplicateKey   = constError("duplicate table key")
)

// ValidationError carries the offending field and value of a rejected request.
// It unwraps to one of the request-scoped sentinels above.
type ValidationError struct {
	Kind  error
	Field string
	Value interface{}
}

func NewValidationError(kind error, field string, value interface{}) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Value: value}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s=%v", e.Kind, e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}
