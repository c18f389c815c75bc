package scribe

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrDuplicateObjectID indicates a second object identity binding attempt.
	ErrDuplicateObjectID = errors.New("duplicate object id binding")

	// ErrDuplicateTypeID indicates a second type identity binding attempt.
	ErrDuplicateTypeID = errors.New("duplicate type id binding")

	// ErrInvalidTag indicates a struct tag has an invalid format or target.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrInvalidType indicates introspection was attempted on a non-struct type.
	ErrInvalidType = errors.New("invalid type")

	// ErrNotSerializable indicates a type yields no descriptor: it has no
	// named properties and no any-getter.
	ErrNotSerializable = errors.New("not serializable")

	// ErrMissingFilter indicates a descriptor carries a filter id with no
	// filter registered under it.
	ErrMissingFilter = errors.New("missing filter")

	// ErrRecursiveValue indicates a self-referential value with no object
	// identity binding to break the cycle.
	ErrRecursiveValue = errors.New("recursive value")

	// ErrEmit indicates the emitter failed to encode a document.
	ErrEmit = errors.New("emit failed")
)

// BindingError reports a rejected identity binding. It wraps
// ErrDuplicateObjectID or ErrDuplicateTypeID with the property already
// bound and the property whose binding was refused.
type BindingError struct {
	Err      error  // Underlying sentinel error
	Existing string // Property name already bound
	Incoming string // Property name that was rejected
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("%s: %q already bound, cannot bind %q", e.Err.Error(), e.Existing, e.Incoming)
}

func (e *BindingError) Unwrap() error {
	return e.Err
}

// TagError reports an introspection failure. It wraps ErrInvalidTag or
// ErrInvalidType with the offending field and a reason.
type TagError struct {
	Err    error  // Underlying sentinel error
	Field  string // Field name, empty for type-level failures
	Reason string // Human-readable cause
}

func (e *TagError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: field %s: %s", e.Err.Error(), e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Reason)
}

func (e *TagError) Unwrap() error {
	return e.Err
}

// EmitError represents an encoding failure in the downstream emitter.
type EmitError struct {
	Err         error  // ErrEmit
	ContentType string // Emitter content type
	Cause       error  // Original error from the emitter
}

func (e *EmitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %v", e.Err.Error(), e.ContentType, e.Cause)
	}
	return fmt.Sprintf("%s (%s)", e.Err.Error(), e.ContentType)
}

func (e *EmitError) Unwrap() error {
	return e.Err
}

// newBindingError creates a BindingError for a rejected identity binding.
func newBindingError(sentinel error, existing, incoming string) error {
	return &BindingError{
		Err:      sentinel,
		Existing: existing,
		Incoming: incoming,
	}
}

// newTagError creates a TagError for an introspection failure.
func newTagError(sentinel error, field, reason string) error {
	return &TagError{
		Err:    sentinel,
		Field:  field,
		Reason: reason,
	}
}

// newEmitError creates an EmitError for an encoding failure.
func newEmitError(contentType string, cause error) error {
	return &EmitError{
		Err:         ErrEmit,
		ContentType: contentType,
		Cause:       cause,
	}
}
