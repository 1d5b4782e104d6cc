package oconf

import (
	"errors"
	"fmt"

	"github.com/layeredconf/oconf/node"
)

// Sentinels identifying the error families in §6.4/§7. The errors built
// by newKeyError, newAttributeError, newTypeError, newReadonlyError and
// newMissingMandatoryError each wrap one of these, so callers can catch
// them with errors.Is. A ValidationError wraps the underlying coercion or
// merge error instead of a sentinel.
var (
	ErrKey                      = errors.New("oconf: key error")
	ErrAttribute                = errors.New("oconf: attribute error")
	ErrType                     = errors.New("oconf: type error")
	ErrReadonly                 = errors.New("oconf: read-only config")
	ErrMissingMandatory         = errors.New("oconf: missing mandatory value")
	ErrUnsupportedInterpolation = errors.New("oconf: unsupported interpolation type")
)

// Error is the shape shared by every concrete error type in this package:
// the full dotted path from the root to the offending node, its object
// kind when known (map/list/scalar + declared kind), and the wrapped
// sentinel/message.
type Error struct {
	Path string
	Kind node.Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}

	return fmt.Sprintf("%v (at %q)", e.Err, e.Path)
}

func (e *Error) Unwrap() error { return e.Err }

// KeyError reports a missing map key (non-struct) or an out-of-range list
// index.
type KeyError struct{ Error }

// AttributeError reports a struct-mode container rejecting an unknown
// field.
type AttributeError struct{ Error }

// TypeError reports navigation through a node of the wrong shape (e.g.
// indexing a scalar, or a key segment against a list).
type TypeError struct{ Error }

// ValidationError reports a coercion or structural-merge failure.
type ValidationError struct{ Error }

// ReadonlyError reports a mutation attempted against a read-only subtree.
type ReadonlyError struct{ Error }

// MissingMandatoryValueError reports a MISSING scalar read through a
// strict (non-defaulting) accessor.
type MissingMandatoryValueError struct{ Error }

// UnsupportedInterpolationTypeError reports an evaluated interpolation
// result that could not be adapted to its anchor's declared kind, beyond
// what a plain ValidationError communicates (e.g. a resolver returning a
// container where a scalar was required).
type UnsupportedInterpolationTypeError struct{ Error }

func newKeyError(path string, kind node.Kind, format string, args ...any) *KeyError {
	return &KeyError{Error{Path: path, Kind: kind, Err: fmt.Errorf("%w: %s", ErrKey, fmt.Sprintf(format, args...))}}
}

func newAttributeError(path string, format string, args ...any) *AttributeError {
	return &AttributeError{Error{Path: path, Err: fmt.Errorf("%w: %s", ErrAttribute, fmt.Sprintf(format, args...))}}
}

func newTypeError(path string, kind node.Kind, format string, args ...any) *TypeError {
	return &TypeError{Error{Path: path, Kind: kind, Err: fmt.Errorf("%w: %s", ErrType, fmt.Sprintf(format, args...))}}
}

func newValidationError(path string, err error) *ValidationError {
	return &ValidationError{Error{Path: path, Err: err}}
}

func newReadonlyError(path string) *ReadonlyError {
	return &ReadonlyError{Error{Path: path, Err: fmt.Errorf("%w: %s", ErrReadonly, path)}}
}

func newMissingMandatoryError(path string) *MissingMandatoryValueError {
	return &MissingMandatoryValueError{Error{Path: path, Err: fmt.Errorf("%w: %s", ErrMissingMandatory, path)}}
}
