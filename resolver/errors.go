// Package resolver implements the name -> callable registry described in
// §4.3: registration with replace/cache-opt-in semantics, lifecycle
// operations for test isolation, and the built-in resolver set reserved
// under the "oc." namespace (§6.3).
package resolver

import "errors"

var (
	// ErrAlreadyRegistered is returned by Register when name exists and
	// replace was not requested.
	ErrAlreadyRegistered = errors.New("resolver: already registered")
	// ErrUnknownResolver is returned by Call (and by Snapshot.Call) when
	// name has no registered entry.
	ErrUnknownResolver = errors.New("resolver: unknown resolver")
	// ErrInvalidFunc is returned by Register when fn is neither a
	// PlainFunc nor a ContextFunc.
	ErrInvalidFunc = errors.New("resolver: fn must be a PlainFunc or ContextFunc")
)
