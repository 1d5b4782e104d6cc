// Package interp implements the interpolation evaluator (§4.4): it walks
// a parsed grammar.Text relative to an anchor node, resolves node
// references and resolver calls, enforces cycle detection, and adapts the
// result to the anchor scalar's declared kind.
package interp

import (
	"errors"
	"fmt"

	"github.com/layeredconf/oconf/node"
)

// The interpolation error family (§6.4/§7 family 3). All wrap one of
// these sentinels so callers can catch broadly with errors.Is against
// ErrResolution, or narrowly against a specialization.
var (
	ErrResolution      = errors.New("interpolation resolution error")
	ErrCycle           = errors.New("interpolation: cycle detected")
	ErrKey             = errors.New("interpolation: key error")
	ErrToMissing       = errors.New("interpolation: reference resolves to a missing value")
	ErrUnsupportedType = errors.New("interpolation: unsupported interpolation type")
)

// ResolutionError carries the full path of the node under evaluation when
// resolution failed, per §6.4's "each error carries: full path from
// root...".
type ResolutionError struct {
	Path string
	Err  error
}

func (e *ResolutionError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("interpolation: %v", e.Err)
	}

	return fmt.Sprintf("interpolation at %q: %v", e.Path, e.Err)
}

func (e *ResolutionError) Unwrap() []error { return []error{ErrResolution, e.Err} }

func wrapErr(n node.Node, err error) *ResolutionError {
	return &ResolutionError{Path: node.PathString(n), Err: err}
}
