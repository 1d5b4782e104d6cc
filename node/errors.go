package node

import "fmt"

// ValidationError reports a coercion or structural failure against a
// specific node. Higher layers (the access API, the merge engine) wrap
// this with the dotted path leading to Node, which this package cannot
// compute on its own since a detached node has no path.
type ValidationError struct {
	Node Node
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("node: %v", e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// NewValidationError wraps err with the node that rejected it.
func NewValidationError(n Node, err error) *ValidationError {
	return &ValidationError{Node: n, Err: err}
}
