package schema

import "errors"

// ErrSchema reports a malformed schema declaration (an unsupported
// reflected field shape, a missing union arm match, or similar).
var ErrSchema = errors.New("schema error")
