package grammar

import (
	"errors"
	"fmt"
)

// ErrParse indicates the interpolation grammar rejected an input string.
// All parse failures wrap this sentinel so callers can test with
// [errors.Is] regardless of the specific message.
var ErrParse = errors.New("grammar: parse error")

func parseErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrParse, fmt.Sprintf(format, args...))
}
