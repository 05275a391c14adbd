package pathkit

import "errors"

// Error taxonomy for the conditions the engine surfaces to callers.
// Recoverable conditions (empty input, out-of-bounds access, numerical
// degeneracy) are handled silently with documented default behavior and do
// not appear here; only construction-time errors are surfaced.
var (
	// ErrInvalidArgument is returned when a constructor or setter receives
	// an argument that can never be made to work (negative dimensions, an
	// unsupported hex color format, a pixel buffer of the wrong size).
	ErrInvalidArgument = errors.New("pathkit: invalid argument")
)
