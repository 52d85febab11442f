package builder

import "errors"

var (
	// ErrShapeParams indicates a constructor parameter outside its legal
	// range, such as a corridor with no waypoints.
	ErrShapeParams = errors.New("builder: invalid shape parameters")

	// ErrSpacing indicates a non-positive layout spacing option.
	ErrSpacing = errors.New("builder: spacing must be positive")
)
