package photons2d

import "errors"

var (
	// ErrInvalidConfiguration is returned before any integration starts.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrDegenerateState marks a ray that would be stepped at r <= 0 or produced non-finite values.
	ErrDegenerateState = errors.New("degenerate ray state")
	// ErrNoHistory is returned by history queries on a field created without history.
	ErrNoHistory = errors.New("trajectory history disabled")
)
