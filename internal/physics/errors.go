package physics

import "errors"

var (
	// ErrUnknownParam is returned by SetParam for names the arm does not expose.
	ErrUnknownParam = errors.New("physics: unknown param")

	// ErrUnknownConvention indicates a link-3 convention other than absolute or relative.
	ErrUnknownConvention = errors.New("physics: unknown link3 convention")
)
