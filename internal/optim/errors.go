package optim

import "errors"

var (
	// ErrInvalidGrid indicates an empty or malformed angle range.
	ErrInvalidGrid = errors.New("optim: invalid search grid")

	// ErrInvalidTolerance indicates a negative or non-finite positional tolerance.
	ErrInvalidTolerance = errors.New("optim: invalid tolerance")

	// ErrInterrupted indicates the search stopped because its context ended.
	ErrInterrupted = errors.New("optim: search interrupted")
)
