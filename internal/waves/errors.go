package waves

import "errors"

var (
	// ErrInvalidParams indicates a parameter set the simulation cannot run with.
	ErrInvalidParams = errors.New("waves: invalid parameters")
)
