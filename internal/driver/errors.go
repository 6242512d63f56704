package driver

import "errors"

var (
	// ErrNoSurface indicates Attach was given no render surface.
	ErrNoSurface = errors.New("driver: no render surface")

	// ErrDetached indicates a frame was requested after Detach.
	ErrDetached = errors.New("driver: detached")

	// ErrFramesExhausted indicates a finite frame source ran out.
	ErrFramesExhausted = errors.New("driver: frame source exhausted")

	// ErrAlreadyStarted indicates Start was called twice on a loop.
	ErrAlreadyStarted = errors.New("driver: loop already started")
)
