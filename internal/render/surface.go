// Package render turns simulated lines into SVG path geometry and commits
// it to a drawing surface.
package render

// Bounds is the surface box in host coordinates.
type Bounds struct {
	Left, Top     float64
	Width, Height float64
}

// Path is one drawable polyline owned by a surface.
type Path interface {
	SetD(d string)
	Remove()
}

// Surface is the host the wave field draws into. It creates and removes
// path elements and exposes the smoothed cursor to style consumers.
type Surface interface {
	Bounds() Bounds
	NewPath() Path
	SetCursor(x, y float64)
}
