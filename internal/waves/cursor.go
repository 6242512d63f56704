package waves

import "math"

// Cursor tracks the pointer in surface-local coordinates. Position is
// low-pass filtered; direction comes from the raw frame-to-frame delta so
// the force field stays responsive without positional jitter.
type Cursor struct {
	X, Y      float64 // raw sample
	LastX     float64
	LastY     float64
	SmoothX   float64
	SmoothY   float64
	Speed     float64 // raw displacement during the last frame
	SmoothVel float64 // smoothed speed, clamped to [0, MaxVelocity]
	Angle     float64
	Set       bool

	smoothing float64
	maxVel    float64
	left, top float64
}

func NewCursor(p Params) *Cursor {
	return &Cursor{
		X:         -10,
		smoothing: p.Smoothing,
		maxVel:    p.MaxVelocity,
	}
}

// SetOrigin stores the surface origin subtracted from incoming samples.
func (c *Cursor) SetOrigin(left, top float64) {
	c.left = left
	c.top = top
}

// PointerMove records a mouse/pointer sample in host coordinates.
func (c *Cursor) PointerMove(x, y float64) {
	c.sample(x-c.left, y-c.top)
}

// TouchMove records a touch sample; scrollY converts viewport coordinates
// to page coordinates.
func (c *Cursor) TouchMove(x, y, scrollY float64) {
	c.sample(x-c.left, y-c.top+scrollY)
}

func (c *Cursor) sample(x, y float64) {
	c.X = x
	c.Y = y
	if !c.Set {
		c.SmoothX, c.SmoothY = x, y
		c.LastX, c.LastY = x, y
		c.Set = true
	}
}

// Tick advances the smoothing by one frame. It does nothing before the
// first sample.
func (c *Cursor) Tick() {
	if !c.Set {
		return
	}

	c.SmoothX += (c.X - c.SmoothX) * c.smoothing
	c.SmoothY += (c.Y - c.SmoothY) * c.smoothing

	dx := c.X - c.LastX
	dy := c.Y - c.LastY
	d := math.Hypot(dx, dy)

	c.Speed = d
	c.SmoothVel += (d - c.SmoothVel) * c.smoothing
	c.SmoothVel = math.Min(c.maxVel, math.Max(0, c.SmoothVel))

	c.LastX = c.X
	c.LastY = c.Y

	c.Angle = math.Atan2(dy, dx)
}

// Snapshot is the read-only view of the cursor the simulator consumes.
type Snapshot struct {
	X, Y     float64
	Velocity float64
	Angle    float64
}

func (c *Cursor) Snapshot() Snapshot {
	return Snapshot{X: c.SmoothX, Y: c.SmoothY, Velocity: c.SmoothVel, Angle: c.Angle}
}
