package driver

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/wavefield/internal/render"
)

// Script generates pointer input for headless runs. Position returns the
// pointer in surface-local coordinates at timestamp t (milliseconds); ok is
// false when the script issues no input.
type Script interface {
	Position(t float64, b render.Bounds) (x, y float64, ok bool)
}

type ScriptFunc func(t float64, b render.Bounds) (float64, float64, bool)

func (f ScriptFunc) Position(t float64, b render.Bounds) (float64, float64, bool) {
	return f(t, b)
}

// WithScript feeds the cursor from s before every frame.
func WithScript(s Script) Option {
	return func(d *Driver) { d.script = s }
}

// sweepPeriod is the duration of one back-and-forth pass at speed 1.
const sweepPeriod = 4000.0

var scripts = map[string]func(speed, radius float64) Script{
	"none": func(_, _ float64) Script {
		return ScriptFunc(func(float64, render.Bounds) (float64, float64, bool) {
			return 0, 0, false
		})
	},
	"circle": func(speed, radius float64) Script {
		return ScriptFunc(func(t float64, b render.Bounds) (float64, float64, bool) {
			r := radius * math.Min(b.Width, b.Height)
			a := t / 1000 * speed
			return b.Width/2 + r*math.Cos(a), b.Height/2 + r*math.Sin(a), true
		})
	},
	"sweep": func(speed, radius float64) Script {
		return ScriptFunc(func(t float64, b render.Bounds) (float64, float64, bool) {
			u := t / sweepPeriod * speed
			return b.Width * triangle(u), b.Height/2 + radius*b.Height*math.Sin(u*2*math.Pi), true
		})
	},
	"zigzag": func(speed, radius float64) Script {
		return ScriptFunc(func(t float64, b render.Bounds) (float64, float64, bool) {
			u := t / sweepPeriod * speed
			band := radius * b.Height
			return b.Width * triangle(u), b.Height/2 - band + 2*band*triangle(u*6), true
		})
	},
}

// ParseScript resolves a named cursor script. speed scales its tempo and
// radius its extent as a fraction of the surface.
func ParseScript(name string, speed, radius float64) (Script, error) {
	fn, ok := scripts[name]
	if !ok {
		return nil, fmt.Errorf("unknown cursor path: %s (available: %v)", name, ScriptNames())
	}
	return fn(speed, radius), nil
}

func ScriptNames() []string {
	names := make([]string, 0, len(scripts))
	for name := range scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// triangle maps u to a 0..1..0 wave with period 1.
func triangle(u float64) float64 {
	return 1 - math.Abs(2*(u-math.Floor(u))-1)
}
