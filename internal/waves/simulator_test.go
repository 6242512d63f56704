package waves

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/san-kum/wavefield/internal/noise"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepWithoutPointerKeepsCursorAtRest(t *testing.T) {
	p := DefaultParams()
	n := noise.New(42)
	sim := NewSimulator(n, p)
	g := BuildGrid(100, 100, p)
	c := NewCursor(p)

	c.Tick()
	sim.Step(g, c.Snapshot(), 0)

	for i, l := range g.Lines {
		for j, pt := range l {
			require.Equal(t, Vec{}, pt.Cursor, "point %d/%d moved without input", i, j)
			require.Equal(t, Vec{}, pt.Vel)

			turn := n.Perlin2(pt.Base.X*0.003, pt.Base.Y*0.002) * 8
			assert.Equal(t, math.Cos(turn)*20, pt.Wave.X)
			assert.Equal(t, math.Sin(turn)*8, pt.Wave.Y)
		}
	}
}

func TestWaveOffsetAtOrigin(t *testing.T) {
	p := DefaultParams()
	sim := NewSimulator(noise.New(42), p)

	// noise vanishes on lattice points, so the angle is 0
	g := &Grid{Lines: []Line{{{Base: Vec{0, 0}}}}}
	sim.Step(g, Snapshot{}, 0)

	assert.Equal(t, Vec{X: 20, Y: 0}, g.Lines[0][0].Wave)
}

func TestWaveOffsetScrollsWithTime(t *testing.T) {
	p := DefaultParams()
	sim := NewSimulator(noise.New(42), p)
	g := BuildGrid(200, 200, p)

	sim.Step(g, Snapshot{}, 0)
	before := g.Lines[5][5].Wave
	sim.Step(g, Snapshot{}, 5000)
	after := g.Lines[5][5].Wave

	assert.NotEqual(t, before, after)
}

func TestCursorImpulseStrongestAtCursor(t *testing.T) {
	p := DefaultParams()
	sim := NewSimulator(noise.New(42), p)
	g := BuildGrid(400, 400, p)

	target := g.Lines[20][15].Base
	c := Snapshot{X: target.X, Y: target.Y, Velocity: 50, Angle: 0}
	sim.Step(g, c, 0)

	hit := g.Lines[20][15].Vel.X
	// f = cos(0) * 1, radius 200; damped once before integration
	want := 1.0 * 200 * 50 * 0.0008 * 0.92
	assert.InDelta(t, want, hit, 1e-12)

	for i, l := range g.Lines {
		for j, pt := range l {
			if i == 20 && j == 15 {
				continue
			}
			if pt.Vel.X > hit {
				t.Fatalf("point %d/%d got larger impulse %f > %f", i, j, pt.Vel.X, hit)
			}
		}
	}
}

func TestCursorForceOutsideRadius(t *testing.T) {
	p := DefaultParams()
	sim := NewSimulator(noise.New(1), p)
	g := &Grid{Lines: []Line{{{Base: Vec{0, 0}}, {Base: Vec{500, 0}}}}}

	sim.Step(g, Snapshot{X: 0, Y: 0, Velocity: 100, Angle: math.Pi / 2}, 0)

	assert.Greater(t, g.Lines[0][0].Vel.Y, 0.0)
	assert.Equal(t, Vec{}, g.Lines[0][1].Vel, "point beyond the radius must not be pushed")
}

func TestSpringReturnsToRest(t *testing.T) {
	p := DefaultParams()
	sim := NewSimulator(noise.New(3), p)
	g := &Grid{Lines: []Line{{{Base: Vec{0, 0}, Cursor: Vec{60, -60}}}}}

	for i := 0; i < 2000; i++ {
		sim.Step(g, Snapshot{X: 1e6, Y: 1e6}, float64(i)*16)
	}
	pt := g.Lines[0][0]
	assert.InDelta(t, 0, pt.Cursor.X, 1e-3)
	assert.InDelta(t, 0, pt.Cursor.Y, 1e-3)
}

func TestCursorOffsetBounded(t *testing.T) {
	p := DefaultParams()
	sim := NewSimulator(noise.New(99), p)
	g := BuildGrid(300, 200, p)
	c := NewCursor(p)
	r := rand.New(rand.NewSource(5))

	for frame := 0; frame < 500; frame++ {
		// adversarial: teleport across the surface every frame
		c.PointerMove(r.Float64()*4000-2000, r.Float64()*4000-2000)
		c.Tick()
		sim.Step(g, c.Snapshot(), float64(frame)*16.7)

		for _, l := range g.Lines {
			for _, pt := range l {
				if math.Abs(pt.Cursor.X) > 80 || math.Abs(pt.Cursor.Y) > 80 {
					t.Fatalf("frame %d: offset (%f, %f) escaped the clamp", frame, pt.Cursor.X, pt.Cursor.Y)
				}
			}
		}
	}
}

func TestParallelStepMatchesSequential(t *testing.T) {
	seq := DefaultParams()
	par := DefaultParams()
	par.Workers = 4

	n := noise.New(42)
	a := BuildGrid(1200, 300, seq)
	b := BuildGrid(1200, 300, par)
	simA := NewSimulator(n, seq)
	simB := NewSimulator(n, par)

	c := NewCursor(seq)
	for frame := 0; frame < 30; frame++ {
		c.PointerMove(float64(frame)*30, 150)
		c.Tick()
		ts := float64(frame) * 16
		simA.Step(a, c.Snapshot(), ts)
		simB.Step(b, c.Snapshot(), ts)
	}

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("parallel step diverged (-seq +par):\n%s", diff)
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero x gap", func(p *Params) { p.XGap = 0 }},
		{"negative y gap", func(p *Params) { p.YGap = -1 }},
		{"negative margin", func(p *Params) { p.Margin = -5 }},
		{"zero radius", func(p *Params) { p.MinRadius = 0 }},
		{"damping above one", func(p *Params) { p.Damping = 1.2 }},
		{"zero clamp", func(p *Params) { p.MaxOffset = 0 }},
		{"zero smoothing", func(p *Params) { p.Smoothing = 0 }},
	}

	require.NoError(t, DefaultParams().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			assert.ErrorIs(t, p.Validate(), ErrInvalidParams)
		})
	}
}

func BenchmarkStep(b *testing.B) {
	p := DefaultParams()
	sim := NewSimulator(noise.New(42), p)
	g := BuildGrid(1920, 1080, p)
	c := Snapshot{X: 960, Y: 540, Velocity: 40, Angle: 0.3}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sim.Step(g, c, float64(i)*16)
	}
}

func BenchmarkStepParallel(b *testing.B) {
	p := DefaultParams()
	p.Workers = 4
	sim := NewSimulator(noise.New(42), p)
	g := BuildGrid(1920, 1080, p)
	c := Snapshot{X: 960, Y: 540, Velocity: 40, Angle: 0.3}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sim.Step(g, c, float64(i)*16)
	}
}
