package waves

import (
	"math"

	"github.com/san-kum/wavefield/internal/noise"
	"golang.org/x/sync/errgroup"
)

// minLinesPerWorker keeps tiny grids on the calling goroutine.
const minLinesPerWorker = 16

// Simulator advances every grid point by one frame.
type Simulator struct {
	noise  *noise.Noise
	params Params
}

func NewSimulator(n *noise.Noise, p Params) *Simulator {
	return &Simulator{noise: n, params: p}
}

func (s *Simulator) Params() Params      { return s.params }
func (s *Simulator) Noise() *noise.Noise { return s.noise }

// Step recomputes the wave offsets for time t (milliseconds) and integrates
// the cursor springs one frame forward.
func (s *Simulator) Step(g *Grid, c Snapshot, t float64) {
	workers := s.params.Workers
	n := len(g.Lines)
	if workers <= 1 || n < 2*minLinesPerWorker {
		s.stepLines(g.Lines, c, t)
		return
	}
	if n/minLinesPerWorker < workers {
		workers = n / minLinesPerWorker
	}

	chunk := (n + workers - 1) / workers
	var eg errgroup.Group
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		lines := g.Lines[start:end]
		eg.Go(func() error {
			s.stepLines(lines, c, t)
			return nil
		})
	}
	_ = eg.Wait()
}

func (s *Simulator) stepLines(lines []Line, c Snapshot, t float64) {
	for i := range lines {
		line := lines[i]
		for j := range line {
			s.stepPoint(&line[j], c, t)
		}
	}
}

func (s *Simulator) stepPoint(pt *Point, c Snapshot, t float64) {
	p := &s.params

	turn := s.noise.Perlin2(
		(pt.Base.X+t*p.WaveTimeX)*p.WaveScaleX,
		(pt.Base.Y+t*p.WaveTimeY)*p.WaveScaleY,
	) * p.WaveTurn
	pt.Wave.X = math.Cos(turn) * p.WaveAmpX
	pt.Wave.Y = math.Sin(turn) * p.WaveAmpY

	d := math.Hypot(pt.Base.X-c.X, pt.Base.Y-c.Y)
	radius := math.Max(p.MinRadius, c.Velocity)

	if d < radius {
		strength := 1 - d/radius
		f := math.Cos(d*p.FalloffFreq) * strength

		pt.Vel.X += math.Cos(c.Angle) * f * radius * c.Velocity * p.ForceScale
		pt.Vel.Y += math.Sin(c.Angle) * f * radius * c.Velocity * p.ForceScale
	}

	// spring back to rest
	pt.Vel.X += (0 - pt.Cursor.X) * p.Stiffness
	pt.Vel.Y += (0 - pt.Cursor.Y) * p.Stiffness

	pt.Vel.X *= p.Damping
	pt.Vel.Y *= p.Damping

	pt.Cursor.X += pt.Vel.X * p.StepScale
	pt.Cursor.Y += pt.Vel.Y * p.StepScale

	pt.Cursor.X = clamp(pt.Cursor.X, -p.MaxOffset, p.MaxOffset)
	pt.Cursor.Y = clamp(pt.Cursor.Y, -p.MaxOffset, p.MaxOffset)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
