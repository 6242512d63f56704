package metrics

import (
	"math"

	"github.com/san-kum/wavefield/internal/waves"
)

// FrameStats summarizes the grid after one frame.
type FrameStats struct {
	Time        float64 `json:"time"`
	MaxOffset   float64 `json:"max_offset"`
	MeanOffset  float64 `json:"mean_offset"`
	Energy      float64 `json:"energy"`
	CursorSpeed float64 `json:"cursor_speed"`
	CursorX     float64 `json:"cursor_x"`
	CursorY     float64 `json:"cursor_y"`
}

// Measure computes the cursor displacement statistics of g. Energy is the
// kinetic term sum(vx^2 + vy^2) over all points.
func Measure(g *waves.Grid, c *waves.Cursor, t float64) FrameStats {
	s := FrameStats{Time: t}
	if c != nil {
		s.CursorSpeed = c.SmoothVel
		s.CursorX = c.SmoothX
		s.CursorY = c.SmoothY
	}

	n := 0
	sum := 0.0
	for _, line := range g.Lines {
		for i := range line {
			p := &line[i]
			off := math.Hypot(p.Cursor.X, p.Cursor.Y)
			s.MaxOffset = math.Max(s.MaxOffset, off)
			sum += off
			s.Energy += p.Vel.X*p.Vel.X + p.Vel.Y*p.Vel.Y
			n++
		}
	}
	if n > 0 {
		s.MeanOffset = sum / float64(n)
	}
	return s
}

// Recorder keeps a bounded history of frame stats. It satisfies the
// driver's Observer interface.
type Recorder struct {
	capacity int
	history  []FrameStats
	peak     FrameStats
	frames   int
}

// NewRecorder keeps the last capacity frames; capacity <= 0 keeps all.
func NewRecorder(capacity int) *Recorder {
	return &Recorder{capacity: capacity}
}

func (r *Recorder) OnFrame(g *waves.Grid, c *waves.Cursor, t float64) {
	s := Measure(g, c, t)
	r.frames++

	if s.Energy > r.peak.Energy {
		r.peak = s
	}
	r.history = append(r.history, s)
	if r.capacity > 0 && len(r.history) > r.capacity {
		r.history = r.history[len(r.history)-r.capacity:]
	}
}

func (r *Recorder) History() []FrameStats { return r.history }
func (r *Recorder) Frames() int           { return r.frames }

// Peak is the frame with the highest energy seen so far.
func (r *Recorder) Peak() FrameStats { return r.peak }

func (r *Recorder) Last() (FrameStats, bool) {
	if len(r.history) == 0 {
		return FrameStats{}, false
	}
	return r.history[len(r.history)-1], true
}

// Series extracts one field of the history for plotting.
func (r *Recorder) Series(field string) []float64 {
	return Series(r.history, field)
}

func (r *Recorder) Reset() {
	r.history = r.history[:0]
	r.peak = FrameStats{}
	r.frames = 0
}

// Summary is the per-run aggregate written next to a recording.
type Summary struct {
	Frames     int     `json:"frames"`
	PeakEnergy float64 `json:"peak_energy"`
	MaxOffset  float64 `json:"max_offset"`
	MeanOffset float64 `json:"mean_offset"`
}

func (r *Recorder) Summary() Summary {
	s := Summary{Frames: r.frames, PeakEnergy: r.peak.Energy}
	if len(r.history) == 0 {
		return s
	}
	sum := 0.0
	for _, h := range r.history {
		s.MaxOffset = math.Max(s.MaxOffset, h.MaxOffset)
		sum += h.MeanOffset
	}
	s.MeanOffset = sum / float64(len(r.history))
	return s
}

// Fields lists the names accepted by Series.
var Fields = []string{"max_offset", "mean_offset", "energy", "cursor_speed", "cursor_x", "cursor_y"}

func Series(history []FrameStats, field string) []float64 {
	out := make([]float64, 0, len(history))
	for _, h := range history {
		switch field {
		case "max_offset":
			out = append(out, h.MaxOffset)
		case "mean_offset":
			out = append(out, h.MeanOffset)
		case "energy":
			out = append(out, h.Energy)
		case "cursor_speed":
			out = append(out, h.CursorSpeed)
		case "cursor_x":
			out = append(out, h.CursorX)
		case "cursor_y":
			out = append(out, h.CursorY)
		default:
			return nil
		}
	}
	return out
}
