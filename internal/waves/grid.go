package waves

import "math"

type Vec struct {
	X, Y float64
}

// Point is a single simulated grid point.
type Point struct {
	Base   Vec // fixed at build time
	Wave   Vec // recomputed every frame
	Cursor Vec // integrated across frames
	Vel    Vec // cursor velocity
}

// Line is one grid column, top to bottom.
type Line []Point

// Grid is the ordered set of lines, left to right.
type Grid struct {
	Lines  []Line
	Width  float64
	Height float64
}

// BuildGrid lays out a lattice that overshoots width x height by the margin
// on both axes and is centered on the visible area. Negative sizes are
// treated as zero, so the grid is never empty.
func BuildGrid(width, height float64, p Params) *Grid {
	width = math.Max(0, width)
	height = math.Max(0, height)

	cols := int(math.Ceil((width + p.Margin) / p.XGap))
	rows := int(math.Ceil((height + p.Margin) / p.YGap))

	xStart := (width - p.XGap*float64(cols)) / 2
	yStart := (height - p.YGap*float64(rows)) / 2

	g := &Grid{
		Lines:  make([]Line, cols+1),
		Width:  width,
		Height: height,
	}
	for i := range g.Lines {
		line := make(Line, rows+1)
		for j := range line {
			line[j].Base = Vec{
				X: xStart + p.XGap*float64(i),
				Y: yStart + p.YGap*float64(j),
			}
		}
		g.Lines[i] = line
	}
	return g
}

func (g *Grid) Columns() int { return len(g.Lines) }

func (g *Grid) Rows() int {
	if len(g.Lines) == 0 {
		return 0
	}
	return len(g.Lines[0])
}

func (g *Grid) NumPoints() int {
	n := 0
	for _, l := range g.Lines {
		n += len(l)
	}
	return n
}

// Position is where p is drawn. Cursor displacement is left out for points
// pinned to the undisturbed wave.
func (p *Point) Position(withCursor bool) Vec {
	v := Vec{X: p.Base.X + p.Wave.X, Y: p.Base.Y + p.Wave.Y}
	if withCursor {
		v.X += p.Cursor.X
		v.Y += p.Cursor.Y
	}
	return v
}

// Pinned reports whether index i of a line of length n is an end point.
func Pinned(i, n int) bool {
	return i == 0 || i == n-1
}
