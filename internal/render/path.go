package render

import (
	"math"
	"strconv"

	"github.com/san-kum/wavefield/internal/waves"
)

// PathRenderer builds one "M x y L x y ..." polyline per grid line.
type PathRenderer struct {
	buf []byte
}

func NewPathRenderer() *PathRenderer {
	return &PathRenderer{buf: make([]byte, 0, 4096)}
}

// Render writes every line of g to the matching entry of paths. The two
// slices are created together by the driver and always have equal length.
func (r *PathRenderer) Render(g *waves.Grid, paths []Path) {
	for i, line := range g.Lines {
		if i >= len(paths) {
			return
		}
		paths[i].SetD(r.Line(line))
	}
}

// Line returns the path data for a single line. End points are drawn
// without their cursor displacement.
func (r *PathRenderer) Line(line waves.Line) string {
	b := r.buf[:0]
	n := len(line)
	for i := range line {
		pos := line[i].Position(!waves.Pinned(i, n))
		if i == 0 {
			b = append(b, "M "...)
		} else {
			b = append(b, " L "...)
		}
		b = appendCoord(b, pos.X)
		b = append(b, ' ')
		b = appendCoord(b, pos.Y)
	}
	r.buf = b
	return string(b)
}

// Round1 rounds half up to one decimal place.
func Round1(v float64) float64 {
	v = math.Floor(v*10+0.5) / 10
	if v == 0 {
		return 0 // drop negative zero
	}
	return v
}

func appendCoord(b []byte, v float64) []byte {
	return strconv.AppendFloat(b, Round1(v), 'f', -1, 64)
}
