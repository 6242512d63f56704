package noise

import (
	"math"
	"math/rand"
)

// grad3 holds the 12 cube edge gradients; only x and y take part in 2D.
var grad3 = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

// Noise is an immutable 2D gradient noise field.
type Noise struct {
	seed float64
	perm [512]int
}

// New builds the permutation table for seed.
func New(seed float64) *Noise {
	n := &Noise{seed: seed}

	var p [256]int
	s := seed
	for i := range p {
		v := math.Sin(s) * 10000
		s++
		p[i] = int(math.Floor((v - math.Floor(v)) * 256))
	}
	for i := range n.perm {
		n.perm[i] = p[i&255]
	}
	return n
}

// NewRandom builds a field from a random seed in [0, 1).
func NewRandom() *Noise {
	return New(rand.Float64())
}

func (n *Noise) Seed() float64 { return n.seed }

// Perlin2 samples the field at (x, y). The result is continuous and lies
// approximately in [-1, 1].
func (n *Noise) Perlin2(x, y float64) float64 {
	fx, fy := math.Floor(x), math.Floor(y)
	X := int(fx) & 255
	Y := int(fy) & 255
	x -= fx
	y -= fy

	u := fade(x)
	v := fade(y)

	a := n.perm[X] + Y
	aa := n.perm[a]
	ab := n.perm[a+1]
	b := n.perm[X+1] + Y
	ba := n.perm[b]
	bb := n.perm[b+1]

	return lerp(
		lerp(dot(aa%12, x, y), dot(ba%12, x-1, y), u),
		lerp(dot(ab%12, x, y-1), dot(bb%12, x-1, y-1), u),
		v,
	)
}

// Permutation returns a copy of the 512-entry lookup table.
func (n *Noise) Permutation() [512]int {
	return n.perm
}

func dot(g int, x, y float64) float64 {
	return grad3[g][0]*x + grad3[g][1]*y
}

func lerp(a, b, t float64) float64 {
	return (1-t)*a + t*b
}

// fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}
