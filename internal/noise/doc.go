// Package noise provides a seeded 2D gradient (Perlin) noise field.
//
// The permutation table is derived from a sine-based hash of the seed. It is
// not cryptographically sound and has mediocre statistical quality; the only
// guarantee is that the same seed always produces the same field.
//
//	n := noise.New(42)
//	v := n.Perlin2(0.5, 1.25) // roughly in [-1, 1]
package noise
