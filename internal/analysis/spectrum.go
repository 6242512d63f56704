package analysis

import (
	"math"
	"math/cmplx"
)

// FFT is a radix-2 transform. Input that is not a power of two long is
// zero-padded.
func FFT(data []float64) []complex128 {
	n := nextPow2(len(data))
	in := make([]complex128, n)
	for i, v := range data {
		in[i] = complex(v, 0)
	}
	return fft(in)
}

func fft(x []complex128) []complex128 {
	n := len(x)
	if n <= 1 {
		return x
	}

	even := make([]complex128, n/2)
	odd := make([]complex128, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = x[2*i]
		odd[i] = x[2*i+1]
	}

	feven := fft(even)
	fodd := fft(odd)

	out := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		out[k] = feven[k] + w*fodd[k]
		out[k+n/2] = feven[k] - w*fodd[k]
	}
	return out
}

// PowerSpectrum returns the magnitude of the first half of the transform.
// The series mean is removed first so bin 0 does not dominate.
func PowerSpectrum(data []float64) []float64 {
	centered := make([]float64, len(data))
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	if len(data) > 0 {
		mean /= float64(len(data))
	}
	for i, v := range data {
		centered[i] = v - mean
	}

	f := FFT(centered)
	ps := make([]float64, len(f)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(f[i])
	}
	return ps
}

// Peak is the strongest non-zero frequency of a spectrum.
type Peak struct {
	Bin       int
	Frequency float64
	Power     float64
}

// Dominant finds the strongest component of a series sampled at fps.
// ok is false when the series is too short or flat.
func Dominant(series []float64, fps float64) (Peak, bool) {
	if len(series) < 4 || fps <= 0 {
		return Peak{}, false
	}
	ps := PowerSpectrum(series)
	n := nextPow2(len(series))

	var p Peak
	for i := 1; i < len(ps); i++ {
		if ps[i] > p.Power {
			p = Peak{Bin: i, Power: ps[i]}
		}
	}
	if p.Bin == 0 {
		return Peak{}, false
	}
	p.Frequency = float64(p.Bin) * fps / float64(n)
	return p, true
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
