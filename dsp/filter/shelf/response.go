package shelf

import (
	"math"
	"math/cmplx"
)

// Response evaluates the shelf's complex frequency response at the given
// frequency. The transfer function follows from the difference equation:
//
//	H(z) = (alpha + (1-alpha)*G*(1 - z^-1)) / (1 - (1-alpha)*z^-1)
func (f *Filter) Response(freqHz, sampleRateHz float64) complex128 {
	alpha := shelfAlpha.Float()
	g := f.gain.Float()

	w := 2 * math.Pi * freqHz / sampleRateHz
	z1 := cmplx.Exp(complex(0, -w))

	num := complex(alpha, 0) + complex((1-alpha)*g, 0)*(1-z1)
	den := 1 - complex(1-alpha, 0)*z1
	return num / den
}

// MagnitudeDB returns the magnitude response in decibels.
func (f *Filter) MagnitudeDB(freqHz, sampleRateHz float64) float64 {
	return 20 * math.Log10(cmplx.Abs(f.Response(freqHz, sampleRateHz)))
}
