package biquad

import (
	"math"
	"math/cmplx"
)

// Coefficients returns the active transfer-function coefficients converted to
// float64, with a0 normalized to 1. The values reflect the Q16 quantization
// actually used on the sample path, so response plots show the deployed
// filter rather than an ideal-precision reference.
func (f *LowPass) Coefficients() (b0, b1, b2, a1, a2 float64) {
	const scale = 1.0 / 65536

	return float64(f.b0) * scale,
		float64(f.b1) * scale,
		float64(f.b2) * scale,
		float64(f.a1) * scale,
		float64(f.a2) * scale
}

// Response computes the complex frequency response H(e^jw) at the given
// frequency (Hz) and sample rate (Hz).
func (f *LowPass) Response(freqHz, sampleRate float64) complex128 {
	b0, b1, b2, a1, a2 := f.Coefficients()

	w := 2 * math.Pi * freqHz / sampleRate
	ejw := cmplx.Exp(complex(0, -w))
	ej2w := cmplx.Exp(complex(0, -2*w))

	num := complex(b0, 0) + complex(b1, 0)*ejw + complex(b2, 0)*ej2w
	den := complex(1, 0) + complex(a1, 0)*ejw + complex(a2, 0)*ej2w

	return num / den
}

// MagnitudeDB returns 20*log10(|H(f)|).
func (f *LowPass) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(f.Response(freqHz, sampleRate)))
}

// CutoffHz returns the -3 dB frequency relative to the DC response, found by
// bisection over [0, Nyquist]. Configuration/reporting use only.
func (f *LowPass) CutoffHz(sampleRate float64) float64 {
	refDB := f.MagnitudeDB(0, sampleRate)

	lo, hi := 0.0, sampleRate/2
	for range 60 {
		mid := (lo + hi) / 2
		if f.MagnitudeDB(mid, sampleRate)-refDB > -3 {
			lo = mid
		} else {
			hi = mid
		}
	}

	return (lo + hi) / 2
}
