// Package response measures the empirical frequency response of a sample
// processor by exciting it with a unit impulse and transforming the captured
// impulse response.
//
// Unlike an analytic transfer function, the measurement sees the processor
// exactly as playback does, fixed-point quantization included, so it is the
// right tool for comparing configured chains rather than idealized filters.
package response

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Processor is any per-sample transform that can be excited with an impulse.
type Processor interface {
	ProcessSample(x int16) int16
}

// Func adapts a plain function as a [Processor].
type Func func(int16) int16

// ProcessSample calls f.
func (f Func) ProcessSample(x int16) int16 { return f(x) }

const (
	defaultFFTSize   = 4096
	defaultAmplitude = 16384
)

// Config holds measurement parameters.
type Config struct {
	// SampleRateHz scales the frequency axis. Required.
	SampleRateHz float64
	// FFTSize is the capture length and transform size; must be a power of
	// two. Zero selects 4096.
	FFTSize int
	// Amplitude is the impulse height. Zero selects 16384 (half scale),
	// large enough to ride above quantization, small enough to stay clear
	// of the clipper.
	Amplitude int16
}

// Result is a measured magnitude response, one entry per bin up to Nyquist.
type Result struct {
	Frequencies []float64
	MagnitudeDB []float64
}

// DBAt returns the measured magnitude at the bin nearest freqHz.
func (r Result) DBAt(freqHz float64) float64 {
	if len(r.Frequencies) < 2 {
		return math.Inf(-1)
	}
	step := r.Frequencies[1] - r.Frequencies[0]
	i := int(freqHz/step + 0.5)
	if i < 0 {
		i = 0
	}
	if i >= len(r.MagnitudeDB) {
		i = len(r.MagnitudeDB) - 1
	}
	return r.MagnitudeDB[i]
}

// Measure excites p with a single impulse, captures its response and returns
// the magnitude spectrum. The processor should be freshly reset; state left
// over from earlier samples leaks into the measurement.
func Measure(p Processor, cfg Config) (Result, error) {
	if cfg.SampleRateHz <= 0 {
		return Result{}, fmt.Errorf("response: invalid sample rate: %g", cfg.SampleRateHz)
	}
	size := cfg.FFTSize
	if size == 0 {
		size = defaultFFTSize
	}
	if size < 2 || size&(size-1) != 0 {
		return Result{}, fmt.Errorf("response: FFT size must be a power of two: %d", size)
	}
	amp := cfg.Amplitude
	if amp == 0 {
		amp = defaultAmplitude
	}
	if amp < 0 {
		return Result{}, fmt.Errorf("response: negative impulse amplitude: %d", amp)
	}

	// Impulse in, normalized impulse response out.
	impulse := make([]complex128, size)
	scale := 1 / float64(amp)
	impulse[0] = complex(float64(p.ProcessSample(amp))*scale, 0)
	for i := 1; i < size; i++ {
		impulse[i] = complex(float64(p.ProcessSample(0))*scale, 0)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return Result{}, fmt.Errorf("response: failed to create FFT plan: %w", err)
	}

	spectrum := make([]complex128, size)
	if err := plan.Forward(spectrum, impulse); err != nil {
		return Result{}, fmt.Errorf("response: forward FFT failed: %w", err)
	}

	bins := size/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := range bins {
		re[i] = real(spectrum[i])
		im[i] = imag(spectrum[i])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	res := Result{
		Frequencies: make([]float64, bins),
		MagnitudeDB: make([]float64, bins),
	}
	binWidth := cfg.SampleRateHz / float64(size)
	for i := range bins {
		res.Frequencies[i] = float64(i) * binWidth
		if mag[i] > 0 {
			res.MagnitudeDB[i] = 20 * math.Log10(mag[i])
		} else {
			res.MagnitudeDB[i] = math.Inf(-1)
		}
	}
	return res, nil
}
