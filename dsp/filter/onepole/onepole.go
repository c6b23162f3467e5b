// Package onepole implements the fixed-point one-pole low-pass filter used on
// the 8-bit sample path, including its post-filter makeup gain.
//
// The difference equation is
//
//	y[n] = alpha*x[n] + (1-alpha)*y[n-1]
//
// evaluated in Q16 with round-half-up rescaling. Unlike the 16-bit biquad
// family, a LOWER alpha here means a more aggressive (darker) filter.
package onepole

import (
	"fmt"

	"github.com/jennydigital/chime-dsp/dsp/core"
	"github.com/jennydigital/chime-dsp/dsp/fixed"
)

// Smoothing coefficients per level. Alpha weights the current input, so the
// table runs opposite to the biquad one: VerySoft keeps the most of the
// incoming sample.
const (
	alphaVerySoft   fixed.Q16 = 61440 // 0.9375
	alphaSoft       fixed.Q16 = 57344 // 0.875
	alphaMedium     fixed.Q16 = 49152 // 0.75
	alphaFirm       fixed.Q16 = 45056 // 0.6875
	alphaAggressive fixed.Q16 = 40960 // 0.625
)

// Makeup gain bounds and default, all Q16.
const (
	// DefaultMakeupGain restores roughly 0.7 dB lost to the smoothing pole.
	DefaultMakeupGain fixed.Q16 = 70779 // ~1.08

	minMakeupGain fixed.Q16 = 6554   // 0.1
	maxMakeupGain fixed.Q16 = 131072 // 2.0
)

// AlphaForLevel returns the smoothing coefficient for a preset level.
func AlphaForLevel(level core.Level) (fixed.Q16, error) {
	switch level {
	case core.LevelVerySoft:
		return alphaVerySoft, nil
	case core.LevelSoft:
		return alphaSoft, nil
	case core.LevelMedium:
		return alphaMedium, nil
	case core.LevelFirm:
		return alphaFirm, nil
	case core.LevelAggressive:
		return alphaAggressive, nil
	default:
		return 0, fmt.Errorf("onepole: no preset alpha for level: %v", level)
	}
}

// Filter is a first-order low-pass section with makeup gain.
// The zero value is not usable; construct with New.
type Filter struct {
	level       core.Level
	alpha       fixed.Q16
	customAlpha fixed.Q16
	makeup      fixed.Q16

	y1 int32
}

// New returns a one-pole filter at the given preset level with the default
// makeup gain. LevelCustom is rejected until SetCustomAlpha supplies a
// coefficient.
func New(level core.Level) (*Filter, error) {
	f := &Filter{makeup: DefaultMakeupGain}
	if err := f.SetLevel(level); err != nil {
		return nil, err
	}
	return f, nil
}

// SetLevel selects a preset smoothing level. Selecting LevelCustom reuses the
// alpha last supplied through SetCustomAlpha and fails if none has been set.
func (f *Filter) SetLevel(level core.Level) error {
	if !level.Valid() {
		return fmt.Errorf("onepole: invalid level: %d", int(level))
	}
	if level == core.LevelCustom {
		if f.customAlpha == 0 {
			return fmt.Errorf("onepole: custom level selected without a custom alpha")
		}
		f.level = level
		f.alpha = f.customAlpha
		return nil
	}
	alpha, err := AlphaForLevel(level)
	if err != nil {
		return err
	}
	f.level = level
	f.alpha = alpha
	return nil
}

// SetCustomAlpha installs a caller-chosen smoothing coefficient and switches
// the filter to LevelCustom. Alpha is clamped to (0, 1] in Q16.
func (f *Filter) SetCustomAlpha(alpha fixed.Q16) {
	f.customAlpha = fixed.Clamp(alpha, 1, fixed.One)
	f.level = core.LevelCustom
	f.alpha = f.customAlpha
}

// SetMakeupGain installs a post-filter gain, clamped to [0.1, 2.0] in Q16.
func (f *Filter) SetMakeupGain(gain fixed.Q16) {
	f.makeup = fixed.Clamp(gain, minMakeupGain, maxMakeupGain)
}

// Level returns the active smoothing level.
func (f *Filter) Level() core.Level { return f.level }

// Alpha returns the active smoothing coefficient.
func (f *Filter) Alpha() fixed.Q16 { return f.alpha }

// MakeupGain returns the active makeup gain.
func (f *Filter) MakeupGain() fixed.Q16 { return f.makeup }

// ProcessSample filters one sample and applies makeup gain. The feedback
// history stores the unsaturated gained value so clipping at the output does
// not distort the pole.
func (f *Filter) ProcessSample(x int16) int16 {
	y := fixed.MulWide(f.alpha, int64(x)) +
		fixed.MulWide(fixed.One-f.alpha, int64(f.y1))
	y = fixed.MulWide(f.makeup, y)
	f.y1 = int32(y)
	return fixed.Sat16(y)
}

// Reset clears the filter history. Level, alpha and makeup gain are kept.
func (f *Filter) Reset() {
	f.y1 = 0
}
