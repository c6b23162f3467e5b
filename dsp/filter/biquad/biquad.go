// Package biquad implements the second-order fixed-point low-pass filter for
// the 16-bit sample path.
//
// All five coefficients derive from a single Q16 pole coefficient alpha:
//
//	b0 = b2 = ((1-alpha)^2)/2
//	b1 = 2*b0
//	a1 = -2*alpha
//	a2 = alpha^2
//
// Higher alpha means lower cutoff and more aggressive filtering. This is the
// opposite of the one-pole family in the 8-bit path and is intentional; the
// level tables for the two families are not interchangeable.
package biquad

import (
	"fmt"

	"github.com/jennydigital/chime-dsp/dsp/core"
	"github.com/jennydigital/chime-dsp/dsp/fixed"
)

// DefaultWarmUpPasses is the number of priming iterations used to settle the
// filter on the first sample of a session. Sixteen passes bring even the
// Aggressive level close enough to steady state to suppress the audible
// crack a cold start produces.
const DefaultWarmUpPasses = 16

// LowPass is a single-channel fixed-point biquad low-pass filter.
// Coefficients are resolved when the level or alpha changes, never on the
// per-sample path.
type LowPass struct {
	level       core.Level
	alpha       fixed.Q16
	customAlpha fixed.Q16

	// Derived coefficients, all Q16.
	b0, b1, b2 int32
	a1, a2     int32

	// History accumulators.
	x1, x2 int32
	y1, y2 int32

	primed bool
}

// New returns a LowPass configured for the given preset level. LevelCustom
// is rejected here; use SetCustomAlpha to enter custom mode.
func New(level core.Level) (*LowPass, error) {
	f := &LowPass{}

	err := f.SetLevel(level)
	if err != nil {
		return nil, err
	}

	return f, nil
}

// SetLevel selects a preset alpha. For LevelCustom the most recently set
// custom alpha is used; setting LevelCustom before any SetCustomAlpha call
// is rejected. History is preserved.
func (f *LowPass) SetLevel(level core.Level) error {
	if !level.Valid() {
		return fmt.Errorf("biquad: invalid level: %d", level)
	}

	if level == core.LevelCustom {
		if f.customAlpha == 0 {
			return fmt.Errorf("biquad: custom level selected without custom alpha")
		}

		f.level = level
		f.setAlpha(f.customAlpha)

		return nil
	}

	alpha, err := AlphaForLevel(level)
	if err != nil {
		return err
	}

	f.level = level
	f.setAlpha(alpha)

	return nil
}

// SetCustomAlpha switches to LevelCustom with the given Q16 pole coefficient.
// Alpha is clamped to [0, maxAlpha] to keep the pole inside the unit circle.
func (f *LowPass) SetCustomAlpha(alpha fixed.Q16) {
	alpha = fixed.Clamp(alpha, 0, maxAlpha)

	f.customAlpha = alpha
	f.level = core.LevelCustom
	f.setAlpha(alpha)
}

func (f *LowPass) setAlpha(alpha fixed.Q16) {
	f.alpha = alpha

	a := int64(alpha)
	om := int64(fixed.One) - a

	b0 := int32((om * om) >> 17)
	f.b0 = b0
	f.b1 = b0 << 1
	f.b2 = b0
	f.a1 = int32(-(a << 1))
	f.a2 = int32((a * a) >> 16)
}

// Level returns the active level.
func (f *LowPass) Level() core.Level {
	return f.level
}

// Alpha returns the active Q16 pole coefficient.
func (f *LowPass) Alpha() fixed.Q16 {
	return f.alpha
}

// Primed reports whether WarmUp has run since the last Reset.
func (f *LowPass) Primed() bool {
	return f.primed
}

// ProcessSample filters one sample. The unsaturated output feeds the
// recursion; the returned value is saturated to 16 bits.
func (f *LowPass) ProcessSample(x int16) int16 {
	acc := int64(f.b0)*int64(x) +
		int64(f.b1)*int64(f.x1) +
		int64(f.b2)*int64(f.x2) -
		int64(f.a1)*int64(f.y1) -
		int64(f.a2)*int64(f.y2)

	out := int32(fixed.Rescale(acc))

	f.x2 = f.x1
	f.x1 = int32(x)
	f.y2 = f.y1
	f.y1 = out

	return fixed.Sat16(int64(out))
}

// WarmUp feeds first through the filter passes times, converging the state
// near steady state for a constant input so the first real sample does not
// carry a startup transient. A passes value of zero or less selects
// DefaultWarmUpPasses.
func (f *LowPass) WarmUp(first int16, passes int) {
	if passes <= 0 {
		passes = DefaultWarmUpPasses
	}

	for range passes {
		f.ProcessSample(first)
	}

	f.primed = true
}

// Reset zeroes all four history slots and clears the primed flag.
// Level and alpha persist; they are configuration, not transient state.
func (f *LowPass) Reset() {
	f.x1 = 0
	f.x2 = 0
	f.y1 = 0
	f.y2 = 0
	f.primed = false
}
