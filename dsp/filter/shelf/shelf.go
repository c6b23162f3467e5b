// Package shelf implements the "air" high-shelf brightening filter.
//
// The section is a one-pole shelf
//
//	y[n] = alpha*x[n] + (1-alpha)*y[n-1] + (1-alpha)*G*(x[n] - x[n-1])
//
// evaluated in Q16. G is the shelf gain: 1.0 leaves the spectrum flat, values
// above 1.0 lift the band above the corner. The corner is fixed by alpha; only
// the gain is runtime-adjustable.
package shelf

import (
	"fmt"
	"math"

	"github.com/jennydigital/chime-dsp/dsp/fixed"
)

// The pole coefficient is fixed; at a 22 kHz rate the shelf transition is
// centered near 5 kHz (denominator pole at 1-alpha = 0.25).
const shelfAlpha fixed.Q16 = 49152 // 0.75

// Shelf gain bounds and default, all Q16.
const (
	// DefaultGain gives a gentle presence lift of roughly +3 dB.
	DefaultGain fixed.Q16 = 98304 // 1.5

	minGain fixed.Q16 = 0
	maxGain fixed.Q16 = 131072 // 2.0
)

// Preset boost amounts in decibels. PresetOff bypasses the filter entirely.
var presetDB = [...]float64{0, 2, 3}

// Preset selects one of the built-in boost amounts.
type Preset int

const (
	PresetOff Preset = iota
	PresetLow
	PresetHigh

	presetCount // sentinel for validation
)

var presetNames = [presetCount]string{"Off", "Low", "High"}

// String returns the name of the preset.
func (p Preset) String() string {
	if p >= 0 && p < presetCount {
		return presetNames[p]
	}
	return fmt.Sprintf("Preset(%d)", p)
}

// Valid reports whether p is a known preset.
func (p Preset) Valid() bool {
	return p >= 0 && p < presetCount
}

// DB returns the preset's boost in decibels.
func (p Preset) DB() float64 {
	if p.Valid() {
		return presetDB[p]
	}
	return 0
}

// GainFromDB converts a boost in decibels to the Q16 shelf gain that realizes
// it at the fixed corner:
//
//	G = (H*(2-alpha) - alpha) / (2*(1-alpha)),  H = 10^(dB/20)
//
// A 0 dB request resolves to unity gain. The result is clamped to [0, 2.0],
// so any sufficiently large request yields exactly the 2.0 ceiling.
func GainFromDB(db float64) fixed.Q16 {
	alpha := shelfAlpha.Float()
	h := math.Pow(10, db/20)
	g := (h*(2-alpha) - alpha) / (2 * (1 - alpha))
	// Clamp before quantizing: a float64 outside the int32 range does not
	// convert predictably, so the bound has to hold in float space.
	g = math.Min(math.Max(g, minGain.Float()), maxGain.Float())
	return fixed.FromFloat(g)
}

// GainDB is the inverse of GainFromDB for gains inside the clamp range.
func GainDB(gain fixed.Q16) float64 {
	alpha := shelfAlpha.Float()
	h := (2*(1-alpha)*gain.Float() + alpha) / (2 - alpha)
	if h <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(h)
}

// Filter is the air shelf with its history and configuration.
// The zero value is not usable; construct with New.
type Filter struct {
	gain    fixed.Q16
	preset  Preset
	enabled bool

	// diffGain caches (1-alpha)*G so the hot path needs no extra rescale.
	diffGain fixed.Q16

	x1 int32
	y1 int32
}

// New returns a disabled shelf at the default gain. Callers enable it through
// SetEnabled or by selecting a non-off preset.
func New() *Filter {
	f := &Filter{preset: PresetOff}
	f.setGain(DefaultGain)
	return f
}

func (f *Filter) setGain(g fixed.Q16) {
	f.gain = fixed.Clamp(g, minGain, maxGain)
	f.diffGain = fixed.Mul(fixed.One-shelfAlpha, f.gain)
}

// SetGainDB configures the boost from a decibel value. The derived gain is
// clamped, never rejected; presets are just specific decibel values routed
// through the same computation.
func (f *Filter) SetGainDB(db float64) {
	f.preset = Preset(-1)
	f.setGain(GainFromDB(db))
}

// SetPreset selects a built-in boost amount. PresetOff disables the filter;
// the other presets enable it.
func (f *Filter) SetPreset(p Preset) error {
	if !p.Valid() {
		return fmt.Errorf("shelf: invalid preset: %d", int(p))
	}
	f.preset = p
	f.enabled = p != PresetOff
	f.setGain(GainFromDB(p.DB()))
	return nil
}

// CyclePreset advances to the next preset, wrapping from the strongest boost
// back to off, and returns the newly active preset.
func (f *Filter) CyclePreset() Preset {
	next := f.preset + 1
	if !next.Valid() {
		next = PresetOff
	}
	f.SetPreset(next)
	return next
}

// SetEnabled toggles the filter without touching the configured gain.
func (f *Filter) SetEnabled(enabled bool) { f.enabled = enabled }

// Enabled reports whether the filter is active.
func (f *Filter) Enabled() bool { return f.enabled }

// Gain returns the active shelf gain.
func (f *Filter) Gain() fixed.Q16 { return f.gain }

// Preset returns the active preset, or -1 after direct decibel control.
func (f *Filter) Preset() Preset { return f.preset }

// ProcessSample filters one sample. A disabled shelf is a passthrough that
// still tracks history, so enabling it mid-stream does not produce a step.
func (f *Filter) ProcessSample(x int16) int16 {
	y := fixed.MulWide(shelfAlpha, int64(x)) +
		fixed.MulWide(fixed.One-shelfAlpha, int64(f.y1)) +
		fixed.MulWide(f.diffGain, int64(x)-int64(f.x1))
	f.x1 = int32(x)
	f.y1 = int32(y)
	if !f.enabled {
		return x
	}
	return fixed.Sat16(y)
}

// Reset zeroes the input/output history. Gain, preset and the enable flag are
// configuration and survive the reset.
func (f *Filter) Reset() {
	f.x1 = 0
	f.y1 = 0
}
