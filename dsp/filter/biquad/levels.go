package biquad

import (
	"fmt"
	"math"

	"github.com/jennydigital/chime-dsp/dsp/core"
	"github.com/jennydigital/chime-dsp/dsp/fixed"
)

// maxAlpha keeps the pole strictly inside the unit circle. The derived a2
// coefficient saturates Q16 as alpha approaches 1.0.
const maxAlpha fixed.Q16 = 65534 // ~0.99997

// Preset alpha table for the 16-bit path. Higher alpha filters harder:
// VerySoft leaves the most treble, Aggressive the least.
const (
	alphaVerySoft   fixed.Q16 = 40960 // 0.625,  cutoff ~8700 Hz @ 22 kHz
	alphaSoft       fixed.Q16 = 52429 // ~0.80,  cutoff ~7200 Hz
	alphaMedium     fixed.Q16 = 57344 // 0.875,  cutoff ~5900 Hz
	alphaFirm       fixed.Q16 = 60416 // ~0.92,  cutoff ~5000 Hz
	alphaAggressive fixed.Q16 = 63488 // ~0.97,  cutoff ~4100 Hz
)

// AlphaForLevel returns the preset Q16 alpha for a level. LevelCustom has no
// table entry and is rejected.
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
		return 0, fmt.Errorf("biquad: no alpha for level %v", level)
	}
}

// AlphaFromCutoff converts a -3 dB cutoff frequency to a Q16 alpha using the
// one-pole mapping alpha = exp(-2*pi*fc/fs). Returns zero when either rate
// is non-positive. The result is clamped below 1.0 so the pole stays stable.
func AlphaFromCutoff(cutoffHz, sampleRateHz float64) fixed.Q16 {
	if cutoffHz <= 0 || sampleRateHz <= 0 {
		return 0
	}

	alpha := math.Exp(-2 * math.Pi * cutoffHz / sampleRateHz)

	return fixed.Clamp(fixed.FromFloat(alpha), 0, maxAlpha)
}
