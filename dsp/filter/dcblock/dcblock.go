// Package dcblock implements a first-order fixed-point DC blocking filter.
//
// The filter removes DC offset and slow drift with the classic recurrence
//
//	y[n] = x[n] - x[n-1] + alpha*y[n-1]
//
// evaluated entirely in Q16 arithmetic with 32-bit history accumulators.
package dcblock

import (
	"fmt"

	"github.com/jennydigital/chime-dsp/dsp/fixed"
)

// Variant selects the filter pole position.
type Variant int

const (
	// VariantStandard places the cutoff near 44 Hz at a 22 kHz rate.
	VariantStandard Variant = iota
	// VariantSoft places the cutoff near 22 Hz at a 22 kHz rate.
	VariantSoft

	variantCount // sentinel for validation
)

var variantNames = [variantCount]string{"Standard", "Soft"}

// String returns the name of the variant.
func (v Variant) String() string {
	if v >= 0 && v < variantCount {
		return variantNames[v]
	}
	return fmt.Sprintf("Variant(%d)", v)
}

// Valid reports whether v is a known variant.
func (v Variant) Valid() bool {
	return v >= 0 && v < variantCount
}

// Pole coefficients per variant.
const (
	alphaStandard fixed.Q16 = 64225 // ~0.98
	alphaSoft     fixed.Q16 = 65216 // ~0.995
)

// Filter is a single-channel DC blocker. State is two history slots wider
// than the sample domain so intermediate values cannot overflow.
type Filter struct {
	alpha fixed.Q16
	x1    int32
	y1    int32
}

// New returns a Filter for the given variant with zero history.
func New(v Variant) (*Filter, error) {
	f := &Filter{}

	err := f.SetVariant(v)
	if err != nil {
		return nil, err
	}

	return f, nil
}

// SetVariant switches the pole coefficient. History is preserved; call
// Reset when starting a fresh session.
func (f *Filter) SetVariant(v Variant) error {
	if !v.Valid() {
		return fmt.Errorf("dcblock: invalid variant: %d", v)
	}

	if v == VariantSoft {
		f.alpha = alphaSoft
	} else {
		f.alpha = alphaStandard
	}

	return nil
}

// Alpha returns the active pole coefficient.
func (f *Filter) Alpha() fixed.Q16 {
	return f.alpha
}

// ProcessSample filters one sample. The unsaturated output is kept as the
// feedback history; only the returned value is saturated to 16 bits.
func (f *Filter) ProcessSample(x int16) int16 {
	y := int64(x) - int64(f.x1) + fixed.MulWideFloor(f.alpha, int64(f.y1))

	f.x1 = int32(x)
	f.y1 = int32(y)

	return fixed.Sat16(y)
}

// Reset zeroes both history slots.
func (f *Filter) Reset() {
	f.x1 = 0
	f.y1 = 0
}
