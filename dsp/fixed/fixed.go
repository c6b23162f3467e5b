// Package fixed implements Q16 fixed-point arithmetic for the sample
// processing chain. All per-sample filter math is expressed in this format so
// the chain runs deterministically on targets without a floating-point unit.
package fixed

import "math"

// Q16 is a scaled integer representing the real value n/65536.
type Q16 int32

const (
	// Shift is the number of fractional bits in a Q16 value.
	Shift = 16

	// One is the Q16 representation of 1.0.
	One Q16 = 1 << Shift

	// Half is the Q16 representation of 0.5. Adding it before a right
	// shift by Shift implements round-half-up.
	Half Q16 = 1 << (Shift - 1)
)

// Sample domain bounds.
const (
	MinSample = math.MinInt16
	MaxSample = math.MaxInt16
)

// FromFloat converts v to Q16 with round-half-up.
func FromFloat(v float64) Q16 {
	return Q16(math.Floor(v*float64(One) + 0.5))
}

// Float converts q back to a float64. Configuration-time use only; the
// per-sample path never touches floating point.
func (q Q16) Float() float64 {
	return float64(q) / float64(One)
}

// Mul multiplies two Q16 values and rescales with round-half-up.
func Mul(a, b Q16) Q16 {
	return Q16((int64(a)*int64(b) + int64(Half)) >> Shift)
}

// MulWide multiplies a Q16 coefficient by a wide accumulator and rescales
// with round-half-up. The accumulator stays wide so intermediate products
// cannot overflow a 32-bit history slot.
func MulWide(c Q16, v int64) int64 {
	return (int64(c)*v + int64(Half)) >> Shift
}

// MulWideFloor multiplies a Q16 coefficient by a wide accumulator and
// truncates toward negative infinity. Recursive DC feedback paths need this:
// round-half-up feedback stalls at a residual of up to 0.5/(1-alpha) samples
// on either side of zero. Floor truncation decays positive residuals fully;
// negative residuals pin at no more than 1/(1-alpha) below zero, since every
// integer in that band is a fixed point of y <- floor(alpha*y).
func MulWideFloor(c Q16, v int64) int64 {
	return (int64(c) * v) >> Shift
}

// Rescale shifts a wide Q16 product back to sample scale with round-half-up.
func Rescale(acc int64) int64 {
	return (acc + int64(Half)) >> Shift
}

// Clamp limits q to [lo, hi].
func Clamp(q, lo, hi Q16) Q16 {
	if q < lo {
		return lo
	}
	if q > hi {
		return hi
	}
	return q
}

// Sat16 saturates a wide accumulator to the 16-bit sample domain.
func Sat16(v int64) int16 {
	if v > MaxSample {
		return MaxSample
	}
	if v < MinSample {
		return MinSample
	}
	return int16(v)
}
