// Package clip implements cubic soft clipping for samples approaching full
// scale.
//
// Samples within 85% of full scale pass through untouched. Beyond that the
// excess is bent through the smoothstep-like cubic 1.5t^2 - t^3, which rises
// smoothly from the threshold and levels off well before the 16-bit ceiling,
// so hard wraparound can never occur.
package clip

import "github.com/jennydigital/chime-dsp/dsp/fixed"

const (
	// Threshold is the magnitude below which clipping is an identity.
	Threshold = 28000

	// clipRange maps the excess onto [0, 1] in the cubic's domain.
	clipRange = fixed.MaxSample - Threshold // 4767
)

// Soft applies the clipping curve to one sample. Pure function, no state;
// output magnitude never exceeds the 16-bit sample range.
func Soft(x int16) int16 {
	mag := int64(x)
	neg := mag < 0
	if neg {
		mag = -mag
	}
	if mag <= Threshold {
		return x
	}

	// Normalize the excess to Q16 in [0, 1].
	t := ((mag - Threshold) << fixed.Shift) / clipRange
	if t > int64(fixed.One) {
		t = int64(fixed.One)
	}

	// curve(t) = 1.5*t^2 - t^3, evaluated wide.
	t2 := fixed.Rescale(t * t)
	t3 := fixed.Rescale(t2 * t)
	c := t2 + t2>>1 - t3

	y := Threshold + fixed.Rescale(c*clipRange)
	if neg {
		y = -y
	}
	return int16(y)
}
