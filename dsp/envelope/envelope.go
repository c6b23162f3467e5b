// Package envelope implements the quadratic fade ramp applied at playback
// start and end.
//
// The ramp is a power curve rather than linear: amplitude follows
// (progress/length)^2, which sounds closer to a constant loudness change and
// removes the click a hard start or stop would produce.
package envelope

import (
	"fmt"

	"github.com/jennydigital/chime-dsp/dsp/fixed"
)

// Direction describes the active ramp, if any.
type Direction int

const (
	// DirectionNone means no ramp is running; samples pass through, or are
	// muted if a fade-out has completed.
	DirectionNone Direction = iota
	// DirectionIn ramps amplitude from silence to unity.
	DirectionIn
	// DirectionOut ramps amplitude from unity to silence.
	DirectionOut

	directionCount // sentinel for validation
)

var directionNames = [directionCount]string{"None", "In", "Out"}

// String returns the name of the fade direction.
func (d Direction) String() string {
	if d >= 0 && d < directionCount {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", d)
}

// DefaultLength is the fade window in samples, about 93 ms at 22 kHz.
const DefaultLength = 2048

// Duration clamp bounds when configuring the window from wall time.
const (
	minDurationSeconds = 0.001
	maxDurationSeconds = 5.0
)

// Fade holds the ramp position and direction for one playback stream.
// The zero value is not usable; construct with New.
type Fade struct {
	length int32
	pos    int32
	dir    Direction

	// silent latches after a completed fade-out so the stream stays muted
	// until the next reset or fade-in.
	silent bool
}

// New returns an idle fade with the default window length.
func New() *Fade {
	return &Fade{length: DefaultLength}
}

// SetLength configures the fade window in samples. Lengths below 1 are
// rejected.
func (f *Fade) SetLength(samples int32) error {
	if samples < 1 {
		return fmt.Errorf("envelope: fade length must be positive: %d", samples)
	}
	f.length = samples
	// Shrinking the window below the position of a ramp in flight would push
	// the (pos/length)^2 multiplier above unity.
	if f.pos > f.length {
		f.pos = f.length
	}
	return nil
}

// SetDuration configures the fade window from wall time, clamped to
// [1 ms, 5 s] at the given sample rate.
func (f *Fade) SetDuration(seconds float64, sampleRateHz int) error {
	if sampleRateHz <= 0 {
		return fmt.Errorf("envelope: invalid sample rate: %d", sampleRateHz)
	}
	if seconds < minDurationSeconds {
		seconds = minDurationSeconds
	}
	if seconds > maxDurationSeconds {
		seconds = maxDurationSeconds
	}
	return f.SetLength(int32(seconds * float64(sampleRateHz)))
}

// Length returns the configured window in samples.
func (f *Fade) Length() int32 { return f.length }

// Direction returns the active ramp direction.
func (f *Fade) Direction() Direction { return f.dir }

// Active reports whether a ramp is currently running.
func (f *Fade) Active() bool { return f.dir != DirectionNone }

// StartIn begins a fade-in from silence. A ramp already in flight is not
// restartable; callers must Reset first.
func (f *Fade) StartIn() error {
	if f.Active() {
		return fmt.Errorf("envelope: fade already active: %v", f.dir)
	}
	f.dir = DirectionIn
	f.pos = 0
	f.silent = false
	return nil
}

// StartOut begins a fade-out toward silence. A ramp already in flight is not
// restartable; callers must Reset first.
func (f *Fade) StartOut() error {
	if f.Active() {
		return fmt.Errorf("envelope: fade already active: %v", f.dir)
	}
	f.dir = DirectionOut
	f.pos = f.length
	f.silent = false
	return nil
}

// Apply scales one sample by the current ramp value and advances the ramp by
// one position. Outside any ramp it is a passthrough, except after a
// completed fade-out, which holds the stream at silence.
func (f *Fade) Apply(x int16) int16 {
	switch f.dir {
	case DirectionIn:
		y := f.scale(x)
		f.pos++
		if f.pos >= f.length {
			f.dir = DirectionNone
		}
		return y
	case DirectionOut:
		y := f.scale(x)
		if f.pos > 0 {
			f.pos--
		}
		if f.pos == 0 {
			f.dir = DirectionNone
			f.silent = true
		}
		return y
	default:
		if f.silent {
			return 0
		}
		return x
	}
}

// scale applies the quadratic curve (pos/length)^2 in wide integer math so
// the squared position cannot overflow.
func (f *Fade) scale(x int16) int16 {
	p := int64(f.pos)
	l := int64(f.length)
	y := int64(x) * p * p / (l * l)
	return fixed.Sat16(y)
}

// Advance moves the ramp forward n positions without producing output, for
// callers that drop samples but must keep the ramp on schedule.
func (f *Fade) Advance(n int32) {
	for range n {
		f.Apply(0)
	}
}

// Reset returns the fade to idle passthrough. The configured length is kept.
func (f *Fade) Reset() {
	f.dir = DirectionNone
	f.pos = 0
	f.silent = false
}
