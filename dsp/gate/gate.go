// Package gate implements the amplitude-threshold noise gate.
//
// Samples quieter than the threshold are forced to zero, silencing idle-line
// hiss between chimes without touching audible program material. There is no
// attack or release smoothing; the gate is a plain comparator.
package gate

// Threshold is the gating level, about 1.5% of full scale.
const Threshold = 512

// Gate mutes sub-threshold samples when enabled.
// The zero value is a disabled gate, ready to use.
type Gate struct {
	enabled bool
}

// New returns a gate with the given initial enable state.
func New(enabled bool) *Gate {
	return &Gate{enabled: enabled}
}

// SetEnabled toggles the gate.
func (g *Gate) SetEnabled(enabled bool) { g.enabled = enabled }

// Enabled reports whether the gate is active.
func (g *Gate) Enabled() bool { return g.enabled }

// ProcessSample gates one sample. The magnitude compare runs in 32-bit so
// the most negative sample does not wrap when negated.
func (g *Gate) ProcessSample(x int16) int16 {
	if !g.enabled {
		return x
	}
	mag := int32(x)
	if mag < 0 {
		mag = -mag
	}
	if mag < Threshold {
		return 0
	}
	return x
}
