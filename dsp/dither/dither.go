// Package dither provides the deterministic noise generator used to mask
// quantization artifacts on the 8-bit sample path.
//
// The generator is a classic ANSI C linear congruential generator. It is
// deliberately cheap and fully deterministic: reseeding with the fixed seed
// reproduces the exact noise sequence, which keeps renders repeatable.
package dither

// LCG parameters and the fixed default seed.
const (
	lcgMultiplier uint32 = 1103515245
	lcgIncrement  uint32 = 12345

	// DefaultSeed is the generator's power-on state.
	DefaultSeed uint32 = 12345
)

// Generator produces pseudo-random bytes and TPDF dither samples.
// The zero value is NOT ready; use New so the state starts at DefaultSeed.
type Generator struct {
	state uint32
}

// New returns a generator seeded with DefaultSeed.
func New() *Generator {
	return &Generator{state: DefaultSeed}
}

// NewSeeded returns a generator with an explicit seed, for callers that want
// distinct noise sequences across channels.
func NewSeeded(seed uint32) *Generator {
	return &Generator{state: seed}
}

// NextByte advances the generator and returns eight bits drawn from the
// middle of the state word, where the LCG's spectral quality is best.
func (g *Generator) NextByte() uint8 {
	g.state = g.state*lcgMultiplier + lcgIncrement
	return uint8((g.state >> 16) & 0xFF)
}

// TPDF returns one triangular-PDF dither sample. Two independent uniform
// draws are summed and scaled down so the amplitude stays below the 8-bit
// quantization step after expansion to 16-bit.
func (g *Generator) TPDF() int16 {
	r1 := int16(g.NextByte())
	r2 := int16(g.NextByte())
	return (r1 - r2) >> 6
}

// Reset restores the generator. With reseed true the state returns to
// DefaultSeed and the noise sequence repeats from the start; with reseed
// false the current state is kept so noise stays decorrelated across
// playback sessions.
func (g *Generator) Reset(reseed bool) {
	if reseed {
		g.state = DefaultSeed
	}
}

// Expand8 converts an unsigned 8-bit sample to the signed 16-bit domain by
// centering and shifting into the top byte.
func Expand8(s uint8) int16 {
	return (int16(s) - 128) << 8
}
