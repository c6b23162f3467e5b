// Package playback drives the filter chain from a sample source, adding the
// session-level behavior around it: state machine, volume control, fade-based
// pause and resume, and warm-up at session start.
package playback

import (
	"fmt"
	"io"

	"github.com/jennydigital/chime-dsp/dsp/chain"
)

// DefaultSampleRate is the chime hardware's output rate.
const DefaultSampleRate = 22000

// Source supplies raw mono sample data for one playback session.
type Source interface {
	// SampleRate returns the source's rate in Hz.
	SampleRate() int
	// Depth reports whether samples are one unsigned byte or two
	// little-endian bytes each.
	Depth() chain.BitDepth
	// Read fills p with raw sample bytes. It reports io.EOF when the
	// material is exhausted, possibly alongside the final bytes.
	Read(p []byte) (int, error)
}

// BufferSource is an in-memory Source over a prepared byte buffer.
type BufferSource struct {
	data  []byte
	pos   int
	rate  int
	depth chain.BitDepth
}

// NewBufferSource wraps raw sample bytes as a Source. For Depth16 the length
// must be even.
func NewBufferSource(data []byte, sampleRate int, depth chain.BitDepth) (*BufferSource, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("playback: invalid sample rate: %d", sampleRate)
	}
	if !depth.Valid() {
		return nil, fmt.Errorf("playback: invalid bit depth: %d", int(depth))
	}
	if depth == chain.Depth16 && len(data)%2 != 0 {
		return nil, fmt.Errorf("playback: odd byte count %d for 16-bit data", len(data))
	}
	return &BufferSource{data: data, rate: sampleRate, depth: depth}, nil
}

// NewSampleSource wraps a 16-bit mono sample slice as a Source.
func NewSampleSource(samples []int16, sampleRate int) (*BufferSource, error) {
	data := make([]byte, 2*len(samples))
	for i, s := range samples {
		data[2*i] = byte(s)
		data[2*i+1] = byte(uint16(s) >> 8)
	}
	return NewBufferSource(data, sampleRate, chain.Depth16)
}

// SampleRate returns the source's rate in Hz.
func (b *BufferSource) SampleRate() int { return b.rate }

// Depth returns the source's sample depth.
func (b *BufferSource) Depth() chain.BitDepth { return b.depth }

// Read copies the next raw sample bytes into p. The final bytes arrive
// together with io.EOF, so a caller that drains the buffer exactly sees the
// end of the material on that same call.
func (b *BufferSource) Read(p []byte) (int, error) {
	if b.pos >= len(b.data) {
		return 0, io.EOF
	}
	n := copy(p, b.data[b.pos:])
	b.pos += n
	if b.pos == len(b.data) {
		return n, io.EOF
	}
	return n, nil
}

// Rewind returns the source to its first sample.
func (b *BufferSource) Rewind() { b.pos = 0 }

// Len returns the total sample count.
func (b *BufferSource) Len() int {
	if b.depth == chain.Depth8 {
		return len(b.data)
	}
	return len(b.data) / 2
}
