package playback

import (
	"errors"
	"io"
)

// PCMReader adapts an Engine as an io.Reader producing signed 16-bit
// little-endian PCM, duplicating the mono chain output across the requested
// channel count. Audio back ends that pull byte streams (such as oto
// players) can consume it directly.
type PCMReader struct {
	engine   *Engine
	channels int
	frame    []int16
}

// NewPCMReader wraps engine for the given interleaved channel count.
func NewPCMReader(engine *Engine, channels int) *PCMReader {
	if channels < 1 {
		channels = 1
	}
	return &PCMReader{
		engine:   engine,
		channels: channels,
		frame:    make([]int16, 512),
	}
}

// Read fills p with interleaved PCM bytes. An idle engine reads as EOF.
func (r *PCMReader) Read(p []byte) (int, error) {
	bytesPerFrame := 2 * r.channels
	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}
	if frames > len(r.frame) {
		frames = len(r.frame)
	}

	n, err := r.engine.Render(r.frame[:frames])
	if errors.Is(err, ErrNoSession) {
		return 0, io.EOF
	}

	w := 0
	for _, s := range r.frame[:n] {
		lo, hi := byte(s), byte(uint16(s)>>8)
		for range r.channels {
			p[w] = lo
			p[w+1] = hi
			w += 2
		}
	}
	if errors.Is(err, io.EOF) && w > 0 {
		// Deliver the short tail now; the next call reports EOF.
		return w, nil
	}
	return w, err
}
