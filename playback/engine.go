package playback

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/jennydigital/chime-dsp/dsp/chain"
	"github.com/jennydigital/chime-dsp/dsp/envelope"
	"github.com/jennydigital/chime-dsp/dsp/fixed"
)

// State is the engine's session state.
type State int

const (
	// StateIdle means no session is active; Render produces nothing.
	StateIdle State = iota
	// StatePlaying means samples are flowing through the chain.
	StatePlaying
	// StatePausing means a pause fade-out is in flight.
	StatePausing
	// StatePaused means the session is held; Render produces silence.
	StatePaused
	// StateError means a source failure ended the session.
	StateError

	stateCount // sentinel for validation
)

var stateNames = [stateCount]string{"Idle", "Playing", "Pausing", "Paused", "Error"}

// String returns the name of the state.
func (s State) String() string {
	if s >= 0 && s < stateCount {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", s)
}

// ErrNoSession is returned by Render when the engine is idle.
var ErrNoSession = errors.New("playback: no active session")

// MaxVolume is the top of the volume control range.
const MaxVolume = 255

// Volume curve exponent bounds.
const (
	minGamma = 1.0
	maxGamma = 4.0
)

// Engine runs playback sessions through a filter chain.
//
// All methods belong to a single goroutine; the engine is the "processing
// context" of its chain, and control-context conveniences like the chain's
// Configure remain available to others.
type Engine struct {
	chain *chain.Chain
	src   Source

	state   State
	lastErr error

	volume  uint8
	gamma   float64
	volMult fixed.Q16

	// pauseLeft counts down the fade-out window while pausing.
	pauseLeft int32

	scratch []byte
}

// NewEngine wraps a chain in a session engine at full volume.
func NewEngine(c *chain.Chain) *Engine {
	e := &Engine{
		chain:   c,
		volume:  MaxVolume,
		gamma:   minGamma,
		scratch: make([]byte, 4096),
	}
	e.updateVolume()
	return e
}

// Chain exposes the underlying chain, e.g. for control-context Configure
// calls.
func (e *Engine) Chain() *chain.Chain { return e.chain }

// State returns the current session state.
func (e *Engine) State() State { return e.state }

// Err returns the source error that moved the engine to StateError, if any.
func (e *Engine) Err() error { return e.lastErr }

// SetVolume sets the output level on the 0..255 hardware scale.
func (e *Engine) SetVolume(v uint8) {
	e.volume = v
	e.updateVolume()
}

// SetVolumeCurve sets the perceptual volume curve exponent, clamped to
// [1, 4]. 1 is linear; higher values give finer control at low settings.
func (e *Engine) SetVolumeCurve(gamma float64) {
	if gamma < minGamma {
		gamma = minGamma
	}
	if gamma > maxGamma {
		gamma = maxGamma
	}
	e.gamma = gamma
	e.updateVolume()
}

// Volume returns the current 0..255 volume setting.
func (e *Engine) Volume() uint8 { return e.volume }

func (e *Engine) updateVolume() {
	frac := float64(e.volume) / MaxVolume
	e.volMult = fixed.FromFloat(math.Pow(frac, e.gamma))
}

// Start begins a playback session: the session's bit depth is locked into
// the chain, every stage is reset, the low-pass is warmed on the first
// sample, and a fade-in is armed.
func (e *Engine) Start(src Source) error {
	if src == nil {
		return fmt.Errorf("playback: nil source")
	}
	if src.SampleRate() <= 0 {
		return fmt.Errorf("playback: invalid source sample rate: %d", src.SampleRate())
	}

	// ResetAll latches anything still pending from the control context, so
	// reading the configuration back to pin the session depth cannot discard
	// an in-flight Configure.
	e.chain.ResetAll()

	cfg := e.chain.Config()
	cfg.Depth = src.Depth()
	if err := e.chain.Configure(cfg); err != nil {
		return err
	}

	e.src = src
	e.lastErr = nil
	e.chain.WarmUp(e.peekFirst())
	e.chain.TriggerFadeIn()
	e.state = StatePlaying
	return nil
}

// peekFirst reads the session's first sample for warm-up and arranges for it
// to be processed again as program material.
func (e *Engine) peekFirst() int16 {
	// Only the in-memory source supports rewinding; other sources warm up
	// on silence, which matches a chime's leading quiet.
	b, ok := e.src.(*BufferSource)
	if !ok || b.Len() == 0 {
		return 0
	}
	var first int16
	switch b.depth {
	case chain.Depth8:
		first = int16(b.data[0]-128) << 8
	default:
		first = int16(uint16(b.data[0]) | uint16(b.data[1])<<8)
	}
	return first
}

// Stop ends the session immediately without a fade.
func (e *Engine) Stop() {
	e.src = nil
	e.state = StateIdle
	e.pauseLeft = 0
}

// Pause starts a fade-out and holds the session once it completes.
func (e *Engine) Pause() {
	if e.state != StatePlaying {
		return
	}
	e.chain.TriggerFadeOut()
	e.pauseLeft = e.fadeLength()
	e.state = StatePausing
}

// Resume fades a paused session back in. A session still fading out keeps
// fading; the resume takes effect once the hold is reached.
func (e *Engine) Resume() {
	if e.state != StatePaused {
		return
	}
	e.chain.TriggerFadeIn()
	e.state = StatePlaying
}

func (e *Engine) fadeLength() int32 {
	if l := e.chain.Config().FadeLength; l > 0 {
		return l
	}
	return envelope.DefaultLength
}

// Render fills dst with processed output samples and reports how many were
// produced. It returns io.EOF (possibly alongside a short count) when the
// source is exhausted, and ErrNoSession when the engine is idle.
func (e *Engine) Render(dst []int16) (int, error) {
	switch e.state {
	case StateIdle:
		return 0, ErrNoSession
	case StateError:
		return 0, e.lastErr
	case StatePaused:
		for i := range dst {
			dst[i] = 0
		}
		return len(dst), nil
	}

	bytesPerSample := 1
	if e.src.Depth() == chain.Depth16 {
		bytesPerSample = 2
	}

	produced := 0
	for produced < len(dst) {
		want := (len(dst) - produced) * bytesPerSample
		if want > len(e.scratch) {
			want = len(e.scratch)
		}
		want -= want % bytesPerSample

		n, err := e.src.Read(e.scratch[:want])
		n -= n % bytesPerSample

		for i := 0; i < n; i += bytesPerSample {
			var y int16
			if bytesPerSample == 1 {
				y = e.chain.Process8(e.scratch[i])
			} else {
				x := int16(uint16(e.scratch[i]) | uint16(e.scratch[i+1])<<8)
				y = e.chain.Process(x)
			}
			dst[produced] = e.applyVolume(y)
			produced++
		}

		e.advancePause(int32(n / bytesPerSample))

		if err != nil {
			if errors.Is(err, io.EOF) {
				e.Stop()
				return produced, io.EOF
			}
			e.lastErr = err
			e.state = StateError
			return produced, err
		}
	}
	return produced, nil
}

func (e *Engine) applyVolume(y int16) int16 {
	if e.volMult == fixed.One {
		return y
	}
	return fixed.Sat16(fixed.MulWide(e.volMult, int64(y)))
}

func (e *Engine) advancePause(samples int32) {
	if e.state != StatePausing {
		return
	}
	e.pauseLeft -= samples
	if e.pauseLeft <= 0 {
		e.pauseLeft = 0
		e.state = StatePaused
	}
}
