// Package chain wires the individual filter stages into the per-sample
// processing pipeline and owns their state.
//
// Stage order is fixed: DC blocking, low-pass (the biquad on the 16-bit path,
// the one-pole plus dither on the 8-bit path), air shelf, fade envelope,
// noise gate, soft clipper. Configuration changes arrive from a control
// context and are latched at a sample boundary, so the processing context
// never observes a half-applied configuration.
package chain

import (
	"fmt"
	"sync/atomic"

	"github.com/jennydigital/chime-dsp/dsp/clip"
	"github.com/jennydigital/chime-dsp/dsp/core"
	"github.com/jennydigital/chime-dsp/dsp/dither"
	"github.com/jennydigital/chime-dsp/dsp/envelope"
	"github.com/jennydigital/chime-dsp/dsp/filter/biquad"
	"github.com/jennydigital/chime-dsp/dsp/filter/dcblock"
	"github.com/jennydigital/chime-dsp/dsp/filter/onepole"
	"github.com/jennydigital/chime-dsp/dsp/filter/shelf"
	"github.com/jennydigital/chime-dsp/dsp/fixed"
	"github.com/jennydigital/chime-dsp/dsp/gate"
)

// BitDepth selects which low-pass path a playback session uses. The routing
// is fixed per session, never re-evaluated per sample.
type BitDepth int

const (
	Depth16 BitDepth = iota
	Depth8

	bitDepthCount // sentinel for validation
)

var bitDepthNames = [bitDepthCount]string{"16-bit", "8-bit"}

// String returns the name of the bit depth.
func (d BitDepth) String() string {
	if d >= 0 && d < bitDepthCount {
		return bitDepthNames[d]
	}
	return fmt.Sprintf("BitDepth(%d)", d)
}

// Valid reports whether d is a known bit depth.
func (d BitDepth) Valid() bool {
	return d >= 0 && d < bitDepthCount
}

// Config aggregates every runtime-adjustable chain setting. It is a plain
// value: the control context fills one in and hands it to Configure, which
// validates and publishes it for the processing context to latch.
type Config struct {
	Depth BitDepth

	DCVariant dcblock.Variant

	// LowPassEnabled gates the biquad/one-pole stage; DC blocking always
	// runs.
	LowPassEnabled bool
	Level16        core.Level
	// CustomAlpha16 supplies the biquad coefficient when Level16 is
	// LevelCustom; ignored otherwise.
	CustomAlpha16 fixed.Q16
	Level8        core.Level
	// MakeupGain8 is the one-pole path's post-filter gain; zero selects the
	// default.
	MakeupGain8 fixed.Q16

	AirEnabled bool
	AirGainDB  float64

	GateEnabled bool
	ClipEnabled bool

	// WarmUpPasses is how many times WarmUp feeds the first sample through
	// the biquad; zero selects the default.
	WarmUpPasses int

	// FadeLength is the fade window in samples; zero selects the default.
	FadeLength int32

	// ReseedDither makes ResetAll return the dither generator to its fixed
	// seed, reproducing the exact noise sequence each session.
	ReseedDither bool
}

// DefaultConfig mirrors the power-on settings of the chime hardware: 16-bit
// path, soft DC blocking, soft low-pass, clipper on, air and gate off.
func DefaultConfig() Config {
	return Config{
		Depth:          Depth16,
		DCVariant:      dcblock.VariantSoft,
		LowPassEnabled: true,
		Level16:        core.LevelSoft,
		Level8:         core.LevelSoft,
		ClipEnabled:    true,
		AirGainDB:      shelf.PresetHigh.DB(),
	}
}

// Validate reports whether the configuration can be applied.
func (c Config) Validate() error {
	if !c.Depth.Valid() {
		return fmt.Errorf("chain: invalid bit depth: %d", int(c.Depth))
	}
	if !c.DCVariant.Valid() {
		return fmt.Errorf("chain: invalid DC variant: %d", int(c.DCVariant))
	}
	if !c.Level16.Valid() {
		return fmt.Errorf("chain: invalid 16-bit level: %d", int(c.Level16))
	}
	if c.Level16 == core.LevelCustom && c.CustomAlpha16 == 0 {
		return fmt.Errorf("chain: custom 16-bit level requires CustomAlpha16")
	}
	if !c.Level8.Valid() || c.Level8 == core.LevelCustom {
		return fmt.Errorf("chain: invalid 8-bit level: %d", int(c.Level8))
	}
	if c.WarmUpPasses < 0 {
		return fmt.Errorf("chain: negative warm-up passes: %d", c.WarmUpPasses)
	}
	if c.FadeLength < 0 {
		return fmt.Errorf("chain: negative fade length: %d", c.FadeLength)
	}
	return nil
}

// Fade trigger opcodes handed from the control context.
const (
	fadeOpNone int32 = iota
	fadeOpIn
	fadeOpOut
)

// Chain owns one instance of every stage and sequences them per sample.
//
// Concurrency contract: Process, Process8, ResetAll and WarmUp belong to a
// single processing goroutine. Configure, TriggerFadeIn and TriggerFadeOut
// may be called from one control goroutine; their effects are latched at the
// next sample boundary.
type Chain struct {
	dc    *dcblock.Filter
	lp16  *biquad.LowPass
	lp8   *onepole.Filter
	noise *dither.Generator
	air   *shelf.Filter
	fade  *envelope.Fade
	gate  *gate.Gate

	cfg     Config
	pending atomic.Pointer[Config]
	fadeOp  atomic.Int32
}

// New builds a chain from the given configuration.
func New(cfg Config) (*Chain, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dc, err := dcblock.New(cfg.DCVariant)
	if err != nil {
		return nil, err
	}
	lp16, err := biquad.New(core.LevelSoft)
	if err != nil {
		return nil, err
	}
	lp8, err := onepole.New(core.LevelSoft)
	if err != nil {
		return nil, err
	}

	c := &Chain{
		dc:    dc,
		lp16:  lp16,
		lp8:   lp8,
		noise: dither.New(),
		air:   shelf.New(),
		fade:  envelope.New(),
		gate:  gate.New(false),
	}
	c.apply(cfg)
	return c, nil
}

// Configure validates cfg and publishes it for the processing context, which
// picks it up at its next sample boundary. Safe to call from the control
// context while samples are flowing.
func (c *Chain) Configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.pending.Store(&cfg)
	return nil
}

// TriggerFadeIn requests a fade-in at the next sample boundary. The request
// is dropped if a fade is already in flight.
func (c *Chain) TriggerFadeIn() { c.fadeOp.Store(fadeOpIn) }

// TriggerFadeOut requests a fade-out at the next sample boundary. The
// request is dropped if a fade is already in flight.
func (c *Chain) TriggerFadeOut() { c.fadeOp.Store(fadeOpOut) }

// Config returns the active configuration as of the last latch.
func (c *Chain) Config() Config { return c.cfg }

// latch applies any pending configuration and fade trigger. Runs in the
// processing context, between samples.
func (c *Chain) latch() {
	if p := c.pending.Swap(nil); p != nil {
		c.apply(*p)
	}
	switch c.fadeOp.Swap(fadeOpNone) {
	case fadeOpIn:
		_ = c.fade.StartIn() // in-flight fades are not restartable
	case fadeOpOut:
		_ = c.fade.StartOut()
	}
}

// apply installs a validated configuration into the stages.
func (c *Chain) apply(cfg Config) {
	// Validate has already vetted every enum, so the setters cannot fail.
	_ = c.dc.SetVariant(cfg.DCVariant)
	if cfg.Level16 == core.LevelCustom {
		c.lp16.SetCustomAlpha(cfg.CustomAlpha16)
	} else {
		_ = c.lp16.SetLevel(cfg.Level16)
	}
	_ = c.lp8.SetLevel(cfg.Level8)
	if cfg.MakeupGain8 != 0 {
		c.lp8.SetMakeupGain(cfg.MakeupGain8)
	} else {
		c.lp8.SetMakeupGain(onepole.DefaultMakeupGain)
	}

	c.air.SetGainDB(cfg.AirGainDB)
	c.air.SetEnabled(cfg.AirEnabled)
	c.gate.SetEnabled(cfg.GateEnabled)
	if cfg.FadeLength > 0 {
		_ = c.fade.SetLength(cfg.FadeLength)
	} else {
		_ = c.fade.SetLength(envelope.DefaultLength)
	}

	c.cfg = cfg
}

// Process runs one 16-bit sample through the full stage sequence.
func (c *Chain) Process(x int16) int16 {
	c.latch()

	s := c.dc.ProcessSample(x)
	if c.cfg.LowPassEnabled {
		s = c.lp16.ProcessSample(s)
	}
	s = c.air.ProcessSample(s)
	s = c.fade.Apply(s)
	s = c.gate.ProcessSample(s)
	if c.cfg.ClipEnabled {
		s = clip.Soft(s)
	}
	return s
}

// Process8 runs one unsigned 8-bit sample through the chain. The sample is
// expanded to 16-bit, low-passed by the one-pole section and dithered before
// the shared tail of the pipeline.
func (c *Chain) Process8(x uint8) int16 {
	c.latch()

	s := c.dc.ProcessSample(dither.Expand8(x))
	if c.cfg.LowPassEnabled {
		s = fixed.Sat16(int64(c.lp8.ProcessSample(s)) + int64(c.noise.TPDF()))
	}
	s = c.air.ProcessSample(s)
	s = c.fade.Apply(s)
	s = c.gate.ProcessSample(s)
	if c.cfg.ClipEnabled {
		s = clip.Soft(s)
	}
	return s
}

// ResetAll zeroes every stage's history in one step, so no stage processes
// against stale peers. Idempotent: a second reset leaves identical state.
// Gain, level and enable settings survive; they are configuration.
func (c *Chain) ResetAll() {
	c.latch()
	c.dc.Reset()
	c.lp16.Reset()
	c.lp8.Reset()
	c.noise.Reset(c.cfg.ReseedDither)
	c.air.Reset()
	c.fade.Reset()
}

// WarmUp primes the 16-bit low-pass with the session's first sample so
// playback does not open with a filter-settling crack. Call after ResetAll,
// before the first Process.
func (c *Chain) WarmUp(first int16) {
	c.latch()
	c.lp16.WarmUp(first, c.cfg.WarmUpPasses)
}
