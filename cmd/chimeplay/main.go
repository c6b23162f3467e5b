// Command chimeplay synthesizes a two-tone chime, runs it through the
// processing chain and plays it on the default audio output.
//
// Examples:
//
//	chimeplay
//	chimeplay --level aggressive --gate
//	chimeplay --air --volume 180 --duration 2.5s
package main

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/ebitengine/oto/v3"

	"github.com/jennydigital/chime-dsp/dsp/chain"
	"github.com/jennydigital/chime-dsp/dsp/core"
	"github.com/jennydigital/chime-dsp/playback"
)

type cli struct {
	Rate     int           `default:"22000" help:"Sample rate in Hz."`
	Duration time.Duration `default:"2s" help:"Chime length."`
	High     float64       `default:"880" help:"First strike frequency in Hz."`
	Low      float64       `default:"659" help:"Second strike frequency in Hz."`
	Level    string        `default:"soft" enum:"verysoft,soft,medium,firm,aggressive" help:"Low-pass aggressiveness."`
	Air      bool          `help:"Enable the air shelf."`
	AirDB    float64       `default:"3" help:"Air shelf boost in dB."`
	Gate     bool          `help:"Enable the noise gate."`
	Volume   uint8         `default:"255" help:"Output volume, 0-255."`
	Curve    float64       `default:"2" help:"Volume curve exponent, 1-4."`
	PCM      string        `type:"existingfile" optional:"" help:"Play a raw PCM file instead of the synthesized chime."`
	Bits     int           `default:"16" enum:"8,16" help:"Sample width of the raw PCM file."`
}

func main() {
	c := &cli{}
	ctx := kong.Parse(c,
		kong.Name("chimeplay"),
		kong.Description("Chime synthesis and playback demo"),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(run(c))
}

func run(c *cli) error {
	cfg := chain.DefaultConfig()
	cfg.Level16 = parseLevel(c.Level)
	cfg.AirEnabled = c.Air
	cfg.AirGainDB = c.AirDB
	cfg.GateEnabled = c.Gate

	ch, err := chain.New(cfg)
	if err != nil {
		return err
	}

	engine := playback.NewEngine(ch)
	engine.SetVolume(c.Volume)
	engine.SetVolumeCurve(c.Curve)

	src, err := makeSource(c)
	if err != nil {
		return err
	}
	if err := engine.Start(src); err != nil {
		return err
	}

	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   c.Rate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return fmt.Errorf("chimeplay: audio context: %w", err)
	}
	<-ready

	player := otoCtx.NewPlayer(playback.NewPCMReader(engine, 2))
	player.Play()
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	return player.Close()
}

func makeSource(c *cli) (*playback.BufferSource, error) {
	if c.PCM == "" {
		return playback.NewSampleSource(synthesize(c), c.Rate)
	}
	data, err := os.ReadFile(c.PCM)
	if err != nil {
		return nil, err
	}
	depth := chain.Depth16
	if c.Bits == 8 {
		depth = chain.Depth8
	}
	return playback.NewBufferSource(data, c.Rate, depth)
}

func parseLevel(s string) core.Level {
	for _, level := range core.Presets() {
		if strings.EqualFold(level.String(), s) {
			return level
		}
	}
	return core.LevelSoft
}

// synthesize renders a simple two-strike chime: a high tone, then a lower
// one starting halfway through, both with exponentially decaying envelopes
// and a touch of second harmonic for body.
func synthesize(c *cli) []int16 {
	n := int(float64(c.Rate) * c.Duration.Seconds())
	out := make([]int16, n)

	strike := func(freq float64, start int, amp float64) {
		decay := 3.0 / float64(n-start)
		for i := start; i < n; i++ {
			t := float64(i-start) / float64(c.Rate)
			env := amp * math.Exp(-decay*float64(i-start))
			v := env * (math.Sin(2*math.Pi*freq*t) +
				0.3*math.Sin(4*math.Pi*freq*t))
			out[i] = clampAdd(out[i], v)
		}
	}

	strike(c.High, 0, 11000)
	strike(c.Low, n/2, 11000)
	return out
}

func clampAdd(s int16, v float64) int16 {
	sum := float64(s) + v
	if sum > 32767 {
		sum = 32767
	}
	if sum < -32768 {
		sum = -32768
	}
	return int16(sum)
}
