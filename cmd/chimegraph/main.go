// Command chimegraph inspects the processing chain from the command line:
// it prints the filter level tables and measures the frequency response of a
// configured chain.
//
// Examples:
//
//	chimegraph levels
//	chimegraph response --level aggressive
//	chimegraph response --depth 8 --air --points 16
package main

import (
	"fmt"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/alecthomas/kong"

	"github.com/jennydigital/chime-dsp/dsp/chain"
	"github.com/jennydigital/chime-dsp/dsp/core"
	"github.com/jennydigital/chime-dsp/dsp/filter/biquad"
	"github.com/jennydigital/chime-dsp/dsp/filter/onepole"
	"github.com/jennydigital/chime-dsp/measure/response"
)

type cli struct {
	Rate float64 `default:"22000" help:"Sample rate in Hz."`

	Levels   levelsCmd   `cmd:"" help:"Print the low-pass level tables."`
	Response responseCmd `cmd:"" help:"Measure the response of a configured chain."`
}

type levelsCmd struct{}

type responseCmd struct {
	Level  string  `default:"soft" enum:"verysoft,soft,medium,firm,aggressive" help:"Low-pass aggressiveness."`
	Depth  int     `default:"16" enum:"8,16" help:"Sample path bit depth."`
	Air    bool    `help:"Enable the air shelf."`
	AirDB  float64 `default:"3" help:"Air shelf boost in dB."`
	NoLP   bool    `help:"Disable the low-pass stage."`
	Points int     `default:"24" help:"Number of log-spaced measurement points."`
}

func main() {
	c := &cli{}
	ctx := kong.Parse(c,
		kong.Name("chimegraph"),
		kong.Description("Filter chain inspection tool"),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run(c))
}

func (l *levelsCmd) Run(c *cli) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "16-BIT BIQUAD LOW-PASS")
	fmt.Fprintln(w, "Level\tAlpha\tAlpha (real)\tCutoff (-3 dB)")
	for _, level := range core.Presets() {
		f, err := biquad.New(level)
		if err != nil {
			return err
		}
		alpha := f.Alpha()
		fmt.Fprintf(w, "%s\t%d\t%.4f\t%.0f Hz\n",
			level, alpha, alpha.Float(), f.CutoffHz(c.Rate))
	}

	fmt.Fprintln(w, "\n8-BIT ONE-POLE LOW-PASS")
	fmt.Fprintln(w, "Level\tAlpha\tAlpha (real)\tCutoff (approx)")
	for _, level := range core.Presets() {
		alpha, err := onepole.AlphaForLevel(level)
		if err != nil {
			return err
		}
		// Pole at 1-alpha, so the corner is -ln(1-alpha)*fs/(2*pi).
		fc := -math.Log(1-alpha.Float()) * c.Rate / (2 * math.Pi)
		fmt.Fprintf(w, "%s\t%d\t%.4f\t%.0f Hz\n", level, alpha, alpha.Float(), fc)
	}

	return w.Flush()
}

func parseLevel(s string) core.Level {
	for _, level := range core.Presets() {
		if strings.EqualFold(level.String(), s) {
			return level
		}
	}
	return core.LevelSoft
}

func (r *responseCmd) Run(c *cli) error {
	cfg := chain.DefaultConfig()
	cfg.Level16 = parseLevel(r.Level)
	cfg.Level8 = parseLevel(r.Level)
	cfg.LowPassEnabled = !r.NoLP
	cfg.AirEnabled = r.Air
	cfg.AirGainDB = r.AirDB
	cfg.ClipEnabled = false // keep the measurement linear
	if r.Depth == 8 {
		cfg.Depth = chain.Depth8
	}

	ch, err := chain.New(cfg)
	if err != nil {
		return err
	}
	ch.ResetAll()

	proc := response.Func(ch.Process)
	if r.Depth == 8 {
		// Excite the 8-bit path through its native upconversion.
		proc = func(x int16) int16 {
			return ch.Process8(uint8(x>>8) + 128)
		}
	}

	res, err := response.Measure(proc, response.Config{
		SampleRateHz: c.Rate,
		FFTSize:      8192,
	})
	if err != nil {
		return err
	}

	if r.Points < 2 {
		r.Points = 2
	}
	lo, hi := 20.0, c.Rate/2
	ratio := math.Pow(hi/lo, 1/float64(r.Points-1))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Chain response, level=%s depth=%d-bit air=%v\n", r.Level, r.Depth, r.Air)
	fmt.Fprintln(w, "Frequency\tMagnitude")
	freq := lo
	for range r.Points {
		fmt.Fprintf(w, "%.0f Hz\t%+.2f dB\n", freq, res.DBAt(freq))
		freq *= ratio
	}
	return w.Flush()
}
