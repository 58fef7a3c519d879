// The quaver command plays a patch file, reloading it whenever it changes.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	flag "github.com/juju/gnuflag"
	"github.com/juju/loggo"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"quaver"
)

var (
	sampleRate = flag.Int("sr", quaver.DefaultConfig.SampleRate, "sample rate in Hz")
	bpm        = flag.Float64("bpm", quaver.DefaultConfig.BPM, "tempo; one loop cycle lasts four beats")
	sampleDir  = flag.String("samples", "~/.quaver/samples", "directory of .wav files available as \\name")
	backend    = flag.String("backend", "portaudio", "audio output: portaudio, oto or wav")
	outFile    = flag.String("out", "quaver.wav", "output file for the wav backend")
	seconds    = flag.Float64("seconds", 10, "length rendered by the wav backend")
	small      = flag.Bool("small", false, "generate small frames, rebuilding the patch every frame")
	logConfig  = flag.String("log", "<root>=INFO", "logging configuration")
)

var logger = loggo.GetLogger("quaver.cmd")

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `
Usage: quaver [flags] patch

Quaver plays the audio graph described by the patch file. Edits to the
file take effect at the next bar.
`[1:])
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse(true)
	if flag.NArg() != 1 {
		flag.Usage()
	}
	if err := loggo.ConfigureLoggers(*logConfig); err != nil {
		fmt.Fprintf(os.Stderr, "quaver: %v\n", err)
		os.Exit(2)
	}
	if err := run(flag.Arg(0)); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(patch string) error {
	samples, err := quaver.LoadSamples(*sampleDir)
	if err != nil {
		logger.Warningf("no samples loaded: %v", err)
	}
	e := quaver.NewEngine(quaver.Config{SampleRate: *sampleRate, BPM: *bpm}, samples)
	code, err := os.ReadFile(patch)
	if err != nil {
		return errors.Wrap(err, "reading patch")
	}
	e.SetCode(string(code))

	if *backend == "wav" {
		return renderWav(e)
	}
	var play func(context.Context, *quaver.Engine) error
	switch *backend {
	case "portaudio":
		play = playPortaudio
	case "oto":
		play = playOto
	default:
		return errors.Errorf("unknown backend %q", *backend)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return watch(gctx, patch, e) })
	g.Go(func() error { return play(gctx, e) })
	return g.Wait()
}

// frames returns the output frame length and a function that fills one
// frame from e.
func frames(e *quaver.Engine) (int, func([]float32)) {
	if !*small {
		return quaver.LargeFrameSize, e.WriteLarge
	}
	var last string
	return quaver.FrameSize, func(out []float32) {
		frame, err := e.GenerateSmall()
		// the patch is rebuilt every frame, so report each failure once
		if err != nil && err.Error() != last {
			logger.Errorf("%v", err)
		}
		last = ""
		if err != nil {
			last = err.Error()
		}
		for i, v := range frame {
			out[i] = float32(v)
		}
	}
}

func renderWav(e *quaver.Engine) error {
	f, err := os.Create(*outFile)
	if err != nil {
		return errors.WithStack(err)
	}
	n := int(*seconds*float64(e.SampleRate)) / quaver.LargeFrameSize
	if err := quaver.Render(f, e, n); err != nil {
		f.Close()
		return err
	}
	logger.Infof("wrote %d samples to %s", n*quaver.LargeFrameSize, *outFile)
	return errors.WithStack(f.Close())
}
