package quaver

import (
	"math"
	"sync/atomic"

	"github.com/juju/loggo"
	"github.com/pkg/errors"
)

var logger = loggo.GetLogger("quaver")

// Config holds the engine's plain settings.
type Config struct {
	SampleRate int
	BPM        float64
}

// DefaultConfig is 44.1kHz at 120 beats per minute.
var DefaultConfig = Config{SampleRate: 44100, BPM: 120}

// BarSamples is the length of one bar of four beats, the period at which a
// deferred recompile may take place. A loop cycle lasts one bar.
func (c Config) BarSamples() int {
	return int(math.Round(4 * 60 * float64(c.SampleRate) / c.BPM))
}

// Engine owns a graph compiled from patch text and advances it frame by
// frame. Generation methods must be called from a single goroutine; SetCode
// may be called from any goroutine.
type Engine struct {
	Config
	Samples SampleTable

	elapsed  int
	code     string
	pending  atomic.Pointer[string]
	graph    *Graph // playing
	spare    *Graph // compile target, swapped in on success
	compiled bool
}

// NewEngine returns an engine with empty patch text.
func NewEngine(cfg Config, samples SampleTable) *Engine {
	if cfg.SampleRate == 0 {
		cfg.SampleRate = DefaultConfig.SampleRate
	}
	if cfg.BPM == 0 {
		cfg.BPM = DefaultConfig.BPM
	}
	return &Engine{
		Config:  cfg,
		Samples: samples,
		graph:   NewGraph(),
		spare:   NewGraph(),
	}
}

// SetCode replaces the patch text. The new text is picked up at the next
// recompile point.
func (e *Engine) SetCode(code string) {
	e.pending.Store(&code)
}

// Pending reports whether new patch text is waiting to be compiled.
func (e *Engine) Pending() bool {
	return e.pending.Load() != nil
}

// Code returns the patch text the engine is compiling from.
func (e *Engine) Code() string { return e.code }

// Elapsed returns the number of samples generated so far.
func (e *Engine) Elapsed() int { return e.elapsed }

// Graph returns the graph currently playing. It is replaced wholesale on
// every successful recompile.
func (e *Engine) Graph() *Graph { return e.graph }

func (e *Engine) compiler() *Compiler {
	return &Compiler{
		SampleRate:   float64(e.SampleRate),
		CycleSamples: float64(e.BarSamples()),
		Samples:      e.Samples,
	}
}

// adopt takes pending text, if any, as the current code.
func (e *Engine) adopt() {
	if p := e.pending.Swap(nil); p != nil {
		e.code = *p
	}
}

// recompile rebuilds the whole graph from the current code. On failure the
// previous graph keeps playing and reporting the error is left to the caller.
func (e *Engine) recompile() error {
	e.spare.Clear()
	if err := e.compiler().CompileText(e.code, e.spare); err != nil {
		e.spare.Clear()
		return errors.Wrap(err, "compiling patch")
	}
	e.graph, e.spare = e.spare, e.graph
	e.spare.Clear()
	e.compiled = true
	logger.Debugf("compiled %d nodes, %d edges at sample %d", e.graph.Len(), len(e.graph.Edges()), e.elapsed)
	if logger.IsTraceEnabled() {
		logger.Tracef("graph:\n%s", e.graph.Listing())
	}
	return nil
}

// nearBarEnd reports whether the next large frame ends past a bar boundary,
// or the clock sits exactly on one. Stepping by large frames, this holds for
// exactly one frame per bar.
func (e *Engine) nearBarEnd() bool {
	bar := e.BarSamples()
	d := bar - e.elapsed%bar
	return d < LargeFrameSize || d == bar
}

// mix processes every sink once and sums their frames into out.
func (e *Engine) mix(out []float64) error {
	g := e.graph
	return g.Names.Sinks(func(name string, id NodeID) error {
		if err := g.Process(id); err != nil {
			return errors.Wrapf(err, "sink %s", name)
		}
		b := g.Buffer(id)
		for i := range out {
			out[i] += b[i]
		}
		return nil
	})
}

// GenerateSmall recompiles the patch and produces one small frame. A
// compile error is returned alongside the frame played by the previous
// graph.
func (e *Engine) GenerateSmall() (out [FrameSize]float64, err error) {
	e.adopt()
	err = e.recompile()
	if merr := e.mix(out[:]); merr != nil && err == nil {
		err = merr
	}
	e.elapsed += FrameSize
	return out, err
}

// GenerateLarge produces one large frame as two successive sub-windows.
// The graph is rebuilt only when new code is pending and the clock is about
// to cross a bar boundary, or when nothing has been compiled yet.
func (e *Engine) GenerateLarge() (out [LargeFrameSize]float64, err error) {
	if e.Pending() && (e.nearBarEnd() || !e.compiled) {
		e.adopt()
		err = e.recompile()
	}
	for w := 0; w < LargeFrameSize; w += FrameSize {
		if merr := e.mix(out[w : w+FrameSize]); merr != nil && err == nil {
			err = merr
		}
	}
	e.elapsed += LargeFrameSize
	return out, err
}

// WriteLarge fills out with the next large frame. out must hold at least
// LargeFrameSize samples. Errors are logged; the frame is written regardless.
func (e *Engine) WriteLarge(out []float32) {
	frame, err := e.GenerateLarge()
	if err != nil {
		logger.Errorf("%v", err)
	}
	for i := range frame {
		out[i] = float32(frame[i])
	}
}

// Send delivers an out-of-band parameter update to the node bound to name.
func (e *Engine) Send(name string, p Param) error {
	id, ok := e.graph.Names.Lookup(name)
	if !ok {
		return errors.Wrapf(ErrUnresolved, "send to %s", name)
	}
	e.graph.Unit(id).SetParam(p)
	return nil
}
