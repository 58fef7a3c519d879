package quaver

import (
	"math"
	"testing"

	qt "github.com/frankban/quicktest"
)

const sr = 44100

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestOscPhaseAccumulates(t *testing.T) {
	c := qt.New(t)
	for _, freq := range []float64{100, 440, 3000, 0} {
		o := NewSinOsc(freq, sr)
		var out Buffer
		const frames = 16
		for i := 0; i < frames; i++ {
			o.Process(nil, &out)
		}
		k := float64(frames * FrameSize)
		want := math.Mod(k*freq/sr, 1)
		c.Check(approx(o.Phase, want), qt.IsTrue, qt.Commentf("freq %g: phase %g, want %g", freq, o.Phase, want))
	}
}

// At sr/64 Hz the phase steps by exactly 1/64.
var waveTests = []struct {
	name string
	osc  func(freq, sr float64) *Osc
	want func(i int) float64
}{{
	name: "square",
	osc:  NewSquOsc,
	want: func(i int) float64 {
		if i <= 32 {
			return 1
		}
		return -1
	},
}, {
	name: "triangle",
	osc:  NewTriOsc,
	want: func(i int) float64 {
		return 2 * (math.Abs(2*float64(i)/64-1) - 0.5)
	},
}, {
	name: "sine",
	osc:  NewSinOsc,
	want: func(i int) float64 {
		return math.Sin(Tau * float64(i) / 64)
	},
}}

func TestWaveforms(t *testing.T) {
	c := qt.New(t)
	for _, test := range waveTests {
		c.Run(test.name, func(c *qt.C) {
			o := test.osc(sr/64.0, sr)
			var out Buffer
			o.Process(nil, &out)
			for i, v := range out {
				c.Assert(approx(v, test.want(i)), qt.IsTrue, qt.Commentf("sample %d: got %g want %g", i, v, test.want(i)))
			}
		})
	}
}

func TestOscWrapsBySubtraction(t *testing.T) {
	c := qt.New(t)
	o := NewSquOsc(sr/64.0, sr)
	var out Buffer
	o.Process(nil, &out)
	// 64 steps of 1/64 land on exactly 1, which does not exceed 1.
	c.Assert(o.Phase, qt.Equals, 1.0)
	o.Process(nil, &out)
	c.Assert(out[0], qt.Equals, -1.0)
	c.Assert(out[1], qt.Equals, 1.0)
	c.Assert(o.Phase, qt.Equals, 1.0)
}

func TestModulationSampleAndHold(t *testing.T) {
	c := qt.New(t)
	var mod Buffer
	for i := range mod {
		if i%3 == 0 {
			mod[i] = float64(100 * (i + 1))
		}
	}
	o := NewTriOsc(0, sr)
	var out Buffer
	o.Process([]*Buffer{&mod}, &out)

	phase, inc := 0.0, 0.0
	for i := range mod {
		if mod[i] != 0 {
			inc = mod[i]
		}
		c.Assert(approx(out[i], triangle(phase)), qt.IsTrue, qt.Commentf("sample %d", i))
		phase += inc / sr
		if phase > 1 {
			phase--
		}
	}
	c.Assert(approx(o.Phase, phase), qt.IsTrue)
	c.Assert(o.inc, qt.Equals, mod[63])
}

func TestModulationHoldsLiteralUntilFirstValue(t *testing.T) {
	c := qt.New(t)
	o := NewSinOsc(441, sr)
	var mod, out Buffer
	o.Process([]*Buffer{&mod}, &out)
	c.Assert(approx(o.Phase, 64*441.0/sr), qt.IsTrue)
}

func TestUnsupportedArityWritesNothing(t *testing.T) {
	c := qt.New(t)
	units := map[string]Unit{
		"sin":     NewSinOsc(440, sr),
		"imp":     NewImpulse(2, sr),
		"env":     NewEnvPerc(0.1, 0.1, sr),
		"sampler": NewSampler([]float64{1}),
		"loop":    NewSequencer([]Event{{0, 1}}, 100),
		"speed":   &Speed{Value: 1},
	}
	var a, b Buffer
	for name, u := range units {
		out := Buffer{0: 7, 63: 7}
		u.Process([]*Buffer{&a, &b}, &out)
		c.Check(out, qt.Equals, Buffer{0: 7, 63: 7}, qt.Commentf("%s", name))
	}
}

func TestOscSetParam(t *testing.T) {
	c := qt.New(t)
	o := NewSinOsc(440, sr)
	o.SetParam(Param{Index: 0, Value: 220})
	c.Assert(o.Freq, qt.Equals, 220.0)
	o.SetParam(Param{Index: 9, Value: 1})
	c.Assert(o.Freq, qt.Equals, 220.0)
}

func TestImpulse(t *testing.T) {
	c := qt.New(t)
	m := NewImpulse(sr/64.0, sr)
	var out [2]Buffer
	m.Process(nil, &out[0])
	m.Process(nil, &out[1])
	var fired []int
	for i, v := range append(out[0][:], out[1][:]...) {
		if v != 0 {
			c.Assert(v, qt.Equals, 1.0)
			fired = append(fired, i)
		}
	}
	// the phase sits on exactly 1 for one sample before wrapping
	c.Assert(fired, qt.DeepEquals, []int{0, 65})
}
