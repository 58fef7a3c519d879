package quaver

import "math"

// Tau is one full cycle in radians.
const Tau = 2 * math.Pi

type waveform func(phase float64) float64

func sine(phase float64) float64 { return math.Sin(Tau * phase) }

func square(phase float64) float64 {
	if phase <= 0.5 {
		return 1
	}
	return -1
}

func triangle(phase float64) float64 {
	return 2 * (math.Abs(2*phase-1) - 0.5)
}

// Osc is a phase-accumulating oscillator. With one input the input buffer
// drives the frequency, sample-and-hold style.
type Osc struct {
	Freq  float64
	Phase float64
	SR    float64
	inc   float64 // held modulation value
	wave  waveform
}

func newOsc(w waveform, freq, sr float64) *Osc {
	return &Osc{Freq: freq, SR: sr, inc: freq, wave: w}
}

// NewSinOsc returns a sine oscillator at freq Hz.
func NewSinOsc(freq, sr float64) *Osc { return newOsc(sine, freq, sr) }

// NewSquOsc returns a square oscillator at freq Hz.
func NewSquOsc(freq, sr float64) *Osc { return newOsc(square, freq, sr) }

// NewTriOsc returns a triangle oscillator at freq Hz.
func NewTriOsc(freq, sr float64) *Osc { return newOsc(triangle, freq, sr) }

func (o *Osc) Process(inputs []*Buffer, output *Buffer) {
	switch len(inputs) {
	case 0:
		for i := range output {
			output[i] = o.wave(o.Phase)
			o.Phase = advance(o.Phase, o.Freq, o.SR)
		}
	case 1:
		mod := inputs[0]
		for i := range output {
			o.inc = hold(o.inc, mod[i])
			output[i] = o.wave(o.Phase)
			o.Phase = advance(o.Phase, o.inc, o.SR)
		}
	}
}

func (o *Osc) SetParam(p Param) {
	switch p.Index {
	case 0:
		o.Freq = p.Value
	}
}

// Impulse emits 1 on the first sample of every cycle and 0 elsewhere.
type Impulse struct {
	Freq  float64
	Phase float64
	SR    float64
	inc   float64
	fire  bool
}

func NewImpulse(freq, sr float64) *Impulse {
	return &Impulse{Freq: freq, SR: sr, inc: freq, fire: true}
}

func (m *Impulse) step(inc float64) float64 {
	v := 0.0
	if m.fire {
		v, m.fire = 1, false
	}
	m.Phase += inc / m.SR
	if m.Phase > 1 {
		m.Phase -= 1
		m.fire = true
	}
	return v
}

func (m *Impulse) Process(inputs []*Buffer, output *Buffer) {
	switch len(inputs) {
	case 0:
		for i := range output {
			output[i] = m.step(m.Freq)
		}
	case 1:
		mod := inputs[0]
		for i := range output {
			m.inc = hold(m.inc, mod[i])
			output[i] = m.step(m.inc)
		}
	}
}

func (m *Impulse) SetParam(p Param) {
	if p.Index == 0 {
		m.Freq = p.Value
	}
}
