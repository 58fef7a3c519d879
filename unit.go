// Package quaver is a live-codable audio engine: patch text is compiled into
// a graph of audio-rate units which is advanced one frame at a time.
package quaver

const (
	FrameSize      = 64            // samples per sub-window (S)
	LargeFrameSize = 2 * FrameSize // samples per large frame (L)
)

// Buffer holds one frame of samples.
type Buffer [FrameSize]float64

// Param is an out-of-band control message. Index selects the field a unit
// updates; unknown indices are ignored.
type Param struct {
	Index int
	Value float64
}

// A Unit computes one frame of output from zero or more input frames.
//
// Process is called with the input buffers in edge arrival order. Units
// support 0 inputs (free running) and 1 input (modulated); any other arity
// leaves output untouched unless the unit documents otherwise.
type Unit interface {
	Process(inputs []*Buffer, output *Buffer)
	SetParam(p Param)
}

// hold implements the modulation convention shared by the oscillators: a
// sample of exactly zero carries no new value.
func hold(last, v float64) float64 {
	if v != 0 {
		return v
	}
	return last
}

// advance moves a phase accumulator on by one sample.
func advance(phase, inc, sr float64) float64 {
	phase += inc / sr
	if phase > 1 {
		phase -= 1
	}
	return phase
}
