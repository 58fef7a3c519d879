package quaver

import (
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"
)

// Render writes frames large frames from e to w as a 16-bit mono wav file.
// Compile errors are logged and rendering continues with the graph that is
// playing.
func Render(w io.WriteSeeker, e *Engine, frames int) error {
	enc := wav.NewEncoder(w, e.SampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: e.SampleRate},
		Data:           make([]int, LargeFrameSize),
		SourceBitDepth: 16,
	}
	for i := 0; i < frames; i++ {
		frame, err := e.GenerateLarge()
		if err != nil {
			logger.Errorf("%v", err)
		}
		for j, v := range frame {
			buf.Data[j] = int(math.Round(clip(v) * math.MaxInt16))
		}
		if err := enc.Write(buf); err != nil {
			return errors.Wrap(err, "writing wav")
		}
	}
	return errors.Wrap(enc.Close(), "closing wav")
}

// clip limits v to [-1,1]
func clip(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	}
	return v
}
