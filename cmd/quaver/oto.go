package main

import (
	"context"
	"encoding/binary"
	"math"

	"github.com/ebitengine/oto/v3"
	"github.com/pkg/errors"

	"quaver"
)

// frameReader presents engine frames as little-endian float32 PCM. It is
// read from oto's own goroutine only.
type frameReader struct {
	fill  func([]float32)
	frame []float32
	pos   int
}

func newFrameReader(n int, fill func([]float32)) *frameReader {
	return &frameReader{fill: fill, frame: make([]float32, n), pos: n}
}

func (r *frameReader) Read(p []byte) (int, error) {
	n := len(p) / 4
	for i := 0; i < n; i++ {
		if r.pos == len(r.frame) {
			r.fill(r.frame)
			r.pos = 0
		}
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(r.frame[r.pos]))
		r.pos++
	}
	return n * 4, nil
}

func playOto(ctx context.Context, e *quaver.Engine) error {
	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   e.SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return errors.Wrap(err, "opening oto context")
	}
	<-ready
	player := otoCtx.NewPlayer(newFrameReader(frames(e)))
	player.Play()
	logger.Infof("oto output at %d Hz", e.SampleRate)
	<-ctx.Done()
	return errors.Wrap(player.Close(), "closing oto player")
}
