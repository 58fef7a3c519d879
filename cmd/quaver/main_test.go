package main

import (
	"context"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"quaver"
)

func TestFrameReader(t *testing.T) {
	c := qt.New(t)
	var calls int
	r := newFrameReader(2, func(out []float32) {
		calls++
		out[0], out[1] = float32(calls), -float32(calls)
	})
	p := make([]byte, 4*5)
	n, err := r.Read(p)
	c.Assert(err, qt.IsNil)
	c.Assert(n, qt.Equals, len(p))
	c.Assert(calls, qt.Equals, 3)
	var got []float32
	for i := 0; i < 5; i++ {
		got = append(got, math.Float32frombits(binary.LittleEndian.Uint32(p[i*4:])))
	}
	c.Assert(got, qt.DeepEquals, []float32{1, -1, 2, -2, 3})

	// the rest of a frame is kept for the next read
	n, err = r.Read(p[:4])
	c.Assert(err, qt.IsNil)
	c.Assert(n, qt.Equals, 4)
	c.Assert(math.Float32frombits(binary.LittleEndian.Uint32(p)), qt.Equals, float32(-3))
}

func TestFrames(t *testing.T) {
	c := qt.New(t)
	e := quaver.NewEngine(quaver.Config{}, nil)
	e.SetCode("~a: add(0.5)")

	n, fill := frames(e)
	c.Assert(n, qt.Equals, quaver.LargeFrameSize)
	out := make([]float32, n)
	fill(out)
	c.Assert(out[n-1], qt.Equals, float32(0.5))

	c.Patch(small, true)
	n, fill = frames(e)
	c.Assert(n, qt.Equals, quaver.FrameSize)
	fill(out[:n])
	c.Assert(out[0], qt.Equals, float32(0.5))
}

func TestWatch(t *testing.T) {
	c := qt.New(t)
	path := filepath.Join(c.TempDir(), "patch.q")
	c.Assert(os.WriteFile(path, []byte("sin(1)"), 0o644), qt.IsNil)
	e := quaver.NewEngine(quaver.Config{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- watch(ctx, path, e) }()

	// the watcher may not be registered before the first save; saving by
	// rename means it never sees a half-written file
	tmp := path + ".tmp"
	deadline := time.Now().Add(5 * time.Second)
	for !e.Pending() {
		if time.Now().After(deadline) {
			c.Fatalf("patch change not seen")
		}
		c.Assert(os.WriteFile(tmp, []byte("sin(2)"), 0o644), qt.IsNil)
		c.Assert(os.Rename(tmp, path), qt.IsNil)
		time.Sleep(20 * time.Millisecond)
	}
	cancel()
	c.Assert(<-done, qt.IsNil)

	frame, err := e.GenerateSmall()
	c.Assert(err, qt.IsNil)
	c.Assert(e.Code(), qt.Equals, "sin(2)")
	c.Assert(frame[1] > 0, qt.IsTrue)
}
