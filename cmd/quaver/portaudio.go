// portaudio backend
package main

import (
	"context"
	"strings"

	pa "github.com/gordonklaus/portaudio"
	"github.com/pkg/errors"

	"quaver"
)

func playPortaudio(ctx context.Context, e *quaver.Engine) error {
	if err := pa.Initialize(); err != nil {
		return errors.Wrap(err, "unable to set up portaudio")
	}
	defer func() {
		if err := pa.Terminate(); err != nil {
			logger.Warningf("portaudio termination: %v", err)
		}
	}()
	d, err := pa.DefaultOutputDevice()
	if err != nil {
		return errors.Wrap(err, "opening default output via portaudio")
	}
	n, fill := frames(e)
	out := make([]float32, n)
	stream, err := pa.OpenDefaultStream(0, 1, float64(e.SampleRate), n, &out)
	if err != nil {
		return errors.Wrap(err, "opening portaudio stream")
	}
	defer stream.Close()
	if api, err := pa.DefaultHostApi(); err == nil {
		logger.Infof("%s: %s %s at %.f Hz", strings.Split(pa.VersionText(), ",")[0], api.Type, d.Name, stream.Info().SampleRate)
	}

	if err := stream.Start(); err != nil {
		return errors.Wrap(err, "starting portaudio stream")
	}
	defer stream.Stop()
	for ctx.Err() == nil {
		fill(out)
		if err := stream.Write(); err != nil {
			return errors.Wrap(err, "portaudio write")
		}
	}
	return nil
}
