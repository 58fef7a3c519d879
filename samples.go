package quaver

import (
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

// SampleTable maps sample symbols to mono sample data in [-1,1].
type SampleTable map[string][]float64

// LoadSamples decodes every .wav file in dir. Stereo files are mixed to
// mono. Files are not resampled. Each sample is named after its file with
// the extension and spaces removed.
func LoadSamples(dir string) (SampleTable, error) {
	dir, err := homedir.Expand(dir)
	if err != nil {
		return nil, errors.Wrap(err, "expanding sample directory")
	}
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "reading sample directory")
	}
	t := make(SampleTable)
	for _, f := range files {
		name := f.Name()
		if f.IsDir() || !strings.EqualFold(filepath.Ext(name), ".wav") {
			continue
		}
		data, err := decodeWav(filepath.Join(dir, name))
		if err != nil {
			logger.Warningf("skipping %s: %v", name, err)
			continue
		}
		sym := strings.ReplaceAll(strings.TrimSuffix(name, filepath.Ext(name)), " ", "")
		t[sym] = data
		logger.Debugf("loaded sample \\%s: %d frames", sym, len(data))
	}
	return t, nil
}

func decodeWav(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()
	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, errors.Errorf("%s: not a valid wav file", path)
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	if d.BitDepth == 0 || buf.Format == nil || buf.Format.NumChannels == 0 {
		return nil, errors.Errorf("%s: unknown format", path)
	}
	channels := buf.Format.NumChannels
	scale := math.Pow(2, float64(d.BitDepth-1))
	data := make([]float64, len(buf.Data)/channels)
	for i := range data {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += float64(buf.Data[i*channels+c])
		}
		data[i] = sum / float64(channels) / scale
	}
	return data, nil
}
