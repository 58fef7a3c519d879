package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"quaver"
)

// watch hands the patch file to e every time it is written. The directory
// is watched rather than the file so that editors which replace the file
// on save are followed.
func watch(ctx context.Context, path string, e *quaver.Engine) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating watcher")
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(path)); err != nil {
		return errors.Wrapf(err, "watching %s", path)
	}
	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			code, err := os.ReadFile(path)
			if err != nil {
				logger.Warningf("rereading patch: %v", err)
				continue
			}
			e.SetCode(string(code))
			logger.Infof("%s changed", path)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warningf("watch: %v", err)
		}
	}
}
