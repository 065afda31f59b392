package filewatch

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Event is a modification of a watched file.
type Event struct {
	// Path is the path of the modified file, as passed to Notify.
	Path string

	// Op is written, created, removed, renamed or chmod.
	Op string
}

// Notify calls handler for each modification of target files
// (written, created, removed, or renamed) until ctx is done or stop is called.
//
// Targets need not exist yet: their directories are watched
// and events for other files in them are ignored.
//
// # Returns
//
// - func(): stops watching. It is safe to call more than once.
//
// - error: error caused when it fails to start watching files.
func Notify(ctx context.Context, handler func(Event), target ...string) (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	targets := map[string]string{}
	dirs := map[string]struct{}{}
	for _, t := range target {
		abs, err := filepath.Abs(t)
		if err != nil {
			w.Close()
			return nil, err
		}
		targets[abs] = t
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for d := range dirs {
		if err := w.Add(d); err != nil {
			w.Close()
			return nil, err
		}
	}

	cctx, cancel := context.WithCancel(ctx)
	go func() {
		defer w.Close()
		for {
			select {
			case <-cctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				name, err := filepath.Abs(event.Name)
				if err != nil {
					continue
				}
				p, ok := targets[name]
				if !ok {
					continue
				}
				if event.Op == fsnotify.Chmod {
					continue
				}
				handler(Event{Path: p, Op: event.Op.String()})
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return cancel, nil
}
