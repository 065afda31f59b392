// Package progress shows progress of generation and transfer on terminals.
package progress

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	pb "github.com/cheggaaa/pb/v3"
	"github.com/synthgen/synthctl/api-types/generation"
	"github.com/synthgen/synthctl/cmd/synth/tracker"
)

// Generation is a progress bar following snapshots of a tracker.
type Generation struct {
	mu      sync.Mutex
	bar     *pb.ProgressBar
	started bool
	last    generation.Status
	log     func(format string, args ...any)
}

// NewGeneration makes a progress bar written into w.
//
// logf is called when the status changes.
func NewGeneration(w io.Writer, logf func(format string, args ...any)) (*Generation, error) {
	bar := pb.New(100)
	bar.SetWriter(w)
	bar.Set("prefix", "pending:")
	if err := bar.Err(); err != nil {
		return nil, err
	}
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Generation{bar: bar, log: logf}, nil
}

// Observe updates the bar. Pass this to tracker.WithObserver.
func (g *Generation) Observe(s tracker.Snapshot) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if s.Status != g.last && s.Status != "" {
		g.log("job %d: %s", s.JobId, s.Status)
		g.last = s.Status
	}
	if s.Phase == tracker.Polling && !g.started {
		g.bar.Start()
		g.started = true
	}
	g.bar.Set("prefix", fmt.Sprintf("%s:", s.Status))
	g.bar.SetCurrent(int64(s.Progress))
	if s.Last != nil && s.Last.Progress != nil && s.Last.Progress.EstimatedTimeRemaining != "" {
		g.bar.Set("suffix", " (remaining "+s.Last.Progress.EstimatedTimeRemaining+")")
	} else {
		g.bar.Set("suffix", "")
	}
}

// Finish stops refreshing the bar.
func (g *Generation) Finish() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.started {
		g.bar.Finish()
	}
}

var ErrCancelled = errors.New("generation is cancelled")

// Outcome tells the end of tracking as an error.
//
// It is nil only when the job is completed.
func Outcome(s tracker.Snapshot, err error) error {
	if err != nil {
		return err
	}
	switch s.Status {
	case generation.Completed:
		return nil
	case generation.Failed:
		if s.Err != nil {
			return s.Err
		}
		return tracker.ErrGenerationFailed
	case generation.Cancelled:
		return fmt.Errorf("%w: job %d", ErrCancelled, s.JobId)
	default:
		return fmt.Errorf("job %d is %s", s.JobId, s.Status)
	}
}

// Copy copies r into w, showing a progress bar of bytes on progressOut.
//
// size is the total size in bytes, or negative if unknown.
func Copy(w io.Writer, progressOut io.Writer, r io.Reader, size int64) (int64, error) {
	bar := pb.New64(max(size, 0))
	bar.Set(pb.Bytes, true)
	bar.SetWriter(progressOut)
	if err := bar.Err(); err != nil {
		return 0, err
	}
	bar.Start()
	defer bar.Finish()

	return io.Copy(w, bar.NewProxyReader(r))
}

// Save writes r into the file path ("-" for stdout), showing progress.
func Save(path string, stdout io.Writer, progressOut io.Writer, r io.Reader, size int64) (int64, error) {
	if path == "-" {
		return io.Copy(stdout, r)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, os.FileMode(0755)); err != nil {
			return 0, err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	n, err := Copy(f, progressOut, r, size)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}
