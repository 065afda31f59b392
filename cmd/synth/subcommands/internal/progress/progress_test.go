package progress_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/synthgen/synthctl/api-types/generation"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/internal/progress"
	"github.com/synthgen/synthctl/cmd/synth/tracker"
	"github.com/synthgen/synthctl/pkg/try"
)

func TestOutcome(t *testing.T) {
	pollErr := errors.New("poll failed")
	failure := errors.New("generation failed: oom")

	type When struct {
		snap tracker.Snapshot
		err  error
	}
	theory := func(when When, expected error, anyError bool) func(*testing.T) {
		return func(t *testing.T) {
			actual := progress.Outcome(when.snap, when.err)
			if anyError {
				if actual == nil {
					t.Error("no error")
				}
				return
			}
			if !errors.Is(actual, expected) {
				t.Errorf("(actual, expected) = (%v, %v)", actual, expected)
			}
		}
	}

	t.Run("completed", theory(When{snap: tracker.Snapshot{Status: generation.Completed}}, nil, false))
	t.Run("failed", theory(When{snap: tracker.Snapshot{Status: generation.Failed, Err: failure}}, failure, false))
	t.Run("failed without reason", theory(
		When{snap: tracker.Snapshot{Status: generation.Failed}}, tracker.ErrGenerationFailed, false,
	))
	t.Run("cancelled", theory(When{snap: tracker.Snapshot{Status: generation.Cancelled}}, progress.ErrCancelled, false))
	t.Run("error of tracking", theory(
		When{snap: tracker.Snapshot{Status: generation.Processing}, err: pollErr}, pollErr, false,
	))
	t.Run("not terminal", theory(When{snap: tracker.Snapshot{Status: generation.Processing}}, nil, true))
}

func TestGeneration(t *testing.T) {
	out := new(strings.Builder)
	logs := []string{}
	g := try.To(progress.NewGeneration(out, func(format string, args ...any) {
		logs = append(logs, format)
	})).OrFatal(t)

	g.Observe(tracker.Snapshot{Phase: tracker.Idle, JobId: 1, Status: generation.Pending})
	g.Observe(tracker.Snapshot{Phase: tracker.Polling, JobId: 1, Status: generation.Pending})
	g.Observe(tracker.Snapshot{Phase: tracker.Polling, JobId: 1, Status: generation.Processing, Progress: 50})
	g.Observe(tracker.Snapshot{Phase: tracker.Polling, JobId: 1, Status: generation.Processing, Progress: 75})
	g.Observe(tracker.Snapshot{Phase: tracker.Terminal, JobId: 1, Status: generation.Completed, Progress: 100})
	g.Finish()

	if len(logs) != 3 {
		t.Errorf("status changes are logged %d times", len(logs))
	}
}

func TestSave(t *testing.T) {
	t.Run("into a file", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "out", "data.csv")
		n := try.To(progress.Save(dest, nil, new(strings.Builder), strings.NewReader("a,b\n1,2\n"), 8)).OrFatal(t)
		if n != 8 {
			t.Errorf("written: %d", n)
		}
		if content := try.To(os.ReadFile(dest)).OrFatal(t); string(content) != "a,b\n1,2\n" {
			t.Errorf("content: %q", content)
		}
	})

	t.Run("into stdout", func(t *testing.T) {
		stdout := new(strings.Builder)
		try.To(progress.Save("-", stdout, new(strings.Builder), strings.NewReader("a,b\n"), -1)).OrFatal(t)
		if stdout.String() != "a,b\n" {
			t.Errorf("stdout: %q", stdout)
		}
	})
}
