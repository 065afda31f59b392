package tracker_test

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/synthgen/synthctl/api-types/generation"
	cerr "github.com/synthgen/synthctl/cmd/synth/errors"
	"github.com/synthgen/synthctl/cmd/synth/tracker"
	"github.com/synthgen/synthctl/pkg/try"
)

type step struct {
	obs tracker.Observation
	err error
}

type fakeSource struct {
	mu sync.Mutex

	jobId    int
	startErr error
	started  []string

	script []step
	polled int

	cancelErr error
	cancelled []int
}

func (f *fakeSource) Start(_ context.Context, config string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = append(f.started, config)
	if f.startErr != nil {
		return 0, f.startErr
	}
	return f.jobId, nil
}

func (f *fakeSource) Status(context.Context, int) (tracker.Observation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.script) == 0 {
		return tracker.Observation{Status: generation.Pending}, nil
	}
	s := f.script[min(f.polled, len(f.script)-1)]
	f.polled += 1
	return s.obs, s.err
}

func (f *fakeSource) Cancel(_ context.Context, jobId int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = append(f.cancelled, jobId)
	return f.cancelErr
}

func (f *fakeSource) Polled() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.polled
}

func epoch(current, total int) *generation.Progress {
	return &generation.Progress{CurrentEpoch: &current, TotalEpochs: &total}
}

func status(s generation.Status) step {
	return step{obs: tracker.Observation{Status: s}}
}

// recordWaits returns poll.Wait not waiting actually, and waits recorded.
func recordWaits() (func(context.Context, time.Duration) error, *[]time.Duration) {
	waits := []time.Duration{}
	return func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return ctx.Err()
	}, &waits
}

func TestTracker_Run(t *testing.T) {
	t.Run("it polls until completed, with the interval", func(t *testing.T) {
		source := &fakeSource{
			jobId: 42,
			script: []step{
				status(generation.Pending),
				{obs: tracker.Observation{Status: generation.Processing, Progress: epoch(1, 4)}},
				{obs: tracker.Observation{Status: generation.Processing, Progress: epoch(4, 4)}},
				{obs: tracker.Observation{Status: generation.Completed, CanDownload: true}},
			},
		}
		wait, waits := recordWaits()

		progresses := []int{}
		testee := tracker.New[string](
			source,
			tracker.WithInterval(3*time.Second),
			tracker.WithWait(wait),
			tracker.WithObserver(func(s tracker.Snapshot) {
				if s.Last != nil {
					progresses = append(progresses, s.Progress)
				}
			}),
		)

		config := "config"
		snap := try.To(testee.Run(context.Background(), &config)).OrFatal(t)

		if snap.JobId != 42 {
			t.Errorf("job id: (actual, expected) = (%d, %d)", snap.JobId, 42)
		}
		if snap.Phase != tracker.Terminal || snap.Status != generation.Completed {
			t.Errorf("unexpected snapshot: %+v", snap)
		}
		if snap.Progress != 100 {
			t.Errorf("progress: (actual, expected) = (%d, %d)", snap.Progress, 100)
		}
		if snap.Last == nil || !snap.Last.CanDownload {
			t.Errorf("last observation: %+v", snap.Last)
		}
		if source.Polled() != 4 {
			t.Errorf("polled: (actual, expected) = (%d, %d)", source.Polled(), 4)
		}
		if len(*waits) != 3 {
			t.Fatalf("waits: (actual, expected) = (%d, %d)", len(*waits), 3)
		}
		for i, w := range *waits {
			if w != 3*time.Second {
				t.Errorf("wait #%d: (actual, expected) = (%s, %s)", i, w, 3*time.Second)
			}
		}

		// 100% during processing is shown as 99%.
		expected := []int{0, 25, 99, 100}
		if len(progresses) != len(expected) {
			t.Fatalf("progresses: (actual, expected) = (%v, %v)", progresses, expected)
		}
		for i := range expected {
			if progresses[i] != expected[i] {
				t.Errorf("progresses: (actual, expected) = (%v, %v)", progresses, expected)
				break
			}
		}
	})

	t.Run("it stops at failed with the error message", func(t *testing.T) {
		source := &fakeSource{
			jobId: 3,
			script: []step{
				{obs: tracker.Observation{Status: generation.Processing, Progress: epoch(2, 4)}},
				{obs: tracker.Observation{Status: generation.Failed, ErrorMessage: "out of memory"}},
			},
		}
		wait, waits := recordWaits()
		testee := tracker.New[string](source, tracker.WithWait(wait))

		config := "config"
		snap := try.To(testee.Run(context.Background(), &config)).OrFatal(t)

		if snap.Phase != tracker.Terminal || snap.Status != generation.Failed {
			t.Errorf("unexpected snapshot: %+v", snap)
		}
		if snap.Progress != 0 {
			t.Errorf("progress: (actual, expected) = (%d, %d)", snap.Progress, 0)
		}
		if !errors.Is(snap.Err, tracker.ErrGenerationFailed) {
			t.Errorf("err: %v", snap.Err)
		}
		if snap.Err == nil || !strings.Contains(snap.Err.Error(), "out of memory") {
			t.Errorf("err does not tell why: %v", snap.Err)
		}
		if len(*waits) != 1 || (*waits)[0] != tracker.DefaultInterval {
			t.Errorf("waits: %v", *waits)
		}
	})

	t.Run("it stops at cancelled by the server", func(t *testing.T) {
		source := &fakeSource{jobId: 5, script: []step{status(generation.Cancelled)}}
		wait, waits := recordWaits()
		testee := tracker.New[string](source, tracker.WithWait(wait))

		config := "config"
		snap := try.To(testee.Run(context.Background(), &config)).OrFatal(t)

		if snap.Status != generation.Cancelled || snap.Phase != tracker.Terminal {
			t.Errorf("unexpected snapshot: %+v", snap)
		}
		if len(*waits) != 0 {
			t.Errorf("waited after terminal: %v", *waits)
		}
	})

	t.Run("it does not start without config", func(t *testing.T) {
		source := &fakeSource{jobId: 1}
		testee := tracker.New[string](source)

		snap, err := testee.Run(context.Background(), nil)
		if !errors.Is(err, tracker.ErrNoConfig) {
			t.Errorf("unexpected error: %v", err)
		}
		if snap.Phase != tracker.Idle {
			t.Errorf("phase: %s", snap.Phase)
		}
		if len(source.started) != 0 {
			t.Errorf("started: %v", source.started)
		}
	})

	t.Run("it passes the error of starting as is", func(t *testing.T) {
		expectedErr := cerr.FromResponse(400, []byte(`{"detail": "Dataset not found"}`))
		source := &fakeSource{startErr: expectedErr}
		testee := tracker.New[string](source)

		config := "config"
		_, err := testee.Run(context.Background(), &config)
		if !errors.Is(err, expectedErr) {
			t.Errorf("unexpected error: %v", err)
		}
		if source.Polled() != 0 {
			t.Errorf("polled: %d", source.Polled())
		}
	})
}

func TestTracker_Track(t *testing.T) {
	t.Run("failure of a poll makes tracker idle without retry", func(t *testing.T) {
		expectedErr := cerr.FromResponse(500, nil)
		source := &fakeSource{
			script: []step{
				status(generation.Processing),
				{err: expectedErr},
				status(generation.Completed),
			},
		}
		wait, waits := recordWaits()
		testee := tracker.New[string](source, tracker.WithWait(wait))

		snap, err := testee.Track(context.Background(), 9)
		if !errors.Is(err, expectedErr) {
			t.Errorf("unexpected error: %v", err)
		}
		if snap.Phase != tracker.Idle || !errors.Is(snap.Err, expectedErr) {
			t.Errorf("unexpected snapshot: %+v", snap)
		}
		if snap.Status != generation.Processing {
			t.Errorf("status is lost: %s", snap.Status)
		}
		if source.Polled() != 2 || len(*waits) != 1 {
			t.Errorf("(polled, waits) = (%d, %d)", source.Polled(), len(*waits))
		}
	})

	t.Run("it stops when context is done while waiting", func(t *testing.T) {
		source := &fakeSource{script: []step{status(generation.Processing)}}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		testee := tracker.New[string](source, tracker.WithWait(
			func(ctx context.Context, _ time.Duration) error {
				cancel()
				return ctx.Err()
			},
		))

		snap, err := testee.Track(ctx, 1)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("unexpected error: %v", err)
		}
		if snap.Phase != tracker.Idle {
			t.Errorf("phase: %s", snap.Phase)
		}
		if source.Polled() != 1 {
			t.Errorf("polled: %d", source.Polled())
		}
	})

	t.Run("only one track runs at a time", func(t *testing.T) {
		source := &fakeSource{
			script: []step{status(generation.Processing), status(generation.Completed)},
		}

		var testee *tracker.Tracker[string]
		var nested error
		testee = tracker.New[string](source, tracker.WithWait(
			func(ctx context.Context, _ time.Duration) error {
				_, nested = testee.Track(ctx, 1)
				return nil
			},
		))

		snap := try.To(testee.Track(context.Background(), 1)).OrFatal(t)
		if !errors.Is(nested, tracker.ErrAlreadyTracking) {
			t.Errorf("nested track: %v", nested)
		}
		if snap.Status != generation.Completed {
			t.Errorf("status: %s", snap.Status)
		}

		// the tracker is free again.
		again := try.To(testee.Track(context.Background(), 1)).OrFatal(t)
		if again.Status != generation.Completed {
			t.Errorf("status: %s", again.Status)
		}
		if source.Polled() != 2 {
			t.Errorf("terminal job is polled again: %d", source.Polled())
		}
	})

	t.Run("other jobs are refused while tracking", func(t *testing.T) {
		source := &fakeSource{
			jobId: 9,
			script: []step{
				{obs: tracker.Observation{Status: generation.Processing, Progress: epoch(1, 4)}},
				status(generation.Completed),
			},
		}

		var testee *tracker.Tracker[string]
		var pollErr, cancelErr, startErr error
		var during tracker.Snapshot
		testee = tracker.New[string](source, tracker.WithWait(
			func(ctx context.Context, _ time.Duration) error {
				_, pollErr = testee.Poll(ctx, 2)
				cancelErr = testee.Cancel(ctx, 2)
				_, startErr = testee.Start(ctx, ptr("config"))
				during = testee.Snapshot()
				return nil
			},
		))

		snap := try.To(testee.Track(context.Background(), 1)).OrFatal(t)
		for name, err := range map[string]error{"poll": pollErr, "cancel": cancelErr, "start": startErr} {
			if !errors.Is(err, tracker.ErrAlreadyTracking) {
				t.Errorf("%s: unexpected error: %v", name, err)
			}
		}
		if during.JobId != 1 || during.Status != generation.Processing || during.Progress != 25 {
			t.Errorf("snapshot while tracking: %+v", during)
		}
		if snap.JobId != 1 || snap.Status != generation.Completed {
			t.Errorf("snapshot: %+v", snap)
		}
		if source.Polled() != 2 || len(source.cancelled) != 0 || len(source.started) != 0 {
			t.Errorf("(polled, cancelled, started) = (%d, %v, %v)", source.Polled(), source.cancelled, source.started)
		}
	})
}

func ptr[T any](v T) *T { return &v }

func TestTracker_Cancel(t *testing.T) {
	networkError := cerr.Network(&url.Error{
		Op: "Delete", URL: "http://example.invalid",
		Err: &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")},
	})

	theory := func(remote error) func(*testing.T) {
		return func(t *testing.T) {
			source := &fakeSource{
				script:    []step{status(generation.Processing)},
				cancelErr: remote,
			}
			testee := tracker.New[string](source, tracker.WithWait(func(context.Context, time.Duration) error { return nil }))

			if _, err := testee.Poll(context.Background(), 7); err != nil {
				t.Fatal(err)
			}

			err := testee.Cancel(context.Background(), 7)
			if !errors.Is(err, remote) {
				t.Errorf("error: (actual, expected) = (%v, %v)", err, remote)
			}

			snap := testee.Snapshot()
			if snap.Phase != tracker.Terminal || snap.Status != generation.Cancelled {
				t.Errorf("unexpected snapshot: %+v", snap)
			}
			if snap.Progress != 0 {
				t.Errorf("progress: %d", snap.Progress)
			}
			if len(source.cancelled) != 1 || source.cancelled[0] != 7 {
				t.Errorf("remote cancel: %v", source.cancelled)
			}

			// later observations are ignored.
			st := try.To(testee.Poll(context.Background(), 7)).OrFatal(t)
			if st != generation.Cancelled {
				t.Errorf("status after cancel: %s", st)
			}
			if source.Polled() != 1 {
				t.Errorf("polled after cancel: %d", source.Polled())
			}
		}
	}

	t.Run("server accepts", theory(nil))
	t.Run("server refuses", theory(cerr.FromResponse(400, []byte(`{"detail": "cannot cancel"}`))))
	t.Run("server is not reachable", theory(networkError))

	t.Run("it stops running track", func(t *testing.T) {
		source := &fakeSource{script: []step{status(generation.Processing)}}

		var testee *tracker.Tracker[string]
		var cancelErr error
		testee = tracker.New[string](source, tracker.WithWait(
			func(ctx context.Context, _ time.Duration) error {
				cancelErr = testee.Cancel(context.Background(), 11)
				return ctx.Err()
			},
		))

		done := make(chan struct{})
		var snap tracker.Snapshot
		var err error
		go func() {
			defer close(done)
			snap, err = testee.Track(context.Background(), 11)
		}()

		select {
		case <-done:
		case <-time.After(10 * time.Second):
			t.Fatal("track does not stop")
		}

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if cancelErr != nil {
			t.Errorf("cancel: %v", cancelErr)
		}
		if snap.Phase != tracker.Terminal || snap.Status != generation.Cancelled {
			t.Errorf("unexpected snapshot: %+v", snap)
		}
		if source.Polled() != 1 {
			t.Errorf("polled: %d", source.Polled())
		}
	})

	t.Run("it leaves terminal jobs", func(t *testing.T) {
		source := &fakeSource{script: []step{status(generation.Completed)}}
		testee := tracker.New[string](source)

		try.To(testee.Poll(context.Background(), 2)).OrFatal(t)

		if err := testee.Cancel(context.Background(), 2); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if snap := testee.Snapshot(); snap.Status != generation.Completed || snap.Progress != 100 {
			t.Errorf("unexpected snapshot: %+v", snap)
		}
		if len(source.cancelled) != 0 {
			t.Errorf("remote cancel: %v", source.cancelled)
		}
	})
}

func TestTracker_Observers(t *testing.T) {
	source := &fakeSource{
		jobId:  4,
		script: []step{status(generation.Pending), status(generation.Processing), status(generation.Completed)},
	}
	phases := []string{}
	testee := tracker.New[string](
		source,
		tracker.WithWait(func(context.Context, time.Duration) error { return nil }),
		tracker.WithObserver(func(s tracker.Snapshot) {
			phases = append(phases, string(s.Phase)+":"+s.Status.String())
		}),
	)

	config := "config"
	try.To(testee.Run(context.Background(), &config)).OrFatal(t)

	expected := []string{
		"idle:pending",
		"polling:pending",
		"polling:pending",
		"polling:processing",
		"terminal:completed",
	}
	if strings.Join(phases, ",") != strings.Join(expected, ",") {
		t.Errorf("(actual, expected) = (%v, %v)", phases, expected)
	}
}
