// Package tracker follows a generation job until it ends.
//
// A Tracker starts a job on its Source, then polls its status with a fixed
// interval until the status is completed, failed or cancelled.
// There is no retry and no backoff: a failed poll ends tracking.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/synthgen/synthctl/api-types/generation"
	"github.com/synthgen/synthctl/pkg/poll"
)

const DefaultInterval = 3 * time.Second

var (
	ErrNoConfig         = errors.New("generation config is not given")
	ErrGenerationFailed = errors.New("generation failed")
	ErrAlreadyTracking  = errors.New("tracker is tracking another job")
)

// busyWith tells whether a Track of a job other than jobId is running.
// Call with the lock held.
func (t *Tracker[C]) busyWith(jobId int) bool {
	return t.running != nil && t.running.jobId != jobId
}

type Phase string

const (
	Idle     Phase = "idle"
	Polling  Phase = "polling"
	Terminal Phase = "terminal"
)

// Observation is a status of a job told by Source.
type Observation struct {
	Status generation.Status

	// nil if the source tells nothing about progress.
	Progress *generation.Progress

	// why the job failed, if it failed.
	ErrorMessage string

	CanDownload bool

	// response of the server as is.
	Raw any
}

// Source runs generation jobs configured with C.
type Source[C any] interface {
	// Start submits a job and returns its id.
	Start(ctx context.Context, config C) (int, error)

	// Status fetches the current status of the job.
	Status(ctx context.Context, jobId int) (Observation, error)

	// Cancel asks the server to stop the job.
	Cancel(ctx context.Context, jobId int) error
}

// Snapshot is a state of a Tracker.
type Snapshot struct {
	Phase  Phase
	JobId  int
	Status generation.Status

	// percentage of done, in [0, 100].
	// It stays in [0, 99] until the job completes.
	Progress int

	// the last observation. nil before the first poll.
	Last *Observation

	// error of the last poll, or why the job failed.
	Err error
}

type Tracker[C any] struct {
	source    Source[C]
	interval  time.Duration
	wait      poll.Wait
	observers []func(Snapshot)

	mu   sync.Mutex
	snap Snapshot

	// Track in progress, if any.
	running *tracking
}

type tracking struct {
	jobId int
	stop  context.CancelFunc
}

type config struct {
	interval  time.Duration
	wait      poll.Wait
	observers []func(Snapshot)
}

type Option func(*config) *config

// WithInterval sets the interval of polling. DefaultInterval if not set.
func WithInterval(d time.Duration) Option {
	return func(c *config) *config {
		c.interval = d
		return c
	}
}

// WithObserver adds a function called with the snapshot after each change.
//
// Observers are called synchronously, in the order added.
func WithObserver(f func(Snapshot)) Option {
	return func(c *config) *config {
		c.observers = append(c.observers, f)
		return c
	}
}

// WithWait replaces the way to wait between polls.
func WithWait(w poll.Wait) Option {
	return func(c *config) *config {
		c.wait = w
		return c
	}
}

func New[C any](source Source[C], options ...Option) *Tracker[C] {
	c := &config{interval: DefaultInterval, wait: poll.TimerWait}
	for _, o := range options {
		c = o(c)
	}
	if c.interval <= 0 {
		c.interval = DefaultInterval
	}

	return &Tracker[C]{
		source:    source,
		interval:  c.interval,
		wait:      c.wait,
		observers: c.observers,
		snap:      Snapshot{Phase: Idle},
	}
}

// Snapshot returns a copy of the current state.
func (t *Tracker[C]) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snap
}

func (t *Tracker[C]) notify(s Snapshot) {
	for _, o := range t.observers {
		o(s)
	}
}

// update changes the snapshot with f and notifies the result.
//
// f is called with the lock held. If f returns false, nothing is notified.
func (t *Tracker[C]) update(f func(*Snapshot) bool) Snapshot {
	t.mu.Lock()
	changed := f(&t.snap)
	s := t.snap
	t.mu.Unlock()

	if changed {
		t.notify(s)
	}
	return s
}

// retarget resets the snapshot when it is of other job. Call with the lock held.
func retarget(s *Snapshot, jobId int) {
	if s.JobId != jobId {
		*s = Snapshot{Phase: Idle, JobId: jobId}
	}
}

// Start submits config to the source.
//
// The tracker forgets the previous job, and stays idle.
// While Track runs, it starts nothing and returns ErrAlreadyTracking.
func (t *Tracker[C]) Start(ctx context.Context, config *C) (int, error) {
	if config == nil {
		return 0, ErrNoConfig
	}
	t.mu.Lock()
	busy := t.running != nil
	t.mu.Unlock()
	if busy {
		return 0, ErrAlreadyTracking
	}
	jobId, err := t.source.Start(ctx, *config)
	if err != nil {
		return 0, err
	}

	t.update(func(s *Snapshot) bool {
		*s = Snapshot{Phase: Idle, JobId: jobId, Status: generation.Pending}
		return true
	})
	return jobId, nil
}

// Poll fetches the status of the job once.
//
// When the job is terminal already, it returns the status without fetching.
//
// When fetching fails, the tracker becomes idle with the error.
//
// While Track runs for another job, it fetches nothing and returns ErrAlreadyTracking.
func (t *Tracker[C]) Poll(ctx context.Context, jobId int) (generation.Status, error) {
	t.mu.Lock()
	if t.busyWith(jobId) {
		st := t.snap.Status
		t.mu.Unlock()
		return st, ErrAlreadyTracking
	}
	retarget(&t.snap, jobId)
	if t.snap.Phase == Terminal {
		st := t.snap.Status
		t.mu.Unlock()
		return st, nil
	}
	t.mu.Unlock()

	obs, err := t.source.Status(ctx, jobId)
	if err != nil {
		s := t.update(func(s *Snapshot) bool {
			// observations after reaching terminal, like by Cancel, are ignored.
			if s.JobId != jobId || s.Phase == Terminal {
				return false
			}
			s.Phase = Idle
			s.Err = err
			return true
		})
		if s.Phase == Terminal {
			return s.Status, nil
		}
		return s.Status, err
	}

	s := t.update(func(s *Snapshot) bool {
		if s.JobId != jobId || s.Phase == Terminal {
			return false
		}
		observe(s, obs)
		return true
	})
	return s.Status, nil
}

func observe(s *Snapshot, obs Observation) {
	s.Last = &obs
	s.Status = obs.Status
	s.Err = nil

	if !obs.Status.IsTerminal() {
		if obs.Progress != nil {
			if pc, ok := obs.Progress.Percent(); ok {
				s.Progress = min(pc, 99)
			}
		}
		return
	}

	s.Phase = Terminal
	switch obs.Status {
	case generation.Completed:
		s.Progress = 100
	case generation.Failed:
		s.Progress = 0
		if obs.ErrorMessage != "" {
			s.Err = fmt.Errorf("%w: %s", ErrGenerationFailed, obs.ErrorMessage)
		} else {
			s.Err = ErrGenerationFailed
		}
	default:
		s.Progress = 0
	}
}

// Track polls the job with the interval until it is terminal.
//
// It stops also when a poll fails, when Cancel is called, or when ctx is done.
// After each non-terminal status, exactly one more poll is scheduled.
//
// Only one Track runs at a time for a tracker. Others get ErrAlreadyTracking.
//
// # Returns
//
// - Snapshot: the state when tracking stopped.
//
// - error: error of poll, or ctx.Err(). nil when the job became terminal.
func (t *Tracker[C]) Track(ctx context.Context, jobId int) (Snapshot, error) {
	ctx, stop := context.WithCancel(ctx)
	defer stop()
	mine := &tracking{jobId: jobId, stop: stop}

	busy := false
	s := t.update(func(s *Snapshot) bool {
		if t.running != nil {
			busy = true
			return false
		}
		retarget(s, jobId)
		if s.Phase == Terminal {
			return false
		}
		t.running = mine
		s.Phase = Polling
		s.Err = nil
		return true
	})
	if busy {
		return s, ErrAlreadyTracking
	}
	if s.Phase == Terminal {
		return s, nil
	}

	_, err := poll.Run(
		ctx, generation.Pending,
		func(ctx context.Context, _ generation.Status) (generation.Status, poll.Next) {
			st, err := t.Poll(ctx, jobId)
			if err != nil {
				return st, poll.Stop(err)
			}
			if st.IsTerminal() {
				return st, poll.Stop(nil)
			}
			return st, poll.Again(t.interval)
		},
		poll.WithWait(t.wait),
	)

	s = t.update(func(s *Snapshot) bool {
		t.running = nil
		if s.JobId != jobId || s.Phase != Polling {
			return false
		}
		// stopped by ctx while waiting.
		s.Phase = Idle
		s.Err = err
		return true
	})

	if s.Phase == Terminal {
		return s, nil
	}
	return s, err
}

// Run starts a job with config and tracks it.
func (t *Tracker[C]) Run(ctx context.Context, config *C) (Snapshot, error) {
	jobId, err := t.Start(ctx, config)
	if err != nil {
		return t.Snapshot(), err
	}
	return t.Track(ctx, jobId)
}

// Cancel stops tracking the job, and asks the server to cancel it.
//
// The status becomes cancelled whatever the server answers.
// The returned error is what the server answered, only for reporting.
//
// Jobs which are terminal already are left as they are.
// While Track runs for another job, it returns ErrAlreadyTracking and changes nothing.
func (t *Tracker[C]) Cancel(ctx context.Context, jobId int) error {
	var stop context.CancelFunc
	already := false
	busy := false
	t.update(func(s *Snapshot) bool {
		if t.busyWith(jobId) {
			busy = true
			return false
		}
		retarget(s, jobId)
		if s.Phase == Terminal {
			already = true
			return false
		}
		if t.running != nil && t.running.jobId == jobId {
			stop = t.running.stop
		}
		s.Phase = Terminal
		s.Status = generation.Cancelled
		s.Progress = 0
		s.Err = nil
		return true
	})
	if busy {
		return ErrAlreadyTracking
	}
	if already {
		return nil
	}
	if stop != nil {
		stop()
	}

	return t.source.Cancel(ctx, jobId)
}
