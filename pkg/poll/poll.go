package poll

import (
	"context"
	"fmt"
	"time"
)

type Next struct {
	// if not nil, stops with error
	err error

	// if quit == true and err == nil, stops without error
	quit bool

	// otherwise, step again after interval.
	interval time.Duration
}

func (n Next) String() string {
	if n.err != nil {
		return fmt.Sprintf("[stop] with error: %v", n.err)
	}
	if n.quit {
		return "[stop] without error"
	}

	return fmt.Sprintf("[again] after %s", n.interval)
}

// Again schedules one more step after interval.
func Again(interval time.Duration) Next {
	return Next{interval: interval}
}

// Stop ends the loop. Pass nil to stop without error.
func Stop(err error) Next {
	return Next{quit: true, err: err}
}

// Step is one attempt of the loop.
//
// It receives the value returned by the previous step (or the initial value)
// and returns the new value and what to do next.
type Step[T any] func(context.Context, T) (T, Next)

// Wait blocks for d, or until ctx is done.
//
// It returns ctx.Err() when ctx is done first.
type Wait func(ctx context.Context, d time.Duration) error

// TimerWait is the default Wait, backed by time.Timer.
func TimerWait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	select {
	case <-ctx.Done():
		// shutting down is priority. it should come first, and checking timer later.
		if !timer.Stop() {
			<-timer.C
		}
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Run calls step repeatedly until it returns Stop or ctx is done.
//
// Between two steps, it waits for the interval given by Again.
// There is no backoff and no limit of attempts: an endless Again is an endless loop.
//
// # Returns
//
// - T: the last value returned by step.
// This value is always returned wheather or not it returns non-nil error together.
//
// - error: the error passed to Stop, or ctx.Err() when ctx is done first.
func Run[T any](ctx context.Context, init T, step Step[T], options ...Option) (T, error) {
	select {
	case <-ctx.Done():
		return init, ctx.Err()
	default:
	}

	conf := &config{wait: TimerWait}
	for _, opt := range options {
		conf = opt(conf)
	}

	value := init
	for {
		v, n := func() (T, Next) {
			sctx := ctx
			if 0 < conf.timeout {
				_ctx, cancel := context.WithTimeout(ctx, conf.timeout)
				defer cancel()
				sctx = _ctx
			}
			return step(sctx, value)
		}()
		value = v

		if n.err != nil {
			return value, n.err
		} else if n.quit {
			return value, nil
		}

		if err := conf.wait(ctx, n.interval); err != nil {
			return value, err
		}
	}
}

type config struct {
	timeout time.Duration
	wait    Wait
}

type Option func(*config) *config

// PerAttemptTimeout sets timeout on the context passed to each step.
func PerAttemptTimeout(d time.Duration) Option {
	return func(c *config) *config {
		c.timeout = d
		return c
	}
}

// WithWait replaces the way to wait between steps.
func WithWait(w Wait) Option {
	return func(c *config) *config {
		c.wait = w
		return c
	}
}
