// Package follow runs a generation tracker for commands, with a progress bar
// on stderr and the result on stdout.
package follow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/synthgen/synthctl/api-types/generation"
	"github.com/synthgen/synthctl/cmd/synth/env"
	cerr "github.com/synthgen/synthctl/cmd/synth/errors"
	srest "github.com/synthgen/synthctl/cmd/synth/rest"
	"github.com/synthgen/synthctl/cmd/synth/session"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/internal/progress"
	"github.com/synthgen/synthctl/cmd/synth/tracker"
)

// timeout of cancelling after interruption
const cancelTimeout = 10 * time.Second

type Follower struct {
	Logger *log.Logger
	Env    env.SynthEnv
	Client srest.SynthClient
	Stdout io.Writer
	Stderr io.Writer

	// When not nil, new tokens written into its credentials store are
	// picked up while following.
	Session *common.Session

	// CancelOnInterrupt asks the server to cancel the job
	// when ctx is cancelled.
	CancelOnInterrupt bool

	TrackerOptions []tracker.Option
}

// Run starts a job with config and follows it.
func (f Follower) Run(ctx context.Context, config *generation.ConfigRequest) error {
	return f.follow(ctx, func(t *tracker.Tracker[generation.ConfigRequest]) (tracker.Snapshot, error) {
		return t.Run(ctx, config)
	})
}

// Track follows a job started already.
func (f Follower) Track(ctx context.Context, jobId int) error {
	return f.follow(ctx, func(t *tracker.Tracker[generation.ConfigRequest]) (tracker.Snapshot, error) {
		return t.Track(ctx, jobId)
	})
}

func (f Follower) follow(
	ctx context.Context,
	track func(*tracker.Tracker[generation.ConfigRequest]) (tracker.Snapshot, error),
) error {
	bar, err := progress.NewGeneration(f.Stderr, f.Logger.Printf)
	if err != nil {
		return err
	}
	defer bar.Finish()

	if s := f.Session; s != nil && s.Guard != nil && s.CredentialsStore != "" {
		stop, err := session.WatchCredentials(
			ctx, s.CredentialsStore, s.Profile, s.Guard,
			func(token string) {
				f.Client.SetToken(token)
				f.Logger.Println("new credential is loaded.")
			},
		)
		if err != nil {
			f.Logger.Printf("[warn] credentials store is not watched: %s", err)
		} else {
			defer stop()
		}
	}

	opts := []tracker.Option{
		tracker.WithInterval(f.Env.Interval()),
		tracker.WithObserver(bar.Observe),
	}
	opts = append(opts, f.TrackerOptions...)
	t := tracker.New[generation.ConfigRequest](tracker.V2{Client: f.Client}, opts...)

	snap, err := track(t)
	if err != nil && errors.Is(err, context.Canceled) && snap.JobId != 0 {
		if !f.CancelOnInterrupt {
			f.Logger.Printf(
				"stopped following job %d. Generation continues on the server.", snap.JobId,
			)
			return err
		}

		cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cancelTimeout)
		defer cancel()
		if rerr := t.Cancel(cctx, snap.JobId); rerr != nil {
			f.Logger.Printf("[warn] server did not accept cancelling job %d: %s", snap.JobId, rerr)
		}
		snap = t.Snapshot()
		err = nil
	}

	if errors.Is(err, cerr.ErrUnauthorized) && snap.JobId != 0 {
		f.Logger.Printf(
			"session expired while following job %d. Generation continues on the server. "+
				"Login again and resume with `synth generate watch %d`.",
			snap.JobId, snap.JobId,
		)
	}

	// observations older than a local cancel are not the result.
	if snap.Last != nil && snap.Last.Raw != nil && snap.Last.Status == snap.Status {
		if werr := common.WriteJSON(f.Stdout, snap.Last.Raw); werr != nil {
			return werr
		}
	}
	if err := progress.Outcome(snap, err); err != nil {
		return err
	}
	f.Logger.Printf(
		"job %d is completed. Download it with `synth generate download %d`.",
		snap.JobId, snap.JobId,
	)
	return nil
}

// Cancel asks the server to cancel the job, and tells its local status.
//
// Failures of the server are logged as warnings, not returned.
func Cancel(ctx context.Context, logger *log.Logger, client srest.SynthClient, jobId int) tracker.Snapshot {
	t := tracker.New[generation.ConfigRequest](tracker.V2{Client: client})
	if err := t.Cancel(ctx, jobId); err != nil {
		logger.Printf("[warn] server did not accept cancelling job %d: %s", jobId, err)
	}
	return t.Snapshot()
}

// Describe is a one-line summary of a snapshot.
func Describe(s tracker.Snapshot) string {
	return fmt.Sprintf("job %d: %s (%d%%)", s.JobId, s.Status, s.Progress)
}
