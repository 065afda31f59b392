package watch

import (
	"context"
	"log"

	"github.com/synthgen/synthctl/cmd/synth/env"
	srest "github.com/synthgen/synthctl/cmd/synth/rest"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/internal/follow"
	"github.com/synthgen/synthctl/cmd/synth/tracker"
	"github.com/youta-t/flarc"
)

type Flags struct {
	CancelOnInterrupt bool `flag:"cancel-on-interrupt" help:"cancel generation when interrupted"`
}

const ARG_JOB_ID = "JOB_ID"

type option struct {
	trackerOptions []tracker.Option
}

type Option func(*option) *option

// WithTrackerOption passes options to the tracker.
func WithTrackerOption(o ...tracker.Option) Option {
	return func(op *option) *option {
		op.trackerOptions = append(op.trackerOptions, o...)
		return op
	}
}

func New(options ...Option) (flarc.Command, error) {
	return flarc.NewCommand(
		"Follow a generation job until it ends.",
		Flags{},
		flarc.Args{
			{
				Name: ARG_JOB_ID, Required: true,
				Help: "id of the generation job",
			},
		},
		common.NewTask(Task(options...)),
		flarc.WithDescription(`
Follow a generation job until it is completed, failed or cancelled, showing
progress on stderr. The final status is printed on stdout.

The status is polled every 3 seconds, or pollInterval in synthenv.
When polling fails, the command stops with the error.

A credential renewed by "synth auth login" in another terminal is picked up
while watching, as long as it is renewed before the current one expires.
Once the server answers 401, the command stops and the stored credential is
cleared. The job keeps running on the server: login again and resume with
"synth generate watch JOB_ID".
`),
	)
}

func Task(options ...Option) common.Task[Flags] {
	op := &option{}
	for _, o := range options {
		op = o(op)
	}

	return func(
		ctx context.Context,
		logger *log.Logger,
		synthEnv env.SynthEnv,
		client srest.SynthClient,
		cl flarc.Commandline[Flags],
		params []any,
	) error {
		id, err := common.IntArg(cl.Args(), ARG_JOB_ID)
		if err != nil {
			return err
		}

		f := follow.Follower{
			Logger: logger, Env: synthEnv, Client: client,
			Stdout: cl.Stdout(), Stderr: cl.Stderr(),
			CancelOnInterrupt: cl.Flags().CancelOnInterrupt,
			TrackerOptions:    op.trackerOptions,
		}
		if sess, ok := common.SessionOf(params); ok {
			f.Session = &sess
		}
		return f.Track(ctx, id)
	}
}
