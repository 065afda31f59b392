package cancel

import (
	"context"
	"log"

	"github.com/synthgen/synthctl/cmd/synth/env"
	srest "github.com/synthgen/synthctl/cmd/synth/rest"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/internal/follow"
	"github.com/youta-t/flarc"
)

const ARG_JOB_ID = "JOB_ID"

type Result struct {
	JobId  int    `json:"request_id"`
	Status string `json:"status"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Cancel a generation job.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_JOB_ID, Required: true,
				Help: "id of the generation job",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Cancel a generation job.

Cancelling is best effort: when the server refuses or cannot be reached,
a warning is shown and the job is still reported as cancelled.
`),
	)
}

func Task() common.Task[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		synthEnv env.SynthEnv,
		client srest.SynthClient,
		cl flarc.Commandline[struct{}],
		params []any,
	) error {
		id, err := common.IntArg(cl.Args(), ARG_JOB_ID)
		if err != nil {
			return err
		}
		snap := follow.Cancel(ctx, logger, client, id)
		logger.Println(follow.Describe(snap))
		return common.WriteJSON(cl.Stdout(), Result{JobId: snap.JobId, Status: string(snap.Status)})
	}
}
