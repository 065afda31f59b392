package status

import (
	"context"
	"log"

	"github.com/synthgen/synthctl/cmd/synth/env"
	srest "github.com/synthgen/synthctl/cmd/synth/rest"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/youta-t/flarc"
)

const ARG_JOB_ID = "JOB_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Show the status of a generation job once.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_JOB_ID, Required: true,
				Help: "id of the generation job",
			},
		},
		common.NewTask(Task()),
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
		st, err := client.GetGenerationStatus(ctx, id)
		if err != nil {
			return err
		}
		if st.Progress != nil {
			if pc, ok := st.Progress.Percent(); ok {
				logger.Printf("job %d: %s (%d%%)", id, st.Request.Status, pc)
			}
		}
		return common.WriteJSON(cl.Stdout(), st)
	}
}
