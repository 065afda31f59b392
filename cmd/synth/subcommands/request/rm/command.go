package rm

import (
	"context"
	"log"

	"github.com/synthgen/synthctl/cmd/synth/env"
	srest "github.com/synthgen/synthctl/cmd/synth/rest"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/youta-t/flarc"
)

const ARG_REQUEST_ID = "REQUEST_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Delete a data request.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_REQUEST_ID, Required: true, Repeatable: true,
				Help: "id of the request to be deleted",
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
		ids, err := common.IntArgs(cl.Args(), ARG_REQUEST_ID)
		if err != nil {
			return err
		}

		for _, id := range ids {
			if err := client.DeleteRequest(ctx, id); err != nil {
				return err
			}
			logger.Printf("request %d is deleted.", id)
		}
		return nil
	}
}
