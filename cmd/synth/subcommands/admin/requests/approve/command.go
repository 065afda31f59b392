package approve

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
		"Approve a data request, to allow generation. (admin only)",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_REQUEST_ID, Required: true,
				Help: "id of the data request",
			},
		},
		common.NewAdminTask(Task()),
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
		id, err := common.IntArg(cl.Args(), ARG_REQUEST_ID)
		if err != nil {
			return err
		}
		dr, err := client.ApproveRequest(ctx, id)
		if err != nil {
			return err
		}
		logger.Printf("request %d is %s.", dr.Id, dr.Status)
		return common.WriteJSON(cl.Stdout(), dr)
	}
}
