package rm

import (
	"context"
	"log"

	"github.com/synthgen/synthctl/cmd/synth/env"
	srest "github.com/synthgen/synthctl/cmd/synth/rest"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/youta-t/flarc"
)

const ARG_USER_ID = "USER_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Delete a user. (admin only)",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_USER_ID, Required: true,
				Help: "id of the user",
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
		id, err := common.IntArg(cl.Args(), ARG_USER_ID)
		if err != nil {
			return err
		}
		if err := client.DeleteUser(ctx, id); err != nil {
			return err
		}
		logger.Printf("user %d is deleted.", id)
		return nil
	}
}
