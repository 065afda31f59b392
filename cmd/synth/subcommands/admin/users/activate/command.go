package activate

import (
	"context"
	"log"

	"github.com/synthgen/synthctl/cmd/synth/env"
	srest "github.com/synthgen/synthctl/cmd/synth/rest"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/youta-t/flarc"
)

func description(active bool) string {
	if active {
		return "Activate a user, to allow signing in. (admin only)"
	}
	return "Deactivate a user, to refuse signing in. (admin only)"
}

const ARG_USER_ID = "USER_ID"

func New(active bool) (flarc.Command, error) {
	return flarc.NewCommand(
		description(active),
		struct{}{},
		flarc.Args{
			{
				Name: ARG_USER_ID, Required: true,
				Help: "id of the user",
			},
		},
		common.NewAdminTask(Task(active)),
	)
}

func Task(active bool) common.Task[struct{}] {
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
		u, err := client.SetUserActive(ctx, id, active)
		if err != nil {
			return err
		}
		if u.IsActive {
			logger.Printf("user %d (%s) is activated.", u.Id, u.Email)
		} else {
			logger.Printf("user %d (%s) is deactivated.", u.Id, u.Email)
		}
		return common.WriteJSON(cl.Stdout(), u)
	}
}
