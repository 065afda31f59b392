package role

import (
	"context"
	"errors"
	"log"

	"github.com/synthgen/synthctl/api-types/auth"
	"github.com/synthgen/synthctl/cmd/synth/env"
	srest "github.com/synthgen/synthctl/cmd/synth/rest"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Role string `flag:"role" metavar:"user|admin" help:"new role of the user"`
}

const ARG_USER_ID = "USER_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Change the role of a user. (admin only)",
		Flags{},
		flarc.Args{
			{
				Name: ARG_USER_ID, Required: true,
				Help: "id of the user",
			},
		},
		common.NewAdminTask(Task()),
	)
}

func Task() common.Task[Flags] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		synthEnv env.SynthEnv,
		client srest.SynthClient,
		cl flarc.Commandline[Flags],
		params []any,
	) error {
		id, err := common.IntArg(cl.Args(), ARG_USER_ID)
		if err != nil {
			return err
		}
		role := auth.Role(cl.Flags().Role)
		switch role {
		case auth.RoleUser, auth.RoleAdmin:
		default:
			return errors.Join(flarc.ErrUsage, errors.New("--role should be user or admin"))
		}
		u, err := client.SetUserRole(ctx, id, role)
		if err != nil {
			return err
		}
		logger.Printf("user %d (%s) is %s now.", u.Id, u.Email, u.Role)
		return common.WriteJSON(cl.Stdout(), u)
	}
}
