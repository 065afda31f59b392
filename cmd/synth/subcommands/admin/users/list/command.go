package list

import (
	"context"
	"errors"
	"log"

	"github.com/synthgen/synthctl/api-types/admin"
	"github.com/synthgen/synthctl/api-types/auth"
	"github.com/synthgen/synthctl/cmd/synth/env"
	srest "github.com/synthgen/synthctl/cmd/synth/rest"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Search string `flag:"search" alias:"q" help:"find users whose email or name contains this"`
	Role   string `flag:"role" metavar:"user|admin" help:"find users in the role"`
	Skip   int    `flag:"skip" help:"number of users to be skipped"`
	Limit  int    `flag:"limit" help:"max number of users. (default: 100)"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"List users. (admin only)",
		Flags{},
		flarc.Args{},
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
		flags := cl.Flags()
		page, err := common.PageOf(flags.Skip, flags.Limit)
		if err != nil {
			return err
		}
		query := admin.UserQuery{Page: page, Search: flags.Search}
		switch r := auth.Role(flags.Role); r {
		case "", auth.RoleUser, auth.RoleAdmin:
			query.Role = r
		default:
			return errors.Join(flarc.ErrUsage, errors.New("--role should be user or admin"))
		}

		users, err := client.ListUsers(ctx, query)
		if err != nil {
			return err
		}
		return common.WriteJSON(cl.Stdout(), users)
	}
}
