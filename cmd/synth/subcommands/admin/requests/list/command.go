package list

import (
	"context"
	"log"

	"github.com/synthgen/synthctl/api-types/admin"
	"github.com/synthgen/synthctl/cmd/synth/env"
	srest "github.com/synthgen/synthctl/cmd/synth/rest"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Status string `flag:"status" alias:"s" metavar:"pending|approved|rejected|processing|completed|failed|cancelled" help:"find requests in the status"`
	Skip   int    `flag:"skip" help:"number of requests to be skipped"`
	Limit  int    `flag:"limit" help:"max number of requests. (default: 100)"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"List data requests of all users. (admin only)",
		Flags{},
		flarc.Args{},
		common.NewAdminTask(Task()),
		flarc.WithDescription(`
List data requests of all users.

To review pending requests:

    {{ .Command }} --status pending
`),
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
		found, err := client.ListAllRequests(ctx, admin.RequestQuery{Page: page, Status: flags.Status})
		if err != nil {
			return err
		}
		return common.WriteJSON(cl.Stdout(), found)
	}
}
