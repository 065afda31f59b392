package list

import (
	"context"
	"log"

	"github.com/synthgen/synthctl/cmd/synth/env"
	srest "github.com/synthgen/synthctl/cmd/synth/rest"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Skip  int `flag:"skip" help:"number of logs to be skipped"`
	Limit int `flag:"limit" help:"max number of logs. (default: 100)"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"List action logs of admins. (admin only)",
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
		logs, err := client.ListActionLogs(ctx, page)
		if err != nil {
			return err
		}
		return common.WriteJSON(cl.Stdout(), logs)
	}
}
