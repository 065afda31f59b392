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
	Unread bool `flag:"unread" alias:"u" help:"show only notifications not read yet"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Show your notifications.",
		Flags{},
		nil,
		common.NewTask(Task()),
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
		ns, err := client.ListNotifications(ctx)
		if err != nil {
			return err
		}
		unread := ns.Unread()
		if cl.Flags().Unread {
			ns = unread
		}
		if err := common.WriteJSON(cl.Stdout(), ns); err != nil {
			return err
		}
		logger.Printf("%d unread notification(s).", len(unread))
		return nil
	}
}
