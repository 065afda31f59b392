package read

import (
	"context"
	"log"

	"github.com/synthgen/synthctl/cmd/synth/env"
	srest "github.com/synthgen/synthctl/cmd/synth/rest"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/youta-t/flarc"
)

const ARG_NOTIFICATION_ID = "NOTIFICATION_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Mark notifications as read.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_NOTIFICATION_ID, Required: true, Repeatable: true,
				Help: "id of notifications",
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
		ids, err := common.IntArgs(cl.Args(), ARG_NOTIFICATION_ID)
		if err != nil {
			return err
		}
		for _, id := range ids {
			if err := client.MarkNotificationRead(ctx, id); err != nil {
				return err
			}
			logger.Printf("notification %d is read.", id)
		}
		return nil
	}
}
