package stop

import (
	"context"
	"log"

	"github.com/synthgen/synthctl/cmd/synth/env"
	srest "github.com/synthgen/synthctl/cmd/synth/rest"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/youta-t/flarc"
)

const ARG_CONFIG_ID = "CONFIG_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Stop hyperparameter search, and delete its config.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_CONFIG_ID, Required: true,
				Help: "id of the optimization config",
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
		id, err := common.IntArg(cl.Args(), ARG_CONFIG_ID)
		if err != nil {
			return err
		}
		if err := client.StopOptimization(ctx, id); err != nil {
			return err
		}
		logger.Printf("optimization %d is stopped.", id)
		return nil
	}
}
