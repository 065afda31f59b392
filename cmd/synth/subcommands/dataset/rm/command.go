package rm

import (
	"context"
	"log"

	"github.com/synthgen/synthctl/cmd/synth/env"
	srest "github.com/synthgen/synthctl/cmd/synth/rest"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/youta-t/flarc"
)

const ARG_DATASET_ID = "DATASET_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Delete a dataset.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_DATASET_ID, Required: true,
				Help: "id of the dataset",
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
		id, err := common.IntArg(cl.Args(), ARG_DATASET_ID)
		if err != nil {
			return err
		}
		if err := client.DeleteDataset(ctx, id); err != nil {
			return err
		}
		logger.Printf("dataset %d is deleted.", id)
		return nil
	}
}
