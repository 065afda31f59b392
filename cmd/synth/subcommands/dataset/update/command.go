package update

import (
	"context"
	"errors"
	"log"

	"github.com/synthgen/synthctl/api-types/datasets"
	"github.com/synthgen/synthctl/cmd/synth/env"
	srest "github.com/synthgen/synthctl/cmd/synth/rest"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Name        string `flag:"name" alias:"n" help:"new file name of the dataset"`
	Description string `flag:"description" help:"new description of the dataset"`
}

const ARG_DATASET_ID = "DATASET_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Rename a dataset or change its description.",
		Flags{},
		flarc.Args{
			{
				Name: ARG_DATASET_ID, Required: true,
				Help: "id of the dataset",
			},
		},
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
		id, err := common.IntArg(cl.Args(), ARG_DATASET_ID)
		if err != nil {
			return err
		}
		flags := cl.Flags()
		update := datasets.Update{}
		if flags.Name != "" {
			if !datasets.Accepts(flags.Name) {
				return errors.Join(flarc.ErrUsage, errors.New("--name should end with .csv, .xls or .xlsx"))
			}
			update.OriginalFilename = &flags.Name
		}
		if flags.Description != "" {
			update.Description = &flags.Description
		}
		if update.OriginalFilename == nil && update.Description == nil {
			logger.Println("Nothing to do.")
			return nil
		}

		resp, err := client.UpdateDataset(ctx, id, update)
		if err != nil {
			return err
		}
		return common.WriteJSON(cl.Stdout(), resp.Dataset)
	}
}
