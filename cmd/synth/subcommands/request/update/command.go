package update

import (
	"context"
	"log"

	"github.com/synthgen/synthctl/api-types/requests"
	"github.com/synthgen/synthctl/cmd/synth/env"
	srest "github.com/synthgen/synthctl/cmd/synth/rest"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Name    string `flag:"name" alias:"n" help:"new name of the request"`
	Dataset string `flag:"dataset" alias:"d" help:"new dataset name of the request"`
}

const ARG_REQUEST_ID = "REQUEST_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Rename a data request or change its dataset.",
		Flags{},
		flarc.Args{
			{
				Name: ARG_REQUEST_ID, Required: true,
				Help: "id of the request to be updated",
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
		id, err := common.IntArg(cl.Args(), ARG_REQUEST_ID)
		if err != nil {
			return err
		}

		flags := cl.Flags()
		update := requests.Update{}
		if flags.Name != "" {
			update.RequestName = &flags.Name
		}
		if flags.Dataset != "" {
			update.DatasetName = &flags.Dataset
		}
		if update.RequestName == nil && update.DatasetName == nil {
			logger.Println("Nothing to do.")
			return nil
		}

		dr, err := client.UpdateRequest(ctx, id, update)
		if err != nil {
			return err
		}
		logger.Printf("request %d is updated.", dr.Id)
		return common.WriteJSON(cl.Stdout(), dr)
	}
}
