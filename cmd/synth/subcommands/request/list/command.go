package list

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
	Status string `flag:"status" alias:"s" metavar:"pending|approved|rejected|processing|completed|failed|cancelled" help:"show only requests in the status"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"List your data requests.",
		Flags{},
		flarc.Args{},
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
		found, err := client.ListRequests(ctx)
		if err != nil {
			return err
		}

		status := requests.Status(cl.Flags().Status)
		result := make([]requests.DataRequest, 0, len(found))
		for _, dr := range found {
			if status == "" || dr.Status == status {
				result = append(result, dr)
			}
		}
		return common.WriteJSON(cl.Stdout(), result)
	}
}
