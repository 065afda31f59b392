package reject

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/synthgen/synthctl/cmd/synth/env"
	srest "github.com/synthgen/synthctl/cmd/synth/rest"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Reason string `flag:"reason" alias:"r" help:"why the request is rejected. It is told to the requester."`
}

const ARG_REQUEST_ID = "REQUEST_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Reject a data request. (admin only)",
		Flags{},
		flarc.Args{
			{
				Name: ARG_REQUEST_ID, Required: true,
				Help: "id of the data request",
			},
		},
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
		id, err := common.IntArg(cl.Args(), ARG_REQUEST_ID)
		if err != nil {
			return err
		}
		reason := strings.TrimSpace(cl.Flags().Reason)
		if reason == "" {
			return errors.Join(flarc.ErrUsage, errors.New("--reason is required"))
		}
		dr, err := client.RejectRequest(ctx, id, reason)
		if err != nil {
			return err
		}
		logger.Printf("request %d is %s.", dr.Id, dr.Status)
		return common.WriteJSON(cl.Stdout(), dr)
	}
}
