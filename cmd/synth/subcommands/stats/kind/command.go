package kind

import (
	"context"
	"fmt"
	"log"

	"github.com/synthgen/synthctl/api-types/stats"
	"github.com/synthgen/synthctl/cmd/synth/env"
	srest "github.com/synthgen/synthctl/cmd/synth/rest"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/youta-t/flarc"
)

func New(kind stats.Kind) (flarc.Command, error) {
	return flarc.NewCommand(
		fmt.Sprintf("Show %s statistics.", kind),
		struct{}{},
		nil,
		common.NewTask(Task(kind)),
	)
}

func Task(kind stats.Kind) common.Task[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		synthEnv env.SynthEnv,
		client srest.SynthClient,
		cl flarc.Commandline[struct{}],
		params []any,
	) error {
		doc, err := client.GetStats(ctx, kind)
		if err != nil {
			return err
		}
		return common.WriteJSON(cl.Stdout(), doc)
	}
}
