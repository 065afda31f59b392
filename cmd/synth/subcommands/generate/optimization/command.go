package optimization

import (
	"context"
	"log"

	"github.com/synthgen/synthctl/cmd/synth/env"
	srest "github.com/synthgen/synthctl/cmd/synth/rest"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Best bool `flag:"best" help:"show only the best parameters and score"`
}

const ARG_JOB_ID = "JOB_ID"

type best struct {
	BestScore      *float64       `json:"best_score,omitempty"`
	BestParameters map[string]any `json:"best_parameters"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Show hyperparameter search results of a generation job in optimization mode.",
		Flags{},
		flarc.Args{
			{
				Name: ARG_JOB_ID, Required: true,
				Help: "id of the generation job",
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
		id, err := common.IntArg(cl.Args(), ARG_JOB_ID)
		if err != nil {
			return err
		}
		res, err := client.GetGenerationOptimization(ctx, id)
		if err != nil {
			return err
		}
		logger.Printf("%d of %d trials are completed.", res.CompletedTrials, res.TotalTrials)
		if cl.Flags().Best {
			return common.WriteJSON(cl.Stdout(), best{BestScore: res.BestScore, BestParameters: res.BestParameters})
		}
		return common.WriteJSON(cl.Stdout(), res)
	}
}
