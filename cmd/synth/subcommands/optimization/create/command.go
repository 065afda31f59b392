package create

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/synthgen/synthctl/api-types/optimization"
	"github.com/synthgen/synthctl/cmd/synth/env"
	srest "github.com/synthgen/synthctl/cmd/synth/rest"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/youta-t/flarc"
	"gopkg.in/yaml.v3"
)

type Flags struct {
	File           string `flag:"file" alias:"f" metavar:"FILE" help:"YAML or JSON file of the config. Flags override it."`
	RequestId      int    `flag:"request-id" alias:"r" help:"id of the data request to be optimized"`
	Method         string `flag:"method" metavar:"grid|random|bayesian" help:"search method. (default: bayesian)"`
	MaxEvaluations int    `flag:"max-evaluations" help:"max number of evaluations. (default: 20)"`
	TimeoutMinutes int    `flag:"timeout-minutes" help:"time limit in minutes. (default: 60)"`
	Acquisition    string `flag:"acquisition" metavar:"expected_improvement|upper_confidence_bound|probability_improvement" help:"acquisition function of bayesian search"`
	Start          bool   `flag:"start" help:"start the search right after creating"`
}

const (
	defaultMaxEvaluations = 20
	defaultTimeoutMinutes = 60
)

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Create a hyperparameter search config.",
		Flags{},
		flarc.Args{},
		common.NewTask(Task()),
		flarc.WithDescription(`
Create a hyperparameter search config for a data request.

The config can be written in a file, like:

    request_id: 12
    optimization_type: bayesian
    max_evaluations: 30
    timeout_minutes: 90
    acquisition_function: expected_improvement
    search_space:
      epochs: {min_value: 100, max_value: 500, step: 50}
      batch_size: {choices: [256, 512, 1024]}
      generator_lr: {min_value: 0.00001, max_value: 0.001, scale: log}

Flags override values in the file.
`),
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
		flags := cl.Flags()
		cc, err := Build(flags)
		if err != nil {
			return err
		}

		conf, err := client.CreateOptimization(ctx, cc)
		if err != nil {
			return err
		}
		logger.Printf("optimization config %d is created.", conf.Id)

		if flags.Start {
			resp, err := client.StartOptimization(ctx, conf.Id)
			if err != nil {
				return err
			}
			logger.Printf("optimization %d is started: %s", conf.Id, resp.Message)
		}
		return common.WriteJSON(cl.Stdout(), conf)
	}
}

// Build makes a config from the file and flags.
func Build(flags Flags) (optimization.ConfigCreate, error) {
	cc := optimization.ConfigCreate{
		OptimizationType: optimization.Bayesian,
		MaxEvaluations:   defaultMaxEvaluations,
		TimeoutMinutes:   defaultTimeoutMinutes,
	}
	if flags.File != "" {
		if err := load(flags.File, &cc); err != nil {
			return optimization.ConfigCreate{}, err
		}
	}

	if 0 < flags.RequestId {
		cc.RequestId = flags.RequestId
	}
	if flags.Method != "" {
		cc.OptimizationType = optimization.Method(flags.Method)
	}
	if 0 < flags.MaxEvaluations {
		cc.MaxEvaluations = flags.MaxEvaluations
	}
	if 0 < flags.TimeoutMinutes {
		cc.TimeoutMinutes = flags.TimeoutMinutes
	}
	if flags.Acquisition != "" {
		cc.AcquisitionFunction = optimization.AcquisitionFunction(flags.Acquisition)
	}

	if cc.RequestId <= 0 {
		return optimization.ConfigCreate{}, errors.Join(flarc.ErrUsage, errors.New("--request-id is required"))
	}
	if !cc.OptimizationType.Valid() {
		return optimization.ConfigCreate{}, errors.Join(
			flarc.ErrUsage, fmt.Errorf("unknown method: %s", cc.OptimizationType),
		)
	}
	switch cc.AcquisitionFunction {
	case "", optimization.ExpectedImprovement, optimization.UpperConfidenceBound, optimization.ProbabilityOfImprovement:
	default:
		return optimization.ConfigCreate{}, errors.Join(
			flarc.ErrUsage, fmt.Errorf("unknown acquisition function: %s", cc.AcquisitionFunction),
		)
	}
	return cc, nil
}

// load reads YAML (or JSON) file into cc, by the json names of its fields.
func load(path string, cc *optimization.ConfigCreate) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var doc map[string]any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return fmt.Errorf("%w: %s is not a YAML or JSON mapping", err, path)
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %s", err, path)
	}
	if err := json.Unmarshal(b, cc); err != nil {
		return fmt.Errorf("%w: %s has unexpected values", err, path)
	}
	return nil
}
