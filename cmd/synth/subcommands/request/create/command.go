package create

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/synthgen/synthctl/api-types/generation"
	"github.com/synthgen/synthctl/api-types/optimization"
	"github.com/synthgen/synthctl/api-types/requests"
	"github.com/synthgen/synthctl/cmd/synth/env"
	srest "github.com/synthgen/synthctl/cmd/synth/rest"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Name      string `flag:"name" alias:"n" help:"name of the request"`
	Dataset   string `flag:"dataset" alias:"d" help:"name of the dataset to be synthesized"`
	DatasetId int    `flag:"dataset-id" help:"id of an uploaded dataset to be synthesized"`

	ModelType    string  `flag:"model" alias:"m" metavar:"ctgan|tvae" help:"model type. (default: synthenv, or ctgan)"`
	Epochs       int     `flag:"epochs" help:"training epochs. (default: synthenv, or server default)"`
	BatchSize    int     `flag:"batch-size" help:"training batch size. (default: synthenv, or server default)"`
	LearningRate float64 `flag:"learning-rate" help:"learning rate. (default: synthenv, or server default)"`

	Optimize           bool     `flag:"optimize" help:"search hyperparameters before training"`
	OptimizationMethod string   `flag:"method" metavar:"grid|random|bayesian" help:"method of hyperparameter search"`
	Trials             int      `flag:"trials" help:"number of trials of hyperparameter search"`
	Hyperparameters    []string `flag:"hyperparameter" help:"hyperparameter to be searched. Repeatable."`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Create a data request.",
		Flags{},
		flarc.Args{},
		common.NewTask(Task()),
		flarc.WithDescription(`
Create a request of synthetic data. Admins review it, and generation can start
after it is approved.

Parameters not passed are taken from synthenv, or the defaults of the server.

Example:

    {{ .Command }} --name "customers" --dataset customers.csv --model tvae --epochs 200
    {{ .Command }} --name "customers" --dataset-id 12 --optimize --method bayesian --trials 10
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
		create, err := Build(synthEnv, flags)
		if err != nil {
			return err
		}

		dr, err := client.CreateRequest(ctx, create)
		if err != nil {
			return err
		}
		logger.Printf("request %d is created. Wait for approval of admins.", dr.Id)
		return common.WriteJSON(cl.Stdout(), dr)
	}
}

// Build makes a body of creating request from flags and synthenv.
func Build(synthEnv env.SynthEnv, flags Flags) (requests.Create, error) {
	if strings.TrimSpace(flags.Name) == "" {
		return requests.Create{}, errors.Join(flarc.ErrUsage, errors.New("--name is required"))
	}
	if flags.Dataset == "" && flags.DatasetId <= 0 {
		return requests.Create{}, errors.Join(flarc.ErrUsage, errors.New("--dataset or --dataset-id is required"))
	}

	body := requests.RequestBody{
		RequestName: flags.Name,
		DatasetName: flags.Dataset,
	}
	if 0 < flags.DatasetId {
		id := flags.DatasetId
		body.UploadedDatasetId = &id
	}

	p := synthEnv.Params()
	if flags.ModelType != "" {
		switch mt := generation.ModelType(flags.ModelType); mt {
		case generation.CTGAN, generation.TVAE:
			p.ModelType = string(mt)
		default:
			return requests.Create{}, errors.Join(flarc.ErrUsage, errors.New("--model should be ctgan or tvae"))
		}
	}
	if 0 < flags.Epochs {
		p.Epochs = flags.Epochs
	}
	if 0 < flags.BatchSize {
		p.BatchSize = flags.BatchSize
	}
	if 0 < flags.LearningRate {
		p.LearningRate = flags.LearningRate
	}

	if flags.Optimize {
		p.OptimizationEnabled = true
		if flags.OptimizationMethod != "" {
			if !optimization.Method(flags.OptimizationMethod).Valid() {
				return requests.Create{}, errors.Join(
					flarc.ErrUsage, errors.New("--method should be grid, random or bayesian"),
				)
			}
			p.OptimizationMethod = flags.OptimizationMethod
		}
		if 0 < flags.Trials {
			p.OptimizationNTrials = flags.Trials
		}
		p.Hyperparameters = flags.Hyperparameters
	}

	return requests.Create{Request: body, Params: p}, nil
}
