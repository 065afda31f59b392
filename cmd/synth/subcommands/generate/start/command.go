package start

import (
	"context"
	"errors"
	"log"

	"github.com/synthgen/synthctl/api-types/generation"
	"github.com/synthgen/synthctl/api-types/optimization"
	"github.com/synthgen/synthctl/api-types/requests"
	"github.com/synthgen/synthctl/cmd/synth/env"
	srest "github.com/synthgen/synthctl/cmd/synth/rest"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/internal/follow"
	"github.com/synthgen/synthctl/cmd/synth/tracker"
	"github.com/youta-t/flarc"
)

type Flags struct {
	DatasetId  int    `flag:"dataset-id" alias:"d" help:"id of an uploaded dataset"`
	ModelType  string `flag:"model" alias:"m" metavar:"ctgan|tvae" help:"model type. (default: synthenv)"`
	SampleSize int    `flag:"samples" alias:"n" help:"number of rows to be generated. (default: synthenv)"`
	Mode       string `flag:"mode" metavar:"simple|optimization" help:"generation mode. (default: simple)"`

	Epochs          int     `flag:"epochs" help:"training epochs, in simple mode"`
	BatchSize       int     `flag:"batch-size" help:"training batch size, in simple mode"`
	LearningRate    float64 `flag:"learning-rate" help:"learning rate, in simple mode"`
	GeneratorLR     float64 `flag:"generator-lr" help:"learning rate of the generator, in simple mode"`
	DiscriminatorLR float64 `flag:"discriminator-lr" help:"learning rate of the discriminator, in simple mode"`

	Method          string   `flag:"method" metavar:"grid|random|bayesian" help:"search method, in optimization mode"`
	Trials          int      `flag:"trials" help:"number of trials, in optimization mode"`
	Hyperparameters []string `flag:"hyperparameter" help:"hyperparameter to be searched, in optimization mode. Repeatable."`

	Wait              bool `flag:"wait" alias:"w" help:"wait until generation ends, showing its progress"`
	CancelOnInterrupt bool `flag:"cancel-on-interrupt" help:"with --wait, cancel generation when interrupted"`
}

type option struct {
	trackerOptions []tracker.Option
}

type Option func(*option) *option

// WithTrackerOption passes options to the tracker following generation.
func WithTrackerOption(o ...tracker.Option) Option {
	return func(op *option) *option {
		op.trackerOptions = append(op.trackerOptions, o...)
		return op
	}
}

func New(options ...Option) (flarc.Command, error) {
	return flarc.NewCommand(
		"Start generation of synthetic data from an uploaded dataset.",
		Flags{},
		flarc.Args{},
		common.NewTask(Task(options...)),
		flarc.WithDescription(`
Start generation of synthetic data from an uploaded dataset.

Settings not passed are taken from synthenv, or the defaults of the server.
The config is validated before it is sent.

With --wait, the command polls the job every few seconds until it is completed,
failed or cancelled, showing progress on stderr.

Example:

    {{ .Command }} --dataset-id 3 --model ctgan --samples 1000 --epochs 300 --wait
    {{ .Command }} --dataset-id 3 --samples 1000 --mode optimization --method bayesian --trials 10
`),
	)
}

func Task(options ...Option) common.Task[Flags] {
	op := &option{}
	for _, o := range options {
		op = o(op)
	}

	return func(
		ctx context.Context,
		logger *log.Logger,
		synthEnv env.SynthEnv,
		client srest.SynthClient,
		cl flarc.Commandline[Flags],
		params []any,
	) error {
		flags := cl.Flags()
		config, err := Build(synthEnv, flags)
		if err != nil {
			return err
		}

		if !flags.Wait {
			resp, err := client.StartGeneration(ctx, config)
			if err != nil {
				return err
			}
			logger.Printf(
				"job %d is started. Follow it with `synth generate watch %d`.",
				resp.RequestId, resp.RequestId,
			)
			return common.WriteJSON(cl.Stdout(), resp)
		}

		f := follow.Follower{
			Logger: logger, Env: synthEnv, Client: client,
			Stdout: cl.Stdout(), Stderr: cl.Stderr(),
			CancelOnInterrupt: flags.CancelOnInterrupt,
			TrackerOptions:    op.trackerOptions,
		}
		if sess, ok := common.SessionOf(params); ok {
			f.Session = &sess
		}
		return f.Run(ctx, &config)
	}
}

// Build makes a generation config from flags and synthenv, and validates it.
func Build(synthEnv env.SynthEnv, flags Flags) (generation.ConfigRequest, error) {
	config := generation.ConfigRequest{
		DatasetId:  flags.DatasetId,
		ModelType:  generation.ModelType(flags.ModelType),
		SampleSize: flags.SampleSize,
		Mode:       generation.Mode(flags.Mode),
	}
	if config.Mode == "" {
		config.Mode = generation.Simple
	}

	switch config.Mode {
	case generation.Simple:
		if flags.Method != "" || 0 < flags.Trials || 0 < len(flags.Hyperparameters) {
			return generation.ConfigRequest{}, errors.Join(
				flarc.ErrUsage,
				errors.New("--method, --trials and --hyperparameter are for --mode optimization"),
			)
		}
		config.Epochs = positive(flags.Epochs)
		config.BatchSize = positive(flags.BatchSize)
		config.LearningRate = positive(flags.LearningRate)
		config.GeneratorLR = positive(flags.GeneratorLR)
		config.DiscriminatorLR = positive(flags.DiscriminatorLR)
	case generation.Optimization:
		config.OptimizationMethod = optimization.Method(flags.Method)
		if config.OptimizationMethod == "" {
			config.OptimizationMethod = optimization.Bayesian
		}
		config.NTrials = positive(flags.Trials)
		config.Hyperparameters = flags.Hyperparameters
	default:
		return generation.ConfigRequest{}, errors.Join(
			flarc.ErrUsage, errors.New("--mode should be simple or optimization"),
		)
	}

	synthEnv.Complete(&config)
	defaults(&config)
	if err := config.Validate(); err != nil {
		return generation.ConfigRequest{}, errors.Join(flarc.ErrUsage, err)
	}
	return config, nil
}

// defaults fills what neither flags nor synthenv give, as the server does.
func defaults(config *generation.ConfigRequest) {
	d := requests.DefaultParams()
	if config.ModelType == "" {
		config.ModelType = generation.ModelType(d.ModelType)
	}
	if config.Mode != generation.Simple {
		return
	}
	if config.Epochs == nil {
		config.Epochs = &d.Epochs
	}
	if config.BatchSize == nil {
		config.BatchSize = &d.BatchSize
	}
	if config.LearningRate == nil {
		config.LearningRate = &d.LearningRate
	}
}

func positive[T int | float64](v T) *T {
	if v <= 0 {
		return nil
	}
	return &v
}
