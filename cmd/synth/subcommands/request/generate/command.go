package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/synthgen/synthctl/api-types/requests"
	"github.com/synthgen/synthctl/cmd/synth/env"
	srest "github.com/synthgen/synthctl/cmd/synth/rest"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/internal/progress"
	"github.com/synthgen/synthctl/cmd/synth/tracker"
	"github.com/youta-t/flarc"
	"gopkg.in/yaml.v3"
)

const ARG_REQUEST_ID = "REQUEST_ID"

type Flags struct {
	Wait bool `flag:"wait" alias:"w" help:"wait until generation ends, showing its progress"`
}

type OptimizedFlags struct {
	Method         string `flag:"method" metavar:"bayesian|random|grid" help:"method of hyperparameter search. (default: bayesian)"`
	MaxEvaluations int    `flag:"max-evaluations" help:"max number of evaluations in search. (default: 20)"`
	TimeoutMinutes int    `flag:"timeout-minutes" help:"time limit of search in minutes. (default: 60)"`
	Acquisition    string `flag:"acquisition" metavar:"expected_improvement|upper_confidence_bound|probability_improvement" help:"acquisition function of bayesian search"`
	SearchSpace    string `flag:"search-space" alias:"f" metavar:"FILE" help:"YAML or JSON file of the search space. (default: server default)"`
	Wait           bool   `flag:"wait" alias:"w" help:"wait until generation ends, showing its progress"`
}

const (
	defaultOptimizationMethod = "bayesian"
	defaultMaxEvaluations     = 20
	defaultTimeoutMinutes     = 60
)

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
		"Start generation of an approved data request.",
		Flags{},
		flarc.Args{
			{
				Name: ARG_REQUEST_ID, Required: true,
				Help: "id of the approved request",
			},
		},
		common.NewTask(Task(options...)),
		flarc.WithDescription(`
Start generation of an approved data request.

With --wait, the command follows the request until it is completed, failed or
cancelled. Interrupting the command stops following, but not the generation.
`),
	)
}

func NewOptimized(options ...Option) (flarc.Command, error) {
	return flarc.NewCommand(
		"Start generation of an approved data request, searching hyperparameters first.",
		OptimizedFlags{},
		flarc.Args{
			{
				Name: ARG_REQUEST_ID, Required: true,
				Help: "id of the approved request",
			},
		},
		common.NewTask(OptimizedTask(options...)),
		flarc.WithDescription(`
Start generation of an approved data request. Hyperparameters are searched
before training.

Example:

    {{ .Command }} 12 --method bayesian --max-evaluations 30 --search-space ./space.yaml --wait

The search space file maps hyperparameter names to their ranges, like:

    epochs: [100, 500]
    batch_size: [256, 1024]
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
		id, err := common.IntArg(cl.Args(), ARG_REQUEST_ID)
		if err != nil {
			return err
		}
		return run(
			ctx, logger, synthEnv, client, cl.Stdout(), cl.Stderr(),
			tracker.LegacyJob{RequestId: id}, cl.Flags().Wait, op,
		)
	}
}

func OptimizedTask(options ...Option) common.Task[OptimizedFlags] {
	op := &option{}
	for _, o := range options {
		op = o(op)
	}

	return func(
		ctx context.Context,
		logger *log.Logger,
		synthEnv env.SynthEnv,
		client srest.SynthClient,
		cl flarc.Commandline[OptimizedFlags],
		params []any,
	) error {
		id, err := common.IntArg(cl.Args(), ARG_REQUEST_ID)
		if err != nil {
			return err
		}
		og, err := BuildOptimized(cl.Flags())
		if err != nil {
			return err
		}
		return run(
			ctx, logger, synthEnv, client, cl.Stdout(), cl.Stderr(),
			tracker.LegacyJob{RequestId: id, Optimization: &og}, cl.Flags().Wait, op,
		)
	}
}

// BuildOptimized makes a body of optimized generation from flags.
func BuildOptimized(flags OptimizedFlags) (requests.OptimizedGenerate, error) {
	og := requests.OptimizedGenerate{
		OptimizationType:    defaultOptimizationMethod,
		MaxEvaluations:      defaultMaxEvaluations,
		TimeoutMinutes:      defaultTimeoutMinutes,
		AcquisitionFunction: flags.Acquisition,
		SearchSpace:         map[string]any{},
	}
	if flags.Method != "" {
		switch flags.Method {
		case "bayesian", "random", "grid":
			og.OptimizationType = flags.Method
		default:
			return requests.OptimizedGenerate{}, errors.Join(
				flarc.ErrUsage, errors.New("--method should be bayesian, random or grid"),
			)
		}
	}
	if flags.MaxEvaluations < 0 || flags.TimeoutMinutes < 0 {
		return requests.OptimizedGenerate{}, errors.Join(
			flarc.ErrUsage, errors.New("--max-evaluations and --timeout-minutes should be positive"),
		)
	}
	if 0 < flags.MaxEvaluations {
		og.MaxEvaluations = flags.MaxEvaluations
	}
	if 0 < flags.TimeoutMinutes {
		og.TimeoutMinutes = flags.TimeoutMinutes
	}

	if flags.SearchSpace != "" {
		content, err := os.ReadFile(flags.SearchSpace)
		if err != nil {
			return requests.OptimizedGenerate{}, err
		}
		// JSON is a YAML.
		if err := yaml.Unmarshal(content, &og.SearchSpace); err != nil {
			return requests.OptimizedGenerate{}, fmt.Errorf(
				"%w: search space (%s) is not a YAML or JSON mapping", err, flags.SearchSpace,
			)
		}
		if og.SearchSpace == nil {
			og.SearchSpace = map[string]any{}
		}
	}
	return og, nil
}

func run(
	ctx context.Context,
	logger *log.Logger,
	synthEnv env.SynthEnv,
	client srest.SynthClient,
	stdout, stderr io.Writer,
	job tracker.LegacyJob,
	wait bool,
	op *option,
) error {
	if !wait {
		resp, err := startOnly(ctx, client, job)
		if err != nil {
			return err
		}
		logger.Printf("generation of request %d is started.", job.RequestId)
		return common.WriteJSON(stdout, resp)
	}

	bar, err := progress.NewGeneration(stderr, logger.Printf)
	if err != nil {
		return err
	}
	defer bar.Finish()

	opts := []tracker.Option{
		tracker.WithInterval(synthEnv.Interval()),
		tracker.WithObserver(bar.Observe),
	}
	opts = append(opts, op.trackerOptions...)
	t := tracker.New[tracker.LegacyJob](tracker.Legacy{Client: client}, opts...)

	snap, err := t.Run(ctx, &job)
	if err != nil && errors.Is(err, context.Canceled) {
		logger.Printf(
			"stopped following request %d. Generation continues on the server.", snap.JobId,
		)
		return err
	}
	if err := progress.Outcome(snap, err); err != nil {
		return err
	}

	dr, err := client.GetRequest(ctx, snap.JobId)
	if err != nil {
		return err
	}
	logger.Printf("request %d is completed. Download it with `synth request download %d`.", dr.Id, dr.Id)
	return common.WriteJSON(stdout, dr)
}

func startOnly(ctx context.Context, client srest.SynthClient, job tracker.LegacyJob) (requests.GenerateResponse, error) {
	if job.Optimization != nil {
		return client.GenerateWithOptimization(ctx, job.RequestId, *job.Optimization)
	}
	return client.Generate(ctx, job.RequestId)
}
