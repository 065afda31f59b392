package optimization

import (
	optimization_best "github.com/synthgen/synthctl/cmd/synth/subcommands/optimization/best"
	optimization_create "github.com/synthgen/synthctl/cmd/synth/subcommands/optimization/create"
	optimization_show "github.com/synthgen/synthctl/cmd/synth/subcommands/optimization/show"
	optimization_start "github.com/synthgen/synthctl/cmd/synth/subcommands/optimization/start"
	optimization_stop "github.com/synthgen/synthctl/cmd/synth/subcommands/optimization/stop"
	optimization_trials "github.com/synthgen/synthctl/cmd/synth/subcommands/optimization/trials"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	create, err := optimization_create.New()
	if err != nil {
		return nil, err
	}
	show, err := optimization_show.New()
	if err != nil {
		return nil, err
	}
	start, err := optimization_start.New()
	if err != nil {
		return nil, err
	}
	trials, err := optimization_trials.New()
	if err != nil {
		return nil, err
	}
	best, err := optimization_best.New()
	if err != nil {
		return nil, err
	}
	stop, err := optimization_stop.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Search hyperparameters of data requests.",
		struct{}{},
		flarc.WithSubcommand("create", create),
		flarc.WithSubcommand("show", show),
		flarc.WithSubcommand("start", start),
		flarc.WithSubcommand("trials", trials),
		flarc.WithSubcommand("best", best),
		flarc.WithSubcommand("stop", stop),
	)
}
