package generate

import (
	generate_cancel "github.com/synthgen/synthctl/cmd/synth/subcommands/generate/cancel"
	generate_download "github.com/synthgen/synthctl/cmd/synth/subcommands/generate/download"
	generate_list "github.com/synthgen/synthctl/cmd/synth/subcommands/generate/list"
	generate_optimization "github.com/synthgen/synthctl/cmd/synth/subcommands/generate/optimization"
	generate_start "github.com/synthgen/synthctl/cmd/synth/subcommands/generate/start"
	generate_status "github.com/synthgen/synthctl/cmd/synth/subcommands/generate/status"
	generate_watch "github.com/synthgen/synthctl/cmd/synth/subcommands/generate/watch"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	start, err := generate_start.New()
	if err != nil {
		return nil, err
	}
	status, err := generate_status.New()
	if err != nil {
		return nil, err
	}
	watch, err := generate_watch.New()
	if err != nil {
		return nil, err
	}
	cancel, err := generate_cancel.New()
	if err != nil {
		return nil, err
	}
	list, err := generate_list.New()
	if err != nil {
		return nil, err
	}
	download, err := generate_download.New()
	if err != nil {
		return nil, err
	}
	optimization, err := generate_optimization.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Generate synthetic data from uploaded datasets, and follow the jobs.",
		struct{}{},
		flarc.WithSubcommand("start", start),
		flarc.WithSubcommand("status", status),
		flarc.WithSubcommand("watch", watch),
		flarc.WithSubcommand("cancel", cancel),
		flarc.WithSubcommand("list", list),
		flarc.WithSubcommand("download", download),
		flarc.WithSubcommand("optimization", optimization),
	)
}
