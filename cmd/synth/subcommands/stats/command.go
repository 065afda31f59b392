package stats

import (
	"github.com/synthgen/synthctl/api-types/stats"
	stats_export "github.com/synthgen/synthctl/cmd/synth/subcommands/stats/export"
	stats_kind "github.com/synthgen/synthctl/cmd/synth/subcommands/stats/kind"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	dashboard, err := stats_kind.New(stats.Dashboard)
	if err != nil {
		return nil, err
	}
	system, err := stats_kind.New(stats.System)
	if err != nil {
		return nil, err
	}
	performance, err := stats_kind.New(stats.Performance)
	if err != nil {
		return nil, err
	}
	export, err := stats_export.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Show statistics of the service.",
		struct{}{},
		flarc.WithSubcommand(string(stats.Dashboard), dashboard),
		flarc.WithSubcommand(string(stats.System), system),
		flarc.WithSubcommand(string(stats.Performance), performance),
		flarc.WithSubcommand("export", export),
	)
}
