package logs

import (
	logs_list "github.com/synthgen/synthctl/cmd/synth/subcommands/admin/logs/list"
	logs_show "github.com/synthgen/synthctl/cmd/synth/subcommands/admin/logs/show"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	list, err := logs_list.New()
	if err != nil {
		return nil, err
	}
	show, err := logs_show.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Read action logs of admins.",
		struct{}{},
		flarc.WithSubcommand("list", list),
		flarc.WithSubcommand("show", show),
	)
}
