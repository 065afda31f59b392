package requests

import (
	requests_approve "github.com/synthgen/synthctl/cmd/synth/subcommands/admin/requests/approve"
	requests_list "github.com/synthgen/synthctl/cmd/synth/subcommands/admin/requests/list"
	requests_reject "github.com/synthgen/synthctl/cmd/synth/subcommands/admin/requests/reject"
	requests_rm "github.com/synthgen/synthctl/cmd/synth/subcommands/admin/requests/rm"
	requests_show "github.com/synthgen/synthctl/cmd/synth/subcommands/admin/requests/show"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	list, err := requests_list.New()
	if err != nil {
		return nil, err
	}
	show, err := requests_show.New()
	if err != nil {
		return nil, err
	}
	approve, err := requests_approve.New()
	if err != nil {
		return nil, err
	}
	reject, err := requests_reject.New()
	if err != nil {
		return nil, err
	}
	rm, err := requests_rm.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Review data requests of all users.",
		struct{}{},
		flarc.WithSubcommand("list", list),
		flarc.WithSubcommand("show", show),
		flarc.WithSubcommand("approve", approve),
		flarc.WithSubcommand("reject", reject),
		flarc.WithSubcommand("rm", rm),
	)
}
