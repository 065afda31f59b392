package request

import (
	request_create "github.com/synthgen/synthctl/cmd/synth/subcommands/request/create"
	request_download "github.com/synthgen/synthctl/cmd/synth/subcommands/request/download"
	request_generate "github.com/synthgen/synthctl/cmd/synth/subcommands/request/generate"
	request_list "github.com/synthgen/synthctl/cmd/synth/subcommands/request/list"
	request_rm "github.com/synthgen/synthctl/cmd/synth/subcommands/request/rm"
	request_show "github.com/synthgen/synthctl/cmd/synth/subcommands/request/show"
	request_update "github.com/synthgen/synthctl/cmd/synth/subcommands/request/update"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	create, err := request_create.New()
	if err != nil {
		return nil, err
	}
	list, err := request_list.New()
	if err != nil {
		return nil, err
	}
	show, err := request_show.New()
	if err != nil {
		return nil, err
	}
	update, err := request_update.New()
	if err != nil {
		return nil, err
	}
	rm, err := request_rm.New()
	if err != nil {
		return nil, err
	}
	generate, err := request_generate.New()
	if err != nil {
		return nil, err
	}
	generateOptimized, err := request_generate.NewOptimized()
	if err != nil {
		return nil, err
	}
	download, err := request_download.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Manipulate data requests, which admins approve before generation.",
		struct{}{},
		flarc.WithSubcommand("create", create),
		flarc.WithSubcommand("list", list),
		flarc.WithSubcommand("show", show),
		flarc.WithSubcommand("update", update),
		flarc.WithSubcommand("rm", rm),
		flarc.WithSubcommand("generate", generate),
		flarc.WithSubcommand("generate-optimized", generateOptimized),
		flarc.WithSubcommand("download", download),
	)
}
