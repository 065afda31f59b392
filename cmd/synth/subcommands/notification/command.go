package notification

import (
	notification_list "github.com/synthgen/synthctl/cmd/synth/subcommands/notification/list"
	notification_read "github.com/synthgen/synthctl/cmd/synth/subcommands/notification/read"
	notification_readall "github.com/synthgen/synthctl/cmd/synth/subcommands/notification/readall"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	list, err := notification_list.New()
	if err != nil {
		return nil, err
	}
	read, err := notification_read.New()
	if err != nil {
		return nil, err
	}
	readall, err := notification_readall.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Read notifications about your requests.",
		struct{}{},
		flarc.WithSubcommand("list", list),
		flarc.WithSubcommand("read", read),
		flarc.WithSubcommand("read-all", readall),
	)
}
