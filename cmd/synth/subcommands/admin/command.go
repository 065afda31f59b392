package admin

import (
	admin_logs "github.com/synthgen/synthctl/cmd/synth/subcommands/admin/logs"
	admin_requests "github.com/synthgen/synthctl/cmd/synth/subcommands/admin/requests"
	admin_users "github.com/synthgen/synthctl/cmd/synth/subcommands/admin/users"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	users, err := admin_users.New()
	if err != nil {
		return nil, err
	}
	requests, err := admin_requests.New()
	if err != nil {
		return nil, err
	}
	logs, err := admin_logs.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Administrate users and data requests. Only admins can use them.",
		struct{}{},
		flarc.WithSubcommand("users", users),
		flarc.WithSubcommand("requests", requests),
		flarc.WithSubcommand("logs", logs),
	)
}
