package users

import (
	users_activate "github.com/synthgen/synthctl/cmd/synth/subcommands/admin/users/activate"
	users_list "github.com/synthgen/synthctl/cmd/synth/subcommands/admin/users/list"
	users_profile "github.com/synthgen/synthctl/cmd/synth/subcommands/admin/users/profile"
	users_rm "github.com/synthgen/synthctl/cmd/synth/subcommands/admin/users/rm"
	users_role "github.com/synthgen/synthctl/cmd/synth/subcommands/admin/users/role"
	users_show "github.com/synthgen/synthctl/cmd/synth/subcommands/admin/users/show"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	list, err := users_list.New()
	if err != nil {
		return nil, err
	}
	show, err := users_show.New()
	if err != nil {
		return nil, err
	}
	profile, err := users_profile.New()
	if err != nil {
		return nil, err
	}
	activate, err := users_activate.New(true)
	if err != nil {
		return nil, err
	}
	deactivate, err := users_activate.New(false)
	if err != nil {
		return nil, err
	}
	role, err := users_role.New()
	if err != nil {
		return nil, err
	}
	rm, err := users_rm.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Manage users.",
		struct{}{},
		flarc.WithSubcommand("list", list),
		flarc.WithSubcommand("show", show),
		flarc.WithSubcommand("profile", profile),
		flarc.WithSubcommand("activate", activate),
		flarc.WithSubcommand("deactivate", deactivate),
		flarc.WithSubcommand("role", role),
		flarc.WithSubcommand("rm", rm),
	)
}
