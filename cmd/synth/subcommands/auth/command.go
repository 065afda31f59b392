package auth

import (
	auth_login "github.com/synthgen/synthctl/cmd/synth/subcommands/auth/login"
	auth_logout "github.com/synthgen/synthctl/cmd/synth/subcommands/auth/logout"
	auth_signup "github.com/synthgen/synthctl/cmd/synth/subcommands/auth/signup"
	auth_status "github.com/synthgen/synthctl/cmd/synth/subcommands/auth/status"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	login, err := auth_login.New()
	if err != nil {
		return nil, err
	}
	logout, err := auth_logout.New()
	if err != nil {
		return nil, err
	}
	signup, err := auth_signup.New()
	if err != nil {
		return nil, err
	}
	status, err := auth_status.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Login to or logout from the synthetic data server.",
		struct{}{},
		flarc.WithSubcommand("login", login),
		flarc.WithSubcommand("logout", logout),
		flarc.WithSubcommand("signup", signup),
		flarc.WithSubcommand("status", status),
	)
}
