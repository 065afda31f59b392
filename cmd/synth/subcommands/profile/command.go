package profile

import (
	profile_show "github.com/synthgen/synthctl/cmd/synth/subcommands/profile/show"
	profile_update "github.com/synthgen/synthctl/cmd/synth/subcommands/profile/update"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	show, err := profile_show.New()
	if err != nil {
		return nil, err
	}
	update, err := profile_update.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Show or update your user profile.",
		struct{}{},
		flarc.WithSubcommand("show", show),
		flarc.WithSubcommand("update", update),
	)
}
