package update

import (
	"context"
	"log"

	"github.com/synthgen/synthctl/api-types/auth"
	"github.com/synthgen/synthctl/cmd/synth/env"
	srest "github.com/synthgen/synthctl/cmd/synth/rest"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/youta-t/flarc"
)

type Flags struct {
	FullName     string `flag:"full-name" help:"new full name"`
	Organization string `flag:"organization" help:"new organization"`
	Purpose      string `flag:"purpose" help:"new usage purpose"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Update your user profile.",
		Flags{},
		flarc.Args{},
		common.NewTask(Task()),
		flarc.WithDescription(`
Update fields of your user profile. Fields not passed are left as they are.

Example:

    {{ .Command }} --organization "ACME Inc." --purpose "testing ML pipelines"
`),
	)
}

func Task() common.Task[Flags] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		synthEnv env.SynthEnv,
		client srest.SynthClient,
		cl flarc.Commandline[Flags],
		params []any,
	) error {
		flags := cl.Flags()
		update := auth.ProfileUpdate{}
		if flags.FullName != "" {
			update.FullName = &flags.FullName
		}
		if flags.Organization != "" {
			update.Organization = &flags.Organization
		}
		if flags.Purpose != "" {
			update.UsagePurpose = &flags.Purpose
		}
		if update.Empty() {
			logger.Println("Nothing to do.")
			return nil
		}

		p, err := client.UpdateProfile(ctx, update)
		if err != nil {
			return err
		}
		logger.Println("profile is updated.")
		return common.WriteJSON(cl.Stdout(), p)
	}
}
