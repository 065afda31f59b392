package logout

import (
	"context"
	"log"

	"github.com/synthgen/synthctl/cmd/synth/config/credentials"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Forget the token of the current profile.",
		struct{}{},
		flarc.Args{},
		common.NewTaskWithCommonFlag(Task()),
	)
}

func Task() common.SynthTaskWithCommonFlag[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		commonFlag common.CommonFlags,
		cl flarc.Commandline[struct{}],
		params []any,
	) error {
		store, err := credentials.Load(commonFlag.Credentials)
		if err != nil {
			return err
		}
		if !store.Forget(commonFlag.Profile) {
			logger.Printf("not logged in with profile %s", commonFlag.Profile)
			return nil
		}
		if err := store.Save(commonFlag.Credentials); err != nil {
			return err
		}
		logger.Printf("logged out from profile %s", commonFlag.Profile)
		return nil
	}
}
