package login

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/synthgen/synthctl/cmd/synth/config/credentials"
	srest "github.com/synthgen/synthctl/cmd/synth/rest"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Email    string `flag:"email" alias:"e" help:"email address of your account"`
	Password string `flag:"password" help:"password. If not given, the first line of stdin is read."`
}

// Connect makes a client without credentials.
type Connect func(common.CommonFlags) (srest.SynthClient, error)

func defaultConnect(cf common.CommonFlags) (srest.SynthClient, error) {
	return common.Connect(cf)
}

type Option struct {
	connect Connect
}

func WithConnect(c Connect) func(*Option) *Option {
	return func(o *Option) *Option {
		o.connect = c
		return o
	}
}

func New(options ...func(*Option) *Option) (flarc.Command, error) {
	option := &Option{connect: defaultConnect}
	for _, o := range options {
		option = o(option)
	}

	return flarc.NewCommand(
		"Login to the synthetic data server.",
		Flags{},
		flarc.Args{},
		common.NewTaskWithCommonFlag(Task(option.connect)),
		flarc.WithDescription(`
Login to the server of the current profile, and store the token.

The password is read from the first line of stdin, unless --password is passed.

Example:

    echo "$PASSWORD" | {{ .Command }} --email alice@example.com
`),
	)
}

func Task(connect Connect) common.SynthTaskWithCommonFlag[Flags] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		commonFlag common.CommonFlags,
		cl flarc.Commandline[Flags],
		params []any,
	) error {
		flags := cl.Flags()
		if flags.Email == "" {
			return errors.Join(flarc.ErrUsage, errors.New("--email is required"))
		}
		password := flags.Password
		if password == "" {
			p, err := common.ReadSecret(cl.Stdin())
			if err != nil {
				return errors.Join(flarc.ErrUsage, fmt.Errorf("password is not given: %w", err))
			}
			password = p
		}

		client, err := connect(commonFlag)
		if err != nil {
			return err
		}

		resp, err := client.Login(ctx, flags.Email, password)
		if err != nil {
			return err
		}

		store, err := credentials.Load(commonFlag.Credentials)
		if err != nil {
			return err
		}
		store.Put(commonFlag.Profile, credentials.FromLogin(resp))
		if err := store.Save(commonFlag.Credentials); err != nil {
			return fmt.Errorf("failed to save credentials (%s): %w", commonFlag.Credentials, err)
		}

		logger.Printf("logged in as %s (%s) with profile %s", resp.User.Email, resp.User.Role, commonFlag.Profile)
		return common.WriteJSON(cl.Stdout(), resp.User)
	}
}
