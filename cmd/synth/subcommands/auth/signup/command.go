package signup

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/synthgen/synthctl/api-types/auth"
	srest "github.com/synthgen/synthctl/cmd/synth/rest"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Email        string `flag:"email" alias:"e" help:"email address of the new account"`
	Username     string `flag:"username" alias:"u" help:"user name of the new account"`
	FullName     string `flag:"full-name" help:"your full name"`
	Organization string `flag:"organization" help:"organization you belong to"`
	Purpose      string `flag:"purpose" help:"what you use synthetic data for"`
	Password     string `flag:"password" help:"password. If not given, the first line of stdin is read."`
}

type Connect func(common.CommonFlags) (srest.SynthClient, error)

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
	option := &Option{
		connect: func(cf common.CommonFlags) (srest.SynthClient, error) { return common.Connect(cf) },
	}
	for _, o := range options {
		option = o(option)
	}

	return flarc.NewCommand(
		"Create a new account.",
		Flags{},
		flarc.Args{},
		common.NewTaskWithCommonFlag(Task(option.connect)),
		flarc.WithDescription(`
Create a new account on the server of the current profile.

The account may need approval of admins before use.
After signing up, login with "synth auth login".
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
		if flags.Email == "" || flags.Username == "" {
			return errors.Join(flarc.ErrUsage, errors.New("--email and --username are required"))
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

		resp, err := client.Signup(ctx, auth.SignupRequest{
			Email:        flags.Email,
			Password:     password,
			Username:     flags.Username,
			FullName:     flags.FullName,
			Organization: flags.Organization,
			UsagePurpose: flags.Purpose,
		})
		if err != nil {
			return err
		}

		logger.Printf("account %s is created. Login with `synth auth login`", flags.Email)
		return common.WriteJSON(cl.Stdout(), resp)
	}
}
