package status

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/synthgen/synthctl/api-types/auth"
	"github.com/synthgen/synthctl/cmd/synth/config/credentials"
	"github.com/synthgen/synthctl/cmd/synth/session"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/youta-t/flarc"
)

// Status is the login state of a profile.
type Status struct {
	Profile  string    `json:"profile"`
	LoggedIn bool      `json:"logged_in"`
	Email    string    `json:"email,omitempty"`
	Role     auth.Role `json:"role,omitempty"`

	// nil when the token does not tell.
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Expired   bool       `json:"expired"`
}

type Option struct {
	now func() time.Time
}

func WithClock(now func() time.Time) func(*Option) *Option {
	return func(o *Option) *Option {
		o.now = now
		return o
	}
}

func New(options ...func(*Option) *Option) (flarc.Command, error) {
	option := &Option{now: time.Now}
	for _, o := range options {
		option = o(option)
	}

	return flarc.NewCommand(
		"Show who you are logged in as.",
		struct{}{},
		flarc.Args{},
		common.NewTaskWithCommonFlag(Task(option.now)),
		flarc.WithDescription(`
Show the login state of the current profile, without asking the server.

The expiry is read from the stored token.
`),
	)
}

func Task(now func() time.Time) common.SynthTaskWithCommonFlag[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		commonFlag common.CommonFlags,
		cl flarc.Commandline[struct{}],
		params []any,
	) error {
		st := Status{Profile: commonFlag.Profile}

		store, err := credentials.Load(commonFlag.Credentials)
		if err != nil {
			return err
		}
		cred, err := store.Get(commonFlag.Profile)
		if errors.Is(err, credentials.ErrNotLoggedIn) {
			return common.WriteJSON(cl.Stdout(), st)
		} else if err != nil {
			return err
		}

		st.LoggedIn = true
		st.Email = cred.Email
		st.Role = cred.Role
		if exp, ok, err := session.ExpiresAt(cred.Token); err == nil && ok {
			st.ExpiresAt = &exp
		}
		if errors.Is(session.Check(cred.Token, now()), session.ErrTokenExpired) {
			st.Expired = true
			st.LoggedIn = false
		}

		return common.WriteJSON(cl.Stdout(), st)
	}
}
