package common

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/synthgen/synthctl/cmd/synth/config/credentials"
	"github.com/synthgen/synthctl/cmd/synth/config/profiles"
	"github.com/synthgen/synthctl/cmd/synth/env"
	cerr "github.com/synthgen/synthctl/cmd/synth/errors"
	srest "github.com/synthgen/synthctl/cmd/synth/rest"
	"github.com/synthgen/synthctl/cmd/synth/session"
	"github.com/youta-t/flarc"
)

type SynthTaskWithCommonFlag[T any] func(
	ctx context.Context,
	logger *log.Logger,
	commonFlag CommonFlags,
	cl flarc.Commandline[T],
	params []any,
) error

func NewTaskWithCommonFlag[T any](task SynthTaskWithCommonFlag[T]) flarc.Task[T] {
	return func(ctx context.Context, cl flarc.Commandline[T], pos []any) error {
		var commonFlag CommonFlags
		found := false
		newpos := make([]any, 0, len(pos))
		for _, p := range pos {
			switch v := p.(type) {
			case CommonFlags:
				found = true
				commonFlag = v
			default:
				newpos = append(newpos, p)
			}
		}
		if !found {
			return errors.New("programming error: common flags not found")
		}

		logger := log.New(cl.Stderr(), "", log.LstdFlags)
		logger.SetPrefix(fmt.Sprintf("[%s] ", cl.Fullname()))

		err := task(
			ctx,
			logger,
			commonFlag,
			cl,
			newpos,
		)
		if err != nil && commonFlag.Verbose && !errors.Is(err, flarc.ErrUsage) {
			logger.Println(cerr.Describe(err, true))
		}
		return err
	}
}

// Session is the login state of the command.
//
// Tasks made by NewTask find it in their params with SessionOf.
type Session struct {
	Profile string

	// path to the credentials store
	CredentialsStore string

	Credential *credentials.Credential

	Guard *session.Guard
}

// SessionOf finds Session in params.
func SessionOf(params []any) (Session, bool) {
	for _, p := range params {
		if s, ok := p.(Session); ok {
			return s, true
		}
	}
	return Session{}, false
}

// LoadProfile reads the profile named in commonFlag.
func LoadProfile(commonFlag CommonFlags) (*profiles.SynthProfile, error) {
	store, err := profiles.LoadProfileStore(commonFlag.ProfileStore)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf(
				"%w: synth profile store (%s) is not found. Please try `synth init` first",
				err, commonFlag.ProfileStore,
			)
		}
		return nil, fmt.Errorf(
			"%w: failed to load synth profile store (%s)",
			err, commonFlag.ProfileStore,
		)
	}
	prof, ok := store[commonFlag.Profile]
	if !ok {
		return nil, fmt.Errorf(
			"profile '%s' not found in the profile store (%s). Please try `synth init --name %s` first",
			commonFlag.Profile, commonFlag.ProfileStore, commonFlag.Profile,
		)
	}
	return prof, nil
}

// Connect makes a client for the profile named in commonFlag.
func Connect(commonFlag CommonFlags, options ...srest.Option) (srest.SynthClient, error) {
	prof, err := LoadProfile(commonFlag)
	if err != nil {
		return nil, err
	}
	client, err := srest.NewClient(prof, options...)
	if err != nil {
		return nil, fmt.Errorf(
			"%w: failed to create synth client. Your synth profile (%s in %s) can be broken.\n\nRemove it and try `synth init` again",
			err, commonFlag.Profile, commonFlag.ProfileStore,
		)
	}
	return client, nil
}

// ErrSessionExpired is returned when the stored token is no longer valid.
var ErrSessionExpired = errors.New("session expired")

// ExpireSession makes a guard which forgets the credential of the profile
// once, on the first expiry.
func ExpireSession(logger *log.Logger, commonFlag CommonFlags) *session.Guard {
	return session.NewGuard(func() {
		if err := credentials.Clear(commonFlag.Credentials, commonFlag.Profile); err != nil {
			logger.Printf("failed to clear credentials (%s): %s", commonFlag.Credentials, err)
		}
		logger.Printf(
			"session for profile '%s' is expired. Please login again with `synth auth login`",
			commonFlag.Profile,
		)
	})
}

type Task[T any] func(
	ctx context.Context,
	logger *log.Logger,
	synthEnv env.SynthEnv,
	client srest.SynthClient,
	cl flarc.Commandline[T],
	params []any,
) error

type taskOption struct {
	now func() time.Time
}

type TaskOption func(*taskOption) *taskOption

// WithClock replaces the clock to check expiry of tokens.
func WithClock(now func() time.Time) TaskOption {
	return func(to *taskOption) *taskOption {
		to.now = now
		return to
	}
}

// NewTask makes a flarc.Task which runs task as a logged-in user.
//
// Before task, it loads the profile, synthenv and the credential.
// An expired token is forgotten without asking the server.
// The client given to task clears the credential on the first 401 response.
func NewTask[T any](task Task[T], options ...TaskOption) flarc.Task[T] {
	to := &taskOption{now: time.Now}
	for _, o := range options {
		to = o(to)
	}

	return NewTaskWithCommonFlag(func(
		ctx context.Context,
		logger *log.Logger,
		commonFlag CommonFlags,
		cl flarc.Commandline[T],
		params []any,
	) error {
		e, err := env.LoadSynthEnv(commonFlag.Env)
		if err != nil {
			return fmt.Errorf("%w: failed to load synthenv (%s)", err, commonFlag.Env)
		}

		store, err := credentials.Load(commonFlag.Credentials)
		if err != nil {
			return err
		}
		cred, err := store.Get(commonFlag.Profile)
		if err != nil {
			return cerr.NewCuiError(
				"you are not logged in",
				cerr.WithDetailText("Please login with `synth auth login`."),
				cerr.WithCause(err),
			)
		}

		guard := ExpireSession(logger, commonFlag)
		if err := session.Check(cred.Token, to.now()); err != nil {
			guard.Expire()
			return cerr.NewCuiError(
				cerr.MessageUnauthorized,
				cerr.WithCause(errors.Join(ErrSessionExpired, err)),
			)
		}

		client, err := Connect(
			commonFlag,
			srest.WithToken(cred.Token),
			srest.WithUnauthorized(func() { guard.Expire() }),
		)
		if err != nil {
			return err
		}

		sess := Session{
			Profile:          commonFlag.Profile,
			CredentialsStore: commonFlag.Credentials,
			Credential:       cred,
			Guard:            guard,
		}
		return task(ctx, logger, *e, client, cl, append(params, sess))
	})
}

// ErrAdminOnly is returned when a command for admins is run by other users.
var ErrAdminOnly = errors.New("this command is for admins")

// NewAdminTask is NewTask refusing users who are not admin.
//
// The role is what was told at login. The server judges again.
func NewAdminTask[T any](task Task[T], options ...TaskOption) flarc.Task[T] {
	return NewTask(func(
		ctx context.Context,
		logger *log.Logger,
		synthEnv env.SynthEnv,
		client srest.SynthClient,
		cl flarc.Commandline[T],
		params []any,
	) error {
		if s, ok := SessionOf(params); ok && !s.Credential.IsAdmin() {
			return cerr.NewCuiError(
				cerr.MessageForbidden,
				cerr.WithDetailText(fmt.Sprintf("%s is not an admin.", s.Credential.Email)),
				cerr.WithCause(ErrAdminOnly),
			)
		}
		return task(ctx, logger, synthEnv, client, cl, params)
	}, options...)
}
