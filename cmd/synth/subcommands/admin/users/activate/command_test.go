package activate_test

import (
	"context"
	"strings"
	"testing"

	"github.com/synthgen/synthctl/api-types/auth"
	"github.com/synthgen/synthctl/cmd/synth/env"
	"github.com/synthgen/synthctl/cmd/synth/rest/mock"
	users_activate "github.com/synthgen/synthctl/cmd/synth/subcommands/admin/users/activate"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/internal/commandline"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/logger"
)

func TestActivate(t *testing.T) {
	theory := func(active bool) func(*testing.T) {
		return func(t *testing.T) {
			client := mock.New(t)
			client.Impl.SetUserActive = func(ctx context.Context, userId int, active bool) (auth.User, error) {
				return auth.User{Id: userId, Email: "bob@example.com", IsActive: active}, nil
			}

			err := users_activate.Task(active)(
				context.Background(), logger.Null(), *env.New(), client,
				commandline.MockCommandline[struct{}]{
					Stdout_: new(strings.Builder),
					Args_:   map[string][]string{users_activate.ARG_USER_ID: {"3"}},
				},
				[]any{},
			)
			if err != nil {
				t.Fatal(err)
			}
			calls := client.Calls.SetUserActive
			if len(calls) != 1 || calls[0].UserId != 3 || calls[0].Active != active {
				t.Errorf("calls: %+v", calls)
			}
		}
	}
	t.Run("activate", theory(true))
	t.Run("deactivate", theory(false))
}
