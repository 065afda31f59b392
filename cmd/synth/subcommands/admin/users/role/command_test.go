package role_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/synthgen/synthctl/api-types/auth"
	"github.com/synthgen/synthctl/cmd/synth/env"
	"github.com/synthgen/synthctl/cmd/synth/rest/mock"
	users_role "github.com/synthgen/synthctl/cmd/synth/subcommands/admin/users/role"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/internal/commandline"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/logger"
	"github.com/youta-t/flarc"
)

func TestRole(t *testing.T) {
	theory := func(role string, err error) func(*testing.T) {
		return func(t *testing.T) {
			client := mock.New(t)
			client.Impl.SetUserRole = func(ctx context.Context, userId int, role auth.Role) (auth.User, error) {
				return auth.User{Id: userId, Role: role}, nil
			}

			actual := users_role.Task()(
				context.Background(), logger.Null(), *env.New(), client,
				commandline.MockCommandline[users_role.Flags]{
					Stdout_: new(strings.Builder),
					Flags_:  users_role.Flags{Role: role},
					Args_:   map[string][]string{users_role.ARG_USER_ID: {"3"}},
				},
				[]any{},
			)
			if !errors.Is(actual, err) {
				t.Fatalf("error: (actual, expected) = (%v, %v)", actual, err)
			}
			if err != nil {
				return
			}
			calls := client.Calls.SetUserRole
			if len(calls) != 1 || calls[0].UserId != 3 || calls[0].Role != auth.Role(role) {
				t.Errorf("calls: %+v", calls)
			}
		}
	}
	t.Run("to admin", theory("admin", nil))
	t.Run("to user", theory("user", nil))
	t.Run("unknown", theory("root", flarc.ErrUsage))
	t.Run("missing", theory("", flarc.ErrUsage))
}
