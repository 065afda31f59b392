package update_test

import (
	"context"
	"strings"
	"testing"

	"github.com/synthgen/synthctl/api-types/requests"
	"github.com/synthgen/synthctl/cmd/synth/env"
	"github.com/synthgen/synthctl/cmd/synth/rest/mock"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/internal/commandline"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/logger"
	request_update "github.com/synthgen/synthctl/cmd/synth/subcommands/request/update"
	"github.com/synthgen/synthctl/pkg/cmp"
)

func TestUpdate(t *testing.T) {
	type Then struct {
		called bool
		update requests.Update
	}

	theory := func(flags request_update.Flags, then Then) func(*testing.T) {
		return func(t *testing.T) {
			client := mock.New(t)
			client.Impl.UpdateRequest = func(ctx context.Context, requestId int, update requests.Update) (requests.DataRequest, error) {
				return requests.DataRequest{Id: requestId}, nil
			}

			err := request_update.Task()(
				context.Background(), logger.Null(), *env.New(), client,
				commandline.MockCommandline[request_update.Flags]{
					Stdout_: new(strings.Builder),
					Flags_:  flags,
					Args_:   map[string][]string{request_update.ARG_REQUEST_ID: {"2"}},
				},
				[]any{},
			)
			if err != nil {
				t.Fatal(err)
			}

			if !then.called {
				if len(client.Calls.UpdateRequest) != 0 {
					t.Errorf("called: %+v", client.Calls.UpdateRequest)
				}
				return
			}
			if len(client.Calls.UpdateRequest) != 1 {
				t.Fatalf("calls: %+v", client.Calls.UpdateRequest)
			}
			actual := client.Calls.UpdateRequest[0]
			if actual.RequestId != 2 ||
				!cmp.PEqEq(actual.Update.RequestName, then.update.RequestName) ||
				!cmp.PEqEq(actual.Update.DatasetName, then.update.DatasetName) {
				t.Errorf("update: %+v", actual)
			}
		}
	}

	name := "renamed"
	t.Run("rename", theory(
		request_update.Flags{Name: name},
		Then{called: true, update: requests.Update{RequestName: &name}},
	))
	t.Run("nothing", theory(request_update.Flags{}, Then{called: false}))
}
