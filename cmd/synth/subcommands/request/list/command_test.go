package list_test

import (
	"context"
	"strings"
	"testing"

	"github.com/synthgen/synthctl/api-types/requests"
	"github.com/synthgen/synthctl/cmd/synth/env"
	"github.com/synthgen/synthctl/cmd/synth/rest/mock"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/internal/commandline"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/logger"
	request_list "github.com/synthgen/synthctl/cmd/synth/subcommands/request/list"
	"github.com/synthgen/synthctl/pkg/cmp"
)

func TestList(t *testing.T) {
	found := []requests.DataRequest{
		{Id: 1, RequestName: "a", Status: requests.Pending},
		{Id: 2, RequestName: "b", Status: requests.Completed},
		{Id: 3, RequestName: "c", Status: requests.Pending},
	}

	theory := func(status string, expected []requests.DataRequest) func(*testing.T) {
		return func(t *testing.T) {
			client := mock.New(t)
			client.Impl.ListRequests = func(ctx context.Context) ([]requests.DataRequest, error) {
				return found, nil
			}

			stdout := new(strings.Builder)
			err := request_list.Task()(
				context.Background(), logger.Null(), *env.New(), client,
				commandline.MockCommandline[request_list.Flags]{
					Stdout_: stdout, Flags_: request_list.Flags{Status: status},
				},
				[]any{},
			)
			if err != nil {
				t.Fatal(err)
			}

			actual := commandline.PrintedJSON[[]requests.DataRequest](t, stdout)
			if !cmp.SliceEqWith(actual, expected, requests.DataRequest.Equal) {
				t.Errorf("(actual, expected) = (%+v, %+v)", actual, expected)
			}
		}
	}

	t.Run("all", theory("", found))
	t.Run("pending only", theory("pending", []requests.DataRequest{found[0], found[2]}))
	t.Run("nothing matches", theory("failed", []requests.DataRequest{}))
}
