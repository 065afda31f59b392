package update_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/synthgen/synthctl/api-types/datasets"
	"github.com/synthgen/synthctl/cmd/synth/env"
	"github.com/synthgen/synthctl/cmd/synth/rest/mock"
	dataset_update "github.com/synthgen/synthctl/cmd/synth/subcommands/dataset/update"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/internal/commandline"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/logger"
	"github.com/synthgen/synthctl/pkg/cmp"
	"github.com/youta-t/flarc"
)

func TestUpdate(t *testing.T) {
	type Then struct {
		err    error
		called bool
		update datasets.Update
	}
	theory := func(flags dataset_update.Flags, then Then) func(*testing.T) {
		return func(t *testing.T) {
			client := mock.New(t)
			client.Impl.UpdateDataset = func(ctx context.Context, datasetId int, update datasets.Update) (datasets.UpdateResponse, error) {
				return datasets.UpdateResponse{Dataset: datasets.Dataset{Id: datasetId}}, nil
			}

			err := dataset_update.Task()(
				context.Background(), logger.Null(), *env.New(), client,
				commandline.MockCommandline[dataset_update.Flags]{
					Stdout_: new(strings.Builder),
					Flags_:  flags,
					Args_:   map[string][]string{dataset_update.ARG_DATASET_ID: {"6"}},
				},
				[]any{},
			)
			if !errors.Is(err, then.err) {
				t.Fatalf("error: (actual, expected) = (%v, %v)", err, then.err)
			}
			if !then.called {
				if len(client.Calls.UpdateDataset) != 0 {
					t.Errorf("called: %+v", client.Calls.UpdateDataset)
				}
				return
			}
			if len(client.Calls.UpdateDataset) != 1 {
				t.Fatalf("calls: %+v", client.Calls.UpdateDataset)
			}
			actual := client.Calls.UpdateDataset[0]
			if actual.DatasetId != 6 ||
				!cmp.PEqEq(actual.Update.OriginalFilename, then.update.OriginalFilename) ||
				!cmp.PEqEq(actual.Update.Description, then.update.Description) {
				t.Errorf("update: %+v", actual)
			}
		}
	}

	name, desc := "people.csv", "survey 2024"
	t.Run("rename and describe", theory(
		dataset_update.Flags{Name: name, Description: desc},
		Then{called: true, update: datasets.Update{OriginalFilename: &name, Description: &desc}},
	))
	t.Run("nothing", theory(dataset_update.Flags{}, Then{}))
	t.Run("unaccepted name", theory(dataset_update.Flags{Name: "people.txt"}, Then{err: flarc.ErrUsage}))
}
