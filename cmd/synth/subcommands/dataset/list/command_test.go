package list_test

import (
	"context"
	"strings"
	"testing"

	"github.com/labstack/gommon/bytes"
	"github.com/synthgen/synthctl/api-types/datasets"
	"github.com/synthgen/synthctl/cmd/synth/env"
	"github.com/synthgen/synthctl/cmd/synth/rest/mock"
	dataset_list "github.com/synthgen/synthctl/cmd/synth/subcommands/dataset/list"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/internal/commandline"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/logger"
)

func TestList(t *testing.T) {
	client := mock.New(t)
	client.Impl.ListDatasets = func(ctx context.Context) ([]datasets.Dataset, error) {
		return []datasets.Dataset{
			{Id: 1, OriginalFilename: "a.csv", FileSize: 2048, NRows: 10, NColumns: 3},
			{Id: 2, OriginalFilename: "b.xlsx", FileSize: 3 * 1024 * 1024, NRows: 100, NColumns: 8},
		}, nil
	}

	stdout := new(strings.Builder)
	err := dataset_list.Task()(
		context.Background(), logger.Null(), *env.New(), client,
		commandline.MockCommandline[struct{}]{Stdout_: stdout},
		[]any{},
	)
	if err != nil {
		t.Fatal(err)
	}

	actual := commandline.PrintedJSON[[]map[string]any](t, stdout)
	if len(actual) != 2 {
		t.Fatalf("unexpected: %s", stdout)
	}
	if actual[0]["original_filename"] != "a.csv" || actual[0]["size"] != bytes.Format(2048) {
		t.Errorf("first: %+v", actual[0])
	}
	if actual[1]["size"] != bytes.Format(3*1024*1024) {
		t.Errorf("second: %+v", actual[1])
	}
}
