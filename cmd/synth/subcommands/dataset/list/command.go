package list

import (
	"context"
	"log"

	"github.com/labstack/gommon/bytes"
	"github.com/synthgen/synthctl/api-types/datasets"
	"github.com/synthgen/synthctl/cmd/synth/env"
	srest "github.com/synthgen/synthctl/cmd/synth/rest"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/youta-t/flarc"
)

// Entry is a dataset with its size for humans.
type Entry struct {
	datasets.Dataset
	Size string `json:"size"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"List your datasets.",
		struct{}{},
		flarc.Args{},
		common.NewTask(Task()),
	)
}

func Task() common.Task[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		synthEnv env.SynthEnv,
		client srest.SynthClient,
		cl flarc.Commandline[struct{}],
		params []any,
	) error {
		found, err := client.ListDatasets(ctx)
		if err != nil {
			return err
		}
		result := make([]Entry, 0, len(found))
		for _, d := range found {
			result = append(result, Entry{Dataset: d, Size: bytes.Format(d.FileSize)})
		}
		return common.WriteJSON(cl.Stdout(), result)
	}
}
