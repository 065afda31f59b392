package download

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/labstack/gommon/bytes"
	"github.com/synthgen/synthctl/cmd/synth/env"
	srest "github.com/synthgen/synthctl/cmd/synth/rest"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/internal/progress"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Output string `flag:"output" alias:"o" metavar:"PATH" help:"file to write the dataset into. '-' for stdout. (default: ./dataset-<DATASET_ID>)"`
}

const ARG_DATASET_ID = "DATASET_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Download an uploaded dataset.",
		Flags{},
		flarc.Args{
			{
				Name: ARG_DATASET_ID, Required: true,
				Help: "id of the dataset",
			},
		},
		common.NewTask(Task()),
	)
}

func Task() common.Task[Flags] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		synthEnv env.SynthEnv,
		client srest.SynthClient,
		cl flarc.Commandline[Flags],
		params []any,
	) error {
		id, err := common.IntArg(cl.Args(), ARG_DATASET_ID)
		if err != nil {
			return err
		}
		dest := cl.Flags().Output
		if dest == "" {
			dest = fmt.Sprintf("dataset-%d", id)
		}

		var written int64
		err = client.DownloadDataset(ctx, id, func(r io.Reader, size int64) error {
			n, err := progress.Save(dest, cl.Stdout(), cl.Stderr(), r, size)
			written = n
			return err
		})
		if err != nil {
			return err
		}
		if dest != "-" {
			logger.Printf("dataset %d is downloaded into %s (%s).", id, dest, bytes.Format(written))
		}
		return nil
	}
}
