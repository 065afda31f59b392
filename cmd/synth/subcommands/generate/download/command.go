package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/labstack/gommon/bytes"
	"github.com/synthgen/synthctl/api-types/generation"
	"github.com/synthgen/synthctl/cmd/synth/env"
	srest "github.com/synthgen/synthctl/cmd/synth/rest"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/internal/progress"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Format string `flag:"format" metavar:"csv|json|xlsx" help:"file format of data. (default: csv)"`
	Output string `flag:"output" alias:"o" metavar:"PATH" help:"file to write data into. '-' for stdout. (default: ./synthetic-<JOB_ID>.<FORMAT>)"`
}

const ARG_JOB_ID = "JOB_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Download synthetic data of a completed generation job.",
		Flags{},
		flarc.Args{
			{
				Name: ARG_JOB_ID, Required: true,
				Help: "id of the completed generation job",
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
		id, err := common.IntArg(cl.Args(), ARG_JOB_ID)
		if err != nil {
			return err
		}
		flags := cl.Flags()
		format := generation.CSV
		if flags.Format != "" {
			if format = generation.FileFormat(flags.Format); !format.Valid() {
				return errors.Join(flarc.ErrUsage, errors.New("--format should be csv, json or xlsx"))
			}
		}
		dest := flags.Output
		if dest == "" {
			dest = fmt.Sprintf("synthetic-%d.%s", id, format)
		}

		dl, err := client.GetGenerationDownload(ctx, id, format)
		if err != nil {
			return err
		}
		if dl.FileSize != nil {
			logger.Printf("downloading %s ...", bytes.Format(*dl.FileSize))
		}

		var written int64
		err = client.Fetch(ctx, dl.DownloadUrl, func(r io.Reader, size int64) error {
			if size < 0 && dl.FileSize != nil {
				size = *dl.FileSize
			}
			n, err := progress.Save(dest, cl.Stdout(), cl.Stderr(), r, size)
			written = n
			return err
		})
		if err != nil {
			return err
		}
		if dest != "-" {
			logger.Printf("job %d is downloaded into %s (%s).", id, dest, bytes.Format(written))
		}
		return nil
	}
}
