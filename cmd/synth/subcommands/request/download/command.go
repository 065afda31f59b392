package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"

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
	Output string `flag:"output" alias:"o" metavar:"PATH" help:"file to write data into. '-' for stdout. (default: ./request-<REQUEST_ID>.<FORMAT>)"`
	Bearer bool   `flag:"bearer" help:"authorize with your session instead of a download token"`
}

const ARG_REQUEST_ID = "REQUEST_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Download generated data of a completed request.",
		Flags{},
		flarc.Args{
			{
				Name: ARG_REQUEST_ID, Required: true,
				Help: "id of the completed request",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Download generated data of a completed request.

A short-lived download token is issued for the request, and the data is
downloaded with it.
`),
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
		id, err := common.IntArg(cl.Args(), ARG_REQUEST_ID)
		if err != nil {
			return err
		}

		flags := cl.Flags()
		format := generation.CSV
		if flags.Format != "" {
			format = generation.FileFormat(flags.Format)
			if !format.Valid() {
				return errors.Join(flarc.ErrUsage, errors.New("--format should be csv, json or xlsx"))
			}
		}
		dest := flags.Output
		if dest == "" {
			dest = filepath.Join(".", fmt.Sprintf("request-%d.%s", id, format))
		}

		token := ""
		if !flags.Bearer {
			dt, err := client.GetDownloadToken(ctx, id)
			if err != nil {
				return err
			}
			token = dt.DownloadToken
			logger.Printf("download token is issued. It expires in %d minutes.", dt.ExpiresInMinutes)
		}

		var written int64
		err = client.DownloadRequestData(ctx, id, format, token, func(r io.Reader, size int64) error {
			n, err := progress.Save(dest, cl.Stdout(), cl.Stderr(), r, size)
			written = n
			return err
		})
		if err != nil {
			return err
		}
		if dest != "-" {
			logger.Printf("request %d is downloaded into %s (%s).", id, dest, bytes.Format(written))
		}
		return nil
	}
}
