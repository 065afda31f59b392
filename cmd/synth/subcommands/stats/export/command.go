package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/labstack/gommon/bytes"
	"github.com/synthgen/synthctl/api-types/stats"
	"github.com/synthgen/synthctl/cmd/synth/env"
	srest "github.com/synthgen/synthctl/cmd/synth/rest"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/internal/progress"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Format string `flag:"format" alias:"f" metavar:"json|csv" help:"format of exported statistics"`
	Output string `flag:"output" alias:"o" metavar:"PATH" help:"file to write statistics into. '-' for stdout. (default: ./stats.<FORMAT>)"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Export statistics.",
		Flags{Format: string(stats.ExportJSON)},
		nil,
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
		flags := cl.Flags()
		format := stats.ExportFormat(flags.Format)
		switch format {
		case "":
			format = stats.ExportJSON
		case stats.ExportJSON, stats.ExportCSV:
		default:
			return errors.Join(flarc.ErrUsage, fmt.Errorf("--format should be json or csv: %s", flags.Format))
		}

		dest := flags.Output
		if dest == "" {
			dest = fmt.Sprintf("stats.%s", format)
		}

		var written int64
		err := client.ExportStats(ctx, format, func(r io.Reader, size int64) error {
			n, err := progress.Save(dest, cl.Stdout(), cl.Stderr(), r, size)
			written = n
			return err
		})
		if err != nil {
			return err
		}
		if dest != "-" {
			logger.Printf("statistics are exported into %s (%s).", dest, bytes.Format(written))
		}
		return nil
	}
}
