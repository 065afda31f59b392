package upload

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	pb "github.com/cheggaaa/pb/v3"
	"github.com/google/uuid"
	"github.com/labstack/gommon/bytes"
	"github.com/synthgen/synthctl/api-types/datasets"
	"github.com/synthgen/synthctl/cmd/synth/env"
	srest "github.com/synthgen/synthctl/cmd/synth/rest"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/internal/flagtype"
	"github.com/youta-t/flarc"
)

const DefaultMaxSize = "50Mi"

var (
	ErrNotAccepted   = errors.New("file type is not accepted")
	ErrTooLarge      = errors.New("file is too large")
	ErrAlreadyExists = errors.New("dataset with the same name exists")
)

type Flags struct {
	Name      string             `flag:"name" alias:"n" help:"name of the dataset on the server. (default: base name of FILE)"`
	MaxSize   *flagtype.Quantity `flag:"max-size" metavar:"QUANTITY" help:"refuse files larger than this, like 50Mi or 10M"`
	Overwrite bool               `flag:"overwrite" help:"replace a dataset with the same name"`
}

const ARG_FILE = "FILE"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Upload a tabular file as a dataset.",
		Flags{MaxSize: flagtype.MustParse(DefaultMaxSize)},
		flarc.Args{
			{
				Name: ARG_FILE, Required: true,
				Help: fmt.Sprintf("file to be uploaded. One of %s", strings.Join(datasets.AcceptedExtensions, ", ")),
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Upload a tabular file as a dataset, to generate synthetic data from.

The server reads .csv, .xls and .xlsx files. A dataset with the same name is
not replaced unless --overwrite is passed.

With --overwrite, the file is uploaded under a temporary name first. Only after
the upload succeeds, the old dataset is deleted and the new one is renamed.
If deleting or renaming fails, the new dataset stays under the temporary name
and the command tells which it is.
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
		path := cl.Args()[ARG_FILE][0]
		flags := cl.Flags()
		name := flags.Name
		if name == "" {
			name = filepath.Base(path)
		}

		if !datasets.Accepts(name) {
			return errors.Join(
				flarc.ErrUsage,
				fmt.Errorf("%w: %s (accepted: %s)", ErrNotAccepted, name, strings.Join(datasets.AcceptedExtensions, ", ")),
			)
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		stat, err := f.Stat()
		if err != nil {
			return err
		}
		if stat.IsDir() {
			return errors.Join(flarc.ErrUsage, fmt.Errorf("%s is a directory", path))
		}

		maxSize := flags.MaxSize
		if maxSize == nil {
			maxSize = flagtype.MustParse(DefaultMaxSize)
		}
		if limit := maxSize.Bytes(); limit < stat.Size() {
			return fmt.Errorf(
				"%w: %s is %s, larger than %s",
				ErrTooLarge, path, bytes.Format(stat.Size()), bytes.Format(limit),
			)
		}

		check, err := client.CheckFilename(ctx, name)
		if err != nil {
			return err
		}
		uploadAs := name
		if check.Exists {
			if !flags.Overwrite || check.DatasetId == nil {
				return fmt.Errorf(
					"%w: %s. Pass --overwrite to replace it, or --name to upload with another name",
					ErrAlreadyExists, name,
				)
			}
			uploadAs = TemporaryName(name)
		}

		bar := pb.New64(stat.Size())
		bar.Set(pb.Bytes, true)
		bar.Set("prefix", uploadAs+" ")
		bar.SetWriter(cl.Stderr())
		if err := bar.Err(); err != nil {
			return err
		}
		bar.Start()
		resp, err := client.UploadDataset(ctx, uploadAs, bar.NewProxyReader(f))
		bar.Finish()
		if err != nil {
			return err
		}

		if uploadAs != name {
			old := *check.DatasetId
			if err := client.DeleteDataset(ctx, old); err != nil {
				return fmt.Errorf(
					"%w: dataset %d (%s) is not deleted. The new one is uploaded as dataset %d (%s)",
					err, old, name, resp.FileId, uploadAs,
				)
			}
			logger.Printf("dataset %d (%s) is deleted to be replaced.", old, name)

			if _, err := client.UpdateDataset(ctx, resp.FileId, datasets.Update{OriginalFilename: &name}); err != nil {
				return fmt.Errorf(
					"%w: dataset %d is uploaded as %s, but cannot be renamed to %s",
					err, resp.FileId, uploadAs, name,
				)
			}
			resp.OriginalFilename = name
		}

		logger.Printf(
			"dataset %d is uploaded: %d rows, %d columns (%s).",
			resp.FileId, resp.NRows, resp.NColumns, bytes.Format(resp.FileSize),
		)
		return common.WriteJSON(cl.Stdout(), resp)
	}
}

// TemporaryName is a name for a file replacing name, keeping its extension.
func TemporaryName(name string) string {
	ext := filepath.Ext(name)
	return fmt.Sprintf("%s.replacing-%s%s", strings.TrimSuffix(name, ext), uuid.NewString()[:8], ext)
}
