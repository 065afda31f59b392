package dataset

import (
	dataset_check "github.com/synthgen/synthctl/cmd/synth/subcommands/dataset/check"
	dataset_download "github.com/synthgen/synthctl/cmd/synth/subcommands/dataset/download"
	dataset_list "github.com/synthgen/synthctl/cmd/synth/subcommands/dataset/list"
	dataset_rm "github.com/synthgen/synthctl/cmd/synth/subcommands/dataset/rm"
	dataset_update "github.com/synthgen/synthctl/cmd/synth/subcommands/dataset/update"
	dataset_upload "github.com/synthgen/synthctl/cmd/synth/subcommands/dataset/upload"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	upload, err := dataset_upload.New()
	if err != nil {
		return nil, err
	}
	list, err := dataset_list.New()
	if err != nil {
		return nil, err
	}
	check, err := dataset_check.New()
	if err != nil {
		return nil, err
	}
	update, err := dataset_update.New()
	if err != nil {
		return nil, err
	}
	rm, err := dataset_rm.New()
	if err != nil {
		return nil, err
	}
	download, err := dataset_download.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Manipulate datasets, tabular files to generate synthetic data from.",
		struct{}{},
		flarc.WithSubcommand("upload", upload),
		flarc.WithSubcommand("list", list),
		flarc.WithSubcommand("check", check),
		flarc.WithSubcommand("update", update),
		flarc.WithSubcommand("rm", rm),
		flarc.WithSubcommand("download", download),
	)
}
