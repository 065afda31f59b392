package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path"

	"github.com/synthgen/synthctl/cmd/synth/subcommands/admin"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/auth"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/dataset"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/generate"
	subinit "github.com/synthgen/synthctl/cmd/synth/subcommands/init"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/logger"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/notification"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/optimization"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/profile"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/request"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/stats"
	subver "github.com/synthgen/synthctl/cmd/synth/subcommands/version"
	"github.com/synthgen/synthctl/pkg/try"
	"github.com/youta-t/flarc"
)

func main() {
	name := path.Base(os.Args[0])
	logger := logger.Default()
	logger.SetPrefix(fmt.Sprintf("[%s] ", name))

	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, os.Kill,
	)
	defer cancel()

	cf := try.To(common.Flags(".")).OrFatal(logger)
	init := try.To(subinit.New()).OrFatal(logger)
	version := try.To(subver.New()).OrFatal(logger)
	auth := try.To(auth.New()).OrFatal(logger)
	profile := try.To(profile.New()).OrFatal(logger)
	dataset := try.To(dataset.New()).OrFatal(logger)
	request := try.To(request.New()).OrFatal(logger)
	generate := try.To(generate.New()).OrFatal(logger)
	optimization := try.To(optimization.New()).OrFatal(logger)
	notification := try.To(notification.New()).OrFatal(logger)
	stats := try.To(stats.New()).OrFatal(logger)
	admin := try.To(admin.New()).OrFatal(logger)

	synth := try.To(
		flarc.NewCommandGroup(
			"Synthetic data generation service commandline interface",
			cf,
			flarc.WithSubcommand("init", init),
			flarc.WithSubcommand("auth", auth),
			flarc.WithSubcommand("profile", profile),
			flarc.WithSubcommand("dataset", dataset),
			flarc.WithSubcommand("request", request),
			flarc.WithSubcommand("generate", generate),
			flarc.WithSubcommand("optimization", optimization),
			flarc.WithSubcommand("notification", notification),
			flarc.WithSubcommand("stats", stats),
			flarc.WithSubcommand("admin", admin),
			flarc.WithSubcommand("version", version),
		),
	).OrFatal(logger)

	os.Exit(flarc.Run(ctx, synth, flarc.WithHelp(true)))
}
