package list

import (
	"context"
	"errors"
	"log"

	"github.com/synthgen/synthctl/api-types/generation"
	"github.com/synthgen/synthctl/cmd/synth/env"
	srest "github.com/synthgen/synthctl/cmd/synth/rest"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Page     int    `flag:"page" alias:"p" help:"page number, from 1. (default: 1)"`
	PageSize int    `flag:"page-size" help:"jobs per page. (default: 10)"`
	Status   string `flag:"status" alias:"s" metavar:"pending|processing|completed|failed|cancelled" help:"show only jobs in the status"`
}

const (
	defaultPage     = 1
	defaultPageSize = 10
)

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"List your generation jobs.",
		Flags{},
		flarc.Args{},
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
		query, err := Query(cl.Flags())
		if err != nil {
			return err
		}
		resp, err := client.ListGenerations(ctx, query)
		if err != nil {
			return err
		}
		return common.WriteJSON(cl.Stdout(), resp)
	}
}

func Query(flags Flags) (generation.ListQuery, error) {
	q := generation.ListQuery{Page: defaultPage, PageSize: defaultPageSize}
	if flags.Page < 0 || flags.PageSize < 0 {
		return q, errors.Join(flarc.ErrUsage, errors.New("--page and --page-size should be positive"))
	}
	if 0 < flags.Page {
		q.Page = flags.Page
	}
	if 0 < flags.PageSize {
		q.PageSize = flags.PageSize
	}
	if flags.Status != "" {
		switch st := generation.Status(flags.Status); st {
		case generation.Pending, generation.Processing, generation.Completed, generation.Failed, generation.Cancelled:
			q.Status = st
		default:
			return q, errors.Join(flarc.ErrUsage, errors.New("unknown --status: "+flags.Status))
		}
	}
	return q, nil
}
