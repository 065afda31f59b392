package errors

import (
	"fmt"
	"strings"
)

type Verbose interface {
	Verbose() string
}

// CUIError is an error to be shown to command line users.
//
// Error() is the summary (with detail, if any).
// Verbose() also tells what caused it.
type CUIError interface {
	error
	Verbose

	// Summary is the first line of the message, without detail.
	Summary() string
}

type cuierror struct {
	summary     string
	verbose     string
	printDetail func(summary string) (string, error)
	base        error
}

func (ce *cuierror) Unwrap() error {
	return ce.base
}

func (ce *cuierror) Summary() string {
	return ce.summary
}

func (ce *cuierror) Error() string {
	if ce.printDetail == nil {
		return ce.summary
	}
	message, err := ce.printDetail(ce.summary)
	if err != nil {
		message = fmt.Sprintf(
			"%s\n(building detailed message causes error: %s)",
			ce.summary, err.Error(),
		)
	}
	return message
}

func (ce *cuierror) Verbose() string {
	message := []string{ce.Error()}
	if ce.verbose != "" {
		message = append(message, " ("+ce.verbose+") ")
	}

	switch base := ce.base.(type) {
	case nil:
		// no-op
	case Verbose:
		message = append(message, "caused by: ", base.Verbose())
	default:
		message = append(message, "caused by: ", base.Error())
	}
	return strings.Join(message, "\n")
}

type CuiErrorOption func(cerr *cuierror) *cuierror

func NewCuiError(
	summary string,
	options ...CuiErrorOption,
) CUIError {
	err := &cuierror{summary: summary}
	for _, o := range options {
		err = o(err)
	}
	return err
}

func WithVerbose(verbose string) CuiErrorOption {
	return func(cerr *cuierror) *cuierror {
		cerr.verbose = verbose
		return cerr
	}
}

func WithDetail(printer func(summary string) (string, error)) CuiErrorOption {
	return func(cerr *cuierror) *cuierror {
		cerr.printDetail = printer
		return cerr
	}
}

func WithCause(err error) CuiErrorOption {
	return func(cerr *cuierror) *cuierror {
		cerr.base = err
		return cerr
	}
}

// WithDetailText appends a fixed text below the summary.
func WithDetailText(detail string) CuiErrorOption {
	if detail == "" {
		return func(cerr *cuierror) *cuierror { return cerr }
	}
	return WithDetail(func(summary string) (string, error) {
		return summary + "\n" + detail, nil
	})
}

// Describe renders err for command line users.
//
// With verbose, causes of CUIError are also printed.
func Describe(err error, verbose bool) string {
	if err == nil {
		return ""
	}
	if !verbose {
		return err.Error()
	}
	if v, ok := err.(Verbose); ok {
		return v.Verbose()
	}
	return err.Error()
}
