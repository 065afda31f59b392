package export_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/synthgen/synthctl/api-types/stats"
	"github.com/synthgen/synthctl/cmd/synth/env"
	"github.com/synthgen/synthctl/cmd/synth/rest/mock"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/internal/commandline"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/logger"
	stats_export "github.com/synthgen/synthctl/cmd/synth/subcommands/stats/export"
	"github.com/youta-t/flarc"
)

const content = "metric,value\nrequests,12\n"

func TestExport(t *testing.T) {
	type Then struct {
		format stats.ExportFormat
		err    error
	}

	theory := func(flags stats_export.Flags, then Then) func(*testing.T) {
		return func(t *testing.T) {
			client := mock.New(t)
			client.Impl.ExportStats = func(
				ctx context.Context, format stats.ExportFormat, handler func(r io.Reader, size int64) error,
			) error {
				return handler(strings.NewReader(content), -1)
			}

			stdout := new(strings.Builder)
			err := stats_export.Task()(
				context.Background(), logger.Null(), *env.New(), client,
				commandline.MockCommandline[stats_export.Flags]{
					Stdout_: stdout, Stderr_: io.Discard, Flags_: flags,
				},
				[]any{},
			)
			if !errors.Is(err, then.err) {
				t.Fatalf("error: (actual, expected) = (%v, %v)", err, then.err)
			}
			if then.err != nil {
				if len(client.Calls.ExportStats) != 0 {
					t.Errorf("called: %v", client.Calls.ExportStats)
				}
				return
			}

			if len(client.Calls.ExportStats) != 1 || client.Calls.ExportStats[0] != then.format {
				t.Errorf("calls: %v", client.Calls.ExportStats)
			}
			if flags.Output == "-" {
				if stdout.String() != content {
					t.Errorf("stdout: %q", stdout)
				}
				return
			}
			written, err := os.ReadFile(flags.Output)
			if err != nil {
				t.Fatal(err)
			}
			if string(written) != content {
				t.Errorf("file: %q", written)
			}
		}
	}

	t.Run("csv into a file", theory(
		stats_export.Flags{Format: "csv", Output: filepath.Join(t.TempDir(), "stats.csv")},
		Then{format: stats.ExportCSV},
	))
	t.Run("json to stdout", theory(
		stats_export.Flags{Format: "json", Output: "-"},
		Then{format: stats.ExportJSON},
	))
	t.Run("no format is json", theory(
		stats_export.Flags{Output: "-"},
		Then{format: stats.ExportJSON},
	))
	t.Run("unknown format", theory(
		stats_export.Flags{Format: "xlsx", Output: "-"},
		Then{err: flarc.ErrUsage},
	))
}
