package download_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/synthgen/synthctl/api-types/generation"
	"github.com/synthgen/synthctl/api-types/requests"
	"github.com/synthgen/synthctl/cmd/synth/env"
	"github.com/synthgen/synthctl/cmd/synth/rest/mock"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/internal/commandline"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/logger"
	request_download "github.com/synthgen/synthctl/cmd/synth/subcommands/request/download"
	"github.com/youta-t/flarc"
)

const content = "age,income\n31,4200\n45,5100\n"

func TestDownload(t *testing.T) {
	type When struct {
		flags request_download.Flags
	}
	type Then struct {
		token  string
		format generation.FileFormat
		stdout string
	}

	theory := func(when When, then Then) func(*testing.T) {
		return func(t *testing.T) {
			client := mock.New(t)
			client.Impl.GetDownloadToken = func(ctx context.Context, requestId int) (requests.DownloadToken, error) {
				return requests.DownloadToken{DownloadToken: "tkn", ExpiresInMinutes: 30}, nil
			}
			client.Impl.DownloadRequestData = func(
				ctx context.Context, requestId int, format generation.FileFormat, token string,
				handler func(r io.Reader, size int64) error,
			) error {
				return handler(strings.NewReader(content), int64(len(content)))
			}

			stdout := new(strings.Builder)
			err := request_download.Task()(
				context.Background(), logger.Null(), *env.New(), client,
				commandline.MockCommandline[request_download.Flags]{
					Stdout_: stdout, Stderr_: io.Discard,
					Flags_: when.flags,
					Args_:  map[string][]string{request_download.ARG_REQUEST_ID: {"4"}},
				},
				[]any{},
			)
			if err != nil {
				t.Fatal(err)
			}

			if len(client.Calls.DownloadRequestData) != 1 {
				t.Fatalf("calls: %+v", client.Calls.DownloadRequestData)
			}
			actual := client.Calls.DownloadRequestData[0]
			if actual.RequestId != 4 || actual.Token != then.token || actual.Format != then.format {
				t.Errorf("download: %+v", actual)
			}
			if then.token == "" && len(client.Calls.GetDownloadToken) != 0 {
				t.Errorf("token is issued unexpectedly")
			}

			if when.flags.Output == "-" {
				if stdout.String() != content {
					t.Errorf("stdout: %q", stdout)
				}
				return
			}
			written, err := os.ReadFile(when.flags.Output)
			if err != nil {
				t.Fatal(err)
			}
			if string(written) != content {
				t.Errorf("file: %q", written)
			}
		}
	}

	t.Run("into a file, with a token", theory(
		When{flags: request_download.Flags{Output: filepath.Join(t.TempDir(), "out", "data.csv")}},
		Then{token: "tkn", format: generation.CSV},
	))
	t.Run("into stdout, with bearer", theory(
		When{flags: request_download.Flags{Output: "-", Format: "json", Bearer: true}},
		Then{token: "", format: generation.JSON},
	))

	t.Run("unknown format", func(t *testing.T) {
		client := mock.New(t)
		err := request_download.Task()(
			context.Background(), logger.Null(), *env.New(), client,
			commandline.MockCommandline[request_download.Flags]{
				Flags_: request_download.Flags{Format: "parquet"},
				Args_:  map[string][]string{request_download.ARG_REQUEST_ID: {"4"}},
			},
			[]any{},
		)
		if !errors.Is(err, flarc.ErrUsage) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
