package download_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/synthgen/synthctl/api-types/generation"
	"github.com/synthgen/synthctl/cmd/synth/env"
	"github.com/synthgen/synthctl/cmd/synth/rest/mock"
	generate_download "github.com/synthgen/synthctl/cmd/synth/subcommands/generate/download"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/internal/commandline"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/logger"
)

func TestDownload(t *testing.T) {
	content := `[{"age": 31}, {"age": 45}]`
	size := int64(len(content))

	client := mock.New(t)
	client.Impl.GetGenerationDownload = func(ctx context.Context, requestId int, format generation.FileFormat) (generation.DownloadResponse, error) {
		return generation.DownloadResponse{
			DownloadUrl: "https://files.example.com/synthetic/7.json?sig=abc",
			FileSize:    &size, FileFormat: format,
		}, nil
	}
	client.Impl.Fetch = func(ctx context.Context, url string, handler func(r io.Reader, size int64) error) error {
		return handler(strings.NewReader(content), -1)
	}

	dest := filepath.Join(t.TempDir(), "out.json")
	err := generate_download.Task()(
		context.Background(), logger.Null(), *env.New(), client,
		commandline.MockCommandline[generate_download.Flags]{
			Stdout_: io.Discard, Stderr_: io.Discard,
			Flags_: generate_download.Flags{Format: "json", Output: dest},
			Args_:  map[string][]string{generate_download.ARG_JOB_ID: {"7"}},
		},
		[]any{},
	)
	if err != nil {
		t.Fatal(err)
	}

	if len(client.Calls.GetGenerationDownload) != 1 {
		t.Fatalf("calls: %+v", client.Calls.GetGenerationDownload)
	}
	if a := client.Calls.GetGenerationDownload[0]; a.RequestId != 7 || a.Format != generation.JSON {
		t.Errorf("download: %+v", a)
	}
	if len(client.Calls.Fetch) != 1 || client.Calls.Fetch[0] != "https://files.example.com/synthetic/7.json?sig=abc" {
		t.Errorf("fetch: %v", client.Calls.Fetch)
	}
	written, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(written) != content {
		t.Errorf("file: %s", written)
	}
}
