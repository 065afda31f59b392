// Package commandline provides a flarc.Commandline for testing tasks.
package commandline

import (
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/youta-t/flarc"
)

// MockCommandline is a flarc.Commandline with fixed flags and args.
//
// Nil streams are empty (Stdin_) or discarding (Stdout_, Stderr_).
type MockCommandline[T any] struct {
	// "synth test" if empty.
	Fullname_ string

	Stdin_  io.Reader
	Stdout_ io.Writer
	Stderr_ io.Writer

	Flags_ T
	Args_  map[string][]string
}

var _ flarc.Commandline[struct{}] = MockCommandline[struct{}]{}

func (m MockCommandline[T]) Fullname() string {
	if m.Fullname_ == "" {
		return "synth test"
	}
	return m.Fullname_
}

func (m MockCommandline[T]) Stdin() io.Reader {
	if m.Stdin_ == nil {
		return strings.NewReader("")
	}
	return m.Stdin_
}

func (m MockCommandline[T]) Stdout() io.Writer {
	if m.Stdout_ == nil {
		return io.Discard
	}
	return m.Stdout_
}

func (m MockCommandline[T]) Stderr() io.Writer {
	if m.Stderr_ == nil {
		return io.Discard
	}
	return m.Stderr_
}

func (m MockCommandline[T]) Flags() T {
	return m.Flags_
}

func (m MockCommandline[T]) Args() map[string][]string {
	if m.Args_ == nil {
		return map[string][]string{}
	}
	return m.Args_
}

// PrintedJSON decodes the JSON a task printed on stdout, as T.
//
// It fails t when stdout is not a JSON of T.
func PrintedJSON[T any](t *testing.T, stdout *strings.Builder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal([]byte(stdout.String()), &v); err != nil {
		t.Fatalf("stdout is not a JSON: %s\n%s", err, stdout)
	}
	return v
}
