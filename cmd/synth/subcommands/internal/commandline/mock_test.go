package commandline_test

import (
	"io"
	"strings"
	"testing"

	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/internal/commandline"
)

func TestMockCommandline(t *testing.T) {
	t.Run("nil streams are usable", func(t *testing.T) {
		cl := commandline.MockCommandline[struct{}]{}
		if cl.Fullname() != "synth test" {
			t.Errorf("fullname: %s", cl.Fullname())
		}
		if b, err := io.ReadAll(cl.Stdin()); err != nil || len(b) != 0 {
			t.Errorf("stdin: (%q, %v)", b, err)
		}
		if _, err := cl.Stdout().Write([]byte("out")); err != nil {
			t.Error(err)
		}
		if _, err := cl.Stderr().Write([]byte("err")); err != nil {
			t.Error(err)
		}
		if len(cl.Args()) != 0 {
			t.Errorf("args: %v", cl.Args())
		}
	})

	t.Run("PrintedJSON reads what WriteJSON printed", func(t *testing.T) {
		type Entry struct {
			Id   int    `json:"id"`
			Name string `json:"name"`
		}
		stdout := new(strings.Builder)
		cl := commandline.MockCommandline[struct{}]{Stdout_: stdout}
		if err := common.WriteJSON(cl.Stdout(), []Entry{{Id: 1, Name: "adult.csv"}}); err != nil {
			t.Fatal(err)
		}

		actual := commandline.PrintedJSON[[]Entry](t, stdout)
		if len(actual) != 1 || actual[0] != (Entry{Id: 1, Name: "adult.csv"}) {
			t.Errorf("actual: %+v", actual)
		}
	})
}
