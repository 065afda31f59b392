package try_test

import (
	"errors"
	"testing"

	"github.com/synthgen/synthctl/pkg/try"
)

type fataler struct {
	fatal [][]any
}

func (f *fataler) Fatal(args ...any) {
	f.fatal = append(f.fatal, args)
}

type helperfataler struct {
	fataler

	helper uint
}

func (hf *helperfataler) Helper() {
	hf.helper += 1
}

func TestTry(t *testing.T) {
	t.Run("when it does not have error,", func(t *testing.T) {
		expected := 42
		testee := try.To(expected, nil)

		t.Run("OrFatal returns the value without calling Fatal nor Helper", func(t *testing.T) {
			f := &helperfataler{}
			actual := testee.OrFatal(f)

			if actual != expected {
				t.Errorf("unexpected result: (actual, expected) = (%d, %d)", actual, expected)
			}
			if len(f.fatal) != 0 || f.helper != 0 {
				t.Errorf("Fatal or Helper is called, unexpectedly: %+v", f)
			}
		})

		t.Run("OrDefault returns non-default value", func(t *testing.T) {
			if ret := testee.OrDefault(expected + 1); ret != expected {
				t.Errorf("unmatch: (actual, expected) = (%d, %d)", ret, expected)
			}
		})

		t.Run("Get returns the value and nil", func(t *testing.T) {
			v, err := testee.Get()
			if v != expected || err != nil {
				t.Errorf("unmatch: (actual, expected) = ((%d, %v), (%d, nil))", v, err, expected)
			}
		})
	})

	t.Run("when it has error,", func(t *testing.T) {
		expectedErr := errors.New("fake error")
		testee := try.To(42, expectedErr)

		t.Run("OrFatal calls Helper and Fatal with the error", func(t *testing.T) {
			f := &helperfataler{}
			actual := testee.OrFatal(f)

			if actual != 0 {
				t.Errorf("unexpected result: %d", actual)
			}
			if f.helper != 1 {
				t.Errorf("Helper is called %d times", f.helper)
			}
			if len(f.fatal) != 1 || f.fatal[0][0] != expectedErr {
				t.Errorf("Fatal is not called with the error: %+v", f.fatal)
			}
		})

		t.Run("OrDefault returns the default value", func(t *testing.T) {
			if ret := testee.OrDefault(7); ret != 7 {
				t.Errorf("unmatch: (actual, expected) = (%d, %d)", ret, 7)
			}
		})

		t.Run("Get returns zero value and the error", func(t *testing.T) {
			v, err := testee.Get()
			if v != 0 || !errors.Is(err, expectedErr) {
				t.Errorf("unmatch: (%d, %v)", v, err)
			}
		})
	})
}
