package filewatch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/synthgen/synthctl/pkg/filewatch"
)

func waitEvent(t *testing.T, ch <-chan filewatch.Event) (filewatch.Event, bool) {
	t.Helper()
	deadlineCh := make(<-chan time.Time)
	if dl, ok := t.Deadline(); ok {
		deadlineCh = time.After(time.Until(dl) - 1*time.Second)
	}
	select {
	case ev := <-ch:
		return ev, true
	case <-deadlineCh:
		return filewatch.Event{}, false
	}
}

func TestNotify(t *testing.T) {
	t.Run("when a watched file is created, handler is called", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "credentials")

		ch := make(chan filewatch.Event, 16)
		stop, err := filewatch.Notify(context.Background(), func(e filewatch.Event) { ch <- e }, file)
		if err != nil {
			t.Fatal(err)
		}
		defer stop()

		if err := os.WriteFile(file, []byte("token"), 0600); err != nil {
			t.Fatal(err)
		}

		ev, ok := waitEvent(t, ch)
		if !ok {
			t.Fatal("no event")
		}
		if ev.Path != file {
			t.Errorf("path: (actual, expected) = (%s, %s)", ev.Path, file)
		}
	})

	t.Run("when a watched file is written twice, handler is called for each", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "credentials")
		if err := os.WriteFile(file, []byte("v1"), 0600); err != nil {
			t.Fatal(err)
		}

		ch := make(chan filewatch.Event, 16)
		stop, err := filewatch.Notify(context.Background(), func(e filewatch.Event) { ch <- e }, file)
		if err != nil {
			t.Fatal(err)
		}
		defer stop()

		if err := os.WriteFile(file, []byte("v2"), 0600); err != nil {
			t.Fatal(err)
		}
		if _, ok := waitEvent(t, ch); !ok {
			t.Fatal("no event for 1st write")
		}
		// drain events caused by the 1st write.
		time.Sleep(50 * time.Millisecond)
		for len(ch) != 0 {
			<-ch
		}

		if err := os.WriteFile(file, []byte("v3"), 0600); err != nil {
			t.Fatal(err)
		}
		if _, ok := waitEvent(t, ch); !ok {
			t.Fatal("no event for 2nd write")
		}
	})

	t.Run("other files in the same directory are ignored", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "credentials")

		ch := make(chan filewatch.Event, 16)
		stop, err := filewatch.Notify(context.Background(), func(e filewatch.Event) { ch <- e }, file)
		if err != nil {
			t.Fatal(err)
		}
		defer stop()

		if err := os.WriteFile(filepath.Join(dir, "other"), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}

		select {
		case ev := <-ch:
			t.Errorf("unexpected event: %+v", ev)
		case <-time.After(200 * time.Millisecond):
		}
	})

	t.Run("after stop, handler is not called", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "credentials")

		ch := make(chan filewatch.Event, 16)
		stop, err := filewatch.Notify(context.Background(), func(e filewatch.Event) { ch <- e }, file)
		if err != nil {
			t.Fatal(err)
		}
		stop()
		stop()
		time.Sleep(50 * time.Millisecond)

		if err := os.WriteFile(file, []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
		select {
		case ev := <-ch:
			t.Errorf("unexpected event: %+v", ev)
		case <-time.After(200 * time.Millisecond):
		}
	})
}
