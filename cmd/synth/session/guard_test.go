package session_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/synthgen/synthctl/cmd/synth/session"
)

func TestGuard(t *testing.T) {
	t.Run("concurrent expiries run the action once", func(t *testing.T) {
		count := atomic.Int32{}
		g := session.NewGuard(func() { count.Add(1) })

		won := atomic.Int32{}
		wg := sync.WaitGroup{}
		for i := 0; i < 64; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if g.Expire() {
					won.Add(1)
				}
			}()
		}
		wg.Wait()

		if c := count.Load(); c != 1 {
			t.Errorf("action runs: (actual, expected) = (%d, %d)", c, 1)
		}
		if w := won.Load(); w != 1 {
			t.Errorf("winners: (actual, expected) = (%d, %d)", w, 1)
		}
		if !g.Expired() {
			t.Error("not expired")
		}
	})

	t.Run("Reset re-arms the guard", func(t *testing.T) {
		calls := []string{}
		g := session.NewGuard(func() { calls = append(calls, "first") })
		g.OnExpire(func() { calls = append(calls, "second") })

		if !g.Expire() {
			t.Fatal("first expiry is ignored")
		}
		if g.Expire() {
			t.Fatal("second expiry is not ignored")
		}
		g.Reset()
		if g.Expired() {
			t.Error("expired after reset")
		}
		if !g.Expire() {
			t.Fatal("expiry after reset is ignored")
		}

		expected := []string{"first", "second", "first", "second"}
		if len(calls) != len(expected) {
			t.Fatalf("(actual, expected) = (%v, %v)", calls, expected)
		}
		for i := range expected {
			if calls[i] != expected[i] {
				t.Errorf("(actual, expected) = (%v, %v)", calls, expected)
				break
			}
		}
	})
}
