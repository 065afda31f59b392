package session

import (
	"sync"
	"sync/atomic"
)

// Guard runs the action for expired session at most once until Reset.
//
// Concurrent calls of Expire collapse into one.
type Guard struct {
	expired  atomic.Bool
	mu       sync.Mutex
	onExpire []func()
}

// NewGuard creates a Guard. onExpire are called in order on expiry.
func NewGuard(onExpire ...func()) *Guard {
	return &Guard{onExpire: onExpire}
}

// OnExpire adds an action for expiry.
func (g *Guard) OnExpire(f func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onExpire = append(g.onExpire, f)
}

// Expire marks the session expired.
//
// Only the call which changed the state runs the actions and gets true.
func (g *Guard) Expire() bool {
	if !g.expired.CompareAndSwap(false, true) {
		return false
	}

	g.mu.Lock()
	actions := append([]func(){}, g.onExpire...)
	g.mu.Unlock()

	for _, f := range actions {
		f()
	}
	return true
}

func (g *Guard) Expired() bool {
	return g.expired.Load()
}

// Reset re-arms the guard. Call this after logging in again.
func (g *Guard) Reset() {
	g.expired.Store(false)
}
