package context

import (
	"context"
	"testing"
	"time"
)

// margin is left between the context deadline and the test deadline,
// for cleanups such as closing fake servers.
const margin = time.Second

// WithTest returns a context which is done a little before t times out,
// or when t ends.
func WithTest(t *testing.T) context.Context {
	t.Helper()
	ctx := context.Background()
	cancel := func() {}
	if deadline, ok := t.Deadline(); ok {
		ctx, cancel = context.WithDeadline(ctx, deadline.Add(-margin))
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	t.Cleanup(cancel)
	return ctx
}
