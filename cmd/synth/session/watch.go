package session

import (
	"context"

	"github.com/synthgen/synthctl/cmd/synth/config/credentials"
	"github.com/synthgen/synthctl/pkg/filewatch"
)

// WatchCredentials re-arms guard and calls onToken when a new token
// for the profile is written into the credentials store.
//
// It stops when ctx is done or stop is called.
func WatchCredentials(
	ctx context.Context,
	path string,
	profile string,
	guard *Guard,
	onToken func(token string),
) (stop func(), err error) {
	last := ""
	if s, err := credentials.Load(path); err == nil {
		if c, err := s.Get(profile); err == nil {
			last = c.Token
		}
	}

	return filewatch.Notify(ctx, func(filewatch.Event) {
		s, err := credentials.Load(path)
		if err != nil {
			return
		}
		c, err := s.Get(profile)
		if err != nil || c.Token == last {
			return
		}
		last = c.Token
		guard.Reset()
		onToken(c.Token)
	}, path)
}
