package status_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/synthgen/synthctl/api-types/auth"
	"github.com/synthgen/synthctl/cmd/synth/config/credentials"
	auth_status "github.com/synthgen/synthctl/cmd/synth/subcommands/auth/status"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/internal/commandline"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/logger"
	"github.com/synthgen/synthctl/pkg/try"
)

func TestStatus(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	token := func(exp time.Time) string {
		return try.To(
			jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()}).SignedString([]byte("k")),
		).OrFatal(t)
	}

	type Then struct {
		loggedIn  bool
		expired   bool
		email     string
		expiresAt *time.Time
	}

	theory := func(stored credentials.Store, then Then) func(*testing.T) {
		return func(t *testing.T) {
			credPath := filepath.Join(t.TempDir(), "credentials")
			if stored != nil {
				if err := stored.Save(credPath); err != nil {
					t.Fatal(err)
				}
			}

			stdout := new(strings.Builder)
			err := auth_status.Task(func() time.Time { return now })(
				context.Background(),
				logger.Null(),
				common.CommonFlags{Profile: "test", Credentials: credPath},
				commandline.MockCommandline[struct{}]{Stdout_: stdout},
				[]any{},
			)
			if err != nil {
				t.Fatal(err)
			}

			actual := commandline.PrintedJSON[auth_status.Status](t, stdout)
			if actual.Profile != "test" || actual.LoggedIn != then.loggedIn ||
				actual.Expired != then.expired || actual.Email != then.email {
				t.Errorf("unexpected status: %+v", actual)
			}
			if (actual.ExpiresAt == nil) != (then.expiresAt == nil) ||
				(actual.ExpiresAt != nil && !actual.ExpiresAt.Equal(*then.expiresAt)) {
				t.Errorf("expires at: (actual, expected) = (%v, %v)", actual.ExpiresAt, then.expiresAt)
			}
		}
	}

	later := now.Add(time.Hour)
	earlier := now.Add(-time.Hour)

	t.Run("no credentials store", theory(nil, Then{}))
	t.Run("valid token", theory(
		credentials.Store{"test": {Token: token(later), Email: "alice@example.com", Role: auth.RoleUser}},
		Then{loggedIn: true, email: "alice@example.com", expiresAt: &later},
	))
	t.Run("expired token", theory(
		credentials.Store{"test": {Token: token(earlier), Email: "alice@example.com"}},
		Then{expired: true, email: "alice@example.com", expiresAt: &earlier},
	))
	t.Run("opaque token", theory(
		credentials.Store{"test": {Token: "opaque", Email: "alice@example.com"}},
		Then{loggedIn: true, email: "alice@example.com"},
	))
}
