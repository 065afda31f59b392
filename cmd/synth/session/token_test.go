package session_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/synthgen/synthctl/cmd/synth/session"
)

func token(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func TestCheck(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	type When struct {
		token string
	}
	type Then struct {
		err error
	}
	theory := func(when When, then Then) func(*testing.T) {
		return func(t *testing.T) {
			err := session.Check(when.token, now)
			if !errors.Is(err, then.err) {
				t.Errorf("(actual, expected) = (%v, %v)", err, then.err)
			}
		}
	}

	t.Run("token in the future is ok", theory(
		When{token: token(t, jwt.MapClaims{"sub": "alice@example.com", "exp": now.Add(time.Hour).Unix()})},
		Then{err: nil},
	))
	t.Run("token in the past is expired", theory(
		When{token: token(t, jwt.MapClaims{"sub": "alice@example.com", "exp": now.Add(-time.Second).Unix()})},
		Then{err: session.ErrTokenExpired},
	))
	t.Run("token expiring just now is expired", theory(
		When{token: token(t, jwt.MapClaims{"exp": now.Unix()})},
		Then{err: session.ErrTokenExpired},
	))
	t.Run("token without exp is left to the server", theory(
		When{token: token(t, jwt.MapClaims{"sub": "alice@example.com"})},
		Then{err: nil},
	))
	t.Run("opaque token is left to the server", theory(
		When{token: "not-a-jwt"},
		Then{err: nil},
	))
}

func TestExpiresAtAndSubject(t *testing.T) {
	exp := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	tok := token(t, jwt.MapClaims{"sub": "alice@example.com", "exp": exp.Unix()})

	actual, ok, err := session.ExpiresAt(tok)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || !actual.Equal(exp) {
		t.Errorf("(actual, expected) = (%s (%v), %s)", actual, ok, exp)
	}

	sub, err := session.Subject(tok)
	if err != nil {
		t.Fatal(err)
	}
	if sub != "alice@example.com" {
		t.Errorf("subject: %s", sub)
	}

	if _, _, err := session.ExpiresAt("not-a-jwt"); err == nil {
		t.Error("no error for broken token")
	}
}
