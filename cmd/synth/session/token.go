package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrTokenExpired = errors.New("token is expired")

// ExpiresAt reads "exp" claim of the token without verifying its signature.
//
// ok is false when the token has no "exp" claim.
// Tokens which are not JWT are error.
func ExpiresAt(token string) (exp time.Time, ok bool, err error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false, err
	}
	nd, err := parsed.Claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, false, err
	}
	if nd == nil {
		return time.Time{}, false, nil
	}
	return nd.Time, true, nil
}

// Subject reads "sub" claim of the token without verifying its signature.
func Subject(token string) (string, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return "", err
	}
	return parsed.Claims.GetSubject()
}

// Check returns ErrTokenExpired if the token is expired at now.
//
// Tokens which cannot be read are left to the server to judge.
func Check(token string, now time.Time) error {
	exp, ok, err := ExpiresAt(token)
	if err != nil || !ok {
		return nil
	}
	if !now.Before(exp) {
		return fmt.Errorf("%w at %s", ErrTokenExpired, exp.Format(time.RFC3339))
	}
	return nil
}
