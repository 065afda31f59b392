package credentials

import (
	"errors"
	"fmt"
	"os"

	"github.com/synthgen/synthctl/api-types/auth"
	"github.com/synthgen/synthctl/cmd/synth/config/open"
	yaml "gopkg.in/yaml.v3"
)

var ErrNotLoggedIn = errors.New("not logged in")

// Credential is a bearer token obtained by login, with who it is for.
type Credential struct {
	Token     string    `yaml:"token"`
	TokenType string    `yaml:"tokenType,omitempty"`
	UserId    int       `yaml:"userId,omitempty"`
	Email     string    `yaml:"email,omitempty"`
	Role      auth.Role `yaml:"role,omitempty"`
}

// FromLogin makes a Credential from the answer of login.
func FromLogin(lr auth.LoginResponse) *Credential {
	return &Credential{
		Token:     lr.AccessToken,
		TokenType: lr.TokenType,
		UserId:    lr.User.Id,
		Email:     lr.User.Email,
		Role:      lr.User.Role,
	}
}

func (c *Credential) IsAdmin() bool {
	return c != nil && c.Role == auth.RoleAdmin
}

// Store is a map from profile name to Credential.
type Store map[string]*Credential

// Load reads credentials store from file.
//
// A missing file is an empty store.
func Load(path string) (Store, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Store{}, nil
		}
		return nil, err
	}
	s := Store{}
	if err := yaml.Unmarshal(buf, &s); err != nil {
		return nil, fmt.Errorf("credentials store (%s) is broken: %w", path, err)
	}
	return s, nil
}

// Get returns the credential for the profile.
//
// If there are none, it returns ErrNotLoggedIn.
func (s Store) Get(profile string) (*Credential, error) {
	c, ok := s[profile]
	if !ok || c == nil || c.Token == "" {
		return nil, fmt.Errorf("%w: profile %s", ErrNotLoggedIn, profile)
	}
	return c, nil
}

// Put replaces credential of the profile.
func (s Store) Put(profile string, c *Credential) {
	s[profile] = c
}

// Forget removes credential of the profile. It reports whether there was one.
func (s Store) Forget(profile string) bool {
	_, ok := s[profile]
	delete(s, profile)
	return ok
}

// Save writes the store into the file, readable only by the owner.
func (s Store) Save(path string) error {
	buf, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return open.SaveSecret(path, buf)
}

// Clear removes credential of the profile from the store file.
func Clear(path string, profile string) error {
	s, err := Load(path)
	if err != nil {
		return err
	}
	if !s.Forget(profile) {
		return nil
	}
	return s.Save(path)
}
