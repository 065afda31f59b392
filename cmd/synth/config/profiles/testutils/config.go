package testutils

import (
	"os"
	"path/filepath"
	"testing"

	prof "github.com/synthgen/synthctl/cmd/synth/config/profiles"
	"gopkg.in/yaml.v3"
)

// create profile store file for test.
//
// the created file is removed after testcase automaticaly.
//
// returns:
//   - string: filepath to profile store. if creating is failed, it will be `""`
//   - error: error caused during creating profile file.
func TempProfile(t *testing.T, name string, profile *prof.SynthProfile) (string, error) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "profile")
	buf, err := yaml.Marshal(prof.ProfileStore{name: profile})
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, buf, 0600); err != nil {
		return "", err
	}
	return path, nil
}
