package profiles

import (
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/synthgen/synthctl/cmd/synth/config/open"
	yaml "gopkg.in/yaml.v3"
)

var ErrProfileStoreNotFound = errors.New("profile store is not found")
var ErrProfileInvalid = errors.New("synth profile is invalid")

const (
	DefaultTimeout     = 30 * time.Second
	DefaultLongTimeout = 120 * time.Second
)

// ProfileStore is a map from profile name to SynthProfile.
type ProfileStore map[string]*SynthProfile

type Cert struct {
	// base64 encoded CA certificate (PEM)
	CA string `yaml:"ca,omitempty"`
}

// SynthProfile tells where the synthetic data server is.
type SynthProfile struct {
	// endpoint of the server, like https://synth.example.com/api
	ApiRoot string `yaml:"apiRoot"`

	Cert Cert `yaml:"cert,omitempty"`

	// timeout of an ordinary request. DefaultTimeout if zero.
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// timeout of uploading, downloading and starting generation.
	// DefaultLongTimeout if zero.
	LongTimeout time.Duration `yaml:"longTimeout,omitempty"`
}

func (p *SynthProfile) RequestTimeout() time.Duration {
	if p.Timeout <= 0 {
		return DefaultTimeout
	}
	return p.Timeout
}

func (p *SynthProfile) TransferTimeout() time.Duration {
	if p.LongTimeout <= 0 {
		return DefaultLongTimeout
	}
	return p.LongTimeout
}

func verifyUrl(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs() && (u.Scheme == "http" || u.Scheme == "https")
}

func verifyPEM(b64cert string) bool {
	bin, err := base64.StdEncoding.DecodeString(b64cert)
	if err != nil {
		return false
	}
	blk, _ := pem.Decode(bin)
	return blk != nil
}

// Verify SynthProfile
//
// # Return
//
// nil if it is valid. Otherwise, ErrProfileInvalid error.
func (p *SynthProfile) Verify() error {
	if !verifyUrl(p.ApiRoot) {
		return fmt.Errorf("%w: apiRoot is not http(s) URL: %s", ErrProfileInvalid, p.ApiRoot)
	}
	if p.Cert.CA != "" && !verifyPEM(p.Cert.CA) {
		return fmt.Errorf("%w: cert.ca is not PEM", ErrProfileInvalid)
	}
	if p.Timeout < 0 || p.LongTimeout < 0 {
		return fmt.Errorf("%w: timeout should not be negative", ErrProfileInvalid)
	}
	return nil
}

// LoadProfileStore loads profile store from file.
func LoadProfileStore(filepath string) (ProfileStore, error) {
	buf, err := os.ReadFile(filepath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s: %w", ErrProfileStoreNotFound, filepath, err)
		}
		return nil, err
	}
	return Unmarshall(buf)
}

// Unmarshall profile store from yaml in byte array.
func Unmarshall(buf []byte) (ProfileStore, error) {
	ret := ProfileStore{}
	if err := yaml.Unmarshal(buf, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// Save profile store to file.
func (ps ProfileStore) Save(path string) error {
	buf, err := yaml.Marshal(ps)
	if err != nil {
		return err
	}
	return open.SaveSecret(path, buf)
}
