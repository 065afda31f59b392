package common

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

const (
	// DefaultProfile is the profile name used when nothing tells which.
	DefaultProfile = "default"

	// ProfileEnvVar names the environment variable to choose a profile.
	ProfileEnvVar = "SYNTH_PROFILE"
)

type CommonFlags struct {
	Profile      string `flag:"profile" help:"synth profile name to use"`
	ProfileStore string `flag:"profile-store" help:"path to synth profile store file"`
	Credentials  string `flag:"credentials" help:"path to credentials store file"`
	Env          string `flag:"env" help:"path to synthenv file"`
	Verbose      bool   `flag:"verbose" alias:"v" help:"print causes of errors"`
}

type commonFlagDetection struct {
	home   string
	getenv func(string) string
}

type CommonFlagDetectionOption func(*commonFlagDetection) *commonFlagDetection

func WithHome(home string) CommonFlagDetectionOption {
	return func(opt *commonFlagDetection) *commonFlagDetection {
		opt.home = home
		return opt
	}
}

// WithGetenv replaces the way to read environment variables.
func WithGetenv(getenv func(string) string) CommonFlagDetectionOption {
	return func(opt *commonFlagDetection) *commonFlagDetection {
		opt.getenv = getenv
		return opt
	}
}

// Flags detects default values of CommonFlags for the directory from.
//
// The profile name is taken from, in order of precedence,
// the environment variable SYNTH_PROFILE, the first line of ".synthprofile" file
// in from or its nearest ancestor, or DefaultProfile.
//
// "synthenv" file is searched in the same way.
// If it is not found, from/synthenv is the default.
func Flags(from string, opt ...CommonFlagDetectionOption) (CommonFlags, error) {
	detparam := commonFlagDetection{
		home:   "",
		getenv: os.Getenv,
	}
	for _, o := range opt {
		detparam = *o(&detparam)
	}

	home := detparam.home
	if home == "" {
		_home, err := os.UserHomeDir()
		if err != nil {
			_home = ""
		}
		home = _home
	}

	if _from, err := filepath.Abs(from); err == nil {
		from = _from
	}

	profile := DefaultProfile

	profileFound := false
	envFound := false
	env := path.Join(from, "synthenv")
	for searchpath := from; ; {
		if !profileFound {
			candidate := path.Join(searchpath, ".synthprofile")
			if s, err := os.Stat(candidate); err == nil && s.Mode().IsRegular() {
				_profile, err := os.ReadFile(candidate)
				if err != nil {
					return CommonFlags{}, err
				}
				profileFound = true
				if p := strings.Split(string(_profile), "\n"); 0 < len(p) && strings.TrimSpace(p[0]) != "" {
					profile = strings.TrimSpace(p[0])
				}
			}
		}
		if !envFound {
			candidate := path.Join(searchpath, "synthenv")
			if s, err := os.Stat(candidate); err == nil && s.Mode().IsRegular() {
				envFound = true
				env = candidate
			}
		}

		if profileFound && envFound {
			break
		}

		next := path.Dir(searchpath)
		if next == searchpath {
			break
		}
		searchpath = next
	}

	if p := strings.TrimSpace(detparam.getenv(ProfileEnvVar)); p != "" {
		profile = p
	}

	return CommonFlags{
		Profile:      profile,
		ProfileStore: path.Join(home, ".synth", "profile"),
		Credentials:  path.Join(home, ".synth", "credentials"),
		Env:          env,
	}, nil
}
