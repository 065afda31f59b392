package buildtime

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// overwritten with -ldflags "-X github.com/synthgen/synthctl/pkg/buildtime.revision=..."
var revision = "unknown"

func init() {
	version = strings.TrimSpace(version)
	revision = strings.TrimSpace(revision)
}

// version string of this synth build.
func VERSION() string {
	return version
}

func GIT_REVISION() string {
	return revision
}

func VersionString() string {
	return version + " (commit: " + revision + ")\n"
}
