package version

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Set with -ldflags "-X github.com/gaut2172/bidindex/version.Commit=..." at
// release time.
var (
	Commit = "unknown"
	Build  = "unknown"
)

func Version() string {
	return strings.TrimSpace(version)
}
