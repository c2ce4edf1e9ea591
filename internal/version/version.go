// Package version carries the build stamp of the skilltrack binary.
package version

import (
	"fmt"
	"runtime"
)

// Set with -ldflags "-X github.com/andywolf/skilltrack/internal/version.Version=v0.3.0".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

const name = "skilltrack"

// BuildInfo is the machine-readable form printed by `skilltrack version --json`.
type BuildInfo struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// Current returns the stamp of the running binary.
func Current() BuildInfo {
	return BuildInfo{
		Name:      name,
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// ShortCommit returns the first seven characters of the commit SHA.
func (b BuildInfo) ShortCommit() string {
	if len(b.Commit) > 7 {
		return b.Commit[:7]
	}
	return b.Commit
}

// Short returns the bare version, e.g. "v0.3.0" or "dev".
func Short() string {
	return Version
}

// Info returns a one-line summary:
// "skilltrack v0.3.0 (commit: abc1234, built: 2025-01-15T10:30:00Z, go: go1.24.0)"
func Info() string {
	b := Current()
	return fmt.Sprintf("%s %s (commit: %s, built: %s, go: %s)",
		b.Name, b.Version, b.ShortCommit(), b.BuildDate, b.GoVersion)
}

// Full returns the multi-line form used by `skilltrack version -v`.
func Full() string {
	b := Current()
	return fmt.Sprintf("%s %s\n  Commit:     %s\n  Built:      %s\n  Go version: %s\n  OS/Arch:    %s",
		b.Name, b.Version, b.Commit, b.BuildDate, b.GoVersion, b.Platform)
}
