package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Set at build time via -ldflags "-X pixelpad/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

var readBuildInfo = debug.ReadBuildInfo

// Short returns a compact build identifier for the window title.
//
// Without ldflags it falls back to the VCS revision the go tool embedded.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if c := commit(); c != "" {
		if len(c) > 7 {
			c = c[:7]
		}
		return c
	}
	return "dev"
}

// String is the full line printed by -version.
func String() string {
	c := commit()
	if c == "" {
		c = "unknown"
	}
	return fmt.Sprintf("pixelpad %s (commit %s, built %s)", Version, c, Date)
}

func commit() string {
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	info, ok := readBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}
