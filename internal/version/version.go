// Package version exposes build-time version information, set via
// -ldflags at release time.
package version

import "fmt"

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// Info bundles the version identifiers for display and JSON output.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
}

// GetInfo returns the current build's version information.
func GetInfo() Info {
	return Info{Version: Version, Commit: Commit, BuildDate: BuildDate}
}

func (i Info) String() string {
	return fmt.Sprintf("assetpipe %s (commit %s, built %s)", i.Version, i.Commit, i.BuildDate)
}
