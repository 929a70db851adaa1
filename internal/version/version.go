// Package version carries build-time stamped metadata, set via -ldflags
// at release build time.
package version

import "fmt"

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// GetAbout formats the stamped build metadata for the version subcommand.
func GetAbout() string {
	return fmt.Sprintf("goplss %s (commit %s, built %s)", Version, Commit, BuildDate)
}
