// Package version holds build-time metadata for the bulloak CLI,
// surfaced by `bulloak --version` (spec.md §6.3).
package version

var (
	// Version is the semantic version of the CLI. Overridden at build
	// time via -ldflags "-X .../internal/version.Version=...".
	Version = "0.1.0-dev"

	// GitCommit is the commit hash the binary was built from, set at
	// build time; empty for a dev build.
	GitCommit = ""

	// GitMessage is the subject line of GitCommit, set at build time;
	// empty for a dev build.
	GitMessage = ""

	// BuildDate is an ISO-8601 build timestamp, set at build time; empty
	// for a dev build.
	BuildDate = ""
)
