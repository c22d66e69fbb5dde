// Package version carries build metadata stamped in via -ldflags.
package version

var (
	// Version is the semantic version of the running binary.
	Version = "dev"

	// Commit is the short git commit hash of the build.
	Commit = "unknown"
)

// String returns a human readable version string.
func String() string {
	return Version + " (" + Commit + ")"
}
