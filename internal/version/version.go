// Package version holds build metadata set via -ldflags.
package version

var (
	// Version is the semantic version of the build.
	Version = "0.1.0"
	// Commit is the git commit the binary was built from.
	Commit = "dev"
)

// String returns the version with the commit appended, as shown by --version.
func String() string {
	if Commit == "" {
		return Version
	}
	return Version + " (" + Commit + ")"
}
