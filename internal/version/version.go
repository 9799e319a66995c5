// Package version exposes build metadata injected at link time.
package version

var (
	// Version is the release version (set via -ldflags).
	Version = ""
	// Commit is the git commit hash (set via -ldflags).
	Commit = ""
)

// String renders the version for CLI output.
func String() string {
	v := Version
	if v == "" {
		v = "dev"
	}
	if Commit == "" {
		return v
	}
	return v + " (" + shortCommit(Commit) + ")"
}

func shortCommit(commit string) string {
	if len(commit) <= 12 {
		return commit
	}
	return commit[:12]
}
