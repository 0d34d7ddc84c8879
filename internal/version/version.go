// Package version exposes build metadata injected at link time.
package version

// Set via -ldflags at build time; the defaults identify ad-hoc builds.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// String renders the full version line shown by `ticketscan --version`.
func String() string {
	return Version + " (commit " + GitCommit + ", built " + BuildDate + ")"
}
