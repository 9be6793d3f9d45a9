// Package buildinfo carries version metadata injected at build time.
package buildinfo

// Injected via ldflags for release binaries; empty for local builds.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)
