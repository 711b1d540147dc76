// Package version provides version information for the jscaffold CLI tool.
//
// Overview:
//   - Responsibility: CLI version metadata (version, commit, build time)
//   - Key Types: Version variables and functions
//   - Concurrency Model: Immutable after link time, safe for concurrent use
//   - Error Semantics: No errors
//   - Performance Notes: Zero-cost variables
//
// Usage:
//
//	import "go.eggybyte.com/jscaffold/internal/version"
//	version.GetVersionString()
package version

import (
	"fmt"
	"runtime"
)

// Version is the CLI version.
// This value is overridden with -ldflags during release builds.
var Version = "v0.1.0-dev"

// Commit is the git commit hash.
var Commit = "unknown"

// BuildTime is the build timestamp in RFC3339 format.
var BuildTime = "unknown"

// GetVersionString returns the full version string in the format:
// jscaffold version v0.1.0 (commit 4a9b2c1, built 2025-10-31T12:10:00Z)
//
// Concurrency:
//   - Safe for concurrent use
func GetVersionString() string {
	return fmt.Sprintf("jscaffold version %s (commit %s, built %s)", Version, Commit, BuildTime)
}

// GetFullVersionInfo returns detailed version information including the Go toolchain.
func GetFullVersionInfo() string {
	return fmt.Sprintf(`jscaffold version %s (commit %s, built %s)
go version %s (%s/%s)`,
		Version, Commit, BuildTime,
		runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
