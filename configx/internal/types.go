// Package internal provides internal implementation details for configx.
package internal

import "context"

// Source describes a configuration source.
// Implementations must be safe for concurrent use and honor context cancellation.
type Source interface {
	// Load reads the current configuration snapshot.
	// Keys are normalized to upper case with "_" separators.
	Load(ctx context.Context) (map[string]string, error)
}
