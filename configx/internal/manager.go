package internal

import (
	"context"
	"fmt"
	"sync"

	"go.eggybyte.com/jscaffold/core/log"
)

// ManagerImpl merges configuration sources into one snapshot.
type ManagerImpl struct {
	logger   log.Logger
	sources  []Source
	snapshot map[string]string
	mu       sync.RWMutex
}

// NewManager creates a new configuration manager.
func NewManager(logger log.Logger, sources []Source) (*ManagerImpl, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("at least one source is required")
	}

	return &ManagerImpl{
		logger:   logger,
		sources:  sources,
		snapshot: make(map[string]string),
	}, nil
}

// Load reads all sources and merges them, later sources taking precedence.
// Empty values never override earlier non-empty ones.
func (m *ManagerImpl) Load(ctx context.Context) error {
	merged := make(map[string]string)

	for i, source := range m.sources {
		if err := ctx.Err(); err != nil {
			return err
		}
		snapshot, err := source.Load(ctx)
		if err != nil {
			return fmt.Errorf("source %d load failed: %w", i, err)
		}

		for k, v := range snapshot {
			if v != "" {
				merged[k] = v
			}
		}
	}

	m.mu.Lock()
	m.snapshot = merged
	m.mu.Unlock()

	m.logger.Debug("configuration loaded", log.Int("keys", len(merged)), log.Int("sources", len(m.sources)))
	return nil
}

// Snapshot returns a copy of the current configuration.
func (m *ManagerImpl) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := make(map[string]string, len(m.snapshot))
	for k, v := range m.snapshot {
		snapshot[k] = v
	}
	return snapshot
}

// Value returns the value for a key and whether it exists.
func (m *ManagerImpl) Value(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, exists := m.snapshot[NormalizeKey(key)]
	return value, exists
}

// Bind decodes the configuration into a struct.
func (m *ManagerImpl) Bind(target any) error {
	if target == nil {
		return fmt.Errorf("target cannot be nil")
	}
	return BindToStruct(m.Snapshot(), target)
}
