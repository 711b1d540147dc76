// Package configx provides layered configuration loading for jscaffold.
//
// Overview:
//   - Responsibility: Merge configuration from files, dotenv, environment and flags
//   - Key Types: Source interface, Manager interface, Options for configuration
//   - Concurrency Model: Manager is safe for concurrent use, sources must be thread-safe
//   - Error Semantics: Functions return errors for load, binding and validation failures
//   - Performance Notes: Sources are read once per NewManager call
//
// Usage:
//
//	sources := []configx.Source{
//	  configx.NewFileSource("jscaffold.yaml", configx.FileOptions{Optional: true}),
//	  configx.NewEnvSource(configx.EnvOptions{Prefix: "JSCAFFOLD_"}),
//	  configx.NewMapSource(flagOverrides),
//	}
//	manager, err := configx.NewManager(ctx, configx.Options{
//	  Logger:  logger,
//	  Sources: sources,
//	})
//	var cfg Config
//	err = manager.Bind(&cfg)
package configx

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"go.eggybyte.com/jscaffold/configx/internal"
	"go.eggybyte.com/jscaffold/core/log"
)

// Source describes a configuration source.
// Implementations must be thread-safe and honor context cancellation.
type Source interface {
	// Load reads the current configuration snapshot.
	// Keys are upper case with "_" separators.
	Load(ctx context.Context) (map[string]string, error)
}

// Manager provides unified access to merged configuration.
// Later sources take precedence over earlier ones.
type Manager interface {
	// Snapshot returns a copy of the current merged configuration.
	Snapshot() map[string]string

	// Value returns the value for a key and whether it exists.
	Value(key string) (string, bool)

	// Bind decodes the configuration into a struct with env and default tags,
	// then validates it using validate tags.
	Bind(target any) error
}

// Options holds configuration for the manager.
type Options struct {
	Logger    log.Logger          // Logger for configuration operations (default: no-op)
	Sources   []Source            // Configuration sources (later sources override earlier ones)
	Validator *validator.Validate // Validator used by Bind (default: NewValidator())
}

type manager struct {
	impl     *internal.ManagerImpl
	validate *validator.Validate
}

// NewManager creates a configuration manager and loads every source.
//
// Parameters:
//   - ctx: context for loading sources
//   - opts: manager configuration options
//
// Returns:
//   - Manager: loaded manager instance
//   - error: load error from the first failing source
func NewManager(ctx context.Context, opts Options) (Manager, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Nop()
	}

	if len(opts.Sources) == 0 {
		return nil, fmt.Errorf("at least one source is required")
	}

	internalSources := make([]internal.Source, len(opts.Sources))
	for i, src := range opts.Sources {
		if src == nil {
			return nil, fmt.Errorf("source %d is nil", i)
		}
		internalSources[i] = src
	}

	impl, err := internal.NewManager(logger, internalSources)
	if err != nil {
		return nil, err
	}

	if err := impl.Load(ctx); err != nil {
		return nil, err
	}

	validate := opts.Validator
	if validate == nil {
		validate = NewValidator()
	}

	return &manager{impl: impl, validate: validate}, nil
}

func (m *manager) Snapshot() map[string]string {
	return m.impl.Snapshot()
}

func (m *manager) Value(key string) (string, bool) {
	return m.impl.Value(key)
}

func (m *manager) Bind(target any) error {
	if err := m.impl.Bind(target); err != nil {
		return err
	}
	return ValidateStruct(m.validate, target)
}

// EnvOptions configures environment variable source behavior.
type EnvOptions struct {
	Prefix  string          // Only variables carrying this prefix are read; it is stripped
	Environ func() []string // Environment provider (default: os.Environ)
}

// FileOptions configures file source behavior.
type FileOptions struct {
	Format   string // "yaml" or "json" (default: detected from extension)
	Optional bool   // Missing file yields no values instead of an error
}

// DotenvOptions configures dotenv source behavior.
type DotenvOptions struct {
	Prefix   string // Stripped from keys that carry it
	Optional bool   // Missing file yields no values instead of an error
}

// NewEnvSource creates an environment variable configuration source.
func NewEnvSource(opts EnvOptions) Source {
	return internal.NewEnvSource(internal.EnvOptions{
		Prefix:  opts.Prefix,
		Environ: opts.Environ,
	})
}

// NewFileSource creates a YAML or JSON file configuration source.
// Nested keys are flattened: log.level becomes LOG_LEVEL.
func NewFileSource(path string, opts FileOptions) Source {
	return internal.NewFileSource(path, internal.FileOptions{
		Format:   opts.Format,
		Optional: opts.Optional,
	})
}

// NewDotenvSource creates a .env file configuration source.
func NewDotenvSource(path string, opts DotenvOptions) Source {
	return internal.NewDotenvSource(path, internal.DotenvOptions{
		Prefix:   opts.Prefix,
		Optional: opts.Optional,
	})
}

// NewMapSource creates a source serving fixed values, typically flag overrides.
func NewMapSource(values map[string]string) Source {
	return internal.NewMapSource(values)
}
