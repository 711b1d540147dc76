// Package internal provides internal implementation details for configx.
//
// Overview:
//   - Responsibility: Implement configuration sources (Env, File, Dotenv, Map)
//   - Key Types: EnvSource, FileSource, DotenvSource, MapSource
//   - Concurrency Model: All sources are safe for concurrent use
//   - Error Semantics: Sources return errors for unreadable or malformed input
//   - Performance Notes: Sources read on every Load, nothing is cached
package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"go.eggybyte.com/jscaffold/internal/envloader"
)

// NormalizeKey upper-cases a key and maps "." and "-" to "_".
func NormalizeKey(key string) string {
	key = strings.NewReplacer(".", "_", "-", "_").Replace(strings.TrimSpace(key))
	return strings.ToUpper(key)
}

// EnvOptions configures environment variable source behavior.
type EnvOptions struct {
	Prefix  string          // Only variables with this prefix are read; the prefix is stripped
	Environ func() []string // Environment provider (default os.Environ)
}

// EnvSource loads configuration from environment variables.
type EnvSource struct {
	prefix  string
	environ func() []string
}

// NewEnvSource creates a new environment variable source.
func NewEnvSource(opts EnvOptions) Source {
	environ := opts.Environ
	if environ == nil {
		environ = os.Environ
	}
	return &EnvSource{prefix: opts.Prefix, environ: environ}
}

// Load reads configuration from environment variables.
func (s *EnvSource) Load(ctx context.Context) (map[string]string, error) {
	config := make(map[string]string)

	for _, env := range s.environ() {
		key, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}

		if s.prefix != "" {
			stripped, found := strings.CutPrefix(key, s.prefix)
			if !found || stripped == "" {
				continue
			}
			key = stripped
		}

		config[NormalizeKey(key)] = value
	}

	return config, nil
}

// FileOptions configures file source behavior.
type FileOptions struct {
	Format   string // "json" or "yaml" (default: detected from extension)
	Optional bool   // A missing file yields an empty snapshot instead of an error
}

// FileSource loads configuration from a YAML or JSON file. Nested keys are
// flattened with "_" so that {log: {level: debug}} becomes LOG_LEVEL.
type FileSource struct {
	path     string
	format   string
	optional bool
}

// NewFileSource creates a new file source.
func NewFileSource(path string, opts FileOptions) Source {
	format := opts.Format
	if format == "" {
		format = detectFileFormat(path)
	}
	return &FileSource{path: path, format: format, optional: opts.Optional}
}

// Load reads configuration from the file.
func (s *FileSource) Load(ctx context.Context) (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) && s.optional {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("failed to read file %s: %w", s.path, err)
	}

	config, err := parseConfigFile(data, s.format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	return config, nil
}

// detectFileFormat detects file format from extension.
func detectFileFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	default:
		return "yaml"
	}
}

// parseConfigFile parses configuration file content.
func parseConfigFile(data []byte, format string) (map[string]string, error) {
	var raw map[string]any
	switch format {
	case "json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	config := make(map[string]string)
	flatten("", raw, config)
	return config, nil
}

func flatten(prefix string, value any, out map[string]string) {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			flatten(joinKey(prefix, k), v[k], out)
		}
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, fmt.Sprint(item))
		}
		out[prefix] = strings.Join(parts, ",")
	case nil:
		out[prefix] = ""
	default:
		out[prefix] = fmt.Sprint(v)
	}
}

func joinKey(prefix, key string) string {
	key = NormalizeKey(key)
	if prefix == "" {
		return key
	}
	return prefix + "_" + key
}

// DotenvOptions configures dotenv source behavior.
type DotenvOptions struct {
	Prefix   string // Stripped from keys that carry it
	Optional bool   // A missing file yields an empty snapshot instead of an error
}

// DotenvSource loads KEY=value pairs from a .env file.
type DotenvSource struct {
	path     string
	prefix   string
	optional bool
}

// NewDotenvSource creates a new dotenv source.
func NewDotenvSource(path string, opts DotenvOptions) Source {
	return &DotenvSource{path: path, prefix: opts.Prefix, optional: opts.Optional}
}

// Load reads configuration from the dotenv file.
func (s *DotenvSource) Load(ctx context.Context) (map[string]string, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) && s.optional {
		return make(map[string]string), nil
	}

	env, err := envloader.LoadEnvFile(s.path)
	if err != nil {
		return nil, err
	}

	config := make(map[string]string, len(env))
	for key, value := range env {
		if s.prefix != "" {
			key = strings.TrimPrefix(key, s.prefix)
		}
		config[NormalizeKey(key)] = value
	}
	return config, nil
}

// MapSource serves a fixed set of values, such as command-line overrides.
type MapSource struct {
	values map[string]string
}

// NewMapSource creates a source returning a copy of values on every load.
func NewMapSource(values map[string]string) Source {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[NormalizeKey(k)] = v
	}
	return &MapSource{values: copied}
}

// Load returns the fixed values.
func (s *MapSource) Load(ctx context.Context) (map[string]string, error) {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out, nil
}
