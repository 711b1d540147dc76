// Package testingx provides testing utilities for jscaffold packages.
//
// Overview:
//   - Responsibility: Testing helpers, mocks, and file fixtures
//   - Key Types: MockLogger, error and file assertions
//   - Concurrency Model: Thread-safe where needed
//   - Error Semantics: Test failures via testing.T
//   - Performance Notes: Optimized for test execution
//
// Usage:
//
//	logger := testingx.NewMockLogger(t)
//	testingx.WriteFiles(t, root, map[string]string{"lib/jrt-fs.jar": ""})
package testingx

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"go.eggybyte.com/jscaffold/core/errors"
	"go.eggybyte.com/jscaffold/core/log"
)

// MockLogger is a mock logger for testing.
type MockLogger struct {
	t      *testing.T
	fields []any
	store  *entryStore
}

type entryStore struct {
	mu      sync.Mutex
	entries []LogEntry
}

// LogEntry represents a single log entry.
type LogEntry struct {
	Level   string
	Message string
	Fields  []any
	Error   error
}

// NewMockLogger creates a new mock logger.
func NewMockLogger(t *testing.T) *MockLogger {
	return &MockLogger{
		t:     t,
		store: &entryStore{entries: make([]LogEntry, 0)},
	}
}

// With returns a logger sharing the same entries with the given fields prepended.
func (m *MockLogger) With(kv ...any) log.Logger {
	fields := append(append([]any{}, m.fields...), kv...)
	return &MockLogger{t: m.t, fields: fields, store: m.store}
}

// Debug logs a debug message.
func (m *MockLogger) Debug(msg string, kv ...any) {
	m.log("DEBUG", msg, nil, kv)
}

// Info logs an info message.
func (m *MockLogger) Info(msg string, kv ...any) {
	m.log("INFO", msg, nil, kv)
}

// Warn logs a warning message.
func (m *MockLogger) Warn(msg string, kv ...any) {
	m.log("WARN", msg, nil, kv)
}

// Error logs an error message.
func (m *MockLogger) Error(err error, msg string, kv ...any) {
	m.log("ERROR", msg, err, kv)
}

func (m *MockLogger) log(level, msg string, err error, kv []any) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	m.store.entries = append(m.store.entries, LogEntry{
		Level:   level,
		Message: msg,
		Fields:  append(append([]any{}, m.fields...), kv...),
		Error:   err,
	})
}

// Entries returns all log entries.
func (m *MockLogger) Entries() []LogEntry {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	entries := make([]LogEntry, len(m.store.entries))
	copy(entries, m.store.entries)
	return entries
}

// Logged reports whether a message was logged at level.
func (m *MockLogger) Logged(level, msg string) bool {
	for _, entry := range m.Entries() {
		if entry.Level == level && entry.Message == msg {
			return true
		}
	}
	return false
}

// AssertLogged asserts that a message was logged.
func (m *MockLogger) AssertLogged(level, msg string) {
	m.t.Helper()
	if !m.Logged(level, msg) {
		m.t.Errorf("Expected log message not found: level=%s msg=%q", level, msg)
	}
}

// HasField reports whether a message was logged at level with key set to
// want. Only pairs built with the core/log helpers (log.Str, log.Int, log.Dur)
// are considered; bare "key", value arguments never match.
func (m *MockLogger) HasField(level, msg, key string, want any) bool {
	for _, entry := range m.Entries() {
		if entry.Level != level || entry.Message != msg {
			continue
		}
		for _, field := range entry.Fields {
			pair, ok := field.([]any)
			if ok && len(pair) == 2 && pair[0] == key && fmt.Sprint(pair[1]) == fmt.Sprint(want) {
				return true
			}
		}
	}
	return false
}

// AssertField asserts HasField.
func (m *MockLogger) AssertField(level, msg, key string, want any) {
	m.t.Helper()
	if !m.HasField(level, msg, key, want) {
		m.t.Errorf("Expected field %s=%v on level=%s msg=%q", key, want, level, msg)
	}
}

// AssertNotLogged asserts that a message was not logged.
func (m *MockLogger) AssertNotLogged(level, msg string) {
	m.t.Helper()
	if m.Logged(level, msg) {
		m.t.Errorf("Unexpected log message: level=%s msg=%q", level, msg)
	}
}

// Clear clears all log entries.
func (m *MockLogger) Clear() {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	m.store.entries = nil
}

// AssertError asserts that an error has the expected code.
func AssertError(t *testing.T, err error, expectedCode errors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected error with code %s, got nil", expectedCode)
	}

	code := errors.CodeOf(err)
	if code != expectedCode {
		t.Errorf("Expected error code %s, got %s (%v)", expectedCode, code, err)
	}
}

// AssertNoError asserts that no error occurred.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
}

// WriteFiles creates files below root; keys are slash-separated relative paths.
func WriteFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", rel, err)
		}
	}
}

// AssertFileContent asserts that path exists and holds exactly want.
func AssertFileContent(t *testing.T, path, want string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	if string(data) != want {
		t.Errorf("Content of %s = %q, want %q", path, string(data), want)
	}
}

// AssertExists asserts that path exists and is a directory when dir is true.
func AssertExists(t *testing.T, path string, dir bool) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Expected %s to exist: %v", path, err)
	}
	if info.IsDir() != dir {
		t.Errorf("%s: IsDir() = %v, want %v", path, info.IsDir(), dir)
	}
}

// AssertNotExists asserts that nothing exists at path.
func AssertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Expected %s to be absent, stat error: %v", path, err)
	}
}
