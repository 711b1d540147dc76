// Package testingx provides tests for testing utilities.
package testingx

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	coreerrors "go.eggybyte.com/jscaffold/core/errors"
	"go.eggybyte.com/jscaffold/core/log"
)

func TestNewMockLogger(t *testing.T) {
	logger := NewMockLogger(t)
	if logger == nil {
		t.Fatal("NewMockLogger should return non-nil logger")
	}
	if len(logger.Entries()) != 0 {
		t.Error("MockLogger should start with empty entries")
	}
}

func TestMockLogger_Levels(t *testing.T) {
	logger := NewMockLogger(t)
	logger.Debug("debug message", "key", "value")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error(errors.New("boom"), "error message")

	entries := logger.Entries()
	if len(entries) != 4 {
		t.Fatalf("Expected 4 entries, got %d", len(entries))
	}

	want := []string{"DEBUG", "INFO", "WARN", "ERROR"}
	for i, level := range want {
		if entries[i].Level != level {
			t.Errorf("entries[%d].Level = %s, want %s", i, entries[i].Level, level)
		}
	}
	if len(entries[0].Fields) != 2 {
		t.Errorf("Expected 2 fields, got %d", len(entries[0].Fields))
	}
	if entries[3].Error == nil {
		t.Error("Error entry should carry the error")
	}
}

func TestMockLogger_WithSharesEntries(t *testing.T) {
	logger := NewMockLogger(t)
	child := logger.With("project", "Demo")
	child.Info("No files found.")

	logger.AssertLogged("INFO", "No files found.")
	entries := logger.Entries()
	if len(entries[0].Fields) != 2 || entries[0].Fields[1] != "Demo" {
		t.Errorf("Expected child fields to be recorded, got %v", entries[0].Fields)
	}
}

func TestMockLogger_AssertNotLogged(t *testing.T) {
	logger := NewMockLogger(t)
	logger.Info("something else")
	logger.AssertNotLogged("INFO", "No files found.")
}

func TestMockLogger_Clear(t *testing.T) {
	logger := NewMockLogger(t)
	logger.Info("message 1")
	logger.Clear()

	if len(logger.Entries()) != 0 {
		t.Errorf("Expected 0 entries after clear, got %d", len(logger.Entries()))
	}
}

func TestMockLogger_Concurrent(t *testing.T) {
	logger := NewMockLogger(t)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Info("concurrent")
		}()
	}
	wg.Wait()

	if len(logger.Entries()) != 10 {
		t.Errorf("Expected 10 entries, got %d", len(logger.Entries()))
	}
}

func TestAssertError(t *testing.T) {
	AssertError(t, coreerrors.New(coreerrors.CodeNotFound, "missing"), coreerrors.CodeNotFound)
}

func TestAssertNoError(t *testing.T) {
	AssertNoError(t, nil)
}

func TestWriteFilesAndAssertions(t *testing.T) {
	root := t.TempDir()
	WriteFiles(t, root, map[string]string{
		"lib/jrt-fs.jar": "",
		"release":        `JAVA_VERSION="17"`,
	})

	AssertExists(t, filepath.Join(root, "lib"), true)
	AssertExists(t, filepath.Join(root, "lib", "jrt-fs.jar"), false)
	AssertFileContent(t, filepath.Join(root, "release"), `JAVA_VERSION="17"`)
	AssertNotExists(t, filepath.Join(root, "bin"))
}

func TestMockLogger_Fields(t *testing.T) {
	logger := NewMockLogger(t)
	logger.With(log.Str("run_id", "r1")).Info("Deleting existing project.", log.Str("project", "Demo"), log.Int("files", 2))
	logger.Info("raw pairs", "project", "Demo")

	logger.AssertField("INFO", "Deleting existing project.", "project", "Demo")
	logger.AssertField("INFO", "Deleting existing project.", "files", 2)
	logger.AssertField("INFO", "Deleting existing project.", "run_id", "r1")

	if logger.HasField("INFO", "Deleting existing project.", "project", "Other") {
		t.Error("HasField should compare values")
	}
	if logger.HasField("WARN", "Deleting existing project.", "project", "Demo") {
		t.Error("HasField should compare levels")
	}
	if logger.HasField("INFO", "raw pairs", "project", "Demo") {
		t.Error("bare key-value arguments should not count as fields")
	}
}
