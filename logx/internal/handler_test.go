// Package internal provides tests for logx internal implementation.
package internal

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestNewHandler(t *testing.T) {
	buf := &bytes.Buffer{}

	handler := NewHandler(Options{Level: slog.LevelInfo}, buf)
	if handler == nil {
		t.Fatal("NewHandler should return non-nil handler")
	}
	if handler.writer != buf {
		t.Error("Handler writer should be set")
	}
	if handler.opts.Format != FormatLogfmt {
		t.Errorf("Format = %q, want %q", handler.opts.Format, FormatLogfmt)
	}
}

func TestHandler_LevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := NewHandler(Options{Level: slog.LevelWarn, DisableTimestamp: true}, buf)

	handler.LogRecord(slog.LevelDebug, "debug message", nil)
	handler.LogRecord(slog.LevelInfo, "info message", nil)
	handler.LogRecord(slog.LevelWarn, "warn message", nil)
	handler.LogRecord(slog.LevelError, "error message", nil)

	output := buf.String()
	if strings.Contains(output, "debug message") || strings.Contains(output, "info message") {
		t.Errorf("Messages below warn should be filtered out, got: %q", output)
	}
	if !strings.Contains(output, "warn message") || !strings.Contains(output, "error message") {
		t.Errorf("Warn and error messages should be included, got: %q", output)
	}
}

func TestFormatLogfmt(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := NewHandler(Options{Level: slog.LevelInfo, DisableTimestamp: true}, buf)

	handler.LogRecord(slog.LevelInfo, "test message", []slog.Attr{
		slog.String("key1", "value1"),
		slog.Int("key2", 42),
		slog.Bool("key3", true),
	})

	output := buf.String()
	for _, want := range []string{"level=INFO", `msg="test message"`, `key1="value1"`, "key2=42", "key3=true"} {
		if !strings.Contains(output, want) {
			t.Errorf("Output should contain %q, got: %q", want, output)
		}
	}
}

func TestFormatConsole(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := NewHandler(Options{Format: FormatConsole, Level: slog.LevelInfo, DisableTimestamp: true}, buf)

	handler.LogRecord(slog.LevelInfo, "test message", []slog.Attr{
		slog.String("key1", "value1"),
		slog.Int("key2", 42),
	})

	output := buf.String()
	if !strings.HasPrefix(output, "INFO ") {
		t.Errorf("Output should start with INFO, got: %q", output)
	}
	if !strings.Contains(output, "key1: value1") {
		t.Errorf("Output should contain key1: value1, got: %q", output)
	}
}

func TestFormatJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := NewHandler(Options{Format: FormatJSON, Level: slog.LevelInfo, DisableTimestamp: true}, buf)

	handler.LogRecord(slog.LevelError, "create failed", []slog.Attr{
		slog.Any("error", errors.New("disk full")),
		slog.Int("entries", 2),
	})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Output should be valid JSON: %v (%q)", err, buf.String())
	}
	if entry["level"] != "ERROR" || entry["msg"] != "create failed" {
		t.Errorf("Unexpected entry: %v", entry)
	}
	if entry["error"] != "disk full" {
		t.Errorf("error = %v, want %q", entry["error"], "disk full")
	}
	if entry["entries"] != float64(2) {
		t.Errorf("entries = %v, want 2", entry["entries"])
	}
	if _, ok := entry["time"]; ok {
		t.Error("time should be omitted when DisableTimestamp is set")
	}
}

func TestFormatLogfmt_WithTimestamp(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := NewHandler(Options{Level: slog.LevelInfo}, buf)

	handler.LogRecord(slog.LevelInfo, "test message", nil)

	if !strings.HasPrefix(buf.String(), "time=") {
		t.Error("Output should contain timestamp when DisableTimestamp is false")
	}
}

func TestFormatLogfmt_WithColor(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := NewHandler(Options{Level: slog.LevelInfo, DisableTimestamp: true, Color: true}, buf)

	handler.LogRecord(slog.LevelInfo, "test message", nil)

	if !strings.Contains(buf.String(), "\033[") {
		t.Error("Output should contain ANSI color codes when Color is enabled")
	}
}

func TestSortAttrs(t *testing.T) {
	sorted := SortAttrs([]slog.Attr{
		slog.String("zebra", "value"),
		slog.String("apple", "value"),
		slog.String("banana", "value"),
	})

	want := []string{"apple", "banana", "zebra"}
	for i, key := range want {
		if sorted[i].Key != key {
			t.Errorf("sorted[%d].Key = %q, want %q", i, sorted[i].Key, key)
		}
	}
}

func TestKVToAttrs(t *testing.T) {
	tests := []struct {
		name string
		kv   []any
		want int
	}{
		{"simple pairs", []any{"key1", "value1", "key2", "value2"}, 2},
		{"nested slice pairs", []any{[]any{"key1", "value1"}}, 1},
		{"mixed pairs", []any{"key1", "value1", []any{"key2", "value2"}}, 2},
		{"slog attr", []any{slog.String("key1", "value1")}, 1},
		{"odd length", []any{"key1", "value1", "key2"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := KVToAttrs(tt.kv)
			if len(attrs) != tt.want {
				t.Errorf("KVToAttrs() len = %d, want %d", len(attrs), tt.want)
			}
		})
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name  string
		value slog.Value
		want  string
	}{
		{"string", slog.StringValue("test string"), `"test string"`},
		{"int", slog.Int64Value(42), "42"},
		{"uint", slog.Uint64Value(100), "100"},
		{"integer float", slog.Float64Value(42.0), "42"},
		{"decimal float", slog.Float64Value(3.14), "3.14"},
		{"bool", slog.BoolValue(false), "false"},
		{"duration", slog.DurationValue(1500 * time.Millisecond), "1500"},
		{"error", slog.AnyValue(errors.New("boom")), `"boom"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatValue(tt.value); got != tt.want {
				t.Errorf("FormatValue() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLevelString(t *testing.T) {
	if got := LevelString(slog.Level(2)); got != "LEVEL(2)" {
		t.Errorf("LevelString(2) = %q, want %q", got, "LEVEL(2)")
	}
	if got := ColorizeLevel("OTHER"); got != "OTHER" {
		t.Errorf("ColorizeLevel(OTHER) = %q, want unchanged", got)
	}
}
