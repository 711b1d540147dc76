package log

import (
	"errors"
	"testing"
	"time"
)

func TestStr(t *testing.T) {
	kv := Str("project", "Demo")

	slice, ok := kv.([]any)
	if !ok {
		t.Fatal("Str should return []any")
	}
	if len(slice) != 2 || slice[0] != "project" || slice[1] != "Demo" {
		t.Fatalf("Str should return [\"project\", \"Demo\"], got %v", slice)
	}
}

func TestInt(t *testing.T) {
	kv := Int("entries", 3)

	slice, ok := kv.([]any)
	if !ok {
		t.Fatal("Int should return []any")
	}
	if len(slice) != 2 || slice[0] != "entries" || slice[1] != 3 {
		t.Fatalf("Int should return [\"entries\", 3], got %v", slice)
	}
}

func TestDur(t *testing.T) {
	duration := 5 * time.Second
	kv := Dur("elapsed", duration)

	slice, ok := kv.([]any)
	if !ok {
		t.Fatal("Dur should return []any")
	}
	if len(slice) != 2 || slice[0] != "elapsed" || slice[1] != duration {
		t.Fatalf("Dur should return [\"elapsed\", %v], got %v", duration, slice)
	}
}

func TestNop(t *testing.T) {
	logger := Nop()
	if logger.With("k", "v") == nil {
		t.Fatal("With should return a logger")
	}

	// Must not panic.
	logger.Debug("debug")
	logger.Info("info", Str("k", "v"))
	logger.Warn("warn")
	logger.Error(errors.New("boom"), "error")
}
