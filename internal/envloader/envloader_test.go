package envloader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `# JDK release file
IMPLEMENTOR="Eclipse Adoptium"
JAVA_VERSION="17.0.8"
export JSCAFFOLD_LOG_LEVEL=debug
JSCAFFOLD_FORMATTER='google-java-format --replace'

EMPTY=
`
	env, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	tests := map[string]string{
		"IMPLEMENTOR":         "Eclipse Adoptium",
		"JAVA_VERSION":        "17.0.8",
		"JSCAFFOLD_LOG_LEVEL": "debug",
		"JSCAFFOLD_FORMATTER": "google-java-format --replace",
		"EMPTY":               "",
	}
	for key, want := range tests {
		got, ok := env[key]
		if !ok {
			t.Errorf("missing key %q", key)
			continue
		}
		if got != want {
			t.Errorf("env[%q] = %q, want %q", key, got, want)
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, input := range []string{"NOT_A_PAIR", "=value"} {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("Parse(%q) should fail", input)
		}
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "release")
	if err := os.WriteFile(path, []byte("JAVA_VERSION=\"21\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	env, err := LoadEnvFile(path)
	if err != nil {
		t.Fatalf("LoadEnvFile() error = %v", err)
	}
	if env["JAVA_VERSION"] != "21" {
		t.Errorf("JAVA_VERSION = %q, want 21", env["JAVA_VERSION"])
	}

	if _, err := LoadEnvFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("LoadEnvFile() should fail for a missing file")
	}
}
