// Package internal provides tests for configx struct binding.
package internal

import (
	"testing"
	"time"
)

type logSettings struct {
	Level  string `env:"LOG_LEVEL" default:"info"`
	Format string `env:"LOG_FORMAT" default:"console"`
}

type bindTarget struct {
	Workspace string        `env:"WORKSPACE" default:"."`
	Verbose   bool          `env:"VERBOSE"`
	Timeout   time.Duration `env:"TIMEOUT" default:"30s"`
	Retries   int           `env:"RETRIES" default:"2"`
	Port      uint16        `env:"PORT"`
	Ratio     float64       `env:"RATIO"`
	Log       logSettings
	Ignored   string
}

func TestBindToStruct(t *testing.T) {
	snapshot := map[string]string{
		"WORKSPACE": "/ws",
		"VERBOSE":   "true",
		"TIMEOUT":   "5s",
		"PORT":      "9091",
		"RATIO":     "0.5",
		"LOG_LEVEL": "debug",
	}

	var cfg bindTarget
	if err := BindToStruct(snapshot, &cfg); err != nil {
		t.Fatalf("BindToStruct() error = %v", err)
	}

	if cfg.Workspace != "/ws" || !cfg.Verbose || cfg.Timeout != 5*time.Second {
		t.Errorf("unexpected top-level fields: %+v", cfg)
	}
	if cfg.Retries != 2 {
		t.Errorf("Retries = %d, want default 2", cfg.Retries)
	}
	if cfg.Port != 9091 || cfg.Ratio != 0.5 {
		t.Errorf("Port = %d, Ratio = %v", cfg.Port, cfg.Ratio)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "console" {
		t.Errorf("Log = %+v, want debug/console", cfg.Log)
	}
}

func TestBindToStruct_Errors(t *testing.T) {
	var cfg bindTarget
	if err := BindToStruct(nil, cfg); err == nil {
		t.Error("non-pointer target should fail")
	}

	tests := map[string]string{
		"VERBOSE": "maybe",
		"TIMEOUT": "soon",
		"RETRIES": "x",
		"PORT":    "70000",
		"RATIO":   "half",
	}
	for key, value := range tests {
		if err := BindToStruct(map[string]string{key: value}, &bindTarget{}); err == nil {
			t.Errorf("%s=%q should fail to bind", key, value)
		}
	}

	var unsupported struct {
		Limits map[string]string `env:"LIMITS"`
	}
	if err := BindToStruct(map[string]string{"LIMITS": "a=b"}, &unsupported); err == nil {
		t.Error("map field should be unsupported")
	}

	var nilTarget *bindTarget
	if err := BindToStruct(nil, nilTarget); err == nil {
		t.Error("nil pointer target should fail")
	}
}

func TestBindToStruct_StringSlice(t *testing.T) {
	var cfg struct {
		Args []string `env:"FORMATTER_ARGS" default:"--replace"`
	}
	if err := BindToStruct(map[string]string{"FORMATTER_ARGS": "--aosp, --replace,,"}, &cfg); err != nil {
		t.Fatalf("BindToStruct() error = %v", err)
	}
	if len(cfg.Args) != 2 || cfg.Args[0] != "--aosp" || cfg.Args[1] != "--replace" {
		t.Errorf("Args = %q, want [--aosp --replace]", cfg.Args)
	}

	cfg.Args = nil
	if err := BindToStruct(map[string]string{}, &cfg); err != nil {
		t.Fatalf("BindToStruct() error = %v", err)
	}
	if len(cfg.Args) != 1 || cfg.Args[0] != "--replace" {
		t.Errorf("Args = %q, want default [--replace]", cfg.Args)
	}
}
