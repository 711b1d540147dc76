package ui

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	t.Cleanup(func() {
		SetOutput(nil, nil)
		SetJSONOutput(false)
		SetVerbose(false)
		SetNonInteractive(false)
	})
	return &out, &errOut
}

func TestLevels(t *testing.T) {
	out, errOut := capture(t)

	Info("Workspace: %s", "/tmp/ws")
	Success("Project %s created", "Demo")
	Warning("formatter missing")
	Error("Failed: %v", "boom")
	Debug("hidden")

	if !strings.Contains(out.String(), "INFO: Workspace: /tmp/ws") {
		t.Errorf("stdout missing info line: %q", out.String())
	}
	if !strings.Contains(out.String(), "SUCCESS: Project Demo created") {
		t.Errorf("stdout missing success line: %q", out.String())
	}
	if strings.Contains(out.String(), "hidden") {
		t.Error("debug output should be hidden unless verbose")
	}
	if !strings.Contains(errOut.String(), "ERROR: Failed: boom") {
		t.Errorf("stderr missing error line: %q", errOut.String())
	}
}

func TestVerbose(t *testing.T) {
	out, _ := capture(t)
	SetVerbose(true)

	Debug("shown")
	if !strings.Contains(out.String(), "DEBUG: shown") {
		t.Errorf("expected debug output, got %q", out.String())
	}
}

func TestResult(t *testing.T) {
	out, _ := capture(t)

	Result("0.0", nil)
	if out.String() != "0.0\n" {
		t.Errorf("Result output = %q, want %q", out.String(), "0.0\n")
	}
}

func TestJSONOutput(t *testing.T) {
	out, _ := capture(t)
	SetJSONOutput(true)

	Result("false", map[string]string{"type": "boolean", "literal": "false"})

	var msg Message
	if err := json.Unmarshal(out.Bytes(), &msg); err != nil {
		t.Fatalf("invalid JSON output: %v (%q)", err, out.String())
	}
	if msg.Level != LevelResult || msg.Text != "false" {
		t.Errorf("unexpected message: %+v", msg)
	}
}

func TestConfirm(t *testing.T) {
	capture(t)

	SetInput(strings.NewReader("y\n"))
	if !Confirm("Delete %s?", "Demo") {
		t.Error("expected confirmation for 'y'")
	}

	SetInput(strings.NewReader("\n"))
	if Confirm("Delete %s?", "Demo") {
		t.Error("expected refusal for empty answer")
	}

	SetInput(strings.NewReader(""))
	SetNonInteractive(true)
	if !Confirm("Delete %s?", "Demo") {
		t.Error("non-interactive mode should auto-confirm")
	}
}

func TestStep(t *testing.T) {
	out, _ := capture(t)

	Step(2, 5, "Creating %s folder", "bin")
	if !strings.Contains(out.String(), "[2/5] Creating bin folder") {
		t.Errorf("unexpected step output %q", out.String())
	}
}
