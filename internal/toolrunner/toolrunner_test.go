package toolrunner

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParseJavaProperties(t *testing.T) {
	output := `Property settings:
    file.separator = /
    java.home = /usr/lib/jvm/java-17-openjdk
    java.library.path = /usr/java/packages/lib
        /usr/lib64
        /lib64
    java.specification.version = 17
    java.vm.name = OpenJDK 64-Bit Server VM

openjdk version "17.0.8" 2023-07-18
`
	props := ParseJavaProperties(output)

	tests := map[string]string{
		"java.home":                  "/usr/lib/jvm/java-17-openjdk",
		"java.library.path":          "/usr/java/packages/lib",
		"java.specification.version": "17",
		"java.vm.name":               "OpenJDK 64-Bit Server VM",
	}
	for key, want := range tests {
		if got := props[key]; got != want {
			t.Errorf("props[%q] = %q, want %q", key, got, want)
		}
	}
	if _, ok := props["/usr/lib64"]; ok {
		t.Error("continuation lines should not become keys")
	}
}

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		name     string
		command  string
		wantName string
		wantArgs []string
		wantErr  bool
	}{
		{"single", "google-java-format", "google-java-format", nil, false},
		{"with flag", "google-java-format --replace", "google-java-format", []string{"--replace"}, false},
		{"extra spaces", "  java   -jar  fmt.jar ", "java", []string{"-jar", "fmt.jar"}, false},
		{"quoted", `"/opt/my tools/fmt" --replace`, "/opt/my tools/fmt", []string{"--replace"}, false},
		{"empty", "   ", "", nil, true},
		{"unterminated", `"fmt --replace`, "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, args, err := SplitCommand(tt.command)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SplitCommand(%q) error = %v, wantErr %v", tt.command, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
			if len(args) != len(tt.wantArgs) || (len(args) > 0 && !reflect.DeepEqual(args, tt.wantArgs)) {
				t.Errorf("args = %q, want %q", args, tt.wantArgs)
			}
		})
	}
}

func TestRunner_Exec(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	runner := NewRunner(t.TempDir())
	runner.SetEnv([]string{"JSCAFFOLD_TEST=hello"})

	result, err := runner.Exec(context.Background(), "sh", "-c", "echo $JSCAFFOLD_TEST; echo oops >&2")
	if err != nil {
		t.Fatalf("Exec() error = %v", err)
	}
	if strings.TrimSpace(result.Stdout) != "hello" {
		t.Errorf("Stdout = %q, want %q", result.Stdout, "hello")
	}
	if strings.TrimSpace(result.Stderr) != "oops" {
		t.Errorf("Stderr = %q, want %q", result.Stderr, "oops")
	}
	if result.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", result.ExitCode)
	}
}

func TestRunner_ExecFailure(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	runner := NewRunner(t.TempDir())
	result, err := runner.Exec(context.Background(), "sh", "-c", "echo bad input >&2; exit 3")
	if err == nil {
		t.Fatal("Exec() should fail on non-zero exit")
	}
	if result.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", result.ExitCode)
	}
	if !strings.Contains(err.Error(), "bad input") {
		t.Errorf("error should carry stderr, got %v", err)
	}
}

func TestRunner_ExecMissingBinary(t *testing.T) {
	runner := NewRunner(t.TempDir())
	result, err := runner.Exec(context.Background(), "jscaffold-no-such-tool")
	if err == nil {
		t.Fatal("Exec() should fail for a missing binary")
	}
	if result == nil || result.ExitCode != -1 {
		t.Errorf("result = %+v, want ExitCode -1", result)
	}
}

func TestRunner_JavaProperties(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	launcher := filepath.Join(t.TempDir(), "java")
	script := "#!/bin/sh\n" +
		"[ \"$1\" = \"-XshowSettings:properties\" ] || exit 2\n" +
		"printf 'Property settings:\\n    java.home = /opt/jdk\\n    java.version = 21\\n' >&2\n"
	if err := os.WriteFile(launcher, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}

	props, err := NewRunner("").JavaProperties(context.Background(), launcher)
	if err != nil {
		t.Fatalf("JavaProperties() error = %v", err)
	}
	if props["java.home"] != "/opt/jdk" || props["java.version"] != "21" {
		t.Errorf("props = %v", props)
	}

	if _, err := NewRunner("").JavaProperties(context.Background(), filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("JavaProperties() should fail for a missing launcher")
	}
}

func TestCheckRequiredTools(t *testing.T) {
	err := CheckRequiredTools("jscaffold-no-such-tool", "jscaffold-other-tool")
	if err == nil || !strings.Contains(err.Error(), "jscaffold-no-such-tool, jscaffold-other-tool") {
		t.Errorf("CheckRequiredTools() = %v, want both missing tools", err)
	}

	if _, err := exec.LookPath("sh"); err == nil {
		if err := CheckRequiredTools("sh"); err != nil {
			t.Errorf("CheckRequiredTools(sh) = %v", err)
		}
	}
}
