// Package toolrunner provides execution of external tools and commands.
//
// Overview:
//   - Responsibility: Execute java and source formatter commands
//   - Key Types: Runner, CommandResult, Executor interface
//   - Concurrency Model: Sequential command execution with context support
//   - Error Semantics: Non-zero exits are errors carrying captured stderr
//   - Performance Notes: Output captured in memory, cancellation via context
//
// Usage:
//
//	runner := NewRunner("")
//	props, err := runner.JavaProperties(ctx, "java")
//	_, err = runner.Exec(ctx, "google-java-format", "--replace", "Foo.java")
package toolrunner

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.eggybyte.com/jscaffold/internal/ui"
)

// Executor runs a single external command. Runner implements it; tests
// substitute fakes.
type Executor interface {
	Exec(ctx context.Context, name string, args ...string) (*CommandResult, error)
}

// Runner provides execution of external tools.
//
// Parameters:
//   - workDir: Working directory for commands
//   - verbose: Whether to show command lines
//   - env: Extra environment entries (KEY=value) appended to os.Environ
//
// Concurrency:
//   - Safe for concurrent use once configured
type Runner struct {
	workDir string
	verbose bool
	env     []string
}

// CommandResult represents the result of a command execution.
//
// Parameters:
//   - ExitCode: Process exit code (-1 when the process never started)
//   - Stdout: Standard output content
//   - Stderr: Standard error content
//   - Duration: Command execution time
//
// Concurrency:
//   - Immutable after creation
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// NewRunner creates a new tool runner.
//
// Parameters:
//   - workDir: Working directory for commands
//
// Returns:
//   - *Runner: Tool runner instance
func NewRunner(workDir string) *Runner {
	return &Runner{
		workDir: workDir,
		verbose: false,
	}
}

// SetVerbose enables or disables printing of command lines.
func (r *Runner) SetVerbose(enabled bool) {
	r.verbose = enabled
}

// SetEnv sets extra environment entries for every command.
func (r *Runner) SetEnv(env []string) {
	r.env = env
}

// execute runs a command and returns the result.
//
// Parameters:
//   - ctx: Context for cancellation
//   - name: Command name
//   - args: Command arguments
//
// Returns:
//   - *CommandResult: Command execution result (never nil)
//   - error: Execution error if any
func (r *Runner) execute(ctx context.Context, name string, args ...string) (*CommandResult, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.workDir
	if len(r.env) > 0 {
		cmd.Env = append(os.Environ(), r.env...)
	}

	if r.verbose {
		ui.Debug("Running: %s %s", name, strings.Join(args, " "))
	}

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := &CommandResult{
		ExitCode: -1,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	if err != nil {
		if result.ExitCode > 0 {
			return result, fmt.Errorf("%s exited with code %d: %s", name, result.ExitCode, strings.TrimSpace(result.Stderr))
		}
		return result, fmt.Errorf("command %s failed: %w", name, err)
	}

	return result, nil
}

// Exec runs an arbitrary command.
//
// Parameters:
//   - ctx: Context for cancellation
//   - name: Command name or path
//   - args: Command arguments
//
// Returns:
//   - *CommandResult: Command execution result
//   - error: Execution error if any
func (r *Runner) Exec(ctx context.Context, name string, args ...string) (*CommandResult, error) {
	return r.execute(ctx, name, args...)
}

// Java runs the given java launcher.
func (r *Runner) Java(ctx context.Context, launcher string, args ...string) (*CommandResult, error) {
	if launcher == "" {
		launcher = "java"
	}
	return r.execute(ctx, launcher, args...)
}

// JavaProperties runs `java -XshowSettings:properties -version` and returns
// the reported system properties. Multi-line values keep their first line.
func (r *Runner) JavaProperties(ctx context.Context, launcher string) (map[string]string, error) {
	result, err := r.Java(ctx, launcher, "-XshowSettings:properties", "-version")
	if err != nil {
		return nil, fmt.Errorf("failed to query java properties: %w", err)
	}

	// The JVM prints settings on stderr.
	return ParseJavaProperties(result.Stderr + result.Stdout), nil
}

// ParseJavaProperties parses the `key = value` listing of
// -XshowSettings:properties.
func ParseJavaProperties(output string) map[string]string {
	props := make(map[string]string)
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || !strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "        ") {
			continue
		}
		key, value, ok := strings.Cut(trimmed, " = ")
		if !ok {
			continue
		}
		props[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return props
}

// SplitCommand splits a configured command line such as
// "google-java-format --replace" into name and arguments. Double-quoted
// segments are kept together.
func SplitCommand(command string) (string, []string, error) {
	var (
		fields  []string
		current strings.Builder
		inQuote bool
		started bool
	)
	for _, r := range command {
		switch {
		case r == '"':
			inQuote = !inQuote
			started = true
		case (r == ' ' || r == '\t') && !inQuote:
			if started {
				fields = append(fields, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}
	if inQuote {
		return "", nil, fmt.Errorf("unterminated quote in command %q", command)
	}
	if started {
		fields = append(fields, current.String())
	}
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("empty command")
	}
	return fields[0], fields[1:], nil
}

// CheckToolAvailability checks if a tool is available in PATH.
//
// Parameters:
//   - toolName: Name of the tool to check
//
// Returns:
//   - string: Resolved path
//   - error: Error if tool is not found
func CheckToolAvailability(toolName string) (string, error) {
	path, err := exec.LookPath(toolName)
	if err != nil {
		return "", fmt.Errorf("tool not found in PATH: %s", toolName)
	}
	return path, nil
}

// CheckRequiredTools checks that every named tool is available.
func CheckRequiredTools(tools ...string) error {
	var missingTools []string
	for _, tool := range tools {
		if _, err := CheckToolAvailability(tool); err != nil {
			missingTools = append(missingTools, tool)
		}
	}

	if len(missingTools) > 0 {
		return fmt.Errorf("missing required tools: %s", strings.Join(missingTools, ", "))
	}

	return nil
}
