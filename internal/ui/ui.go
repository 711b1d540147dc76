// Package ui provides unified output formatting for the jscaffold CLI.
//
// Overview:
//   - Responsibility: Standardized console messages, step indication, and confirmation prompts
//   - Key Types: Message, OutputLevel
//   - Concurrency Model: Thread-safe output operations
//   - Error Semantics: User-friendly error messages
//   - Performance Notes: Unbuffered writes, minimal allocations
//
// Usage:
//
//	ui.Info("Workspace: %s", root)
//	ui.Error("Failed to create project: %v", err)
package ui

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var (
	verbose        bool
	nonInteractive bool
	jsonOutput     bool
	stdout         io.Writer = os.Stdout
	stderr         io.Writer = os.Stderr
	stdin          io.Reader = os.Stdin
	mu             sync.RWMutex
)

// OutputLevel represents the severity level of a message.
type OutputLevel string

const (
	LevelDebug   OutputLevel = "debug"
	LevelInfo    OutputLevel = "info"
	LevelWarning OutputLevel = "warning"
	LevelError   OutputLevel = "error"
	LevelSuccess OutputLevel = "success"
	LevelResult  OutputLevel = "result"
)

// Message represents a structured output message.
type Message struct {
	Level     OutputLevel `json:"level"`
	Text      string      `json:"text"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// SetVerbose enables or disables debug output.
func SetVerbose(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = enabled
}

// SetNonInteractive disables interactive prompts.
func SetNonInteractive(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	nonInteractive = enabled
}

// SetJSONOutput enables JSON-formatted output.
func SetJSONOutput(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	jsonOutput = enabled
}

// SetOutput redirects standard and error output. Nil keeps the current writer.
func SetOutput(out, errOut io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

// SetInput redirects the reader used by Confirm.
func SetInput(in io.Reader) {
	mu.Lock()
	defer mu.Unlock()
	stdin = in
}

// output writes a message to the appropriate output stream.
//
// Parameters:
//   - level: Message severity level
//   - data: Structured payload for JSON mode (may be nil)
//   - format: Printf-style format string
//   - args: Format arguments
//
// Concurrency:
//   - Thread-safe
func output(level OutputLevel, data interface{}, format string, args ...interface{}) {
	mu.RLock()
	useJSON := jsonOutput
	useVerbose := verbose
	out, errOut := stdout, stderr
	mu.RUnlock()

	if level == LevelDebug && !useVerbose {
		return
	}

	text := fmt.Sprintf(format, args...)

	if useJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		message := Message{
			Level:     level,
			Text:      text,
			Data:      data,
			Timestamp: time.Now(),
		}
		if err := encoder.Encode(message); err != nil {
			fmt.Fprintf(errOut, "Failed to encode JSON output: %v\n", err)
		}
		return
	}

	writer := out
	if level == LevelError {
		writer = errOut
	}

	var prefix string
	switch level {
	case LevelDebug:
		prefix = "🔍 DEBUG: "
	case LevelInfo:
		prefix = "ℹ️  INFO: "
	case LevelWarning:
		prefix = "⚠️  WARN: "
	case LevelError:
		prefix = "❌ ERROR: "
	case LevelSuccess:
		prefix = "✅ SUCCESS: "
	}

	fmt.Fprintf(writer, "%s%s\n", prefix, text)
}

// Debug outputs a debug message, shown only in verbose mode.
func Debug(format string, args ...interface{}) {
	output(LevelDebug, nil, format, args...)
}

// Info outputs an informational message.
func Info(format string, args ...interface{}) {
	output(LevelInfo, nil, format, args...)
}

// Warning outputs a warning message.
func Warning(format string, args ...interface{}) {
	output(LevelWarning, nil, format, args...)
}

// Error outputs an error message to stderr.
func Error(format string, args ...interface{}) {
	output(LevelError, nil, format, args...)
}

// Success outputs a success message.
func Success(format string, args ...interface{}) {
	output(LevelSuccess, nil, format, args...)
}

// Result prints a bare command result (for example a literal) so it can be
// consumed by scripts. In JSON mode the value is attached as data.
func Result(value string, data interface{}) {
	if data == nil {
		data = value
	}
	output(LevelResult, data, "%s", value)
}

// Step outputs a step indicator with message.
//
// Parameters:
//   - step: Step number
//   - total: Total number of steps
//   - format: Printf-style format string
//   - args: Format arguments
func Step(step, total int, format string, args ...interface{}) {
	mu.RLock()
	useJSON := jsonOutput
	out := stdout
	mu.RUnlock()

	if useJSON {
		Info(format, args...)
		return
	}

	text := fmt.Sprintf(format, args...)
	fmt.Fprintf(out, "  [%d/%d] %s\n", step, total, text)
}

// Confirm prompts the user for confirmation.
//
// Returns:
//   - bool: True if user confirmed; always true in non-interactive mode
//
// Concurrency:
//   - Single-threaded (blocks on user input)
func Confirm(format string, args ...interface{}) bool {
	mu.RLock()
	nonInt := nonInteractive
	out, in := stdout, stdin
	mu.RUnlock()

	if nonInt {
		return true
	}

	text := fmt.Sprintf(format, args...)
	fmt.Fprintf(out, "❓ %s [y/N]: ", text)

	response, _ := bufio.NewReader(in).ReadString('\n')
	response = strings.TrimSpace(response)
	return response == "y" || response == "Y" || response == "yes"
}
