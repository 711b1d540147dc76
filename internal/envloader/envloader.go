// Package envloader parses KEY=value files.
//
// Overview:
//   - Responsibility: Parse .env style files such as dotenv configuration and the JDK "release" file
//   - Key Types: Environment variable maps and loading functions
//   - Concurrency Model: Single-threaded file reading
//   - Error Semantics: File not found and parse errors are clearly reported
//   - Performance Notes: Simple line parsing, minimal allocations
//
// Usage:
//
//	envMap, err := envloader.LoadEnvFile(".env")
//	release, err := envloader.LoadEnvFile(filepath.Join(javaHome, "release"))
package envloader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadEnvFile loads variables from a KEY=value file.
//
// The format supports:
//   - KEY=value format, optionally prefixed with "export "
//   - Comments starting with #
//   - Empty lines
//   - Quoted values (single or double quotes)
//   - Variable references are not expanded
//
// Parameters:
//   - path: Path to the file
//
// Returns:
//   - map[string]string: Variables as key-value pairs
//   - error: File read or parse error if any
//
// Performance:
//   - O(n) where n is number of lines
func LoadEnvFile(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open env file: %w", err)
	}
	defer file.Close()

	envMap, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return envMap, nil
}

// Parse reads KEY=value lines from r.
func Parse(r io.Reader) (map[string]string, error) {
	envMap := make(map[string]string)
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("invalid line %d: %s (expected KEY=value format)", lineNum, line)
		}

		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("invalid line %d: empty key", lineNum)
		}

		envMap[key] = unquote(strings.TrimSpace(value))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading env file: %w", err)
	}

	return envMap, nil
}

func unquote(value string) string {
	if len(value) >= 2 {
		if (value[0] == '"' && value[len(value)-1] == '"') ||
			(value[0] == '\'' && value[len(value)-1] == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}
