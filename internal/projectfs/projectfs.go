// Package projectfs provides root-relative file system operations for the workspace.
//
// Overview:
//   - Responsibility: Create folders and files, read, list and remove them below a root
//   - Key Types: ProjectFS
//   - Concurrency Model: Sequential file operations; exclusive creates rely on O_EXCL
//   - Error Semantics: Already-existing targets surface as os.ErrExist, missing ones as os.ErrNotExist
//   - Performance Notes: Direct syscalls, no caching
//
// Usage:
//
//	fs := NewProjectFS(workspaceRoot)
//	err := fs.CreateDirectory("Demo/src", false)
//	err = fs.CreateFile("Demo/src/jca/Foo.java", source, false)
package projectfs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"go.eggybyte.com/jscaffold/internal/ui"
)

// ProjectFS provides file system operations relative to a root directory.
//
// Parameters:
//   - rootDir: Root directory for operations
//   - verbose: Whether to show file operations
//
// Concurrency:
//   - Safe for concurrent use
type ProjectFS struct {
	rootDir string
	verbose bool
}

// NewProjectFS creates a new project file system.
func NewProjectFS(rootDir string) *ProjectFS {
	return &ProjectFS{
		rootDir: rootDir,
		verbose: false,
	}
}

// SetVerbose enables or disables verbose output.
func (fs *ProjectFS) SetVerbose(enabled bool) {
	fs.verbose = enabled
}

// CreateDirectory creates a directory and its parents.
//
// Parameters:
//   - path: Directory path relative to root
//   - force: When false an existing directory is reported as os.ErrExist
//
// Returns:
//   - error: File system error if any
//
// Concurrency:
//   - Single-threaded per directory
func (fs *ProjectFS) CreateDirectory(path string, force bool) error {
	fullPath := fs.GetAbsolutePath(path)

	if info, err := os.Stat(fullPath); err == nil {
		if !info.IsDir() {
			return fmt.Errorf("failed to create directory %s: %w", path, os.ErrExist)
		}
		if !force {
			return fmt.Errorf("directory %s: %w", path, os.ErrExist)
		}
		if fs.verbose {
			ui.Debug("Directory already exists: %s", path)
		}
		return nil
	}

	if err := os.MkdirAll(fullPath, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}

	if fs.verbose {
		ui.Debug("Created directory: %s", path)
	}

	return nil
}

// WriteFile writes content to a file, replacing any previous content.
//
// Parameters:
//   - path: File path relative to root
//   - content: File content
//   - mode: File permissions
//
// Returns:
//   - error: File system error if any
func (fs *ProjectFS) WriteFile(path string, content []byte, mode fs.FileMode) error {
	fullPath := fs.GetAbsolutePath(path)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("failed to create parent directory for %s: %w", path, err)
	}

	if err := os.WriteFile(fullPath, content, mode); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	if fs.verbose {
		ui.Debug("Written file: %s", path)
	}

	return nil
}

// CreateFile writes a new file. Unless force is set, the file must not exist
// yet; the check and the create happen atomically through O_EXCL. The parent
// directory must exist.
//
// Parameters:
//   - path: File path relative to root
//   - content: File content
//   - force: Overwrite an existing file
//
// Returns:
//   - error: os.ErrExist (wrapped) when the file is present and force is false
func (fs *ProjectFS) CreateFile(path string, content []byte, force bool) error {
	fullPath := fs.GetAbsolutePath(path)

	flags := os.O_WRONLY | os.O_CREATE
	if force {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_EXCL
	}

	f, err := os.OpenFile(fullPath, flags, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close file %s: %w", path, err)
	}

	if fs.verbose {
		ui.Debug("Created file: %s", path)
	}

	return nil
}

// FileExists checks if a regular file exists.
func (fs *ProjectFS) FileExists(path string) (bool, error) {
	info, err := os.Stat(fs.GetAbsolutePath(path))
	if err == nil {
		return info.Mode().IsRegular(), nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// DirectoryExists checks if a directory exists.
func (fs *ProjectFS) DirectoryExists(path string) (bool, error) {
	info, err := os.Stat(fs.GetAbsolutePath(path))
	if err == nil {
		return info.IsDir(), nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// ReadFile reads the content of a file.
func (fs *ProjectFS) ReadFile(path string) ([]byte, error) {
	content, err := os.ReadFile(fs.GetAbsolutePath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return content, nil
}

// RemoveAll removes a file or directory tree. Missing paths are not an error.
//
// Parameters:
//   - path: Path relative to root; the root itself cannot be removed
//
// Returns:
//   - error: File system error if any
func (fs *ProjectFS) RemoveAll(path string) error {
	clean := filepath.Clean(path)
	if clean == "." || clean == string(filepath.Separator) {
		return fmt.Errorf("refusing to remove workspace root")
	}

	if err := os.RemoveAll(fs.GetAbsolutePath(clean)); err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}

	if fs.verbose {
		ui.Debug("Removed: %s", path)
	}

	return nil
}

// ListFiles returns the names of regular files in a directory, sorted.
//
// Performance:
//   - O(n log n) where n is the number of directory entries
func (fs *ProjectFS) ListFiles(path string) ([]string, error) {
	return fs.list(path, func(e os.DirEntry) bool { return e.Type().IsRegular() })
}

// ListDirectories returns the names of sub-directories, sorted.
func (fs *ProjectFS) ListDirectories(path string) ([]string, error) {
	return fs.list(path, func(e os.DirEntry) bool { return e.IsDir() })
}

func (fs *ProjectFS) list(path string, keep func(os.DirEntry) bool) ([]string, error) {
	entries, err := os.ReadDir(fs.GetAbsolutePath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", path, err)
	}

	var names []string
	for _, entry := range entries {
		if keep(entry) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// GetAbsolutePath returns the absolute path for a root-relative path.
func (fs *ProjectFS) GetAbsolutePath(path string) string {
	return filepath.Join(fs.rootDir, filepath.FromSlash(path))
}
