// Package workspace models an Eclipse-compatible workspace directory.
//
// Overview:
//   - Responsibility: Project, folder and file handles below a workspace root
//   - Key Types: Workspace, Project, Folder, File, Resource, Description
//   - Concurrency Model: Handles are not synchronized; callers serialize mutations
//   - Error Semantics: core/errors codes (NOT_FOUND, ALREADY_EXISTS, INVALID_ARGUMENT, INTERNAL)
//   - Performance Notes: Every query hits the file system, nothing is cached
//
// Projects are the immediate sub-directories of the root. Resources are
// addressed by workspace full paths such as "/Demo/src/jca/Foo.java".
//
// Usage:
//
//	ws, err := workspace.Open("/tmp/ws", logger)
//	project := ws.Project("Demo")
//	err = project.Create(ctx)
package workspace

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"

	coreerrors "go.eggybyte.com/jscaffold/core/errors"
	"go.eggybyte.com/jscaffold/core/log"
	"go.eggybyte.com/jscaffold/internal/projectfs"
)

// Workspace is the root directory holding projects.
type Workspace struct {
	root   string
	fs     *projectfs.ProjectFS
	logger log.Logger
}

// Open returns a workspace rooted at root, creating the directory when needed.
//
// Parameters:
//   - root: Workspace directory (made absolute)
//   - logger: Logger for resource operations; nil disables logging
//
// Returns:
//   - *Workspace: Workspace handle
//   - error: INVALID_ARGUMENT for an empty root, INTERNAL on file system failure
func Open(root string, logger log.Logger) (*Workspace, error) {
	if strings.TrimSpace(root) == "" {
		return nil, coreerrors.New(coreerrors.CodeInvalidArgument, "workspace root is empty")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, "workspace.Open", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, "workspace.Open", err)
	}
	if logger == nil {
		logger = log.Nop()
	}

	return &Workspace{
		root:   abs,
		fs:     projectfs.NewProjectFS(abs),
		logger: logger,
	}, nil
}

// Root returns the absolute workspace directory.
func (w *Workspace) Root() string {
	return w.root
}

// SetVerbose toggles debug output of individual file operations.
func (w *Workspace) SetVerbose(enabled bool) {
	w.fs.SetVerbose(enabled)
}

// Project returns a handle for the named project. The project may not exist.
func (w *Workspace) Project(name string) *Project {
	return &Project{ws: w, name: name}
}

// Projects lists the existing projects, sorted by name.
func (w *Workspace) Projects() ([]*Project, error) {
	names, err := w.fs.ListDirectories(".")
	if err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, "workspace.Projects", err)
	}

	projects := make([]*Project, 0, len(names))
	for _, name := range names {
		if strings.HasPrefix(name, ".") {
			continue
		}
		projects = append(projects, w.Project(name))
	}
	return projects, nil
}

// Folder resolves a workspace full path such as "/Demo/src" to a folder handle.
func (w *Workspace) Folder(fullPath string) (*Folder, error) {
	project, rel, err := w.split(fullPath)
	if err != nil {
		return nil, err
	}
	if rel == "" {
		return nil, coreerrors.Newf(coreerrors.CodeInvalidArgument, "path %q names a project, not a folder", fullPath)
	}
	return project.Folder(rel), nil
}

// File resolves a workspace full path to a file handle.
func (w *Workspace) File(fullPath string) (*File, error) {
	project, rel, err := w.split(fullPath)
	if err != nil {
		return nil, err
	}
	if rel == "" {
		return nil, coreerrors.Newf(coreerrors.CodeInvalidArgument, "path %q names a project, not a file", fullPath)
	}
	return project.File(rel), nil
}

func (w *Workspace) split(fullPath string) (*Project, string, error) {
	clean := path.Clean("/" + fullPath)
	if !strings.HasPrefix(fullPath, "/") || clean == "/" {
		return nil, "", coreerrors.Newf(coreerrors.CodeInvalidArgument, "invalid workspace path %q", fullPath)
	}
	name, rel, _ := strings.Cut(strings.TrimPrefix(clean, "/"), "/")
	return w.Project(name), rel, nil
}

// classify converts a file system error into a coded error.
func classify(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, os.ErrExist):
		return coreerrors.Wrap(coreerrors.CodeAlreadyExists, op, err)
	case errors.Is(err, os.ErrNotExist):
		return coreerrors.Wrap(coreerrors.CodeNotFound, op, err)
	default:
		return coreerrors.Propagate(op, err)
	}
}

func validateSegment(kind, name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return coreerrors.Newf(coreerrors.CodeInvalidArgument, "invalid %s name %q", kind, name)
	}
	return nil
}
