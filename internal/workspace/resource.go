package workspace

import (
	"context"
	"path"
	"strings"

	coreerrors "go.eggybyte.com/jscaffold/core/errors"
)

// ResourceType distinguishes files, folders and projects.
type ResourceType int

const (
	TypeFile ResourceType = iota + 1
	TypeFolder
	TypeProject
)

// String returns the lower-case type name.
func (t ResourceType) String() string {
	switch t {
	case TypeFile:
		return "file"
	case TypeFolder:
		return "folder"
	case TypeProject:
		return "project"
	default:
		return "unknown"
	}
}

// Resource is a project, folder or file of the workspace.
type Resource interface {
	Name() string
	FullPath() string
	Location() string
	Type() ResourceType
	Exists() bool
	Project() *Project
}

var (
	_ Resource = (*Project)(nil)
	_ Resource = (*Folder)(nil)
	_ Resource = (*File)(nil)
)

// Folder is a directory inside a project.
type Folder struct {
	project *Project
	rel     string
}

// Name returns the last path segment.
func (f *Folder) Name() string { return path.Base(f.rel) }

// ProjectRelativePath returns the slash separated path below the project.
func (f *Folder) ProjectRelativePath() string { return f.rel }

// FullPath returns the workspace path, for example "/Demo/src".
func (f *Folder) FullPath() string { return f.project.FullPath() + "/" + f.rel }

// Location returns the absolute directory.
func (f *Folder) Location() string { return f.project.ws.fs.GetAbsolutePath(f.wsRel()) }

// Type returns TypeFolder.
func (f *Folder) Type() ResourceType { return TypeFolder }

// Project returns the owning project.
func (f *Folder) Project() *Project { return f.project }

// Exists reports whether the directory exists.
func (f *Folder) Exists() bool {
	if f.rel == "" || !f.project.Exists() {
		return false
	}
	ok, err := f.project.ws.fs.DirectoryExists(f.wsRel())
	return err == nil && ok
}

// Create creates the folder. Its parent (project or folder) must exist.
//
// Parameters:
//   - ctx: Context checked before touching the disk
//   - force: Accept an already existing folder
//
// Returns:
//   - error: ALREADY_EXISTS when present and force is false, NOT_FOUND when the parent is missing
func (f *Folder) Create(ctx context.Context, force bool) error {
	const op = "workspace.Folder.Create"
	if err := ctx.Err(); err != nil {
		return coreerrors.Wrap(coreerrors.CodeUnavailable, op, err)
	}
	if f.rel == "" {
		return coreerrors.New(coreerrors.CodeInvalidArgument, "empty folder path")
	}
	if err := f.checkParent(); err != nil {
		return err
	}
	if err := f.project.ws.fs.CreateDirectory(f.wsRel(), force); err != nil {
		return classify(op, err)
	}
	return nil
}

// Folder returns a handle for a child folder.
func (f *Folder) Folder(name string) *Folder {
	return f.project.Folder(path.Join(f.rel, name))
}

// File returns a handle for a child file.
func (f *Folder) File(name string) *File {
	return f.project.File(path.Join(f.rel, name))
}

// Members lists the child folders then files, each group sorted by name.
func (f *Folder) Members() ([]Resource, error) {
	if !f.Exists() {
		return nil, coreerrors.Newf(coreerrors.CodeNotFound, "folder %s does not exist", f.FullPath())
	}
	return members(f.project, f.rel)
}

func (f *Folder) wsRel() string { return path.Join(f.project.name, f.rel) }

func (f *Folder) checkParent() error {
	if !f.project.Exists() {
		return coreerrors.Newf(coreerrors.CodeNotFound, "project %s does not exist", f.project.name)
	}
	if parent := path.Dir(f.rel); parent != "." {
		if !f.project.Folder(parent).Exists() {
			return coreerrors.Newf(coreerrors.CodeNotFound, "parent folder %s/%s does not exist", f.project.FullPath(), parent)
		}
	}
	return nil
}

// File is a regular file inside a project.
type File struct {
	project *Project
	rel     string
}

// Name returns the file name.
func (f *File) Name() string { return path.Base(f.rel) }

// Extension returns the file extension without the dot.
func (f *File) Extension() string { return strings.TrimPrefix(path.Ext(f.rel), ".") }

// ProjectRelativePath returns the slash separated path below the project.
func (f *File) ProjectRelativePath() string { return f.rel }

// FullPath returns the workspace path, for example "/Demo/src/jca/Foo.java".
func (f *File) FullPath() string { return f.project.FullPath() + "/" + f.rel }

// Location returns the absolute file path.
func (f *File) Location() string { return f.project.ws.fs.GetAbsolutePath(f.wsRel()) }

// Type returns TypeFile.
func (f *File) Type() ResourceType { return TypeFile }

// Project returns the owning project.
func (f *File) Project() *Project { return f.project }

// Parent returns the containing folder, or nil for files at the project root.
func (f *File) Parent() *Folder {
	dir := path.Dir(f.rel)
	if dir == "." {
		return nil
	}
	return f.project.Folder(dir)
}

// Exists reports whether the file exists.
func (f *File) Exists() bool {
	if f.rel == "" || !f.project.Exists() {
		return false
	}
	ok, err := f.project.ws.fs.FileExists(f.wsRel())
	return err == nil && ok
}

// Contents reads the file.
func (f *File) Contents() ([]byte, error) {
	data, err := f.project.ws.fs.ReadFile(f.wsRel())
	if err != nil {
		return nil, classify("workspace.File.Contents", err)
	}
	return data, nil
}

// Create writes a new file. When force is false the file must not exist;
// the existence check and creation are atomic.
//
// Returns:
//   - error: ALREADY_EXISTS for a present file without force, NOT_FOUND for a missing parent
func (f *File) Create(ctx context.Context, contents []byte, force bool) error {
	const op = "workspace.File.Create"
	if err := ctx.Err(); err != nil {
		return coreerrors.Wrap(coreerrors.CodeUnavailable, op, err)
	}
	if f.rel == "" {
		return coreerrors.New(coreerrors.CodeInvalidArgument, "empty file path")
	}
	if !f.project.Exists() {
		return coreerrors.Newf(coreerrors.CodeNotFound, "project %s does not exist", f.project.name)
	}
	if parent := f.Parent(); parent != nil && !parent.Exists() {
		return coreerrors.Newf(coreerrors.CodeNotFound, "parent folder %s does not exist", parent.FullPath())
	}
	if err := f.project.ws.fs.CreateFile(f.wsRel(), contents, force); err != nil {
		return classify(op, err)
	}
	return nil
}

func (f *File) wsRel() string { return path.Join(f.project.name, f.rel) }

func members(p *Project, rel string) ([]Resource, error) {
	dir := path.Join(p.name, rel)
	folders, err := p.ws.fs.ListDirectories(dir)
	if err != nil {
		return nil, classify("workspace.members", err)
	}
	files, err := p.ws.fs.ListFiles(dir)
	if err != nil {
		return nil, classify("workspace.members", err)
	}

	result := make([]Resource, 0, len(folders)+len(files))
	for _, name := range folders {
		result = append(result, p.Folder(path.Join(rel, name)))
	}
	for _, name := range files {
		result = append(result, p.File(path.Join(rel, name)))
	}
	return result, nil
}

func cleanRel(rel string) string {
	clean := path.Clean("/" + strings.ReplaceAll(rel, `\`, "/"))
	return strings.TrimPrefix(clean, "/")
}
