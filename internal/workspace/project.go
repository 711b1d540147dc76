package workspace

import (
	"context"
	"path"

	coreerrors "go.eggybyte.com/jscaffold/core/errors"
	"go.eggybyte.com/jscaffold/core/log"
)

// Project is a handle to a workspace project. The handle stays valid when the
// project is deleted and re-created.
type Project struct {
	ws   *Workspace
	name string
	open bool
	desc *Description
}

// Name returns the project name.
func (p *Project) Name() string { return p.name }

// FullPath returns the workspace path "/<name>".
func (p *Project) FullPath() string { return "/" + p.name }

// Location returns the absolute directory of the project.
func (p *Project) Location() string { return p.ws.fs.GetAbsolutePath(p.name) }

// Type returns TypeProject.
func (p *Project) Type() ResourceType { return TypeProject }

// Project returns p.
func (p *Project) Project() *Project { return p }

// Workspace returns the owning workspace.
func (p *Project) Workspace() *Workspace { return p.ws }

// Exists reports whether the project directory exists.
func (p *Project) Exists() bool {
	if validateSegment("project", p.name) != nil {
		return false
	}
	ok, err := p.ws.fs.DirectoryExists(p.name)
	return err == nil && ok
}

// IsOpen reports whether the project was opened and still exists.
func (p *Project) IsOpen() bool {
	return p.open && p.Exists()
}

// Create creates the project directory and an initial description naming
// the project.
//
// Returns:
//   - error: INVALID_ARGUMENT for a bad name, ALREADY_EXISTS when present
func (p *Project) Create(ctx context.Context) error {
	const op = "workspace.Project.Create"
	if err := validateSegment("project", p.name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return coreerrors.Wrap(coreerrors.CodeUnavailable, op, err)
	}
	if p.Exists() {
		return coreerrors.Newf(coreerrors.CodeAlreadyExists, "project %s already exists", p.name)
	}

	if err := p.ws.fs.CreateDirectory(p.name, false); err != nil {
		return classify(op, err)
	}
	desc := &Description{Name: p.name}
	if err := p.writeDescription(desc); err != nil {
		return coreerrors.Propagate(op, err)
	}

	p.open = false
	p.desc = nil
	p.ws.logger.Debug("project created", log.Str("project", p.name))
	return nil
}

// Open loads the project description and marks the project open. A project
// without a description file opens with a default one.
//
// Returns:
//   - error: NOT_FOUND when the project does not exist
func (p *Project) Open(ctx context.Context) error {
	const op = "workspace.Project.Open"
	if err := ctx.Err(); err != nil {
		return coreerrors.Wrap(coreerrors.CodeUnavailable, op, err)
	}
	if !p.Exists() {
		return coreerrors.Newf(coreerrors.CodeNotFound, "project %s does not exist", p.name)
	}

	desc, err := p.readDescription()
	if err != nil {
		return coreerrors.Propagate(op, err)
	}
	p.desc = desc
	p.open = true
	return nil
}

// Description returns a copy of the project description.
//
// Returns:
//   - error: UNAVAILABLE when the project is not open
func (p *Project) Description() (*Description, error) {
	if !p.IsOpen() {
		return nil, coreerrors.Newf(coreerrors.CodeUnavailable, "project %s is not open", p.name)
	}
	return p.desc.clone(), nil
}

// SetDescription stores desc as the project description. The name is always
// forced to the project name.
func (p *Project) SetDescription(ctx context.Context, desc *Description) error {
	const op = "workspace.Project.SetDescription"
	if err := ctx.Err(); err != nil {
		return coreerrors.Wrap(coreerrors.CodeUnavailable, op, err)
	}
	if !p.IsOpen() {
		return coreerrors.Newf(coreerrors.CodeUnavailable, "project %s is not open", p.name)
	}

	stored := desc.clone()
	stored.Name = p.name
	if err := p.writeDescription(stored); err != nil {
		return coreerrors.Propagate(op, err)
	}
	p.desc = stored
	return nil
}

// Refresh re-synchronizes the handle with the file system: a project removed
// from disk is closed, an open project reloads its description.
func (p *Project) Refresh(ctx context.Context) error {
	const op = "workspace.Project.Refresh"
	if err := ctx.Err(); err != nil {
		return coreerrors.Wrap(coreerrors.CodeUnavailable, op, err)
	}
	if !p.Exists() {
		p.open = false
		p.desc = nil
		return nil
	}
	if !p.open {
		return nil
	}

	desc, err := p.readDescription()
	if err != nil {
		return coreerrors.Propagate(op, err)
	}
	p.desc = desc
	return nil
}

// Delete removes the project and all its contents from disk. Deleting a
// missing project is a no-op.
func (p *Project) Delete(ctx context.Context) error {
	const op = "workspace.Project.Delete"
	if err := validateSegment("project", p.name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return coreerrors.Wrap(coreerrors.CodeUnavailable, op, err)
	}

	if err := p.ws.fs.RemoveAll(p.name); err != nil {
		return classify(op, err)
	}
	p.open = false
	p.desc = nil
	p.ws.logger.Debug("project deleted", log.Str("project", p.name))
	return nil
}

// Folder returns a handle for a project-relative folder path such as "src/jca".
func (p *Project) Folder(rel string) *Folder {
	return &Folder{project: p, rel: cleanRel(rel)}
}

// File returns a handle for a project-relative file path.
func (p *Project) File(rel string) *File {
	return &File{project: p, rel: cleanRel(rel)}
}

// Members lists the top-level resources of the project.
func (p *Project) Members() ([]Resource, error) {
	if !p.Exists() {
		return nil, coreerrors.Newf(coreerrors.CodeNotFound, "project %s does not exist", p.name)
	}
	return members(p, "")
}

func (p *Project) readDescription() (*Description, error) {
	file := p.File(DescriptionFile)
	if !file.Exists() {
		return &Description{Name: p.name}, nil
	}
	data, err := file.Contents()
	if err != nil {
		return nil, err
	}
	desc, err := unmarshalDescription(data)
	if err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, "workspace.readDescription", err)
	}
	return desc, nil
}

func (p *Project) writeDescription(desc *Description) error {
	data, err := marshalDescription(desc)
	if err != nil {
		return coreerrors.Wrap(coreerrors.CodeInternal, "workspace.writeDescription", err)
	}
	if err := p.ws.fs.WriteFile(path.Join(p.name, DescriptionFile), data, 0o644); err != nil {
		return classify("workspace.writeDescription", err)
	}
	return nil
}
