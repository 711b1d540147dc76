// Package javamodel provides the Java view of a workspace project.
//
// Overview:
//   - Responsibility: Java nature, raw classpath, output location, package fragment roots,
//     package fragments and compilation units of a project
//   - Key Types: JavaProject, ClasspathEntry, PackageFragmentRoot, PackageFragment, CompilationUnit
//   - Concurrency Model: Not synchronized; state lives in the project's .classpath file
//   - Error Semantics: core/errors codes; invalid Java names yield INVALID_ARGUMENT
//   - Performance Notes: The classpath file is re-read on every query
//
// Usage:
//
//	jp := javamodel.Create(project)
//	err := jp.SetRawClasspath(ctx, []javamodel.ClasspathEntry{javamodel.NewSourceEntry("/Demo/src")})
//	root := jp.PackageFragmentRoot(project.Folder("src"))
//	pkg, err := root.CreatePackageFragment(ctx, "com.example")
package javamodel

import (
	"context"
	"path"
	"slices"
	"strings"

	coreerrors "go.eggybyte.com/jscaffold/core/errors"
	"go.eggybyte.com/jscaffold/internal/workspace"
)

const (
	// NatureID marks a project as a Java project.
	NatureID = "org.eclipse.jdt.core.javanature"
	// BuilderID is the Java incremental builder.
	BuilderID = "org.eclipse.jdt.core.javabuilder"
	// DefaultOutputFolder is used when a project has no classpath file yet.
	DefaultOutputFolder = "bin"
)

// JavaProject is the Java element for a workspace project.
type JavaProject struct {
	project *workspace.Project
}

// Create returns the Java project for project. Nothing is written to disk.
func Create(project *workspace.Project) *JavaProject {
	return &JavaProject{project: project}
}

// Project returns the underlying workspace project.
func (jp *JavaProject) Project() *workspace.Project { return jp.project }

// ElementName returns the project name.
func (jp *JavaProject) ElementName() string { return jp.project.Name() }

// Exists reports whether the project exists and carries the Java nature.
func (jp *JavaProject) Exists() bool {
	desc, err := jp.project.Description()
	return err == nil && desc.HasNature(NatureID)
}

// SetJavaNature makes the Java nature the only nature of the open project and
// registers the Java builder.
func SetJavaNature(ctx context.Context, project *workspace.Project) error {
	const op = "javamodel.SetJavaNature"
	desc, err := project.Description()
	if err != nil {
		return coreerrors.Propagate(op, err)
	}
	desc.SetNatureIDs(NatureID)
	desc.AddBuilder(BuilderID)
	if err := project.SetDescription(ctx, desc); err != nil {
		return coreerrors.Propagate(op, err)
	}
	return nil
}

// RawClasspath returns the classpath entries in declaration order. A project
// without a classpath file has no entries.
func (jp *JavaProject) RawClasspath() ([]ClasspathEntry, error) {
	entries, _, err := jp.readClasspath()
	if err != nil {
		return nil, coreerrors.Propagate("javamodel.RawClasspath", err)
	}
	return entries, nil
}

// SetRawClasspath replaces the classpath entries, keeping the output location.
//
// Returns:
//   - error: INVALID_ARGUMENT for duplicate entries or source folders outside the project
func (jp *JavaProject) SetRawClasspath(ctx context.Context, entries []ClasspathEntry) error {
	const op = "javamodel.SetRawClasspath"
	if err := jp.validateEntries(entries); err != nil {
		return err
	}
	_, output, err := jp.readClasspath()
	if err != nil {
		return coreerrors.Propagate(op, err)
	}
	return coreerrors.Propagate(op, jp.writeClasspath(ctx, entries, output))
}

// OutputLocation returns the workspace path of the output folder.
func (jp *JavaProject) OutputLocation() (string, error) {
	_, output, err := jp.readClasspath()
	if err != nil {
		return "", coreerrors.Propagate("javamodel.OutputLocation", err)
	}
	return output, nil
}

// SetOutputLocation sets the output folder, a workspace path inside the project.
func (jp *JavaProject) SetOutputLocation(ctx context.Context, fullPath string) error {
	const op = "javamodel.SetOutputLocation"
	if !jp.inProject(fullPath) {
		return coreerrors.Newf(coreerrors.CodeInvalidArgument, "output location %s is not inside project %s", fullPath, jp.ElementName())
	}
	entries, _, err := jp.readClasspath()
	if err != nil {
		return coreerrors.Propagate(op, err)
	}
	return coreerrors.Propagate(op, jp.writeClasspath(ctx, entries, path.Clean(fullPath)))
}

// PackageFragmentRoot returns the root for a source folder. The folder need
// not be on the classpath.
func (jp *JavaProject) PackageFragmentRoot(folder *workspace.Folder) *PackageFragmentRoot {
	return &PackageFragmentRoot{project: jp, folder: folder}
}

// PackageFragmentRoots returns the roots of the source entries in classpath order.
func (jp *JavaProject) PackageFragmentRoots() ([]*PackageFragmentRoot, error) {
	entries, err := jp.RawClasspath()
	if err != nil {
		return nil, err
	}

	var roots []*PackageFragmentRoot
	for _, e := range entries {
		if e.Kind != KindSource || !jp.inProject(e.Path) {
			continue
		}
		rel := strings.TrimPrefix(e.Path, jp.project.FullPath()+"/")
		roots = append(roots, jp.PackageFragmentRoot(jp.project.Folder(rel)))
	}
	return roots, nil
}

// FindPackageFragment returns the first existing fragment with the given
// name across the source roots.
//
// Returns:
//   - error: NOT_FOUND when no source root contains the package
func (jp *JavaProject) FindPackageFragment(name string) (*PackageFragment, error) {
	roots, err := jp.PackageFragmentRoots()
	if err != nil {
		return nil, err
	}
	for _, root := range roots {
		if pkg := root.PackageFragment(name); pkg.Exists() {
			return pkg, nil
		}
	}
	return nil, coreerrors.Newf(coreerrors.CodeNotFound, "package %s not found in project %s", name, jp.ElementName())
}

func (jp *JavaProject) validateEntries(entries []ClasspathEntry) error {
	seen := make(map[ClasspathEntry]struct{}, len(entries))
	for _, e := range entries {
		switch e.Kind {
		case KindLibrary, KindContainer:
		case KindSource:
			if !jp.inProject(e.Path) {
				return coreerrors.Newf(coreerrors.CodeInvalidArgument, "source entry %s is not inside project %s", e.Path, jp.ElementName())
			}
		default:
			return coreerrors.Newf(coreerrors.CodeInvalidArgument, "unsupported classpath entry kind %q", e.Kind)
		}
		if e.Path == "" {
			return coreerrors.Newf(coreerrors.CodeInvalidArgument, "classpath entry of kind %s has an empty path", e.Kind)
		}
		if _, dup := seen[e]; dup {
			return coreerrors.Newf(coreerrors.CodeInvalidArgument, "duplicate classpath entry %s", e)
		}
		seen[e] = struct{}{}
	}
	return nil
}

func (jp *JavaProject) inProject(fullPath string) bool {
	return strings.HasPrefix(path.Clean(fullPath), jp.project.FullPath()+"/")
}

func (jp *JavaProject) readClasspath() ([]ClasspathEntry, string, error) {
	defaultOutput := jp.project.FullPath() + "/" + DefaultOutputFolder
	file := jp.project.File(ClasspathFile)
	if !jp.project.Exists() {
		return nil, "", coreerrors.Newf(coreerrors.CodeNotFound, "project %s does not exist", jp.ElementName())
	}
	if !file.Exists() {
		return nil, defaultOutput, nil
	}

	data, err := file.Contents()
	if err != nil {
		return nil, "", err
	}
	entries, output, err := decodeClasspath(jp.project.FullPath(), data)
	if err != nil {
		return nil, "", coreerrors.Wrap(coreerrors.CodeInternal, "javamodel.readClasspath", err)
	}
	if output == "" {
		output = defaultOutput
	}
	return entries, output, nil
}

func (jp *JavaProject) writeClasspath(ctx context.Context, entries []ClasspathEntry, output string) error {
	data, err := encodeClasspath(jp.project.FullPath(), slices.Clone(entries), output)
	if err != nil {
		return coreerrors.Wrap(coreerrors.CodeInternal, "javamodel.writeClasspath", err)
	}
	return jp.project.File(ClasspathFile).Create(ctx, data, true)
}
