package javamodel

import (
	"context"
	"strings"

	coreerrors "go.eggybyte.com/jscaffold/core/errors"
	"go.eggybyte.com/jscaffold/internal/workspace"
)

// PackageFragmentRoot is a source folder holding packages.
type PackageFragmentRoot struct {
	project *JavaProject
	folder  *workspace.Folder
}

// Path returns the workspace path of the root folder.
func (r *PackageFragmentRoot) Path() string { return r.folder.FullPath() }

// Folder returns the root folder.
func (r *PackageFragmentRoot) Folder() *workspace.Folder { return r.folder }

// JavaProject returns the owning Java project.
func (r *PackageFragmentRoot) JavaProject() *JavaProject { return r.project }

// Exists reports whether the root folder exists.
func (r *PackageFragmentRoot) Exists() bool { return r.folder.Exists() }

// PackageFragment returns a handle for the named package. The empty name is
// the default package.
func (r *PackageFragmentRoot) PackageFragment(name string) *PackageFragment {
	return &PackageFragment{root: r, name: name}
}

// CreatePackageFragment creates the folders of a package below the root.
// Existing packages are returned unchanged.
//
// Parameters:
//   - ctx: Context for the folder operations
//   - name: Dotted package name; empty for the default package
//
// Returns:
//   - *PackageFragment: The package
//   - error: INVALID_ARGUMENT for a bad name, NOT_FOUND when the root is missing,
//     ALREADY_EXISTS when a file blocks one of the package folders
func (r *PackageFragmentRoot) CreatePackageFragment(ctx context.Context, name string) (*PackageFragment, error) {
	const op = "javamodel.CreatePackageFragment"
	if name != "" {
		if err := ValidatePackageName(name); err != nil {
			return nil, err
		}
	}
	if !r.Exists() {
		return nil, coreerrors.Newf(coreerrors.CodeNotFound, "package fragment root %s does not exist", r.Path())
	}

	folder := r.folder
	if name != "" {
		for _, segment := range strings.Split(name, ".") {
			folder = folder.Folder(segment)
			if err := folder.Create(ctx, true); err != nil {
				return nil, coreerrors.Propagate(op, err)
			}
		}
	}
	return r.PackageFragment(name), nil
}

// PackageFragment is a package below a source folder.
type PackageFragment struct {
	root *PackageFragmentRoot
	name string
}

// ElementName returns the dotted package name; empty for the default package.
func (p *PackageFragment) ElementName() string { return p.name }

// IsDefaultPackage reports whether this is the unnamed package.
func (p *PackageFragment) IsDefaultPackage() bool { return p.name == "" }

// Root returns the containing root.
func (p *PackageFragment) Root() *PackageFragmentRoot { return p.root }

// Resource returns the package folder.
func (p *PackageFragment) Resource() *workspace.Folder {
	if p.name == "" {
		return p.root.folder
	}
	return p.root.folder.Folder(strings.ReplaceAll(p.name, ".", "/"))
}

// Exists reports whether the package folder exists.
func (p *PackageFragment) Exists() bool { return p.Resource().Exists() }

// CompilationUnit returns a handle for a unit name such as "Foo.java".
func (p *PackageFragment) CompilationUnit(name string) *CompilationUnit {
	return &CompilationUnit{pkg: p, name: name}
}

// CompilationUnits lists the .java files of the package sorted by name.
//
// Returns:
//   - error: NOT_FOUND when the package does not exist
func (p *PackageFragment) CompilationUnits() ([]*CompilationUnit, error) {
	members, err := p.Resource().Members()
	if err != nil {
		return nil, coreerrors.Propagate("javamodel.CompilationUnits", err)
	}

	var units []*CompilationUnit
	for _, m := range members {
		if m.Type() == workspace.TypeFile && strings.HasSuffix(m.Name(), JavaExtension) {
			units = append(units, p.CompilationUnit(m.Name()))
		}
	}
	return units, nil
}

// CreateCompilationUnit writes a new unit into the package.
//
// Parameters:
//   - ctx: Context for the file operation
//   - name: File name such as "Foo.java"
//   - contents: Source text
//   - force: Overwrite an existing unit
//
// Returns:
//   - error: ALREADY_EXISTS when the unit exists and force is false
func (p *PackageFragment) CreateCompilationUnit(ctx context.Context, name, contents string, force bool) (*CompilationUnit, error) {
	const op = "javamodel.CreateCompilationUnit"
	if err := ValidateCompilationUnitName(name); err != nil {
		return nil, err
	}
	if !p.Exists() {
		return nil, coreerrors.Newf(coreerrors.CodeNotFound, "package %q does not exist in %s", p.name, p.root.Path())
	}

	unit := p.CompilationUnit(name)
	if err := unit.Resource().Create(ctx, []byte(contents), force); err != nil {
		return nil, coreerrors.Propagate(op, err)
	}
	return unit, nil
}

// CompilationUnit is a Java source file.
type CompilationUnit struct {
	pkg  *PackageFragment
	name string
}

// ElementName returns the file name, e.g. "Foo.java".
func (u *CompilationUnit) ElementName() string { return u.name }

// TypeName returns the name without the .java extension.
func (u *CompilationUnit) TypeName() string { return strings.TrimSuffix(u.name, JavaExtension) }

// Parent returns the containing package.
func (u *CompilationUnit) Parent() *PackageFragment { return u.pkg }

// Resource returns the file handle; the file may not exist.
func (u *CompilationUnit) Resource() *workspace.File { return u.pkg.Resource().File(u.name) }

// Exists reports whether the file exists.
func (u *CompilationUnit) Exists() bool { return u.Resource().Exists() }

// UnderlyingResource returns the file of an existing unit.
//
// Returns:
//   - error: NOT_FOUND when the unit does not exist
func (u *CompilationUnit) UnderlyingResource() (*workspace.File, error) {
	file := u.Resource()
	if !file.Exists() {
		return nil, coreerrors.Newf(coreerrors.CodeNotFound, "compilation unit %s does not exist", file.FullPath())
	}
	return file, nil
}

// Source reads the unit's source text.
func (u *CompilationUnit) Source() (string, error) {
	data, err := u.Resource().Contents()
	if err != nil {
		return "", coreerrors.Propagate("javamodel.Source", err)
	}
	return string(data), nil
}
