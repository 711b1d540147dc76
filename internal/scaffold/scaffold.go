// Package scaffold prepares throw-away Java projects for generated tests.
//
// Overview:
//   - Responsibility: Create and delete Java projects, generate class stubs,
//     format generated sources and map primitive types to default literals
//   - Key Types: Scaffolder, Options, RuntimeLocator, Recorder
//   - Concurrency Model: Scaffolder holds no mutable state; concurrent calls on
//     the same project race on the file system
//   - Error Semantics: core/errors codes; host failures keep the code of the
//     failing step, INTERNAL when it has none
//   - Performance Notes: Every call goes to disk; CreateProject may spawn the java launcher
//
// Usage:
//
//	s, err := scaffold.New(scaffold.Options{Workspace: ws, Runtime: locator, Logger: logger})
//	jp, err := s.CreateProject(ctx, "Demo")
//	file, err := s.GenerateClass(ctx, jp, "jca", "Output")
//	err = s.FormatGeneratedSources(ctx, jp, session)
package scaffold

import (
	"context"
	"fmt"
	"time"

	coreerrors "go.eggybyte.com/jscaffold/core/errors"
	"go.eggybyte.com/jscaffold/core/log"
	"go.eggybyte.com/jscaffold/internal/editor"
	"go.eggybyte.com/jscaffold/internal/javamodel"
	"go.eggybyte.com/jscaffold/internal/jvm"
	"go.eggybyte.com/jscaffold/internal/workspace"
)

const (
	// GeneratedPackage holds the sources produced by the test generator.
	GeneratedPackage = "jca"
	// SourceFolder is the project's only source folder.
	SourceFolder = "src"
	// OutputFolder receives compiled classes.
	OutputFolder = "bin"
)

// RuntimeLocator finds the default Java runtime and its system libraries.
// *jvm.Locator implements it.
type RuntimeLocator interface {
	DefaultVMInstall(ctx context.Context) (*jvm.VMInstall, error)
	LibraryLocations(vm *jvm.VMInstall) ([]jvm.LibraryLocation, error)
}

// Recorder observes completed operations. *obsx.Recorder implements it.
type Recorder interface {
	Record(ctx context.Context, op string, elapsed time.Duration, err error)
}

// Options configures a Scaffolder.
type Options struct {
	Workspace *workspace.Workspace // Workspace projects live in (required)
	Runtime   RuntimeLocator       // Source of the default library classpath (required)
	Logger    log.Logger           // Optional logger
	Recorder  Recorder             // Optional operation metrics
}

// Scaffolder runs scaffolding operations against one workspace.
type Scaffolder struct {
	ws       *workspace.Workspace
	runtime  RuntimeLocator
	logger   log.Logger
	recorder Recorder
}

// New creates a Scaffolder.
//
// Returns:
//   - error: INVALID_ARGUMENT when the workspace or runtime locator is missing
func New(opts Options) (*Scaffolder, error) {
	if opts.Workspace == nil {
		return nil, coreerrors.New(coreerrors.CodeInvalidArgument, "workspace is required")
	}
	if opts.Runtime == nil {
		return nil, coreerrors.New(coreerrors.CodeInvalidArgument, "runtime locator is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Nop()
	}
	return &Scaffolder{
		ws:       opts.Workspace,
		runtime:  opts.Runtime,
		logger:   logger,
		recorder: opts.Recorder,
	}, nil
}

// Workspace returns the workspace the scaffolder operates on.
func (s *Scaffolder) Workspace() *workspace.Workspace { return s.ws }

// CreateProject creates an empty, compilable Java project. An existing
// project with the same name is deleted first.
//
// The project gets the Java nature, output folder bin, one library entry per
// system library of the default runtime and a source entry for src.
//
// Parameters:
//   - ctx: Context for file operations and runtime discovery
//   - name: Project name
//
// Returns:
//   - *javamodel.JavaProject: The configured project
//   - error: The first failing step; nothing is rolled back
func (s *Scaffolder) CreateProject(ctx context.Context, name string) (jp *javamodel.JavaProject, err error) {
	const op = "scaffold.CreateProject"
	defer s.observe(ctx, "create_project", time.Now(), &err)

	s.logger.Info(fmt.Sprintf("Creating %s project.", name), log.Str("project", name))

	project := s.ws.Project(name)
	if err := s.deleteProject(ctx, project); err != nil {
		return nil, coreerrors.Propagate(op, err)
	}
	if err := project.Create(ctx); err != nil {
		return nil, coreerrors.Propagate(op, err)
	}
	if err := project.Open(ctx); err != nil {
		return nil, coreerrors.Propagate(op, err)
	}
	if err := javamodel.SetJavaNature(ctx, project); err != nil {
		return nil, coreerrors.Propagate(op, err)
	}
	jp = javamodel.Create(project)

	bin := project.Folder(OutputFolder)
	if err := bin.Create(ctx, false); err != nil {
		return nil, coreerrors.Propagate(op, err)
	}
	if err := jp.SetOutputLocation(ctx, bin.FullPath()); err != nil {
		return nil, coreerrors.Propagate(op, err)
	}

	entries, err := s.libraryEntries(ctx)
	if err != nil {
		return nil, coreerrors.Propagate(op, err)
	}
	if err := jp.SetRawClasspath(ctx, entries); err != nil {
		return nil, coreerrors.Propagate(op, err)
	}

	src := project.Folder(SourceFolder)
	if err := src.Create(ctx, false); err != nil {
		return nil, coreerrors.Propagate(op, err)
	}
	root := jp.PackageFragmentRoot(src)
	current, err := jp.RawClasspath()
	if err != nil {
		return nil, coreerrors.Propagate(op, err)
	}
	if err := jp.SetRawClasspath(ctx, append(current, javamodel.NewSourceEntry(root.Path()))); err != nil {
		return nil, coreerrors.Propagate(op, err)
	}

	s.logger.Info(fmt.Sprintf("Finished creating %s project.", name), log.Str("project", name))
	return jp, nil
}

func (s *Scaffolder) libraryEntries(ctx context.Context) ([]javamodel.ClasspathEntry, error) {
	vm, err := s.runtime.DefaultVMInstall(ctx)
	if err != nil {
		return nil, err
	}
	libs, err := s.runtime.LibraryLocations(vm)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("default runtime resolved", log.Str("home", vm.Home), log.Int("libraries", len(libs)))

	entries := make([]javamodel.ClasspathEntry, 0, len(libs))
	for _, lib := range libs {
		entries = append(entries, javamodel.NewLibraryEntry(lib.SystemLibraryPath))
	}
	return entries, nil
}

// DeleteProject removes a project and its contents from disk. A project that
// does not exist is left alone.
func (s *Scaffolder) DeleteProject(ctx context.Context, project *workspace.Project) (err error) {
	defer s.observe(ctx, "delete_project", time.Now(), &err)
	if project == nil {
		return coreerrors.New(coreerrors.CodeInvalidArgument, "project is required")
	}
	return coreerrors.Propagate("scaffold.DeleteProject", s.deleteProject(ctx, project))
}

func (s *Scaffolder) deleteProject(ctx context.Context, project *workspace.Project) error {
	if !project.Exists() {
		return nil
	}
	s.logger.Info("Deleting existing project.", log.Str("project", project.Name()))
	if err := project.Delete(ctx); err != nil {
		return err
	}
	s.logger.Info("Finished deletion.", log.Str("project", project.Name()))
	return nil
}

// JavaProject opens an existing project of the workspace as a Java project.
//
// Returns:
//   - error: NOT_FOUND when the project is missing, INVALID_ARGUMENT when it
//     lacks the Java nature
func (s *Scaffolder) JavaProject(ctx context.Context, name string) (*javamodel.JavaProject, error) {
	const op = "scaffold.JavaProject"
	project := s.ws.Project(name)
	if err := project.Open(ctx); err != nil {
		return nil, coreerrors.Propagate(op, err)
	}
	jp := javamodel.Create(project)
	if !jp.Exists() {
		return nil, coreerrors.Newf(coreerrors.CodeInvalidArgument, "project %s is not a Java project", name)
	}
	return jp, nil
}

// GenerateClass writes an empty public class into a package of the project's
// src folder, creating the package when needed. The unit is never overwritten.
//
// Parameters:
//   - ctx: Context for file operations
//   - jp: Target project
//   - packageName: Dotted package name
//   - className: Simple class name; the file is className + ".java"
//
// Returns:
//   - *workspace.File: The new source file
//   - error: INVALID_ARGUMENT for bad names, ALREADY_EXISTS when the class exists
func (s *Scaffolder) GenerateClass(ctx context.Context, jp *javamodel.JavaProject, packageName, className string) (file *workspace.File, err error) {
	const op = "scaffold.GenerateClass"
	defer s.observe(ctx, "generate_class", time.Now(), &err)

	if jp == nil {
		return nil, coreerrors.New(coreerrors.CodeInvalidArgument, "project is required")
	}

	root := jp.PackageFragmentRoot(jp.Project().Folder(SourceFolder))
	pkg, err := root.CreatePackageFragment(ctx, packageName)
	if err != nil {
		return nil, coreerrors.Propagate(op, err)
	}

	unit, err := pkg.CreateCompilationUnit(ctx, className+javamodel.JavaExtension, classStub(pkg.ElementName(), className), false)
	if err != nil {
		return nil, coreerrors.Propagate(op, err)
	}

	s.logger.Debug("class generated", log.Str("package", pkg.ElementName()), log.Str("class", className))
	file, err = unit.UnderlyingResource()
	return file, coreerrors.Propagate(op, err)
}

// classStub renders the skeleton source. The package line ends in CRLF, the
// body in LF.
func classStub(packageName, className string) string {
	return "package " + packageName + ";\r\n\r\n" + "public class " + className + " {\n\n}\n"
}

// FormatGeneratedSources formats every compilation unit of the project's jca
// package. The first unit is opened in session and the format-all action of
// its editor runs over the whole package. Without units nothing happens.
//
// Returns:
//   - error: NOT_FOUND when the project is gone, UNAVAILABLE when no editor
//     becomes active, otherwise the formatter's error
func (s *Scaffolder) FormatGeneratedSources(ctx context.Context, jp *javamodel.JavaProject, session editor.Session) (err error) {
	const op = "scaffold.FormatGeneratedSources"
	defer s.observe(ctx, "format_generated_sources", time.Now(), &err)

	if jp == nil {
		return coreerrors.New(coreerrors.CodeInvalidArgument, "project is required")
	}
	project := jp.Project()
	if err := project.Refresh(ctx); err != nil {
		return coreerrors.Propagate(op, err)
	}
	if !project.Exists() {
		return coreerrors.Newf(coreerrors.CodeNotFound, "project %s does not exist", project.Name())
	}

	units, err := generatedUnits(jp)
	if err != nil {
		return coreerrors.Propagate(op, err)
	}
	if len(units) == 0 {
		s.logger.Info("No files found.", log.Str("project", project.Name()))
		return nil
	}

	if session == nil {
		return coreerrors.New(coreerrors.CodeUnavailable, "no editor session")
	}
	first, err := units[0].UnderlyingResource()
	if err != nil {
		return coreerrors.Propagate(op, err)
	}
	if err := session.Open(ctx, first); err != nil {
		return coreerrors.Propagate(op, err)
	}
	active := session.ActiveEditor()
	if active == nil {
		return coreerrors.New(coreerrors.CodeUnavailable, "no active editor")
	}

	s.logger.Debug("formatting generated sources", log.Str("project", project.Name()), log.Int("units", len(units)))
	return coreerrors.Propagate(op, editor.NewFormatAllAction(active.Site()).RunOnMultiple(ctx, units))
}

func generatedUnits(jp *javamodel.JavaProject) ([]*javamodel.CompilationUnit, error) {
	pkg, err := jp.FindPackageFragment(GeneratedPackage)
	if coreerrors.IsCode(err, coreerrors.CodeNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return pkg.CompilationUnits()
}

func (s *Scaffolder) observe(ctx context.Context, op string, start time.Time, err *error) {
	if s.recorder == nil {
		return
	}
	s.recorder.Record(ctx, op, time.Since(start), *err)
}
