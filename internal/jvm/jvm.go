// Package jvm locates the default Java runtime and its system libraries.
//
// Overview:
//   - Responsibility: Resolve the default VM install and enumerate its library locations
//   - Key Types: Locator, VMInstall, LibraryLocation
//   - Concurrency Model: Locator is immutable after construction and safe for concurrent use
//   - Error Semantics: NOT_FOUND when no runtime or library can be found, UNAVAILABLE when
//     the java launcher fails
//   - Performance Notes: Discovery through the launcher spawns one process per call
//
// Resolution order for the default VM: explicit home, $JAVA_HOME, then the
// java.home property reported by the java launcher on PATH.
//
// Usage:
//
//	locator := jvm.NewLocator(jvm.Options{Properties: toolrunner.NewRunner("")})
//	vm, err := locator.DefaultVMInstall(ctx)
//	libs, err := locator.LibraryLocations(vm)
package jvm

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	coreerrors "go.eggybyte.com/jscaffold/core/errors"
	"go.eggybyte.com/jscaffold/core/log"
	"go.eggybyte.com/jscaffold/internal/envloader"
)

// PropertyReader reports the system properties of a java launcher.
// toolrunner.Runner implements it.
type PropertyReader interface {
	JavaProperties(ctx context.Context, launcher string) (map[string]string, error)
}

// VMInstall describes an installed Java runtime.
type VMInstall struct {
	Home    string // Runtime home directory
	Name    string // Implementor and version when known, else the directory name
	Version string // JAVA_VERSION from the release file, if present
	Source  string // How the install was found: "explicit", "JAVA_HOME" or "launcher"
}

// LibraryLocation is one system library of a runtime.
type LibraryLocation struct {
	SystemLibraryPath string
}

// Options configures a Locator.
type Options struct {
	Home       string              // Explicit runtime home; wins over everything else
	Launcher   string              // Java launcher used for discovery (default "java")
	Properties PropertyReader      // Queries the launcher; nil disables launcher discovery
	Getenv     func(string) string // Environment lookup (default os.Getenv)
	Logger     log.Logger          // Optional logger
}

// Locator resolves the default VM install.
type Locator struct {
	opts Options
}

// NewLocator creates a locator.
func NewLocator(opts Options) *Locator {
	if opts.Launcher == "" {
		opts.Launcher = "java"
	}
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	if opts.Logger == nil {
		opts.Logger = log.Nop()
	}
	return &Locator{opts: opts}
}

// DefaultVMInstall returns the runtime to build projects against.
//
// Parameters:
//   - ctx: Context bounding launcher discovery
//
// Returns:
//   - *VMInstall: The resolved runtime
//   - error: NOT_FOUND when no runtime is configured or discoverable,
//     UNAVAILABLE when the launcher cannot be run
func (l *Locator) DefaultVMInstall(ctx context.Context) (*VMInstall, error) {
	const op = "jvm.DefaultVMInstall"

	if l.opts.Home != "" {
		return newVMInstall(l.opts.Home, "explicit", "")
	}
	if home := l.opts.Getenv("JAVA_HOME"); home != "" {
		if isDir(home) {
			return newVMInstall(home, "JAVA_HOME", "")
		}
		l.opts.Logger.Warn("JAVA_HOME does not point to a directory", log.Str("java_home", home))
	}
	if l.opts.Properties == nil {
		return nil, coreerrors.New(coreerrors.CodeNotFound, "no Java runtime configured: set JAVA_HOME or a runtime home")
	}

	props, err := l.opts.Properties.JavaProperties(ctx, l.opts.Launcher)
	if err != nil {
		return nil, coreerrors.Wrapf(coreerrors.CodeUnavailable, op, err, "failed to run %s", l.opts.Launcher)
	}
	home := props["java.home"]
	if home == "" {
		return nil, coreerrors.Newf(coreerrors.CodeNotFound, "%s did not report java.home", l.opts.Launcher)
	}
	l.opts.Logger.Debug("discovered Java runtime", log.Str("java_home", home))
	return newVMInstall(home, "launcher", props["java.version"])
}

// LibraryLocations returns the system libraries of vm.
func (l *Locator) LibraryLocations(vm *VMInstall) ([]LibraryLocation, error) {
	return LibraryLocations(vm)
}

// LibraryLocations returns the system libraries of a runtime. Modular
// runtimes (Java 9+) expose lib/jrt-fs.jar; older ones list the jars of
// jre/lib or lib with rt.jar first.
//
// Returns:
//   - error: INVALID_ARGUMENT for a nil install, NOT_FOUND when no library exists
func LibraryLocations(vm *VMInstall) ([]LibraryLocation, error) {
	if vm == nil {
		return nil, coreerrors.New(coreerrors.CodeInvalidArgument, "no VM install given")
	}

	jrtFS := filepath.Join(vm.Home, "lib", "jrt-fs.jar")
	if isFile(jrtFS) {
		return []LibraryLocation{{SystemLibraryPath: jrtFS}}, nil
	}

	for _, dir := range []string{filepath.Join(vm.Home, "jre", "lib"), filepath.Join(vm.Home, "lib")} {
		jars, err := filepath.Glob(filepath.Join(dir, "*.jar"))
		if err != nil || len(jars) == 0 {
			continue
		}
		sort.SliceStable(jars, func(i, j int) bool {
			ri, rj := filepath.Base(jars[i]) == "rt.jar", filepath.Base(jars[j]) == "rt.jar"
			if ri != rj {
				return ri
			}
			return jars[i] < jars[j]
		})

		locations := make([]LibraryLocation, 0, len(jars))
		for _, jar := range jars {
			locations = append(locations, LibraryLocation{SystemLibraryPath: jar})
		}
		return locations, nil
	}

	return nil, coreerrors.Newf(coreerrors.CodeNotFound, "no system libraries found in %s", vm.Home)
}

func newVMInstall(home, source, fallbackVersion string) (*VMInstall, error) {
	abs, err := filepath.Abs(home)
	if err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, "jvm.newVMInstall", err)
	}
	if !isDir(abs) {
		return nil, coreerrors.Newf(coreerrors.CodeNotFound, "Java runtime home %s does not exist", abs)
	}

	vm := &VMInstall{Home: abs, Name: filepath.Base(abs), Version: fallbackVersion, Source: source}
	if release := readRelease(abs); release != nil {
		if v := release["JAVA_VERSION"]; v != "" {
			vm.Version = v
		}
		if impl := release["IMPLEMENTOR"]; impl != "" && vm.Version != "" {
			vm.Name = impl + " " + vm.Version
		}
	}
	return vm, nil
}

// readRelease loads the release file of a JDK. A JRE inside a JDK 8 keeps
// it one level up.
func readRelease(home string) map[string]string {
	for _, candidate := range []string{filepath.Join(home, "release"), filepath.Join(filepath.Dir(home), "release")} {
		if !isFile(candidate) {
			continue
		}
		release, err := envloader.LoadEnvFile(candidate)
		if err == nil {
			return release
		}
	}
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
