package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"go.eggybyte.com/jscaffold/internal/jvm"
	"go.eggybyte.com/jscaffold/internal/toolrunner"
	"go.eggybyte.com/jscaffold/internal/ui"
)

func newDoctorCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the scaffolding environment",
		Long: `Check that projects can be created and formatted.

This command verifies:
  • Configuration can be loaded and validated
  • The workspace directory is writable
  • A Java runtime and its system libraries can be found
  • The java launcher and the configured formatter are on PATH (warning only)

Example:
  jscaffold doctor`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(c, cmd)
		},
	}
}

func runDoctor(c *cli, cmd *cobra.Command) error {
	ctx := cmd.Context()
	separator := strings.Repeat("=", 60)

	ui.Info("jscaffold Environment Diagnostics")
	ui.Info("%s", separator)
	ui.Info("  OS/Arch:    %s/%s", runtime.GOOS, runtime.GOARCH)
	ui.Info("  Go Version: %s", runtime.Version())
	ui.Info("")

	const total = 4
	hasErrors, hasWarnings := false, false

	ui.Step(1, total, "Configuration")
	app, err := c.application(cmd)
	if err != nil {
		ui.Error("  [x] %v", err)
		return fmt.Errorf("environment check failed")
	}
	ui.Success("  [+] Loaded (workspace %s)", app.cfg.Workspace)

	ui.Step(2, total, "Workspace")
	if err := checkWorkspace(app.cfg.Workspace); err != nil {
		ui.Error("  [x] %v", err)
		hasErrors = true
	} else {
		ui.Success("  [+] Writable")
	}

	ui.Step(3, total, "Java runtime")
	if vm, libs, err := checkRuntime(ctx, app.jvmLocator()); err != nil {
		ui.Error("  [x] %v", err)
		hasErrors = true
	} else {
		ui.Success("  [+] %s (%s, found via %s)", vm.Name, vm.Home, vm.Source)
		ui.Info("      %d system librar%s", len(libs), plural(len(libs), "y", "ies"))
	}

	ui.Step(4, total, "External tools")
	if tools, err := checkTools(app.cfg); err != nil {
		ui.Warning("  [!] %v", err)
		hasWarnings = true
	} else {
		ui.Success("  [+] %s", strings.Join(tools, ", "))
	}

	ui.Info("%s", separator)
	switch {
	case hasErrors:
		ui.Error("Diagnostics completed with ERRORS")
		return fmt.Errorf("environment check failed")
	case hasWarnings:
		ui.Warning("Diagnostics completed with WARNINGS")
		ui.Info("Projects can be created, but runtime discovery or formatting may fail.")
	default:
		ui.Success("All checks passed - environment ready")
	}
	return nil
}

// checkWorkspace creates the workspace root if needed and probes it with a temporary file.
func checkWorkspace(root string) error {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("cannot create workspace %s: %w", root, err)
	}
	probe, err := os.CreateTemp(root, ".jscaffold-doctor-*")
	if err != nil {
		return fmt.Errorf("workspace %s is not writable: %w", root, err)
	}
	name := probe.Name()
	probe.Close()
	return os.Remove(filepath.Clean(name))
}

func checkRuntime(ctx context.Context, locator *jvm.Locator) (*jvm.VMInstall, []jvm.LibraryLocation, error) {
	vm, err := locator.DefaultVMInstall(ctx)
	if err != nil {
		return nil, nil, err
	}
	libs, err := locator.LibraryLocations(vm)
	if err != nil {
		return nil, nil, err
	}
	return vm, libs, nil
}

// checkTools verifies that the java launcher and the formatter binary resolve on PATH.
func checkTools(cfg Config) ([]string, error) {
	formatter, _, err := toolrunner.SplitCommand(cfg.Formatter)
	if err != nil {
		return nil, fmt.Errorf("invalid formatter command: %w", err)
	}
	tools := []string{cfg.JavaLauncher, formatter}
	if err := toolrunner.CheckRequiredTools(tools...); err != nil {
		return nil, err
	}
	return tools, nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
