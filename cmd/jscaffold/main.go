// Package main provides the jscaffold CLI tool entry point.
//
// Overview:
//   - Responsibility: CLI command parsing and execution
//   - Key Types: Cobra command tree, cli state, application dependencies
//   - Concurrency Model: Single-threaded CLI execution
//   - Error Semantics: Exit code 1 and a user-facing message on failure
//   - Performance Notes: Dependencies are built lazily per command
//
// Usage:
//
//	jscaffold [command] [flags]
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"go.eggybyte.com/jscaffold/internal/ui"
	"go.eggybyte.com/jscaffold/internal/version"
)

// globalOptions holds the persistent flags.
type globalOptions struct {
	workspace      string
	configFile     string
	metricsFile    string
	verbose        bool
	nonInteractive bool
	jsonOutput     bool
}

// cli is the state of one command-line invocation.
type cli struct {
	opts    globalOptions
	stdout  io.Writer
	stderr  io.Writer
	environ func() []string
	app     *application
}

// newRootCmd builds the command tree for c.
func newRootCmd(c *cli) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jscaffold",
		Short: "Java project scaffolding for generated tests",
		Long: `jscaffold prepares throw-away Java projects inside an Eclipse-compatible workspace.

This tool provides commands for:
- Creating and deleting Java projects (src, bin, default runtime classpath)
- Generating class stubs into a package
- Formatting the generated jca package with an external formatter
- Mapping primitive type names to their default literals

Configuration is read from jscaffold.yaml, .env and JSCAFFOLD_* variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ui.SetVerbose(c.opts.verbose)
			ui.SetNonInteractive(c.opts.nonInteractive)
			ui.SetJSONOutput(c.opts.jsonOutput)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.opts.workspace, "workspace", "w", "", "Workspace root directory (default \".\")")
	flags.StringVarP(&c.opts.configFile, "config", "c", "", "Configuration file (default jscaffold.yaml when present)")
	flags.StringVar(&c.opts.metricsFile, "metrics-file", "", "Write operation metrics in Prometheus text format to this file")
	flags.BoolVarP(&c.opts.verbose, "verbose", "V", false, "Enable verbose output")
	flags.BoolVar(&c.opts.nonInteractive, "non-interactive", false, "Disable interactive prompts")
	flags.BoolVar(&c.opts.jsonOutput, "json", false, "Output in JSON format")

	rootCmd.Version = version.GetVersionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.SetOut(c.stdout)
	rootCmd.SetErr(c.stderr)

	rootCmd.AddCommand(
		newProjectCmd(c),
		newClassCmd(c),
		newFormatCmd(c),
		newLiteralCmd(c),
		newSimpleNameCmd(c),
		newDoctorCmd(c),
		newVersionCmd(),
	)
	return rootCmd
}

// run executes one invocation and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, environ func() []string) int {
	ui.SetOutput(stdout, stderr)
	ui.SetInput(stdin)
	c := &cli{stdout: stdout, stderr: stderr, environ: environ}

	rootCmd := newRootCmd(c)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)

	if closeErr := c.close(context.WithoutCancel(ctx)); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		ui.Error("Command failed: %v", err)
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Environ)
	stop()
	os.Exit(code)
}
