package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"go.eggybyte.com/jscaffold/configx"
	"go.eggybyte.com/jscaffold/core/log"
	"go.eggybyte.com/jscaffold/internal/editor"
	"go.eggybyte.com/jscaffold/internal/jvm"
	"go.eggybyte.com/jscaffold/internal/scaffold"
	"go.eggybyte.com/jscaffold/internal/toolrunner"
	"go.eggybyte.com/jscaffold/internal/version"
	"go.eggybyte.com/jscaffold/internal/workspace"
	"go.eggybyte.com/jscaffold/logx"
	"go.eggybyte.com/jscaffold/obsx"
)

const (
	envPrefix         = "JSCAFFOLD_"
	defaultConfigFile = "jscaffold.yaml"
	defaultDotenvFile = ".env"
)

// Config is the jscaffold configuration. Keys are read from the config file,
// the dotenv file and JSCAFFOLD_* variables, in that order; flags win.
type Config struct {
	Workspace    string `env:"WORKSPACE" default:"." validate:"required"`
	JavaHome     string `env:"JAVA_HOME"`
	JavaLauncher string `env:"JAVA_LAUNCHER" default:"java" validate:"required"`
	Formatter    string `env:"FORMATTER" default:"google-java-format --replace" validate:"required"`
	LogLevel     string `env:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	LogFormat    string `env:"LOG_FORMAT" default:"console" validate:"oneof=logfmt json console"`
	LogTimestamp bool   `env:"LOG_TIMESTAMP"`
	MetricsFile  string `env:"METRICS_FILE"`
}

// application holds the dependencies shared by commands.
type application struct {
	cfg      Config
	logger   log.Logger
	runner   *toolrunner.Runner
	metrics  *obsx.Provider
	recorder *obsx.Recorder

	scaffolder *scaffold.Scaffolder
	locator    *jvm.Locator
}

// application builds the dependencies on first use.
func (c *cli) application(cmd *cobra.Command) (*application, error) {
	if c.app != nil {
		return c.app, nil
	}
	ctx := cmd.Context()

	cfg, err := c.loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	level, err := logx.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	runID := uuid.NewString()
	logger := logx.New(
		logx.WithFormat(logx.Format(cfg.LogFormat)),
		logx.WithLevel(level),
		logx.WithWriter(c.stderr),
		logx.WithColor(cfg.LogFormat == string(logx.FormatConsole) && isTerminal(c.stderr)),
		logx.WithTimestamp(cfg.LogTimestamp),
	).With(log.Str("run_id", runID))

	runner := toolrunner.NewRunner("")
	runner.SetVerbose(c.opts.verbose)
	if cfg.JavaHome != "" {
		runner.SetEnv([]string{"JAVA_HOME=" + cfg.JavaHome})
	}

	provider, err := obsx.NewProvider(ctx, obsx.Options{
		ServiceName:    "jscaffold",
		ServiceVersion: version.Version,
		ResourceAttrs: map[string]string{
			"service.instance.id": runID,
			"workspace":           cfg.Workspace,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}
	recorder, err := obsx.NewRecorder(provider)
	if err != nil {
		_ = provider.Shutdown(ctx)
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	c.app = &application{
		cfg:      cfg,
		logger:   logger,
		runner:   runner,
		metrics:  provider,
		recorder: recorder,
	}
	logger.Debug("configuration loaded", log.Str("workspace", cfg.Workspace), log.Str("log_format", cfg.LogFormat))
	return c.app, nil
}

// loadConfig merges every configuration source and binds the result.
func (c *cli) loadConfig(ctx context.Context) (Config, error) {
	configFile, optional := c.opts.configFile, false
	if configFile == "" {
		configFile, optional = defaultConfigFile, true
	}

	dotenvFile := defaultDotenvFile
	for _, kv := range c.environ() {
		if v, ok := strings.CutPrefix(kv, envPrefix+"DOTENV="); ok && v != "" {
			dotenvFile = v
		}
	}

	overrides := map[string]string{}
	if c.opts.workspace != "" {
		overrides["WORKSPACE"] = c.opts.workspace
	}
	if c.opts.metricsFile != "" {
		overrides["METRICS_FILE"] = c.opts.metricsFile
	}
	if c.opts.verbose {
		overrides["LOG_LEVEL"] = "debug"
	}

	manager, err := configx.NewManager(ctx, configx.Options{
		Sources: []configx.Source{
			configx.NewFileSource(configFile, configx.FileOptions{Optional: optional}),
			configx.NewDotenvSource(dotenvFile, configx.DotenvOptions{Prefix: envPrefix, Optional: true}),
			configx.NewEnvSource(configx.EnvOptions{Prefix: envPrefix, Environ: c.environ}),
			configx.NewMapSource(overrides),
		},
	})
	if err != nil {
		return Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}

	var cfg Config
	if err := manager.Bind(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	if abs, err := filepath.Abs(cfg.Workspace); err == nil {
		cfg.Workspace = abs
	}
	return cfg, nil
}

// jvmLocator returns the runtime locator for the configured JDK.
func (a *application) jvmLocator() *jvm.Locator {
	if a.locator == nil {
		a.locator = jvm.NewLocator(jvm.Options{
			Home:       a.cfg.JavaHome,
			Launcher:   a.cfg.JavaLauncher,
			Properties: a.runner,
			Logger:     a.logger,
		})
	}
	return a.locator
}

// scaffold opens the workspace and returns the scaffolder on first use.
func (a *application) scaffold() (*scaffold.Scaffolder, error) {
	if a.scaffolder != nil {
		return a.scaffolder, nil
	}
	ws, err := workspace.Open(a.cfg.Workspace, a.logger)
	if err != nil {
		return nil, err
	}
	s, err := scaffold.New(scaffold.Options{
		Workspace: ws,
		Runtime:   a.jvmLocator(),
		Logger:    a.logger,
		Recorder:  a.recorder,
	})
	if err != nil {
		return nil, err
	}
	a.scaffolder = s
	return s, nil
}

// editorSession starts a formatter-backed editor session.
func (a *application) editorSession() (*editor.ToolSession, error) {
	return editor.NewToolSession(a.runner, a.cfg.Formatter, a.logger)
}

// observe records a pure operation run by the CLI itself.
func (a *application) observe(ctx context.Context, op string, start time.Time, err error) {
	a.recorder.Record(ctx, op, time.Since(start), err)
}

// close writes the metrics file when configured and shuts the provider down.
func (c *cli) close(ctx context.Context) error {
	if c.app == nil {
		return nil
	}
	app := c.app
	c.app = nil

	var writeErr error
	if app.cfg.MetricsFile != "" {
		writeErr = app.metrics.WriteTextfile(app.cfg.MetricsFile)
		if writeErr != nil {
			writeErr = fmt.Errorf("failed to write metrics file: %w", writeErr)
		} else {
			app.logger.Debug("metrics written", log.Str("path", app.cfg.MetricsFile))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := app.metrics.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(err, "metrics shutdown failed")
	}
	return writeErr
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
