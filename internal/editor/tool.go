package editor

import (
	"context"
	"sync"

	coreerrors "go.eggybyte.com/jscaffold/core/errors"
	"go.eggybyte.com/jscaffold/core/log"
	"go.eggybyte.com/jscaffold/internal/toolrunner"
	"go.eggybyte.com/jscaffold/internal/workspace"
)

// ToolSession is a headless session that formats files with an external
// command such as google-java-format.
type ToolSession struct {
	executor toolrunner.Executor
	command  string
	args     []string
	logger   log.Logger

	mu     sync.Mutex
	active *toolEditor
	opened []*workspace.File
}

// NewToolSession creates a session running command through executor. The
// file paths are appended to the command's arguments.
//
// Parameters:
//   - executor: Runs the formatter
//   - command: Formatter command line; empty selects DefaultFormatter
//   - logger: Optional logger
//
// Returns:
//   - error: INVALID_ARGUMENT for a nil executor or malformed command
func NewToolSession(executor toolrunner.Executor, command string, logger log.Logger) (*ToolSession, error) {
	if executor == nil {
		return nil, coreerrors.New(coreerrors.CodeInvalidArgument, "tool session needs an executor")
	}
	if command == "" {
		command = DefaultFormatter
	}
	name, args, err := toolrunner.SplitCommand(command)
	if err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInvalidArgument, "editor.NewToolSession", err)
	}
	if logger == nil {
		logger = log.Nop()
	}

	return &ToolSession{
		executor: executor,
		command:  name,
		args:     args,
		logger:   logger,
	}, nil
}

// Open makes file the active editor.
//
// Returns:
//   - error: NOT_FOUND when the file does not exist
func (s *ToolSession) Open(ctx context.Context, file *workspace.File) error {
	if err := ctx.Err(); err != nil {
		return coreerrors.Wrap(coreerrors.CodeUnavailable, "editor.ToolSession.Open", err)
	}
	if file == nil || !file.Exists() {
		return coreerrors.New(coreerrors.CodeNotFound, "cannot open a missing file")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = &toolEditor{file: file, session: s}
	s.opened = append(s.opened, file)
	s.logger.Debug("editor opened", log.Str("file", file.FullPath()))
	return nil
}

// ActiveEditor returns the active editor or nil.
func (s *ToolSession) ActiveEditor() Editor {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return nil
	}
	return s.active
}

// OpenedFiles returns the files opened in this session, oldest first.
func (s *ToolSession) OpenedFiles() []*workspace.File {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*workspace.File(nil), s.opened...)
}

// Close closes the active editor.
func (s *ToolSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = nil
}

func (s *ToolSession) format(ctx context.Context, files []*workspace.File) error {
	const op = "editor.ToolSession.Format"

	args := append([]string(nil), s.args...)
	for _, f := range files {
		args = append(args, f.Location())
	}

	s.logger.Debug("formatting sources", log.Str("formatter", s.command), log.Int("files", len(files)))
	result, err := s.executor.Exec(ctx, s.command, args...)
	if err != nil {
		if result == nil || result.ExitCode < 0 {
			return coreerrors.Wrapf(coreerrors.CodeUnavailable, op, err, "formatter %s could not be run", s.command)
		}
		return coreerrors.Wrapf(coreerrors.CodeInternal, op, err, "formatter %s failed", s.command)
	}
	return nil
}

type toolEditor struct {
	file    *workspace.File
	session *ToolSession
}

func (e *toolEditor) File() *workspace.File { return e.file }

func (e *toolEditor) Site() Site { return toolSite{session: e.session} }

type toolSite struct {
	session *ToolSession
}

func (s toolSite) Format(ctx context.Context, files []*workspace.File) error {
	return s.session.format(ctx, files)
}
