// Package editor provides the editor session used to format generated sources.
//
// Overview:
//   - Responsibility: Track the active editor and run the format-all action on compilation units
//   - Key Types: Session, Editor, Site, FormatAllAction, ToolSession
//   - Concurrency Model: ToolSession guards its active editor with a mutex
//   - Error Semantics: UNAVAILABLE without an active editor or formatter binary,
//     INTERNAL when the formatter rejects a file
//   - Performance Notes: All units are formatted in a single formatter invocation
//
// Usage:
//
//	session, err := editor.NewToolSession(runner, "google-java-format --replace", logger)
//	err = session.Open(ctx, file)
//	action := editor.NewFormatAllAction(session.ActiveEditor().Site())
//	err = action.RunOnMultiple(ctx, units)
package editor

import (
	"context"

	coreerrors "go.eggybyte.com/jscaffold/core/errors"
	"go.eggybyte.com/jscaffold/internal/javamodel"
	"go.eggybyte.com/jscaffold/internal/workspace"
)

// DefaultFormatter is the formatter command used when none is configured.
const DefaultFormatter = "google-java-format --replace"

// Session is an editing session holding at most one active editor.
type Session interface {
	// Open opens file in an editor and makes that editor active.
	Open(ctx context.Context, file *workspace.File) error
	// ActiveEditor returns the active editor, or nil when none is open.
	ActiveEditor() Editor
}

// Editor is an open editor on a file.
type Editor interface {
	File() *workspace.File
	Site() Site
}

// Site is the environment editor actions run in.
type Site interface {
	// Format rewrites the given files in place.
	Format(ctx context.Context, files []*workspace.File) error
}

// FormatAllAction formats a set of compilation units.
type FormatAllAction struct {
	site Site
}

// NewFormatAllAction creates the action for an editor site.
func NewFormatAllAction(site Site) *FormatAllAction {
	return &FormatAllAction{site: site}
}

// RunOnMultiple formats every unit. Units must exist.
//
// Parameters:
//   - ctx: Context for the formatter run
//   - units: Compilation units to format; an empty list is a no-op
//
// Returns:
//   - error: UNAVAILABLE without a site, NOT_FOUND for a missing unit,
//     otherwise the site's error
func (a *FormatAllAction) RunOnMultiple(ctx context.Context, units []*javamodel.CompilationUnit) error {
	const op = "editor.FormatAllAction.RunOnMultiple"
	if a.site == nil {
		return coreerrors.New(coreerrors.CodeUnavailable, "format action has no editor site")
	}
	if len(units) == 0 {
		return nil
	}

	files := make([]*workspace.File, 0, len(units))
	for _, unit := range units {
		file, err := unit.UnderlyingResource()
		if err != nil {
			return coreerrors.Propagate(op, err)
		}
		files = append(files, file)
	}
	return coreerrors.Propagate(op, a.site.Format(ctx, files))
}
