package editor

import (
	"context"
	"errors"
	"testing"

	coreerrors "go.eggybyte.com/jscaffold/core/errors"
	"go.eggybyte.com/jscaffold/internal/javamodel"
	"go.eggybyte.com/jscaffold/internal/toolrunner"
	"go.eggybyte.com/jscaffold/internal/workspace"
	"go.eggybyte.com/jscaffold/testingx"
)

type recordingExecutor struct {
	calls  [][]string
	result *toolrunner.CommandResult
	err    error
}

func (r *recordingExecutor) Exec(ctx context.Context, name string, args ...string) (*toolrunner.CommandResult, error) {
	r.calls = append(r.calls, append([]string{name}, args...))
	if r.result == nil {
		return &toolrunner.CommandResult{}, r.err
	}
	return r.result, r.err
}

func generatedUnits(t *testing.T, names ...string) []*javamodel.CompilationUnit {
	t.Helper()
	ctx := context.Background()
	ws, err := workspace.Open(t.TempDir(), nil)
	testingx.AssertNoError(t, err)
	project := ws.Project("Demo")
	testingx.AssertNoError(t, project.Create(ctx))
	src := project.Folder("src")
	testingx.AssertNoError(t, src.Create(ctx, false))

	pkg, err := javamodel.Create(project).PackageFragmentRoot(src).CreatePackageFragment(ctx, "jca")
	testingx.AssertNoError(t, err)
	var units []*javamodel.CompilationUnit
	for _, name := range names {
		unit, err := pkg.CreateCompilationUnit(ctx, name+".java", "class "+name+"{}", false)
		testingx.AssertNoError(t, err)
		units = append(units, unit)
	}
	return units
}

func TestToolSession_FormatAll(t *testing.T) {
	ctx := context.Background()
	units := generatedUnits(t, "A", "B")
	exec := &recordingExecutor{}
	logger := testingx.NewMockLogger(t)
	session, err := NewToolSession(exec, "", logger)
	testingx.AssertNoError(t, err)

	if session.ActiveEditor() != nil {
		t.Fatal("new session should have no active editor")
	}

	first, _ := units[0].UnderlyingResource()
	testingx.AssertNoError(t, session.Open(ctx, first))
	active := session.ActiveEditor()
	if active == nil || active.File().FullPath() != "/Demo/src/jca/A.java" {
		t.Fatalf("active editor = %v", active)
	}

	testingx.AssertNoError(t, NewFormatAllAction(active.Site()).RunOnMultiple(ctx, units))

	if len(exec.calls) != 1 {
		t.Fatalf("expected one formatter run, got %v", exec.calls)
	}
	call := exec.calls[0]
	second, _ := units[1].UnderlyingResource()
	want := []string{"google-java-format", "--replace", first.Location(), second.Location()}
	if len(call) != len(want) {
		t.Fatalf("call = %v, want %v", call, want)
	}
	for i := range want {
		if call[i] != want[i] {
			t.Errorf("call[%d] = %s, want %s", i, call[i], want[i])
		}
	}

	logger.AssertField("DEBUG", "editor opened", "file", "/Demo/src/jca/A.java")
	logger.AssertField("DEBUG", "formatting sources", "files", 2)

	session.Close()
	if session.ActiveEditor() != nil {
		t.Error("Close() should clear the active editor")
	}
	if len(session.OpenedFiles()) != 1 {
		t.Errorf("OpenedFiles() = %v", session.OpenedFiles())
	}
}

func TestToolSession_Errors(t *testing.T) {
	ctx := context.Background()
	units := generatedUnits(t, "A")
	file, _ := units[0].UnderlyingResource()

	_, err := NewToolSession(nil, "", nil)
	testingx.AssertError(t, err, coreerrors.CodeInvalidArgument)
	_, err = NewToolSession(&recordingExecutor{}, `"unterminated`, nil)
	testingx.AssertError(t, err, coreerrors.CodeInvalidArgument)

	session, _ := NewToolSession(&recordingExecutor{}, "fmt", nil)
	testingx.AssertError(t, session.Open(ctx, file.Parent().File("Missing.java")), coreerrors.CodeNotFound)

	missing := &recordingExecutor{result: &toolrunner.CommandResult{ExitCode: -1}, err: errors.New("not found")}
	session, _ = NewToolSession(missing, "fmt", nil)
	testingx.AssertNoError(t, session.Open(ctx, file))
	err = NewFormatAllAction(session.ActiveEditor().Site()).RunOnMultiple(ctx, units)
	testingx.AssertError(t, err, coreerrors.CodeUnavailable)

	rejecting := &recordingExecutor{result: &toolrunner.CommandResult{ExitCode: 1}, err: errors.New("syntax error")}
	session, _ = NewToolSession(rejecting, "fmt", nil)
	testingx.AssertNoError(t, session.Open(ctx, file))
	err = NewFormatAllAction(session.ActiveEditor().Site()).RunOnMultiple(ctx, units)
	testingx.AssertError(t, err, coreerrors.CodeInternal)
}

func TestFormatAllAction_Guards(t *testing.T) {
	ctx := context.Background()
	testingx.AssertError(t, NewFormatAllAction(nil).RunOnMultiple(ctx, nil), coreerrors.CodeUnavailable)

	exec := &recordingExecutor{}
	session, _ := NewToolSession(exec, "fmt", nil)
	site := toolSite{session: session}
	testingx.AssertNoError(t, NewFormatAllAction(site).RunOnMultiple(ctx, nil))
	if len(exec.calls) != 0 {
		t.Error("empty unit list must not run the formatter")
	}

	units := generatedUnits(t, "A")
	gone := units[0].Parent().CompilationUnit("Gone.java")
	err := NewFormatAllAction(site).RunOnMultiple(ctx, []*javamodel.CompilationUnit{gone})
	testingx.AssertError(t, err, coreerrors.CodeNotFound)
}
