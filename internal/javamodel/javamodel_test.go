package javamodel

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	coreerrors "go.eggybyte.com/jscaffold/core/errors"
	"go.eggybyte.com/jscaffold/internal/workspace"
	"go.eggybyte.com/jscaffold/testingx"
)

func newJavaProject(t *testing.T, name string) *JavaProject {
	t.Helper()
	ctx := context.Background()
	ws, err := workspace.Open(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	project := ws.Project(name)
	testingx.AssertNoError(t, project.Create(ctx))
	testingx.AssertNoError(t, project.Open(ctx))
	return Create(project)
}

func TestSetJavaNature(t *testing.T) {
	jp := newJavaProject(t, "Demo")
	if jp.Exists() {
		t.Fatal("project should not be a Java project before the nature is set")
	}

	testingx.AssertNoError(t, SetJavaNature(context.Background(), jp.Project()))

	desc, err := jp.Project().Description()
	testingx.AssertNoError(t, err)
	if !reflect.DeepEqual(desc.NatureIDs(), []string{NatureID}) {
		t.Errorf("natures = %v", desc.NatureIDs())
	}
	if !desc.HasBuilder(BuilderID) {
		t.Error("Java builder not registered")
	}
	if !jp.Exists() {
		t.Error("Exists() should be true once the nature is set")
	}
}

func TestClasspath(t *testing.T) {
	ctx := context.Background()
	jp := newJavaProject(t, "Demo")

	entries, err := jp.RawClasspath()
	testingx.AssertNoError(t, err)
	if len(entries) != 0 {
		t.Errorf("fresh project classpath = %v", entries)
	}
	output, err := jp.OutputLocation()
	testingx.AssertNoError(t, err)
	if output != "/Demo/bin" {
		t.Errorf("default output = %s", output)
	}

	testingx.AssertNoError(t, jp.SetOutputLocation(ctx, "/Demo/classes"))
	want := []ClasspathEntry{
		NewLibraryEntry("/opt/jdk/lib/jrt-fs.jar"),
		NewContainerEntry("org.eclipse.jdt.launching.JRE_CONTAINER"),
		NewSourceEntry("/Demo/src"),
	}
	testingx.AssertNoError(t, jp.SetRawClasspath(ctx, want))

	got, err := jp.RawClasspath()
	testingx.AssertNoError(t, err)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RawClasspath() = %v, want %v", got, want)
	}
	output, _ = jp.OutputLocation()
	if output != "/Demo/classes" {
		t.Errorf("output location not kept: %s", output)
	}

	data, err := os.ReadFile(filepath.Join(jp.Project().Location(), ClasspathFile))
	testingx.AssertNoError(t, err)
	text := string(data)
	for _, fragment := range []string{
		`kind="src" path="src"`,
		`kind="output" path="classes"`,
		`kind="lib" path="/opt/jdk/lib/jrt-fs.jar"`,
	} {
		if !strings.Contains(text, fragment) {
			t.Errorf(".classpath missing %s:\n%s", fragment, text)
		}
	}
}

func TestClasspathValidation(t *testing.T) {
	ctx := context.Background()
	jp := newJavaProject(t, "Demo")

	tests := []struct {
		name    string
		entries []ClasspathEntry
	}{
		{"source outside project", []ClasspathEntry{NewSourceEntry("/Other/src")}},
		{"duplicate", []ClasspathEntry{NewSourceEntry("/Demo/src"), NewSourceEntry("/Demo/src")}},
		{"empty library", []ClasspathEntry{NewLibraryEntry("")}},
		{"unknown kind", []ClasspathEntry{{Kind: "var", Path: "JRE_LIB"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testingx.AssertError(t, jp.SetRawClasspath(ctx, tt.entries), coreerrors.CodeInvalidArgument)
		})
	}

	testingx.AssertError(t, jp.SetOutputLocation(ctx, "/Other/bin"), coreerrors.CodeInvalidArgument)
}

func TestPackageFragments(t *testing.T) {
	ctx := context.Background()
	jp := newJavaProject(t, "Demo")
	src := jp.Project().Folder("src")
	root := jp.PackageFragmentRoot(src)

	_, err := root.CreatePackageFragment(ctx, "com.example")
	testingx.AssertError(t, err, coreerrors.CodeNotFound)

	testingx.AssertNoError(t, src.Create(ctx, false))
	pkg, err := root.CreatePackageFragment(ctx, "com.example")
	testingx.AssertNoError(t, err)
	if pkg.ElementName() != "com.example" || !pkg.Exists() {
		t.Fatalf("package = %q exists=%v", pkg.ElementName(), pkg.Exists())
	}
	if pkg.Resource().FullPath() != "/Demo/src/com/example" {
		t.Errorf("package folder = %s", pkg.Resource().FullPath())
	}

	again, err := root.CreatePackageFragment(ctx, "com.example")
	testingx.AssertNoError(t, err)
	if again.ElementName() != "com.example" {
		t.Errorf("re-created package = %q", again.ElementName())
	}

	for _, bad := range []string{"com..example", ".com", "com.class", "1abc", " com"} {
		_, err := root.CreatePackageFragment(ctx, bad)
		testingx.AssertError(t, err, coreerrors.CodeInvalidArgument)
	}
}

func TestCompilationUnits(t *testing.T) {
	ctx := context.Background()
	jp := newJavaProject(t, "Demo")
	src := jp.Project().Folder("src")
	testingx.AssertNoError(t, src.Create(ctx, false))
	pkg, err := jp.PackageFragmentRoot(src).CreatePackageFragment(ctx, "jca")
	testingx.AssertNoError(t, err)

	for _, name := range []string{"B.java", "A.java"} {
		_, err := pkg.CreateCompilationUnit(ctx, name, "class "+strings.TrimSuffix(name, ".java")+" {}", false)
		testingx.AssertNoError(t, err)
	}
	testingx.AssertNoError(t, pkg.Resource().File("notes.txt").Create(ctx, nil, false))

	_, err = pkg.CreateCompilationUnit(ctx, "A.java", "class A {}", false)
	testingx.AssertError(t, err, coreerrors.CodeAlreadyExists)
	_, err = pkg.CreateCompilationUnit(ctx, "A.txt", "", false)
	testingx.AssertError(t, err, coreerrors.CodeInvalidArgument)

	units, err := pkg.CompilationUnits()
	testingx.AssertNoError(t, err)
	if len(units) != 2 || units[0].ElementName() != "A.java" || units[1].ElementName() != "B.java" {
		t.Fatalf("CompilationUnits() = %v", units)
	}

	file, err := units[0].UnderlyingResource()
	testingx.AssertNoError(t, err)
	if file.FullPath() != "/Demo/src/jca/A.java" {
		t.Errorf("underlying resource = %s", file.FullPath())
	}
	source, err := units[0].Source()
	testingx.AssertNoError(t, err)
	if source != "class A {}" {
		t.Errorf("Source() = %q", source)
	}

	_, err = pkg.CompilationUnit("Missing.java").UnderlyingResource()
	testingx.AssertError(t, err, coreerrors.CodeNotFound)
}

func TestFindPackageFragment(t *testing.T) {
	ctx := context.Background()
	jp := newJavaProject(t, "Demo")
	for _, name := range []string{"src", "gen"} {
		testingx.AssertNoError(t, jp.Project().Folder(name).Create(ctx, false))
	}
	testingx.AssertNoError(t, jp.SetRawClasspath(ctx, []ClasspathEntry{
		NewSourceEntry("/Demo/src"),
		NewSourceEntry("/Demo/gen"),
	}))

	_, err := jp.FindPackageFragment("jca")
	testingx.AssertError(t, err, coreerrors.CodeNotFound)

	_, err = jp.PackageFragmentRoot(jp.Project().Folder("gen")).CreatePackageFragment(ctx, "jca")
	testingx.AssertNoError(t, err)

	pkg, err := jp.FindPackageFragment("jca")
	testingx.AssertNoError(t, err)
	if pkg.Root().Path() != "/Demo/gen" {
		t.Errorf("found package in %s, want /Demo/gen", pkg.Root().Path())
	}
}

func TestConventions(t *testing.T) {
	valid := []string{"Foo", "_foo", "$x", "Ünicode", "a1"}
	for _, name := range valid {
		if err := ValidateIdentifier(name); err != nil {
			t.Errorf("ValidateIdentifier(%q) = %v", name, err)
		}
	}
	invalid := []string{"", "1a", "a-b", "class", "true", "null", "_"}
	for _, name := range invalid {
		testingx.AssertError(t, ValidateIdentifier(name), coreerrors.CodeInvalidArgument)
	}

	testingx.AssertNoError(t, ValidatePackageName("com.example.jca"))
	testingx.AssertError(t, ValidatePackageName(""), coreerrors.CodeInvalidArgument)
	testingx.AssertError(t, ValidatePackageName("com."), coreerrors.CodeInvalidArgument)

	testingx.AssertNoError(t, ValidateCompilationUnitName("Foo.java"))
	testingx.AssertError(t, ValidateCompilationUnitName("Foo"), coreerrors.CodeInvalidArgument)
	testingx.AssertError(t, ValidateCompilationUnitName("int.java"), coreerrors.CodeInvalidArgument)
}
