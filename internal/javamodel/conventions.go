package javamodel

import (
	"strings"
	"unicode"

	coreerrors "go.eggybyte.com/jscaffold/core/errors"
)

// JavaExtension is the compilation unit file extension.
const JavaExtension = ".java"

// reserved holds Java keywords and the literals true, false and null.
var reserved = map[string]struct{}{
	"abstract": {}, "assert": {}, "boolean": {}, "break": {}, "byte": {},
	"case": {}, "catch": {}, "char": {}, "class": {}, "const": {},
	"continue": {}, "default": {}, "do": {}, "double": {}, "else": {},
	"enum": {}, "extends": {}, "final": {}, "finally": {}, "float": {},
	"for": {}, "goto": {}, "if": {}, "implements": {}, "import": {},
	"instanceof": {}, "int": {}, "interface": {}, "long": {}, "native": {},
	"new": {}, "package": {}, "private": {}, "protected": {}, "public": {},
	"return": {}, "short": {}, "static": {}, "strictfp": {}, "super": {},
	"switch": {}, "synchronized": {}, "this": {}, "throw": {}, "throws": {},
	"transient": {}, "try": {}, "void": {}, "volatile": {}, "while": {},
	"_": {}, "true": {}, "false": {}, "null": {},
}

// ValidateIdentifier checks that name is a legal Java identifier.
func ValidateIdentifier(name string) error {
	if name == "" {
		return coreerrors.New(coreerrors.CodeInvalidArgument, "identifier must not be empty")
	}
	for i, r := range name {
		if isIdentifierStart(r) || (i > 0 && isIdentifierPart(r)) {
			continue
		}
		return coreerrors.Newf(coreerrors.CodeInvalidArgument, "%q is not a valid Java identifier", name)
	}
	if _, ok := reserved[name]; ok {
		return coreerrors.Newf(coreerrors.CodeInvalidArgument, "%q is a reserved Java word", name)
	}
	return nil
}

// ValidatePackageName checks a dotted package name such as "com.example".
// The default package has no name and is not accepted here.
func ValidatePackageName(name string) error {
	if name == "" {
		return coreerrors.New(coreerrors.CodeInvalidArgument, "package name must not be empty")
	}
	if strings.TrimSpace(name) != name {
		return coreerrors.Newf(coreerrors.CodeInvalidArgument, "package name %q must not start or end with white space", name)
	}
	for _, segment := range strings.Split(name, ".") {
		if segment == "" {
			return coreerrors.Newf(coreerrors.CodeInvalidArgument, "package name %q has an empty segment", name)
		}
		if err := ValidateIdentifier(segment); err != nil {
			return coreerrors.Wrapf(coreerrors.CodeInvalidArgument, "javamodel.ValidatePackageName", err, "invalid package name %q", name)
		}
	}
	return nil
}

// ValidateCompilationUnitName checks a file name such as "Foo.java".
func ValidateCompilationUnitName(name string) error {
	base, ok := strings.CutSuffix(name, JavaExtension)
	if !ok {
		return coreerrors.Newf(coreerrors.CodeInvalidArgument, "compilation unit name %q must end with %s", name, JavaExtension)
	}
	if err := ValidateIdentifier(base); err != nil {
		return coreerrors.Wrapf(coreerrors.CodeInvalidArgument, "javamodel.ValidateCompilationUnitName", err, "invalid compilation unit name %q", name)
	}
	return nil
}

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '$'
}

func isIdentifierPart(r rune) bool {
	return isIdentifierStart(r) || unicode.IsDigit(r)
}
