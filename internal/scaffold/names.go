package scaffold

import (
	"errors"
	"strings"

	coreerrors "go.eggybyte.com/jscaffold/core/errors"
)

// ErrUnsupportedType is wrapped by DefaultValueLiteral for unknown type names.
var ErrUnsupportedType = errors.New("unsupported type")

var defaultLiterals = map[string]string{
	"byte":    "0",
	"short":   "0",
	"int":     "0",
	"long":    "0",
	"float":   "0.0",
	"double":  "0.0",
	"boolean": "false",
}

// DefaultValueLiteral returns the Java source literal of a primitive type's
// default value. char is not supported.
//
// Returns:
//   - error: INVALID_ARGUMENT wrapping ErrUnsupportedType for any other name
func DefaultValueLiteral(typeName string) (string, error) {
	if literal, ok := defaultLiterals[typeName]; ok {
		return literal, nil
	}
	return "", coreerrors.Wrapf(coreerrors.CodeInvalidArgument, "scaffold.DefaultValueLiteral", ErrUnsupportedType,
		"Type %s not supported", typeName)
}

// SimpleName returns the last dot-separated segment of a qualified name.
// Trailing empty segments are ignored, so "a.b." yields "b".
func SimpleName(qualifiedName string) string {
	segments := strings.Split(strings.TrimRight(qualifiedName, "."), ".")
	return segments[len(segments)-1]
}
