// Package jsonhub reads JSON and JSONC text into immutable value trees,
// queries them with JsonPath and maps them to and from Go values.
//
// The subpackages hold the full API; the functions here cover the common
// read, query and print flow.
package jsonhub

import (
	"path/filepath"
	"strings"

	"github.com/jacoelho/jsonhub/internal/rfc9535"
	"github.com/jacoelho/jsonhub/jsonc"
	"github.com/jacoelho/jsonhub/jsonpath"
	"github.com/jacoelho/jsonhub/mapper"
	"github.com/jacoelho/jsonhub/parser"
	"github.com/jacoelho/jsonhub/printer"
	"github.com/jacoelho/jsonhub/value"
)

func FromJSON(text string, opts ...parser.Option) (*value.Value, error) {
	return parser.Parse(text, opts...)
}

// FromJSONC parses text after removing comments and trailing commas.
func FromJSONC(text string, opts ...parser.Option) (*value.Value, error) {
	return jsonc.ReadString(text, opts...)
}

// FromFile parses the file at path, as JSONC when its extension is .jsonc.
func FromFile(path string, opts ...parser.Option) (*value.Value, error) {
	if strings.EqualFold(filepath.Ext(path), ".jsonc") {
		return jsonc.ReadFile(path, opts...)
	}
	return parser.ParseFile(path, opts...)
}

// FromStruct converts a Go value; see mapper.Marshal.
func FromStruct(x any) (*value.Value, error) {
	return mapper.Marshal(x)
}

// ToStruct fills target from v; see mapper.Unmarshal.
func ToStruct(v *value.Value, target any) error {
	return mapper.Unmarshal(v, target)
}

// Query evaluates a JsonPath expression against root.
func Query(root *value.Value, expr string, opts ...jsonpath.Option) ([]*value.Value, error) {
	return jsonpath.Evaluate(root, expr, opts...)
}

// QueryRFC9535 evaluates expr with full RFC 9535 semantics, filter
// expressions included. Scalar results are rebuilt, so numbers come back in
// their shortest form rather than with their source lexeme.
func QueryRFC9535(root *value.Value, expr string) ([]*value.Value, error) {
	return rfc9535.Select(root, expr)
}

func Pretty(v *value.Value) string {
	return printer.Pretty(v)
}
