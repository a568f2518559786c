package printer

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/jacoelho/jsonhub/value"
)

// YAML renders v as a YAML document, keeping object member order.
// Duplicate member names are written once, first occurrence first.
func YAML(v *value.Value) ([]byte, error) {
	out, err := yaml.Marshal(toYAML(v))
	if err != nil {
		return nil, fmt.Errorf("encode YAML: %w", err)
	}
	return out, nil
}

func toYAML(v *value.Value) any {
	switch v.Type() {
	case value.TrueType:
		return true
	case value.FalseType:
		return false
	case value.StringType:
		s, _ := v.AsString()
		return s
	case value.NumberType:
		n, _ := v.AsNumber()
		if n.IsFloat() {
			return n.Float64()
		}
		return n.Int64()
	case value.ArrayType:
		out := make([]any, 0)
		for e := range v.All() {
			out = append(out, toYAML(e))
		}
		return out
	case value.ObjectType:
		out := yaml.MapSlice{}
		seen := make(map[string]struct{})
		for name, m := range v.Members() {
			k := name.Unescaped()
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, yaml.MapItem{Key: k, Value: toYAML(m)})
		}
		return out
	}
	return nil
}
