// Package rfc9535 runs RFC 9535 JSONPath queries, filters included, over
// value trees by way of github.com/theory/jsonpath.
package rfc9535

import (
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/theory/jsonpath"

	"github.com/jacoelho/jsonhub/value"
)

// ErrQuery wraps expressions rejected by the RFC 9535 parser.
var ErrQuery = errors.New("rfc9535: invalid query")

// Select evaluates expr against root. Arrays and objects in the result are
// the original nodes; scalars are rebuilt from their decoded form, so
// numbers lose their original lexeme.
func Select(root *value.Value, expr string) ([]*value.Value, error) {
	path, err := jsonpath.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrQuery, expr, err)
	}

	c := converter{nodes: make(map[uintptr]*value.Value)}
	data := c.toAny(root)

	results := path.Select(data)
	out := make([]*value.Value, 0, len(results))
	for _, r := range results {
		v, err := c.fromAny(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// converter remembers which Go container came from which node, so array and
// object results come back as the original nodes.
type converter struct {
	nodes map[uintptr]*value.Value
}

func (c converter) toAny(v *value.Value) any {
	switch v.Type() {
	case value.NullType:
		return nil
	case value.TrueType:
		return true
	case value.FalseType:
		return false
	case value.StringType:
		s, _ := v.AsString()
		return s
	case value.NumberType:
		f, _ := v.AsFloat64()
		return f
	case value.ArrayType:
		n, _ := v.Len()
		arr := make([]any, 0, n)
		for e := range v.All() {
			arr = append(arr, c.toAny(e))
		}
		c.remember(arr, v)
		return arr
	case value.ObjectType:
		obj := make(map[string]any)
		for name, m := range v.Members() {
			k := name.Unescaped()
			if _, dup := obj[k]; !dup {
				obj[k] = c.toAny(m)
			}
		}
		c.remember(obj, v)
		return obj
	}
	return nil
}

func (c converter) remember(x any, v *value.Value) {
	if reflect.ValueOf(x).Len() == 0 {
		return
	}
	c.nodes[uintptr(reflect.ValueOf(x).UnsafePointer())] = v
}

func (c converter) fromAny(x any) (*value.Value, error) {
	switch t := x.(type) {
	case []any, map[string]any:
		rv := reflect.ValueOf(t)
		if rv.Len() > 0 {
			if v, ok := c.nodes[uintptr(rv.UnsafePointer())]; ok {
				return v, nil
			}
		}
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1<<53 {
			return value.Int(int64(t)), nil
		}
	}
	return value.FromAny(x)
}
