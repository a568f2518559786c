package value

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Interface converts v to plain Go data: nil, bool, string, int64, float64,
// []any or map[string]any. Duplicate object members keep the first value.
func (v *Value) Interface() any {
	switch v.Type() {
	case TrueType:
		return true
	case FalseType:
		return false
	case StringType:
		return v.str.Unescaped()
	case NumberType:
		if v.num.isFloat {
			return v.num.f
		}
		return v.num.i
	case ArrayType:
		out := make([]any, len(v.elems))
		for i, e := range v.elems {
			out[i] = e.Interface()
		}
		return out
	case ObjectType:
		out := make(map[string]any, len(v.pairs))
		for _, p := range v.pairs {
			k := p.Name.Unescaped()
			if _, dup := out[k]; dup {
				continue
			}
			out[k] = p.Value.Interface()
		}
		return out
	}
	return nil
}

// FromAny is the inverse of Interface. It also accepts the other integer and
// float widths, json.Number, *Value and []*Value. Map members are emitted in
// sorted key order.
func FromAny(x any) (*Value, error) {
	switch t := x.(type) {
	case nil:
		return nullValue, nil
	case *Value:
		return orNull(t), nil
	case bool:
		return Bool(t), nil
	case string:
		return NewString(t), nil
	case json.Number:
		return Number(t.String())
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return Number(fmt.Sprint(t))
	case uint8:
		return Int(int64(t)), nil
	case uint16:
		return Int(int64(t)), nil
	case uint32:
		return Int(int64(t)), nil
	case uint64:
		return Number(fmt.Sprint(t))
	case float32:
		return Float(float64(t))
	case float64:
		return Float(t)
	case []*Value:
		return Array(t...), nil
	case []any:
		elems := make([]*Value, len(t))
		for i, e := range t {
			v, err := FromAny(e)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			elems[i] = v
		}
		return arrayOwned(elems), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.SortFunc(keys, strings.Compare)
		pairs := make([]Pair, len(keys))
		for i, k := range keys {
			v, err := FromAny(t[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			pairs[i] = Pair{Name: Unescaped(k), Value: v}
		}
		return objectOwned(pairs), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedGoType, x)
}
