// Package mapper converts between Go values and value trees.
//
// Types control their own form by implementing Marshaler and Unmarshaler.
// Types implementing encoding.TextMarshaler and encoding.TextUnmarshaler map
// to strings. Everything else goes through reflection: structs map to objects
// over their exported fields, honouring `json:"name,omitempty"` and
// `json:"-"` tags; maps with string keys map to objects with sorted keys;
// slices and arrays map to arrays.
package mapper

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/jacoelho/jsonhub/value"
)

// Marshaler is implemented by types that build their own value.
type Marshaler interface {
	MarshalValue() (*value.Value, error)
}

// Unmarshaler is implemented by types that decode themselves from a value.
type Unmarshaler interface {
	UnmarshalValue(*value.Value) error
}

var (
	valueType           = reflect.TypeFor[*value.Value]()
	marshalerType       = reflect.TypeFor[Marshaler]()
	unmarshalerType     = reflect.TypeFor[Unmarshaler]()
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// Marshal converts x into a value tree.
func Marshal(x any) (*value.Value, error) {
	m := &marshaler{visiting: make(map[uintptr]struct{})}
	return m.marshal(reflect.ValueOf(x), "")
}

type marshaler struct {
	visiting map[uintptr]struct{}
}

func (m *marshaler) marshal(rv reflect.Value, path string) (*value.Value, error) {
	if !rv.IsValid() {
		return value.Null(), nil
	}
	if rv.Type() == valueType {
		if rv.IsNil() {
			return value.Null(), nil
		}
		return rv.Interface().(*value.Value), nil
	}

	if v, ok, err := m.custom(rv, path); ok {
		return v, err
	}

	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return value.Null(), nil
		}
		ptr := rv.Pointer()
		if _, ok := m.visiting[ptr]; ok {
			return nil, &MarshalError{FieldPath: path, Err: fmt.Errorf("%w: %s", ErrCycle, rv.Type())}
		}
		m.visiting[ptr] = struct{}{}
		defer delete(m.visiting, ptr)
		return m.marshal(rv.Elem(), path)

	case reflect.Interface:
		if rv.IsNil() {
			return value.Null(), nil
		}
		return m.marshal(rv.Elem(), path)

	case reflect.Bool:
		return value.Bool(rv.Bool()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.Int(rv.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return value.Number(strconv.FormatUint(rv.Uint(), 10))

	case reflect.Float32, reflect.Float64:
		return marshalFloat(rv, path)

	case reflect.String:
		return value.NewString(rv.String()), nil

	case reflect.Slice:
		if rv.IsNil() {
			return value.Null(), nil
		}
		return m.marshalList(rv, path)

	case reflect.Array:
		return m.marshalList(rv, path)

	case reflect.Map:
		if rv.IsNil() {
			return value.Null(), nil
		}
		return m.marshalMap(rv, path)

	case reflect.Struct:
		return m.marshalStruct(rv, path)
	}

	return nil, &MarshalError{FieldPath: path, Err: fmt.Errorf("%w: %s", ErrUnsupportedType, rv.Type())}
}

// custom runs Marshaler or TextMarshaler when rv, or its address, has one.
func (m *marshaler) custom(rv reflect.Value, path string) (*value.Value, bool, error) {
	target := rv
	if !rv.Type().Implements(marshalerType) && !rv.Type().Implements(textMarshalerType) {
		if !rv.CanAddr() {
			return nil, false, nil
		}
		target = rv.Addr()
	}
	if target.Kind() == reflect.Pointer && target.IsNil() {
		return value.Null(), true, nil
	}

	switch t := target.Interface().(type) {
	case Marshaler:
		v, err := t.MarshalValue()
		if err != nil {
			return nil, true, &MarshalError{FieldPath: path, Err: err}
		}
		if v == nil {
			v = value.Null()
		}
		return v, true, nil
	case encoding.TextMarshaler:
		text, err := t.MarshalText()
		if err != nil {
			return nil, true, &MarshalError{FieldPath: path, Err: err}
		}
		return value.NewString(string(text)), true, nil
	}
	return nil, false, nil
}

func marshalFloat(rv reflect.Value, path string) (*value.Value, error) {
	f := rv.Float()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, &MarshalError{FieldPath: path, Err: fmt.Errorf("%w: non-finite float %v", ErrUnsupportedType, f)}
	}
	if rv.Kind() == reflect.Float64 {
		return value.Float(f)
	}

	s := strconv.FormatFloat(f, 'g', -1, 32)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return value.Number(s)
}

func (m *marshaler) marshalList(rv reflect.Value, path string) (*value.Value, error) {
	n := rv.Len()
	if n == 0 {
		return value.EmptyArray(), nil
	}
	elems := make([]*value.Value, n)
	for i := range n {
		v, err := m.marshal(rv.Index(i), indexPath(path, i))
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return value.Array(elems...), nil
}

func (m *marshaler) marshalMap(rv reflect.Value, path string) (*value.Value, error) {
	if rv.Type().Key().Kind() != reflect.String {
		return nil, &MarshalError{FieldPath: path, Err: fmt.Errorf("%w: map key %s", ErrUnsupportedType, rv.Type().Key())}
	}

	keys := rv.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		return strings.Compare(a.String(), b.String())
	})

	pairs := make([]value.Pair, 0, len(keys))
	for _, k := range keys {
		v, err := m.marshal(rv.MapIndex(k), joinPath(path, k.String()))
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, value.NewPair(k.String(), v))
	}
	return value.Object(pairs...), nil
}

func (m *marshaler) marshalStruct(rv reflect.Value, path string) (*value.Value, error) {
	fields := fieldsOf(rv.Type())
	pairs := make([]value.Pair, 0, len(fields))
	for _, f := range fields {
		fv, err := rv.FieldByIndexErr(f.index)
		if err != nil {
			// nil embedded pointer
			continue
		}
		if f.omitEmpty && isEmptyValue(fv) {
			continue
		}
		v, err := m.marshal(fv, joinPath(path, f.name))
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, value.NewPair(f.name, v))
	}
	return value.Object(pairs...), nil
}
