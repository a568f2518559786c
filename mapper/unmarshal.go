package mapper

import (
	"encoding"
	"fmt"
	"math"
	"reflect"

	"github.com/jacoelho/jsonhub/value"
)

// Unmarshal stores v into the value target points to. Members without a
// matching field are ignored; for duplicate member names the first wins.
// Null leaves non-nillable targets unchanged and zeroes pointers,
// interfaces, maps and slices.
func Unmarshal(v *value.Value, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &UnmarshalError{Err: fmt.Errorf("%w: got %T", ErrInvalidTarget, target)}
	}
	if v == nil {
		v = value.Null()
	}
	return unmarshal(v, rv.Elem(), "")
}

func unmarshal(v *value.Value, dst reflect.Value, path string) error {
	if dst.Type() == valueType {
		dst.Set(reflect.ValueOf(v))
		return nil
	}

	if dst.Kind() == reflect.Pointer {
		if v.IsNull() {
			dst.SetZero()
			return nil
		}
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return unmarshal(v, dst.Elem(), path)
	}

	if ok, err := unmarshalCustom(v, dst, path); ok {
		return err
	}

	if v.IsNull() {
		switch dst.Kind() {
		case reflect.Interface, reflect.Map, reflect.Slice:
			dst.SetZero()
		}
		return nil
	}

	switch dst.Kind() {
	case reflect.Interface:
		if dst.NumMethod() != 0 {
			return unsupported(dst, path)
		}
		if x := v.Interface(); x != nil {
			dst.Set(reflect.ValueOf(x))
		} else {
			dst.SetZero()
		}
		return nil

	case reflect.Bool:
		b, err := v.Bool()
		if err != nil {
			return &UnmarshalError{FieldPath: path, Err: err}
		}
		dst.SetBool(b)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := integral(v, dst, path)
		if err != nil {
			return err
		}
		if dst.OverflowInt(i) {
			return overflow(v, dst, path)
		}
		dst.SetInt(i)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		i, err := integral(v, dst, path)
		if err != nil {
			return err
		}
		if i < 0 || dst.OverflowUint(uint64(i)) {
			return overflow(v, dst, path)
		}
		dst.SetUint(uint64(i))
		return nil

	case reflect.Float32, reflect.Float64:
		f, err := v.Float64()
		if err != nil {
			return &UnmarshalError{FieldPath: path, Err: err}
		}
		if dst.OverflowFloat(f) {
			return overflow(v, dst, path)
		}
		dst.SetFloat(f)
		return nil

	case reflect.String:
		s, err := v.Str()
		if err != nil {
			return &UnmarshalError{FieldPath: path, Err: err}
		}
		dst.SetString(s)
		return nil

	case reflect.Slice:
		return unmarshalSlice(v, dst, path)

	case reflect.Array:
		return unmarshalArray(v, dst, path)

	case reflect.Map:
		return unmarshalMap(v, dst, path)

	case reflect.Struct:
		return unmarshalStruct(v, dst, path)
	}

	return unsupported(dst, path)
}

// unmarshalCustom runs Unmarshaler or TextUnmarshaler on dst's address.
func unmarshalCustom(v *value.Value, dst reflect.Value, path string) (bool, error) {
	if !dst.CanAddr() {
		return false, nil
	}
	switch t := dst.Addr().Interface().(type) {
	case Unmarshaler:
		if err := t.UnmarshalValue(v); err != nil {
			return true, &UnmarshalError{FieldPath: path, Err: err}
		}
		return true, nil
	case encoding.TextUnmarshaler:
		if v.IsNull() {
			return true, nil
		}
		s, err := v.Str()
		if err != nil {
			return true, &UnmarshalError{FieldPath: path, Err: err}
		}
		if err := t.UnmarshalText([]byte(s)); err != nil {
			return true, &UnmarshalError{FieldPath: path, Err: err}
		}
		return true, nil
	}
	return false, nil
}

// integral reads v as an int64, rejecting numbers with a fractional part.
func integral(v *value.Value, dst reflect.Value, path string) (int64, error) {
	n, err := v.Num()
	if err != nil {
		return 0, &UnmarshalError{FieldPath: path, Err: err}
	}
	if n.IsFloat() {
		f := n.Float64()
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, overflow(v, dst, path)
		}
		return int64(f), nil
	}
	return n.Int64(), nil
}

func unmarshalSlice(v *value.Value, dst reflect.Value, path string) error {
	n, err := v.Len()
	if err != nil || !v.IsArray() {
		return mismatch(v, dst, path)
	}
	out := reflect.MakeSlice(dst.Type(), n, n)
	i := 0
	for e := range v.All() {
		if err := unmarshal(e, out.Index(i), indexPath(path, i)); err != nil {
			return err
		}
		i++
	}
	dst.Set(out)
	return nil
}

func unmarshalArray(v *value.Value, dst reflect.Value, path string) error {
	if !v.IsArray() {
		return mismatch(v, dst, path)
	}
	i := 0
	for e := range v.All() {
		if i >= dst.Len() {
			break
		}
		if err := unmarshal(e, dst.Index(i), indexPath(path, i)); err != nil {
			return err
		}
		i++
	}
	for ; i < dst.Len(); i++ {
		dst.Index(i).SetZero()
	}
	return nil
}

func unmarshalMap(v *value.Value, dst reflect.Value, path string) error {
	if !v.IsObject() {
		return mismatch(v, dst, path)
	}
	t := dst.Type()
	if t.Key().Kind() != reflect.String {
		return unsupported(dst, path)
	}
	if dst.IsNil() {
		dst.Set(reflect.MakeMap(t))
	}

	seen := make(map[string]struct{})
	for name, m := range v.Members() {
		k := name.Unescaped()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}

		elem := reflect.New(t.Elem()).Elem()
		if err := unmarshal(m, elem, joinPath(path, k)); err != nil {
			return err
		}
		dst.SetMapIndex(reflect.ValueOf(k).Convert(t.Key()), elem)
	}
	return nil
}

func unmarshalStruct(v *value.Value, dst reflect.Value, path string) error {
	if !v.IsObject() {
		return mismatch(v, dst, path)
	}
	fields := fieldsOf(dst.Type())

	seen := make(map[string]struct{})
	for name, m := range v.Members() {
		k := name.Unescaped()
		f, ok := lookupField(fields, k)
		if !ok {
			continue
		}
		if _, dup := seen[f.name]; dup {
			continue
		}
		seen[f.name] = struct{}{}

		fv, err := fieldByIndexAlloc(dst, f.index)
		if err != nil {
			return &UnmarshalError{FieldPath: joinPath(path, k), Err: err}
		}
		if !fv.CanSet() {
			continue
		}
		if err := unmarshal(m, fv, joinPath(path, k)); err != nil {
			return err
		}
	}
	return nil
}

// fieldByIndexAlloc walks index, allocating nil embedded pointers.
func fieldByIndexAlloc(v reflect.Value, index []int) (reflect.Value, error) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !v.CanSet() {
					return reflect.Value{}, fmt.Errorf("%w: unexported embedded pointer %s", ErrUnsupportedType, v.Type())
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, nil
}

func mismatch(v *value.Value, dst reflect.Value, path string) error {
	return &UnmarshalError{
		FieldPath: path,
		Err:       fmt.Errorf("%w: cannot unmarshal %s into %s", value.ErrTypeMismatch, v.Type(), dst.Type()),
	}
}

func overflow(v *value.Value, dst reflect.Value, path string) error {
	return &UnmarshalError{FieldPath: path, Err: fmt.Errorf("%w: %s into %s", ErrOverflow, v, dst.Type())}
}

func unsupported(dst reflect.Value, path string) error {
	return &UnmarshalError{FieldPath: path, Err: fmt.Errorf("%w: %s", ErrUnsupportedType, dst.Type())}
}
