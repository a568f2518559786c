// Package value implements the immutable JSON value model shared by the
// parser, the JsonPath engine, the printer and the mapper.
//
// A *Value is one of seven variants (see Type). Values never change after
// construction; the only mutable state is the lazily computed serialization
// and string caches, which are filled with atomic compare-and-swap so values
// may be shared between goroutines freely.
package value

import (
	"iter"
	"slices"
	"sync/atomic"
)

type Value struct {
	typ   Type
	str   *String
	num   Numeric
	elems []*Value
	pairs []Pair

	compact     atomic.Pointer[string]
	withoutNull atomic.Pointer[string]
}

var (
	nullValue   = &Value{typ: NullType}
	trueValue   = &Value{typ: TrueType}
	falseValue  = &Value{typ: FalseType}
	emptyStr    = &Value{typ: StringType, str: emptyString}
	emptyArray  = &Value{typ: ArrayType}
	emptyObject = &Value{typ: ObjectType}
)

func Null() *Value  { return nullValue }
func True() *Value  { return trueValue }
func False() *Value { return falseValue }

func Bool(b bool) *Value {
	if b {
		return trueValue
	}
	return falseValue
}

func EmptyString() *Value { return emptyStr }
func EmptyArray() *Value  { return emptyArray }
func EmptyObject() *Value { return emptyObject }

// NewString returns a string value holding the logical text s.
func NewString(s string) *Value {
	if s == "" {
		return emptyStr
	}
	return &Value{typ: StringType, str: Unescaped(s)}
}

// EscapedString returns a string value from wire content (no quotes).
func EscapedString(raw string) *Value {
	if raw == "" {
		return emptyStr
	}
	return &Value{typ: StringType, str: Escaped(raw)}
}

func FromString(s *String) *Value {
	if s == nil || s.IsEmpty() {
		return emptyStr
	}
	return &Value{typ: StringType, str: s}
}

// Number returns a number value for lexeme, which must follow RFC 8259.
func Number(lexeme string) (*Value, error) {
	n, err := ParseNumber(lexeme)
	if err != nil {
		return nil, err
	}
	return &Value{typ: NumberType, num: n}, nil
}

// FromNumeric wraps an already decoded number.
func FromNumeric(n Numeric) *Value {
	if n.lexeme == "" {
		n = intNumeric(0)
	}
	return &Value{typ: NumberType, num: n}
}

func Int(i int64) *Value {
	return &Value{typ: NumberType, num: intNumeric(i)}
}

// Float returns a floating point number value. NaN and infinities have no
// JSON representation and are rejected.
func Float(f float64) (*Value, error) {
	n, err := floatNumeric(f)
	if err != nil {
		return nil, err
	}
	return &Value{typ: NumberType, num: n}, nil
}

// Array copies vals into a new array value. nil elements become null.
func Array(vals ...*Value) *Value {
	if len(vals) == 0 {
		return emptyArray
	}
	elems := make([]*Value, len(vals))
	for i, v := range vals {
		elems[i] = orNull(v)
	}
	return &Value{typ: ArrayType, elems: elems}
}

// Object copies pairs into a new object value.
func Object(pairs ...Pair) *Value {
	if len(pairs) == 0 {
		return emptyObject
	}
	ps := make([]Pair, len(pairs))
	for i, p := range pairs {
		if p.Name == nil {
			p.Name = emptyString
		}
		p.Value = orNull(p.Value)
		ps[i] = p
	}
	return &Value{typ: ObjectType, pairs: ps}
}

// arrayOwned and objectOwned take ownership of the slice without copying.
// Used by the builder paths in this package that never leak the slice.
func arrayOwned(elems []*Value) *Value {
	if len(elems) == 0 {
		return emptyArray
	}
	return &Value{typ: ArrayType, elems: elems}
}

func objectOwned(pairs []Pair) *Value {
	if len(pairs) == 0 {
		return emptyObject
	}
	return &Value{typ: ObjectType, pairs: pairs}
}

func orNull(v *Value) *Value {
	if v == nil {
		return nullValue
	}
	return v
}

// Type returns the variant tag. A nil *Value reports NullType.
func (v *Value) Type() Type {
	if v == nil {
		return NullType
	}
	return v.typ
}

func (v *Value) IsNull() bool   { return v.Type() == NullType }
func (v *Value) IsTrue() bool   { return v.Type() == TrueType }
func (v *Value) IsFalse() bool  { return v.Type() == FalseType }
func (v *Value) IsBool() bool   { t := v.Type(); return t == TrueType || t == FalseType }
func (v *Value) IsString() bool { return v.Type() == StringType }
func (v *Value) IsNumber() bool { return v.Type() == NumberType }
func (v *Value) IsArray() bool  { return v.Type() == ArrayType }
func (v *Value) IsObject() bool { return v.Type() == ObjectType }

func (v *Value) AsBool() (bool, bool) {
	switch v.Type() {
	case TrueType:
		return true, true
	case FalseType:
		return false, true
	}
	return false, false
}

func (v *Value) AsInt() (int, bool) {
	if !v.IsNumber() {
		return 0, false
	}
	return int(v.num.Int64()), true
}

func (v *Value) AsInt64() (int64, bool) {
	if !v.IsNumber() {
		return 0, false
	}
	return v.num.Int64(), true
}

func (v *Value) AsFloat64() (float64, bool) {
	if !v.IsNumber() {
		return 0, false
	}
	return v.num.Float64(), true
}

// AsString returns the unescaped text of a string value.
func (v *Value) AsString() (string, bool) {
	if !v.IsString() {
		return "", false
	}
	return v.str.Unescaped(), true
}

// AsJSONString returns the underlying String with both of its forms.
func (v *Value) AsJSONString() (*String, bool) {
	if !v.IsString() {
		return nil, false
	}
	return v.str, true
}

func (v *Value) AsNumber() (Numeric, bool) {
	if !v.IsNumber() {
		return Numeric{}, false
	}
	return v.num, true
}

// Bool, Int, Int64, Float64, Str and Num are the strict accessors: they fail
// with a *TypeMismatchError when the variant does not match.

func (v *Value) Bool() (bool, error) {
	b, ok := v.AsBool()
	if !ok {
		return false, mismatch(v.Type(), TrueType, FalseType)
	}
	return b, nil
}

func (v *Value) Int() (int, error) {
	i, ok := v.AsInt()
	if !ok {
		return 0, mismatch(v.Type(), NumberType)
	}
	return i, nil
}

func (v *Value) Int64() (int64, error) {
	i, ok := v.AsInt64()
	if !ok {
		return 0, mismatch(v.Type(), NumberType)
	}
	return i, nil
}

func (v *Value) Float64() (float64, error) {
	f, ok := v.AsFloat64()
	if !ok {
		return 0, mismatch(v.Type(), NumberType)
	}
	return f, nil
}

func (v *Value) Str() (string, error) {
	s, ok := v.AsString()
	if !ok {
		return "", mismatch(v.Type(), StringType)
	}
	return s, nil
}

func (v *Value) Num() (Numeric, error) {
	n, ok := v.AsNumber()
	if !ok {
		return Numeric{}, mismatch(v.Type(), NumberType)
	}
	return n, nil
}

// Index returns the i-th element of an array.
func (v *Value) Index(i int) (*Value, error) {
	if !v.IsArray() {
		return nil, unsupported("index", v.Type())
	}
	if i < 0 || i >= len(v.elems) {
		return nil, &IndexOutOfRangeError{Index: i, Len: len(v.elems)}
	}
	return v.elems[i], nil
}

// Get returns the value of the first member named name, or nil when there is
// none. Non-objects fail with *UnsupportedForTypeError.
func (v *Value) Get(name string) (*Value, error) {
	if !v.IsObject() {
		return nil, unsupported("get", v.Type())
	}
	return v.member(name), nil
}

func (v *Value) member(name string) *Value {
	for _, p := range v.pairs {
		if p.Name.Unescaped() == name {
			return p.Value
		}
	}
	return nil
}

// GetOrDefault returns def when v is not an object or has no member name.
func (v *Value) GetOrDefault(name string, def *Value) *Value {
	if !v.IsObject() {
		return def
	}
	if m := v.member(name); m != nil {
		return m
	}
	return def
}

func (v *Value) Has(name string) bool {
	return v.IsObject() && v.member(name) != nil
}

// Lookup walks nested objects by member name. It stops with false as soon
// as a segment is absent or the current value is not an object.
func (v *Value) Lookup(names ...string) (*Value, bool) {
	cur := v
	for _, name := range names {
		if !cur.IsObject() {
			return nil, false
		}
		cur = cur.member(name)
		if cur == nil {
			return nil, false
		}
	}
	return cur, cur != nil
}

// Len is the number of code points of a string, elements of an array or
// members of an object.
func (v *Value) Len() (int, error) {
	switch v.Type() {
	case StringType:
		return v.str.Len(), nil
	case ArrayType:
		return len(v.elems), nil
	case ObjectType:
		return len(v.pairs), nil
	}
	return 0, unsupported("length", v.Type())
}

func (v *Value) IsEmpty() (bool, error) {
	switch v.Type() {
	case StringType:
		return v.str.IsEmpty(), nil
	case ArrayType:
		return len(v.elems) == 0, nil
	case ObjectType:
		return len(v.pairs) == 0, nil
	}
	return false, unsupported("isEmpty", v.Type())
}

// Keys returns member names in insertion order, duplicates included.
func (v *Value) Keys() ([]string, error) {
	if !v.IsObject() {
		return nil, unsupported("keys", v.Type())
	}
	keys := make([]string, len(v.pairs))
	for i, p := range v.pairs {
		keys[i] = p.Name.Unescaped()
	}
	return keys, nil
}

// Elements returns a copy of the array elements.
func (v *Value) Elements() ([]*Value, error) {
	if !v.IsArray() {
		return nil, unsupported("elements", v.Type())
	}
	return slices.Clone(v.elems), nil
}

// Pairs returns a copy of the object members.
func (v *Value) Pairs() ([]Pair, error) {
	if !v.IsObject() {
		return nil, unsupported("pairs", v.Type())
	}
	return slices.Clone(v.pairs), nil
}

// Iter returns an iterator over array elements.
func (v *Value) Iter() (iter.Seq[*Value], error) {
	if !v.IsArray() {
		return nil, unsupported("iterator", v.Type())
	}
	return v.All(), nil
}

// MemberIter returns an iterator over object members.
func (v *Value) MemberIter() (iter.Seq2[*String, *Value], error) {
	if !v.IsObject() {
		return nil, unsupported("iterator", v.Type())
	}
	return v.Members(), nil
}

// All yields array elements in order; other variants yield nothing.
func (v *Value) All() iter.Seq[*Value] {
	return func(yield func(*Value) bool) {
		if !v.IsArray() {
			return
		}
		for _, e := range v.elems {
			if !yield(e) {
				return
			}
		}
	}
}

// Members yields object members in insertion order; other variants yield nothing.
func (v *Value) Members() iter.Seq2[*String, *Value] {
	return func(yield func(*String, *Value) bool) {
		if !v.IsObject() {
			return
		}
		for _, p := range v.pairs {
			if !yield(p.Name, p.Value) {
				return
			}
		}
	}
}

func (v *Value) ForEach(fn func(*Value)) error {
	if !v.IsArray() {
		return unsupported("forEach", v.Type())
	}
	for _, e := range v.elems {
		fn(e)
	}
	return nil
}

func (v *Value) ForEachPair(fn func(Pair)) error {
	if !v.IsObject() {
		return unsupported("forEach", v.Type())
	}
	for _, p := range v.pairs {
		fn(p)
	}
	return nil
}
