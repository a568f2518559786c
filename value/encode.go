package value

import (
	"io"
	"sync/atomic"
)

// ToJSON returns the compact serialization. The result is cached on v.
func (v *Value) ToJSON() string {
	if v == nil {
		return "null"
	}
	return v.cached(&v.compact, false)
}

// ToJSONExcludingNulls is ToJSON with object members whose value is null
// dropped at every depth. Array elements that are null are kept.
func (v *Value) ToJSONExcludingNulls() string {
	if v == nil {
		return "null"
	}
	return v.cached(&v.withoutNull, true)
}

func (v *Value) cached(cell *atomic.Pointer[string], excludeNulls bool) string {
	if p := cell.Load(); p != nil {
		return *p
	}
	s := string(v.appendJSON(nil, excludeNulls))
	cell.CompareAndSwap(nil, &s)
	return *cell.Load()
}

// Bytes returns the compact serialization as a fresh slice.
func (v *Value) Bytes() []byte {
	return []byte(v.ToJSON())
}

// AppendJSON appends the compact serialization to dst.
func (v *Value) AppendJSON(dst []byte) []byte {
	return append(dst, v.ToJSON()...)
}

func (v *Value) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, v.ToJSON())
	return int64(n), err
}

// String implements fmt.Stringer with the compact serialization.
func (v *Value) String() string {
	return v.ToJSON()
}

// MarshalJSON lets values be embedded in encoding/json documents.
func (v *Value) MarshalJSON() ([]byte, error) {
	return v.Bytes(), nil
}

// appendJSON serializes without populating descendant caches; cached child
// output is reused when present.
func (v *Value) appendJSON(dst []byte, excludeNulls bool) []byte {
	switch v.Type() {
	case NullType:
		return append(dst, "null"...)
	case TrueType:
		return append(dst, "true"...)
	case FalseType:
		return append(dst, "false"...)
	case StringType:
		dst = append(dst, '"')
		dst = append(dst, v.str.Escaped()...)
		return append(dst, '"')
	case NumberType:
		return append(dst, v.num.lexeme...)
	case ArrayType:
		dst = append(dst, '[')
		for i, e := range v.elems {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = e.appendCachedJSON(dst, excludeNulls)
		}
		return append(dst, ']')
	case ObjectType:
		dst = append(dst, '{')
		first := true
		for _, p := range v.pairs {
			if excludeNulls && p.Value.IsNull() {
				continue
			}
			if !first {
				dst = append(dst, ',')
			}
			first = false
			dst = append(dst, '"')
			dst = append(dst, p.Name.Escaped()...)
			dst = append(dst, '"', ':')
			dst = p.Value.appendCachedJSON(dst, excludeNulls)
		}
		return append(dst, '}')
	}
	return dst
}

func (v *Value) appendCachedJSON(dst []byte, excludeNulls bool) []byte {
	cell := &v.compact
	if excludeNulls {
		cell = &v.withoutNull
	}
	if p := cell.Load(); p != nil {
		return append(dst, *p...)
	}
	return v.appendJSON(dst, excludeNulls)
}
