package jsonpath

import (
	"strconv"
	"strings"

	"github.com/jacoelho/jsonhub/value"
)

type segment struct {
	deep bool // true for '..' descendant segments
	sel  selector
}

// selector picks nodes under a candidate.
type selector interface {
	// match appends the nodes selected directly under v.
	match(c *evalCtx, v *value.Value, out []*value.Value) []*value.Value

	// batch appends, during recursive descent, the nodes selected under the
	// container v as one group ahead of v's subtrees.
	batch(c *evalCtx, v *value.Value, out []*value.Value) []*value.Value

	// inPlace reports, during recursive descent, whether a child is emitted
	// immediately before its own subtree. name is nil for array elements.
	inPlace(name *value.String) bool

	String() string
}

type (
	nameSel     []*value.String
	wildcardSel struct{}
	indexSel    []slice
)

// slice is one comma-separated part of an index selector. A plain index is
// a slice with single set.
type slice struct {
	start, end, step int
	hasStart, hasEnd bool
	single           bool
}

func (n nameSel) match(_ *evalCtx, v *value.Value, out []*value.Value) []*value.Value {
	if !v.IsObject() {
		return out
	}
	for _, key := range n {
		if m, _ := v.Get(key.Unescaped()); m != nil {
			out = append(out, m)
		}
	}
	return out
}

func (nameSel) batch(_ *evalCtx, _ *value.Value, out []*value.Value) []*value.Value {
	return out
}

func (n nameSel) inPlace(name *value.String) bool {
	if name == nil {
		return false
	}
	for _, key := range n {
		if key.Equal(name) {
			return true
		}
	}
	return false
}

func (n nameSel) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, key := range n {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('\'')
		b.WriteString(strings.ReplaceAll(key.Escaped(), "'", `\'`))
		b.WriteByte('\'')
	}
	b.WriteByte(']')
	return b.String()
}

func (wildcardSel) match(_ *evalCtx, v *value.Value, out []*value.Value) []*value.Value {
	switch {
	case v.IsArray():
		for e := range v.All() {
			out = append(out, e)
		}
	case v.IsObject():
		for _, m := range v.Members() {
			out = append(out, m)
		}
	}
	return out
}

func (wildcardSel) batch(_ *evalCtx, _ *value.Value, out []*value.Value) []*value.Value {
	return out
}

func (wildcardSel) inPlace(*value.String) bool {
	return true
}

func (wildcardSel) String() string {
	return "[*]"
}

// match appends the selected elements in selector order, each index at most once.
func (x indexSel) match(_ *evalCtx, v *value.Value, out []*value.Value) []*value.Value {
	if !v.IsArray() {
		return out
	}
	n, _ := v.Len()

	var seen map[int]struct{}
	if len(x) > 1 {
		seen = make(map[int]struct{})
	}
	for _, s := range x {
		for _, i := range s.indices(n) {
			if seen != nil {
				if _, dup := seen[i]; dup {
					continue
				}
				seen[i] = struct{}{}
			}
			e, err := v.Index(i)
			if err != nil {
				continue
			}
			out = append(out, e)
		}
	}
	return out
}

func (x indexSel) batch(c *evalCtx, v *value.Value, out []*value.Value) []*value.Value {
	return x.match(c, v, out)
}

func (indexSel) inPlace(*value.String) bool {
	return false
}

func (x indexSel) String() string {
	parts := make([]string, len(x))
	for i, s := range x {
		parts[i] = s.String()
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// indices resolves the slice against an array of length n.
func (s slice) indices(n int) []int {
	if s.single {
		i := s.start
		if i < 0 {
			i += n
		}
		if i < 0 || i >= n {
			return nil
		}
		return []int{i}
	}

	var out []int
	if s.step > 0 {
		lo, hi := 0, n
		if s.hasStart {
			lo = clamp(normalize(s.start, n), 0, n)
		}
		if s.hasEnd {
			hi = clamp(normalize(s.end, n), 0, n)
		}
		for i := lo; i < hi; i += s.step {
			out = append(out, i)
			// hi-i cannot overflow; i+step can.
			if s.step >= hi-i {
				break
			}
		}
		return out
	}

	hi, lo := n-1, -1
	if s.hasStart {
		hi = clamp(normalize(s.start, n), -1, n-1)
	}
	if s.hasEnd {
		lo = clamp(normalize(s.end, n), -1, n-1)
	}
	for i := hi; i > lo; i += s.step {
		out = append(out, i)
		if s.step <= lo-i {
			break
		}
	}
	return out
}

func (s slice) String() string {
	if s.single {
		return strconv.Itoa(s.start)
	}
	var b strings.Builder
	if s.hasStart {
		b.WriteString(strconv.Itoa(s.start))
	}
	b.WriteByte(':')
	if s.hasEnd {
		b.WriteString(strconv.Itoa(s.end))
	}
	if s.step != 1 {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(s.step))
	}
	return b.String()
}

func normalize(i, n int) int {
	if i < 0 {
		return i + n
	}
	return i
}

func clamp(i, lo, hi int) int {
	return max(lo, min(i, hi))
}
