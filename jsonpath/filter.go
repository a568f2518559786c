package jsonpath

import (
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/jacoelho/jsonhub/internal/debug"
	"github.com/jacoelho/jsonhub/value"
)

// filterSel keeps the array elements or object member values for which the
// compiled expression is truthy. Inside the expression `@` is the candidate
// and `$` the document root, both as plain Go data (see value.Interface).
type filterSel struct {
	src  string
	prog *vm.Program
}

func compileFilter(src string) (*filterSel, error) {
	prog, err := expr.Compile(translateFilter(src))
	if err != nil {
		return nil, err
	}
	return &filterSel{src: src, prog: prog}, nil
}

// translateFilter rewrites @ and $ outside string literals to the names
// bound in the evaluation environment.
func translateFilter(src string) string {
	var b strings.Builder
	b.Grow(len(src) + 16)
	var quote byte
	for i := 0; i < len(src); i++ {
		c := src[i]
		if quote != 0 {
			b.WriteByte(c)
			switch c {
			case '\\':
				if i+1 < len(src) {
					i++
					b.WriteByte(src[i])
				}
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'', '`':
			quote = c
			b.WriteByte(c)
		case '@':
			b.WriteString("current")
		case '$':
			b.WriteString("root")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func (f *filterSel) match(c *evalCtx, v *value.Value, out []*value.Value) []*value.Value {
	switch {
	case v.IsArray():
		for e := range v.All() {
			if f.test(c, e) {
				out = append(out, e)
			}
		}
	case v.IsObject():
		for _, m := range v.Members() {
			if f.test(c, m) {
				out = append(out, m)
			}
		}
	}
	return out
}

func (f *filterSel) batch(c *evalCtx, v *value.Value, out []*value.Value) []*value.Value {
	return f.match(c, v, out)
}

func (*filterSel) inPlace(*value.String) bool {
	return false
}

func (f *filterSel) String() string {
	return "[?(" + f.src + ")]"
}

// test runs the filter; runtime errors count as no match.
func (f *filterSel) test(c *evalCtx, v *value.Value) bool {
	env := map[string]any{
		"current": v.Interface(),
		"root":    c.rootData(),
	}
	res, err := expr.Run(f.prog, env)
	if err != nil {
		if debug.Path() {
			debug.Logf("jsonpath: filter %q on %s: %v", f.src, v, err)
		}
		return false
	}
	return truthy(res)
}

func truthy(x any) bool {
	switch t := x.(type) {
	case nil:
		return false
	case bool:
		return t
	}
	return true
}
