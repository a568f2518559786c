package jsonpath

import (
	"strings"

	"github.com/jacoelho/jsonhub/internal/debug"
	"github.com/jacoelho/jsonhub/internal/stack"
	"github.com/jacoelho/jsonhub/value"
)

type config struct {
	filters  bool
	maxDepth int
}

type Option func(*config)

// WithFilters enables `[?(<expr>)]` filter selectors, evaluated with
// github.com/expr-lang/expr.
func WithFilters() Option {
	return func(c *config) {
		c.filters = true
	}
}

// WithMaxDepth stops recursive descent n levels below each candidate.
// n <= 0 means unbounded.
func WithMaxDepth(n int) Option {
	return func(c *config) {
		c.maxDepth = max(0, n)
	}
}

// Path is a compiled expression. It is safe for concurrent use.
type Path struct {
	segs []segment
	cfg  config
}

// Compile parses expr. Syntax errors are *ParseError values wrapping
// ErrSyntax; filters without WithFilters and scripts are *UnsupportedError
// values wrapping ErrNotSupported.
func Compile(expr string, opts ...Option) (*Path, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	segs, err := compile(expr, cfg)
	if err != nil {
		return nil, err
	}

	p := &Path{segs: segs, cfg: cfg}
	if debug.Path() {
		debug.Logf("jsonpath: %q compiled to %s (%d segments)", expr, p, len(segs))
	}
	return p, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(expr string, opts ...Option) *Path {
	p, err := Compile(expr, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Validate reports whether expr compiles.
func Validate(expr string, opts ...Option) error {
	_, err := Compile(expr, opts...)
	return err
}

// Evaluate compiles expr and evaluates it against root.
func Evaluate(root *value.Value, expr string, opts ...Option) ([]*value.Value, error) {
	p, err := Compile(expr, opts...)
	if err != nil {
		return nil, err
	}
	return p.Evaluate(root), nil
}

// Evaluate returns the matching nodes in discovery order. It never fails:
// segments that match nothing produce no output for that branch.
func (p *Path) Evaluate(root *value.Value) []*value.Value {
	if root == nil {
		root = value.Null()
	}
	c := &evalCtx{root: root, maxDepth: p.cfg.maxDepth}

	cur := []*value.Value{root}
	for _, seg := range p.segs {
		var next []*value.Value
		for _, v := range cur {
			if seg.deep {
				next = c.descend(seg.sel, v, next)
			} else {
				next = seg.sel.match(c, v, next)
			}
		}
		cur = next
		if len(cur) == 0 {
			break
		}
	}
	return cur
}

// String returns the normalized expression.
func (p *Path) String() string {
	var b strings.Builder
	b.WriteByte('$')
	for _, seg := range p.segs {
		if seg.deep {
			b.WriteString("..")
		}
		b.WriteString(seg.sel.String())
	}
	return b.String()
}

type evalCtx struct {
	root     *value.Value
	rootAny  any
	rootDone bool
	maxDepth int
}

// rootData converts the root for filters once per evaluation.
func (c *evalCtx) rootData() any {
	if !c.rootDone {
		c.rootAny = c.root.Interface()
		c.rootDone = true
	}
	return c.rootAny
}

type frame struct {
	v     *value.Value
	emit  bool
	depth int
}

// descend walks the subtree under v depth-first in pre-order with an
// explicit stack, applying sel at every container.
func (c *evalCtx) descend(sel selector, v *value.Value, out []*value.Value) []*value.Value {
	st := stack.NewWithCapacity[frame](16)
	st.Push(frame{v: v})

	var kids []frame
	for !st.IsEmpty() {
		f, _ := st.Pop()
		if f.emit {
			out = append(out, f.v)
		}
		if !f.v.Type().IsContainer() || (c.maxDepth > 0 && f.depth >= c.maxDepth) {
			continue
		}

		out = sel.batch(c, f.v, out)

		kids = kids[:0]
		if f.v.IsArray() {
			emit := sel.inPlace(nil)
			for e := range f.v.All() {
				kids = append(kids, frame{v: e, emit: emit, depth: f.depth + 1})
			}
		} else {
			for name, m := range f.v.Members() {
				kids = append(kids, frame{v: m, emit: sel.inPlace(name), depth: f.depth + 1})
			}
		}
		for i := len(kids) - 1; i >= 0; i-- {
			st.Push(kids[i])
		}
	}
	return out
}
