// Package builder is a factory facade over the value constructors, the
// mapper and the parser.
package builder

import (
	"io"

	"github.com/jacoelho/jsonhub/mapper"
	"github.com/jacoelho/jsonhub/parser"
	"github.com/jacoelho/jsonhub/value"
)

// Builder creates values. It has no state; the zero value is ready to use.
type Builder struct {
	opts []parser.Option
}

// New returns a Builder whose FromJSON methods parse with opts.
func New(opts ...parser.Option) *Builder {
	return &Builder{opts: opts}
}

func (*Builder) Null() *value.Value        { return value.Null() }
func (*Builder) True() *value.Value        { return value.True() }
func (*Builder) False() *value.Value       { return value.False() }
func (*Builder) Bool(b bool) *value.Value  { return value.Bool(b) }
func (*Builder) Int(i int64) *value.Value  { return value.Int(i) }
func (*Builder) EmptyArray() *value.Value  { return value.EmptyArray() }
func (*Builder) EmptyObject() *value.Value { return value.EmptyObject() }

// Float fails for NaN and infinities.
func (*Builder) Float(f float64) (*value.Value, error) {
	return value.Float(f)
}

// Number validates lexeme against the JSON number grammar.
func (*Builder) Number(lexeme string) (*value.Value, error) {
	return value.Number(lexeme)
}

// String builds a string value from unescaped text.
func (*Builder) String(s string) *value.Value {
	return value.NewString(s)
}

// Array builds an array; nil elements become null.
func (*Builder) Array(vals ...*value.Value) *value.Value {
	return value.Array(vals...)
}

// Object builds an object keeping pair order and duplicates.
func (*Builder) Object(pairs ...value.Pair) *value.Value {
	return value.Object(pairs...)
}

// Pair builds a member from any Go value accepted by mapper.Marshal.
func (*Builder) Pair(name string, x any) (value.Pair, error) {
	v, err := mapper.Marshal(x)
	if err != nil {
		return value.Pair{}, err
	}
	return value.NewPair(name, v), nil
}

// Build converts a Go value with mapper.Marshal.
func (*Builder) Build(x any) (*value.Value, error) {
	return mapper.Marshal(x)
}

// FromJSON parses text.
func (b *Builder) FromJSON(text string) (*value.Value, error) {
	return parser.Parse(text, b.opts...)
}

// FromReader parses everything r yields.
func (b *Builder) FromReader(r io.Reader) (*value.Value, error) {
	return parser.ParseReader(r, b.opts...)
}

// NewObject starts an ObjectBuilder.
func (*Builder) NewObject() *ObjectBuilder {
	return &ObjectBuilder{}
}

// NewArray starts an ArrayBuilder.
func (*Builder) NewArray() *ArrayBuilder {
	return &ArrayBuilder{}
}

// ObjectBuilder accumulates members. It is not safe for concurrent use.
type ObjectBuilder struct {
	pairs []value.Pair
}

// Put appends a member.
func (o *ObjectBuilder) Put(name string, v *value.Value) *ObjectBuilder {
	o.pairs = append(o.pairs, value.NewPair(name, v))
	return o
}

// PutAll appends pairs in order.
func (o *ObjectBuilder) PutAll(pairs ...value.Pair) *ObjectBuilder {
	o.pairs = append(o.pairs, pairs...)
	return o
}

// Build returns the object. The builder can keep being used afterwards.
func (o *ObjectBuilder) Build() *value.Value {
	return value.Object(o.pairs...)
}

// ArrayBuilder accumulates elements. It is not safe for concurrent use.
type ArrayBuilder struct {
	elems []*value.Value
}

// Add appends elements.
func (a *ArrayBuilder) Add(vals ...*value.Value) *ArrayBuilder {
	a.elems = append(a.elems, vals...)
	return a
}

// Build returns the array. The builder can keep being used afterwards.
func (a *ArrayBuilder) Build() *value.Value {
	return value.Array(a.elems...)
}
