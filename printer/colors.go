package printer

import (
	"github.com/fatih/color"

	"github.com/jacoelho/jsonhub/value"
)

// Attr is the syntactic role of a coloured token.
type Attr int

const (
	ValueAttr Attr = iota
	NameAttr
	PunctAttr
)

type colorable struct {
	typ  value.Type
	attr Attr
}

// Colors maps (type, role) pairs to sprint functions. Pairs without an entry
// are written unchanged. The zero value paints nothing.
type Colors struct {
	m map[colorable]func(a ...any) string
}

// NewColors returns the default palette.
func NewColors() *Colors {
	c := &Colors{m: map[colorable]func(a ...any) string{}}

	punct := color.New(color.FgHiBlack).SprintFunc()
	c.Set(value.ArrayType, PunctAttr, punct)
	c.Set(value.ObjectType, PunctAttr, punct)

	c.Set(value.ObjectType, NameAttr, color.RGB(128, 168, 196).SprintFunc())
	c.Set(value.StringType, ValueAttr, color.RGB(8, 196, 16).SprintFunc())
	c.Set(value.NumberType, ValueAttr, color.RGB(128, 216, 236).SprintFunc())
	c.Set(value.NullType, ValueAttr, color.RGB(168, 0, 196).SprintFunc())

	boolean := color.New(color.FgCyan).SprintFunc()
	c.Set(value.TrueType, ValueAttr, boolean)
	c.Set(value.FalseType, ValueAttr, boolean)
	return c
}

// Set overrides the function used for t in role a. A nil fn removes it.
func (c *Colors) Set(t value.Type, a Attr, fn func(a ...any) string) {
	if fn == nil {
		delete(c.m, colorable{t, a})
		return
	}
	if c.m == nil {
		c.m = make(map[colorable]func(a ...any) string)
	}
	c.m[colorable{t, a}] = fn
}

func (c *Colors) paint(t value.Type, a Attr, s string) string {
	if c == nil {
		return s
	}
	if fn := c.m[colorable{t, a}]; fn != nil {
		return fn(s)
	}
	return s
}
