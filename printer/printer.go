// Package printer writes value trees as text using a configurable layout.
package printer

import (
	"io"
	"os"
	"strings"

	"github.com/jacoelho/jsonhub/value"
)

// Printer formats values according to a Config. A Printer is immutable and
// safe for concurrent use.
type Printer struct {
	cfg    Config
	colors *Colors
}

type Option func(*Printer)

// WithColors paints tokens with c.
func WithColors(c *Colors) Option {
	return func(p *Printer) {
		p.colors = c
	}
}

func New(cfg Config, opts ...Option) *Printer {
	p := &Printer{cfg: cfg}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultPrinter = New(DefaultConfig())

// Pretty prints v with DefaultConfig.
func Pretty(v *value.Value) string {
	return defaultPrinter.Print(v)
}

// Print returns the formatted text of v.
func (p *Printer) Print(v *value.Value) string {
	if p.colors == nil && p.cfg.compact() {
		if p.cfg.ExcludeNulls {
			return v.ToJSONExcludingNulls()
		}
		return v.ToJSON()
	}

	var b strings.Builder
	p.write(&b, v, 0)
	return b.String()
}

// Fprint writes the formatted text of v to w.
func (p *Printer) Fprint(w io.Writer, v *value.Value) error {
	_, err := io.WriteString(w, p.Print(v))
	return err
}

// WriteFile writes the formatted text of v to path, followed by the line
// separator.
func (p *Printer) WriteFile(path string, v *value.Value) error {
	return os.WriteFile(path, []byte(p.Print(v)+p.cfg.LineSeparator), 0o644)
}

func (p *Printer) write(b *strings.Builder, v *value.Value, level int) {
	switch t := v.Type(); t {
	case value.ArrayType:
		b.WriteString(p.colors.paint(t, PunctAttr, "["))
		n, _ := v.Len()
		if n == 0 {
			p.blank(b, level)
		} else {
			p.newline(b, level+1)
			first := true
			for e := range v.All() {
				if !first {
					p.valueSeparator(b, t, level+1)
				}
				first = false
				p.write(b, e, level+1)
			}
			p.newline(b, level)
		}
		b.WriteString(p.colors.paint(t, PunctAttr, "]"))

	case value.ObjectType:
		b.WriteString(p.colors.paint(t, PunctAttr, "{"))
		first := true
		for name, m := range v.Members() {
			if p.cfg.ExcludeNulls && m.IsNull() {
				continue
			}
			if first {
				p.newline(b, level+1)
			} else {
				p.valueSeparator(b, t, level+1)
			}
			first = false
			b.WriteString(p.colors.paint(t, NameAttr, name.Quoted()))
			b.WriteString(p.cfg.PrefixNameSeparator)
			b.WriteString(p.colors.paint(t, PunctAttr, ":"))
			b.WriteString(p.cfg.SuffixNameSeparator)
			p.write(b, m, level+1)
		}
		if first {
			p.blank(b, level)
		} else {
			p.newline(b, level)
		}
		b.WriteString(p.colors.paint(t, PunctAttr, "}"))

	default:
		b.WriteString(p.colors.paint(t, ValueAttr, v.ToJSON()))
	}
}

func (p *Printer) newline(b *strings.Builder, level int) {
	b.WriteString(p.cfg.LineSeparator)
	for range level {
		b.WriteString(p.cfg.Indent)
	}
}

func (p *Printer) blank(b *strings.Builder, level int) {
	if p.cfg.LineSeparateIfBlank {
		p.newline(b, level)
	}
}

func (p *Printer) valueSeparator(b *strings.Builder, t value.Type, level int) {
	if p.cfg.LineSeparateBeforeValueSeparator {
		p.newline(b, level)
	}
	b.WriteString(p.cfg.PrefixValueSeparator)
	b.WriteString(p.colors.paint(t, PunctAttr, ","))
	b.WriteString(p.cfg.SuffixValueSeparator)
	if p.cfg.LineSeparateAfterValueSeparator {
		p.newline(b, level)
	}
}
