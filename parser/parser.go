// Package parser reads RFC 8259 JSON text into immutable value.Value trees.
//
// The whole input must hold exactly one JSON value surrounded by optional
// whitespace. Parsing is a single forward pass with no recovery: malformed
// input yields a *ParseError and no value.
package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jacoelho/jsonhub/internal/debug"
	"github.com/jacoelho/jsonhub/internal/scan"
	"github.com/jacoelho/jsonhub/value"
)

// DefaultMaxDepth bounds array and object nesting.
const DefaultMaxDepth = 512

type Option func(*parser)

// WithMaxDepth sets the maximum nesting depth; n <= 0 keeps the default.
func WithMaxDepth(n int) Option {
	return func(p *parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

type parser struct {
	src      string
	maxDepth int
}

// Parse reads text as a single JSON value.
func Parse(text string, opts ...Option) (*value.Value, error) {
	p := &parser{src: text, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(p)
	}
	return p.parse()
}

func ParseBytes(data []byte, opts ...Option) (*value.Value, error) {
	return Parse(string(data), opts...)
}

// ParseReader reads r to the end before parsing.
func ParseReader(r io.Reader, opts ...Option) (*value.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("parser: read input: %w", err)
	}
	return ParseBytes(data, opts...)
}

func ParseFile(path string, opts ...Option) (*value.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("parser: %w", err)
	}
	v, err := ParseBytes(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

func (p *parser) parse() (*value.Value, error) {
	i := scan.SkipSpace(p.src, 0)
	if i == len(p.src) {
		return nil, p.fail(i, "empty input", nil)
	}
	if debug.Parse() {
		debug.Logf("parse: top-level %q at offset %d", p.src[i], i)
	}

	v, next, err := p.value(i, 0)
	if err != nil {
		return nil, err
	}
	if end := scan.SkipSpace(p.src, next); end != len(p.src) {
		return nil, p.fail(end, "unexpected content after value", nil)
	}
	return v, nil
}

func (p *parser) fail(offset int, msg string, err error) error {
	return &ParseError{
		Offset:  offset,
		Excerpt: scan.Excerpt(p.src, offset),
		Msg:     msg,
		Err:     err,
	}
}

// value parses the value starting at the significant byte i and returns it
// with the offset just past it.
func (p *parser) value(i, depth int) (*value.Value, int, error) {
	if i >= len(p.src) {
		return nil, i, p.fail(i, "unexpected end of input, expected a value", nil)
	}

	switch c := p.src[i]; c {
	case '"':
		s, next, err := p.str(i)
		if err != nil {
			return nil, i, err
		}
		return value.FromString(s), next, nil
	case '[':
		return p.array(i, depth+1)
	case '{':
		return p.object(i, depth+1)
	case ',', ':', ']', '}':
		return nil, i, p.fail(i, fmt.Sprintf("unexpected %q, expected a value", c), nil)
	default:
		return p.bare(i)
	}
}

// str reads a quoted string at i and returns its escaped content.
func (p *parser) str(i int) (*value.String, int, error) {
	end := scan.NextUnescaped(p.src, i+1, '"')
	if end < 0 {
		return nil, i, p.fail(i, "unterminated string", nil)
	}

	raw := p.src[i+1 : end]
	if err := value.ValidateEscaped(raw); err != nil {
		offset := i + 1
		var ee *value.EscapeError
		if errors.As(err, &ee) {
			offset += ee.Offset
		}
		return nil, i, p.fail(offset, "invalid string", err)
	}
	return value.Escaped(raw), end + 1, nil
}

// bare reads a literal or number running up to the next ',', ']', '}' or
// the end of input.
func (p *parser) bare(i int) (*value.Value, int, error) {
	end := scan.NextOf(p.src, i, ",]}")
	if end < 0 {
		end = len(p.src)
	}

	lexeme := strings.TrimRightFunc(p.src[i:end], func(r rune) bool { return r <= 0x20 })
	switch lexeme {
	case "null":
		return value.Null(), end, nil
	case "true":
		return value.True(), end, nil
	case "false":
		return value.False(), end, nil
	}

	v, err := value.Number(lexeme)
	if err != nil {
		return nil, i, p.fail(i, "invalid literal", err)
	}
	return v, end, nil
}

func (p *parser) enter(i, depth int) error {
	if depth > p.maxDepth {
		return p.fail(i, fmt.Sprintf("exceeds maximum depth %d", p.maxDepth), ErrTooDeep)
	}
	return nil
}

func (p *parser) array(start, depth int) (*value.Value, int, error) {
	if err := p.enter(start, depth); err != nil {
		return nil, start, err
	}

	i := scan.SkipSpace(p.src, start+1)
	if i < len(p.src) && p.src[i] == ']' {
		return value.EmptyArray(), i + 1, nil
	}

	var elems []*value.Value
	for {
		v, next, err := p.value(i, depth)
		if err != nil {
			return nil, start, err
		}
		elems = append(elems, v)

		k := scan.SkipSpace(p.src, next)
		if k >= len(p.src) {
			return nil, start, p.fail(start, "unterminated array", nil)
		}
		switch p.src[k] {
		case ',':
			i = scan.SkipSpace(p.src, k+1)
		case ']':
			return value.Array(elems...), k + 1, nil
		default:
			return nil, start, p.fail(k, fmt.Sprintf("unexpected %q in array, expected ',' or ']'", p.src[k]), nil)
		}
	}
}

func (p *parser) object(start, depth int) (*value.Value, int, error) {
	if err := p.enter(start, depth); err != nil {
		return nil, start, err
	}

	i := scan.SkipSpace(p.src, start+1)
	if i < len(p.src) && p.src[i] == '}' {
		return value.EmptyObject(), i + 1, nil
	}

	var pairs []value.Pair
	for {
		if i >= len(p.src) {
			return nil, start, p.fail(start, "unterminated object", nil)
		}
		if p.src[i] != '"' {
			return nil, start, p.fail(i, fmt.Sprintf("unexpected %q, expected member name", p.src[i]), nil)
		}
		name, next, err := p.str(i)
		if err != nil {
			return nil, start, err
		}

		k := scan.SkipSpace(p.src, next)
		if k >= len(p.src) || p.src[k] != ':' {
			return nil, start, p.fail(k, "expected ':' after member name", nil)
		}

		v, next, err := p.value(scan.SkipSpace(p.src, k+1), depth)
		if err != nil {
			return nil, start, err
		}
		pairs = append(pairs, value.Pair{Name: name, Value: v})

		k = scan.SkipSpace(p.src, next)
		if k >= len(p.src) {
			return nil, start, p.fail(start, "unterminated object", nil)
		}
		switch p.src[k] {
		case ',':
			i = scan.SkipSpace(p.src, k+1)
		case '}':
			return value.Object(pairs...), k + 1, nil
		default:
			return nil, start, p.fail(k, fmt.Sprintf("unexpected %q in object, expected ',' or '}'", p.src[k]), nil)
		}
	}
}
