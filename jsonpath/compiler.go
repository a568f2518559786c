package jsonpath

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jacoelho/jsonhub/internal/scan"
	"github.com/jacoelho/jsonhub/value"
)

type compiler struct {
	src string // full expression, offsets refer to it
	end int    // len(src) without trailing whitespace
	cfg config
}

func compile(src string, cfg config) ([]segment, error) {
	c := &compiler{src: src, cfg: cfg}
	c.end = scan.SkipSpaceBack(src, len(src)-1) + 1

	i := scan.SkipSpace(src, 0)
	if i >= c.end || src[i] != '$' {
		return nil, c.errorf(i, "expression must start with '$'")
	}
	i++

	segs := []segment{}
	for i < c.end {
		seg, next, err := c.parseSegment(i)
		if err != nil {
			return nil, err
		}
		segs = append(segs, seg)
		i = next
	}
	return segs, nil
}

func (c *compiler) errorf(offset int, format string, args ...any) error {
	return &ParseError{Expr: c.src, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

func (c *compiler) has(i int, prefix string) bool {
	return i+len(prefix) <= c.end && scan.HasPrefixAt(c.src, i, prefix)
}

func (c *compiler) parseSegment(i int) (segment, int, error) {
	switch {
	case c.has(i, "..."):
		return segment{}, i, c.errorf(i, "unexpected '...'")
	case c.has(i, "..["):
		return c.parseBracket(i+3, true)
	case c.has(i, "..*"):
		return segment{deep: true, sel: wildcardSel{}}, i + 3, nil
	case c.has(i, ".*"):
		return segment{sel: wildcardSel{}}, i + 2, nil
	case c.has(i, ".."):
		return c.parseDotName(i, i+2, true)
	case c.has(i, ".["):
		return c.parseBracket(i+2, false)
	case c.has(i, "."):
		return c.parseDotName(i, i+1, false)
	case c.has(i, "["):
		return c.parseBracket(i+1, false)
	}
	return segment{}, i, c.errorf(i, "unexpected %q, expected '.' or '['", c.src[i])
}

// parseDotName reads a member name running to the next unescaped '.' or '['.
func (c *compiler) parseDotName(at, i int, deep bool) (segment, int, error) {
	next := scan.NextOfUnescaped(c.src[:c.end], i, ".[")
	if next < 0 {
		next = c.end
	}
	if next == i {
		return segment{}, i, c.errorf(at, "missing member name")
	}
	return segment{deep: deep, sel: nameSel{value.Escaped(c.src[i:next])}}, next, nil
}

// parseBracket parses the content after '[' through the closing ']'.
func (c *compiler) parseBracket(i int, deep bool) (segment, int, error) {
	open := i - 1
	j := scan.SkipSpace(c.src[:c.end], i)
	if j >= c.end {
		return segment{}, open, c.errorf(open, "unterminated bracket")
	}

	switch ch := c.src[j]; {
	case ch == '*':
		k := scan.SkipSpace(c.src[:c.end], j+1)
		if k >= c.end || c.src[k] != ']' {
			return segment{}, k, c.errorf(k, "expected ']' after '*'")
		}
		return segment{deep: deep, sel: wildcardSel{}}, k + 1, nil

	case ch >= '0' && ch <= '9', ch == '-', ch == '+', ch == ':':
		end := strings.IndexByte(c.src[j:c.end], ']')
		if end < 0 {
			return segment{}, open, c.errorf(open, "unterminated bracket")
		}
		sel, err := c.parseIndexes(j, c.src[j:j+end])
		if err != nil {
			return segment{}, j, err
		}
		return segment{deep: deep, sel: sel}, j + end + 1, nil

	case ch == '\'' || ch == '"':
		sel, next, err := c.parseQuotedNames(j)
		if err != nil {
			return segment{}, j, err
		}
		return segment{deep: deep, sel: sel}, next, nil

	case ch == '?':
		k := scan.SkipSpace(c.src[:c.end], j+1)
		if k >= c.end || c.src[k] != '(' {
			return segment{}, k, c.errorf(k, "expected '(' after '?'")
		}
		body, next, err := c.parseScript(k)
		if err != nil {
			return segment{}, k, err
		}
		if !c.cfg.filters {
			return segment{}, j, &UnsupportedError{Construct: "?()", Offset: j}
		}
		f, err := compileFilter(strings.TrimSpace(body))
		if err != nil {
			return segment{}, j, c.errorf(k, "invalid filter: %v", err)
		}
		return segment{deep: deep, sel: f}, next, nil

	case ch == '(':
		if _, _, err := c.parseScript(j); err != nil {
			return segment{}, j, err
		}
		return segment{}, j, &UnsupportedError{Construct: "()", Offset: j}
	}

	return segment{}, j, c.errorf(j, "unrecognized bracket content %q", c.src[j])
}

// parseIndexes parses comma separated indexes and slices. base is the offset
// of content in the expression.
func (c *compiler) parseIndexes(base int, content string) (indexSel, error) {
	var sel indexSel
	offset := base
	for _, part := range strings.Split(content, ",") {
		s, err := c.parseSlice(offset, part)
		if err != nil {
			return nil, err
		}
		sel = append(sel, s)
		offset += len(part) + 1
	}
	return sel, nil
}

func (c *compiler) parseSlice(offset int, part string) (slice, error) {
	fields := strings.SplitN(part, ":", 3)
	nums := make([]int, len(fields))
	present := make([]bool, len(fields))
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			if len(fields) == 1 {
				return slice{}, c.errorf(offset, "empty index")
			}
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return slice{}, c.errorf(offset, "invalid index %q", f)
		}
		nums[i], present[i] = n, true
	}

	if len(fields) == 1 {
		return slice{start: nums[0], single: true, step: 1}, nil
	}

	s := slice{
		start:    nums[0],
		hasStart: present[0],
		end:      nums[1],
		hasEnd:   present[1],
		step:     1,
	}
	if len(fields) == 3 && present[2] {
		if nums[2] == 0 {
			return slice{}, c.errorf(offset, "slice step cannot be zero")
		}
		s.step = nums[2]
	}
	return s, nil
}

// parseQuotedNames reads 'a', "b", ... through the closing ']'.
func (c *compiler) parseQuotedNames(i int) (nameSel, int, error) {
	var sel nameSel
	for {
		q := c.src[i]
		end := scan.NextUnescaped(c.src[:c.end], i+1, q)
		if end < 0 {
			return nil, i, c.errorf(i, "unterminated quoted name")
		}
		sel = append(sel, value.Escaped(c.src[i+1:end]))

		k := scan.SkipSpace(c.src[:c.end], end+1)
		if k >= c.end {
			return nil, k, c.errorf(k, "unterminated bracket")
		}
		switch c.src[k] {
		case ']':
			return sel, k + 1, nil
		case ',':
			i = scan.SkipSpace(c.src[:c.end], k+1)
			if i >= c.end || (c.src[i] != '\'' && c.src[i] != '"') {
				return nil, i, c.errorf(i, "expected quoted name")
			}
		default:
			return nil, k, c.errorf(k, "unexpected %q after quoted name", c.src[k])
		}
	}
}

// parseScript scans a parenthesised expression starting at the '(' at i and
// the ']' closing its bracket. It returns the text between the parentheses
// and the offset after the ']'.
func (c *compiler) parseScript(i int) (string, int, error) {
	end := findScriptEnd(c.src[:c.end], i+1)
	if end < 0 {
		return "", i, c.errorf(i, "unterminated '('")
	}
	k := scan.SkipSpace(c.src[:c.end], end)
	if k >= c.end || c.src[k] != ']' {
		return "", k, c.errorf(k, "expected ']' after ')'")
	}
	return c.src[i+1 : end-1], k + 1, nil
}

// findScriptEnd returns the offset just past the ')' balancing an already
// consumed '(' or -1. Quoted text is skipped.
func findScriptEnd(s string, from int) int {
	depth := 1
	for p := from; p < len(s); {
		r := scan.NextOf(s, p, `()"'`)
		if r < 0 {
			return -1
		}
		p = r + 1
		switch s[r] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return p
			}
		default:
			q := scan.NextUnescaped(s, p, s[r])
			if q < 0 {
				return -1
			}
			p = q + 1
		}
	}
	return -1
}
