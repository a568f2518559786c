// Package jsonc reads JSON with comments: // line comments, /* */ block
// comments and trailing commas before ] or }. Input is cleaned into plain
// JSON and handed to the parser package.
package jsonc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jacoelho/jsonhub/internal/debug"
	"github.com/jacoelho/jsonhub/internal/scan"
	"github.com/jacoelho/jsonhub/parser"
	"github.com/jacoelho/jsonhub/value"
)

// Read cleans lines and parses the result.
func Read(lines []string, opts ...parser.Option) (*value.Value, error) {
	cleaned, err := Clean(lines)
	if err != nil {
		return nil, err
	}
	if debug.JSONC() {
		debug.Logf("jsonc: cleaned %d lines:\n%s", len(lines), cleaned)
	}

	v, err := parser.Parse(cleaned, opts...)
	if err != nil {
		var pe *parser.ParseError
		if errors.As(err, &pe) {
			return nil, fmt.Errorf("jsonc: line %d: %w", lineOf(cleaned, pe.Offset), err)
		}
		return nil, err
	}
	return v, nil
}

func ReadString(text string, opts ...parser.Option) (*value.Value, error) {
	return Read(strings.Split(text, "\n"), opts...)
}

// ReadReader consumes r line by line before parsing.
func ReadReader(r io.Reader, opts ...parser.Option) (*value.Value, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("jsonc: read input: %w", err)
	}
	return Read(lines, opts...)
}

func ReadFile(path string, opts ...parser.Option) (*value.Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("jsonc: %w", err)
	}
	defer f.Close()

	v, err := ReadReader(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// Clean strips comments and trailing commas. Output keeps one line per
// input line so parser offsets map back to source lines.
func Clean(lines []string) (string, error) {
	var b strings.Builder
	inBlock := false
	var blockLine, blockCol int

	for n, line := range lines {
		if n > 0 {
			b.WriteByte('\n')
		}
		pos := 0
		if inBlock {
			end := strings.Index(line, "*/")
			if end < 0 {
				continue
			}
			inBlock = false
			pos = end + 2
		}

		for pos < len(line) {
			k := scan.NextOf(line, pos, `"/`)
			if k < 0 {
				b.WriteString(line[pos:])
				break
			}

			if line[k] == '"' {
				end := scan.NextUnescaped(line, k+1, '"')
				if end < 0 {
					return "", &StructureError{Line: n + 1, Column: k + 1}
				}
				b.WriteString(line[pos : end+1])
				pos = end + 1
				continue
			}

			b.WriteString(line[pos:k])
			switch {
			case scan.HasPrefixAt(line, k, "//"):
				pos = len(line)
			case scan.HasPrefixAt(line, k, "/*"):
				end := strings.Index(line[k+2:], "*/")
				if end < 0 {
					inBlock = true
					blockLine, blockCol = n+1, k+1
					pos = len(line)
					continue
				}
				pos = k + 2 + end + 2
			default:
				b.WriteByte('/')
				pos = k + 1
			}
		}
	}

	if inBlock {
		return "", &CommentUnterminatedError{Line: blockLine, Column: blockCol}
	}
	return dropTrailingCommas(b.String()), nil
}

// dropTrailingCommas removes a comma when the next significant byte closes
// an array or object. String contents are left alone.
func dropTrailingCommas(s string) string {
	var drop []int
	last := -1
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			end := scan.NextUnescaped(s, i+1, '"')
			if end < 0 {
				end = len(s) - 1
			}
			last = end
			i = end
		case c == ']' || c == '}':
			if last >= 0 && s[last] == ',' {
				drop = append(drop, last)
			}
			last = i
		case !scan.IsSpace(c):
			last = i
		}
	}
	if len(drop) == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	prev := 0
	for _, i := range drop {
		b.WriteString(s[prev:i])
		prev = i + 1
	}
	b.WriteString(s[prev:])
	return b.String()
}

func lineOf(s string, offset int) int {
	offset = min(offset, len(s))
	return strings.Count(s[:offset], "\n") + 1
}
