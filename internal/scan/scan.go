// Package scan holds the character-seek helpers shared by the JSON parser,
// the JSONC cleaner and the JsonPath compiler.
package scan

import "strings"

// IsSpace reports insignificant whitespace: every byte at or below 0x20.
func IsSpace(c byte) bool {
	return c <= 0x20
}

// SkipSpace returns the index of the first significant byte at or after
// from, or len(s).
func SkipSpace(s string, from int) int {
	for from < len(s) && IsSpace(s[from]) {
		from++
	}
	return from
}

// SkipSpaceBack returns the index of the last significant byte at or before
// from, or -1.
func SkipSpaceBack(s string, from int) int {
	for from >= 0 && IsSpace(s[from]) {
		from--
	}
	return from
}

// NextOf returns the index of the first byte at or after from that is in
// set, or -1.
func NextOf(s string, from int, set string) int {
	if from >= len(s) {
		return -1
	}
	i := strings.IndexAny(s[from:], set)
	if i < 0 {
		return -1
	}
	return from + i
}

// NextUnescaped returns the index of the first c at or after from that is
// not preceded by a backslash escape, or -1.
func NextUnescaped(s string, from int, c byte) int {
	for i := from; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case c:
			return i
		}
	}
	return -1
}

// NextOfUnescaped is NextUnescaped for any byte in set.
func NextOfUnescaped(s string, from int, set string) int {
	for i := from; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if strings.IndexByte(set, s[i]) >= 0 {
			return i
		}
	}
	return -1
}

// HasPrefixAt reports whether s[at:] starts with prefix.
func HasPrefixAt(s string, at int, prefix string) bool {
	return at >= 0 && at <= len(s) && strings.HasPrefix(s[at:], prefix)
}

const excerptRadius = 16

// Excerpt renders up to 16 bytes on either side of offset, marking elided
// text with "...".
func Excerpt(s string, offset int) string {
	offset = max(0, min(offset, len(s)))
	start := max(0, offset-excerptRadius)
	end := min(len(s), offset+excerptRadius)

	var b strings.Builder
	if start > 0 {
		b.WriteString("...")
	}
	b.WriteString(s[start:end])
	if end < len(s) {
		b.WriteString("...")
	}
	return b.String()
}
