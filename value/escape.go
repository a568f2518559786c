package value

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

const hexDigits = "0123456789abcdef"

// EscapeError describes the first malformed escape sequence in an escaped string.
type EscapeError struct {
	Offset int
	Reason string
}

func (e *EscapeError) Error() string {
	return fmt.Sprintf("invalid string content at offset %d: %s", e.Offset, e.Reason)
}

// ValidateEscaped checks that raw is valid content for a JSON string literal
// (the text between the quotes): no raw control characters, only the escapes
// defined by RFC 8259 and valid UTF-8.
func ValidateEscaped(raw string) error {
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c < 0x20 {
			return &EscapeError{Offset: i, Reason: fmt.Sprintf("control character %#02x", c)}
		}
		if c != '\\' {
			continue
		}
		if i+1 >= len(raw) {
			return &EscapeError{Offset: i, Reason: "dangling backslash"}
		}
		i++
		switch raw[i] {
		case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		case 'u':
			if len(raw)-(i+1) < 4 {
				return &EscapeError{Offset: i - 1, Reason: "truncated \\u escape"}
			}
			if _, ok := decodeHex4(raw[i+1 : i+5]); !ok {
				return &EscapeError{Offset: i - 1, Reason: fmt.Sprintf("bad \\u escape %q", raw[i-1:i+5])}
			}
			i += 4
		default:
			return &EscapeError{Offset: i - 1, Reason: fmt.Sprintf("unknown escape \\%c", raw[i])}
		}
	}
	if !utf8.ValidString(raw) {
		return &EscapeError{Offset: invalidUTF8Offset(raw), Reason: "invalid UTF-8"}
	}
	return nil
}

func invalidUTF8Offset(s string) int {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(s)
}

// escape renders the logical text s as JSON string content.
func escape(s string) string {
	if !needsEscape(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch c {
			case '"':
				b.WriteString(`\"`)
			case '\\':
				b.WriteString(`\\`)
			case '\b':
				b.WriteString(`\b`)
			case '\f':
				b.WriteString(`\f`)
			case '\n':
				b.WriteString(`\n`)
			case '\r':
				b.WriteString(`\r`)
			case '\t':
				b.WriteString(`\t`)
			default:
				if c < 0x20 {
					b.WriteString(`\u00`)
					b.WriteByte(hexDigits[c>>4])
					b.WriteByte(hexDigits[c&0xf])
				} else {
					b.WriteByte(c)
				}
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteRune(utf8.RuneError)
		} else {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

func needsEscape(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x20 || c == '"' || c == '\\' {
			return true
		}
	}
	return !utf8.ValidString(s)
}

// unescape resolves escape sequences. Malformed input is handled leniently:
// an unknown escape yields the escaped character itself.
func unescape(raw string) string {
	if strings.IndexByte(raw, '\\') < 0 {
		return raw
	}

	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(raw) {
			b.WriteByte('\\')
			break
		}
		i++
		switch raw[i] {
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'u':
			r, n := decodeUnicodeEscape(raw[i+1:])
			if n == 0 {
				b.WriteByte('u')
				continue
			}
			b.WriteRune(r)
			i += n
		default:
			b.WriteByte(raw[i])
		}
	}
	return b.String()
}

// decodeUnicodeEscape decodes the XXXX of a \uXXXX escape, joining a following
// low surrogate escape when present. It returns the rune and the number of
// bytes consumed after the 'u', or 0 when s does not start with four hex digits.
func decodeUnicodeEscape(s string) (rune, int) {
	if len(s) < 4 {
		return 0, 0
	}
	r, ok := decodeHex4(s[:4])
	if !ok {
		return 0, 0
	}
	if !utf16.IsSurrogate(r) {
		return r, 4
	}
	if len(s) >= 10 && s[4] == '\\' && s[5] == 'u' {
		if r2, ok := decodeHex4(s[6:10]); ok {
			if dr := utf16.DecodeRune(r, r2); dr != utf8.RuneError {
				return dr, 10
			}
		}
	}
	return utf8.RuneError, 4
}

func decodeHex4(s string) (rune, bool) {
	if len(s) < 4 {
		return 0, false
	}
	var r rune
	for i := 0; i < 4; i++ {
		c := s[i]
		var d byte
		switch {
		case c >= '0' && c <= '9':
			d = c - '0'
		case c >= 'a' && c <= 'f':
			d = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			d = c - 'A' + 10
		default:
			return 0, false
		}
		r = r<<4 | rune(d)
	}
	return r, true
}
