package value

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var errNumberSyntax = errors.New("not an RFC 8259 number")

// Numeric is a decoded number together with the lexeme it was read from.
// The lexeme is what gets serialized.
type Numeric struct {
	lexeme  string
	isFloat bool
	i       int64
	f       float64
}

// ParseNumber validates lexeme against the RFC 8259 number grammar and
// decodes it. A fraction or exponent selects floating point decoding,
// anything else integral decoding.
func ParseNumber(lexeme string) (Numeric, error) {
	if !validNumber(lexeme) {
		return Numeric{}, &NumberFormatError{Lexeme: lexeme, Err: errNumberSyntax}
	}

	if strings.ContainsAny(lexeme, ".eE") {
		f, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			return Numeric{}, &NumberFormatError{Lexeme: lexeme, Err: unwrapNumError(err)}
		}
		return Numeric{lexeme: lexeme, isFloat: true, f: f}, nil
	}

	i, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		return Numeric{}, &NumberFormatError{Lexeme: lexeme, Err: unwrapNumError(err)}
	}
	return Numeric{lexeme: lexeme, i: i}, nil
}

func unwrapNumError(err error) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return ne.Err
	}
	return err
}

func intNumeric(i int64) Numeric {
	return Numeric{lexeme: strconv.FormatInt(i, 10), i: i}
}

func floatNumeric(f float64) (Numeric, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Numeric{}, &NumberFormatError{Lexeme: strconv.FormatFloat(f, 'g', -1, 64), Err: errNumberSyntax}
	}
	lexeme := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(lexeme, ".eE") {
		lexeme += ".0"
	}
	return Numeric{lexeme: lexeme, isFloat: true, f: f}, nil
}

func (n Numeric) Lexeme() string { return n.lexeme }

func (n Numeric) IsFloat() bool { return n.isFloat }

// Int64 returns the integral value; floats are truncated toward zero.
func (n Numeric) Int64() int64 {
	if n.isFloat {
		return int64(n.f)
	}
	return n.i
}

func (n Numeric) Float64() float64 {
	if n.isFloat {
		return n.f
	}
	return float64(n.i)
}

func (n Numeric) String() string { return n.lexeme }

// Equal reports whether both numbers decode to the same kind and value.
func (n Numeric) Equal(o Numeric) bool {
	if n.isFloat != o.isFloat {
		return false
	}
	if n.isFloat {
		return n.f == o.f
	}
	return n.i == o.i
}

// validNumber implements
//
//	number = [ minus ] int [ frac ] [ exp ]
func validNumber(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	switch {
	case i >= len(s):
		return false
	case s[i] == '0':
		i++
	case s[i] >= '1' && s[i] <= '9':
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	default:
		return false
	}

	if i < len(s) && s[i] == '.' {
		i++
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == start {
			return false
		}
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == start {
			return false
		}
	}
	return i == len(s)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
