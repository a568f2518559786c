package value

import (
	"sync/atomic"
	"unicode/utf8"
)

// String is JSON string content held in one of two forms: escaped (as it
// appears between quotes on the wire) or unescaped (the logical text). The
// form a String was not built from is derived on first access and cached.
type String struct {
	escaped   atomic.Pointer[string]
	unescaped atomic.Pointer[string]
}

var emptyString = newBothForms("", "")

func newBothForms(esc, unesc string) *String {
	s := &String{}
	s.escaped.Store(&esc)
	s.unescaped.Store(&unesc)
	return s
}

// Escaped returns a String from wire content. raw is not validated; invalid
// escapes resolve leniently to the escaped character.
func Escaped(raw string) *String {
	if raw == "" {
		return emptyString
	}
	s := &String{}
	s.escaped.Store(&raw)
	return s
}

// Unescaped returns a String holding the logical text s.
func Unescaped(s string) *String {
	if s == "" {
		return emptyString
	}
	js := &String{}
	js.unescaped.Store(&s)
	return js
}

// Escaped returns the wire form, without the surrounding quotes.
func (s *String) Escaped() string {
	if s == nil {
		return ""
	}
	if p := s.escaped.Load(); p != nil {
		return *p
	}
	u := s.unescaped.Load()
	if u == nil {
		return ""
	}
	e := escape(*u)
	s.escaped.CompareAndSwap(nil, &e)
	return *s.escaped.Load()
}

// Unescaped returns the logical text.
func (s *String) Unescaped() string {
	if s == nil {
		return ""
	}
	if p := s.unescaped.Load(); p != nil {
		return *p
	}
	e := s.escaped.Load()
	if e == nil {
		return ""
	}
	u := unescape(*e)
	s.unescaped.CompareAndSwap(nil, &u)
	return *s.unescaped.Load()
}

// String implements fmt.Stringer with the logical text.
func (s *String) String() string {
	return s.Unescaped()
}

// Quoted returns the escaped form wrapped in double quotes.
func (s *String) Quoted() string {
	e := s.Escaped()
	b := make([]byte, 0, len(e)+2)
	b = append(b, '"')
	b = append(b, e...)
	b = append(b, '"')
	return string(b)
}

// Len counts code points of the unescaped form.
func (s *String) Len() int {
	return utf8.RuneCountInString(s.Unescaped())
}

// IsEmpty checks whichever form is already present, so it never forces
// the other one. Both forms are empty together.
func (s *String) IsEmpty() bool {
	if s == nil {
		return true
	}
	if p := s.escaped.Load(); p != nil {
		return *p == ""
	}
	if p := s.unescaped.Load(); p != nil {
		return *p == ""
	}
	return true
}

// Equal compares unescaped forms.
func (s *String) Equal(o *String) bool {
	if s == o {
		return true
	}
	return s.Unescaped() == o.Unescaped()
}
