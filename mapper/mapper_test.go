package mapper

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/jacoelho/jsonhub/parser"
	"github.com/jacoelho/jsonhub/value"
)

type Base struct {
	ID uuid.UUID `json:"id"`
}

type Pet struct {
	Name string   `json:"name"`
	Tags []string `json:"tags,omitempty"`
}

type Owner struct {
	Base
	Name   string         `json:"name"`
	Age    int            `json:"age"`
	Score  float64        `json:"score"`
	Pets   []Pet          `json:"pets"`
	Extra  map[string]int `json:"extra,omitempty"`
	Nick   *string        `json:"nick"`
	Temp   Celsius        `json:"temp"`
	Secret string         `json:"-"`
}

// Celsius encodes itself as a string such as "21.5C".
type Celsius float64

func (c Celsius) MarshalValue() (*value.Value, error) {
	return value.NewString(fmt.Sprintf("%.1fC", float64(c))), nil
}

func (c *Celsius) UnmarshalValue(v *value.Value) error {
	s, err := v.Str()
	if err != nil {
		return err
	}
	var f float64
	if _, err := fmt.Sscanf(strings.TrimSuffix(s, "C"), "%g", &f); err != nil {
		return err
	}
	*c = Celsius(f)
	return nil
}

var ownerID = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

const ownerJSON = `{"id":"6ba7b810-9dad-11d1-80b4-00c04fd430c8","name":"Ann","age":30,"score":1.5,` +
	`"pets":[{"name":"Rex","tags":["good"]},{"name":"Tom"}],"extra":{"a":1,"b":2},"nick":null,"temp":"21.5C"}`

func newOwner() Owner {
	return Owner{
		Base:   Base{ID: ownerID},
		Name:   "Ann",
		Age:    30,
		Score:  1.5,
		Pets:   []Pet{{Name: "Rex", Tags: []string{"good"}}, {Name: "Tom"}},
		Extra:  map[string]int{"b": 2, "a": 1},
		Temp:   21.5,
		Secret: "hidden",
	}
}

func mustParse(t *testing.T, text string) *value.Value {
	t.Helper()
	v, err := parser.Parse(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return v
}

func TestMarshal(t *testing.T) {
	nick := "annie"

	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "struct", in: newOwner(), want: ownerJSON},
		{name: "pointer", in: &Pet{Name: "Rex"}, want: `{"name":"Rex"}`},
		{name: "nil", in: nil, want: "null"},
		{name: "nil_pointer", in: (*Pet)(nil), want: "null"},
		{name: "string_pointer", in: &nick, want: `"annie"`},
		{name: "bool", in: true, want: "true"},
		{name: "int", in: int8(-3), want: "-3"},
		{name: "uint", in: uint64(42), want: "42"},
		{name: "float32", in: float32(0.1), want: "0.1"},
		{name: "float32_integral", in: float32(2), want: "2.0"},
		{name: "float64", in: 2.5, want: "2.5"},
		{name: "string", in: "a\"b", want: `"a\"b"`},
		{name: "nil_slice", in: []int(nil), want: "null"},
		{name: "empty_slice", in: []int{}, want: "[]"},
		{name: "array", in: [2]bool{true, false}, want: "[true,false]"},
		{name: "map_sorted", in: map[string]any{"z": 1, "a": []any{"x", nil}}, want: `{"a":["x",null],"z":1}`},
		{name: "text_marshaler", in: ownerID, want: `"6ba7b810-9dad-11d1-80b4-00c04fd430c8"`},
		{name: "marshaler", in: Celsius(-4), want: `"-4.0C"`},
		{name: "value_passthrough", in: map[string]*value.Value{"v": value.Int(7)}, want: `{"v":7}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Marshal(tt.in)
			if err != nil {
				t.Fatalf("Marshal() error: %v", err)
			}
			if diff := cmp.Diff(tt.want, v.ToJSON()); diff != "" {
				t.Errorf("Marshal() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

type Node struct {
	Next *Node `json:"next"`
}

func TestMarshalErrors(t *testing.T) {
	loop := &Node{}
	loop.Next = loop

	tests := []struct {
		name     string
		in       any
		wantErr  error
		wantPath string
	}{
		{name: "channel", in: make(chan int), wantErr: ErrUnsupportedType},
		{name: "int_keys", in: map[int]string{1: "a"}, wantErr: ErrUnsupportedType},
		{name: "nan", in: []float64{1, math.NaN()}, wantErr: ErrUnsupportedType, wantPath: "[1]"},
		{name: "cycle", in: loop, wantErr: ErrCycle, wantPath: "next"},
		{name: "nested_func", in: map[string]any{"f": func() {}}, wantErr: ErrUnsupportedType, wantPath: "f"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Marshal(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Marshal() error = %v, want %v", err, tt.wantErr)
			}
			var me *MarshalError
			if !errors.As(err, &me) {
				t.Fatalf("error %v is not a *MarshalError", err)
			}
			if me.FieldPath != tt.wantPath {
				t.Errorf("FieldPath = %q, want %q", me.FieldPath, tt.wantPath)
			}
		})
	}
}

func TestUnmarshalStruct(t *testing.T) {
	var got Owner
	if err := Unmarshal(mustParse(t, ownerJSON), &got); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	want := newOwner()
	want.Secret = ""
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Unmarshal() mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTrip(t *testing.T) {
	in := newOwner()
	in.Secret = ""
	nick := "annie"
	in.Nick = &nick

	v, err := Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	var out Owner
	if err := Unmarshal(v, &out); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalInterface(t *testing.T) {
	var got any
	if err := Unmarshal(mustParse(t, `{"a":[1,2.5,"s",true,null],"b":{}}`), &got); err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"a": []any{int64(1), 2.5, "s", true, nil},
		"b": map[string]any{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalDetails(t *testing.T) {
	t.Run("first_duplicate_wins", func(t *testing.T) {
		var p Pet
		if err := Unmarshal(mustParse(t, `{"name":"a","name":"b"}`), &p); err != nil {
			t.Fatal(err)
		}
		if p.Name != "a" {
			t.Errorf("Name = %q, want a", p.Name)
		}
	})

	t.Run("case_insensitive", func(t *testing.T) {
		var p Pet
		if err := Unmarshal(mustParse(t, `{"NAME":"x","unknown":1}`), &p); err != nil {
			t.Fatal(err)
		}
		if p.Name != "x" {
			t.Errorf("Name = %q, want x", p.Name)
		}
	})

	t.Run("null_zeroes_pointer", func(t *testing.T) {
		p := &Pet{Name: "x"}
		if err := Unmarshal(value.Null(), &p); err != nil {
			t.Fatal(err)
		}
		if p != nil {
			t.Errorf("pointer = %v, want nil", p)
		}
	})

	t.Run("null_keeps_scalar", func(t *testing.T) {
		n := 5
		if err := Unmarshal(value.Null(), &n); err != nil {
			t.Fatal(err)
		}
		if n != 5 {
			t.Errorf("n = %d, want 5", n)
		}
	})

	t.Run("embedded_pointer", func(t *testing.T) {
		type wrapper struct {
			*Base
			N int `json:"n"`
		}
		var w wrapper
		if err := Unmarshal(mustParse(t, `{"id":"6ba7b810-9dad-11d1-80b4-00c04fd430c8","n":1}`), &w); err != nil {
			t.Fatal(err)
		}
		if w.Base == nil || w.ID != ownerID || w.N != 1 {
			t.Errorf("got %+v", w)
		}
	})

	t.Run("array_shorter_and_longer", func(t *testing.T) {
		a := [3]int{9, 9, 9}
		if err := Unmarshal(mustParse(t, `[1,2]`), &a); err != nil {
			t.Fatal(err)
		}
		if a != [3]int{1, 2, 0} {
			t.Errorf("a = %v", a)
		}
		b := [1]int{}
		if err := Unmarshal(mustParse(t, `[7,8]`), &b); err != nil {
			t.Fatal(err)
		}
		if b != [1]int{7} {
			t.Errorf("b = %v", b)
		}
	})

	t.Run("value_field", func(t *testing.T) {
		var env struct {
			Kind string       `json:"kind"`
			Raw  *value.Value `json:"raw"`
		}
		if err := Unmarshal(mustParse(t, `{"kind":"k","raw":{"x":[1]}}`), &env); err != nil {
			t.Fatal(err)
		}
		if env.Raw.ToJSON() != `{"x":[1]}` {
			t.Errorf("Raw = %s", env.Raw)
		}
	})

	t.Run("integral_float", func(t *testing.T) {
		var n int
		if err := Unmarshal(mustParse(t, `3.0`), &n); err != nil {
			t.Fatal(err)
		}
		if n != 3 {
			t.Errorf("n = %d", n)
		}
	})
}

func TestUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		target   func() any
		wantErr  error
		wantPath string
	}{
		{name: "not_pointer", doc: `1`, target: func() any { return 1 }, wantErr: ErrInvalidTarget},
		{name: "nil_pointer", doc: `1`, target: func() any { return (*int)(nil) }, wantErr: ErrInvalidTarget},
		{name: "string_into_int", doc: `{"age":"x"}`, target: func() any { return &Owner{} }, wantErr: value.ErrTypeMismatch, wantPath: "age"},
		{name: "fraction_into_int", doc: `{"age":1.5}`, target: func() any { return &Owner{} }, wantErr: ErrOverflow, wantPath: "age"},
		{name: "int8_overflow", doc: `300`, target: func() any { return new(int8) }, wantErr: ErrOverflow},
		{name: "negative_uint", doc: `-1`, target: func() any { return new(uint) }, wantErr: ErrOverflow},
		{name: "object_into_slice", doc: `{"pets":{}}`, target: func() any { return &Owner{} }, wantErr: value.ErrTypeMismatch, wantPath: "pets"},
		{name: "nested_path", doc: `{"pets":[{"name":1}]}`, target: func() any { return &Owner{} }, wantErr: value.ErrTypeMismatch, wantPath: "pets[0].name"},
		{name: "bad_uuid", doc: `{"id":"nope"}`, target: func() any { return &Owner{} }, wantPath: "id"},
		{name: "channel", doc: `1`, target: func() any { return new(chan int) }, wantErr: ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Unmarshal(mustParse(t, tt.doc), tt.target())
			if err == nil {
				t.Fatal("Unmarshal() succeeded, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("Unmarshal() error = %v, want %v", err, tt.wantErr)
			}
			var ue *UnmarshalError
			if !errors.As(err, &ue) {
				t.Fatalf("error %v is not an *UnmarshalError", err)
			}
			if ue.FieldPath != tt.wantPath {
				t.Errorf("FieldPath = %q, want %q", ue.FieldPath, tt.wantPath)
			}
		})
	}
}
