package builder

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/jacoelho/jsonhub/mapper"
	"github.com/jacoelho/jsonhub/parser"
	"github.com/jacoelho/jsonhub/value"
)

func TestScalars(t *testing.T) {
	b := New()

	num, err := b.Number("1.50")
	if err != nil {
		t.Fatal(err)
	}
	flt, err := b.Float(0.25)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		v    *value.Value
		want string
	}{
		{name: "null", v: b.Null(), want: "null"},
		{name: "true", v: b.True(), want: "true"},
		{name: "false", v: b.False(), want: "false"},
		{name: "bool", v: b.Bool(true), want: "true"},
		{name: "int", v: b.Int(-12), want: "-12"},
		{name: "number_keeps_lexeme", v: num, want: "1.50"},
		{name: "float", v: flt, want: "0.25"},
		{name: "string", v: b.String("a\nb"), want: `"a\nb"`},
		{name: "empty_array", v: b.EmptyArray(), want: "[]"},
		{name: "empty_object", v: b.EmptyObject(), want: "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.ToJSON(); got != tt.want {
				t.Errorf("ToJSON() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestInvalidNumbers(t *testing.T) {
	b := New()
	if _, err := b.Number("01"); !errors.Is(err, value.ErrNumberFormat) {
		t.Errorf("Number(01) error = %v", err)
	}
	if _, err := b.Float(math.Inf(1)); err == nil {
		t.Error("Float(+Inf) should fail")
	}
}

func TestContainers(t *testing.T) {
	b := New()

	obj := b.Object(
		value.NewPair("a", b.Int(1)),
		value.NewPair("b", b.Array(b.True(), nil)),
		value.NewPair("a", b.Int(2)),
	)
	if got, want := obj.ToJSON(), `{"a":1,"b":[true,null],"a":2}`; got != want {
		t.Errorf("Object() = %s, want %s", got, want)
	}
	if v, _ := obj.Get("a"); v.ToJSON() != "1" {
		t.Errorf("first duplicate should win, got %s", v)
	}
}

func TestObjectAndArrayBuilders(t *testing.T) {
	b := New()

	arr := b.NewArray().Add(b.Int(1), b.Int(2))
	first := arr.Build()
	arr.Add(b.Int(3))

	p, err := b.Pair("tags", []string{"x", "y"})
	if err != nil {
		t.Fatal(err)
	}

	ob := b.NewObject().
		Put("name", b.String("jsonhub")).
		Put("list", arr.Build()).
		PutAll(p, value.NewPair("nothing", nil))

	if got, want := ob.Build().ToJSON(), `{"name":"jsonhub","list":[1,2,3],"tags":["x","y"],"nothing":null}`; got != want {
		t.Errorf("Build() = %s, want %s", got, want)
	}
	if got := first.ToJSON(); got != "[1,2]" {
		t.Errorf("earlier Build() result changed: %s", got)
	}
}

func TestBuildAndPairErrors(t *testing.T) {
	b := New()

	v, err := b.Build(struct {
		N int    `json:"n"`
		S string `json:"s,omitempty"`
	}{N: 3})
	if err != nil {
		t.Fatal(err)
	}
	if v.ToJSON() != `{"n":3}` {
		t.Errorf("Build() = %s", v)
	}

	if _, err := b.Pair("f", func() {}); !errors.Is(err, mapper.ErrUnsupportedType) {
		t.Errorf("Pair(func) error = %v", err)
	}
}

func TestFromJSON(t *testing.T) {
	b := New(parser.WithMaxDepth(2))

	v, err := b.FromJSON(`[[1]]`)
	if err != nil {
		t.Fatal(err)
	}
	if v.ToJSON() != "[[1]]" {
		t.Errorf("FromJSON() = %s", v)
	}
	if _, err := b.FromJSON(`[[[1]]]`); !errors.Is(err, parser.ErrTooDeep) {
		t.Errorf("FromJSON(deep) error = %v, want ErrTooDeep", err)
	}

	r, err := b.FromReader(strings.NewReader(` {"a" : null} `))
	if err != nil {
		t.Fatal(err)
	}
	if r.ToJSON() != `{"a":null}` {
		t.Errorf("FromReader() = %s", r)
	}
}
