package jsonhub

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jacoelho/jsonhub/jsonpath"
	"github.com/jacoelho/jsonhub/parser"
	"github.com/jacoelho/jsonhub/value"
)

func texts(vals []*value.Value) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		out = append(out, v.ToJSON())
	}
	return out
}

func TestReadQueryPrint(t *testing.T) {
	doc, err := FromJSONC(`{
  // inventory
  "items": [
    {"name": "a", "qty": 1.50},
    {"name": "b", "qty": 2},
  ],
}`)
	if err != nil {
		t.Fatal(err)
	}

	got, err := Query(doc, "$.items[*].qty")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"1.50", "2"}, texts(got)); diff != "" {
		t.Errorf("Query mismatch (-want +got):\n%s", diff)
	}

	rfc, err := QueryRFC9535(doc, "$.items[?@.qty > 1.6].name")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{`"b"`}, texts(rfc)); diff != "" {
		t.Errorf("QueryRFC9535 mismatch (-want +got):\n%s", diff)
	}

	want := "{\n  \"items\": [\n    {\n      \"name\": \"a\",\n      \"qty\": 1.50\n    },\n    {\n      \"name\": \"b\",\n      \"qty\": 2\n    }\n  ]\n}"
	if diff := cmp.Diff(want, Pretty(doc)); diff != "" {
		t.Errorf("Pretty mismatch (-want +got):\n%s", diff)
	}
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "doc.json")
	commented := filepath.Join(dir, "doc.jsonc")
	if err := os.WriteFile(plain, []byte(`[1,2]`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(commented, []byte("[1, 2, // two\n]"), 0644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{plain, commented} {
		v, err := FromFile(path)
		if err != nil {
			t.Fatalf("FromFile(%s): %v", path, err)
		}
		if v.ToJSON() != "[1,2]" {
			t.Errorf("FromFile(%s) = %s", path, v)
		}
	}

	if err := os.WriteFile(plain, []byte("[1, 2, // two\n]"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := FromFile(plain); !errors.Is(err, parser.ErrParse) {
		t.Errorf("comments in a .json file: error = %v, want ErrParse", err)
	}
}

func TestStructRoundTrip(t *testing.T) {
	type item struct {
		Name string  `json:"name"`
		Qty  float64 `json:"qty"`
		Note string  `json:"note,omitempty"`
	}

	v, err := FromStruct([]item{{Name: "a", Qty: 1.5}})
	if err != nil {
		t.Fatal(err)
	}
	if v.ToJSON() != `[{"name":"a","qty":1.5}]` {
		t.Errorf("FromStruct() = %s", v)
	}

	var back []item
	if err := ToStruct(v, &back); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]item{{Name: "a", Qty: 1.5}}, back); diff != "" {
		t.Errorf("ToStruct mismatch (-want +got):\n%s", diff)
	}
}

func TestQueryErrors(t *testing.T) {
	doc, err := FromJSON(`{}`)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Query(doc, "$[(@.length-1)]"); !errors.Is(err, jsonpath.ErrNotSupported) {
		t.Errorf("Query(script) error = %v, want ErrNotSupported", err)
	}
	if _, err := QueryRFC9535(doc, "$["); err == nil {
		t.Error("QueryRFC9535 should reject an unterminated bracket")
	}
}
