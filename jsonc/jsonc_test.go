package jsonc

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jacoelho/jsonhub/parser"
	"github.com/jacoelho/jsonhub/value"
)

var exampleLines = []string{
	"/*                         ",
	" * comments                ",
	" */                        ",
	"// comments                ",
	"{                          ",
	"  \"str\": \"STRING\",     ",
	"  \"num\": 100,            ",
	"  \"bool\": true,          ",
	"  \"array\": [             ",
	"    \"a\",                 ",
	"    \"b\",                 ",
	"    \"c\", //Trailing comma",
	"  ], //Trailing comma      ",
	"}                          ",
}

func TestReadExample(t *testing.T) {
	got, err := Read(exampleLines)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	want, err := parser.Parse(`{"str":"STRING","num":100,"bool":true,"array":["a","b","c"]}`)
	if err != nil {
		t.Fatal(err)
	}
	if !value.Equal(got, want) {
		t.Errorf("Read() = %s, want %s", got, want)
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{
			name:  "line_comment",
			lines: []string{`{"a": 1} // done`},
			want:  `{"a": 1} `,
		},
		{
			name:  "inline_block_comment",
			lines: []string{`[1, /* two */ 2]`},
			want:  `[1,  2]`,
		},
		{
			name:  "comment_markers_inside_string",
			lines: []string{`{"url": "http://x/*y*/", "q": "a\"//b"}`},
			want:  `{"url": "http://x/*y*/", "q": "a\"//b"}`,
		},
		{
			name:  "multiline_block_keeps_lines",
			lines: []string{`[1, /* start`, `still comment`, `end */ 2]`},
			want:  "[1, \n\n 2]",
		},
		{
			name:  "trailing_commas",
			lines: []string{`{"a": [1, 2, ], "b": {"c": 3,},}`},
			want:  `{"a": [1, 2 ], "b": {"c": 3}}`,
		},
		{
			name:  "comma_inside_string_untouched",
			lines: []string{`["x,]", "y,}",]`},
			want:  `["x,]", "y,}"]`,
		},
		{
			name:  "trailing_comma_across_lines",
			lines: []string{`[`, `  1,`, `  // last`, `]`},
			want:  "[\n  1\n  \n]",
		},
		{
			name:  "lone_slash_kept",
			lines: []string{`[1/2]`},
			want:  `[1/2]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Clean(tt.lines)
			if err != nil {
				t.Fatalf("Clean() error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Clean() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCleanErrors(t *testing.T) {
	_, err := Clean([]string{`{`, `  "a": 1 /* never`, `closed`, `}`})
	var ce *CommentUnterminatedError
	if !errors.As(err, &ce) {
		t.Fatalf("error = %v, want *CommentUnterminatedError", err)
	}
	if ce.Line != 2 || ce.Column != 10 {
		t.Errorf("position = %d:%d, want 2:10", ce.Line, ce.Column)
	}
	if !errors.Is(err, ErrCommentUnterminated) {
		t.Error("error should wrap ErrCommentUnterminated")
	}

	_, err = Clean([]string{`{"a": "open`, `"}`})
	var se *StructureError
	if !errors.As(err, &se) || se.Line != 1 || se.Column != 7 {
		t.Fatalf("error = %v, want StructureError at 1:7", err)
	}
	if !errors.Is(err, ErrUnterminatedString) {
		t.Error("error should wrap ErrUnterminatedString")
	}
}

func TestReadParseErrorLine(t *testing.T) {
	_, err := ReadString("{\n  \"a\": 1,\n  \"b\" 2\n}")
	if !errors.Is(err, parser.ErrParse) {
		t.Fatalf("error = %v, want parser.ErrParse", err)
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("error %q should name line 3", err)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.jsonc")
	content := strings.Join(exampleLines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	v, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if arr, ok := v.Lookup("array"); !ok || arr.ToJSON() != `["a","b","c"]` {
		t.Errorf("array = %v", arr)
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "nope.jsonc")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}
}
