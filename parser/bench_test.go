package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/valyala/fastjson"
)

func benchDocument() string {
	var b strings.Builder
	b.WriteString(`{"items":[`)
	for i := range 1000 {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, `{"id":%d,"name":"Item %d","value":%d.5,"tags":["a\n%d","b"],"active":%v}`, i, i, i*10, i, i%3 == 0)
	}
	b.WriteString(`],"count":1000}`)
	return b.String()
}

func BenchmarkParse(b *testing.B) {
	doc := benchDocument()

	b.SetBytes(int64(len(doc)))
	b.ReportAllocs()
	for b.Loop() {
		if _, err := Parse(doc); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFastJSONParse(b *testing.B) {
	doc := benchDocument()
	var p fastjson.Parser

	b.SetBytes(int64(len(doc)))
	b.ReportAllocs()
	for b.Loop() {
		if _, err := p.Parse(doc); err != nil {
			b.Fatal(err)
		}
	}
}
