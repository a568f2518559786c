package runner

import (
	"context"
	"fmt"
	"io"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/jacoelho/jsonhub/builder"
	"github.com/jacoelho/jsonhub/internal/config"
	"github.com/jacoelho/jsonhub/internal/exit"
	"github.com/jacoelho/jsonhub/internal/rfc9535"
	"github.com/jacoelho/jsonhub/jsonpath"
	"github.com/jacoelho/jsonhub/parser"
	"github.com/jacoelho/jsonhub/printer"
	"github.com/jacoelho/jsonhub/value"
)

// format prints every input document.
func (r *Runner) format(ctx context.Context) error {
	p := r.newPrinter()
	w := r.payloadWriter()

	for _, name := range r.inputs() {
		if err := ctx.Err(); err != nil {
			return err
		}
		v, err := r.load(name)
		if err != nil {
			return err
		}
		if err := r.println(w, p, v); err != nil {
			return err
		}
	}
	return nil
}

// query prints the matches of a single expression one per line, or the
// matches of named queries as one object keyed by query name.
func (r *Runner) query() error {
	doc, err := r.load(r.inputs()[0])
	if err != nil {
		return err
	}

	p := r.newPrinter()
	w := r.payloadWriter()

	if q := r.config.Queries[0]; len(r.config.Queries) == 1 && q.Name == q.Path {
		matches, err := r.selectQuery(doc, q)
		if err != nil {
			return err
		}
		for _, m := range matches {
			if err := r.println(w, p, m); err != nil {
				return err
			}
		}
		return nil
	}

	b := builder.New()
	obj := b.NewObject()
	for _, q := range r.config.Queries {
		matches, err := r.selectQuery(doc, q)
		if err != nil {
			return err
		}
		obj.Put(q.Name, b.Array(matches...))
	}
	return r.println(w, p, obj.Build())
}

func (r *Runner) selectQuery(doc *value.Value, q config.Query) ([]*value.Value, error) {
	if r.config.EngineFor(q) == config.EngineRFC9535 {
		return rfc9535.Select(doc, q.Path)
	}

	path, err := jsonpath.Compile(q.Path, r.pathOpts...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", q.Name, err)
	}
	return path.Evaluate(doc), nil
}

// diff prints a line diff of the pretty forms of two documents. Documents
// that are structurally equal print nothing.
func (r *Runner) diff() (int, error) {
	from, err := r.load(r.config.Files[0])
	if err != nil {
		return exit.CodeError, err
	}
	to, err := r.load(r.config.Files[1])
	if err != nil {
		return exit.CodeError, err
	}
	if value.Equal(from, to) {
		return exit.CodeOK, nil
	}

	p := printer.New(r.layout)
	sep := r.layout.LineSeparator
	if sep == "" {
		sep = "\n"
	}
	fromText := p.Print(from) + sep
	toText := p.Print(to) + sep

	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(fromText, toText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	del, ins := fmt.Sprint, fmt.Sprint
	if r.colored() {
		del = color.New(color.FgRed).SprintFunc()
		ins = color.New(color.FgGreen).SprintFunc()
	}

	var out strings.Builder
	for _, d := range diffs {
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			switch d.Type {
			case diffpatch.DiffDelete:
				out.WriteString(del("-" + line))
			case diffpatch.DiffInsert:
				out.WriteString(ins("+" + line))
			case diffpatch.DiffEqual:
				out.WriteString(" " + line)
			}
		}
	}

	if _, err := io.WriteString(r.payloadWriter(), out.String()); err != nil {
		return exit.CodeError, err
	}
	return exit.CodeDiffer, nil
}

// patch applies an RFC 6902 patch, or an RFC 7386 merge patch with -merge,
// and prints the result. The patch document is read with the same parser
// options as the input, so it may be JSONC too.
func (r *Runner) patch() error {
	doc, err := r.load(r.inputs()[0])
	if err != nil {
		return err
	}
	ops, err := r.load(r.config.PatchFile)
	if err != nil {
		return err
	}

	var out []byte
	if r.config.Merge {
		out, err = jsonpatch.MergePatch(doc.Bytes(), ops.Bytes())
		if err != nil {
			return fmt.Errorf("merge patch: %w", err)
		}
	} else {
		decoded, err := jsonpatch.DecodePatch(ops.Bytes())
		if err != nil {
			return fmt.Errorf("decode patch: %w", err)
		}
		if out, err = decoded.Apply(doc.Bytes()); err != nil {
			return fmt.Errorf("apply patch: %w", err)
		}
	}

	patched, err := parser.ParseBytes(out, r.parseOpts...)
	if err != nil {
		return fmt.Errorf("patched document: %w", err)
	}
	return r.println(r.payloadWriter(), r.newPrinter(), patched)
}

// yaml prints the input document as YAML.
func (r *Runner) yaml() error {
	doc, err := r.load(r.inputs()[0])
	if err != nil {
		return err
	}
	out, err := printer.YAML(doc)
	if err != nil {
		return err
	}
	_, err = r.payloadWriter().Write(out)
	return err
}

func (r *Runner) println(w io.Writer, p *printer.Printer, v *value.Value) error {
	if err := p.Fprint(w, v); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
