package runner

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jacoelho/jsonhub/jsonc"
	"github.com/jacoelho/jsonhub/parser"
	"github.com/jacoelho/jsonhub/value"
)

// stdinName is the file argument that reads standard input.
const stdinName = "-"

// inputs returns the files to read, standard input when none were given.
func (r *Runner) inputs() []string {
	if len(r.config.Files) == 0 {
		return []string{stdinName}
	}
	return r.config.Files
}

// load reads one document, as JSONC when -jsonc is set.
func (r *Runner) load(name string) (*value.Value, error) {
	if name == stdinName {
		v, err := r.decode(r.input)
		if err != nil {
			return nil, fmt.Errorf("stdin: %w", err)
		}
		return v, nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	v, err := r.decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}

func (r *Runner) decode(rd io.Reader) (*value.Value, error) {
	if rd == nil {
		rd = strings.NewReader("")
	}
	if r.config.JSONC {
		return jsonc.ReadReader(rd, r.parseOpts...)
	}
	return parser.ParseReader(rd, r.parseOpts...)
}
