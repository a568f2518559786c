package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/jacoelho/jsonhub/internal/exit"
)

// Subcommands.
const (
	CmdFmt   = "fmt"
	CmdQuery = "query"
	CmdDiff  = "diff"
	CmdPatch = "patch"
	CmdYAML  = "yaml"
)

// Query engines.
const (
	EngineNative  = "native"
	EngineRFC9535 = "rfc9535"
)

// Colour modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var (
	ErrNoArguments        = errors.New("no arguments provided")
	ErrUnknownCommand     = errors.New("unknown command")
	ErrNoExpression       = errors.New("no query expression given")
	ErrDiffArgs           = errors.New("diff needs exactly two files")
	ErrNoPatch            = errors.New("patch needs -patch FILE")
	ErrTooManyFiles       = errors.New("too many input files")
	ErrInvalidEngine      = errors.New("engine must be native or rfc9535")
	ErrInvalidColor       = errors.New("color must be auto, always or never")
	ErrInvalidQueryFormat = errors.New("query must be in format name=expression")
	ErrEmptyQueryName     = errors.New("query name cannot be empty")
	ErrDuplicateQuery     = errors.New("duplicate query name")
	ErrFiltersNeedNative  = errors.New("-filters only applies to the native engine")
)

// Query is a named path expression.
type Query struct {
	Name   string `yaml:"name"`
	Path   string `yaml:"path"`
	Engine string `yaml:"engine,omitempty"`
}

// Config represents the complete configuration for one jsonhub invocation.
type Config struct {
	Command string
	Files   []string

	// Input
	JSONC    bool
	MaxDepth int

	// Output
	Compact      bool
	ExcludeNulls bool
	Indent       string
	Color        string
	PrinterFile  string

	// query
	Queries []Query
	Engine  string
	Filters bool

	// patch
	PatchFile string
	Merge     bool

	Debug bool
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	switch c.Engine {
	case EngineNative, EngineRFC9535:
	default:
		return fmt.Errorf("%w, got: %s", ErrInvalidEngine, c.Engine)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w, got: %s", ErrInvalidColor, c.Color)
	}
	if c.Filters && c.Engine != EngineNative {
		return ErrFiltersNeedNative
	}

	switch c.Command {
	case CmdQuery:
		if len(c.Queries) == 0 {
			return ErrNoExpression
		}
		seen := make(map[string]struct{}, len(c.Queries))
		for _, q := range c.Queries {
			if _, dup := seen[q.Name]; dup {
				return fmt.Errorf("%w: %s", ErrDuplicateQuery, q.Name)
			}
			seen[q.Name] = struct{}{}
			if q.Engine != "" && q.Engine != EngineNative && q.Engine != EngineRFC9535 {
				return fmt.Errorf("%w, got: %s (query %s)", ErrInvalidEngine, q.Engine, q.Name)
			}
		}
		if len(c.Files) > 1 {
			return ErrTooManyFiles
		}
	case CmdDiff:
		if len(c.Files) != 2 {
			return ErrDiffArgs
		}
	case CmdPatch:
		if c.PatchFile == "" {
			return ErrNoPatch
		}
		if len(c.Files) > 1 {
			return ErrTooManyFiles
		}
	case CmdYAML:
		if len(c.Files) > 1 {
			return ErrTooManyFiles
		}
	}

	for _, file := range c.Files {
		if file == "-" {
			continue
		}
		if _, err := os.Stat(file); err != nil {
			return fmt.Errorf("input file %s not found: %w", file, err)
		}
	}
	for _, file := range []string{c.PatchFile, c.PrinterFile} {
		if file == "" {
			continue
		}
		if _, err := os.Stat(file); err != nil {
			return fmt.Errorf("file %s not found: %w", file, err)
		}
	}

	return nil
}

// EngineFor returns the engine q runs on.
func (c *Config) EngineFor(q Query) string {
	if q.Engine != "" {
		return q.Engine
	}
	return c.Engine
}

// queriesFlag implements flag.Value for parsing multiple -q flags.
type queriesFlag []Query

// String returns a string representation of the queries flag for flag.Value interface.
func (q *queriesFlag) String() string {
	pairs := make([]string, 0, len(*q))
	for _, query := range *q {
		pairs = append(pairs, fmt.Sprintf("%s=%s", query.Name, query.Path))
	}
	return strings.Join(pairs, ",")
}

// Set parses and stores a query in name=expression format for flag.Value interface.
func (q *queriesFlag) Set(value string) error {
	parts := strings.SplitN(value, "=", 2)
	if len(parts) != 2 {
		return fmt.Errorf("%w, got: %s", ErrInvalidQueryFormat, value)
	}

	name := strings.TrimSpace(parts[0])
	if name == "" {
		return ErrEmptyQueryName
	}

	*q = append(*q, Query{Name: name, Path: strings.TrimSpace(parts[1])})
	return nil
}

// Parse parses command-line arguments and returns a validated Config.
// If parsing fails or help is requested, returns nil config and exit result.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) < 2 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrNoArguments, Usage())
	}

	command := args[1]
	switch command {
	case "-h", "-help", "--help", "help":
		return nil, exit.Success(Usage())
	case CmdFmt, CmdQuery, CmdDiff, CmdPatch, CmdYAML:
	default:
		return nil, exit.Errorf("Error: %v: %s\n\n%s", ErrUnknownCommand, command, Usage())
	}

	fs := flag.NewFlagSet(args[0]+" "+command, flag.ContinueOnError)

	// Suppress the default usage output since we handle it ourselves
	fs.Usage = func() {}
	// Suppress error output since we handle it ourselves
	fs.SetOutput(io.Discard)

	var (
		jsonc        = fs.Bool("jsonc", false, "Accept // and /* */ comments and trailing commas")
		maxDepth     = fs.Int("max-depth", 0, "Maximum nesting depth (0 for the parser default)")
		compact      = fs.Bool("compact", false, "Print without insignificant whitespace")
		excludeNulls = fs.Bool("exclude-nulls", false, "Drop object members whose value is null")
		indent       = fs.String("indent", "", "Indentation string (overrides the printer config)")
		colorMode    = fs.String("color", ColorAuto, "Colour output: auto, always or never")
		printerFile  = fs.String("config", "", "Path to a YAML printer config")
		engine       = fs.String("engine", EngineNative, "Query engine: native or rfc9535")
		filters      = fs.Bool("filters", false, "Enable [?(...)] filter selectors in the native engine")
		queriesFile  = fs.String("queries", "", "Path to a YAML file of named queries")
		patchFile    = fs.String("patch", "", "Path to an RFC 6902 patch, or an RFC 7386 merge patch with -merge")
		merge        = fs.Bool("merge", false, "Treat -patch as an RFC 7386 merge patch")
		debug        = fs.Bool("debug", false, "Trace parsing and path compilation on stderr")
		queries      queriesFlag
	)

	fs.Var(&queries, "q", "Named query in format name=expression (can be used multiple times)")

	if err := fs.Parse(args[2:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Errorf("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}

	files := fs.Args()

	var all []Query
	if *queriesFile != "" {
		fileQueries, err := loadQueryFile(*queriesFile)
		if err != nil {
			return nil, exit.Errorf("Error: failed to load query file: %v\n\n%s", err, Usage())
		}
		all = append(all, fileQueries...)
	}
	all = append(all, queries...)

	// Without named queries the first positional argument is the expression.
	if command == CmdQuery && len(all) == 0 && len(files) > 0 {
		all = []Query{{Name: files[0], Path: files[0]}}
		files = files[1:]
	}
	if len(files) == 0 {
		files = nil
	}

	config := &Config{
		Command:      command,
		Files:        files,
		JSONC:        *jsonc,
		MaxDepth:     *maxDepth,
		Compact:      *compact,
		ExcludeNulls: *excludeNulls,
		Indent:       *indent,
		Color:        *colorMode,
		PrinterFile:  *printerFile,
		Queries:      all,
		Engine:       *engine,
		Filters:      *filters,
		PatchFile:    *patchFile,
		Merge:        *merge,
		Debug:        *debug,
	}

	if err := config.Validate(); err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, Usage())
	}

	return config, nil
}

type queryFile struct {
	Queries []Query `yaml:"queries"`
}

// loadQueryFile loads named queries from a YAML file of the form
//
//	queries:
//	  - name: authors
//	    path: $.store.book[*].author
func loadQueryFile(filename string) ([]Query, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var qf queryFile
	if err := yaml.UnmarshalWithOptions(data, &qf, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("invalid query file %s: %w", filename, err)
	}

	for i, q := range qf.Queries {
		if strings.TrimSpace(q.Name) == "" {
			return nil, fmt.Errorf("%w at entry %d", ErrEmptyQueryName, i+1)
		}
		if strings.TrimSpace(q.Path) == "" {
			return nil, fmt.Errorf("empty path for query %s", q.Name)
		}
	}

	return slices.Clip(qf.Queries), nil
}

// Usage returns a usage string for the CLI tool.
func Usage() string {
	return `jsonhub - JSON and JSONC toolkit

Usage: jsonhub <command> [options] [args]

Commands:
  fmt [file...]              Pretty print documents (stdin when no file is given)
  query <expr> [file]        Print every node matching a JsonPath expression
  query -q name=expr [file]  Print named query results as one object
  diff <a> <b>               Show a line diff of two documents, exit 1 if they differ
  patch -patch FILE [file]   Apply an RFC 6902 patch (or RFC 7386 with -merge)
  yaml [file]                Print the document as YAML

Options:
  --jsonc                 Accept // and /* */ comments and trailing commas
  --max-depth N           Maximum nesting depth (0 for the parser default)
  --compact               Print without insignificant whitespace
  --exclude-nulls         Drop object members whose value is null
  --indent STR            Indentation string (overrides the printer config)
  --color MODE            Colour output: auto, always or never (default: auto)
  --config FILE           Path to a YAML printer config
  --engine NAME           Query engine: native or rfc9535 (default: native)
  --filters               Enable [?(...)] filter selectors in the native engine
  --q NAME=EXPR           Named query (can be used multiple times)
  --queries FILE          Path to a YAML file of named queries
  --patch FILE            Patch document for the patch command
  --merge                 Treat --patch as an RFC 7386 merge patch
  --debug                 Trace parsing and path compilation on stderr
  -h, --help              Show this help message

Examples:
  jsonhub fmt data.json
  jsonhub fmt --jsonc --compact settings.jsonc
  jsonhub query '$.store.book[*].author' store.json
  jsonhub query --filters '$..book[?(@.price < 10)].title' store.json
  jsonhub query --engine rfc9535 '$..book[?@.isbn].title' store.json
  jsonhub diff old.json new.json
  jsonhub patch --patch ops.json doc.json`
}
