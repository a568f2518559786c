// Package runner executes one jsonhub subcommand.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/jacoelho/jsonhub/internal/config"
	"github.com/jacoelho/jsonhub/internal/debug"
	"github.com/jacoelho/jsonhub/internal/exit"
	"github.com/jacoelho/jsonhub/jsonpath"
	"github.com/jacoelho/jsonhub/parser"
	"github.com/jacoelho/jsonhub/printer"
)

// Runner executes a parsed configuration against its input files.
type Runner struct {
	config    *config.Config
	layout    printer.Config
	parseOpts []parser.Option
	pathOpts  []jsonpath.Option
	input     io.Reader
	output    io.Writer
	errOutput io.Writer
}

// New creates a new Runner with the provided configuration.
// If creation fails, returns nil runner and exit result.
func New(cfg *config.Config) (*Runner, *exit.Result) {
	layout, err := printerConfig(cfg)
	if err != nil {
		return nil, exit.Errorf("Error creating runner: %v\n", err)
	}

	var parseOpts []parser.Option
	if cfg.MaxDepth > 0 {
		parseOpts = append(parseOpts, parser.WithMaxDepth(cfg.MaxDepth))
	}

	var pathOpts []jsonpath.Option
	if cfg.Filters {
		pathOpts = append(pathOpts, jsonpath.WithFilters())
	}

	return &Runner{
		config:    cfg,
		layout:    layout,
		parseOpts: parseOpts,
		pathOpts:  pathOpts,
		input:     os.Stdin,
		output:    os.Stdout,
		errOutput: os.Stderr,
	}, nil
}

// printerConfig resolves the layout: the -config file (or the default
// layout) first, then -compact, -indent and -exclude-nulls on top.
func printerConfig(cfg *config.Config) (printer.Config, error) {
	layout := printer.DefaultConfig()
	if cfg.PrinterFile != "" {
		var err error
		if layout, err = printer.LoadConfigFile(cfg.PrinterFile); err != nil {
			return printer.Config{}, err
		}
	}

	switch {
	case cfg.Compact:
		excludeNulls := layout.ExcludeNulls
		layout = printer.CompactConfig()
		layout.ExcludeNulls = excludeNulls
	case cfg.Indent != "":
		layout.Indent = cfg.Indent
	}
	if cfg.ExcludeNulls {
		layout.ExcludeNulls = true
	}
	return layout, nil
}

func (r *Runner) SetInput(rd io.Reader) {
	r.input = rd
}

func (r *Runner) SetOutput(w io.Writer) {
	r.output = w
}

func (r *Runner) SetErrorOutput(w io.Writer) {
	r.errOutput = w
}

func (r *Runner) payloadWriter() io.Writer {
	if r.output == nil {
		return io.Discard
	}
	return r.output
}

func (r *Runner) errorWriter() io.Writer {
	if r.errOutput == nil {
		return io.Discard
	}
	return r.errOutput
}

// Run executes the configured subcommand and returns the process exit code.
func (r *Runner) Run(ctx context.Context) int {
	if r.config.Debug {
		defer debug.Enable(true, true, true)()
		defer debug.SetOutput(r.errorWriter())()
	}

	var (
		code = exit.CodeOK
		err  error
	)
	switch r.config.Command {
	case config.CmdFmt:
		err = r.format(ctx)
	case config.CmdQuery:
		err = r.query()
	case config.CmdDiff:
		code, err = r.diff()
	case config.CmdPatch:
		err = r.patch()
	case config.CmdYAML:
		err = r.yaml()
	default:
		err = fmt.Errorf("%w: %s", config.ErrUnknownCommand, r.config.Command)
	}

	if err != nil {
		fmt.Fprintf(r.errorWriter(), "Error: %v\n", err)
		return exit.CodeError
	}
	return code
}

// colored reports whether output should carry ANSI colours.
func (r *Runner) colored() bool {
	switch r.config.Color {
	case config.ColorAlways:
		color.NoColor = false
		return true
	case config.ColorNever:
		return false
	}
	f, ok := r.output.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (r *Runner) newPrinter() *printer.Printer {
	if r.colored() {
		return printer.New(r.layout, printer.WithColors(printer.NewColors()))
	}
	return printer.New(r.layout)
}
