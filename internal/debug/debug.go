// Package debug gates diagnostic tracing behind environment variables.
package debug

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
)

var (
	parse atomic.Bool
	path  atomic.Bool
	jsonc atomic.Bool

	mu  sync.Mutex
	out io.Writer = os.Stderr
)

func init() {
	parse.Store(boolEnv("JSONHUB_DEBUG_PARSE"))
	path.Store(boolEnv("JSONHUB_DEBUG_PATH"))
	jsonc.Store(boolEnv("JSONHUB_DEBUG_JSONC"))
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return parse.Load()
}

func Path() bool {
	return path.Load()
}

func JSONC() bool {
	return jsonc.Load()
}

// Logf writes one line to the debug output.
func Logf(msg string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, "jsonhub: "+msg+"\n", args...)
}

// SetOutput redirects Logf and returns a function restoring the previous writer.
func SetOutput(w io.Writer) func() {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return func() {
		mu.Lock()
		defer mu.Unlock()
		out = prev
	}
}

// Enable turns switches on in addition to the environment ones and returns
// a function restoring the previous state. Used by the CLI -debug flag.
func Enable(parseOn, pathOn, jsoncOn bool) func() {
	mu.Lock()
	defer mu.Unlock()
	prev := [3]bool{parse.Load(), path.Load(), jsonc.Load()}
	parse.Store(prev[0] || parseOn)
	path.Store(prev[1] || pathOn)
	jsonc.Store(prev[2] || jsoncOn)
	return func() {
		mu.Lock()
		defer mu.Unlock()
		parse.Store(prev[0])
		path.Store(prev[1])
		jsonc.Store(prev[2])
	}
}
