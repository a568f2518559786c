package debug

import (
	"bytes"
	"sync"
	"testing"
)

func TestBoolEnv(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{value: "", want: false},
		{value: "1", want: true},
		{value: "true", want: true},
		{value: "no", want: false},
		{value: "0", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("JSONHUB_DEBUG_TEST", tt.value)
			if got := boolEnv("JSONHUB_DEBUG_TEST"); got != tt.want {
				t.Errorf("boolEnv(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestLogf(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()

	Logf("compiled %d selectors", 3)

	if got, want := buf.String(), "jsonhub: compiled 3 selectors\n"; got != want {
		t.Errorf("Logf wrote %q, want %q", got, want)
	}
}

func TestEnable(t *testing.T) {
	before := [3]bool{Parse(), Path(), JSONC()}
	restore := Enable(true, false, true)
	if !Parse() || !JSONC() {
		t.Errorf("Enable(true, false, true): Parse=%v JSONC=%v", Parse(), JSONC())
	}
	if Path() != before[1] {
		t.Errorf("Path() = %v, want unchanged %v", Path(), before[1])
	}
	restore()
	if got := [3]bool{Parse(), Path(), JSONC()}; got != before {
		t.Errorf("restore left %v, want %v", got, before)
	}
}

func TestEnableConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			Enable(false, false, false)()
		}()
		go func() {
			defer wg.Done()
			_ = Parse() || Path() || JSONC()
		}()
	}
	wg.Wait()
}
