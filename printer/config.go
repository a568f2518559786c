package printer

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// ErrConfig is returned when a printer configuration cannot be loaded.
var ErrConfig = errors.New("printer: invalid config")

// Config controls the separators written between tokens. Every field is
// written verbatim, so a Config with only empty strings and false flags
// prints compact JSON.
type Config struct {
	// Indent is repeated once per nesting level after a line separator.
	Indent string `yaml:"indent"`
	// LineSeparator is written after an opening bracket, before a closing
	// one and around value separators as selected by the flags below.
	LineSeparator string `yaml:"line_separator"`

	PrefixValueSeparator string `yaml:"prefix_value_separator"`
	SuffixValueSeparator string `yaml:"suffix_value_separator"`
	PrefixNameSeparator  string `yaml:"prefix_name_separator"`
	SuffixNameSeparator  string `yaml:"suffix_name_separator"`

	LineSeparateBeforeValueSeparator bool `yaml:"line_separate_before_value_separator"`
	LineSeparateAfterValueSeparator  bool `yaml:"line_separate_after_value_separator"`
	// LineSeparateIfBlank breaks empty arrays and objects over two lines.
	LineSeparateIfBlank bool `yaml:"line_separate_if_blank"`

	// ExcludeNulls drops object members whose value is null, at any depth.
	ExcludeNulls bool `yaml:"exclude_nulls"`
}

// DefaultConfig returns the two-space indented layout.
func DefaultConfig() Config {
	return Config{
		Indent:                          "  ",
		LineSeparator:                   "\n",
		SuffixNameSeparator:             " ",
		LineSeparateAfterValueSeparator: true,
	}
}

// CompactConfig returns the layout matching value.(*Value).ToJSON.
func CompactConfig() Config {
	return Config{}
}

// compact reports whether c writes no separators at all.
func (c Config) compact() bool {
	return c.Indent == "" && c.LineSeparator == "" &&
		c.PrefixValueSeparator == "" && c.SuffixValueSeparator == "" &&
		c.PrefixNameSeparator == "" && c.SuffixNameSeparator == ""
}

// LoadConfig decodes a YAML document into a Config. Keys that are absent
// keep their DefaultConfig value.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.NewDecoder(r, yaml.DisallowUnknownField()).Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return cfg, nil
}

// LoadConfigFile is LoadConfig for a file path.
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	defer f.Close()

	return LoadConfig(f)
}
