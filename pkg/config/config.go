// Package config loads the eatable command-line defaults from environment
// variables. Flags given on the command line take precedence over these values.
package config

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Config holds all settings that can be set through the environment.
type Config struct {
	Input   InputConfig
	Output  OutputConfig
	Logging LoggingConfig
}

// InputConfig controls how CSV sources are read.
type InputConfig struct {
	// Delimiter is the single-character field separator (default: ",")
	Delimiter string `env:"EATABLE_DELIMITER" default:","`

	// Header reports whether the first record names the columns (default: true)
	Header bool `env:"EATABLE_HEADER" default:"true"`

	// Columns names the columns when Header is false
	Columns []string `env:"EATABLE_COLUMNS"`
}

// OutputConfig controls result rendering.
type OutputConfig struct {
	// Format is one of jsonl, json, csv, table (default: jsonl)
	Format string `env:"EATABLE_FORMAT" default:"jsonl"`

	Pretty bool `env:"EATABLE_PRETTY" default:"false"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: warn)
	Level string `env:"LOG_LEVEL" default:"warn"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`

	// SeqURL enables the Seq sink when set, e.g. http://localhost:5341
	SeqURL string `env:"SEQ_URL" envAlt:"EATABLE_SEQ_URL"`
}

// Comma returns the input delimiter as a rune.
func (c *InputConfig) Comma() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}

// UnescapeDelimiter turns a literal \t into a tab.
func UnescapeDelimiter(delim string) string {
	return strings.ReplaceAll(delim, `\t`, "\t")
}

// String returns a one-line representation of the config for debug logging.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Input: {Delimiter: %q, Header: %v, Columns: %v}, ",
		c.Input.Delimiter, c.Input.Header, c.Input.Columns))
	b.WriteString(fmt.Sprintf("Output: {Format: %q, Pretty: %v}, ", c.Output.Format, c.Output.Pretty))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q, Seq: %v}",
		c.Logging.Level, c.Logging.Format, c.Logging.SeqURL != ""))
	b.WriteString("}")
	return b.String()
}
