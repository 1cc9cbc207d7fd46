// Package trimlines normalizes multi-line strings: it trims horizontal
// whitespace from every line, re-indents lines relative to the least
// indented one and drops leading and trailing blank lines.
package trimlines

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Config selects which parts of the normalization are applied.
type Config struct {
	// TrimLeftToLeastIndent re-indents every line to the minimum
	// indentation found among non-blank lines.
	TrimLeftToLeastIndent bool
	// TrimVerticalStart drops leading blank lines.
	TrimVerticalStart bool
	// TrimVerticalEnd drops trailing blank lines.
	TrimVerticalEnd bool
}

// Option overrides a single field of the default configuration.
type Option func(*Config)

// DefaultConfig returns a configuration with every option enabled.
func DefaultConfig() Config {
	return Config{
		TrimLeftToLeastIndent: true,
		TrimVerticalStart:     true,
		TrimVerticalEnd:       true,
	}
}

// NewConfig resolves opts over DefaultConfig.
func NewConfig(opts ...Option) Config {
	c := DefaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithTrimLeftToLeastIndent sets Config.TrimLeftToLeastIndent.
func WithTrimLeftToLeastIndent(v bool) Option {
	return func(c *Config) { c.TrimLeftToLeastIndent = v }
}

// WithTrimVerticalStart sets Config.TrimVerticalStart.
func WithTrimVerticalStart(v bool) Option {
	return func(c *Config) { c.TrimVerticalStart = v }
}

// WithTrimVerticalEnd sets Config.TrimVerticalEnd.
func WithTrimVerticalEnd(v bool) Option {
	return func(c *Config) { c.TrimVerticalEnd = v }
}

// String returns a stable representation of c, suitable as a cache key.
func (c Config) String() string {
	return fmt.Sprintf("indent=%t,start=%t,end=%t", c.TrimLeftToLeastIndent, c.TrimVerticalStart, c.TrimVerticalEnd)
}

// TrimLines normalizes s using the default configuration modified by opts.
//
//	TrimLines("  hello\n    world\n") == "hello\n  world"
//
// Input made only of whitespace always yields "".
func TrimLines(s string, opts ...Option) string {
	return NewConfig(opts...).Trim(s)
}

// Trim normalizes s according to c. It is safe for concurrent use.
func (c Config) Trim(s string) string {
	lines := strings.Split(s, "\n")

	leastIndent := -1
	if c.TrimLeftToLeastIndent {
		leastIndent = findLeastIndent(lines)
	}

	first, last := -1, -1
	result := make([]string, len(lines))
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		// A lone character is never re-indented.
		if leastIndent >= 0 && utf8.RuneCountInString(trimmed) > 1 {
			trimmed = strings.Repeat(" ", indentOf(line)-leastIndent) + trimmed
		}
		result[i] = trimmed

		if trimmed != "" {
			if first < 0 {
				first = i
			}
			last = i
		}
	}

	if first < 0 {
		return ""
	}

	switch {
	case c.TrimVerticalStart && c.TrimVerticalEnd:
		result = result[first : last+1]
	case c.TrimVerticalStart:
		result = result[first:]
	case c.TrimVerticalEnd:
		result = result[:last+1]
	}

	return strings.Join(result, "\n")
}

// findLeastIndent returns the smallest indentation among non-blank lines,
// or -1 when every line is blank.
func findLeastIndent(lines []string) int {
	least := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if n := indentOf(line); least < 0 || n < least {
			least = n
		}
	}
	return least
}

// indentOf counts the leading whitespace characters of line.
func indentOf(line string) int {
	n := 0
	for _, r := range line {
		if !unicode.IsSpace(r) {
			break
		}
		n++
	}
	return n
}
