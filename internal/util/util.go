package util

import "github.com/aziis98/trimlines"

// Dedent normalizes an indented raw string literal, such as a command's long help text.
func Dedent(s string) string {
	return trimlines.TrimLines(s)
}

// Plural returns singular when n is 1 and plural otherwise.
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
