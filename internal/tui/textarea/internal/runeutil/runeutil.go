// Package runeutil cleans pasted or typed runes before they reach the buffer.
package runeutil

import (
	"unicode"
	"unicode/utf8"
)

// Sanitizer removes control characters and rewrites tabs and line breaks.
type Sanitizer interface {
	Sanitize(runes []rune) []rune
}

type sanitizer struct {
	replaceNewLine []rune
	replaceTab     []rune
}

// Option configures a Sanitizer.
type Option func(sanitizer) sanitizer

// NewSanitizer creates a Sanitizer. By default tabs become four spaces and
// carriage returns become newlines.
func NewSanitizer(opts ...Option) Sanitizer {
	s := sanitizer{
		replaceNewLine: []rune("\n"),
		replaceTab:     []rune("    "),
	}
	for _, o := range opts {
		s = o(s)
	}
	return &s
}

// ReplaceTabs sets the replacement for '\t'.
func ReplaceTabs(tabRepl string) Option {
	return func(s sanitizer) sanitizer {
		s.replaceTab = []rune(tabRepl)
		return s
	}
}

// ReplaceNewlines sets the replacement for '\n' and '\r'.
func ReplaceNewlines(nlRepl string) Option {
	return func(s sanitizer) sanitizer {
		s.replaceNewLine = []rune(nlRepl)
		return s
	}
}

func (s *sanitizer) Sanitize(runes []rune) []rune {
	out := make([]rune, 0, len(runes))
	for _, r := range runes {
		switch {
		case r == utf8.RuneError:
		case r == '\r' || r == '\n':
			out = append(out, s.replaceNewLine...)
		case r == '\t':
			out = append(out, s.replaceTab...)
		case unicode.IsControl(r):
		default:
			out = append(out, r)
		}
	}
	return out
}
