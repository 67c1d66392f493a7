// Package macro implements placeholder substitution for srcmake templates.
//
// A placeholder token is an identifier wrapped in dollar signs, for example
// $NAME$ or $HEADER_GUARD$. Token names are case-sensitive and follow the
// usual identifier rules: a letter or underscore followed by letters, digits
// or underscores. A dollar sign that does not open a valid token is copied
// through unchanged.
//
// Substitution is a single left-to-right pass: replacement values are
// inserted verbatim and never rescanned, so a value that happens to contain
// "$X$" stays literal and running the same substitution twice yields
// byte-identical output.
package macro

import (
	"sort"
	"strings"
)

// Delimiter wraps token names on both sides.
const Delimiter = '$'

// Token is a single placeholder occurrence. Start and End are byte offsets
// of the opening and one past the closing delimiter.
type Token struct {
	Name  string
	Start int
	End   int
}

// Map assigns values to token names.
type Map map[string]string

// Clone returns a shallow copy of m.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Merge copies every entry of other into m, overriding existing keys.
func (m Map) Merge(other Map) Map {
	for k, v := range other {
		m[k] = v
	}
	return m
}

// Names returns the sorted key set.
func (m Map) Names() []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Options tune the cleanup applied after substitution.
type Options struct {
	// CollapseBlankLines reduces runs of three or more line breaks to two.
	CollapseBlankLines bool
	// TrimDoubleSpaces drops one space when an empty replacement leaves two
	// adjacent spaces behind.
	TrimDoubleSpaces bool
}

// DefaultOptions enables both cleanups.
func DefaultOptions() Options {
	return Options{CollapseBlankLines: true, TrimDoubleSpaces: true}
}

// Result is the outcome of a substitution.
type Result struct {
	Text string
	// Replaced counts substituted occurrences.
	Replaced int
	// Unresolved lists tokens with no value, each once, in order of first
	// appearance. They are left in Text verbatim.
	Unresolved []string
}

// Complete reports whether every token was resolved.
func (r Result) Complete() bool {
	return len(r.Unresolved) == 0
}

// IsIdentifier reports whether s is a valid token name.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Scan returns every token in text, in order.
func Scan(text string) []Token {
	var tokens []Token
	for i := 0; ; {
		tok, ok := nextToken(text, i)
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
		i = tok.End
	}
}

// nextToken finds the first token starting at or after from.
func nextToken(text string, from int) (Token, bool) {
	i := from
	for {
		open := strings.IndexByte(text[i:], Delimiter)
		if open < 0 {
			return Token{}, false
		}
		open += i
		closing := strings.IndexByte(text[open+1:], Delimiter)
		if closing < 0 {
			return Token{}, false
		}
		closing += open + 1

		name := text[open+1 : closing]
		if IsIdentifier(name) {
			return Token{Name: name, Start: open, End: closing + 1}, true
		}
		// The closing delimiter may open the next token.
		i = closing
	}
}

// Keys returns the distinct token names in text in order of first appearance.
func Keys(text string) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, tok := range Scan(text) {
		if !seen[tok.Name] {
			seen[tok.Name] = true
			keys = append(keys, tok.Name)
		}
	}
	return keys
}

// Unresolved returns the names of tokens still present in text.
func Unresolved(text string) []string {
	return Keys(text)
}

// Substitute replaces every token of text that has a value in values.
func Substitute(text string, values Map, opts Options) Result {
	var b strings.Builder
	b.Grow(len(text))

	var (
		result Result
		seen   = make(map[string]bool)
		last   int
	)

	for i := 0; ; {
		tok, found := nextToken(text, i)
		if !found {
			break
		}
		value, ok := values[tok.Name]
		if !ok {
			if !seen[tok.Name] {
				seen[tok.Name] = true
				result.Unresolved = append(result.Unresolved, tok.Name)
			}
			// An unknown token leaves its closing delimiter free to open
			// the next one, as in "$ab$NAME$".
			i = tok.End - 1
			continue
		}
		i = tok.End

		b.WriteString(text[last:tok.Start])
		last = tok.End
		result.Replaced++

		atStart := tok.Start == 0
		if value == "" && opts.TrimDoubleSpaces && (atStart || endsWithSpace(&b)) && startsWithSpace(text[last:]) {
			last++
		}
		b.WriteString(value)
	}
	b.WriteString(text[last:])

	result.Text = b.String()
	if opts.CollapseBlankLines {
		result.Text = CollapseBlankLines(result.Text)
	}
	return result
}

// CollapseBlankLines reduces runs of three or more line breaks to two. Both
// "\n" and "\r\n" line endings are handled.
func CollapseBlankLines(text string) string {
	for strings.Contains(text, "\r\n\r\n\r\n") {
		text = strings.ReplaceAll(text, "\r\n\r\n\r\n", "\r\n\r\n")
	}
	for strings.Contains(text, "\n\n\n") {
		text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	}
	return text
}

func endsWithSpace(b *strings.Builder) bool {
	s := b.String()
	return len(s) > 0 && s[len(s)-1] == ' '
}

func startsWithSpace(s string) bool {
	return len(s) > 0 && s[0] == ' '
}
