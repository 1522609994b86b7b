// Package citekey generates citation keys from bracketed patterns such as
// "[auth][year]".
package citekey

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/conduit-lang/bibkit/internal/metadata"
	"github.com/conduit-lang/bibkit/internal/model"
)

// DefaultPattern is used when neither a per-type nor a default pattern is set.
const DefaultPattern = "[auth][year]"

// Generator produces a citation key for an entry.
type Generator interface {
	Generate(e *model.Entry) string
}

// PatternGenerator expands key patterns and keeps generated keys unique.
type PatternGenerator struct {
	patterns metadata.KeyPatterns
	taken    map[string]bool
}

// NewPatternGenerator returns a generator that avoids the keys in taken.
func NewPatternGenerator(patterns metadata.KeyPatterns, taken map[string]bool) *PatternGenerator {
	used := make(map[string]bool, len(taken))
	for k, v := range taken {
		if v {
			used[k] = true
		}
	}
	return &PatternGenerator{patterns: patterns, taken: used}
}

// Generate returns a fresh key for e. An empty result means the pattern
// produced nothing for this entry.
func (g *PatternGenerator) Generate(e *model.Entry) string {
	pattern := g.patterns.PatternFor(e.Type())
	if pattern == "" {
		pattern = DefaultPattern
	}
	base := clean(expand(pattern, e))
	if base == "" {
		return ""
	}

	key := base
	for n := 1; g.taken[key]; n++ {
		key = base + suffix(n)
	}
	g.taken[key] = true
	return key
}

// suffix returns a, b, ..., z, aa, ab, ... for n = 1, 2, ...
func suffix(n int) string {
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('a' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}

func expand(pattern string, e *model.Entry) string {
	var b strings.Builder
	for len(pattern) > 0 {
		open := strings.IndexByte(pattern, '[')
		if open < 0 {
			b.WriteString(pattern)
			break
		}
		b.WriteString(pattern[:open])
		end := strings.IndexByte(pattern[open:], ']')
		if end < 0 {
			b.WriteString(pattern[open:])
			break
		}
		b.WriteString(marker(pattern[open+1:open+end], e))
		pattern = pattern[open+end+1:]
	}
	return b.String()
}

func marker(name string, e *model.Entry) string {
	switch strings.ToLower(name) {
	case "auth":
		if last := lastNames(authors(e)); len(last) > 0 {
			return last[0]
		}
	case "authors":
		return strings.Join(lastNames(authors(e)), "")
	case "year":
		return year(e)
	case "title":
		return camel(words(e.FieldOrEmpty(model.FieldTitle), false))
	case "shorttitle":
		return camel(first(words(e.FieldOrEmpty(model.FieldTitle), true), 3))
	case "veryshorttitle":
		return camel(first(words(e.FieldOrEmpty(model.FieldTitle), true), 1))
	}
	return ""
}

func authors(e *model.Entry) string {
	if a := e.FieldOrEmpty(model.FieldAuthor); strings.TrimSpace(a) != "" {
		return a
	}
	return e.FieldOrEmpty(model.FieldEditor)
}

func lastNames(field string) []string {
	field = stripBraces(field)
	if strings.TrimSpace(field) == "" {
		return nil
	}
	var out []string
	for _, name := range strings.Split(field, " and ") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if comma := strings.IndexByte(name, ','); comma >= 0 {
			out = append(out, strings.TrimSpace(name[:comma]))
			continue
		}
		parts := strings.Fields(name)
		out = append(out, parts[len(parts)-1])
	}
	return out
}

func year(e *model.Entry) string {
	if y := strings.TrimSpace(e.FieldOrEmpty(model.FieldYear)); y != "" {
		return y
	}
	if d := strings.TrimSpace(e.FieldOrEmpty(model.FieldDate)); len(d) >= 4 {
		return d[:4]
	}
	return ""
}

var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "of": true, "on": true, "in": true,
	"and": true, "for": true, "to": true, "with": true, "at": true, "by": true,
}

func words(title string, significant bool) []string {
	var out []string
	for _, w := range strings.FieldsFunc(stripBraces(title), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if significant && stopWords[strings.ToLower(w)] {
			continue
		}
		out = append(out, w)
	}
	return out
}

func first(ws []string, n int) []string {
	if len(ws) > n {
		return ws[:n]
	}
	return ws
}

func camel(ws []string) string {
	var b strings.Builder
	for _, w := range ws {
		b.WriteString(model.Capitalize(w))
	}
	return b.String()
}

func stripBraces(s string) string {
	return strings.NewReplacer("{", "", "}", "").Replace(s)
}

var fold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// clean folds accents to ASCII and drops characters that are not allowed
// in keys.
func clean(s string) string {
	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r > unicode.MaxASCII:
			return -1
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return r
		case strings.ContainsRune("-_:./+", r):
			return r
		}
		return -1
	}, folded)
}
