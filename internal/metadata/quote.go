package metadata

import "strings"

const (
	// Separator terminates list items.
	Separator = ';'
	// Escape precedes a literal separator or escape character.
	Escape = '\\'
)

// Quote escapes the separator and the escape character.
func Quote(s string) string {
	if !strings.ContainsAny(s, `;\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		if s[i] == Separator || s[i] == Escape {
			b.WriteByte(Escape)
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// Unquote reverses Quote.
func Unquote(s string) string {
	if !strings.ContainsRune(s, Escape) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == Escape && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// QuoteList quotes every item and terminates each with the separator.
func QuoteList(items []string) string {
	var b strings.Builder
	for _, item := range items {
		b.WriteString(Quote(item))
		b.WriteByte(Separator)
	}
	return b.String()
}

// ParseList splits s at unescaped separators and unquotes the items. A
// blank remainder after the last separator is dropped.
func ParseList(s string) []string {
	var (
		items []string
		cur   strings.Builder
	)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == Escape && i+1 < len(s):
			i++
			cur.WriteByte(s[i])
		case c == Separator:
			items = append(items, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	if rest := cur.String(); strings.TrimSpace(rest) != "" {
		items = append(items, rest)
	}
	return items
}
