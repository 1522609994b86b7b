// Package cleanup applies per-field formatters to entries before they are
// saved.
package cleanup

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Formatter rewrites a field value.
type Formatter interface {
	Key() string
	Format(value string) string
}

type funcFormatter struct {
	key string
	fn  func(string) string
}

func (f funcFormatter) Key() string                { return f.key }
func (f funcFormatter) Format(value string) string { return f.fn(value) }

var (
	horizontalSpace = regexp.MustCompile(`[ \t\f\v]+`)
	emptyBraces     = regexp.MustCompile(`\{\s*\}`)
	spaceRun        = regexp.MustCompile(` {2,}`)
)

var registry = map[string]Formatter{}

func register(key string, fn func(string) string) {
	registry[key] = funcFormatter{key: key, fn: fn}
}

func init() {
	titleCaser := cases.Title(language.English, cases.NoLower)

	register("identity", func(s string) string { return s })
	register("lower_case", strings.ToLower)
	register("upper_case", strings.ToUpper)
	register("title_case", func(s string) string { return titleCaser.String(s) })
	register("trim_whitespace", strings.TrimSpace)
	register("normalize_whitespace", NormalizeWhitespace)
	register("remove_braces", removeBraces)
	register("latex_cleanup", latexCleanup)
}

// Lookup returns the formatter registered under key.
func Lookup(key string) (Formatter, bool) {
	f, ok := registry[key]
	return f, ok
}

// Keys lists the registered formatter keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NormalizeWhitespace collapses runs of horizontal whitespace into a single
// space. Line breaks are kept.
func NormalizeWhitespace(s string) string {
	return horizontalSpace.ReplaceAllString(s, " ")
}

// removeBraces strips one pair of enclosing braces.
func removeBraces(s string) string {
	t := strings.TrimSpace(s)
	if len(t) >= 2 && t[0] == '{' && t[len(t)-1] == '}' && balanced(t[1:len(t)-1]) {
		return t[1 : len(t)-1]
	}
	return s
}

func balanced(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

func latexCleanup(s string) string {
	s = spaceRun.ReplaceAllString(s, " ")
	for {
		next := emptyBraces.ReplaceAllString(s, "")
		if next == s {
			return s
		}
		s = next
	}
}
