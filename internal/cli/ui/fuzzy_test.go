package ui

import (
	"reflect"
	"testing"
)

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		s1       string
		s2       string
		expected int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"artcle", "article", 1},
		{"Gödel", "Godel", 1},
	}

	for _, tt := range tests {
		t.Run(tt.s1+"_"+tt.s2, func(t *testing.T) {
			if got := LevenshteinDistance(tt.s1, tt.s2); got != tt.expected {
				t.Errorf("LevenshteinDistance(%q, %q) = %d; want %d", tt.s1, tt.s2, got, tt.expected)
			}
		})
	}
}

func TestFindSimilar(t *testing.T) {
	formatters := []string{"identity", "latex_cleanup", "lower_case", "normalize_whitespace", "remove_braces", "title_case", "trim_whitespace", "upper_case"}

	tests := []struct {
		name       string
		target     string
		candidates []string
		opts       *FuzzyMatchOptions
		expected   []string
	}{
		{"typo", "title_cse", formatters, nil, []string{"title_case"}},
		{"nearest first", "LOWER_CASE", formatters, nil, []string{"lower_case", "upper_case"}},
		{"case sensitive", "LOWER_CASE", formatters, &FuzzyMatchOptions{CaseSensitive: true}, []string{}},
		{"limit", "LOWER_CASE", formatters, &FuzzyMatchOptions{MaxSuggestions: 1}, []string{"lower_case"}},
		{"ties keep candidate order", "cat", []string{"hat", "bat", "cart"}, nil, []string{"hat", "bat", "cart"}},
		{"nothing close", "bibliography", formatters, nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindSimilar(tt.target, tt.candidates, tt.opts)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("FindSimilar(%q) = %v; want %v", tt.target, got, tt.expected)
			}
		})
	}
}

func TestFindBestMatch(t *testing.T) {
	types := []string{"article", "book", "inbook", "incollection"}
	if got := FindBestMatch("bok", types, nil); got != "book" {
		t.Errorf("FindBestMatch(bok) = %q; want book", got)
	}
	if got := FindBestMatch("proceedings", types, nil); got != "" {
		t.Errorf("FindBestMatch(proceedings) = %q; want empty", got)
	}
}
