package citekey

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/conduit-lang/bibkit/internal/metadata"
	"github.com/conduit-lang/bibkit/internal/model"
)

func newEntry(entryType string, fields ...string) *model.Entry {
	e := model.NewEntry(entryType)
	for i := 0; i+1 < len(fields); i += 2 {
		e.SetField(fields[i], fields[i+1])
	}
	return e
}

func TestGenerate_Markers(t *testing.T) {
	e := newEntry("article",
		"author", "Gödel, Kurt and Emmy Noether",
		"title", "On the {Theory} of Everything",
		"year", "1931",
	)

	tests := []struct {
		pattern string
		want    string
	}{
		{"[auth][year]", "Godel1931"},
		{"[authors]", "GodelNoether"},
		{"[auth]:[veryshorttitle]", "Godel:Theory"},
		{"[shorttitle]", "TheoryEverything"},
		{"[title]", "OnTheTheoryOfEverything"},
		{"lit-[year]", "lit-1931"},
		{"[unknown][year]", "1931"},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			g := NewPatternGenerator(metadata.KeyPatterns{Default: tt.pattern}, nil)
			assert.Equal(t, tt.want, g.Generate(e))
		})
	}
}

func TestGenerate_PerTypePatternAndFallbacks(t *testing.T) {
	patterns := metadata.KeyPatterns{ByType: map[string]string{"book": "[auth]-book"}}
	g := NewPatternGenerator(patterns, nil)

	assert.Equal(t, "Knuth-book", g.Generate(newEntry("book", "editor", "Donald E. Knuth")))
	assert.Equal(t, "Knuth2001", g.Generate(newEntry("misc", "author", "Knuth", "date", "2001-05-01")))
	assert.Equal(t, "", g.Generate(newEntry("misc")))
}

func TestGenerate_Unique(t *testing.T) {
	g := NewPatternGenerator(metadata.KeyPatterns{}, map[string]bool{"Smith2000": true})
	e := newEntry("misc", "author", "John Smith", "year", "2000")

	assert.Equal(t, "Smith2000a", g.Generate(e))
	assert.Equal(t, "Smith2000b", g.Generate(e))
}

func TestSuffix(t *testing.T) {
	assert.Equal(t, "a", suffix(1))
	assert.Equal(t, "z", suffix(26))
	assert.Equal(t, "aa", suffix(27))
	assert.Equal(t, "ab", suffix(28))
}
