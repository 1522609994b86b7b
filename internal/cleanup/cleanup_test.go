package cleanup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/bibkit/internal/metadata"
	"github.com/conduit-lang/bibkit/internal/model"
)

func TestFormatters(t *testing.T) {
	tests := []struct {
		key  string
		in   string
		want string
	}{
		{"identity", " x ", " x "},
		{"lower_case", "MiXeD", "mixed"},
		{"upper_case", "MiXeD", "MIXED"},
		{"title_case", "the art of TeX", "The Art Of TeX"},
		{"trim_whitespace", "  padded\n", "padded"},
		{"normalize_whitespace", "a \t b\n  c", "a b\n c"},
		{"remove_braces", "{Title}", "Title"},
		{"remove_braces", "{A} and {B}", "{A} and {B}"},
		{"latex_cleanup", "a  b {} c{ }", "a b  c"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"/"+tt.in, func(t *testing.T) {
			f, ok := Lookup(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.key, f.Key())
			assert.Equal(t, tt.want, f.Format(tt.in))
		})
	}
}

func TestKeysSorted(t *testing.T) {
	keys := Keys()
	assert.Equal(t, "identity", keys[0])
	assert.Contains(t, keys, "title_case")
}

func TestResolve(t *testing.T) {
	actions, unknown := Resolve([]metadata.FieldFormatter{
		{Field: "Title", Formatter: "lower_case"},
		{Field: "title", Formatter: "lowercase"},
	})
	require.Len(t, actions, 1)
	assert.Equal(t, "title", actions[0].Field)
	require.Len(t, unknown, 1)
	assert.Equal(t, "lowercase", unknown[0].Formatter)
}

func TestApply(t *testing.T) {
	e := model.ParsedEntry("article", "k", map[string]string{"title": "Some Title", "year": "2000"}, "@article{k,...}")
	actions, _ := Resolve([]metadata.FieldFormatter{
		{Field: "title", Formatter: "upper_case"},
		{Field: "year", Formatter: "identity"},
		{Field: "journal", Formatter: "upper_case"},
	})

	changes := actions.Apply(e)
	require.Len(t, changes, 1)
	assert.Equal(t, model.FieldChange{Entry: e, Field: "title", OldValue: "Some Title", NewValue: "SOME TITLE"}, changes[0])
	assert.True(t, e.HasChanged())

	_, hasJournal := e.Field("journal")
	assert.False(t, hasJournal)
}

func TestTrimWhitespace(t *testing.T) {
	unchanged := model.ParsedEntry("misc", "u", map[string]string{"title": "  spaced  "}, "@misc{u, title={  spaced  }}")
	assert.Empty(t, TrimWhitespace(unchanged))
	assert.False(t, unchanged.HasChanged())

	e := model.NewEntry("misc")
	e.SetField("title", "  A   title ")
	e.SetField("url", " http://x.org/a  b ")
	e.SetField("note", "ok")

	changes := TrimWhitespace(e)
	require.Len(t, changes, 2)
	assert.Equal(t, "A title", e.FieldOrEmpty("title"))
	assert.Equal(t, "http://x.org/a  b", e.FieldOrEmpty("url"))
	assert.Equal(t, "ok", e.FieldOrEmpty("note"))
}
