package entrytypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/bibkit/internal/model"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"article", "Article"},
		{"inproceedings", "InProceedings"},
		{"INPROCEEDINGS", "InProceedings"},
		{"phdthesis", "PhdThesis"},
		{"reallyunknowntype", "Reallyunknowntype"},
		{"ReallyUnknownType", "Reallyunknowntype"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayName(tt.in))
		})
	}
}

func TestEnrich_Standard(t *testing.T) {
	m := NewManager()

	def, ok := m.Enrich("Article", model.ModeBibTeX)
	require.True(t, ok)
	assert.Equal(t, []string{"author", "title", "journal", "year"}, def.RequiredFields())

	def, ok = m.Enrich("book", model.ModeBibTeX)
	require.True(t, ok)
	assert.Equal(t, model.OrFields{"author", "editor"}, def.Required[3])

	def, ok = m.Enrich("online", model.ModeBibLaTeX)
	require.True(t, ok)
	assert.Contains(t, def.RequiredFields(), "url")

	_, ok = m.Enrich("online", model.ModeBibTeX)
	assert.False(t, ok)
}

func TestAddCustom(t *testing.T) {
	m := NewManager()
	custom := model.EntryTypeDefinition{
		Name:     "CustomizedType",
		Required: []model.OrFields{{"title"}, {"author"}},
		Optional: []string{"year"},
	}
	m.AddCustom(custom, model.ModeBibTeX)

	assert.True(t, m.IsCustom("customizedtype", model.ModeBibTeX))
	assert.False(t, m.IsCustom("customizedtype", model.ModeBibLaTeX))
	assert.False(t, m.IsCustom("article", model.ModeBibTeX))

	def, ok := m.Enrich("customizedtype", model.ModeBibTeX)
	require.True(t, ok)
	assert.Equal(t, "customizedtype", def.Name)

	// overriding a standard type makes it custom
	m.AddCustom(model.EntryTypeDefinition{Name: "article", Required: []model.OrFields{{"title"}}}, model.ModeBibTeX)
	def, _ = m.Enrich("article", model.ModeBibTeX)
	assert.Equal(t, []string{"title"}, def.RequiredFields())

	names := []string{}
	for _, d := range m.Custom(model.ModeBibTeX) {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"article", "customizedtype"}, names)
}

func TestKnown(t *testing.T) {
	m := NewManager()
	m.AddCustom(model.EntryTypeDefinition{Name: "zeta"}, model.ModeBibTeX)
	known := m.Known(model.ModeBibTeX)
	assert.Contains(t, known, "article")
	assert.Equal(t, "zeta", known[len(known)-1])
}
