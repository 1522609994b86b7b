package macros

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/bibkit/internal/bibtex"
	"github.com/conduit-lang/bibkit/internal/model"
)

func names(ms []*model.StringMacro) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Name()
	}
	return out
}

func TestSerialize_ReferenceFirst(t *testing.T) {
	x := model.NewStringMacro("x", "#y#")
	y := model.NewStringMacro("y", "value")

	got := Serialize([]*model.StringMacro{x, y})
	assert.Equal(t, []string{"y", "x"}, names(got))
}

func TestSerialize_CategoriesAndCaseInsensitiveSort(t *testing.T) {
	in := []*model.StringMacro{
		model.NewStringMacro("zeta", "z"),
		model.NewStringMacro("pSpringer", "Springer"),
		model.NewStringMacro("iMIT", "MIT"),
		model.NewStringMacro("Alpha", "a"),
		model.NewStringMacro("aKnuth", "Donald Knuth"),
		model.NewStringMacro("beta", "b"),
	}

	got := Serialize(in)
	assert.Equal(t, []string{"aKnuth", "iMIT", "pSpringer", "Alpha", "beta", "zeta"}, names(got))
}

func TestSerialize_ReferenceCrossesCategories(t *testing.T) {
	author := model.NewStringMacro("aTeam", "#other# and friends")
	other := model.NewStringMacro("other", "Someone")

	got := Serialize([]*model.StringMacro{other, author})
	assert.Equal(t, []string{"other", "aTeam"}, names(got))
}

func TestSerialize_CycleTerminates(t *testing.T) {
	a := model.NewStringMacro("a", "#b#")
	b := model.NewStringMacro("b", "#c#")
	c := model.NewStringMacro("c", "#a#")
	self := model.NewStringMacro("d", "#d#")

	got := Serialize([]*model.StringMacro{c, self, b, a})
	require.Len(t, got, 4)
	assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, names(got))
	// a is visited first, removed from the pending set, then b pulls c
	assert.Equal(t, []string{"c", "b", "a", "d"}, names(got))
}

func TestSerialize_BracedHashIsNotAReference(t *testing.T) {
	x := model.NewStringMacro("x", "{#y#}")
	y := model.NewStringMacro("y", "value")

	got := Serialize([]*model.StringMacro{x, y})
	assert.Equal(t, []string{"x", "y"}, names(got))
}

func TestWrite(t *testing.T) {
	codec := bibtex.NewCodec(bibtex.DefaultPreferences())
	var sb strings.Builder
	out := bibtex.NewWriter(&sb, "\n")

	ms := []*model.StringMacro{
		model.NewStringMacro("pMIT", "#iMIT# Press"),
		model.ParsedStringMacro("iMIT", "MIT", `@STRING{ iMIT="MIT" }`),
	}
	width := NameWidth(ms)
	for _, m := range Serialize(ms) {
		require.NoError(t, Write(out, codec, m, width, false))
		out.FinishBlock()
	}
	require.NoError(t, out.Err())

	want := "@STRING{ iMIT=\"MIT\" }\n\n@String{pMIT = iMIT # { Press}}\n"
	assert.Equal(t, want, sb.String())
}

func TestWrite_Reformat(t *testing.T) {
	codec := bibtex.NewCodec(bibtex.DefaultPreferences())
	var sb strings.Builder
	out := bibtex.NewWriter(&sb, "\n")

	m := model.ParsedStringMacro("jnl", "Journal", `@string{jnl="Journal"}`)
	require.NoError(t, Write(out, codec, m, 6, true))
	assert.Equal(t, "@String{jnl    = {Journal}}\n", sb.String())
}

func TestWrite_InvalidContent(t *testing.T) {
	codec := bibtex.NewCodec(bibtex.DefaultPreferences())
	var sb strings.Builder
	out := bibtex.NewWriter(&sb, "\n")

	err := Write(out, codec, model.NewStringMacro("bad", "#open"), 3, false)
	require.Error(t, err)
	assert.Empty(t, sb.String())
}
