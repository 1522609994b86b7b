package library

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/conduit-lang/bibkit/internal/model"
)

func TestDefaults(t *testing.T) {
	lib := New()
	assert.Equal(t, model.ModeBibTeX, lib.Mode())

	enc, explicit := lib.Encoding()
	assert.Equal(t, "UTF-8", enc)
	assert.False(t, explicit)

	lib.MetaData.Mode = model.ModeBibLaTeX
	lib.MetaData.Encoding = "ISO-8859-1"
	assert.Equal(t, model.ModeBibLaTeX, lib.Mode())
	enc, _ = lib.Encoding()
	assert.Equal(t, "ISO-8859-1", enc)
}
