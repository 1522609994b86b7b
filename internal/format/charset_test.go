package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	out, err := Encode("Erdős Gödel", "UTF-8")
	require.NoError(t, err)
	assert.Equal(t, []byte("Erdős Gödel"), out)

	out, err = Encode("Gödel", "ISO-8859-1")
	require.NoError(t, err)
	assert.Equal(t, []byte{'G', 0xf6, 'd', 'e', 'l'}, out)

	back, err := Decode(out, "ISO-8859-1")
	require.NoError(t, err)
	assert.Equal(t, "Gödel", back)
}

func TestEncode_Errors(t *testing.T) {
	_, err := Encode("Erdős", "ISO-8859-1")
	assert.Error(t, err, "ő is not in Latin-1")

	_, err = Encode("x", "no-such-charset")
	assert.Error(t, err)

	_, err = Decode([]byte("x"), "no-such-charset")
	assert.Error(t, err)
}
