package bibtex

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriterBlocks(t *testing.T) {
	var sb strings.Builder
	w := NewWriter(&sb, "\n")

	w.FinishBlock() // nothing written yet
	w.Write("first")
	w.FinishBlock()
	w.FinishBlock()
	w.WriteLine("second")
	w.FinishBlock()

	assert.NoError(t, w.Err())
	assert.Equal(t, "first\n\nsecond\n", sb.String())
}

func TestWriterNormalizesNewlines(t *testing.T) {
	var sb strings.Builder
	w := NewWriter(&sb, "\r\n")

	w.Write("a\nb\r\nc\rd")
	w.FinishBlock()
	w.Write("e")
	w.FinishBlock()

	assert.Equal(t, "a\r\nb\r\nc\r\nd\r\n\r\ne\r\n", sb.String())
}

type failingWriter struct {
	err   error
	calls int
}

func (f *failingWriter) Write(p []byte) (int, error) {
	f.calls++
	return 0, f.err
}

func TestWriterStickyError(t *testing.T) {
	sinkErr := errors.New("disk full")
	fw := &failingWriter{err: sinkErr}
	w := NewWriter(fw, "")

	w.Write("a")
	w.FinishBlock()
	w.Write("b")

	assert.Same(t, sinkErr, w.Err())
	assert.Equal(t, 1, fw.calls)
}
