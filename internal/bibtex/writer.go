package bibtex

import (
	"io"
	"strings"
)

// Writer writes text blocks separated by exactly one empty line. All line
// breaks are normalised to the configured newline.
type Writer struct {
	out     io.Writer
	newline string

	lastWasNewline    bool
	newlineRequired   bool
	writtenSinceBlock bool
	err               error
}

// NewWriter wraps out. An empty newline defaults to "\n".
func NewWriter(out io.Writer, newline string) *Writer {
	if newline == "" {
		newline = "\n"
	}
	return &Writer{out: out, newline: newline}
}

// Newline returns the configured line separator.
func (w *Writer) Newline() string { return w.newline }

// Write writes s after normalising its line breaks.
func (w *Writer) Write(s string) {
	if s == "" || w.err != nil {
		return
	}
	s = w.normalize(s)
	if w.newlineRequired {
		w.newlineRequired = false
		w.emit(w.newline)
	}
	w.emit(s)
	w.lastWasNewline = strings.HasSuffix(s, w.newline)
	w.writtenSinceBlock = true
}

// WriteLine writes s and ends the line.
func (w *Writer) WriteLine(s string) {
	w.Write(s)
	w.FinishLine()
}

// FinishLine ends the current line unless the last write already did.
func (w *Writer) FinishLine() {
	if !w.lastWasNewline {
		w.Write(w.newline)
	}
}

// FinishBlock closes the current block. Nothing happens when no text was
// written since the previous block.
func (w *Writer) FinishBlock() {
	if !w.writtenSinceBlock {
		return
	}
	w.FinishLine()
	w.writtenSinceBlock = false
	w.newlineRequired = true
}

// Err returns the first error of the underlying writer.
func (w *Writer) Err() error { return w.err }

func (w *Writer) emit(s string) {
	if w.err != nil {
		return
	}
	if _, err := io.WriteString(w.out, s); err != nil {
		w.err = err
	}
}

func (w *Writer) normalize(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if w.newline != "\n" {
		s = strings.ReplaceAll(s, "\n", w.newline)
	}
	return s
}
