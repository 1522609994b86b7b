package bibtex

import (
	"sort"
	"strings"

	"github.com/conduit-lang/bibkit/internal/entrytypes"
	"github.com/conduit-lang/bibkit/internal/model"
)

// EntryWriter renders entries.
type EntryWriter struct {
	codec *Codec
	types *entrytypes.Manager
}

// NewEntryWriter returns an entry writer that encodes values with codec and
// groups fields by the definitions in types.
func NewEntryWriter(codec *Codec, types *entrytypes.Manager) *EntryWriter {
	return &EntryWriter{codec: codec, types: types}
}

// Write emits e to out. Unchanged parsed entries are written as read unless
// reformat is set. Nothing is written when a value fails to encode.
func (w *EntryWriter) Write(out *Writer, e *model.Entry, mode model.Mode, reformat bool) error {
	if original, ok := e.Provenance().Verbatim(); ok && !reformat {
		out.Write(original)
		return nil
	}
	text, err := w.Render(e, mode, out.Newline())
	if err != nil {
		return err
	}
	if e.UserComments != "" {
		out.Write(e.UserComments)
		out.FinishLine()
	}
	out.Write(text)
	return nil
}

// Render returns the canonical form of e without user comments.
func (w *EntryWriter) Render(e *model.Entry, mode model.Mode, newline string) (string, error) {
	var b strings.Builder
	b.WriteString("@")
	b.WriteString(entrytypes.DisplayName(e.Type()))
	b.WriteString("{")
	b.WriteString(e.Key())
	b.WriteString(",")
	b.WriteString(newline)

	width := 0
	for _, name := range e.FieldNames() {
		if len(name) > width {
			width = len(name)
		}
	}

	for _, name := range w.fieldOrder(e, mode) {
		value := e.FieldOrEmpty(name)
		if strings.TrimSpace(value) == "" {
			continue
		}
		encoded, err := w.codec.Encode(name, value)
		if err != nil {
			return "", err
		}
		b.WriteString("  ")
		b.WriteString(name)
		b.WriteString(strings.Repeat(" ", width-len(name)))
		b.WriteString(" = ")
		b.WriteString(encoded)
		b.WriteString(",")
		b.WriteString(newline)
	}
	b.WriteString("}")
	b.WriteString(newline)
	return b.String(), nil
}

// fieldOrder lists the present fields: required ones first, then optional
// ones, then the rest, each group sorted by name.
func (w *EntryWriter) fieldOrder(e *model.Entry, mode model.Mode) []string {
	def, _ := w.types.Enrich(e.Type(), mode)
	written := make(map[string]bool)
	var order []string

	appendGroup := func(names []string) {
		group := make([]string, 0, len(names))
		for _, name := range names {
			name = strings.ToLower(name)
			if written[name] {
				continue
			}
			if _, ok := e.Field(name); !ok {
				continue
			}
			written[name] = true
			group = append(group, name)
		}
		sort.Strings(group)
		order = append(order, group...)
	}

	appendGroup(def.RequiredFields())
	appendGroup(def.Optional)
	appendGroup(e.FieldNames())
	return order
}
