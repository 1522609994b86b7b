package macros

import (
	"strings"

	"github.com/conduit-lang/bibkit/internal/bibtex"
	"github.com/conduit-lang/bibkit/internal/model"
)

// Write emits one @String definition with its name padded to width.
// Unchanged parsed macros are written as read unless reformat is set.
func Write(out *bibtex.Writer, codec *bibtex.Codec, m *model.StringMacro, width int, reformat bool) error {
	if original, ok := m.Provenance().Verbatim(); ok && !reformat {
		out.Write(original)
		return nil
	}

	value, err := codec.Encode(model.FieldStringContent, m.Content())
	if err != nil {
		return err
	}
	pad := width - len(m.Name())
	if pad < 0 {
		pad = 0
	}

	if m.UserComments != "" {
		out.Write(m.UserComments)
		out.FinishLine()
	}
	out.Write("@String{" + m.Name() + strings.Repeat(" ", pad) + " = " + value + "}")
	out.FinishLine()
	return nil
}
