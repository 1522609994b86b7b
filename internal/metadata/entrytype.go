package metadata

import (
	"fmt"
	"strings"

	"github.com/conduit-lang/bibkit/internal/model"
)

// EntryTypeLine returns the comment body declaring a custom entry type:
// "jabref-entrytype: name: req[a;b/c] opt[x;y]".
func EntryTypeLine(def model.EntryTypeDefinition) string {
	required := make([]string, len(def.Required))
	for i, group := range def.Required {
		required[i] = group.String()
	}
	return EntryTypeFlag + strings.ToLower(def.Name) +
		": req[" + strings.Join(required, ";") + "]" +
		" opt[" + strings.Join(def.Optional, ";") + "]"
}

// ParseEntryTypeLine reverses EntryTypeLine. The flag prefix is optional.
func ParseEntryTypeLine(line string) (model.EntryTypeDefinition, error) {
	s := strings.TrimSpace(line)
	s = strings.TrimPrefix(s, strings.TrimSpace(EntryTypeFlag))
	s = strings.TrimSpace(s)

	colon := strings.IndexByte(s, ':')
	if colon <= 0 {
		return model.EntryTypeDefinition{}, fmt.Errorf("entry type %q: missing name", line)
	}
	def := model.EntryTypeDefinition{Name: strings.ToLower(strings.TrimSpace(s[:colon]))}
	rest := s[colon+1:]

	req, err := bracket(rest, "req[")
	if err != nil {
		return model.EntryTypeDefinition{}, fmt.Errorf("entry type %s: %w", def.Name, err)
	}
	opt, err := bracket(rest, "opt[")
	if err != nil {
		return model.EntryTypeDefinition{}, fmt.Errorf("entry type %s: %w", def.Name, err)
	}

	for _, group := range splitNonEmpty(req, ";") {
		def.Required = append(def.Required, model.OrFields(splitNonEmpty(group, "/")))
	}
	def.Optional = splitNonEmpty(opt, ";")
	return def, nil
}

func bracket(s, open string) (string, error) {
	start := strings.Index(s, open)
	if start < 0 {
		return "", fmt.Errorf("missing %s]", open)
	}
	start += len(open)
	end := strings.IndexByte(s[start:], ']')
	if end < 0 {
		return "", fmt.Errorf("unterminated %s", open)
	}
	return s[start : start+end], nil
}

func splitNonEmpty(s, sep string) []string {
	var out []string
	for _, p := range strings.Split(s, sep) {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
