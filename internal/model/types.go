package model

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Mode is the target dialect.
type Mode string

const (
	ModeBibTeX   Mode = "bibtex"
	ModeBibLaTeX Mode = "biblatex"
)

// ParseMode parses a dialect name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeBibTeX, ModeBibLaTeX:
		return m, nil
	}
	return "", fmt.Errorf("unknown database mode %q", s)
}

// OrFields is a requirement satisfied by any one of its fields.
type OrFields []string

func (o OrFields) String() string { return strings.Join(o, "/") }

// EntryTypeDefinition describes the fields of an entry type.
type EntryTypeDefinition struct {
	Name     string
	Required []OrFields
	Optional []string
}

// RequiredFields flattens the required or-groups.
func (d EntryTypeDefinition) RequiredFields() []string {
	var out []string
	for _, group := range d.Required {
		out = append(out, group...)
	}
	return out
}

// Capitalize returns name with the first rune upper case and the rest lower case.
func Capitalize(name string) string {
	if name == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + strings.ToLower(name[size:])
}

// FieldChange records one field mutation so that callers can undo it.
type FieldChange struct {
	Entry    *Entry
	Field    string
	OldValue string
	NewValue string
}

func (c FieldChange) String() string {
	key := ""
	if c.Entry != nil {
		key = c.Entry.Key()
	}
	return fmt.Sprintf("%s.%s: %q -> %q", key, c.Field, c.OldValue, c.NewValue)
}
