// Package bibtex renders field values, entries and text blocks in BibTeX
// syntax.
package bibtex

import (
	"fmt"
	"strings"

	"github.com/conduit-lang/bibkit/internal/model"
)

// DefaultResolvableFields lists the fields whose #name# references are
// written as bare macro names by default.
var DefaultResolvableFields = []string{
	"author", "booktitle", "editor", "editora", "editorb", "editorc",
	"institution", "issuetitle", "journal", "journalsubtitle", "journaltitle",
	"mainsubtitle", "month", "publisher", "shortauthor", "shorteditor",
	"subtitle", "titleaddon",
}

// Preferences control which fields resolve macro references.
type Preferences struct {
	// ResolveOnlySelected restricts resolution to ResolvableFields. When
	// false, every field resolves.
	ResolveOnlySelected bool
	ResolvableFields    []string
}

// DefaultPreferences returns the stock preferences.
func DefaultPreferences() Preferences {
	fields := make([]string, len(DefaultResolvableFields))
	copy(fields, DefaultResolvableFields)
	return Preferences{ResolveOnlySelected: true, ResolvableFields: fields}
}

// InvalidValueError reports a value that cannot be written as BibTeX.
type InvalidValueError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidValueError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid value %q: %s", e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid value for field %s %q: %s", e.Field, e.Value, e.Reason)
}

func invalid(field, value, reason string) error {
	return &InvalidValueError{Field: field, Value: value, Reason: reason}
}

// Codec encodes raw field values.
type Codec struct {
	resolveAll bool
	resolvable map[string]bool
}

// NewCodec builds a codec from preferences.
func NewCodec(prefs Preferences) *Codec {
	c := &Codec{resolveAll: !prefs.ResolveOnlySelected, resolvable: make(map[string]bool)}
	for _, f := range prefs.ResolvableFields {
		c.resolvable[strings.ToLower(strings.TrimSpace(f))] = true
	}
	return c
}

// Resolves reports whether #name# references in field become macro names.
func (c *Codec) Resolves(field string) bool {
	field = strings.ToLower(field)
	return c.resolveAll || field == model.FieldStringContent || c.resolvable[field]
}

// Encode returns the written form of a value.
func (c *Codec) Encode(field, raw string) (string, error) {
	if !c.Resolves(field) {
		if err := CheckBraces(field, raw); err != nil {
			return "", err
		}
		return "{" + raw + "}", nil
	}

	tokens, err := Tokenize(field, raw)
	if err != nil {
		return "", err
	}
	if len(tokens) == 0 {
		return "{}", nil
	}
	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t.Macro {
			parts = append(parts, t.Text)
		} else {
			parts = append(parts, "{"+t.Text+"}")
		}
	}
	return strings.Join(parts, " # "), nil
}
