package cleanup

import (
	"strings"

	"github.com/conduit-lang/bibkit/internal/metadata"
	"github.com/conduit-lang/bibkit/internal/model"
)

// Action applies a formatter to one field.
type Action struct {
	Field     string
	Formatter Formatter
}

// Actions is an ordered list of field cleanups.
type Actions []Action

// Resolve maps configured rules to formatters. Rules naming an unknown
// formatter are returned separately and skipped.
func Resolve(rules []metadata.FieldFormatter) (Actions, []metadata.FieldFormatter) {
	var (
		actions Actions
		unknown []metadata.FieldFormatter
	)
	for _, r := range rules {
		f, ok := Lookup(r.Formatter)
		if !ok {
			unknown = append(unknown, r)
			continue
		}
		actions = append(actions, Action{Field: strings.ToLower(r.Field), Formatter: f})
	}
	return actions, unknown
}

// Apply runs every action on e and returns the resulting changes.
func (a Actions) Apply(e *model.Entry) []model.FieldChange {
	var changes []model.FieldChange
	for _, action := range a {
		value, ok := e.Field(action.Field)
		if !ok {
			continue
		}
		if change, changed := e.SetField(action.Field, action.Formatter.Format(value)); changed {
			changes = append(changes, change)
		}
	}
	return changes
}

// verbatimFields are never whitespace-normalised.
var verbatimFields = map[string]bool{
	model.FieldFile: true,
	model.FieldURL:  true,
	model.FieldDOI:  true,
	"pdf":           true,
	"eprint":        true,
	"abstract":      true,
}

// TrimWhitespace trims every field of a changed entry and collapses
// horizontal whitespace. Unchanged entries are left alone so that their
// original text is still written.
func TrimWhitespace(e *model.Entry) []model.FieldChange {
	if !e.HasChanged() {
		return nil
	}
	var changes []model.FieldChange
	for _, name := range e.FieldNames() {
		value := e.FieldOrEmpty(name)
		cleaned := strings.TrimSpace(value)
		if !verbatimFields[name] {
			cleaned = NormalizeWhitespace(cleaned)
		}
		if change, changed := e.SetField(name, cleaned); changed {
			changes = append(changes, change)
		}
	}
	return changes
}
