// Package model defines the in-memory bibliography: entries, string macros,
// save orders and the change records produced while preparing a save.
package model

import (
	"sort"
	"strings"
	"sync/atomic"
)

// Well-known field names. Field names are always stored lower case.
const (
	FieldCrossRef = "crossref"
	FieldMonth    = "month"
	FieldFile     = "file"
	FieldAuthor   = "author"
	FieldEditor   = "editor"
	FieldTitle    = "title"
	FieldYear     = "year"
	FieldDate     = "date"
	FieldKeywords = "keywords"
	FieldURL      = "url"
	FieldDOI      = "doi"

	// FieldCitationKey names the citation key in change records and sort criteria.
	FieldCitationKey = "citationkey"
	// FieldStringContent is the pseudo field used to encode @String contents.
	FieldStringContent = "__string"
)

var lastEntryID atomic.Uint64

// Entry is a single bibliographic record.
type Entry struct {
	id           uint64
	entryType    string
	key          string
	fields       map[string]string
	provenance   Provenance
	UserComments string
}

// NewEntry creates an entry of the given type with a fresh insertion id.
func NewEntry(entryType string) *Entry {
	return &Entry{
		id:        lastEntryID.Add(1),
		entryType: strings.ToLower(entryType),
		fields:    make(map[string]string),
	}
}

// ParsedEntry creates an entry that was read from original text. It stays
// eligible for verbatim output until one of its values changes.
func ParsedEntry(entryType, key string, fields map[string]string, original string) *Entry {
	e := NewEntry(entryType)
	e.key = key
	for name, value := range fields {
		e.fields[strings.ToLower(name)] = value
	}
	e.provenance = Parsed(original)
	return e
}

// ID returns the insertion id. Ids grow with creation order and are never reused.
func (e *Entry) ID() uint64 { return e.id }

// Type returns the lower-case entry type name.
func (e *Entry) Type() string { return e.entryType }

// SetType changes the entry type.
func (e *Entry) SetType(entryType string) {
	entryType = strings.ToLower(entryType)
	if entryType == e.entryType {
		return
	}
	e.entryType = entryType
	e.provenance = e.provenance.modified()
}

// Key returns the citation key, possibly empty.
func (e *Entry) Key() string { return e.key }

// HasKey reports whether the entry carries a non-blank citation key.
func (e *Entry) HasKey() bool { return strings.TrimSpace(e.key) != "" }

// SetKey changes the citation key and returns the change record, if any.
func (e *Entry) SetKey(key string) (FieldChange, bool) {
	if key == e.key {
		return FieldChange{}, false
	}
	change := FieldChange{Entry: e, Field: FieldCitationKey, OldValue: e.key, NewValue: key}
	e.key = key
	e.provenance = e.provenance.modified()
	return change, true
}

// Field returns the value of a field.
func (e *Entry) Field(name string) (string, bool) {
	v, ok := e.fields[strings.ToLower(name)]
	return v, ok
}

// FieldOrEmpty returns the value of a field or the empty string.
func (e *Entry) FieldOrEmpty(name string) string {
	return e.fields[strings.ToLower(name)]
}

// SetField stores a value and returns the change record when the value differs.
func (e *Entry) SetField(name, value string) (FieldChange, bool) {
	name = strings.ToLower(name)
	old, existed := e.fields[name]
	if existed && old == value {
		return FieldChange{}, false
	}
	e.fields[name] = value
	e.provenance = e.provenance.modified()
	return FieldChange{Entry: e, Field: name, OldValue: old, NewValue: value}, true
}

// ClearField removes a field and returns the change record when it existed.
func (e *Entry) ClearField(name string) (FieldChange, bool) {
	name = strings.ToLower(name)
	old, existed := e.fields[name]
	if !existed {
		return FieldChange{}, false
	}
	delete(e.fields, name)
	e.provenance = e.provenance.modified()
	return FieldChange{Entry: e, Field: name, OldValue: old}, true
}

// FieldNames returns the field names in byte order.
func (e *Entry) FieldNames() []string {
	names := make([]string, 0, len(e.fields))
	for name := range e.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsEmpty reports whether the entry has neither a key nor any field.
func (e *Entry) IsEmpty() bool {
	return !e.HasKey() && len(e.fields) == 0
}

// CrossRef returns the trimmed crossref target key, if present.
func (e *Entry) CrossRef() (string, bool) {
	v, ok := e.fields[FieldCrossRef]
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// Provenance returns where the current text of the entry comes from.
func (e *Entry) Provenance() Provenance { return e.provenance }

// MarkUnchanged drops pending modifications from the passthrough decision so
// the entry is written as originally parsed again. It has no effect on
// entries that were never parsed.
func (e *Entry) MarkUnchanged() {
	e.provenance = e.provenance.unchanged()
}

// MarkChanged forces the entry to be rebuilt from its fields on the next write.
func (e *Entry) MarkChanged() {
	e.provenance = e.provenance.modified()
}

// HasChanged reports whether the entry must be rebuilt from its fields.
func (e *Entry) HasChanged() bool {
	_, ok := e.provenance.Verbatim()
	return !ok
}
