package model

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Database holds entries and string macros in insertion order.
type Database struct {
	entries  []*Entry
	strings  map[string]*StringMacro
	Preamble string
	Epilogue string
	SharedID string
}

// NewDatabase returns an empty database.
func NewDatabase() *Database {
	return &Database{strings: make(map[string]*StringMacro)}
}

// InsertEntry appends entries in the given order.
func (d *Database) InsertEntry(entries ...*Entry) {
	d.entries = append(d.entries, entries...)
}

// Entries returns the entries in insertion order. The slice is a copy.
func (d *Database) Entries() []*Entry {
	out := make([]*Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// EntryByKey returns the first entry with the given citation key.
func (d *Database) EntryByKey(key string) (*Entry, bool) {
	for _, e := range d.entries {
		if e.key == key {
			return e, true
		}
	}
	return nil, false
}

// Keys returns the set of citation keys in use.
func (d *Database) Keys() map[string]bool {
	keys := make(map[string]bool, len(d.entries))
	for _, e := range d.entries {
		if e.HasKey() {
			keys[e.key] = true
		}
	}
	return keys
}

// AddString registers a macro. Names are unique within a database.
func (d *Database) AddString(s *StringMacro) error {
	if _, exists := d.strings[s.name]; exists {
		return fmt.Errorf("string %q already defined", s.name)
	}
	d.strings[s.name] = s
	return nil
}

// String returns the macro with the given name.
func (d *Database) String(name string) (*StringMacro, bool) {
	s, ok := d.strings[name]
	return s, ok
}

// Strings returns all macros sorted by name.
func (d *Database) Strings() []*StringMacro {
	names := make([]string, 0, len(d.strings))
	for name := range d.strings {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]*StringMacro, 0, len(names))
	for _, name := range names {
		out = append(out, d.strings[name])
	}
	return out
}

// Share marks the database as shared and returns its identifier.
func (d *Database) Share() string {
	if d.SharedID == "" {
		d.SharedID = uuid.NewString()
	}
	return d.SharedID
}
