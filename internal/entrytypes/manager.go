// Package entrytypes knows the field layout of standard BibTeX and BibLaTeX
// entry types and keeps the custom types a library registers.
package entrytypes

import (
	"sort"
	"strings"

	"github.com/conduit-lang/bibkit/internal/model"
)

// Manager resolves entry type definitions for both dialects.
type Manager struct {
	standard map[model.Mode]map[string]model.EntryTypeDefinition
	custom   map[model.Mode]map[string]model.EntryTypeDefinition
}

// NewManager returns a manager preloaded with the standard definitions.
func NewManager() *Manager {
	m := &Manager{
		standard: map[model.Mode]map[string]model.EntryTypeDefinition{
			model.ModeBibTeX:   index(bibtexTypes),
			model.ModeBibLaTeX: index(biblatexTypes),
		},
		custom: map[model.Mode]map[string]model.EntryTypeDefinition{
			model.ModeBibTeX:   {},
			model.ModeBibLaTeX: {},
		},
	}
	return m
}

func index(defs []model.EntryTypeDefinition) map[string]model.EntryTypeDefinition {
	out := make(map[string]model.EntryTypeDefinition, len(defs))
	for _, d := range defs {
		out[d.Name] = d
	}
	return out
}

// AddCustom registers or overrides a type for the given mode.
func (m *Manager) AddCustom(def model.EntryTypeDefinition, mode model.Mode) {
	def.Name = strings.ToLower(def.Name)
	if m.custom[mode] == nil {
		m.custom[mode] = make(map[string]model.EntryTypeDefinition)
	}
	m.custom[mode][def.Name] = def
}

// IsCustom reports whether the type was registered with AddCustom.
func (m *Manager) IsCustom(entryType string, mode model.Mode) bool {
	_, ok := m.custom[mode][strings.ToLower(entryType)]
	return ok
}

// Enrich returns the definition for a type. Custom registrations win over
// standard ones. Unknown types yield a definition without fields.
func (m *Manager) Enrich(entryType string, mode model.Mode) (model.EntryTypeDefinition, bool) {
	name := strings.ToLower(entryType)
	if def, ok := m.custom[mode][name]; ok {
		return def, true
	}
	if def, ok := m.standard[mode][name]; ok {
		return def, true
	}
	return model.EntryTypeDefinition{Name: name}, false
}

// Custom returns all custom types for a mode sorted by name.
func (m *Manager) Custom(mode model.Mode) []model.EntryTypeDefinition {
	defs := make([]model.EntryTypeDefinition, 0, len(m.custom[mode]))
	for _, d := range m.custom[mode] {
		defs = append(defs, d)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// Known returns the names of every type available in a mode, sorted.
func (m *Manager) Known(mode model.Mode) []string {
	seen := make(map[string]bool)
	for name := range m.standard[mode] {
		seen[name] = true
	}
	for name := range m.custom[mode] {
		seen[name] = true
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DisplayName returns the spelling used after '@' for a type.
func DisplayName(entryType string) string {
	if name, ok := displayNames[strings.ToLower(entryType)]; ok {
		return name
	}
	return model.Capitalize(entryType)
}

func splitOr(group string) model.OrFields {
	parts := strings.Split(group, "/")
	out := make(model.OrFields, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.ToLower(p))
		}
	}
	return out
}
