// Package macros orders and writes @String definitions so that every macro
// is defined before the macros that reference it.
package macros

import (
	"sort"
	"strings"

	"github.com/conduit-lang/bibkit/internal/bibtex"
	"github.com/conduit-lang/bibkit/internal/model"
)

// Serialize returns the macros in output order: sorted by name, grouped by
// category, with pending references pulled in front of their referrer.
// Each macro appears exactly once, also when references form a cycle.
func Serialize(defs []*model.StringMacro) []*model.StringMacro {
	sorted := make([]*model.StringMacro, len(defs))
	copy(sorted, defs)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i].Name(), sorted[j].Name()) })

	pending := make(map[string]*model.StringMacro, len(sorted))
	for _, m := range sorted {
		pending[m.Name()] = m
	}

	out := make([]*model.StringMacro, 0, len(sorted))
	var visit func(m *model.StringMacro)
	visit = func(m *model.StringMacro) {
		delete(pending, m.Name())
		for _, ref := range bibtex.References(m.Content()) {
			if dep, ok := pending[ref]; ok {
				visit(dep)
			}
		}
		out = append(out, m)
	}

	for _, cat := range model.Categories {
		for _, m := range sorted {
			if _, ok := pending[m.Name()]; ok && m.Category() == cat {
				visit(m)
			}
		}
	}
	return out
}

func less(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}

// NameWidth returns the length of the longest macro name.
func NameWidth(macros []*model.StringMacro) int {
	width := 0
	for _, m := range macros {
		if n := len(m.Name()); n > width {
			width = n
		}
	}
	return width
}
