// Package ordering sorts entries for output. Every entry that references
// another one through crossref is placed before its target.
package ordering

import (
	"sort"
	"strings"

	"github.com/conduit-lang/bibkit/internal/model"
)

// Comparator orders two entries. It returns a negative number when a sorts
// before b, a positive number when after and zero when undecided.
type Comparator func(a, b *model.Entry) int

// Chain folds comparators left to right; the first non-zero result wins.
func Chain(cmps ...Comparator) Comparator {
	return func(a, b *model.Entry) int {
		for _, c := range cmps {
			if r := c(a, b); r != 0 {
				return r
			}
		}
		return 0
	}
}

// ByID sorts by insertion id.
func ByID(a, b *model.Entry) int {
	switch {
	case a.ID() < b.ID():
		return -1
	case a.ID() > b.ID():
		return 1
	}
	return 0
}

// ByKey sorts by citation key.
func ByKey(a, b *model.Entry) int {
	return strings.Compare(a.Key(), b.Key())
}

// ByField sorts by the value of a field. Missing fields compare as empty.
func ByField(c model.SortCriterion) Comparator {
	field := strings.ToLower(c.Field)
	return func(a, b *model.Entry) int {
		var va, vb string
		if field == model.FieldCitationKey {
			va, vb = a.Key(), b.Key()
		} else {
			va, vb = a.FieldOrEmpty(field), b.FieldOrEmpty(field)
		}
		r := strings.Compare(va, vb)
		if c.Descending {
			return -r
		}
		return r
	}
}

// ComparatorFor builds the comparator stack of a save order. Cross references
// are not part of the stack; Order handles them after sorting.
//
// Known limitation: the stack ends with the insertion id, so entries whose
// keys are duplicated or missing are not told apart by key and fall back to
// insertion order.
func ComparatorFor(order model.SaveOrder) Comparator {
	var cmps []Comparator
	if order.Type == model.OrderSpecified {
		for _, c := range order.Criteria {
			cmps = append(cmps, ByField(c))
		}
		cmps = append(cmps, ByKey)
	}
	cmps = append(cmps, ByID)
	return Chain(cmps...)
}

// Order returns entries sorted for output. The input slice is not modified.
//
// Entries related through crossref are then moved so that each referrer
// precedes its target. Only targets move; every other entry keeps its sorted
// position relative to the rest.
//
// Known limitation: a target is only found by its key. A crossref to a
// missing key is ignored, and when a key is duplicated only the first entry
// carrying it is treated as the target; the others keep insertion order.
func Order(entries []*model.Entry, order model.SaveOrder) []*model.Entry {
	sorted := make([]*model.Entry, len(entries))
	copy(sorted, entries)
	cmp := ComparatorFor(order)
	sort.SliceStable(sorted, func(i, j int) bool { return cmp(sorted[i], sorted[j]) < 0 })
	return repairCrossRefs(sorted)
}
