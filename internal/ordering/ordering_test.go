package ordering

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/bibkit/internal/model"
)

func entry(key string, fields ...string) *model.Entry {
	e := model.NewEntry("misc")
	e.SetKey(key)
	for i := 0; i+1 < len(fields); i += 2 {
		e.SetField(fields[i], fields[i+1])
	}
	return e
}

func keys(entries []*model.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Key()
	}
	return out
}

func TestOrder_ReferrerBeforeTarget(t *testing.T) {
	a := entry("a", "crossref", "b")
	b := entry("b")

	got := Order([]*model.Entry{a, b}, model.OriginalOrder())
	assert.Equal(t, []string{"a", "b"}, keys(got))

	// reversed input still puts the referrer first
	got = Order([]*model.Entry{b, a}, model.OriginalOrder())
	assert.Equal(t, []string{"a", "b"}, keys(got))
}

func TestOrder_OriginalKeepsInsertionOrder(t *testing.T) {
	x := entry("x")
	y := entry("y")
	z := entry("z")

	got := Order([]*model.Entry{z, x, y}, model.OriginalOrder())
	assert.Equal(t, []string{"x", "y", "z"}, keys(got))
}

func TestOrder_OriginalMovesOnlyTargets(t *testing.T) {
	c := entry("c")
	d := entry("d", "crossref", "missing")
	a := entry("a", "crossref", "b")
	b := entry("b")

	got := Order([]*model.Entry{c, d, a, b}, model.OriginalOrder())
	assert.Equal(t, []string{"c", "d", "a", "b"}, keys(got))

	// the target is delayed past its referrer, unrelated entries stay put
	b2 := entry("b2")
	x := entry("x")
	a2 := entry("a2", "crossref", "b2")
	got = Order([]*model.Entry{b2, x, a2}, model.OriginalOrder())
	assert.Equal(t, []string{"x", "a2", "b2"}, keys(got))
}

func TestOrder_SpecifiedIgnoresCrossRefPresence(t *testing.T) {
	late := entry("z", "crossref", "nowhere", "year", "2020")
	early := entry("y", "year", "1990")

	got := Order([]*model.Entry{late, early}, model.SpecifiedOrder(model.SortCriterion{Field: "year"}))
	assert.Equal(t, []string{"y", "z"}, keys(got))
}

func TestOrder_Specified(t *testing.T) {
	first := entry("first", "author", "A", "year", "2000")
	second := entry("second", "author", "A", "year", "2010")
	third := entry("third", "author", "B", "year", "2000")

	order := model.SpecifiedOrder(
		model.SortCriterion{Field: "author"},
		model.SortCriterion{Field: "year", Descending: true},
	)
	got := Order([]*model.Entry{third, first, second}, order)
	assert.Equal(t, []string{"second", "first", "third"}, keys(got))
}

func TestOrder_SpecifiedFallsBackToKeyThenID(t *testing.T) {
	b := entry("b", "year", "2000")
	a := entry("a", "year", "2000")
	dup1 := entry("", "year", "2000")
	dup2 := entry("", "year", "2000")

	got := Order([]*model.Entry{dup2, b, dup1, a}, model.SpecifiedOrder(model.SortCriterion{Field: "year"}))
	require.Len(t, got, 4)
	assert.Same(t, dup1, got[0])
	assert.Same(t, dup2, got[1])
	assert.Equal(t, []string{"a", "b"}, keys(got[2:]))
}

func TestOrder_CaseSensitive(t *testing.T) {
	lower := entry("l", "title", "alpha")
	upper := entry("u", "title", "Beta")

	got := Order([]*model.Entry{lower, upper}, model.SpecifiedOrder(model.SortCriterion{Field: "title"}))
	assert.Equal(t, []string{"u", "l"}, keys(got))
}

func TestOrder_Chain(t *testing.T) {
	// c -> b -> a, all sorted by key ascending which would put a first
	a := entry("a")
	b := entry("b", "crossref", "a")
	c := entry("c", "crossref", "b")

	got := Order([]*model.Entry{a, b, c}, model.SpecifiedOrder(model.SortCriterion{Field: model.FieldCitationKey}))
	assert.Equal(t, []string{"c", "b", "a"}, keys(got))
}

func TestOrder_CycleTerminates(t *testing.T) {
	a := entry("a", "crossref", "b")
	b := entry("b", "crossref", "a")
	self := entry("s", "crossref", "s")

	got := Order([]*model.Entry{a, b}, model.OriginalOrder())
	assert.Equal(t, []string{"a", "b"}, keys(got))

	// entries outside the cycle are released first
	got = Order([]*model.Entry{a, b, self}, model.OriginalOrder())
	assert.Equal(t, []string{"s", "a", "b"}, keys(got))
}

func TestOrder_DoesNotModifyInput(t *testing.T) {
	a := entry("a")
	b := entry("b", "crossref", "a")
	in := []*model.Entry{a, b}
	Order(in, model.OriginalOrder())
	assert.Same(t, a, in[0])
}

func TestOrder_Property(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 200; round++ {
		n := 2 + rng.Intn(12)
		entries := make([]*model.Entry, n)
		for i := range entries {
			entries[i] = entry(fmt.Sprintf("k%02d", i), "year", fmt.Sprint(rng.Intn(3)))
		}
		// acyclic references: only towards a lower index
		for i := 1; i < n; i++ {
			if rng.Intn(2) == 0 {
				entries[i].SetField("crossref", entries[rng.Intn(i)].Key())
			}
		}
		rng.Shuffle(n, func(i, j int) { entries[i], entries[j] = entries[j], entries[i] })

		order := model.SpecifiedOrder(model.SortCriterion{Field: "year", Descending: rng.Intn(2) == 0})
		got := Order(entries, order)
		require.Len(t, got, n)

		pos := make(map[string]int, n)
		for i, e := range got {
			pos[e.Key()] = i
		}
		for _, e := range got {
			if ref, ok := e.CrossRef(); ok {
				assert.Less(t, pos[e.Key()], pos[ref], "round %d: %s must precede %s", round, e.Key(), ref)
			}
		}

		again := Order(entries, order)
		assert.Equal(t, keys(got), keys(again))
	}
}
