package ordering

import (
	"container/heap"

	"github.com/conduit-lang/bibkit/internal/model"
)

// repairCrossRefs reorders sorted so that every referrer precedes the entry
// it references, keeping the sorted position as tie breaker. Edges point from
// referrer to target. Cycles are broken at their earliest sorted member.
func repairCrossRefs(sorted []*model.Entry) []*model.Entry {
	n := len(sorted)
	if n < 2 {
		return sorted
	}

	// first entry per key wins, matching lookup by key elsewhere
	byKey := make(map[string]int, n)
	for i, e := range sorted {
		if !e.HasKey() {
			continue
		}
		if _, dup := byKey[e.Key()]; !dup {
			byKey[e.Key()] = i
		}
	}

	targets := make([]int, n)
	indegree := make([]int, n)
	hasEdges := false
	for i, e := range sorted {
		targets[i] = -1
		ref, ok := e.CrossRef()
		if !ok {
			continue
		}
		if t, found := byKey[ref]; found && t != i {
			targets[i] = t
			indegree[t]++
			hasEdges = true
		}
	}
	if !hasEdges {
		return sorted
	}

	ready := &positions{}
	for i := 0; i < n; i++ {
		if indegree[i] == 0 {
			heap.Push(ready, i)
		}
	}

	out := make([]*model.Entry, 0, n)
	done := make([]bool, n)
	emit := func(i int) {
		done[i] = true
		out = append(out, sorted[i])
		if t := targets[i]; t >= 0 && !done[t] {
			indegree[t]--
			if indegree[t] == 0 {
				heap.Push(ready, t)
			}
		}
	}

	next := 0
	for len(out) < n {
		if ready.Len() > 0 {
			emit(heap.Pop(ready).(int))
			continue
		}
		// only cycles remain: release the earliest pending entry
		for done[next] {
			next++
		}
		indegree[next] = 0
		emit(next)
	}
	return out
}

// positions is a min-heap of sorted positions.
type positions []int

func (p positions) Len() int           { return len(p) }
func (p positions) Less(i, j int) bool { return p[i] < p[j] }
func (p positions) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }
func (p *positions) Push(x any)        { *p = append(*p, x.(int)) }
func (p *positions) Pop() any {
	old := *p
	v := old[len(old)-1]
	*p = old[:len(old)-1]
	return v
}
