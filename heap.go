package onyxc

import (
	"container/heap"

	"github.com/onyxlang/onyxc/ast"
)

// Heap is the priority queue of work items (spec.md §3.2, §4.1): a
// min-heap keyed by (state, id), lower-numbered states having strictly
// higher priority, ties broken by smaller id. This guarantees progress
// is always made on the earliest declaration in the earliest outstanding
// phase, so late-stage work never starves early-stage work, and
// dispatch order is deterministic.
type Heap struct {
	items []*Entity
	nextID int

	stateCounts        [stateCount]int
	stateKindCounts    map[State]map[ast.Kind]int
}

// NewHeap creates an empty Heap.
func NewHeap() *Heap {
	return &Heap{stateKindCounts: map[State]map[ast.Kind]int{}}
}

// Len implements container/heap.Interface.
func (h *Heap) Len() int { return len(h.items) }

// Less implements container/heap.Interface: ordering key (state, id).
func (h *Heap) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if a.State != b.State {
		return a.State < b.State
	}
	return a.id < b.id
}

func (h *Heap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
}

// Push implements container/heap.Interface. Use Insert/InsertExisting
// instead of calling this directly.
func (h *Heap) Push(x any) {
	h.items = append(h.items, x.(*Entity))
}

// Pop implements container/heap.Interface. Use RemoveTop instead of
// calling this directly.
func (h *Heap) Pop() any {
	old := h.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	h.items = old[:n-1]
	return item
}

func (h *Heap) bumpCounts(e *Entity, delta int) {
	h.stateCounts[e.State] += delta
	kinds := h.stateKindCounts[e.State]
	if kinds == nil {
		kinds = map[ast.Kind]int{}
		h.stateKindCounts[e.State] = kinds
	}
	kinds[e.Kind] += delta
	if kinds[e.Kind] == 0 {
		delete(kinds, e.Kind)
	}
}

// Insert assigns a fresh id to tmpl, pushes it, and updates the
// observable counters. It is a programming error (panic) to insert a
// template whose State is already terminal.
func (h *Heap) Insert(tmpl Template) *Entity {
	if tmpl.State.IsTerminal() {
		panic("onyxc: cannot insert an already-finalized or failed entity")
	}
	e := &Entity{
		id:      h.nextID,
		Kind:    tmpl.Kind,
		State:   tmpl.State,
		Package: tmpl.Package,
		Scope:   tmpl.Scope,
		Payload: tmpl.Payload,
	}
	h.nextID++
	heap.Push(h, e)
	h.bumpCounts(e, 1)
	return e
}

// InsertExisting re-inserts e without changing its id, after it yielded
// or made partial progress (spec.md §4.1).
func (h *Heap) InsertExisting(e *Entity) {
	if e.State.IsTerminal() {
		panic("onyxc: cannot re-insert a finalized or failed entity")
	}
	heap.Push(h, e)
	h.bumpCounts(e, 1)
}

// Top returns the highest-priority entity without removing it. Callers
// must check Len() > 0 first; calling Top on an empty heap is undefined,
// per spec.md §4.1's error conditions.
func (h *Heap) Top() *Entity { return h.items[0] }

// RemoveTop removes and returns the highest-priority entity.
func (h *Heap) RemoveTop() *Entity {
	e := h.items[0]
	heap.Remove(h, 0)
	h.bumpCounts(e, -1)
	return e
}

// StateCount returns how many entities currently in the heap have the
// given state.
func (h *Heap) StateCount(s State) int { return h.stateCounts[s] }

// StateKindCount returns how many entities currently in the heap have
// the given (state, kind) pair.
func (h *Heap) StateKindCount(s State, k ast.Kind) int {
	kinds := h.stateKindCounts[s]
	if kinds == nil {
		return 0
	}
	return kinds[k]
}

// TotalStateCounts returns the sum of all per-state counts, which must
// always equal Len() (spec.md §8 invariant).
func (h *Heap) TotalStateCounts() int {
	total := 0
	for _, c := range h.stateCounts {
		total += c
	}
	return total
}
