package workcell

import (
	"math"
	"sort"
)

// ID identifies an entity in the workcell document. All entity kinds
// (frames, visuals, collisions, inertias, joints) draw from the same
// identifier space, so an ID is unambiguous regardless of which map it
// lives in.
type ID uint32

// RootID is the reserved identifier of the document root.
const RootID ID = 0

// NoParent is the sentinel parent used by the synthetic base link the
// exporter creates when the root has zero or multiple frame children.
// It is distinguishable from every real identifier.
const NoParent ID = math.MaxUint32

// Allocator hands out document identifiers. IDs are strictly increasing,
// starting just above the reserved root value.
type Allocator struct {
	next ID
}

// NewAllocator returns an allocator whose first ID is RootID + 1.
func NewAllocator() *Allocator {
	return &Allocator{next: RootID + 1}
}

// Next returns a fresh identifier.
func (a *Allocator) Next() ID {
	id := a.next
	a.next++
	return id
}

// Parented pairs an entity payload with its parent identifier. Topology
// is represented solely by these parent pointers; there are no child
// lists or back-references in the document.
type Parented[T any] struct {
	Parent ID `json:"parent"`
	Bundle T  `json:"bundle"`
}

// sortedIDs returns the map's keys in ascending order. Conversions walk
// maps through this so their output is deterministic.
func sortedIDs[T any](m map[ID]Parented[T]) []ID {
	ids := make([]ID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
