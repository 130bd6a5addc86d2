package registry

import "sync/atomic"

// Allocator hands out strictly increasing uint64 identifiers starting at
// seed+1. Ids are never reused, even when the entity is later deactivated.
type Allocator struct {
	last atomic.Uint64
}

// NewAllocator creates an Allocator that will issue seed+1 next. Pass the
// store's current max id so restarts continue the sequence.
func NewAllocator(seed uint64) *Allocator {
	a := &Allocator{}
	a.last.Store(seed)
	return a
}

// Next returns the next unused identifier.
func (a *Allocator) Next() uint64 {
	return a.last.Add(1)
}

// Registry owns the identifier sequences for projects and items.
// The two counters are independent: project ids and item ids each form
// their own dense sequence starting at 1.
type Registry struct {
	projects *Allocator
	items    *Allocator
}

// New creates a Registry seeded with the highest already-assigned ids.
func New(maxProjectID, maxItemID uint64) *Registry {
	return &Registry{
		projects: NewAllocator(maxProjectID),
		items:    NewAllocator(maxItemID),
	}
}

func (r *Registry) NextProjectID() uint64 { return r.projects.Next() }

func (r *Registry) NextItemID() uint64 { return r.items.Next() }
