// Package pool provides a fixed-capacity slot pool for reusable game entities.
package pool

import "iter"

// Handle identifies a slot in a Pool.
type Handle int

// Pool is a preallocated set of reusable items. Capacity is fixed at
// construction; when every slot is in use Acquire reports failure instead
// of allocating.
type Pool[T any] struct {
	items []T
	used  []bool
	free  int
}

// New creates a pool of the given capacity. fill, when non-nil, builds the
// initial value of slot i. Capacity below 1 is clamped to 1.
func New[T any](capacity int, fill func(i int) T) *Pool[T] {
	if capacity < 1 {
		capacity = 1
	}
	p := &Pool[T]{
		items: make([]T, capacity),
		used:  make([]bool, capacity),
		free:  capacity,
	}
	if fill != nil {
		for i := range p.items {
			p.items[i] = fill(i)
		}
	}
	return p
}

// Acquire marks the lowest free slot as in use and returns its handle.
// Returns false when no slot is free.
func (p *Pool[T]) Acquire() (Handle, bool) {
	if p.free == 0 {
		return -1, false
	}
	for i, inUse := range p.used {
		if !inUse {
			p.used[i] = true
			p.free--
			return Handle(i), true
		}
	}
	return -1, false
}

// Release marks the slot free. Releasing a free slot or an invalid handle
// does nothing.
func (p *Pool[T]) Release(h Handle) {
	if !p.valid(h) || !p.used[h] {
		return
	}
	p.used[h] = false
	p.free++
}

// Get returns the item stored in the slot, or nil for an invalid handle.
func (p *Pool[T]) Get(h Handle) *T {
	if !p.valid(h) {
		return nil
	}
	return &p.items[h]
}

// InUse reports whether the slot is currently acquired.
func (p *Pool[T]) InUse(h Handle) bool {
	return p.valid(h) && p.used[h]
}

// Active iterates the in-use slots in index order. Releasing the current
// slot during iteration is allowed.
func (p *Pool[T]) Active() iter.Seq2[Handle, *T] {
	return func(yield func(Handle, *T) bool) {
		for i := range p.items {
			if !p.used[i] {
				continue
			}
			if !yield(Handle(i), &p.items[i]) {
				return
			}
		}
	}
}

// Reset releases every slot. Capacity is unchanged.
func (p *Pool[T]) Reset() {
	clear(p.used)
	p.free = len(p.used)
}

// Cap returns the fixed capacity.
func (p *Pool[T]) Cap() int { return len(p.items) }

// Free returns the number of free slots.
func (p *Pool[T]) Free() int { return p.free }

// Len returns the number of slots in use.
func (p *Pool[T]) Len() int { return len(p.items) - p.free }

func (p *Pool[T]) valid(h Handle) bool {
	return h >= 0 && int(h) < len(p.items)
}
