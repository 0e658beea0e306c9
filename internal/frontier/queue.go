// Package frontier implements the dense-array-with-holes set that tracks the
// cells eligible for the next placement.
//
// Every tracked cell records its slot in a side table indexed by cell id, so
// lookups, adds and removes are O(1). Removal nulls the slot instead of
// shifting, which keeps every other slot index valid. Compact reclaims the
// holes once they waste enough space; it is the only operation that moves
// entries.
//
// A Queue is not safe for concurrent mutation. Concurrent reads of Slots and
// Values are fine as long as no goroutine mutates the queue at the same time.
package frontier

import "fmt"

// Hole marks an empty slot in the backing array.
const Hole int32 = -1

// DefaultWaste is the end/live ratio below which Compact is a no-op.
const DefaultWaste = 1.05

// Queue tracks cell ids with an auxiliary value of type T per entry. Use
// struct{} when no value is needed.
type Queue[T any] struct {
	ids    []int32
	values []T
	index  []int32

	end   int
	count int
	waste float64

	compactions int
}

// New creates a queue for a grid of cells entries with the given initial
// capacity.
func New[T any](cells, capacity int) *Queue[T] {
	if capacity <= 0 {
		capacity = 1024
	}
	index := make([]int32, cells)
	for i := range index {
		index[i] = Hole
	}
	return &Queue[T]{
		ids:    make([]int32, capacity),
		values: make([]T, capacity),
		index:  index,
		waste:  DefaultWaste,
	}
}

// SetWaste overrides the compaction threshold.
func (q *Queue[T]) SetWaste(ratio float64) {
	if ratio < 1 {
		ratio = 1
	}
	q.waste = ratio
}

// Len returns the number of live entries.
func (q *Queue[T]) Len() int { return q.count }

// End returns the logical end of the backing array; slots at or past End are
// unused.
func (q *Queue[T]) End() int { return q.end }

// Cap returns the capacity of the backing array.
func (q *Queue[T]) Cap() int { return len(q.ids) }

// Compactions returns how many times Compact moved entries.
func (q *Queue[T]) Compactions() int { return q.compactions }

// Slots exposes the backing ids up to End. Empty slots hold Hole.
func (q *Queue[T]) Slots() []int32 { return q.ids[:q.end] }

// Values exposes the backing values up to End, aligned with Slots.
func (q *Queue[T]) Values() []T { return q.values[:q.end] }

// Slot returns the slot of a cell, or Hole if it is not tracked.
func (q *Queue[T]) Slot(id int32) int32 { return q.index[id] }

// Contains reports whether the cell is tracked.
func (q *Queue[T]) Contains(id int32) bool { return q.index[id] != Hole }

// TryAdd appends the cell with value v. It returns false if the cell is
// already tracked.
func (q *Queue[T]) TryAdd(id int32, v T) bool {
	if q.index[id] != Hole {
		return false
	}
	if q.end == len(q.ids) {
		q.grow()
	}
	q.ids[q.end] = id
	q.values[q.end] = v
	q.index[id] = int32(q.end)
	q.end++
	q.count++
	return true
}

// TryRemove stops tracking the cell. It returns false if the cell was not
// tracked.
func (q *Queue[T]) TryRemove(id int32) bool {
	_, ok := q.Remove(id)
	return ok
}

// Remove stops tracking the cell and returns the value it carried.
func (q *Queue[T]) Remove(id int32) (T, bool) {
	var zero T
	slot := q.index[id]
	if slot == Hole {
		return zero, false
	}
	v := q.values[slot]
	q.ids[slot] = Hole
	q.values[slot] = zero
	q.index[id] = Hole
	q.count--
	return v, true
}

// Value returns the value carried by a tracked cell.
func (q *Queue[T]) Value(id int32) (T, bool) {
	slot := q.index[id]
	if slot == Hole {
		var zero T
		return zero, false
	}
	return q.values[slot], true
}

// Set replaces the value of a tracked cell. It returns false if the cell is
// not tracked.
func (q *Queue[T]) Set(id int32, v T) bool {
	slot := q.index[id]
	if slot == Hole {
		return false
	}
	q.values[slot] = v
	return true
}

// Put tracks the cell with value v, or updates the value if it is tracked.
func (q *Queue[T]) Put(id int32, v T) {
	if !q.Set(id, v) {
		q.TryAdd(id, v)
	}
}

// Compact moves live entries down over holes, preserving their relative
// order, once End/Len reaches the waste threshold. It reports whether any
// entries moved.
func (q *Queue[T]) Compact() bool {
	if q.end == q.count {
		return false
	}
	if q.count > 0 && float64(q.end)/float64(q.count) < q.waste {
		return false
	}
	var zero T
	free := 0
	for i := 0; i < q.end; i++ {
		id := q.ids[i]
		if id == Hole {
			continue
		}
		if i != free {
			q.ids[free] = id
			q.values[free] = q.values[i]
			q.ids[i] = Hole
			q.values[i] = zero
			q.index[id] = int32(free)
		}
		free++
	}
	if free != q.count {
		panic(fmt.Sprintf("frontier: compaction found %d live entries, expected %d", free, q.count))
	}
	q.end = free
	q.compactions++
	return true
}

// grow doubles the backing arrays. Slot indices are preserved.
func (q *Queue[T]) grow() {
	n := len(q.ids) * 2
	if n == 0 {
		n = 1024
	}
	ids := make([]int32, n)
	copy(ids, q.ids[:q.end])
	values := make([]T, n)
	copy(values, q.values[:q.end])
	q.ids = ids
	q.values = values
}
