package frontier

import (
	"slices"
	"testing"
)

func live(q *Queue[int]) []int32 {
	var out []int32
	for _, id := range q.Slots() {
		if id != Hole {
			out = append(out, id)
		}
	}
	return out
}

func TestAddRemove(t *testing.T) {
	q := New[int](16, 4)
	if !q.TryAdd(3, 30) || !q.TryAdd(5, 50) {
		t.Fatal("fresh adds must succeed")
	}
	if q.TryAdd(3, 99) {
		t.Fatal("adding a tracked cell must be a no-op")
	}
	if v, ok := q.Value(3); !ok || v != 30 {
		t.Fatalf("value of 3 = %d,%v; expected 30,true", v, ok)
	}
	if q.Len() != 2 || q.End() != 2 {
		t.Fatalf("len=%d end=%d, expected 2/2", q.Len(), q.End())
	}
	if !q.TryRemove(3) {
		t.Fatal("removing a tracked cell must succeed")
	}
	if q.TryRemove(3) {
		t.Fatal("removing an untracked cell must be a no-op")
	}
	if q.Contains(3) || q.Slot(3) != Hole {
		t.Fatal("removed cell still tracked")
	}
	if q.Len() != 1 || q.End() != 2 {
		t.Fatalf("removal must leave a hole: len=%d end=%d", q.Len(), q.End())
	}
	if q.Slots()[0] != Hole {
		t.Fatal("slot 0 should be a hole")
	}
	if q.Slot(5) != 1 {
		t.Fatalf("removal shifted cell 5 to slot %d", q.Slot(5))
	}
}

func TestGrowPreservesSlots(t *testing.T) {
	q := New[int](100, 2)
	for id := int32(0); id < 10; id++ {
		q.TryAdd(id, int(id)*10)
	}
	if q.Cap() < 10 {
		t.Fatalf("capacity %d did not grow", q.Cap())
	}
	for id := int32(0); id < 10; id++ {
		if q.Slot(id) != id {
			t.Fatalf("cell %d moved to slot %d during growth", id, q.Slot(id))
		}
		if v, _ := q.Value(id); v != int(id)*10 {
			t.Fatalf("value of %d lost during growth: %d", id, v)
		}
	}
}

func TestCompactPreservesOrder(t *testing.T) {
	q := New[int](32, 32)
	for id := int32(0); id < 20; id++ {
		q.TryAdd(id, int(id)+100)
	}
	for _, id := range []int32{0, 3, 4, 9, 15, 19} {
		q.TryRemove(id)
	}
	before := live(q)
	if !q.Compact() {
		t.Fatal("compaction expected with 30% waste")
	}
	if q.End() != q.Len() || q.Len() != 14 {
		t.Fatalf("end=%d len=%d after compaction", q.End(), q.Len())
	}
	if !slices.Equal(before, live(q)) {
		t.Fatalf("compaction reordered entries: %v vs %v", before, live(q))
	}
	for slot, id := range q.Slots() {
		if q.Slot(id) != int32(slot) {
			t.Fatalf("cell %d back-index %d, expected %d", id, q.Slot(id), slot)
		}
		if v, _ := q.Value(id); v != int(id)+100 {
			t.Fatalf("value of cell %d did not follow it: %d", id, v)
		}
	}
	if q.Compactions() != 1 {
		t.Fatalf("compactions = %d", q.Compactions())
	}
}

func TestCompactBelowThreshold(t *testing.T) {
	q := New[struct{}](200, 200)
	for id := int32(0); id < 100; id++ {
		q.TryAdd(id, struct{}{})
	}
	q.TryRemove(50)
	if q.Compact() {
		t.Fatal("1% waste must not trigger compaction")
	}
	if q.End() != 100 {
		t.Fatalf("end changed to %d", q.End())
	}
}

func TestCompactEmpty(t *testing.T) {
	q := New[int](8, 8)
	q.TryAdd(1, 1)
	q.TryAdd(2, 2)
	q.TryRemove(1)
	q.TryRemove(2)
	if !q.Compact() || q.End() != 0 {
		t.Fatalf("draining compaction left end=%d", q.End())
	}
	if !q.TryAdd(1, 5) || q.Slot(1) != 0 {
		t.Fatal("queue unusable after draining compaction")
	}
}

func TestPutAndSet(t *testing.T) {
	q := New[int](8, 8)
	if q.Set(4, 1) {
		t.Fatal("Set on an untracked cell must fail")
	}
	q.Put(4, 1)
	q.Put(4, 2)
	if v, ok := q.Value(4); !ok || v != 2 || q.Len() != 1 {
		t.Fatalf("Put did not update in place: %d %v len=%d", v, ok, q.Len())
	}
	v, ok := q.Remove(4)
	if !ok || v != 2 {
		t.Fatalf("Remove returned %d,%v", v, ok)
	}
}

func BenchmarkAddRemoveCompact(b *testing.B) {
	const cells = 1 << 16
	q := New[int](cells, 1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		id := int32(i % cells)
		if !q.TryAdd(id, i) {
			q.TryRemove(id)
		}
		if i%1024 == 0 {
			q.Compact()
		}
	}
}
