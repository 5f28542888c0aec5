package primitives

// Table is a fixed-capacity, append-only set of behaviours indexed by slot.
// Slot 0 always holds the default behaviour passed to NewTable. Entries are
// compared with ==, so pointer handles deduplicate by identity.
type Table[T comparable] struct {
	items []T
}

// NewTable returns a table with room for capacity registered entries.
func NewTable[T comparable](capacity int, def T) Table[T] {
	items := make([]T, 1, capacity+1)
	items[0] = def
	return Table[T]{items: items}
}

// Add registers v and returns its slot. The zero value maps to slot 0.
// A known entry returns its existing slot. When the table is full Add
// returns (0, false).
func (t *Table[T]) Add(v T) (int, bool) {
	var zero T
	if v == zero {
		return 0, true
	}
	if i, ok := t.Index(v); ok {
		return i, true
	}
	if len(t.items) == cap(t.items) {
		return 0, false
	}
	t.items = append(t.items, v)
	return len(t.items) - 1, true
}

// Index finds v among the registered entries (slot 0 excluded).
func (t *Table[T]) Index(v T) (int, bool) {
	for i := 1; i < len(t.items); i++ {
		if t.items[i] == v {
			return i, true
		}
	}
	return 0, false
}

func (t *Table[T]) At(slot int) T { return t.items[slot] }

// Registered is the number of filled slots excluding slot 0.
func (t *Table[T]) Registered() int { return len(t.items) - 1 }

func (t *Table[T]) Capacity() int { return cap(t.items) - 1 }

// Replace swaps old for new in place. It reports false when old is not
// registered.
func (t *Table[T]) Replace(old, new T) bool {
	i, ok := t.Index(old)
	if !ok {
		return false
	}
	t.items[i] = new
	return true
}

// Clone returns an element-wise copy with the same capacity.
func (t *Table[T]) Clone() Table[T] {
	items := make([]T, len(t.items), cap(t.items))
	copy(items, t.items)
	return Table[T]{items: items}
}

// CopyFrom overwrites t with the entries of src. Both tables must have the
// same capacity.
func (t *Table[T]) CopyFrom(src *Table[T]) bool {
	if t.Capacity() != src.Capacity() {
		return false
	}
	t.items = t.items[:len(src.items)]
	copy(t.items, src.items)
	return true
}
