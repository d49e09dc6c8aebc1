// Package filterlist keeps a navigable, filtered and sorted view over a
// collection without copying its items.
package filterlist

import "slices"

// List owns a collection and a view of the positions that pass the current
// predicate. Selection is a position in the view, -1 when the view is empty.
//
// List is not safe for concurrent use; it lives on the UI goroutine.
type List[T any] struct {
	items    []T
	indices  []int
	selected int
	pred     func(T) bool
}

// New creates a list showing every item
func New[T any](items []T) *List[T] {
	l := &List[T]{}
	l.SetItems(items)
	return l
}

// SetItems replaces the collection and shows all of it. The stored predicate
// is dropped; callers re-apply their query afterwards.
func (l *List[T]) SetItems(items []T) {
	l.items = items
	l.pred = nil
	l.recompute()
}

// ApplyFilter stores pred and recomputes the view in collection order.
// Selection moves to the first visible item, or none.
func (l *List[T]) ApplyFilter(pred func(T) bool) {
	l.pred = pred
	l.recompute()
}

// Refilter re-runs the stored predicate, for predicates that read state
// which changed since ApplyFilter
func (l *List[T]) Refilter() {
	l.recompute()
}

// Sort reorders the collection with a stable sort and re-applies the stored
// predicate, since positions in the view are no longer valid.
func (l *List[T]) Sort(cmp func(a, b T) int) {
	slices.SortStableFunc(l.items, cmp)
	l.recompute()
}

func (l *List[T]) recompute() {
	l.indices = l.indices[:0]
	for i, item := range l.items {
		if l.pred == nil || l.pred(item) {
			l.indices = append(l.indices, i)
		}
	}
	if len(l.indices) == 0 {
		l.selected = -1
	} else {
		l.selected = 0
	}
}

// Next moves the selection down, wrapping to the top
func (l *List[T]) Next() {
	n := len(l.indices)
	if n == 0 {
		return
	}
	l.selected = (l.selected + 1) % n
}

// Previous moves the selection up, wrapping to the bottom
func (l *List[T]) Previous() {
	n := len(l.indices)
	if n == 0 {
		return
	}
	l.selected = (l.selected - 1 + n) % n
}

// Selected returns the highlighted item
func (l *List[T]) Selected() (T, bool) {
	var zero T
	if l.selected < 0 || l.selected >= len(l.indices) {
		return zero, false
	}
	return l.items[l.indices[l.selected]], true
}

// SelectedIndex returns the selection's position in the view, -1 for none
func (l *List[T]) SelectedIndex() int {
	return l.selected
}

// Select moves the selection to a view position. Out of range positions
// are ignored.
func (l *List[T]) Select(pos int) bool {
	if pos < 0 || pos >= len(l.indices) {
		return false
	}
	l.selected = pos
	return true
}

// SelectItem selects the view row showing the item at index i of the
// collection. It reports false when that item is filtered out.
func (l *List[T]) SelectItem(i int) bool {
	pos := slices.Index(l.indices, i)
	if pos < 0 {
		return false
	}
	l.selected = pos
	return true
}

// SelectFunc selects the first visible item for which match returns true
func (l *List[T]) SelectFunc(match func(T) bool) bool {
	for pos, i := range l.indices {
		if match(l.items[i]) {
			l.selected = pos
			return true
		}
	}
	return false
}

// Items returns the whole collection in its current order
func (l *List[T]) Items() []T {
	return l.items
}

// Visible returns the items in the view
func (l *List[T]) Visible() []T {
	out := make([]T, len(l.indices))
	for pos, i := range l.indices {
		out[pos] = l.items[i]
	}
	return out
}

// Len is the size of the collection
func (l *List[T]) Len() int {
	return len(l.items)
}

// VisibleLen is the size of the view
func (l *List[T]) VisibleLen() int {
	return len(l.indices)
}
