// Package picker keeps the available/selected collections behind the team,
// task and client steps of project creation.
package picker

import "github.com/samber/lo"

// Keyed is an entity with a stable identity.
type Keyed interface {
	Key() int64
}

// Filter reports whether an item should be shown.
type Filter[T any] func(T) bool

// All composes filters; an item passes when every filter passes. Nil
// filters are skipped.
func All[T any](filters ...Filter[T]) Filter[T] {
	active := lo.Filter(filters, func(f Filter[T], _ int) bool { return f != nil })
	return func(item T) bool {
		return lo.EveryBy(active, func(f Filter[T]) bool { return f(item) })
	}
}

// Picker holds two disjoint ordered collections. An item is always in
// exactly one of them.
type Picker[T Keyed] struct {
	available []T
	selected  []T
}

// New creates a picker with every item available. Duplicate keys are
// dropped after the first.
func New[T Keyed](items []T) *Picker[T] {
	return &Picker[T]{
		available: lo.UniqBy(items, func(item T) int64 { return item.Key() }),
	}
}

// Select moves the item with id from available to the end of selected.
// It returns false when id is not available.
func (p *Picker[T]) Select(id int64) bool {
	item, idx, ok := lo.FindIndexOf(p.available, func(item T) bool { return item.Key() == id })
	if !ok {
		return false
	}
	p.available = append(p.available[:idx:idx], p.available[idx+1:]...)
	p.selected = append(p.selected, item)
	return true
}

// Deselect returns the item with id to available. It returns false when
// id is not selected.
func (p *Picker[T]) Deselect(id int64) bool {
	item, idx, ok := lo.FindIndexOf(p.selected, func(item T) bool { return item.Key() == id })
	if !ok {
		return false
	}
	p.selected = append(p.selected[:idx:idx], p.selected[idx+1:]...)
	p.available = append(p.available, item)
	return true
}

// Available returns the available items passing every filter.
func (p *Picker[T]) Available(filters ...Filter[T]) []T {
	keep := All(filters...)
	return lo.Filter(p.available, func(item T, _ int) bool { return keep(item) })
}

// Selected returns the selected items, in selection order, passing every
// filter.
func (p *Picker[T]) Selected(filters ...Filter[T]) []T {
	keep := All(filters...)
	return lo.Filter(p.selected, func(item T, _ int) bool { return keep(item) })
}

// IsSelected reports whether id is in the selected collection.
func (p *Picker[T]) IsSelected(id int64) bool {
	return lo.ContainsBy(p.selected, func(item T) bool { return item.Key() == id })
}

// Contains reports whether id is known to the picker at all.
func (p *Picker[T]) Contains(id int64) bool {
	return p.IsSelected(id) || lo.ContainsBy(p.available, func(item T) bool { return item.Key() == id })
}

// Len returns the sizes of the available and selected collections.
func (p *Picker[T]) Len() (available, selected int) {
	return len(p.available), len(p.selected)
}

// SelectedIDs returns the keys of the selected items in selection order.
func (p *Picker[T]) SelectedIDs() []int64 {
	return lo.Map(p.selected, func(item T, _ int) int64 { return item.Key() })
}

// Reset makes every item in items available and clears the selection.
func (p *Picker[T]) Reset(items []T) {
	*p = *New(items)
}

// Load replaces the available items with items, keeping the current
// selection. Items that are already selected are not made available again.
func (p *Picker[T]) Load(items []T) {
	selected := lo.SliceToMap(p.selected, func(item T) (int64, struct{}) { return item.Key(), struct{}{} })
	p.available = lo.Filter(lo.UniqBy(items, func(item T) int64 { return item.Key() }), func(item T, _ int) bool {
		_, ok := selected[item.Key()]
		return !ok
	})
}
