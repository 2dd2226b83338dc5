// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package idstore provides the insertion-ordered, reference-indexed
// generic store used by both the mesh package (nodes, cells, groups,
// coordinate systems) and the im package (materials, element sets, load
// sets, analyses, ...), so neither has to depend on the other just to
// share this one data structure.
package idstore

import "github.com/cpmech/gosl/chk"

// Identified is implemented by every entity the Model owns: it exposes
// the stable internal id used for reference resolution.
type Identified interface {
	RefID() int
}

// Collection is an insertion-ordered, reference-indexed store of one
// entity family. It is the generic form of the "central store" guidance
// in spec.md §9: entities never hold raw pointers to each other, only a
// Ref that resolves through a Collection in O(1).
//
// Iteration order always matches insertion order (items is an append-only
// slice); index is purely an accelerator and never observed directly,
// satisfying the determinism rule that no associative container's
// iteration order leaks into output.
type Collection[T Identified] struct {
	items []T
	index map[int]int // id -> position in items
}

// NewCollection returns an empty Collection.
func NewCollection[T Identified]() *Collection[T] {
	return &Collection[T]{index: make(map[int]int)}
}

// Add appends item, which must carry an id unique within this Collection.
func (c *Collection[T]) Add(item T) error {
	id := item.RefID()
	if _, exists := c.index[id]; exists {
		return chk.Err("duplicate id %d in collection", id)
	}
	c.index[id] = len(c.items)
	c.items = append(c.items, item)
	return nil
}

// Find resolves id to its entity, or ok=false if absent.
func (c *Collection[T]) Find(id int) (T, bool) {
	var zero T
	pos, ok := c.index[id]
	if !ok {
		return zero, false
	}
	return c.items[pos], true
}

// MustFind resolves id, panicking if absent — used inside finish() passes
// after a reference has already been validated once.
func (c *Collection[T]) MustFind(id int) T {
	item, ok := c.Find(id)
	if !ok {
		chk.Panic("im: reference to id %d does not resolve", id)
	}
	return item
}

// All returns every item in insertion order. Callers must not mutate the
// returned slice's backing array.
func (c *Collection[T]) All() []T {
	return c.items
}

// Len returns the number of items.
func (c *Collection[T]) Len() int { return len(c.items) }

// Filter returns the items for which keep returns true, preserving order.
func (c *Collection[T]) Filter(keep func(T) bool) []T {
	out := make([]T, 0, len(c.items))
	for _, it := range c.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// Remove deletes the item with the given id, preserving the relative
// order of the remaining items. Used by finish() passes that prune
// ineffective loadings/constraints/assertions.
func (c *Collection[T]) Remove(id int) bool {
	pos, ok := c.index[id]
	if !ok {
		return false
	}
	c.items = append(c.items[:pos], c.items[pos+1:]...)
	delete(c.index, id)
	for i := pos; i < len(c.items); i++ {
		c.index[c.items[i].RefID()] = i
	}
	return true
}
