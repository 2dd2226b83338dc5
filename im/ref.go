// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package im

// RefKind tags which collection a Ref points into, so a single Ref type
// can cross-reference any IM entity without a web of typed pointers
// (spec.md §9, "central store" guidance).
type RefKind int

const (
	RefNode RefKind = iota
	RefCell
	RefNodeGroup
	RefCellGroup
	RefCoordSystem
	RefMaterial
	RefElementSet
	RefValue
	RefLoading
	RefConstraint
	RefLoadSet
	RefConstraintSet
	RefAnalysis
	RefAssertion
)

// Ref is an opaque, stable handle to an entity owned by the Model: a
// type tag plus the entity's internal id (RefID, not OriginalID). Resolving a Ref is O(1)
// via the owning collection's id index.
type Ref struct {
	Kind RefKind
	ID   int
}

// IsZero reports whether r is the Go zero value. That value is the same
// as {RefNode, 0}; fields such as ElementSet.MaterialRef use it to mean
// "no reference".
func (r Ref) IsZero() bool { return r == Ref{} }
