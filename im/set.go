// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package im

// SetTypeTag is the closed set of LoadSet/ConstraintSet type tags named
// by spec.md §3.2 (LOAD, DLOAD, EXCITEID, SPC, SPCD, MPC, CONTACT).
type SetTypeTag int

const (
	TagLOAD SetTypeTag = iota
	TagDLOAD
	TagEXCITEID
	TagSPC
	TagSPCD
	TagMPC
	TagCONTACT
)

// EmbeddedLoadSet is one (loadset, scale) term of a combined LoadSet
// (spec.md §3.2, `embedded_loadsets`).
type EmbeddedLoadSet struct {
	Ref   Ref // -> RefLoadSet
	Scale float64
}

// LoadSet is a named set of Loading references, with an optional linear
// combination of other LoadSets.
type LoadSet struct {
	id              int
	OriginalID      int
	Type            SetTypeTag
	LoadingRefs     []Ref // -> RefLoading
	EmbeddedLoadSets []EmbeddedLoadSet
}

// NewLoadSet builds an empty LoadSet.
func NewLoadSet(id, originalID int, tag SetTypeTag) *LoadSet {
	return &LoadSet{id: id, OriginalID: originalID, Type: tag}
}

// RefID returns the load set's stable id.
func (s *LoadSet) RefID() int { return s.id }

// Ref returns a Ref pointing at this load set.
func (s *LoadSet) Ref() Ref { return Ref{Kind: RefLoadSet, ID: s.id} }

// AddLoading appends a loading reference.
func (s *LoadSet) AddLoading(r Ref) { s.LoadingRefs = append(s.LoadingRefs, r) }

// Embed appends a (loadset, scale) combination term.
func (s *LoadSet) Embed(ref Ref, scale float64) {
	s.EmbeddedLoadSets = append(s.EmbeddedLoadSets, EmbeddedLoadSet{Ref: ref, Scale: scale})
}

// IsCombined reports whether this set still has unflattened embedded
// load sets (spec.md §8: "after replaceCombinedLoadSets, embedded_loadsets
// is empty").
func (s *LoadSet) IsCombined() bool { return len(s.EmbeddedLoadSets) > 0 }

// ConstraintSet is a named set of Constraint references.
type ConstraintSet struct {
	id             int
	OriginalID     int
	Type           SetTypeTag
	ConstraintRefs []Ref // -> RefConstraint
}

// NewConstraintSet builds an empty ConstraintSet.
func NewConstraintSet(id, originalID int, tag SetTypeTag) *ConstraintSet {
	return &ConstraintSet{id: id, OriginalID: originalID, Type: tag}
}

// RefID returns the constraint set's stable id.
func (s *ConstraintSet) RefID() int { return s.id }

// Ref returns a Ref pointing at this constraint set.
func (s *ConstraintSet) Ref() Ref { return Ref{Kind: RefConstraintSet, ID: s.id} }

// AddConstraint appends a constraint reference.
func (s *ConstraintSet) AddConstraint(r Ref) { s.ConstraintRefs = append(s.ConstraintRefs, r) }

// RemoveConstraint drops a constraint reference, used by
// Model.retractConstraint.
func (s *ConstraintSet) RemoveConstraint(r Ref) {
	out := s.ConstraintRefs[:0]
	for _, existing := range s.ConstraintRefs {
		if existing != r {
			out = append(out, existing)
		}
	}
	s.ConstraintRefs = out
}
