// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package im is the Intermediate Model: the central store that owns
// every physics entity a deck parser produces, plus the finish()
// normalisation pipeline and validate() invariant checker described by
// SPEC_FULL.md §4.3. The collection/reference architecture generalises
// ele/factory.go's string-keyed allocator registry to an int-id-keyed
// entity store, per DESIGN.md.
package im

import (
	"github.com/Alneos/vega-sub001/idstore"
	"github.com/Alneos/vega-sub001/mesh"
	"github.com/cpmech/gosl/chk"
)

// Model owns the mesh plus every physics entity collection. It is the
// sole owner named by spec.md §3.5: every cross-entity link elsewhere in
// this package is a Ref resolved against one of these collections.
type Model struct {
	Name string
	Mesh *mesh.Mesh

	gen *idGen

	materials      *idstore.Collection[*Material]
	elementSets    *idstore.Collection[*ElementSet]
	values         *idstore.Collection[*Value]
	loadings       *idstore.Collection[*Loading]
	constraints    *idstore.Collection[*Constraint]
	loadSets       *idstore.Collection[*LoadSet]
	constraintSets *idstore.Collection[*ConstraintSet]
	analyses       *idstore.Collection[*Analysis]
	assertions     *idstore.Collection[*Assertion]

	commonConstraintSetID int
}

// New builds an empty Model with its own mesh and its own synthetic id
// generator (spec.md §5: "no static mutable state leaks between
// instances"), and creates the distinguished common ConstraintSet
// (spec.md §9: "model it as a normal set with a well-known handle
// created during IM construction rather than process-wide state").
func New(name string) *Model {
	m := &Model{
		Name:           name,
		Mesh:           mesh.New(),
		gen:            newIDGen(),
		materials:      idstore.NewCollection[*Material](),
		elementSets:    idstore.NewCollection[*ElementSet](),
		values:         idstore.NewCollection[*Value](),
		loadings:       idstore.NewCollection[*Loading](),
		constraints:    idstore.NewCollection[*Constraint](),
		loadSets:       idstore.NewCollection[*LoadSet](),
		constraintSets: idstore.NewCollection[*ConstraintSet](),
		analyses:       idstore.NewCollection[*Analysis](),
		assertions:     idstore.NewCollection[*Assertion](),
	}
	common := NewConstraintSet(m.gen.Next(), 0, TagSPC)
	if err := m.constraintSets.Add(common); err != nil {
		chk.Panic("im: failed to seed common constraint set: %v", err)
	}
	m.commonConstraintSetID = common.RefID()
	return m
}

// NextID hands out the next synthetic id, for callers (parsers, finish
// passes) that must create an entity the model has not already read an
// original id for.
func (m *Model) NextID() int { return m.gen.Next() }

// --- Material ---

func (m *Model) AddMaterial(mat *Material) error {
	if err := m.materials.Add(mat); err != nil {
		return chk.Err("im: cannot add material: %v", err)
	}
	return nil
}
func (m *Model) FindMaterial(id int) (*Material, bool) { return m.materials.Find(id) }
func (m *Model) Materials() []*Material                { return m.materials.All() }

// --- ElementSet ---

func (m *Model) AddElementSet(e *ElementSet) error {
	if err := m.elementSets.Add(e); err != nil {
		return chk.Err("im: cannot add element set: %v", err)
	}
	return nil
}
func (m *Model) FindElementSet(id int) (*ElementSet, bool) { return m.elementSets.Find(id) }
func (m *Model) ElementSets() []*ElementSet                { return m.elementSets.All() }
func (m *Model) RemoveElementSet(id int) bool              { return m.elementSets.Remove(id) }

// --- Value ---

func (m *Model) AddValue(v *Value) error {
	if err := m.values.Add(v); err != nil {
		return chk.Err("im: cannot add value: %v", err)
	}
	return nil
}
func (m *Model) FindValue(id int) (*Value, bool) { return m.values.Find(id) }
func (m *Model) Values() []*Value                { return m.values.All() }

// --- Loading ---

func (m *Model) AddLoading(l *Loading) error {
	if err := m.loadings.Add(l); err != nil {
		return chk.Err("im: cannot add loading: %v", err)
	}
	return nil
}
func (m *Model) FindLoading(id int) (*Loading, bool) { return m.loadings.Find(id) }
func (m *Model) Loadings() []*Loading                { return m.loadings.All() }
func (m *Model) RemoveLoading(id int) bool           { return m.loadings.Remove(id) }

// --- Constraint ---

func (m *Model) AddConstraint(c *Constraint) error {
	if err := m.constraints.Add(c); err != nil {
		return chk.Err("im: cannot add constraint: %v", err)
	}
	return nil
}
func (m *Model) FindConstraint(id int) (*Constraint, bool) { return m.constraints.Find(id) }
func (m *Model) Constraints() []*Constraint                { return m.constraints.All() }
func (m *Model) RemoveConstraint(id int) bool              { return m.constraints.Remove(id) }

// --- LoadSet ---

func (m *Model) AddLoadSet(s *LoadSet) error {
	if err := m.loadSets.Add(s); err != nil {
		return chk.Err("im: cannot add load set: %v", err)
	}
	return nil
}
func (m *Model) FindLoadSet(id int) (*LoadSet, bool) { return m.loadSets.Find(id) }
func (m *Model) LoadSets() []*LoadSet                { return m.loadSets.All() }

// --- ConstraintSet ---

func (m *Model) AddConstraintSet(s *ConstraintSet) error {
	if err := m.constraintSets.Add(s); err != nil {
		return chk.Err("im: cannot add constraint set: %v", err)
	}
	return nil
}
func (m *Model) FindConstraintSet(id int) (*ConstraintSet, bool) { return m.constraintSets.Find(id) }
func (m *Model) ConstraintSets() []*ConstraintSet                { return m.constraintSets.All() }

// --- Analysis ---

func (m *Model) AddAnalysis(a *Analysis) error {
	if err := m.analyses.Add(a); err != nil {
		return chk.Err("im: cannot add analysis: %v", err)
	}
	return nil
}
func (m *Model) FindAnalysis(id int) (*Analysis, bool) { return m.analyses.Find(id) }
func (m *Model) Analyses() []*Analysis                 { return m.analyses.All() }

// --- Assertion ---

func (m *Model) AddAssertion(a *Assertion) error {
	if err := m.assertions.Add(a); err != nil {
		return chk.Err("im: cannot add assertion: %v", err)
	}
	return nil
}
func (m *Model) FindAssertion(id int) (*Assertion, bool) { return m.assertions.Find(id) }
func (m *Model) Assertions() []*Assertion                { return m.assertions.All() }
func (m *Model) RemoveAssertion(id int) bool             { return m.assertions.Remove(id) }

// --- Cross-cutting operations (spec.md §4.3) ---

// AddLoadingIntoLoadSet resolves loadSetRef and appends loadingRef to it.
func (m *Model) AddLoadingIntoLoadSet(loadSetRef, loadingRef Ref) error {
	set, ok := m.loadSets.Find(loadSetRef.ID)
	if !ok {
		return chk.Err("im: load set %d does not exist", loadSetRef.ID)
	}
	set.AddLoading(loadingRef)
	return nil
}

// AddConstraintIntoConstraintSet resolves setRef and appends
// constraintRef to it.
func (m *Model) AddConstraintIntoConstraintSet(setRef, constraintRef Ref) error {
	set, ok := m.constraintSets.Find(setRef.ID)
	if !ok {
		return chk.Err("im: constraint set %d does not exist", setRef.ID)
	}
	set.AddConstraint(constraintRef)
	return nil
}

// GetLoadingsByLoadSet resolves every Loading named by loadSetRef's
// LoadingRefs, in declaration order.
func (m *Model) GetLoadingsByLoadSet(loadSetRef Ref) ([]*Loading, error) {
	set, ok := m.loadSets.Find(loadSetRef.ID)
	if !ok {
		return nil, chk.Err("im: load set %d does not exist", loadSetRef.ID)
	}
	out := make([]*Loading, 0, len(set.LoadingRefs))
	for _, r := range set.LoadingRefs {
		l, ok := m.loadings.Find(r.ID)
		if !ok {
			return nil, chk.Err("im: load set %d references missing loading %d", loadSetRef.ID, r.ID)
		}
		out = append(out, l)
	}
	return out, nil
}

// GetConstraintSetsByConstraint returns every ConstraintSet that
// references constraintRef, in collection order.
func (m *Model) GetConstraintSetsByConstraint(constraintRef Ref) []*ConstraintSet {
	var out []*ConstraintSet
	for _, set := range m.constraintSets.All() {
		for _, r := range set.ConstraintRefs {
			if r == constraintRef {
				out = append(out, set)
				break
			}
		}
	}
	return out
}

// GetCommonConstraintSets returns the model's distinguished common
// constraint set (constraints active on every analysis unless
// overridden).
func (m *Model) GetCommonConstraintSets() *ConstraintSet {
	set, ok := m.constraintSets.Find(m.commonConstraintSetID)
	if !ok {
		chk.Panic("im: common constraint set %d vanished", m.commonConstraintSetID)
	}
	return set
}

// RemoveSpcNodeDofs narrows spc (owned by originalSet) for analysis
// only: it clones spc with dofsToRemove dropped, builds a new
// ConstraintSet carrying that clone plus every other constraint
// originalSet held, and swaps analysis's reference to originalSet for
// the new set. Other analyses that still reference originalSet, and
// other constraints in it, are untouched (spec.md §4.3).
func (m *Model) RemoveSpcNodeDofs(analysis *Analysis, originalSet *ConstraintSet, spc *Constraint, node int, dofsToRemove DOFS) (*Constraint, *ConstraintSet, error) {
	if spc.Kind != ConstraintSPC {
		return nil, nil, chk.Err("im: remove_spc_node_dofs requires a SinglePointConstraint, got kind %d", spc.Kind)
	}
	if spc.NodeID != node {
		return nil, nil, chk.Err("im: constraint %d does not restrain node %d", spc.RefID(), node)
	}
	narrowed := spc.Clone(m.gen.Next())
	narrowed.Dofs = narrowed.Dofs.RemoveSet(dofsToRemove)
	if err := m.AddConstraint(narrowed); err != nil {
		return nil, nil, err
	}
	newSet := NewConstraintSet(m.gen.Next(), originalSet.OriginalID, originalSet.Type)
	for _, r := range originalSet.ConstraintRefs {
		if r == spc.Ref() {
			newSet.AddConstraint(narrowed.Ref())
		} else {
			newSet.AddConstraint(r)
		}
	}
	if err := m.AddConstraintSet(newSet); err != nil {
		return nil, nil, err
	}
	if !analysis.ReplaceConstraintSet(originalSet.Ref(), newSet.Ref()) {
		analysis.ActivateConstraintSet(newSet.Ref())
	}
	return narrowed, newSet, nil
}
