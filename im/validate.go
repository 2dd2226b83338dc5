// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package im

import (
	"fmt"

	"github.com/Alneos/vega-sub001/geom"
)

// InvariantViolation reports one failure of the invariants quantified in
// spec.md §8 ("quantified invariants"). Validate collects every
// violation it finds rather than stopping at the first, so a caller in
// BestEffort mode can log them all at once.
type InvariantViolation struct {
	Entity string
	ID     int
	Msg    string
}

func (v *InvariantViolation) Error() string {
	return fmt.Sprintf("%s %d: %s", v.Entity, v.ID, v.Msg)
}

func newViolation(entity string, id int, format string, a ...interface{}) *InvariantViolation {
	return &InvariantViolation{Entity: entity, ID: id, Msg: fmt.Sprintf(format, a...)}
}

// Validate checks every invariant from spec.md §3.5/§8 and returns the
// (possibly empty) list of violations found. It never mutates the
// model.
func (m *Model) Validate() []*InvariantViolation {
	var out []*InvariantViolation

	for _, c := range m.Mesh.Cells() {
		if len(c.NodeIDs) != geom.Arity(c.Type) {
			out = append(out, newViolation("cell", c.ID(), "has %d node ids, catalog arity is %d", len(c.NodeIDs), geom.Arity(c.Type)))
			continue
		}
		for _, nid := range c.NodeIDs {
			if _, ok := m.Mesh.FindNode(nid); !ok {
				out = append(out, newViolation("cell", c.ID(), "references non-existent node %d", nid))
			}
		}
	}

	for _, e := range m.elementSets.All() {
		group, ok := m.Mesh.FindGroup(e.CellGroup.ID)
		if !ok {
			out = append(out, newViolation("element set", e.RefID(), "cell group %d does not resolve", e.CellGroup.ID))
			continue
		}
		dim, constrained := e.ExpectedCellDim()
		if !constrained {
			continue
		}
		for _, cid := range group.Members() {
			cell, ok := m.Mesh.FindCell(cid)
			if !ok {
				out = append(out, newViolation("element set", e.RefID(), "cell group member %d does not resolve", cid))
				continue
			}
			if geom.Dim(cell.Type) != dim {
				out = append(out, newViolation("element set", e.RefID(), "cell %d has dim %d, expected %d", cid, geom.Dim(cell.Type), dim))
			}
		}
	}

	for _, mat := range m.materials.All() {
		for _, r := range mat.Cells.CellGroupRefs {
			if _, ok := m.Mesh.FindGroup(r.ID); !ok {
				out = append(out, newViolation("material", mat.RefID(), "cell group %d does not resolve", r.ID))
			}
		}
		for _, cid := range mat.Cells.CellIDs {
			if _, ok := m.Mesh.FindCell(cid); !ok {
				out = append(out, newViolation("material", mat.RefID(), "cell %d does not resolve", cid))
			}
		}
	}

	for _, a := range m.analyses.All() {
		for _, r := range a.LoadSetRefs {
			if _, ok := m.loadSets.Find(r.ID); !ok {
				out = append(out, newViolation("analysis", a.RefID(), "load set %d does not resolve", r.ID))
			}
		}
		for _, r := range a.ConstraintSetRefs {
			if _, ok := m.constraintSets.Find(r.ID); !ok {
				out = append(out, newViolation("analysis", a.RefID(), "constraint set %d does not resolve", r.ID))
			}
		}
		dofs := m.dofsForNode(a)
		for _, r := range a.AssertionRefs {
			assertion, ok := m.assertions.Find(r.ID)
			if !ok {
				out = append(out, newViolation("analysis", a.RefID(), "assertion %d does not resolve", r.ID))
				continue
			}
			nodeID, dof, ok := assertion.NamesNodeDof()
			if !ok {
				continue
			}
			if !dofs[nodeID].Has(dof) {
				out = append(out, newViolation("assertion", assertion.RefID(), "asserts %s on node %d, which does not possess that dof", dof, nodeID))
			}
		}
	}

	return out
}

// dofsForNode computes, for the given analysis, every node's restrained
// DOFS across every ConstraintSet it activates plus the common set —
// used both by Validate and by removeIneffectiveAssertions.
func (m *Model) dofsForNode(a *Analysis) map[int]DOFS {
	out := make(map[int]DOFS)
	merge := func(setRef Ref) {
		set, ok := m.constraintSets.Find(setRef.ID)
		if !ok {
			return
		}
		for _, cr := range set.ConstraintRefs {
			c, ok := m.constraints.Find(cr.ID)
			if !ok {
				continue
			}
			for nodeID, dofs := range c.RestrainedNodeDofs() {
				out[nodeID] = out[nodeID].AddSet(dofs)
			}
		}
	}
	merge(m.GetCommonConstraintSets().Ref())
	for _, r := range a.ConstraintSetRefs {
		merge(r)
	}
	return out
}
