// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package im

// ConstraintKind is the closed set of Constraint variants, spec.md §3.2.
type ConstraintKind int

const (
	ConstraintSPC ConstraintKind = iota // SinglePointConstraint
	ConstraintLMPC                      // LinearMultiplePointConstraint
	ConstraintRigid                     // RigidConstraint
	ConstraintQuasiRigid                // QuasiRigidConstraint
	ConstraintRBE3
	ConstraintGap
)

// LMPCTerm is one (node, dof, coefficient) term of a LinearMultiplePointConstraint.
type LMPCTerm struct {
	NodeID int
	Dof    DOF
	Coef   float64
}

// RBE3Participation is one slave node's weighted contribution to an RBE3.
type RBE3Participation struct {
	SlaveNodeID int
	SlaveDofs   DOFS
	Coefficient float64
}

// Constraint is one of six variants restraining node motion. As with the
// other closed families, one gated struct replaces six Go types: every
// variant answers the same two questions finish() and the writers ask —
// "which node(s) does this touch" and "what DOFs does it restrain /
// impose" — through Kind-specific fields inspected by a handful of
// accessor methods below.
type Constraint struct {
	id   int
	Kind ConstraintKind

	// SPC: a DOFS set + per-dof value/function on one node.
	NodeID      int
	Dofs        DOFS
	Values      DOFCoefs    // imposed value per dof (SPC) or displacement (SPCD override)
	ValueFuncs  map[DOF]Ref // -> RefValue, when the imposed value is a function of time/frequency

	// LMPC: sum of per-node per-dof coefficients = imposed.
	Terms    []LMPCTerm
	Imposed  float64

	// Rigid / QuasiRigid: master + slave set.
	MasterNodeID int
	SlaveNodeIDs []int
	RigidDofs    DOFS // for QuasiRigid: the subset of DOFS made rigid

	// RBE3
	MasterNodeIDRBE3 int
	MasterDofs       DOFS
	Participations   []RBE3Participation

	// Gap
	InitialOpening float64
	GapDirections  []RBE3Participation // reuse shape: per-participation direction via coefficient
}

// NewSPC builds a SinglePointConstraint.
func NewSPC(id, nodeID int, dofs DOFS, values DOFCoefs) *Constraint {
	return &Constraint{id: id, Kind: ConstraintSPC, NodeID: nodeID, Dofs: dofs, Values: values}
}

// NewLMPC builds a LinearMultiplePointConstraint.
func NewLMPC(id int, terms []LMPCTerm, imposed float64) *Constraint {
	return &Constraint{id: id, Kind: ConstraintLMPC, Terms: terms, Imposed: imposed}
}

// NewRigidConstraint builds a RigidConstraint.
func NewRigidConstraint(id, masterNodeID int, slaveNodeIDs []int) *Constraint {
	return &Constraint{id: id, Kind: ConstraintRigid, MasterNodeID: masterNodeID, SlaveNodeIDs: slaveNodeIDs}
}

// NewQuasiRigidConstraint builds a QuasiRigidConstraint restraining only
// rigidDofs between master and slave.
func NewQuasiRigidConstraint(id, masterNodeID, slaveNodeID int, rigidDofs DOFS) *Constraint {
	return &Constraint{id: id, Kind: ConstraintQuasiRigid, MasterNodeID: masterNodeID, SlaveNodeIDs: []int{slaveNodeID}, RigidDofs: rigidDofs}
}

// NewRBE3 builds an RBE3 weighted-interpolation constraint.
func NewRBE3(id, masterNodeID int, masterDofs DOFS, participations []RBE3Participation) *Constraint {
	return &Constraint{id: id, Kind: ConstraintRBE3, MasterNodeIDRBE3: masterNodeID, MasterDofs: masterDofs, Participations: participations}
}

// NewGap builds a Gap (contact) constraint.
func NewGap(id, masterNodeID, slaveNodeID int, initialOpening float64, directions []RBE3Participation) *Constraint {
	return &Constraint{id: id, Kind: ConstraintGap, MasterNodeID: masterNodeID, SlaveNodeIDs: []int{slaveNodeID}, InitialOpening: initialOpening, GapDirections: directions}
}

// RefID returns the constraint's stable id.
func (c *Constraint) RefID() int { return c.id }

// Ref returns a Ref pointing at this constraint.
func (c *Constraint) Ref() Ref { return Ref{Kind: RefConstraint, ID: c.id} }

// Clone returns a deep-enough copy for finish() passes that must
// narrow a cloned SPC (remove_spc_node_dofs, spec.md §4.3) without
// mutating the original.
func (c *Constraint) Clone(newID int) *Constraint {
	clone := *c
	clone.id = newID
	clone.SlaveNodeIDs = append([]int(nil), c.SlaveNodeIDs...)
	clone.Terms = append([]LMPCTerm(nil), c.Terms...)
	clone.Participations = append([]RBE3Participation(nil), c.Participations...)
	clone.GapDirections = append([]RBE3Participation(nil), c.GapDirections...)
	if c.ValueFuncs != nil {
		clone.ValueFuncs = make(map[DOF]Ref, len(c.ValueFuncs))
		for k, v := range c.ValueFuncs {
			clone.ValueFuncs[k] = v
		}
	}
	return &clone
}

// RestrainedNodeDofs returns the (node, DOFS) pairs this constraint
// restrains — used by the DOF-possession check behind assertion pruning
// and by Model.dofsForNode.
func (c *Constraint) RestrainedNodeDofs() map[int]DOFS {
	out := make(map[int]DOFS)
	switch c.Kind {
	case ConstraintSPC:
		out[c.NodeID] = c.Dofs
	case ConstraintRigid:
		out[c.MasterNodeID] = out[c.MasterNodeID].AddSet(ALL_DOFS)
		for _, s := range c.SlaveNodeIDs {
			out[s] = out[s].AddSet(ALL_DOFS)
		}
	case ConstraintQuasiRigid:
		out[c.MasterNodeID] = out[c.MasterNodeID].AddSet(c.RigidDofs)
		for _, s := range c.SlaveNodeIDs {
			out[s] = out[s].AddSet(c.RigidDofs)
		}
	case ConstraintRBE3:
		out[c.MasterNodeIDRBE3] = out[c.MasterNodeIDRBE3].AddSet(c.MasterDofs)
		for _, p := range c.Participations {
			out[p.SlaveNodeID] = out[p.SlaveNodeID].AddSet(p.SlaveDofs)
		}
	case ConstraintGap:
		out[c.MasterNodeID] = out[c.MasterNodeID].AddSet(ALL_DOFS)
		for _, s := range c.SlaveNodeIDs {
			out[s] = out[s].AddSet(ALL_DOFS)
		}
	case ConstraintLMPC:
		for _, t := range c.Terms {
			out[t.NodeID] = out[t.NodeID].Add(t.Dof)
		}
	}
	return out
}
