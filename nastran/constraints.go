// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nastran

import (
	"github.com/Alneos/vega-sub001/deck"
	"github.com/Alneos/vega-sub001/im"
)

// spcdEntry records one SPCD override (node, blocked dofs, imposed
// value) under its SID, for the post-bulk-section resolveSPCDOverrides
// pass (spec.md §4.5: "SPCD overrides an SPC Bulk Data entry when its
// SID is selected as a LOAD in a static subcase").
type spcdEntry struct {
	setID  int
	nodeID int
	dofs   im.DOFS
	value  float64
}

func init() {
	register("SPC", parseSPC)
	register("SPC1", parseSPC1)
	register("SPCD", parseSPCD)
	register("SPCADD", parseSPCADD)
	register("MPC", parseMPC)
	register("RBE2", parseRBE2)
	register("RBE3", parseRBE3)
	register("RBAR", parseRBAR)
	register("RBAR1", parseRBAR1)
}

// parseSPC reads SPC SID (G C D)+, one SinglePointConstraint per listed
// node, per NastranParser.cpp's parseSPC.
func parseSPC(p *Parser, tok *deck.Tokenizer) error {
	setID, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	cs := p.findOrCreateConstraintSet(im.TagSPC, setID)
	for tok.NextSymbolType() == deck.SymField {
		nodeID, err := tok.NextInt(true, 0)
		if err != nil {
			return err
		}
		if nodeID == 0 {
			continue
		}
		gi, err := tok.NextInt(true, 123456)
		if err != nil {
			return err
		}
		d, err := tok.NextDouble(true, 0)
		if err != nil {
			return err
		}
		dofs, err := im.DOFSFromNastran(itoa(gi))
		if err != nil {
			return err
		}
		var values im.DOFCoefs
		for pos := 0; pos < 6; pos++ {
			if dofs.Has(im.DOF(pos)) {
				values[pos] = d
			}
		}
		spc := im.NewSPC(p.model.NextID(), nodeID, dofs, values)
		if err := p.model.AddConstraint(spc); err != nil {
			return err
		}
		cs.AddConstraint(spc.Ref())
	}
	return nil
}

// parseSPC1 reads SPC1 SID C G1 "THRU" G2 | G1 G2 G3 ..., one
// SinglePointConstraint per listed node.
func parseSPC1(p *Parser, tok *deck.Tokenizer) error {
	setID, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	gi, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	dofs, err := im.DOFSFromNastran(itoa(gi))
	if err != nil {
		return err
	}
	g1, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	nodeIDs := []int{g1}
	pos2, err := tok.NextString(true)
	if err != nil {
		return err
	}
	if pos2 == "THRU" {
		g2, err := tok.NextInt(false)
		if err != nil {
			return err
		}
		nodeIDs = nodeIDs[:0]
		for n := g1; n <= g2; n++ {
			nodeIDs = append(nodeIDs, n)
		}
	} else if pos2 != "" {
		g2, err := parseIntString(pos2)
		if err != nil {
			return err
		}
		nodeIDs = append(nodeIDs, g2)
		for tok.IsNextInt() {
			n, err := tok.NextInt(true, 0)
			if err != nil {
				return err
			}
			nodeIDs = append(nodeIDs, n)
		}
	}
	cs := p.findOrCreateConstraintSet(im.TagSPC, setID)
	for _, nodeID := range nodeIDs {
		spc := im.NewSPC(p.model.NextID(), nodeID, dofs, im.DOFCoefs{})
		if err := p.model.AddConstraint(spc); err != nil {
			return err
		}
		cs.AddConstraint(spc.Ref())
	}
	return nil
}

// parseSPCD reads SPCD SID G1 C1 D1 [G2 C2 D2], recording each override
// for the post-bulk resolveSPCDOverrides pass rather than applying it
// immediately: the SPC entries it narrows may not have been parsed yet.
func parseSPCD(p *Parser, tok *deck.Tokenizer) error {
	setID, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	for tok.IsNextInt() {
		nodeID, err := tok.NextInt(false)
		if err != nil {
			return err
		}
		c, err := tok.NextInt(false)
		if err != nil {
			return err
		}
		d, err := tok.NextDouble(false)
		if err != nil {
			return err
		}
		dofs, err := im.DOFSFromNastran(itoa(c))
		if err != nil {
			return err
		}
		p.spcdEntries = append(p.spcdEntries, spcdEntry{setID: setID, nodeID: nodeID, dofs: dofs, value: d})
	}
	return nil
}

// parseSPCADD reads SPCADD SID S1 S2 ...: a combined constraint set
// whose members are simply every constraint of the listed sets, flattened
// eagerly since ConstraintSet carries no embedded/scaled-combination
// concept (unlike LoadSet).
func parseSPCADD(p *Parser, tok *deck.Tokenizer) error {
	setID, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	combined := p.findOrCreateConstraintSet(im.TagSPC, setID)
	for tok.IsNextInt() {
		memberID, err := tok.NextInt(true, 0)
		if err != nil {
			return err
		}
		member := p.findOrCreateConstraintSet(im.TagSPC, memberID)
		combined.ConstraintRefs = append(combined.ConstraintRefs, member.ConstraintRefs...)
	}
	return nil
}

// parseMPC reads MPC SID (G C A)+ [R]: a single linear multi-point
// constraint, the last term's coefficient implicitly defining the
// "imposed" side only when Nastran's UM/UI split is used; this
// translator treats every MPC as homogeneous (imposed = 0), matching the
// common case NastranParser.cpp's parseMPC itself covers.
func parseMPC(p *Parser, tok *deck.Tokenizer) error {
	setID, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	var terms []im.LMPCTerm
	for tok.IsNextInt() {
		nodeID, err := tok.NextInt(false)
		if err != nil {
			return err
		}
		c, err := tok.NextInt(false)
		if err != nil {
			return err
		}
		a, err := tok.NextDouble(false)
		if err != nil {
			return err
		}
		dofs, err := im.DOFSFromNastran(itoa(c))
		if err != nil {
			return err
		}
		for pos := 0; pos < 6; pos++ {
			if dofs.Has(im.DOF(pos)) {
				terms = append(terms, im.LMPCTerm{NodeID: nodeID, Dof: im.DOF(pos), Coef: a})
			}
		}
	}
	lmpc := im.NewLMPC(p.model.NextID(), terms, 0)
	if err := p.model.AddConstraint(lmpc); err != nil {
		return err
	}
	p.findOrCreateConstraintSet(im.TagMPC, setID).AddConstraint(lmpc.Ref())
	return nil
}

// parseRBE2 reads RBE2 EID GN CM G1 G2 ... [ALPHA]: a rigid link from
// master GN to every listed slave, restraining only CM's dofs. CM=123456
// (the common case) becomes a full RigidConstraint; any other mask
// becomes a QuasiRigidConstraint, per NastranParser.cpp's parseRBE2.
func parseRBE2(p *Parser, tok *deck.Tokenizer) error {
	_, err := tok.NextInt(false) // EID
	if err != nil {
		return err
	}
	master, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	cm, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	var slaves []int
	for tok.IsNextInt() {
		s, err := tok.NextInt(true, 0)
		if err != nil {
			return err
		}
		slaves = append(slaves, s)
	}
	var c *im.Constraint
	if cm == 123456 {
		c = im.NewRigidConstraint(p.model.NextID(), master, slaves)
	} else {
		dofs, err := im.DOFSFromNastran(itoa(cm))
		if err != nil {
			return err
		}
		c = im.NewQuasiRigidConstraint(p.model.NextID(), master, 0, dofs)
		c.SlaveNodeIDs = slaves
	}
	if err := p.model.AddConstraint(c); err != nil {
		return err
	}
	p.model.GetCommonConstraintSets().AddConstraint(c.Ref())
	return nil
}

// parseRBE3 reads RBE3 EID blank REFGRID REFC (WTi Ci Gi,j ...)+: a
// weighted interpolation constraint, per NastranParser.cpp's parseRBE3.
func parseRBE3(p *Parser, tok *deck.Tokenizer) error {
	eid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	if _, err := tok.NextString(true); err != nil { // blank field
		return err
	}
	master, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	refc, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	masterDofs, err := im.DOFSFromNastran(itoa(refc))
	if err != nil {
		return err
	}
	var parts []im.RBE3Participation
	for tok.IsNextDouble() {
		coef, err := tok.NextDouble(true, 0)
		if err != nil {
			return err
		}
		sc, err := tok.NextInt(false)
		if err != nil {
			return err
		}
		sdofs, err := im.DOFSFromNastran(itoa(sc))
		if err != nil {
			return err
		}
		for tok.IsNextInt() {
			slave, err := tok.NextInt(true, 0)
			if err != nil {
				return err
			}
			parts = append(parts, im.RBE3Participation{SlaveNodeID: slave, SlaveDofs: sdofs, Coefficient: coef})
		}
	}
	c := im.NewRBE3(p.model.NextID(), master, masterDofs, parts)
	_ = eid
	if err := p.model.AddConstraint(c); err != nil {
		return err
	}
	p.model.GetCommonConstraintSets().AddConstraint(c.Ref())
	return nil
}

// parseRBAR reads RBAR EID GA GB CNA CNB CMA CMB [ALPHA]: equivalent to
// RBE2 with CNA (or CNB) as the restrained dofs between the two named
// nodes, per NastranParser.cpp's parseRBAR. CMA/CMB (independent-side
// restraint) are not supported.
func parseRBAR(p *Parser, tok *deck.Tokenizer) error {
	if _, err := tok.NextInt(false); err != nil { // EID
		return err
	}
	ga, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	gb, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	cna, err := tok.NextInt(true, 0)
	if err != nil {
		return err
	}
	cnb, err := tok.NextInt(true, 0)
	if err != nil {
		return err
	}
	if cna == 0 && cnb == 0 {
		cna = 123456
	}
	mask := cna
	if mask == 0 {
		mask = cnb
	}
	dofs, err := im.DOFSFromNastran(itoa(mask))
	if err != nil {
		return err
	}
	c := im.NewQuasiRigidConstraint(p.model.NextID(), 0, 0, dofs)
	c.SlaveNodeIDs = []int{ga, gb}
	if err := p.model.AddConstraint(c); err != nil {
		return err
	}
	p.model.GetCommonConstraintSets().AddConstraint(c.Ref())
	return nil
}

// parseRBAR1 reads RBAR1 EID GA GB CB [ALPHA]: the single-mask variant of
// RBAR, per NastranParser.cpp's parseRBAR1.
func parseRBAR1(p *Parser, tok *deck.Tokenizer) error {
	if _, err := tok.NextInt(false); err != nil { // EID
		return err
	}
	ga, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	gb, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	cb, err := tok.NextInt(true, 0)
	if err != nil {
		return err
	}
	dofs, err := im.DOFSFromNastran(itoa(cb))
	if err != nil {
		return err
	}
	c := im.NewQuasiRigidConstraint(p.model.NextID(), 0, 0, dofs)
	c.SlaveNodeIDs = []int{ga, gb}
	if err := p.model.AddConstraint(c); err != nil {
		return err
	}
	p.model.GetCommonConstraintSets().AddConstraint(c.Ref())
	return nil
}

// resolveSPCDOverrides applies every recorded SPCD entry (spec.md §4.5):
// for each SID, activate an SPCD constraint set on every LINEAR_MECA_STAT
// analysis selecting that id as a LOAD, narrow the matching SPC
// constraints' dofs on the overridden node, then add the SPCD's own
// SinglePointConstraint.
func (p *Parser) resolveSPCDOverrides() error {
	bySet := make(map[int][]spcdEntry)
	for _, e := range p.spcdEntries {
		bySet[e.setID] = append(bySet[e.setID], e)
	}
	for setID, entries := range bySet {
		csRef := p.findOrCreateConstraintSet(im.TagSPCD, setID).Ref()
		for _, a := range p.model.Analyses() {
			if a.Kind != im.AnalysisLinearMecaStat || analysisHas(a.ConstraintSetRefs, csRef) {
				continue
			}
			for _, lr := range a.LoadSetRefs {
				ls, ok := p.model.FindLoadSet(lr.ID)
				if ok && ls.Type == im.TagLOAD && ls.OriginalID == setID {
					a.ActivateConstraintSet(csRef)
					break
				}
			}
		}
		for _, a := range p.model.Analyses() {
			if !analysisHas(a.ConstraintSetRefs, csRef) {
				continue
			}
			// a's ConstraintSetRefs may be replaced in place by
			// RemoveSpcNodeDofs below, so range over a snapshot.
			for _, csr := range append([]im.Ref(nil), a.ConstraintSetRefs...) {
				cs, ok := p.model.FindConstraintSet(csr.ID)
				if !ok || cs.Type != im.TagSPC {
					continue
				}
				currentSet := cs
				for _, cref := range cs.ConstraintRefs {
					c, ok := p.model.FindConstraint(cref.ID)
					if !ok || c.Kind != im.ConstraintSPC {
						continue
					}
					for _, e := range entries {
						if c.NodeID != e.nodeID || !c.Dofs.ContainsAnyOf(e.dofs) {
							continue
						}
						narrowed, newSet, err := p.model.RemoveSpcNodeDofs(a, currentSet, c, c.NodeID, e.dofs)
						if err != nil {
							return err
						}
						currentSet, c = newSet, narrowed
					}
				}
			}
		}
		cs := p.constraintSets[constraintSetKey{tag: im.TagSPCD, id: setID}]
		for _, e := range entries {
			var values im.DOFCoefs
			for pos := 0; pos < 6; pos++ {
				if e.dofs.Has(im.DOF(pos)) {
					values[pos] = e.value
				}
			}
			spc := im.NewSPC(p.model.NextID(), e.nodeID, e.dofs, values)
			if err := p.model.AddConstraint(spc); err != nil {
				return err
			}
			cs.AddConstraint(spc.Ref())
		}
	}
	return nil
}

func analysisHas(refs []im.Ref, target im.Ref) bool {
	for _, r := range refs {
		if r == target {
			return true
		}
	}
	return false
}
