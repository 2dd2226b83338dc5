// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nastran

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Alneos/vega-sub001/config"
	"github.com/Alneos/vega-sub001/geom"
	"github.com/Alneos/vega-sub001/im"
	"github.com/cpmech/gosl/chk"
)

// writeDeck writes src to a temp file named stem.dat under tst's temp dir
// and returns its path, for feeding Parse.
func writeDeck(tst *testing.T, stem, src string) string {
	path := filepath.Join(tst.TempDir(), stem+".dat")
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		tst.Fatalf("write deck: %v", err)
	}
	return path
}

func Test_parse_minimal_static_deck(tst *testing.T) {
	chk.PrintTitle("nastran_minimal_static_deck")
	src := "SOL 101\n" +
		"SUBCASE 1\n" +
		"SPC=10\n" +
		"LOAD=20\n" +
		"BEGIN BULK\n" +
		"GRID, 1, 0, 0.0, 0.0, 0.0\n" +
		"GRID, 2, 0, 1.0, 0.0, 0.0\n" +
		"GRID, 3, 0, 0.0, 1.0, 0.0\n" +
		"CTRIA3, 100, 1, 1, 2, 3\n" +
		"PSHELL, 1, 1, 0.01\n" +
		"MAT1, 1, 210000.0, , 0.3, 7.8e-9\n" +
		"SPC1, 10, 123456, 1\n" +
		"FORCE, 20, 2, 0, 1.0, 0.0, 1.0, 0.0\n"
	path := writeDeck(tst, "minimal", src)

	m, err := Parse(path, config.BestEffort)
	if err != nil {
		tst.Fatalf("parse: %v", err)
	}
	if n := len(m.Mesh.Nodes()); n != 3 {
		tst.Errorf("expected 3 nodes, got %d", n)
	}
	sets := m.ElementSets()
	if len(sets) != 1 {
		tst.Fatalf("expected 1 element set, got %d", len(sets))
	}
	if sets[0].Kind != im.ElemShell {
		tst.Errorf("expected a shell element set, got kind %d", sets[0].Kind)
	}
	if sets[0].Thickness != 0.01 {
		tst.Errorf("expected thickness 0.01, got %v", sets[0].Thickness)
	}
	mats := m.Materials()
	if len(mats) != 1 || mats[0].OriginalID != 1 {
		tst.Fatalf("expected material 1, got %v", mats)
	}
	analyses := m.Analyses()
	if len(analyses) != 1 {
		tst.Fatalf("expected 1 analysis, got %d", len(analyses))
	}
	if analyses[0].Kind != im.AnalysisLinearMecaStat {
		tst.Errorf("expected a linear static analysis, got kind %d", analyses[0].Kind)
	}
	if len(analyses[0].ConstraintSetRefs) != 1 {
		tst.Errorf("expected the analysis to activate one constraint set, got %d", len(analyses[0].ConstraintSetRefs))
	}
	if len(analyses[0].LoadSetRefs) != 1 {
		tst.Errorf("expected the analysis to activate one load set, got %d", len(analyses[0].LoadSetRefs))
	}
}

func Test_parse_rbar1(tst *testing.T) {
	chk.PrintTitle("nastran_rbar1")
	src := "SOL 101\n" +
		"SUBCASE 1\n" +
		"BEGIN BULK\n" +
		"GRID, 1, 0, 0.0, 0.0, 0.0\n" +
		"GRID, 2, 0, 1.0, 0.0, 0.0\n" +
		"RBAR1, 5, 1, 2, 123\n"
	path := writeDeck(tst, "rbar1", src)

	m, err := Parse(path, config.BestEffort)
	if err != nil {
		tst.Fatalf("parse: %v", err)
	}
	var found *im.Constraint
	for _, c := range m.Constraints() {
		if c.Kind == im.ConstraintQuasiRigid {
			found = c
		}
	}
	if found == nil {
		tst.Fatalf("expected a quasi-rigid constraint from RBAR1")
	}
	if len(found.SlaveNodeIDs) != 2 || found.SlaveNodeIDs[0] != 1 || found.SlaveNodeIDs[1] != 2 {
		tst.Errorf("expected RBAR1 slave nodes [1 2], got %v", found.SlaveNodeIDs)
	}
	if !found.RigidDofs.Has(im.DX) || !found.RigidDofs.Has(im.DY) || !found.RigidDofs.Has(im.DZ) {
		tst.Errorf("expected RBAR1 mask 123 to rigidify DX/DY/DZ, got %v", found.RigidDofs)
	}
}

func Test_parse_optistruct_contact(tst *testing.T) {
	chk.PrintTitle("nastran_optistruct_contact")
	src := "SOL 101\n" +
		"SUBCASE 1\n" +
		"BEGIN BULK\n" +
		"GRID, 1, 0, 0.0, 0.0, 0.0\n" +
		"GRID, 2, 0, 1.0, 0.0, 0.0\n" +
		"GRID, 3, 0, 0.0, 0.0, 1.0\n" +
		"GRID, 4, 0, 1.0, 0.0, 1.0\n" +
		"SET, 1, GRID, 1, 2\n" +
		"SURF, 2, GRID, 3, 4\n" +
		"CONTACT, 7, FRIC, 1, 2\n"
	path := writeDeck(tst, "contact", src)

	m, err := Parse(path, config.BestEffort)
	if err != nil {
		tst.Fatalf("parse: %v", err)
	}
	var gaps []*im.Constraint
	for _, c := range m.Constraints() {
		if c.Kind == im.ConstraintGap {
			gaps = append(gaps, c)
		}
	}
	if len(gaps) != 2 {
		tst.Fatalf("expected 2 Gap constraints (one per master/slave pair), got %d", len(gaps))
	}
	if gaps[0].MasterNodeID != 1 || gaps[0].SlaveNodeIDs[0] != 3 {
		tst.Errorf("expected the first gap to pair node 1 with node 3, got master %d slave %v", gaps[0].MasterNodeID, gaps[0].SlaveNodeIDs)
	}
	if gaps[1].MasterNodeID != 2 || gaps[1].SlaveNodeIDs[0] != 4 {
		tst.Errorf("expected the second gap to pair node 2 with node 4, got master %d slave %v", gaps[1].MasterNodeID, gaps[1].SlaveNodeIDs)
	}
}

// buildTriangleModel builds the smallest model writeModel can fully
// express: one shell element, an SPC, a nodal force, one static analysis.
func buildTriangleModel(tst *testing.T) *im.Model {
	m := im.New("triangle")
	for i, pos := range []geom.Vec3{
		geom.NewVec3(0, 0, 0),
		geom.NewVec3(1, 0, 0),
		geom.NewVec3(0, 1, 0),
	} {
		id := i + 1
		if _, err := m.Mesh.AddNode(&id, pos, 0, 0); err != nil {
			tst.Fatalf("add node %d: %v", id, err)
		}
	}
	cell, err := m.Mesh.AddCell(nil, geom.Tri3, []int{1, 2, 3}, nil)
	if err != nil {
		tst.Fatalf("add cell: %v", err)
	}
	group, err := m.Mesh.CreateCellGroup("", 1, "")
	if err != nil {
		tst.Fatalf("create cell group: %v", err)
	}
	group.Add(cell.ID())
	mat := im.NewMaterial(m.NextID(), 1, "")
	mat.AddNature(im.NewElasticNature(210000.0, 0.3, 210000.0/(2*1.3), 7.8e-9, 0, 0, 0))
	if err := m.AddMaterial(mat); err != nil {
		tst.Fatalf("add material: %v", err)
	}
	es := im.NewElementSet(m.NextID(), 1, im.ElemShell, im.Ref{Kind: im.RefCellGroup, ID: group.ID()})
	es.Thickness = 0.01
	es.MaterialRef = mat.Ref()
	if err := m.AddElementSet(es); err != nil {
		tst.Fatalf("add element set: %v", err)
	}

	spc := im.NewSPC(m.NextID(), 1, im.ALL_DOFS, im.NewDOFCoefs())
	if err := m.AddConstraint(spc); err != nil {
		tst.Fatalf("add spc: %v", err)
	}
	cs := im.NewConstraintSet(m.NextID(), 10, im.TagSPC)
	cs.AddConstraint(spc.Ref())
	if err := m.AddConstraintSet(cs); err != nil {
		tst.Fatalf("add constraint set: %v", err)
	}

	force := im.NewNodalForceLoading(m.NextID(), 2, geom.NewVec3(1.0, 0, 0), geom.Vec3{})
	if err := m.AddLoading(force); err != nil {
		tst.Fatalf("add loading: %v", err)
	}
	ls := im.NewLoadSet(m.NextID(), 20, im.TagLOAD)
	ls.AddLoading(force.Ref())
	if err := m.AddLoadSet(ls); err != nil {
		tst.Fatalf("add load set: %v", err)
	}

	a := im.NewAnalysis(m.NextID(), 1, im.AnalysisLinearMecaStat)
	a.ActivateConstraintSet(cs.Ref())
	a.ActivateLoadSet(ls.Ref())
	if err := m.AddAnalysis(a); err != nil {
		tst.Fatalf("add analysis: %v", err)
	}
	return m
}

func Test_write_then_reparse(tst *testing.T) {
	chk.PrintTitle("nastran_write_then_reparse")
	m := buildTriangleModel(tst)

	dir := tst.TempDir()
	path, err := Write(m, dir, "triangle", config.NastranModern)
	if err != nil {
		tst.Fatalf("write: %v", err)
	}

	reread, err := Parse(path, config.BestEffort)
	if err != nil {
		tst.Fatalf("reparse written deck: %v", err)
	}
	if n := len(reread.Mesh.Nodes()); n != 3 {
		tst.Errorf("expected 3 nodes after round-trip, got %d", n)
	}
	if len(reread.Analyses()) != 1 {
		tst.Fatalf("expected 1 analysis after round-trip, got %d", len(reread.Analyses()))
	}
	if reread.Analyses()[0].Kind != im.AnalysisLinearMecaStat {
		tst.Errorf("expected the SOL 101 round-trip to stay a linear static analysis")
	}
	sets := reread.ElementSets()
	if len(sets) != 1 || sets[0].Kind != im.ElemShell {
		tst.Fatalf("expected the shell element set to survive the round-trip, got %v", sets)
	}
}

func Test_write_1995_dialect_id_card(tst *testing.T) {
	chk.PrintTitle("nastran_1995_dialect_id_card")
	m := buildTriangleModel(tst)
	dir := tst.TempDir()
	path, err := Write(m, dir, "legacy", config.Nastran1995)
	if err != nil {
		tst.Fatalf("write: %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		tst.Fatalf("read written deck: %v", err)
	}
	if len(content) == 0 {
		tst.Fatalf("expected a non-empty written deck")
	}
	if string(content[:3]) != "ID " {
		tst.Errorf("expected a 1995-era deck to open with an ID restart card, got %q", content[:10])
	}
}

// Test_spcd_override_narrows_only_its_own_subcase covers a case-control
// SPC declared once before the first SUBCASE (and so inherited into
// every subcase's context) and shared by both analyses as the very same
// im.Constraint. Only SUBCASE 1 selects a LOAD whose id an SPCD entry
// names, so only SUBCASE 1's copy of the SPC should lose the overridden
// dof; SUBCASE 2 must keep the constraint exactly as declared.
func Test_spcd_override_narrows_only_its_own_subcase(tst *testing.T) {
	chk.PrintTitle("nastran_spcd_override_scoped_to_its_subcase")
	src := "SOL 101\n" +
		"SPC=10\n" +
		"SUBCASE 1\n" +
		"LOAD=20\n" +
		"SUBCASE 2\n" +
		"LOAD=21\n" +
		"BEGIN BULK\n" +
		"GRID, 1, 0, 0.0, 0.0, 0.0\n" +
		"GRID, 2, 0, 1.0, 0.0, 0.0\n" +
		"GRID, 3, 0, 0.0, 1.0, 0.0\n" +
		"CTRIA3, 100, 1, 1, 2, 3\n" +
		"PSHELL, 1, 1, 0.01\n" +
		"MAT1, 1, 210000.0, , 0.3, 7.8e-9\n" +
		"SPC1, 10, 123456, 1, 2, 3\n" +
		"FORCE, 20, 2, 0, 1.0, 0.0, 1.0, 0.0\n" +
		"FORCE, 21, 3, 0, 1.0, 0.0, 0.0, 1.0\n" +
		"SPCD, 20, 1, 1, 0.5\n"
	path := writeDeck(tst, "spcd_scope", src)

	m, err := Parse(path, config.BestEffort)
	if err != nil {
		tst.Fatalf("parse: %v", err)
	}

	var sub1, sub2 *im.Analysis
	for _, a := range m.Analyses() {
		switch a.OriginalID {
		case 1:
			sub1 = a
		case 2:
			sub2 = a
		}
	}
	if sub1 == nil || sub2 == nil {
		tst.Fatalf("expected both subcases to produce an analysis, got %v", m.Analyses())
	}

	spcOnNode1 := func(tst *testing.T, a *im.Analysis) *im.Constraint {
		for _, csr := range a.ConstraintSetRefs {
			cs, ok := m.FindConstraintSet(csr.ID)
			if !ok || cs.Type != im.TagSPC {
				continue
			}
			for _, cref := range cs.ConstraintRefs {
				c, ok := m.FindConstraint(cref.ID)
				if ok && c.Kind == im.ConstraintSPC && c.NodeID == 1 {
					return c
				}
			}
		}
		tst.Fatalf("expected an SPC on node 1 in analysis %d's active constraint sets", a.OriginalID)
		return nil
	}

	c1 := spcOnNode1(tst, sub1)
	c2 := spcOnNode1(tst, sub2)

	if c1 == c2 {
		tst.Fatalf("expected SUBCASE 1's narrowed SPC to be a distinct clone, not the shared constraint")
	}
	if c1.Dofs.Has(im.DX) {
		tst.Errorf("expected SUBCASE 1's SPCD override to drop DX from its SPC clone")
	}
	if !c2.Dofs.Has(im.DX) {
		tst.Errorf("expected SUBCASE 2's SPC to keep DX: it has no matching SPCD, so the shared constraint must be untouched")
	}
}
