// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package im

import (
	"testing"

	"github.com/Alneos/vega-sub001/config"
	"github.com/Alneos/vega-sub001/geom"
	"github.com/cpmech/gosl/chk"
)

// buildSegChain builds a 5-node SEG2 chain 1-2-3-4-5 for the SPC
// round-trip scenario.
func buildSegChain(tst *testing.T) *Model {
	m := New("spc_roundtrip")
	for i := 1; i <= 5; i++ {
		id := i
		if _, err := m.Mesh.AddNode(&id, geom.NewVec3(float64(i), 0, 0), 0, 0); err != nil {
			tst.Fatalf("add node %d: %v", i, err)
		}
	}
	for i := 1; i < 5; i++ {
		if _, err := m.Mesh.AddCell(nil, geom.Seg2, []int{i, i + 1}, nil); err != nil {
			tst.Fatalf("add cell: %v", err)
		}
	}
	return m
}

func Test_spc_roundtrip(tst *testing.T) {
	chk.PrintTitle("im_spc_roundtrip")
	m := buildSegChain(tst)

	spc1 := NewSPC(m.NextID(), 1, ALL_DOFS, NewDOFCoefs())
	spc5 := NewSPC(m.NextID(), 5, ALL_DOFS, NewDOFCoefs())
	if err := m.AddConstraint(spc1); err != nil {
		tst.Fatalf("add spc1: %v", err)
	}
	if err := m.AddConstraint(spc5); err != nil {
		tst.Fatalf("add spc5: %v", err)
	}
	cs := NewConstraintSet(m.NextID(), 10, TagSPC)
	cs.AddConstraint(spc1.Ref())
	cs.AddConstraint(spc5.Ref())
	if err := m.AddConstraintSet(cs); err != nil {
		tst.Fatalf("add constraint set: %v", err)
	}

	if spc1.Dofs != ALL_DOFS || spc5.Dofs != ALL_DOFS {
		tst.Errorf("expected both SPCs to pin ALL_DOFS")
	}
	if cs.OriginalID != 10 {
		tst.Errorf("expected constraint set original id 10, got %d", cs.OriginalID)
	}

	opts := config.DefaultsFor(config.TargetAster)
	if err := m.Finish(config.TargetAster, opts); err != nil {
		tst.Fatalf("finish: %v", err)
	}
	if _, ok := m.FindConstraint(spc1.RefID()); !ok {
		tst.Errorf("expected spc on node 1 to survive finish(Aster)")
	}
	if _, ok := m.FindConstraint(spc5.RefID()); !ok {
		tst.Errorf("expected spc on node 5 to survive finish(Aster)")
	}

	if violations := m.Validate(); len(violations) != 0 {
		tst.Errorf("expected no invariant violations, got %v", violations)
	}

	// finish() must be idempotent.
	if err := m.Finish(config.TargetAster, opts); err != nil {
		tst.Fatalf("second finish: %v", err)
	}
	if _, ok := m.FindConstraint(spc1.RefID()); !ok {
		tst.Errorf("expected spc on node 1 to still exist after second finish()")
	}
}

func Test_combined_loadset(tst *testing.T) {
	chk.PrintTitle("im_combined_loadset")
	m := New("combined_loadset")
	id := 1
	if _, err := m.Mesh.AddNode(&id, geom.Vec3{}, 0, 0); err != nil {
		tst.Fatalf("add node: %v", err)
	}

	f1 := NewNodalForceLoading(m.NextID(), 1, geom.NewVec3(1, 0, 0), geom.Vec3{})
	f3 := NewNodalForceLoading(m.NextID(), 1, geom.NewVec3(0, 2, 0), geom.Vec3{})
	if err := m.AddLoading(f1); err != nil {
		tst.Fatalf("add f1: %v", err)
	}
	if err := m.AddLoading(f3); err != nil {
		tst.Fatalf("add f3: %v", err)
	}

	ls1 := NewLoadSet(m.NextID(), 1, TagLOAD)
	ls1.AddLoading(f1.Ref())
	ls3 := NewLoadSet(m.NextID(), 3, TagLOAD)
	ls3.AddLoading(f3.Ref())
	ls10 := NewLoadSet(m.NextID(), 10, TagLOAD)
	ls10.Embed(ls1.Ref(), 5.0)
	ls10.Embed(ls3.Ref(), 7.0)
	for _, ls := range []*LoadSet{ls1, ls3, ls10} {
		if err := m.AddLoadSet(ls); err != nil {
			tst.Fatalf("add load set: %v", err)
		}
	}

	if !ls10.IsCombined() {
		tst.Fatalf("expected load set 10 to be combined before finish()")
	}

	opts := config.FinishOptions{ReplaceCombinedLoadSets: true}
	if err := m.Finish(config.TargetNastran, opts); err != nil {
		tst.Fatalf("finish: %v", err)
	}

	if ls10.IsCombined() {
		tst.Errorf("expected embedded_loadsets to be empty after replaceCombinedLoadSets")
	}
	loadings, err := m.GetLoadingsByLoadSet(ls10.Ref())
	if err != nil {
		tst.Fatalf("get loadings: %v", err)
	}
	if len(loadings) != 2 {
		tst.Fatalf("expected 2 loadings in load set 10, got %d", len(loadings))
	}
	if loadings[0].Force.Scale(1.0/5.0) != f1.Force {
		tst.Errorf("expected first scaled loading to be 5x the original force, got %v", loadings[0].Force)
	}
	if loadings[1].Force.Scale(1.0/7.0) != f3.Force {
		tst.Errorf("expected second scaled loading to be 7x the original force, got %v", loadings[1].Force)
	}
}

func Test_spcd_override(tst *testing.T) {
	chk.PrintTitle("im_spcd_override")
	m := New("spcd_override")
	id := 1
	if _, err := m.Mesh.AddNode(&id, geom.Vec3{}, 0, 0); err != nil {
		tst.Fatalf("add node: %v", err)
	}

	spc := NewSPC(m.NextID(), 1, NewDOFS(DX), NewDOFCoefs())
	if err := m.AddConstraint(spc); err != nil {
		tst.Fatalf("add spc: %v", err)
	}
	originalSet := NewConstraintSet(m.NextID(), 5, TagSPC)
	originalSet.AddConstraint(spc.Ref())
	if err := m.AddConstraintSet(originalSet); err != nil {
		tst.Fatalf("add constraint set: %v", err)
	}
	analysis := NewAnalysis(m.NextID(), 0, AnalysisLinearMecaStat)
	analysis.ActivateConstraintSet(originalSet.Ref())
	if err := m.AddAnalysis(analysis); err != nil {
		tst.Fatalf("add analysis: %v", err)
	}

	// SPCD 7 1 1 0.01: imposed displacement 0.01 on node 1, DX.
	imposedCoefs := NewDOFCoefs()
	imposedCoefs.Set(DX, 0.01)
	spcd := NewSPC(m.NextID(), 1, NewDOFS(DX), imposedCoefs)
	spcdSet := NewConstraintSet(m.NextID(), 7, TagSPCD)
	spcdSet.AddConstraint(spcd.Ref())
	if err := m.AddConstraint(spcd); err != nil {
		tst.Fatalf("add spcd: %v", err)
	}
	if err := m.AddConstraintSet(spcdSet); err != nil {
		tst.Fatalf("add spcd set: %v", err)
	}
	analysis.ActivateConstraintSet(spcdSet.Ref())

	narrowed, newSet, err := m.RemoveSpcNodeDofs(analysis, originalSet, spc, 1, NewDOFS(DX))
	if err != nil {
		tst.Fatalf("remove_spc_node_dofs: %v", err)
	}
	if narrowed.Dofs.Has(DX) {
		tst.Errorf("expected narrowed spc to no longer restrain DX")
	}
	found := false
	for _, r := range analysis.ConstraintSetRefs {
		if r == newSet.Ref() {
			found = true
		}
		if r == originalSet.Ref() {
			tst.Errorf("expected analysis to no longer reference the original constraint set")
		}
	}
	if !found {
		tst.Errorf("expected analysis to reference the new narrowed constraint set")
	}
}

func Test_rbe2_cellification_penalty(tst *testing.T) {
	chk.PrintTitle("im_rbe2_cellification_penalty")
	m := New("rbe2_penalty")
	for _, id := range []int{100, 101, 102} {
		nid := id
		if _, err := m.Mesh.AddNode(&nid, geom.NewVec3(float64(id), 0, 0), 0, 0); err != nil {
			tst.Fatalf("add node %d: %v", id, err)
		}
	}
	rigid := NewRigidConstraint(m.NextID(), 100, []int{101, 102})
	if err := m.AddConstraint(rigid); err != nil {
		tst.Fatalf("add rigid constraint: %v", err)
	}

	opts := config.FinishOptions{
		ReplaceRigidSegments:      true,
		SystusRBE2TranslationMode: config.RBE2Penalty,
		SystusRBE2Rigidity:        1e7,
	}
	if err := m.Finish(config.TargetSystus, opts); err != nil {
		tst.Fatalf("finish: %v", err)
	}

	if _, ok := m.FindConstraint(rigid.RefID()); ok {
		tst.Errorf("expected original rigid constraint to be replaced")
	}
	var seg2Count int
	for _, c := range m.Mesh.Cells() {
		if c.Type == geom.Seg2 {
			seg2Count++
		}
	}
	if seg2Count != 2 {
		tst.Errorf("expected 2 SEG2 cells, got %d", seg2Count)
	}
	for _, n := range m.Mesh.Nodes() {
		if n.ID() != 100 && n.ID() != 101 && n.ID() != 102 {
			tst.Errorf("did not expect a Lagrange node to be created in penalty mode, found node %d", n.ID())
		}
	}
}
