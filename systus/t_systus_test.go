// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package systus

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Alneos/vega-sub001/config"
	"github.com/Alneos/vega-sub001/geom"
	"github.com/Alneos/vega-sub001/im"
	"github.com/cpmech/gosl/chk"
)

// buildTriangleModel builds the smallest model the writer can fully
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
	mat.Cells.CellGroupRefs = append(mat.Cells.CellGroupRefs, im.Ref{Kind: im.RefCellGroup, ID: group.ID()})
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
	assertion := im.NewNodalDisplacementAssertion(m.NextID(), 2, im.DX, 1.0e-4, 1.0e-3)
	if err := m.AddAssertion(assertion); err != nil {
		tst.Fatalf("add assertion: %v", err)
	}
	a.AddAssertion(assertion.Ref())
	if err := m.AddAnalysis(a); err != nil {
		tst.Fatalf("add analysis: %v", err)
	}
	return m
}

func Test_write_triangle_study(tst *testing.T) {
	chk.PrintTitle("systus_write_triangle_study")
	m := buildTriangleModel(tst)
	if err := m.Finish(config.TargetSystus, config.DefaultsFor(config.TargetSystus)); err != nil {
		tst.Fatalf("finish: %v", err)
	}
	dir := tst.TempDir()

	allPath, err := Write(m, dir, "triangle")
	if err != nil {
		tst.Fatalf("write: %v", err)
	}
	if filepath.Base(allPath) != "triangle_ALL.DAT" {
		tst.Errorf("expected the master ALL.DAT path to be returned, got %q", allPath)
	}

	var analysisID int
	for _, a := range m.Analyses() {
		analysisID = a.RefID()
	}

	ascPath := filepath.Join(dir, fmt.Sprintf("triangle_SC%d_DATA1.ASC", analysisID))
	datPath := filepath.Join(dir, fmt.Sprintf("triangle_SC%d.DAT", analysisID))
	for _, p := range []string{ascPath, datPath, allPath} {
		if _, err := os.Stat(p); err != nil {
			tst.Errorf("expected %s to exist: %v", p, err)
		}
	}

	allBytes, err := os.ReadFile(allPath)
	if err != nil {
		tst.Fatalf("read ALL.DAT: %v", err)
	}
	if !strings.Contains(string(allBytes), fmt.Sprintf("READ triangle_SC%d.DAT", analysisID)) {
		tst.Errorf("expected the master file to READ the analysis DAT")
	}

	ascBytes, err := os.ReadFile(ascPath)
	if err != nil {
		tst.Fatalf("read ASC: %v", err)
	}
	asc := string(ascBytes)
	for _, want := range []string{
		"BEGIN_NODES", "END_NODES",
		"BEGIN_ELEMENTS", "END_ELEMENTS",
		"BEGIN_GROUPS", "END_GROUPS",
		"BEGIN_MATERIALS", "END_MATERIALS",
		"BEGIN_LOADS", "END_LOADS",
		"21 0.01",
	} {
		if !strings.Contains(asc, want) {
			tst.Errorf("expected the .ASC script to contain %q", want)
		}
	}

	datBytes, err := os.ReadFile(datPath)
	if err != nil {
		tst.Fatalf("read DAT: %v", err)
	}
	dat := string(datBytes)
	for _, want := range []string{
		"SEARCH DATA 1 ASCII",
		"SOLVE METHOD OPTIMISED",
		"SAVE DATA RESU 1",
		"LANGAGE",
		"TEST_RESU DISPLACEMENT ASSERTION",
		"close_file(iResu);",
	} {
		if !strings.Contains(dat, want) {
			tst.Errorf("expected the .DAT script to contain %q", want)
		}
	}
}

func Test_part_id_allocator_parses_trailing_suffix(tst *testing.T) {
	chk.PrintTitle("systus_part_id_allocator_suffix")
	alloc := newPartIDAllocator()
	if id := alloc.allocate("WING_7"); id != 7 {
		tst.Errorf("expected the trailing _7 suffix to be used as the part id, got %d", id)
	}
	if id := alloc.allocate("FUSELAGE"); id != autoPartIDStart {
		tst.Errorf("expected a name with no parseable suffix to fall back to the auto counter, got %d", id)
	}
	if id := alloc.allocate("TAIL_7"); id == 7 {
		tst.Errorf("expected a colliding suffix id to fall back to the auto counter instead of reusing 7")
	}
}

func Test_systus_option_picks_3_for_shell_model(tst *testing.T) {
	chk.PrintTitle("systus_option_shell_model")
	m := buildTriangleModel(tst)
	if got := systusOption(m); got != 3 {
		tst.Errorf("expected a shell-only model to pick option 3, got %d", got)
	}
	if got := dofsPerNode(3); got != 6 {
		tst.Errorf("expected option 3 to carry 6 dof/node, got %d", got)
	}
}
