// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aster

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

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
	chk.PrintTitle("aster_write_triangle_study")
	m := buildTriangleModel(tst)
	dir := tst.TempDir()

	exportPath, err := Write(m, dir, "triangle", "")
	if err != nil {
		tst.Fatalf("write: %v", err)
	}
	if filepath.Base(exportPath) != "triangle.export" {
		tst.Errorf("expected the .export path to be returned, got %q", exportPath)
	}
	for _, ext := range []string{".med", ".comm", ".export"} {
		if _, err := os.Stat(filepath.Join(dir, "triangle"+ext)); err != nil {
			tst.Errorf("expected triangle%s to exist: %v", ext, err)
		}
	}

	commBytes, err := os.ReadFile(filepath.Join(dir, "triangle.comm"))
	if err != nil {
		tst.Fatalf("read .comm: %v", err)
	}
	comm := string(commBytes)
	for _, want := range []string{
		"DEBUT(PAR_LOT='NON')",
		"LIRE_MAILLAGE",
		"AFFE_MODELE",
		"MODELISATION=('DKT',)",
		"DEFI_MATERIAU",
		"AFFE_CARA_ELEM",
		"EPAIS=0.01",
		"DDL_IMPO",
		"FORCE_NODALE",
		"MECA_STATIQUE",
		"TEST_RESU",
		"IMPR_RESU",
		"FIN()",
	} {
		if !strings.Contains(comm, want) {
			tst.Errorf("expected the .comm script to contain %q", want)
		}
	}

	exportBytes, err := os.ReadFile(exportPath)
	if err != nil {
		tst.Fatalf("read .export: %v", err)
	}
	export := string(exportBytes)
	for _, want := range []string{
		"P nomjob triangle",
		"F comm triangle.comm D 1",
		"F mail triangle.med D 20",
		"R repe triangle_repe_out R 0",
	} {
		if !strings.Contains(export, want) {
			tst.Errorf("expected the .export file to contain %q", want)
		}
	}
}

func Test_config_memjeveux_clamped(tst *testing.T) {
	chk.PrintTitle("aster_config_memjeveux_clamped")
	m := im.New("tiny")
	cfg := NewConfig(m, "")
	if cfg.Memjeveux != 128.0 {
		tst.Errorf("expected an empty model's memjeveux to clamp to the 128 floor, got %v", cfg.Memjeveux)
	}
	if cfg.SolverVersion != "STABLE" {
		tst.Errorf("expected the default solver version to be STABLE, got %q", cfg.SolverVersion)
	}
}

func Test_dof_name_aster_rotation_spelling(tst *testing.T) {
	chk.PrintTitle("aster_dof_name_rotation_spelling")
	if dofName(im.RX) != "DRX" || dofName(im.RY) != "DRY" || dofName(im.RZ) != "DRZ" {
		tst.Errorf("expected rotation dofs to spell DRX/DRY/DRZ")
	}
	if dofName(im.DX) != "DX" {
		tst.Errorf("expected translation dofs to keep the bare DX spelling, got %q", dofName(im.DX))
	}
}
