// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"testing"

	"github.com/Alneos/vega-sub001/geom"
	"github.com/cpmech/gosl/chk"
)

func buildHexaWithPload4Nodes(tst *testing.T) (*Mesh, *Cell) {
	m := New()
	coords := [][3]float64{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	}
	ids := make([]int, 8)
	for i, c := range coords {
		id := 50 + i
		n, err := m.AddNode(&id, geom.NewVec3(c[0], c[1], c[2]), GlobalCS, GlobalCS)
		if err != nil {
			tst.Fatalf("add node: %v", err)
		}
		ids[i] = n.ID()
	}
	cid := 1
	c, err := m.AddCell(&cid, geom.Hexa8, ids, nil)
	if err != nil {
		tst.Fatalf("add cell: %v", err)
	}
	return m, c
}

func Test_mesh_add_node_cell_arity(tst *testing.T) {
	chk.PrintTitle("mesh_add_node_cell_arity")
	m := New()
	n1, _ := m.AddNode(nil, geom.NewVec3(0, 0, 0), GlobalCS, GlobalCS)
	n2, _ := m.AddNode(nil, geom.NewVec3(1, 0, 0), GlobalCS, GlobalCS)
	_, err := m.AddCell(nil, geom.Seg2, []int{n1.ID(), n2.ID()}, nil)
	if err != nil {
		tst.Errorf("expected seg2 with 2 nodes to succeed: %v", err)
	}
	_, err = m.AddCell(nil, geom.Seg2, []int{n1.ID()}, nil)
	if err == nil {
		tst.Errorf("expected arity mismatch to fail")
	}
	_, err = m.AddCell(nil, geom.Seg2, []int{n1.ID(), 9999}, nil)
	if err == nil {
		tst.Errorf("expected unresolved node reference to fail")
	}
}

func Test_mesh_skin_extraction_hexa8(tst *testing.T) {
	chk.PrintTitle("mesh_skin_extraction_hexa8")
	_, c := buildHexaWithPload4Nodes(tst)
	skin := ExtractSkin([]*Cell{c})
	if len(skin) != 6 {
		tst.Errorf("a lone hexa8 should expose all 6 faces as boundary, got %d", len(skin))
	}
	found := false
	for _, face := range skin {
		if sameNodeSetCyclic(face, []int{50, 51, 52, 53}) {
			found = true
		}
	}
	if !found {
		tst.Errorf("expected skin to contain the bottom face [50,51,52,53]")
	}
}

func Test_mesh_volcell_and_facenum_from_skincell(tst *testing.T) {
	chk.PrintTitle("mesh_volcell_and_facenum_from_skincell")
	m, vol := buildHexaWithPload4Nodes(tst)
	surfID := 100
	surf, err := m.AddCell(&surfID, geom.Quad4, []int{50, 51, 52, 53}, nil)
	if err != nil {
		tst.Fatalf("add surface cell: %v", err)
	}
	found, faceNum, err := m.VolcellAndFacenumFromSkincell(surf, []*Cell{vol})
	if err != nil {
		tst.Errorf("expected unique match, got error: %v", err)
	}
	if found.ID() != vol.ID() {
		tst.Errorf("expected to match the volume cell")
	}
	if faceNum != 0 {
		tst.Errorf("expected face 0 (bottom), got %d", faceNum)
	}
}

func Test_mesh_faceids_from_two_nodes_ambiguous(tst *testing.T) {
	chk.PrintTitle("mesh_faceids_from_two_nodes")
	m, vol := buildHexaWithPload4Nodes(tst)
	ids, err := m.FaceIDsFromTwoNodes(vol, 50, 51)
	if err != nil {
		tst.Errorf("expected face lookup to succeed: %v", err)
	}
	if len(ids) != 4 {
		tst.Errorf("expected a quad face, got %d nodes", len(ids))
	}
}
