// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import "github.com/Alneos/vega-sub001/geom"

// FaceIDsFromTwoNodes returns the ordered node list of the unique face of
// cell that contains the segment (n1,n2), per spec.md §4.2. Disambiguation
// is deterministic: faces are scanned in catalog order and the first
// containing both nodes in cyclic sense is returned.
func (m *Mesh) FaceIDsFromTwoNodes(cell *Cell, n1, n2 int) ([]int, error) {
	for f := range geom.Faces(cell.Type) {
		ids, err := cell.FaceNodeIDs(f)
		if err != nil {
			return nil, err
		}
		if containsCyclicPair(ids, n1, n2) {
			return ids, nil
		}
	}
	return nil, newTopologyError("no face of cell %d contains the segment (%d,%d)", cell.ID(), n1, n2)
}

// containsCyclicPair reports whether n1 and n2 appear adjacent (in either
// direction) somewhere in the cyclic sequence ids.
func containsCyclicPair(ids []int, n1, n2 int) bool {
	n := len(ids)
	for i := 0; i < n; i++ {
		a, b := ids[i], ids[(i+1)%n]
		if (a == n1 && b == n2) || (a == n2 && b == n1) {
			return true
		}
	}
	return false
}

// VolcellAndFacenumFromSkincell finds the unique volume cell and face
// number whose face node set equals surfCell's node set (up to rotation
// and reflection), among cands. Exactly one match is required; zero or
// more than one is a TopologyError, per spec.md §4.2.
func (m *Mesh) VolcellAndFacenumFromSkincell(surfCell *Cell, cands []*Cell) (*Cell, int, error) {
	var foundCell *Cell
	foundFace := -1
	for _, vc := range cands {
		fi := vc.faceIndexOf(surfCell.NodeIDs)
		if fi < 0 {
			continue
		}
		if foundCell != nil {
			return nil, 0, newTopologyError("skin cell %d matches a face of more than one volume cell", surfCell.ID())
		}
		foundCell, foundFace = vc, fi
	}
	if foundCell == nil {
		return nil, 0, newTopologyError("skin cell %d matches no face of any candidate volume cell", surfCell.ID())
	}
	return foundCell, foundFace, nil
}

// ExtractSkin returns the boundary faces of cells: faces whose node set
// (sorted) is not shared with any other cell's face, per spec.md §4.2.
// Results are returned in the order first encountered while scanning
// cells (then faces) — deterministic and insertion-order-derived, per
// spec.md §5.
func ExtractSkin(cells []*Cell) [][]int {
	type faceKey string
	keyOf := func(ids []int) faceKey {
		sorted := append([]int(nil), ids...)
		for i := 1; i < len(sorted); i++ {
			for j := i; j > 0 && sorted[j-1] > sorted[j]; j-- {
				sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
			}
		}
		key := faceKey("")
		for _, v := range sorted {
			key += faceKey(rune(v)) + ","
		}
		return key
	}

	count := make(map[faceKey]int)
	firstSeen := make(map[faceKey][]int)
	var keysInOrder []faceKey
	for _, c := range cells {
		if geom.Dim(c.Type) != 3 {
			continue
		}
		for _, face := range geom.Faces(c.Type) {
			ids := make([]int, len(face))
			for i, li := range face {
				ids[i] = c.NodeIDs[li]
			}
			k := keyOf(ids)
			if count[k] == 0 {
				keysInOrder = append(keysInOrder, k)
				firstSeen[k] = ids
			}
			count[k]++
		}
	}

	var skin [][]int
	for _, k := range keysInOrder {
		if count[k] == 1 {
			skin = append(skin, firstSeen[k])
		}
	}
	return skin
}
