// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"github.com/Alneos/vega-sub001/geom"
	"github.com/cpmech/gosl/chk"
)

// OrientationKind selects how a Cell's local orientation reference is
// interpreted.
type OrientationKind int

const (
	OrientationNone OrientationKind = iota
	OrientationCell                 // orientation taken from another cell
	OrientationVector                // orientation given as a local vector system
)

// Orientation is a Cell's optional orientation reference, used by beam
// and shell cells to fix the local axis system.
type Orientation struct {
	Kind     OrientationKind
	CellID   int       // meaningful when Kind == OrientationCell
	VectorCS int       // meaningful when Kind == OrientationVector: a CoordinateSystem id
}

// Cell is a mesh element: a cell-type tag plus its ordered node list,
// per spec.md §3.1. The node list length must equal the catalog arity
// for Type; this is enforced at construction by Mesh.AddCell, not here,
// so a Cell value is never observed in a half-valid state once it
// escapes the mesh package.
type Cell struct {
	id          int
	Type        geom.CellType
	NodeIDs     []int
	Orientation *Orientation
}

// RefID returns the cell's stable id.
func (c *Cell) RefID() int { return c.id }

// ID returns the cell's stable id.
func (c *Cell) ID() int { return c.id }

// CornerNodeIDs returns the leading "corner" nodes (excluding mid-edge /
// mid-face nodes of quadratic cells).
func (c *Cell) CornerNodeIDs() []int {
	info := geom.Info(c.Type)
	if info.Corner >= len(c.NodeIDs) {
		return append([]int(nil), c.NodeIDs...)
	}
	return append([]int(nil), c.NodeIDs[:info.Corner]...)
}

// FaceNodeIDs returns the ordered node ids of face index f (in catalog
// order), resolving local indices against this cell's NodeIDs.
func (c *Cell) FaceNodeIDs(f int) ([]int, error) {
	faces := geom.Faces(c.Type)
	if f < 0 || f >= len(faces) {
		return nil, chk.Err("cell %d (type %s) has no face #%d", c.id, geom.Info(c.Type).Name, f)
	}
	out := make([]int, len(faces[f]))
	for i, localIdx := range faces[f] {
		out[i] = c.NodeIDs[localIdx]
	}
	return out, nil
}

// faceIndexOf returns the catalog face index whose node set equals want,
// up to rotation and reflection, or -1 if none matches.
func (c *Cell) faceIndexOf(want []int) int {
	for fi, face := range geom.Faces(c.Type) {
		got := make([]int, len(face))
		for i, localIdx := range face {
			got[i] = c.NodeIDs[localIdx]
		}
		if sameNodeSetCyclic(got, want) {
			return fi
		}
	}
	return -1
}

// sameNodeSetCyclic reports whether a and b describe the same polygon up
// to rotation and reflection (the disambiguation rule spec.md §4.2
// requires for volcell_and_facenum_from_skincell and
// faceids_from_two_nodes).
func sameNodeSetCyclic(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	n := len(a)
	matches := func(seq []int) bool {
		for shift := 0; shift < n; shift++ {
			ok := true
			for i := 0; i < n; i++ {
				if seq[(i+shift)%n] != b[i] {
					ok = false
					break
				}
			}
			if ok {
				return true
			}
		}
		return false
	}
	if matches(a) {
		return true
	}
	rev := make([]int, n)
	for i, v := range a {
		rev[n-1-i] = v
	}
	return matches(rev)
}
