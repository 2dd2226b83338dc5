// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mesh implements the node/cell/group store and the topological
// queries (face lookup, skin extraction, skin-to-volume mapping) that sit
// underneath the Intermediate Model, per spec.md §4.2.
package mesh

import "github.com/Alneos/vega-sub001/geom"

// GlobalCS is the id of the always-present global Cartesian coordinate
// system; every Mesh is seeded with it.
const GlobalCS = 0

// Node is a mesh vertex: an immutable position plus the ids of the two
// coordinate systems it is expressed in (spec.md §3.1).
type Node struct {
	id             int
	Position       geom.Vec3
	PositionCS     int
	DisplacementCS int
}

// NewNode builds a Node. Position is immutable once the node is added to
// a Mesh.
func NewNode(id int, pos geom.Vec3, positionCS, displacementCS int) *Node {
	return &Node{id: id, Position: pos, PositionCS: positionCS, DisplacementCS: displacementCS}
}

// RefID implements im.Identified-compatible lookup without importing im
// (mesh must not depend on im, only the reverse).
func (n *Node) RefID() int { return n.id }

// ID returns the node's stable id.
func (n *Node) ID() int { return n.id }
