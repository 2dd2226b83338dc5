// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import "github.com/cpmech/gosl/chk"

// CellType is a tag from the fixed catalog of finite-element cell shapes.
// The catalog is the single source of truth for every component that
// needs face/skin reasoning, per spec.md §4.1.
type CellType int

// Closed catalog of cell types, grounded on the node-ordering convention
// the teacher's shp package documents for its own shape functions
// (corner nodes first, then mid-edge nodes).
const (
	Point1 CellType = iota
	Seg2
	Seg3
	Tri3
	Tri6
	Quad4
	Quad8
	Quad9
	Tetra4
	Tetra10
	Pyra5
	Pyra13
	Penta6
	Penta15
	Hexa8
	Hexa20
)

// CellInfo describes one entry of the catalog: semantic name, arity,
// topological dimension, and face/edge enumerations expressed as ordered
// local-node indices.
type CellInfo struct {
	Name   string
	Arity  int
	Dim    int
	Faces  [][]int // local node indices per face, in cyclic order
	Edges  [][]int // local node indices per edge (pairs, or triples for quadratic)
	Corner int      // number of leading "corner" nodes (rest are mid-side/mid-face)
}

// catalog is keyed by CellType; it is never mutated after package init,
// satisfying the "process-wide configuration constants... read-only
// thereafter" clause of spec.md §5.
var catalog = map[CellType]CellInfo{
	Point1: {Name: "point1", Arity: 1, Dim: 0, Corner: 1},

	Seg2: {Name: "seg2", Arity: 2, Dim: 1, Corner: 2,
		Edges: [][]int{{0, 1}}},
	Seg3: {Name: "seg3", Arity: 3, Dim: 1, Corner: 2,
		Edges: [][]int{{0, 1, 2}}},

	Tri3: {Name: "tri3", Arity: 3, Dim: 2, Corner: 3,
		Faces: [][]int{{0, 1, 2}},
		Edges: [][]int{{0, 1}, {1, 2}, {2, 0}}},
	Tri6: {Name: "tri6", Arity: 6, Dim: 2, Corner: 3,
		Faces: [][]int{{0, 1, 2}},
		Edges: [][]int{{0, 1, 3}, {1, 2, 4}, {2, 0, 5}}},

	Quad4: {Name: "quad4", Arity: 4, Dim: 2, Corner: 4,
		Faces: [][]int{{0, 1, 2, 3}},
		Edges: [][]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}},
	Quad8: {Name: "quad8", Arity: 8, Dim: 2, Corner: 4,
		Faces: [][]int{{0, 1, 2, 3}},
		Edges: [][]int{{0, 1, 4}, {1, 2, 5}, {2, 3, 6}, {3, 0, 7}}},
	Quad9: {Name: "quad9", Arity: 9, Dim: 2, Corner: 4,
		Faces: [][]int{{0, 1, 2, 3}},
		Edges: [][]int{{0, 1, 4}, {1, 2, 5}, {2, 3, 6}, {3, 0, 7}}},

	Tetra4: {Name: "tetra4", Arity: 4, Dim: 3, Corner: 4,
		Faces: [][]int{{0, 1, 2}, {0, 3, 1}, {1, 3, 2}, {2, 3, 0}},
		Edges: [][]int{{0, 1}, {1, 2}, {2, 0}, {0, 3}, {1, 3}, {2, 3}}},
	Tetra10: {Name: "tetra10", Arity: 10, Dim: 3, Corner: 4,
		Faces: [][]int{{0, 1, 2}, {0, 3, 1}, {1, 3, 2}, {2, 3, 0}},
		Edges: [][]int{{0, 1, 4}, {1, 2, 5}, {2, 0, 6}, {0, 3, 7}, {1, 3, 8}, {2, 3, 9}}},

	Pyra5: {Name: "pyra5", Arity: 5, Dim: 3, Corner: 5,
		Faces: [][]int{{0, 1, 2, 3}, {0, 4, 1}, {1, 4, 2}, {2, 4, 3}, {3, 4, 0}}},
	Pyra13: {Name: "pyra13", Arity: 13, Dim: 3, Corner: 5,
		Faces: [][]int{{0, 1, 2, 3}, {0, 4, 1}, {1, 4, 2}, {2, 4, 3}, {3, 4, 0}}},

	Penta6: {Name: "penta6", Arity: 6, Dim: 3, Corner: 6,
		Faces: [][]int{{0, 1, 2}, {3, 5, 4}, {0, 3, 4, 1}, {1, 4, 5, 2}, {2, 5, 3, 0}}},
	Penta15: {Name: "penta15", Arity: 15, Dim: 3, Corner: 6,
		Faces: [][]int{{0, 1, 2}, {3, 5, 4}, {0, 3, 4, 1}, {1, 4, 5, 2}, {2, 5, 3, 0}}},

	Hexa8: {Name: "hexa8", Arity: 8, Dim: 3, Corner: 8,
		Faces: [][]int{
			{0, 3, 2, 1}, // bottom
			{4, 5, 6, 7}, // top
			{0, 1, 5, 4},
			{1, 2, 6, 5},
			{2, 3, 7, 6},
			{3, 0, 4, 7},
		},
		Edges: [][]int{
			{0, 1}, {1, 2}, {2, 3}, {3, 0},
			{4, 5}, {5, 6}, {6, 7}, {7, 4},
			{0, 4}, {1, 5}, {2, 6}, {3, 7},
		}},
	Hexa20: {Name: "hexa20", Arity: 20, Dim: 3, Corner: 8,
		Faces: [][]int{
			{0, 3, 2, 1}, {4, 5, 6, 7},
			{0, 1, 5, 4}, {1, 2, 6, 5}, {2, 3, 7, 6}, {3, 0, 4, 7},
		}},
}

// names supports reverse lookup, e.g. when writers need a cell type's
// nastran/aster/systus alias table keyed by catalog name instead of tag.
var names = func() map[string]CellType {
	m := make(map[string]CellType, len(catalog))
	for ct, info := range catalog {
		m[info.Name] = ct
	}
	return m
}()

// Info returns the catalog entry for ct, panicking if ct is not a
// registered type — an unregistered CellType reaching this call is
// always a programming error, never a deck-content error.
func Info(ct CellType) CellInfo {
	info, ok := catalog[ct]
	if !ok {
		chk.Panic("geom: cell type %d is not in the catalog", int(ct))
	}
	return info
}

// Arity returns the node count required by ct.
func Arity(ct CellType) int { return Info(ct).Arity }

// Dim returns the topological dimension (0, 1, 2, or 3) of ct.
func Dim(ct CellType) int { return Info(ct).Dim }

// ByName resolves a catalog name (e.g. "hexa8") to its CellType.
func ByName(name string) (CellType, bool) {
	ct, ok := names[name]
	return ct, ok
}

// Faces returns the ordered-node-index-per-face enumeration of ct; for
// 0D/1D cells this is empty (faces are only meaningful for 2D/3D cells).
func Faces(ct CellType) [][]int { return Info(ct).Faces }

// Edges returns the ordered-node-index-per-edge enumeration of ct.
func Edges(ct CellType) [][]int { return Info(ct).Edges }
