// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"github.com/Alneos/vega-sub001/geom"
	"github.com/Alneos/vega-sub001/idstore"
	"github.com/cpmech/gosl/chk"
)

// Mesh is the node/cell/group/coordinate-system store, per spec.md §4.2.
// Ids are unique within each of its four collections; node and cell ids
// are drawn from independent namespaces.
type Mesh struct {
	nodes    *idstore.Collection[*Node]
	cells    *idstore.Collection[*Cell]
	groups   *idstore.Collection[*Group]
	coordSys *idstore.Collection[*CoordinateSystem]

	groupsByName map[string]*Group
	nextNodeID   int
	nextCellID   int
	nextGroupID  int
}

// New builds an empty Mesh seeded with the global Cartesian coordinate
// system (id GlobalCS).
func New() *Mesh {
	m := &Mesh{
		nodes:        idstore.NewCollection[*Node](),
		cells:        idstore.NewCollection[*Cell](),
		groups:       idstore.NewCollection[*Group](),
		coordSys:     idstore.NewCollection[*CoordinateSystem](),
		groupsByName: make(map[string]*Group),
		nextNodeID:   1,
		nextCellID:   1,
		nextGroupID:  1,
	}
	global := NewCartesianCS(GlobalCS, geom.Vec3{}, geom.NewVec3(1, 0, 0), geom.NewVec3(0, 0, 1))
	if err := m.coordSys.Add(global); err != nil {
		chk.Panic("mesh: failed to seed global coordinate system: %v", err)
	}
	return m
}

// AddNode inserts a node. If id is nil, an id is auto-assigned.
func (m *Mesh) AddNode(id *int, pos geom.Vec3, positionCS, displacementCS int) (*Node, error) {
	nodeID := m.allocID(id, &m.nextNodeID)
	n := NewNode(nodeID, pos, positionCS, displacementCS)
	if err := m.nodes.Add(n); err != nil {
		return nil, chk.Err("mesh: cannot add node %d: %v", nodeID, err)
	}
	return n, nil
}

// AddCell inserts a cell, enforcing the catalog arity invariant of
// spec.md §3.1 and that every referenced node already exists.
func (m *Mesh) AddCell(id *int, ct geom.CellType, nodeIDs []int, orientation *Orientation) (*Cell, error) {
	arity := geom.Arity(ct)
	if len(nodeIDs) != arity {
		return nil, chk.Err("mesh: cell type %s requires %d nodes, got %d", geom.Info(ct).Name, arity, len(nodeIDs))
	}
	for _, nid := range nodeIDs {
		if _, ok := m.nodes.Find(nid); !ok {
			return nil, chk.Err("mesh: cell references non-existent node %d", nid)
		}
	}
	cellID := m.allocID(id, &m.nextCellID)
	c := &Cell{id: cellID, Type: ct, NodeIDs: append([]int(nil), nodeIDs...), Orientation: orientation}
	if err := m.cells.Add(c); err != nil {
		return nil, chk.Err("mesh: cannot add cell %d: %v", cellID, err)
	}
	return c, nil
}

// allocID returns *id if non-nil (bumping the auto-counter past it so
// later auto ids never collide), otherwise the next auto id.
func (m *Mesh) allocID(id *int, counter *int) int {
	if id != nil {
		if *id >= *counter {
			*counter = *id + 1
		}
		return *id
	}
	next := *counter
	*counter++
	return next
}

// FindNode resolves a node id.
func (m *Mesh) FindNode(id int) (*Node, bool) { return m.nodes.Find(id) }

// FindCell resolves a cell id.
func (m *Mesh) FindCell(id int) (*Cell, bool) { return m.cells.Find(id) }

// FindNodePosition returns the global position of node id.
func (m *Mesh) FindNodePosition(id int) (geom.Vec3, error) {
	n, ok := m.nodes.Find(id)
	if !ok {
		return geom.Vec3{}, chk.Err("mesh: node %d does not exist", id)
	}
	return n.Position, nil
}

// Nodes returns every node in insertion order.
func (m *Mesh) Nodes() []*Node { return m.nodes.All() }

// Cells returns every cell in insertion order.
func (m *Mesh) Cells() []*Cell { return m.cells.All() }

// AddCoordinateSystem registers cs (built with one of the New*CS
// constructors) and validates that, for orientation variants, referenced
// nodes/coordinate systems exist.
func (m *Mesh) AddCoordinateSystem(cs *CoordinateSystem) error {
	if cs.Kind == CSOrientationTwoNodes {
		if _, ok := m.nodes.Find(cs.NodeA); !ok {
			return chk.Err("coordinate system %d: node %d does not exist", cs.ID(), cs.NodeA)
		}
		if _, ok := m.nodes.Find(cs.NodeB); !ok {
			return chk.Err("coordinate system %d: node %d does not exist", cs.ID(), cs.NodeB)
		}
	}
	if err := m.coordSys.Add(cs); err != nil {
		return chk.Err("mesh: cannot add coordinate system: %v", err)
	}
	return nil
}

// FindCoordinateSystem resolves a coordinate system id.
func (m *Mesh) FindCoordinateSystem(id int) (*CoordinateSystem, bool) { return m.coordSys.Find(id) }

// ResolveCoordinateSystems recomputes the local base of every
// orientation-dependent coordinate system, now that all nodes exist. It
// is called once during the IM's reference-resolution finish() pass.
func (m *Mesh) ResolveCoordinateSystems() error {
	for _, cs := range m.coordSys.All() {
		if err := cs.UpdateLocalBase(m.FindNodePosition); err != nil {
			return err
		}
	}
	return nil
}

// CreateCellGroup creates a named CellGroup.
func (m *Mesh) CreateCellGroup(name string, originalID int, comment string) (*Group, error) {
	return m.createGroup(CellGroupKind, name, originalID, comment)
}

// FindOrCreateNodeGroup returns the NodeGroup named name, creating it if
// absent.
func (m *Mesh) FindOrCreateNodeGroup(name string, originalID int, comment string) (*Group, error) {
	if g, ok := m.groupsByName[name]; ok {
		return g, nil
	}
	return m.createGroup(NodeGroupKind, name, originalID, comment)
}

// FindOrCreateCellGroup returns the CellGroup named name, creating it if
// absent.
func (m *Mesh) FindOrCreateCellGroup(name string, originalID int, comment string) (*Group, error) {
	if g, ok := m.groupsByName[name]; ok {
		return g, nil
	}
	return m.createGroup(CellGroupKind, name, originalID, comment)
}

func (m *Mesh) createGroup(kind GroupKind, name string, originalID int, comment string) (*Group, error) {
	id := m.nextGroupID
	m.nextGroupID++
	g := NewGroup(id, kind, name, originalID, comment)
	if err := m.groups.Add(g); err != nil {
		return nil, chk.Err("mesh: cannot add group %q: %v", name, err)
	}
	m.groupsByName[name] = g
	return g, nil
}

// FindGroupByName resolves a group by name.
func (m *Mesh) FindGroupByName(name string) (*Group, bool) {
	g, ok := m.groupsByName[name]
	return g, ok
}

// FindGroup resolves a group by stable id.
func (m *Mesh) FindGroup(id int) (*Group, bool) { return m.groups.Find(id) }

// Groups returns every group in insertion order.
func (m *Mesh) Groups() []*Group { return m.groups.All() }
