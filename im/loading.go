// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package im

import "github.com/Alneos/vega-sub001/geom"

// LoadingKind is the closed set of Loading variants, spec.md §3.2.
type LoadingKind int

const (
	LoadNodalForce LoadingKind = iota
	LoadNodalForceTwoNodes
	LoadGravity
	LoadRotation
	LoadForceLine
	LoadForceSurface
	LoadNormalPressionFace
	LoadPressionFaceTwoNodes
	LoadInitialTemperature
	LoadDynamicExcitation
)

// loadingTargetsElements marks the variants that are "ElementLoading"
// (name a set of cells) rather than "NodalLoading" (name a set of
// nodes), per spec.md §3.2.
var loadingTargetsElements = map[LoadingKind]bool{
	LoadForceLine:            true,
	LoadForceSurface:         true,
	LoadNormalPressionFace:   true,
	LoadPressionFaceTwoNodes: true,
}

// Loading applies a load to a named set of cells or nodes. The ten
// variants share this representation: every variant ultimately reduces
// to "which entity (node or cell) does this act on" plus a handful of
// kind-specific scalars/vectors, so branching lives only at the writer,
// exactly as the teacher's msolid Nature variants branch only inside
// Init()/Update().
type Loading struct {
	id   int
	Kind LoadingKind

	// Targeting: exactly one of NodeID / CellID is meaningful, per Kind.
	NodeID int
	CellID int

	// FaceNodeIDs optionally names a face by its (deck-order) node ids,
	// for a face loading parsed before the mesh skin exists (e.g.
	// PLOAD4 on a solid element's face). createSkin/makeBoundaryCells
	// resolves this into CellID once the matching skin cell is built.
	FaceNodeIDs []int

	// NodalForce / NodalForceTwoNodes (vector computed from NodeA->NodeB)
	Force  geom.Vec3
	Moment geom.Vec3
	NodeA, NodeB int

	// Gravity
	Gravity geom.Vec3

	// Rotation
	Center geom.Vec3
	Axis   geom.Vec3
	Omega  float64

	// ForceLine: per-dof function on a beam cell
	DofFuncRefs map[DOF]Ref // -> RefValue

	// ForceSurface / NormalPressionFace
	Pressure float64

	// PressionFaceTwoNodes
	PressureA, PressureB float64

	// InitialTemperature
	Temperature float64

	// DynamicExcitation: a DynaPhase + a FunctionTable + a nested
	// LoadSet used as the DAREA vector.
	PhaseRef    Ref // -> RefValue (DynaPhase)
	FunctionRef Ref // -> RefValue (FunctionTable)
	DareaRef    Ref // -> RefLoadSet
}

// NewNodalForceLoading builds a NodalForce loading.
func NewNodalForceLoading(id, nodeID int, force, moment geom.Vec3) *Loading {
	return &Loading{id: id, Kind: LoadNodalForce, NodeID: nodeID, Force: force, Moment: moment}
}

// NewNodalForceTwoNodesLoading builds a force whose direction is the
// NodeA->NodeB line, scaled to magnitude.
func NewNodalForceTwoNodesLoading(id, nodeID, nodeA, nodeB int, magnitude float64) *Loading {
	return &Loading{id: id, Kind: LoadNodalForceTwoNodes, NodeID: nodeID, NodeA: nodeA, NodeB: nodeB, Force: geom.NewVec3(magnitude, 0, 0)}
}

// NewRotationLoading builds a centrifugal Rotation loading about axis
// through center at omega rad/s.
func NewRotationLoading(id int, center, axis geom.Vec3, omega float64) *Loading {
	return &Loading{id: id, Kind: LoadRotation, Center: center, Axis: axis, Omega: omega}
}

// NewForceLineLoading builds a distributed line load on a beam cell, one
// function per loaded DOF.
func NewForceLineLoading(id, cellID int, dofFuncRefs map[DOF]Ref) *Loading {
	return &Loading{id: id, Kind: LoadForceLine, CellID: cellID, DofFuncRefs: dofFuncRefs}
}

// NewInitialTemperatureLoading builds a uniform initial-temperature
// loading on a node.
func NewInitialTemperatureLoading(id, nodeID int, temperature float64) *Loading {
	return &Loading{id: id, Kind: LoadInitialTemperature, NodeID: nodeID, Temperature: temperature}
}

// NewGravityLoading builds a Gravity loading. CellID names the cell it
// applies to; the Nastran GRAV parser passes 0, one Loading for the
// whole model.
func NewGravityLoading(id, cellID int, gravity geom.Vec3) *Loading {
	return &Loading{id: id, Kind: LoadGravity, CellID: cellID, Gravity: gravity}
}

// NewNormalPressionFaceLoading builds a pressure loading on a face cell.
func NewNormalPressionFaceLoading(id, cellID int, pressure float64) *Loading {
	return &Loading{id: id, Kind: LoadNormalPressionFace, CellID: cellID, Pressure: pressure}
}

// NewNormalPressionFaceLoadingOnFace builds a pressure loading named by
// its face node ids, for decks (PLOAD4 and similar) that declare the
// face before any skin cell exists to carry it. CellID is resolved by
// the createSkin/makeBoundaryCells finish() pass.
func NewNormalPressionFaceLoadingOnFace(id int, faceNodeIDs []int, pressure float64) *Loading {
	return &Loading{id: id, Kind: LoadNormalPressionFace, FaceNodeIDs: faceNodeIDs, Pressure: pressure}
}

// NewForceSurfaceLoading builds a uniform distributed force on a face
// cell (PLOAD4 with an explicit N1/N2/N3 direction).
func NewForceSurfaceLoading(id, cellID int, force geom.Vec3) *Loading {
	return &Loading{id: id, Kind: LoadForceSurface, CellID: cellID, Force: force}
}

// NewPressionFaceTwoNodesLoading builds a pressure loading on a face
// cell that varies linearly between two named corner nodes (PLOAD4's G1
// and G3-or-G4 fields).
func NewPressionFaceTwoNodesLoading(id, cellID, nodeA, nodeB int, pressureA, pressureB float64) *Loading {
	return &Loading{id: id, Kind: LoadPressionFaceTwoNodes, CellID: cellID, NodeA: nodeA, NodeB: nodeB, PressureA: pressureA, PressureB: pressureB}
}

// NewDynamicExcitationLoading builds a DynamicExcitation loading.
func NewDynamicExcitationLoading(id int, phase, function, darea Ref) *Loading {
	return &Loading{id: id, Kind: LoadDynamicExcitation, PhaseRef: phase, FunctionRef: function, DareaRef: darea}
}

// RefID returns the loading's stable id.
func (l *Loading) RefID() int { return l.id }

// Ref returns a Ref pointing at this loading.
func (l *Loading) Ref() Ref { return Ref{Kind: RefLoading, ID: l.id} }

// IsElementLoading reports whether this loading names cells rather than
// nodes.
func (l *Loading) IsElementLoading() bool { return loadingTargetsElements[l.Kind] }

// IsEffective reports whether the loading has any observable effect —
// used by the removeIneffectives finish() pass (spec.md §4.3 step 11).
func (l *Loading) IsEffective() bool {
	switch l.Kind {
	case LoadNodalForce:
		return l.Force != (geom.Vec3{}) || l.Moment != (geom.Vec3{})
	case LoadGravity:
		return l.Gravity != (geom.Vec3{})
	case LoadNormalPressionFace, LoadPressionFaceTwoNodes:
		return l.Pressure != 0 || l.PressureA != 0 || l.PressureB != 0
	case LoadInitialTemperature:
		return l.Temperature != 0
	default:
		return true
	}
}

// Scale returns a copy of l with force-like quantities multiplied by
// factor, used by the replaceCombinedLoadSets pass (spec.md §4.3 step 7).
func (l *Loading) Scale(factor float64) *Loading {
	c := *l
	c.Force = c.Force.Scale(factor)
	c.Moment = c.Moment.Scale(factor)
	c.Gravity = c.Gravity.Scale(factor)
	c.Pressure *= factor
	c.PressureA *= factor
	c.PressureB *= factor
	c.Temperature *= factor
	return &c
}
