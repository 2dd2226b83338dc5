// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package im

// ElementSetKind is the closed set of ElementSet variants, spec.md §3.2.
type ElementSetKind int

const (
	ElemContinuum ElementSetKind = iota
	ElemShell
	ElemComposite
	ElemCircularSectionBeam
	ElemRectangularSectionBeam
	ElemISectionBeam
	ElemGenericSectionBeam
	ElemDiscretePoint
	ElemDiscreteSegment
	ElemNodalMass
	ElemStructuralSegment
	ElemStiffnessMatrix
	ElemMassMatrix
	ElemDampingMatrix
)

// expectedDim maps an ElementSetKind to the topological cell dimension it
// is compatible with, per spec.md §8 ("beam set -> dim-1 cells; shell set
// -> dim-2 cells; continuum -> dim-3 cells"). Variants with no fixed
// dimension (matrices, discretes, masses) are omitted and skip the check.
var expectedDim = map[ElementSetKind]int{
	ElemContinuum:              3,
	ElemShell:                  2,
	ElemComposite:              2,
	ElemCircularSectionBeam:    1,
	ElemRectangularSectionBeam: 1,
	ElemISectionBeam:           1,
	ElemGenericSectionBeam:     1,
}

// CompositeLayer is one ply of an ElemComposite set.
type CompositeLayer struct {
	MaterialRef Ref // -> RefMaterial
	Thickness   float64
	Angle       float64
}

// ElementSet assigns a property to a CellGroup, per spec.md §3.2. All
// fourteen variants share this one representation (fields gated by Kind)
// rather than fourteen Go types implementing a common interface, because
// the only two operations every ElementSet must support — "which cells
// does this apply to" and "which material (if any) does it use" — are
// identical field accesses across variants; only the writer-side
// serialisation branches on Kind.
type ElementSet struct {
	id          int
	OriginalID  int
	Kind        ElementSetKind
	CellGroup   Ref // -> RefCellGroup
	MaterialRef Ref // -> RefMaterial (zero value means "no material")

	// Continuum: no extra geometry.

	// Shell / Composite
	Thickness float64
	Layers    []CompositeLayer

	// CircularSectionBeam
	Radius float64

	// RectangularSectionBeam
	Width, Height float64

	// ISectionBeam
	FlangeWidth, FlangeThickness, WebHeight, WebThickness float64

	// GenericSectionBeam
	Area, Iyy, Izz, J float64

	// DiscretePoint (0D spring) / DiscreteSegment (1D spring)
	Stiffness float64

	// NodalMass
	Mass float64
	Ixx, Iyy2, Izz2 float64

	// StructuralSegment (PBUSH-like): stiffness per dof pair
	DofPairStiffness map[[2]DOF]float64

	// Stiffness/Mass/DampingMatrix: direct matrix by (row,col) dof-pair
	// per node pair, keyed the way a Nastran DMIG entry is keyed.
	DirectMatrix map[DirectMatrixKey]float64
}

// DirectMatrixKey addresses one entry of a direct stiffness/mass/damping
// matrix: the two node ids and the two dofs it couples.
type DirectMatrixKey struct {
	NodeA, NodeB int
	DofA, DofB   DOF
}

// NewElementSet builds an ElementSet of the given kind, bound to the
// given cell group.
func NewElementSet(id, originalID int, kind ElementSetKind, cellGroup Ref) *ElementSet {
	return &ElementSet{id: id, OriginalID: originalID, Kind: kind, CellGroup: cellGroup}
}

// RefID returns the element set's stable id.
func (e *ElementSet) RefID() int { return e.id }

// Ref returns a Ref pointing at this element set.
func (e *ElementSet) Ref() Ref { return Ref{Kind: RefElementSet, ID: e.id} }

// ExpectedCellDim returns the topological cell dimension this kind
// requires, and whether the kind imposes one at all.
func (e *ElementSet) ExpectedCellDim() (dim int, constrained bool) {
	dim, constrained = expectedDim[e.Kind]
	return
}
