// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package im

// AssertionKind is the closed set of Assertion variants, spec.md §3.4.
type AssertionKind int

const (
	AssertNodalDisplacement AssertionKind = iota
	AssertNodalComplexDisplacement
	AssertFrequency
)

// Assertion is a declarative check on a computed result, tied to an
// Analysis. All three variants share this representation; the writer
// branches on Kind to choose which solver-language test directive to
// emit (TEST_RESU, DTI, ASSERT...).
type Assertion struct {
	id   int
	Kind AssertionKind

	// NodalDisplacement(Complex)
	NodeID    int
	Dof       DOF
	Value     float64
	Tolerance float64
	Instant   *float64 // optional load-step/time instant
	LoadStep  *int

	// NodalComplexDisplacement adds:
	Frequency    float64
	ComplexValue complex128

	// FrequencyAssertion
	ModeIndex int
}

// NewNodalDisplacementAssertion builds a NodalDisplacementAssertion.
func NewNodalDisplacementAssertion(id, nodeID int, dof DOF, value, tolerance float64) *Assertion {
	return &Assertion{id: id, Kind: AssertNodalDisplacement, NodeID: nodeID, Dof: dof, Value: value, Tolerance: tolerance}
}

// NewNodalComplexDisplacementAssertion builds a NodalComplexDisplacementAssertion.
func NewNodalComplexDisplacementAssertion(id, nodeID int, dof DOF, frequency float64, value complex128, tolerance float64) *Assertion {
	return &Assertion{id: id, Kind: AssertNodalComplexDisplacement, NodeID: nodeID, Dof: dof, Frequency: frequency, ComplexValue: value, Tolerance: tolerance}
}

// NewFrequencyAssertion builds a FrequencyAssertion.
func NewFrequencyAssertion(id, modeIndex int, value, tolerance float64) *Assertion {
	return &Assertion{id: id, Kind: AssertFrequency, ModeIndex: modeIndex, Value: value, Tolerance: tolerance}
}

// RefID returns the assertion's stable id.
func (a *Assertion) RefID() int { return a.id }

// Ref returns a Ref pointing at this assertion.
func (a *Assertion) Ref() Ref { return Ref{Kind: RefAssertion, ID: a.id} }

// NamesNodeDof reports whether this assertion is tied to a specific
// (node, dof) pair and, if so, returns them — used by the
// removeIneffectiveAssertions finish() pass.
func (a *Assertion) NamesNodeDof() (nodeID int, dof DOF, ok bool) {
	switch a.Kind {
	case AssertNodalDisplacement, AssertNodalComplexDisplacement:
		return a.NodeID, a.Dof, true
	default:
		return 0, 0, false
	}
}
