// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package im

// AnalysisKind is the closed set of Analysis variants, spec.md §3.2.
type AnalysisKind int

const (
	AnalysisLinearMecaStat AnalysisKind = iota
	AnalysisNonLinearMecaStat
	AnalysisLinearModal
	AnalysisLinearDynaModalFreq
	AnalysisLinearDynaDirectFreq
)

// FrequencyBand bounds a modal search: [lower, upper] Hz and a max mode
// count.
type FrequencyBand struct {
	Lower, Upper float64
	MaxModes     int
}

// FrequencySearch selects the eigenvalue-search strategy (e.g. Lanczos
// with a band, or a fixed mode count), kept as a simple struct since the
// only two strategies recognised by the supported dialects (EIGR vs
// EIGRL-style) differ only in which of Band/NumModes is populated.
type FrequencySearch struct {
	Band     *FrequencyBand
	NumModes int
}

// FrequencyValues is an explicit, ordered list of excitation frequencies
// (Hz) for a dynamic-frequency analysis.
type FrequencyValues struct {
	Hz []float64
}

// ModalDamping carries a single modal damping ratio (or table reference)
// applied uniformly across modes.
type ModalDamping struct {
	Ratio      float64
	TableRef   Ref // -> RefValue, when damping is frequency-dependent
	HasTableRef bool
}

// NonLinearStrategy describes the increment strategy of a
// NonLinearMecaStat analysis.
type NonLinearStrategy struct {
	NumIncrements int
	MaxIterations int
	Tolerance     float64
}

// Analysis binds an ordered list of LoadSet/ConstraintSet references plus
// a list of Assertion references, and carries whichever auxiliary object
// its Kind needs. All five variants share this representation: the
// ordered activation lists and assertion list are identical across every
// kind, and the writer picks which auxiliary pointer to read from Kind.
type Analysis struct {
	id         int
	OriginalID int
	Kind       AnalysisKind

	LoadSetRefs       []Ref // -> RefLoadSet, in declaration order
	ConstraintSetRefs []Ref // -> RefConstraintSet, in declaration order
	AssertionRefs     []Ref // -> RefAssertion

	// NonLinearMecaStat
	Strategy *NonLinearStrategy
	PreviousAnalysisRef *Ref // -> RefAnalysis, for ramped continuation

	// LinearModal / LinearDynaModalFreq
	Search *FrequencySearch

	// LinearDynaModalFreq
	Damping      *ModalDamping
	ExcitationHz *FrequencyValues
	ResidualVector bool

	// LinearDynaDirectFreq
	DirectExcitationHz *FrequencyValues
}

// NewAnalysis builds an Analysis with no activations yet.
func NewAnalysis(id, originalID int, kind AnalysisKind) *Analysis {
	return &Analysis{id: id, OriginalID: originalID, Kind: kind}
}

// RefID returns the analysis's stable id.
func (a *Analysis) RefID() int { return a.id }

// Ref returns a Ref pointing at this analysis.
func (a *Analysis) Ref() Ref { return Ref{Kind: RefAnalysis, ID: a.id} }

// ActivateLoadSet appends a LoadSet reference, preserving declaration order.
func (a *Analysis) ActivateLoadSet(r Ref) { a.LoadSetRefs = append(a.LoadSetRefs, r) }

// ActivateConstraintSet appends a ConstraintSet reference, preserving
// declaration order.
func (a *Analysis) ActivateConstraintSet(r Ref) { a.ConstraintSetRefs = append(a.ConstraintSetRefs, r) }

// AddAssertion appends an Assertion reference.
func (a *Analysis) AddAssertion(r Ref) { a.AssertionRefs = append(a.AssertionRefs, r) }

// ReplaceConstraintSet swaps one ConstraintSet reference for another,
// used by remove_spc_node_dofs (spec.md §4.3) to attach a narrowed clone
// in place of the original.
func (a *Analysis) ReplaceConstraintSet(old, new Ref) bool {
	for i, r := range a.ConstraintSetRefs {
		if r == old {
			a.ConstraintSetRefs[i] = new
			return true
		}
	}
	return false
}
