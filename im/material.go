// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package im

import "github.com/cpmech/gosl/chk"

// NatureKind is the closed set of Material Nature variants, spec.md §3.2.
type NatureKind int

const (
	NatureElastic NatureKind = iota
	NatureBilinearElastic
	NatureNonLinearElastic
)

// HardeningRule selects the hardening law of a BilinearElastic nature.
type HardeningRule int

const (
	HardeningIsotropic HardeningRule = iota
	HardeningKinematic
)

// Nature is one physical behaviour attached to a Material. The three
// variants share this representation (fields gated by Kind) for the same
// reason CoordinateSystem does: every variant is consumed identically by
// writers (each just emits the fields relevant to its Kind), so a closed
// sum expressed as one gated struct avoids an interface plus three nearly
// empty wrapper types.
type Nature struct {
	Kind NatureKind

	// Elastic / shared by BilinearElastic
	E, Nu, G, Rho, Alpha, Tref, GE float64

	// BilinearElastic
	ElasticLimit  float64
	SecondarySlope float64
	Hardening      HardeningRule
	YieldFunction  string

	// NonLinearElastic
	TableRef Ref // -> RefValue
}

// NewElasticNature builds an isotropic-elastic nature.
func NewElasticNature(e, nu, g, rho, alpha, tref, ge float64) Nature {
	return Nature{Kind: NatureElastic, E: e, Nu: nu, G: g, Rho: rho, Alpha: alpha, Tref: tref, GE: ge}
}

// NewBilinearElasticNature builds a bilinear-elastic nature.
func NewBilinearElasticNature(e, nu, rho, elasticLimit, secondarySlope float64, hardening HardeningRule, yieldFn string) Nature {
	return Nature{Kind: NatureBilinearElastic, E: e, Nu: nu, Rho: rho, ElasticLimit: elasticLimit, SecondarySlope: secondarySlope, Hardening: hardening, YieldFunction: yieldFn}
}

// NewNonLinearElasticNature builds a nonlinear-elastic nature referencing
// a table of stress/strain (or similar) pairs.
func NewNonLinearElasticNature(tableRef Ref) Nature {
	return Nature{Kind: NatureNonLinearElastic, TableRef: tableRef}
}

// CellContainer is a union of cell groups and explicit cell ids, used to
// bind a Material or ElementSet to the cells it applies to (spec.md §3.2).
type CellContainer struct {
	CellGroupRefs []Ref // -> RefCellGroup
	CellIDs       []int
}

// Material is identity plus a list of Natures, bound to cells via a
// CellContainer.
type Material struct {
	id         int
	OriginalID int
	Name       string
	Natures    []Nature
	Cells      CellContainer
}

// NewMaterial builds a Material with no natures assigned yet.
func NewMaterial(id, originalID int, name string) *Material {
	return &Material{id: id, OriginalID: originalID, Name: name}
}

// RefID returns the material's stable id.
func (m *Material) RefID() int { return m.id }

// AddNature appends a nature to the material.
func (m *Material) AddNature(n Nature) { m.Natures = append(m.Natures, n) }

// Ref returns a Ref pointing at this material.
func (m *Material) Ref() Ref { return Ref{Kind: RefMaterial, ID: m.id} }

// validateNatures reports an error when a material has no natures
// assigned. No pass of Finish or Validate calls it.
func (m *Material) validateNatures() error {
	if len(m.Natures) == 0 {
		return chk.Err("material %q (id=%d) has no natures assigned", m.Name, m.id)
	}
	return nil
}
