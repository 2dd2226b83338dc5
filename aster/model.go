// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package aster implements the Aster-family writer, per SPEC_FULL.md
// §4.6: a .comm command script (Code_Aster's macro-command language),
// an .export job-control file, and the mesh itself via mesh.WriteMED.
// Grounded on original_source/Aster/AsterWriter.cpp/.h and
// AsterModel.cpp/.h.
package aster

import (
	"math"

	"github.com/Alneos/vega-sub001/im"
)

// Config carries the per-run knobs AsterModel.cpp derives from the
// model and the CLI (getMemjeveux/getTpmax/getAsterVersion): resource
// sizing the writer can compute without any solver having run yet, and
// the version tag passed through from --solver-version.
type Config struct {
	SolverVersion string
	Memjeveux     float64
	Tpmax         float64
}

// NewConfig derives memjeveux/tpmax from model's size the way
// AsterModel::getMemjeveux/getTpmax do (a node-count-proportional
// estimate, clamped to a sane range), and falls back to "STABLE" when
// no version was passed through, per AsterModel::getAsterVersion.
func NewConfig(model *im.Model, solverVersion string) Config {
	version := solverVersion
	if version == "" {
		version = "STABLE"
	}
	nodes := float64(len(model.Mesh.Nodes()))
	mem := 2048.0 * nodes / 300000.0
	mem = math.Max(128.0, mem)
	mem = math.Min(12000.0, mem)
	tpmax := 3600.0 * nodes / 300000.0
	analyses := len(model.Analyses())
	if analyses < 1 {
		analyses = 1
	}
	tpmax = math.Max(360.0, tpmax) * float64(analyses)
	return Config{SolverVersion: version, Memjeveux: mem, Tpmax: tpmax}
}

// modelisation picks AFFE_MODELE's MODELISATION tuple for an element
// set's kind, per AsterModel::getModelisations. The original also
// splits beams into POU_D_T / POU_D_T_GD by a model-wide
// LARGE_DISPLACEMENTS parameter; this package's im.Model carries no
// model-wide parameter bag (NonLinearStrategy has no such flag
// either), so the beam branch always resolves to the small-displacement
// form — documented as a dropped nuance rather than invented state.
func modelisation(es *im.ElementSet) string {
	switch es.Kind {
	case im.ElemContinuum:
		return "('3D',)"
	case im.ElemShell, im.ElemComposite:
		return "('DKT',)"
	case im.ElemCircularSectionBeam, im.ElemRectangularSectionBeam, im.ElemISectionBeam, im.ElemGenericSectionBeam:
		return "('POU_D_T',)"
	case im.ElemDiscretePoint, im.ElemDiscreteSegment:
		return "('DIS_TR',)"
	case im.ElemNodalMass:
		return "('DIS_TR',)"
	default:
		return ""
	}
}

// phenomene is always MECANIQUE: AsterModel.phenomene is set once in
// its constructor and never varied across this teacher's supported
// analyses.
const phenomene = "MECANIQUE"
