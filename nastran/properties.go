// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nastran

import (
	"strings"

	"github.com/Alneos/vega-sub001/deck"
	"github.com/Alneos/vega-sub001/im"
)

// propertyDef is a PSHELL/PSOLID/PROD/PBAR/... definition recorded as it
// is read. The ElementSet it describes is only built by resolveProperties,
// once every cell referencing this PID has been seen: a Nastran deck may
// declare a property before or after the elements that use it.
type propertyDef struct {
	kind im.ElementSetKind
	mid  int

	thickness                                            float64
	radius                                                float64
	width, height                                         float64
	flangeWidth, flangeThickness, webHeight, webThickness float64
	area, iyy, izz, j                                     float64
	stiffness                                             float64
	dofPairStiffness                                      map[[2]im.DOF]float64
	initialOpening                                        float64
}

func init() {
	register("PSHELL", parsePSHELL)
	register("PSOLID", parsePSOLID)
	register("PROD", parsePROD)
	register("PBAR", parsePBAR)
	register("PBARL", parsePBARL)
	register("PBEAM", parsePBEAM)
	register("PBEAML", parsePBEAML)
	register("PBUSH", parsePBUSH)
	register("PGAP", parsePGAP)
}

// parsePSHELL reads PSHELL PID MID1 T MID2 ..., per NastranParser.cpp's
// parsePSHELL. Only the single-material, uniform-thickness case (the
// only one a shell ElementSet represents) is handled.
func parsePSHELL(p *Parser, tok *deck.Tokenizer) error {
	pid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	mid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	t, err := tok.NextDouble(true, 0)
	if err != nil {
		return err
	}
	p.properties[pid] = &propertyDef{kind: im.ElemShell, mid: mid, thickness: t}
	return nil
}

// parsePSOLID reads PSOLID PID MID CORDM IN STRESS ISOP FCTN; every
// field past MID only selects an integration scheme this translator does
// not distinguish between, so they are read and discarded.
func parsePSOLID(p *Parser, tok *deck.Tokenizer) error {
	pid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	mid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	p.properties[pid] = &propertyDef{kind: im.ElemContinuum, mid: mid}
	return nil
}

// parsePROD reads PROD PID MID A J C NSM into a GenericSectionBeam
// definition, per NastranParser.cpp's parsePROD.
func parsePROD(p *Parser, tok *deck.Tokenizer) error {
	pid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	mid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	a, err := tok.NextDouble(false)
	if err != nil {
		return err
	}
	j, err := tok.NextDouble(true, 0)
	if err != nil {
		return err
	}
	p.properties[pid] = &propertyDef{kind: im.ElemGenericSectionBeam, mid: mid, area: a, j: j}
	return nil
}

// parsePBAR reads PBAR PID MID A I1 I2 J ... into a GenericSectionBeam
// definition (I1 is Izz, I2 is Iyy), per NastranParser.cpp's parsePBAR.
// The shear/stress-recovery fields following J carry no ElementSet
// representation and are read and discarded.
func parsePBAR(p *Parser, tok *deck.Tokenizer) error {
	pid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	mid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	a, err := tok.NextDouble(false)
	if err != nil {
		return err
	}
	izz, err := tok.NextDouble(true, 0)
	if err != nil {
		return err
	}
	iyy, err := tok.NextDouble(true, 0)
	if err != nil {
		return err
	}
	j, err := tok.NextDouble(true, 0)
	if err != nil {
		return err
	}
	p.properties[pid] = &propertyDef{kind: im.ElemGenericSectionBeam, mid: mid, area: a, iyy: iyy, izz: izz, j: j}
	return nil
}

// parsePBARL reads PBARL PID MID GROUP TYPE ... DIM1 DIM2 ..., but only
// the ROD/BAR/TUBE section types this translator maps onto
// CircularSectionBeam/RectangularSectionBeam are supported.
func parsePBARL(p *Parser, tok *deck.Tokenizer) error {
	pid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	mid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	if _, err := tok.NextString(true); err != nil { // GROUP
		return err
	}
	kind, err := tok.NextString(true)
	if err != nil {
		return err
	}
	switch kind {
	case "ROD":
		r, err := tok.NextDouble(false)
		if err != nil {
			return err
		}
		p.properties[pid] = &propertyDef{kind: im.ElemCircularSectionBeam, mid: mid, radius: r}
	default: // BAR and every unhandled section approximate as rectangular
		w, err := tok.NextDouble(true, 0)
		if err != nil {
			return err
		}
		h, err := tok.NextDouble(true, 0)
		if err != nil {
			return err
		}
		p.properties[pid] = &propertyDef{kind: im.ElemRectangularSectionBeam, mid: mid, width: w, height: h}
	}
	return nil
}

// parsePBEAM reads PBEAM PID MID A I1(izz) I2(iyy) I12 J NSM C1 C2 ... into
// a GenericSectionBeam definition; only the first (uniform, single-
// section) property block is supported, per NastranParser.cpp's
// parsePBEAM.
func parsePBEAM(p *Parser, tok *deck.Tokenizer) error {
	pid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	mid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	a, err := tok.NextDouble(true, 0)
	if err != nil {
		return err
	}
	izz, err := tok.NextDouble(true, 0)
	if err != nil {
		return err
	}
	iyy, err := tok.NextDouble(true, 0)
	if err != nil {
		return err
	}
	if _, err := tok.NextDouble(true, 0); err != nil { // area product of inertia, unsupported
		return err
	}
	j, err := tok.NextDouble(true, 0)
	if err != nil {
		return err
	}
	p.properties[pid] = &propertyDef{kind: im.ElemGenericSectionBeam, mid: mid, area: a, iyy: iyy, izz: izz, j: j}
	return nil
}

// parsePBEAML reads PBEAML PID MID GROUP TYPE ... DIMi ... NSM, with
// only the BAR, ROD and I section types supported, per
// NastranParser.cpp's parsePBEAML.
func parsePBEAML(p *Parser, tok *deck.Tokenizer) error {
	pid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	mid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	if _, err := tok.NextString(true, "MSCBML0"); err != nil { // GROUP
		return err
	}
	kind, err := tok.NextString(false)
	if err != nil {
		return err
	}
	switch strings.TrimSpace(kind) {
	case "ROD":
		r, err := tok.NextDouble(false)
		if err != nil {
			return err
		}
		p.properties[pid] = &propertyDef{kind: im.ElemCircularSectionBeam, mid: mid, radius: r}
	case "I":
		// DIM1..DIM6 = height, lower flange width, upper flange width,
		// web thickness, lower flange thickness, upper flange thickness.
		// This package's I-section ElementSet is symmetric, so only the
		// upper-flange dimensions are kept.
		height, err := tok.NextDouble(false)
		if err != nil {
			return err
		}
		if _, err := tok.NextDouble(false); err != nil { // lower flange width, unused
			return err
		}
		flangeWidth, err := tok.NextDouble(false)
		if err != nil {
			return err
		}
		webThickness, err := tok.NextDouble(false)
		if err != nil {
			return err
		}
		if _, err := tok.NextDouble(false); err != nil { // lower flange thickness, unused
			return err
		}
		flangeThickness, err := tok.NextDouble(false)
		if err != nil {
			return err
		}
		p.properties[pid] = &propertyDef{
			kind:            im.ElemISectionBeam,
			mid:             mid,
			webHeight:       height,
			webThickness:    webThickness,
			flangeWidth:     flangeWidth,
			flangeThickness: flangeThickness,
		}
	default: // "BAR" and every unhandled section approximate as rectangular
		w, err := tok.NextDouble(true, 0)
		if err != nil {
			return err
		}
		h, err := tok.NextDouble(true, 0)
		if err != nil {
			return err
		}
		p.properties[pid] = &propertyDef{kind: im.ElemRectangularSectionBeam, mid: mid, width: w, height: h}
	}
	return nil
}

// parsePBUSH reads PBUSH PID K K1 K2 K3 K4 K5 K6 into a
// StructuralSegment (spring) definition: each Ki is the stiffness along
// one of the six dofs in order.
func parsePBUSH(p *Parser, tok *deck.Tokenizer) error {
	pid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	if _, err := tok.NextString(true); err != nil { // "K" marker
		return err
	}
	pairs := make(map[[2]im.DOF]float64, 6)
	for d := im.DX; d <= im.RZ; d++ {
		k, err := tok.NextDouble(true, 0)
		if err != nil {
			return err
		}
		if k != 0 {
			pairs[[2]im.DOF{d, d}] = k
		}
	}
	p.properties[pid] = &propertyDef{kind: im.ElemStructuralSegment, dofPairStiffness: pairs}
	return nil
}

// parsePGAP reads PGAP PID U0 F0 KA ..., keeping only the initial
// opening U0 and the normal stiffness KA this translator's Gap
// constraint / DiscretePoint pairing needs.
func parsePGAP(p *Parser, tok *deck.Tokenizer) error {
	pid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	u0, err := tok.NextDouble(true, 0)
	if err != nil {
		return err
	}
	if _, err := tok.NextDouble(true, 0); err != nil { // F0
		return err
	}
	ka, err := tok.NextDouble(true, 0)
	if err != nil {
		return err
	}
	p.properties[pid] = &propertyDef{kind: im.ElemDiscretePoint, stiffness: ka, initialOpening: u0}
	return nil
}

// resolveProperties builds one ElementSet per referenced PID, binding it
// to the cells collected during the bulk-section scan and to the
// material (if any) declared for its MID. A PID referenced by a cell but
// never itself declared degrades to a bare Continuum-kind group with no
// material, matching the bulk section's BestEffort/MeshAtLeast tolerance
// for out-of-order or missing bulk data.
func (p *Parser) resolveProperties() error {
	for pid, cellIDs := range p.cellsByProperty {
		def, ok := p.properties[pid]
		if !ok {
			def = &propertyDef{kind: im.ElemContinuum}
		}
		group, err := p.model.Mesh.CreateCellGroup("", pid, "")
		if err != nil {
			return err
		}
		for _, cid := range cellIDs {
			group.Add(cid)
		}
		es := im.NewElementSet(p.model.NextID(), pid, def.kind, im.Ref{Kind: im.RefCellGroup, ID: group.ID()})
		es.Thickness = def.thickness
		es.Radius = def.radius
		es.Width, es.Height = def.width, def.height
		es.FlangeWidth, es.FlangeThickness = def.flangeWidth, def.flangeThickness
		es.WebHeight, es.WebThickness = def.webHeight, def.webThickness
		es.Area, es.Iyy, es.Izz, es.J = def.area, def.iyy, def.izz, def.j
		es.Stiffness = def.stiffness
		es.DofPairStiffness = def.dofPairStiffness
		if mat, ok := p.materials[def.mid]; ok {
			es.MaterialRef = mat.Ref()
		}
		if err := p.model.AddElementSet(es); err != nil {
			return err
		}
	}
	for _, mat := range p.materials {
		if err := p.model.AddMaterial(mat); err != nil {
			return err
		}
	}
	return nil
}
