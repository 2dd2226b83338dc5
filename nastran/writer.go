// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nastran

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Alneos/vega-sub001/config"
	"github.com/Alneos/vega-sub001/deck"
	"github.com/Alneos/vega-sub001/geom"
	"github.com/Alneos/vega-sub001/im"
	"github.com/Alneos/vega-sub001/mesh"
)

// Write emits model as a Nastran-family deck (stem.dat) under outDir, per
// spec.md §4.6. era picks between the strict 1995-era dialect and a
// modern one: 1995 decks open with an "ID" restart-identification card
// COSMIC Nastran required before Executive Control; the modern dialect
// drops it and instead appends a "PARAM,POST,-1" bulk card, per
// NastranWriter.h's COSMIC95/MODERN Dialect split.
func Write(model *im.Model, outDir, stem string, era config.NastranDialectEra) (string, error) {
	var out []string
	if era == config.Nastran1995 {
		out = append(out, "ID VEGA,"+model.Name)
	}
	out = append(out, writeSOL(model)...)
	out = append(out, "TIME 10000")
	out = append(out, writeCaseControl(model)...)
	out = append(out, "CEND")
	out = append(out, "$", "TITLE=Vega Exported Model", "BEGIN BULK")
	out = append(out, writeNodes(model)...)
	out = append(out, writeCells(model)...)
	out = append(out, writeProperties(model)...)
	out = append(out, writeMaterials(model)...)
	out = append(out, writeConstraints(model)...)
	out = append(out, writeLoadings(model)...)
	out = append(out, writeAnalyses(model)...)
	if era == config.NastranModern {
		out = append(out, "PARAM,POST,-1")
	}
	out = append(out, "ENDDATA")

	path := filepath.Join(outDir, stem+".dat")
	f, err := os.Create(path)
	if err != nil {
		return "", config.NewIOError("create", path, err)
	}
	defer f.Close()
	for _, line := range out {
		if _, err := fmt.Fprintln(f, line); err != nil {
			return "", config.NewIOError("write", path, err)
		}
	}
	return path, nil
}

// writeSOL picks the solution sequence off the first analysis, per
// NastranWriter.cpp's writeSOL.
func writeSOL(model *im.Model) []string {
	analyses := model.Analyses()
	if len(analyses) == 0 {
		return nil
	}
	switch analyses[0].Kind {
	case im.AnalysisLinearMecaStat:
		return []string{"SOL 101"}
	case im.AnalysisLinearModal:
		return []string{"SOL 103"}
	case im.AnalysisNonLinearMecaStat:
		return []string{"SOL 106"}
	case im.AnalysisLinearDynaModalFreq, im.AnalysisLinearDynaDirectFreq:
		return []string{"SOL 111"}
	default:
		return []string{fmt.Sprintf("$ WARN analysis %d not supported. Skipping.", analyses[0].RefID())}
	}
}

func setTagName(tag im.SetTypeTag) string {
	switch tag {
	case im.TagLOAD:
		return "LOAD"
	case im.TagDLOAD:
		return "DLOAD"
	case im.TagEXCITEID:
		return "EXCITEID"
	case im.TagSPC:
		return "SPC"
	case im.TagSPCD:
		return "SPCD"
	case im.TagMPC:
		return "MPC"
	case im.TagCONTACT:
		return "CONTACT"
	default:
		return "LOAD"
	}
}

// writeCaseControl emits one SUBCASE block per analysis, selecting its
// activated load/constraint sets by original id, per NastranWriter.cpp's
// writeModel Case Control loop.
func writeCaseControl(model *im.Model) []string {
	var out []string
	for _, a := range model.Analyses() {
		out = append(out, fmt.Sprintf("SUBCASE %d", a.OriginalID))
		for _, r := range a.LoadSetRefs {
			if ls, ok := model.FindLoadSet(r.ID); ok {
				out = append(out, fmt.Sprintf("  %s=%d", setTagName(ls.Type), ls.OriginalID))
			}
		}
		for _, r := range a.ConstraintSetRefs {
			if cs, ok := model.FindConstraintSet(r.ID); ok {
				out = append(out, fmt.Sprintf("  %s=%d", setTagName(cs.Type), cs.OriginalID))
			}
		}
		if a.Search != nil {
			out = append(out, fmt.Sprintf("  METHOD=%d", a.OriginalID))
		}
		if a.ExcitationHz != nil || a.DirectExcitationHz != nil {
			out = append(out, fmt.Sprintf("  FREQ=%d", a.OriginalID))
		}
		if a.Strategy != nil {
			out = append(out, fmt.Sprintf("  NLPARM=%d", a.OriginalID))
		}
	}
	return out
}

func writeNodes(model *im.Model) []string {
	var out []string
	for _, n := range model.Mesh.Nodes() {
		if n.PositionCS != mesh.GlobalCS || n.DisplacementCS != mesh.GlobalCS {
			out = append(out, fmt.Sprintf("$ WARN GRID %d: CP/CD not supported, dismissed.", n.ID()))
		}
		line := deck.NewLine("GRID", false).
			PutInt(n.ID()).PutBlank().
			PutDouble(n.Position.X).PutDouble(n.Position.Y).PutDouble(n.Position.Z)
		out = append(out, line.Render()...)
	}
	return out
}

// cellKeyword picks the Nastran cell card for an ElementSet's kind and
// one of its member cell's geometric type, per NastranWriter.cpp's
// writeCells.
func cellKeyword(kind im.ElementSetKind, ct geom.CellType) (string, bool) {
	switch kind {
	case im.ElemCircularSectionBeam, im.ElemRectangularSectionBeam, im.ElemISectionBeam, im.ElemGenericSectionBeam:
		return "CBEAM", true
	case im.ElemShell, im.ElemComposite:
		switch ct {
		case geom.Tri3:
			return "CTRIA3", true
		case geom.Tri6:
			return "CTRIA6", true
		case geom.Quad4:
			return "CQUAD4", true
		case geom.Quad8:
			return "CQUAD8", true
		default:
			return "CQUAD", true
		}
	case im.ElemContinuum:
		switch ct {
		case geom.Tetra4, geom.Tetra10:
			return "CTETRA", true
		case geom.Penta6, geom.Penta15:
			return "CPENTA", true
		case geom.Pyra5, geom.Pyra13:
			return "CPYRAM", true
		case geom.Hexa8, geom.Hexa20:
			return "CHEXA", true
		}
	}
	return "", false
}

func writeCells(model *im.Model) []string {
	var out []string
	for _, es := range model.ElementSets() {
		group, ok := model.Mesh.FindGroup(es.CellGroup.ID)
		if !ok {
			continue
		}
		for _, cid := range group.Members() {
			cell, ok := model.Mesh.FindCell(cid)
			if !ok {
				continue
			}
			keyword, ok := cellKeyword(es.Kind, cell.Type)
			if !ok {
				out = append(out, fmt.Sprintf("$ WARN element set %d: kind %d has no Nastran cell card.", es.RefID(), es.Kind))
				break
			}
			line := deck.NewLine(keyword, false).PutInt(cell.ID()).PutInt(es.OriginalID)
			for _, nid := range cell.NodeIDs {
				line.PutInt(nid)
			}
			out = append(out, line.Render()...)
		}
	}
	return out
}

func writeProperties(model *im.Model) []string {
	var out []string
	for _, es := range model.ElementSets() {
		mid := 0
		if mat, ok := model.FindMaterial(es.MaterialRef.ID); ok {
			mid = mat.OriginalID
		}
		switch es.Kind {
		case im.ElemCircularSectionBeam, im.ElemRectangularSectionBeam, im.ElemISectionBeam, im.ElemGenericSectionBeam:
			line := deck.NewLine("PBEAM", false).
				PutInt(es.OriginalID).PutInt(mid).
				PutDouble(es.Area).PutDouble(es.Izz).PutDouble(es.Iyy).
				PutDouble(0).PutDouble(es.J)
			out = append(out, line.Render()...)
		case im.ElemShell, im.ElemComposite:
			line := deck.NewLine("PSHELL", false).PutInt(es.OriginalID).PutInt(mid).PutDouble(es.Thickness)
			out = append(out, line.Render()...)
		case im.ElemContinuum:
			line := deck.NewLine("PSOLID", false).PutInt(es.OriginalID).PutInt(mid)
			out = append(out, line.Render()...)
		}
	}
	return out
}

func writeMaterials(model *im.Model) []string {
	var out []string
	for _, mat := range model.Materials() {
		var elastic *im.Nature
		for i := range mat.Natures {
			if mat.Natures[i].Kind == im.NatureElastic {
				elastic = &mat.Natures[i]
				break
			}
		}
		if elastic == nil {
			out = append(out, fmt.Sprintf("$ WARN material %d has no elastic nature, skipped.", mat.OriginalID))
			continue
		}
		line := deck.NewLine("MAT1", false).
			PutInt(mat.OriginalID).
			PutDouble(elastic.E).PutDouble(elastic.G).PutDouble(elastic.Nu).PutDouble(elastic.Rho)
		out = append(out, line.Render()...)
	}
	return out
}

func writeConstraints(model *im.Model) []string {
	var out []string
	for _, cs := range model.ConstraintSets() {
		for _, r := range cs.ConstraintRefs {
			c, ok := model.FindConstraint(r.ID)
			if !ok {
				continue
			}
			switch c.Kind {
			case im.ConstraintSPC:
				line := deck.NewLine("SPC1", false).
					PutInt(cs.OriginalID).PutString(c.Dofs.ToNastran()).PutInt(c.NodeID)
				out = append(out, line.Render()...)
			case im.ConstraintRigid:
				line := deck.NewLine("RBE2", false).PutInt(c.RefID()).PutInt(c.MasterNodeID).PutString(im.ALL_DOFS.ToNastran())
				for _, s := range c.SlaveNodeIDs {
					line.PutInt(s)
				}
				out = append(out, line.Render()...)
			case im.ConstraintQuasiRigid:
				line := deck.NewLine("RBE2", false).PutInt(c.RefID()).PutInt(c.MasterNodeID).PutString(c.RigidDofs.ToNastran())
				for _, s := range c.SlaveNodeIDs {
					line.PutInt(s)
				}
				out = append(out, line.Render()...)
			default:
				out = append(out, fmt.Sprintf("$ WARN constraint %d (kind %d) has no Nastran-family card.", c.RefID(), c.Kind))
			}
		}
	}
	return out
}

func writeLoadings(model *im.Model) []string {
	var out []string
	for _, ls := range model.LoadSets() {
		for _, r := range ls.LoadingRefs {
			l, ok := model.FindLoading(r.ID)
			if !ok {
				continue
			}
			switch l.Kind {
			case im.LoadNodalForce:
				line := deck.NewLine("FORCE", false).
					PutInt(ls.OriginalID).PutInt(l.NodeID).PutInt(0).PutDouble(1).
					PutDouble(l.Force.X).PutDouble(l.Force.Y).PutDouble(l.Force.Z)
				out = append(out, line.Render()...)
				if l.Moment != (geom.Vec3{}) {
					mline := deck.NewLine("MOMENT", false).
						PutInt(ls.OriginalID).PutInt(l.NodeID).PutInt(0).PutDouble(1).
						PutDouble(l.Moment.X).PutDouble(l.Moment.Y).PutDouble(l.Moment.Z)
					out = append(out, mline.Render()...)
				}
			case im.LoadGravity:
				line := deck.NewLine("GRAV", false).
					PutInt(ls.OriginalID).PutInt(0).PutDouble(l.Gravity.Norm()).
					PutDouble(l.Gravity.X).PutDouble(l.Gravity.Y).PutDouble(l.Gravity.Z)
				out = append(out, line.Render()...)
			case im.LoadNormalPressionFace:
				line := deck.NewLine("PLOAD4", false).
					PutInt(ls.OriginalID).PutInt(l.CellID).
					PutDouble(l.Pressure).PutDouble(l.Pressure).PutDouble(l.Pressure).PutDouble(l.Pressure)
				out = append(out, line.Render()...)
			case im.LoadForceSurface:
				norm := l.Force.Norm()
				dir := l.Force
				if norm != 0 {
					dir = l.Force.Scale(1 / norm)
				}
				line := deck.NewLine("PLOAD4", false).
					PutInt(ls.OriginalID).PutInt(l.CellID).
					PutDouble(norm).PutDouble(0).PutDouble(0).PutDouble(0).
					PutBlank().PutBlank().PutInt(0).
					PutDouble(dir.X).PutDouble(dir.Y).PutDouble(dir.Z)
				out = append(out, line.Render()...)
			default:
				out = append(out, fmt.Sprintf("$ WARN loading %d (kind %d) has no Nastran-family card.", l.RefID(), l.Kind))
			}
		}
	}
	return out
}

// writeAnalyses re-emits the bulk cards an analysis' auxiliary data
// needs, keyed by the analysis' own original id (matching the METHOD=/
// FREQ=/NLPARM= Case Control keys writeCaseControl emits).
func writeAnalyses(model *im.Model) []string {
	var out []string
	for _, a := range model.Analyses() {
		if a.Search != nil && a.Search.Band != nil {
			line := deck.NewLine("EIGRL", false).
				PutInt(a.OriginalID).PutDouble(a.Search.Band.Lower).PutDouble(a.Search.Band.Upper).PutInt(a.Search.Band.MaxModes)
			out = append(out, line.Render()...)
		}
		values := a.ExcitationHz
		if values == nil {
			values = a.DirectExcitationHz
		}
		if values != nil && len(values.Hz) >= 2 {
			step := values.Hz[1] - values.Hz[0]
			line := deck.NewLine("FREQ1", false).
				PutInt(a.OriginalID).PutDouble(values.Hz[0]).PutDouble(step).PutInt(len(values.Hz) - 1)
			out = append(out, line.Render()...)
		}
		if a.Strategy != nil {
			line := deck.NewLine("NLPARM", false).PutInt(a.OriginalID).PutInt(a.Strategy.NumIncrements)
			out = append(out, line.Render()...)
		}
	}
	return out
}
