// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package systus

import (
	"math"

	"github.com/Alneos/vega-sub001/im"
	"github.com/Alneos/vega-sub001/mesh"
	"github.com/Alneos/vega-sub001/writerutil"
	"github.com/cpmech/gosl/io"
)

// systusOption picks the Systus "analysis type" discriminant
// (getSystusInformations): 3 (shell/beam, up to 6 dof/node) when the
// model carries any 1D/2D element, else 4 (volume-only, 3 dof/node).
func systusOption(model *im.Model) int {
	for _, es := range model.ElementSets() {
		if dim, ok := elementDim(es.Kind); ok && dim < 3 {
			return 3
		}
	}
	return 4
}

func dofsPerNode(option int) int {
	if option == 4 {
		return 3
	}
	return 6
}

// buildASC renders one analysis's mesh-and-properties ASC file, per
// SystusWriter::writeAsc's BEGIN_/END_ section sequence. Nodes, elements,
// groups and materials are model-wide (not analysis-specific); only the
// LOADS section varies per analysis, per fillLoads/writeLoads.
func buildASC(model *im.Model, a *im.Analysis, name string) *writerutil.Script {
	s := writerutil.New()
	option := systusOption(model)

	writeHeader(model, name, option, s)
	writeInformations(name, option, s)
	writeNodes(model, s)
	writeElements(model, s)
	writeGroups(model, s)
	writeMaterials(model, s)

	s.Raw("BEGIN_MEDIA 0")
	s.Raw("END_MEDIA")

	writeLoads(model, a, s)

	s.Raw("BEGIN_LISTS 0 0")
	s.Raw("END_LISTS")
	s.Raw("BEGIN_VECTORS 0")
	s.Raw("END_VECTORS")
	s.Raw("BEGIN_RELEASES 0")
	s.Raw("END_RELEASES")
	s.Raw("BEGIN_TABLES 0")
	s.Raw("END_TABLES")
	s.Raw("BEGIN_TEMPERATURES 0 11")
	s.Raw("END_TEMPERATURES")
	s.Raw("BEGIN_VELOCITIES 0 11")
	s.Raw("END_VELOCITIES")

	writeMasses(model, s)

	s.Raw("BEGIN_DAMPINGS 0")
	s.Raw("END_DAMPINGS")
	s.Raw("BEGIN_RELATIONS 0")
	s.Raw("END_RELATIONS")
	s.Raw("BEGIN_PULSATIONS 0")
	s.Raw("END_PULSATIONS")
	s.Raw("BEGIN_SECTIONS 0")
	s.Raw("END_SECTIONS")
	s.Raw("BEGIN_COMPOSITES 0")
	s.Raw("END_COMPOSITES")
	s.Raw("BEGIN_AFFECTATIONS 0")
	s.Raw("END_AFFECTATIONS")
	return s
}

func writeHeader(model *im.Model, name string, option int, s *writerutil.Script) {
	s.Raw("1VSD 0 121126 133214 121126 133214 ")
	s.Line("%s", truncate(name, 20))
	dof := dofsPerNode(option)
	maxNodes := maxCellArity(model)
	s.Line(" 100000 %d %d %d %d %d %d 0 0",
		option, len(model.Mesh.Nodes()), len(model.Mesh.Cells()), len(model.LoadSets()), dof, dof*maxNodes)
}

func maxCellArity(model *im.Model) int {
	max := 0
	for _, c := range model.Mesh.Cells() {
		if n := len(c.NodeIDs); n > max {
			max = n
		}
	}
	return max
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func writeInformations(name string, option int, s *writerutil.Script) {
	s.Raw("BEGIN_INFORMATIONS")
	s.Line("%s", truncate(name, 80))
	s.Line(" %d 0 0 1 0 0 0 0 0 0 0 1 0 0 0 0 0 0 0", option)
	dof := dofsPerNode(option)
	s.Line(" 0 0 0 0 0 0 0 0 0 0 %d %d %d 0 0 0 0 %d 0 0 0 0 12 0 0 0 0 0 3 0 0 0 0 0 0 0 2 2 0 0",
		dof, dof, dof*dof, dof*dof)
	s.Raw("END_INFORMATIONS")
}

func writeNodes(model *im.Model, s *writerutil.Script) {
	nodes := model.Mesh.Nodes()
	s.Line("BEGIN_NODES %d 3", len(nodes))
	for _, n := range nodes {
		s.Line("%d 0 0 0 0 0 %g %g %g", n.ID(), n.Position.X, n.Position.Y, n.Position.Z)
	}
	s.Raw("END_NODES")
}

// writeElements emits BEGIN_ELEMENTS, per writeElements: one line per
// cell belonging to a "real" (non-discrete, non-mass) ElementSet, using
// the element set's id as a stand-in material id, per the teacher's own
// "ugly fix" comment.
func writeElements(model *im.Model, s *writerutil.Script) {
	s.Line("BEGIN_ELEMENTS %d", len(model.Mesh.Cells()))
	for _, es := range model.ElementSets() {
		dim, ok := elementDim(es.Kind)
		if !ok {
			continue
		}
		group, ok := model.Mesh.FindGroup(es.CellGroup.ID)
		if !ok {
			continue
		}
		for _, cid := range group.Members() {
			cell, ok := model.Mesh.FindCell(cid)
			if !ok {
				continue
			}
			nodes := systusNodeOrder(cell.Type, cell.NodeIDs)
			s.Line("%d %d%02d %d 0 0%s", cell.ID(), dim, len(nodes), es.RefID(), nodeList(nodes))
		}
	}
	s.Raw("END_ELEMENTS")
}

func nodeList(ids []int) string {
	out := ""
	for _, id := range ids {
		out += io.Sf(" %d", id)
	}
	return out
}

// writeGroups emits BEGIN_GROUPS, per writeGroups: one line per
// CellGroup (skipping ones backing nodal-mass/virtual-discrete sets,
// which are not Systus elements) carrying a PART_ID derived by
// partIDAllocator, then one line per NodeGroup.
func writeGroups(model *im.Model, s *writerutil.Script) {
	skip := nonElementCellGroups(model)
	alloc := newPartIDAllocator()
	var lines []string
	for _, g := range model.Mesh.Groups() {
		if g.Kind != mesh.CellGroupKind || skip[g.ID()] {
			continue
		}
		partID := alloc.allocate(g.ResolvedName())
		lines = append(lines, io.Sf("%d %s 2 0 \"PART_ID %d\" \"\" \"part %s\"%s",
			len(lines)+1, g.ResolvedName(), partID, g.Comment, memberList(g.Members())))
	}
	for _, g := range model.Mesh.Groups() {
		if g.Kind != mesh.NodeGroupKind {
			continue
		}
		lines = append(lines, io.Sf("%d %s 1 0 \"No method\" \"\" \"No Comments\"%s",
			len(lines)+1, g.ResolvedName(), memberList(g.Members())))
	}
	s.Line("BEGIN_GROUPS %d", len(lines))
	for _, l := range lines {
		s.Raw(l)
	}
	s.Raw("END_GROUPS")
}

func memberList(ids []int) string {
	out := ""
	for _, id := range ids {
		out += io.Sf(" %d", id)
	}
	return out
}

// nonElementCellGroups returns the cell-group ids backing ElementSet
// kinds writeGroups's "don't write NODAL MASS / Orientation groups"
// carve-out maps onto here: discretes, masses, direct matrices.
func nonElementCellGroups(model *im.Model) map[int]bool {
	skip := make(map[int]bool)
	for _, es := range model.ElementSets() {
		if _, ok := elementDim(es.Kind); !ok {
			skip[es.CellGroup.ID] = true
		}
	}
	return skip
}

// writeMaterials emits BEGIN_MATERIALS, per writeMaterials: one line per
// ElementSet carrying a material, keyed "182 <elementSetId>" the way the
// teacher keys a Systus material to an ElementSet rather than an im
// Material, then rho/E/nu and a kind-specific geometric field (beam
// area, shell thickness).
func writeMaterials(model *im.Model, s *writerutil.Script) {
	var lines []string
	for _, es := range model.ElementSets() {
		if es.MaterialRef.IsZero() {
			continue
		}
		mat, ok := model.FindMaterial(es.MaterialRef.ID)
		if !ok {
			continue
		}
		nat := firstElasticNature(mat)
		if nat == nil {
			continue
		}
		line := io.Sf("%d 0 182 %d", es.RefID(), es.RefID())
		if nat.Rho > 0 {
			line += io.Sf(" 4 %g", nat.Rho)
		}
		if nat.E > 0 {
			line += io.Sf(" 5 %g", nat.E)
		}
		if nat.Nu > 0 {
			line += io.Sf(" 6 %g", nat.Nu)
		}
		switch es.Kind {
		case im.ElemGenericSectionBeam:
			line += io.Sf(" 11 %g 14 %g 15 %g 16 %g", es.Area, es.J, es.Iyy, es.Izz)
		case im.ElemCircularSectionBeam, im.ElemRectangularSectionBeam, im.ElemISectionBeam:
			area, _, _, _ := beamSectionSystus(es)
			line += io.Sf(" 11 %g", area)
		case im.ElemShell, im.ElemComposite:
			line += io.Sf(" 21 %g", es.Thickness)
		}
		lines = append(lines, line)
	}
	s.Line("BEGIN_MATERIALS %d 0", len(lines))
	for _, l := range lines {
		s.Raw(l)
	}
	s.Raw("END_MATERIALS")
}

// writeMasses emits BEGIN_MASSES, per writeMasses: one VALUES line per
// NodalMass ElementSet, listing its translational (and, if any rotary
// inertia is set, rotational) masses followed by the nodes it is pinned
// to.
func writeMasses(model *im.Model, s *writerutil.Script) {
	var lines []string
	for _, es := range model.ElementSets() {
		if es.Kind != im.ElemNodalMass {
			continue
		}
		group, ok := model.Mesh.FindGroup(es.CellGroup.ID)
		if !ok {
			continue
		}
		line := ""
		if es.Ixx != 0 || es.Iyy2 != 0 || es.Izz2 != 0 {
			line = io.Sf("VALUES 6 %g %g %g %g %g %g", es.Mass, es.Mass, es.Mass, es.Ixx, es.Iyy2, es.Izz2)
		} else {
			line = io.Sf("VALUES 3 %g %g %g", es.Mass, es.Mass, es.Mass)
		}
		for _, cid := range group.Members() {
			if cell, ok := model.Mesh.FindCell(cid); ok && len(cell.NodeIDs) > 0 {
				line += io.Sf(" %d", cell.NodeIDs[0])
			}
		}
		lines = append(lines, line)
	}
	s.Line("BEGIN_MASSES %d", len(lines))
	for _, l := range lines {
		s.Raw(l)
	}
	s.Raw("END_MASSES")
}

func firstElasticNature(mat *im.Material) *im.Nature {
	for i := range mat.Natures {
		if mat.Natures[i].Kind == im.NatureElastic || mat.Natures[i].Kind == im.NatureBilinearElastic {
			return &mat.Natures[i]
		}
	}
	return nil
}

// writeLoads emits BEGIN_LOADS, per writeLoads: one entry per LoadSet
// the analysis activates, named "LOADSET_<id>", followed by a plain-text
// translation of each of its loadings (NODE n / FX.. for nodal forces,
// blank NODE / GX.. for gravity, per writeLoad(LoadSet,...)) and of the
// SPC constraints in its activated ConstraintSets (writeLoad(ConstraintSet,...)).
func writeLoads(model *im.Model, a *im.Analysis, s *writerutil.Script) {
	var loadsets []*im.LoadSet
	for _, r := range a.LoadSetRefs {
		if ls, ok := model.FindLoadSet(r.ID); ok {
			loadsets = append(loadsets, ls)
		}
	}
	s.Line("BEGIN_LOADS %d", len(loadsets))
	for i, ls := range loadsets {
		s.Line("%d \"LOADSET_%d\" 0 0 0 0 0 0 0 7", i+1, ls.RefID())
	}
	s.Raw("END_LOADS")

	for _, ls := range loadsets {
		for _, r := range ls.LoadingRefs {
			l, ok := model.FindLoading(r.ID)
			if !ok {
				continue
			}
			writeLoadingLine(l, s)
		}
	}
	common := model.GetCommonConstraintSets()
	writeConstraintSetLoadLines(model, common, s)
	for _, r := range a.ConstraintSetRefs {
		if r.ID == common.RefID() {
			continue
		}
		if cs, ok := model.FindConstraintSet(r.ID); ok {
			writeConstraintSetLoadLines(model, cs, s)
		}
	}
}

func writeLoadingLine(l *im.Loading, s *writerutil.Script) {
	switch l.Kind {
	case im.LoadNodalForce, im.LoadNodalForceTwoNodes:
		line := io.Sf(" NODE %d /", l.NodeID)
		line += nonZeroField("FX", l.Force.X)
		line += nonZeroField("FY", l.Force.Y)
		line += nonZeroField("FZ", l.Force.Z)
		line += nonZeroField("CX", l.Moment.X)
		line += nonZeroField("CY", l.Moment.Y)
		line += nonZeroField("CZ", l.Moment.Z)
		s.Raw(line)
	case im.LoadGravity:
		line := "  /"
		line += nonZeroField("GX", l.Gravity.X)
		line += nonZeroField("GY", l.Gravity.Y)
		line += nonZeroField("GZ", l.Gravity.Z)
		s.Raw(line)
	case im.LoadRotation:
		s.Line("  / CENT %g PNT1 %g %g %g PNT2 %g %g %g",
			l.Omega*l.Omega, l.Center.X, l.Center.Y, l.Center.Z,
			l.Center.X+l.Axis.X, l.Center.Y+l.Axis.Y, l.Center.Z+l.Axis.Z)
	}
}

func nonZeroField(name string, v float64) string {
	if v == 0 {
		return ""
	}
	return io.Sf(" %s %g", name, v)
}

// beamSectionSystus computes a circular/rectangular beam's equivalent
// cross-section area for the "11 <area>" material field, the same
// reduction aster.beamSection applies (a beam set carries no dedicated
// AreaCrossSection field here, only radius/width/height).
func beamSectionSystus(es *im.ElementSet) (area, iyy, izz, j float64) {
	switch es.Kind {
	case im.ElemCircularSectionBeam:
		r := es.Radius
		area = math.Pi * r * r
		iyy = math.Pi * r * r * r * r / 4
		izz = iyy
		j = 2 * iyy
	default: // RectangularSectionBeam, ISectionBeam
		w, h := es.Width, es.Height
		area = w * h
		iyy = w * h * h * h / 12
		izz = h * w * w * w / 12
		j = math.Min(iyy, izz)
	}
	return
}

// writeConstraintSetLoadLines renders each SPC in cs as one " NODE n /
// UX v UY v ..." line, per writeLoad(ConstraintSet,...). Every other
// constraint kind has already been cellified into an ElementSet by the
// finish() passes DefaultsFor(TargetSystus) enables, so only SPC ever
// reaches the writer.
func writeConstraintSetLoadLines(model *im.Model, cs *im.ConstraintSet, s *writerutil.Script) {
	if cs == nil {
		return
	}
	for _, r := range cs.ConstraintRefs {
		c, ok := model.FindConstraint(r.ID)
		if !ok || c.Kind != im.ConstraintSPC {
			continue
		}
		line := io.Sf(" NODE %d /", c.NodeID)
		for i := 0; i < 6; i++ {
			d := im.DOF(i)
			if c.Dofs.Has(d) {
				line += io.Sf(" %s %g", dofAscName(d), c.Values.Get(d))
			}
		}
		s.Raw(line)
	}
}
