// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aster

import (
	"math"

	"github.com/Alneos/vega-sub001/im"
	"github.com/Alneos/vega-sub001/writerutil"
	"github.com/cpmech/gosl/io"
)

// materialName/elementSetName/loadSetName/constraintSetName/analysisName
// give every Aster command-result variable a stable, id-derived name,
// the way AsterWriter.cpp's writeMaterials/writeAffeCharMeca/writeAnalysis
// build names like "M1", "CH2", "BL3", "RESU4" from original ids.
func materialName(mat *im.Material) string        { return io.Sf("M%d", mat.OriginalID) }
func loadSetName(ls *im.LoadSet) string            { return io.Sf("CH%d", ls.OriginalID) }
func constraintSetName(cs *im.ConstraintSet) string { return io.Sf("BL%d", cs.OriginalID) }
func gapContactName(a *im.Analysis) string          { return io.Sf("CONTACT%d", a.OriginalID) }

// buildComm assembles the full .comm script, per AsterWriter::writeComm's
// DEBUT -> LIRE_MAILLAGE -> AFFE_MODELE -> materials -> AFFE_CARA_ELEM ->
// AFFE_CHAR_MECA -> DEFI_CONTACT -> per-analysis solve -> IMPR_RESU -> FIN
// sequence.
func buildComm(model *im.Model) *writerutil.Script {
	s := writerutil.New()
	s.Raw("DEBUT(PAR_LOT='NON')")
	s.Blank()

	writeLireMaillage(s)
	writeAffeModele(model, s)
	writeMaterials(model, s)
	writeAffeCaraElem(model, s)
	writeAffeCharMeca(model, s)
	writeDefiContact(model, s)
	writeAnalyses(model, s)
	writeImprResultats(model, s)

	s.Raw("FIN()")
	return s
}

func writeLireMaillage(s *writerutil.Script) {
	s.Raw("MAIL=LIRE_MAILLAGE(FORMAT='MED',")
	s.Raw("                   VERI_MAIL=_F(VERIF='NON',),)")
	s.Blank()
}

// writeAffeModele emits one _F(...) per ElementSet, GROUP_MA-selecting
// its cell group and PHENOMENE/MODELISATION chosen by its Kind, per
// AsterModel::getModelisations.
func writeAffeModele(model *im.Model, s *writerutil.Script) {
	s.Raw("MODMECA=AFFE_MODELE(MAILLAGE=MAIL,")
	s.Raw("                    AFFE=(")
	for _, es := range model.ElementSets() {
		group, ok := model.Mesh.FindGroup(es.CellGroup.ID)
		if !ok {
			continue
		}
		modelis := modelisation(es)
		if modelis == "" {
			s.Comment("#", io.Sf("WARN element set %d: kind %d has no Aster modelisation.", es.RefID(), es.Kind))
			continue
		}
		s.Line("                          _F(GROUP_MA='%s', PHENOMENE='%s', MODELISATION=%s,),",
			group.ResolvedName(), phenomene, modelis)
	}
	s.Raw("                          ),)")
	s.Blank()
}

// writeMaterials emits one DEFI_MATERIAU per Material (its first Elastic
// nature, plus an ECRO_LINE block when a BilinearElastic nature is also
// present, per AsterWriter::writeMaterials), then a single CHMAT=
// AFFE_MATERIAU binding every material to its cells.
func writeMaterials(model *im.Model, s *writerutil.Script) {
	mats := model.Materials()
	for _, mat := range mats {
		var elastic, bilinear *im.Nature
		for i := range mat.Natures {
			switch mat.Natures[i].Kind {
			case im.NatureElastic:
				if elastic == nil {
					elastic = &mat.Natures[i]
				}
			case im.NatureBilinearElastic:
				if bilinear == nil {
					bilinear = &mat.Natures[i]
				}
			}
		}
		if elastic == nil && bilinear == nil {
			s.Comment("#", io.Sf("WARN material %d has no elastic nature, skipped.", mat.OriginalID))
			continue
		}
		e, nu, rho := 0.0, 0.0, 0.0
		if elastic != nil {
			e, nu, rho = elastic.E, elastic.Nu, elastic.Rho
		} else {
			e, nu, rho = bilinear.E, bilinear.Nu, bilinear.Rho
		}
		s.Line("%s=DEFI_MATERIAU(ELAS=_F(E=%g, NU=%g, RHO=%g,),", materialName(mat), e, nu, rho)
		if bilinear != nil {
			s.Line("                ECRO_LINE=_F(D_SIGM_EPSI=%g, SY=%g,),", bilinear.SecondarySlope, bilinear.ElasticLimit)
		}
		s.Raw("                )")
	}
	s.Blank()

	s.Raw("CHMAT=AFFE_MATERIAU(MAILLAGE=MAIL,")
	s.Raw("                    AFFE=(")
	for _, mat := range mats {
		target := cellContainerTarget(model, mat.Cells)
		if target == "" {
			continue
		}
		s.Line("                          _F(MATER=%s, %s,),", materialName(mat), target)
	}
	s.Raw("                          ),)")
	s.Blank()
}

// cellContainerTarget renders a CellContainer as a GROUP_MA=(...) or
// MAILLE=(...) keyword/value pair, whichever the container actually
// carries (a material may bind cells by group, by explicit id, or both).
func cellContainerTarget(model *im.Model, cc im.CellContainer) string {
	var groups, cellIDs []string
	for _, r := range cc.CellGroupRefs {
		if g, ok := model.Mesh.FindGroup(r.ID); ok {
			groups = append(groups, "'"+g.ResolvedName()+"'")
		}
	}
	for _, id := range cc.CellIDs {
		cellIDs = append(cellIDs, io.Sf("%d", id))
	}
	switch {
	case len(groups) > 0 && len(cellIDs) > 0:
		return io.Sf("GROUP_MA=(%s,), MAILLE=(%s,)", join(groups), join(cellIDs))
	case len(groups) > 0:
		return io.Sf("GROUP_MA=(%s,)", join(groups))
	case len(cellIDs) > 0:
		return io.Sf("MAILLE=(%s,)", join(cellIDs))
	default:
		return ""
	}
}

func join(items []string) string {
	out := ""
	for i, it := range items {
		if i > 0 {
			out += ", "
		}
		out += it
	}
	return out
}

// writeAffeCaraElem emits CAEL=AFFE_CARA_ELEM, one sub-block per
// applicable ElementSet kind: POUTRE for the four beam kinds (simplified
// to one GENERALE section, per DESIGN.md), COQUE for shells, DISCRET for
// 0D/1D springs and nodal masses.
func writeAffeCaraElem(model *im.Model, s *writerutil.Script) {
	var poutres, coques, discrets []string
	for _, es := range model.ElementSets() {
		group, ok := model.Mesh.FindGroup(es.CellGroup.ID)
		if !ok {
			continue
		}
		name := group.ResolvedName()
		switch es.Kind {
		case im.ElemCircularSectionBeam, im.ElemRectangularSectionBeam, im.ElemISectionBeam, im.ElemGenericSectionBeam:
			area, iyy, izz, j := beamSection(es)
			poutres = append(poutres, io.Sf("_F(GROUP_MA='%s', SECTION='GENERALE', CARA=('A','IY','IZ','JX',), VALE=(%g,%g,%g,%g,),),", name, area, iyy, izz, j))
		case im.ElemShell, im.ElemComposite:
			coques = append(coques, io.Sf("_F(GROUP_MA='%s', EPAIS=%g,),", name, es.Thickness))
		case im.ElemDiscretePoint, im.ElemDiscreteSegment:
			discrets = append(discrets, io.Sf("_F(GROUP_MA='%s', CARA='K_T_D_N', VALE=(%g,%g,%g,),),", name, es.Stiffness, es.Stiffness, es.Stiffness))
		case im.ElemNodalMass:
			discrets = append(discrets, io.Sf("_F(GROUP_MA='%s', CARA='M_T_D_N', VALE=(%g,),),", name, es.Mass))
		}
	}
	if len(poutres) == 0 && len(coques) == 0 && len(discrets) == 0 {
		return
	}
	s.Raw("CAEL=AFFE_CARA_ELEM(MODELE=MODMECA,")
	if len(poutres) > 0 {
		s.Raw("                    POUTRE=(")
		for _, l := range poutres {
			s.Line("                            %s", l)
		}
		s.Raw("                            ),")
	}
	if len(coques) > 0 {
		s.Raw("                    COQUE=(")
		for _, l := range coques {
			s.Line("                           %s", l)
		}
		s.Raw("                           ),")
	}
	if len(discrets) > 0 {
		s.Raw("                    DISCRET=(")
		for _, l := range discrets {
			s.Line("                             %s", l)
		}
		s.Raw("                             ),")
	}
	s.Raw("                    )")
	s.Blank()
}

// beamSection computes the (area, Iyy, Izz, J) quadruple
// AFFE_CARA_ELEM's GENERALE section needs, collapsing the teacher's
// per-section-type SECTION='CERCLE'/'RECTANGLE' branches (AsterWriter.cpp
// writeAffeCaraElemPoutre) into one uniform computation: a circular or
// rectangular section's equivalent properties, or the GenericSectionBeam
// kind's already-explicit Area/Iyy/Izz/J.
func beamSection(es *im.ElementSet) (area, iyy, izz, j float64) {
	switch es.Kind {
	case im.ElemCircularSectionBeam:
		r := es.Radius
		area = math.Pi * r * r
		iyy = math.Pi * r * r * r * r / 4
		izz = iyy
		j = 2 * iyy
	case im.ElemRectangularSectionBeam, im.ElemISectionBeam:
		w, h := es.Width, es.Height
		area = w * h
		iyy = w * h * h * h / 12
		izz = h * w * w * w / 12
		j = math.Min(iyy, izz)
	default: // ElemGenericSectionBeam
		area, iyy, izz, j = es.Area, es.Iyy, es.Izz, es.J
	}
	return
}

// writeAffeCharMeca emits one AFFE_CHAR_MECA per ConstraintSet (SPC as
// DDL_IMPO, Rigid/totally-rigid QuasiRigid as LIAISON_SOLIDE, RBE3 as
// LIAISON_RBE3, LMPC as LIAISON_DDL) and one per LoadSet (gravity,
// rotation, nodal force), per AsterWriter::writeSPC/writeLIAISON_SOLIDE/
// writeRBE3/writeGravity/writeRotation/writeNodalForce.
func writeAffeCharMeca(model *im.Model, s *writerutil.Script) {
	for _, cs := range model.ConstraintSets() {
		if len(cs.ConstraintRefs) == 0 {
			continue
		}
		writeConstraintSetCharge(model, cs, s)
	}
	for _, ls := range model.LoadSets() {
		if len(ls.LoadingRefs) == 0 {
			continue
		}
		writeLoadSetCharge(model, ls, s)
	}
}

func writeConstraintSetCharge(model *im.Model, cs *im.ConstraintSet, s *writerutil.Script) {
	var ddlImpo, liaisonSolide, liaisonRBE3, liaisonDDL []string
	for _, r := range cs.ConstraintRefs {
		c, ok := model.FindConstraint(r.ID)
		if !ok {
			continue
		}
		switch c.Kind {
		case im.ConstraintSPC:
			ddlImpo = append(ddlImpo, writeSPCBlock(model, c))
		case im.ConstraintRigid:
			liaisonSolide = append(liaisonSolide, rigidNodeList(c))
		case im.ConstraintQuasiRigid:
			if c.RigidDofs == im.ALL_DOFS {
				liaisonSolide = append(liaisonSolide, rigidNodeList(c))
			} else {
				liaisonDDL = append(liaisonDDL, writeQuasiRigidBlock(c))
			}
		case im.ConstraintRBE3:
			liaisonRBE3 = append(liaisonRBE3, writeRBE3Block(model, c))
		case im.ConstraintLMPC:
			liaisonDDL = append(liaisonDDL, writeLMPCBlock(c))
		case im.ConstraintGap:
			// handled by writeDefiContact
		}
	}
	if len(ddlImpo) == 0 && len(liaisonSolide) == 0 && len(liaisonRBE3) == 0 && len(liaisonDDL) == 0 {
		return
	}
	s.Line("%s=AFFE_CHAR_MECA(MODELE=MODMECA,", constraintSetName(cs))
	if len(ddlImpo) > 0 {
		s.Raw("                 DDL_IMPO=(")
		for _, b := range ddlImpo {
			s.Line("                           %s", b)
		}
		s.Raw("                           ),")
	}
	if len(liaisonSolide) > 0 {
		s.Raw("                 LIAISON_SOLIDE=(")
		for _, b := range liaisonSolide {
			s.Line("                                 %s", b)
		}
		s.Raw("                                 ),")
	}
	if len(liaisonRBE3) > 0 {
		s.Raw("                 LIAISON_RBE3=(")
		for _, b := range liaisonRBE3 {
			s.Line("                               %s", b)
		}
		s.Raw("                               ),")
	}
	if len(liaisonDDL) > 0 {
		s.Raw("                 LIAISON_DDL=(")
		for _, b := range liaisonDDL {
			s.Line("                              %s", b)
		}
		s.Raw("                              ),")
	}
	s.Raw("                 )")
	s.Blank()
}

// writeSPCBlock emits one DDL_IMPO _F(...) per SPC, pinning each active
// dof to its imposed value, per AsterWriter::writeSPC.
func writeSPCBlock(model *im.Model, c *im.Constraint) string {
	node, _ := model.Mesh.FindNode(c.NodeID)
	name := io.Sf("%d", c.NodeID)
	if node != nil {
		name = io.Sf("N%d", node.ID())
	}
	out := io.Sf("_F(NOEUD='%s',", name)
	for i := 0; i < 6; i++ {
		d := im.DOF(i)
		if c.Dofs.Has(d) {
			out += io.Sf(" %s=%g,", dofName(d), c.Values.Get(d))
		}
	}
	return out + "),"
}

func rigidNodeList(c *im.Constraint) string {
	out := io.Sf("_F(NOEUD=('N%d',", c.MasterNodeID)
	for _, s := range c.SlaveNodeIDs {
		out += io.Sf("'N%d',", s)
	}
	return out + "),),"
}

// writeQuasiRigidBlock expresses a partially-rigid master/slave pair as
// one LIAISON_DDL equation per restrained dof, since LIAISON_SOLIDE only
// covers a fully-rigid (ALL_DOFS) pair.
func writeQuasiRigidBlock(c *im.Constraint) string {
	out := ""
	for i := 0; i < 6; i++ {
		d := im.DOF(i)
		if !c.RigidDofs.Has(d) {
			continue
		}
		for _, slave := range c.SlaveNodeIDs {
			out += io.Sf("_F(NOEUD=('N%d','N%d',), DDL=('%s','%s',), COEF_MULT=(1.,-1.,), COEF_IMPO=0.,),", c.MasterNodeID, slave, dofName(d), dofName(d))
		}
	}
	return out
}

func writeRBE3Block(model *im.Model, c *im.Constraint) string {
	out := io.Sf("_F(NOEUD_MAIT='N%d', DDL_MAIT=(", c.MasterNodeIDRBE3)
	for i := 0; i < 6; i++ {
		if c.MasterDofs.Has(im.DOF(i)) {
			out += io.Sf("'%s',", dofName(im.DOF(i)))
		}
	}
	out += "), NOEUD_ESCL=("
	for _, p := range c.Participations {
		out += io.Sf("'N%d',", p.SlaveNodeID)
	}
	out += "), DDL_ESCL=("
	for _, p := range c.Participations {
		for i := 0; i < 6; i++ {
			if p.SlaveDofs.Has(im.DOF(i)) {
				out += io.Sf("'%s',", dofName(im.DOF(i)))
			}
		}
	}
	out += "), COEF_ESCL=("
	for _, p := range c.Participations {
		out += io.Sf("%g,", p.Coefficient)
	}
	out += "),),"
	return out
}

// writeLMPCBlock renders one LinearMultiplePointConstraint as a single
// LIAISON_DDL equation, per AsterWriter's LMPC preservation pass
// (spec.md §4.6: "LMPC preservation... not cellified").
func writeLMPCBlock(c *im.Constraint) string {
	out := "_F(NOEUD=("
	for _, t := range c.Terms {
		out += io.Sf("'N%d',", t.NodeID)
	}
	out += "), DDL=("
	for _, t := range c.Terms {
		out += io.Sf("'%s',", dofName(t.Dof))
	}
	out += "), COEF_MULT=("
	for _, t := range c.Terms {
		out += io.Sf("%g,", t.Coef)
	}
	out += io.Sf("), COEF_IMPO=%g,),", c.Imposed)
	return out
}

// writeLoadSetCharge emits one AFFE_CHAR_MECA per LoadSet covering
// gravity, rotation and nodal forces, per AsterWriter::writeGravity/
// writeRotation/writeNodalForce. Other loading kinds (face pressures,
// line and surface forces, temperatures, dynamic excitations) are not
// written.
func writeLoadSetCharge(model *im.Model, ls *im.LoadSet, s *writerutil.Script) {
	var pesanteur, rotation, forceNodale []string
	for _, r := range ls.LoadingRefs {
		l, ok := model.FindLoading(r.ID)
		if !ok {
			continue
		}
		switch l.Kind {
		case im.LoadGravity:
			norm := l.Gravity.Norm()
			dir := l.Gravity.Normalise()
			pesanteur = append(pesanteur, io.Sf("_F(GRAVITE=%g, DIRECTION=(%g,%g,%g,),),", norm, dir.X, dir.Y, dir.Z))
		case im.LoadRotation:
			rotation = append(rotation, io.Sf("_F(VITESSE=%g, AXE=(%g,%g,%g,), CENTRE=(%g,%g,%g,),),",
				l.Omega, l.Axis.X, l.Axis.Y, l.Axis.Z, l.Center.X, l.Center.Y, l.Center.Z))
		case im.LoadNodalForce, im.LoadNodalForceTwoNodes:
			forceNodale = append(forceNodale, writeNodalForceBlock(l))
		}
	}
	if len(pesanteur) == 0 && len(rotation) == 0 && len(forceNodale) == 0 {
		return
	}
	s.Line("%s=AFFE_CHAR_MECA(MODELE=MODMECA,", loadSetName(ls))
	if len(pesanteur) > 0 {
		s.Raw("                 PESANTEUR=(")
		for _, b := range pesanteur {
			s.Line("                            %s", b)
		}
		s.Raw("                            ),")
	}
	if len(rotation) > 0 {
		s.Raw("                 ROTATION=(")
		for _, b := range rotation {
			s.Line("                           %s", b)
		}
		s.Raw("                           ),")
	}
	if len(forceNodale) > 0 {
		s.Raw("                 FORCE_NODALE=(")
		for _, b := range forceNodale {
			s.Line("                               %s", b)
		}
		s.Raw("                               ),")
	}
	s.Raw("                 )")
	s.Blank()
}

// writeNodalForceBlock only emits the non-zero force/moment components
// of a nodal force, per AsterWriter::writeNodalForce.
func writeNodalForceBlock(l *im.Loading) string {
	out := io.Sf("_F(NOEUD='N%d',", l.NodeID)
	comps := []struct {
		name string
		v    float64
	}{
		{"FX", l.Force.X}, {"FY", l.Force.Y}, {"FZ", l.Force.Z},
		{"MX", l.Moment.X}, {"MY", l.Moment.Y}, {"MZ", l.Moment.Z},
	}
	for _, c := range comps {
		if c.v != 0 {
			out += io.Sf(" %s=%g,", c.name, c.v)
		}
	}
	return out + "),"
}

// writeDefiContact emits one DEFI_CONTACT(FORMULATION='LIAISON_UNIL',...)
// per Analysis that activates a ConstraintSet holding Gap constraints,
// per AsterWriter::writeDefiContact.
func writeDefiContact(model *im.Model, s *writerutil.Script) {
	for _, a := range model.Analyses() {
		var gaps []*im.Constraint
		for _, r := range a.ConstraintSetRefs {
			cs, ok := model.FindConstraintSet(r.ID)
			if !ok {
				continue
			}
			for _, cr := range cs.ConstraintRefs {
				if c, ok := model.FindConstraint(cr.ID); ok && c.Kind == im.ConstraintGap {
					gaps = append(gaps, c)
				}
			}
		}
		if len(gaps) == 0 {
			continue
		}
		s.Line("%s=DEFI_CONTACT(MODELE=MODMECA, FORMULATION='LIAISON_UNIL',", gapContactName(a))
		s.Raw("               ZONE=(")
		for _, g := range gaps {
			s.Line("                     _F(NOEUD='N%d', NOEUD_CONT='N%d', JEU=%g,),", g.SlaveNodeIDs[0], g.MasterNodeID, g.InitialOpening)
		}
		s.Raw("                     ),)")
		s.Blank()
	}
}

// analysisResultName names the RESU=... result variable produced by one
// Analysis's solve command, per AsterWriter::writeAnalysis's "RESUn".
func analysisResultName(a *im.Analysis) string { return io.Sf("RESU%d", a.OriginalID) }

// excitList renders an Analysis's activated LoadSets/ConstraintSets as
// AFFE_CHAR_MECA/AFFE_CHAR_MECA's EXCIT=(_F(CHARGE=...),...) tuple, per
// AsterWriter::writeExcit. Sets with no emitted charge (all-ineffective,
// or a Gap-only constraint set already consumed by DEFI_CONTACT) are
// skipped rather than referencing an undefined Python name.
func excitList(model *im.Model, a *im.Analysis) []string {
	var names []string
	for _, r := range a.LoadSetRefs {
		if ls, ok := model.FindLoadSet(r.ID); ok && len(ls.LoadingRefs) > 0 {
			names = append(names, loadSetName(ls))
		}
	}
	hasCharge := func(cs *im.ConstraintSet) bool {
		for _, cr := range cs.ConstraintRefs {
			if c, ok := model.FindConstraint(cr.ID); ok && c.Kind != im.ConstraintGap {
				return true
			}
		}
		return false
	}
	common := model.GetCommonConstraintSets()
	if hasCharge(common) {
		names = append(names, constraintSetName(common))
	}
	for _, r := range a.ConstraintSetRefs {
		if r.ID == common.RefID() {
			continue
		}
		if cs, ok := model.FindConstraintSet(r.ID); ok && hasCharge(cs) {
			names = append(names, constraintSetName(cs))
		}
	}
	return names
}

// writeAnalyses emits one solve command per Analysis: MECA_STATIQUE for
// LinearMecaStat, STAT_NON_LINE for NonLinearMecaStat, CALC_MODES for
// LinearModal, DYNA_VIBRA for both LinearDynaModalFreq and
// LinearDynaDirectFreq. Each is followed by a
// TEST_RESU per assertion the analysis carries, per
// AsterWriter::writeAnalysis/writeTestResu.
func writeAnalyses(model *im.Model, s *writerutil.Script) {
	for _, a := range model.Analyses() {
		excit := excitList(model, a)
		switch a.Kind {
		case im.AnalysisLinearMecaStat:
			writeMecaStatique(a, excit, s)
		case im.AnalysisNonLinearMecaStat:
			writeStatNonLine(a, excit, s)
		case im.AnalysisLinearModal:
			writeCalcModes(a, excit, s)
		case im.AnalysisLinearDynaModalFreq, im.AnalysisLinearDynaDirectFreq:
			writeDynaVibra(a, excit, s)
		}
		writeTestResu(model, a, s)
	}
}

func writeExcitBlock(names []string, s *writerutil.Script) {
	if len(names) == 0 {
		return
	}
	s.Raw("                EXCIT=(")
	for _, n := range names {
		s.Line("                       _F(CHARGE=%s,),", n)
	}
	s.Raw("                       ),")
}

func writeMecaStatique(a *im.Analysis, excit []string, s *writerutil.Script) {
	s.Line("%s=MECA_STATIQUE(MODELE=MODMECA,", analysisResultName(a))
	s.Raw("                CHAM_MATER=CHMAT,")
	s.Raw("                CARA_ELEM=CAEL,")
	writeExcitBlock(excit, s)
	s.Raw("                )")
	s.Blank()
}

func writeStatNonLine(a *im.Analysis, excit []string, s *writerutil.Script) {
	numInc, maxIter, tol := 1, 20, 1e-6
	if a.Strategy != nil {
		if a.Strategy.NumIncrements > 0 {
			numInc = a.Strategy.NumIncrements
		}
		if a.Strategy.MaxIterations > 0 {
			maxIter = a.Strategy.MaxIterations
		}
		if a.Strategy.Tolerance > 0 {
			tol = a.Strategy.Tolerance
		}
	}
	s.Line("%s=STAT_NON_LINE(MODELE=MODMECA,", analysisResultName(a))
	s.Raw("                CHAM_MATER=CHMAT,")
	s.Raw("                CARA_ELEM=CAEL,")
	writeExcitBlock(excit, s)
	s.Line("                INCREMENT=_F(LIST_INST=DEFI_LIST_REEL(DEBUT=0., INTERVALLE=_F(JUSQU_A=1., NOMBRE=%d,),),),", numInc)
	s.Line("                CONVERGENCE=_F(ITER_GLOB_MAXI=%d, RESI_GLOB_RELA=%g,),", maxIter, tol)
	s.Raw("                )")
	s.Blank()
}

func writeCalcModes(a *im.Analysis, excit []string, s *writerutil.Script) {
	s.Line("ASSE%d=ASSEMBLAGE(MODELE=MODMECA, CHAM_MATER=CHMAT, CARA_ELEM=CAEL,", a.OriginalID)
	if len(excit) > 0 {
		out := "                 CHARGE=("
		for _, n := range excit {
			out += n + ","
		}
		s.Raw(out + "),")
	}
	s.Raw("                 NUME_DDL=CO('NUMDDL'+str(0)),")
	s.Raw("                 MATR_ASSE=(_F(MATRICE=CO('RIGI'),OPTION='RIGI_MECA',),")
	s.Raw("                            _F(MATRICE=CO('MASS'),OPTION='MASS_MECA',),),)")
	if a.Search != nil && a.Search.Band != nil {
		s.Line("%s=CALC_MODES(MATR_RIGI=RIGI, MATR_MASS=MASS,", analysisResultName(a))
		s.Line("             CALC_FREQ=_F(FREQ=(%g,%g,), NMAX_FREQ=%d,),),", a.Search.Band.Lower, a.Search.Band.Upper, a.Search.Band.MaxModes)
	} else {
		numModes := 10
		if a.Search != nil && a.Search.NumModes > 0 {
			numModes = a.Search.NumModes
		}
		s.Line("%s=CALC_MODES(MATR_RIGI=RIGI, MATR_MASS=MASS,", analysisResultName(a))
		s.Line("             CALC_FREQ=_F(NMAX_FREQ=%d,),),", numModes)
	}
	s.Blank()
}

func writeDynaVibra(a *im.Analysis, excit []string, s *writerutil.Script) {
	var freqs []float64
	switch {
	case a.ExcitationHz != nil:
		freqs = a.ExcitationHz.Hz
	case a.DirectExcitationHz != nil:
		freqs = a.DirectExcitationHz.Hz
	}
	s.Line("%s=DYNA_VIBRA(TYPE_CALCUL='HARM', BASE_CALCUL='PHYS',", analysisResultName(a))
	s.Raw("            MATR_MASS=MASS, MATR_RIGI=RIGI,")
	writeExcitBlock(excit, s)
	if len(freqs) > 0 {
		out := "            LIST_FREQ=("
		for _, f := range freqs {
			out += io.Sf("%g,", f)
		}
		s.Raw(out + "),")
	}
	s.Raw("            )")
	s.Blank()
}

// writeTestResu renders every Assertion attached to a's AssertionRefs as
// one TEST_RESU _F(...) entry, per AsterWriter::writeTestResu.
func writeTestResu(model *im.Model, a *im.Analysis, s *writerutil.Script) {
	var blocks []string
	for _, r := range a.AssertionRefs {
		asrt, ok := model.FindAssertion(r.ID)
		if !ok {
			continue
		}
		switch asrt.Kind {
		case im.AssertNodalDisplacement:
			blocks = append(blocks, io.Sf("_F(RESULTAT=%s, NOEUD='N%d', NOM_CMP='%s', VALE_CALC=%g, CRITERE='RELATIF', PRECISION=%g,),",
				analysisResultName(a), asrt.NodeID, dofName(asrt.Dof), asrt.Value, asrt.Tolerance))
		case im.AssertNodalComplexDisplacement:
			blocks = append(blocks, io.Sf("_F(RESULTAT=%s, NOEUD='N%d', NOM_CMP='%s', FREQ=%g, VALE_CALC_C=%g, CRITERE='RELATIF', PRECISION=%g,),",
				analysisResultName(a), asrt.NodeID, dofName(asrt.Dof), asrt.Frequency, real(asrt.ComplexValue), asrt.Tolerance))
		case im.AssertFrequency:
			blocks = append(blocks, io.Sf("_F(RESULTAT=%s, NUME_MODE=%d, PARA='FREQ', VALE_CALC=%g, CRITERE='RELATIF', PRECISION=%g,),",
				analysisResultName(a), asrt.ModeIndex, asrt.Value, asrt.Tolerance))
		}
	}
	if len(blocks) == 0 {
		return
	}
	s.Raw("TEST_RESU(RESU=(")
	for _, b := range blocks {
		s.Line("               %s", b)
	}
	s.Raw("               ),)")
	s.Blank()
}

// writeImprResultats emits IMPR_RESU(FORMAT='MED',...) once per Analysis
// result, directing Code_Aster to append it to the shared .rmed file, per
// AsterWriter::writeImprResultats.
func writeImprResultats(model *im.Model, s *writerutil.Script) {
	analyses := model.Analyses()
	if len(analyses) == 0 {
		return
	}
	s.Raw("IMPR_RESU(FORMAT='MED',")
	s.Raw("          RESU=(")
	for _, a := range analyses {
		s.Line("                _F(RESULTAT=%s,),", analysisResultName(a))
	}
	s.Raw("                ),)")
	s.Blank()
}
