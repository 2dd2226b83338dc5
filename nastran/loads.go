// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nastran

import (
	"strings"

	"github.com/Alneos/vega-sub001/config"
	"github.com/Alneos/vega-sub001/deck"
	"github.com/Alneos/vega-sub001/geom"
	"github.com/Alneos/vega-sub001/im"
)

func init() {
	register("FORCE", parseFORCE)
	register("FORCE1", parseFORCE1)
	register("MOMENT", parseMOMENT)
	register("GRAV", parseGRAV)
	register("RFORCE", parseRFORCE)
	register("PLOAD4", parsePLOAD4)
	register("LOAD", parseLOAD)
	register("DLOAD", parseDLOAD)
	register("DAREA", parseDAREA)
	register("RLOAD2", parseRLOAD2)
	register("DPHASE", parseDPHASE)
	register("TABLED1", parseTABLED1)
	register("TABDMP1", parseTABDMP1)
}

// parseFORCE reads FORCE SID G CID F N1 N2 N3, per NastranParser.cpp's
// parseFORCE: F scales the (N1,N2,N3) direction into the force vector.
func parseFORCE(p *Parser, tok *deck.Tokenizer) error {
	sid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	nodeID, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	if _, err := tok.NextInt(true, 0); err != nil { // CID, global only
		return err
	}
	scale, err := tok.NextDouble(true, 1)
	if err != nil {
		return err
	}
	n1, err := tok.NextDouble(true, 0)
	if err != nil {
		return err
	}
	n2, err := tok.NextDouble(true, 0)
	if err != nil {
		return err
	}
	n3, err := tok.NextDouble(true, 0)
	if err != nil {
		return err
	}
	force := im.NewNodalForceLoading(p.model.NextID(), nodeID, geom.NewVec3(n1*scale, n2*scale, n3*scale), geom.Vec3{})
	return p.addLoadToSet(force, im.TagLOAD, sid)
}

// parseFORCE1 reads FORCE1 SID G F G1 G2: a nodal force whose direction
// is the G1->G2 line.
func parseFORCE1(p *Parser, tok *deck.Tokenizer) error {
	sid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	nodeID, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	magnitude, err := tok.NextDouble(false)
	if err != nil {
		return err
	}
	nodeA, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	nodeB, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	force := im.NewNodalForceTwoNodesLoading(p.model.NextID(), nodeID, nodeA, nodeB, magnitude)
	return p.addLoadToSet(force, im.TagLOAD, sid)
}

// parseMOMENT reads MOMENT SID G CID M N1 N2 N3, the moment counterpart
// of FORCE (coordinate systems other than global are not supported).
func parseMOMENT(p *Parser, tok *deck.Tokenizer) error {
	sid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	nodeID, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	if _, err := tok.NextInt(true, 0); err != nil { // CID
		return err
	}
	scale, err := tok.NextDouble(true, 1)
	if err != nil {
		return err
	}
	n1, err := tok.NextDouble(true, 0)
	if err != nil {
		return err
	}
	n2, err := tok.NextDouble(true, 0)
	if err != nil {
		return err
	}
	n3, err := tok.NextDouble(true, 0)
	if err != nil {
		return err
	}
	moment := im.NewNodalForceLoading(p.model.NextID(), nodeID, geom.Vec3{}, geom.NewVec3(n1*scale, n2*scale, n3*scale))
	return p.addLoadToSet(moment, im.TagLOAD, sid)
}

// parseGRAV reads GRAV SID CID A N1 N2 N3 MB: a uniform acceleration
// field applied to the whole model (CellID left 0, since this package
// has no per-cell gravity expansion pass).
func parseGRAV(p *Parser, tok *deck.Tokenizer) error {
	sid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	if _, err := tok.NextInt(true, 0); err != nil { // CID, global only
		return err
	}
	acc, err := tok.NextDouble(true, 0)
	if err != nil {
		return err
	}
	n1, err := tok.NextDouble(true, 0)
	if err != nil {
		return err
	}
	n2, err := tok.NextDouble(true, 0)
	if err != nil {
		return err
	}
	n3, err := tok.NextDouble(true, 0)
	if err != nil {
		return err
	}
	gravity := im.NewGravityLoading(p.model.NextID(), 0, geom.NewVec3(n1*acc, n2*acc, n3*acc))
	return p.addLoadToSet(gravity, im.TagLOAD, sid)
}

// parseRFORCE reads RFORCE SID G CID A R1 R2 R3: a centrifugal load
// spinning about the axis (R1,R2,R3) through grid point G at A rad/s.
func parseRFORCE(p *Parser, tok *deck.Tokenizer) error {
	sid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	center, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	if _, err := tok.NextInt(true, 0); err != nil { // CID
		return err
	}
	omega, err := tok.NextDouble(false)
	if err != nil {
		return err
	}
	r1, err := tok.NextDouble(false)
	if err != nil {
		return err
	}
	r2, err := tok.NextDouble(false)
	if err != nil {
		return err
	}
	r3, err := tok.NextDouble(false)
	if err != nil {
		return err
	}
	pos, err := p.model.Mesh.FindNodePosition(center)
	if err != nil {
		return err
	}
	rotation := im.NewRotationLoading(p.model.NextID(), pos, geom.NewVec3(r1, r2, r3), omega)
	return p.addLoadToSet(rotation, im.TagLOAD, sid)
}

// parsePLOAD4 reads PLOAD4 SID EID P1 P2 P3 P4 [G1 G3/G4 | THRU EID2] [CID
// N1 N2 N3], per NastranParser.cpp's parsePLOAD4. Only a uniform pressure
// (P1==P2==P3==P4) in the global coordinate system is supported; a THRU
// range mirrors the original's exclusive upper bound (i runs eid1..eid2-1).
func parsePLOAD4(p *Parser, tok *deck.Tokenizer) error {
	sid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	eid1, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	p1, err := tok.NextDouble(false)
	if err != nil {
		return err
	}
	p2, err := tok.NextDouble(true, p1)
	if err != nil {
		return err
	}
	p3, err := tok.NextDouble(true, p1)
	if err != nil {
		return err
	}
	p4, err := tok.NextDouble(true, p1)
	if err != nil {
		return err
	}
	if p2 != p1 || p3 != p1 || p4 != p1 {
		return config.NewSkipCommand("PLOAD4: non-uniform pressure not supported")
	}

	const unavailable = -1
	g1, g2 := unavailable, unavailable
	eid2 := unavailable
	if tok.IsNextInt() || tok.IsNextEmpty() {
		g1, _ = tok.NextInt(true, unavailable)
		g2, _ = tok.NextInt(true, unavailable)
	} else {
		thru, err := tok.NextString(true)
		if err != nil {
			return err
		}
		if strings.TrimSpace(thru) != "THRU" {
			return config.NewSkipCommand("PLOAD4: format not recognized")
		}
		eid2, err = tok.NextInt(false)
		if err != nil {
			return err
		}
	}
	if _, err := tok.NextInt(true, 0); err != nil { // CID, global only
		return err
	}
	n1, err := tok.NextDouble(true, 0)
	if err != nil {
		return err
	}
	n2, err := tok.NextDouble(true, 0)
	if err != nil {
		return err
	}
	n3, err := tok.NextDouble(true, 0)
	if err != nil {
		return err
	}

	last := eid1
	if eid2 != unavailable {
		last = eid2 - 1
	}
	set := p.findOrCreateLoadSet(im.TagLOAD, sid)
	for cell := eid1; cell <= last; cell++ {
		var l *im.Loading
		switch {
		case n1 == 0 && n2 == 0 && n3 == 0 && g1 == unavailable:
			l = im.NewNormalPressionFaceLoading(p.model.NextID(), cell, p1)
		case g1 != unavailable:
			l = im.NewPressionFaceTwoNodesLoading(p.model.NextID(), cell, g1, g2, p1, p1)
		default:
			l = im.NewForceSurfaceLoading(p.model.NextID(), cell, geom.NewVec3(n1*p1, n2*p1, n3*p1))
		}
		if err := p.model.AddLoading(l); err != nil {
			return err
		}
		set.AddLoading(l.Ref())
	}
	return nil
}

// parseLOAD reads LOAD SID S S1 L1 S2 L2 ..., a linear combination of
// other LOAD sets, per NastranParser.cpp's parseLOAD.
func parseLOAD(p *Parser, tok *deck.Tokenizer) error {
	sid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	overallScale, err := tok.NextDouble(true, 1)
	if err != nil {
		return err
	}
	set := p.findOrCreateLoadSet(im.TagLOAD, sid)
	for tok.IsNextDouble() {
		scale, err := tok.NextDouble(true, 1)
		if err != nil {
			return err
		}
		embeddedID, err := tok.NextInt(false)
		if err != nil {
			return err
		}
		set.Embed(p.findOrCreateLoadSet(im.TagLOAD, embeddedID).Ref(), overallScale*scale)
	}
	return nil
}

// parseDLOAD reads DLOAD SID S S1 RLOAD2_ID1 S2 RLOAD2_ID2 ..., combining
// previously (or later) declared RLOAD2 excitations into one DLOAD set.
// Resolved post-bulk by resolveDloads, since RLOAD2 entries are
// themselves only fully resolved once every TABLED1/DPHASE is seen.
func parseDLOAD(p *Parser, tok *deck.Tokenizer) error {
	sid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	if _, err := tok.NextDouble(true, 1); err != nil { // S
		return err
	}
	p.findOrCreateLoadSet(im.TagDLOAD, sid)
	for tok.IsNextDouble() {
		if _, err := tok.NextDouble(true, 1); err != nil { // scale
			return err
		}
		rload2ID, err := tok.NextInt(false)
		if err != nil {
			return err
		}
		p.dloadEntries = append(p.dloadEntries, dloadEntry{loadsetID: sid, rload2ID: rload2ID})
	}
	return nil
}

// parseDAREA reads DAREA SID G1 C1 A1 G2 C2 A2 ..., one nodal force per
// (grid, component, amplitude) triplet, into an EXCITEID load set.
func parseDAREA(p *Parser, tok *deck.Tokenizer) error {
	sid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	set := p.findOrCreateLoadSet(im.TagEXCITEID, sid)
	for tok.IsNextInt() {
		nodeID, err := tok.NextInt(false)
		if err != nil {
			return err
		}
		ci, err := tok.NextInt(true, 123456)
		if err != nil {
			return err
		}
		a, err := tok.NextDouble(false)
		if err != nil {
			return err
		}
		dofs, err := im.DOFSFromNastran(itoa(ci))
		if err != nil {
			return err
		}
		var tx, ty, tz, rx, ry, rz float64
		if dofs.Has(im.DX) {
			tx = a
		}
		if dofs.Has(im.DY) {
			ty = a
		}
		if dofs.Has(im.DZ) {
			tz = a
		}
		if dofs.Has(im.RX) {
			rx = a
		}
		if dofs.Has(im.RY) {
			ry = a
		}
		if dofs.Has(im.RZ) {
			rz = a
		}
		l := im.NewNodalForceLoading(p.model.NextID(), nodeID, geom.NewVec3(tx, ty, tz), geom.NewVec3(rx, ry, rz))
		if err := p.model.AddLoading(l); err != nil {
			return err
		}
		set.AddLoading(l.Ref())
	}
	return nil
}

// parseRLOAD2 reads RLOAD2 SID DAREA DELAY DPHASE TB TP TYPE, recording
// the card for resolveRload2s once every TABLED1/DPHASE id is known.
func parseRLOAD2(p *Parser, tok *deck.Tokenizer) error {
	sid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	dareaSetID, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	if _, err := tok.NextDouble(true, 0); err != nil { // DELAY, unsupported
		return err
	}
	entry := rload2Entry{loadingID: p.model.NextID(), loadsetID: sid, dareaRef: p.findOrCreateLoadSet(im.TagEXCITEID, dareaSetID).Ref()}
	if tok.IsNextInt() {
		entry.dphaseOriginal, err = tok.NextInt(true, 0)
		if err != nil {
			return err
		}
	} else {
		phaseDeg, err := tok.NextDouble(true, 0)
		if err != nil {
			return err
		}
		v := im.NewDynaPhaseValue(p.model.NextID(), "", phaseDeg)
		if err := p.model.AddValue(v); err != nil {
			return err
		}
		entry.dphaseRef = v.Ref()
		entry.hasDphaseRef = true
	}
	entry.tableOriginal, err = tok.NextInt(true, 0)
	if err != nil {
		return err
	}
	p.rload2Entries = append(p.rload2Entries, entry)
	return nil
}

// resolveRload2s builds one DynamicExcitation Loading per recorded
// RLOAD2 entry, looking up its function-table/phase references (which
// may have been declared anywhere in the bulk section) now that it has
// been read in full, then binds it into its DLOAD set — mirroring
// NastranParser.cpp's parseRLOAD2, which creates the set immediately but
// only resolves the Value references lazily via the model's global
// reference table.
func (p *Parser) resolveRload2s() error {
	for _, e := range p.rload2Entries {
		if !e.hasDphaseRef {
			e.dphaseRef = p.valuesByID[e.dphaseOriginal]
		}
		l := im.NewDynamicExcitationLoading(e.loadingID, e.dphaseRef, p.valuesByID[e.tableOriginal], e.dareaRef)
		if err := p.model.AddLoading(l); err != nil {
			return err
		}
		p.findOrCreateLoadSet(im.TagDLOAD, e.loadsetID).AddLoading(l.Ref())
		p.loadingsByOriginalID[e.loadsetID] = l.Ref()
	}
	return nil
}

// resolveDloads binds every DLOAD combination card's referenced RLOAD2
// loading into its own DLOAD set, once resolveRload2s has populated
// loadingsByOriginalID.
func (p *Parser) resolveDloads() error {
	for _, e := range p.dloadEntries {
		ref, ok := p.loadingsByOriginalID[e.rload2ID]
		if !ok {
			continue
		}
		p.findOrCreateLoadSet(im.TagDLOAD, e.loadsetID).AddLoading(ref)
	}
	return nil
}

// parseDPHASE reads DPHASE SID G C PHASE: only the single-entry form
// (one phase value per card) is supported, matching
// NastranParser.cpp's parseDPHASE.
func parseDPHASE(p *Parser, tok *deck.Tokenizer) error {
	sid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	if _, err := tok.NextInt(true, 0); err != nil { // G
		return err
	}
	if _, err := tok.NextInt(true, 0); err != nil { // C
		return err
	}
	phaseDeg, err := tok.NextDouble(false)
	if err != nil {
		return err
	}
	v := im.NewDynaPhaseValue(p.model.NextID(), "", phaseDeg)
	if err := p.model.AddValue(v); err != nil {
		return err
	}
	p.valuesByID[sid] = v.Ref()
	return nil
}

// parseTABLED1 reads TABLED1 TID X1 ROW1 ... ENDT, building a
// FunctionTable Value with no out-of-domain prolongation, per
// NastranParser.cpp's parseTABLED1.
func parseTABLED1(p *Parser, tok *deck.Tokenizer) error {
	tid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	interp, err := tableInterpolation(tok)
	if err != nil {
		return err
	}
	if _, err := tok.NextString(true, "LINEAR"); err != nil { // value-axis interpolation, unused
		return err
	}
	x, y, err := readTablePoints(tok)
	if err != nil {
		return err
	}
	if len(x) < 2 {
		return config.NewSkipCommand("TABLED1: needs at least 2 points")
	}
	v, err := im.NewFunctionTableValue(p.model.NextID(), "", x, y, interp, interp, im.ProlongNone, im.ProlongNone)
	if err != nil {
		return err
	}
	if err := p.model.AddValue(v); err != nil {
		return err
	}
	p.valuesByID[tid] = v.Ref()
	return nil
}

// parseTABDMP1 reads TABDMP1 TID TYPE X1 Y1 ... ENDT, building a
// FunctionTable Value plus a ModalDamping descriptor keyed by this
// card's own id for resolveAnalysisRefs to attach via SDAMPING.
func parseTABDMP1(p *Parser, tok *deck.Tokenizer) error {
	tid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	if _, err := tok.NextString(true, "CRIT"); err != nil {
		return err
	}
	x, y, err := readTablePoints(tok)
	if err != nil {
		return err
	}
	if len(x) < 2 {
		return config.NewSkipCommand("TABDMP1: needs at least 2 points")
	}
	v, err := im.NewFunctionTableValue(p.model.NextID(), "", x, y, im.InterpLinear, im.InterpLinear, im.ProlongNone, im.ProlongConstant)
	if err != nil {
		return err
	}
	if err := p.model.AddValue(v); err != nil {
		return err
	}
	p.modalDampings[tid] = &im.ModalDamping{TableRef: v.Ref(), HasTableRef: true}
	return nil
}

// tableInterpolation reads TABLED1's leading interpolation-type string
// field ("LINEAR"/"LOGARITHMIC", default LINEAR).
func tableInterpolation(tok *deck.Tokenizer) (im.Interpolation, error) {
	s, err := tok.NextString(true, "LINEAR")
	if err != nil {
		return 0, err
	}
	if strings.TrimSpace(s) == "LOGARITHMIC" {
		return im.InterpLogarithmic, nil
	}
	return im.InterpLinear, nil
}

// readTablePoints reads the repeating (x, y) pairs common to
// TABLED1/TABDMP1, stopping at the ENDT marker.
func readTablePoints(tok *deck.Tokenizer) (x, y []float64, err error) {
	for tok.IsNextDouble() {
		xi, err := tok.NextDouble(false)
		if err != nil {
			return nil, nil, err
		}
		yi, err := tok.NextDouble(false)
		if err != nil {
			return nil, nil, err
		}
		x = append(x, xi)
		y = append(y, yi)
	}
	if _, err := tok.NextString(true); err != nil { // ENDT
		return nil, nil, err
	}
	return x, y, nil
}

// addLoadToSet registers l and appends it to the LOAD-family set (tag,
// originalID), the pattern every single-loading card (FORCE, GRAV,
// RFORCE, ...) shares.
func (p *Parser) addLoadToSet(l *im.Loading, tag im.SetTypeTag, originalID int) error {
	if err := p.model.AddLoading(l); err != nil {
		return err
	}
	p.findOrCreateLoadSet(tag, originalID).AddLoading(l.Ref())
	return nil
}
