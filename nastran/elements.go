// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nastran

import (
	"github.com/Alneos/vega-sub001/deck"
	"github.com/Alneos/vega-sub001/geom"
)

func init() {
	register("CROD", cellHandler(geom.Seg2, 2))
	register("CBAR", cellHandler(geom.Seg2, 2))
	register("CBEAM", cellHandler(geom.Seg2, 2))
	register("CTRIA3", cellHandler(geom.Tri3, 3))
	register("CTRIA6", cellHandler(geom.Tri6, 6))
	register("CQUAD4", cellHandler(geom.Quad4, 4))
	register("CQUAD8", cellHandler(geom.Quad8, 8))
	register("CQUAD", cquadHandler)
	register("CTETRA", tetraHandler)
	register("CPENTA", pentaHandler)
	register("CPYRAM", pyramHandler)
	register("CHEXA", hexaHandler)
}

// cellHandler builds a bulkHandler for a fixed-arity cell card shaped
// EID PID G1 G2 ... Gn, the common shape of CROD/CBAR/CBEAM (beam
// orientation fields, when present, are consumed and discarded — this
// package resolves orientation via the element's own two end nodes
// rather than porting the G0/CID third-point convention) and every
// plain-shell card.
func cellHandler(ct geom.CellType, n int) bulkHandler {
	return func(p *Parser, tok *deck.Tokenizer) error {
		eid, err := tok.NextInt(false)
		if err != nil {
			return err
		}
		pid, err := tok.NextInt(true, eid)
		if err != nil {
			return err
		}
		nodeIDs := make([]int, n)
		for i := 0; i < n; i++ {
			nodeIDs[i], err = tok.NextInt(false)
			if err != nil {
				return err
			}
		}
		return p.addCell(eid, pid, ct, nodeIDs)
	}
}

// addCell inserts the cell and records it under pid for the deferred
// property-resolution pass.
func (p *Parser) addCell(eid, pid int, ct geom.CellType, nodeIDs []int) error {
	id := eid
	if _, err := p.model.Mesh.AddCell(&id, ct, nodeIDs, nil); err != nil {
		return err
	}
	p.cellsByProperty[pid] = append(p.cellsByProperty[pid], id)
	return nil
}

// cquadHandler reads CQUAD EID PID G1..G4 [G5..G9], the general
// quadrilateral (4, 8 or 9 nodes), per NastranParser_geometry.cpp's
// parseCQUAD.
func cquadHandler(p *Parser, tok *deck.Tokenizer) error {
	eid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	pid, err := tok.NextInt(true, eid)
	if err != nil {
		return err
	}
	nodeIDs := make([]int, 0, 9)
	for i := 0; i < 4; i++ {
		id, err := tok.NextInt(false)
		if err != nil {
			return err
		}
		nodeIDs = append(nodeIDs, id)
	}
	for len(nodeIDs) < 9 && tok.IsNextInt() {
		id, err := tok.NextInt(true, 0)
		if err != nil {
			return err
		}
		nodeIDs = append(nodeIDs, id)
	}
	ct := geom.Quad4
	switch len(nodeIDs) {
	case 8:
		ct = geom.Quad8
	case 9:
		ct = geom.Quad9
	default:
		nodeIDs = nodeIDs[:4]
	}
	return p.addCell(eid, pid, ct, nodeIDs)
}

// tetraHandler reads CTETRA EID PID G1..G4 [G5..G10], choosing Tetra4 or
// Tetra10 by whether the midside fields are present, per
// NastranParser.cpp's variable-arity solid handling.
func tetraHandler(p *Parser, tok *deck.Tokenizer) error {
	return solidHandler(p, tok, geom.Tetra4, geom.Tetra10, 4, 10)
}

func pentaHandler(p *Parser, tok *deck.Tokenizer) error {
	return solidHandler(p, tok, geom.Penta6, geom.Penta15, 6, 15)
}

func pyramHandler(p *Parser, tok *deck.Tokenizer) error {
	return solidHandler(p, tok, geom.Pyra5, geom.Pyra13, 5, 13)
}

func hexaHandler(p *Parser, tok *deck.Tokenizer) error {
	return solidHandler(p, tok, geom.Hexa8, geom.Hexa20, 8, 20)
}

func solidHandler(p *Parser, tok *deck.Tokenizer, linear, quadratic geom.CellType, nLinear, nQuadratic int) error {
	eid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	pid, err := tok.NextInt(true, eid)
	if err != nil {
		return err
	}
	nodeIDs := make([]int, 0, nQuadratic)
	for i := 0; i < nLinear; i++ {
		id, err := tok.NextInt(false)
		if err != nil {
			return err
		}
		nodeIDs = append(nodeIDs, id)
	}
	ct := linear
	for len(nodeIDs) < nQuadratic && tok.IsNextInt() {
		id, err := tok.NextInt(true, 0)
		if err != nil {
			return err
		}
		nodeIDs = append(nodeIDs, id)
	}
	if len(nodeIDs) == nQuadratic {
		ct = quadratic
	}
	return p.addCell(eid, pid, ct, nodeIDs)
}
