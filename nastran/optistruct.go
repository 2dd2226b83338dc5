// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nastran

import (
	"github.com/Alneos/vega-sub001/deck"
	"github.com/Alneos/vega-sub001/im"
)

func init() {
	register("SET", parseSET)
	register("SURF", parseSURF)
	register("CONTACT", parseCONTACT)
}

// parseSET reads SET SID [TYPE] (id | id1 "THRU" id2)+, the Optistruct
// named-id-list card underlying SURF and CONTACT. Only the id list is
// kept; TYPE (GRID/ELEM/...) does not change how this package resolves
// members.
func parseSET(p *Parser, tok *deck.Tokenizer) error {
	sid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	if tok.NextSymbolType() == deck.SymField && !tok.IsNextInt() {
		if _, err := tok.NextString(true); err != nil { // TYPE
			return err
		}
	}
	ids, err := readIDList(tok)
	if err != nil {
		return err
	}
	p.idSets[sid] = append(p.idSets[sid], ids...)
	return nil
}

// parseSURF reads SURF SID [TYPE] (id | id1 "THRU" id2)+. This package
// has no face-level geometry, so a surface is kept as the same flat id
// list a SET is, in the same id space.
func parseSURF(p *Parser, tok *deck.Tokenizer) error {
	return parseSET(p, tok)
}

// parseCONTACT reads CONTACT CID TYPE SURF_M SURF_S [...]: the master
// and slave id lists are paired position by position into Gap
// constraints, one per pair, collected under a CONTACT ConstraintSet.
// Optistruct's richer contact properties (friction, search distance,
// ...) carry no representation in this package's Gap constraint and are
// read and discarded.
func parseCONTACT(p *Parser, tok *deck.Tokenizer) error {
	cid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	if _, err := tok.NextString(true); err != nil { // TYPE
		return err
	}
	masterID, err := tok.NextInt(true, 0)
	if err != nil {
		return err
	}
	slaveID, err := tok.NextInt(true, 0)
	if err != nil {
		return err
	}
	masters := p.idSets[masterID]
	slaves := p.idSets[slaveID]
	cs := p.findOrCreateConstraintSet(im.TagCONTACT, cid)
	n := len(masters)
	if len(slaves) < n {
		n = len(slaves)
	}
	for i := 0; i < n; i++ {
		gap := im.NewGap(p.model.NextID(), masters[i], slaves[i], 0, nil)
		if err := p.model.AddConstraint(gap); err != nil {
			return err
		}
		cs.AddConstraint(gap.Ref())
	}
	return nil
}

// readIDList reads a trailing (id | id1 "THRU" id2)+ field sequence,
// the shared shape of SET/SURF member lists.
func readIDList(tok *deck.Tokenizer) ([]int, error) {
	var ids []int
	for tok.IsNextInt() {
		a, err := tok.NextInt(true, 0)
		if err != nil {
			return nil, err
		}
		if tok.NextSymbolType() == deck.SymField && !tok.IsNextInt() && !tok.IsNextDouble() {
			word, err := tok.NextString(true)
			if err != nil {
				return nil, err
			}
			if word == "THRU" {
				b, err := tok.NextInt(false)
				if err != nil {
					return nil, err
				}
				for n := a; n <= b; n++ {
					ids = append(ids, n)
				}
				continue
			}
		}
		ids = append(ids, a)
	}
	return ids, nil
}
