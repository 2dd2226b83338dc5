// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nastran

import "github.com/Alneos/vega-sub001/im"

// findOrCreateLoadSet resolves the LoadSet known by (tag, originalID) in
// the deck's own id space, creating an empty one (synthetic internal id,
// the deck's id kept as OriginalID) the first time a card references it —
// cards may declare members of a set before or after anything else names
// that set, so every lookup in this package goes through here rather than
// Model.FindLoadSet directly.
func (p *Parser) findOrCreateLoadSet(tag im.SetTypeTag, originalID int) *im.LoadSet {
	key := loadSetKey{tag: tag, id: originalID}
	if s, ok := p.loadSets[key]; ok {
		return s
	}
	s := im.NewLoadSet(p.model.NextID(), originalID, tag)
	p.loadSets[key] = s
	return s
}

// findOrCreateConstraintSet is findOrCreateLoadSet's analogue for
// ConstraintSets.
func (p *Parser) findOrCreateConstraintSet(tag im.SetTypeTag, originalID int) *im.ConstraintSet {
	key := constraintSetKey{tag: tag, id: originalID}
	if s, ok := p.constraintSets[key]; ok {
		return s
	}
	s := im.NewConstraintSet(p.model.NextID(), originalID, tag)
	p.constraintSets[key] = s
	return s
}

// flushSets registers every LoadSet/ConstraintSet created via the
// find-or-create helpers above into the model. Called once after the
// bulk section is fully read (card order may add members up to the very
// last card).
func (p *Parser) flushSets() error {
	for _, s := range p.loadSets {
		if err := p.model.AddLoadSet(s); err != nil {
			return err
		}
	}
	for _, s := range p.constraintSets {
		if err := p.model.AddConstraintSet(s); err != nil {
			return err
		}
	}
	return nil
}
