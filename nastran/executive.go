// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nastran

import (
	"strconv"
	"strings"

	"github.com/Alneos/vega-sub001/deck"
	"github.com/Alneos/vega-sub001/im"
)

// parseExecutiveSection reads KEY=VALUE / KEY VALUE pairs up to (and
// including) BEGIN BULK, recognising SUBCASE (pushes an analysis built
// from the context accumulated so far) and the three direct-matrix
// declarations, per spec.md §4.5. It shares the bulk section's
// tokeniser: an executive "card" is just a keyword plus its trailing
// fields joined into one string, exactly as
// original_source/Nastran/NastranParser.cpp's parseExecutiveSection
// reads it.
func (p *Parser) parseExecutiveSection(context map[string]string) error {
	subcaseFound := false
	for {
		tok := p.cur()
		if tok.NextSymbolType() != deck.SymKeyword {
			return nil
		}
		keyword := tok.Keyword()
		switch {
		case keyword == "BEGIN":
			p.skipCard(tok)
			if !subcaseFound {
				return p.addAnalysis(context, 0)
			}
			return nil
		case keyword == "CEND" || keyword == "TITLE" || keyword == "SUBTITLE" || keyword == "LABEL":
			p.skipCard(tok)
		case keyword == "K2GG" || keyword == "M2GG" || keyword == "B2GG":
			if err := p.parseDirectMatrix(tok, keyword); err != nil {
				return err
			}
		case keyword == "SUBCASE":
			subcaseFound = true
			// readSubcaseBody stops after consuming the next SUBCASE
			// keyword, so keep reading subcases until it reports done.
			for {
				subcaseID, _ := tok.NextInt(true, 0)
				p.skipCard(tok)
				sub := make(map[string]string, len(context))
				for k, v := range context {
					sub[k] = v
				}
				done, err := p.readSubcaseBody(sub)
				if err != nil {
					return err
				}
				if err := p.addAnalysis(sub, subcaseID); err != nil {
					return err
				}
				if done {
					return nil
				}
				tok = p.cur()
			}
		default:
			context[keyword] = p.readLine(tok)
		}
	}
}

// readSubcaseBody accumulates KEY=VALUE overrides until the next SUBCASE
// or BEGIN BULK, per NastranParser.cpp's parseSubcase. It reports true
// once BEGIN BULK itself has been consumed, so the caller knows not to
// read any further executive cards.
func (p *Parser) readSubcaseBody(context map[string]string) (bool, error) {
	for {
		tok := p.cur()
		if tok.NextSymbolType() != deck.SymKeyword {
			return true, nil
		}
		keyword := tok.Keyword()
		if keyword == "SUBCASE" {
			return false, nil
		}
		if keyword == "BEGIN" {
			p.skipCard(tok)
			return true, nil
		}
		context[keyword] = p.readLine(tok)
	}
}

// readLine joins every remaining field of the current card into one
// space-trimmed string.
func (p *Parser) readLine(tok *deck.Tokenizer) string {
	var b strings.Builder
	for tok.NextSymbolType() == deck.SymField {
		s, _ := tok.NextString(true)
		b.WriteString(s)
	}
	return strings.TrimSpace(b.String())
}

// parseDirectMatrix handles K2GG/M2GG/B2GG: registers an empty
// ElementSet of the corresponding matrix kind under the given name, to
// be filled in by the DMIG bulk cards that carry the actual coefficients
// (spec.md §4.3 step 3's DirectMatrix family). A companion, otherwise
// empty CellGroup anchors the ElementSet the way every other variant
// requires one.
func (p *Parser) parseDirectMatrix(tok *deck.Tokenizer, keyword string) error {
	name := p.readLine(tok)
	var kind im.ElementSetKind
	switch keyword {
	case "K2GG":
		kind = im.ElemStiffnessMatrix
	case "M2GG":
		kind = im.ElemMassMatrix
	default:
		kind = im.ElemDampingMatrix
	}
	group, err := p.model.Mesh.CreateCellGroup("", 0, keyword+" "+name)
	if err != nil {
		return err
	}
	set := im.NewElementSet(p.model.NextID(), 0, kind, im.Ref{Kind: im.RefCellGroup, ID: group.ID()})
	if err := p.model.AddElementSet(set); err != nil {
		return err
	}
	p.directMatrices[name] = set
	return nil
}

// addAnalysis builds the Analysis for one SOL/SUBCASE, translating SOL
// (or ANALYSIS, for SOL 200 optimisation decks) into an AnalysisKind and
// attaching every SPC*/MPC*/LOAD*-prefixed context entry, per spec.md
// §4.5.
func (p *Parser) addAnalysis(context map[string]string, subcaseID int) error {
	sol := strings.TrimSpace(context["SOL"])
	if sol == "200" || sol == "DESOPT" {
		switch strings.TrimSpace(context["ANALYSIS"]) {
		case "MODES":
			sol = "103"
		case "NLSTATIC":
			sol = "106"
		case "MFREQ":
			sol = "111"
		default:
			sol = "101"
		}
	}
	a := im.NewAnalysis(p.model.NextID(), subcaseID, solKind(sol))
	for key, value := range context {
		id, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			continue
		}
		switch {
		case key == "METHOD" || key == "FREQ" || key == "SDAMPING" || key == "NLPARM":
			// EIGR/EIGRL, FREQ1, TABDMP1 and NLPARM are bulk-data cards,
			// read only after this Case Control entry; resolve once the
			// whole bulk section has been seen (resolveAnalysisRefs).
			p.pendingAnalysisRefs = append(p.pendingAnalysisRefs, pendingAnalysisRef{analysis: a, key: key, originalID: id})
		case strings.HasPrefix(key, "SPC"):
			a.ActivateConstraintSet(p.findOrCreateConstraintSet(im.TagSPC, id).Ref())
		case strings.HasPrefix(key, "MPC"):
			a.ActivateConstraintSet(p.findOrCreateConstraintSet(im.TagMPC, id).Ref())
		case strings.HasPrefix(key, "DLOAD"):
			a.ActivateLoadSet(p.findOrCreateLoadSet(im.TagDLOAD, id).Ref())
		case strings.HasPrefix(key, "LOAD"):
			a.ActivateLoadSet(p.findOrCreateLoadSet(im.TagLOAD, id).Ref())
		}
	}
	return p.model.AddAnalysis(a)
}

// solKind maps a SOL number/name to an AnalysisKind, per spec.md §4.5's
// table (101/SESTATIC, 103/SEMODES, 106/NLSTATIC, 111/SEMFREQ).
func solKind(sol string) im.AnalysisKind {
	switch sol {
	case "103", "SEMODES":
		return im.AnalysisLinearModal
	case "106", "NLSTATIC":
		return im.AnalysisNonLinearMecaStat
	case "111", "SEMFREQ":
		return im.AnalysisLinearDynaModalFreq
	default: // 101, SESTATIC
		return im.AnalysisLinearMecaStat
	}
}
