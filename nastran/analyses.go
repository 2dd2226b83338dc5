// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nastran

import (
	"strings"

	"github.com/Alneos/vega-sub001/deck"
	"github.com/Alneos/vega-sub001/im"
)

func init() {
	register("EIGR", parseEIGR)
	register("EIGRL", parseEIGRL)
	register("FREQ1", parseFREQ1)
	register("NLPARM", parseNLPARM)
	register("PARAM", parsePARAM)
	register("INCLUDE", parseINCLUDE)
}

// parseEIGR reads EIGR SID METHOD F1 F2 NE ..., a Lanczos-style modal
// search over [F1, F2] keeping at most NE modes, per
// NastranParser.cpp's parseEIGR/parseEIGRL (both build the same search
// descriptor; METHOD only distinguishes solver internals this package
// does not model).
func parseEIGR(p *Parser, tok *deck.Tokenizer) error {
	sid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	if _, err := tok.NextString(true); err != nil { // METHOD
		return err
	}
	lower, err := tok.NextDouble(true, 0)
	if err != nil {
		return err
	}
	upper, err := tok.NextDouble(true, 0)
	if err != nil {
		return err
	}
	numMax, err := tok.NextInt(true, 0)
	if err != nil {
		return err
	}
	p.freqBands[sid] = &im.FrequencySearch{Band: &im.FrequencyBand{Lower: lower, Upper: upper, MaxModes: numMax}}
	return nil
}

// parseEIGRL reads EIGRL SID F1 F2 ND MSGLVL MAXSET SHFSCL NORM; the
// trailing four fields are read and discarded, per
// NastranParser.cpp's parseEIGRL.
func parseEIGRL(p *Parser, tok *deck.Tokenizer) error {
	sid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	lower, err := tok.NextDouble(true, 0)
	if err != nil {
		return err
	}
	upper, err := tok.NextDouble(true, 0)
	if err != nil {
		return err
	}
	numMax, err := tok.NextInt(true, 0)
	if err != nil {
		return err
	}
	p.freqBands[sid] = &im.FrequencySearch{Band: &im.FrequencyBand{Lower: lower, Upper: upper, MaxModes: numMax}}
	return nil
}

// parseFREQ1 reads FREQ1 SID F1 DF NDF, an explicit start/step/count
// excitation frequency list, per NastranParser.cpp's parseFREQ1.
func parseFREQ1(p *Parser, tok *deck.Tokenizer) error {
	sid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	start, err := tok.NextDouble(false)
	if err != nil {
		return err
	}
	step, err := tok.NextDouble(false)
	if err != nil {
		return err
	}
	count, err := tok.NextInt(true, 1)
	if err != nil {
		return err
	}
	hz := make([]float64, count+1)
	for i := range hz {
		hz[i] = start + float64(i)*step
	}
	p.freqValues[sid] = &im.FrequencyValues{Hz: hz}
	return nil
}

// parseNLPARM reads NLPARM SID NINC ...: only the increment count is
// kept, per NastranParser.cpp's parseNLPARM.
func parseNLPARM(p *Parser, tok *deck.Tokenizer) error {
	sid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	numIncrements, err := tok.NextInt(true, 10)
	if err != nil {
		return err
	}
	p.nlStrategies[sid] = &im.NonLinearStrategy{NumIncrements: numIncrements}
	return nil
}

// parsePARAM reads PARAM NAME VALUE. Every parameter recognised by
// NastranParser.cpp's parsePARAM only adjusts solver-internal behaviour
// (singularity handling, mass lumping, reference points, ...) this
// package does not model; the name is read so a malformed card still
// desynchronises cleanly, and the value is left for the registry's
// trailing-field skip.
func parsePARAM(p *Parser, tok *deck.Tokenizer) error {
	_, err := tok.NextString(false)
	return err
}

// parseINCLUDE reads INCLUDE 'path', pushing path as the new innermost
// stream, per spec.md §4.5's include resolution rule.
func parseINCLUDE(p *Parser, tok *deck.Tokenizer) error {
	raw, err := tok.NextString(false)
	if err != nil {
		return err
	}
	path := strings.Trim(strings.TrimSpace(raw), "'\"")
	return p.pushFile(path)
}

// resolveAnalysisRefs attaches the Case Control keys recorded during
// parseExecutiveSection (METHOD/FREQ/SDAMPING/NLPARM) to their Analysis,
// now that every EIGR/EIGRL/FREQ1/TABDMP1/NLPARM bulk card has been
// read. Case Control precedes Bulk Data in deck order, so these
// references cannot be resolved any earlier.
func (p *Parser) resolveAnalysisRefs() error {
	for _, ref := range p.pendingAnalysisRefs {
		switch ref.key {
		case "METHOD":
			if search, ok := p.freqBands[ref.originalID]; ok {
				ref.analysis.Search = search
			}
		case "FREQ":
			if values, ok := p.freqValues[ref.originalID]; ok {
				switch ref.analysis.Kind {
				case im.AnalysisLinearDynaDirectFreq:
					ref.analysis.DirectExcitationHz = values
				default:
					ref.analysis.ExcitationHz = values
				}
			}
		case "SDAMPING":
			if damping, ok := p.modalDampings[ref.originalID]; ok {
				ref.analysis.Damping = damping
			}
		case "NLPARM":
			if strategy, ok := p.nlStrategies[ref.originalID]; ok {
				ref.analysis.Strategy = strategy
			}
		}
	}
	return nil
}
