// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nastran implements the Nastran-family (and Optistruct
// extension) dialect parser and writer, per SPEC_FULL.md §4.5/§4.6: a
// two-phase parser (executive section, then bulk section keyword
// dispatch) feeding an im.Model, and a fixed-column writer reusing the
// deck package's Line builder. The keyword dispatch table generalises
// ele/factory.go's string-keyed allocator registry (DESIGN.md); the
// parser's structure and per-keyword field layout is grounded on
// original_source/Nastran/NastranParser.cpp.
package nastran

import (
	"os"
	"path/filepath"

	"github.com/Alneos/vega-sub001/config"
	"github.com/Alneos/vega-sub001/deck"
	"github.com/Alneos/vega-sub001/im"
	"github.com/cpmech/gosl/chk"
)

// Parser holds the state shared by every bulk-keyword handler: the model
// under construction, the active translation mode, and the bookkeeping
// needed to resolve cards that reference each other out of declaration
// order (a property can be declared before or after the elements that
// use it, same for materials, tables, and load/constraint sets).
type Parser struct {
	model *im.Model
	mode  config.TranslationMode

	toks         []*deck.Tokenizer
	filePaths    []string        // parallel to toks, for resolving nested INCLUDEs
	includePaths map[string]bool // absolute paths currently open, for cycle detection

	properties      map[int]*propertyDef    // PID -> deferred property definition
	cellsByProperty map[int][]int           // PID -> cell ids collected as cells are parsed
	materials       map[int]*im.Material    // MID -> already-built Material
	valuesByID      map[int]im.Ref          // original TABLED1/TABDMP1/DPHASE id -> Value ref
	loadSets        map[loadSetKey]*im.LoadSet
	constraintSets  map[constraintSetKey]*im.ConstraintSet
	directMatrices  map[string]*im.ElementSet // K2GG/M2GG/B2GG name -> ElementSet, filled in by DMIG

	freqBands     map[int]*im.FrequencySearch // EIGR/EIGRL original id -> search descriptor
	freqValues    map[int]*im.FrequencyValues // FREQ1 original id -> explicit frequency list
	modalDampings map[int]*im.ModalDamping    // TABDMP1 original id -> damping descriptor
	nlStrategies  map[int]*im.NonLinearStrategy // NLPARM original id -> increment strategy

	loadingsByOriginalID map[int]im.Ref // RLOAD2's own loadset id -> its DynamicExcitation Loading ref, for DLOAD

	idSets map[int][]int // SET/SURF original id -> member node or element ids

	spcdEntries        []spcdEntry          // recorded for the post-bulk SPCD-override resolution pass
	rload2Entries      []rload2Entry        // recorded for the post-bulk RLOAD2 resolution pass
	dloadEntries       []dloadEntry         // recorded for the post-bulk DLOAD combination resolution pass
	pendingAnalysisRefs []pendingAnalysisRef // CaseControl keys (METHOD/FREQ/SDAMPING/NLPARM) resolved post-bulk
}

// dloadEntry records one DLOAD card's (loadsetID, rload2ID) scale-1 term.
type dloadEntry struct {
	loadsetID int
	rload2ID  int
}

// pendingAnalysisRef records a Case-Control key that names a bulk-data
// card (EIGR/EIGRL, FREQ1, TABDMP1, NLPARM) that may not have been parsed
// yet when the owning Analysis was built, since Case Control precedes
// Bulk Data in deck order.
type pendingAnalysisRef struct {
	analysis   *im.Analysis
	key        string // "METHOD", "FREQ", "SDAMPING", "NLPARM"
	originalID int
}

// rload2Entry records an RLOAD2 card's references for resolution once
// every TABLED1/DPHASE card has been seen, for the same reason.
type rload2Entry struct {
	loadingID      int
	loadsetID      int
	dareaRef       im.Ref
	dphaseRef      im.Ref
	hasDphaseRef   bool
	dphaseOriginal int
	tableOriginal  int
}

// loadSetKey/constraintSetKey address a set by its original (user-facing)
// id; the tag disambiguates decks that reuse the same id across LOAD and
// SPC namespaces (legal in Nastran, since they are separate id spaces).
type loadSetKey struct {
	tag im.SetTypeTag
	id  int
}
type constraintSetKey struct {
	tag im.SetTypeTag
	id  int
}

// NewParser builds a Parser ready to read one deck (and any files it
// INCLUDEs) into a fresh im.Model named name.
func NewParser(name string, mode config.TranslationMode) *Parser {
	return &Parser{
		model:           im.New(name),
		mode:            mode,
		includePaths:    make(map[string]bool),
		properties:      make(map[int]*propertyDef),
		cellsByProperty: make(map[int][]int),
		materials:       make(map[int]*im.Material),
		valuesByID:      make(map[int]im.Ref),
		loadSets:        make(map[loadSetKey]*im.LoadSet),
		constraintSets:  make(map[constraintSetKey]*im.ConstraintSet),
		directMatrices:  make(map[string]*im.ElementSet),
		freqBands:       make(map[int]*im.FrequencySearch),
		freqValues:      make(map[int]*im.FrequencyValues),
		modalDampings:   make(map[int]*im.ModalDamping),
		nlStrategies:    make(map[int]*im.NonLinearStrategy),
		loadingsByOriginalID: make(map[int]im.Ref),
		idSets:          make(map[int][]int),
	}
}

// Parse reads path (and any INCLUDE files it names) and returns the
// populated model. The mesh and bulk-data entities are left exactly as
// parsed; running Model.Finish is the caller's responsibility.
func Parse(path string, mode config.TranslationMode) (*im.Model, error) {
	name := filepath.Base(path)
	p := NewParser(name, mode)
	if err := p.pushFile(path); err != nil {
		return nil, err
	}
	context := make(map[string]string)
	if err := p.parseExecutiveSection(context); err != nil {
		return nil, err
	}
	if err := p.parseBulkSection(); err != nil {
		return nil, err
	}
	if err := p.resolveAnalysisRefs(); err != nil {
		return nil, err
	}
	if err := p.resolveRload2s(); err != nil {
		return nil, err
	}
	if err := p.resolveDloads(); err != nil {
		return nil, err
	}
	if err := p.flushSets(); err != nil {
		return nil, err
	}
	if err := p.resolveProperties(); err != nil {
		return nil, err
	}
	if err := p.resolveSPCDOverrides(); err != nil {
		return nil, err
	}
	return p.model, nil
}

// cur returns the innermost (currently reading) tokenizer.
func (p *Parser) cur() *deck.Tokenizer { return p.toks[len(p.toks)-1] }

// pushFile opens path (resolved relative to the currently open file, if
// any) and pushes a new tokenizer reading it, per spec.md §4.5's include
// resolution rule.
func (p *Parser) pushFile(path string) error {
	resolved := path
	if len(p.filePaths) > 0 {
		resolved = filepath.Join(filepath.Dir(p.filePaths[len(p.filePaths)-1]), path)
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return config.NewIOError("resolve", path, err)
	}
	if p.includePaths[abs] {
		return chk.Err("nastran: circular INCLUDE of %q", abs)
	}
	f, err := os.Open(resolved)
	if err != nil {
		return config.NewIOError("open", resolved, err)
	}
	p.includePaths[abs] = true
	p.toks = append(p.toks, deck.NewTokenizer(f, resolved, p.mode))
	p.filePaths = append(p.filePaths, abs)
	return nil
}

// popInclude closes the innermost stream and resumes the parent, per
// spec.md §4.5. Reports false once the top-level deck itself is
// exhausted.
func (p *Parser) popInclude() bool {
	if len(p.toks) <= 1 {
		return false
	}
	delete(p.includePaths, p.filePaths[len(p.filePaths)-1])
	p.toks = p.toks[:len(p.toks)-1]
	p.filePaths = p.filePaths[:len(p.filePaths)-1]
	return true
}
