// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nastran

import (
	"github.com/Alneos/vega-sub001/config"
	"github.com/Alneos/vega-sub001/deck"
)

// bulkHandler parses one bulk-data card (its keyword already consumed)
// from tok into p's model.
type bulkHandler func(p *Parser, tok *deck.Tokenizer) error

// bulkRegistry is the keyword->handler dispatch table, filled by each
// card file's init(), generalising ele/factory.go's allocators map from a
// string-keyed element-type registry to a string-keyed card registry.
var bulkRegistry = make(map[string]bulkHandler)

// register binds keyword to h. Panics on a duplicate registration, the
// same discipline ele.SetAllocator uses for a duplicate element name.
func register(keyword string, h bulkHandler) {
	if _, ok := bulkRegistry[keyword]; ok {
		panic("nastran: duplicate bulk handler for " + keyword)
	}
	bulkRegistry[keyword] = h
}

// parseBulkSection dispatches every card by keyword until every open
// stream (the deck plus any INCLUDEs) is exhausted, per spec.md §4.5.
func (p *Parser) parseBulkSection() error {
	for {
		tok := p.cur()
		if tok.NextSymbolType() == deck.SymEOF {
			if p.popInclude() {
				continue
			}
			return nil
		}
		keyword := tok.Keyword()
		handler, ok := bulkRegistry[keyword]
		if !ok {
			if p.mode == config.Strict {
				return config.NewParsingError(tok.File(), tok.Line(), keyword, "unknown bulk keyword %q", keyword)
			}
			p.skipCard(tok)
			continue
		}
		if err := handler(p, tok); err != nil {
			if _, skip := err.(*config.SkipCommand); skip {
				p.skipCard(tok)
				continue
			}
			return err
		}
		p.skipCard(tok)
	}
}

// skipCard discards any fields a handler left unconsumed, so a short
// handler (or one that bailed out via SkipCommand) never desynchronises
// the tokeniser against the next keyword.
func (p *Parser) skipCard(tok *deck.Tokenizer) {
	for tok.NextSymbolType() == deck.SymField {
		tok.NextString(true)
	}
}
