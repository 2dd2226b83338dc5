// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package deck

import (
	"strings"
	"testing"

	"github.com/Alneos/vega-sub001/config"
	"github.com/cpmech/gosl/chk"
)

func Test_small_field_card(tst *testing.T) {
	chk.PrintTitle("deck_small_field_card")
	src := "GRID    1       0       1.0     2.0     3.0     \n"
	tok := NewTokenizer(strings.NewReader(src), "t.nas", config.Strict)

	if tok.NextSymbolType() != SymKeyword {
		tst.Fatalf("expected a keyword symbol first")
	}
	if kw := tok.Keyword(); kw != "GRID" {
		tst.Errorf("expected keyword GRID, got %q", kw)
	}
	id, err := tok.NextInt(false)
	if err != nil || id != 1 {
		tst.Errorf("expected id 1, got %d (%v)", id, err)
	}
	cs, err := tok.NextInt(true, 0)
	if err != nil || cs != 0 {
		tst.Errorf("expected cs 0, got %d (%v)", cs, err)
	}
	x, err := tok.NextDouble(false)
	if err != nil || x != 1.0 {
		tst.Errorf("expected x 1.0, got %v (%v)", x, err)
	}
	if tok.NextSymbolType() != SymField {
		tst.Errorf("expected two more data fields before EOF")
	}
}

func Test_continuation_card(tst *testing.T) {
	chk.PrintTitle("deck_continuation_card")
	src := "" +
		"CBAR    10      1       100     101     1.0     0.0     0.0             +C1     \n" +
		"+C1     2.0     \n"
	tok := NewTokenizer(strings.NewReader(src), "t.nas", config.Strict)

	if tok.NextSymbolType() != SymKeyword {
		tst.Fatalf("expected a keyword symbol")
	}
	if kw := tok.Keyword(); kw != "CBAR" {
		tst.Errorf("expected keyword CBAR, got %q", kw)
	}
	var vals []string
	for tok.NextSymbolType() == SymField {
		s, err := tok.NextString(true)
		if err != nil {
			tst.Fatalf("next_string: %v", err)
		}
		vals = append(vals, s)
	}
	if len(vals) != 16 {
		tst.Fatalf("expected 16 fields spanning the continuation, got %d: %v", len(vals), vals)
	}
	if vals[8] != "2.0" {
		tst.Errorf("expected the continuation's field to be 2.0, got %q", vals[8])
	}
	if tok.NextSymbolType() != SymEOF {
		tst.Errorf("expected end of stream after the continued card")
	}
}

func Test_glued_exponent(tst *testing.T) {
	chk.PrintTitle("deck_glued_exponent")
	cases := map[string]float64{
		"1.23+4":  1.23e4,
		"-2.5-3":  -2.5e-3,
		"1.0":     1.0,
		"3":       3.0,
	}
	for in, want := range cases {
		got, err := parseReal(in)
		if err != nil {
			tst.Errorf("parseReal(%q): %v", in, err)
			continue
		}
		if got != want {
			tst.Errorf("parseReal(%q) = %v, want %v", in, got, want)
		}
	}
}

func Test_free_field_card(tst *testing.T) {
	chk.PrintTitle("deck_free_field_card")
	src := "GRID, 7, 0, 1.5, 2.5, 3.5\n"
	tok := NewTokenizer(strings.NewReader(src), "t.nas", config.Strict)
	if tok.NextSymbolType() != SymKeyword {
		tst.Fatalf("expected a keyword symbol")
	}
	if kw := tok.Keyword(); kw != "GRID" {
		tst.Errorf("expected keyword GRID, got %q", kw)
	}
	id, err := tok.NextInt(false)
	if err != nil || id != 7 {
		tst.Errorf("expected id 7, got %d (%v)", id, err)
	}
}

func Test_line_roundtrip(tst *testing.T) {
	chk.PrintTitle("deck_line_roundtrip")
	l := NewLine("GRID", false)
	l.PutInt(1).PutInt(0).PutDouble(1.0).PutDouble(2.0).PutDouble(3.0)
	lines := l.Render()
	if len(lines) != 1 {
		tst.Fatalf("expected a single physical line, got %d", len(lines))
	}
	tok := NewTokenizer(strings.NewReader(lines[0]+"\n"), "rt.nas", config.Strict)
	if tok.NextSymbolType() != SymKeyword || tok.Keyword() != "GRID" {
		tst.Fatalf("round-tripped line does not start with GRID: %q", lines[0])
	}
	id, err := tok.NextInt(false)
	if err != nil || id != 1 {
		tst.Errorf("round-tripped id = %d (%v), want 1", id, err)
	}
}
