// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package writerutil holds the line-accumulator shared by the
// aster and systus writers: both emit a free-form, keyword-block
// text language (Code_Aster's Python-like .comm, Systus' ASCII
// .DAT/.ASC) rather than Nastran's fixed-field cards, so neither
// needs deck.Line's column bookkeeping. It plays the same role for
// those two writers that deck.Line plays for nastran: one shared
// representation of "a block of text lines", built line-by-line and
// rendered once at the end, following inp/mat.go's and inp/func.go's
// convention of a String() method that builds its result through
// io.Sf rather than manual byte-buffer concatenation.
package writerutil

import "github.com/cpmech/gosl/io"

// Script accumulates the lines of a generated solver script. Grouping
// calls (Section) are markers of intent only: they insert a blank line
// so the rendered file reads as what the teacher's source files' own
// generated decks look like (blocks separated by blank lines, not a
// single run-on stream).
type Script struct {
	lines []string
}

// New builds an empty Script.
func New() *Script { return &Script{} }

// Line appends one formatted line.
func (s *Script) Line(format string, args ...interface{}) *Script {
	s.lines = append(s.lines, io.Sf(format, args...))
	return s
}

// Raw appends a line verbatim, with no formatting.
func (s *Script) Raw(line string) *Script {
	s.lines = append(s.lines, line)
	return s
}

// Blank appends an empty line, used to separate the major blocks of a
// generated script (one AFFE_* command, one DEFI_* command, ...).
func (s *Script) Blank() *Script {
	s.lines = append(s.lines, "")
	return s
}

// Comment appends a line prefixed by the dialect's comment marker.
func (s *Script) Comment(marker, text string) *Script {
	return s.Line("%s %s", marker, text)
}

// Append splices another Script's lines in, for helpers that build a
// sub-block independently before it is known whether it is needed.
func (s *Script) Append(other *Script) *Script {
	s.lines = append(s.lines, other.lines...)
	return s
}

// Lines returns the accumulated lines, ready to be joined by "\n" and
// written to a file.
func (s *Script) Lines() []string { return s.lines }

// String renders the script as a single newline-joined string.
func (s *Script) String() string {
	out := ""
	for i, l := range s.lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}
