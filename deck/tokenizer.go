// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package deck implements the card-based, fixed-column tokeniser shared by
// every Nastran-family dialect (SPEC_FULL.md §4.4), plus the symmetrical
// fixed-column Line builder used by the writers (§4.6). Both sides agree on
// the same column-width arithmetic, which is why they live in one package
// rather than split across reader/writer.
package deck

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/Alneos/vega-sub001/config"
	"github.com/cpmech/gosl/chk"
)

// FieldWidth is the column width of one field-regime, per spec.md §4.4:
// small-field cards use 8-column fields (10 per line), large-field cards
// (keyword suffixed with "*") use 16-column fields (5 per line). Every slot
// on a physical line shares one width, including the keyword and
// continuation slots, so a line always totals 80 columns either way.
type FieldWidth int

const (
	SmallField FieldWidth = 8
	LargeField FieldWidth = 16
)

func (w FieldWidth) slotsPerLine() int {
	if w == LargeField {
		return 5
	}
	return 10
}

// SymbolType is the tokeniser's lookahead classification, per spec.md §4.4's
// next_symbol_type.
type SymbolType int

const (
	SymKeyword SymbolType = iota
	SymField
	SymEOF
)

// Tokenizer reads cards (a keyword line plus its continuations) from one
// deck stream and hands out fields one at a time, per spec.md §4.4.
type Tokenizer struct {
	file   string
	mode   config.TranslationMode
	reader *bufio.Scanner
	lineNo int

	peeked   *string
	peekedOk bool

	keyword        string
	keywordLine    int
	fields         []string
	idx            int
	pendingKeyword bool
	eof            bool
}

// NewTokenizer builds a Tokenizer over r. file names the stream for
// diagnostics (the deck path, or an included file's path).
func NewTokenizer(r io.Reader, file string, mode config.TranslationMode) *Tokenizer {
	return &Tokenizer{file: file, mode: mode, reader: bufio.NewScanner(r)}
}

// Line returns the physical line number of the card currently being read,
// for diagnostics.
func (t *Tokenizer) Line() int { return t.keywordLine }

// File returns the stream's name, for diagnostics raised by the caller
// (e.g. an unknown bulk keyword, which the tokeniser itself has no
// opinion on).
func (t *Tokenizer) File() string { return t.file }

// readPhysicalLine returns the next non-blank, non-comment raw line, or
// ok=false at end of stream. Comment lines begin with "$" (spec.md §6.3).
func (t *Tokenizer) readPhysicalLine() (string, bool) {
	if t.peekedOk {
		line := *t.peeked
		t.peeked = nil
		t.peekedOk = false
		return line, true
	}
	for t.reader.Scan() {
		t.lineNo++
		line := t.reader.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "$") {
			continue
		}
		return line, true
	}
	return "", false
}

// unreadLine pushes line back so the next readPhysicalLine call returns it
// again, used when a continuation lookahead turns out to belong to the next
// card.
func (t *Tokenizer) unreadLine(line string) {
	t.peeked = &line
	t.peekedOk = true
	t.lineNo--
}

// splitSlots splits line into n fixed-width slots of width cols, trimming
// each. A line shorter than n*cols yields empty trailing slots.
func splitSlots(line string, cols, n int) []string {
	slots := make([]string, n)
	for i := 0; i < n; i++ {
		start := i * cols
		if start >= len(line) {
			continue
		}
		end := start + cols
		if end > len(line) {
			end = len(line)
		}
		slots[i] = strings.TrimSpace(line[start:end])
	}
	return slots
}

// splitFreeField splits a comma-separated line into slots, tolerating
// surrounding whitespace (spec.md §4.4 free-field regime).
func splitFreeField(line string) []string {
	parts := strings.Split(line, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

// composeCard reads the next logical card — a keyword line plus any
// continuation lines — into t.keyword/t.fields, per spec.md §4.4's
// continuation rule: a non-empty continuation slot carries a tag, and the
// next physical line whose first slot is non-empty continues the card.
func (t *Tokenizer) composeCard() {
	line, ok := t.readPhysicalLine()
	if !ok {
		t.eof = true
		return
	}
	t.keywordLine = t.lineNo

	freeField := strings.Contains(line, ",")
	width := SmallField
	keywordSlot := strings.TrimSpace(firstSlot(line, freeField))
	if !freeField && strings.HasSuffix(keywordSlot, "*") {
		width = LargeField
	}

	if !freeField && (strings.Contains(line, "=") || strings.Contains(keywordSlot, " ")) {
		// Executive and case-control lines ("SOL 101", "SPC=10",
		// "BEGIN BULK") are split on blanks and "=", not on columns.
		parts := strings.FieldsFunc(line, func(r rune) bool { return r == ' ' || r == '\t' || r == '=' })
		t.keyword, t.fields, t.idx, t.pendingKeyword = parts[0], parts[1:], 0, true
		return
	}

	keyword, data, contTag := t.splitCard(line, freeField, width)
	keyword = strings.TrimSuffix(keyword, "*")

	for contTag != "" {
		next, ok := t.readPhysicalLine()
		if !ok {
			break
		}
		nextFirst := strings.TrimSpace(firstSlot(next, freeField))
		if nextFirst == "" {
			t.unreadLine(next)
			break
		}
		_, moreData, nextTag := t.splitCard(next, freeField, width)
		data = append(data, moreData...)
		contTag = nextTag
	}

	t.keyword = keyword
	t.fields = data
	t.idx = 0
	t.pendingKeyword = true
}

// firstSlot returns the raw (untrimmed-width) leading token of line, used
// only to decide field regime and continuation before the full split.
func firstSlot(line string, freeField bool) string {
	if freeField {
		if i := strings.IndexByte(line, ','); i >= 0 {
			return line[:i]
		}
		return line
	}
	if len(line) > int(SmallField) {
		return line[:SmallField]
	}
	return line
}

// splitCard splits one physical line into (keyword, data fields,
// continuation tag) for the given regime.
func (t *Tokenizer) splitCard(line string, freeField bool, width FieldWidth) (keyword string, data []string, contTag string) {
	if freeField {
		slots := splitFreeField(line)
		if len(slots) == 0 {
			return "", nil, ""
		}
		keyword = slots[0]
		rest := slots[1:]
		if len(rest) > 0 && rest[len(rest)-1] == "" && strings.HasSuffix(strings.TrimRight(line, " \t"), ",") {
			contTag = ","
			rest = rest[:len(rest)-1]
		}
		return keyword, rest, contTag
	}
	n := width.slotsPerLine()
	slots := splitSlots(line, int(width), n)
	keyword = slots[0]
	data = slots[1 : n-1]
	contTag = slots[n-1]
	return keyword, data, contTag
}

// NextSymbolType reports what the next call to Keyword/NextInt/NextDouble/
// NextString would yield, without consuming it.
func (t *Tokenizer) NextSymbolType() SymbolType {
	if t.pendingKeyword {
		return SymKeyword
	}
	if t.idx < len(t.fields) {
		return SymField
	}
	if t.eof {
		return SymEOF
	}
	t.composeCard()
	if t.eof {
		return SymEOF
	}
	return SymKeyword
}

// Keyword returns the current card's keyword and advances past it into
// field-consuming mode. Valid only when NextSymbolType() == SymKeyword.
func (t *Tokenizer) Keyword() string {
	t.pendingKeyword = false
	return t.keyword
}

// nextRawField returns the next field, trimmed, consuming it. Returns
// ok=false if no field remains in the current card.
func (t *Tokenizer) nextRawField() (string, bool) {
	if t.pendingKeyword || t.idx >= len(t.fields) {
		return "", false
	}
	f := t.fields[t.idx]
	t.idx++
	return f, true
}

// IsNextEmpty reports whether the next field (without consuming it) is
// blank or absent.
func (t *Tokenizer) IsNextEmpty() bool {
	if t.pendingKeyword || t.idx >= len(t.fields) {
		return true
	}
	return t.fields[t.idx] == ""
}

// IsEmptyUntilNextKeyword reports whether every remaining field of the
// current card is blank.
func (t *Tokenizer) IsEmptyUntilNextKeyword() bool {
	for i := t.idx; i < len(t.fields); i++ {
		if t.fields[i] != "" {
			return false
		}
	}
	return true
}

// IsNextInt reports whether the next field parses as an integer, without
// consuming it.
func (t *Tokenizer) IsNextInt() bool {
	if t.pendingKeyword || t.idx >= len(t.fields) {
		return false
	}
	_, err := strconv.Atoi(t.fields[t.idx])
	return err == nil
}

// IsNextDouble reports whether the next field parses as a real, without
// consuming it.
func (t *Tokenizer) IsNextDouble() bool {
	if t.pendingKeyword || t.idx >= len(t.fields) {
		return false
	}
	_, err := parseReal(t.fields[t.idx])
	return err == nil
}

// NextInt consumes and parses the next field as an integer. When optional
// is true and the field is blank, def (or 0) is returned instead of an
// error.
func (t *Tokenizer) NextInt(optional bool, def ...int) (int, error) {
	f, ok := t.nextRawField()
	if !ok || f == "" {
		if optional {
			if len(def) > 0 {
				return def[0], nil
			}
			return 0, nil
		}
		return 0, t.handleParsingError("expected an integer field, found none")
	}
	v, err := strconv.Atoi(f)
	if err != nil {
		return 0, t.handleParsingError("%q is not a valid integer", f)
	}
	return v, nil
}

// NextDouble consumes and parses the next field as a real, per the glued
// exponent rule (spec.md §4.4: "1.23+4" parses as 1.23e+4).
func (t *Tokenizer) NextDouble(optional bool, def ...float64) (float64, error) {
	f, ok := t.nextRawField()
	if !ok || f == "" {
		if optional {
			if len(def) > 0 {
				return def[0], nil
			}
			return 0, nil
		}
		return 0, t.handleParsingError("expected a real field, found none")
	}
	v, err := parseReal(f)
	if err != nil {
		return 0, t.handleParsingError("%q is not a valid real", f)
	}
	return v, nil
}

// NextString consumes the next field verbatim (trimmed).
func (t *Tokenizer) NextString(optional bool, def ...string) (string, error) {
	f, ok := t.nextRawField()
	if !ok || f == "" {
		if optional {
			if len(def) > 0 {
				return def[0], nil
			}
			return "", nil
		}
		return "", t.handleParsingError("expected a field, found none")
	}
	return f, nil
}

// gluedExponent matches a real with the exponent glued to the mantissa,
// e.g. "1.23+4" or "-2.5-3", with no "E"/"e" present.
var gluedExponent = regexp.MustCompile(`^([+-]?[0-9]*\.?[0-9]+)([+-][0-9]+)$`)

// parseReal parses a Nastran-style real field, recognising the glued
// exponent form spec.md §4.4 requires.
func parseReal(s string) (float64, error) {
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}
	if m := gluedExponent.FindStringSubmatch(s); m != nil {
		return strconv.ParseFloat(m[1]+"e"+m[2], 64)
	}
	return 0, chk.Err("deck: %q is not a real", s)
}

// handleParsingError implements spec.md §4.4's failure mode: STRICT raises
// (returns the ParsingError up the call stack); MESH_AT_LEAST and
// BEST_EFFORT both return a SkipCommand sentinel so the dialect parser can
// resynchronise at the next keyword. Whether MESH_AT_LEAST additionally
// marks the model mesh-only, and whether BEST_EFFORT logs a warning, is the
// dialect parser's responsibility — the tokeniser has no handle on the IM
// or the logging sink.
func (t *Tokenizer) handleParsingError(format string, a ...interface{}) error {
	pe := config.NewParsingError(t.file, t.keywordLine, t.keyword, format, a...)
	if t.mode == config.Strict {
		return pe
	}
	return config.NewSkipCommand(pe.Error())
}
