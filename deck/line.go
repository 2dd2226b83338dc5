// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package deck

import (
	"fmt"
	"strconv"
	"strings"
)

// Line accumulates fields for one logical Nastran-family card and renders
// them as one or more physical lines, wrapping into continuations once a
// physical line's slots are full, per spec.md §4.6's "fixed-column writer
// helper".
type Line struct {
	width    FieldWidth
	keyword  string
	fields   []string
	contTag  string
	contSeed int
}

// NewLine starts a new card with the given keyword and field regime. large
// selects the 16-column/5-slot regime (the keyword gets a trailing "*").
func NewLine(keyword string, large bool) *Line {
	width := SmallField
	if large {
		width = LargeField
	}
	return &Line{width: width, keyword: keyword}
}

// PutInt appends an integer field.
func (l *Line) PutInt(v int) *Line {
	l.fields = append(l.fields, strconv.Itoa(v))
	return l
}

// PutBlank appends an empty field.
func (l *Line) PutBlank() *Line {
	l.fields = append(l.fields, "")
	return l
}

// PutString appends a verbatim field, truncated to the slot width if
// oversized.
func (l *Line) PutString(s string) *Line {
	if len(s) > int(l.width) {
		s = s[:int(l.width)]
	}
	l.fields = append(l.fields, s)
	return l
}

// PutDouble appends a real field, formatted as densely as the slot width
// allows (spec.md §4.6: "converts reals to the densest representation
// fitting the field").
func (l *Line) PutDouble(v float64) *Line {
	l.fields = append(l.fields, FormatReal(v, int(l.width)))
	return l
}

// FormatReal renders v into the shortest decimal representation that fits
// width columns, falling back to the compact glued-exponent form
// ("1.23+4") when standard scientific notation's "e" would not fit.
func FormatReal(v float64, width int) string {
	for prec := width - 2; prec >= 0; prec-- {
		s := strconv.FormatFloat(v, 'g', prec, 64)
		if len(s) <= width {
			return padOrGlue(s, width)
		}
	}
	s := strconv.FormatFloat(v, 'e', 2, 64)
	return padOrGlue(s, width)
}

// padOrGlue fits s into width columns: if s already fits, it is returned
// as-is (callers right-align at emission time); if s is scientific notation
// too wide because of the "e", the exponent letter is dropped so "1.23e+04"
// becomes "1.23+04", matching spec.md §4.6's compact form.
func padOrGlue(s string, width int) string {
	if len(s) <= width {
		return s
	}
	glued := strings.Replace(s, "e", "", 1)
	glued = strings.Replace(glued, "E", "", 1)
	if len(glued) > width {
		glued = glued[:width]
	}
	return glued
}

// Render produces the physical lines for this card, wrapping into
// continuations once the current line's data slots (slotsPerLine-2, since
// slot 0 is the keyword and the last slot is the continuation tag) are
// full.
func (l *Line) Render() []string {
	dataPerLine := l.width.slotsPerLine() - 2
	var out []string
	keyword := l.keyword
	if l.width == LargeField {
		keyword += "*"
	}
	contSeq := 0
	for start := 0; start < len(l.fields) || start == 0; start += dataPerLine {
		end := start + dataPerLine
		if end > len(l.fields) {
			end = len(l.fields)
		}
		chunk := l.fields[start:end]
		more := end < len(l.fields)
		var b strings.Builder
		b.WriteString(padField(keyword, int(l.width)))
		for _, f := range chunk {
			b.WriteString(padField(f, int(l.width)))
		}
		for i := len(chunk); i < dataPerLine; i++ {
			b.WriteString(padField("", int(l.width)))
		}
		if more {
			b.WriteString(padField(fmt.Sprintf("+%d", contSeq), int(l.width)))
		}
		out = append(out, strings.TrimRight(b.String(), " "))
		if !more {
			break
		}
		contSeq++
		keyword = fmt.Sprintf("+%d", contSeq-1)
	}
	return out
}

func padField(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}
