// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultreader

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/Alneos/vega-sub001/config"
	"github.com/Alneos/vega-sub001/im"
	"github.com/Alneos/vega-sub001/vegalog"
)

const noSubcase = -1

// section headers F06Parser recognises, matched as substrings after the
// usual run of collapsed whitespace a fixed-width report leaves behind.
const (
	headerDisplacement        = "D I S P L A C E M E N T   V E C T O R"
	headerEigenvalues         = "R E A L   E I G E N V A L U E S"
	headerComplexDisplacement = "C O M P L E X   D I S P L A C E M E N T   V E C T O R"
	complexDisplacementCols   = "POINT ID. TYPE T1 T2 T3 R1 R2 R3"
)

// readF06 walks a card-based reference-results file section by section,
// per F06Parser::parse: track the current SUBCASE/LOAD STEP/FREQUENCY,
// and on recognising a section header hand the rest of the section to
// its reader, which synthesises Assertions against the subcase's
// analysis.
func readF06(model *im.Model, path string, tolerance float64, mode config.TranslationMode, log *vegalog.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return config.NewIOError("open", path, err)
	}
	defer f.Close()

	sc := &f06Scanner{Scanner: bufio.NewScanner(f), path: path}
	subcase := noSubcase
	loadStep := -1.0
	hasLoadStep := false

	for sc.Scan() {
		line := sc.Text()
		upper := strings.ToUpper(line)

		if idx := strings.Index(upper, "SUBCASE"); idx >= 0 {
			if n, ok := parseSubcase(line[idx:]); ok {
				subcase = n
				hasLoadStep = false
			}
			continue
		}
		if idx := strings.Index(upper, "LOAD STEP ="); idx >= 0 {
			if v, err := strconv.ParseFloat(strings.TrimSpace(line[idx+len("LOAD STEP ="):]), 64); err == nil {
				loadStep, hasLoadStep = v, true
			}
			continue
		}

		var readErr error
		switch {
		case strings.Contains(line, headerDisplacement):
			readErr = readDisplacementSection(model, sc, subcase, tolerance, log)
		case strings.Contains(line, headerEigenvalues):
			readErr = readEigenvalueSection(model, sc, subcase, tolerance, log)
		case strings.Contains(line, headerComplexDisplacement):
			readErr = readComplexDisplacementSection(model, sc, subcase, loadStep, hasLoadStep, tolerance, log)
		default:
			continue
		}
		if readErr != nil {
			if mode == config.Strict {
				return readErr
			}
			log.Error("resultreader: %v", readErr)
		}
	}
	if err := sc.Err(); err != nil {
		return config.NewIOError("read", path, err)
	}
	return nil
}

// parseSubcase extracts the trailing integer from a line starting at
// its "SUBCASE" token, e.g. "SUBCASE 2" -> 2.
func parseSubcase(rest string) (int, bool) {
	fields := strings.Fields(rest)
	for _, f := range fields {
		if f == "SUBCASE" {
			continue
		}
		if n, err := strconv.Atoi(f); err == nil {
			return n, true
		}
	}
	return 0, false
}

// f06Scanner tracks the 1-based line number of the line last returned by
// Scan, for ParsingError's file/line/content diagnostics.
type f06Scanner struct {
	*bufio.Scanner
	path string
	line int
}

func (s *f06Scanner) Scan() bool {
	ok := s.Scanner.Scan()
	if ok {
		s.line++
	}
	return ok
}

func (s *f06Scanner) errf(format string, a ...interface{}) error {
	return config.NewParsingError(s.path, s.line, "", format, a...)
}

// readDisplacementSection skips to the POINT ID. column header that
// follows a DISPLACEMENT VECTOR header, then consumes data lines until a
// blank line, per F06Parser::readDisplacementSection.
// Each 8-token "nodeID G v1 v2 v3 v4 v5 v6" line emits 6
// NodalDisplacementAssertions, one per dof; values smaller than 1e-12 are
// rounded to zero to absorb solver print noise.
func readDisplacementSection(model *im.Model, sc *f06Scanner, subcase int, tolerance float64, log *vegalog.Logger) error {
	for sc.Scan() {
		if strings.Contains(sc.Text(), "POINT ID.") {
			break
		}
	}
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			return nil
		}
		tokens := strings.Fields(line)
		if len(tokens) != 8 {
			continue
		}
		if tokens[1] != "G" {
			continue
		}
		nodeID, err := strconv.Atoi(tokens[0])
		if err != nil {
			return sc.errf("expected a node id, got %q", tokens[0])
		}
		values := make([]float64, 6)
		for i := 0; i < 6; i++ {
			v, err := strconv.ParseFloat(tokens[2+i], 64)
			if err != nil {
				return sc.errf("expected a displacement value, got %q", tokens[2+i])
			}
			if v < 0 {
				if -v < 1e-12 {
					v = 0
				}
			} else if v < 1e-12 {
				v = 0
			}
			values[i] = v
		}
		analysis, ok := analysisFor(model, subcase)
		for i, v := range values {
			a := im.NewNodalDisplacementAssertion(model.NextID(), nodeID, im.DOF(i), v, tolerance)
			attach(model, analysis, ok, a, subcase, log)
		}
	}
	return nil
}

// readEigenvalueSection skips to the "ORDER" column header then reads
// 7-token mode rows, per F06Parser::readEigenvalueSection: "ORDER ... EXTRACTION
// EIGENVALUE RADIANS CYCLES ..." with the frequency value in the 5th token
// (index 4).
func readEigenvalueSection(model *im.Model, sc *f06Scanner, subcase int, tolerance float64, log *vegalog.Logger) error {
	for sc.Scan() {
		if strings.Contains(sc.Text(), "ORDER") {
			break
		}
	}
	analysis, ok := analysisFor(model, subcase)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			return nil
		}
		tokens := strings.Fields(line)
		if len(tokens) != 7 {
			continue
		}
		modeIndex, err := strconv.Atoi(tokens[0])
		if err != nil {
			return sc.errf("expected a mode number, got %q", tokens[0])
		}
		value, err := strconv.ParseFloat(tokens[4], 64)
		if err != nil {
			return sc.errf("expected a frequency value, got %q", tokens[4])
		}
		a := im.NewFrequencyAssertion(model.NextID(), modeIndex, value, tolerance)
		attach(model, analysis, ok, a, subcase, log)
	}
	return nil
}

// readComplexDisplacementSection skips to the POINT ID./TYPE column
// header, then consumes paired lines per F06Parser::readComplexDisplacementSection:
// a 9-token real-part row (values at token offset 3..8) immediately
// followed by a 15-token imaginary-part continuation row (values at
// offset 9..14 of that second line, i.e. offset 3..8 once its own
// 6-token lead is skipped).
func readComplexDisplacementSection(model *im.Model, sc *f06Scanner, subcase int, loadStep float64, hasLoadStep bool, tolerance float64, log *vegalog.Logger) error {
	for sc.Scan() {
		if strings.Contains(sc.Text(), complexDisplacementCols) {
			break
		}
	}
	analysis, ok := analysisFor(model, subcase)
	for sc.Scan() {
		realLine := strings.TrimSpace(sc.Text())
		if realLine == "" {
			return nil
		}
		realTokens := strings.Fields(realLine)
		if len(realTokens) != 9 {
			continue
		}
		if !sc.Scan() {
			return sc.errf("expected an imaginary-part continuation line after %q", realLine)
		}
		imagTokens := strings.Fields(strings.TrimSpace(sc.Text()))
		if len(imagTokens) != 15 {
			return sc.errf("expected a 15-token imaginary-part line, got %d tokens", len(imagTokens))
		}

		nodeID, err := strconv.Atoi(realTokens[0])
		if err != nil {
			return sc.errf("expected a node id, got %q", realTokens[0])
		}
		if !hasLoadStep {
			loadStep = 0
		}
		for i := 0; i < 6; i++ {
			re, err := strconv.ParseFloat(realTokens[3+i], 64)
			if err != nil {
				return sc.errf("expected a real part, got %q", realTokens[3+i])
			}
			im2, err := strconv.ParseFloat(imagTokens[9+i], 64)
			if err != nil {
				return sc.errf("expected an imaginary part, got %q", imagTokens[9+i])
			}
			a := im.NewNodalComplexDisplacementAssertion(model.NextID(), nodeID, im.DOF(i), loadStep, complex(re, im2), tolerance)
			attach(model, analysis, ok, a, subcase, log)
		}
	}
	return nil
}
