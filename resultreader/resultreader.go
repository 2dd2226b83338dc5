// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resultreader implements the back-reader of spec.md §4.8: it
// parses a reference-results file (card-based .f06 or .csv, §6.2) and
// synthesises Assertion entities attached to the analysis each record
// names, so a later Writer/Runner pass can check the translated deck's
// solve against a known-good result. It runs between finish() and the
// Writer (spec.md §3, data-flow line).
package resultreader

import (
	"path/filepath"
	"strings"

	"github.com/Alneos/vega-sub001/config"
	"github.com/Alneos/vega-sub001/im"
	"github.com/Alneos/vega-sub001/vegalog"
)

// Read dispatches to the card-based or CSV reader by path's extension,
// per ResultReadersFacade::getResultReader. An unrecognised extension is
// a config error, not a silent no-op: the caller asked for a specific
// reference file and it can't be honoured.
func Read(model *im.Model, path string, tolerance float64, mode config.TranslationMode, log *vegalog.Logger) error {
	if path == "" {
		return nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".f06":
		return readF06(model, path, tolerance, mode, log)
	case ".csv":
		return readCSV(model, path, tolerance, log)
	default:
		return config.NewIOError("open", path, errUnsupportedExtension)
	}
}

var errUnsupportedExtension = errUnsupported{}

type errUnsupported struct{}

func (errUnsupported) Error() string { return "allowed result-file types are .f06, .csv" }

// analysisFor resolves the analysis a record with subcase (or -1 for "no
// subcase seen yet") targets: the named subcase if found, else the
// model's first analysis, per addAssertionsToModel's NO_SUBCASE fallback.
// Subcase numbers are the deck's own solution ids (Analysis.OriginalID,
// the same id aster's "RESU%d" result names are built from), not the
// model's internal reference id.
func analysisFor(model *im.Model, subcase int) (*im.Analysis, bool) {
	all := model.Analyses()
	if subcase >= 0 {
		return findAnalysisByOriginalID(all, subcase)
	}
	if len(all) == 0 {
		return nil, false
	}
	return all[0], true
}

func findAnalysisByOriginalID(analyses []*im.Analysis, originalID int) (*im.Analysis, bool) {
	for _, a := range analyses {
		if a.OriginalID == originalID {
			return a, true
		}
	}
	return nil, false
}

// attach adds assertion to model and, if analysis was resolved, activates
// it on that analysis; otherwise it is dropped (with a warning), per
// addAssertionsToModel's "analysis != nullptr" branch.
func attach(model *im.Model, analysis *im.Analysis, ok bool, assertion *im.Assertion, subcase int, log *vegalog.Logger) {
	if !ok {
		log.Warn("resultreader: dropping record for subcase %d: no matching analysis", subcase)
		return
	}
	if err := model.AddAssertion(assertion); err != nil {
		log.Warn("resultreader: %v", err)
		return
	}
	analysis.AddAssertion(assertion.Ref())
}
