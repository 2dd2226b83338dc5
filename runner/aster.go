// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runner

import (
	"os"
	"path/filepath"

	"github.com/Alneos/vega-sub001/vegalog"
)

// execAster runs as_run against an Aster-family .comm file, per
// AsterRunner::execSolver: delete stale .mess/.resu/.rmed/.stdout/.stderr,
// recreate the "<stem>_repe_out" scratch directory as_run writes its
// temporary files into, run, then require the .resu file to exist and
// be free of NOOK. Exit code 4 is code_aster's own syntax-error signal
// and is reported as TranslationSyntaxError rather than a generic
// non-zero exit.
func execAster(p Params, stem string, log *vegalog.Logger) (Outcome, error) {
	command := p.SolverCommand
	if command == "" {
		command = "as_run"
	}
	dir := p.OutputDir

	deletePreviousResultFiles(dir, stem, []string{".mess", ".resu", ".rmed", ".stdout", ".stderr"}, log)

	if err := prepareAsterScratchDir(dir, stem, log); err != nil {
		return 0, err
	}

	outcome, code, err := run(dir, stem, command, []string{filepath.Base(p.ModelFile)}, log)
	if err != nil {
		return 0, err
	}
	if code == 4 {
		return TranslationSyntaxError, nil
	}
	if outcome != Ok {
		return outcome, nil
	}

	resuPath := filepath.Join(dir, stem+".resu")
	if _, err := os.Stat(resuPath); err != nil {
		log.Error("runner: code_aster result file %s not found", resuPath)
		return SolverResultNotFound, nil
	}
	nook, err := fileContainsNOOK(resuPath)
	if err != nil {
		return 0, err
	}
	if nook {
		return TestFail, nil
	}
	log.OK("runner: tests OK")
	return Ok, nil
}

// prepareAsterScratchDir removes any stale "<stem>_repe_out" directory
// and recreates it empty, per AsterRunner::execSolver's
// fs::remove_all/fs::create_directories pair: as_run writes its
// temporary working files there and fails if the directory is missing
// or left over from a previous, possibly-failed run.
func prepareAsterScratchDir(dir, stem string, log *vegalog.Logger) error {
	repeOut := filepath.Join(dir, stem+"_repe_out")
	if err := os.RemoveAll(repeOut); err != nil {
		log.Warn("runner: could not remove stale scratch directory %s: %v", repeOut, err)
	}
	return os.MkdirAll(repeOut, 0755)
}
