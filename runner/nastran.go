// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runner

import (
	"path/filepath"

	"github.com/Alneos/vega-sub001/vegalog"
)

// execNastran runs nastran against the translated .bdf/.dat deck, per
// NastranRunnerImpl::execSolver: delete stale result files, run, and
// classify the exit status — there is no further .f06 NOOK scan in the
// Nastran-family runner, unlike Aster and Systus.
func execNastran(p Params, stem string, log *vegalog.Logger) (Outcome, error) {
	command := p.SolverCommand
	if command == "" {
		command = "nastran"
	}
	dir := p.OutputDir

	deletePreviousResultFiles(dir, stem, []string{
		".DBALL", ".f04", ".f06", ".IFPDAT", ".log", ".MASTER", ".stdout", ".stderr",
	}, log)

	outcome, _, err := run(dir, stem, command, []string{filepath.Base(p.ModelFile)}, log)
	if err != nil {
		return 0, err
	}
	return outcome, nil
}
