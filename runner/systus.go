// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Alneos/vega-sub001/vegalog"
)

// execSystus runs systus against the translated study, per
// SystusRunner::execSolver: the model file handed in is the study's
// master "<studyStem>_ALL.DAT"; each analysis instead produced its own
// "<studyStem>_SC<id>_DATA1.ASC"/"<studyStem>_SC<id>.DAT"/"..._SC<id>.RESU"
// family, which is what gets checked for completion once the solve runs.
func execSystus(p Params, stem string, log *vegalog.Logger) (Outcome, error) {
	dir := p.OutputDir
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return SolverNotFound, nil
	}

	command := p.SolverCommand
	if command == "" {
		command = "systus"
	}
	studyStem := strings.TrimSuffix(stem, "_ALL")

	deleteSystusStaleFiles(dir, studyStem, log)

	outcome, _, err := run(dir, stem, command, []string{"-batch", "-exec", filepath.Base(p.ModelFile)}, log)
	if err != nil {
		return 0, err
	}

	if stdoutHasError(filepath.Join(dir, stem+".stdout")) {
		outcome = SolverExitNotZero
	}
	if outcome != Ok {
		return outcome, nil
	}

	return checkSystusResultFiles(dir, studyStem, log)
}

// deleteSystusStaleFiles removes every "<studyStem>*.TIT"/"*.fdb" and
// "SYSTUS*.DAT" entry from dir, per SystusRunner's directory-scan cleanup.
func deleteSystusStaleFiles(dir, studyStem string, log *vegalog.Logger) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		stale := (strings.HasPrefix(name, studyStem) && (strings.HasSuffix(name, ".TIT") || strings.HasSuffix(name, ".fdb"))) ||
			(strings.HasPrefix(name, "SYSTUS") && strings.HasSuffix(name, ".DAT"))
		if !stale {
			continue
		}
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			log.Warn("runner: could not remove stale result file %s: %v", name, err)
		}
	}
}

// stdoutHasError reports whether path contains a line mentioning ERROR
// that isn't the literal "NO ERROR" banner, per SystusRunner's stdout
// scan.
func stdoutHasError(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	for _, line := range strings.Split(string(data), "\n") {
		if strings.Contains(line, "ERROR") && !strings.Contains(line, "NO ERROR") {
			return true
		}
	}
	return false
}

// checkSystusResultFiles requires every "<studyStem>_SC<n>.DAT" analysis
// script to have produced a matching .TIT and .fdb file, then scans any
// accompanying .RESU report for NOOK, per SystusRunner's post-run
// directory walk.
func checkSystusResultFiles(dir, studyStem string, log *vegalog.Logger) (Outcome, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	outcome := Ok
	prefix := studyStem + "_"
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".DAT") {
			continue
		}
		suffix := strings.TrimSuffix(strings.TrimPrefix(name, prefix), ".DAT")
		if suffix == "ALL" {
			continue
		}
		titPath := filepath.Join(dir, studyStem+"_DATA"+suffix+".TIT")
		fdbPath := filepath.Join(dir, studyStem+"_POST"+suffix+".fdb")
		if !fileExists(titPath) || !fileExists(fdbPath) {
			return SolverResultNotFound, nil
		}
		resuPath := filepath.Join(dir, studyStem+"_"+suffix+".RESU")
		if fileExists(resuPath) {
			nook, err := fileContainsNOOK(resuPath)
			if err != nil {
				return 0, err
			}
			if nook {
				log.Error("runner: test fail in %s", resuPath)
				outcome = TestFail
			}
		}
	}
	if outcome == Ok {
		log.OK("runner: tests OK")
	}
	return outcome, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
