// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_outcome_exit_code_mapping(tst *testing.T) {
	chk.PrintTitle("runner_outcome_exit_code_mapping")
	cases := []struct {
		o    Outcome
		code int
	}{
		{Ok, 100},
		{SolverNotFound, 101},
		{TranslationSyntaxError, 102},
		{SolverKilled, 103},
		{SolverExitNotZero, 104},
		{SolverResultNotFound, 105},
		{TestFail, 106},
	}
	for _, c := range cases {
		if got := int(c.o.ExitCode()); got != c.code {
			tst.Errorf("%s: expected exit code %d, got %d", c.o, c.code, got)
		}
	}
}

func Test_delete_previous_result_files_removes_stale_entries(tst *testing.T) {
	chk.PrintTitle("runner_delete_previous_result_files")
	dir := tst.TempDir()
	stale := filepath.Join(dir, "model.resu")
	if err := os.WriteFile(stale, []byte("old"), 0644); err != nil {
		tst.Fatalf("write stale file: %v", err)
	}
	deletePreviousResultFiles(dir, "model", []string{".resu", ".mess"}, nil)
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		tst.Errorf("expected the stale .resu file to be removed")
	}
}

func Test_prepare_aster_scratch_dir_replaces_stale_contents(tst *testing.T) {
	chk.PrintTitle("runner_prepare_aster_scratch_dir")
	dir := tst.TempDir()
	repeOut := filepath.Join(dir, "model_repe_out")
	if err := os.MkdirAll(repeOut, 0755); err != nil {
		tst.Fatalf("seed scratch dir: %v", err)
	}
	stale := filepath.Join(repeOut, "leftover.txt")
	if err := os.WriteFile(stale, []byte("old"), 0644); err != nil {
		tst.Fatalf("write stale file: %v", err)
	}

	if err := prepareAsterScratchDir(dir, "model", nil); err != nil {
		tst.Fatalf("prepare scratch dir: %v", err)
	}

	info, err := os.Stat(repeOut)
	if err != nil || !info.IsDir() {
		tst.Fatalf("expected %s to exist as a directory, got err=%v", repeOut, err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		tst.Errorf("expected stale scratch-dir contents to be gone")
	}
}

func Test_file_contains_nook(tst *testing.T) {
	chk.PrintTitle("runner_file_contains_nook")
	dir := tst.TempDir()
	path := filepath.Join(dir, "r.resu")
	if err := os.WriteFile(path, []byte("line one\n NOOK here\nline three\n"), 0644); err != nil {
		tst.Fatalf("write file: %v", err)
	}
	nook, err := fileContainsNOOK(path)
	if err != nil {
		tst.Fatalf("scan: %v", err)
	}
	if !nook {
		tst.Errorf("expected NOOK to be detected")
	}

	clean := filepath.Join(dir, "c.resu")
	if err := os.WriteFile(clean, []byte("all good\n OK \n"), 0644); err != nil {
		tst.Fatalf("write file: %v", err)
	}
	nook, err = fileContainsNOOK(clean)
	if err != nil {
		tst.Fatalf("scan: %v", err)
	}
	if nook {
		tst.Errorf("expected no NOOK to be detected in a clean file")
	}
}

func Test_exec_unknown_target(tst *testing.T) {
	chk.PrintTitle("runner_exec_unknown_target")
	if _, err := Exec(Params{Target: 99, ModelFile: "x.dat", OutputDir: tst.TempDir()}, nil); err == nil {
		tst.Errorf("expected an error for an unrecognised target")
	}
}
