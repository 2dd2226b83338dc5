// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultreader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Alneos/vega-sub001/config"
	"github.com/Alneos/vega-sub001/im"
	"github.com/Alneos/vega-sub001/vegalog"
	"github.com/cpmech/gosl/chk"
)

func buildOneAnalysisModel(tst *testing.T, subcaseID int) *im.Model {
	m := im.New("ref")
	a := im.NewAnalysis(m.NextID(), subcaseID, im.AnalysisLinearMecaStat)
	if err := m.AddAnalysis(a); err != nil {
		tst.Fatalf("add analysis: %v", err)
	}
	return m
}

func Test_read_f06_displacement_section(tst *testing.T) {
	chk.PrintTitle("resultreader_read_f06_displacement")
	m := buildOneAnalysisModel(tst, 1)

	f06 := filepath.Join(tst.TempDir(), "ref.f06")
	content := "" +
		"      SUBCASE 1\n" +
		"\n" +
		"                                             D I S P L A C E M E N T   V E C T O R\n" +
		"\n" +
		" POINT ID.   TYPE          T1             T2             T3             R1             R2             R3\n" +
		"        2      G        1.000000E-03   0.0            0.0            0.0            0.0            0.0\n" +
		"\n"
	if err := writeFile(f06, content); err != nil {
		tst.Fatalf("write f06: %v", err)
	}

	log := vegalog.New(false)
	if err := Read(m, f06, 1e-4, config.BestEffort, log); err != nil {
		tst.Fatalf("read: %v", err)
	}

	a, _ := findAnalysisByOriginalID(m.Analyses(), 1)
	if len(a.AssertionRefs) != 6 {
		tst.Errorf("expected 6 nodal displacement assertions (one per dof), got %d", len(a.AssertionRefs))
	}
	found := false
	for _, r := range a.AssertionRefs {
		asrt, _ := m.FindAssertion(r.ID)
		if asrt.NodeID == 2 && asrt.Dof == im.DX {
			if asrt.Value != 1.0e-3 {
				tst.Errorf("expected DX = 1e-3, got %g", asrt.Value)
			}
			found = true
		}
	}
	if !found {
		tst.Errorf("expected a DX assertion on node 2")
	}
}

func Test_read_f06_eigenvalue_section(tst *testing.T) {
	chk.PrintTitle("resultreader_read_f06_eigenvalues")
	m := buildOneAnalysisModel(tst, 1)

	f06 := filepath.Join(tst.TempDir(), "ref.f06")
	content := "" +
		"      SUBCASE 1\n" +
		"                          R E A L   E I G E N V A L U E S\n" +
		" MODE    EXTRACTION      EIGENVALUE            RADIANS             CYCLES            GENERALIZED\n" +
		"  ORDER      NO.\n" +
		"      1         1        1.234560E+02        1.111080E+01        1.768000E+00        1.000000E+00    1.000000E+00\n" +
		"\n"
	if err := writeFile(f06, content); err != nil {
		tst.Fatalf("write f06: %v", err)
	}

	log := vegalog.New(false)
	if err := Read(m, f06, 1e-4, config.BestEffort, log); err != nil {
		tst.Fatalf("read: %v", err)
	}
	a, _ := findAnalysisByOriginalID(m.Analyses(), 1)
	if len(a.AssertionRefs) != 1 {
		tst.Fatalf("expected 1 frequency assertion, got %d", len(a.AssertionRefs))
	}
	asrt, _ := m.FindAssertion(a.AssertionRefs[0].ID)
	if asrt.Kind != im.AssertFrequency || asrt.ModeIndex != 1 {
		tst.Errorf("expected a frequency assertion for mode 1, got kind=%v mode=%d", asrt.Kind, asrt.ModeIndex)
	}
}

func Test_read_f06_drops_unmatched_subcase(tst *testing.T) {
	chk.PrintTitle("resultreader_read_f06_unmatched_subcase")
	m := im.New("ref")

	f06 := filepath.Join(tst.TempDir(), "ref.f06")
	content := "" +
		"      SUBCASE 9\n" +
		"                                             D I S P L A C E M E N T   V E C T O R\n" +
		" POINT ID.   TYPE          T1             T2             T3             R1             R2             R3\n" +
		"        2      G        1.000000E-03   0.0            0.0            0.0            0.0            0.0\n" +
		"\n"
	if err := writeFile(f06, content); err != nil {
		tst.Fatalf("write f06: %v", err)
	}

	log := vegalog.New(false)
	if err := Read(m, f06, 1e-4, config.BestEffort, log); err != nil {
		tst.Fatalf("read: %v", err)
	}
	if len(m.Assertions()) != 0 {
		tst.Errorf("expected records for an unmatched subcase to be dropped, got %d assertions", len(m.Assertions()))
	}
}

func Test_read_csv_wires_matching_analysis(tst *testing.T) {
	chk.PrintTitle("resultreader_read_csv_matching")
	m := buildOneAnalysisModel(tst, 3)

	csvPath := filepath.Join(tst.TempDir(), "ref.csv")
	content := "RESULTAT,NOEUD,NUME_ORDRE,INST,DX,DY\nRESU3,N2,1,0.0,1.5e-3,0.0\n"
	if err := writeFile(csvPath, content); err != nil {
		tst.Fatalf("write csv: %v", err)
	}

	log := vegalog.New(false)
	if err := Read(m, csvPath, 1e-4, config.BestEffort, log); err != nil {
		tst.Fatalf("read: %v", err)
	}
	if len(m.Assertions()) != 2 {
		tst.Fatalf("expected 2 assertions (DX, DY), got %d", len(m.Assertions()))
	}
	a, _ := findAnalysisByOriginalID(m.Analyses(), 3)
	if len(a.AssertionRefs) != 2 {
		tst.Errorf("expected both assertions wired onto the matching analysis, got %d", len(a.AssertionRefs))
	}
}

func Test_read_csv_keeps_unmatched_result_without_wiring(tst *testing.T) {
	chk.PrintTitle("resultreader_read_csv_unmatched")
	m := im.New("ref")

	csvPath := filepath.Join(tst.TempDir(), "ref.csv")
	content := "RESULTAT,NOEUD,INST,DZ\nRESU7,N4,0.0,2.0e-3\n"
	if err := writeFile(csvPath, content); err != nil {
		tst.Fatalf("write csv: %v", err)
	}

	log := vegalog.New(false)
	if err := Read(m, csvPath, 1e-4, config.BestEffort, log); err != nil {
		tst.Fatalf("read: %v", err)
	}
	if len(m.Assertions()) != 1 {
		tst.Errorf("expected the record to be kept even with no matching analysis, got %d assertions", len(m.Assertions()))
	}
}

func Test_read_rejects_unsupported_extension(tst *testing.T) {
	chk.PrintTitle("resultreader_read_unsupported_extension")
	m := im.New("ref")
	log := vegalog.New(false)
	if err := Read(m, "ref.txt", 1e-4, config.BestEffort, log); err == nil {
		tst.Errorf("expected an error for an unsupported result-file extension")
	}
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}
