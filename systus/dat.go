// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package systus

import (
	"math"

	"github.com/Alneos/vega-sub001/im"
	"github.com/Alneos/vega-sub001/writerutil"
)

// buildDAT renders one analysis's script, per writeDat: a SEARCH DATA
// header, a kind-specific solve sequence (plain SOLVE for static, a
// CLOSE STIFFNESS MASS / DYNAMIC / MODE SUBSPACE sequence for modal),
// a SAVE/CONVERT/POST block, and (if the analysis carries assertions) a
// LANGAGE block driving a .RESU report.
func buildDAT(model *im.Model, a *im.Analysis, stem string) *writerutil.Script {
	s := writerutil.New()
	s.Line("NAME %s_SC%d_", stem, a.RefID())
	s.Blank()
	s.Raw("SEARCH DATA 1 ASCII")
	s.Blank()

	switch a.Kind {
	case im.AnalysisLinearMecaStat:
		s.Raw("SOLVE METHOD OPTIMISED")
	case im.AnalysisLinearModal, im.AnalysisLinearDynaModalFreq:
		writeModalSolve(a, s)
	}

	s.Blank()
	s.Comment("#", "SAVING RESULT")
	s.Raw("SAVE DATA RESU 1")
	s.Blank()
	s.Comment("#", "CONVERSION OF RESULTS FOR POST-PROCESSING")
	s.Raw("CONVERT RESU")
	s.Raw("POST 1")
	s.Blank()

	if len(a.AssertionRefs) > 0 {
		writeAssertionLanguage(model, a, stem, s)
	}
	return s
}

// writeModalSolve emits the CLOSE STIFFNESS MASS / DYNAMIC / MODE
// SUBSPACE sequence, per writeDat's LINEAR_MODAL/LINEAR_DYNA_MODAL_FREQ
// branch. The number of modes and iteration budget follow the analysis's
// FrequencySearch; an upper bound switches the search to a Sturm-sequence
// frequency criterion, absent one it normalises on the mass matrix.
func writeModalSolve(a *im.Analysis, s *writerutil.Script) {
	s.Comment("#", "COMPUTING MASS MATRIX")
	s.Raw("CLOSE STIFFNESS MASS")
	s.Blank()
	s.Comment("#", "COMPUTE MODES")
	s.Raw("DYNAMIC")
	s.Blank()

	numModes := 0
	var upper float64
	hasUpper := false
	if a.Search != nil {
		if a.Search.Band != nil {
			numModes = a.Search.Band.MaxModes
			if a.Search.Band.Upper > 0 {
				upper, hasUpper = a.Search.Band.Upper, true
			}
		} else {
			numModes = a.Search.NumModes
		}
	}
	iters := 2 * numModes

	block := "BLOCK 6"
	if hasUpper {
		block = "BAND"
	}
	s.Line("MODE SUBSPACE %s", block)
	s.Raw("METHOD OPTIMIZED")
	if hasUpper {
		s.Line("VECTOR %d ITER %d PRECISION 1*-5 STURM FREQ %g", numModes, iters, upper)
	} else {
		s.Line("VECTOR %d ITER %d PRECISION 1*-5 NORM MASS", numModes, iters)
	}
	s.Raw("RETURN")
	s.Blank()
	s.Comment("#", "COMPUTE THE STRESS TENSORS")
	s.Raw("SOLVE FORCE")
}

// writeAssertionLanguage emits the LANGAGE block writeDat appends when an
// analysis carries assertions: declares the displacement/frequency/phase
// variables, opens a .RESU report file, renders one test block per
// assertion, then closes the file.
func writeAssertionLanguage(model *im.Model, a *im.Analysis, stem string, s *writerutil.Script) {
	option := systusOption(model)
	dof := dofsPerNode(option)
	s.Raw("LANGAGE")
	s.Line("variable displacement[%d], frequency, phase[%d];", dof, dof)
	s.Line("iResu=open_file(\"%s_SC%d.RESU\", \"write\");", stem, a.RefID())
	s.Blank()

	for _, r := range a.AssertionRefs {
		asrt, ok := model.FindAssertion(r.ID)
		if !ok {
			continue
		}
		switch asrt.Kind {
		case im.AssertNodalDisplacement:
			writeNodalDisplacementAssertion(asrt, s)
		case im.AssertFrequency:
			if a.Kind == im.AnalysisLinearDynaModalFreq {
				continue
			}
			writeFrequencyAssertion(asrt, s)
		case im.AssertNodalComplexDisplacement:
			writeNodalComplexDisplacementAssertion(asrt, s)
		}
		s.Blank()
	}

	s.Raw("close_file(iResu);")
	s.Raw("end;")
}

// writeNodalDisplacementAssertion ports writeNodalDisplacementAssertion:
// a NOOK/OK TEST_RESU-style diagnostic comparing a solved nodal
// displacement component against the asserted reference value.
func writeNodalDisplacementAssertion(a *im.Assertion, s *writerutil.Script) {
	nodePos := a.NodeID
	dofPos := a.Dof.Position() + 1
	denom := a.Value
	if math.Abs(denom) < 1e-9 {
		denom = 1
	}
	s.Line("displacement = node_displacement(1,%d);", nodePos)
	s.Line("diff = abs((displacement[%d]-(%g))/(%g));", dofPos, a.Value, denom)
	s.Raw(`fprintf(iResu," ------------------------ TEST_RESU DISPLACEMENT ASSERTION ------------------------\n")`)
	s.Raw(`fprintf(iResu,"      NOEUD        NUM_CMP      VALE_REFE             VALE_CALC    ERREUR       TOLE\n");`)
	s.Line(`if (diff > abs(%g)) fprintf(iResu," NOOK "); else fprintf(iResu," OK   ");`, a.Tolerance)
	s.Line(`fprintf(iResu,"%8d     %8d     %g %%e %%e %g \n\n", displacement[%d], diff);`,
		nodePos, dofPos, a.Value, a.Tolerance, dofPos)
}

// writeNodalComplexDisplacementAssertion ports
// writeNodalComplexDisplacementAssertion: resolves the transient map
// index matching the asserted frequency, then compares the complex
// displacement it carries against the reference value.
func writeNodalComplexDisplacementAssertion(a *im.Assertion, s *writerutil.Script) {
	nodePos := a.NodeID
	dofPos := a.Dof.Position() + 1
	puls := a.Frequency * 2 * math.Pi
	ref := a.ComplexValue
	mag := cmplx(ref)
	denom := mag
	if mag < 1e-9 {
		denom = 1
	}
	s.Raw("nb_map = number_of_tran_maps(1);")
	s.Raw("nume_ordre = 1;")
	s.Raw("puls = time_map(nume_ordre);")
	s.Line("while (nume_ordre<nb_map-1 && abs(puls - %g)/%g> 1e-5){nume_ordre=nume_ordre+1; puls = time_map(nume_ordre);}", puls, math.Max(puls, 1))
	s.Line("displacement = trans_node_displacement(nume_ordre,%d);", nodePos)
	s.Line("phase = trans_node_displacement(nume_ordre+1,%d);", nodePos)
	s.Line("displacement_real = displacement[%d]*cos(phase[%d]);", dofPos, dofPos)
	s.Line("displacement_imag = displacement[%d]*sin(phase[%d]);", dofPos, dofPos)
	s.Line("diff = (abs(displacement_real-(%g)) + abs(displacement_imag-(%g)))/(%g);", real(ref), imag(ref), denom)
	s.Raw(`fprintf(iResu," ------------------------ TEST_RESU COMPLEX DISPLACEMENT ASSERTION ----------------\n")`)
	s.Raw(`fprintf(iResu,"      NOEUD        NUM_CMP      FREQUENCE             VALE_REFE                                     VALE_CALC                     ERREUR       TOLE\n");`)
	s.Line(`if (diff > abs(%g)) fprintf(iResu," NOOK "); else fprintf(iResu," OK   ");`, a.Tolerance)
	s.Line(`fprintf(iResu,"%8d     %8d     %g (%g,%g) (%%e,%%e) %%e %g \n\n", displacement_real, displacement_imag, diff);`,
		nodePos, dofPos, a.Frequency, real(ref), imag(ref), a.Tolerance)
}

// writeFrequencyAssertion ports writeFrequencyAssertion: compares the
// n-th computed modal frequency against the asserted reference value.
func writeFrequencyAssertion(a *im.Assertion, s *writerutil.Script) {
	denom := a.Value
	if math.Abs(denom) < 1e-9 {
		denom = 1
	}
	s.Line("frequency = frequency_number(%d);", a.ModeIndex)
	s.Line("diff = abs((frequency-(%g))/(%g));", a.Value, denom)
	s.Raw(`fprintf(iResu," ------------------------ TEST_RESU FREQUENCY ASSERTION ------------------------\n")`)
	s.Raw(`fprintf(iResu,"      FREQUENCY    VALE_REFE             VALE_CALC    ERREUR       TOLE\n");`)
	s.Line(`if (diff > abs(%g)) fprintf(iResu," NOOK "); else fprintf(iResu," OK   ");`, a.Tolerance)
	s.Line(`fprintf(iResu,"%8d     %g %%e %%e %g \n\n", frequency, diff);`, a.ModeIndex, a.Value, a.Tolerance)
}

func cmplx(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}
