// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aster

import "github.com/Alneos/vega-sub001/writerutil"

// buildExport renders the .export job-control file, per
// AsterWriter::writeExport: a flat "P key value" / "A key value" /
// "F type path role number" card list telling as_run which files feed
// and come out of the study, plus the resource sizing NewConfig derived.
func buildExport(stem string, cfg Config) *writerutil.Script {
	s := writerutil.New()
	s.Line("P actions make_etude")
	s.Line("P mem_aster %g", cfg.Memjeveux/2048.0*8.0)
	s.Line("P mode interactif")
	s.Line("P nomjob %s", stem)
	s.Line("P origine Vega++ %s", cfg.SolverVersion)
	s.Line("P version %s", cfg.SolverVersion)
	s.Line("A memjeveux %g", cfg.Memjeveux)
	s.Line("A tpmax %g", cfg.Tpmax)
	s.Line("F comm %s.comm D 1", stem)
	s.Line("F mail %s.med D 20", stem)
	s.Line("F mess %s.mess R 6", stem)
	s.Line("F resu %s.resu R 8", stem)
	s.Line("F rmed %s.rmed R 80", stem)
	s.Line("R repe %s_repe_out R 0", stem)
	return s
}
