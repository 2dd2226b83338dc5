// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aster

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Alneos/vega-sub001/config"
	"github.com/Alneos/vega-sub001/im"
)

// Write emits model as an Aster-family study under outDir: stem.med (the
// mesh, via mesh.WriteMED), stem.comm (the command script) and
// stem.export (the job-control file as_run reads), per spec.md §4.6 and
// §6.5's persisted-state layout. It returns the .export path, the file
// the runner package hands to as_run.
func Write(model *im.Model, outDir, stem, solverVersion string) (string, error) {
	cfg := NewConfig(model, solverVersion)

	medPath := filepath.Join(outDir, stem+".med")
	if err := model.Mesh.WriteMED(medPath); err != nil {
		return "", config.NewIOError("write", medPath, err)
	}

	commPath := filepath.Join(outDir, stem+".comm")
	if err := writeLines(commPath, buildComm(model).Lines()); err != nil {
		return "", err
	}

	exportPath := filepath.Join(outDir, stem+".export")
	if err := writeLines(exportPath, buildExport(stem, cfg).Lines()); err != nil {
		return "", err
	}

	return exportPath, nil
}

// writeLines writes lines to path, one per line, the way nastran.Write
// does (no atomic rename: the .comm/.export files are small, regenerated
// text scripts, not the mesh payload mesh.WriteMED already protects).
func writeLines(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return config.NewIOError("create", path, err)
	}
	defer f.Close()
	for _, line := range lines {
		if _, err := fmt.Fprintln(f, line); err != nil {
			return config.NewIOError("write", path, err)
		}
	}
	return nil
}
