// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package systus

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Alneos/vega-sub001/config"
	"github.com/Alneos/vega-sub001/im"
)

// Write emits model as a Systus-family study under outDir: one
// "<stem>_SC<id>_DATA1.ASC" (mesh, properties, loads) and one
// "<stem>_SC<id>.DAT" (analysis script) per model analysis, plus a
// master "<stem>_ALL.DAT" that READs every analysis's DAT in turn. It
// returns the master file's path, per writeModel's return value — the
// file the runner package hands to the solver.
func Write(model *im.Model, outDir, stem string) (string, error) {
	analyses := model.Analyses()

	var all []string
	for _, a := range analyses {
		ascName := fmt.Sprintf("%s_SC%d_DATA1", stem, a.RefID())
		ascPath := filepath.Join(outDir, ascName+".ASC")
		if err := writeLines(ascPath, buildASC(model, a, ascName).Lines()); err != nil {
			return "", err
		}

		datName := fmt.Sprintf("%s_SC%d", stem, a.RefID())
		datPath := filepath.Join(outDir, datName+".DAT")
		if err := writeLines(datPath, buildDAT(model, a, stem).Lines()); err != nil {
			return "", err
		}

		all = append(all, fmt.Sprintf("READ %s.DAT", datName))
	}

	allPath := filepath.Join(outDir, stem+"_ALL.DAT")
	if err := writeLines(allPath, all); err != nil {
		return "", err
	}
	return allPath, nil
}

// writeLines writes lines to path, one per line, the way aster.Write
// does: the ASC/DAT files are small, regenerated text scripts, not a
// payload worth an atomic rename.
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
