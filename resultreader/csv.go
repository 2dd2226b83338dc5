// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultreader

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Alneos/vega-sub001/config"
	"github.com/Alneos/vega-sub001/im"
	"github.com/Alneos/vega-sub001/vegalog"
)

// csvColumn is the recognised set of header names CSVResultReader's
// grammar accepts, one per displacement component plus the three
// bookkeeping columns; any other header is UNUSED and ignored.
type csvColumn int

const (
	csvUnused csvColumn = iota
	csvResult
	csvNode
	csvNumOrder
	csvTime
	csvDX
	csvDY
	csvDZ
	csvDRX
	csvDRY
	csvDRZ
)

var csvDofColumns = map[csvColumn]im.DOF{
	csvDX:  im.DX,
	csvDY:  im.DY,
	csvDZ:  im.DZ,
	csvDRX: im.RX,
	csvDRY: im.RY,
	csvDRZ: im.RZ,
}

func classifyCSVHeader(name string) csvColumn {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "RESULTAT":
		return csvResult
	case "NOEUD":
		return csvNode
	case "NUME_ORDRE":
		return csvNumOrder
	case "INST":
		return csvTime
	case "DX":
		return csvDX
	case "DY":
		return csvDY
	case "DZ":
		return csvDZ
	case "DRX":
		return csvDRX
	case "DRY":
		return csvDRY
	case "DRZ":
		return csvDRZ
	default:
		return csvUnused
	}
}

// readCSV parses a reference-results CSV, per CSVResultReader::convert:
// one header row naming columns, then one row per (node, instant)
// recording whichever displacement components were measured. Every
// record is added to the model regardless of whether its RESULTAT names
// a known analysis; it is additionally wired onto that analysis only
// when the lookup succeeds — CSVResultReader never drops a row the way
// the card-based reader does.
func readCSV(model *im.Model, path string, tolerance float64, log *vegalog.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return config.NewIOError("open", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return config.NewIOError("read", path, err)
	}
	columns := make([]csvColumn, len(header))
	for i, h := range header {
		columns[i] = classifyCSVHeader(h)
	}

	line := 1
	for {
		row, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return config.NewIOError("read", path, err)
		}
		line++
		if err := readCSVRow(model, row, columns, tolerance, path, line, log); err != nil {
			return err
		}
	}
	return nil
}

func readCSVRow(model *im.Model, row []string, columns []csvColumn, tolerance float64, path string, line int, log *vegalog.Logger) error {
	var (
		resultID        int
		hasResult       bool
		nodeID          int
		hasNode         bool
		instant         float64
		hasInstant      bool
		componentValues = map[im.DOF]float64{}
	)

	for i, col := range columns {
		if i >= len(row) {
			continue
		}
		raw := strings.TrimSpace(row[i])
		if raw == "" {
			continue
		}
		switch col {
		case csvResult:
			if !strings.HasPrefix(strings.ToUpper(raw), "RESU") {
				return config.NewParsingError(path, line, "RESULTAT", "can't parse result name %q: expected a RESU<n> suffix", raw)
			}
			n, err := strconv.Atoi(strings.TrimPrefix(strings.ToUpper(raw), "RESU"))
			if err != nil {
				return config.NewParsingError(path, line, "RESULTAT", "can't parse result name %q: %v", raw, err)
			}
			resultID, hasResult = n, true
		case csvNode:
			n, err := strconv.Atoi(strings.TrimPrefix(strings.ToUpper(raw), "N"))
			if err != nil {
				return config.NewParsingError(path, line, "NOEUD", "can't parse node id %q: %v", raw, err)
			}
			nodeID, hasNode = n, true
		case csvTime:
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return config.NewParsingError(path, line, "INST", "can't parse instant %q: %v", raw, err)
			}
			instant, hasInstant = v, true
		case csvNumOrder:
			// parsed by the teacher's grammar but never used.
		default:
			if dof, ok := csvDofColumns[col]; ok {
				v, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return config.NewParsingError(path, line, "", "can't parse displacement value %q: %v", raw, err)
				}
				componentValues[dof] = v
			}
		}
	}

	if !hasNode || len(componentValues) == 0 {
		return nil
	}

	analysis, foundAnalysis := (*im.Analysis)(nil), false
	if hasResult {
		analysis, foundAnalysis = findAnalysisByOriginalID(model.Analyses(), resultID)
	}

	for dof, v := range componentValues {
		a := im.NewNodalDisplacementAssertion(model.NextID(), nodeID, dof, v, tolerance)
		if hasInstant {
			instantCopy := instant
			a.Instant = &instantCopy
		}
		if err := model.AddAssertion(a); err != nil {
			log.Warn("resultreader: %v", err)
			continue
		}
		if foundAnalysis {
			analysis.AddAssertion(a.Ref())
		}
	}
	return nil
}
