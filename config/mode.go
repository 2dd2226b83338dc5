// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the translation-wide, read-only-after-init
// settings: the translation-mode error policy, the finish() option
// table, target selection, and the closed error/exit-code taxonomy,
// grounded on the teacher's flat option-struct convention (inp.SolverData,
// inp.Data) per SPEC_FULL.md §4.3/§6.1/§6.4/§7.
package config

// TranslationMode is the process-wide error-tolerance policy set once
// from the CLI, per spec.md §7.
type TranslationMode int

const (
	// BestEffort degrades diagnostics to warnings and skips the
	// offending command (the default).
	BestEffort TranslationMode = iota
	// MeshAtLeast skips the offending command the same way BestEffort
	// does; the model is not marked mesh-only and writers emit the
	// full model.
	MeshAtLeast
	// Strict makes any diagnostic fatal.
	Strict
)

func (m TranslationMode) String() string {
	switch m {
	case MeshAtLeast:
		return "mesh-at-least"
	case Strict:
		return "strict"
	default:
		return "best-effort"
	}
}
