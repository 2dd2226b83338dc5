// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"strings"

	"github.com/cpmech/gosl/chk"
)

// Target is the closed set of output dialects this translator supports.
type Target int

const (
	TargetAster Target = iota
	TargetSystus
	TargetNastran
	TargetOptistruct
)

// ParseTarget resolves a CLI/config target name (case-insensitive) to a Target.
func ParseTarget(name string) (Target, error) {
	switch strings.ToLower(name) {
	case "aster":
		return TargetAster, nil
	case "systus":
		return TargetSystus, nil
	case "nastran":
		return TargetNastran, nil
	case "optistruct":
		return TargetOptistruct, nil
	default:
		return 0, chk.Err("unrecognised target dialect %q", name)
	}
}

func (t Target) String() string {
	switch t {
	case TargetAster:
		return "aster"
	case TargetSystus:
		return "systus"
	case TargetNastran:
		return "nastran"
	case TargetOptistruct:
		return "optistruct"
	default:
		return "unknown"
	}
}

// NastranDialectEra selects between the 1995-era strict dialect and a
// modern one for the Nastran-family writer, per spec.md §4.6.
type NastranDialectEra int

const (
	Nastran1995 NastranDialectEra = iota
	NastranModern
)

// RBE2TranslationMode selects how replaceRigidSegments materialises a
// rigid/RBE2 constraint as cells, per spec.md §6.4.
type RBE2TranslationMode int

const (
	RBE2Lagrangian RBE2TranslationMode = iota
	RBE2Penalty
)
