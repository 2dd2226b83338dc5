// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package im

import "github.com/cpmech/gosl/chk"

// DOF is one of the six mechanical degrees of freedom, each with a fixed
// position (0..5) and a single-bit mask, per spec.md §3.3.
type DOF int

const (
	DX DOF = iota
	DY
	DZ
	RX
	RY
	RZ
)

var dofNames = [6]string{"DX", "DY", "DZ", "RX", "RY", "RZ"}

// String returns the canonical DOF name.
func (d DOF) String() string { return dofNames[d] }

// Position returns d's fixed index in the 0..5 packed DOF vocabulary.
func (d DOF) Position() int { return int(d) }

// Mask returns the single-bit mask for d.
func (d DOF) Mask() DOFS { return DOFS(1 << uint(d)) }

// DOFS is a bitmask set of DOFs supporting the arithmetic spec.md §3.3
// requires: +, -, contains, containsAnyOf, plus the named constants.
type DOFS uint8

const (
	NoDOFs     DOFS = 0
	TRANSLATIONS DOFS = DOFS(1<<uint(DX)) | DOFS(1<<uint(DY)) | DOFS(1<<uint(DZ))
	ROTATIONS    DOFS = DOFS(1<<uint(RX)) | DOFS(1<<uint(RY)) | DOFS(1<<uint(RZ))
	ALL_DOFS     DOFS = TRANSLATIONS | ROTATIONS
)

// NewDOFS builds a DOFS from individual DOF values.
func NewDOFS(dofs ...DOF) DOFS {
	var s DOFS
	for _, d := range dofs {
		s |= d.Mask()
	}
	return s
}

// Add returns s+d (union), matching the spec's `(S + d) - d == S - d` law.
func (s DOFS) Add(d DOF) DOFS { return s | d.Mask() }

// Remove returns s-d (difference).
func (s DOFS) Remove(d DOF) DOFS { return s &^ d.Mask() }

// AddSet returns s ∪ o.
func (s DOFS) AddSet(o DOFS) DOFS { return s | o }

// RemoveSet returns s \ o.
func (s DOFS) RemoveSet(o DOFS) DOFS { return s &^ o }

// Contains reports whether s has every DOF in o set.
func (s DOFS) Contains(o DOFS) bool { return s&o == o }

// ContainsAnyOf reports whether s shares at least one DOF with o.
func (s DOFS) ContainsAnyOf(o DOFS) bool { return s&o != 0 }

// Has reports whether s contains the single DOF d.
func (s DOFS) Has(d DOF) bool { return s&d.Mask() != 0 }

// Count returns the number of set DOFs.
func (s DOFS) Count() int {
	n := 0
	for i := 0; i < 6; i++ {
		if s.Has(DOF(i)) {
			n++
		}
	}
	return n
}

// ToNastran packs s into Nastran's digit-string encoding, e.g.
// ALL_DOFS -> "123456", {DX,DZ} -> "13". Digits always appear in
// ascending DOF-position order, matching every Nastran card that emits a
// DOFS field (SPC1, RBE2, MPC...).
func (s DOFS) ToNastran() string {
	digits := ""
	for i := 0; i < 6; i++ {
		if s.Has(DOF(i)) {
			digits += string(rune('1' + i))
		}
	}
	return digits
}

// DOFSFromNastran parses a packed digit string ("123456", "12", "0") into
// a DOFS, the inverse of ToNastran. "0" (Nastran's convention for "no
// dofs") yields NoDOFs.
func DOFSFromNastran(packed string) (DOFS, error) {
	if packed == "0" || packed == "" {
		return NoDOFs, nil
	}
	var s DOFS
	for _, r := range packed {
		if r < '1' || r > '6' {
			return 0, chk.Err("invalid dof digit %q in packed dofs %q", string(r), packed)
		}
		pos := int(r-'1')
		if s.Has(DOF(pos)) {
			return 0, chk.Err("dof digit %q repeated in packed dofs %q", string(r), packed)
		}
		s = s.Add(DOF(pos))
	}
	return s, nil
}

// String lists the set DOFs space-separated, e.g. "DX DY RZ".
func (s DOFS) String() string {
	out := ""
	for i := 0; i < 6; i++ {
		if s.Has(DOF(i)) {
			if out != "" {
				out += " "
			}
			out += DOF(i).String()
		}
	}
	if out == "" {
		return "(none)"
	}
	return out
}

// DOFCoefs maps each DOF to a real coefficient, used as the per-dof
// imposed values of a SinglePointConstraint.
type DOFCoefs [6]float64

// NewDOFCoefs builds a zero DOFCoefs.
func NewDOFCoefs() DOFCoefs { return DOFCoefs{} }

// Set assigns the coefficient for a single dof.
func (c *DOFCoefs) Set(d DOF, v float64) { c[d.Position()] = v }

// Get returns the coefficient for a single dof (0 if unset).
func (c DOFCoefs) Get(d DOF) float64 { return c[d.Position()] }

// ActiveDOFs returns the DOFS of all dofs with a non-zero coefficient.
func (c DOFCoefs) ActiveDOFs() DOFS {
	var s DOFS
	for i := 0; i < 6; i++ {
		if c[i] != 0 {
			s = s.Add(DOF(i))
		}
	}
	return s
}
