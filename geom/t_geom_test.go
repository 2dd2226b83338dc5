// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_vec3_basic(tst *testing.T) {
	chk.PrintTitle("vec3_basic")
	a := NewVec3(1, 0, 0)
	b := NewVec3(0, 1, 0)
	c := a.Cross(b)
	if !c.EqualTol(NewVec3(0, 0, 1), 1e-12) {
		tst.Errorf("cross product failed: got %v", c)
	}
	if math.Abs(a.Dot(b)) > 1e-15 {
		tst.Errorf("dot product of orthogonal unit vectors should be zero")
	}
}

func Test_scalar_equal_tol(tst *testing.T) {
	chk.PrintTitle("scalar_equal_tol")
	if !ScalarEqualTol(1000.0, 1000.0+1e-9, 1e-6) {
		tst.Errorf("large-magnitude values within relative tol should compare equal")
	}
	if ScalarEqualTol(0.0, 1e-3, 1e-6) {
		tst.Errorf("small-magnitude values outside absolute tol should not compare equal")
	}
}

func Test_mat3_inverse(tst *testing.T) {
	chk.PrintTitle("mat3_inverse")
	m := Mat3{{2, 0, 0}, {0, 3, 0}, {0, 0, 4}}
	inv, err := m.Inverse()
	if err != nil {
		tst.Errorf("inverse failed: %v", err)
		return
	}
	want := Mat3{{0.5, 0, 0}, {0, 1.0 / 3.0, 0}, {0, 0, 0.25}}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if !ScalarEqualTol(inv[i][j], want[i][j], 1e-12) {
				tst.Errorf("inverse[%d][%d] = %v, want %v", i, j, inv[i][j], want[i][j])
			}
		}
	}
	singular := Mat3{{1, 2, 3}, {2, 4, 6}, {1, 1, 1}}
	if _, err := singular.Inverse(); err == nil {
		tst.Errorf("expected an error inverting a singular matrix")
	}
}

func Test_celltype_catalog(tst *testing.T) {
	chk.PrintTitle("celltype_catalog")
	if Arity(Hexa8) != 8 {
		tst.Errorf("hexa8 arity should be 8")
	}
	if Dim(Quad4) != 2 {
		tst.Errorf("quad4 dim should be 2")
	}
	if len(Faces(Hexa8)) != 6 {
		tst.Errorf("hexa8 should have 6 faces")
	}
	ct, ok := ByName("tetra10")
	if !ok || ct != Tetra10 {
		tst.Errorf("ByName(tetra10) lookup failed")
	}
}
