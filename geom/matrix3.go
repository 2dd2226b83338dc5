// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Mat3 is a 3x3 real matrix stored row-major, used for local-to-global
// base changes of coordinate systems.
type Mat3 [3][3]float64

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// FromRows builds a Mat3 from three row vectors.
func FromRows(r0, r1, r2 Vec3) Mat3 {
	return Mat3{
		{r0.X, r0.Y, r0.Z},
		{r1.X, r1.Y, r1.Z},
		{r2.X, r2.Y, r2.Z},
	}
}

// MulVec returns M*v.
func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Transpose returns the transpose of m.
func (m Mat3) Transpose() Mat3 {
	var t Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t[j][i] = m[i][j]
		}
	}
	return t
}

// Inverse computes the inverse of m using Gauss-Jordan elimination with
// partial pivoting, per spec.md §4.1 ("small dense matrix inversion (LU
// with partial pivot)"). The dense storage backing the row-reduction is
// allocated with gosl/la.MatAlloc, matching the teacher's allocation
// convention for every working matrix (cf. ele/auxiliary.go,
// ele/porous/*); the elimination itself is algorithm-specified by the
// spec and is not a good fit for a generic linear-algebra package call
// (see DESIGN.md).
func (m Mat3) Inverse() (Mat3, error) {
	n := 3
	a := la.MatAlloc(n, 2*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a[i][j] = m[i][j]
		}
		a[i][n+i] = 1
	}
	for col := 0; col < n; col++ {
		piv := col
		best := math.Abs(a[col][col])
		for r := col + 1; r < n; r++ {
			if math.Abs(a[r][col]) > best {
				piv, best = r, math.Abs(a[r][col])
			}
		}
		if best < 1e-14 {
			return Mat3{}, chk.Err("matrix is singular (or nearly so) at column %d", col)
		}
		if piv != col {
			a[col], a[piv] = a[piv], a[col]
		}
		pv := a[col][col]
		for j := 0; j < 2*n; j++ {
			a[col][j] /= pv
		}
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			f := a[r][col]
			if f == 0 {
				continue
			}
			for j := 0; j < 2*n; j++ {
				a[r][j] -= f * a[col][j]
			}
		}
	}
	var inv Mat3
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			inv[i][j] = a[i][n+j]
		}
	}
	return inv, nil
}

// EulerAnglesIntrinsicZYX decomposes m (assumed orthonormal, a rotation
// from local to global axes) into intrinsic Z-Y-X Euler angles (yaw,
// pitch, roll), as used by CoordinateSystem.GetEulerAnglesIntrinsicZYX.
func (m Mat3) EulerAnglesIntrinsicZYX() (yaw, pitch, roll float64) {
	pitch = math.Asin(clamp(-m[2][0], -1, 1))
	if math.Abs(m[2][0]) < 1-1e-9 {
		yaw = math.Atan2(m[1][0], m[0][0])
		roll = math.Atan2(m[2][1], m[2][2])
	} else {
		// gimbal lock: roll and yaw are coupled, pick roll = 0
		yaw = math.Atan2(-m[0][1], m[1][1])
		roll = 0
	}
	return
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
