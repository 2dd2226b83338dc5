// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geom implements the geometry primitives shared by the mesh
// store and the intermediate model: 3D vectors, small dense matrix
// inversion, tolerant real-number comparison, and the closed catalog of
// finite-element cell types.
package geom

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// Vec3 is a 3-component real vector; x, y, z are immutable once a Node
// owning one has been inserted into a mesh (spec: "positions are
// immutable after insert").
type Vec3 struct {
	X, Y, Z float64
}

// NewVec3 builds a vector from components.
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns o+p.
func (o Vec3) Add(p Vec3) Vec3 {
	return Vec3{o.X + p.X, o.Y + p.Y, o.Z + p.Z}
}

// Sub returns o-p.
func (o Vec3) Sub(p Vec3) Vec3 {
	return Vec3{o.X - p.X, o.Y - p.Y, o.Z - p.Z}
}

// Scale returns o*s.
func (o Vec3) Scale(s float64) Vec3 {
	return Vec3{o.X * s, o.Y * s, o.Z * s}
}

// Dot returns the scalar product o·p.
func (o Vec3) Dot(p Vec3) float64 {
	return o.X*p.X + o.Y*p.Y + o.Z*p.Z
}

// Cross returns o×p.
func (o Vec3) Cross(p Vec3) Vec3 {
	return Vec3{
		o.Y*p.Z - o.Z*p.Y,
		o.Z*p.X - o.X*p.Z,
		o.X*p.Y - o.Y*p.X,
	}
}

// Norm returns the Euclidean length, computed via gosl/la so the
// reduction shares the teacher's vector-norm convention (cf.
// la.VecNorm used throughout ele/porous and ele/seepage).
func (o Vec3) Norm() float64 {
	return la.VecNorm([]float64{o.X, o.Y, o.Z})
}

// Normalise returns o/‖o‖, or the zero vector if ‖o‖ is below tol.
func (o Vec3) Normalise() Vec3 {
	n := o.Norm()
	if n < 1e-15 {
		return Vec3{}
	}
	return o.Scale(1.0 / n)
}

// Orthonormalise returns the component of o orthogonal to the unit
// vector axis, normalised. Used when a coordinate system's second
// defining vector is not already perpendicular to the first.
func (o Vec3) Orthonormalise(axis Vec3) Vec3 {
	proj := axis.Scale(o.Dot(axis))
	return o.Sub(proj).Normalise()
}

// Slice returns the vector as a []float64, the shape most gosl/la and
// gosl/fun routines expect.
func (o Vec3) Slice() []float64 {
	return []float64{o.X, o.Y, o.Z}
}

// EqualTol reports whether o and p are equal within a relative-or-absolute
// tolerance, per spec: |x-y| <= tol * max(1, |x|, |y|) component-wise.
func (o Vec3) EqualTol(p Vec3, tol float64) bool {
	return ScalarEqualTol(o.X, p.X, tol) &&
		ScalarEqualTol(o.Y, p.Y, tol) &&
		ScalarEqualTol(o.Z, p.Z, tol)
}

// ScalarEqualTol implements the canonical relative-or-absolute epsilon
// comparison used everywhere two floats from different decks need
// comparing (node coordinates, assertion values, DOF coefficients).
func ScalarEqualTol(x, y, tol float64) bool {
	scale := math.Max(1.0, math.Max(math.Abs(x), math.Abs(y)))
	return math.Abs(x-y) <= tol*scale
}

// DefaultTol is the tolerance used when callers do not supply one.
const DefaultTol = 1e-8
