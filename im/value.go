// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package im

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// ValueKind is the closed set of Value variants, spec.md §3.2.
type ValueKind int

const (
	ValueStepRange ValueKind = iota
	ValueSpreadRange
	ValueFunctionTable
	ValueDynaPhase
)

// Interpolation selects how a FunctionTable behaves between points, on
// either side of its domain.
type Interpolation int

const (
	InterpLinear Interpolation = iota
	InterpLogarithmic
	InterpConstant
	InterpNone
)

// Prolongation selects how a FunctionTable behaves outside its domain.
type Prolongation int

const (
	ProlongNone Prolongation = iota // out-of-range access is an error
	ProlongConstant
	ProlongLinear
)

// Value is a named, referenceable numeric object: a range, a piecewise
// function table, or a dynamic-analysis phase descriptor. The four
// variants share this representation because every consumer (a Loading's
// amplitude, an Analysis's frequency list) just needs "evaluate at x" or
// "list of points", identical across Kind.
type Value struct {
	id   int
	Name string
	Kind ValueKind

	// StepRange: first, last, step.
	First, Last, Step float64

	// SpreadRange: first, last, count (values spread evenly, count
	// points inclusive of both ends).
	Count int

	// FunctionTable
	X, Y               []float64
	LeftInterp, RightInterp   Interpolation
	LeftProlong, RightProlong Prolongation

	// DynaPhase
	PhaseDeg float64
}

// NewStepRangeValue builds a StepRange.
func NewStepRangeValue(id int, name string, first, last, step float64) *Value {
	return &Value{id: id, Name: name, Kind: ValueStepRange, First: first, Last: last, Step: step}
}

// NewSpreadRangeValue builds a SpreadRange.
func NewSpreadRangeValue(id int, name string, first, last float64, count int) *Value {
	return &Value{id: id, Name: name, Kind: ValueSpreadRange, First: first, Last: last, Count: count}
}

// NewFunctionTableValue builds a FunctionTable from parallel x/y slices.
func NewFunctionTableValue(id int, name string, x, y []float64, leftI, rightI Interpolation, leftP, rightP Prolongation) (*Value, error) {
	if len(x) != len(y) {
		return nil, chk.Err("function table %q: x and y must have the same length (%d != %d)", name, len(x), len(y))
	}
	if len(x) < 2 {
		return nil, chk.Err("function table %q: needs at least 2 points", name)
	}
	for i := 1; i < len(x); i++ {
		if x[i] <= x[i-1] {
			return nil, chk.Err("function table %q: x values must be strictly increasing", name)
		}
	}
	return &Value{id: id, Name: name, Kind: ValueFunctionTable, X: x, Y: y, LeftInterp: leftI, RightInterp: rightI, LeftProlong: leftP, RightProlong: rightP}, nil
}

// NewDynaPhaseValue builds a DynaPhase.
func NewDynaPhaseValue(id int, name string, phaseDeg float64) *Value {
	return &Value{id: id, Name: name, Kind: ValueDynaPhase, PhaseDeg: phaseDeg}
}

// RefID returns the value's stable id.
func (v *Value) RefID() int { return v.id }

// Ref returns a Ref pointing at this value.
func (v *Value) Ref() Ref { return Ref{Kind: RefValue, ID: v.id} }

// Range expands a StepRange or SpreadRange into its explicit point list.
func (v *Value) Range() ([]float64, error) {
	switch v.Kind {
	case ValueStepRange:
		if v.Step == 0 {
			return nil, chk.Err("value %q: step range has zero step", v.Name)
		}
		var out []float64
		for x := v.First; (v.Step > 0 && x <= v.Last+1e-12) || (v.Step < 0 && x >= v.Last-1e-12); x += v.Step {
			out = append(out, x)
		}
		return out, nil
	case ValueSpreadRange:
		if v.Count < 2 {
			return nil, chk.Err("value %q: spread range needs count >= 2", v.Name)
		}
		out := make([]float64, v.Count)
		step := (v.Last - v.First) / float64(v.Count-1)
		for i := range out {
			out[i] = v.First + step*float64(i)
		}
		return out, nil
	default:
		return nil, chk.Err("value %q: Range() only applies to StepRange/SpreadRange", v.Name)
	}
}

// Eval evaluates a FunctionTable at x, applying the configured
// interpolation between points and prolongation outside the domain.
func (v *Value) Eval(x float64) (float64, error) {
	if v.Kind != ValueFunctionTable {
		return 0, chk.Err("value %q: Eval() only applies to FunctionTable", v.Name)
	}
	n := len(v.X)
	if x < v.X[0] {
		return v.prolong(v.LeftProlong, x, 0)
	}
	if x > v.X[n-1] {
		return v.prolong(v.RightProlong, x, n-1)
	}
	for i := 1; i < n; i++ {
		if x <= v.X[i] {
			return interpolate(v.LeftInterp, v.X[i-1], v.Y[i-1], v.X[i], v.Y[i], x)
		}
	}
	return v.Y[n-1], nil
}

func (v *Value) prolong(p Prolongation, x float64, edge int) (float64, error) {
	switch p {
	case ProlongConstant:
		return v.Y[edge], nil
	case ProlongLinear:
		var i0, i1 int
		if edge == 0 {
			i0, i1 = 0, 1
		} else {
			i0, i1 = edge-1, edge
		}
		return interpolate(InterpLinear, v.X[i0], v.Y[i0], v.X[i1], v.Y[i1], x)
	default:
		return 0, chk.Err("value %q: x=%v is outside the table domain and prolongation is disabled", v.Name, x)
	}
}

func interpolate(kind Interpolation, x0, y0, x1, y1, x float64) (float64, error) {
	switch kind {
	case InterpConstant:
		return y0, nil
	case InterpNone:
		if x == x0 {
			return y0, nil
		}
		return 0, chk.Err("no interpolation allowed between x=%v and x=%v, requested x=%v", x0, x1, x)
	case InterpLogarithmic:
		if x0 <= 0 || x1 <= 0 || x <= 0 {
			return 0, chk.Err("logarithmic interpolation requires strictly positive x values")
		}
		t := (math.Log(x) - math.Log(x0)) / (math.Log(x1) - math.Log(x0))
		return y0 + t*(y1-y0), nil
	default: // InterpLinear
		t := (x - x0) / (x1 - x0)
		return y0 + t*(y1-y0), nil
	}
}
