// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nastran

import (
	"github.com/Alneos/vega-sub001/config"
	"github.com/Alneos/vega-sub001/deck"
	"github.com/Alneos/vega-sub001/im"
)

func init() {
	register("MAT1", parseMAT1)
	register("MATS1", parseMATS1)
}

// parseMAT1 reads MAT1 MID E G NU RHO A TREF GE ST SC SS MCSID, deriving
// the missing one of E/G/NU from the other two the way
// NastranParser.cpp's parseMAT1 does (Nastran allows any two of the
// three to be blank-deduced from the third). ST/SC/SS/MCSID are read and
// discarded: they drive output-only stress margins this translator does
// not carry.
func parseMAT1(p *Parser, tok *deck.Tokenizer) error {
	mid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	const unavailable = -1e300
	e, err := tok.NextDouble(true, unavailable)
	if err != nil {
		return err
	}
	g, err := tok.NextDouble(true, unavailable)
	if err != nil {
		return err
	}
	nu, err := tok.NextDouble(true, unavailable)
	if err != nil {
		return err
	}
	rho, err := tok.NextDouble(true, 0)
	if err != nil {
		return err
	}
	a, err := tok.NextDouble(true, 0)
	if err != nil {
		return err
	}
	tref, err := tok.NextDouble(true, 0)
	if err != nil {
		return err
	}
	ge, err := tok.NextDouble(true, 0)
	if err != nil {
		return err
	}
	switch {
	case nu == unavailable && g == unavailable:
		nu, g = 0, 0
	case nu == unavailable && e == unavailable:
		nu, e = 0, 0
	case nu == unavailable:
		nu = e/(2.0*g) - 1
	}
	if e == unavailable && g != unavailable && nu != unavailable {
		e = 2.0 * (1 + nu) * g
	}
	if g == unavailable && e != unavailable && nu != unavailable {
		g = e / (2.0 * (1 + nu))
	}
	mat := im.NewMaterial(p.model.NextID(), mid, "")
	mat.AddNature(im.NewElasticNature(e, nu, g, rho, a, tref, ge))
	p.materials[mid] = mat
	return nil
}

// parseMATS1 reads MATS1 MID TID TYPE H YF HR LIMIT1 LIMIT2, attaching a
// second nonlinear Nature to the material's already-parsed (or
// not-yet-parsed) MAT1. Only NLELAST (tableRef) and the isotropic
// von-Mises PLASTIC law (TID blank) are supported, per
// NastranParser.cpp's parseMATS1.
func parseMATS1(p *Parser, tok *deck.Tokenizer) error {
	mid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	tid, err := tok.NextInt(true, 0)
	if err != nil {
		return err
	}
	kind, err := tok.NextString(false)
	if err != nil {
		return err
	}
	h, err := tok.NextDouble(true, 0)
	if err != nil {
		return err
	}
	if _, err := tok.NextInt(true, 1); err != nil { // YF, only von Mises supported
		return err
	}
	if _, err := tok.NextInt(true, 1); err != nil { // HR, only isotropic supported
		return err
	}
	limit1, err := tok.NextDouble(true, 0)
	if err != nil {
		return err
	}

	mat, ok := p.materials[mid]
	if !ok {
		mat = im.NewMaterial(p.model.NextID(), mid, "")
		p.materials[mid] = mat
	}
	switch kind {
	case "NLELAST":
		mat.AddNature(im.NewNonLinearElasticNature(p.valuesByID[tid]))
	case "PLASTIC":
		var e, nu, rho float64
		for _, n := range mat.Natures {
			if n.Kind == im.NatureElastic {
				e, nu, rho = n.E, n.Nu, n.Rho
				break
			}
		}
		mat.AddNature(im.NewBilinearElasticNature(e, nu, rho, limit1, h, im.HardeningIsotropic, "VON_MISES"))
	default:
		return config.NewSkipCommand("MATS1: type " + kind + " not implemented")
	}
	return nil
}
