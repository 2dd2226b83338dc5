// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nastran

import (
	"github.com/Alneos/vega-sub001/deck"
	"github.com/Alneos/vega-sub001/geom"
	"github.com/Alneos/vega-sub001/mesh"
)

func init() {
	register("GRID", parseGRID)
	register("CORD1R", parseCORD1R)
	register("CORD2R", parseCORD2R)
	register("CORD2C", parseCORD2C)
	register("CORD2S", parseCORD2S)
}

// parseGRID reads GRID ID CP X1 X2 X3 CD, per
// original_source/Nastran/NastranParser.cpp's GRID handling: CP selects
// the coordinate system the X1/X2/X3 triple is expressed in, CD selects
// the one displacement dofs at this node are expressed in.
func parseGRID(p *Parser, tok *deck.Tokenizer) error {
	id, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	cp, err := tok.NextInt(true, 0)
	if err != nil {
		return err
	}
	x1, err := tok.NextDouble(true, 0)
	if err != nil {
		return err
	}
	x2, err := tok.NextDouble(true, 0)
	if err != nil {
		return err
	}
	x3, err := tok.NextDouble(true, 0)
	if err != nil {
		return err
	}
	cd, err := tok.NextInt(true, cp)
	if err != nil {
		return err
	}
	nodeID := &id
	_, err = p.model.Mesh.AddNode(nodeID, geom.NewVec3(x1, x2, x3), cp, cd)
	return err
}

// parseCORD1R reads CORD1R CID G1 G2 G3: an orientation defined by three
// grid points rather than explicit vectors. The model only carries
// origin/axisX/axisZ coordinate systems, so the three grid points are
// resolved to such a system at parse time: origin at G1, local X
// towards G2, local Z towards G3 made orthogonal to X, so G3 lies in the
// local X-Z plane.
func parseCORD1R(p *Parser, tok *deck.Tokenizer) error {
	cid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	g1, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	g2, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	g3, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	p1, err := p.model.Mesh.FindNodePosition(g1)
	if err != nil {
		return err
	}
	p2, err := p.model.Mesh.FindNodePosition(g2)
	if err != nil {
		return err
	}
	p3, err := p.model.Mesh.FindNodePosition(g3)
	if err != nil {
		return err
	}
	axisX := p2.Sub(p1)
	axisZ := p3.Sub(p1)
	cs := mesh.NewCartesianCS(cid, p1, axisX, axisZ)
	return p.model.Mesh.AddCoordinateSystem(cs)
}

// parseCORD2R reads CORD2R CID RID A1 A2 A3 B1 B2 B3 C1 C2 C3: origin A,
// a point B on the local Z axis, a point C in the local X-Z plane. RID
// names the reference frame these nine coordinates are expressed in;
// only the global frame (RID 0) is supported, matching the rest of this
// package's single-pass (no nested-frame resolution) approach.
func parseCORD2R(p *Parser, tok *deck.Tokenizer) error {
	return parseCORD2(p, tok, mesh.NewCartesianCS)
}

// parseCORD2C reads CORD2C the same way CORD2R does, but the resulting
// frame is interpreted as cylindrical by every consumer of PositionCS.
func parseCORD2C(p *Parser, tok *deck.Tokenizer) error {
	return parseCORD2(p, tok, mesh.NewCylindricalCS)
}

// parseCORD2S is CORD2C's spherical counterpart.
func parseCORD2S(p *Parser, tok *deck.Tokenizer) error {
	return parseCORD2(p, tok, mesh.NewSphericalCS)
}

func parseCORD2(p *Parser, tok *deck.Tokenizer, build func(id int, origin, axisX, axisZ geom.Vec3) *mesh.CoordinateSystem) error {
	cid, err := tok.NextInt(false)
	if err != nil {
		return err
	}
	if _, err := tok.NextInt(true, 0); err != nil { // RID, unsupported nesting
		return err
	}
	a, err := readVec3(tok)
	if err != nil {
		return err
	}
	b, err := readVec3(tok)
	if err != nil {
		return err
	}
	c, err := readVec3(tok)
	if err != nil {
		return err
	}
	axisZ := b.Sub(a)
	axisX := c.Sub(a).Orthonormalise(axisZ.Normalise())
	return p.model.Mesh.AddCoordinateSystem(build(cid, a, axisX, axisZ))
}

func readVec3(tok *deck.Tokenizer) (geom.Vec3, error) {
	x, err := tok.NextDouble(true, 0)
	if err != nil {
		return geom.Vec3{}, err
	}
	y, err := tok.NextDouble(true, 0)
	if err != nil {
		return geom.Vec3{}, err
	}
	z, err := tok.NextDouble(true, 0)
	if err != nil {
		return geom.Vec3{}, err
	}
	return geom.NewVec3(x, y, z), nil
}
