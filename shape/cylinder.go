// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import "cogentcore.org/core/math32"

// Cylinder is a generalized cylinder (truncated cone), with separate
// top and bottom radii, centered on the Y axis. A zero TopRadius makes
// a cone. Side normals are smooth and tilt with the slope; cap normals
// are flat axial, with the rim duplicated so the crease stays sharp.
// Side UVs wrap u around the circumference with v along the height;
// cap UVs map the disk to the unit square.
type Cylinder struct {
	ShapeBase

	// height of the cylinder
	Height float32

	// radius of the top, which can be zero for a cone
	TopRadius float32

	// radius of the bottom
	BotRadius float32

	// number of segments around the circumference (at least 3)
	RadialSegs int `min:"3"`

	// number of segments along the height (at least 1)
	HeightSegs int `min:"1"`

	// whether to render the top disc
	Top bool

	// whether to render the bottom disc
	Bottom bool
}

func (cy *Cylinder) Defaults() {
	cy.Height = 2
	cy.TopRadius = 1
	cy.BotRadius = 1
	cy.RadialSegs = 32
	cy.HeightSegs = 1
	cy.Top = true
	cy.Bottom = true
}

func (cy *Cylinder) MeshSize() (numVertex, numIndex int) {
	return CylinderN(cy.RadialSegs, cy.HeightSegs, cy.Top && cy.TopRadius > 0, cy.Bottom && cy.BotRadius > 0)
}

// Set writes the cylinder into the given allocated arrays.
func (cy *Cylinder) Set(vertex, normal, texCoord math32.ArrayF32, index math32.ArrayU32) {
	cy.CBBox = SetCylinder(vertex, normal, texCoord, index, cy.VtxOff, cy.IdxOff,
		cy.Height, cy.TopRadius, cy.BotRadius, cy.RadialSegs, cy.HeightSegs,
		cy.Top && cy.TopRadius > 0, cy.Bottom && cy.BotRadius > 0, cy.Pos)
}

// CylinderN returns the number of vertex and index points for a
// cylinder, in vertex points, not floats.
func CylinderN(radialSegs, heightSegs int, top, bottom bool) (numVertex, numIndex int) {
	radialSegs = max(radialSegs, 3)
	heightSegs = max(heightSegs, 1)
	numVertex = (radialSegs + 1) * (heightSegs + 1)
	numIndex = radialSegs * heightSegs * 6
	if top {
		numVertex += radialSegs + 2
		numIndex += radialSegs * 3
	}
	if bottom {
		numVertex += radialSegs + 2
		numIndex += radialSegs * 3
	}
	return
}

// SetCylinder writes cylinder vertex, normal, texture and index data
// at the given starting vertex and index offsets (in points). pos is
// an arbitrary offset for composing shapes. Returns the bounding box.
func SetCylinder(vertex, normal, texCoord math32.ArrayF32, index math32.ArrayU32, vtxOff, idxOff int, height, topRad, botRad float32, radialSegs, heightSegs int, top, bottom bool, pos math32.Vector3) math32.Box3 {
	radialSegs = max(radialSegs, 3)
	heightSegs = max(heightSegs, 1)
	hh := height / 2

	bb := math32.B3Empty()
	idx := 0
	vidx := vtxOff * 3
	tidx := vtxOff * 2

	// normals tilt with the slope of the wall
	slope := (botRad - topRad) / height

	// side rows from the top down
	for j := 0; j <= heightSegs; j++ {
		v := float32(j) / float32(heightSegs)
		y := hh - v*height
		rad := topRad + v*(botRad-topRad)
		for s := 0; s <= radialSegs; s++ {
			u := float32(s) / float32(radialSegs)
			theta := u * 2 * math32.Pi
			cos, sin := math32.Cos(theta), math32.Sin(theta)
			pt := math32.Vec3(rad*cos, y, rad*sin).Add(pos)
			vertex.SetVector3(vidx+idx*3, pt)
			normal.SetVector3(vidx+idx*3, math32.Vec3(cos, slope, sin).Normal())
			texCoord.Set(tidx+idx*2, u, 1-v)
			bb.ExpandByPoint(pt)
			idx++
		}
	}

	vOff := uint32(vtxOff)
	s1 := radialSegs + 1
	ii := idxOff
	for j := 0; j < heightSegs; j++ {
		for s := 0; s < radialSegs; s++ {
			a := j*s1 + s
			b := j*s1 + s + 1
			c := (j+1)*s1 + s + 1
			d := (j+1)*s1 + s
			index.Set(ii, vOff+uint32(a), vOff+uint32(b), vOff+uint32(c),
				vOff+uint32(a), vOff+uint32(c), vOff+uint32(d))
			ii += 6
		}
	}

	setCap := func(y, rad, ny float32) {
		center := idx
		pt := math32.Vec3(0, y, 0).Add(pos)
		vertex.SetVector3(vidx+idx*3, pt)
		normal.SetVector3(vidx+idx*3, math32.Vec3(0, ny, 0))
		texCoord.Set(tidx+idx*2, 0.5, 0.5)
		bb.ExpandByPoint(pt)
		idx++
		rim := idx
		for s := 0; s <= radialSegs; s++ {
			theta := float32(s) / float32(radialSegs) * 2 * math32.Pi
			cos, sin := math32.Cos(theta), math32.Sin(theta)
			pt := math32.Vec3(rad*cos, y, rad*sin).Add(pos)
			vertex.SetVector3(vidx+idx*3, pt)
			normal.SetVector3(vidx+idx*3, math32.Vec3(0, ny, 0))
			texCoord.Set(tidx+idx*2, 0.5+cos/2, 0.5+ny*sin/2)
			bb.ExpandByPoint(pt)
			idx++
		}
		for s := 0; s < radialSegs; s++ {
			if ny > 0 {
				index.Set(ii, vOff+uint32(center), vOff+uint32(rim+s+1), vOff+uint32(rim+s))
			} else {
				index.Set(ii, vOff+uint32(center), vOff+uint32(rim+s), vOff+uint32(rim+s+1))
			}
			ii += 3
		}
	}
	if top {
		setCap(hh, topRad, 1)
	}
	if bottom {
		setCap(-hh, botRad, -1)
	}
	return bb
}
