// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import "cogentcore.org/core/math32"

// Sphere is a UV sphere: rings of latitude from the +Y pole down,
// segments of longitude around Y. Normals are smooth (radial); UVs are
// the standard equirectangular parameterization, u around the equator
// and v from pole to pole.
type Sphere struct {
	ShapeBase

	// radius of the sphere
	Radius float32

	// number of longitude segments around Y (at least 3)
	Segs int `min:"3"`

	// number of latitude rings from pole to pole (at least 2)
	Rings int `min:"2"`
}

func (sp *Sphere) Defaults() {
	sp.Radius = 1
	sp.Segs = 32
	sp.Rings = 16
}

func (sp *Sphere) MeshSize() (numVertex, numIndex int) {
	return SphereN(sp.Segs, sp.Rings)
}

// Set writes the sphere into the given allocated arrays.
func (sp *Sphere) Set(vertex, normal, texCoord math32.ArrayF32, index math32.ArrayU32) {
	sp.CBBox = SetSphere(vertex, normal, texCoord, index, sp.VtxOff, sp.IdxOff, sp.Radius, sp.Segs, sp.Rings, sp.Pos)
}

// SphereN returns the number of vertex and index points for a UV
// sphere, in vertex points, not floats. The seam column and the pole
// rows carry duplicated vertices so UVs stay continuous.
func SphereN(segs, rings int) (numVertex, numIndex int) {
	segs = max(segs, 3)
	rings = max(rings, 2)
	return (segs + 1) * (rings + 1), segs * rings * 6
}

// SetSphere writes UV sphere vertex, normal, texture and index data at
// the given starting vertex and index offsets (in points). pos is an
// arbitrary offset for composing shapes. Returns the bounding box.
func SetSphere(vertex, normal, texCoord math32.ArrayF32, index math32.ArrayU32, vtxOff, idxOff int, radius float32, segs, rings int, pos math32.Vector3) math32.Box3 {
	segs = max(segs, 3)
	rings = max(rings, 2)

	bb := math32.B3Empty()
	idx := 0
	vidx := vtxOff * 3
	tidx := vtxOff * 2
	for r := 0; r <= rings; r++ {
		v := float32(r) / float32(rings)
		phi := v * math32.Pi
		for s := 0; s <= segs; s++ {
			u := float32(s) / float32(segs)
			theta := u * 2 * math32.Pi
			nrm := math32.Vec3(
				math32.Sin(phi)*math32.Cos(theta),
				math32.Cos(phi),
				math32.Sin(phi)*math32.Sin(theta),
			)
			pt := nrm.MulScalar(radius).Add(pos)
			vertex.SetVector3(vidx+idx*3, pt)
			normal.SetVector3(vidx+idx*3, nrm)
			texCoord.Set(tidx+idx*2, u, 1-v)
			bb.ExpandByPoint(pt)
			idx++
		}
	}

	vOff := uint32(vtxOff)
	s1 := segs + 1
	ii := idxOff
	for r := 0; r < rings; r++ {
		for s := 0; s < segs; s++ {
			a := r*s1 + s
			b := r*s1 + s + 1
			c := (r+1)*s1 + s + 1
			d := (r+1)*s1 + s
			index.Set(ii, vOff+uint32(a), vOff+uint32(b), vOff+uint32(c),
				vOff+uint32(a), vOff+uint32(c), vOff+uint32(d))
			ii += 6
		}
	}
	return bb
}
