// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import "cogentcore.org/core/math32"

// Torus is a torus ring lying in the XZ plane around the Y axis,
// defined by the larger radius of the ring and the radius of the
// solid tube. Normals are smooth (radial from the tube center); u
// wraps around the ring, v around the tube.
type Torus struct {
	ShapeBase

	// larger radius of the torus ring
	Radius float32

	// radius of the solid tube
	TubeRadius float32

	// number of segments around the ring (at least 3)
	RadialSegs int `min:"3"`

	// number of segments around the tube (at least 3)
	TubeSegs int `min:"3"`
}

func (tr *Torus) Defaults() {
	tr.Radius = 1
	tr.TubeRadius = .3
	tr.RadialSegs = 32
	tr.TubeSegs = 16
}

func (tr *Torus) MeshSize() (numVertex, numIndex int) {
	return TorusN(tr.RadialSegs, tr.TubeSegs)
}

// Set writes the torus into the given allocated arrays.
func (tr *Torus) Set(vertex, normal, texCoord math32.ArrayF32, index math32.ArrayU32) {
	tr.CBBox = SetTorus(vertex, normal, texCoord, index, tr.VtxOff, tr.IdxOff, tr.Radius, tr.TubeRadius, tr.RadialSegs, tr.TubeSegs, tr.Pos)
}

// TorusN returns the number of vertex and index points for a torus, in
// vertex points, not floats.
func TorusN(radialSegs, tubeSegs int) (numVertex, numIndex int) {
	radialSegs = max(radialSegs, 3)
	tubeSegs = max(tubeSegs, 3)
	return (radialSegs + 1) * (tubeSegs + 1), radialSegs * tubeSegs * 6
}

// SetTorus writes torus vertex, normal, texture and index data at the
// given starting vertex and index offsets (in points). pos is an
// arbitrary offset for composing shapes. Returns the bounding box.
func SetTorus(vertex, normal, texCoord math32.ArrayF32, index math32.ArrayU32, vtxOff, idxOff int, radius, tubeRadius float32, radialSegs, tubeSegs int, pos math32.Vector3) math32.Box3 {
	radialSegs = max(radialSegs, 3)
	tubeSegs = max(tubeSegs, 3)

	bb := math32.B3Empty()
	idx := 0
	vidx := vtxOff * 3
	tidx := vtxOff * 2
	for j := 0; j <= radialSegs; j++ {
		u := float32(j) / float32(radialSegs) * 2 * math32.Pi
		center := math32.Vec3(radius*math32.Cos(u), 0, radius*math32.Sin(u))
		for i := 0; i <= tubeSegs; i++ {
			v := float32(i) / float32(tubeSegs) * 2 * math32.Pi
			pt := math32.Vec3(
				(radius+tubeRadius*math32.Cos(v))*math32.Cos(u),
				tubeRadius*math32.Sin(v),
				(radius+tubeRadius*math32.Cos(v))*math32.Sin(u),
			)
			nrm := pt.Sub(center).Normal()
			pt.SetAdd(pos)
			vertex.SetVector3(vidx+idx*3, pt)
			normal.SetVector3(vidx+idx*3, nrm)
			texCoord.Set(tidx+idx*2, float32(j)/float32(radialSegs), float32(i)/float32(tubeSegs))
			bb.ExpandByPoint(pt)
			idx++
		}
	}

	vOff := uint32(vtxOff)
	t1 := tubeSegs + 1
	ii := idxOff
	for j := 0; j < radialSegs; j++ {
		for i := 0; i < tubeSegs; i++ {
			a := j*t1 + i
			b := j*t1 + i + 1
			c := (j+1)*t1 + i + 1
			d := (j+1)*t1 + i
			index.Set(ii, vOff+uint32(a), vOff+uint32(b), vOff+uint32(c),
				vOff+uint32(a), vOff+uint32(c), vOff+uint32(d))
			ii += 6
		}
	}
	return bb
}
