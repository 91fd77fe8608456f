// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import "cogentcore.org/core/math32"

// Cube is a rectangular-shaped solid (cuboid) with flat per-face
// normals: each side has its own four vertices, so corners are
// duplicated three ways. UVs run 0-1 across each side independently.
type Cube struct {
	ShapeBase

	// size along each dimension
	Size math32.Vector3

	// number of segments to divide each plane into (at least 1)
	Segs math32.Vector3i
}

func (cb *Cube) Defaults() {
	cb.Size.Set(1, 1, 1)
	cb.Segs.Set(1, 1, 1)
}

func (cb *Cube) MeshSize() (numVertex, numIndex int) {
	return CubeN(cb.Segs)
}

// Set writes the cube into the given allocated arrays.
func (cb *Cube) Set(vertex, normal, texCoord math32.ArrayF32, index math32.ArrayU32) {
	hsz := SetCube(vertex, normal, texCoord, index, cb.VtxOff, cb.IdxOff, cb.Size, cb.Segs, cb.Pos)
	mn := cb.Pos.Sub(hsz)
	mx := cb.Pos.Add(hsz)
	cb.CBBox.Set(&mn, &mx)
}

// CubeN returns the number of vertex and index points for a cube with
// the given number of segments per side, in vertex points, not floats.
func CubeN(segs math32.Vector3i) (numVertex, numIndex int) {
	nv, ni := PlaneN(int(segs.X), int(segs.Y))
	numVertex += 2 * nv
	numIndex += 2 * ni
	nv, ni = PlaneN(int(segs.X), int(segs.Z))
	numVertex += 2 * nv
	numIndex += 2 * ni
	nv, ni = PlaneN(int(segs.Z), int(segs.Y))
	numVertex += 2 * nv
	numIndex += 2 * ni
	return
}

// SetCube writes cube vertex, normal, texture and index data at the
// given starting vertex and index offsets (in points), as six
// outward-facing planes. pos is an arbitrary offset for composing
// shapes. Returns the half-size of the cube.
func SetCube(vertex, normal, texCoord math32.ArrayF32, index math32.ArrayU32, vtxOff, idxOff int, size math32.Vector3, segs math32.Vector3i, pos math32.Vector3) math32.Vector3 {
	hsz := size.DivScalar(2)

	voff := vtxOff
	ioff := idxOff
	step := func(wsegs, hsegs int) {
		nv, ni := PlaneN(wsegs, hsegs)
		voff += nv
		ioff += ni
	}

	// back, then bottom / top, left / right, front
	SetPlane(vertex, normal, texCoord, index, voff, ioff, math32.X, math32.Y, -1, 1, -1, size.X, size.Y, -hsz.X, -hsz.Y, -hsz.Z, int(segs.X), int(segs.Y), pos) // nz
	step(int(segs.X), int(segs.Y))
	SetPlane(vertex, normal, texCoord, index, voff, ioff, math32.X, math32.Z, 1, 1, -1, size.X, size.Z, -hsz.X, -hsz.Z, -hsz.Y, int(segs.X), int(segs.Z), pos) // ny
	step(int(segs.X), int(segs.Z))
	SetPlane(vertex, normal, texCoord, index, voff, ioff, math32.X, math32.Z, 1, -1, 1, size.X, size.Z, -hsz.X, -hsz.Z, hsz.Y, int(segs.X), int(segs.Z), pos) // py
	step(int(segs.X), int(segs.Z))
	SetPlane(vertex, normal, texCoord, index, voff, ioff, math32.Z, math32.Y, 1, 1, -1, size.Z, size.Y, -hsz.Z, -hsz.Y, -hsz.X, int(segs.Z), int(segs.Y), pos) // nx
	step(int(segs.Z), int(segs.Y))
	SetPlane(vertex, normal, texCoord, index, voff, ioff, math32.Z, math32.Y, -1, 1, 1, size.Z, size.Y, -hsz.Z, -hsz.Y, hsz.X, int(segs.Z), int(segs.Y), pos) // px
	step(int(segs.Z), int(segs.Y))
	SetPlane(vertex, normal, texCoord, index, voff, ioff, math32.X, math32.Y, 1, 1, 1, size.X, size.Y, -hsz.X, -hsz.Y, hsz.Z, int(segs.X), int(segs.Y), pos) // pz
	return hsz
}
