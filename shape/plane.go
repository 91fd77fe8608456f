// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import "cogentcore.org/core/math32"

// Plane is a flat 2D plane in the XZ ground plane, facing +Y.
// UVs run 0-1 across width (X) and depth (Z).
type Plane struct {
	ShapeBase

	// size along X, Z
	Size math32.Vector2

	// number of segments along each dimension (at least 1)
	Segs math32.Vector2i
}

func (pl *Plane) Defaults() {
	pl.Size.Set(2, 2)
	pl.Segs.Set(1, 1)
}

func (pl *Plane) MeshSize() (numVertex, numIndex int) {
	return PlaneN(int(pl.Segs.X), int(pl.Segs.Y))
}

// Set writes the plane into the given allocated arrays.
func (pl *Plane) Set(vertex, normal, texCoord math32.ArrayF32, index math32.ArrayU32) {
	pl.CBBox = SetPlane(vertex, normal, texCoord, index, pl.VtxOff, pl.IdxOff,
		math32.X, math32.Z, 1, -1, 1, pl.Size.X, pl.Size.Y,
		-pl.Size.X/2, -pl.Size.Y/2, 0, int(pl.Segs.X), int(pl.Segs.Y), pl.Pos)
}

// PlaneN returns the number of vertex and index points for a plane
// with the given number of segments, in vertex points, not floats.
func PlaneN(wsegs, hsegs int) (numVertex, numIndex int) {
	wsegs = max(wsegs, 1)
	hsegs = max(hsegs, 1)
	return (wsegs + 1) * (hsegs + 1), wsegs * hsegs * 6
}

// SetPlane writes plane vertex, normal, texture and index data at the
// given starting vertex and index offsets (in points). The plane
// spans width along waxis and height along haxis, starting at woff,
// hoff and sitting at zoff along the remaining axis; wdir and hdir
// (+1 or -1) flip the direction each axis is traversed, and norm is
// the sign of the face normal along the remaining axis. The caller
// picks wdir, hdir and norm consistently so that winding comes out
// counter-clockwise seen from the normal side. pos is an arbitrary
// offset for composing shapes. Returns the bounding box.
func SetPlane(vertex, normal, texCoord math32.ArrayF32, index math32.ArrayU32, vtxOff, idxOff int, waxis, haxis math32.Dims, wdir, hdir, norm float32, width, height, woff, hoff, zoff float32, wsegs, hsegs int, pos math32.Vector3) math32.Box3 {
	naxis := math32.Z
	switch {
	case waxis != math32.X && haxis != math32.X:
		naxis = math32.X
	case waxis != math32.Y && haxis != math32.Y:
		naxis = math32.Y
	}
	wsegs = max(wsegs, 1)
	hsegs = max(hsegs, 1)
	segWidth := width / float32(wsegs)
	segHeight := height / float32(hsegs)

	var nrm math32.Vector3
	nrm.SetDim(naxis, norm)

	bb := math32.B3Empty()
	idx := 0
	vidx := vtxOff * 3
	tidx := vtxOff * 2
	for iy := 0; iy <= hsegs; iy++ {
		for ix := 0; ix <= wsegs; ix++ {
			var pt math32.Vector3
			pt.SetDim(waxis, (woff+float32(ix)*segWidth)*wdir)
			pt.SetDim(haxis, (hoff+float32(iy)*segHeight)*hdir)
			pt.SetDim(naxis, zoff)
			pt.SetAdd(pos)
			vertex.SetVector3(vidx+idx*3, pt)
			normal.SetVector3(vidx+idx*3, nrm)
			texCoord.Set(tidx+idx*2, float32(ix)/float32(wsegs), 1-float32(iy)/float32(hsegs))
			bb.ExpandByPoint(pt)
			idx++
		}
	}

	vOff := uint32(vtxOff)
	w1 := wsegs + 1
	ii := idxOff
	for iy := 0; iy < hsegs; iy++ {
		for ix := 0; ix < wsegs; ix++ {
			a := ix + w1*iy
			b := ix + w1*(iy+1)
			c := ix + 1 + w1*(iy+1)
			d := ix + 1 + w1*iy
			// counter-clockwise in the (wdir*waxis, hdir*haxis) frame
			index.Set(ii, vOff+uint32(a), vOff+uint32(d), vOff+uint32(c),
				vOff+uint32(a), vOff+uint32(c), vOff+uint32(b))
			ii += 6
		}
	}
	return bb
}
