// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import "cogentcore.org/core/math32"

// Grid is a square reference grid of lines in the XZ ground plane:
// the one non-surface primitive. Indexes come in pairs, one line
// segment each, for a mesh with Lines set. Normals all point +Y and
// UVs map the grid square to 0-1.
type Grid struct {
	ShapeBase

	// edge length of the grid square
	Size float32

	// number of cells along each side (at least 1)
	Divisions int `min:"1"`
}

func (gr *Grid) Defaults() {
	gr.Size = 10
	gr.Divisions = 10
}

func (gr *Grid) MeshSize() (numVertex, numIndex int) {
	return GridN(gr.Divisions)
}

// GridN returns the number of vertex and index points for a grid with
// the given number of divisions, in vertex points, not floats.
func GridN(divisions int) (numVertex, numIndex int) {
	divisions = max(divisions, 1)
	n := 2 * (divisions + 1) // lines along X plus lines along Z
	return 2 * n, 2 * n
}

// Set writes the grid lines into the given allocated arrays.
func (gr *Grid) Set(vertex, normal, texCoord math32.ArrayF32, index math32.ArrayU32) {
	divisions := max(gr.Divisions, 1)
	h := gr.Size / 2
	step := gr.Size / float32(divisions)

	bb := math32.B3Empty()
	idx := 0
	vidx := gr.VtxOff * 3
	tidx := gr.VtxOff * 2
	ii := gr.IdxOff
	vOff := uint32(gr.VtxOff)
	put := func(p math32.Vector3) {
		p.SetAdd(gr.Pos)
		vertex.SetVector3(vidx+idx*3, p)
		normal.SetVector3(vidx+idx*3, math32.Vec3(0, 1, 0))
		texCoord.Set(tidx+idx*2, p.X/gr.Size+0.5, p.Z/gr.Size+0.5)
		bb.ExpandByPoint(p)
		index.Set(ii, vOff+uint32(idx))
		idx++
		ii++
	}
	for i := 0; i <= divisions; i++ {
		z := -h + float32(i)*step
		put(math32.Vec3(-h, 0, z))
		put(math32.Vec3(h, 0, z))
	}
	for i := 0; i <= divisions; i++ {
		x := -h + float32(i)*step
		put(math32.Vec3(x, 0, -h))
		put(math32.Vec3(x, 0, h))
	}
	gr.CBBox = bb
}
