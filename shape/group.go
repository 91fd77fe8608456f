// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import "cogentcore.org/core/math32"

// Group is a group of shapes composed into one set of arrays. Each
// member keeps its own Pos offset, so compound fixtures can be laid
// out relative to each other.
type Group struct {
	ShapeBase

	// list of shapes in the group
	Shapes []Shape
}

func (gp *Group) MeshSize() (numVertex, numIndex int) {
	for _, sh := range gp.Shapes {
		nv, ni := sh.MeshSize()
		numVertex += nv
		numIndex += ni
	}
	return
}

// Set writes all member shapes into the given allocated arrays,
// updating each member's offsets as it goes.
func (gp *Group) Set(vertex, normal, texCoord math32.ArrayF32, index math32.ArrayU32) {
	vo := gp.VtxOff
	io := gp.IdxOff
	gp.CBBox.SetEmpty()
	for _, sh := range gp.Shapes {
		sh.SetOffs(vo, io)
		sh.Set(vertex, normal, texCoord, index)
		gp.CBBox.ExpandByBox(sh.BBox())
		nv, ni := sh.MeshSize()
		vo += nv
		io += ni
	}
}
