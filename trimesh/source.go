// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trimesh

import "cogentcore.org/core/math32"

// Source is anything that can populate preallocated mesh arrays:
// the contract between the primitive generators (and any external mesh
// provider) and this package. Implementations report the sizes they
// need, then write positions, normals, texture coordinates and indices
// into arrays of exactly those sizes.
type Source interface {

	// MeshSize returns the number of vertex points and the number of
	// index values this source will produce.
	MeshSize() (numVertex, numIndex int)

	// Set writes the mesh data into the given preallocated arrays:
	// vertex and normal have 3 floats per vertex, texCoord has 2.
	Set(vertex, normal, texCoord math32.ArrayF32, index math32.ArrayU32)
}

// FromSource materializes a mesh from the given source.
func FromSource(name string, src Source) *Mesh {
	nv, ni := src.MeshSize()
	ms := NewMesh(name)
	ms.Vertex = make(math32.ArrayF32, nv*3)
	ms.Normal = make(math32.ArrayF32, nv*3)
	ms.TexCoord = make(math32.ArrayF32, nv*2)
	ms.Index = make(math32.ArrayU32, ni)
	src.Set(ms.Vertex, ms.Normal, ms.TexCoord, ms.Index)
	ms.Changed()
	return ms
}
