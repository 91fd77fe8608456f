// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trimesh provides the indexed triangle mesh used for rendering
// and interchange: flat position / normal / texture-coordinate arrays with
// a triangle index list, plus bounding-volume and normal derivation.
// It is a read-optimized projection of a surface: there are no topology
// queries and no editing operators here. Use the convert package to move
// between this representation and the half-edge [hemesh.Mesh].
package trimesh

import (
	"fmt"
	"sync/atomic"

	"cogentcore.org/core/math32"
)

// nextID is the source of process-unique mesh identities,
// used by converter caches to key on a specific mesh.
var nextID atomic.Uint64

// Mesh is an indexed triangle mesh: positions, normals and texture
// coordinates per vertex, and a flat index list where each consecutive
// triple defines one triangle with counter-clockwise outward winding.
// When Lines is set, the index list holds 2-index line segments instead
// (only the Grid primitive produces this).
//
// Direct edits to the arrays are allowed, but must be followed by a
// call to [Mesh.Changed] so that cached bounds and any converter cache
// entries keyed on this mesh are invalidated.
type Mesh struct {

	// Name is an optional name, e.g., from a named object in an OBJ file.
	Name string

	// Vertex contains the vertex positions, 3 floats per vertex.
	Vertex math32.ArrayF32

	// Normal contains the vertex normals, 3 floats per vertex.
	// May be empty; use [Mesh.CalculateNormals] to derive them.
	Normal math32.ArrayF32

	// TexCoord contains the texture coordinates, 2 floats per vertex.
	// May be empty.
	TexCoord math32.ArrayF32

	// Index contains the triangle indices, 3 per triangle
	// (2 per segment when Lines is set).
	Index math32.ArrayU32

	// Lines indicates that Index holds line segments, not triangles.
	Lines bool

	// cached bounds, recomputed on demand after Changed
	bbox        math32.Box3
	radius      float32
	boundsValid bool

	id      uint64
	version uint64
}

// NewMesh returns a new empty mesh with the given name.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name, id: nextID.Add(1)}
}

// ID returns the process-unique identity of this mesh,
// assigning one if the mesh was created as a zero value.
func (ms *Mesh) ID() uint64 {
	if ms.id == 0 {
		ms.id = nextID.Add(1)
	}
	return ms.id
}

// Version returns the mutation counter for this mesh. It increments on
// every [Mesh.SetData] or [Mesh.Changed] call, so converter caches can
// tell whether a previously converted artifact is still current.
func (ms *Mesh) Version() uint64 {
	return ms.version
}

// Changed records that the mesh data was mutated directly:
// bumps the version and invalidates the cached bounding volume.
func (ms *Mesh) Changed() {
	ms.version++
	ms.boundsValid = false
}

// SetData replaces the mesh contents with the given arrays.
// Normal and texCoord may be nil. Invalidates the bounding volume.
func (ms *Mesh) SetData(vertex, normal, texCoord math32.ArrayF32, index math32.ArrayU32) {
	ms.Vertex = vertex
	ms.Normal = normal
	ms.TexCoord = texCoord
	ms.Index = index
	ms.Changed()
}

// NumVertex returns the number of vertices.
func (ms *Mesh) NumVertex() int {
	return len(ms.Vertex) / 3
}

// NumTriangle returns the number of triangles (0 for a Lines mesh).
func (ms *Mesh) NumTriangle() int {
	if ms.Lines {
		return 0
	}
	return len(ms.Index) / 3
}

// IsEmpty returns true if the mesh has no vertices.
func (ms *Mesh) IsEmpty() bool {
	return len(ms.Vertex) == 0
}

// Position returns the position of vertex i.
func (ms *Mesh) Position(i int) math32.Vector3 {
	var v math32.Vector3
	v.FromSlice(ms.Vertex, i*3)
	return v
}

// SetPosition sets the position of vertex i.
// Call [Mesh.Changed] when done mutating.
func (ms *Mesh) SetPosition(i int, p math32.Vector3) {
	p.ToSlice(ms.Vertex, i*3)
}

// NormalAt returns the normal of vertex i (zero if normals are absent).
func (ms *Mesh) NormalAt(i int) math32.Vector3 {
	var v math32.Vector3
	if i*3+3 > len(ms.Normal) {
		return v
	}
	v.FromSlice(ms.Normal, i*3)
	return v
}

// SetNormalAt sets the normal of vertex i; normals must be allocated.
func (ms *Mesh) SetNormalAt(i int, n math32.Vector3) {
	n.ToSlice(ms.Normal, i*3)
}

// TexCoordAt returns the texture coordinate of vertex i
// (zero if texture coordinates are absent).
func (ms *Mesh) TexCoordAt(i int) math32.Vector2 {
	var v math32.Vector2
	if i*2+2 > len(ms.TexCoord) {
		return v
	}
	v.FromSlice(ms.TexCoord, i*2)
	return v
}

// SetTexCoordAt sets the texture coordinate of vertex i;
// texture coordinates must be allocated.
func (ms *Mesh) SetTexCoordAt(i int, tc math32.Vector2) {
	tc.ToSlice(ms.TexCoord, i*2)
}

// Triangle returns the three vertex indices of triangle i.
func (ms *Mesh) Triangle(i int) (a, b, c uint32) {
	return ms.Index[i*3], ms.Index[i*3+1], ms.Index[i*3+2]
}

// CalculateNormals computes per-vertex normals as the area-weighted
// accumulation of the triangle normals, then normalizes. Existing
// normals are replaced. The computation depends only on positions and
// indices, so repeated calls produce identical results.
func (ms *Mesh) CalculateNormals() {
	nv := ms.NumVertex()
	ms.Normal = make(math32.ArrayF32, nv*3)
	if ms.Lines {
		return
	}
	acc := make([]math32.Vector3, nv)
	nt := ms.NumTriangle()
	for ti := 0; ti < nt; ti++ {
		a, b, c := ms.Triangle(ti)
		pa := ms.Position(int(a))
		pb := ms.Position(int(b))
		pc := ms.Position(int(c))
		// cross product length is twice the triangle area,
		// which provides the area weighting directly
		fn := pb.Sub(pa).Cross(pc.Sub(pa))
		acc[a].SetAdd(fn)
		acc[b].SetAdd(fn)
		acc[c].SetAdd(fn)
	}
	for i := 0; i < nv; i++ {
		n := acc[i]
		if n.LengthSquared() > 0 {
			n = n.Normal()
		}
		ms.SetNormalAt(i, n)
	}
	ms.version++
}

// updateBounds recomputes the cached bounding box and sphere.
func (ms *Mesh) updateBounds() {
	bb := math32.B3Empty()
	nv := ms.NumVertex()
	for i := 0; i < nv; i++ {
		bb.ExpandByPoint(ms.Position(i))
	}
	ms.bbox = bb
	ms.radius = 0
	if nv == 0 {
		ms.bbox = math32.Box3{}
		ms.boundsValid = true
		return
	}
	ctr := bb.Center()
	for i := 0; i < nv; i++ {
		d := ms.Position(i).DistanceTo(ctr)
		if d > ms.radius {
			ms.radius = d
		}
	}
	ms.boundsValid = true
}

// Bounds returns the axis-aligned bounding box of the mesh,
// computed on first request after a mutation, then cached.
func (ms *Mesh) Bounds() math32.Box3 {
	if !ms.boundsValid {
		ms.updateBounds()
	}
	return ms.bbox
}

// Center returns the center of the bounding box.
func (ms *Mesh) Center() math32.Vector3 {
	if !ms.boundsValid {
		ms.updateBounds()
	}
	return ms.bbox.Center()
}

// BoundingRadius returns the radius of the bounding sphere around
// the bounding box center.
func (ms *Mesh) BoundingRadius() float32 {
	if !ms.boundsValid {
		ms.updateBounds()
	}
	return ms.radius
}

// Clone returns a deep copy of the mesh with a new identity.
func (ms *Mesh) Clone() *Mesh {
	nm := NewMesh(ms.Name)
	nm.Vertex = append(math32.ArrayF32(nil), ms.Vertex...)
	nm.Normal = append(math32.ArrayF32(nil), ms.Normal...)
	nm.TexCoord = append(math32.ArrayF32(nil), ms.TexCoord...)
	nm.Index = append(math32.ArrayU32(nil), ms.Index...)
	nm.Lines = ms.Lines
	return nm
}

// Merge appends the contents of the other mesh to this one,
// offsetting its indices. Both meshes must agree on Lines.
func (ms *Mesh) Merge(other *Mesh) error {
	if ms.Lines != other.Lines {
		return fmt.Errorf("trimesh.Merge: cannot merge a line mesh with a triangle mesh")
	}
	off := uint32(ms.NumVertex())
	ms.Vertex = append(ms.Vertex, other.Vertex...)
	ms.Normal = append(ms.Normal, other.Normal...)
	ms.TexCoord = append(ms.TexCoord, other.TexCoord...)
	for _, ix := range other.Index {
		ms.Index = append(ms.Index, ix+off)
	}
	ms.Changed()
	return nil
}

// Transform applies the given matrix to all positions, and its linear
// part to the normals (re-normalized).
func (ms *Mesh) Transform(m *math32.Matrix4) {
	nv := ms.NumVertex()
	hasNorm := len(ms.Normal) >= nv*3
	for i := 0; i < nv; i++ {
		p := ms.Position(i)
		tp := p.MulMatrix4(m)
		ms.SetPosition(i, tp)
		if hasNorm {
			n := ms.NormalAt(i)
			tn := p.Add(n).MulMatrix4(m).Sub(tp)
			if tn.LengthSquared() > 0 {
				tn = tn.Normal()
			}
			ms.SetNormalAt(i, tn)
		}
	}
	ms.Changed()
}

// FlipWinding reverses the winding order of every triangle,
// flipping the outward side. No-op for line meshes.
func (ms *Mesh) FlipWinding() {
	if ms.Lines {
		return
	}
	nt := ms.NumTriangle()
	for ti := 0; ti < nt; ti++ {
		ms.Index[ti*3+1], ms.Index[ti*3+2] = ms.Index[ti*3+2], ms.Index[ti*3+1]
	}
	ms.Changed()
}

// SizeBytes returns the approximate memory footprint of the mesh data,
// used for cache memory accounting.
func (ms *Mesh) SizeBytes() int64 {
	return int64(len(ms.Vertex)+len(ms.Normal)+len(ms.TexCoord)+len(ms.Index)) * 4
}

// Validate checks structural consistency: index list length divisible
// by 3 (2 for lines), all indices in range, and attribute arrays either
// empty or sized to the vertex count.
func (ms *Mesh) Validate() error {
	nv := ms.NumVertex()
	if len(ms.Vertex)%3 != 0 {
		return fmt.Errorf("trimesh.Validate: vertex array length %d is not a multiple of 3", len(ms.Vertex))
	}
	stride := 3
	if ms.Lines {
		stride = 2
	}
	if len(ms.Index)%stride != 0 {
		return fmt.Errorf("trimesh.Validate: index count %d is not a multiple of %d", len(ms.Index), stride)
	}
	for i, ix := range ms.Index {
		if int(ix) >= nv {
			return fmt.Errorf("trimesh.Validate: index %d at position %d out of range (%d vertices)", ix, i, nv)
		}
	}
	if len(ms.Normal) != 0 && len(ms.Normal) != nv*3 {
		return fmt.Errorf("trimesh.Validate: normal array length %d does not match %d vertices", len(ms.Normal), nv)
	}
	if len(ms.TexCoord) != 0 && len(ms.TexCoord) != nv*2 {
		return fmt.Errorf("trimesh.Validate: texcoord array length %d does not match %d vertices", len(ms.TexCoord), nv)
	}
	return nil
}
