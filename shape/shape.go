// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shape generates the standard modeling primitives (cube,
// plane, sphere, cylinder, cone, torus, icosphere, grid) as indexed
// triangle meshes. Each primitive is a composable shape element that
// writes into preallocated arrays at an offset, so compound shapes can
// be assembled with [Group]; the New* constructors validate parameters
// and materialize a single primitive as a [trimesh.Mesh].
package shape

import (
	"cogentcore.org/core/math32"
	"github.com/The-No-Hands-company/RudeBase3D-sub002/trimesh"
)

// Shape is the interface for all shape-constructing elements. It
// extends [trimesh.Source] with array offsets so elements can be
// composed into one set of shared arrays.
type Shape interface {
	trimesh.Source

	// Offs returns the starting offsets for vertices and indexes in
	// the full shape array, in points, not floats.
	Offs() (vtxOff, idxOff int)

	// SetOffs sets the starting offsets for vertices and indexes in
	// the full shape array.
	SetOffs(vtxOff, idxOff int)

	// BBox returns the bounding box for the shape, typically centered
	// around 0. Only valid after Set has been called.
	BBox() math32.Box3
}

// ShapeBase is the base shape element.
type ShapeBase struct {

	// vertex offset, in points
	VtxOff int

	// index offset, in points
	IdxOff int

	// cubic bounding box in local coords
	CBBox math32.Box3

	// all shapes take a 3D position offset to enable composition
	Pos math32.Vector3
}

// Offs returns the starting offsets for vertices and indexes in the
// full shape array, in points, not floats.
func (sb *ShapeBase) Offs() (vtxOff, idxOff int) {
	return sb.VtxOff, sb.IdxOff
}

// SetOffs sets the starting offsets for vertices and indexes in the
// full shape array.
func (sb *ShapeBase) SetOffs(vtxOff, idxOff int) {
	sb.VtxOff, sb.IdxOff = vtxOff, idxOff
}

// BBox returns the bounding box for the shape, typically centered
// around 0. Only valid after Set has been called.
func (sb *ShapeBase) BBox() math32.Box3 {
	return sb.CBBox
}

// BBoxFromVertex returns the bounding box of the given range of vertex
// points.
func BBoxFromVertex(vertex math32.ArrayF32, vtxOff, n int) math32.Box3 {
	bb := math32.B3Empty()
	var v math32.Vector3
	for vi := range n {
		v.FromSlice(vertex, (vtxOff+vi)*3)
		bb.ExpandByPoint(v)
	}
	return bb
}
