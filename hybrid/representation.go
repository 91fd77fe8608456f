// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hybrid

// Representation identifies a geometry representation kind: the tag
// under which a [Value] is stored in a [Geometry].
type Representation int32 //enums:enum -transform kebab

const (
	// FaceVertex is an indexed triangle mesh ([trimesh.Mesh]).
	FaceVertex Representation = iota

	// HalfEdge is a topological half-edge mesh ([hemesh.Mesh]).
	HalfEdge

	// NURBS is a NURBS surface patch ([NURBSSurface]).
	NURBS

	// Subdivision is a Catmull-Clark subdivision surface
	// ([subdiv.Engine] over a base mesh).
	Subdivision

	// Voxel is an occupancy voxel grid ([VoxelGrid]).
	Voxel

	// Points is an unstructured point cloud ([PointCloud]).
	Points

	// Implicit is an implicit distance field ([ImplicitField]). It is
	// a registered tag only: no native conversions exist.
	Implicit
)
