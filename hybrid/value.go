// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hybrid manages geometry that lives in several
// representations at once: each [Geometry] holds one authoritative
// primary representation plus cached conversions to others, and a
// [Manager] owns a registry of geometries under a shared memory
// budget.
package hybrid

import (
	"github.com/The-No-Hands-company/RudeBase3D-sub002/hemesh"
	"github.com/The-No-Hands-company/RudeBase3D-sub002/subdiv"
	"github.com/The-No-Hands-company/RudeBase3D-sub002/trimesh"
)

// Value is a geometry payload in one concrete representation.
type Value interface {

	// Representation returns the tag this value is stored under.
	Representation() Representation

	// SizeBytes returns the approximate memory footprint, used for
	// cache memory accounting.
	SizeBytes() int64
}

// MeshValue wraps an indexed triangle mesh as a [Value].
type MeshValue struct {
	Mesh *trimesh.Mesh
}

func (mv *MeshValue) Representation() Representation { return FaceVertex }

func (mv *MeshValue) SizeBytes() int64 {
	if mv.Mesh == nil {
		return 0
	}
	return mv.Mesh.SizeBytes()
}

// HalfEdgeValue wraps a half-edge mesh as a [Value].
type HalfEdgeValue struct {
	Mesh *hemesh.Mesh
}

func (hv *HalfEdgeValue) Representation() Representation { return HalfEdge }

func (hv *HalfEdgeValue) SizeBytes() int64 {
	if hv.Mesh == nil {
		return 0
	}
	return hv.Mesh.SizeBytes()
}

// SubdivisionValue wraps a subdivision engine as a [Value]. Its
// footprint counts every cached level above the base, which is owned
// elsewhere.
type SubdivisionValue struct {
	Engine *subdiv.Engine
}

func (sv *SubdivisionValue) Representation() Representation { return Subdivision }

func (sv *SubdivisionValue) SizeBytes() int64 {
	if sv.Engine == nil {
		return 0
	}
	var n int64
	for k := 1; k < sv.Engine.Levels(); k++ {
		if m, err := sv.Engine.Level(k); err == nil {
			n += m.SizeBytes()
		}
	}
	return n
}
