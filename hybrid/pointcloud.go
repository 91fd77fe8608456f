// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hybrid

import (
	"fmt"

	"cogentcore.org/core/math32"
	"github.com/The-No-Hands-company/RudeBase3D-sub002/hemesh"
	"github.com/The-No-Hands-company/RudeBase3D-sub002/trimesh"
)

// PointCloud is an unstructured set of points with optional per-point
// normals and colors. Normals and Colors are either empty or the same
// length as Points.
type PointCloud struct {
	Points  []math32.Vector3
	Normals []math32.Vector3
	Colors  []math32.Vector4
}

func (pc *PointCloud) Representation() Representation { return Points }

func (pc *PointCloud) SizeBytes() int64 {
	return int64(len(pc.Points))*12 + int64(len(pc.Normals))*12 + int64(len(pc.Colors))*16
}

// Validate checks that the optional attribute arrays match the point
// count.
func (pc *PointCloud) Validate() error {
	if len(pc.Normals) != 0 && len(pc.Normals) != len(pc.Points) {
		return fmt.Errorf("hybrid.PointCloud: %d normals for %d points: %w",
			len(pc.Normals), len(pc.Points), hemesh.ErrInvalidParameter)
	}
	if len(pc.Colors) != 0 && len(pc.Colors) != len(pc.Points) {
		return fmt.Errorf("hybrid.PointCloud: %d colors for %d points: %w",
			len(pc.Colors), len(pc.Points), hemesh.ErrInvalidParameter)
	}
	return nil
}

// Bounds returns the bounding box of the points.
func (pc *PointCloud) Bounds() math32.Box3 {
	bb := math32.B3Empty()
	for _, p := range pc.Points {
		bb.ExpandByPoint(p)
	}
	return bb
}

// PointCloudFromMesh samples a point cloud from a mesh's vertices,
// carrying normals along when present.
func PointCloudFromMesh(ms *trimesh.Mesh) *PointCloud {
	pc := &PointCloud{}
	nv := ms.NumVertex()
	pc.Points = make([]math32.Vector3, nv)
	for i := range nv {
		pc.Points[i] = ms.Position(i)
	}
	if len(ms.Normal) > 0 {
		pc.Normals = make([]math32.Vector3, nv)
		for i := range nv {
			pc.Normals[i] = ms.NormalAt(i)
		}
	}
	return pc
}
