// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package convert translates between the indexed triangle representation
// ([trimesh.Mesh]) and the half-edge representation ([hemesh.Mesh])
// without losing vertex attributes, and caches conversion results
// keyed on source identity and version.
package convert

import (
	"fmt"
	"log/slog"

	"cogentcore.org/core/math32"
	"github.com/The-No-Hands-company/RudeBase3D-sub002/hemesh"
	"github.com/The-No-Hands-company/RudeBase3D-sub002/trimesh"
)

// Options control triangle-to-half-edge conversion.
type Options struct {

	// MergeVertices welds positionally coincident vertices before
	// building topology, so that a triangle soup with per-face vertex
	// duplication (e.g. a flat-shaded cube) closes into a connected
	// surface.
	MergeVertices bool

	// Tolerance is the welding distance for MergeVertices.
	Tolerance float32
}

// Defaults sets the default conversion options: welding on at 1e-5.
func (o *Options) Defaults() {
	o.MergeVertices = true
	o.Tolerance = 1.0e-5
}

// ToHalfEdge builds a half-edge mesh from an indexed triangle mesh.
// Vertices are optionally welded first (see [Options]); degenerate
// triangles (repeated index) are skipped and duplicate triangles (same
// cyclic index triple) are rejected individually, both with a log
// entry, without failing the whole conversion. Triangles whose
// insertion would create a non-manifold fan are likewise dropped.
// Normals are recomputed from the final topology.
func ToHalfEdge(rm *trimesh.Mesh, opts *Options) (*hemesh.Mesh, error) {
	if rm == nil || rm.Lines {
		return nil, fmt.Errorf("convert.ToHalfEdge: need a triangle mesh: %w", hemesh.ErrInvalidParameter)
	}
	if err := rm.Validate(); err != nil {
		return nil, fmt.Errorf("convert.ToHalfEdge: %w", err)
	}
	var o Options
	if opts != nil {
		o = *opts
	} else {
		o.Defaults()
	}
	src := rm
	if o.MergeVertices {
		src = rm.WeldVertices(o.Tolerance)
	}

	hm := hemesh.NewMesh()
	verts := make([]hemesh.Vertex, src.NumVertex())
	hasNorm := len(src.Normal) > 0
	hasUV := len(src.TexCoord) > 0
	for i := range verts {
		v := hm.AddVertex(src.Position(i))
		if hasNorm {
			hm.SetNorm(v, src.NormalAt(i))
		}
		if hasUV {
			hm.SetUV(v, src.TexCoordAt(i))
		}
		verts[i] = v
	}

	seen := make(map[[3]uint32]bool, src.NumTriangle())
	for i := range src.NumTriangle() {
		a, b, c := src.Triangle(i)
		if a == b || b == c || a == c {
			slog.Debug("convert.ToHalfEdge: skipping degenerate triangle",
				"mesh", rm.Name, "triangle", i)
			continue
		}
		key := cyclicKey(a, b, c)
		if seen[key] {
			slog.Warn("convert.ToHalfEdge: rejecting duplicate triangle",
				"mesh", rm.Name, "triangle", i)
			continue
		}
		seen[key] = true
		if _, err := hm.AddFace(verts[a], verts[b], verts[c]); err != nil {
			slog.Error("convert.ToHalfEdge: dropping triangle",
				"mesh", rm.Name, "triangle", i, "error", err)
		}
	}
	hm.UpdateNormals()
	return hm, nil
}

// cyclicKey normalizes a triangle index triple to start at its
// smallest index, preserving winding, so duplicate faces are detected
// regardless of which corner they start at.
func cyclicKey(a, b, c uint32) [3]uint32 {
	switch {
	case b < a && b < c:
		return [3]uint32{b, c, a}
	case c < a && c < b:
		return [3]uint32{c, a, b}
	}
	return [3]uint32{a, b, c}
}

// ToRenderMesh projects a half-edge mesh into an indexed triangle
// mesh: vertices are numbered in iteration order and every face is fan
// triangulated around its first vertex, preserving winding. Wire edges
// and isolated vertices do not appear in the output.
func ToRenderMesh(hm *hemesh.Mesh) *trimesh.Mesh {
	rm := trimesh.NewMesh("")
	if hm == nil {
		return rm
	}
	nv := hm.NumVertices()
	index := make(map[hemesh.Vertex]uint32, nv)
	vertex := make(math32.ArrayF32, 0, nv*3)
	normal := make(math32.ArrayF32, 0, nv*3)
	texCoord := make(math32.ArrayF32, 0, nv*2)
	for v := range hm.Vertices() {
		index[v] = uint32(len(vertex) / 3)
		p := hm.Pos(v)
		n := hm.Norm(v)
		uv := hm.UV(v)
		vertex = append(vertex, p.X, p.Y, p.Z)
		normal = append(normal, n.X, n.Y, n.Z)
		texCoord = append(texCoord, uv.X, uv.Y)
	}
	var tris math32.ArrayU32
	for f := range hm.Faces() {
		vs := hm.FaceVertices(f)
		for i := 1; i < len(vs)-1; i++ {
			tris = append(tris, index[vs[0]], index[vs[i]], index[vs[i+1]])
		}
	}
	rm.SetData(vertex, normal, texCoord, tris)
	return rm
}
