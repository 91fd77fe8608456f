// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package subdiv implements Catmull-Clark subdivision surfaces over
// half-edge meshes, with per-level caching: level 0 is the base mesh
// and each further level refines the previous one. All edges are
// treated as smooth; sharp-crease tagging is a future extension.
package subdiv

import (
	"fmt"

	"cogentcore.org/core/math32"
	"github.com/The-No-Hands-company/RudeBase3D-sub002/convert"
	"github.com/The-No-Hands-company/RudeBase3D-sub002/hemesh"
	"github.com/The-No-Hands-company/RudeBase3D-sub002/trimesh"
)

// Engine subdivides a base mesh and caches the resulting levels.
// Levels extend idempotently: subdividing to a level that is already
// cached is a no-op, and subdividing further reuses the cached
// intermediate levels. The engine notices when Base is mutated (via
// its version stamp) and drops stale levels on the next request.
type Engine struct {

	// Base is the level-0 mesh. It stays owned by the caller; the
	// engine never mutates it.
	Base *hemesh.Mesh

	levels      []*hemesh.Mesh
	baseVersion uint64
}

// NewEngine returns an engine over the given base mesh.
func NewEngine(base *hemesh.Mesh) *Engine {
	return &Engine{Base: base}
}

// ensure seeds the level cache and drops it if the base has changed.
func (en *Engine) ensure() error {
	if en.Base == nil {
		return fmt.Errorf("subdiv: no base mesh: %w", hemesh.ErrInvalidParameter)
	}
	if len(en.levels) > 0 && en.baseVersion == en.Base.Version() {
		return nil
	}
	en.levels = []*hemesh.Mesh{en.Base}
	en.baseVersion = en.Base.Version()
	return nil
}

// Levels reports how many levels are cached, counting the base.
func (en *Engine) Levels() int {
	return len(en.levels)
}

// Subdivide extends the level cache up to level n. Calling with a
// smaller n than already cached does nothing; higher levels are kept.
func (en *Engine) Subdivide(n int) error {
	if n < 0 {
		return fmt.Errorf("subdiv.Subdivide: level %d: %w", n, hemesh.ErrInvalidParameter)
	}
	if err := en.ensure(); err != nil {
		return err
	}
	for len(en.levels)-1 < n {
		next, err := Step(en.levels[len(en.levels)-1])
		if err != nil {
			return fmt.Errorf("subdiv.Subdivide: level %d: %w", len(en.levels), err)
		}
		en.levels = append(en.levels, next)
	}
	return nil
}

// Level returns the mesh at level k, subdividing as needed.
func (en *Engine) Level(k int) (*hemesh.Mesh, error) {
	if err := en.Subdivide(k); err != nil {
		return nil, err
	}
	return en.levels[k], nil
}

// InvalidateLevels drops cached levels from the given one up. The
// base (level 0) is never dropped.
func (en *Engine) InvalidateLevels(from int) {
	if from < 1 {
		from = 1
	}
	if from < len(en.levels) {
		en.levels = en.levels[:from]
	}
}

// IsQuadMesh reports whether every face of level k is a quad. All
// levels above the base are quad meshes by construction.
func (en *Engine) IsQuadMesh(k int) (bool, error) {
	if k >= 1 {
		return true, nil
	}
	m, err := en.Level(k)
	if err != nil {
		return false, err
	}
	for f := range m.Faces() {
		if m.FaceLen(f) != 4 {
			return false, nil
		}
	}
	return true, nil
}

// RenderMesh converts the given level (-1 for the finest cached one)
// to an indexed triangle mesh.
func (en *Engine) RenderMesh(level int) (*trimesh.Mesh, error) {
	if level == -1 {
		if err := en.ensure(); err != nil {
			return nil, err
		}
		return convert.ToRenderMesh(en.levels[len(en.levels)-1]), nil
	}
	m, err := en.Level(level)
	if err != nil {
		return nil, err
	}
	return convert.ToRenderMesh(m), nil
}

// Step applies one Catmull-Clark refinement to a mesh and returns the
// result as a new mesh. Every n-gon becomes n quads joining its face
// point, two edge points and an updated corner vertex. Interior edge
// points average the endpoints with the two adjacent face centroids;
// boundary edge points are midpoints. Vertex points use the standard
// smooth rule (F + 2R + (n-3)v)/n, or (v + m1 + m2)/3 on the
// boundary. Wire edges and isolated vertices are not carried over.
func Step(m *hemesh.Mesh) (*hemesh.Mesh, error) {
	r := hemesh.NewMesh()
	fp := make(map[hemesh.Face]hemesh.Vertex, m.NumFaces())
	for f := range m.Faces() {
		v := r.AddVertex(m.FaceCentroid(f))
		var uv math32.Vector2
		vs := m.FaceVertices(f)
		for _, fv := range vs {
			uv.SetAdd(m.UV(fv))
		}
		r.SetUV(v, uv.DivScalar(float32(len(vs))))
		fp[f] = v
	}

	ep := make(map[hemesh.Edge]hemesh.Vertex, m.NumEdges())
	for e := range m.Edges() {
		h := m.EdgeHalfEdge(e)
		f1, f2 := m.Face(h), m.Face(m.Twin(h))
		if f1.IsNil() && f2.IsNil() {
			continue // wire
		}
		u, w := m.EdgeVertices(e)
		var p math32.Vector3
		if f1.IsNil() || f2.IsNil() {
			p = m.Pos(u).Add(m.Pos(w)).MulScalar(0.5)
		} else {
			p = m.Pos(u).Add(m.Pos(w)).
				Add(m.FaceCentroid(f1)).Add(m.FaceCentroid(f2)).
				MulScalar(0.25)
		}
		v := r.AddVertex(p)
		r.SetUV(v, m.UV(u).Add(m.UV(w)).MulScalar(0.5))
		ep[e] = v
	}

	vp := make(map[hemesh.Vertex]hemesh.Vertex, m.NumVertices())
	for v := range m.Vertices() {
		fs := m.VertexFaces(v)
		if len(fs) == 0 {
			continue // isolated or wire-only
		}
		var p math32.Vector3
		if m.IsBoundaryVertex(v) {
			p = boundaryVertexPoint(m, v)
		} else {
			p = smoothVertexPoint(m, v, fs)
		}
		nv := r.AddVertex(p)
		r.SetUV(nv, m.UV(v))
		vp[v] = nv
	}

	for f := range m.Faces() {
		for _, h := range m.FaceHalfEdges(f) {
			// corner quad at Target(h): along the leaving edge, in to
			// the face point, back out the arriving edge
			_, err := r.AddFace(
				vp[m.Target(h)],
				ep[m.Edge(m.Next(h))],
				fp[f],
				ep[m.Edge(h)],
			)
			if err != nil {
				return nil, err
			}
		}
	}
	r.UpdateNormals()
	return r, nil
}

// smoothVertexPoint computes the interior Catmull-Clark vertex rule.
func smoothVertexPoint(m *hemesh.Mesh, v hemesh.Vertex, fs []hemesh.Face) math32.Vector3 {
	var favg math32.Vector3
	for _, f := range fs {
		favg.SetAdd(m.FaceCentroid(f))
	}
	favg.SetDivScalar(float32(len(fs)))

	p := m.Pos(v)
	var ravg math32.Vector3
	n := 0
	for _, h := range m.VertexHalfEdges(v) {
		ravg.SetAdd(p.Add(m.Pos(m.Target(h))).MulScalar(0.5))
		n++
	}
	ravg.SetDivScalar(float32(n))

	fn := float32(n)
	return favg.Add(ravg.MulScalar(2)).Add(p.MulScalar(fn - 3)).DivScalar(fn)
}

// boundaryVertexPoint averages a boundary vertex with the midpoints of
// its boundary edges. A vertex where more than two boundary edges meet
// is pinned in place.
func boundaryVertexPoint(m *hemesh.Mesh, v hemesh.Vertex) math32.Vector3 {
	p := m.Pos(v)
	var mids []math32.Vector3
	for _, h := range m.VertexHalfEdges(v) {
		if m.IsBoundaryEdge(m.Edge(h)) {
			mids = append(mids, p.Add(m.Pos(m.Target(h))).MulScalar(0.5))
		}
	}
	if len(mids) != 2 {
		return p
	}
	return p.Add(mids[0]).Add(mids[1]).DivScalar(3)
}

// LimitPosition estimates where a vertex of a subdivision level lands
// on the limit surface. Interior vertices use the standard limit
// stencil (n²v + 4Σm + Σc) / (n(n+5)) over incident edge midpoints m
// and face centroids c; boundary vertices use the cubic B-spline curve
// limit (m1 + 4v + m2)/6 over their boundary neighbors.
func LimitPosition(m *hemesh.Mesh, v hemesh.Vertex) math32.Vector3 {
	p := m.Pos(v)
	fs := m.VertexFaces(v)
	if len(fs) == 0 {
		return p
	}
	if m.IsBoundaryVertex(v) {
		var bn []math32.Vector3
		for _, h := range m.VertexHalfEdges(v) {
			if m.IsBoundaryEdge(m.Edge(h)) {
				bn = append(bn, m.Pos(m.Target(h)))
			}
		}
		if len(bn) != 2 {
			return p
		}
		return bn[0].Add(p.MulScalar(4)).Add(bn[1]).DivScalar(6)
	}
	var msum, csum math32.Vector3
	n := 0
	for _, h := range m.VertexHalfEdges(v) {
		msum.SetAdd(p.Add(m.Pos(m.Target(h))).MulScalar(0.5))
		n++
	}
	for _, f := range fs {
		csum.SetAdd(m.FaceCentroid(f))
	}
	fn := float32(n)
	return p.MulScalar(fn * fn).Add(msum.MulScalar(4)).Add(csum).
		DivScalar(fn * (fn + 5))
}
