// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hemesh

import (
	"fmt"

	"cogentcore.org/core/math32"
)

// SplitEdge inserts a new vertex on the edge at parameter t in [0, 1]
// measured from the origin of the edge's representative half-edge,
// splitting both half-edges and preserving face membership on both
// sides. Returns the new vertex, the origin-side edge (the original
// handle) and the new target-side edge.
func (m *Mesh) SplitEdge(e Edge, t float32) (Vertex, Edge, Edge, error) {
	if !m.validEdge(e) {
		return Vertex{}, Edge{}, Edge{}, fmt.Errorf("hemesh.SplitEdge: stale edge handle %v: %w", e, ErrInvalidParameter)
	}
	if t < 0 || t > 1 {
		return Vertex{}, Edge{}, Edge{}, fmt.Errorf("hemesh.SplitEdge: t=%g outside [0,1]: %w", t, ErrInvalidParameter)
	}
	h := m.edges[e.index].half // u -> v
	hT := m.Twin(h)            // v -> u
	u := m.Origin(h)
	v := m.Target(h)

	w := m.allocVertex(m.Pos(u).Lerp(m.Pos(v), t))
	m.verts[w.index].uv = m.UV(u).Lerp(m.UV(v), t)
	nrm := m.Norm(u).Lerp(m.Norm(v), t)
	if nrm.LengthSquared() > 0 {
		nrm = nrm.Normal()
	}
	m.verts[w.index].norm = nrm

	oldNextH := m.Next(h)
	oldPrevHT := m.Prev(hT)

	_, h2, h2T := m.allocEdge(w, v) // h2: w->v, h2T: v->w
	m.halves[h.index].target = w
	m.halves[h2.index].face = m.halves[h.index].face
	m.halves[h2T.index].face = m.halves[hT.index].face

	if oldNextH == hT {
		// the edge dead-ends at v (wire or slit): close the turn at v
		m.setNext(h, h2)
		m.setNext(h2, h2T)
		m.setNext(h2T, hT)
	} else {
		m.setNext(h, h2)
		m.setNext(h2, oldNextH)
		m.setNext(oldPrevHT, h2T)
		m.setNext(h2T, hT)
	}

	if m.verts[v.index].out == hT {
		m.verts[v.index].out = h2T
	}
	m.verts[w.index].out = h2
	m.adjustVertexOut(w)
	m.adjustVertexOut(v)
	m.version++
	return w, e, m.Edge(h2), nil
}

// CollapseEdge merges the two endpoints of the edge into one at their
// midpoint. See [Mesh.CollapseEdgeTo].
func (m *Mesh) CollapseEdge(e Edge) (Vertex, error) {
	if !m.validEdge(e) {
		return Vertex{}, fmt.Errorf("hemesh.CollapseEdge: stale edge handle %v: %w", e, ErrInvalidParameter)
	}
	u, v := m.EdgeVertices(e)
	return m.CollapseEdgeTo(e, m.Pos(u).Add(m.Pos(v)).MulScalar(0.5))
}

// CollapseEdgeTo merges the two endpoints of the edge into the
// surviving origin vertex placed at pos. Adjacent faces that
// degenerate to two sides are removed and their duplicated edges
// merged, so triangles next to the edge disappear. Fails with
// [ErrNonManifold], leaving the mesh untouched, when the endpoints
// share a neighbor that is not the apex of an adjacent triangle
// (collapsing would fold two edges onto each other), or when the
// collapse would break a vertex fan of a previously manifold mesh.
func (m *Mesh) CollapseEdgeTo(e Edge, pos math32.Vector3) (Vertex, error) {
	if !m.validEdge(e) {
		return Vertex{}, fmt.Errorf("hemesh.CollapseEdgeTo: stale edge handle %v: %w", e, ErrInvalidParameter)
	}
	h := m.edges[e.index].half // u -> v
	hT := m.Twin(h)
	u := m.Origin(h)
	v := m.Target(h)
	fL := m.Face(h)
	fR := m.Face(hT)

	// link condition: the only neighbors u and v may share are the
	// apexes of adjacent triangles
	allowed := map[Vertex]bool{}
	if !fL.IsNil() && m.FaceLen(fL) == 3 {
		allowed[m.Target(m.Next(h))] = true
	}
	if !fR.IsNil() && m.FaceLen(fR) == 3 {
		allowed[m.Target(m.Next(hT))] = true
	}
	uN := map[Vertex]bool{}
	for _, n := range m.VertexNeighbors(u) {
		uN[n] = true
	}
	for _, n := range m.VertexNeighbors(v) {
		if n != u && uN[n] && !allowed[n] {
			return Vertex{}, fmt.Errorf("hemesh.CollapseEdgeTo: endpoints %v and %v share neighbor %v: %w",
				u, v, n, ErrNonManifold)
		}
	}

	wasManifold := m.IsManifold()
	err := m.transact("CollapseEdge", func(s *Mesh) error {
		s.collapseEdge(e, pos)
		if wasManifold && !s.IsManifold() {
			return fmt.Errorf("hemesh.CollapseEdgeTo: collapsing %v would break a vertex fan: %w",
				e, ErrNonManifold)
		}
		return nil
	})
	if err != nil {
		return Vertex{}, err
	}
	return u, nil
}

// collapseEdge does the structural work of an edge collapse; the
// preconditions have been checked by the caller.
func (m *Mesh) collapseEdge(e Edge, pos math32.Vector3) {
	h := m.edges[e.index].half // u -> v
	hT := m.Twin(h)
	u := m.Origin(h)
	v := m.Target(h)
	fL := m.Face(h)
	fR := m.Face(hT)

	// retarget every half-edge pointing at v
	for _, out := range m.VertexHalfEdges(v) {
		in := m.Twin(out)
		m.halves[in.index].target = u
	}

	// splice both half-edges out of their cycles
	pH, nH := m.Prev(h), m.Next(h)
	pT, nT := m.Prev(hT), m.Next(hT)
	if nH != hT { // not a wire edge
		m.setNext(pH, nH)
		m.setNext(pT, nT)
	}
	if !fL.IsNil() && m.faces[fL.index].half == h {
		m.faces[fL.index].half = nH
	}
	if !fR.IsNil() && m.faces[fR.index].half == hT {
		m.faces[fR.index].half = nT
	}

	m.killEdge(e)
	m.killVertex(v)
	m.verts[u.index].pos = pos
	m.fixVertexOut(u)

	for _, f := range []Face{fL, fR} {
		if !m.validFace(f) {
			continue
		}
		if m.FaceLen(f) == 2 {
			m.dissolveTwoGon(f)
		}
	}
	m.adjustVertexOut(u)
	m.version++
}

// dissolveTwoGon removes a two-sided face by merging its two edges
// into one, keeping the outer half-edges.
func (m *Mesh) dissolveTwoGon(f Face) {
	h1 := m.faces[f.index].half
	h2 := m.Next(h1)
	if h2 == m.Twin(h1) {
		// both sides of the same edge: just open the slit
		m.halves[h1.index].face = Face{}
		m.halves[h2.index].face = Face{}
		m.killFace(f)
		return
	}
	o1 := m.Twin(h1)
	o2 := m.Twin(h2)
	e1 := m.Edge(h1)
	e2 := m.Edge(h2)
	a := m.Target(h1) // shared endpoints of the two-gon
	b := m.Target(h2)

	m.killFace(f)
	m.halves[h1.index].dead = true
	m.halves[h2.index].dead = true
	m.numHalves -= 2
	m.edges[e2.index].dead = true
	m.numEdges--

	m.halves[o1.index].twin = o2
	m.halves[o2.index].twin = o1
	m.halves[o2.index].edge = e1
	m.edges[e1.index].half = o1

	m.fixVertexOut(a)
	m.fixVertexOut(b)
	m.adjustVertexOut(a)
	m.adjustVertexOut(b)
}

// fixVertexOut repairs the outgoing half-edge of v after deletions,
// scanning the arena if the stored one died. Clears it for isolated
// vertices.
func (m *Mesh) fixVertexOut(v Vertex) {
	out := m.verts[v.index].out
	if m.validHalf(out) && m.Origin(out) == v {
		return
	}
	for i := range m.halves {
		if m.halves[i].dead {
			continue
		}
		h := HalfEdge{handle{int32(i), m.halves[i].gen}}
		if m.Origin(h) == v {
			m.verts[v.index].out = h
			return
		}
	}
	m.verts[v.index].out = HalfEdge{}
}

// FlipEdge rotates an interior edge between two triangles, replacing
// the shared diagonal with the opposite one. Fails for boundary edges,
// non-triangular faces, and when the opposite diagonal already exists.
func (m *Mesh) FlipEdge(e Edge) error {
	if !m.validEdge(e) {
		return fmt.Errorf("hemesh.FlipEdge: stale edge handle %v: %w", e, ErrInvalidParameter)
	}
	h1 := m.edges[e.index].half // u -> v
	t1 := m.Twin(h1)
	fA := m.Face(h1)
	fB := m.Face(t1)
	if fA.IsNil() || fB.IsNil() {
		return fmt.Errorf("hemesh.FlipEdge: edge %v is on a boundary: %w", e, ErrInvalidParameter)
	}
	if m.FaceLen(fA) != 3 || m.FaceLen(fB) != 3 {
		return fmt.Errorf("hemesh.FlipEdge: edge %v has a non-triangular face: %w", e, ErrInvalidParameter)
	}
	h2 := m.Next(h1) // v -> a
	h3 := m.Next(h2) // a -> u
	t2 := m.Next(t1) // u -> b
	t3 := m.Next(t2) // b -> v
	u := m.Origin(h1)
	v := m.Target(h1)
	a := m.Target(h2)
	b := m.Target(t2)
	if !m.FindHalfEdge(a, b).IsNil() {
		return fmt.Errorf("hemesh.FlipEdge: flipped edge %v-%v already exists: %w", a, b, ErrNonManifold)
	}

	m.halves[h1.index].target = b // h1: a -> b
	m.halves[t1.index].target = a // t1: b -> a

	// face A becomes (b, v, a); face B becomes (a, u, b)
	m.setNext(t3, h2)
	m.setNext(h2, h1)
	m.setNext(h1, t3)
	m.setNext(h3, t2)
	m.setNext(t2, t1)
	m.setNext(t1, h3)
	m.halves[h3.index].face = fB
	m.halves[t3.index].face = fA
	m.faces[fA.index].half = h1
	m.faces[fB.index].half = t1

	if m.verts[u.index].out == h1 {
		m.verts[u.index].out = t2
	}
	if m.verts[v.index].out == t1 {
		m.verts[v.index].out = h2
	}
	m.version++
	return nil
}

// SplitFace connects two non-adjacent vertices of a face with a new
// edge, splitting the face in two. Returns the new edge and the new
// face (the side containing the b-to-a half-edge).
func (m *Mesh) SplitFace(f Face, a, b Vertex) (Edge, Face, error) {
	if !m.validFace(f) {
		return Edge{}, Face{}, fmt.Errorf("hemesh.SplitFace: stale face handle %v: %w", f, ErrInvalidParameter)
	}
	if a == b {
		return Edge{}, Face{}, fmt.Errorf("hemesh.SplitFace: vertices are the same: %w", ErrInvalidParameter)
	}
	var ha, hb HalfEdge // half-edges of f arriving at a and b
	for _, h := range m.FaceHalfEdges(f) {
		if m.Target(h) == a {
			ha = h
		}
		if m.Target(h) == b {
			hb = h
		}
	}
	if ha.IsNil() || hb.IsNil() {
		return Edge{}, Face{}, fmt.Errorf("hemesh.SplitFace: vertex not on face %v: %w", f, ErrInvalidSelection)
	}
	if m.Next(ha) == hb || m.Next(hb) == ha {
		return Edge{}, Face{}, fmt.Errorf("hemesh.SplitFace: vertices %v and %v are adjacent on face %v: %w",
			a, b, f, ErrInvalidParameter)
	}
	outA := m.Next(ha)
	outB := m.Next(hb)
	eN, n1, n2 := m.allocEdge(a, b) // n1: a->b, n2: b->a
	m.setNext(ha, n1)
	m.setNext(n1, outB)
	m.setNext(hb, n2)
	m.setNext(n2, outA)

	m.halves[n1.index].face = f
	m.faces[f.index].half = n1
	f2 := m.allocFace(n2)
	h := n2
	for range len(m.halves) {
		m.halves[h.index].face = f2
		h = m.Next(h)
		if h == n2 {
			break
		}
	}
	m.version++
	return eN, f2, nil
}
