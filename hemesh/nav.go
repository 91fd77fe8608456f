// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hemesh

import "iter"

// Navigation accessors. All of them return the nil handle when given a
// stale or nil handle, so chained navigation degrades to nil rather
// than panicking.

// Next returns the next half-edge in the face or boundary cycle.
func (m *Mesh) Next(h HalfEdge) HalfEdge {
	if !m.validHalf(h) {
		return HalfEdge{}
	}
	return m.halves[h.index].next
}

// Prev returns the previous half-edge in the face or boundary cycle.
func (m *Mesh) Prev(h HalfEdge) HalfEdge {
	if !m.validHalf(h) {
		return HalfEdge{}
	}
	return m.halves[h.index].prev
}

// Twin returns the opposite half-edge of the same edge.
func (m *Mesh) Twin(h HalfEdge) HalfEdge {
	if !m.validHalf(h) {
		return HalfEdge{}
	}
	return m.halves[h.index].twin
}

// Target returns the vertex this half-edge points to.
func (m *Mesh) Target(h HalfEdge) Vertex {
	if !m.validHalf(h) {
		return Vertex{}
	}
	return m.halves[h.index].target
}

// Origin returns the vertex this half-edge leaves from.
func (m *Mesh) Origin(h HalfEdge) Vertex {
	return m.Target(m.Twin(h))
}

// Face returns the face containing this half-edge, nil on the boundary.
func (m *Mesh) Face(h HalfEdge) Face {
	if !m.validHalf(h) {
		return Face{}
	}
	return m.halves[h.index].face
}

// Edge returns the edge owning this half-edge.
func (m *Mesh) Edge(h HalfEdge) Edge {
	if !m.validHalf(h) {
		return Edge{}
	}
	return m.halves[h.index].edge
}

// VertexHalfEdge returns one outgoing half-edge of the vertex, or nil
// for an isolated vertex. If the vertex is on a boundary, the returned
// half-edge is a boundary one.
func (m *Mesh) VertexHalfEdge(v Vertex) HalfEdge {
	if !m.validVertex(v) {
		return HalfEdge{}
	}
	return m.verts[v.index].out
}

// EdgeHalfEdge returns the representative half-edge of the edge.
func (m *Mesh) EdgeHalfEdge(e Edge) HalfEdge {
	if !m.validEdge(e) {
		return HalfEdge{}
	}
	return m.edges[e.index].half
}

// FaceHalfEdge returns the representative half-edge of the face.
func (m *Mesh) FaceHalfEdge(f Face) HalfEdge {
	if !m.validFace(f) {
		return HalfEdge{}
	}
	return m.faces[f.index].half
}

// EdgeVertices returns the two endpoints of the edge.
func (m *Mesh) EdgeVertices(e Edge) (Vertex, Vertex) {
	h := m.EdgeHalfEdge(e)
	return m.Origin(h), m.Target(h)
}

// IsBoundary returns true if the half-edge has no containing face.
func (m *Mesh) IsBoundary(h HalfEdge) bool {
	return m.validHalf(h) && m.halves[h.index].face.IsNil()
}

// IsBoundaryEdge returns true if either side of the edge has no face.
func (m *Mesh) IsBoundaryEdge(e Edge) bool {
	h := m.EdgeHalfEdge(e)
	return m.IsBoundary(h) || m.IsBoundary(m.Twin(h))
}

// IsBoundaryVertex returns true if any half-edge around the vertex is
// on a boundary.
func (m *Mesh) IsBoundaryVertex(v Vertex) bool {
	for _, h := range m.VertexHalfEdges(v) {
		if m.IsBoundary(h) || m.IsBoundary(m.Twin(h)) {
			return true
		}
	}
	return false
}

// Element iteration, in arena order, skipping tombstones.

// Vertices returns an iterator over all live vertices.
func (m *Mesh) Vertices() iter.Seq[Vertex] {
	return func(yield func(Vertex) bool) {
		for i := range m.verts {
			if m.verts[i].dead {
				continue
			}
			if !yield(Vertex{handle{int32(i), m.verts[i].gen}}) {
				return
			}
		}
	}
}

// HalfEdges returns an iterator over all live half-edges.
func (m *Mesh) HalfEdges() iter.Seq[HalfEdge] {
	return func(yield func(HalfEdge) bool) {
		for i := range m.halves {
			if m.halves[i].dead {
				continue
			}
			if !yield(HalfEdge{handle{int32(i), m.halves[i].gen}}) {
				return
			}
		}
	}
}

// Edges returns an iterator over all live edges.
func (m *Mesh) Edges() iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		for i := range m.edges {
			if m.edges[i].dead {
				continue
			}
			if !yield(Edge{handle{int32(i), m.edges[i].gen}}) {
				return
			}
		}
	}
}

// Faces returns an iterator over all live faces.
func (m *Mesh) Faces() iter.Seq[Face] {
	return func(yield func(Face) bool) {
		for i := range m.faces {
			if m.faces[i].dead {
				continue
			}
			if !yield(Face{handle{int32(i), m.faces[i].gen}}) {
				return
			}
		}
	}
}

// Neighborhood queries.

// FaceHalfEdges returns the half-edges of the face in cycle order.
func (m *Mesh) FaceHalfEdges(f Face) []HalfEdge {
	h0 := m.FaceHalfEdge(f)
	if h0.IsNil() {
		return nil
	}
	var out []HalfEdge
	h := h0
	for range len(m.halves) {
		out = append(out, h)
		h = m.Next(h)
		if h == h0 || h.IsNil() {
			break
		}
	}
	return out
}

// FaceVertices returns the vertices of the face in winding order,
// starting at the origin of its representative half-edge.
func (m *Mesh) FaceVertices(f Face) []Vertex {
	hs := m.FaceHalfEdges(f)
	out := make([]Vertex, len(hs))
	for i, h := range hs {
		out[i] = m.Origin(h)
	}
	return out
}

// FaceEdges returns the edges of the face in cycle order.
func (m *Mesh) FaceEdges(f Face) []Edge {
	hs := m.FaceHalfEdges(f)
	out := make([]Edge, len(hs))
	for i, h := range hs {
		out[i] = m.Edge(h)
	}
	return out
}

// FaceLen returns the number of sides of the face.
func (m *Mesh) FaceLen(f Face) int {
	return len(m.FaceHalfEdges(f))
}

// VertexHalfEdges returns the outgoing half-edges of the vertex in
// rotation order (twin-next around the vertex). If the fan is broken
// by a non-manifold configuration, only the component reachable from
// the stored outgoing half-edge is returned.
func (m *Mesh) VertexHalfEdges(v Vertex) []HalfEdge {
	h0 := m.VertexHalfEdge(v)
	if h0.IsNil() {
		return nil
	}
	var out []HalfEdge
	h := h0
	for range len(m.halves) {
		out = append(out, h)
		h = m.Next(m.Twin(h))
		if h == h0 || h.IsNil() {
			break
		}
	}
	return out
}

// VertexFaces returns the faces incident to the vertex in rotation
// order, excluding boundary gaps.
func (m *Mesh) VertexFaces(v Vertex) []Face {
	var out []Face
	for _, h := range m.VertexHalfEdges(v) {
		if f := m.Face(h); !f.IsNil() {
			out = append(out, f)
		}
	}
	return out
}

// VertexNeighbors returns the vertices connected to v by an edge,
// in rotation order.
func (m *Mesh) VertexNeighbors(v Vertex) []Vertex {
	hs := m.VertexHalfEdges(v)
	out := make([]Vertex, len(hs))
	for i, h := range hs {
		out[i] = m.Target(h)
	}
	return out
}

// Valence returns the number of edges incident to the vertex.
func (m *Mesh) Valence(v Vertex) int {
	return len(m.VertexHalfEdges(v))
}

// FindHalfEdge returns the half-edge from u to v, or nil if the two
// vertices are not connected.
func (m *Mesh) FindHalfEdge(u, v Vertex) HalfEdge {
	for _, h := range m.VertexHalfEdges(u) {
		if m.Target(h) == v {
			return h
		}
	}
	return HalfEdge{}
}

// EdgeBetween returns the edge connecting u and v, or nil.
func (m *Mesh) EdgeBetween(u, v Vertex) Edge {
	return m.Edge(m.FindHalfEdge(u, v))
}

// BoundaryLoops returns every boundary cycle of the mesh, each as the
// list of boundary half-edges in next order.
func (m *Mesh) BoundaryLoops() [][]HalfEdge {
	seen := make([]bool, len(m.halves))
	var loops [][]HalfEdge
	for i := range m.halves {
		if m.halves[i].dead || seen[i] || !m.halves[i].face.IsNil() {
			continue
		}
		h0 := HalfEdge{handle{int32(i), m.halves[i].gen}}
		var loop []HalfEdge
		h := h0
		for range len(m.halves) {
			seen[h.index] = true
			loop = append(loop, h)
			h = m.Next(h)
			if h == h0 || h.IsNil() {
				break
			}
		}
		loops = append(loops, loop)
	}
	return loops
}
