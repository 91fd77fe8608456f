// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hemesh

import (
	"fmt"

	"cogentcore.org/core/math32"
)

// arena allocation helpers

func (m *Mesh) allocVertex(pos math32.Vector3) Vertex {
	m.init()
	m.verts = append(m.verts, vertexData{pos: pos, gen: m.epoch})
	m.numVerts++
	return Vertex{handle{int32(len(m.verts) - 1), m.epoch}}
}

// allocEdge creates an edge between u and v with two mutually-twin
// half-edges (u->v and v->u), both boundary, next / prev unset.
func (m *Mesh) allocEdge(u, v Vertex) (Edge, HalfEdge, HalfEdge) {
	m.init()
	hi := int32(len(m.halves))
	h1 := HalfEdge{handle{hi, m.epoch}}
	h2 := HalfEdge{handle{hi + 1, m.epoch}}
	e := Edge{handle{int32(len(m.edges)), m.epoch}}
	m.halves = append(m.halves,
		halfData{target: v, twin: h2, edge: e, gen: m.epoch},
		halfData{target: u, twin: h1, edge: e, gen: m.epoch})
	m.edges = append(m.edges, edgeData{half: h1, gen: m.epoch})
	m.numHalves += 2
	m.numEdges++
	return e, h1, h2
}

func (m *Mesh) allocFace(h HalfEdge) Face {
	m.init()
	m.faces = append(m.faces, faceData{half: h, gen: m.epoch})
	m.numFaces++
	return Face{handle{int32(len(m.faces) - 1), m.epoch}}
}

// setNext links a -> b in the cycle, maintaining prev reciprocity.
func (m *Mesh) setNext(a, b HalfEdge) {
	m.halves[a.index].next = b
	m.halves[b.index].prev = a
}

// kill helpers tombstone elements; Compact reclaims the slots.

func (m *Mesh) killVertex(v Vertex) {
	m.verts[v.index].dead = true
	m.verts[v.index].out = HalfEdge{}
	m.numVerts--
}

func (m *Mesh) killFace(f Face) {
	m.faces[f.index].dead = true
	m.faces[f.index].half = HalfEdge{}
	m.numFaces--
}

// killEdge tombstones the edge and both its half-edges. The caller is
// responsible for splicing the half-edges out of their cycles first.
func (m *Mesh) killEdge(e Edge) {
	h := m.edges[e.index].half
	t := m.halves[h.index].twin
	m.halves[h.index].dead = true
	m.halves[t.index].dead = true
	m.edges[e.index].dead = true
	m.numHalves -= 2
	m.numEdges--
}

// findFreeOut returns an outgoing boundary half-edge of v, or nil.
func (m *Mesh) findFreeOut(v Vertex) HalfEdge {
	for _, h := range m.VertexHalfEdges(v) {
		if m.IsBoundary(h) {
			return h
		}
	}
	return HalfEdge{}
}

// adjustVertexOut resets the stored outgoing half-edge of v so that it
// is a boundary one whenever the vertex is on a boundary. This is the
// invariant that lets face insertion splice into boundary loops
// without searching the whole mesh.
func (m *Mesh) adjustVertexOut(v Vertex) {
	if h := m.findFreeOut(v); !h.IsNil() {
		m.verts[v.index].out = h
	}
}

// AddVertex appends an isolated vertex at the given position.
func (m *Mesh) AddVertex(pos math32.Vector3) Vertex {
	v := m.allocVertex(pos)
	m.version++
	return v
}

// AddEdge creates an edge between two existing vertices, threading its
// half-edges into the boundary structure at both endpoints. If the
// edge already exists it is returned as is. Fails if u == v, a handle
// is stale, or an endpoint has no boundary gap to attach to.
func (m *Mesh) AddEdge(u, v Vertex) (Edge, error) {
	if !m.validVertex(u) || !m.validVertex(v) {
		return Edge{}, fmt.Errorf("hemesh.AddEdge: stale vertex handle: %w", ErrInvalidParameter)
	}
	if u == v {
		return Edge{}, fmt.Errorf("hemesh.AddEdge: endpoints are the same vertex %v: %w", u, ErrInvalidParameter)
	}
	if e := m.EdgeBetween(u, v); !e.IsNil() {
		return e, nil
	}
	// find splice points before mutating
	var uIn, uOut, vIn, vOut HalfEdge
	if !m.verts[u.index].out.IsNil() {
		uOut = m.findFreeOut(u)
		if uOut.IsNil() {
			return Edge{}, fmt.Errorf("hemesh.AddEdge: vertex %v has no boundary gap: %w", u, ErrNonManifold)
		}
		uIn = m.Prev(uOut)
	}
	if !m.verts[v.index].out.IsNil() {
		vOut = m.findFreeOut(v)
		if vOut.IsNil() {
			return Edge{}, fmt.Errorf("hemesh.AddEdge: vertex %v has no boundary gap: %w", v, ErrNonManifold)
		}
		vIn = m.Prev(vOut)
	}
	e, h1, h2 := m.allocEdge(u, v) // h1: u->v, h2: v->u
	if uOut.IsNil() {
		m.setNext(h2, h1) // isolated endpoint: the edge loops back on itself
		m.verts[u.index].out = h1
	} else {
		m.setNext(h2, uOut)
		m.setNext(uIn, h1)
	}
	if vOut.IsNil() {
		m.setNext(h1, h2)
		m.verts[v.index].out = h2
	} else {
		m.setNext(h1, vOut)
		m.setNext(vIn, h2)
	}
	m.version++
	return e, nil
}

// AddFace creates a face over the given vertices in winding order,
// finding or creating the boundary edges and threading the half-edge
// cycle. Fails with [ErrInvalidParameter] for fewer than 3 vertices,
// duplicate vertices, or stale handles, and with [ErrNonManifold] when
// a required half-edge already belongs to a face or an endpoint fan
// cannot accept another face.
//
// Failure is detected before the topology is modified, except that a
// rejected relink of a boundary patch can leave boundary loops
// re-threaded; that re-threading preserves all invariants and does not
// change the surface.
func (m *Mesh) AddFace(vs ...Vertex) (Face, error) {
	n := len(vs)
	if n < 3 {
		return Face{}, fmt.Errorf("hemesh.AddFace: need at least 3 vertices, got %d: %w", n, ErrInvalidParameter)
	}
	for i, v := range vs {
		if !m.validVertex(v) {
			return Face{}, fmt.Errorf("hemesh.AddFace: stale vertex handle %v: %w", v, ErrInvalidParameter)
		}
		for j := 0; j < i; j++ {
			if vs[j] == v {
				return Face{}, fmt.Errorf("hemesh.AddFace: duplicate vertex %v: %w", v, ErrInvalidParameter)
			}
		}
	}

	halfs := make([]HalfEdge, n)
	isNew := make([]bool, n)
	for i := range vs {
		h := m.FindHalfEdge(vs[i], vs[(i+1)%n])
		if !h.IsNil() && !m.IsBoundary(h) {
			return Face{}, fmt.Errorf("hemesh.AddFace: edge %v-%v already has a face on this side: %w",
				vs[i], vs[(i+1)%n], ErrNonManifold)
		}
		halfs[i] = h
		isNew[i] = h.IsNil()
	}

	// pre-validate the corners that can reject
	for i := range vs {
		ii := (i + 1) % n
		if isNew[i] && isNew[ii] {
			v := vs[ii]
			if !m.verts[v.index].out.IsNil() && m.findFreeOut(v).IsNil() {
				return Face{}, fmt.Errorf("hemesh.AddFace: vertex %v fan has no boundary gap: %w", v, ErrNonManifold)
			}
		}
	}

	// re-thread boundary patches so that consecutive existing
	// half-edges become adjacent in their boundary loop
	for i := range vs {
		ii := (i + 1) % n
		if isNew[i] || isNew[ii] {
			continue
		}
		innerPrev, innerNext := halfs[i], halfs[ii]
		if m.Next(innerPrev) == innerNext {
			continue
		}
		boundaryPrev := m.Twin(innerNext)
		ok := false
		for range len(m.halves) {
			boundaryPrev = m.Twin(m.Next(boundaryPrev))
			if m.IsBoundary(boundaryPrev) {
				ok = true
				break
			}
		}
		if !ok || boundaryPrev == innerPrev {
			return Face{}, fmt.Errorf("hemesh.AddFace: cannot re-thread boundary at %v-%v: %w",
				vs[i], vs[ii], ErrNonManifold)
		}
		boundaryNext := m.Next(boundaryPrev)
		patchStart := m.Next(innerPrev)
		patchEnd := m.Prev(innerNext)
		m.setNext(boundaryPrev, patchStart)
		m.setNext(patchEnd, boundaryNext)
		m.setNext(innerPrev, innerNext)
	}

	for i := range vs {
		if isNew[i] {
			_, h1, _ := m.allocEdge(vs[i], vs[(i+1)%n])
			halfs[i] = h1
		}
	}

	// corner linking: writes are cached so that every corner computes
	// against the pre-insertion cycles
	type link struct{ from, to HalfEdge }
	type vout struct {
		v Vertex
		h HalfEdge
	}
	var nextCache []link
	var outCache []vout
	for i := range vs {
		ii := (i + 1) % n
		v := vs[ii]
		innerPrev, innerNext := halfs[i], halfs[ii]
		id := 0
		if isNew[i] {
			id |= 1
		}
		if isNew[ii] {
			id |= 2
		}
		if id == 0 {
			continue // both old: made adjacent above
		}
		outerPrev := m.Twin(innerNext)
		outerNext := m.Twin(innerPrev)
		switch id {
		case 1: // prev is new, next is old
			boundaryPrev := m.Prev(innerNext)
			nextCache = append(nextCache, link{boundaryPrev, outerNext})
			outCache = append(outCache, vout{v, outerNext})
		case 2: // prev is old, next is new
			boundaryNext := m.Next(innerPrev)
			nextCache = append(nextCache, link{outerPrev, boundaryNext})
			outCache = append(outCache, vout{v, boundaryNext})
		case 3: // both new
			if m.verts[v.index].out.IsNil() {
				nextCache = append(nextCache, link{outerPrev, outerNext})
				outCache = append(outCache, vout{v, outerNext})
			} else {
				boundaryNext := m.findFreeOut(v) // pre-validated
				boundaryPrev := m.Prev(boundaryNext)
				nextCache = append(nextCache, link{boundaryPrev, outerNext})
				nextCache = append(nextCache, link{outerPrev, boundaryNext})
			}
		}
		nextCache = append(nextCache, link{innerPrev, innerNext})
	}

	f := m.allocFace(halfs[0])
	for _, h := range halfs {
		m.halves[h.index].face = f
	}
	for _, l := range nextCache {
		m.setNext(l.from, l.to)
	}
	for _, vo := range outCache {
		m.verts[vo.v.index].out = vo.h
	}
	for _, v := range vs {
		if m.verts[v.index].out.IsNil() {
			continue
		}
		m.adjustVertexOut(v)
	}
	m.version++
	return f, nil
}

// RemoveFace detaches the face, leaving its half-edges as boundary
// half-edges. Vertices and edges are not deleted.
func (m *Mesh) RemoveFace(f Face) error {
	if !m.validFace(f) {
		return fmt.Errorf("hemesh.RemoveFace: stale face handle %v: %w", f, ErrInvalidParameter)
	}
	hs := m.FaceHalfEdges(f)
	for _, h := range hs {
		m.halves[h.index].face = Face{}
	}
	m.killFace(f)
	for _, h := range hs {
		m.adjustVertexOut(m.Origin(h))
	}
	m.version++
	return nil
}
