// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hemesh

import "fmt"

// Validate checks the structural invariants of the half-edge graph:
// next / prev reciprocity, twin reciprocity and opposite direction,
// face cycles of length >= 3 with consistent membership, vertex
// outgoing half-edges that actually leave their vertex, and no
// self-referential links. Returns nil if all hold, otherwise an error
// wrapping [ErrTopologyViolation] naming the first offending element.
func (m *Mesh) Validate() error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("hemesh.Validate: "+format+": %w", append(args, ErrTopologyViolation)...)
	}
	for i := range m.halves {
		if m.halves[i].dead {
			continue
		}
		h := HalfEdge{handle{int32(i), m.halves[i].gen}}
		hd := &m.halves[i]
		if hd.next == h || hd.twin == h {
			return bad("half-edge %v links to itself", h)
		}
		if !m.validHalf(hd.next) || !m.validHalf(hd.prev) || !m.validHalf(hd.twin) {
			return bad("half-edge %v has a dangling link", h)
		}
		if m.Next(hd.prev) != h || m.Prev(hd.next) != h {
			return bad("half-edge %v breaks next/prev reciprocity", h)
		}
		if m.Twin(hd.twin) != h {
			return bad("half-edge %v breaks twin reciprocity", h)
		}
		if !m.validVertex(hd.target) {
			return bad("half-edge %v targets a dead vertex", h)
		}
		if !m.validEdge(hd.edge) || m.Edge(hd.twin) != hd.edge {
			return bad("half-edge %v disagrees with its twin about the owning edge", h)
		}
		if m.Face(hd.next) != hd.face {
			return bad("half-edge %v and its next are in different faces", h)
		}
	}
	for i := range m.faces {
		if m.faces[i].dead {
			continue
		}
		f := Face{handle{int32(i), m.faces[i].gen}}
		h0 := m.faces[i].half
		if !m.validHalf(h0) {
			return bad("face %v has a dangling half-edge", f)
		}
		steps := 0
		h := h0
		for range len(m.halves) {
			if m.Face(h) != f {
				return bad("face %v cycle contains half-edge %v of another face", f, h)
			}
			steps++
			h = m.Next(h)
			if h == h0 {
				break
			}
			if h.IsNil() {
				return bad("face %v cycle is broken at step %d", f, steps)
			}
		}
		if h != h0 {
			return bad("face %v cycle does not close", f)
		}
		if steps < 3 {
			return bad("face %v has only %d sides", f, steps)
		}
	}
	for i := range m.edges {
		if m.edges[i].dead {
			continue
		}
		e := Edge{handle{int32(i), m.edges[i].gen}}
		if !m.validHalf(m.edges[i].half) || m.Edge(m.edges[i].half) != e {
			return bad("edge %v has a dangling half-edge", e)
		}
	}
	for i := range m.verts {
		if m.verts[i].dead {
			continue
		}
		v := Vertex{handle{int32(i), m.verts[i].gen}}
		out := m.verts[i].out
		if out.IsNil() {
			continue // isolated vertex
		}
		if !m.validHalf(out) {
			return bad("vertex %v has a dangling outgoing half-edge", v)
		}
		if m.Origin(out) != v {
			return bad("vertex %v outgoing half-edge %v does not leave it", v, out)
		}
	}
	return nil
}

// IsManifold reports whether the mesh is manifold: every edge has at
// most two incident faces (guaranteed by construction here) and the
// half-edges around every vertex form a single cycle under twin-next
// rotation, possibly broken once by a boundary. Returns false on the
// first violation.
func (m *Mesh) IsManifold() bool {
	// count outgoing half-edges per vertex in one sweep, then compare
	// with what a single rotation around the vertex reaches
	outCount := make([]int, len(m.verts))
	boundaryOut := make([]int, len(m.verts))
	for i := range m.halves {
		if m.halves[i].dead {
			continue
		}
		h := HalfEdge{handle{int32(i), m.halves[i].gen}}
		o := m.Origin(h)
		if o.IsNil() {
			return false
		}
		outCount[o.index]++
		if m.IsBoundary(h) {
			boundaryOut[o.index]++
		}
	}
	for i := range m.verts {
		if m.verts[i].dead {
			continue
		}
		v := Vertex{handle{int32(i), m.verts[i].gen}}
		if outCount[i] == 0 {
			continue // isolated vertices are tolerated
		}
		if len(m.VertexHalfEdges(v)) != outCount[i] {
			return false // disconnected fans meeting at one vertex
		}
		if boundaryOut[i] > 1 {
			return false // fan broken more than once by a boundary
		}
	}
	return true
}
