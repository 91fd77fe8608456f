// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hemesh

import (
	"fmt"
	"log/slog"

	"cogentcore.org/core/math32"
)

// BevelEdges replaces each selected edge by a quad strip of width
// derived from amount: in each adjacent face the edge's endpoints
// slide along the face's neighboring boundary edges, the face is
// rewritten over the slid corners, and a quad fills the gap where the
// edge was. Endpoints shared by several selected edges are resolved
// into a single corner fan and the resulting hole is capped, so
// adjacent bevels meet without cracking. The slide distance is clamped
// below half of each slid-along edge, so large amounts degrade
// gracefully instead of inverting faces.
//
// Selected edges must be interior (two incident faces). The operation
// is transactional: on any failure the mesh is unchanged.
func (m *Mesh) BevelEdges(sel Selection, amount float32) error {
	edges, err := m.edgeSelection("BevelEdges", sel)
	if err != nil {
		return err
	}
	if amount <= 0 {
		return fmt.Errorf("hemesh.BevelEdges: amount %g must be positive: %w", amount, ErrInvalidParameter)
	}
	selE := map[Edge]bool{}
	order := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if selE[e] {
			continue
		}
		if m.IsBoundaryEdge(e) {
			return fmt.Errorf("hemesh.BevelEdges: edge %v is on a boundary: %w", e, ErrInvalidSelection)
		}
		selE[e] = true
		order = append(order, e)
	}

	r := NewMesh()
	orig := map[Vertex]Vertex{}
	origV := func(v Vertex) Vertex {
		if nv, ok := orig[v]; ok {
			return nv
		}
		nv := r.AddVertex(m.Pos(v))
		r.verts[nv.index].uv = m.UV(v)
		orig[v] = nv
		return nv
	}
	type dirKey struct{ from, to Vertex }
	slide := map[dirKey]Vertex{}
	slideV := func(from, to Vertex) Vertex {
		k := dirKey{from, to}
		if nv, ok := slide[k]; ok {
			return nv
		}
		p0, p1 := m.Pos(from), m.Pos(to)
		d := p1.Sub(p0)
		l := d.Length()
		a := amount
		if l > 0 && a > 0.45*l {
			a = 0.45 * l
		}
		t := float32(0)
		if l > 0 {
			t = a / l
		}
		nv := r.AddVertex(p0.Lerp(p1, t))
		r.verts[nv.index].uv = m.UV(from).Lerp(m.UV(to), t)
		slide[k] = nv
		return nv
	}
	type cornerKey struct {
		v Vertex
		f Face
	}
	bis := map[cornerKey]Vertex{}
	bisV := func(v Vertex, f Face, din, dout math32.Vector3) Vertex {
		k := cornerKey{v, f}
		if nv, ok := bis[k]; ok {
			return nv
		}
		d := din.Add(dout)
		if d.LengthSquared() > 0 {
			d = d.Normal()
		}
		nv := r.AddVertex(m.Pos(v).Add(d.MulScalar(amount)))
		r.verts[nv.index].uv = m.UV(v)
		bis[k] = nv
		return nv
	}

	// pass 1: one replacement corner per (face, vertex)
	rep := map[cornerKey]Vertex{}
	for f := range m.Faces() {
		hs := m.FaceHalfEdges(f)
		n := len(hs)
		for i, hb := range hs { // hb leaves the corner vertex
			ha := hs[(i-1+n)%n] // ha arrives at it
			v := m.Origin(hb)
			selIn := selE[m.Edge(ha)]
			selOut := selE[m.Edge(hb)]
			var cp Vertex
			switch {
			case !selIn && !selOut:
				cp = origV(v)
			case selIn && !selOut:
				cp = slideV(v, m.Target(hb))
			case !selIn && selOut:
				cp = slideV(v, m.Origin(ha))
			default:
				p := m.Pos(v)
				din := m.Pos(m.Origin(ha)).Sub(p)
				dout := m.Pos(m.Target(hb)).Sub(p)
				if din.LengthSquared() > 0 {
					din = din.Normal()
				}
				if dout.LengthSquared() > 0 {
					dout = dout.Normal()
				}
				cp = bisV(v, f, din, dout)
			}
			rep[cornerKey{v, f}] = cp
		}
	}

	// pass 2: rewrite faces, inserting the slide points that other
	// bevels dropped onto this face's unselected edges
	for f := range m.Faces() {
		hs := m.FaceHalfEdges(f)
		var cyc []Vertex
		for _, h := range hs {
			a, b := m.Origin(h), m.Target(h)
			cp := rep[cornerKey{a, f}]
			cyc = append(cyc, cp)
			if selE[m.Edge(h)] {
				continue
			}
			nextRep := rep[cornerKey{b, f}]
			if sv, ok := slide[dirKey{a, b}]; ok && sv != cp {
				cyc = append(cyc, sv)
			}
			if sv, ok := slide[dirKey{b, a}]; ok && sv != nextRep {
				cyc = append(cyc, sv)
			}
		}
		cyc = dedupCycle(cyc)
		if len(cyc) < 3 {
			continue
		}
		if _, err := r.AddFace(cyc...); err != nil {
			return fmt.Errorf("hemesh.BevelEdges: rewriting face %v: %w", f, err)
		}
	}

	// one quad per beveled edge, between the two rewritten faces
	for _, e := range order {
		h := m.EdgeHalfEdge(e)
		fL := m.Face(h)
		fR := m.Face(m.Twin(h))
		u, v := m.Origin(h), m.Target(h)
		q := dedupCycle([]Vertex{
			rep[cornerKey{v, fL}], rep[cornerKey{u, fL}],
			rep[cornerKey{u, fR}], rep[cornerKey{v, fR}],
		})
		if len(q) < 3 {
			continue
		}
		if _, err := r.AddFace(q...); err != nil {
			return fmt.Errorf("hemesh.BevelEdges: strip quad for edge %v: %w", e, err)
		}
	}

	// cap the fans opened at beveled endpoints; pre-existing mesh
	// boundaries stay open
	origBoundary := map[Vertex]bool{}
	for old, nv := range orig {
		if m.IsBoundaryVertex(old) {
			origBoundary[nv] = true
		}
	}
	for _, loop := range r.BoundaryLoops() {
		if len(loop) < 3 {
			continue
		}
		open := false
		vs := make([]Vertex, len(loop))
		for i, h := range loop {
			vs[i] = r.Origin(h)
			if origBoundary[vs[i]] {
				open = true
			}
		}
		if open {
			continue
		}
		if _, err := r.AddFace(vs...); err != nil {
			return fmt.Errorf("hemesh.BevelEdges: corner cap: %w", err)
		}
	}

	// wires and isolated vertices carry over untouched
	for v := range m.Vertices() {
		if m.Valence(v) == 0 {
			origV(v)
		}
	}
	for e := range m.Edges() {
		h := m.EdgeHalfEdge(e)
		if m.IsBoundary(h) && m.IsBoundary(m.Twin(h)) && !selE[e] {
			u, v := m.EdgeVertices(e)
			if _, err := r.AddEdge(origV(u), origV(v)); err != nil {
				return fmt.Errorf("hemesh.BevelEdges: carrying wire edge %v: %w", e, err)
			}
		}
	}

	r.UpdateNormals()
	if err := r.Validate(); err != nil {
		slog.Error("hemesh: bevel produced inconsistent topology, rolled back",
			"op", "BevelEdges", "mesh", m.ID(), "error", err)
		return err
	}
	m.swap(r)
	return nil
}

// dedupCycle removes consecutive duplicate vertices, including across
// the wrap-around.
func dedupCycle(vs []Vertex) []Vertex {
	out := vs[:0]
	for i, v := range vs {
		if i > 0 && v == out[len(out)-1] {
			continue
		}
		out = append(out, v)
	}
	for len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}
