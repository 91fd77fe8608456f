// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hemesh

import "fmt"

func (m *Mesh) isQuad(f Face) bool {
	return !f.IsNil() && m.FaceLen(f) == 4
}

// splitEdgeFrom splits the edge at the given fractions, ascending in
// (0, 1) and measured from the `from` endpoint, returning the new
// vertices in order.
func (m *Mesh) splitEdgeFrom(e Edge, from Vertex, ts []float32) ([]Vertex, error) {
	cur := e
	near := from
	curStart := float32(0)
	out := make([]Vertex, 0, len(ts))
	for _, t := range ts {
		local := (t - curStart) / (1 - curStart)
		alignedFrom := m.Origin(m.EdgeHalfEdge(cur)) == near
		if !alignedFrom {
			local = 1 - local
		}
		w, e1, e2, err := m.SplitEdge(cur, local)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
		if alignedFrom {
			cur = e2
		} else {
			cur = e1
		}
		near = w
		curStart = t
	}
	return out, nil
}

// LoopCut walks the quad ring through the seed edge, crossing each
// quad to its opposite edge until the ring closes or hits a non-quad
// face, then inserts cuts parallel loops: every crossed edge is split
// and the new vertices are connected across each quad, splitting it
// into a ladder. With cuts == 1 the single loop sits at fraction frac
// along the crossed edges; with more cuts the loops are evenly spaced.
func (m *Mesh) LoopCut(seed Edge, cuts int, frac float32) error {
	if !m.validEdge(seed) {
		return fmt.Errorf("hemesh.LoopCut: stale edge handle %v: %w", seed, ErrInvalidParameter)
	}
	if cuts < 1 {
		return fmt.Errorf("hemesh.LoopCut: cuts %d must be at least 1: %w", cuts, ErrInvalidParameter)
	}
	if frac <= 0 || frac >= 1 {
		return fmt.Errorf("hemesh.LoopCut: fraction %g outside (0,1): %w", frac, ErrInvalidParameter)
	}
	return m.transact("LoopCut", func(s *Mesh) error {
		h0 := s.EdgeHalfEdge(seed)
		if !s.isQuad(s.Face(h0)) {
			h0 = s.Twin(h0)
		}
		if !s.isQuad(s.Face(h0)) {
			return fmt.Errorf("hemesh.LoopCut: seed edge %v has no quad face: %w", seed, ErrInvalidSelection)
		}
		// rewind to the open end of the strip, or detect a closed ring
		start := h0
		closed := false
		for range s.numFaces + 1 {
			tw := s.Twin(start)
			if !s.isQuad(s.Face(tw)) {
				break
			}
			p := s.Next(s.Next(tw))
			if p == h0 {
				closed = true
				break
			}
			start = p
		}
		// forward walk, collecting the crossed edges with the endpoint
		// that anchors the cut fraction (all on the same rail)
		type crossing struct {
			e    Edge
			from Vertex
		}
		var crossings []crossing
		var faces []Face
		seen := map[Edge]bool{}
		h := start
		for range s.numFaces + 1 {
			e := s.Edge(h)
			if seen[e] {
				return fmt.Errorf("hemesh.LoopCut: edge ring through %v crosses itself: %w", seed, ErrInvalidSelection)
			}
			seen[e] = true
			crossings = append(crossings, crossing{e, s.Origin(h)})
			faces = append(faces, s.Face(h))
			nx := s.Twin(s.Next(s.Next(h)))
			if closed && nx == start {
				break
			}
			if !s.isQuad(s.Face(nx)) {
				// open strip: the exit edge is cut too
				if seen[s.Edge(nx)] {
					return fmt.Errorf("hemesh.LoopCut: edge ring through %v crosses itself: %w", seed, ErrInvalidSelection)
				}
				crossings = append(crossings, crossing{s.Edge(nx), s.Origin(nx)})
				break
			}
			h = nx
		}

		ts := make([]float32, cuts)
		if cuts == 1 {
			ts[0] = frac
		} else {
			for i := range ts {
				ts[i] = float32(i+1) / float32(cuts+1)
			}
		}
		verts := make([][]Vertex, len(crossings))
		for i, c := range crossings {
			vs, err := s.splitEdgeFrom(c.e, c.from, ts)
			if err != nil {
				return err
			}
			verts[i] = vs
		}
		for i, f := range faces {
			a := verts[i]
			b := verts[(i+1)%len(crossings)]
			cur := f
			for k := range cuts {
				_, f2, err := s.SplitFace(cur, a[k], b[k])
				if err != nil {
					return err
				}
				cur = f2
			}
		}
		s.UpdateNormals()
		return nil
	})
}
