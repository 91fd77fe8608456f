// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hemesh

import (
	"fmt"
	"log/slog"

	"cogentcore.org/core/math32"
)

// transact runs op on a scratch copy of the mesh and swaps the result
// in only if op succeeds and the scratch still validates. On any
// failure the mesh is left exactly as it was. Handles held by the
// caller stay valid across the swap because the scratch copy is
// positionally identical.
func (m *Mesh) transact(name string, op func(s *Mesh) error) error {
	s := m.Clone()
	if err := op(s); err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		slog.Error("hemesh: edit produced inconsistent topology, rolled back",
			"op", name, "mesh", m.ID(), "error", err)
		return err
	}
	m.swap(s)
	return nil
}

// ExtrudeFaces extrudes the selected faces by dist along their
// per-vertex average normals: every vertex of the selection is
// duplicated and offset, the originals are removed, top faces are
// rebuilt over the offset vertices, and quad side walls are added
// along the selection's rim. Extruding every face of a closed mesh
// produces a detached offset shell over the original wireframe.
func (m *Mesh) ExtrudeFaces(sel Selection, dist float32) error {
	faces, err := m.faceSelection("ExtrudeFaces", sel)
	if err != nil {
		return err
	}
	return m.transact("ExtrudeFaces", func(s *Mesh) error {
		inF := map[Face]bool{}
		order := make([]Face, 0, len(faces))
		for _, f := range faces {
			if !inF[f] {
				inF[f] = true
				order = append(order, f)
			}
		}
		fn := map[Face]math32.Vector3{}
		for _, f := range order {
			fn[f] = s.faceNewellNormal(f)
		}
		newV := map[Vertex]Vertex{}
		for _, f := range order {
			for _, v := range s.FaceVertices(f) {
				if _, ok := newV[v]; ok {
					continue
				}
				var n math32.Vector3
				for _, vf := range s.VertexFaces(v) {
					if inF[vf] {
						n.SetAdd(fn[vf])
					}
				}
				if n.LengthSquared() > 0 {
					n = n.Normal()
				}
				nv := s.AddVertex(s.Pos(v).Add(n.MulScalar(dist)))
				s.verts[nv.index].uv = s.UV(v)
				newV[v] = nv
			}
		}
		var tops, sides [][]Vertex
		for _, f := range order {
			vs := s.FaceVertices(f)
			top := make([]Vertex, len(vs))
			for i, v := range vs {
				top[i] = newV[v]
			}
			tops = append(tops, top)
			for _, h := range s.FaceHalfEdges(f) {
				tf := s.Face(s.Twin(h))
				if tf.IsNil() || !inF[tf] {
					u, w := s.Origin(h), s.Target(h)
					sides = append(sides, []Vertex{u, w, newV[w], newV[u]})
				}
			}
		}
		for _, f := range order {
			if err := s.RemoveFace(f); err != nil {
				return err
			}
		}
		for _, p := range tops {
			if _, err := s.AddFace(p...); err != nil {
				return fmt.Errorf("hemesh.ExtrudeFaces: top face: %w", err)
			}
		}
		for _, p := range sides {
			if _, err := s.AddFace(p...); err != nil {
				return fmt.Errorf("hemesh.ExtrudeFaces: side face: %w", err)
			}
		}
		s.UpdateNormals()
		return nil
	})
}

// ExtrudeEdges extrudes the selected boundary edges by the offset
// vector, adding one quad per edge between the original and offset
// endpoints. Endpoints shared by several selected edges are duplicated
// once. Fails with [ErrInvalidSelection] if any selected edge is not
// on a boundary.
func (m *Mesh) ExtrudeEdges(sel Selection, offset math32.Vector3) error {
	edges, err := m.edgeSelection("ExtrudeEdges", sel)
	if err != nil {
		return err
	}
	for _, e := range edges {
		if !m.IsBoundaryEdge(e) {
			return fmt.Errorf("hemesh.ExtrudeEdges: edge %v is interior: %w", e, ErrInvalidSelection)
		}
	}
	return m.transact("ExtrudeEdges", func(s *Mesh) error {
		newV := map[Vertex]Vertex{}
		dup := func(v Vertex) Vertex {
			if nv, ok := newV[v]; ok {
				return nv
			}
			nv := s.AddVertex(s.Pos(v).Add(offset))
			s.verts[nv.index].uv = s.UV(v)
			newV[v] = nv
			return nv
		}
		for _, e := range edges {
			hb := s.EdgeHalfEdge(e)
			if !s.IsBoundary(hb) {
				hb = s.Twin(hb)
			}
			u, w := s.Origin(hb), s.Target(hb)
			if _, err := s.AddFace(u, w, dup(w), dup(u)); err != nil {
				return fmt.Errorf("hemesh.ExtrudeEdges: edge %v: %w", e, err)
			}
		}
		s.UpdateNormals()
		return nil
	})
}

// InsetFaces replaces each selected face with a shrunken copy whose
// vertices are pulled toward the face centroid by fraction frac in
// (0, 1), connected to the original boundary by a ring of quads.
func (m *Mesh) InsetFaces(sel Selection, frac float32) error {
	faces, err := m.faceSelection("InsetFaces", sel)
	if err != nil {
		return err
	}
	if frac <= 0 || frac >= 1 {
		return fmt.Errorf("hemesh.InsetFaces: fraction %g outside (0,1): %w", frac, ErrInvalidParameter)
	}
	return m.transact("InsetFaces", func(s *Mesh) error {
		for _, f := range faces {
			if !s.validFace(f) {
				return fmt.Errorf("hemesh.InsetFaces: duplicate face %v in selection: %w", f, ErrInvalidSelection)
			}
			c := s.FaceCentroid(f)
			var cuv math32.Vector2
			vs := s.FaceVertices(f)
			for _, v := range vs {
				cuv.SetAdd(s.UV(v))
			}
			cuv = cuv.DivScalar(float32(len(vs)))
			inner := make([]Vertex, len(vs))
			for i, v := range vs {
				nv := s.AddVertex(s.Pos(v).Lerp(c, frac))
				s.verts[nv.index].uv = s.UV(v).Lerp(cuv, frac)
				inner[i] = nv
			}
			if err := s.RemoveFace(f); err != nil {
				return err
			}
			if _, err := s.AddFace(inner...); err != nil {
				return fmt.Errorf("hemesh.InsetFaces: inner face: %w", err)
			}
			for i := range vs {
				j := (i + 1) % len(vs)
				if _, err := s.AddFace(vs[i], vs[j], inner[j], inner[i]); err != nil {
					return fmt.Errorf("hemesh.InsetFaces: ring quad: %w", err)
				}
			}
		}
		s.UpdateNormals()
		return nil
	})
}
