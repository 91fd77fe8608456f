// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hemesh

import "fmt"

// findFaceWith returns the face among candidates whose boundary
// contains both vertices.
func (m *Mesh) findFaceWith(candidates []Face, a, b Vertex) Face {
	for _, f := range candidates {
		hasA, hasB := false, false
		for _, v := range m.FaceVertices(f) {
			if v == a {
				hasA = true
			}
			if v == b {
				hasB = true
			}
		}
		if hasA && hasB {
			return f
		}
	}
	return Face{}
}

// SubdivideFace subdivides one face in place. A triangle becomes four
// triangles through its edge midpoints; a quad becomes four quads
// around a center vertex at its centroid. Edge midpoints are real edge
// splits, so neighboring faces gain the midpoint on their shared edge
// and the surface stays crack-free. Other polygons are rejected.
func (m *Mesh) SubdivideFace(f Face) error {
	if !m.validFace(f) {
		return fmt.Errorf("hemesh.SubdivideFace: stale face handle %v: %w", f, ErrInvalidParameter)
	}
	n := m.FaceLen(f)
	if n != 3 && n != 4 {
		return fmt.Errorf("hemesh.SubdivideFace: face %v has %d sides, need 3 or 4: %w", f, n, ErrInvalidParameter)
	}
	return m.transact("SubdivideFace", func(s *Mesh) error {
		es := s.FaceEdges(f)
		mids := make([]Vertex, len(es))
		for i, e := range es {
			w, _, _, err := s.SplitEdge(e, 0.5)
			if err != nil {
				return err
			}
			mids[i] = w
		}
		if n == 3 {
			// cut off the three corners, leaving the center triangle
			faces := []Face{f}
			for i := range mids {
				j := (i + 1) % 3
				host := s.findFaceWith(faces, mids[i], mids[j])
				if host.IsNil() {
					return fmt.Errorf("hemesh.SubdivideFace: lost midpoint pair: %w", ErrTopologyViolation)
				}
				_, f2, err := s.SplitFace(host, mids[i], mids[j])
				if err != nil {
					return err
				}
				faces = append(faces, f2)
			}
			s.UpdateNormals()
			return nil
		}
		// quad: split across, put the center on the crossing edge, then
		// split the two halves through it
		c := s.FaceCentroid(f)
		eC, fB, err := s.SplitFace(f, mids[0], mids[2])
		if err != nil {
			return err
		}
		center, _, _, err := s.SplitEdge(eC, 0.5)
		if err != nil {
			return err
		}
		s.SetPos(center, c)
		hostA := s.findFaceWith([]Face{f, fB}, center, mids[1])
		if hostA.IsNil() {
			return fmt.Errorf("hemesh.SubdivideFace: lost quad center: %w", ErrTopologyViolation)
		}
		if _, _, err := s.SplitFace(hostA, center, mids[1]); err != nil {
			return err
		}
		hostB := f
		if hostA == f {
			hostB = fB
		}
		if _, _, err := s.SplitFace(hostB, center, mids[3]); err != nil {
			return err
		}
		s.UpdateNormals()
		return nil
	})
}
