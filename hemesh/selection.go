// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hemesh

import "fmt"

// Selection is a typed set of mesh elements passed to the edit
// operators. Only one of the three element kinds may be populated;
// operators reject selections of the wrong kind with
// [ErrInvalidSelection].
type Selection struct {
	Verts []Vertex
	Edges []Edge
	Faces []Face
}

// SelectVertices returns a vertex selection.
func SelectVertices(vs ...Vertex) Selection {
	return Selection{Verts: vs}
}

// SelectEdges returns an edge selection.
func SelectEdges(es ...Edge) Selection {
	return Selection{Edges: es}
}

// SelectFaces returns a face selection.
func SelectFaces(fs ...Face) Selection {
	return Selection{Faces: fs}
}

// IsEmpty reports whether the selection contains no elements.
func (s Selection) IsEmpty() bool {
	return len(s.Verts) == 0 && len(s.Edges) == 0 && len(s.Faces) == 0
}

// faceSelection validates that s is a non-empty face selection with
// live handles on m, returning the faces.
func (m *Mesh) faceSelection(op string, s Selection) ([]Face, error) {
	if len(s.Faces) == 0 || len(s.Edges) > 0 || len(s.Verts) > 0 {
		return nil, fmt.Errorf("hemesh.%s: need a non-empty face selection: %w", op, ErrInvalidSelection)
	}
	for _, f := range s.Faces {
		if !m.validFace(f) {
			return nil, fmt.Errorf("hemesh.%s: stale face handle %v: %w", op, f, ErrInvalidSelection)
		}
	}
	return s.Faces, nil
}

// edgeSelection validates that s is a non-empty edge selection with
// live handles on m, returning the edges.
func (m *Mesh) edgeSelection(op string, s Selection) ([]Edge, error) {
	if len(s.Edges) == 0 || len(s.Faces) > 0 || len(s.Verts) > 0 {
		return nil, fmt.Errorf("hemesh.%s: need a non-empty edge selection: %w", op, ErrInvalidSelection)
	}
	for _, e := range s.Edges {
		if !m.validEdge(e) {
			return nil, fmt.Errorf("hemesh.%s: stale edge handle %v: %w", op, e, ErrInvalidSelection)
		}
	}
	return s.Edges, nil
}
