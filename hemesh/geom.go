// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hemesh

import (
	chmath "github.com/chewxy/math32"

	"cogentcore.org/core/math32"
)

// Pos returns the position of the vertex.
func (m *Mesh) Pos(v Vertex) math32.Vector3 {
	if !m.validVertex(v) {
		return math32.Vector3{}
	}
	return m.verts[v.index].pos
}

// SetPos sets the position of the vertex.
func (m *Mesh) SetPos(v Vertex, p math32.Vector3) {
	if !m.validVertex(v) {
		return
	}
	m.verts[v.index].pos = p
	m.version++
}

// Norm returns the normal of the vertex.
func (m *Mesh) Norm(v Vertex) math32.Vector3 {
	if !m.validVertex(v) {
		return math32.Vector3{}
	}
	return m.verts[v.index].norm
}

// SetNorm sets the normal of the vertex.
func (m *Mesh) SetNorm(v Vertex, n math32.Vector3) {
	if !m.validVertex(v) {
		return
	}
	m.verts[v.index].norm = n
	m.version++
}

// UV returns the texture coordinate of the vertex.
func (m *Mesh) UV(v Vertex) math32.Vector2 {
	if !m.validVertex(v) {
		return math32.Vector2{}
	}
	return m.verts[v.index].uv
}

// SetUV sets the texture coordinate of the vertex.
func (m *Mesh) SetUV(v Vertex, uv math32.Vector2) {
	if !m.validVertex(v) {
		return
	}
	m.verts[v.index].uv = uv
	m.version++
}

// FaceNormal returns the stored face normal, computed by the last
// [Mesh.UpdateNormals] call.
func (m *Mesh) FaceNormal(f Face) math32.Vector3 {
	if !m.validFace(f) {
		return math32.Vector3{}
	}
	return m.faces[f.index].norm
}

// FaceCentroid returns the centroid of the face's vertices.
func (m *Mesh) FaceCentroid(f Face) math32.Vector3 {
	var c math32.Vector3
	vs := m.FaceVertices(f)
	if len(vs) == 0 {
		return c
	}
	for _, v := range vs {
		c.SetAdd(m.Pos(v))
	}
	return c.DivScalar(float32(len(vs)))
}

// Centroid returns the centroid of all vertex positions.
func (m *Mesh) Centroid() math32.Vector3 {
	var c math32.Vector3
	if m.numVerts == 0 {
		return c
	}
	for v := range m.Vertices() {
		c.SetAdd(m.Pos(v))
	}
	return c.DivScalar(float32(m.numVerts))
}

// faceNewellNormal computes the face normal with Newell's method,
// which stays well-behaved for non-planar polygons. Zero-area faces
// yield the zero vector.
func (m *Mesh) faceNewellNormal(f Face) math32.Vector3 {
	var n math32.Vector3
	for _, h := range m.FaceHalfEdges(f) {
		a := m.Pos(m.Origin(h))
		b := m.Pos(m.Target(h))
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	if n.LengthSquared() > 0 {
		return n.Normal()
	}
	return math32.Vector3{}
}

// cornerAngle returns the interior angle of the face corner at the
// origin of h, clamped to [0, pi].
func (m *Mesh) cornerAngle(h HalfEdge) float32 {
	p := m.Pos(m.Origin(h))
	a := m.Pos(m.Target(h)).Sub(p)
	b := m.Pos(m.Origin(m.Prev(h))).Sub(p)
	la, lb := a.Length(), b.Length()
	if la == 0 || lb == 0 {
		return 0
	}
	cos := a.Dot(b) / (la * lb)
	return chmath.Acos(chmath.Min(1, chmath.Max(-1, cos)))
}

// UpdateNormals recomputes every face normal, then every vertex normal
// as the angle-weighted sum of its incident face normals, normalized.
// Zero-area faces contribute nothing; isolated vertices keep a zero
// normal. The result depends only on positions and topology, so
// repeated calls are idempotent. O(V + F).
func (m *Mesh) UpdateNormals() {
	for i := range m.faces {
		if m.faces[i].dead {
			continue
		}
		f := Face{handle{int32(i), m.faces[i].gen}}
		m.faces[i].norm = m.faceNewellNormal(f)
	}
	acc := make([]math32.Vector3, len(m.verts))
	for i := range m.halves {
		if m.halves[i].dead {
			continue
		}
		h := HalfEdge{handle{int32(i), m.halves[i].gen}}
		f := m.halves[i].face
		if f.IsNil() {
			continue
		}
		fn := m.faces[f.index].norm
		if fn.LengthSquared() == 0 {
			continue
		}
		v := m.Origin(h)
		acc[v.index].SetAdd(fn.MulScalar(m.cornerAngle(h)))
	}
	for i := range m.verts {
		if m.verts[i].dead {
			continue
		}
		n := acc[i]
		if n.LengthSquared() > 0 {
			n = n.Normal()
		}
		m.verts[i].norm = n
	}
	m.version++
}

// Transform bakes the given matrix into all vertex positions, applying
// its linear part to normals (re-normalized).
func (m *Mesh) Transform(mat *math32.Matrix4) {
	for i := range m.verts {
		if m.verts[i].dead {
			continue
		}
		p := m.verts[i].pos
		tp := p.MulMatrix4(mat)
		m.verts[i].pos = tp
		n := m.verts[i].norm
		if n.LengthSquared() > 0 {
			tn := p.Add(n).MulMatrix4(mat).Sub(tp)
			if tn.LengthSquared() > 0 {
				tn = tn.Normal()
			}
			m.verts[i].norm = tn
		}
	}
	for i := range m.faces {
		if m.faces[i].dead {
			continue
		}
		f := Face{handle{int32(i), m.faces[i].gen}}
		m.faces[i].norm = m.faceNewellNormal(f)
	}
	m.version++
}

// Bounds returns the axis-aligned bounding box of all vertices.
func (m *Mesh) Bounds() math32.Box3 {
	bb := math32.B3Empty()
	for v := range m.Vertices() {
		bb.ExpandByPoint(m.Pos(v))
	}
	return bb
}
