// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hemesh

import (
	"testing"

	"cogentcore.org/core/base/tolassert"
	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeQuad builds a unit quad in the XY plane.
func makeQuad(t *testing.T) (*Mesh, []Vertex, Face) {
	t.Helper()
	m := NewMesh()
	vs := []Vertex{
		m.AddVertex(math32.Vec3(0, 0, 0)),
		m.AddVertex(math32.Vec3(1, 0, 0)),
		m.AddVertex(math32.Vec3(1, 1, 0)),
		m.AddVertex(math32.Vec3(0, 1, 0)),
	}
	f, err := m.AddFace(vs...)
	require.NoError(t, err)
	return m, vs, f
}

// makeQuadCube builds a closed cube of the given size from six quads
// with outward winding. Faces are returned in the order front (+Z),
// back, left, right, top (+Y), bottom.
func makeQuadCube(t *testing.T, size float32) (*Mesh, []Vertex, []Face) {
	t.Helper()
	s := size / 2
	m := NewMesh()
	vs := []Vertex{
		m.AddVertex(math32.Vec3(-s, -s, -s)),
		m.AddVertex(math32.Vec3(s, -s, -s)),
		m.AddVertex(math32.Vec3(s, s, -s)),
		m.AddVertex(math32.Vec3(-s, s, -s)),
		m.AddVertex(math32.Vec3(-s, -s, s)),
		m.AddVertex(math32.Vec3(s, -s, s)),
		m.AddVertex(math32.Vec3(s, s, s)),
		m.AddVertex(math32.Vec3(-s, s, s)),
	}
	quads := [][4]int{
		{4, 5, 6, 7}, // front
		{1, 0, 3, 2}, // back
		{0, 4, 7, 3}, // left
		{5, 1, 2, 6}, // right
		{7, 6, 2, 3}, // top
		{0, 1, 5, 4}, // bottom
	}
	fs := make([]Face, len(quads))
	for i, q := range quads {
		f, err := m.AddFace(vs[q[0]], vs[q[1]], vs[q[2]], vs[q[3]])
		require.NoError(t, err)
		fs[i] = f
	}
	return m, vs, fs
}

// makeTriPair builds two triangles sharing the edge a-b.
func makeTriPair(t *testing.T) (*Mesh, []Vertex) {
	t.Helper()
	m := NewMesh()
	vs := []Vertex{
		m.AddVertex(math32.Vec3(0, 0, 0)),   // a
		m.AddVertex(math32.Vec3(1, 0, 0)),   // b
		m.AddVertex(math32.Vec3(0.5, 1, 0)), // c
		m.AddVertex(math32.Vec3(0.5, -1, 0)), // d
	}
	_, err := m.AddFace(vs[0], vs[1], vs[2])
	require.NoError(t, err)
	_, err = m.AddFace(vs[1], vs[0], vs[3])
	require.NoError(t, err)
	return m, vs
}

func TestAddFaceQuad(t *testing.T) {
	m, vs, f := makeQuad(t)
	assert.Equal(t, 4, m.NumVertices())
	assert.Equal(t, 4, m.NumEdges())
	assert.Equal(t, 1, m.NumFaces())
	assert.Equal(t, 8, m.NumHalfEdges())
	assert.NoError(t, m.Validate())
	assert.True(t, m.IsManifold())

	got := m.FaceVertices(f)
	require.Len(t, got, 4)
	// same cyclic order as given
	start := 0
	for i, v := range got {
		if v == vs[0] {
			start = i
		}
	}
	for i := range 4 {
		assert.Equal(t, vs[i], got[(start+i)%4])
	}

	loops := m.BoundaryLoops()
	require.Len(t, loops, 1)
	assert.Len(t, loops[0], 4)
}

func TestAddFaceErrors(t *testing.T) {
	m, vs, _ := makeQuad(t)
	_, err := m.AddFace(vs[0], vs[1])
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = m.AddFace(vs[0], vs[1], vs[0])
	assert.ErrorIs(t, err, ErrInvalidParameter)
	// the same side is already occupied
	_, err = m.AddFace(vs[0], vs[1], vs[2], vs[3])
	assert.ErrorIs(t, err, ErrNonManifold)
	assert.NoError(t, m.Validate())
}

func TestAddFaceOppositeSide(t *testing.T) {
	m, vs, _ := makeQuad(t)
	_, err := m.AddFace(vs[3], vs[2], vs[1], vs[0])
	require.NoError(t, err)
	st := m.Stats()
	assert.Equal(t, 4, st.Vertices)
	assert.Equal(t, 4, st.Edges)
	assert.Equal(t, 2, st.Faces)
	assert.Equal(t, 2, st.Euler)
	assert.Equal(t, 0, st.Boundaries)
	assert.NoError(t, m.Validate())
	assert.True(t, m.IsManifold())
}

func TestCubeStats(t *testing.T) {
	m, vs, _ := makeQuadCube(t, 2)
	st := m.Stats()
	assert.Equal(t, 8, st.Vertices)
	assert.Equal(t, 12, st.Edges)
	assert.Equal(t, 6, st.Faces)
	assert.Equal(t, 2, st.Euler)
	assert.Equal(t, 0, st.Boundaries)
	assert.NoError(t, m.Validate())
	assert.True(t, m.IsManifold())
	for _, v := range vs {
		assert.Equal(t, 3, m.Valence(v))
	}
}

func TestRemoveFace(t *testing.T) {
	m, _, fs := makeQuadCube(t, 2)
	require.NoError(t, m.RemoveFace(fs[4]))
	st := m.Stats()
	assert.Equal(t, 8, st.Vertices)
	assert.Equal(t, 12, st.Edges)
	assert.Equal(t, 5, st.Faces)
	assert.Equal(t, 1, st.Boundaries)
	assert.NoError(t, m.Validate())
	assert.True(t, m.IsManifold())
	assert.ErrorIs(t, m.RemoveFace(fs[4]), ErrInvalidParameter)
}

func TestCompactInvalidatesHandles(t *testing.T) {
	m, vs, fs := makeQuadCube(t, 2)
	require.NoError(t, m.RemoveFace(fs[0]))
	before := m.Stats()
	m.Compact()
	assert.Equal(t, before, m.Stats())
	assert.NoError(t, m.Validate())
	// handles from before the compaction are stale
	assert.True(t, m.VertexHalfEdge(vs[0]).IsNil())
	assert.True(t, m.FaceHalfEdge(fs[1]).IsNil())
	// the mesh itself is still fully usable
	for f := range m.Faces() {
		assert.Len(t, m.FaceVertices(f), 4)
	}
}

func TestClear(t *testing.T) {
	m, vs, _ := makeQuad(t)
	id := m.ID()
	m.Clear()
	assert.Equal(t, 0, m.NumVertices())
	assert.Equal(t, id, m.ID())
	assert.True(t, m.VertexHalfEdge(vs[0]).IsNil())
}

func TestAddEdgeWire(t *testing.T) {
	m := NewMesh()
	u := m.AddVertex(math32.Vec3(0, 0, 0))
	v := m.AddVertex(math32.Vec3(1, 0, 0))
	e, err := m.AddEdge(u, v)
	require.NoError(t, err)
	assert.NoError(t, m.Validate())
	e2, err := m.AddEdge(u, v)
	require.NoError(t, err)
	assert.Equal(t, e, e2)
	_, err = m.AddEdge(u, u)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	a, b := m.EdgeVertices(e)
	assert.Equal(t, u, a)
	assert.Equal(t, v, b)
}

func TestUpdateNormalsCube(t *testing.T) {
	m, _, _ := makeQuadCube(t, 2)
	m.UpdateNormals()
	for f := range m.Faces() {
		tolassert.EqualTol(t, 1, m.FaceNormal(f).Length(), 1e-5)
		// outward: normal agrees with direction from center to centroid
		c := m.FaceCentroid(f)
		assert.Greater(t, m.FaceNormal(f).Dot(c.Normal()), float32(0.9))
	}
	for v := range m.Vertices() {
		tolassert.EqualTol(t, 1, m.Norm(v).Length(), 1e-5)
	}
}

func TestUpdateNormalsIdempotent(t *testing.T) {
	m, _, _ := makeQuadCube(t, 2)
	m.UpdateNormals()
	first := map[Vertex]math32.Vector3{}
	for v := range m.Vertices() {
		first[v] = m.Norm(v)
	}
	m.UpdateNormals()
	for v := range m.Vertices() {
		assert.Equal(t, first[v], m.Norm(v))
	}
}

func TestIsManifoldBowtie(t *testing.T) {
	m := NewMesh()
	a := m.AddVertex(math32.Vec3(0, 0, 0))
	b := m.AddVertex(math32.Vec3(1, 0, 0))
	c := m.AddVertex(math32.Vec3(1, 1, 0))
	d := m.AddVertex(math32.Vec3(-1, 0, 0))
	e := m.AddVertex(math32.Vec3(-1, -1, 0))
	_, err := m.AddFace(a, b, c)
	require.NoError(t, err)
	_, err = m.AddFace(a, d, e)
	require.NoError(t, err)
	assert.NoError(t, m.Validate())
	assert.False(t, m.IsManifold())
}

func TestCentroidAndBounds(t *testing.T) {
	m, _, _ := makeQuadCube(t, 2)
	c := m.Centroid()
	tolassert.EqualTol(t, 0, c.Length(), 1e-6)
	bb := m.Bounds()
	assert.Equal(t, math32.Vec3(-1, -1, -1), bb.Min)
	assert.Equal(t, math32.Vec3(1, 1, 1), bb.Max)
}

func TestTransform(t *testing.T) {
	m, _, _ := makeQuadCube(t, 2)
	m.UpdateNormals()
	mat := math32.Identity4()
	mat[12] = 5 // translate along x
	m.Transform(mat)
	c := m.Centroid()
	tolassert.EqualTol(t, 5, c.X, 1e-6)
	// translation leaves normals unit
	for v := range m.Vertices() {
		tolassert.EqualTol(t, 1, m.Norm(v).Length(), 1e-5)
	}
}

func TestCloneIndependence(t *testing.T) {
	m, vs, _ := makeQuad(t)
	c := m.Clone()
	assert.NotEqual(t, m.ID(), c.ID())
	c.SetPos(vs[0], math32.Vec3(9, 9, 9))
	assert.Equal(t, math32.Vec3(0, 0, 0), m.Pos(vs[0]))
	assert.NoError(t, c.Validate())
}

func TestVertexNeighborsOrder(t *testing.T) {
	m, vs, _ := makeQuadCube(t, 2)
	ns := m.VertexNeighbors(vs[0])
	assert.Len(t, ns, 3)
	for _, n := range ns {
		assert.False(t, m.EdgeBetween(vs[0], n).IsNil())
	}
}
