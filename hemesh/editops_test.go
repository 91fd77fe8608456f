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

func TestExtrudeSingleFace(t *testing.T) {
	m, _, fs := makeQuadCube(t, 2)
	top := fs[4] // +Y
	require.NoError(t, m.ExtrudeFaces(SelectFaces(top), 1))

	st := m.Stats()
	assert.Equal(t, 12, st.Vertices) // +4
	assert.Equal(t, 20, st.Edges)    // +8
	assert.Equal(t, 10, st.Faces)    // -1 +1 top +4 sides
	assert.Equal(t, 2, st.Euler)
	assert.NoError(t, m.Validate())
	assert.True(t, m.IsManifold())

	// the new cap sits one unit above the old top and faces outward
	maxY := float32(0)
	for v := range m.Vertices() {
		if y := m.Pos(v).Y; y > maxY {
			maxY = y
		}
	}
	tolassert.EqualTol(t, 2, maxY, 1e-5)
	for f := range m.Faces() {
		c := m.FaceCentroid(f)
		if c.Y > 1.5 {
			assert.Greater(t, m.FaceNormal(f).Y, float32(0.9))
		}
	}
}

func TestExtrudeSelectionErrors(t *testing.T) {
	m, vs, _ := makeQuadCube(t, 2)
	version := m.Version()
	err := m.ExtrudeFaces(Selection{}, 1)
	assert.ErrorIs(t, err, ErrInvalidSelection)
	err = m.ExtrudeFaces(SelectVertices(vs[0]), 1)
	assert.ErrorIs(t, err, ErrInvalidSelection)
	err = m.ExtrudeFaces(SelectEdges(m.EdgeBetween(vs[0], vs[1])), 1)
	assert.ErrorIs(t, err, ErrInvalidSelection)
	assert.Equal(t, version, m.Version())
}

func TestExtrudeAdjacentFaces(t *testing.T) {
	m, _, fs := makeQuadCube(t, 2)
	require.NoError(t, m.ExtrudeFaces(SelectFaces(fs[4], fs[0]), 1))
	assert.NoError(t, m.Validate())
	// the rim of two adjacent quads has 6 boundary half-edges
	st := m.Stats()
	assert.Equal(t, 8+6, st.Vertices)
	assert.Equal(t, 6-2+2+6, st.Faces)
}

func TestExtrudeEdges(t *testing.T) {
	m, vs, _ := makeQuad(t)
	e := m.EdgeBetween(vs[0], vs[1])
	require.NoError(t, m.ExtrudeEdges(SelectEdges(e), math32.Vec3(0, 0, -1)))
	st := m.Stats()
	assert.Equal(t, 6, st.Vertices)
	assert.Equal(t, 7, st.Edges)
	assert.Equal(t, 2, st.Faces)
	assert.NoError(t, m.Validate())
	assert.True(t, m.IsManifold())
}

func TestExtrudeEdgesInteriorRejected(t *testing.T) {
	m, vs := makeTriPair(t)
	e := m.EdgeBetween(vs[0], vs[1]) // interior
	err := m.ExtrudeEdges(SelectEdges(e), math32.Vec3(0, 0, 1))
	assert.ErrorIs(t, err, ErrInvalidSelection)
	assert.NoError(t, m.Validate())
}

func TestInsetFace(t *testing.T) {
	m, _, f := makeQuad(t)
	require.NoError(t, m.InsetFaces(SelectFaces(f), 0.25))
	st := m.Stats()
	assert.Equal(t, 8, st.Vertices)
	assert.Equal(t, 12, st.Edges)
	assert.Equal(t, 5, st.Faces)
	assert.Equal(t, 1, st.Euler) // still a disk
	assert.NoError(t, m.Validate())
	assert.True(t, m.IsManifold())

	// the inner quad is shrunk toward the centroid
	var inner Face
	for fc := range m.Faces() {
		if m.FaceLen(fc) == 4 {
			c := m.FaceCentroid(fc)
			if c.X > 0.4 && c.X < 0.6 {
				ok := true
				for _, v := range m.FaceVertices(fc) {
					p := m.Pos(v)
					if p.X == 0 || p.X == 1 {
						ok = false
					}
				}
				if ok {
					inner = fc
				}
			}
		}
	}
	require.False(t, inner.IsNil())
	for _, v := range m.FaceVertices(inner) {
		p := m.Pos(v)
		assert.Greater(t, p.X, float32(0.1))
		assert.Less(t, p.X, float32(0.9))
	}
}

func TestInsetFractionRange(t *testing.T) {
	m, _, f := makeQuad(t)
	assert.ErrorIs(t, m.InsetFaces(SelectFaces(f), 0), ErrInvalidParameter)
	assert.ErrorIs(t, m.InsetFaces(SelectFaces(f), 1), ErrInvalidParameter)
}

func TestLoopCutAroundCube(t *testing.T) {
	m, vs, _ := makeQuadCube(t, 2)
	seed := m.EdgeBetween(vs[1], vs[2]) // vertical edge
	require.False(t, seed.IsNil())
	require.NoError(t, m.LoopCut(seed, 1, 0.5))

	st := m.Stats()
	assert.Equal(t, 12, st.Vertices)
	assert.Equal(t, 20, st.Edges)
	assert.Equal(t, 10, st.Faces)
	assert.Equal(t, 2, st.Euler)
	assert.NoError(t, m.Validate())
	assert.True(t, m.IsManifold())
	// the cut ring sits at mid height
	n := 0
	for v := range m.Vertices() {
		if math32.Abs(m.Pos(v).Y) < 1e-5 {
			n++
		}
	}
	assert.Equal(t, 4, n)
}

func TestLoopCutMultiple(t *testing.T) {
	m, vs, _ := makeQuadCube(t, 2)
	seed := m.EdgeBetween(vs[1], vs[2])
	require.NoError(t, m.LoopCut(seed, 2, 0.5))
	st := m.Stats()
	assert.Equal(t, 16, st.Vertices)
	assert.Equal(t, 28, st.Edges)
	assert.Equal(t, 14, st.Faces)
	assert.Equal(t, 2, st.Euler)
	assert.NoError(t, m.Validate())
	assert.True(t, m.IsManifold())
}

func TestLoopCutOpenStrip(t *testing.T) {
	// 1x3 strip of quads in the XY plane
	m := NewMesh()
	var rows [2][4]Vertex
	for j := range 2 {
		for i := range 4 {
			rows[j][i] = m.AddVertex(math32.Vec3(float32(i), float32(j), 0))
		}
	}
	for i := range 3 {
		_, err := m.AddFace(rows[0][i], rows[0][i+1], rows[1][i+1], rows[1][i])
		require.NoError(t, err)
	}
	// seed in the middle; the cut runs the length of the strip
	seed := m.EdgeBetween(rows[0][1], rows[1][1])
	require.False(t, seed.IsNil())
	require.NoError(t, m.LoopCut(seed, 1, 0.5))
	st := m.Stats()
	assert.Equal(t, 8+4, st.Vertices) // one new vertex per rung, 4 rungs
	assert.Equal(t, 6, st.Faces)
	assert.NoError(t, m.Validate())
	assert.True(t, m.IsManifold())
}

func TestLoopCutErrors(t *testing.T) {
	m, vs := makeTriPair(t)
	e := m.EdgeBetween(vs[0], vs[1])
	assert.ErrorIs(t, m.LoopCut(e, 1, 0.5), ErrInvalidSelection)
	q, qvs, _ := makeQuad(t)
	qe := q.EdgeBetween(qvs[0], qvs[1])
	assert.ErrorIs(t, q.LoopCut(qe, 0, 0.5), ErrInvalidParameter)
	assert.ErrorIs(t, q.LoopCut(qe, 1, 0), ErrInvalidParameter)
}

func TestSubdivideFaceTriangle(t *testing.T) {
	m, vs := makeTriPair(t)
	f := m.Face(m.FindHalfEdge(vs[0], vs[1]))
	require.False(t, f.IsNil())
	require.NoError(t, m.SubdivideFace(f))
	st := m.Stats()
	assert.Equal(t, 7, st.Vertices)
	assert.Equal(t, 11, st.Edges)
	assert.Equal(t, 5, st.Faces)
	assert.NoError(t, m.Validate())
	assert.True(t, m.IsManifold())
	// four small triangles plus the neighbor, which gained a midpoint
	tris, quads := 0, 0
	for fc := range m.Faces() {
		switch m.FaceLen(fc) {
		case 3:
			tris++
		case 4:
			quads++
		}
	}
	assert.Equal(t, 4, tris)
	assert.Equal(t, 1, quads)
}

func TestSubdivideFaceQuad(t *testing.T) {
	m, _, fs := makeQuadCube(t, 2)
	require.NoError(t, m.SubdivideFace(fs[4]))
	st := m.Stats()
	assert.Equal(t, 13, st.Vertices)
	assert.Equal(t, 20, st.Edges)
	assert.Equal(t, 9, st.Faces)
	assert.Equal(t, 2, st.Euler)
	assert.NoError(t, m.Validate())
	assert.True(t, m.IsManifold())
	// the top now has four quads whose shared corner is the centroid
	center := 0
	for v := range m.Vertices() {
		p := m.Pos(v)
		if math32.Abs(p.X) < 1e-5 && math32.Abs(p.Z) < 1e-5 && p.Y > 0.5 {
			center++
			assert.Equal(t, 4, m.Valence(v))
		}
	}
	assert.Equal(t, 1, center)
}

func TestSubdivideFacePolygonRejected(t *testing.T) {
	m := NewMesh()
	var vs []Vertex
	for i := range 5 {
		a := float32(i) / 5 * 2 * math32.Pi
		vs = append(vs, m.AddVertex(math32.Vec3(math32.Cos(a), math32.Sin(a), 0)))
	}
	f, err := m.AddFace(vs...)
	require.NoError(t, err)
	assert.ErrorIs(t, m.SubdivideFace(f), ErrInvalidParameter)
}

func TestBevelCubeEdge(t *testing.T) {
	m, vs, _ := makeQuadCube(t, 2)
	e := m.EdgeBetween(vs[2], vs[6]) // top-right vertical edge
	require.False(t, e.IsNil())
	require.NoError(t, m.BevelEdges(SelectEdges(e), 0.2))

	st := m.Stats()
	assert.Equal(t, 12, st.Vertices) // two slide points per endpoint
	assert.Equal(t, 19, st.Edges)
	assert.Equal(t, 9, st.Faces) // 6 rewritten + strip + 2 corner caps
	assert.Equal(t, 2, st.Euler)
	assert.Equal(t, 0, st.Boundaries)
	assert.NoError(t, m.Validate())
	assert.True(t, m.IsManifold())
}

func TestBevelErrors(t *testing.T) {
	m, vs, _ := makeQuad(t)
	e := m.EdgeBetween(vs[0], vs[1]) // boundary edge
	assert.ErrorIs(t, m.BevelEdges(SelectEdges(e), 0.1), ErrInvalidSelection)
	c, cvs, _ := makeQuadCube(t, 2)
	ce := c.EdgeBetween(cvs[0], cvs[1])
	assert.ErrorIs(t, c.BevelEdges(SelectEdges(ce), 0), ErrInvalidParameter)
	assert.ErrorIs(t, c.BevelEdges(Selection{}, 0.1), ErrInvalidSelection)
}

// extruding every face of a closed mesh detaches an offset shell over
// the original cage.
func TestExtrudeWholeCube(t *testing.T) {
	m, _, fs := makeQuadCube(t, 2)
	require.NoError(t, m.ExtrudeFaces(SelectFaces(fs...), 0.5))
	st := m.Stats()
	assert.Equal(t, 16, st.Vertices)
	assert.Equal(t, 6, st.Faces) // shell faces only; the cage keeps its edges
	assert.Equal(t, 24, st.Edges)
	assert.NoError(t, m.Validate())
}
