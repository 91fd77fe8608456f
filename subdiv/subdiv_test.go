// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package subdiv

import (
	"testing"

	"cogentcore.org/core/base/tolassert"
	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/The-No-Hands-company/RudeBase3D-sub002/hemesh"
)

// quadCube builds a closed quad cube of the given size with outward
// winding.
func quadCube(t *testing.T, size float32) *hemesh.Mesh {
	t.Helper()
	s := size / 2
	m := hemesh.NewMesh()
	vs := []hemesh.Vertex{
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
		{4, 5, 6, 7}, {1, 0, 3, 2}, {0, 4, 7, 3},
		{5, 1, 2, 6}, {7, 6, 2, 3}, {0, 1, 5, 4},
	}
	for _, q := range quads {
		_, err := m.AddFace(vs[q[0]], vs[q[1]], vs[q[2]], vs[q[3]])
		require.NoError(t, err)
	}
	return m
}

func TestCubeOneLevel(t *testing.T) {
	en := NewEngine(quadCube(t, 2))
	l1, err := en.Level(1)
	require.NoError(t, err)
	st := l1.Stats()
	// 8 originals + 6 face points + 12 edge points
	assert.Equal(t, 26, st.Vertices)
	assert.Equal(t, 48, st.Edges)
	assert.Equal(t, 24, st.Faces)
	assert.Equal(t, 2, st.Euler)
	assert.Equal(t, 0, st.Boundaries)
	assert.NoError(t, l1.Validate())
	assert.True(t, l1.IsManifold())
	for f := range l1.Faces() {
		assert.Equal(t, 4, l1.FaceLen(f))
	}

	// a cube corner of valence 3 pulls in to 5/9 on each axis
	found := false
	for v := range l1.Vertices() {
		p := l1.Pos(v)
		if p.X > 0.5 && p.Y > 0.5 && p.Z > 0.5 {
			tolassert.EqualTol(t, 5.0/9.0, p.X, 1e-5)
			tolassert.EqualTol(t, 5.0/9.0, p.Y, 1e-5)
			tolassert.EqualTol(t, 5.0/9.0, p.Z, 1e-5)
			assert.Equal(t, 3, l1.Valence(v))
			found = true
		}
	}
	assert.True(t, found)
}

func TestIsQuadMesh(t *testing.T) {
	en := NewEngine(quadCube(t, 2))
	q0, err := en.IsQuadMesh(0)
	require.NoError(t, err)
	assert.True(t, q0)
	q1, err := en.IsQuadMesh(1)
	require.NoError(t, err)
	assert.True(t, q1)

	tri := hemesh.NewMesh()
	a := tri.AddVertex(math32.Vec3(0, 0, 0))
	b := tri.AddVertex(math32.Vec3(1, 0, 0))
	c := tri.AddVertex(math32.Vec3(0, 1, 0))
	_, err = tri.AddFace(a, b, c)
	require.NoError(t, err)
	ten := NewEngine(tri)
	q0, err = ten.IsQuadMesh(0)
	require.NoError(t, err)
	assert.False(t, q0)
	// a triangle still subdivides, into three quads
	l1, err := ten.Level(1)
	require.NoError(t, err)
	assert.Equal(t, 3, l1.NumFaces())
}

func TestIdempotentExtension(t *testing.T) {
	en := NewEngine(quadCube(t, 2))
	require.NoError(t, en.Subdivide(2))
	assert.Equal(t, 3, en.Levels())
	l1, err := en.Level(1)
	require.NoError(t, err)

	// smaller n keeps the higher levels
	require.NoError(t, en.Subdivide(1))
	assert.Equal(t, 3, en.Levels())

	// extension reuses the cached intermediates
	require.NoError(t, en.Subdivide(3))
	assert.Equal(t, 4, en.Levels())
	l1b, err := en.Level(1)
	require.NoError(t, err)
	assert.Same(t, l1, l1b)
}

func TestInvalidateLevels(t *testing.T) {
	en := NewEngine(quadCube(t, 2))
	require.NoError(t, en.Subdivide(2))
	l1, err := en.Level(1)
	require.NoError(t, err)

	en.InvalidateLevels(1)
	assert.Equal(t, 1, en.Levels())
	l1b, err := en.Level(1)
	require.NoError(t, err)
	assert.NotSame(t, l1, l1b)
}

func TestBaseMutationDropsLevels(t *testing.T) {
	base := quadCube(t, 2)
	en := NewEngine(base)
	l1, err := en.Level(1)
	require.NoError(t, err)

	for v := range base.Vertices() {
		base.SetPos(v, base.Pos(v).MulScalar(2))
		break
	}
	l1b, err := en.Level(1)
	require.NoError(t, err)
	assert.NotSame(t, l1, l1b)
}

func TestBoundaryPlane(t *testing.T) {
	m := hemesh.NewMesh()
	vs := []hemesh.Vertex{
		m.AddVertex(math32.Vec3(0, 0, 0)),
		m.AddVertex(math32.Vec3(1, 0, 0)),
		m.AddVertex(math32.Vec3(1, 1, 0)),
		m.AddVertex(math32.Vec3(0, 1, 0)),
	}
	_, err := m.AddFace(vs...)
	require.NoError(t, err)

	l1, err := NewEngine(m).Level(1)
	require.NoError(t, err)
	st := l1.Stats()
	assert.Equal(t, 9, st.Vertices)
	assert.Equal(t, 12, st.Edges)
	assert.Equal(t, 4, st.Faces)
	assert.Equal(t, 1, st.Boundaries)
	assert.NoError(t, l1.Validate())

	// boundary edge points stay on the boundary at midpoints, and the
	// corner rule averages the corner with its two edge midpoints
	corner := false
	for v := range l1.Vertices() {
		p := l1.Pos(v)
		tolassert.EqualTol(t, 0, p.Z, 1e-6)
		if p.X < 0.3 && p.Y < 0.3 {
			tolassert.EqualTol(t, 1.0/6.0, p.X, 1e-5)
			tolassert.EqualTol(t, 1.0/6.0, p.Y, 1e-5)
			corner = true
		}
	}
	assert.True(t, corner)
}

// successive levels of a subdivided cube approach the limit surface:
// the maximum distance from a level's vertices to their limit
// positions shrinks every step, and the overall size stays between
// the inscribed and circumscribed radii of the cube.
func TestConvergence(t *testing.T) {
	en := NewEngine(quadCube(t, 2))
	require.NoError(t, en.Subdivide(3))

	prevDrift := float32(math32.Inf(1))
	for k := 1; k <= 3; k++ {
		lk, err := en.Level(k)
		require.NoError(t, err)
		var drift, maxR float32
		for v := range lk.Vertices() {
			p := lk.Pos(v)
			if d := p.Sub(LimitPosition(lk, v)).Length(); d > drift {
				drift = d
			}
			if r := p.Length(); r > maxR {
				maxR = r
			}
		}
		assert.Less(t, drift, prevDrift, "level %d", k)
		prevDrift = drift
		assert.Greater(t, maxR, float32(0.85))
		assert.Less(t, maxR, 1.05*math32.Sqrt(3))
	}

	rm, err := en.RenderMesh(-1)
	require.NoError(t, err)
	r := rm.BoundingRadius()
	assert.Greater(t, r, float32(0.85))
	assert.Less(t, r, 1.05*math32.Sqrt(3))
}

func TestRenderMeshLevels(t *testing.T) {
	en := NewEngine(quadCube(t, 2))
	rm0, err := en.RenderMesh(0)
	require.NoError(t, err)
	assert.Equal(t, 12, rm0.NumTriangle()) // 6 quads fan-split

	rm1, err := en.RenderMesh(1)
	require.NoError(t, err)
	assert.Equal(t, 48, rm1.NumTriangle())
	assert.Equal(t, 26, rm1.NumVertex())

	// -1 picks the finest cached level, without subdividing further
	rmf, err := en.RenderMesh(-1)
	require.NoError(t, err)
	assert.Equal(t, 48, rmf.NumTriangle())

	_, err = en.RenderMesh(-2)
	assert.ErrorIs(t, err, hemesh.ErrInvalidParameter)
}

func TestEngineErrors(t *testing.T) {
	var en Engine
	assert.ErrorIs(t, en.Subdivide(1), hemesh.ErrInvalidParameter)
	cube := NewEngine(quadCube(t, 2))
	assert.ErrorIs(t, cube.Subdivide(-1), hemesh.ErrInvalidParameter)
}
