// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convert

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/The-No-Hands-company/RudeBase3D-sub002/hemesh"
	"github.com/The-No-Hands-company/RudeBase3D-sub002/trimesh"
)

// cubeSoup builds a flat-shaded unit-ish cube: 24 vertices (4 per
// side, duplicated at the corners) and 12 triangles, the way a
// per-face-attribute generator or an STL import produces it.
func cubeSoup(t *testing.T) *trimesh.Mesh {
	t.Helper()
	type side struct {
		corners [4]math32.Vector3
		normal  math32.Vector3
	}
	sides := []side{
		{[4]math32.Vector3{math32.Vec3(-1, -1, 1), math32.Vec3(1, -1, 1), math32.Vec3(1, 1, 1), math32.Vec3(-1, 1, 1)}, math32.Vec3(0, 0, 1)},
		{[4]math32.Vector3{math32.Vec3(1, -1, -1), math32.Vec3(-1, -1, -1), math32.Vec3(-1, 1, -1), math32.Vec3(1, 1, -1)}, math32.Vec3(0, 0, -1)},
		{[4]math32.Vector3{math32.Vec3(-1, -1, -1), math32.Vec3(-1, -1, 1), math32.Vec3(-1, 1, 1), math32.Vec3(-1, 1, -1)}, math32.Vec3(-1, 0, 0)},
		{[4]math32.Vector3{math32.Vec3(1, -1, 1), math32.Vec3(1, -1, -1), math32.Vec3(1, 1, -1), math32.Vec3(1, 1, 1)}, math32.Vec3(1, 0, 0)},
		{[4]math32.Vector3{math32.Vec3(-1, 1, 1), math32.Vec3(1, 1, 1), math32.Vec3(1, 1, -1), math32.Vec3(-1, 1, -1)}, math32.Vec3(0, 1, 0)},
		{[4]math32.Vector3{math32.Vec3(-1, -1, -1), math32.Vec3(1, -1, -1), math32.Vec3(1, -1, 1), math32.Vec3(-1, -1, 1)}, math32.Vec3(0, -1, 0)},
	}
	var vertex, normal, texCoord math32.ArrayF32
	var index math32.ArrayU32
	for i, s := range sides {
		base := uint32(i * 4)
		for j, c := range s.corners {
			vertex = append(vertex, c.X, c.Y, c.Z)
			normal = append(normal, s.normal.X, s.normal.Y, s.normal.Z)
			texCoord = append(texCoord, float32(j&1), float32(j>>1))
		}
		index = append(index, base, base+1, base+2, base, base+2, base+3)
	}
	rm := trimesh.NewMesh("cube")
	rm.SetData(vertex, normal, texCoord, index)
	return rm
}

// sharedCube builds the same cube with 8 shared vertices and 12
// triangles, no duplication.
func sharedCube(t *testing.T) *trimesh.Mesh {
	t.Helper()
	corners := []math32.Vector3{
		math32.Vec3(-1, -1, -1), math32.Vec3(1, -1, -1), math32.Vec3(1, 1, -1), math32.Vec3(-1, 1, -1),
		math32.Vec3(-1, -1, 1), math32.Vec3(1, -1, 1), math32.Vec3(1, 1, 1), math32.Vec3(-1, 1, 1),
	}
	quads := [][4]uint32{
		{4, 5, 6, 7}, {1, 0, 3, 2}, {0, 4, 7, 3},
		{5, 1, 2, 6}, {7, 6, 2, 3}, {0, 1, 5, 4},
	}
	var vertex math32.ArrayF32
	for _, c := range corners {
		vertex = append(vertex, c.X, c.Y, c.Z)
	}
	var index math32.ArrayU32
	for _, q := range quads {
		index = append(index, q[0], q[1], q[2], q[0], q[2], q[3])
	}
	rm := trimesh.NewMesh("cube")
	rm.SetData(vertex, nil, nil, index)
	rm.CalculateNormals()
	return rm
}

func TestToHalfEdgeWeldsCube(t *testing.T) {
	rm := cubeSoup(t)
	hm, err := ToHalfEdge(rm, nil)
	require.NoError(t, err)
	st := hm.Stats()
	assert.Equal(t, 8, st.Vertices)
	assert.Equal(t, 18, st.Edges)
	assert.Equal(t, 12, st.Faces)
	assert.Equal(t, 2, st.Euler)
	assert.Equal(t, 0, st.Boundaries)
	assert.NoError(t, hm.Validate())
	assert.True(t, hm.IsManifold())
}

func TestToHalfEdgeNoMerge(t *testing.T) {
	rm := cubeSoup(t)
	opts := &Options{MergeVertices: false}
	hm, err := ToHalfEdge(rm, opts)
	require.NoError(t, err)
	st := hm.Stats()
	// six disconnected disks
	assert.Equal(t, 24, st.Vertices)
	assert.Equal(t, 30, st.Edges)
	assert.Equal(t, 12, st.Faces)
	assert.Equal(t, 6, st.Boundaries)
	assert.NoError(t, hm.Validate())
}

func TestRoundTrip(t *testing.T) {
	rm := sharedCube(t)
	hm, err := ToHalfEdge(rm, nil)
	require.NoError(t, err)
	out := ToRenderMesh(hm)
	assert.Equal(t, rm.NumVertex(), out.NumVertex())
	assert.Equal(t, rm.NumTriangle(), out.NumTriangle())

	// same surface: every output triangle matches an input one by its
	// cyclically-normalized position key
	key := func(ms *trimesh.Mesh, i int) [9]float32 {
		a, b, c := ms.Triangle(i)
		pa, pb, pc := ms.Position(int(a)), ms.Position(int(b)), ms.Position(int(c))
		// rotate so the lexicographically smallest corner is first
		ps := [3]math32.Vector3{pa, pb, pc}
		lo := 0
		for j := 1; j < 3; j++ {
			a, b := ps[j], ps[lo]
			if a.X < b.X || (a.X == b.X && (a.Y < b.Y || (a.Y == b.Y && a.Z < b.Z))) {
				lo = j
			}
		}
		var k [9]float32
		for j := range 3 {
			p := ps[(lo+j)%3]
			k[j*3], k[j*3+1], k[j*3+2] = p.X, p.Y, p.Z
		}
		return k
	}
	want := map[[9]float32]int{}
	for i := range rm.NumTriangle() {
		want[key(rm, i)]++
	}
	for i := range out.NumTriangle() {
		k := key(out, i)
		require.Greater(t, want[k], 0, "unexpected triangle %d", i)
		want[k]--
	}

	// a second conversion pass is stable
	hm2, err := ToHalfEdge(out, nil)
	require.NoError(t, err)
	assert.Equal(t, hm.Stats(), hm2.Stats())
}

func TestToHalfEdgeSkipsBadTriangles(t *testing.T) {
	vertex := math32.ArrayF32{
		0, 0, 0,
		1, 0, 0,
		1, 1, 0,
		0, 1, 0,
	}
	index := math32.ArrayU32{
		0, 1, 2,
		0, 2, 3,
		0, 0, 1, // degenerate
		2, 0, 1, // duplicate of the first, rotated
	}
	rm := trimesh.NewMesh("plane")
	rm.SetData(vertex, nil, nil, index)
	hm, err := ToHalfEdge(rm, &Options{MergeVertices: false})
	require.NoError(t, err)
	assert.Equal(t, 2, hm.NumFaces())
	assert.Equal(t, 4, hm.NumVertices())
	assert.NoError(t, hm.Validate())
}

func TestToHalfEdgeRejectsLines(t *testing.T) {
	rm := trimesh.NewMesh("grid")
	rm.Lines = true
	_, err := ToHalfEdge(rm, nil)
	assert.ErrorIs(t, err, hemesh.ErrInvalidParameter)
}

func TestToRenderMeshSkipsWires(t *testing.T) {
	hm := hemesh.NewMesh()
	a := hm.AddVertex(math32.Vec3(0, 0, 0))
	b := hm.AddVertex(math32.Vec3(1, 0, 0))
	c := hm.AddVertex(math32.Vec3(0, 1, 0))
	d := hm.AddVertex(math32.Vec3(5, 5, 5))
	_, err := hm.AddFace(a, b, c)
	require.NoError(t, err)
	_, err = hm.AddEdge(a, d)
	require.NoError(t, err)
	rm := ToRenderMesh(hm)
	assert.Equal(t, 1, rm.NumTriangle())
	assert.NoError(t, rm.Validate())
}

func TestCacheHitAndInvalidation(t *testing.T) {
	rm := sharedCube(t)
	c := NewCache()
	hm1, err := c.ToHalfEdge(rm, nil)
	require.NoError(t, err)
	hm2, err := c.ToHalfEdge(rm, nil)
	require.NoError(t, err)
	assert.Same(t, hm1, hm2)

	// editing the source invalidates via the version stamp
	rm.SetPosition(0, math32.Vec3(-2, -2, -2))
	rm.Changed()
	hm3, err := c.ToHalfEdge(rm, nil)
	require.NoError(t, err)
	assert.NotSame(t, hm1, hm3)

	// the reverse direction caches independently
	out1 := c.ToRenderMesh(hm3)
	out2 := c.ToRenderMesh(hm3)
	assert.Same(t, out1, out2)

	c.Invalidate(hm3.ID())
	out3 := c.ToRenderMesh(hm3)
	assert.NotSame(t, out1, out3)
}
