// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trimesh

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoTriangles is a unit square in the XY plane split along the
// diagonal, counter-clockwise facing +Z.
func twoTriangles() *Mesh {
	ms := NewMesh("square")
	ms.Vertex = math32.ArrayF32{
		0, 0, 0,
		1, 0, 0,
		1, 1, 0,
		0, 1, 0,
	}
	ms.Index = math32.ArrayU32{0, 1, 2, 0, 2, 3}
	ms.Changed()
	return ms
}

func TestVersionAndBounds(t *testing.T) {
	ms := twoTriangles()
	v0 := ms.Version()
	bb := ms.Bounds()
	assert.Equal(t, math32.Vec3(1, 1, 0), bb.Max)

	ms.SetPosition(2, math32.Vec3(1, 1, 2))
	// bounds are cached until Changed is called
	assert.Equal(t, math32.Vec3(1, 1, 0), ms.Bounds().Max)
	assert.Equal(t, v0, ms.Version())
	ms.Changed()
	assert.Equal(t, math32.Vec3(1, 1, 2), ms.Bounds().Max)
	assert.Greater(t, ms.Version(), v0)

	assert.Greater(t, ms.BoundingRadius(), float32(0))
	assert.NotZero(t, ms.ID())
	assert.Equal(t, ms.ID(), ms.ID())
}

func TestCalculateNormals(t *testing.T) {
	ms := twoTriangles()
	ms.CalculateNormals()
	require.Len(t, ms.Normal, 12)
	for i := range ms.NumVertex() {
		assert.Equal(t, math32.Vec3(0, 0, 1), ms.NormalAt(i))
	}
	ms.FlipWinding()
	a, b, c := ms.Triangle(0)
	assert.Equal(t, [3]uint32{0, 2, 1}, [3]uint32{a, b, c})
	ms.CalculateNormals()
	assert.Equal(t, math32.Vec3(0, 0, -1), ms.NormalAt(0))
}

func TestWeldVertices(t *testing.T) {
	// the same square as triangle soup, 6 corners
	ms := NewMesh("soup")
	ms.Vertex = math32.ArrayF32{
		0, 0, 0, 1, 0, 0, 1, 1, 0,
		0, 0, 0, 1, 1, 0, 0, 1, 0,
	}
	ms.Index = math32.ArrayU32{0, 1, 2, 3, 4, 5}
	ms.Changed()

	welded := ms.WeldVertices(1.0e-5)
	assert.Equal(t, 4, welded.NumVertex())
	assert.Equal(t, 2, welded.NumTriangle())
	require.NoError(t, welded.Validate())
	// the source is untouched
	assert.Equal(t, 6, ms.NumVertex())

	// degenerate triangles produced by merging are dropped
	dg := NewMesh("deg")
	dg.Vertex = math32.ArrayF32{0, 0, 0, 0, 0, 0, 1, 0, 0}
	dg.Index = math32.ArrayU32{0, 1, 2}
	dg.Changed()
	assert.Equal(t, 0, dg.WeldVertices(1.0e-5).NumTriangle())
}

func TestValidate(t *testing.T) {
	ms := twoTriangles()
	require.NoError(t, ms.Validate())

	bad := twoTriangles()
	bad.Index = append(bad.Index, 0)
	assert.Error(t, bad.Validate())

	bad = twoTriangles()
	bad.Index[0] = 9
	assert.Error(t, bad.Validate())

	bad = twoTriangles()
	bad.Normal = math32.ArrayF32{0, 0, 1}
	assert.Error(t, bad.Validate())

	lines := NewMesh("lines")
	lines.Lines = true
	lines.Vertex = math32.ArrayF32{0, 0, 0, 1, 0, 0}
	lines.Index = math32.ArrayU32{0, 1}
	lines.Changed()
	require.NoError(t, lines.Validate())
	lines.Index = append(lines.Index, 0)
	assert.Error(t, lines.Validate())
}

func TestCloneIsIndependent(t *testing.T) {
	ms := twoTriangles()
	ms.CalculateNormals()
	cp := ms.Clone()
	assert.NotEqual(t, ms.ID(), cp.ID())
	cp.SetPosition(0, math32.Vec3(5, 5, 5))
	cp.Changed()
	assert.Equal(t, math32.Vec3(0, 0, 0), ms.Position(0))
	assert.Equal(t, ms.NumTriangle(), cp.NumTriangle())
}

// sliceSource writes a fixed triangle, for testing FromSource.
type sliceSource struct{}

func (ss *sliceSource) MeshSize() (numVertex, numIndex int) {
	return 3, 3
}

func (ss *sliceSource) Set(vertex, normal, texCoord math32.ArrayF32, index math32.ArrayU32) {
	vertex.SetVector3(0, math32.Vec3(0, 0, 0))
	vertex.SetVector3(3, math32.Vec3(1, 0, 0))
	vertex.SetVector3(6, math32.Vec3(0, 1, 0))
	for i := range 3 {
		normal.SetVector3(i*3, math32.Vec3(0, 0, 1))
		index.Set(i, uint32(i))
	}
	texCoord.Set(0, 0, 0, 1, 0, 0, 1)
}

func TestFromSource(t *testing.T) {
	ms := FromSource("tri", &sliceSource{})
	require.NoError(t, ms.Validate())
	assert.Equal(t, 3, ms.NumVertex())
	assert.Equal(t, 1, ms.NumTriangle())
	assert.Equal(t, math32.Vec3(0, 0, 1), ms.NormalAt(2))
	assert.Equal(t, math32.Vec2(1, 0), ms.TexCoordAt(1))
}
