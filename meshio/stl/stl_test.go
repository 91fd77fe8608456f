// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/The-No-Hands-company/RudeBase3D-sub002/meshio"
	"github.com/The-No-Hands-company/RudeBase3D-sub002/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinaryRoundTrip(t *testing.T) {
	cube, err := shape.NewCube(2)
	require.NoError(t, err)
	var buf bytes.Buffer
	var enc Encoder
	require.NoError(t, enc.Encode(&buf, []meshio.Object{{Name: "cube", Mesh: cube}}))
	// header + count + 12 records
	assert.Equal(t, 84+12*recordSize, buf.Len())

	var dec Decoder
	objs, err := dec.Decode(&buf)
	require.NoError(t, err)
	require.Len(t, objs, 1)
	assert.Equal(t, "cube", objs[0].Name)
	ms := objs[0].Mesh
	assert.Equal(t, 36, ms.NumVertex())
	assert.Equal(t, 12, ms.NumTriangle())
	require.NoError(t, ms.Validate())
	welded := ms.WeldVertices(1.0e-5)
	assert.Equal(t, 8, welded.NumVertex())
	assert.Equal(t, cube.Bounds(), welded.Bounds())
}

func TestASCIIRoundTrip(t *testing.T) {
	cube, err := shape.NewCube(2)
	require.NoError(t, err)
	var buf bytes.Buffer
	enc := Encoder{ASCII: true}
	require.NoError(t, enc.Encode(&buf, []meshio.Object{{Name: "cube", Mesh: cube}}))
	assert.True(t, strings.HasPrefix(buf.String(), "solid cube"))

	var dec Decoder
	objs, err := dec.Decode(&buf)
	require.NoError(t, err)
	require.Len(t, objs, 1)
	assert.Equal(t, "cube", objs[0].Name)
	assert.Equal(t, 12, objs[0].Mesh.NumTriangle())
	assert.Equal(t, cube.Bounds(), objs[0].Mesh.WeldVertices(1.0e-5).Bounds())
}

func TestDecodeASCII(t *testing.T) {
	const file = `solid tri
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
endsolid tri
`
	var dec Decoder
	objs, err := dec.Decode(strings.NewReader(file))
	require.NoError(t, err)
	ms := objs[0].Mesh
	assert.Equal(t, "tri", objs[0].Name)
	assert.Equal(t, 1, ms.NumTriangle())
	n := ms.NormalAt(0)
	assert.Equal(t, float32(1), n.Z)
}

func TestDecodeErrors(t *testing.T) {
	var dec Decoder
	// truncated binary: declares one triangle, carries none
	bad := make([]byte, 84)
	bad[80] = 1
	_, err := dec.Decode(bytes.NewReader(bad))
	assert.ErrorIs(t, err, meshio.ErrIO)

	_, err = dec.Decode(strings.NewReader("solid s\n facet normal 0 0\n"))
	assert.ErrorIs(t, err, meshio.ErrIO)

	_, err = dec.Decode(strings.NewReader("solid s\nendsolid s\n"))
	assert.ErrorIs(t, err, meshio.ErrIO)

	_, err = dec.Decode(bytes.NewReader(nil))
	assert.ErrorIs(t, err, meshio.ErrIO)
}
