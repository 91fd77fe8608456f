// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meshio_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/The-No-Hands-company/RudeBase3D-sub002/meshio"
	_ "github.com/The-No-Hands-company/RudeBase3D-sub002/meshio/obj"
	_ "github.com/The-No-Hands-company/RudeBase3D-sub002/meshio/ply"
	_ "github.com/The-No-Hands-company/RudeBase3D-sub002/meshio/stl"
	"github.com/The-No-Hands-company/RudeBase3D-sub002/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndOpenAllFormats(t *testing.T) {
	cube, err := shape.NewCube(2)
	require.NoError(t, err)
	dir := t.TempDir()
	for _, ext := range []string{".obj", ".stl", ".ply"} {
		t.Run(ext, func(t *testing.T) {
			fn := filepath.Join(dir, "cube"+ext)
			require.NoError(t, meshio.SaveMesh(fn, cube))
			ms, err := meshio.OpenMesh(fn, meshio.Defaults())
			require.NoError(t, err)
			// default import welds the soup back together
			assert.Equal(t, 8, ms.NumVertex())
			assert.Equal(t, 12, ms.NumTriangle())
			assert.Equal(t, cube.Bounds(), ms.Bounds())
			require.NoError(t, ms.Validate())
		})
	}
}

func TestUnknownExtension(t *testing.T) {
	_, err := meshio.Decode("mesh.xyz", strings.NewReader(""), nil)
	assert.ErrorIs(t, err, meshio.ErrIO)
	err = meshio.Encode("mesh.xyz", nil, nil)
	assert.ErrorIs(t, err, meshio.ErrIO)
	_, err = meshio.DecodeFile("no/such/dir/mesh.obj", nil)
	assert.ErrorIs(t, err, meshio.ErrIO)
}

func TestImportOptions(t *testing.T) {
	const tri = "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"

	// raw import: no welding, no generated attributes
	objs, err := meshio.Decode("tri.obj", strings.NewReader(tri), &meshio.ImportOptions{})
	require.NoError(t, err)
	ms := objs[0].Mesh
	assert.Empty(t, ms.Normal)
	assert.Empty(t, ms.TexCoord)
	a, b, c := ms.Triangle(0)
	assert.Equal(t, [3]uint32{0, 1, 2}, [3]uint32{a, b, c})

	// generated normals follow the counter-clockwise winding
	objs, err = meshio.Decode("tri.obj", strings.NewReader(tri),
		&meshio.ImportOptions{GenerateNormals: true, GenerateTexCoords: true})
	require.NoError(t, err)
	ms = objs[0].Mesh
	assert.Equal(t, float32(1), ms.NormalAt(0).Z)
	assert.Equal(t, float32(0), ms.TexCoordAt(0).X)
	assert.Equal(t, float32(1), ms.TexCoordAt(1).X)

	// flipping the winding reverses the generated normal
	objs, err = meshio.Decode("tri.obj", strings.NewReader(tri),
		&meshio.ImportOptions{FlipWinding: true, GenerateNormals: true})
	require.NoError(t, err)
	assert.Equal(t, float32(-1), objs[0].Mesh.NormalAt(0).Z)
}

func TestMergeObjects(t *testing.T) {
	cube, err := shape.NewCube(1)
	require.NoError(t, err)
	plane, err := shape.NewPlane(1, 1, 1, 1)
	require.NoError(t, err)
	ms := meshio.MergeObjects("both", []meshio.Object{
		{Name: "cube", Mesh: cube},
		{Name: "plane", Mesh: plane},
	})
	assert.Equal(t, cube.NumVertex()+plane.NumVertex(), ms.NumVertex())
	assert.Equal(t, cube.NumTriangle()+plane.NumTriangle(), ms.NumTriangle())
	require.NoError(t, ms.Validate())
	// the plane's indices are rebased past the cube's vertices
	a, _, _ := ms.Triangle(cube.NumTriangle())
	assert.GreaterOrEqual(t, a, uint32(cube.NumVertex()))
}
