// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import "cogentcore.org/core/math32"

// Icosphere is a sphere built by subdividing an icosahedron, giving
// near-uniform triangles with no pole pinching. Normals are smooth
// (radial); UVs are the equirectangular projection of each vertex
// direction, with the usual seam wrap at u=0.
type Icosphere struct {
	ShapeBase

	// radius of the sphere
	Radius float32

	// number of subdivision passes over the icosahedron (0 keeps the
	// raw 20 faces; each pass quadruples them)
	Subdivisions int `min:"0"`
}

func (ic *Icosphere) Defaults() {
	ic.Radius = 1
	ic.Subdivisions = 2
}

func (ic *Icosphere) MeshSize() (numVertex, numIndex int) {
	return IcosphereN(ic.Subdivisions)
}

// IcosphereN returns the number of vertex and index points for an
// icosphere with the given number of subdivisions, in vertex points,
// not floats.
func IcosphereN(subdivisions int) (numVertex, numIndex int) {
	subdivisions = max(subdivisions, 0)
	f := 1
	for range subdivisions {
		f *= 4
	}
	return 10*f + 2, 60 * f
}

// Set writes the icosphere into the given allocated arrays.
func (ic *Icosphere) Set(vertex, normal, texCoord math32.ArrayF32, index math32.ArrayU32) {
	pts, faces := icosphereTopology(max(ic.Subdivisions, 0))

	bb := math32.B3Empty()
	vidx := ic.VtxOff * 3
	tidx := ic.VtxOff * 2
	for i, p := range pts {
		pt := p.MulScalar(ic.Radius).Add(ic.Pos)
		vertex.SetVector3(vidx+i*3, pt)
		normal.SetVector3(vidx+i*3, p)
		u := 0.5 + math32.Atan2(p.Z, p.X)/(2*math32.Pi)
		v := 0.5 - math32.Asin(p.Y)/math32.Pi
		texCoord.Set(tidx+i*2, u, v)
		bb.ExpandByPoint(pt)
	}
	vOff := uint32(ic.VtxOff)
	for i, f := range faces {
		index.Set(ic.IdxOff+i*3, vOff+f[0], vOff+f[1], vOff+f[2])
	}
	ic.CBBox = bb
}

// icosphereTopology returns the unit-sphere points and outward-wound
// triangles of an icosahedron subdivided the given number of times.
// Midpoints are shared between neighboring triangles, so the surface
// stays closed.
func icosphereTopology(subdivisions int) ([]math32.Vector3, [][3]uint32) {
	t := (1 + math32.Sqrt(5)) / 2
	pts := []math32.Vector3{
		math32.Vec3(-1, t, 0), math32.Vec3(1, t, 0), math32.Vec3(-1, -t, 0), math32.Vec3(1, -t, 0),
		math32.Vec3(0, -1, t), math32.Vec3(0, 1, t), math32.Vec3(0, -1, -t), math32.Vec3(0, 1, -t),
		math32.Vec3(t, 0, -1), math32.Vec3(t, 0, 1), math32.Vec3(-t, 0, -1), math32.Vec3(-t, 0, 1),
	}
	for i := range pts {
		pts[i] = pts[i].Normal()
	}
	faces := [][3]uint32{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}

	for range subdivisions {
		mids := map[[2]uint32]uint32{}
		midpoint := func(a, b uint32) uint32 {
			k := [2]uint32{min(a, b), max(a, b)}
			if m, ok := mids[k]; ok {
				return m
			}
			m := uint32(len(pts))
			pts = append(pts, pts[a].Add(pts[b]).Normal())
			mids[k] = m
			return m
		}
		next := make([][3]uint32, 0, len(faces)*4)
		for _, f := range faces {
			ab := midpoint(f[0], f[1])
			bc := midpoint(f[1], f[2])
			ca := midpoint(f[2], f[0])
			next = append(next,
				[3]uint32{f[0], ab, ca},
				[3]uint32{f[1], bc, ab},
				[3]uint32{f[2], ca, bc},
				[3]uint32{ab, bc, ca},
			)
		}
		faces = next
	}
	return pts, faces
}
