// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trimesh

import "cogentcore.org/core/math32"

// WeldVertices returns a new mesh in which vertices whose positions are
// within tol of each other are merged into one. The first occurrence
// wins and keeps its normal and texture coordinate. Indices are
// remapped; degenerate triangles produced by the merge (two or three
// equal indices) are dropped. The receiver is not modified.
func (ms *Mesh) WeldVertices(tol float32) *Mesh {
	nv := ms.NumVertex()
	nm := NewMesh(ms.Name)
	nm.Lines = ms.Lines
	if nv == 0 {
		return nm
	}
	hasNorm := len(ms.Normal) == nv*3
	hasTex := len(ms.TexCoord) == nv*2

	// spatial hash over cells of size tol; a candidate match can land in
	// any of the 27 cells around a point, so all are probed
	cells := map[[3]int32][]int{}
	cellOf := func(p math32.Vector3) [3]int32 {
		return [3]int32{
			int32(math32.Floor(p.X / tol)),
			int32(math32.Floor(p.Y / tol)),
			int32(math32.Floor(p.Z / tol)),
		}
	}

	remap := make([]uint32, nv)
	for i := 0; i < nv; i++ {
		p := ms.Position(i)
		cc := cellOf(p)
		found := -1
		for dx := int32(-1); dx <= 1 && found < 0; dx++ {
			for dy := int32(-1); dy <= 1 && found < 0; dy++ {
				for dz := int32(-1); dz <= 1 && found < 0; dz++ {
					for _, j := range cells[[3]int32{cc[0] + dx, cc[1] + dy, cc[2] + dz}] {
						if nm.Position(j).DistanceTo(p) <= tol {
							found = j
							break
						}
					}
				}
			}
		}
		if found >= 0 {
			remap[i] = uint32(found)
			continue
		}
		ni := nm.NumVertex()
		nm.Vertex = append(nm.Vertex, p.X, p.Y, p.Z)
		if hasNorm {
			n := ms.NormalAt(i)
			nm.Normal = append(nm.Normal, n.X, n.Y, n.Z)
		}
		if hasTex {
			tc := ms.TexCoordAt(i)
			nm.TexCoord = append(nm.TexCoord, tc.X, tc.Y)
		}
		cells[cc] = append(cells[cc], ni)
		remap[i] = uint32(ni)
	}

	stride := 3
	if ms.Lines {
		stride = 2
	}
	for i := 0; i+stride <= len(ms.Index); i += stride {
		a := remap[ms.Index[i]]
		b := remap[ms.Index[i+1]]
		if stride == 2 {
			if a != b {
				nm.Index = append(nm.Index, a, b)
			}
			continue
		}
		c := remap[ms.Index[i+2]]
		if a == b || b == c || a == c {
			continue
		}
		nm.Index = append(nm.Index, a, b, c)
	}
	return nm
}
