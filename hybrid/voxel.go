// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hybrid

import (
	"fmt"

	"cogentcore.org/core/math32"
	"github.com/The-No-Hands-company/RudeBase3D-sub002/hemesh"
	"github.com/The-No-Hands-company/RudeBase3D-sub002/trimesh"
)

// VoxelGrid is a dense occupancy grid over an axis-aligned region:
// a bit per cell, packed into words. Cell (0,0,0) has its minimum
// corner at Origin.
type VoxelGrid struct {

	// world position of the minimum corner of cell (0,0,0)
	Origin math32.Vector3

	// edge length of one cubical cell
	VoxelSize float32

	// number of cells along each axis
	Dims math32.Vector3i

	// occupancy bitset, x-major then y then z
	Bits []uint64
}

// NewVoxelGrid returns an empty grid covering the given bounds with
// the given cell size.
func NewVoxelGrid(bounds math32.Box3, voxelSize float32) (*VoxelGrid, error) {
	if voxelSize <= 0 {
		return nil, fmt.Errorf("hybrid.NewVoxelGrid: voxel size %g: %w", voxelSize, hemesh.ErrInvalidParameter)
	}
	sz := bounds.Size()
	vg := &VoxelGrid{Origin: bounds.Min, VoxelSize: voxelSize}
	vg.Dims.Set(
		int32(math32.Ceil(sz.X/voxelSize))+1,
		int32(math32.Ceil(sz.Y/voxelSize))+1,
		int32(math32.Ceil(sz.Z/voxelSize))+1,
	)
	n := int(vg.Dims.X) * int(vg.Dims.Y) * int(vg.Dims.Z)
	vg.Bits = make([]uint64, (n+63)/64)
	return vg, nil
}

func (vg *VoxelGrid) Representation() Representation { return Voxel }

func (vg *VoxelGrid) SizeBytes() int64 {
	return int64(len(vg.Bits)) * 8
}

// NumCells returns the total cell count.
func (vg *VoxelGrid) NumCells() int {
	return int(vg.Dims.X) * int(vg.Dims.Y) * int(vg.Dims.Z)
}

func (vg *VoxelGrid) index(x, y, z int) int {
	return x + int(vg.Dims.X)*(y+int(vg.Dims.Y)*z)
}

// At reports whether the cell at the given coordinates is occupied.
// Out-of-range coordinates are empty.
func (vg *VoxelGrid) At(x, y, z int) bool {
	if x < 0 || y < 0 || z < 0 || x >= int(vg.Dims.X) || y >= int(vg.Dims.Y) || z >= int(vg.Dims.Z) {
		return false
	}
	i := vg.index(x, y, z)
	return vg.Bits[i/64]&(1<<(i%64)) != 0
}

// Set marks the cell at the given coordinates occupied. Out-of-range
// coordinates are ignored.
func (vg *VoxelGrid) Set(x, y, z int) {
	if x < 0 || y < 0 || z < 0 || x >= int(vg.Dims.X) || y >= int(vg.Dims.Y) || z >= int(vg.Dims.Z) {
		return
	}
	i := vg.index(x, y, z)
	vg.Bits[i/64] |= 1 << (i % 64)
}

// SetPoint marks the cell containing the given world point.
func (vg *VoxelGrid) SetPoint(p math32.Vector3) {
	d := p.Sub(vg.Origin).DivScalar(vg.VoxelSize)
	vg.Set(int(math32.Floor(d.X)), int(math32.Floor(d.Y)), int(math32.Floor(d.Z)))
}

// Count returns the number of occupied cells.
func (vg *VoxelGrid) Count() int {
	n := 0
	for _, w := range vg.Bits {
		for ; w != 0; w &= w - 1 {
			n++
		}
	}
	return n
}

// VoxelizeSurface builds an occupancy grid from a triangle mesh
// surface by sampling each triangle on a barycentric lattice fine
// enough that no cell the triangle touches through its interior is
// skipped. The solid interior is not filled.
func VoxelizeSurface(ms *trimesh.Mesh, voxelSize float32) (*VoxelGrid, error) {
	vg, err := NewVoxelGrid(ms.Bounds(), voxelSize)
	if err != nil {
		return nil, err
	}
	for i := range ms.NumTriangle() {
		a, b, c := ms.Triangle(i)
		pa, pb, pc := ms.Position(int(a)), ms.Position(int(b)), ms.Position(int(c))
		// sample density from the longest edge, half a cell per step
		longest := max(pb.Sub(pa).Length(), pc.Sub(pb).Length(), pa.Sub(pc).Length())
		steps := max(int(math32.Ceil(longest/voxelSize))*2, 1)
		for si := 0; si <= steps; si++ {
			u := float32(si) / float32(steps)
			for sj := 0; sj <= steps-si; sj++ {
				v := float32(sj) / float32(steps)
				w := 1 - u - v
				vg.SetPoint(pa.MulScalar(u).Add(pb.MulScalar(v)).Add(pc.MulScalar(w)))
			}
		}
	}
	return vg, nil
}
