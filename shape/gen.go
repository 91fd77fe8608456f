// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"fmt"

	"github.com/The-No-Hands-company/RudeBase3D-sub002/hemesh"
	"github.com/The-No-Hands-company/RudeBase3D-sub002/trimesh"
)

// maxIcosphereSubdivisions bounds icosphere generation: each pass
// quadruples the face count, and 10*4^8 faces is already past any
// interactive use.
const maxIcosphereSubdivisions = 8

// NewCube generates a cube of the given edge length, with flat
// per-face normals (24 vertices, 12 triangles).
func NewCube(size float32) (*trimesh.Mesh, error) {
	if size <= 0 {
		return nil, fmt.Errorf("shape.NewCube: size %g: %w", size, hemesh.ErrInvalidParameter)
	}
	cb := &Cube{}
	cb.Defaults()
	cb.Size.SetScalar(size)
	return trimesh.FromSource("Cube", cb), nil
}

// NewPlane generates a flat plane of the given width and depth in the
// XZ ground plane, divided into the given number of segments.
func NewPlane(width, height float32, widthSegs, heightSegs int) (*trimesh.Mesh, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("shape.NewPlane: size %g x %g: %w", width, height, hemesh.ErrInvalidParameter)
	}
	if widthSegs < 1 || heightSegs < 1 {
		return nil, fmt.Errorf("shape.NewPlane: segments %d x %d: %w", widthSegs, heightSegs, hemesh.ErrInvalidParameter)
	}
	pl := &Plane{}
	pl.Defaults()
	pl.Size.Set(width, height)
	pl.Segs.Set(int32(widthSegs), int32(heightSegs))
	return trimesh.FromSource("Plane", pl), nil
}

// NewSphere generates a UV sphere of the given radius with the given
// number of longitude segments and latitude rings.
func NewSphere(radius float32, segs, rings int) (*trimesh.Mesh, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("shape.NewSphere: radius %g: %w", radius, hemesh.ErrInvalidParameter)
	}
	if segs < 3 || rings < 2 {
		return nil, fmt.Errorf("shape.NewSphere: %d segments, %d rings: %w", segs, rings, hemesh.ErrInvalidParameter)
	}
	sp := &Sphere{}
	sp.Defaults()
	sp.Radius = radius
	sp.Segs = segs
	sp.Rings = rings
	return trimesh.FromSource("Sphere", sp), nil
}

// NewCylinder generates a capped cylinder of the given radius and
// height with the given number of radial segments.
func NewCylinder(radius, height float32, segs int) (*trimesh.Mesh, error) {
	if radius <= 0 || height <= 0 {
		return nil, fmt.Errorf("shape.NewCylinder: radius %g, height %g: %w", radius, height, hemesh.ErrInvalidParameter)
	}
	if segs < 3 {
		return nil, fmt.Errorf("shape.NewCylinder: %d segments: %w", segs, hemesh.ErrInvalidParameter)
	}
	cy := &Cylinder{}
	cy.Defaults()
	cy.TopRadius = radius
	cy.BotRadius = radius
	cy.Height = height
	cy.RadialSegs = segs
	return trimesh.FromSource("Cylinder", cy), nil
}

// NewCone generates a capped cone of the given base radius and height
// with the given number of radial segments.
func NewCone(radius, height float32, segs int) (*trimesh.Mesh, error) {
	if radius <= 0 || height <= 0 {
		return nil, fmt.Errorf("shape.NewCone: radius %g, height %g: %w", radius, height, hemesh.ErrInvalidParameter)
	}
	if segs < 3 {
		return nil, fmt.Errorf("shape.NewCone: %d segments: %w", segs, hemesh.ErrInvalidParameter)
	}
	cy := &Cylinder{}
	cy.Defaults()
	cy.TopRadius = 0
	cy.BotRadius = radius
	cy.Height = height
	cy.RadialSegs = segs
	return trimesh.FromSource("Cone", cy), nil
}

// NewTorus generates a torus with the given ring and tube radii and
// segment counts.
func NewTorus(majorRadius, minorRadius float32, majorSegs, minorSegs int) (*trimesh.Mesh, error) {
	if majorRadius <= 0 || minorRadius <= 0 {
		return nil, fmt.Errorf("shape.NewTorus: radii %g, %g: %w", majorRadius, minorRadius, hemesh.ErrInvalidParameter)
	}
	if majorSegs < 3 || minorSegs < 3 {
		return nil, fmt.Errorf("shape.NewTorus: segments %d, %d: %w", majorSegs, minorSegs, hemesh.ErrInvalidParameter)
	}
	tr := &Torus{}
	tr.Defaults()
	tr.Radius = majorRadius
	tr.TubeRadius = minorRadius
	tr.RadialSegs = majorSegs
	tr.TubeSegs = minorSegs
	return trimesh.FromSource("Torus", tr), nil
}

// NewIcosphere generates an icosphere of the given radius with the
// given number of subdivision passes.
func NewIcosphere(radius float32, subdivisions int) (*trimesh.Mesh, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("shape.NewIcosphere: radius %g: %w", radius, hemesh.ErrInvalidParameter)
	}
	if subdivisions < 0 || subdivisions > maxIcosphereSubdivisions {
		return nil, fmt.Errorf("shape.NewIcosphere: %d subdivisions: %w", subdivisions, hemesh.ErrInvalidParameter)
	}
	ic := &Icosphere{}
	ic.Defaults()
	ic.Radius = radius
	ic.Subdivisions = subdivisions
	return trimesh.FromSource("Icosphere", ic), nil
}

// NewGrid generates a square reference grid as a line-list mesh.
func NewGrid(size float32, divisions int) (*trimesh.Mesh, error) {
	if size <= 0 {
		return nil, fmt.Errorf("shape.NewGrid: size %g: %w", size, hemesh.ErrInvalidParameter)
	}
	if divisions < 1 {
		return nil, fmt.Errorf("shape.NewGrid: %d divisions: %w", divisions, hemesh.ErrInvalidParameter)
	}
	gr := &Grid{}
	gr.Defaults()
	gr.Size = size
	gr.Divisions = divisions
	ms := trimesh.FromSource("Grid", gr)
	ms.Lines = true
	return ms, nil
}
