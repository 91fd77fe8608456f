// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hybrid

import (
	"errors"
	"fmt"

	"github.com/The-No-Hands-company/RudeBase3D-sub002/convert"
	"github.com/The-No-Hands-company/RudeBase3D-sub002/hemesh"
	"github.com/The-No-Hands-company/RudeBase3D-sub002/subdiv"
)

// ErrUnsupportedConversion is returned by [Convert] when no converter
// is registered for a representation pair.
var ErrUnsupportedConversion = errors.New("unsupported representation conversion")

// ConvOptions carries the parameters a conversion may need. A nil
// options value means [ConvDefaults].
type ConvOptions struct {

	// Cache memoizes mesh / half-edge conversions when non-nil.
	Cache *convert.Cache

	// VoxelSize is the cell size for voxelizing conversions.
	VoxelSize float32

	// SubdivisionLevel is the level built and tessellated by
	// subdivision conversions.
	SubdivisionLevel int
}

// ConvDefaults returns the default conversion options.
func ConvDefaults() *ConvOptions {
	return &ConvOptions{VoxelSize: 0.1, SubdivisionLevel: 1}
}

// ConvertFunc converts a source value into another representation.
type ConvertFunc func(src Value, opt *ConvOptions) (Value, error)

var converters = map[[2]Representation]ConvertFunc{}

// RegisterConverter registers a conversion from one representation to
// another, replacing any existing registration for the pair.
func RegisterConverter(from, to Representation, fn ConvertFunc) {
	converters[[2]Representation{from, to}] = fn
}

// Convert converts a value to the given representation, returning the
// value itself when it is already there. Pairs with no registered
// converter return [ErrUnsupportedConversion].
func Convert(src Value, to Representation, opt *ConvOptions) (Value, error) {
	if src == nil {
		return nil, fmt.Errorf("hybrid.Convert: nil source: %w", ErrUnsupportedConversion)
	}
	from := src.Representation()
	if from == to {
		return src, nil
	}
	fn, ok := converters[[2]Representation{from, to}]
	if !ok {
		return nil, fmt.Errorf("hybrid.Convert: %s to %s: %w", from, to, ErrUnsupportedConversion)
	}
	if opt == nil {
		opt = ConvDefaults()
	}
	return fn(src, opt)
}

func badSource(src Value, to Representation) error {
	return fmt.Errorf("hybrid.Convert: %T tagged %s to %s: %w",
		src, src.Representation(), to, ErrUnsupportedConversion)
}

// via converts through an intermediate representation.
func via(mid, to Representation) ConvertFunc {
	return func(src Value, opt *ConvOptions) (Value, error) {
		m, err := Convert(src, mid, opt)
		if err != nil {
			return nil, err
		}
		return Convert(m, to, opt)
	}
}

func init() {
	RegisterConverter(FaceVertex, HalfEdge, func(src Value, opt *ConvOptions) (Value, error) {
		mv, ok := src.(*MeshValue)
		if !ok {
			return nil, badSource(src, HalfEdge)
		}
		var hm *hemesh.Mesh
		var err error
		if opt.Cache != nil {
			hm, err = opt.Cache.ToHalfEdge(mv.Mesh, nil)
		} else {
			hm, err = convert.ToHalfEdge(mv.Mesh, nil)
		}
		if err != nil {
			return nil, err
		}
		return &HalfEdgeValue{Mesh: hm}, nil
	})

	RegisterConverter(HalfEdge, FaceVertex, func(src Value, opt *ConvOptions) (Value, error) {
		hv, ok := src.(*HalfEdgeValue)
		if !ok {
			return nil, badSource(src, FaceVertex)
		}
		if opt.Cache != nil {
			return &MeshValue{Mesh: opt.Cache.ToRenderMesh(hv.Mesh)}, nil
		}
		return &MeshValue{Mesh: convert.ToRenderMesh(hv.Mesh)}, nil
	})

	RegisterConverter(HalfEdge, Subdivision, func(src Value, opt *ConvOptions) (Value, error) {
		hv, ok := src.(*HalfEdgeValue)
		if !ok {
			return nil, badSource(src, Subdivision)
		}
		en := subdiv.NewEngine(hv.Mesh)
		if err := en.Subdivide(opt.SubdivisionLevel); err != nil {
			return nil, err
		}
		return &SubdivisionValue{Engine: en}, nil
	})

	RegisterConverter(Subdivision, FaceVertex, func(src Value, opt *ConvOptions) (Value, error) {
		sv, ok := src.(*SubdivisionValue)
		if !ok {
			return nil, badSource(src, FaceVertex)
		}
		if err := sv.Engine.Subdivide(opt.SubdivisionLevel); err != nil {
			return nil, err
		}
		rm, err := sv.Engine.RenderMesh(opt.SubdivisionLevel)
		if err != nil {
			return nil, err
		}
		return &MeshValue{Mesh: rm}, nil
	})

	RegisterConverter(FaceVertex, Points, func(src Value, opt *ConvOptions) (Value, error) {
		mv, ok := src.(*MeshValue)
		if !ok {
			return nil, badSource(src, Points)
		}
		return PointCloudFromMesh(mv.Mesh), nil
	})

	RegisterConverter(FaceVertex, Voxel, func(src Value, opt *ConvOptions) (Value, error) {
		mv, ok := src.(*MeshValue)
		if !ok {
			return nil, badSource(src, Voxel)
		}
		vg, err := VoxelizeSurface(mv.Mesh, opt.VoxelSize)
		if err != nil {
			return nil, err
		}
		return vg, nil
	})

	RegisterConverter(HalfEdge, Points, via(FaceVertex, Points))
	RegisterConverter(HalfEdge, Voxel, via(FaceVertex, Voxel))
	RegisterConverter(FaceVertex, Subdivision, via(HalfEdge, Subdivision))
	RegisterConverter(Subdivision, HalfEdge, func(src Value, opt *ConvOptions) (Value, error) {
		sv, ok := src.(*SubdivisionValue)
		if !ok {
			return nil, badSource(src, HalfEdge)
		}
		if err := sv.Engine.Subdivide(opt.SubdivisionLevel); err != nil {
			return nil, err
		}
		hm, err := sv.Engine.Level(opt.SubdivisionLevel)
		if err != nil {
			return nil, err
		}
		return &HalfEdgeValue{Mesh: hm}, nil
	})
	RegisterConverter(Subdivision, Points, via(FaceVertex, Points))
	RegisterConverter(Subdivision, Voxel, via(FaceVertex, Voxel))
}
