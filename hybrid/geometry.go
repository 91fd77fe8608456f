// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hybrid

import (
	"fmt"
	"time"

	"cogentcore.org/core/base/metadata"
	"cogentcore.org/core/math32"
	"github.com/The-No-Hands-company/RudeBase3D-sub002/hemesh"
	"github.com/The-No-Hands-company/RudeBase3D-sub002/subdiv"
	"github.com/jinzhu/copier"
)

// cacheEntry is one cached derived representation. An invalidated
// entry keeps its value and stamp so statistics stay meaningful, but
// is never returned without reconversion.
type cacheEntry struct {
	value Value
	stamp time.Time
	valid bool
}

// Geometry is one object held in several representations: an
// authoritative primary [Value] plus cached conversions. The primary
// is the only representation that is ever edited; caches are derived
// on demand and invalidated whenever the primary changes.
//
// A Geometry is not safe for concurrent use; a [Manager] serializes
// access to the geometries it owns.
type Geometry struct {

	// Meta holds optional metadata such as the standard Name key.
	Meta metadata.Data

	// Clock stamps cache entries, for age-based cleanup and eviction.
	// Nil means [time.Now].
	Clock func() time.Time

	primary Value
	caches  map[Representation]*cacheEntry
}

// NewGeometry returns a geometry with the given primary
// representation.
func NewGeometry(primary Value) (*Geometry, error) {
	if primary == nil {
		return nil, fmt.Errorf("hybrid.NewGeometry: nil primary: %w", hemesh.ErrInvalidParameter)
	}
	return &Geometry{primary: primary, caches: map[Representation]*cacheEntry{}}, nil
}

func (g *Geometry) now() time.Time {
	if g.Clock != nil {
		return g.Clock()
	}
	return time.Now()
}

// Primary returns the authoritative representation.
func (g *Geometry) Primary() Value {
	return g.primary
}

// UpdatePrimary replaces the primary representation and invalidates
// every cached conversion. The new primary may be in a different
// representation than the old one.
func (g *Geometry) UpdatePrimary(v Value) error {
	if v == nil {
		return fmt.Errorf("hybrid.Geometry.UpdatePrimary: nil value: %w", hemesh.ErrInvalidParameter)
	}
	g.primary = v
	for _, ent := range g.caches {
		ent.valid = false
	}
	return nil
}

// GetAs returns this geometry in the given representation, converting
// from the primary and caching the result when it is not already
// available. force bypasses a valid cache entry and reconverts. The
// primary itself is returned directly and never cached.
func (g *Geometry) GetAs(rep Representation, force bool, opt *ConvOptions) (Value, error) {
	if g.primary == nil {
		return nil, fmt.Errorf("hybrid.Geometry.GetAs: no primary: %w", hemesh.ErrInvalidParameter)
	}
	if rep == g.primary.Representation() {
		return g.primary, nil
	}
	if ent, ok := g.caches[rep]; ok && ent.valid && !force {
		ent.stamp = g.now()
		return ent.value, nil
	}
	v, err := Convert(g.primary, rep, opt)
	if err != nil {
		return nil, err
	}
	g.caches[rep] = &cacheEntry{value: v, stamp: g.now(), valid: true}
	return v, nil
}

// InvalidateCache invalidates the given cached representations, or all
// of them when none are given.
func (g *Geometry) InvalidateCache(reps ...Representation) {
	if len(reps) == 0 {
		for _, ent := range g.caches {
			ent.valid = false
		}
		return
	}
	for _, rep := range reps {
		if ent, ok := g.caches[rep]; ok {
			ent.valid = false
		}
	}
}

// ClearUnusedCaches removes cache entries that are invalid or have not
// been touched within maxAge, returning the number removed.
func (g *Geometry) ClearUnusedCaches(maxAge time.Duration) int {
	cutoff := g.now().Add(-maxAge)
	n := 0
	for rep, ent := range g.caches {
		if !ent.valid || ent.stamp.Before(cutoff) {
			delete(g.caches, rep)
			n++
		}
	}
	return n
}

// Representations returns the representations currently available
// without conversion: the primary plus all valid caches.
func (g *Geometry) Representations() []Representation {
	reps := []Representation{g.primary.Representation()}
	for rep, ent := range g.caches {
		if ent.valid {
			reps = append(reps, rep)
		}
	}
	return reps
}

// CacheSizeBytes returns the approximate footprint of the cached
// representations, excluding the primary.
func (g *Geometry) CacheSizeBytes() int64 {
	var n int64
	for _, ent := range g.caches {
		n += ent.value.SizeBytes()
	}
	return n
}

// SizeBytes returns the approximate total footprint: primary plus
// caches.
func (g *Geometry) SizeBytes() int64 {
	return g.primary.SizeBytes() + g.CacheSizeBytes()
}

// CopyFrom makes this geometry an independent deep copy of the source:
// the primary is cloned and the metadata deep-copied. Cached
// conversions are not carried over.
func (g *Geometry) CopyFrom(src *Geometry) error {
	if src == nil || src.primary == nil {
		return fmt.Errorf("hybrid.Geometry.CopyFrom: nil source: %w", hemesh.ErrInvalidParameter)
	}
	pv, err := cloneValue(src.primary)
	if err != nil {
		return err
	}
	g.primary = pv
	g.caches = map[Representation]*cacheEntry{}
	g.Meta = nil
	if src.Meta != nil {
		if err := copier.CopyWithOption(&g.Meta, &src.Meta, copier.Option{CaseSensitive: true, DeepCopy: true}); err != nil {
			return fmt.Errorf("hybrid.Geometry.CopyFrom: metadata: %w", err)
		}
	}
	return nil
}

// cloneValue deep-copies a value of any built-in representation.
func cloneValue(v Value) (Value, error) {
	switch sv := v.(type) {
	case *MeshValue:
		return &MeshValue{Mesh: sv.Mesh.Clone()}, nil
	case *HalfEdgeValue:
		return &HalfEdgeValue{Mesh: sv.Mesh.Clone()}, nil
	case *SubdivisionValue:
		return &SubdivisionValue{Engine: subdiv.NewEngine(sv.Engine.Base.Clone())}, nil
	case *PointCloud:
		pc := &PointCloud{}
		pc.Points = append(pc.Points, sv.Points...)
		pc.Normals = append(pc.Normals, sv.Normals...)
		pc.Colors = append(pc.Colors, sv.Colors...)
		return pc, nil
	case *VoxelGrid:
		vg := &VoxelGrid{Origin: sv.Origin, VoxelSize: sv.VoxelSize, Dims: sv.Dims}
		vg.Bits = append(vg.Bits, sv.Bits...)
		return vg, nil
	case *NURBSSurface:
		ns := &NURBSSurface{DegreeU: sv.DegreeU, DegreeV: sv.DegreeV}
		ns.KnotsU = append(ns.KnotsU, sv.KnotsU...)
		ns.KnotsV = append(ns.KnotsV, sv.KnotsV...)
		ns.Control = make([][]math32.Vector4, len(sv.Control))
		for i, row := range sv.Control {
			ns.Control[i] = append(ns.Control[i], row...)
		}
		return ns, nil
	case *ImplicitField:
		return &ImplicitField{Field: sv.Field}, nil
	default:
		return nil, fmt.Errorf("hybrid: cannot clone %T: %w", v, ErrUnsupportedConversion)
	}
}
