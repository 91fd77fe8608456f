// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hybrid

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/metadata"
	"cogentcore.org/core/base/ordmap"
	"github.com/The-No-Hands-company/RudeBase3D-sub002/convert"
	"github.com/The-No-Hands-company/RudeBase3D-sub002/hemesh"
	"github.com/The-No-Hands-company/RudeBase3D-sub002/trimesh"
)

// Manager owns a named registry of [Geometry] objects, a shared
// conversion cache, and a memory budget for cached representations.
// All methods are safe for concurrent use.
type Manager struct {

	// Config holds the manager parameters.
	Config Config

	// Clock stamps cache entries, swappable for tests. Nil means
	// [time.Now].
	Clock func() time.Time

	mu    sync.Mutex
	geoms ordmap.Map[string, *Geometry]
	conv  *convert.Cache
}

// NewManager returns a manager with the given config, or the defaults
// when cfg is nil.
func NewManager(cfg *Config) *Manager {
	m := &Manager{conv: convert.NewCache()}
	if cfg != nil {
		m.Config = *cfg
	} else {
		m.Config.Defaults()
	}
	return m
}

// ConvOptions returns the conversion options this manager uses:
// its shared cache plus the configured parameters.
func (m *Manager) ConvOptions() *ConvOptions {
	return &ConvOptions{
		Cache:            m.conv,
		VoxelSize:        m.Config.VoxelSize,
		SubdivisionLevel: m.Config.SubdivisionLevel,
	}
}

// Register adds a geometry under the given name. Names must be
// unique.
func (m *Manager) Register(name string, g *Geometry) error {
	if g == nil || g.Primary() == nil {
		return fmt.Errorf("hybrid.Manager.Register: %q: nil geometry: %w", name, hemesh.ErrInvalidParameter)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.geoms.ValueByKeyTry(name); ok {
		return fmt.Errorf("hybrid.Manager.Register: name %q already registered: %w", name, hemesh.ErrInvalidParameter)
	}
	g.Clock = m.Clock
	g.Meta.Set("Name", name)
	m.geoms.Add(name, g)
	return nil
}

func (m *Manager) create(name string, primary Value) (*Geometry, error) {
	g, err := NewGeometry(primary)
	if err != nil {
		return nil, err
	}
	if err := m.Register(name, g); err != nil {
		return nil, err
	}
	return g, nil
}

// CreateFromMesh registers a geometry whose primary is a triangle
// mesh.
func (m *Manager) CreateFromMesh(name string, ms *trimesh.Mesh) (*Geometry, error) {
	if ms == nil {
		return nil, fmt.Errorf("hybrid.Manager.CreateFromMesh: %q: nil mesh: %w", name, hemesh.ErrInvalidParameter)
	}
	return m.create(name, &MeshValue{Mesh: ms})
}

// CreateFromHalfEdge registers a geometry whose primary is a
// half-edge mesh.
func (m *Manager) CreateFromHalfEdge(name string, hm *hemesh.Mesh) (*Geometry, error) {
	if hm == nil {
		return nil, fmt.Errorf("hybrid.Manager.CreateFromHalfEdge: %q: nil mesh: %w", name, hemesh.ErrInvalidParameter)
	}
	return m.create(name, &HalfEdgeValue{Mesh: hm})
}

// CreateFromPointCloud registers a geometry whose primary is a point
// cloud.
func (m *Manager) CreateFromPointCloud(name string, pc *PointCloud) (*Geometry, error) {
	if pc == nil {
		return nil, fmt.Errorf("hybrid.Manager.CreateFromPointCloud: %q: nil cloud: %w", name, hemesh.ErrInvalidParameter)
	}
	if err := pc.Validate(); err != nil {
		return nil, err
	}
	return m.create(name, pc)
}

// CreateFromNURBS registers a geometry whose primary is a NURBS
// surface.
func (m *Manager) CreateFromNURBS(name string, ns *NURBSSurface) (*Geometry, error) {
	if ns == nil {
		return nil, fmt.Errorf("hybrid.Manager.CreateFromNURBS: %q: nil surface: %w", name, hemesh.ErrInvalidParameter)
	}
	if err := ns.Validate(); err != nil {
		return nil, err
	}
	return m.create(name, ns)
}

// CreateFromSource registers a geometry built from a triangle mesh
// source such as the shape generators.
func (m *Manager) CreateFromSource(name string, src trimesh.Source) (*Geometry, error) {
	if src == nil {
		return nil, fmt.Errorf("hybrid.Manager.CreateFromSource: %q: nil source: %w", name, hemesh.ErrInvalidParameter)
	}
	return m.create(name, &MeshValue{Mesh: trimesh.FromSource(name, src)})
}

// Get returns the geometry registered under the given name.
func (m *Manager) Get(name string) (*Geometry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.geoms.ValueByKeyTry(name)
}

// Remove unregisters the named geometry, reporting whether it was
// present.
func (m *Manager) Remove(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.geoms.ValueByKeyTry(name); !ok {
		return false
	}
	m.geoms.DeleteKey(name)
	return true
}

// Len returns the number of registered geometries.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.geoms.Len()
}

// GetAs returns the named geometry in the given representation,
// converting and caching as needed, then enforces the cache memory
// budget.
func (m *Manager) GetAs(name string, rep Representation, force bool) (Value, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.geoms.ValueByKeyTry(name)
	if !ok {
		return nil, fmt.Errorf("hybrid.Manager.GetAs: no geometry %q: %w", name, hemesh.ErrInvalidParameter)
	}
	v, err := g.GetAs(rep, force, m.ConvOptions())
	if err != nil {
		return nil, err
	}
	m.enforceBudget()
	return v, nil
}

// InvalidateAllCaches invalidates every cached conversion of every
// geometry, e.g. after a global unit change.
func (m *Manager) InvalidateAllCaches() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, kv := range m.geoms.Order {
		kv.Value.InvalidateCache()
	}
}

// CleanupUnusedCaches drops cache entries untouched for longer than
// the configured age, returning the number removed.
func (m *Manager) CleanupUnusedCaches() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Config.MaxCacheAge <= 0 {
		return 0
	}
	n := 0
	for _, kv := range m.geoms.Order {
		n += kv.Value.ClearUnusedCaches(m.Config.MaxCacheAge)
	}
	return n
}

// enforceBudget evicts cache entries, globally oldest first, until
// cached memory fits the configured budget. Primaries are never
// evicted. Callers must hold the mutex.
func (m *Manager) enforceBudget() {
	budget := m.Config.MaxCacheMemory
	if budget <= 0 {
		return
	}
	var total int64
	for _, kv := range m.geoms.Order {
		total += kv.Value.CacheSizeBytes()
	}
	for total > budget {
		var og *Geometry
		var orep Representation
		var oent *cacheEntry
		for _, kv := range m.geoms.Order {
			for rep, ent := range kv.Value.caches {
				if oent == nil || ent.stamp.Before(oent.stamp) {
					og, orep, oent = kv.Value, rep, ent
				}
			}
		}
		if oent == nil {
			return
		}
		total -= oent.value.SizeBytes()
		delete(og.caches, orep)
		slog.Debug("hybrid.Manager: evicted cache entry",
			"geometry", errors.Ignore1(metadata.GetFromData[string](og.Meta, "Name")), "representation", orep.String())
	}
}

// Statistics summarizes the manager's contents.
type Statistics struct {

	// TotalGeometries is the number of registered geometries.
	TotalGeometries int

	// TotalCacheEntries is the number of cached conversions across
	// all geometries.
	TotalCacheEntries int

	// MemoryUsage is the approximate footprint in bytes of all
	// primaries and caches.
	MemoryUsage int64

	// ByRepresentation counts held values, primaries and caches
	// both, per representation.
	ByRepresentation map[Representation]int
}

// Statistics returns a snapshot of the manager's contents.
func (m *Manager) Statistics() Statistics {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := Statistics{ByRepresentation: map[Representation]int{}}
	for _, kv := range m.geoms.Order {
		g := kv.Value
		st.TotalGeometries++
		st.MemoryUsage += g.primary.SizeBytes()
		st.ByRepresentation[g.primary.Representation()]++
		for rep, ent := range g.caches {
			st.TotalCacheEntries++
			st.MemoryUsage += ent.value.SizeBytes()
			st.ByRepresentation[rep]++
		}
	}
	return st
}
