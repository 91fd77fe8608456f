// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convert

import (
	"runtime"
	"sync"
	"weak"

	"github.com/The-No-Hands-company/RudeBase3D-sub002/hemesh"
	"github.com/The-No-Hands-company/RudeBase3D-sub002/trimesh"
)

// Cache memoizes conversion results keyed on the identity of the
// source mesh. Entries hold weak pointers in both directions, so the
// cache never keeps a source or an artifact alive: a cached artifact
// is returned only while some other owner still holds it, and entries
// whose source has been collected are removed by a GC cleanup. A hit
// additionally requires the source's version stamp to match the one
// recorded at conversion time.
type Cache struct {
	mu   sync.Mutex
	toHE map[uint64]heEntry
	toRM map[uint64]rmEntry
}

type heEntry struct {
	artifact weak.Pointer[hemesh.Mesh]
	version  uint64
}

type rmEntry struct {
	artifact weak.Pointer[trimesh.Mesh]
	version  uint64
}

// NewCache returns an empty conversion cache.
func NewCache() *Cache {
	return &Cache{
		toHE: make(map[uint64]heEntry),
		toRM: make(map[uint64]rmEntry),
	}
}

// ToHalfEdge is the caching version of [ToHalfEdge]. On a miss the
// conversion runs with the given options; a hit ignores them.
func (c *Cache) ToHalfEdge(rm *trimesh.Mesh, opts *Options) (*hemesh.Mesh, error) {
	if rm == nil {
		return ToHalfEdge(rm, opts)
	}
	id, version := rm.ID(), rm.Version()
	c.mu.Lock()
	ent, ok := c.toHE[id]
	c.mu.Unlock()
	if ok && ent.version == version {
		if hm := ent.artifact.Value(); hm != nil {
			return hm, nil
		}
	}
	hm, err := ToHalfEdge(rm, opts)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.toHE[id] = heEntry{artifact: weak.Make(hm), version: version}
	c.mu.Unlock()
	if !ok {
		runtime.AddCleanup(rm, c.dropHE, id)
	}
	return hm, nil
}

// ToRenderMesh is the caching version of [ToRenderMesh].
func (c *Cache) ToRenderMesh(hm *hemesh.Mesh) *trimesh.Mesh {
	if hm == nil {
		return ToRenderMesh(hm)
	}
	id, version := hm.ID(), hm.Version()
	c.mu.Lock()
	ent, ok := c.toRM[id]
	c.mu.Unlock()
	if ok && ent.version == version {
		if rm := ent.artifact.Value(); rm != nil {
			return rm
		}
	}
	rm := ToRenderMesh(hm)
	c.mu.Lock()
	c.toRM[id] = rmEntry{artifact: weak.Make(rm), version: version}
	c.mu.Unlock()
	if !ok {
		runtime.AddCleanup(hm, c.dropRM, id)
	}
	return rm
}

// Invalidate drops any cached artifacts for the given source mesh ID.
func (c *Cache) Invalidate(id uint64) {
	c.mu.Lock()
	delete(c.toHE, id)
	delete(c.toRM, id)
	c.mu.Unlock()
}

// Len reports the number of live cache entries, for tests and
// statistics.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.toHE) + len(c.toRM)
}

func (c *Cache) dropHE(id uint64) {
	c.mu.Lock()
	delete(c.toHE, id)
	c.mu.Unlock()
}

func (c *Cache) dropRM(id uint64) {
	c.mu.Lock()
	delete(c.toRM, id)
	c.mu.Unlock()
}
