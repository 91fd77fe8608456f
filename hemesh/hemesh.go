// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hemesh implements a half-edge mesh: the topological core used
// for surface editing. All elements live in arenas owned by the [Mesh]
// and are referred to by typed index handles with generation counters,
// so there is no pointer ownership cycle between vertices, half-edges,
// edges and faces.
//
// Every edge always has two half-edges, allocated together and linked
// as twins. A half-edge on the open side of the surface has a nil face
// and is threaded with its next / prev pointers into a boundary loop,
// so traversal code never has to special-case missing twins.
//
// Deleted elements are tombstoned and skipped by iteration until
// [Mesh.Compact] reclaims them, which renumbers the arenas and
// invalidates all outstanding handles.
package hemesh

import (
	"sync/atomic"

	"cogentcore.org/core/math32"
)

var nextID atomic.Uint64

// vertexData is the arena record for a vertex.
type vertexData struct {
	pos  math32.Vector3
	norm math32.Vector3
	uv   math32.Vector2
	out  HalfEdge // one outgoing half-edge; boundary one if the vertex is on a boundary
	gen  uint32
	dead bool
}

// halfData is the arena record for a half-edge.
type halfData struct {
	target Vertex   // vertex this half-edge points to
	face   Face     // containing face; nil on the boundary
	next   HalfEdge // next half-edge in the face or boundary cycle
	prev   HalfEdge // previous half-edge in the face or boundary cycle
	twin   HalfEdge // opposite half-edge of the same edge
	edge   Edge     // owning edge
	gen    uint32
	dead   bool
}

// edgeData is the arena record for an edge.
type edgeData struct {
	half HalfEdge // one representative half-edge
	gen  uint32
	dead bool
}

// faceData is the arena record for a face.
type faceData struct {
	half HalfEdge // one half-edge on the face cycle
	norm math32.Vector3
	gen  uint32
	dead bool
}

// Mesh is a half-edge mesh. The zero value is an empty usable mesh.
// A Mesh must be used from a single goroutine at a time; distinct
// meshes are independent.
type Mesh struct {
	verts  []vertexData
	halves []halfData
	edges  []edgeData
	faces  []faceData

	// live element counts (arenas may contain tombstones)
	numVerts  int
	numHalves int
	numEdges  int
	numFaces  int

	// epoch is the generation stamped on new slots; Clear and Compact
	// increment it, invalidating all previously issued handles.
	epoch uint32

	id      uint64
	version uint64
}

// NewMesh returns a new empty mesh.
func NewMesh() *Mesh {
	m := &Mesh{epoch: 1}
	m.id = nextID.Add(1)
	return m
}

func (m *Mesh) init() {
	if m.epoch == 0 {
		m.epoch = 1
	}
}

// ID returns the process-unique identity of this mesh, used by
// converter caches. Assigned lazily for zero-value meshes.
func (m *Mesh) ID() uint64 {
	if m.id == 0 {
		m.id = nextID.Add(1)
	}
	return m.id
}

// Version returns the mutation counter, incremented by every
// structural or geometric mutation.
func (m *Mesh) Version() uint64 {
	return m.version
}

// NumVertices returns the number of live vertices.
func (m *Mesh) NumVertices() int { return m.numVerts }

// NumHalfEdges returns the number of live half-edges.
func (m *Mesh) NumHalfEdges() int { return m.numHalves }

// NumEdges returns the number of live edges.
func (m *Mesh) NumEdges() int { return m.numEdges }

// NumFaces returns the number of live faces.
func (m *Mesh) NumFaces() int { return m.numFaces }

// Clear removes all elements and invalidates all handles.
func (m *Mesh) Clear() {
	m.init()
	m.verts = nil
	m.halves = nil
	m.edges = nil
	m.faces = nil
	m.numVerts, m.numHalves, m.numEdges, m.numFaces = 0, 0, 0, 0
	m.epoch++
	m.version++
}

// validity checks: a handle is alive if its slot exists, is not
// tombstoned, and the generations agree.

func (m *Mesh) validVertex(v Vertex) bool {
	return !v.IsNil() && int(v.index) < len(m.verts) &&
		!m.verts[v.index].dead && m.verts[v.index].gen == v.gen
}

func (m *Mesh) validHalf(h HalfEdge) bool {
	return !h.IsNil() && int(h.index) < len(m.halves) &&
		!m.halves[h.index].dead && m.halves[h.index].gen == h.gen
}

func (m *Mesh) validEdge(e Edge) bool {
	return !e.IsNil() && int(e.index) < len(m.edges) &&
		!m.edges[e.index].dead && m.edges[e.index].gen == e.gen
}

func (m *Mesh) validFace(f Face) bool {
	return !f.IsNil() && int(f.index) < len(m.faces) &&
		!m.faces[f.index].dead && m.faces[f.index].gen == f.gen
}

// Clone returns a deep copy of the mesh with a new identity.
// Handles issued by the original are positionally valid against the
// clone, which is what makes scratch-copy-and-swap transactions work.
func (m *Mesh) Clone() *Mesh {
	nm := &Mesh{
		verts:     append([]vertexData(nil), m.verts...),
		halves:    append([]halfData(nil), m.halves...),
		edges:     append([]edgeData(nil), m.edges...),
		faces:     append([]faceData(nil), m.faces...),
		numVerts:  m.numVerts,
		numHalves: m.numHalves,
		numEdges:  m.numEdges,
		numFaces:  m.numFaces,
		epoch:     m.epoch,
		version:   m.version,
	}
	if nm.epoch == 0 {
		nm.epoch = 1
	}
	nm.id = nextID.Add(1)
	return nm
}

// swap adopts the arenas of the scratch mesh, keeping identity.
// The version still advances so converter caches notice the change.
func (m *Mesh) swap(scratch *Mesh) {
	id := m.ID()
	*m = *scratch
	m.id = id
	m.version++
}

// SizeBytes returns the approximate memory footprint of the arenas,
// used for cache memory accounting.
func (m *Mesh) SizeBytes() int64 {
	const (
		vertexBytes = 9*4 + 8 + 8 // pos+norm+uv, out handle, flags
		halfBytes   = 6*8 + 8
		edgeBytes   = 8 + 8
		faceBytes   = 8 + 3*4 + 8
	)
	return int64(len(m.verts))*vertexBytes + int64(len(m.halves))*halfBytes +
		int64(len(m.edges))*edgeBytes + int64(len(m.faces))*faceBytes
}

// Stats summarizes element counts of a mesh.
type Stats struct {
	Vertices  int
	Edges     int
	Faces     int
	HalfEdges int

	// Euler is V - E + F: 2 for a closed genus-0 manifold.
	Euler int

	// Boundaries is the number of boundary loops.
	Boundaries int
}

// Stats returns element counts, the Euler characteristic, and the
// number of boundary loops.
func (m *Mesh) Stats() Stats {
	return Stats{
		Vertices:   m.numVerts,
		Edges:      m.numEdges,
		Faces:      m.numFaces,
		HalfEdges:  m.numHalves,
		Euler:      m.numVerts - m.numEdges + m.numFaces,
		Boundaries: len(m.BoundaryLoops()),
	}
}

// Compact reclaims tombstoned slots, renumbering all arenas.
// All previously issued handles become stale (their generations no
// longer match); internal references are rewritten to the new slots.
func (m *Mesh) Compact() {
	m.init()
	m.epoch++
	gen := m.epoch

	vmap := make([]int32, len(m.verts))
	hmap := make([]int32, len(m.halves))
	emap := make([]int32, len(m.edges))
	fmap := make([]int32, len(m.faces))

	nv := make([]vertexData, 0, m.numVerts)
	nh := make([]halfData, 0, m.numHalves)
	ne := make([]edgeData, 0, m.numEdges)
	nf := make([]faceData, 0, m.numFaces)

	for i := range m.verts {
		if m.verts[i].dead {
			vmap[i] = -1
			continue
		}
		vmap[i] = int32(len(nv))
		d := m.verts[i]
		d.gen = gen
		nv = append(nv, d)
	}
	for i := range m.halves {
		if m.halves[i].dead {
			hmap[i] = -1
			continue
		}
		hmap[i] = int32(len(nh))
		d := m.halves[i]
		d.gen = gen
		nh = append(nh, d)
	}
	for i := range m.edges {
		if m.edges[i].dead {
			emap[i] = -1
			continue
		}
		emap[i] = int32(len(ne))
		d := m.edges[i]
		d.gen = gen
		ne = append(ne, d)
	}
	for i := range m.faces {
		if m.faces[i].dead {
			fmap[i] = -1
			continue
		}
		fmap[i] = int32(len(nf))
		d := m.faces[i]
		d.gen = gen
		nf = append(nf, d)
	}

	rv := func(v Vertex) Vertex {
		if v.IsNil() || vmap[v.index] < 0 {
			return Vertex{}
		}
		return Vertex{handle{vmap[v.index], gen}}
	}
	rh := func(h HalfEdge) HalfEdge {
		if h.IsNil() || hmap[h.index] < 0 {
			return HalfEdge{}
		}
		return HalfEdge{handle{hmap[h.index], gen}}
	}
	re := func(e Edge) Edge {
		if e.IsNil() || emap[e.index] < 0 {
			return Edge{}
		}
		return Edge{handle{emap[e.index], gen}}
	}
	rf := func(f Face) Face {
		if f.IsNil() || fmap[f.index] < 0 {
			return Face{}
		}
		return Face{handle{fmap[f.index], gen}}
	}

	for i := range nv {
		nv[i].out = rh(nv[i].out)
	}
	for i := range nh {
		nh[i].target = rv(nh[i].target)
		nh[i].face = rf(nh[i].face)
		nh[i].next = rh(nh[i].next)
		nh[i].prev = rh(nh[i].prev)
		nh[i].twin = rh(nh[i].twin)
		nh[i].edge = re(nh[i].edge)
	}
	for i := range ne {
		ne[i].half = rh(ne[i].half)
	}
	for i := range nf {
		nf[i].half = rh(nf[i].half)
	}

	m.verts, m.halves, m.edges, m.faces = nv, nh, ne, nf
	m.version++
}
