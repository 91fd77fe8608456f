// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hemesh

import "fmt"

// handle is a typed index into one of the mesh arenas, carrying the
// generation of the slot it was issued for. A handle with generation 0
// is nil. Handles from one mesh are meaningless against another, and
// handles issued before a [Mesh.Compact] or [Mesh.Clear] are detected
// as stale by their generation.
type handle struct {
	index int32
	gen   uint32
}

// IsNil returns true for the zero handle.
func (h handle) IsNil() bool {
	return h.gen == 0
}

// Index returns the raw arena index. Only valid while the handle is
// alive in its mesh; mainly useful for debug output and dense per-
// element side tables.
func (h handle) Index() int {
	return int(h.index)
}

// Vertex is a handle to a vertex.
type Vertex struct{ handle }

// HalfEdge is a handle to a half-edge: one directed instance of an edge.
type HalfEdge struct{ handle }

// Edge is a handle to an edge; every edge owns exactly two half-edges.
type Edge struct{ handle }

// Face is a handle to a face: the cycle of half-edges reached by
// repeatedly following next from its representative half-edge.
type Face struct{ handle }

func (v Vertex) String() string {
	if v.IsNil() {
		return "V<nil>"
	}
	return fmt.Sprintf("V%d", v.index)
}

func (h HalfEdge) String() string {
	if h.IsNil() {
		return "H<nil>"
	}
	return fmt.Sprintf("H%d", h.index)
}

func (e Edge) String() string {
	if e.IsNil() {
		return "E<nil>"
	}
	return fmt.Sprintf("E%d", e.index)
}

func (f Face) String() string {
	if f.IsNil() {
		return "F<nil>"
	}
	return fmt.Sprintf("F%d", f.index)
}
