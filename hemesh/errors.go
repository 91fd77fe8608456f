// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hemesh

import "errors"

var (
	// ErrInvalidParameter indicates a numeric argument out of range or a
	// stale / foreign handle passed to an operation.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidSelection indicates an empty selection where a non-empty
	// one is required, or a selection of the wrong element kind.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrNonManifold indicates that an operation would produce a
	// non-manifold configuration and refused; the mesh is unchanged.
	ErrNonManifold = errors.New("non-manifold")

	// ErrTopologyViolation indicates that a structural invariant check
	// failed after an edit. The edit is rolled back; this points at an
	// internal bug and is logged with the offending element.
	ErrTopologyViolation = errors.New("topology violation")
)
