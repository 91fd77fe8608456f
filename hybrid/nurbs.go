// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hybrid

import (
	"fmt"

	"cogentcore.org/core/math32"
	"github.com/The-No-Hands-company/RudeBase3D-sub002/hemesh"
)

// NURBSSurface is a NURBS surface patch: degrees, knot vectors and a
// control net in homogeneous coordinates (weight in W). It is a
// representation slot with structural validation only; evaluation and
// tessellation are not part of this engine.
type NURBSSurface struct {

	// polynomial degree in each parametric direction
	DegreeU, DegreeV int

	// knot vectors; length must be the control count plus degree plus 1
	KnotsU, KnotsV []float32

	// control net, indexed [u][v], weights in W
	Control [][]math32.Vector4
}

func (ns *NURBSSurface) Representation() Representation { return NURBS }

func (ns *NURBSSurface) SizeBytes() int64 {
	n := int64(len(ns.KnotsU)+len(ns.KnotsV)) * 4
	for _, row := range ns.Control {
		n += int64(len(row)) * 16
	}
	return n
}

// Validate checks the standard NURBS consistency conditions: positive
// degrees, a rectangular control net large enough for the degrees,
// knot vector lengths, non-decreasing knots and positive weights.
func (ns *NURBSSurface) Validate() error {
	fail := func(format string, args ...any) error {
		args = append(args, hemesh.ErrInvalidParameter)
		return fmt.Errorf("hybrid.NURBSSurface: "+format+": %w", args...)
	}
	if ns.DegreeU < 1 || ns.DegreeV < 1 {
		return fail("degrees %d x %d", ns.DegreeU, ns.DegreeV)
	}
	nu := len(ns.Control)
	if nu == 0 {
		return fail("empty control net")
	}
	nv := len(ns.Control[0])
	for i, row := range ns.Control {
		if len(row) != nv {
			return fail("ragged control net: row %d has %d points, want %d", i, len(row), nv)
		}
	}
	if nu <= ns.DegreeU || nv <= ns.DegreeV {
		return fail("control net %d x %d too small for degrees %d x %d", nu, nv, ns.DegreeU, ns.DegreeV)
	}
	if len(ns.KnotsU) != nu+ns.DegreeU+1 {
		return fail("%d u knots, want %d", len(ns.KnotsU), nu+ns.DegreeU+1)
	}
	if len(ns.KnotsV) != nv+ns.DegreeV+1 {
		return fail("%d v knots, want %d", len(ns.KnotsV), nv+ns.DegreeV+1)
	}
	for i := 1; i < len(ns.KnotsU); i++ {
		if ns.KnotsU[i] < ns.KnotsU[i-1] {
			return fail("u knots decrease at %d", i)
		}
	}
	for i := 1; i < len(ns.KnotsV); i++ {
		if ns.KnotsV[i] < ns.KnotsV[i-1] {
			return fail("v knots decrease at %d", i)
		}
	}
	for i, row := range ns.Control {
		for j, p := range row {
			if p.W <= 0 {
				return fail("control point (%d,%d) has weight %g", i, j, p.W)
			}
		}
	}
	return nil
}

// ImplicitField is an implicit distance field. It is a registered
// representation tag with no native conversions; the field itself is
// an opaque function.
type ImplicitField struct {

	// Field returns the signed distance at a point.
	Field func(p math32.Vector3) float32
}

func (im *ImplicitField) Representation() Representation { return Implicit }

func (im *ImplicitField) SizeBytes() int64 { return 0 }
