// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ply decodes and encodes ASCII PLY files. Vertex elements
// with x/y/z, optional nx/ny/nz normals and optional s/t (or u/v)
// texture coordinates are supported, plus face elements with a
// vertex_indices list; other elements and properties are skipped.
package ply

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/The-No-Hands-company/RudeBase3D-sub002/meshio"
	"github.com/The-No-Hands-company/RudeBase3D-sub002/trimesh"
)

func init() {
	meshio.Decoders[".ply"] = &Decoder{}
	meshio.Encoders[".ply"] = &Encoder{}
}

// element is one header element declaration: its name, count and
// property names in column order.
type element struct {
	name  string
	count int
	props []string
	// lists[i] reports whether property i is a list
	lists []bool
}

// Decoder parses ASCII PLY.
type Decoder struct{}

func (dec *Decoder) Desc() string {
	return "polygon file format (.ply), ASCII"
}

// Decode parses the header and then the vertex and face elements,
// fan-triangulating faces with more than 3 corners. Returns a single
// object.
func (dec *Decoder) Decode(r io.Reader) ([]meshio.Object, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	fail := func(msg string) error {
		return fmt.Errorf("ply: line %d: %s: %w", line, msg, meshio.ErrIO)
	}
	next := func() ([]string, error) {
		for sc.Scan() {
			line++
			fields := strings.Fields(sc.Text())
			if len(fields) == 0 || fields[0] == "comment" {
				continue
			}
			return fields, nil
		}
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("ply: read: %w: %w", err, meshio.ErrIO)
		}
		return nil, fail("unexpected end of file")
	}

	// header
	fields, err := next()
	if err != nil {
		return nil, err
	}
	if len(fields) != 1 || fields[0] != "ply" {
		return nil, fail("missing ply magic")
	}
	fields, err = next()
	if err != nil {
		return nil, err
	}
	if len(fields) < 2 || fields[0] != "format" || fields[1] != "ascii" {
		return nil, fail("only format ascii is supported")
	}
	var elems []element
	for {
		fields, err = next()
		if err != nil {
			return nil, err
		}
		switch fields[0] {
		case "element":
			if len(fields) < 3 {
				return nil, fail("malformed element line")
			}
			n, cerr := strconv.Atoi(fields[2])
			if cerr != nil || n < 0 {
				return nil, fail("element count " + fields[2])
			}
			elems = append(elems, element{name: fields[1], count: n})
		case "property":
			if len(elems) == 0 || len(fields) < 3 {
				return nil, fail("property before element")
			}
			el := &elems[len(elems)-1]
			isList := fields[1] == "list"
			el.props = append(el.props, fields[len(fields)-1])
			el.lists = append(el.lists, isList)
		case "end_header":
			goto body
		default:
			return nil, fail("unknown header keyword " + fields[0])
		}
	}

body:
	ms := trimesh.NewMesh("ply")
	for _, el := range elems {
		switch el.name {
		case "vertex":
			if err := dec.readVertices(ms, el, next, fail); err != nil {
				return nil, err
			}
		case "face":
			if err := dec.readFaces(ms, el, next, fail); err != nil {
				return nil, err
			}
		default:
			// skip unknown elements line by line
			for range el.count {
				if _, err := next(); err != nil {
					return nil, err
				}
			}
		}
	}
	if ms.NumVertex() == 0 {
		return nil, fmt.Errorf("ply: no vertex element: %w", meshio.ErrIO)
	}
	ms.Changed()
	return []meshio.Object{{Name: ms.Name, Mesh: ms}}, nil
}

func propColumn(el element, names ...string) int {
	for i, p := range el.props {
		for _, nm := range names {
			if p == nm && !el.lists[i] {
				return i
			}
		}
	}
	return -1
}

func (dec *Decoder) readVertices(ms *trimesh.Mesh, el element, next func() ([]string, error), fail func(string) error) error {
	xc := propColumn(el, "x")
	yc := propColumn(el, "y")
	zc := propColumn(el, "z")
	if xc < 0 || yc < 0 || zc < 0 {
		return fail("vertex element without x/y/z properties")
	}
	nxc := propColumn(el, "nx")
	nyc := propColumn(el, "ny")
	nzc := propColumn(el, "nz")
	hasNorm := nxc >= 0 && nyc >= 0 && nzc >= 0
	sc := propColumn(el, "s", "u")
	tc := propColumn(el, "t", "v")
	hasUV := sc >= 0 && tc >= 0

	for range el.count {
		fields, err := next()
		if err != nil {
			return err
		}
		if len(fields) < len(el.props) {
			return fail("short vertex line")
		}
		col := func(c int) (float32, error) {
			v, perr := strconv.ParseFloat(fields[c], 32)
			if perr != nil {
				return 0, fail("vertex value " + fields[c])
			}
			return float32(v), nil
		}
		x, err := col(xc)
		if err != nil {
			return err
		}
		y, err := col(yc)
		if err != nil {
			return err
		}
		z, err := col(zc)
		if err != nil {
			return err
		}
		ms.Vertex = append(ms.Vertex, x, y, z)
		if hasNorm {
			nx, err := col(nxc)
			if err != nil {
				return err
			}
			ny, err := col(nyc)
			if err != nil {
				return err
			}
			nz, err := col(nzc)
			if err != nil {
				return err
			}
			ms.Normal = append(ms.Normal, nx, ny, nz)
		}
		if hasUV {
			s, err := col(sc)
			if err != nil {
				return err
			}
			t, err := col(tc)
			if err != nil {
				return err
			}
			ms.TexCoord = append(ms.TexCoord, s, t)
		}
	}
	return nil
}

func (dec *Decoder) readFaces(ms *trimesh.Mesh, el element, next func() ([]string, error), fail func(string) error) error {
	// the vertex_indices list must be the first property; anything
	// after it is ignored
	if len(el.props) == 0 || !el.lists[0] ||
		(el.props[0] != "vertex_indices" && el.props[0] != "vertex_index") {
		return fail("face element without leading vertex_indices list")
	}
	nv := ms.NumVertex()
	for range el.count {
		fields, err := next()
		if err != nil {
			return err
		}
		n, cerr := strconv.Atoi(fields[0])
		if cerr != nil || n < 3 || len(fields) < 1+n {
			return fail("malformed face line")
		}
		idxs := make([]uint32, n)
		for i := range n {
			v, perr := strconv.Atoi(fields[1+i])
			if perr != nil || v < 0 || v >= nv {
				return fail("face index " + fields[1+i])
			}
			idxs[i] = uint32(v)
		}
		for i := 2; i < n; i++ {
			ms.Index = append(ms.Index, idxs[0], idxs[i-1], idxs[i])
		}
	}
	return nil
}

// Encoder writes ASCII PLY.
type Encoder struct{}

func (enc *Encoder) Desc() string {
	return "polygon file format (.ply), ASCII"
}

// Encode writes all objects merged into a single vertex / face pair of
// elements; PLY has no named object structure.
func (enc *Encoder) Encode(w io.Writer, objs []meshio.Object) error {
	for _, ob := range objs {
		if ob.Mesh == nil || ob.Mesh.Lines {
			return fmt.Errorf("ply: object %q is not a triangle mesh: %w", ob.Name, meshio.ErrIO)
		}
	}
	ms := meshio.MergeObjects("ply", objs)
	nv := ms.NumVertex()
	hasNorm := len(ms.Normal) == nv*3
	hasUV := len(ms.TexCoord) == nv*2

	bw := bufio.NewWriter(w)
	bw.WriteString("ply\nformat ascii 1.0\n")
	fmt.Fprintf(bw, "element vertex %d\n", nv)
	bw.WriteString("property float x\nproperty float y\nproperty float z\n")
	if hasNorm {
		bw.WriteString("property float nx\nproperty float ny\nproperty float nz\n")
	}
	if hasUV {
		bw.WriteString("property float s\nproperty float t\n")
	}
	fmt.Fprintf(bw, "element face %d\n", ms.NumTriangle())
	bw.WriteString("property list uchar int vertex_indices\nend_header\n")

	for i := range nv {
		p := ms.Position(i)
		fmt.Fprintf(bw, "%g %g %g", p.X, p.Y, p.Z)
		if hasNorm {
			n := ms.NormalAt(i)
			fmt.Fprintf(bw, " %g %g %g", n.X, n.Y, n.Z)
		}
		if hasUV {
			tc := ms.TexCoordAt(i)
			fmt.Fprintf(bw, " %g %g", tc.X, tc.Y)
		}
		bw.WriteString("\n")
	}
	for i := range ms.NumTriangle() {
		a, b, c := ms.Triangle(i)
		fmt.Fprintf(bw, "3 %d %d %d\n", a, b, c)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("ply: write: %w: %w", err, meshio.ErrIO)
	}
	return nil
}
