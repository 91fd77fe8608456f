// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stl decodes and encodes STL files, binary and ASCII. STL is
// pure triangle soup: every triangle carries three independent
// vertices, so connected surfaces come from importing with vertex
// merging enabled.
package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/The-No-Hands-company/RudeBase3D-sub002/meshio"
	"github.com/The-No-Hands-company/RudeBase3D-sub002/trimesh"
)

func init() {
	meshio.Decoders[".stl"] = &Decoder{}
	meshio.Encoders[".stl"] = &Encoder{}
}

// binary record: 12 bytes facet normal, 3 x 12 bytes vertices,
// 2 bytes attribute count
const recordSize = 12 + 3*12 + 2

// Decoder parses STL, auto-detecting the binary and ASCII variants.
type Decoder struct{}

func (dec *Decoder) Desc() string {
	return "stereolithography triangle soup (.stl), binary or ASCII"
}

// Decode reads the whole stream and parses it as ASCII when it starts
// with "solid" and contains a facet keyword, as binary otherwise.
// Returns a single object, named from the solid name or header.
func (dec *Decoder) Decode(r io.Reader) ([]meshio.Object, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("stl: read: %w: %w", err, meshio.ErrIO)
	}
	// binary files may also begin with "solid" in their free-form
	// header, so the facet keyword decides
	if bytes.HasPrefix(data, []byte("solid")) && bytes.Contains(data, []byte("facet")) {
		return decodeASCII(data)
	}
	return decodeBinary(data)
}

func decodeBinary(data []byte) ([]meshio.Object, error) {
	if len(data) < 84 {
		return nil, fmt.Errorf("stl: binary file truncated at %d bytes: %w", len(data), meshio.ErrIO)
	}
	name := strings.Trim(string(bytes.TrimRight(data[:80], "\x00")), " \t")
	if name == "" {
		name = "stl"
	}
	n := binary.LittleEndian.Uint32(data[80:84])
	body := data[84:]
	if len(body) < int(n)*recordSize {
		return nil, fmt.Errorf("stl: %d triangles declared, %d bytes of data: %w", n, len(body), meshio.ErrIO)
	}
	ms := trimesh.NewMesh(name)
	for i := range int(n) {
		rec := body[i*recordSize:]
		nx := f32(rec, 0)
		ny := f32(rec, 4)
		nz := f32(rec, 8)
		for k := range 3 {
			off := 12 + k*12
			ms.Index = append(ms.Index, uint32(ms.NumVertex()))
			ms.Vertex = append(ms.Vertex, f32(rec, off), f32(rec, off+4), f32(rec, off+8))
			ms.Normal = append(ms.Normal, nx, ny, nz)
		}
	}
	ms.Changed()
	return []meshio.Object{{Name: name, Mesh: ms}}, nil
}

func f32(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off : off+4]))
}

func decodeASCII(data []byte) ([]meshio.Object, error) {
	ms := trimesh.NewMesh("stl")
	var nx, ny, nz float32
	nverts := 0
	line := 0
	fail := func(msg string) error {
		return fmt.Errorf("stl: line %d: %s: %w", line, msg, meshio.ErrIO)
	}
	parseF32 := func(fields []string) ([3]float32, error) {
		var v [3]float32
		for i, f := range fields[:3] {
			val, err := strconv.ParseFloat(f, 32)
			if err != nil {
				return v, fail("value " + f)
			}
			v[i] = float32(val)
		}
		return v, nil
	}
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				ms.Name = fields[1]
			}
		case "facet":
			if len(fields) < 5 || fields[1] != "normal" {
				return nil, fail("malformed facet line")
			}
			v, err := parseF32(fields[2:])
			if err != nil {
				return nil, err
			}
			nx, ny, nz = v[0], v[1], v[2]
			nverts = 0
		case "vertex":
			if len(fields) < 4 {
				return nil, fail("vertex line with less than 3 values")
			}
			v, err := parseF32(fields[1:])
			if err != nil {
				return nil, err
			}
			if nverts >= 3 {
				return nil, fail("more than 3 vertices in facet")
			}
			ms.Index = append(ms.Index, uint32(ms.NumVertex()))
			ms.Vertex = append(ms.Vertex, v[0], v[1], v[2])
			ms.Normal = append(ms.Normal, nx, ny, nz)
			nverts++
		case "outer", "endloop", "endfacet", "endsolid":
			// structural keywords carry no data
		default:
			return nil, fail("unknown keyword " + fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("stl: read: %w: %w", err, meshio.ErrIO)
	}
	if ms.NumTriangle() == 0 {
		return nil, fmt.Errorf("stl: no triangles in file: %w", meshio.ErrIO)
	}
	ms.Changed()
	return []meshio.Object{{Name: ms.Name, Mesh: ms}}, nil
}

// Encoder writes STL. The registered instance writes the binary
// variant; set ASCII for the text one.
type Encoder struct {

	// ASCII selects the text variant instead of binary.
	ASCII bool
}

func (enc *Encoder) Desc() string {
	return "stereolithography triangle soup (.stl)"
}

// Encode writes all objects as one solid; STL has no object structure.
func (enc *Encoder) Encode(w io.Writer, objs []meshio.Object) error {
	name := "stl"
	if len(objs) > 0 && objs[0].Name != "" {
		name = objs[0].Name
	}
	for _, ob := range objs {
		if ob.Mesh == nil || ob.Mesh.Lines {
			return fmt.Errorf("stl: object %q is not a triangle mesh: %w", ob.Name, meshio.ErrIO)
		}
	}
	if enc.ASCII {
		return enc.encodeASCII(w, name, objs)
	}
	return enc.encodeBinary(w, name, objs)
}

// faceNormal is the geometric normal of one triangle, zero for
// degenerate ones.
func faceNormal(ms *trimesh.Mesh, i int) (float32, float32, float32) {
	a, b, c := ms.Triangle(i)
	pa, pb, pc := ms.Position(int(a)), ms.Position(int(b)), ms.Position(int(c))
	n := pb.Sub(pa).Cross(pc.Sub(pa))
	if l := n.Length(); l > 0 {
		n = n.DivScalar(l)
	}
	return n.X, n.Y, n.Z
}

func (enc *Encoder) encodeBinary(w io.Writer, name string, objs []meshio.Object) error {
	var hdr [80]byte
	copy(hdr[:], name)
	bw := bufio.NewWriter(w)
	bw.Write(hdr[:])
	ntri := 0
	for _, ob := range objs {
		ntri += ob.Mesh.NumTriangle()
	}
	var u32 [4]byte
	binary.LittleEndian.PutUint32(u32[:], uint32(ntri))
	bw.Write(u32[:])

	putF32 := func(v float32) {
		binary.LittleEndian.PutUint32(u32[:], math.Float32bits(v))
		bw.Write(u32[:])
	}
	for _, ob := range objs {
		ms := ob.Mesh
		for i := range ms.NumTriangle() {
			nx, ny, nz := faceNormal(ms, i)
			putF32(nx)
			putF32(ny)
			putF32(nz)
			a, b, c := ms.Triangle(i)
			for _, ix := range []uint32{a, b, c} {
				p := ms.Position(int(ix))
				putF32(p.X)
				putF32(p.Y)
				putF32(p.Z)
			}
			bw.Write([]byte{0, 0})
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("stl: write: %w: %w", err, meshio.ErrIO)
	}
	return nil
}

func (enc *Encoder) encodeASCII(w io.Writer, name string, objs []meshio.Object) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "solid %s\n", name)
	for _, ob := range objs {
		ms := ob.Mesh
		for i := range ms.NumTriangle() {
			nx, ny, nz := faceNormal(ms, i)
			fmt.Fprintf(bw, "  facet normal %g %g %g\n", nx, ny, nz)
			bw.WriteString("    outer loop\n")
			a, b, c := ms.Triangle(i)
			for _, ix := range []uint32{a, b, c} {
				p := ms.Position(int(ix))
				fmt.Fprintf(bw, "      vertex %g %g %g\n", p.X, p.Y, p.Z)
			}
			bw.WriteString("    endloop\n")
			bw.WriteString("  endfacet\n")
		}
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("stl: write: %w: %w", err, meshio.ErrIO)
	}
	return nil
}
