// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package obj decodes and encodes Wavefront OBJ files. Only geometry
// is handled: material libraries (mtllib / usemtl) and smoothing
// groups (s) are tolerated and skipped.
package obj

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/The-No-Hands-company/RudeBase3D-sub002/meshio"
	"github.com/The-No-Hands-company/RudeBase3D-sub002/trimesh"
)

func init() {
	meshio.Decoders[".obj"] = &Decoder{}
	meshio.Encoders[".obj"] = &Encoder{}
}

const blanks = "\r\n\t "

// noIndex marks a face corner without a uv or normal reference.
const noIndex = -1

// face is one polygonal face: parallel per-corner index lists into the
// file-level vertex / uv / normal arrays.
type face struct {
	verts []int
	uvs   []int
	norms []int
}

// object accumulates the faces of one named o / g block.
type object struct {
	name  string
	faces []face
}

// Decoder parses Wavefront OBJ geometry.
type Decoder struct {
	verts []float32
	uvs   []float32
	norms []float32

	objects []object
	current *object
	line    int
}

func (dec *Decoder) Desc() string {
	return "Wavefront OBJ geometry (.obj)"
}

// Decode parses the stream and returns one object per o / g block,
// with faces fan-triangulated and each corner emitted as its own
// vertex.
func (dec *Decoder) Decode(r io.Reader) ([]meshio.Object, error) {
	*dec = Decoder{}
	bufin := bufio.NewReader(r)
	dec.line = 1
	for {
		line, err := bufin.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("obj: read: %w: %w", err, meshio.ErrIO)
		}
		if perr := dec.parseLine(strings.Trim(line, blanks)); perr != nil {
			return nil, perr
		}
		if err == io.EOF {
			break
		}
		dec.line++
	}
	objs := make([]meshio.Object, 0, len(dec.objects))
	for i := range dec.objects {
		ob := &dec.objects[i]
		if len(ob.faces) == 0 {
			continue
		}
		objs = append(objs, meshio.Object{Name: ob.name, Mesh: dec.buildMesh(ob)})
	}
	if len(objs) == 0 {
		return nil, fmt.Errorf("obj: no faces in file: %w", meshio.ErrIO)
	}
	return objs, nil
}

func (dec *Decoder) formatError(msg string) error {
	return fmt.Errorf("obj: line %d: %s: %w", dec.line, msg, meshio.ErrIO)
}

func (dec *Decoder) parseLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	ltype := fields[0]
	if strings.HasPrefix(ltype, "#") {
		return nil
	}
	switch ltype {
	case "o", "g":
		return dec.parseObject(fields[1:])
	case "v":
		return dec.parseFloats(fields[1:], 3, &dec.verts, "vertex")
	case "vn":
		return dec.parseFloats(fields[1:], 3, &dec.norms, "normal")
	case "vt":
		return dec.parseFloats(fields[1:], 2, &dec.uvs, "texture coordinate")
	case "f":
		return dec.parseFace(fields[1:])
	case "mtllib", "usemtl", "s":
		// materials and smoothing groups are out of scope
	default:
		slog.Debug("obj.Decoder: field not supported", "line", dec.line, "field", ltype)
	}
	return nil
}

func (dec *Decoder) parseObject(fields []string) error {
	if len(fields) < 1 {
		return dec.formatError("object line with no name")
	}
	dec.objects = append(dec.objects, object{name: fields[0]})
	dec.current = &dec.objects[len(dec.objects)-1]
	return nil
}

func (dec *Decoder) parseFloats(fields []string, n int, dst *[]float32, what string) error {
	if len(fields) < n {
		return dec.formatError(fmt.Sprintf("less than %d values in %s line", n, what))
	}
	for _, f := range fields[:n] {
		val, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return dec.formatError(what + " value " + f)
		}
		*dst = append(*dst, float32(val))
	}
	return nil
}

// resolveIndex turns a 1-based OBJ index into a 0-based one. Negative
// values count back from the most recently parsed element.
func (dec *Decoder) resolveIndex(val int64, count int) (int, error) {
	switch {
	case val > 0:
		idx := int(val - 1)
		if idx >= count {
			return 0, dec.formatError(fmt.Sprintf("index %d out of range (%d elements)", val, count))
		}
		return idx, nil
	case val < 0:
		idx := count + int(val)
		if idx < 0 {
			return 0, dec.formatError(fmt.Sprintf("relative index %d out of range (%d elements)", val, count))
		}
		return idx, nil
	default:
		return 0, dec.formatError("index value equal to 0")
	}
}

// parseFace parses a face description line:
// f v1[/vt1][/vn1] v2[/vt2][/vn2] v3[/vt3][/vn3] ...
func (dec *Decoder) parseFace(fields []string) error {
	if dec.current == nil {
		// a face before any o / g line goes into a default object
		dec.parseObject([]string{fmt.Sprintf("unnamed%d", dec.line)})
	}
	if len(fields) < 3 {
		return dec.formatError("face line with less than 3 corners")
	}
	fc := face{
		verts: make([]int, len(fields)),
		uvs:   make([]int, len(fields)),
		norms: make([]int, len(fields)),
	}
	for pos, f := range fields {
		vfields := strings.Split(f, "/")
		val, err := strconv.ParseInt(vfields[0], 10, 32)
		if err != nil {
			return dec.formatError("face vertex index " + vfields[0])
		}
		if fc.verts[pos], err = dec.resolveIndex(val, len(dec.verts)/3); err != nil {
			return err
		}

		fc.uvs[pos] = noIndex
		if len(vfields) > 1 && len(vfields[1]) > 0 {
			val, err := strconv.ParseInt(vfields[1], 10, 32)
			if err != nil {
				return dec.formatError("face uv index " + vfields[1])
			}
			if fc.uvs[pos], err = dec.resolveIndex(val, len(dec.uvs)/2); err != nil {
				return err
			}
		}

		fc.norms[pos] = noIndex
		if len(vfields) > 2 && len(vfields[2]) > 0 {
			val, err := strconv.ParseInt(vfields[2], 10, 32)
			if err != nil {
				return dec.formatError("face normal index " + vfields[2])
			}
			if fc.norms[pos], err = dec.resolveIndex(val, len(dec.norms)/3); err != nil {
				return err
			}
		}
	}
	dec.current.faces = append(dec.current.faces, fc)
	return nil
}

// buildMesh turns one decoded object into a triangle mesh: each face
// corner becomes its own vertex and polygons become triangle fans
// (0, i-1, i). Normal and uv arrays are kept only if at least one
// corner references them.
func (dec *Decoder) buildMesh(ob *object) *trimesh.Mesh {
	ms := trimesh.NewMesh(ob.name)
	hasNorm, hasUV := false, false
	for fi := range ob.faces {
		fc := &ob.faces[fi]
		for pos := range fc.verts {
			if fc.norms[pos] != noIndex {
				hasNorm = true
			}
			if fc.uvs[pos] != noIndex {
				hasUV = true
			}
		}
	}
	corner := func(fc *face, pos int) uint32 {
		vidx := uint32(ms.NumVertex())
		vi := fc.verts[pos] * 3
		ms.Vertex = append(ms.Vertex, dec.verts[vi], dec.verts[vi+1], dec.verts[vi+2])
		if hasNorm {
			var nx, ny, nz float32
			if ni := fc.norms[pos]; ni != noIndex {
				nx, ny, nz = dec.norms[ni*3], dec.norms[ni*3+1], dec.norms[ni*3+2]
			}
			ms.Normal = append(ms.Normal, nx, ny, nz)
		}
		if hasUV {
			var u, v float32
			if ti := fc.uvs[pos]; ti != noIndex {
				u, v = dec.uvs[ti*2], dec.uvs[ti*2+1]
			}
			ms.TexCoord = append(ms.TexCoord, u, v)
		}
		return vidx
	}
	for fi := range ob.faces {
		fc := &ob.faces[fi]
		first := corner(fc, 0)
		prev := corner(fc, 1)
		for pos := 2; pos < len(fc.verts); pos++ {
			cur := corner(fc, pos)
			ms.Index = append(ms.Index, first, prev, cur)
			prev = cur
		}
	}
	ms.Changed()
	return ms
}

// Encoder writes Wavefront OBJ geometry.
type Encoder struct{}

func (enc *Encoder) Desc() string {
	return "Wavefront OBJ geometry (.obj)"
}

// Encode writes the objects as o blocks with shared 1-based v / vt /
// vn numbering across the whole file.
func (enc *Encoder) Encode(w io.Writer, objs []meshio.Object) error {
	bw := bufio.NewWriter(w)
	base := 1
	for _, ob := range objs {
		ms := ob.Mesh
		if ms == nil || ms.Lines {
			return fmt.Errorf("obj: object %q is not a triangle mesh: %w", ob.Name, meshio.ErrIO)
		}
		name := ob.Name
		if name == "" {
			name = "mesh"
		}
		fmt.Fprintf(bw, "o %s\n", name)
		nv := ms.NumVertex()
		hasNorm := len(ms.Normal) == nv*3
		hasUV := len(ms.TexCoord) == nv*2
		for i := range nv {
			p := ms.Position(i)
			fmt.Fprintf(bw, "v %g %g %g\n", p.X, p.Y, p.Z)
		}
		if hasUV {
			for i := range nv {
				tc := ms.TexCoordAt(i)
				fmt.Fprintf(bw, "vt %g %g\n", tc.X, tc.Y)
			}
		}
		if hasNorm {
			for i := range nv {
				n := ms.NormalAt(i)
				fmt.Fprintf(bw, "vn %g %g %g\n", n.X, n.Y, n.Z)
			}
		}
		for i := range ms.NumTriangle() {
			a, b, c := ms.Triangle(i)
			bw.WriteString("f")
			for _, ix := range []uint32{a, b, c} {
				vi := base + int(ix)
				switch {
				case hasUV && hasNorm:
					fmt.Fprintf(bw, " %d/%d/%d", vi, vi, vi)
				case hasUV:
					fmt.Fprintf(bw, " %d/%d", vi, vi)
				case hasNorm:
					fmt.Fprintf(bw, " %d//%d", vi, vi)
				default:
					fmt.Fprintf(bw, " %d", vi)
				}
			}
			bw.WriteString("\n")
		}
		base += nv
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("obj: write: %w: %w", err, meshio.ErrIO)
	}
	return nil
}
