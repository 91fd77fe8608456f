// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package meshio reads and writes triangle meshes in common
// interchange formats. Format support lives in subpackages (obj, stl,
// ply) that register themselves by file extension; importing a
// subpackage enables its formats.
package meshio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/The-No-Hands-company/RudeBase3D-sub002/trimesh"
)

// ErrIO is wrapped by all decode and encode failures, including
// malformed input.
var ErrIO = errors.New("mesh I/O failed")

// ImportOptions controls the post-processing applied to every decoded
// mesh.
type ImportOptions struct {

	// MergeVertices welds coincident vertices after decoding, turning
	// triangle soup into a connected surface.
	MergeVertices bool

	// Tolerance is the welding distance for MergeVertices.
	Tolerance float32

	// GenerateNormals computes smooth vertex normals when the file
	// carries none.
	GenerateNormals bool

	// GenerateTexCoords synthesizes planar texture coordinates from
	// the bounding box when the file carries none.
	GenerateTexCoords bool

	// FlipWinding reverses triangle orientation, for files authored
	// with clockwise front faces.
	FlipWinding bool
}

// Defaults returns the default import options: weld with a small
// tolerance and fill in missing normals.
func Defaults() *ImportOptions {
	return &ImportOptions{MergeVertices: true, Tolerance: 1.0e-5, GenerateNormals: true}
}

// Object is one named mesh from a file. Formats without object names
// produce a single Object named after the format or the file.
type Object struct {
	Name string
	Mesh *trimesh.Mesh
}

// Decoder parses one mesh file format.
type Decoder interface {

	// Desc returns the description of this decoder.
	Desc() string

	// Decode reads the stream and returns the objects it contains,
	// without any post-processing.
	Decode(r io.Reader) ([]Object, error)
}

// Encoder writes one mesh file format.
type Encoder interface {

	// Desc returns the description of this encoder.
	Desc() string

	// Encode writes the objects to the stream.
	Encode(w io.Writer, objs []Object) error
}

// Decoders is the master list of decoders, indexed by the primary
// extension including the dot, e.g. ".obj".
var Decoders = map[string]Decoder{}

// Encoders is the master list of encoders, indexed the same way.
var Encoders = map[string]Encoder{}

// Decode decodes the stream using the decoder registered for the
// extension of the given file name, then applies the import options
// to every object. nil options means [Defaults].
func Decode(fname string, r io.Reader, opts *ImportOptions) ([]Object, error) {
	ext := strings.ToLower(filepath.Ext(fname))
	dec, has := Decoders[ext]
	if !has {
		return nil, fmt.Errorf("meshio.Decode: no decoder for extension %q (file %q): %w", ext, fname, ErrIO)
	}
	objs, err := dec.Decode(r)
	if err != nil {
		return nil, err
	}
	if opts == nil {
		opts = Defaults()
	}
	for i := range objs {
		objs[i].Mesh = applyImportOptions(objs[i].Mesh, opts)
	}
	return objs, nil
}

// DecodeFile opens and decodes the given file. See [Decode].
func DecodeFile(fname string, opts *ImportOptions) ([]Object, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("meshio.DecodeFile: %w: %w", err, ErrIO)
	}
	defer f.Close()
	return Decode(fname, f, opts)
}

// OpenMesh decodes the given file and merges all of its objects into
// a single mesh named after the file.
func OpenMesh(fname string, opts *ImportOptions) (*trimesh.Mesh, error) {
	objs, err := DecodeFile(fname, opts)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(fname), filepath.Ext(fname))
	return MergeObjects(name, objs), nil
}

// Encode encodes the objects using the encoder registered for the
// extension of the given file name.
func Encode(fname string, w io.Writer, objs []Object) error {
	ext := strings.ToLower(filepath.Ext(fname))
	enc, has := Encoders[ext]
	if !has {
		return fmt.Errorf("meshio.Encode: no encoder for extension %q (file %q): %w", ext, fname, ErrIO)
	}
	return enc.Encode(w, objs)
}

// EncodeFile creates the given file and encodes the objects into it.
func EncodeFile(fname string, objs []Object) error {
	f, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("meshio.EncodeFile: %w: %w", err, ErrIO)
	}
	defer f.Close()
	return Encode(fname, f, objs)
}

// SaveMesh encodes a single mesh to the given file.
func SaveMesh(fname string, ms *trimesh.Mesh) error {
	return EncodeFile(fname, []Object{{Name: ms.Name, Mesh: ms}})
}

// MergeObjects concatenates the objects' meshes into one mesh.
// Attribute arrays carried by only some of the objects are zero-filled
// for the others.
func MergeObjects(name string, objs []Object) *trimesh.Mesh {
	out := trimesh.NewMesh(name)
	hasNorm, hasUV := false, false
	for _, ob := range objs {
		hasNorm = hasNorm || len(ob.Mesh.Normal) > 0
		hasUV = hasUV || len(ob.Mesh.TexCoord) > 0
	}
	for _, ob := range objs {
		ms := ob.Mesh
		base := uint32(out.NumVertex())
		out.Vertex = append(out.Vertex, ms.Vertex...)
		if hasNorm {
			out.Normal = append(out.Normal, ms.Normal...)
			for len(out.Normal) < len(out.Vertex) {
				out.Normal = append(out.Normal, 0)
			}
		}
		if hasUV {
			out.TexCoord = append(out.TexCoord, ms.TexCoord...)
			want := len(out.Vertex) / 3 * 2
			for len(out.TexCoord) < want {
				out.TexCoord = append(out.TexCoord, 0)
			}
		}
		for _, ix := range ms.Index {
			out.Index = append(out.Index, base+ix)
		}
	}
	out.Changed()
	return out
}

func applyImportOptions(ms *trimesh.Mesh, opts *ImportOptions) *trimesh.Mesh {
	if opts.FlipWinding {
		ms.FlipWinding()
	}
	if opts.MergeVertices {
		ms = ms.WeldVertices(opts.Tolerance)
	}
	if opts.GenerateNormals && len(ms.Normal) == 0 {
		ms.CalculateNormals()
	}
	if opts.GenerateTexCoords && len(ms.TexCoord) == 0 {
		generatePlanarUVs(ms)
	}
	ms.Changed()
	return ms
}

// generatePlanarUVs fills texture coordinates by projecting positions
// onto the XY plane of the bounding box.
func generatePlanarUVs(ms *trimesh.Mesh) {
	bb := ms.Bounds()
	sz := bb.Size()
	if sz.X == 0 {
		sz.X = 1
	}
	if sz.Y == 0 {
		sz.Y = 1
	}
	nv := ms.NumVertex()
	ms.TexCoord = make([]float32, 0, nv*2)
	for i := range nv {
		p := ms.Position(i)
		ms.TexCoord = append(ms.TexCoord, (p.X-bb.Min.X)/sz.X, (p.Y-bb.Min.Y)/sz.Y)
	}
}
