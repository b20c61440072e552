// Package render serializes zome structures to mesh formats (Wavefront OBJ,
// binary STL) and to shaded PNG previews. It consumes the serializable
// solids carried by beams and connectors and never recomputes geometry.
package render

import (
	"io"

	"github.com/zomeworks/zome/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Triangle3 is a triangle in 3D space.
type Triangle3 [3]r3.Vec

// Normal returns the normal vector of the triangle (right-handed winding).
func (t Triangle3) Normal() r3.Vec {
	e1 := r3.Sub(t[1], t[0])
	e2 := r3.Sub(t[2], t[0])
	return r3.Unit(r3.Cross(e1, e2))
}

// Degenerate returns true if the triangle has two nearly identical vertices.
func (t Triangle3) Degenerate(tol float64) bool {
	return d3.EqualWithin(t[0], t[1], tol) ||
		d3.EqualWithin(t[1], t[2], tol) ||
		d3.EqualWithin(t[2], t[0], tol)
}

// Renderer is a source of triangles.
type Renderer interface {
	ReadTriangles(t []Triangle3) (int, error)
}

// RenderAll reads the full contents of a Renderer and returns the slice read.
// It does not return error on io.EOF.
func RenderAll(r Renderer) ([]Triangle3, error) {
	var err error
	var nt int
	result := make([]Triangle3, 0, 1<<12)
	buf := make([]Triangle3, 1024)
	for {
		nt, err = r.ReadTriangles(buf)
		if err != nil {
			break
		}
		result = append(result, buf[:nt]...)
	}
	if err == io.EOF {
		return result, nil
	}
	return result, err
}

// sliceRenderer streams a pre-built triangle slice.
type sliceRenderer struct {
	tris []Triangle3
}

func (r *sliceRenderer) ReadTriangles(dst []Triangle3) (int, error) {
	if len(r.tris) == 0 {
		return 0, io.EOF
	}
	n := copy(dst, r.tris)
	r.tris = r.tris[n:]
	return n, nil
}
