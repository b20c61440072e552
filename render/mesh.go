package render

import (
	"github.com/zomeworks/zome"
	"github.com/zomeworks/zome/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Triangles fan-triangulates every exported solid of the structure: all
// beams plus all visible connectors.
func Triangles(s *zome.Structure) []Triangle3 {
	var tris []Triangle3
	for _, b := range s.Beams {
		tris = appendFanned(tris, b.ObjVertices, b.ObjFaces)
	}
	for _, c := range s.Connectors {
		if c.Hidden {
			continue
		}
		tris = appendFanned(tris, c.ObjVertices, c.ObjFaces)
	}
	return tris
}

// NewStructureRenderer returns a Renderer streaming the structure's
// triangulation.
func NewStructureRenderer(s *zome.Structure) Renderer {
	return &sliceRenderer{tris: Triangles(s)}
}

// Bounds returns the axis-aligned bounding box of every exported solid.
func Bounds(s *zome.Structure) (min, max r3.Vec) {
	var pts d3.Set
	for _, b := range s.Beams {
		pts = append(pts, b.ObjVertices...)
	}
	for _, c := range s.Connectors {
		if c.Hidden {
			continue
		}
		pts = append(pts, c.ObjVertices...)
	}
	if len(pts) == 0 {
		return r3.Vec{}, r3.Vec{}
	}
	return pts.Min(), pts.Max()
}

func appendFanned(dst []Triangle3, verts []r3.Vec, faces [][]int) []Triangle3 {
	for _, f := range faces {
		for i := 1; i+1 < len(f); i++ {
			dst = append(dst, Triangle3{verts[f[0]], verts[f[i]], verts[f[i+1]]})
		}
	}
	return dst
}
