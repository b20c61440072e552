package zome

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"
)

// cylinderSegments is the tessellation of connector cylinders in exports.
const cylinderSegments = 24

// Connector is the cylindrical plug-in hub placed at a vertex. Its axis is
// the vertex directrix; with zero offset the outer cap passes exactly
// through the vertex.
type Connector struct {
	Key  string
	Kind VertexKind
	K, I int
	// Pos is the vertex position; Center the cylinder center.
	Pos    r3.Vec
	Center r3.Vec
	// Axis is the unit directrix, pointing toward the interior.
	Axis r3.Vec
	// Radius, Depth, Offset in metres.
	Radius, Depth, Offset float64
	// Hidden marks connectors with no incident beams. They remain in the
	// data for state round-trips but are not exported.
	Hidden bool
	// ObjVertices and ObjFaces carry the serializable solid. ObjFaces is
	// shared with the cylinder mesh cache; treat it as read-only.
	ObjVertices []r3.Vec
	ObjFaces    [][]int
}

// RadiusMm reports the connector radius in millimetres.
func (c *Connector) RadiusMm() float64 { return c.Radius * 1000 }

// cylMesh is a canonical cylinder tessellation: axis +z, centered on the
// origin. Faces are wound outward: one cap polygon per end plus the side
// quads.
type cylMesh struct {
	verts []r3.Vec
	faces [][]int
}

type cylKey struct {
	radius, height float64
	segments       int
}

// cylCache shares canonical cylinder meshes between connectors and across
// regenerations. Entries are never discarded with per-regeneration state.
var cylCache = struct {
	sync.Mutex
	m map[cylKey]*cylMesh
}{m: make(map[cylKey]*cylMesh)}

func cylinderMesh(radius, height float64, segments int) *cylMesh {
	key := cylKey{radius: radius, height: height, segments: segments}
	cylCache.Lock()
	defer cylCache.Unlock()
	if m, ok := cylCache.m[key]; ok {
		return m
	}
	verts := make([]r3.Vec, 0, 2*segments)
	for _, z := range [2]float64{-height / 2, height / 2} {
		for s := 0; s < segments; s++ {
			a := tau * float64(s) / float64(segments)
			verts = append(verts, r3.Vec{
				X: radius * math.Cos(a),
				Y: radius * math.Sin(a),
				Z: z,
			})
		}
	}
	faces := make([][]int, 0, segments+2)
	bottom := make([]int, segments)
	top := make([]int, segments)
	for s := 0; s < segments; s++ {
		bottom[s] = segments - 1 - s // reversed: outward -z
		top[s] = segments + s        // outward +z
	}
	faces = append(faces, bottom, top)
	for s := 0; s < segments; s++ {
		s1 := (s + 1) % segments
		faces = append(faces, []int{s, s1, segments + s1, segments + s})
	}
	m := &cylMesh{verts: verts, faces: faces}
	cylCache.m[key] = m
	return m
}

// place instantiates the canonical mesh at a center with the +z axis
// rotated onto u.
func (m *cylMesh) place(center, u r3.Vec) []r3.Vec {
	rot := rotationFromZ(u)
	out := make([]r3.Vec, len(m.verts))
	for i, v := range m.verts {
		out[i] = r3.Add(center, rot.Rotate(v))
	}
	return out
}

// rotationFromZ returns the rotation taking +z onto the unit vector u.
func rotationFromZ(u r3.Vec) r3.Rotation {
	const tol = 1e-12
	z := r3.Vec{Z: 1}
	c := r3.Dot(z, u)
	if c > 1-tol {
		return r3.NewRotation(0, z)
	}
	if c < -1+tol {
		return r3.NewRotation(pi, r3.Vec{X: 1})
	}
	return r3.NewRotation(math.Acos(Clamp(c, -1, 1)), r3.Cross(z, u))
}

// buildConnectors materializes one connector per vertex, honoring per-level
// and per-intersection-face overrides.
func buildConnectors(p Params, t *topology, st *EditStore) map[string]*Connector {
	out := make(map[string]*Connector, len(t.verts))
	for key, v := range t.verts {
		radius, depth, offset := p.connectorSpec(v, st)
		center := r3.Add(v.Pos, r3.Scale(depth/2+offset, v.Directrix))
		mesh := cylinderMesh(radius, depth, cylinderSegments)
		out[key] = &Connector{
			Key:         key,
			Kind:        v.Kind,
			K:           v.K,
			I:           v.I,
			Pos:         v.Pos,
			Center:      center,
			Axis:        v.Directrix,
			Radius:      radius,
			Depth:       depth,
			Offset:      offset,
			ObjVertices: mesh.place(center, v.Directrix),
			ObjFaces:    mesh.faces,
		}
	}
	return out
}
