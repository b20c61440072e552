package zome

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vertex is a materialized structural node. Exactly one connector is placed
// per vertex.
type Vertex struct {
	Key  string
	Kind VertexKind
	// K, I are the lattice coordinates. For intersection vertices they are
	// the (kFace, iFace) coordinates of the host rhombus. Poles carry I=0.
	K, I int
	Pos  r3.Vec
	// Normals accumulates the inward unit normals of every incident face.
	Normals []r3.Vec
	// Directrix is the connector axis: the unit-normalized sum of Normals,
	// falling back to +z when the sum degenerates.
	Directrix r3.Vec
}

// EdgeKind classifies how an edge came to exist.
type EdgeKind uint8

const (
	// EdgeLattice is a face-perimeter edge of the parametric build.
	EdgeLattice EdgeKind = iota
	// EdgeDiagH joins the left and right corners of a rhombus.
	EdgeDiagH
	// EdgeDiagV joins the bottom and top corners of a rhombus.
	EdgeDiagV
	// EdgeExtra is any other user-added edge.
	EdgeExtra
)

var edgeKindNames = [...]string{"edge", "diagH", "diagV", "extra"}

func (k EdgeKind) String() string {
	if int(k) < len(edgeKindNames) {
		return edgeKindNames[k]
	}
	return "edge"
}

// Edge is an undirected, deduplicated structural edge. A < B always holds
// lexicographically, matching Key.
type Edge struct {
	Key  string
	A, B string
	Kind EdgeKind
}

// Other returns the endpoint opposite to the given vertex key.
func (e *Edge) Other(key string) string {
	if e.A == key {
		return e.B
	}
	return e.A
}

// topology is the mutable working state of a regeneration: the vertex and
// edge maps the edit pipeline operates on before beams and connectors are
// materialized.
type topology struct {
	verts map[string]*Vertex
	edges map[string]*Edge
}

func newTopology() *topology {
	return &topology{
		verts: make(map[string]*Vertex),
		edges: make(map[string]*Edge),
	}
}

// vertex returns the vertex at a lattice coordinate, creating it on first
// reference.
func (t *topology) vertex(p Params, c LatticeCoord) *Vertex {
	key := VertexKey(c.K, c.I, p.N)
	if v, ok := t.verts[key]; ok {
		return v
	}
	kind := VertexRegular
	i := c.I
	if c.K == 0 || c.K == p.N {
		kind = VertexPole
		i = 0
	}
	v := &Vertex{Key: key, Kind: kind, K: c.K, I: i, Pos: p.vertexAt(c.K, c.I)}
	t.verts[key] = v
	return v
}

// addEdge inserts an undirected edge if absent and returns it.
func (t *topology) addEdge(a, b string, kind EdgeKind) *Edge {
	key := EdgeKeyOf(a, b)
	if e, ok := t.edges[key]; ok {
		return e
	}
	if a > b {
		a, b = b, a
	}
	e := &Edge{Key: key, A: a, B: b, Kind: kind}
	t.edges[key] = e
	return e
}

// sortedEdgeKeys returns the edge keys in deterministic order.
func (t *topology) sortedEdgeKeys() []string {
	keys := make([]string, 0, len(t.edges))
	for k := range t.edges {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// buildTopology materializes vertices and deduplicated edges from the face
// set, orients each face normal inward against the global center, and
// accumulates the inward normals on every face-incident vertex.
func buildTopology(p Params, faces []Face) *topology {
	t := newTopology()
	center := p.globalCenter()
	for fi := range faces {
		f := &faces[fi]
		verts := make([]*Vertex, len(f.Verts))
		for j, c := range f.Verts {
			verts[j] = t.vertex(p, c)
		}
		// Plane normal from the first three vertices, oriented inward.
		n := r3.Cross(
			r3.Sub(verts[1].Pos, verts[0].Pos),
			r3.Sub(verts[2].Pos, verts[0].Pos),
		)
		if nn := r3.Norm(n); nn > epsilon {
			n = r3.Scale(1/nn, n)
			var centroid r3.Vec
			for _, v := range verts {
				centroid = r3.Add(centroid, v.Pos)
			}
			centroid = r3.Scale(1/float64(len(verts)), centroid)
			if r3.Dot(n, r3.Sub(centroid, center)) > 0 {
				n = r3.Scale(-1, n)
			}
			f.Normal = n
			for _, v := range verts {
				v.Normals = append(v.Normals, n)
			}
		}
		for j := range verts {
			a := verts[j]
			b := verts[(j+1)%len(verts)]
			if a.Key == b.Key {
				continue // degenerate pair at a collapsed pole
			}
			t.addEdge(a.Key, b.Key, EdgeLattice)
		}
	}
	return t
}

// resolveDirectrices reduces each vertex's accumulated normals to the single
// unit connector axis.
func resolveDirectrices(t *topology) {
	for _, v := range t.verts {
		var sum r3.Vec
		for _, n := range v.Normals {
			sum = r3.Add(sum, n)
		}
		if r3.Norm(sum) < 1e-9 {
			v.Directrix = r3.Vec{Z: 1}
			continue
		}
		v.Directrix = r3.Unit(sum)
	}
}
