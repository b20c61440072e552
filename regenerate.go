package zome

import (
	"sort"
)

// Structure is the derived, immutable output of one regeneration. Consumers
// must not retain references to it across regenerations; every mutation of
// parameters or edits rebuilds it from scratch.
type Structure struct {
	Params     Params
	Vertices   map[string]*Vertex
	Faces      []Face
	Edges      map[string]*Edge
	Beams      []*Beam      // sorted by edge key
	Connectors []*Connector // sorted by vertex key
	Warnings   []Warning

	connByKey map[string]*Connector
	beamByKey map[string]*Beam
}

// Regenerate rebuilds the full derived structure from the parameter bundle
// and an edit-store snapshot. The edit pipeline runs in a fixed order:
// extras added, intersections resolved, deletions applied, orphans pruned.
// A nil store is treated as empty.
func Regenerate(p Params, st *EditStore) (*Structure, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if st == nil {
		st = NewEditStore()
	}
	var warns []Warning

	faces := enumerateFaces(p)
	topo := buildTopology(p, faces)
	applyExtras(p, topo, st)
	faces, splits := resolveIntersections(p, topo, faces, st, &warns)
	applyDeletions(topo, st, splits)
	resolveDirectrices(topo)

	conns := buildConnectors(p, topo, st)
	beams := buildBeams(p, topo, conns, st, &warns)
	pruneOrphans(conns, beams)

	s := &Structure{
		Params:    p,
		Vertices:  topo.verts,
		Faces:     faces,
		Edges:     topo.edges,
		Beams:     beams,
		Warnings:  warns,
		connByKey: conns,
		beamByKey: make(map[string]*Beam, len(beams)),
	}
	s.Connectors = make([]*Connector, 0, len(conns))
	for _, c := range conns {
		s.Connectors = append(s.Connectors, c)
	}
	sort.Slice(s.Connectors, func(i, j int) bool {
		return s.Connectors[i].Key < s.Connectors[j].Key
	})
	for _, b := range beams {
		s.beamByKey[b.EdgeKey] = b
	}
	return s, nil
}

// pruneOrphans flags connectors with zero incident beams as hidden. Poles
// are always kept visible while present.
func pruneOrphans(conns map[string]*Connector, beams []*Beam) {
	deg := make(map[string]int, len(conns))
	for _, b := range beams {
		deg[b.A]++
		deg[b.B]++
	}
	for _, c := range conns {
		c.Hidden = deg[c.Key] == 0 && c.Kind != VertexPole
	}
}

// Connector returns the connector at a vertex key, or nil.
func (s *Structure) Connector(key string) *Connector { return s.connByKey[key] }

// Beam returns the beam on an edge key, or nil.
func (s *Structure) Beam(edgeKey string) *Beam { return s.beamByKey[edgeKey] }

// incidence returns the number of beams meeting at a vertex key.
func (s *Structure) incidence(key string) int {
	n := 0
	for _, b := range s.Beams {
		if b.A == key || b.B == key {
			n++
		}
	}
	return n
}

// incidentEdges returns the surviving edges at a vertex key in deterministic
// order.
func (s *Structure) incidentEdges(key string) []*Edge {
	var out []*Edge
	for _, e := range s.Edges {
		if e.A == key || e.B == key {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
