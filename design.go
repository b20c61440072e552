package zome

// Design couples the global parameters with the user's persistent edits.
// All edit operations of the core contract live here because edge and
// vertex keys depend on N.
type Design struct {
	Params Params
	Edits  *EditStore
}

// NewDesign returns a design with an empty edit store.
func NewDesign(p Params) *Design {
	return &Design{Params: p, Edits: NewEditStore()}
}

// Regenerate rebuilds the derived structure from scratch.
func (d *Design) Regenerate() (*Structure, error) {
	return Regenerate(d.Params, d.Edits)
}

// AddExtra records a user-added edge between two lattice vertices. Adding an
// edge whose key was previously deleted restores it. Duplicate extras are
// ignored.
func (d *Design) AddExtra(a, b LatticeCoord, kind EdgeKind) {
	ka := VertexKey(a.K, a.I, d.Params.N)
	kb := VertexKey(b.K, b.I, d.Params.N)
	if ka == kb {
		return
	}
	key := EdgeKeyOf(ka, kb)
	delete(d.Edits.DeletedEdges, key)
	for _, ex := range d.Edits.ExtraBeams {
		exKey := EdgeKeyOf(
			VertexKey(ex.A.K, ex.A.I, d.Params.N),
			VertexKey(ex.B.K, ex.B.I, d.Params.N),
		)
		if exKey == key {
			return
		}
	}
	d.Edits.ExtraBeams = append(d.Edits.ExtraBeams, ExtraBeam{A: a, B: b, Kind: kind})
}

// DeleteEdge marks an edge key deleted. Deleting is idempotent; deleting a
// diagonal that was split by an intersection connector also removes its two
// half-segments at regeneration time.
func (d *Design) DeleteEdge(key string) {
	d.Edits.DeletedEdges[key] = true
}

// MarkIntersection flags rhombus (kFace, iFace) so that, when both of its
// diagonals exist, regeneration inserts the central X connector. The mark is
// an explicit user gesture; it is never inferred.
func (d *Design) MarkIntersection(kFace, iFace int) {
	d.Edits.IntersectionFaces[FaceKey(kFace, iFace)] = true
}

// SetConnectorOverride replaces the connector dimensions at ring level k.
func (d *Design) SetConnectorOverride(k int, ov ConnectorOverride) {
	d.Edits.ConnectorOverrides[k] = ov
}

// SetIntersectionOverride replaces the connector dimensions of intersection
// connectors hosted by rhombi at level kFace.
func (d *Design) SetIntersectionOverride(kFace int, ov ConnectorOverride) {
	d.Edits.IntersectionOverrides[kFace] = ov
}

// SetBeamOverride replaces the beam profile for edges whose deepest endpoint
// is at level k.
func (d *Design) SetBeamOverride(k int, ov BeamOverride) {
	d.Edits.BeamOverrides[k] = ov
}

// ClearExtras removes all user-added edges and intersection marks, leaving
// deletions and overrides untouched. The next regeneration is then identical
// to the parametric build modulo those.
func (d *Design) ClearExtras() {
	d.Edits.ExtraBeams = nil
	d.Edits.IntersectionFaces = make(map[string]bool)
}
