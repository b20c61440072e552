package zome

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// applyExtras inserts the user-added edges into the edge map. Extras whose
// endpoints fall below the cut (or outside the lattice) are silently skipped;
// they stay in the store and rematerialize if the cut moves back down.
func applyExtras(p Params, t *topology, st *EditStore) {
	for _, ex := range st.ExtraBeams {
		if !p.coordVisible(ex.A) || !p.coordVisible(ex.B) {
			continue
		}
		va := t.vertex(p, ex.A)
		vb := t.vertex(p, ex.B)
		if va.Key == vb.Key {
			continue
		}
		t.addEdge(va.Key, vb.Key, ex.Kind)
	}
}

// resolveIntersections inserts one central X vertex per marked rhombus that
// has both diagonals present, replacing the diagonals with four
// half-segments and the host quad with four triangle faces. It returns the
// rewritten face set and the mapping from each replaced diagonal key to its
// two half-segment keys so that deletions of the full diagonal can propagate.
func resolveIntersections(p Params, t *topology, faces []Face, st *EditStore, warns *[]Warning) ([]Face, map[string][2]string) {
	splits := make(map[string][2]string)
	if len(st.IntersectionFaces) == 0 {
		return faces, splits
	}
	quads := make(map[string]*Face, len(faces))
	for fi := range faces {
		if faces[fi].Kind == FaceQuad {
			quads[FaceKey(faces[fi].K, faces[fi].I)] = &faces[fi]
		}
	}
	resolved := make(map[string]bool)
	marks := make([]string, 0, len(st.IntersectionFaces))
	for fk := range st.IntersectionFaces {
		marks = append(marks, fk)
	}
	sort.Strings(marks)
	for _, fk := range marks {
		f := quads[fk]
		if f == nil {
			*warns = append(*warns, Warning{
				Kind:  WarnInconsistentIntersection,
				Where: fk,
				Msg:   "marked rhombus is not visible",
			})
			continue
		}
		bKey, rKey, tKey, lKey := f.Keys[0], f.Keys[1], f.Keys[2], f.Keys[3]
		diagH := EdgeKeyOf(lKey, rKey)
		diagV := EdgeKeyOf(bKey, tKey)
		if t.edges[diagH] == nil || t.edges[diagV] == nil {
			*warns = append(*warns, Warning{
				Kind:  WarnInconsistentIntersection,
				Where: fk,
				Msg:   "marked rhombus is missing a diagonal",
			})
			continue
		}
		pb, pr := t.verts[bKey].Pos, t.verts[rKey].Pos
		pt, pl := t.verts[tKey].Pos, t.verts[lKey].Pos
		// Average of the two diagonal midpoints.
		pos := r3.Scale(0.25, r3.Add(r3.Add(pb, pt), r3.Add(pl, pr)))
		x := &Vertex{
			Key:     XVertexKey(f.K, f.I),
			Kind:    VertexIntersection,
			K:       f.K,
			I:       f.I,
			Pos:     pos,
			Normals: []r3.Vec{f.Normal},
		}
		t.verts[x.Key] = x
		delete(t.edges, diagH)
		delete(t.edges, diagV)
		h1 := t.addEdge(lKey, x.Key, EdgeDiagH)
		h2 := t.addEdge(x.Key, rKey, EdgeDiagH)
		v1 := t.addEdge(bKey, x.Key, EdgeDiagV)
		v2 := t.addEdge(x.Key, tKey, EdgeDiagV)
		splits[diagH] = [2]string{h1.Key, h2.Key}
		splits[diagV] = [2]string{v1.Key, v2.Key}
		resolved[fk] = true
	}
	if len(resolved) == 0 {
		return faces, splits
	}
	// Rewrite each resolved quad as four [corner, nextCorner, X] triangles.
	// Derived triangles carry keys only; their corners are already
	// materialized.
	out := make([]Face, 0, len(faces)+3*len(resolved))
	for _, f := range faces {
		if f.Kind != FaceQuad || !resolved[FaceKey(f.K, f.I)] {
			out = append(out, f)
			continue
		}
		xKey := XVertexKey(f.K, f.I)
		for j := range f.Keys {
			out = append(out, Face{
				Kind:   FaceTri,
				K:      f.K,
				I:      f.I,
				Keys:   []string{f.Keys[j], f.Keys[(j+1)%len(f.Keys)], xKey},
				Normal: f.Normal,
			})
		}
	}
	return out, splits
}

// applyDeletions removes deleted edges from the edge map. Deleting a
// diagonal that was split propagates to both half-segments.
func applyDeletions(t *topology, st *EditStore, splits map[string][2]string) {
	for key := range st.DeletedEdges {
		delete(t.edges, key)
		if subs, ok := splits[key]; ok {
			delete(t.edges, subs[0])
			delete(t.edges, subs[1])
		}
	}
}
