package zome

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// FaceKind discriminates the visible face shapes.
type FaceKind uint8

const (
	// FaceQuad is a rhombus spanning three consecutive rings.
	FaceQuad FaceKind = iota
	// FaceTri is a triangle on the cut ring of a truncated zonohedron.
	FaceTri
	// FaceCap is the horizontal N-gon closing a truncated zonohedron. It is
	// carried for bookkeeping and normal accumulation only and is never
	// bevel-targeted.
	FaceCap
)

// Face is one visible face of the zonohedron. Vertices are ordered CCW as
// viewed from outside; the topology builder flips Normal once if the
// enumeration order disagrees.
type Face struct {
	Kind FaceKind
	// K, I identify the face row and azimuth sector. For quads this is the
	// (kFace, iFace) pair used by intersection marks and overrides.
	K, I  int
	Verts []LatticeCoord
	Keys  []string
	// Normal is the inward unit normal, filled in by the topology builder.
	Normal r3.Vec
}

// enumerateFaces produces the visible face set for the given parameters:
// quad rhombi above the cut, a triangle row on the cut ring, and the cap
// polygon when truncated.
func enumerateFaces(p Params) []Face {
	n := p.N
	faces := make([]Face, 0, n*(n-p.startK())+1)
	for k := p.startK(); k <= n-1; k++ {
		for i := 0; i < n; i++ {
			var idxL, idxR int
			if k%2 == 1 {
				idxL, idxR = i, (i+1)%n
			} else {
				idxL, idxR = (i-1+n)%n, i
			}
			if p.CutActive && k == p.CutLevel {
				faces = append(faces, newFace(FaceTri, k, i, n,
					LatticeCoord{K: k, I: idxL},
					LatticeCoord{K: k, I: idxR},
					LatticeCoord{K: k + 1, I: i},
				))
				continue
			}
			// Rhombus [bottom, right, top, left].
			faces = append(faces, newFace(FaceQuad, k, i, n,
				LatticeCoord{K: k - 1, I: i},
				LatticeCoord{K: k, I: idxR},
				LatticeCoord{K: k + 1, I: i},
				LatticeCoord{K: k, I: idxL},
			))
		}
	}
	if p.CutActive {
		coords := make([]LatticeCoord, n)
		for i := range coords {
			coords[i] = LatticeCoord{K: p.CutLevel, I: i}
		}
		faces = append(faces, newFace(FaceCap, p.CutLevel, 0, n, coords...))
	}
	return faces
}

func newFace(kind FaceKind, k, i, n int, verts ...LatticeCoord) Face {
	keys := make([]string, len(verts))
	for j, c := range verts {
		keys[j] = VertexKey(c.K, c.I, n)
	}
	return Face{Kind: kind, K: k, I: i, Verts: verts, Keys: keys}
}
