package zome

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// beamFaces is the fixed face topology of the 8-vertex beveled prism,
// wound right-handed outward. Index convention: 0..3 are the A-end face
// (-w, +w, +w+t, -w+t), 4..7 the same at B.
var beamFaces = [][]int{
	{0, 1, 2, 3},
	{4, 7, 6, 5},
	{0, 4, 5, 1},
	{1, 5, 6, 2},
	{2, 6, 7, 3},
	{3, 7, 4, 0},
}

// Beam is one rectangular member spanning an edge. Both ends are trimmed
// back to the endpoint connector cylinders and cut by planes parallel to
// each endpoint's directrix and tangent to its cylinder, so the connector
// plug inserts coaxially.
type Beam struct {
	EdgeKey string
	A, B    string
	Kind    EdgeKind
	// Level is max(kA, kB); it selects the beam profile override.
	Level int
	// Width and Height are the cross-section in metres.
	Width, Height float64
	// Length is the trimmed axis length in metres.
	Length float64
	// TrimA, TrimB are the per-end cylinder trim distances.
	TrimA, TrimB float64
	// E, W, T is the right-handed orthonormal local frame: length axis,
	// width (tangent to the outer surface), height (toward the interior).
	E, W, T r3.Vec
	// ObjVertices and ObjFaces carry the serializable solid.
	ObjVertices []r3.Vec
	ObjFaces    [][]int
}

// WidthMm and HeightMm report the profile in millimetres.
func (b *Beam) WidthMm() float64  { return b.Width * 1000 }
func (b *Beam) HeightMm() float64 { return b.Height * 1000 }

// buildBeams materializes one beam per surviving edge, in deterministic
// edge-key order. Beams that cannot be built are skipped with a warning.
func buildBeams(p Params, t *topology, conns map[string]*Connector, st *EditStore, warns *[]Warning) []*Beam {
	beams := make([]*Beam, 0, len(t.edges))
	for _, key := range t.sortedEdgeKeys() {
		e := t.edges[key]
		va, vb := t.verts[e.A], t.verts[e.B]
		if va == nil || vb == nil {
			continue
		}
		level := va.K
		if vb.K > level {
			level = vb.K
		}
		width, height := p.beamProfile(level, st)
		ra, rb := conns[e.A].Radius, conns[e.B].Radius
		b, warn := buildBeam(e, va, vb, ra, rb, width, height)
		if warn != nil {
			*warns = append(*warns, *warn)
		}
		if b != nil {
			b.Level = level
			beams = append(beams, b)
		}
	}
	return beams
}

func buildBeam(e *Edge, va, vb *Vertex, ra, rb, width, height float64) (*Beam, *Warning) {
	d := r3.Sub(vb.Pos, va.Pos)
	length := r3.Norm(d)
	if length < epsilon {
		return nil, &Warning{Kind: WarnDegenerateFrame, Where: e.Key, Msg: "zero length edge"}
	}
	axis := r3.Scale(1/length, d)

	trimA := trimDistance(axis, va.Directrix, ra, length)
	trimB := trimDistance(axis, vb.Directrix, rb, length)
	span := length - trimA - trimB
	long := math.Max(width, height)
	if span < 0.5*long {
		return nil, &Warning{
			Kind:       WarnBeamTooShort,
			Where:      e.Key,
			MeasuredMm: span * 1000,
			RequiredMm: 0.5 * long * 1000,
			Msg:        fmt.Sprintf("%s-%s", e.A, e.B),
		}
	}
	pa := r3.Add(va.Pos, r3.Scale(trimA, axis))
	pb := r3.Sub(vb.Pos, r3.Scale(trimB, axis))

	tdir, ok := frameHeight(axis, va.Directrix, vb.Directrix)
	if !ok {
		return nil, &Warning{Kind: WarnDegenerateFrame, Where: e.Key, Msg: "directrices parallel to edge"}
	}
	wdir := r3.Unit(r3.Cross(axis, tdir))
	tdir = r3.Cross(wdir, axis) // re-derive for orthonormality

	half := r3.Scale(width/2, wdir)
	up := r3.Scale(height, tdir)
	var c [8]r3.Vec
	c[0] = r3.Sub(pa, half)
	c[1] = r3.Add(pa, half)
	c[2] = r3.Add(c[1], up)
	c[3] = r3.Add(c[0], up)
	c[4] = r3.Sub(pb, half)
	c[5] = r3.Add(pb, half)
	c[6] = r3.Add(c[5], up)
	c[7] = r3.Add(c[4], up)

	// Bevel planes, each parallel to the endpoint's directrix and tangent
	// to its cylinder: n·(x - vertex) = R with n ⊥ u.
	na := bevelNormal(axis, va.Directrix, wdir)
	nb := bevelNormal(r3.Scale(-1, axis), vb.Directrix, wdir)
	verts := make([]r3.Vec, 8)
	for i := 0; i < 4; i++ {
		verts[i] = planeCut(c[i], c[i+4], na, va.Pos, ra)
		verts[i+4] = planeCut(c[i+4], c[i], nb, vb.Pos, rb)
	}

	// The two end faces must stay separated along the axis.
	maxA := math.Inf(-1)
	minB := math.Inf(1)
	for i := 0; i < 4; i++ {
		if s := r3.Dot(axis, verts[i]); s > maxA {
			maxA = s
		}
		if s := r3.Dot(axis, verts[i+4]); s < minB {
			minB = s
		}
	}
	if minB-maxA < 0.2*long {
		return nil, &Warning{
			Kind:       WarnBeamTooShort,
			Where:      e.Key,
			MeasuredMm: (minB - maxA) * 1000,
			RequiredMm: 0.2 * long * 1000,
			Msg:        "bevel planes overlap",
		}
	}

	return &Beam{
		EdgeKey:     e.Key,
		A:           e.A,
		B:           e.B,
		Kind:        e.Kind,
		Width:       width,
		Height:      height,
		Length:      span,
		TrimA:       trimA,
		TrimB:       trimB,
		E:           axis,
		W:           wdir,
		T:           tdir,
		ObjVertices: verts,
		ObjFaces:    beamFaces,
	}, nil
}

// trimDistance is how far a beam end retreats from its vertex so the end
// face clears the connector cylinder: R divided by the component of the edge
// direction perpendicular to the cylinder axis, clamped against near-parallel
// degeneracy.
func trimDistance(axis, u r3.Vec, radius, length float64) float64 {
	cosa := r3.Dot(axis, u)
	perp := math.Sqrt(math.Max(0, 1-cosa*cosa))
	if perp < 1e-9 {
		return 0.45 * length
	}
	return Clamp(radius/perp, 0, 0.45*length)
}

// frameHeight derives the beam height axis: the directrix sum projected
// perpendicular to the edge, falling back to either single directrix. The
// result points inward (toward the directrix sum).
func frameHeight(axis, ua, ub r3.Vec) (r3.Vec, bool) {
	sum := r3.Add(ua, ub)
	for _, cand := range [3]r3.Vec{sum, ua, ub} {
		t := r3.Sub(cand, r3.Scale(r3.Dot(cand, axis), axis))
		n := r3.Norm(t)
		if n < 1e-9 {
			continue
		}
		t = r3.Scale(1/n, t)
		if r3.Dot(t, sum) < 0 {
			t = r3.Scale(-1, t)
		}
		return t, true
	}
	return r3.Vec{}, false
}

// bevelNormal is the radial component of the outgoing edge direction
// relative to the connector axis u, orthogonalized against u. Falls back to
// the beam width axis when the edge runs along u.
func bevelNormal(outgoing, u, fallback r3.Vec) r3.Vec {
	rad := r3.Sub(outgoing, r3.Scale(r3.Dot(outgoing, u), u))
	if n := r3.Norm(rad); n > 1e-9 {
		rad = r3.Scale(1/n, rad)
		rad = r3.Sub(rad, r3.Scale(r3.Dot(rad, u), u))
		if n2 := r3.Norm(rad); n2 > 1e-9 {
			return r3.Scale(1/n2, rad)
		}
	}
	f := r3.Sub(fallback, r3.Scale(r3.Dot(fallback, u), u))
	return r3.Unit(f)
}

// planeCut intersects segment from→to with the plane n·(x-origin) = dist,
// clamped to the segment.
func planeCut(from, to, n, origin r3.Vec, dist float64) r3.Vec {
	seg := r3.Sub(to, from)
	denom := r3.Dot(n, seg)
	if math.Abs(denom) < 1e-12 {
		return from
	}
	s := (dist - r3.Dot(n, r3.Sub(from, origin))) / denom
	s = Clamp(s, 0, 1)
	return r3.Add(from, r3.Scale(s, seg))
}
