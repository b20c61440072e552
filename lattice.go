package zome

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Canonical vertex identifiers. These are bit-stable across exports and
// shared state; never derive display names from them by mutation.
const (
	KeyPoleLow = "pole_low"
	KeyPoleTop = "pole_top"
)

// VertexKind discriminates the three vertex variants.
type VertexKind uint8

const (
	VertexRegular VertexKind = iota
	VertexPole
	VertexIntersection
)

func (k VertexKind) String() string {
	switch k {
	case VertexPole:
		return "pole"
	case VertexIntersection:
		return "intersection"
	}
	return "regular"
}

// LatticeCoord addresses a lattice vertex by ring level k and azimuth index i.
// Both poles collapse every i onto the axis.
type LatticeCoord struct {
	K int `json:"k"`
	I int `json:"i"`
}

// VertexKey returns the canonical identifier of lattice vertex (k, i) for an
// n-sided zonohedron: "pole_low", "pole_top" or "k{k}_i{i}".
func VertexKey(k, i, n int) string {
	switch k {
	case 0:
		return KeyPoleLow
	case n:
		return KeyPoleTop
	}
	return fmt.Sprintf("k%d_i%d", k, i)
}

// XVertexKey returns the canonical identifier of the intersection vertex
// created inside rhombus (kFace, iFace).
func XVertexKey(kFace, iFace int) string {
	return fmt.Sprintf("X:%d:%d", kFace, iFace)
}

// FaceKey identifies a rhombus by its ring level and azimuth index.
func FaceKey(kFace, iFace int) string {
	return fmt.Sprintf("%d:%d", kFace, iFace)
}

// EdgeKeyOf returns the undirected, deduplicated edge identifier: the two
// vertex keys joined by '|' in lexicographic order.
func EdgeKeyOf(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

// ParseVertexKey classifies a canonical vertex identifier. For regular and
// intersection vertices k and i carry the lattice (or face) coordinates; for
// poles they are not meaningful (the top pole level depends on N).
func ParseVertexKey(key string) (kind VertexKind, k, i int, ok bool) {
	switch {
	case key == KeyPoleLow || key == KeyPoleTop:
		return VertexPole, 0, 0, true
	case strings.HasPrefix(key, "X:"):
		if n, err := fmt.Sscanf(key, "X:%d:%d", &k, &i); err == nil && n == 2 {
			return VertexIntersection, k, i, true
		}
	case strings.HasPrefix(key, "k"):
		if n, err := fmt.Sscanf(key, "k%d_i%d", &k, &i); err == nil && n == 2 {
			return VertexRegular, k, i, true
		}
	}
	return 0, 0, 0, false
}

// ringRadius is the radius of ring k.
func (p Params) ringRadius(k int) float64 {
	return p.DiameterMax / 2 * math.Sin(float64(k)*pi/float64(p.N))
}

// rotOffset staggers even rings by half a sector so that successive rings
// interleave into rhombi.
func rotOffset(k, n int) float64 {
	if k%2 == 0 {
		return pi / float64(n)
	}
	return 0
}

// vertexAt returns the position of lattice vertex (k, i) in visible
// coordinates: the cut ring (or the bottom pole when untruncated) defines
// the z origin of the truncated solid.
func (p Params) vertexAt(k, i int) r3.Vec {
	z := float64(k-p.cutShift()) * p.H1()
	if k == 0 || k == p.N {
		return r3.Vec{Z: z}
	}
	theta := -pi/2 + rotOffset(k, p.N) + float64(i)*2*pi/float64(p.N)
	r := p.ringRadius(k)
	return r3.Vec{X: r * math.Cos(theta), Y: r * math.Sin(theta), Z: z}
}

// coordVisible reports whether (k, i) addresses a materialized vertex under
// the current truncation.
func (p Params) coordVisible(c LatticeCoord) bool {
	lowest := 0
	if p.CutActive {
		lowest = p.CutLevel
	}
	if c.K < lowest || c.K > p.N {
		return false
	}
	return c.I >= 0 && c.I < p.N
}
