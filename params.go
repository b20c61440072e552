// Package zome turns a handful of global parameters describing a polar
// zonohedron into a buildable timber structure: one cylindrical plug-in
// connector per vertex and one rectangular beam per edge, each beam
// bevel-trimmed so it terminates flush against the tangent plane of its
// endpoint connector.
//
// The package is a pure, synchronous geometry core. Regenerate produces a
// fresh Structure from a Params bundle plus an EditStore snapshot; callers
// must not retain derived objects across regenerations.
package zome

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrInvalidParameter reports a non-finite or out-of-range parameter.
// Regenerate refuses to run and returns an error wrapping this sentinel.
var ErrInvalidParameter = errors.New("zome: invalid parameter")

// StructureParams are the global fabrication dimensions. Millimetre fields
// carry the Mm suffix; all derived geometry is in metres.
type StructureParams struct {
	CylDiameterMm float64 `json:"cylDiameterMm"`
	CylDepthMm    float64 `json:"cylDepthMm"`
	BeamWidthMm   float64 `json:"beamWidthMm"`
	BeamHeightMm  float64 `json:"beamHeightMm"`
}

// DefaultStructure is the fabrication default: 120x150mm connectors and
// 90x45 beams (a planed 2x4).
var DefaultStructure = StructureParams{
	CylDiameterMm: 120,
	CylDepthMm:    150,
	BeamWidthMm:   90,
	BeamHeightMm:  45,
}

// Params is the immutable global parameter bundle of a design.
type Params struct {
	// N is the number of sides of each horizontal ring, at least 3.
	N int
	// DiameterMax is the equator diameter in metres.
	DiameterMax float64
	// ApexAngleDeg controls the axial pitch, in (0, 90) degrees.
	ApexAngleDeg float64
	// CutActive truncates the zonohedron horizontally at CutLevel.
	CutActive bool
	// CutLevel is the ring index of the cut, in [1, N-1] when CutActive.
	CutLevel  int
	Structure StructureParams
}

// NewParams returns a Params with default structure dimensions.
func NewParams(n int, diameterMax, apexAngleDeg float64) Params {
	return Params{
		N:            n,
		DiameterMax:  diameterMax,
		ApexAngleDeg: apexAngleDeg,
		Structure:    DefaultStructure,
	}
}

// Validate reports whether the parameter bundle can generate a structure.
func (p Params) Validate() error {
	if p.N < 3 {
		return fmt.Errorf("%w: N=%d, want >= 3", ErrInvalidParameter, p.N)
	}
	if !isFinite(p.DiameterMax) || p.DiameterMax <= 0 {
		return fmt.Errorf("%w: DiameterMax=%v", ErrInvalidParameter, p.DiameterMax)
	}
	if !isFinite(p.ApexAngleDeg) || p.ApexAngleDeg <= 0 || p.ApexAngleDeg >= 90 {
		return fmt.Errorf("%w: ApexAngleDeg=%v, want in (0, 90)", ErrInvalidParameter, p.ApexAngleDeg)
	}
	if p.CutActive && (p.CutLevel < 1 || p.CutLevel > p.N-1) {
		return fmt.Errorf("%w: CutLevel=%d, want in [1, %d]", ErrInvalidParameter, p.CutLevel, p.N-1)
	}
	for _, dim := range []struct {
		name string
		v    float64
	}{
		{"CylDiameterMm", p.Structure.CylDiameterMm},
		{"CylDepthMm", p.Structure.CylDepthMm},
		{"BeamWidthMm", p.Structure.BeamWidthMm},
		{"BeamHeightMm", p.Structure.BeamHeightMm},
	} {
		if !isFinite(dim.v) || dim.v <= 0 {
			return fmt.Errorf("%w: %s=%v", ErrInvalidParameter, dim.name, dim.v)
		}
	}
	return nil
}

// H1 is the axial distance between successive rings.
func (p Params) H1() float64 {
	return p.DiameterMax / 2 * math.Tan(DtoR(p.ApexAngleDeg)) * math.Sin(pi/float64(p.N))
}

// HTotal is the full axial height of the untruncated zonohedron.
func (p Params) HTotal() float64 { return p.H1() * float64(p.N) }

// FloorDiameter is the diameter of the cut ring, or 0 when not truncated.
func (p Params) FloorDiameter() float64 {
	if !p.CutActive {
		return 0
	}
	return p.DiameterMax * math.Sin(float64(p.CutLevel)*pi/float64(p.N))
}

// startK is the first face row generated. Rows below the cut are never
// materialized.
func (p Params) startK() int {
	if p.CutActive {
		return p.CutLevel
	}
	return 1
}

// cutShift is the number of ring heights subtracted so visible coordinates
// put the cut ring at z=0.
func (p Params) cutShift() int {
	if p.CutActive {
		return p.CutLevel
	}
	return 0
}

// globalCenter is the interior reference point used to orient face normals
// inward, in visible coordinates.
func (p Params) globalCenter() r3.Vec {
	h1 := p.H1()
	z := (float64(p.startK())*h1+p.HTotal())/2 - float64(p.cutShift())*h1
	return r3.Vec{Z: z}
}

// beamProfile returns the beam cross-section in metres for an edge whose
// deepest endpoint sits at the given level, honoring per-level overrides.
func (p Params) beamProfile(level int, st *EditStore) (width, height float64) {
	width = p.Structure.BeamWidthMm / 1000
	height = p.Structure.BeamHeightMm / 1000
	if st == nil {
		return width, height
	}
	if ov, ok := st.BeamOverrides[level]; ok {
		if ov.BeamWidthMm > 0 {
			width = ov.BeamWidthMm / 1000
		}
		if ov.BeamHeightMm > 0 {
			height = ov.BeamHeightMm / 1000
		}
	}
	return width, height
}

// connectorSpec resolves the cylinder radius, depth and inward offset for a
// vertex in metres. Pole connectors share one override when the structure is
// not truncated; intersection connectors key their overrides by face level
// and never couple with poles.
func (p Params) connectorSpec(v *Vertex, st *EditStore) (radius, depth, offset float64) {
	radius = p.Structure.CylDiameterMm / 2000
	depth = p.Structure.CylDepthMm / 1000
	if st == nil {
		return radius, depth, 0
	}
	var ov ConnectorOverride
	var ok bool
	switch v.Kind {
	case VertexIntersection:
		ov, ok = st.IntersectionOverrides[v.K]
	case VertexPole:
		ov, ok = st.ConnectorOverrides[v.K]
		if !ok && !p.CutActive {
			twin := p.N
			if v.K == p.N {
				twin = 0
			}
			ov, ok = st.ConnectorOverrides[twin]
		}
	default:
		ov, ok = st.ConnectorOverrides[v.K]
	}
	if !ok {
		return radius, depth, 0
	}
	if ov.CylDiameterMm > 0 {
		radius = ov.CylDiameterMm / 2000
	}
	if ov.CylDepthMm > 0 {
		depth = ov.CylDepthMm / 1000
	}
	return radius, depth, ov.OffsetMm / 1000
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
