package zome

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func mustRegenerate(t *testing.T, d *Design) *Structure {
	t.Helper()
	s, err := d.Regenerate()
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestRegenerateInvalidParams(t *testing.T) {
	p := NewParams(2, 5, 35)
	if _, err := Regenerate(p, nil); err == nil {
		t.Fatal("invalid params accepted")
	}
}

// assertGeometryEqual compares two structures beam by beam and connector by
// connector, coordinates rounded to 6 decimals.
func assertGeometryEqual(t *testing.T, s1, s2 *Structure) {
	t.Helper()
	round := func(v float64) float64 { return math.Round(v*1e6) / 1e6 }
	same := func(a, b r3.Vec) bool {
		return round(a.X) == round(b.X) && round(a.Y) == round(b.Y) && round(a.Z) == round(b.Z)
	}
	if len(s1.Beams) != len(s2.Beams) {
		t.Fatalf("beam count differs: %d vs %d", len(s1.Beams), len(s2.Beams))
	}
	for i := range s1.Beams {
		a, b := s1.Beams[i], s2.Beams[i]
		if a.EdgeKey != b.EdgeKey {
			t.Fatalf("beam order differs at %d: %s vs %s", i, a.EdgeKey, b.EdgeKey)
		}
		for j := range a.ObjVertices {
			if !same(a.ObjVertices[j], b.ObjVertices[j]) {
				t.Fatalf("beam %s vertex %d differs: %v vs %v",
					a.EdgeKey, j, a.ObjVertices[j], b.ObjVertices[j])
			}
		}
	}
	if len(s1.Connectors) != len(s2.Connectors) {
		t.Fatalf("connector count differs: %d vs %d", len(s1.Connectors), len(s2.Connectors))
	}
	for i := range s1.Connectors {
		a, b := s1.Connectors[i], s2.Connectors[i]
		if a.Key != b.Key {
			t.Fatalf("connector order differs at %d: %s vs %s", i, a.Key, b.Key)
		}
		if a.Hidden != b.Hidden {
			t.Fatalf("connector %s hidden differs: %v vs %v", a.Key, a.Hidden, b.Hidden)
		}
		for j := range a.ObjVertices {
			if !same(a.ObjVertices[j], b.ObjVertices[j]) {
				t.Fatalf("connector %s vertex %d differs: %v vs %v",
					a.Key, j, a.ObjVertices[j], b.ObjVertices[j])
			}
		}
	}
}

func TestRegenerateDeterministic(t *testing.T) {
	p := NewParams(11, 6.596, 39.8)
	p.CutActive = true
	p.CutLevel = 4
	d := NewDesign(p)
	d.AddExtra(LatticeCoord{K: 5, I: 0}, LatticeCoord{K: 5, I: 1}, EdgeDiagH)
	d.SetBeamOverride(5, BeamOverride{BeamWidthMm: 120})

	s1 := mustRegenerate(t, d)
	s2 := mustRegenerate(t, d)
	assertGeometryEqual(t, s1, s2)
}

func TestRegenerateParameterRoundTrip(t *testing.T) {
	p := NewParams(9, 5.5, 42)
	d := NewDesign(p)
	s1 := mustRegenerate(t, d)

	d.Params.ApexAngleDeg = 55
	mustRegenerate(t, d)
	d.Params.ApexAngleDeg = 42
	s2 := mustRegenerate(t, d)

	// Reverting the apex angle restores bit-equal geometry.
	assertGeometryEqual(t, s1, s2)
}

func TestClearExtrasRestoresParametricBuild(t *testing.T) {
	p := NewParams(7, 5, 35)
	pristine := mustRegenerate(t, NewDesign(p))

	d := NewDesign(p)
	d.AddExtra(LatticeCoord{K: 3, I: 0}, LatticeCoord{K: 3, I: 1}, EdgeDiagH)
	d.AddExtra(LatticeCoord{K: 2, I: 0}, LatticeCoord{K: 4, I: 0}, EdgeDiagV)
	d.MarkIntersection(3, 0)
	s := mustRegenerate(t, d)
	if len(s.Beams) == len(pristine.Beams) {
		t.Fatal("edits did not change the geometry")
	}
	if s.Connector(XVertexKey(3, 0)) == nil {
		t.Fatal("intersection connector missing before ClearExtras")
	}

	d.ClearExtras()
	assertGeometryEqual(t, pristine, mustRegenerate(t, d))
}

func TestDeleteEdgeRemovesBeam(t *testing.T) {
	p := NewParams(7, 5, 35)
	d := NewDesign(p)
	s := mustRegenerate(t, d)
	key := s.Beams[0].EdgeKey
	n := len(s.Beams)

	d.DeleteEdge(key)
	d.DeleteEdge(key) // idempotent
	s = mustRegenerate(t, d)
	if len(s.Beams) != n-1 {
		t.Fatalf("beams = %d, want %d", len(s.Beams), n-1)
	}
	if s.Beam(key) != nil {
		t.Error("deleted beam still present")
	}
	if s.Edges[key] != nil {
		t.Error("deleted edge still present")
	}
}

func TestAddExtraRestoresDeleted(t *testing.T) {
	p := NewParams(7, 5, 35)
	d := NewDesign(p)
	a := LatticeCoord{K: 3, I: 0}
	b := LatticeCoord{K: 3, I: 1}
	key := EdgeKeyOf(VertexKey(3, 0, 7), VertexKey(3, 1, 7))

	d.AddExtra(a, b, EdgeDiagH)
	s := mustRegenerate(t, d)
	if s.Beam(key) == nil {
		t.Fatal("extra beam not built")
	}

	d.DeleteEdge(key)
	s = mustRegenerate(t, d)
	if s.Beam(key) != nil {
		t.Fatal("deleted extra still built")
	}

	d.AddExtra(a, b, EdgeDiagH)
	s = mustRegenerate(t, d)
	if s.Beam(key) == nil {
		t.Fatal("re-added extra not restored")
	}
}

func TestOrphanPruning(t *testing.T) {
	p := NewParams(7, 5, 35)
	d := NewDesign(p)
	s := mustRegenerate(t, d)

	// Cut every edge at one equator vertex.
	target := "k3_i0"
	for key, e := range s.Edges {
		if e.A == target || e.B == target {
			d.DeleteEdge(key)
		}
	}
	s = mustRegenerate(t, d)
	c := s.Connector(target)
	if c == nil {
		t.Fatal("orphaned connector removed from data")
	}
	if !c.Hidden {
		t.Error("orphaned connector not hidden")
	}
	// Hidden if and only if no incident beams and not a pole.
	for _, c := range s.Connectors {
		orphan := s.incidence(c.Key) == 0 && c.Kind != VertexPole
		if c.Hidden != orphan {
			t.Errorf("connector %s hidden=%v, incidence=%d kind=%v",
				c.Key, c.Hidden, s.incidence(c.Key), c.Kind)
		}
	}
}

func TestPoleNeverHidden(t *testing.T) {
	p := NewParams(5, 4, 40)
	d := NewDesign(p)
	s := mustRegenerate(t, d)
	for key, e := range s.Edges {
		if e.A == KeyPoleTop || e.B == KeyPoleTop {
			d.DeleteEdge(key)
		}
	}
	s = mustRegenerate(t, d)
	c := s.Connector(KeyPoleTop)
	if c == nil || c.Hidden {
		t.Error("pole connector must stay visible")
	}
}

func TestBeamOverrideByLevel(t *testing.T) {
	p := NewParams(11, 6.596, 39.8)
	p.CutActive = true
	p.CutLevel = 4
	d := NewDesign(p)
	d.SetBeamOverride(5, BeamOverride{BeamWidthMm: 40, BeamHeightMm: 30})
	s := mustRegenerate(t, d)
	seen := false
	for _, b := range s.Beams {
		if b.Level == 5 {
			seen = true
			if b.WidthMm() != 40 || b.HeightMm() != 30 {
				t.Errorf("level 5 beam %s profile %vx%v, want 40x30",
					b.EdgeKey, b.WidthMm(), b.HeightMm())
			}
		} else if b.WidthMm() != 90 || b.HeightMm() != 45 {
			t.Errorf("level %d beam %s profile %vx%v, want 90x45",
				b.Level, b.EdgeKey, b.WidthMm(), b.HeightMm())
		}
	}
	if !seen {
		t.Fatal("no level 5 beams")
	}
}

func TestOversizedConnectorsDropBeams(t *testing.T) {
	p := NewParams(11, 6.596, 39.8)
	d := NewDesign(p)
	s := mustRegenerate(t, d)
	full := len(s.Beams)

	// Comically large connectors leave no beam span.
	d.Params.Structure.CylDiameterMm = 2500
	s = mustRegenerate(t, d)
	if len(s.Beams) >= full {
		t.Fatalf("beams = %d, want fewer than %d", len(s.Beams), full)
	}
	found := false
	for _, w := range s.Warnings {
		if w.Kind == WarnBeamTooShort {
			found = true
			if w.RequiredMm <= 0 {
				t.Errorf("warning without required length: %v", w)
			}
		}
	}
	if !found {
		t.Error("no BEAM_TOO_SHORT warnings for oversized connectors")
	}
}

func TestConnectorPlacement(t *testing.T) {
	p := NewParams(7, 5, 35)
	d := NewDesign(p)
	s := mustRegenerate(t, d)
	for _, c := range s.Connectors {
		// Center sits depth/2 + offset along the axis from the vertex.
		want := r3.Add(c.Pos, r3.Scale(c.Depth/2+c.Offset, c.Axis))
		if r3.Norm(r3.Sub(c.Center, want)) > 1e-12 {
			t.Errorf("connector %s center %v, want %v", c.Key, c.Center, want)
		}
		if len(c.ObjVertices) != 2*cylinderSegments {
			t.Errorf("connector %s has %d mesh vertices", c.Key, len(c.ObjVertices))
		}
		// All mesh vertices lie on the cylinder surface.
		for _, v := range c.ObjVertices {
			along := r3.Dot(r3.Sub(v, c.Center), c.Axis)
			radial := r3.Norm(r3.Sub(r3.Sub(v, c.Center), r3.Scale(along, c.Axis)))
			if !EqualFloat64(radial, c.Radius, 1e-9) {
				t.Errorf("connector %s vertex off surface: r=%v want %v", c.Key, radial, c.Radius)
				break
			}
		}
	}
}

func TestConnectorOverrideOffset(t *testing.T) {
	p := NewParams(7, 5, 35)
	d := NewDesign(p)
	d.SetConnectorOverride(3, ConnectorOverride{CylDiameterMm: 160, OffsetMm: 25})
	s := mustRegenerate(t, d)
	c := s.Connector("k3_i0")
	if c == nil {
		t.Fatal("connector missing")
	}
	if c.RadiusMm() != 80 {
		t.Errorf("radius = %vmm, want 80", c.RadiusMm())
	}
	if c.Offset != 0.025 {
		t.Errorf("offset = %v, want 0.025", c.Offset)
	}
	// Other levels keep the global dimensions.
	if c2 := s.Connector("k4_i0"); c2.RadiusMm() != 60 {
		t.Errorf("level 4 radius = %vmm, want 60", c2.RadiusMm())
	}
}
