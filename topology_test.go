package zome

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestBuildTopologyCounts(t *testing.T) {
	p := NewParams(3, 2, 35)
	topo := buildTopology(p, enumerateFaces(p))
	// Two rings of three plus both poles.
	if len(topo.verts) != 8 {
		t.Errorf("vertices = %d, want 8", len(topo.verts))
	}
	// Euler: V - E + F = 2 with 6 rhombic faces.
	if len(topo.edges) != 12 {
		t.Errorf("edges = %d, want 12", len(topo.edges))
	}
}

func TestBuildTopologyCutCounts(t *testing.T) {
	p := NewParams(11, 6.596, 39.8)
	p.CutActive = true
	p.CutLevel = 4
	topo := buildTopology(p, enumerateFaces(p))
	// Rings 4..10 of eleven plus the top pole.
	if want := 7*11 + 1; len(topo.verts) != want {
		t.Errorf("vertices = %d, want %d", len(topo.verts), want)
	}
	for key, v := range topo.verts {
		if v.Kind == VertexPole && key != KeyPoleTop {
			t.Errorf("unexpected pole %q below the cut", key)
		}
	}
}

func TestFaceNormalsPointInward(t *testing.T) {
	p := NewParams(11, 6.596, 39.8)
	p.CutActive = true
	p.CutLevel = 4
	faces := enumerateFaces(p)
	topo := buildTopology(p, faces)
	center := p.globalCenter()
	for _, f := range faces {
		if r3.Norm(f.Normal) < epsilon {
			t.Errorf("face %d:%d has no normal", f.K, f.I)
			continue
		}
		var centroid r3.Vec
		for _, key := range f.Keys {
			centroid = r3.Add(centroid, topo.verts[key].Pos)
		}
		centroid = r3.Scale(1/float64(len(f.Keys)), centroid)
		if r3.Dot(f.Normal, r3.Sub(centroid, center)) > 0 {
			t.Errorf("face %d:%d normal points outward", f.K, f.I)
		}
	}
}

func TestDirectrices(t *testing.T) {
	p := NewParams(7, 5, 35)
	topo := buildTopology(p, enumerateFaces(p))
	resolveDirectrices(topo)
	for key, v := range topo.verts {
		if n := r3.Norm(v.Directrix); !EqualFloat64(n, 1, 1e-9) {
			t.Errorf("directrix of %s has norm %v", key, n)
		}
	}
	// Pole axes run along z by symmetry: the bottom pole looks up, the top
	// pole looks down.
	low := topo.verts[KeyPoleLow].Directrix
	if low.Z < 0.999 {
		t.Errorf("bottom pole directrix = %v, want +z", low)
	}
	top := topo.verts[KeyPoleTop].Directrix
	if top.Z > -0.999 {
		t.Errorf("top pole directrix = %v, want -z", top)
	}
}

func TestEdgeOther(t *testing.T) {
	e := &Edge{Key: "a|b", A: "a", B: "b"}
	if e.Other("a") != "b" || e.Other("b") != "a" {
		t.Error("Other does not return the opposite endpoint")
	}
}
