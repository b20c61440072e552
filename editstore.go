package zome

import (
	"encoding/json"
	"fmt"
)

// ConnectorOverride replaces the global connector dimensions for one level
// (or one intersection face). Zero fields keep the global value; OffsetMm
// applies as-is.
type ConnectorOverride struct {
	CylDiameterMm float64 `json:"cylDiameterMm"`
	CylDepthMm    float64 `json:"cylDepthMm"`
	OffsetMm      float64 `json:"offsetMm"`
}

// BeamOverride replaces the global beam profile for one level. Zero fields
// keep the global value.
type BeamOverride struct {
	BeamWidthMm  float64 `json:"beamWidthMm"`
	BeamHeightMm float64 `json:"beamHeightMm"`
}

// ExtraBeam is a user-added edge between two lattice vertices.
type ExtraBeam struct {
	A    LatticeCoord `json:"a"`
	B    LatticeCoord `json:"b"`
	Kind EdgeKind     `json:"kind"`
}

// EditStore persists every user edit across regenerations. It is the single
// source of truth for local changes: regeneration always starts from the
// parametric build and replays the store in a fixed order (extras added,
// intersections resolved, deletions applied, orphans pruned).
type EditStore struct {
	// ConnectorOverrides is keyed by original ring level k.
	ConnectorOverrides map[int]ConnectorOverride
	// IntersectionOverrides is keyed by kFace of the host rhombus.
	IntersectionOverrides map[int]ConnectorOverride
	// BeamOverrides is keyed by max(kA, kB) of the edge endpoints.
	BeamOverrides map[int]BeamOverride
	ExtraBeams    []ExtraBeam
	// IntersectionFaces holds "kFace:iFace" marks set explicitly by the user
	// when creating the second diagonal of a rhombus.
	IntersectionFaces map[string]bool
	// DeletedEdges holds edge keys, including keys of diagonal half-segments.
	DeletedEdges map[string]bool
}

// NewEditStore returns an empty edit store.
func NewEditStore() *EditStore {
	return &EditStore{
		ConnectorOverrides:    make(map[int]ConnectorOverride),
		IntersectionOverrides: make(map[int]ConnectorOverride),
		BeamOverrides:         make(map[int]BeamOverride),
		IntersectionFaces:     make(map[string]bool),
		DeletedEdges:          make(map[string]bool),
	}
}

// Clone returns a deep copy of the store.
func (st *EditStore) Clone() *EditStore {
	c := NewEditStore()
	for k, v := range st.ConnectorOverrides {
		c.ConnectorOverrides[k] = v
	}
	for k, v := range st.IntersectionOverrides {
		c.IntersectionOverrides[k] = v
	}
	for k, v := range st.BeamOverrides {
		c.BeamOverrides[k] = v
	}
	c.ExtraBeams = append(c.ExtraBeams, st.ExtraBeams...)
	for k := range st.IntersectionFaces {
		c.IntersectionFaces[k] = true
	}
	for k := range st.DeletedEdges {
		c.DeletedEdges[k] = true
	}
	return c
}

// MarshalJSON encodes the kind with its canonical wire name.
func (k EdgeKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a canonical kind name.
func (k *EdgeKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for i, name := range edgeKindNames {
		if name == s {
			*k = EdgeKind(i)
			return nil
		}
	}
	return fmt.Errorf("zome: unknown edge kind %q", s)
}
