package zome

import (
	"encoding/json"
	"fmt"
	"sort"
)

// State is the shareable wire format of a design: everything needed to
// reproduce a structure, suitable for a URL query payload or a JSON file.
// Integer-keyed override maps serialize with stringified keys; identifiers
// are bit-stable across exports.
type State struct {
	N                            int                       `json:"N"`
	ADeg                         float64                   `json:"aDeg"`
	Dmax                         float64                   `json:"Dmax"`
	CutActive                    bool                      `json:"cutActive"`
	CutLevel                     int                       `json:"cutLevel"`
	StructureParams              StructureParams           `json:"structureParams"`
	OverridesPerLevel            map[int]ConnectorOverride `json:"overridesPerLevel,omitempty"`
	OverridesPerIntersectionFace map[int]ConnectorOverride `json:"overridesPerIntersectionFace,omitempty"`
	BeamOverridesPerLevel        map[int]BeamOverride      `json:"beamOverridesPerLevel,omitempty"`
	ExtraBeams                   []ExtraBeam               `json:"extraBeams,omitempty"`
	IntersectionFaces            map[string]bool           `json:"intersectionFaces,omitempty"`
	DeletedEdges                 []string                  `json:"deletedEdges,omitempty"`
}

// EncodeState captures a design as wire state. Deleted edge keys are sorted
// so equal designs encode to equal bytes.
func EncodeState(d *Design) State {
	st := d.Edits
	s := State{
		N:               d.Params.N,
		ADeg:            d.Params.ApexAngleDeg,
		Dmax:            d.Params.DiameterMax,
		CutActive:       d.Params.CutActive,
		CutLevel:        d.Params.CutLevel,
		StructureParams: d.Params.Structure,
	}
	if st == nil {
		return s
	}
	if len(st.ConnectorOverrides) > 0 {
		s.OverridesPerLevel = make(map[int]ConnectorOverride, len(st.ConnectorOverrides))
		for k, v := range st.ConnectorOverrides {
			s.OverridesPerLevel[k] = v
		}
	}
	if len(st.IntersectionOverrides) > 0 {
		s.OverridesPerIntersectionFace = make(map[int]ConnectorOverride, len(st.IntersectionOverrides))
		for k, v := range st.IntersectionOverrides {
			s.OverridesPerIntersectionFace[k] = v
		}
	}
	if len(st.BeamOverrides) > 0 {
		s.BeamOverridesPerLevel = make(map[int]BeamOverride, len(st.BeamOverrides))
		for k, v := range st.BeamOverrides {
			s.BeamOverridesPerLevel[k] = v
		}
	}
	if len(st.ExtraBeams) > 0 {
		s.ExtraBeams = append(s.ExtraBeams, st.ExtraBeams...)
	}
	if len(st.IntersectionFaces) > 0 {
		s.IntersectionFaces = make(map[string]bool, len(st.IntersectionFaces))
		for k := range st.IntersectionFaces {
			s.IntersectionFaces[k] = true
		}
	}
	if len(st.DeletedEdges) > 0 {
		s.DeletedEdges = make([]string, 0, len(st.DeletedEdges))
		for k := range st.DeletedEdges {
			s.DeletedEdges = append(s.DeletedEdges, k)
		}
		sort.Strings(s.DeletedEdges)
	}
	return s
}

// Design reconstructs a design from wire state. Parameters are validated so
// a corrupt payload is rejected before any regeneration.
func (s State) Design() (*Design, error) {
	p := Params{
		N:            s.N,
		DiameterMax:  s.Dmax,
		ApexAngleDeg: s.ADeg,
		CutActive:    s.CutActive,
		CutLevel:     s.CutLevel,
		Structure:    s.StructureParams,
	}
	if p.Structure == (StructureParams{}) {
		p.Structure = DefaultStructure
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("decoding state: %w", err)
	}
	d := NewDesign(p)
	for k, v := range s.OverridesPerLevel {
		d.Edits.ConnectorOverrides[k] = v
	}
	for k, v := range s.OverridesPerIntersectionFace {
		d.Edits.IntersectionOverrides[k] = v
	}
	for k, v := range s.BeamOverridesPerLevel {
		d.Edits.BeamOverrides[k] = v
	}
	d.Edits.ExtraBeams = append(d.Edits.ExtraBeams, s.ExtraBeams...)
	for k, set := range s.IntersectionFaces {
		if set {
			d.Edits.IntersectionFaces[k] = true
		}
	}
	for _, k := range s.DeletedEdges {
		d.Edits.DeletedEdges[k] = true
	}
	return d, nil
}

// MarshalState encodes a design to canonical JSON bytes.
func MarshalState(d *Design) ([]byte, error) {
	return json.Marshal(EncodeState(d))
}

// UnmarshalState decodes JSON bytes into a design.
func UnmarshalState(data []byte) (*Design, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding state: %w", err)
	}
	return s.Design()
}
