package zome

import "fmt"

// WarningKind identifies a non-fatal condition found during regeneration.
type WarningKind string

const (
	// WarnBeamTooShort flags a beam whose beveled length falls below half
	// the larger profile dimension; the beam is skipped.
	WarnBeamTooShort WarningKind = "BEAM_TOO_SHORT"
	// WarnDegenerateFrame flags an edge whose local frame cannot be formed
	// (near-parallel directrices); the beam is skipped.
	WarnDegenerateFrame WarningKind = "DEGENERATE_FRAME"
	// WarnInconsistentIntersection flags an intersection mark whose rhombus
	// is missing a required diagonal; the mark is ignored.
	WarnInconsistentIntersection WarningKind = "INCONSISTENT_INTERSECTION"
)

// Warning reports a buildability problem. Warnings never abort regeneration;
// they are collected and returned with the structure.
type Warning struct {
	Kind WarningKind
	// Where is the edge key or face key the warning refers to.
	Where string
	// MeasuredMm and RequiredMm carry lengths for size-related warnings.
	MeasuredMm float64
	RequiredMm float64
	Msg        string
}

func (w Warning) String() string {
	s := fmt.Sprintf("%s %s", w.Kind, w.Where)
	if w.RequiredMm != 0 {
		s += fmt.Sprintf(": %.1fmm, need %.1fmm", w.MeasuredMm, w.RequiredMm)
	}
	if w.Msg != "" {
		s += ": " + w.Msg
	}
	return s
}
