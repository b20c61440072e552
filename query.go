package zome

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Derived queries feeding the connector fabrication reports.

// KVis maps an original ring level to its visible level: levels renumber
// from the cut ring when truncated.
func (s *Structure) KVis(k int) int {
	if s.Params.CutActive {
		return k - s.Params.CutLevel
	}
	return k
}

// visibleKey renders a connector key in visible-level terms for reports.
func (s *Structure) visibleKey(c *Connector) string {
	switch c.Kind {
	case VertexPole:
		return c.Key
	case VertexIntersection:
		return fmt.Sprintf("X:%d:%d", s.KVis(c.K), c.I)
	}
	return fmt.Sprintf("k%d_i%d", s.KVis(c.K), c.I)
}

// Signature returns the rotation-invariant connectivity signature of a
// connector: the sorted join of one tag per surviving incident edge, "X"
// for intersection neighbors and "dk±n" for ring-level deltas otherwise.
func (s *Structure) Signature(key string) string {
	v := s.Vertices[key]
	if v == nil {
		return ""
	}
	var tags []string
	for _, e := range s.incidentEdges(key) {
		other := s.Vertices[e.Other(key)]
		if other == nil {
			continue
		}
		if other.Kind == VertexIntersection {
			tags = append(tags, "X")
			continue
		}
		tags = append(tags, fmt.Sprintf("dk%+d", other.K-v.K))
	}
	sort.Strings(tags)
	return strings.Join(tags, ",")
}

// Classification partitions visible connectors into the per-level baseline
// population and the modified outliers.
type Classification struct {
	// BaselinePerLevel maps each visible level to its baseline signature:
	// the most frequent signature at that level, ties broken to the
	// lexicographically smallest.
	BaselinePerLevel map[int]string
	// Modified lists the keys of visible connectors whose signature differs
	// from their level baseline, sorted.
	Modified []string
}

// Classify computes the baseline signature of every visible level and the
// connectors deviating from it. Connectors with no incident beams are
// excluded from the baseline vote.
func (s *Structure) Classify() Classification {
	type member struct {
		key string
		sig string
	}
	byLevel := make(map[int][]member)
	for _, c := range s.Connectors {
		if c.Hidden || s.incidence(c.Key) == 0 {
			continue
		}
		lv := s.KVis(c.K)
		byLevel[lv] = append(byLevel[lv], member{key: c.Key, sig: s.Signature(c.Key)})
	}
	cls := Classification{BaselinePerLevel: make(map[int]string, len(byLevel))}
	for lv, members := range byLevel {
		counts := make(map[string]int)
		for _, m := range members {
			counts[m.sig]++
		}
		baseline := ""
		best := -1
		for sig, n := range counts {
			if n > best || (n == best && sig < baseline) {
				baseline, best = sig, n
			}
		}
		cls.BaselinePerLevel[lv] = baseline
		for _, m := range members {
			if m.sig != baseline {
				cls.Modified = append(cls.Modified, m.key)
			}
		}
	}
	sort.Strings(cls.Modified)
	return cls
}

// NodeEdge describes one beam leaving a connector, in the connector's local
// azimuth frame.
type NodeEdge struct {
	To                  string
	AzimuthDeg          float64
	SeparationToNextDeg float64
	AngleToDirectrixDeg float64
}

// NodeReport is the fabrication drawing payload for one representative
// connector.
type NodeReport struct {
	Key        string
	KeyVisible string
	Pos        r3.Vec
	Edges      []NodeEdge
}

// RepresentativeNodes returns one report per visible level: the first
// visible connector whose signature equals the level baseline, falling back
// to the first visible connector. Results are ordered by visible level.
func (s *Structure) RepresentativeNodes() []NodeReport {
	cls := s.Classify()
	byLevel := make(map[int][]*Connector)
	for _, c := range s.Connectors {
		if c.Hidden {
			continue
		}
		lv := s.KVis(c.K)
		byLevel[lv] = append(byLevel[lv], c)
	}
	levels := make([]int, 0, len(byLevel))
	for lv := range byLevel {
		levels = append(levels, lv)
	}
	sort.Ints(levels)
	reports := make([]NodeReport, 0, len(levels))
	for _, lv := range levels {
		cands := byLevel[lv]
		sort.Slice(cands, func(i, j int) bool {
			if cands[i].I != cands[j].I {
				return cands[i].I < cands[j].I
			}
			return cands[i].Key < cands[j].Key
		})
		rep := cands[0]
		if baseline, ok := cls.BaselinePerLevel[lv]; ok {
			for _, c := range cands {
				if s.Signature(c.Key) == baseline {
					rep = c
					break
				}
			}
		}
		reports = append(reports, NodeReport{
			Key:        rep.Key,
			KeyVisible: s.visibleKey(rep),
			Pos:        rep.Pos,
			Edges:      s.nodeEdges(rep),
		})
	}
	return reports
}

// nodeEdges sorts the edges at a connector by azimuth in the node's local
// frame and computes the wrap-around separations. For polar nodes the frame
// is the global xy plane; for all others it is tangent-clockwise in xy
// against global z.
func (s *Structure) nodeEdges(c *Connector) []NodeEdge {
	v := s.Vertices[c.Key]
	if v == nil {
		return nil
	}
	polar := math.Hypot(v.Pos.X, v.Pos.Y) < 1e-9
	var tcw r2.Vec
	if !polar {
		rxy := r2.Unit(r2.Vec{X: v.Pos.X, Y: v.Pos.Y})
		tcw = r2.Vec{X: rxy.Y, Y: -rxy.X}
	}
	var out []NodeEdge
	for _, e := range s.incidentEdges(c.Key) {
		other := s.Vertices[e.Other(c.Key)]
		if other == nil {
			continue
		}
		d := r3.Sub(other.Pos, v.Pos)
		if r3.Norm(d) < epsilon {
			continue
		}
		var az float64
		if polar {
			az = math.Atan2(d.Y, d.X)
		} else {
			az = math.Atan2(d.Z, d.X*tcw.X+d.Y*tcw.Y)
		}
		angle := math.Acos(Clamp(math.Abs(r3.Dot(r3.Unit(d), v.Directrix)), 0, 1))
		out = append(out, NodeEdge{
			To:                  other.Key,
			AzimuthDeg:          RtoD(az),
			AngleToDirectrixDeg: RtoD(angle),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AzimuthDeg != out[j].AzimuthDeg {
			return out[i].AzimuthDeg < out[j].AzimuthDeg
		}
		return out[i].To < out[j].To
	})
	for i := range out {
		next := out[(i+1)%len(out)].AzimuthDeg
		sep := next - out[i].AzimuthDeg
		if sep <= 0 {
			sep += 360
		}
		out[i].SeparationToNextDeg = sep
	}
	return out
}
